// Copyright (c) 2025 The Gona developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"github.com/gona-network/gonastake/gona"
)

// Config holds the staking parameters.
type Config struct {
	TokenAddress gona.Address // the token contract, the only caller allowed to stake and deposit
	SmartWallet  gona.Address // receives unstake payouts on behalf of stakers
	Admin        gona.Address
	Weight       uint32 // reward rate, percent scaled by 10^Decimals
	Decimals     uint8
	Paused       bool
}
