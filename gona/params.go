// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gona

// Constants of the staking ledger.
const (
	// DustThreshold is the balance below which a position is flushed on withdrawal.
	DustThreshold uint64 = 1000
	// MinStake is the smallest amount accepted by a single stake.
	MinStake uint64 = 1000

	MillisPerDay uint64 = 86_400_000

	// MaxDecimals bounds the token decimals so that 10^decimals stays representable.
	MaxDecimals uint8 = 18

	// WeightDenominator converts the weight into a percentage rate.
	WeightDenominator uint64 = 100
)

// Well known contract addresses.
var (
	StakerContractAddress = NameToAddress("Staker")
	TokenContractAddress  = NameToAddress("Token")
	WalletContractAddress = NameToAddress("SmartWallet")
)
