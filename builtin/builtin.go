// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/gona-network/gonastake/builtin/staker"
	"github.com/gona-network/gonastake/builtin/token"
	"github.com/gona-network/gonastake/builtin/wallet"
	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/state"
)

// Builtin contracts binding.
var (
	Staker = &stakerContract{newContract("Staker", gona.StakerContractAddress)}
	Token  = &tokenContract{newContract("Token", gona.TokenContractAddress)}
	Wallet = &walletContract{newContract("SmartWallet", gona.WalletContractAddress)}
)

type (
	stakerContract struct{ *contract }
	tokenContract  struct{ *contract }
	walletContract struct{ *contract }
)

func (s *stakerContract) WithState(state *state.State) *staker.Staker {
	return staker.New(s.Address, state)
}

func (t *tokenContract) WithState(state *state.State) *token.Token {
	return token.New(t.Address, state)
}

func (w *walletContract) WithState(state *state.State) *wallet.Wallet {
	return wallet.New(w.Address, state)
}
