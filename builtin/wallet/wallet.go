// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package wallet

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/gona-network/gonastake/builtin/solidity"
	"github.com/gona-network/gonastake/builtin/staker/reverts"
	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/state"
)

var slotCredits = gona.BytesToBytes32([]byte("credits"))

// Wallet keeps the tokens received on behalf of each staker key.
type Wallet struct {
	addr    gona.Address
	credits *solidity.Mapping[gona.PublicKey, uint64]
}

func New(addr gona.Address, state *state.State) *Wallet {
	return &Wallet{
		addr:    addr,
		credits: solidity.NewMapping[gona.PublicKey, uint64](solidity.NewContext(addr, state), slotCredits),
	}
}

// Address returns the wallet contract address.
func (w *Wallet) Address() gona.Address {
	return w.addr
}

// BalanceOf returns the credit of staker.
func (w *Wallet) BalanceOf(staker gona.PublicKey) (uint64, error) {
	v, err := w.credits.Get(staker)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to get credit of %v", staker.AbbrevString())
	}
	return v, nil
}

// Credit adds amount to the credit of staker.
func (w *Wallet) Credit(staker gona.PublicKey, amount uint64) error {
	if amount == 0 {
		return nil
	}
	cur, err := w.BalanceOf(staker)
	if err != nil {
		return err
	}
	sum, carry := bits.Add64(cur, amount, 0)
	if carry != 0 {
		return errors.WithMessagef(reverts.ErrOverflow, "credit of %v", staker.AbbrevString())
	}
	if err := w.credits.Update(staker, sum); err != nil {
		return errors.Wrapf(err, "failed to credit %v", staker.AbbrevString())
	}
	return nil
}
