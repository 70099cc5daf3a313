// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/gona-network/gonastake/builtin/solidity"
	"github.com/gona-network/gonastake/builtin/staker/reverts"
	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/state"
)

var (
	slotBalances    = gona.BytesToBytes32([]byte("balances"))
	slotTotalSupply = gona.BytesToBytes32([]byte("total-supply"))
)

// Token is a fungible token ledger keyed by account address.
type Token struct {
	addr        gona.Address
	balances    *solidity.Mapping[gona.Address, uint64]
	totalSupply *solidity.Raw[uint64]
}

func New(addr gona.Address, state *state.State) *Token {
	sctx := solidity.NewContext(addr, state)
	return &Token{
		addr:        addr,
		balances:    solidity.NewMapping[gona.Address, uint64](sctx, slotBalances),
		totalSupply: solidity.NewRaw[uint64](sctx, slotTotalSupply),
	}
}

// Address returns the token contract address.
func (t *Token) Address() gona.Address {
	return t.addr
}

// TotalSupply returns the amount minted so far.
func (t *Token) TotalSupply() (uint64, error) {
	supply, err := t.totalSupply.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get total supply")
	}
	return supply, nil
}

// BalanceOf returns the balance of addr.
func (t *Token) BalanceOf(addr gona.Address) (uint64, error) {
	bal, err := t.balances.Get(addr)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to get balance of %v", addr)
	}
	return bal, nil
}

// Mint creates amount of new tokens owned by to.
func (t *Token) Mint(to gona.Address, amount uint64) error {
	supply, err := t.TotalSupply()
	if err != nil {
		return err
	}
	newSupply, carry := bits.Add64(supply, amount, 0)
	if carry != 0 {
		return errors.WithMessage(reverts.ErrOverflow, "total supply")
	}
	bal, err := t.BalanceOf(to)
	if err != nil {
		return err
	}
	// balances never exceed the supply
	if err := t.setBalance(to, bal+amount); err != nil {
		return err
	}
	if err := t.totalSupply.Upsert(newSupply); err != nil {
		return errors.Wrap(err, "failed to set total supply")
	}
	return nil
}

// Transfer moves amount from one account to another.
func (t *Token) Transfer(from, to gona.Address, amount uint64) error {
	fromBal, err := t.BalanceOf(from)
	if err != nil {
		return err
	}
	if fromBal < amount {
		return errors.WithMessagef(reverts.ErrInsufficientFunds, "balance of %v is %d, want %d", from, fromBal, amount)
	}
	if amount == 0 || from == to {
		return nil
	}
	if err := t.setBalance(from, fromBal-amount); err != nil {
		return err
	}
	toBal, err := t.BalanceOf(to)
	if err != nil {
		return err
	}
	return t.setBalance(to, toBal+amount)
}

func (t *Token) setBalance(addr gona.Address, bal uint64) error {
	if bal == 0 {
		t.balances.Delete(addr)
		return nil
	}
	if err := t.balances.Update(addr, bal); err != nil {
		return errors.Wrapf(err, "failed to set balance of %v", addr)
	}
	return nil
}
