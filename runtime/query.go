// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/gona-network/gonastake/builtin"
	"github.com/gona-network/gonastake/builtin/staker"
	"github.com/gona-network/gonastake/builtin/staker/config"
	"github.com/gona-network/gonastake/builtin/staker/ledger"
	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/state"
)

// view runs fn against the committed state. Queries never commit.
func (r *Runtime) view(fn func(st *state.State) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return fn(r.stater.NewState())
}

// Now returns the runtime clock.
func (r *Runtime) Now() uint64 {
	return r.clock()
}

// GetStakeInfo returns the stake of staker, nil if absent.
func (r *Runtime) GetStakeInfo(key gona.PublicKey) (entry *ledger.Entry, err error) {
	err = r.view(func(st *state.State) error {
		entry, err = builtin.Staker.WithState(st).GetStakeInfo(key)
		return err
	})
	return
}

// CalculateRewards returns what the stake of staker has earned by now.
func (r *Runtime) CalculateRewards(key gona.PublicKey) (res *staker.RewardResult, err error) {
	now := r.clock()
	err = r.view(func(st *state.State) error {
		res, err = builtin.Staker.WithState(st).CalculateRewards(key, now)
		return err
	})
	return
}

// RewardVolume returns the tokens available for rewards.
func (r *Runtime) RewardVolume() (volume uint64, err error) {
	err = r.view(func(st *state.State) error {
		volume, err = builtin.Staker.WithState(st).RewardVolume()
		return err
	})
	return
}

// TotalStaked returns the sum of all principal.
func (r *Runtime) TotalStaked() (total uint64, err error) {
	err = r.view(func(st *state.State) error {
		total, err = builtin.Staker.WithState(st).TotalStaked()
		return err
	})
	return
}

// Config returns the staking config.
func (r *Runtime) Config() (cfg *config.Config, err error) {
	err = r.view(func(st *state.State) error {
		cfg, err = builtin.Staker.WithState(st).Config()
		return err
	})
	return
}

// TokenBalance returns the token balance of addr.
func (r *Runtime) TokenBalance(addr gona.Address) (bal uint64, err error) {
	err = r.view(func(st *state.State) error {
		bal, err = builtin.Token.WithState(st).BalanceOf(addr)
		return err
	})
	return
}

// WalletBalance returns what the smart wallet holds for staker.
func (r *Runtime) WalletBalance(key gona.PublicKey) (bal uint64, err error) {
	err = r.view(func(st *state.State) error {
		bal, err = builtin.Wallet.WithState(st).BalanceOf(key)
		return err
	})
	return
}
