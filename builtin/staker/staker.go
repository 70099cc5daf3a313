// Copyright (c) 2025 The Gona developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/pkg/errors"

	"github.com/gona-network/gonastake/builtin/solidity"
	"github.com/gona-network/gonastake/builtin/staker/accrual"
	"github.com/gona-network/gonastake/builtin/staker/config"
	"github.com/gona-network/gonastake/builtin/staker/globalstats"
	"github.com/gona-network/gonastake/builtin/staker/ledger"
	"github.com/gona-network/gonastake/builtin/staker/pool"
	"github.com/gona-network/gonastake/builtin/staker/reverts"
	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/log"
	"github.com/gona-network/gonastake/state"
)

var logger = log.WithContext("pkg", "staker")

func SetLogger(l log.Logger) {
	logger = l
}

// Staker implements the staking contract over ledger, pool and config.
type Staker struct {
	address gona.Address

	configService      *config.Service
	ledgerService      *ledger.Service
	poolService        *pool.Service
	globalStatsService *globalstats.Service
}

// New create a new instance.
func New(addr gona.Address, state *state.State) *Staker {
	sctx := solidity.NewContext(addr, state)

	return &Staker{
		address:            addr,
		configService:      config.New(sctx),
		ledgerService:      ledger.New(sctx),
		poolService:        pool.New(sctx),
		globalStatsService: globalstats.New(sctx),
	}
}

// Address returns the contract address.
func (s *Staker) Address() gona.Address {
	return s.address
}

// Initialize stores the initial config.
func (s *Staker) Initialize(cfg config.Config) error {
	return s.configService.Initialize(cfg)
}

//
// Getters - no state change
//

// Config returns the current config.
func (s *Staker) Config() (*config.Config, error) {
	return s.configService.Get()
}

// GetStakeInfo returns the entry of staker, nil if absent.
func (s *Staker) GetStakeInfo(staker gona.PublicKey) (*ledger.Entry, error) {
	return s.ledgerService.Get(staker)
}

// RewardVolume returns the tokens available in the reward pool.
func (s *Staker) RewardVolume() (uint64, error) {
	return s.poolService.Volume()
}

// TotalStaked returns the sum of all principal.
func (s *Staker) TotalStaked() (uint64, error) {
	return s.globalStatsService.TotalStaked()
}

// CalculateRewards returns what the whole stake of staker has earned at now.
func (s *Staker) CalculateRewards(staker gona.PublicKey, now uint64) (*RewardResult, error) {
	cfg, err := s.configService.Get()
	if err != nil {
		return nil, err
	}
	entry, err := s.ledgerService.Get(staker)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, errors.WithMessagef(reverts.ErrNotFound, "staker %v", staker.AbbrevString())
	}
	days, reward, err := accrual.Accrue(entry.Amount, cfg.Weight, cfg.Decimals, entry.TimeOfStake, now)
	if err != nil {
		return nil, err
	}
	return &RewardResult{
		Days:         days,
		Rewards:      reward,
		AmountStaked: entry.Amount,
	}, nil
}
