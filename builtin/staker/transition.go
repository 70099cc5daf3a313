// Copyright (c) 2025 The Gona developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/gona-network/gonastake/builtin/staker/accrual"
	"github.com/gona-network/gonastake/builtin/staker/config"
	"github.com/gona-network/gonastake/builtin/staker/reverts"
	"github.com/gona-network/gonastake/gona"
)

// Every transition validates before its first write, so a failing call leaves the
// state untouched.

func (s *Staker) tokenOnly(caller gona.Address) (*config.Config, error) {
	cfg, err := s.configService.Get()
	if err != nil {
		return nil, err
	}
	if caller != cfg.TokenAddress {
		return nil, errors.WithMessagef(reverts.ErrUnauthorized, "caller %v is not the token contract", caller)
	}
	return cfg, nil
}

// Stake locks amount for staker, merging into an existing entry.
func (s *Staker) Stake(caller gona.Address, staker gona.PublicKey, amount uint64, tokenID gona.TokenID, now uint64) (*Receipt, error) {
	cfg, err := s.tokenOnly(caller)
	if err != nil {
		return nil, err
	}
	if amount < gona.MinStake {
		return nil, errors.WithMessagef(reverts.ErrInvalidInput, "stake %d below minimum %d", amount, gona.MinStake)
	}
	if cfg.Paused {
		return nil, reverts.ErrPaused
	}

	prev, err := s.ledgerService.Get(staker)
	if err != nil {
		return nil, err
	}
	var reward uint64
	if prev != nil {
		if !prev.TokenID.Equal(tokenID) {
			return nil, errors.WithMessagef(reverts.ErrInvalidInput, "token %v does not match staked token %v", tokenID, prev.TokenID)
		}
		if _, reward, err = accrual.Accrue(prev.Amount, cfg.Weight, cfg.Decimals, prev.TimeOfStake, now); err != nil {
			return nil, err
		}
	}
	increase, carry := bits.Add64(amount, reward, 0)
	if carry != 0 {
		return nil, errors.WithMessage(reverts.ErrOverflow, "stake increase")
	}
	if err := s.globalStatsService.CheckAdd(increase); err != nil {
		return nil, err
	}

	entry, compounded, err := s.ledgerService.UpsertOnStake(staker, amount, tokenID, now, cfg.Weight, cfg.Decimals)
	if err != nil {
		return nil, err
	}
	if err := s.globalStatsService.AddStaked(amount + compounded); err != nil {
		return nil, err
	}

	logger.Debug("staked", "staker", staker.AbbrevString(), "amount", amount, "compounded", compounded, "principal", entry.Amount)

	return &Receipt{
		Event: &Event{
			Tag:    EventStaked,
			Staker: &staker,
			Amount: amount,
			Time:   now,
		},
	}, nil
}

// DepositPool funds the reward pool with amount received from source.
func (s *Staker) DepositPool(caller gona.Address, source gona.Address, amount uint64, now uint64) (*Receipt, error) {
	if _, err := s.tokenOnly(caller); err != nil {
		return nil, err
	}
	if amount == 0 {
		return nil, errors.WithMessage(reverts.ErrInvalidInput, "zero deposit")
	}
	if err := s.poolService.Deposit(amount); err != nil {
		return nil, err
	}

	logger.Debug("reward pool funded", "source", source, "amount", amount)

	return &Receipt{
		Event: &Event{
			Tag:    EventTokenDeposit,
			Sender: &source,
			Amount: amount,
			Time:   now,
		},
	}, nil
}

// Unstake withdraws amount of principal of staker, paying it with the reward the
// withdrawn amount earned to the smart wallet.
func (s *Staker) Unstake(staker gona.PublicKey, amount uint64, now uint64) (*Receipt, error) {
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
	if amount > entry.Amount {
		return nil, errors.WithMessagef(reverts.ErrInsufficientFunds, "requested %d, staked %d", amount, entry.Amount)
	}
	if amount == 0 {
		return nil, errors.WithMessage(reverts.ErrInvalidInput, "zero unstake")
	}

	days, reward, err := accrual.Accrue(amount, cfg.Weight, cfg.Decimals, entry.TimeOfStake, now)
	if err != nil {
		return nil, err
	}
	payout, carry := bits.Add64(amount, reward, 0)
	if carry != 0 {
		return nil, errors.WithMessage(reverts.ErrOverflow, "payout")
	}
	if days > 0 {
		if err := s.poolService.ReserveForPayout(reward); err != nil {
			return nil, err
		}
	}

	newBalance := entry.Amount - amount
	removed, err := s.ledgerService.ApplyPartialWithdrawal(staker, newBalance)
	if err != nil {
		return nil, err
	}
	released := amount
	if removed {
		// the dust remainder leaves the ledger too
		released = entry.Amount
	}
	if err := s.globalStatsService.RemoveStaked(released); err != nil {
		return nil, err
	}

	logger.Debug("unstaked", "staker", staker.AbbrevString(), "amount", amount, "reward", reward, "days", days, "closed", removed)

	return &Receipt{
		Event: &Event{
			Tag:    EventUnstaking,
			Staker: &staker,
			Amount: amount,
			Time:   now,
		},
		Transfer: &Transfer{
			TokenID: entry.TokenID,
			Amount:  payout,
			To:      cfg.SmartWallet,
			Staker:  &staker,
		},
	}, nil
}

//
// Admin operations
//

// SetPaused stops new stakes.
func (s *Staker) SetPaused(caller gona.Address) error {
	if err := s.configService.SetPaused(caller, true); err != nil {
		return err
	}
	logger.Info("staking paused", "by", caller)
	return nil
}

// Resume lifts the pause.
func (s *Staker) Resume(caller gona.Address) error {
	if err := s.configService.SetPaused(caller, false); err != nil {
		return err
	}
	logger.Info("staking resumed", "by", caller)
	return nil
}

// ChangeWeight sets the reward rate. It applies to all rewards computed afterwards.
func (s *Staker) ChangeWeight(caller gona.Address, weight uint32) error {
	if err := s.configService.ChangeWeight(caller, weight); err != nil {
		return err
	}
	logger.Info("weight changed", "by", caller, "weight", weight)
	return nil
}

// WithdrawVolume removes up to amount from the reward pool and pays it to the admin.
func (s *Staker) WithdrawVolume(caller gona.Address, amount uint64, now uint64) (*Receipt, error) {
	cfg, err := s.configService.Authorize(caller)
	if err != nil {
		return nil, err
	}
	if amount == 0 {
		return nil, errors.WithMessage(reverts.ErrInvalidInput, "zero withdraw")
	}
	deducted, err := s.poolService.DeductVolume(amount)
	if err != nil {
		return nil, err
	}
	logger.Info("reward volume withdrawn", "by", caller, "requested", amount, "deducted", deducted)

	receipt := &Receipt{
		Event: &Event{
			Tag:    EventAdminWithdraw,
			Sender: &caller,
			Amount: deducted,
			Time:   now,
		},
	}
	if deducted > 0 {
		receipt.Transfer = &Transfer{
			Amount: deducted,
			To:     cfg.Admin,
		}
	}
	return receipt, nil
}
