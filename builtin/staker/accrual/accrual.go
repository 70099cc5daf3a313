// Copyright (c) 2025 The Gona developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accrual computes time proportional staking rewards. All results are
// floor truncated.
package accrual

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/gona-network/gonastake/builtin/staker/reverts"
	"github.com/gona-network/gonastake/gona"
)

var (
	ten               = uint256.NewInt(10)
	weightDenominator = uint256.NewInt(gona.WeightDenominator)
)

// ElapsedDays returns the whole days between two epoch millisecond timestamps.
func ElapsedDays(t0, t1 uint64) (uint64, error) {
	if t1 < t0 {
		return 0, errors.WithMessagef(reverts.ErrClock, "from %d to %d", t0, t1)
	}
	return (t1 - t0) / gona.MillisPerDay, nil
}

// RewardPerDay returns floor(principal * weight / (100 * 10^decimals)).
func RewardPerDay(principal uint64, weight uint32, decimals uint8) (uint64, error) {
	if decimals > gona.MaxDecimals {
		return 0, errors.WithMessagef(reverts.ErrOverflow, "decimals %d", decimals)
	}
	num, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(principal), uint256.NewInt(uint64(weight)))
	if overflow {
		return 0, reverts.ErrOverflow
	}
	scale := new(uint256.Int).Exp(ten, uint256.NewInt(uint64(decimals)))
	denom, overflow := new(uint256.Int).MulOverflow(weightDenominator, scale)
	if overflow {
		return 0, reverts.ErrOverflow
	}
	perDay := num.Div(num, denom)
	if !perDay.IsUint64() {
		return 0, errors.WithMessage(reverts.ErrOverflow, "reward per day")
	}
	return perDay.Uint64(), nil
}

// AccruedReward returns the reward earned by principal over days. Zero days
// earn nothing and skip the rate computation.
func AccruedReward(principal uint64, weight uint32, decimals uint8, days uint64) (uint64, error) {
	if days == 0 {
		return 0, nil
	}
	perDay, err := RewardPerDay(principal, weight, decimals)
	if err != nil {
		return 0, err
	}
	total, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(perDay), uint256.NewInt(days))
	if overflow || !total.IsUint64() {
		return 0, errors.WithMessagef(reverts.ErrOverflow, "reward %d over %d days", perDay, days)
	}
	return total.Uint64(), nil
}

// Accrue computes elapsed days since stakedAt and the reward earned on principal.
func Accrue(principal uint64, weight uint32, decimals uint8, stakedAt, now uint64) (days, reward uint64, err error) {
	if days, err = ElapsedDays(stakedAt, now); err != nil {
		return 0, 0, err
	}
	if reward, err = AccruedReward(principal, weight, decimals, days); err != nil {
		return 0, 0, err
	}
	return days, reward, nil
}
