// Copyright (c) 2025 The Gona developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/gona-network/gonastake/builtin/solidity"
	"github.com/gona-network/gonastake/builtin/staker/accrual"
	"github.com/gona-network/gonastake/builtin/staker/reverts"
	"github.com/gona-network/gonastake/gona"
)

var slotStakes = gona.BytesToBytes32([]byte("stakes"))

// Service keeps one stake entry per staker.
type Service struct {
	stakes *solidity.Mapping[gona.PublicKey, *Entry]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		stakes: solidity.NewMapping[gona.PublicKey, *Entry](sctx, slotStakes),
	}
}

// Get returns the entry of staker, nil if absent.
func (s *Service) Get(staker gona.PublicKey) (*Entry, error) {
	e, err := s.stakes.Get(staker)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get stake")
	}
	if e != nil && len(e.TokenID) == 0 {
		e.TokenID = nil
	}
	return e, nil
}

// Modify reads the entry of staker, passes it to fn and stores the result.
// fn receives nil when absent; returning nil deletes the entry. Nothing is written
// when fn fails.
func (s *Service) Modify(staker gona.PublicKey, fn func(*Entry) (*Entry, error)) (*Entry, error) {
	current, err := s.Get(staker)
	if err != nil {
		return nil, err
	}
	next, err := fn(current.Copy())
	if err != nil {
		return nil, err
	}
	switch {
	case next == nil:
		if current != nil {
			s.stakes.Delete(staker)
		}
	case current == nil:
		if err := s.stakes.Insert(staker, next); err != nil {
			return nil, errors.Wrap(err, "failed to insert stake")
		}
	default:
		if err := s.stakes.Update(staker, next); err != nil {
			return nil, errors.Wrap(err, "failed to update stake")
		}
	}
	return next, nil
}

// UpsertOnStake creates the entry of staker, or merges amount into it compounding
// the reward accrued since the last stake. A merge must bring the staked token. It returns the stored entry and the
// compounded reward.
func (s *Service) UpsertOnStake(
	staker gona.PublicKey,
	amount uint64,
	tokenID gona.TokenID,
	now uint64,
	weight uint32,
	decimals uint8,
) (*Entry, uint64, error) {
	var compounded uint64
	entry, err := s.Modify(staker, func(e *Entry) (*Entry, error) {
		if e == nil {
			return &Entry{Amount: amount, TimeOfStake: now, TokenID: tokenID}, nil
		}
		if !e.TokenID.Equal(tokenID) {
			return nil, errors.WithMessagef(reverts.ErrInvalidInput, "token %v does not match staked token %v", tokenID, e.TokenID)
		}
		_, reward, err := accrual.Accrue(e.Amount, weight, decimals, e.TimeOfStake, now)
		if err != nil {
			return nil, err
		}
		principal, carry := bits.Add64(e.Amount, reward, 0)
		if carry != 0 {
			return nil, errors.WithMessage(reverts.ErrOverflow, "compounded principal")
		}
		if principal, carry = bits.Add64(principal, amount, 0); carry != 0 {
			return nil, errors.WithMessage(reverts.ErrOverflow, "merged principal")
		}
		compounded = reward
		return &Entry{Amount: principal, TimeOfStake: now, TokenID: tokenID}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return entry, compounded, nil
}

// ApplyPartialWithdrawal sets the principal of staker to newBalance, or removes the
// entry when newBalance is below the dust threshold.
func (s *Service) ApplyPartialWithdrawal(staker gona.PublicKey, newBalance uint64) (removed bool, err error) {
	_, err = s.Modify(staker, func(e *Entry) (*Entry, error) {
		if e == nil {
			return nil, errors.WithMessagef(reverts.ErrNotFound, "staker %v", staker.AbbrevString())
		}
		if newBalance < gona.DustThreshold {
			removed = true
			return nil, nil
		}
		e.Amount = newBalance
		return e, nil
	})
	return removed, err
}
