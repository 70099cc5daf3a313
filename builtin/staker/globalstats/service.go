// Copyright (c) 2025 The Gona developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package globalstats

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/gona-network/gonastake/builtin/solidity"
	"github.com/gona-network/gonastake/builtin/staker/reverts"
	"github.com/gona-network/gonastake/gona"
)

var slotTotalStaked = gona.BytesToBytes32([]byte(("total-staked")))

// Service manages contract-wide staking totals.
type Service struct {
	totalStaked *solidity.Raw[uint64]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		totalStaked: solidity.NewRaw[uint64](sctx, slotTotalStaked),
	}
}

// TotalStaked returns the sum of all stakers' principal.
func (s *Service) TotalStaked() (uint64, error) {
	v, err := s.totalStaked.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get total staked")
	}
	return v, nil
}

// CheckAdd fails if amount cannot be added to the total.
func (s *Service) CheckAdd(amount uint64) error {
	total, err := s.TotalStaked()
	if err != nil {
		return err
	}
	if _, carry := bits.Add64(total, amount, 0); carry != 0 {
		return errors.WithMessage(reverts.ErrOverflow, "total staked")
	}
	return nil
}

// AddStaked increases the total.
func (s *Service) AddStaked(amount uint64) error {
	total, err := s.TotalStaked()
	if err != nil {
		return err
	}
	sum, carry := bits.Add64(total, amount, 0)
	if carry != 0 {
		return errors.WithMessage(reverts.ErrOverflow, "total staked")
	}
	return s.set(sum)
}

// RemoveStaked decreases the total.
func (s *Service) RemoveStaked(amount uint64) error {
	total, err := s.TotalStaked()
	if err != nil {
		return err
	}
	if amount > total {
		return errors.Errorf("total staked underflow: %d < %d", total, amount)
	}
	return s.set(total - amount)
}

func (s *Service) set(v uint64) error {
	if err := s.totalStaked.Upsert(v); err != nil {
		return errors.Wrap(err, "failed to set total staked")
	}
	return nil
}
