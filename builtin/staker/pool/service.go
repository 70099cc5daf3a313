// Copyright (c) 2025 The Gona developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/gona-network/gonastake/builtin/solidity"
	"github.com/gona-network/gonastake/builtin/staker/reverts"
	"github.com/gona-network/gonastake/gona"
)

var slotRewardVolume = gona.BytesToBytes32([]byte("reward-volume"))

// Service manages the reward pool, the tokens deposited for paying rewards.
type Service struct {
	volume *solidity.Raw[uint64]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		volume: solidity.NewRaw[uint64](sctx, slotRewardVolume),
	}
}

// Volume returns the tokens available for payout.
func (s *Service) Volume() (uint64, error) {
	v, err := s.volume.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get reward volume")
	}
	return v, nil
}

func (s *Service) setVolume(v uint64) error {
	if err := s.volume.Upsert(v); err != nil {
		return errors.Wrap(err, "failed to set reward volume")
	}
	return nil
}

// Deposit adds amount to the pool.
func (s *Service) Deposit(amount uint64) error {
	volume, err := s.Volume()
	if err != nil {
		return err
	}
	sum, carry := bits.Add64(volume, amount, 0)
	if carry != 0 {
		return errors.WithMessage(reverts.ErrOverflow, "reward volume")
	}
	return s.setVolume(sum)
}

// ReserveForPayout removes amount from the pool, failing if the pool cannot cover it.
func (s *Service) ReserveForPayout(amount uint64) error {
	volume, err := s.Volume()
	if err != nil {
		return err
	}
	if amount > volume {
		return errors.WithMessagef(reverts.ErrInsufficientPoolFunds, "need %d, have %d", amount, volume)
	}
	if amount == 0 {
		return nil
	}
	return s.setVolume(volume - amount)
}

// DeductVolume removes up to amount from the pool, flooring at zero. It returns the
// amount actually removed.
func (s *Service) DeductVolume(amount uint64) (uint64, error) {
	volume, err := s.Volume()
	if err != nil {
		return 0, err
	}
	deducted := min(amount, volume)
	if deducted == 0 {
		return 0, nil
	}
	if err := s.setVolume(volume - deducted); err != nil {
		return 0, err
	}
	return deducted, nil
}
