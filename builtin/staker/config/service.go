// Copyright (c) 2025 The Gona developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"github.com/pkg/errors"

	"github.com/gona-network/gonastake/builtin/solidity"
	"github.com/gona-network/gonastake/builtin/staker/reverts"
	"github.com/gona-network/gonastake/gona"
)

var slotConfig = gona.BytesToBytes32([]byte("config"))

// Service stores the single config record.
type Service struct {
	config *solidity.Raw[*Config]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		config: solidity.NewRaw[*Config](sctx, slotConfig),
	}
}

// Initialize stores the initial config. It can be done once.
func (s *Service) Initialize(cfg Config) error {
	set, err := s.config.IsSet()
	if err != nil {
		return errors.Wrap(err, "failed to get config")
	}
	if set {
		return errors.WithMessage(reverts.ErrInvalidInput, "already initialized")
	}
	if cfg.Decimals > gona.MaxDecimals {
		return errors.WithMessagef(reverts.ErrInvalidInput, "decimals %d exceeds %d", cfg.Decimals, gona.MaxDecimals)
	}
	return s.set(&cfg)
}

// Get returns the config. It fails if not initialized.
func (s *Service) Get() (*Config, error) {
	cfg, err := s.config.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get config")
	}
	if cfg == nil {
		return nil, errors.New("staker not initialized")
	}
	return cfg, nil
}

func (s *Service) set(cfg *Config) error {
	if err := s.config.Upsert(cfg); err != nil {
		return errors.Wrap(err, "failed to set config")
	}
	return nil
}

func (s *Service) adminOnly(caller gona.Address) (*Config, error) {
	cfg, err := s.Get()
	if err != nil {
		return nil, err
	}
	if caller != cfg.Admin {
		return nil, errors.WithMessagef(reverts.ErrUnauthorized, "caller %v is not admin", caller)
	}
	return cfg, nil
}

// SetPaused sets the pause flag.
func (s *Service) SetPaused(caller gona.Address, paused bool) error {
	cfg, err := s.adminOnly(caller)
	if err != nil {
		return err
	}
	cfg.Paused = paused
	return s.set(cfg)
}

// ChangeWeight sets the reward rate.
func (s *Service) ChangeWeight(caller gona.Address, weight uint32) error {
	cfg, err := s.adminOnly(caller)
	if err != nil {
		return err
	}
	cfg.Weight = weight
	return s.set(cfg)
}

// Authorize checks that caller is the admin.
func (s *Service) Authorize(caller gona.Address) (*Config, error) {
	return s.adminOnly(caller)
}
