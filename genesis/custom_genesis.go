// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"fmt"
	"math/bits"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/gona-network/gonastake/builtin"
	"github.com/gona-network/gonastake/builtin/staker/config"
	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/state"
)

// CustomGenesis is user customized genesis
type CustomGenesis struct {
	Name     string    `yaml:"name"`
	Staking  Staking   `yaml:"staking"`
	Accounts []Account `yaml:"accounts"`
	// RewardPool is moved from the first account into the reward pool.
	RewardPool uint64 `yaml:"rewardPool"`
}

// Staking holds the initial staking config.
type Staking struct {
	// TokenAddress and SmartWallet may only name the builtin contracts.
	TokenAddress *gona.Address `yaml:"tokenAddress"`
	SmartWallet  *gona.Address `yaml:"smartWallet"`
	Admin        gona.Address  `yaml:"admin"`
	Weight       uint32        `yaml:"weight"`
	Decimals     uint8         `yaml:"decimals"`
	Paused       bool          `yaml:"paused"`
}

// Account is a token allocation.
type Account struct {
	Address gona.Address `yaml:"address"`
	Balance uint64       `yaml:"balance"`
}

// LoadCustomGenesis reads a YAML genesis file.
func LoadCustomGenesis(path string) (*CustomGenesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	var gen CustomGenesis
	if err := yaml.Unmarshal(data, &gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis file")
	}
	return &gen, nil
}

// NewCustomNet create custom network genesis.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	if gen.Staking.Admin.IsZero() {
		return nil, errors.New("staking.admin must be set")
	}
	if a := gen.Staking.TokenAddress; a != nil && *a != builtin.Token.Address {
		return nil, fmt.Errorf("staking.tokenAddress must be the builtin token %v", builtin.Token.Address)
	}
	if a := gen.Staking.SmartWallet; a != nil && *a != builtin.Wallet.Address {
		return nil, fmt.Errorf("staking.smartWallet must be the builtin smart wallet %v", builtin.Wallet.Address)
	}
	if gen.Staking.Decimals > gona.MaxDecimals {
		return nil, fmt.Errorf("staking.decimals must not exceed %d", gona.MaxDecimals)
	}

	var supply uint64
	for _, a := range gen.Accounts {
		if a.Balance == 0 {
			return nil, fmt.Errorf("%v: balance must be a non-zero integer", a.Address)
		}
		var carry uint64
		if supply, carry = bits.Add64(supply, a.Balance, 0); carry != 0 {
			return nil, errors.New("total balance overflows")
		}
	}
	if gen.RewardPool > 0 && (len(gen.Accounts) == 0 || gen.Accounts[0].Balance < gen.RewardPool) {
		return nil, errors.New("rewardPool exceeds the balance of the first account")
	}

	cfg := config.Config{
		TokenAddress: builtin.Token.Address,
		SmartWallet:  builtin.Wallet.Address,
		Admin:        gen.Staking.Admin,
		Weight:       gen.Staking.Weight,
		Decimals:     gen.Staking.Decimals,
		Paused:       gen.Staking.Paused,
	}

	builder := new(Builder).
		State(func(st *state.State) error {
			return builtin.Staker.WithState(st).Initialize(cfg)
		}).
		State(func(st *state.State) error {
			token := builtin.Token.WithState(st)
			for _, a := range gen.Accounts {
				if err := token.Mint(a.Address, a.Balance); err != nil {
					return errors.WithMessagef(err, "mint for %v", a.Address)
				}
			}
			return nil
		})

	if gen.RewardPool > 0 {
		funder := gen.Accounts[0].Address
		builder.State(func(st *state.State) error {
			stk := builtin.Staker.WithState(st)
			if err := builtin.Token.WithState(st).Transfer(funder, stk.Address(), gen.RewardPool); err != nil {
				return err
			}
			_, err := stk.DepositPool(cfg.TokenAddress, funder, gen.RewardPool, 0)
			return err
		})
	}

	id, err := builder.ComputeID()
	if err != nil {
		return nil, err
	}
	name := gen.Name
	if name == "" {
		name = "customnet"
	}
	return &Genesis{builder, id, name}, nil
}
