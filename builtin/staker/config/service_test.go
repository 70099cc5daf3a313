// Copyright (c) 2025 The Gona developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gona-network/gonastake/builtin/solidity"
	"github.com/gona-network/gonastake/builtin/staker/reverts"
	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/lvldb"
	"github.com/gona-network/gonastake/state"
)

var (
	admin = gona.BytesToAddress([]byte("admin"))
	token = gona.BytesToAddress([]byte("token"))
)

func newSvc(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.NewStater(db, 0).NewState()
	return New(solidity.NewContext(gona.BytesToAddress([]byte("cfg")), st))
}

func testConfig() Config {
	return Config{
		TokenAddress: token,
		SmartWallet:  gona.BytesToAddress([]byte("wallet")),
		Admin:        admin,
		Weight:       8500,
		Decimals:     6,
	}
}

func TestService_Initialize(t *testing.T) {
	svc := newSvc(t)

	_, err := svc.Get()
	assert.Error(t, err)

	require.NoError(t, svc.Initialize(testConfig()))

	cfg, err := svc.Get()
	require.NoError(t, err)
	want := testConfig()
	assert.Equal(t, &want, cfg)

	err = svc.Initialize(testConfig())
	assert.ErrorIs(t, err, reverts.ErrInvalidInput)
}

func TestService_Initialize_BadDecimals(t *testing.T) {
	svc := newSvc(t)
	cfg := testConfig()
	cfg.Decimals = gona.MaxDecimals + 1
	assert.ErrorIs(t, svc.Initialize(cfg), reverts.ErrInvalidInput)
}

func TestService_AdminSetters(t *testing.T) {
	svc := newSvc(t)
	require.NoError(t, svc.Initialize(testConfig()))

	assert.ErrorIs(t, svc.SetPaused(token, true), reverts.ErrUnauthorized)
	assert.ErrorIs(t, svc.ChangeWeight(token, 1), reverts.ErrUnauthorized)

	require.NoError(t, svc.SetPaused(admin, true))
	require.NoError(t, svc.ChangeWeight(admin, 1200))

	cfg, err := svc.Get()
	require.NoError(t, err)
	assert.True(t, cfg.Paused)
	assert.Equal(t, uint32(1200), cfg.Weight)

	require.NoError(t, svc.SetPaused(admin, false))
	cfg, err = svc.Get()
	require.NoError(t, err)
	assert.False(t, cfg.Paused)
}
