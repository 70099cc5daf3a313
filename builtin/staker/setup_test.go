// Copyright (c) 2025 The Gona developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gona-network/gonastake/builtin/staker/config"
	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/lvldb"
	"github.com/gona-network/gonastake/state"
)

const day = gona.MillisPerDay

var (
	tokenAddr   = gona.BytesToAddress([]byte("token"))
	walletAddr  = gona.BytesToAddress([]byte("wallet"))
	adminAddr   = gona.BytesToAddress([]byte("admin"))
	depositAddr = gona.BytesToAddress([]byte("depositor"))

	alice = gona.PublicKey{0xa1}
	bob   = gona.PublicKey{0xb0}
)

func defaultConfig() config.Config {
	return config.Config{
		TokenAddress: tokenAddr,
		SmartWallet:  walletAddr,
		Admin:        adminAddr,
		Weight:       8500,
		Decimals:     6,
	}
}

func newStaker(t *testing.T) (*Staker, *state.State) {
	return newStakerWithConfig(t, defaultConfig())
}

func newStakerWithConfig(t *testing.T, cfg config.Config) (*Staker, *state.State) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.NewStater(db, 0).NewState()
	staker := New(gona.StakerContractAddress, st)
	require.NoError(t, staker.Initialize(cfg))
	return staker, st
}

type TestFunc func(t *testing.T)

type TestSequence struct {
	staker *Staker

	funcs []TestFunc
	mu    sync.Mutex
}

func NewSequence(staker *Staker) *TestSequence {
	return &TestSequence{funcs: make([]TestFunc, 0), staker: staker}
}

func (st *TestSequence) AddFunc(f TestFunc) *TestSequence {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.funcs = append(st.funcs, f)
	return st
}

func (st *TestSequence) Stake(staker gona.PublicKey, amount uint64, now uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if _, err := st.staker.Stake(tokenAddr, staker, amount, nil, now); err != nil {
			t.Fatalf("failed to stake %d for %s: %v", amount, staker.AbbrevString(), err)
		}
		t.Logf("staked %d for %s", amount, staker.AbbrevString())
	})
}

func (st *TestSequence) Deposit(amount uint64, now uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if _, err := st.staker.DepositPool(tokenAddr, depositAddr, amount, now); err != nil {
			t.Fatalf("failed to deposit %d: %v", amount, err)
		}
		t.Logf("deposited %d", amount)
	})
}

func (st *TestSequence) Unstake(staker gona.PublicKey, amount uint64, now uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		receipt, err := st.staker.Unstake(staker, amount, now)
		if err != nil {
			t.Fatalf("failed to unstake %d for %s: %v", amount, staker.AbbrevString(), err)
		}
		t.Logf("unstaked %d for %s, paid %d", amount, staker.AbbrevString(), receipt.Transfer.Amount)
	})
}

func (st *TestSequence) Run(t *testing.T) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, f := range st.funcs {
		f(t)
	}
}

type StakeAssertions struct {
	staker *Staker
	key    gona.PublicKey
}

func AssertStake(staker *Staker, key gona.PublicKey) *StakeAssertions {
	return &StakeAssertions{staker: staker, key: key}
}

func (sa *StakeAssertions) Absent(t *testing.T) {
	entry, err := sa.staker.GetStakeInfo(sa.key)
	require.NoError(t, err)
	assert.Nil(t, entry, "stake of %s should be absent", sa.key.AbbrevString())
}

func (sa *StakeAssertions) Amount(t *testing.T, amount uint64, timeOfStake uint64) {
	entry, err := sa.staker.GetStakeInfo(sa.key)
	require.NoError(t, err)
	require.NotNil(t, entry, "stake of %s should exist", sa.key.AbbrevString())
	assert.Equal(t, amount, entry.Amount, "amount of %s", sa.key.AbbrevString())
	assert.Equal(t, timeOfStake, entry.TimeOfStake, "time of stake of %s", sa.key.AbbrevString())
}

func assertVolume(t *testing.T, staker *Staker, expected uint64) {
	volume, err := staker.RewardVolume()
	require.NoError(t, err)
	assert.Equal(t, expected, volume)
}

func assertTotalStaked(t *testing.T, staker *Staker, expected uint64) {
	total, err := staker.TotalStaked()
	require.NoError(t, err)
	assert.Equal(t, expected, total)
}
