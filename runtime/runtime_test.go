// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/gona-network/gonastake/builtin"
	"github.com/gona-network/gonastake/builtin/staker"
	"github.com/gona-network/gonastake/builtin/staker/reverts"
	"github.com/gona-network/gonastake/genesis"
	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/logdb"
	"github.com/gona-network/gonastake/lvldb"
	"github.com/gona-network/gonastake/state"
)

const (
	day = gona.MillisPerDay
	t0  = uint64(1_700_000_000_000)
)

type testClock struct {
	now atomic.Uint64
}

func newTestClock() *testClock {
	c := &testClock{}
	c.now.Store(t0)
	return c
}

func (c *testClock) Now() uint64       { return c.now.Load() }
func (c *testClock) Advance(ms uint64) { c.now.Add(ms) }

type testEnv struct {
	rt    *Runtime
	clock *testClock
	logDB *logdb.LogDB
	accs  []genesis.DevAccount
}

func newTestEnv(t *testing.T, gen *genesis.Genesis) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logDB, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { logDB.Close() })

	stater := state.NewStater(db, 64)
	require.NoError(t, gen.Build(stater))

	clock := newTestClock()
	return &testEnv{
		rt:    New(stater, logDB, clock.Now),
		clock: clock,
		logDB: logDB,
		accs:  genesis.DevAccounts(),
	}
}

// noPoolGenesis funds one holder and leaves the reward pool empty.
func noPoolGenesis(t *testing.T, holder, admin gona.Address) *genesis.Genesis {
	gen, err := genesis.NewCustomNet(&genesis.CustomGenesis{
		Staking:  genesis.Staking{Admin: admin, Weight: 8500, Decimals: 6},
		Accounts: []genesis.Account{{Address: holder, Balance: 100_000_000_000}},
	})
	require.NoError(t, err)
	return gen
}

func (e *testEnv) tokenSupply(t *testing.T, holders ...gona.Address) uint64 {
	var sum uint64
	for _, addr := range append(holders, builtin.Staker.Address, builtin.Wallet.Address) {
		bal, err := e.rt.TokenBalance(addr)
		require.NoError(t, err)
		sum += bal
	}
	return sum
}

func TestRuntime_StakeAndUnstake(t *testing.T) {
	e := newTestEnv(t, genesis.NewDevnet())
	holder, key := e.accs[1].Address, e.accs[1].StakerKey

	before, err := e.rt.TokenBalance(holder)
	require.NoError(t, err)

	res, err := e.rt.Stake(holder, key, 50_000_000_000, gona.TokenID{0x07})
	require.NoError(t, err)
	assert.Equal(t, staker.EventStaked, res.Receipt.Event.Tag)
	assert.Equal(t, t0, res.Time)
	assert.False(t, res.StageHash.IsZero())

	bal, err := e.rt.TokenBalance(holder)
	require.NoError(t, err)
	assert.Equal(t, before-50_000_000_000, bal)

	e.clock.Advance(20 * day)
	rewards, err := e.rt.CalculateRewards(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), rewards.Days)
	assert.Equal(t, uint64(85_000_000), rewards.Rewards)

	res, err = e.rt.Unstake(key, 50_000_000_000)
	require.NoError(t, err)
	require.NotNil(t, res.Receipt.Transfer)
	assert.Equal(t, uint64(50_085_000_000), res.Receipt.Transfer.Amount)

	credit, err := e.rt.WalletBalance(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(50_085_000_000), credit)
	walletTokens, err := e.rt.TokenBalance(builtin.Wallet.Address)
	require.NoError(t, err)
	assert.Equal(t, credit, walletTokens)

	entry, err := e.rt.GetStakeInfo(key)
	require.NoError(t, err)
	assert.Nil(t, entry)

	volume, err := e.rt.RewardVolume()
	require.NoError(t, err)
	assert.Equal(t, uint64(100_000_000_000_000-85_000_000), volume)

	total, err := e.rt.TotalStaked()
	require.NoError(t, err)
	assert.Zero(t, total)

	events, err := e.logDB.FilterEvents(context.Background(), &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{{Staker: &key}},
	})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint8(staker.EventStaked), events[0].Tag)
	assert.Equal(t, uint8(staker.EventUnstaking), events[1].Tag)
	assert.Equal(t, t0+20*day, events[1].Time)

	transfers, err := e.logDB.FilterTransfers(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, builtin.Wallet.Address, transfers[0].Recipient)
	assert.Equal(t, gona.TokenID{0x07}, transfers[0].TokenID)
}

func TestRuntime_StakeInsufficientBalance(t *testing.T) {
	holder := gona.BytesToAddress([]byte("holder"))
	admin := gona.BytesToAddress([]byte("admin"))
	e := newTestEnv(t, noPoolGenesis(t, holder, admin))
	key := gona.PublicKey{1}

	_, err := e.rt.Stake(gona.BytesToAddress([]byte("nobody")), key, 5_000, nil)
	assert.ErrorIs(t, err, reverts.ErrInsufficientFunds)

	// the transfer in is rolled back with the rejected stake
	_, err = e.rt.Stake(holder, key, 999, nil)
	assert.ErrorIs(t, err, reverts.ErrInvalidInput)
	bal, err := e.rt.TokenBalance(holder)
	require.NoError(t, err)
	assert.Equal(t, uint64(100_000_000_000), bal)
}

func TestRuntime_RestakeOtherTokenRejected(t *testing.T) {
	holder := gona.BytesToAddress([]byte("holder"))
	admin := gona.BytesToAddress([]byte("admin"))
	e := newTestEnv(t, noPoolGenesis(t, holder, admin))
	key := gona.PublicKey{1}

	_, err := e.rt.Stake(holder, key, 5_000, nil)
	require.NoError(t, err)

	_, err = e.rt.Stake(holder, key, 5_000, gona.TokenID{0x07})
	assert.ErrorIs(t, err, reverts.ErrInvalidInput)

	bal, err := e.rt.TokenBalance(holder)
	require.NoError(t, err)
	assert.Equal(t, uint64(100_000_000_000-5_000), bal)
	entry, err := e.rt.GetStakeInfo(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000), entry.Amount)
	assert.True(t, entry.TokenID.IsUnit())
}

func TestRuntime_FailedPayoutRollsBack(t *testing.T) {
	holder := gona.BytesToAddress([]byte("holder"))
	admin := gona.BytesToAddress([]byte("admin"))
	e := newTestEnv(t, noPoolGenesis(t, holder, admin))
	key := gona.PublicKey{1}

	_, err := e.rt.Stake(holder, key, 50_000_000_000, nil)
	require.NoError(t, err)

	// compounding moves unfunded reward into principal
	e.clock.Advance(20 * day)
	_, err = e.rt.Stake(holder, key, 1_000, nil)
	require.NoError(t, err)

	entry, err := e.rt.GetStakeInfo(key)
	require.NoError(t, err)
	principal := uint64(50_000_000_000 + 85_000_000 + 1_000)
	require.Equal(t, principal, entry.Amount)

	supply := e.tokenSupply(t, holder, admin)
	_, err = e.rt.Unstake(key, principal)
	assert.ErrorIs(t, err, reverts.ErrExternalCall)

	after, err := e.rt.GetStakeInfo(key)
	require.NoError(t, err)
	assert.Equal(t, entry, after)

	total, err := e.rt.TotalStaked()
	require.NoError(t, err)
	assert.Equal(t, principal, total)

	credit, err := e.rt.WalletBalance(key)
	require.NoError(t, err)
	assert.Zero(t, credit)
	assert.Equal(t, supply, e.tokenSupply(t, holder, admin))

	// what the contract holds can still be withdrawn
	_, err = e.rt.Unstake(key, 50_000_001_000)
	require.NoError(t, err)
}

type failingWallet struct{}

func (failingWallet) Credit(gona.PublicKey, uint64) error {
	return reverts.ErrUnauthorized
}

func TestRuntime_FailedWalletCreditRollsBack(t *testing.T) {
	e := newTestEnv(t, genesis.NewDevnet())
	holder, key := e.accs[2].Address, e.accs[2].StakerKey

	_, err := e.rt.Stake(holder, key, 10_000, nil)
	require.NoError(t, err)
	holderBal, err := e.rt.TokenBalance(holder)
	require.NoError(t, err)

	_, err = e.rt.executeWith("unstake", func(st *state.State) *env {
		en := e.rt.newEnv(st)
		en.wallet = failingWallet{}
		return en
	}, func(en *env) (*staker.Receipt, error) {
		return en.staker.Unstake(key, 10_000, en.now)
	})
	assert.ErrorIs(t, err, reverts.ErrExternalCall)
	assert.ErrorContains(t, err, "wallet credit")

	entry, err := e.rt.GetStakeInfo(key)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, uint64(10_000), entry.Amount)

	walletTokens, err := e.rt.TokenBalance(builtin.Wallet.Address)
	require.NoError(t, err)
	assert.Zero(t, walletTokens)
	bal, err := e.rt.TokenBalance(holder)
	require.NoError(t, err)
	assert.Equal(t, holderBal, bal)

	// nothing was logged for the failed operation
	transfers, err := e.logDB.FilterTransfers(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, transfers)
}

func TestRuntime_TokenConservation(t *testing.T) {
	e := newTestEnv(t, genesis.NewDevnet())
	admin := e.accs[0].Address
	var holders []gona.Address
	for _, a := range e.accs {
		holders = append(holders, a.Address)
	}
	supply := e.tokenSupply(t, holders...)

	check := func(res *Result, err error) {
		t.Helper()
		require.NoError(t, err)
		assert.Equal(t, supply, e.tokenSupply(t, holders...))
	}

	check(e.rt.Stake(e.accs[1].Address, e.accs[1].StakerKey, 3_000_000_000, nil))
	check(e.rt.Stake(e.accs[2].Address, e.accs[2].StakerKey, 7_000_000, nil))
	check(e.rt.DepositPool(e.accs[3].Address, 123_456))
	e.clock.Advance(3 * day)
	check(e.rt.Stake(e.accs[1].Address, e.accs[1].StakerKey, 1_000, nil))
	e.clock.Advance(5 * day)
	check(e.rt.Unstake(e.accs[2].StakerKey, 6_500_000))
	check(e.rt.Unstake(e.accs[1].StakerKey, 1_000_000))
	check(e.rt.WithdrawVolume(admin, 1_000_000))
	check(e.rt.ChangeWeight(admin, 100))
	check(e.rt.SetPaused(admin))
	check(e.rt.Resume(admin))

	_, err := e.rt.Unstake(e.accs[4].StakerKey, 1_000)
	assert.ErrorIs(t, err, reverts.ErrNotFound)
	assert.Equal(t, supply, e.tokenSupply(t, holders...))
}

func TestRuntime_AdminOperations(t *testing.T) {
	e := newTestEnv(t, genesis.NewDevnet())
	admin, other := e.accs[0].Address, e.accs[1].Address

	_, err := e.rt.SetPaused(other)
	assert.ErrorIs(t, err, reverts.ErrUnauthorized)

	res, err := e.rt.SetPaused(admin)
	require.NoError(t, err)
	assert.Nil(t, res.Receipt)

	cfg, err := e.rt.Config()
	require.NoError(t, err)
	assert.True(t, cfg.Paused)

	_, err = e.rt.Stake(other, e.accs[1].StakerKey, 5_000, nil)
	assert.ErrorIs(t, err, reverts.ErrPaused)

	_, err = e.rt.Resume(admin)
	require.NoError(t, err)
	_, err = e.rt.Stake(other, e.accs[1].StakerKey, 5_000, nil)
	require.NoError(t, err)

	_, err = e.rt.ChangeWeight(admin, 0)
	require.NoError(t, err)
	e.clock.Advance(10 * day)
	rewards, err := e.rt.CalculateRewards(e.accs[1].StakerKey)
	require.NoError(t, err)
	assert.Zero(t, rewards.Rewards)

	adminBal, err := e.rt.TokenBalance(admin)
	require.NoError(t, err)
	volume, err := e.rt.RewardVolume()
	require.NoError(t, err)

	res, err = e.rt.WithdrawVolume(admin, volume+1)
	require.NoError(t, err)
	assert.Equal(t, volume, res.Receipt.Transfer.Amount)

	bal, err := e.rt.TokenBalance(admin)
	require.NoError(t, err)
	assert.Equal(t, adminBal+volume, bal)

	events, err := e.logDB.FilterEvents(context.Background(), &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{{Sender: &admin}},
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint8(staker.EventAdminWithdraw), events[0].Tag)
}

func TestRuntime_ConcurrentStakes(t *testing.T) {
	e := newTestEnv(t, genesis.NewDevnet())

	var g errgroup.Group
	for _, a := range e.accs {
		for range 10 {
			g.Go(func() error {
				if _, err := e.rt.Stake(a.Address, a.StakerKey, 1_000, nil); err != nil {
					return err
				}
				_, err := e.rt.TotalStaked()
				return err
			})
		}
	}
	require.NoError(t, g.Wait())

	total, err := e.rt.TotalStaked()
	require.NoError(t, err)
	assert.Equal(t, uint64(len(e.accs)*10*1_000), total)

	for _, a := range e.accs {
		entry, err := e.rt.GetStakeInfo(a.StakerKey)
		require.NoError(t, err)
		assert.Equal(t, uint64(10_000), entry.Amount)
	}
}

func TestRuntime_Clock(t *testing.T) {
	rt := New(nil, nil, nil)
	now := rt.Now()
	assert.Greater(t, now, t0)
}
