// Copyright (c) 2025 The Gona developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gona-network/gonastake/builtin/solidity"
	"github.com/gona-network/gonastake/builtin/staker/reverts"
	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/lvldb"
	"github.com/gona-network/gonastake/state"
)

const (
	weight   = uint32(8500)
	decimals = uint8(6)
	day      = gona.MillisPerDay
)

var (
	staker1 = gona.PublicKey{1}
	staker2 = gona.PublicKey{2}
)

func newSvc(t *testing.T) (*Service, gona.Address, *state.State) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.NewStater(db, 0).NewState()
	addr := gona.BytesToAddress([]byte("ledger"))
	return New(solidity.NewContext(addr, st)), addr, st
}

func TestService_Get_Absent(t *testing.T) {
	svc, _, _ := newSvc(t)
	e, err := svc.Get(staker1)
	assert.NoError(t, err)
	assert.Nil(t, e)
}

func TestService_Get_CorruptedEntry(t *testing.T) {
	svc, addr, st := newSvc(t)
	pos := gona.Blake2b(staker1.Bytes(), slotStakes.Bytes())
	st.SetRawStorage(addr, pos, rlp.RawValue{0xFF})

	_, err := svc.Get(staker1)
	assert.Error(t, err)
	assert.False(t, reverts.IsRevertErr(err))
}

func TestService_UpsertOnStake_Create(t *testing.T) {
	svc, _, _ := newSvc(t)

	e, reward, err := svc.UpsertOnStake(staker1, 5000, nil, 100, weight, decimals)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), reward)
	assert.Equal(t, &Entry{Amount: 5000, TimeOfStake: 100}, e)

	got, err := svc.Get(staker1)
	require.NoError(t, err)
	assert.Equal(t, e, got)

	other, err := svc.Get(staker2)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestService_UpsertOnStake_MergeSameDay(t *testing.T) {
	svc, _, _ := newSvc(t)

	_, _, err := svc.UpsertOnStake(staker1, 5000, nil, 0, weight, decimals)
	require.NoError(t, err)

	e, reward, err := svc.UpsertOnStake(staker1, 2000, nil, day-1, weight, decimals)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), reward)
	assert.Equal(t, uint64(7000), e.Amount)
	assert.Equal(t, day-1, e.TimeOfStake)
}

func TestService_UpsertOnStake_MergeCompounds(t *testing.T) {
	svc, _, _ := newSvc(t)

	_, _, err := svc.UpsertOnStake(staker1, 50_000_000_000, nil, 0, weight, decimals)
	require.NoError(t, err)

	now := 20*day + 5
	e, reward, err := svc.UpsertOnStake(staker1, 1_000_000, nil, now, weight, decimals)
	require.NoError(t, err)
	assert.Equal(t, uint64(85_000_000), reward)
	assert.Equal(t, uint64(50_000_000_000+85_000_000+1_000_000), e.Amount)
	assert.Equal(t, now, e.TimeOfStake)
	assert.True(t, e.TokenID.IsUnit())
}

func TestService_UpsertOnStake_TokenMismatch(t *testing.T) {
	svc, _, _ := newSvc(t)

	_, _, err := svc.UpsertOnStake(staker1, 5000, gona.TokenID{1}, 0, weight, decimals)
	require.NoError(t, err)

	_, _, err = svc.UpsertOnStake(staker1, 2000, nil, day, weight, decimals)
	assert.ErrorIs(t, err, reverts.ErrInvalidInput)

	got, err := svc.Get(staker1)
	require.NoError(t, err)
	assert.Equal(t, &Entry{Amount: 5000, TimeOfStake: 0, TokenID: gona.TokenID{1}}, got)
}

func TestService_UpsertOnStake_ClockError(t *testing.T) {
	svc, _, _ := newSvc(t)

	_, _, err := svc.UpsertOnStake(staker1, 5000, nil, 10*day, weight, decimals)
	require.NoError(t, err)

	_, _, err = svc.UpsertOnStake(staker1, 5000, nil, day, weight, decimals)
	assert.ErrorIs(t, err, reverts.ErrClock)

	// untouched
	e, err := svc.Get(staker1)
	require.NoError(t, err)
	assert.Equal(t, &Entry{Amount: 5000, TimeOfStake: 10 * day}, e)
}

func TestService_UpsertOnStake_Overflow(t *testing.T) {
	svc, _, _ := newSvc(t)

	_, _, err := svc.UpsertOnStake(staker1, ^uint64(0)-10, nil, 0, weight, decimals)
	require.NoError(t, err)

	_, _, err = svc.UpsertOnStake(staker1, 1000, nil, 0, weight, decimals)
	assert.ErrorIs(t, err, reverts.ErrOverflow)
}

func TestService_ApplyPartialWithdrawal(t *testing.T) {
	svc, _, _ := newSvc(t)

	_, err := svc.ApplyPartialWithdrawal(staker1, 5000)
	assert.ErrorIs(t, err, reverts.ErrNotFound)

	_, _, err = svc.UpsertOnStake(staker1, 10_000, nil, 7, weight, decimals)
	require.NoError(t, err)

	removed, err := svc.ApplyPartialWithdrawal(staker1, 1000)
	require.NoError(t, err)
	assert.False(t, removed)

	e, err := svc.Get(staker1)
	require.NoError(t, err)
	assert.Equal(t, &Entry{Amount: 1000, TimeOfStake: 7}, e)

	removed, err = svc.ApplyPartialWithdrawal(staker1, 999)
	require.NoError(t, err)
	assert.True(t, removed)

	e, err = svc.Get(staker1)
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestService_Modify(t *testing.T) {
	svc, _, _ := newSvc(t)
	boom := errors.New("boom")

	_, err := svc.Modify(staker1, func(e *Entry) (*Entry, error) {
		assert.Nil(t, e)
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	// deleting an absent entry is a no-op
	e, err := svc.Modify(staker1, func(e *Entry) (*Entry, error) { return nil, nil })
	require.NoError(t, err)
	assert.Nil(t, e)

	_, err = svc.Modify(staker1, func(*Entry) (*Entry, error) {
		return &Entry{Amount: 1234, TimeOfStake: 1}, nil
	})
	require.NoError(t, err)

	// fn receives a copy, mutations without returning are discarded
	_, err = svc.Modify(staker1, func(e *Entry) (*Entry, error) {
		e.Amount = 1
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	e, err = svc.Get(staker1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), e.Amount)
}
