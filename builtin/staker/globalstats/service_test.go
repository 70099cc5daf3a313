// Copyright (c) 2025 The Gona developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>
package globalstats

import (
	"math"
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

func newSvc(t *testing.T) (*Service, gona.Address, *state.State) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.NewStater(db, 0).NewState()
	addr := gona.BytesToAddress([]byte("gs"))
	return New(solidity.NewContext(addr, st)), addr, st
}

func TestService_TotalStaked(t *testing.T) {
	svc, _, _ := newSvc(t)

	total, err := svc.TotalStaked()
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), total)

	assert.NoError(t, svc.AddStaked(1500))
	assert.NoError(t, svc.AddStaked(500))
	assert.NoError(t, svc.RemoveStaked(300))

	total, err = svc.TotalStaked()
	assert.NoError(t, err)
	assert.Equal(t, uint64(1700), total)

	assert.Error(t, svc.RemoveStaked(1701))
}

func TestService_Overflow(t *testing.T) {
	svc, _, _ := newSvc(t)
	require.NoError(t, svc.AddStaked(math.MaxUint64-1))

	assert.NoError(t, svc.CheckAdd(1))
	assert.ErrorIs(t, svc.CheckAdd(2), reverts.ErrOverflow)
	assert.ErrorIs(t, svc.AddStaked(2), reverts.ErrOverflow)
}

func TestService_Corrupted(t *testing.T) {
	svc, addr, st := newSvc(t)
	st.SetRawStorage(addr, slotTotalStaked, rlp.RawValue{0xFF})

	_, err := svc.TotalStaked()
	assert.Error(t, err)
	assert.Error(t, svc.AddStaked(1))
	assert.Error(t, svc.CheckAdd(1))
}
