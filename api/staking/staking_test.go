// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gona-network/gonastake/api/staking"
	"github.com/gona-network/gonastake/builtin"
	"github.com/gona-network/gonastake/genesis"
	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/logdb"
	"github.com/gona-network/gonastake/lvldb"
	"github.com/gona-network/gonastake/runtime"
	"github.com/gona-network/gonastake/state"
)

const t0 = uint64(1_700_000_000_000)

var (
	ts    *httptest.Server
	now   atomic.Uint64
	accs  = genesis.DevAccounts()
	admin = accs[0].Address
)

func initStakingServer(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	logDB, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { logDB.Close() })

	stater := state.NewStater(db, 0)
	require.NoError(t, genesis.NewDevnet().Build(stater))

	now.Store(t0)
	rt := runtime.New(stater, logDB, now.Load)

	router := mux.NewRouter()
	staking.New(rt).Mount(router, "/staking")
	ts = httptest.NewServer(router)
	t.Cleanup(ts.Close)
}

func TestStaking(t *testing.T) {
	initStakingServer(t)

	for _, tt := range []struct {
		name string
		fn   func(*testing.T)
	}{
		{"stakeAndUnstake", testStakeAndUnstake},
		{"getAbsentStake", testGetAbsentStake},
		{"rewardsNotFound", testRewardsNotFound},
		{"invalidStaker", testInvalidStaker},
		{"stakeValidation", testStakeValidation},
		{"unknownField", testUnknownField},
		{"getConfig", testGetConfig},
		{"adminUnauthorized", testAdminUnauthorized},
		{"pauseResume", testPauseResume},
		{"withdrawAndWeight", testWithdrawAndWeight},
	} {
		t.Run(tt.name, tt.fn)
	}
}

func testStakeAndUnstake(t *testing.T) {
	holder, key := accs[1].Address, accs[1].StakerKey

	res, code := httpPost(t, "/staking/stake", staking.StakeRequest{From: &holder, Staker: &key, Amount: 50_000_000_000})
	require.Equal(t, http.StatusOK, code, string(res))
	var receipt staking.Receipt
	require.NoError(t, json.Unmarshal(res, &receipt))
	require.NotNil(t, receipt.Event)
	assert.Equal(t, "Staked", receipt.Event.Tag)
	assert.Equal(t, key, *receipt.Event.Staker)
	assert.Nil(t, receipt.Transfer)

	res, code = httpGet(t, "/staking/stakes/"+key.String())
	require.Equal(t, http.StatusOK, code)
	var info staking.StakeInfo
	require.NoError(t, json.Unmarshal(res, &info))
	assert.Equal(t, uint64(50_000_000_000), info.Amount)
	assert.Equal(t, t0, info.TimeOfStake)

	now.Add(20 * gona.MillisPerDay)
	res, code = httpGet(t, "/staking/rewards/"+key.String())
	require.Equal(t, http.StatusOK, code)
	var rewards staking.Rewards
	require.NoError(t, json.Unmarshal(res, &rewards))
	assert.Equal(t, staking.Rewards{Days: 20, Rewards: 85_000_000, AmountStaked: 50_000_000_000}, rewards)

	res, code = httpGet(t, "/staking/volume")
	require.Equal(t, http.StatusOK, code)
	var volume staking.Volume
	require.NoError(t, json.Unmarshal(res, &volume))
	assert.Equal(t, uint64(50_000_000_000), volume.TotalStaked)

	res, code = httpPost(t, "/staking/unstake", staking.UnstakeRequest{Staker: &key, Amount: 50_000_000_000})
	require.Equal(t, http.StatusOK, code, string(res))
	receipt = staking.Receipt{}
	require.NoError(t, json.Unmarshal(res, &receipt))
	assert.Equal(t, "Unstaking", receipt.Event.Tag)
	require.NotNil(t, receipt.Transfer)
	assert.Equal(t, uint64(50_085_000_000), receipt.Transfer.Amount)
	assert.Equal(t, builtin.Wallet.Address, receipt.Transfer.To)

	// a fully withdrawn stake is gone
	_, code = httpPost(t, "/staking/unstake", staking.UnstakeRequest{Staker: &key, Amount: 1_000})
	assert.Equal(t, http.StatusNotFound, code)
}

func testGetAbsentStake(t *testing.T) {
	res, code := httpGet(t, "/staking/stakes/"+gona.PublicKey{0xab}.String())
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "null\n", string(res))
}

func testRewardsNotFound(t *testing.T) {
	_, code := httpGet(t, "/staking/rewards/"+gona.PublicKey{0xab}.String())
	assert.Equal(t, http.StatusNotFound, code)
}

func testInvalidStaker(t *testing.T) {
	_, code := httpGet(t, "/staking/stakes/0x1234")
	assert.Equal(t, http.StatusBadRequest, code)
}

func testStakeValidation(t *testing.T) {
	holder, key := accs[2].Address, accs[2].StakerKey

	_, code := httpPost(t, "/staking/stake", staking.StakeRequest{Staker: &key, Amount: 5_000})
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = httpPost(t, "/staking/stake", staking.StakeRequest{From: &holder, Staker: &key, Amount: 999})
	assert.Equal(t, http.StatusBadRequest, code)

	poor := gona.BytesToAddress([]byte("poor"))
	_, code = httpPost(t, "/staking/stake", staking.StakeRequest{From: &poor, Staker: &key, Amount: 5_000})
	assert.Equal(t, http.StatusBadRequest, code)

	res, code := httpGet(t, "/staking/stakes/"+key.String())
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "null\n", string(res))
}

func testUnknownField(t *testing.T) {
	_, code := httpPost(t, "/staking/deposit", map[string]any{"from": admin, "amount": 1, "extra": true})
	assert.Equal(t, http.StatusBadRequest, code)
}

func testGetConfig(t *testing.T) {
	res, code := httpGet(t, "/staking/config")
	require.Equal(t, http.StatusOK, code)
	var cfg staking.Config
	require.NoError(t, json.Unmarshal(res, &cfg))
	assert.Equal(t, admin, cfg.Admin)
	assert.Equal(t, builtin.Token.Address, cfg.TokenAddress)
	assert.Equal(t, builtin.Wallet.Address, cfg.SmartWallet)
	assert.Equal(t, uint8(6), cfg.Decimals)
}

func testAdminUnauthorized(t *testing.T) {
	other := accs[3].Address
	for _, path := range []string{"/staking/admin/pause", "/staking/admin/resume"} {
		_, code := httpPost(t, path, staking.AdminRequest{Caller: &other})
		assert.Equal(t, http.StatusForbidden, code, path)
	}

	_, code := httpPost(t, "/staking/admin/pause", staking.AdminRequest{})
	assert.Equal(t, http.StatusBadRequest, code)
}

func testPauseResume(t *testing.T) {
	holder, key := accs[3].Address, accs[3].StakerKey

	_, code := httpPost(t, "/staking/admin/pause", staking.AdminRequest{Caller: &admin})
	require.Equal(t, http.StatusOK, code)

	_, code = httpPost(t, "/staking/stake", staking.StakeRequest{From: &holder, Staker: &key, Amount: 5_000})
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = httpPost(t, "/staking/admin/resume", staking.AdminRequest{Caller: &admin})
	require.Equal(t, http.StatusOK, code)

	_, code = httpPost(t, "/staking/stake", staking.StakeRequest{From: &holder, Staker: &key, Amount: 5_000})
	assert.Equal(t, http.StatusOK, code)
}

func testWithdrawAndWeight(t *testing.T) {
	_, code := httpPost(t, "/staking/admin/weight", staking.AdminRequest{Caller: &admin})
	assert.Equal(t, http.StatusBadRequest, code)

	weight := uint32(9000)
	_, code = httpPost(t, "/staking/admin/weight", staking.AdminRequest{Caller: &admin, Weight: &weight})
	require.Equal(t, http.StatusOK, code)

	res, code := httpGet(t, "/staking/config")
	require.Equal(t, http.StatusOK, code)
	var cfg staking.Config
	require.NoError(t, json.Unmarshal(res, &cfg))
	assert.Equal(t, weight, cfg.Weight)

	res, code = httpGet(t, "/staking/volume")
	require.Equal(t, http.StatusOK, code)
	var before staking.Volume
	require.NoError(t, json.Unmarshal(res, &before))

	amount := uint64(1_000_000)
	res, code = httpPost(t, "/staking/admin/withdraw", staking.AdminRequest{Caller: &admin, Amount: &amount})
	require.Equal(t, http.StatusOK, code, string(res))
	var receipt staking.Receipt
	require.NoError(t, json.Unmarshal(res, &receipt))
	assert.Equal(t, "AdminWithdraw", receipt.Event.Tag)
	require.NotNil(t, receipt.Transfer)
	assert.Equal(t, admin, receipt.Transfer.To)

	res, code = httpGet(t, "/staking/volume")
	require.Equal(t, http.StatusOK, code)
	var after staking.Volume
	require.NoError(t, json.Unmarshal(res, &after))
	assert.Equal(t, before.RewardVolume-amount, after.RewardVolume)
}

func httpPost(t *testing.T, path string, body any) ([]byte, int) {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	res, err := http.Post(ts.URL+path, "application/x-www-form-urlencoded", bytes.NewReader(data)) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	r, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return r, res.StatusCode
}

func httpGet(t *testing.T, path string) ([]byte, int) {
	res, err := http.Get(ts.URL + path) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	r, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return r, res.StatusCode
}
