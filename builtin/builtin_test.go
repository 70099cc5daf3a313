// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/lvldb"
	"github.com/gona-network/gonastake/state"
)

func TestBindings(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	st := state.NewStater(db, 0).NewState()

	assert.Equal(t, gona.StakerContractAddress, Staker.WithState(st).Address())
	assert.Equal(t, gona.TokenContractAddress, Token.WithState(st).Address())
	assert.Equal(t, gona.WalletContractAddress, Wallet.WithState(st).Address())
	assert.Equal(t, "SmartWallet", Wallet.Name())

	addrs := map[gona.Address]bool{
		Staker.Address: true,
		Token.Address:  true,
		Wallet.Address: true,
	}
	assert.Len(t, addrs, 3)
}
