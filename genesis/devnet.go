// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"encoding/hex"
	"sync/atomic"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/gona-network/gonastake/gona"
)

// DevAccount account for development.
type DevAccount struct {
	Address    gona.Address
	PrivateKey *ecdsa.PrivateKey
	// StakerKey is an ed25519 identity derived from the same seed.
	StakerKey gona.PublicKey
}

const (
	devBalance    = uint64(1_000_000_000_000_000) // 10^9 tokens of 6 decimals
	devRewardPool = uint64(100_000_000_000_000)
)

var devAccounts atomic.Value

// DevAccounts returns pre-alloced accounts for dev mode.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
		"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
	}
	for _, str := range privKeys {
		seed, err := hex.DecodeString(str)
		if err != nil {
			panic(err)
		}
		pk := secp256k1.PrivKeyFromBytes(seed).ToECDSA()
		stakerKey, err := gona.PublicKeyFromEd25519(ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey))
		if err != nil {
			panic(err)
		}
		accs = append(accs, DevAccount{
			Address:    gona.Address(crypto.PubkeyToAddress(pk.PublicKey)),
			PrivateKey: pk,
			StakerKey:  stakerKey,
		})
	}
	devAccounts.Store(accs)
	return accs
}

// NewDevnet create genesis for dev mode. The first dev account is the admin
// and funds the reward pool.
func NewDevnet() *Genesis {
	gen := &CustomGenesis{
		Name: "devnet",
		Staking: Staking{
			Admin:    DevAccounts()[0].Address,
			Weight:   8500,
			Decimals: 6,
		},
		RewardPool: devRewardPool,
	}
	for _, a := range DevAccounts() {
		gen.Accounts = append(gen.Accounts, Account{Address: a.Address, Balance: devBalance})
	}

	g, err := NewCustomNet(gen)
	if err != nil {
		panic(err)
	}
	return g
}
