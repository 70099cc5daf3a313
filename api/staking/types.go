// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/gona-network/gonastake/builtin/staker"
	"github.com/gona-network/gonastake/builtin/staker/config"
	"github.com/gona-network/gonastake/builtin/staker/ledger"
	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/runtime"
)

type StakeRequest struct {
	From    *gona.Address   `json:"from"`
	Staker  *gona.PublicKey `json:"staker"`
	Amount  uint64          `json:"amount"`
	TokenID gona.TokenID    `json:"tokenID,omitempty"`
}

type DepositRequest struct {
	From   *gona.Address `json:"from"`
	Amount uint64        `json:"amount"`
}

type UnstakeRequest struct {
	Staker *gona.PublicKey `json:"staker"`
	Amount uint64          `json:"amount"`
}

// AdminRequest is the body of the admin operations. Weight and Amount are
// only read by the operation they belong to.
type AdminRequest struct {
	Caller *gona.Address `json:"caller"`
	Weight *uint32       `json:"weight,omitempty"`
	Amount *uint64       `json:"amount,omitempty"`
}

type Event struct {
	Tag    string          `json:"tag"`
	Staker *gona.PublicKey `json:"staker,omitempty"`
	Sender *gona.Address   `json:"sender,omitempty"`
	Amount uint64          `json:"amount"`
	Time   uint64          `json:"time"`
}

type Transfer struct {
	TokenID gona.TokenID    `json:"tokenID"`
	Amount  uint64          `json:"amount"`
	To      gona.Address    `json:"to"`
	Staker  *gona.PublicKey `json:"staker,omitempty"`
}

// Receipt is the outcome of a committed operation.
type Receipt struct {
	StageHash gona.Bytes32 `json:"stageHash"`
	Time      uint64       `json:"time"`
	Event     *Event       `json:"event"`
	Transfer  *Transfer    `json:"transfer"`
}

func convertReceipt(res *runtime.Result) *Receipt {
	r := &Receipt{
		StageHash: res.StageHash,
		Time:      res.Time,
	}
	if res.Receipt == nil {
		return r
	}
	if ev := res.Receipt.Event; ev != nil {
		r.Event = &Event{
			Tag:    ev.Tag.String(),
			Staker: ev.Staker,
			Sender: ev.Sender,
			Amount: ev.Amount,
			Time:   ev.Time,
		}
	}
	if tr := res.Receipt.Transfer; tr != nil {
		r.Transfer = &Transfer{
			TokenID: tr.TokenID,
			Amount:  tr.Amount,
			To:      tr.To,
			Staker:  tr.Staker,
		}
	}
	return r
}

type StakeInfo struct {
	Amount      uint64       `json:"amount"`
	TimeOfStake uint64       `json:"timeOfStake"`
	TokenID     gona.TokenID `json:"tokenID"`
}

func convertEntry(e *ledger.Entry) *StakeInfo {
	if e == nil {
		return nil
	}
	return &StakeInfo{
		Amount:      e.Amount,
		TimeOfStake: e.TimeOfStake,
		TokenID:     e.TokenID,
	}
}

type Rewards struct {
	Days         uint64 `json:"days"`
	Rewards      uint64 `json:"rewards"`
	AmountStaked uint64 `json:"amountStaked"`
}

func convertRewards(r *staker.RewardResult) *Rewards {
	return &Rewards{
		Days:         r.Days,
		Rewards:      r.Rewards,
		AmountStaked: r.AmountStaked,
	}
}

type Volume struct {
	RewardVolume uint64 `json:"rewardVolume"`
	TotalStaked  uint64 `json:"totalStaked"`
}

type Config struct {
	TokenAddress gona.Address `json:"tokenAddress"`
	SmartWallet  gona.Address `json:"smartWallet"`
	Admin        gona.Address `json:"admin"`
	Weight       uint32       `json:"weight"`
	Decimals     uint8        `json:"decimals"`
	Paused       bool         `json:"paused"`
}

func convertConfig(c *config.Config) *Config {
	return &Config{
		TokenAddress: c.TokenAddress,
		SmartWallet:  c.SmartWallet,
		Admin:        c.Admin,
		Weight:       c.Weight,
		Decimals:     c.Decimals,
		Paused:       c.Paused,
	}
}
