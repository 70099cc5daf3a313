// Copyright (c) 2025 The Gona developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/gona-network/gonastake/gona"
)

// EventTag identifies the kind of a staking event.
type EventTag uint8

const (
	EventStaked        EventTag = 246
	EventUnstaking     EventTag = 245
	EventTokenDeposit  EventTag = 244
	EventAdminWithdraw EventTag = 243
)

func (t EventTag) String() string {
	switch t {
	case EventStaked:
		return "Staked"
	case EventUnstaking:
		return "Unstaking"
	case EventTokenDeposit:
		return "TokenDeposit"
	case EventAdminWithdraw:
		return "AdminWithdraw"
	default:
		return "Unknown"
	}
}

// Event is emitted by a successful transition.
type Event struct {
	Tag    EventTag
	Staker *gona.PublicKey // set for Staked and Unstaking
	Sender *gona.Address   // set for TokenDeposit and AdminWithdraw
	Amount uint64
	Time   uint64
}

// Transfer instructs the caller to pay Amount of TokenID to To, tagged with Staker.
type Transfer struct {
	TokenID gona.TokenID
	Amount  uint64
	To      gona.Address
	Staker  *gona.PublicKey
}

// Receipt describes the external effects of a transition. The staker never
// applies them itself.
type Receipt struct {
	Event    *Event
	Transfer *Transfer
}

// RewardResult is the reward a staker would receive when unstaking everything now.
type RewardResult struct {
	Days         uint64
	Rewards      uint64
	AmountStaked uint64
}
