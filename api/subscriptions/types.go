// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/gona-network/gonastake/builtin/staker"
	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/runtime"
)

// EventMessage is pushed to subscribers for every committed event.
type EventMessage struct {
	Op        string          `json:"op"`
	Tag       string          `json:"tag"`
	Staker    *gona.PublicKey `json:"staker,omitempty"`
	Sender    *gona.Address   `json:"sender,omitempty"`
	Amount    uint64          `json:"amount"`
	Time      uint64          `json:"time"`
	StageHash gona.Bytes32    `json:"stageHash"`
}

type eventFilter struct {
	Tag    *staker.EventTag
	Staker *gona.PublicKey
}

func (f *eventFilter) match(ev *staker.Event) bool {
	if f.Tag != nil && *f.Tag != ev.Tag {
		return false
	}
	if f.Staker != nil && (ev.Staker == nil || *ev.Staker != *f.Staker) {
		return false
	}
	return true
}

func convertCommitted(c *runtime.Committed) *EventMessage {
	ev := c.Result.Receipt.Event
	return &EventMessage{
		Op:        c.Op,
		Tag:       ev.Tag.String(),
		Staker:    ev.Staker,
		Sender:    ev.Sender,
		Amount:    ev.Amount,
		Time:      ev.Time,
		StageHash: c.Result.StageHash,
	}
}
