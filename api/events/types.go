// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"math"

	"github.com/gona-network/gonastake/builtin/staker"
	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/logdb"
)

type LogMeta struct {
	Op    uint32 `json:"op"`
	Index uint32 `json:"index"`
	Time  uint64 `json:"time"`
}

type FilteredEvent struct {
	Tag    string          `json:"tag"`
	Staker *gona.PublicKey `json:"staker,omitempty"`
	Sender *gona.Address   `json:"sender,omitempty"`
	Amount uint64          `json:"amount"`
	Meta   LogMeta         `json:"meta"`
}

func convertEvent(ev *logdb.Event) *FilteredEvent {
	return &FilteredEvent{
		Tag:    staker.EventTag(ev.Tag).String(),
		Staker: ev.Staker,
		Sender: ev.Sender,
		Amount: ev.Amount,
		Meta: LogMeta{
			Op:    ev.Op,
			Index: ev.Index,
			Time:  ev.Time,
		},
	}
}

type Range struct {
	From *uint64 `json:"from,omitempty"`
	To   *uint64 `json:"to,omitempty"`
}

// Convert fills open ends with the widest bound.
func (r *Range) Convert() *logdb.Range {
	if r == nil {
		return nil
	}
	rng := &logdb.Range{To: math.MaxInt64}
	if r.From != nil {
		rng.From = *r.From
	}
	if r.To != nil {
		rng.To = *r.To
	}
	return rng
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

type EventCriteria struct {
	Tag    *uint8          `json:"tag,omitempty"`
	Staker *gona.PublicKey `json:"staker,omitempty"`
	Sender *gona.Address   `json:"sender,omitempty"`
}

type EventFilter struct {
	CriteriaSet []*EventCriteria `json:"criteriaSet"`
	Range       *Range           `json:"range"`
	Options     *Options         `json:"options"`
	Order       logdb.Order      `json:"order"`
}
