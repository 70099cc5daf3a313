// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"github.com/gona-network/gonastake/gona"
)

// Event is a committed staking event.
type Event struct {
	Op     uint32
	Index  uint32
	Tag    uint8
	Staker *gona.PublicKey
	Sender *gona.Address
	Amount uint64
	Time   uint64
}

// Transfer is a committed outbound token transfer.
type Transfer struct {
	Op        uint32
	Index     uint32
	TokenID   gona.TokenID
	Amount    uint64
	Recipient gona.Address
	Staker    *gona.PublicKey
	Time      uint64
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range bounds the log time, in epoch milliseconds. To is ignored when less than From.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

type EventCriteria struct {
	Tag    *uint8
	Staker *gona.PublicKey
	Sender *gona.Address
}

// EventFilter filter
type EventFilter struct {
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order // default asc
}

type TransferCriteria struct {
	Staker    *gona.PublicKey // who the tokens were paid for
	Recipient *gona.Address   // who received tokens
}

type TransferFilter struct {
	CriteriaSet []*TransferCriteria
	Range       *Range
	Options     *Options
	Order       Order // default asc
}
