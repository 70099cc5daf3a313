// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transfers

import (
	"github.com/gona-network/gonastake/api/events"
	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/logdb"
)

type FilteredTransfer struct {
	TokenID   gona.TokenID    `json:"tokenID"`
	Amount    uint64          `json:"amount"`
	Recipient gona.Address    `json:"recipient"`
	Staker    *gona.PublicKey `json:"staker,omitempty"`
	Meta      events.LogMeta  `json:"meta"`
}

func convertTransfer(tr *logdb.Transfer) *FilteredTransfer {
	return &FilteredTransfer{
		TokenID:   tr.TokenID,
		Amount:    tr.Amount,
		Recipient: tr.Recipient,
		Staker:    tr.Staker,
		Meta: events.LogMeta{
			Op:    tr.Op,
			Index: tr.Index,
			Time:  tr.Time,
		},
	}
}

type TransferCriteria struct {
	Staker    *gona.PublicKey `json:"staker,omitempty"`
	Recipient *gona.Address   `json:"recipient,omitempty"`
}

type TransferFilter struct {
	CriteriaSet []*TransferCriteria `json:"criteriaSet"`
	Range       *events.Range       `json:"range"`
	Options     *events.Options     `json:"options"`
	Order       logdb.Order         `json:"order"`
}
