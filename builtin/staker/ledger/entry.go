// Copyright (c) 2025 The Gona developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/gona-network/gonastake/gona"
)

// Entry is the locked principal of one staker.
type Entry struct {
	Amount      uint64       // principal in minor units, never below the dust threshold
	TimeOfStake uint64       // epoch millis of the last principal affecting event
	TokenID     gona.TokenID // staked token
}

// Copy returns a deep copy of the entry.
func (e *Entry) Copy() *Entry {
	if e == nil {
		return nil
	}
	cpy := *e
	if e.TokenID != nil {
		cpy.TokenID = append(gona.TokenID(nil), e.TokenID...)
	}
	return &cpy
}
