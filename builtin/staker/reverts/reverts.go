// Copyright (c) 2025 The Gona developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts lists the failures a staking operation reports to its
// caller. Storage failures are never reverts.
package reverts

import (
	"github.com/pkg/errors"
)

// ErrRevert aborts an operation and discards its changes.
type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{message: message}
}

func (e *ErrRevert) Error() string {
	return e.message
}

var (
	ErrNotFound              = New("stake not found")
	ErrInsufficientFunds     = New("insufficient funds")
	ErrInsufficientPoolFunds = New("insufficient reward pool funds")
	ErrOverflow              = New("arithmetic overflow")
	ErrUnauthorized          = New("unauthorized")
	ErrInvalidInput          = New("invalid input")
	ErrClock                 = New("clock moved backwards")
	ErrPaused                = New("staking is paused")
	ErrExternalCall          = New("external call failed")
)

// As finds the revert in err's chain.
func As(err error) (*ErrRevert, bool) {
	var revert *ErrRevert
	if err == nil || !errors.As(err, &revert) {
		return nil, false
	}
	return revert, true
}

func IsRevertErr(err error) bool {
	_, ok := As(err)
	return ok
}
