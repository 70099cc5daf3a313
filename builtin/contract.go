// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/gona-network/gonastake/gona"
)

type contract struct {
	name    string
	Address gona.Address
}

func newContract(name string, addr gona.Address) *contract {
	return &contract{name, addr}
}

// Name returns the contract name.
func (c *contract) Name() string {
	return c.name
}
