// Copyright (c) 2025 The Gona developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/state"
)

// Context binds storage helpers to a contract address within a state.
type Context struct {
	address gona.Address
	state   *state.State
}

func NewContext(address gona.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() gona.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
