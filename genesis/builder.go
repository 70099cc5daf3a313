// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/lvldb"
	"github.com/gona-network/gonastake/state"
)

// Builder helper to build genesis state.
type Builder struct {
	stateProcs []func(state *state.State) error
}

// State add a state process
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

func (b *Builder) apply(st *state.State) error {
	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return errors.Wrap(err, "state process")
		}
	}
	return nil
}

// ComputeID compute genesis ID, the hash of the genesis change set.
func (b *Builder) ComputeID() (gona.Bytes32, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return gona.Bytes32{}, err
	}
	defer db.Close()

	st := state.NewStater(db, 0).NewState()
	if err := b.apply(st); err != nil {
		return gona.Bytes32{}, err
	}
	stage, err := st.Stage()
	if err != nil {
		return gona.Bytes32{}, err
	}
	return stage.Hash(), nil
}
