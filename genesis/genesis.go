// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/state"
)

// the genesis ID is recorded here once the genesis state is committed
var (
	markerAddress = gona.NameToAddress("Genesis")
	markerKey     = gona.BytesToBytes32([]byte("id"))
)

// Genesis to build genesis state.
type Genesis struct {
	builder *Builder
	id      gona.Bytes32
	name    string
}

// Build commits the genesis state, unless it was committed before. It fails
// when the store was initialized with a different genesis.
func (g *Genesis) Build(stater *state.Stater) error {
	st := stater.NewState()
	existing, err := st.GetStorage(markerAddress, markerKey)
	if err != nil {
		return errors.Wrap(err, "load genesis marker")
	}
	if !existing.IsZero() {
		if existing != g.id {
			return errors.Errorf("genesis mismatch: store has %v, want %v", existing, g.id)
		}
		return nil
	}

	if err := g.builder.apply(st); err != nil {
		return err
	}
	st.SetStorage(markerAddress, markerKey, g.id)

	stage, err := st.Stage()
	if err != nil {
		return errors.Wrap(err, "stage")
	}
	if _, err := stage.Commit(); err != nil {
		return errors.Wrap(err, "commit genesis")
	}
	return nil
}

// ID returns genesis ID.
func (g *Genesis) ID() gona.Bytes32 {
	return g.id
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// IsBuilt reports whether the store holds a genesis state.
func IsBuilt(stater *state.Stater) (bool, error) {
	id, err := stater.NewState().GetStorage(markerAddress, markerKey)
	if err != nil {
		return false, err
	}
	return !id.IsZero(), nil
}
