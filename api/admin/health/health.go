// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"

	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/runtime"
)

// MaxClockDrift is the largest local clock offset considered healthy.
// Stake times are taken from the local clock.
const MaxClockDrift = time.Minute

type Status struct {
	Healthy      bool         `json:"healthy"`
	GenesisID    gona.Bytes32 `json:"genesisID"`
	Time         uint64       `json:"time"`
	ClockDriftMs int64        `json:"clockDriftMs"`
	Error        string       `json:"error,omitempty"`
}

// Health tracks the node state reported by the health endpoint.
type Health struct {
	lock      sync.RWMutex
	rt        *runtime.Runtime
	genesisID gona.Bytes32
	drift     time.Duration
}

func New(rt *runtime.Runtime, genesisID gona.Bytes32) *Health {
	return &Health{rt: rt, genesisID: genesisID}
}

// SetClockDrift records the offset of the local clock from a reference clock.
func (h *Health) SetClockDrift(d time.Duration) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.drift = d
}

func (h *Health) Status() *Status {
	h.lock.RLock()
	drift := h.drift
	h.lock.RUnlock()

	s := &Status{
		Healthy:      true,
		GenesisID:    h.genesisID,
		Time:         h.rt.Now(),
		ClockDriftMs: drift.Milliseconds(),
	}
	if _, err := h.rt.Config(); err != nil {
		s.Healthy = false
		s.Error = err.Error()
	}
	if drift > MaxClockDrift || drift < -MaxClockDrift {
		s.Healthy = false
	}
	return s
}
