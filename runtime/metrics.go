// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/gona-network/gonastake/builtin/staker"
	"github.com/gona-network/gonastake/metrics"
)

var (
	metricOpCount     = metrics.LazyLoadCounterVec("runtime_op_count", []string{"op", "status"})
	metricOpDuration  = metrics.LazyLoadHistogramVec("runtime_op_duration_ms", []string{"op"}, metrics.BucketHTTPReqs)
	metricPaidOut     = metrics.LazyLoadCounterVec("runtime_paid_out", []string{"recipient"})
	metricRewardPool  = metrics.LazyLoadGauge("runtime_reward_volume")
	metricTotalStaked = metrics.LazyLoadGauge("runtime_total_staked")
)

// observe refreshes the gauges after a commit.
func (r *Runtime) observe(e *env, receipt *staker.Receipt) {
	if !metrics.Enabled() {
		return
	}
	if tr := receipt.Transfer; tr != nil {
		recipient := "admin"
		if tr.Staker != nil {
			recipient = "wallet"
		}
		metricPaidOut().AddWithLabel(int64(tr.Amount), map[string]string{"recipient": recipient})
	}
	if volume, err := e.staker.RewardVolume(); err == nil {
		metricRewardPool().Set(int64(volume))
	}
	if total, err := e.staker.TotalStaked(); err == nil {
		metricTotalStaked().Set(int64(total))
	}
}
