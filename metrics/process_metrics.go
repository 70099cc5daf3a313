// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

//go:build linux

package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/procfs"
)

// ioCollector exports the storage counters of /proc/self/io. The leveldb
// store and the event log produce most of this traffic.
type ioCollector struct {
	proc  func() (procfs.Proc, error)
	descs [4]*prometheus.Desc
}

func newIOCollector() *ioCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "process", name), help, nil, nil)
	}
	return &ioCollector{
		proc: procfs.Self,
		descs: [4]*prometheus.Desc{
			desc("read_syscalls_total", "Read syscalls issued by the process."),
			desc("write_syscalls_total", "Write syscalls issued by the process."),
			desc("read_bytes_total", "Bytes fetched from the storage layer."),
			desc("write_bytes_total", "Bytes sent to the storage layer."),
		},
	}
}

func (c *ioCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range c.descs {
		ch <- d
	}
}

func (c *ioCollector) Collect(ch chan<- prometheus.Metric) {
	proc, err := c.proc()
	if err != nil {
		logger.Debug("unable to open procfs", "err", err)
		return
	}
	io, err := proc.IO()
	if err != nil {
		logger.Debug("unable to read process io", "err", err)
		return
	}
	for i, v := range [4]uint64{io.SyscR, io.SyscW, io.ReadBytes, io.WriteBytes} {
		ch <- prometheus.MustNewConstMetric(c.descs[i], prometheus.CounterValue, float64(v))
	}
}

var ioRegistered atomic.Bool

func registerIOCollector() {
	if ioRegistered.CompareAndSwap(false, true) {
		prometheus.MustRegister(newIOCollector())
	}
}
