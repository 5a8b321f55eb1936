// Package system reports process resource usage for the optional session
// statistics summary.
package system

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"
)

// Snapshot is a point-in-time view of this process.
type Snapshot struct {
	CPUPercent float64
	RSSBytes   uint64
	Goroutines int
}

// Capture reads the current process stats. Failures are soft: the snapshot
// still carries what could be read.
func Capture() (Snapshot, error) {
	snap := Snapshot{Goroutines: runtime.NumGoroutine()}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return snap, err
	}
	if cpu, err := proc.CPUPercent(); err == nil {
		snap.CPUPercent = cpu
	}
	if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
		snap.RSSBytes = mem.RSS
	}
	return snap, nil
}

// Log writes the snapshot through the session logger.
func (s Snapshot) Log(log *zap.Logger) {
	log.Info("Process resource usage",
		zap.Float64("cpuPercent", s.CPUPercent),
		zap.Uint64("rssBytes", s.RSSBytes),
		zap.Int("goroutines", s.Goroutines))
}
