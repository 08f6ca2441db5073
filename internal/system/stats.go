package system

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// HostInfo is a snapshot of the machine and of this process
type HostInfo struct {
	LogicalCPUs  int
	PhysicalCPUs int
	MemTotal     uint64
	MemAvailable uint64
	ProcessRSS   uint64
}

// ReadHostInfo collects what gopsutil can tell about the host. Fields that
// cannot be read on this platform stay zero.
func ReadHostInfo() HostInfo {
	info := HostInfo{LogicalCPUs: runtime.NumCPU()}

	if n, err := cpu.Counts(true); err == nil && n > 0 {
		info.LogicalCPUs = n
	}
	if n, err := cpu.Counts(false); err == nil {
		info.PhysicalCPUs = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.MemTotal = vm.Total
		info.MemAvailable = vm.Available
	}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := p.MemoryInfo(); err == nil {
			info.ProcessRSS = mi.RSS
		}
	}
	return info
}

// DefaultWorkers is one render worker per logical CPU
func DefaultWorkers() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// MaxInFlight bounds buffered frames so that they use at most a quarter of
// the available memory, never fewer than one per worker.
func MaxInFlight(workers, width, height int) int {
	n := 2 * workers
	vm, err := mem.VirtualMemory()
	if err != nil || width <= 0 || height <= 0 {
		return n
	}
	frame := uint64(width) * uint64(height) * 4
	if limit := int(vm.Available / 4 / frame); limit < n {
		n = max(limit, workers)
	}
	return n
}

// FormatBytes prints a size in MiB
func FormatBytes(b uint64) string {
	return fmt.Sprintf("%.1f MiB", float64(b)/(1<<20))
}
