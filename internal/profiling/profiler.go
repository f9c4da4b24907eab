// Package profiling captures CPU and heap profiles of a generation run.
package profiling

import (
	"os"
	"runtime"
	"runtime/pprof"

	meshErrors "github.com/Aman-CERP/meshidx/internal/errors"
)

// Profiler records the profiles requested on the command line.
// An empty path disables that profile.
type Profiler struct {
	cpuPath  string
	heapPath string
	cpuFile  *os.File
}

// NewProfiler creates a profiler for the given output paths.
func NewProfiler(cpuPath, heapPath string) *Profiler {
	return &Profiler{cpuPath: cpuPath, heapPath: heapPath}
}

// Enabled reports whether any profile was requested.
func (p *Profiler) Enabled() bool {
	return p.cpuPath != "" || p.heapPath != ""
}

// Start begins CPU profiling if a CPU profile path was set.
func (p *Profiler) Start() error {
	if p.cpuPath == "" {
		return nil
	}
	f, err := os.Create(p.cpuPath)
	if err != nil {
		return meshErrors.IOFailure(p.cpuPath, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return meshErrors.InternalError("failed to start CPU profile", err)
	}
	p.cpuFile = f
	return nil
}

// Stop ends CPU profiling and writes the heap profile. Safe to call
// when Start was never called.
func (p *Profiler) Stop() error {
	if p.cpuFile != nil {
		pprof.StopCPUProfile()
		err := p.cpuFile.Close()
		p.cpuFile = nil
		if err != nil {
			return meshErrors.IOFailure(p.cpuPath, err)
		}
	}
	if p.heapPath == "" {
		return nil
	}
	return writeHeap(p.heapPath)
}

func writeHeap(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return meshErrors.IOFailure(path, err)
	}
	defer func() { _ = f.Close() }()

	// Collect first so the profile shows live objects only.
	runtime.GC()

	if err := pprof.WriteHeapProfile(f); err != nil {
		return meshErrors.IOFailure(path, err)
	}
	return nil
}
