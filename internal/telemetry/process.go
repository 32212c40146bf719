package telemetry

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessSampler reads the current process's resident memory and CPU share.
// CPU is measured since the previous call, so the first sample reports 0.
type ProcessSampler struct {
	proc  *process.Process
	cores int
}

func NewProcessSampler() (*ProcessSampler, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("open process %d: %w", os.Getpid(), err)
	}
	return &ProcessSampler{proc: proc, cores: runtime.NumCPU()}, nil
}

func (p *ProcessSampler) Sample(ctx context.Context) (Sample, error) {
	mem, err := p.proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return Sample{}, fmt.Errorf("memory info: %w", err)
	}
	cpu, err := p.proc.PercentWithContext(ctx, 0)
	if err != nil {
		return Sample{}, fmt.Errorf("cpu percent: %w", err)
	}
	cores := p.cores
	if cores < 1 {
		cores = 1
	}
	return Sample{RSS: mem.RSS, CPUPercent: cpu / float64(cores)}, nil
}
