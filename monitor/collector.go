package monitor

import (
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"
)

type SysCollector interface {
	CpuPercent() (float64, error)
	MemPercent() (float64, error)
}

type ProcessInterface interface {
	Percent(interval time.Duration) (float64, error)
	MemoryPercent() (float32, error)
}

// NormalCollector samples the spine process itself.
type NormalCollector struct {
	p ProcessInterface
}

func NewNormalCollector() (*NormalCollector, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, errors.Wrap(err, "new process collector")
	}
	return &NormalCollector{p: p}, nil
}

func (n *NormalCollector) CpuPercent() (float64, error) {
	cpuPercent, err := n.p.Percent(0)
	if err != nil {
		return 0, errors.Wrap(err, "process cpu percent")
	}
	return cpuPercent / float64(runtime.NumCPU()), nil
}

func (n *NormalCollector) MemPercent() (float64, error) {
	memPercent, err := n.p.MemoryPercent()
	if err != nil {
		return 0, errors.Wrap(err, "process memory percent")
	}
	return float64(memPercent), nil
}
