package monitor

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cacti/spine/config"
)

type mockProcess struct {
	cpuPercent float64
	memPercent float32
	errCpu     error
	errMem     error
}

func (m *mockProcess) Percent(interval time.Duration) (float64, error) {
	return m.cpuPercent, m.errCpu
}

func (m *mockProcess) MemoryPercent() (float32, error) {
	return m.memPercent, m.errMem
}

func TestNormalCollector(t *testing.T) {
	tests := []struct {
		name         string
		cpuPercent   float64
		memPercent   float32
		mockErrCpu   error
		mockErrMem   error
		expectedCpu  float64
		expectedMem  float64
		expectCpuErr bool
		expectMemErr bool
	}{
		{
			name:        "success",
			cpuPercent:  5000,
			memPercent:  20,
			expectedCpu: 5000 / float64(runtime.NumCPU()),
			expectedMem: 20,
		},
		{
			name:         "cpu error",
			mockErrCpu:   errors.New("cpu error"),
			expectCpuErr: true,
		},
		{
			name:         "memory error",
			mockErrMem:   errors.New("memory error"),
			expectMemErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector := &NormalCollector{p: &mockProcess{
				cpuPercent: tt.cpuPercent,
				memPercent: tt.memPercent,
				errCpu:     tt.mockErrCpu,
				errMem:     tt.mockErrMem,
			}}
			cpu, err := collector.CpuPercent()
			if tt.expectCpuErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedCpu, cpu)
			}
			mem, err := collector.MemPercent()
			if tt.expectMemErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedMem, mem)
			}
		})
	}
}

func TestSysMonitorFanOut(t *testing.T) {
	s := &sysMonitor{status: &SysStatus{}, collector: &NormalCollector{p: &mockProcess{cpuPercent: 100, memPercent: 10}}}
	c := make(chan SysStatus, 1)
	s.Register(c)
	defer s.Deregister(c)

	s.collect()
	status := <-c
	assert.NoError(t, status.CpuError)
	assert.NoError(t, status.MemError)
	assert.Equal(t, float64(10), status.MemPercent)
	assert.Greater(t, status.GoroutineCounts, 0)
	assert.Equal(t, status, s.LastStatus())
}

func TestApplyMemoryStatus(t *testing.T) {
	config.Conf = &config.Config{
		Monitor: config.Monitor{
			CollectDuration:             time.Second,
			PausePollingMemoryThreshold: 80,
		},
	}

	applyMemoryStatus(SysStatus{MemPercent: 90})
	assert.True(t, PollingPaused())

	// collection errors never flip the state
	applyMemoryStatus(SysStatus{MemPercent: 10, MemError: errors.New("mem error")})
	assert.True(t, PollingPaused())

	applyMemoryStatus(SysStatus{MemPercent: 10})
	assert.False(t, PollingPaused())
}
