package monitor

import (
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type SysStatus struct {
	CollectTime     time.Time
	CpuPercent      float64
	CpuError        error
	MemPercent      float64
	MemError        error
	GoroutineCounts int
	ThreadCounts    int
}

var (
	cpuPercentGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "spine_cpu_percent",
		Help: "Process cpu usage percent",
	})
	memPercentGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "spine_mem_percent",
		Help: "Process memory usage percent",
	})
)

func init() {
	prometheus.MustRegister(cpuPercentGauge, memPercentGauge)
}

type sysMonitor struct {
	sync.Mutex
	collectDuration time.Duration
	collector       SysCollector
	status          *SysStatus
	outputs         map[chan<- SysStatus]struct{}
	ticker          *time.Ticker
}

func (s *sysMonitor) collect() {
	s.Lock()
	s.status.CollectTime = time.Now()
	s.status.CpuPercent, s.status.CpuError = s.collector.CpuPercent()
	s.status.MemPercent, s.status.MemError = s.collector.MemPercent()
	s.status.GoroutineCounts = runtime.NumGoroutine()
	s.status.ThreadCounts, _ = runtime.ThreadCreateProfile(nil)
	if s.status.CpuError == nil {
		cpuPercentGauge.Set(s.status.CpuPercent)
	}
	if s.status.MemError == nil {
		memPercentGauge.Set(s.status.MemPercent)
	}
	for output := range s.outputs {
		select {
		case output <- *s.status:
		default:
		}
	}
	s.Unlock()
}

func (s *sysMonitor) Register(c chan<- SysStatus) {
	s.Lock()
	if s.outputs == nil {
		s.outputs = map[chan<- SysStatus]struct{}{
			c: {},
		}
	} else {
		s.outputs[c] = struct{}{}
	}
	s.Unlock()
}

func (s *sysMonitor) Deregister(c chan<- SysStatus) {
	s.Lock()
	if s.outputs != nil {
		delete(s.outputs, c)
	}
	s.Unlock()
}

func (s *sysMonitor) LastStatus() SysStatus {
	s.Lock()
	defer s.Unlock()
	return *s.status
}

var SysMonitor = &sysMonitor{status: &SysStatus{}}

func Start(collectDuration time.Duration) {
	SysMonitor.collectDuration = collectDuration
	collector, err := NewNormalCollector()
	if err != nil {
		logger.WithError(err).Fatal("new normal collector")
	}
	SysMonitor.collector = collector
	SysMonitor.collect()
	SysMonitor.ticker = time.NewTicker(SysMonitor.collectDuration)
	go func() {
		for range SysMonitor.ticker.C {
			SysMonitor.collect()
		}
	}()
}
