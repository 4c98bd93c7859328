package monitor

import (
	"sync/atomic"

	"github.com/cacti/spine/config"
	"github.com/cacti/spine/log"
)

var logger = log.GetLogger("monitor")

const (
	NormalStatus = uint32(0)
	PauseStatus  = uint32(1)
)

var pollingStatus = NormalStatus

// StartMonitor watches process memory and pauses polling work above
// the configured threshold, resuming once usage falls back.
func StartMonitor() {
	systemStatus := make(chan SysStatus)
	go func() {
		for status := range systemStatus {
			applyMemoryStatus(status)
		}
	}()
	SysMonitor.Register(systemStatus)
	Start(config.Conf.Monitor.CollectDuration)
}

func applyMemoryStatus(status SysStatus) {
	if status.MemError != nil {
		return
	}
	if status.MemPercent >= config.Conf.Monitor.PausePollingMemoryThreshold {
		if atomic.CompareAndSwapUint32(&pollingStatus, NormalStatus, PauseStatus) {
			logger.Warn("pause polling")
		}
	} else {
		if atomic.CompareAndSwapUint32(&pollingStatus, PauseStatus, NormalStatus) {
			logger.Warn("resume polling")
		}
	}
}

func PollingPaused() bool {
	return atomic.LoadUint32(&pollingStatus) == PauseStatus
}
