package config

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Monitor struct {
	CollectDuration             time.Duration
	PausePollingMemoryThreshold float64
}

func initMonitor() {
	viper.SetDefault("monitor.collectDuration", time.Second*3)
	_ = viper.BindEnv("monitor.collectDuration", "SPINE_MONITOR_COLLECT_DURATION")
	pflag.Duration("monitor.collectDuration", time.Second*3, `Set monitor duration. Env "SPINE_MONITOR_COLLECT_DURATION"`)

	viper.SetDefault("monitor.pausePollingMemoryThreshold", 80)
	_ = viper.BindEnv("monitor.pausePollingMemoryThreshold", "SPINE_MONITOR_PAUSE_POLLING_MEMORY_THRESHOLD")
	pflag.Float64("monitor.pausePollingMemoryThreshold", 80, `Memory percentage threshold for pause polling. Env "SPINE_MONITOR_PAUSE_POLLING_MEMORY_THRESHOLD"`)
}

func (p *Monitor) setValue() {
	p.CollectDuration = viper.GetDuration("monitor.collectDuration")
	p.PausePollingMemoryThreshold = viper.GetFloat64("monitor.pausePollingMemoryThreshold")
}
