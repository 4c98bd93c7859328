package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Trap controls the fatal-signal interception layer. BacktraceDepth is
// the capacity of the pre-allocated frame buffer; 0 disables the
// segmentation-fault backtrace.
type Trap struct {
	BacktraceDepth uint
}

func initTrap() {
	viper.SetDefault("trap.backtraceDepth", 64)
	_ = viper.BindEnv("trap.backtraceDepth", "SPINE_TRAP_BACKTRACE_DEPTH")
	pflag.Uint("trap.backtraceDepth", 64, `max stack frames captured on segmentation fault, 0 disables. Env "SPINE_TRAP_BACKTRACE_DEPTH"`)
}

func (t *Trap) setValue() {
	t.BacktraceDepth = viper.GetUint("trap.backtraceDepth")
}
