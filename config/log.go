package config

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const DefaultTimestampFormat = "2006/01/02 15:04:05"

type Log struct {
	Path            string
	RotationCount   uint
	RotationTime    time.Duration
	RotationSize    uint
	TimestampFormat string
}

func initLog() {
	viper.SetDefault("log.path", "/var/log/spine")
	_ = viper.BindEnv("log.path", "SPINE_LOG_PATH")
	pflag.String("log.path", "/var/log/spine", `log path. Env "SPINE_LOG_PATH"`)

	viper.SetDefault("log.rotationCount", 30)
	_ = viper.BindEnv("log.rotationCount", "SPINE_LOG_ROTATION_COUNT")
	pflag.Uint("log.rotationCount", 30, `log rotation count. Env "SPINE_LOG_ROTATION_COUNT"`)

	viper.SetDefault("log.rotationTime", time.Hour*24)
	_ = viper.BindEnv("log.rotationTime", "SPINE_LOG_ROTATION_TIME")
	pflag.Duration("log.rotationTime", time.Hour*24, `log rotation time. Env "SPINE_LOG_ROTATION_TIME"`)

	viper.SetDefault("log.rotationSize", "1GB")
	_ = viper.BindEnv("log.rotationSize", "SPINE_LOG_ROTATION_SIZE")
	pflag.String("log.rotationSize", "1GB", `log rotation size(KB MB GB), must be a positive integer. Env "SPINE_LOG_ROTATION_SIZE"`)

	viper.SetDefault("log.timestampFormat", DefaultTimestampFormat)
	_ = viper.BindEnv("log.timestampFormat", "SPINE_LOG_TIMESTAMP_FORMAT")
	pflag.String("log.timestampFormat", DefaultTimestampFormat, `timestamp layout for log and fatal diagnostics. Env "SPINE_LOG_TIMESTAMP_FORMAT"`)
}

func (l *Log) setValue() {
	l.Path = viper.GetString("log.path")
	l.RotationCount = viper.GetUint("log.rotationCount")
	l.RotationTime = viper.GetDuration("log.rotationTime")
	l.RotationSize = viper.GetSizeInBytes("log.rotationSize")
	l.TimestampFormat = viper.GetString("log.timestampFormat")
}
