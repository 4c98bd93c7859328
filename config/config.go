package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cacti/spine/version"
)

type Config struct {
	ConfigFile string
	Debug      bool
	Port       int
	LogLevel   string
	EnableGzip bool
	Cors       CorsConfig
	Log        Log
	Monitor    Monitor
	Trap       Trap
}

var (
	Conf *Config
)

func Init() {
	viper.SetConfigType("toml")
	viper.SetConfigName("spine")
	viper.AddConfigPath("/etc/spine")
	viper.AddConfigPath(".")
	cp := pflag.StringP("config", "c", "", "config path default /etc/spine/spine.toml")
	v := pflag.Bool("version", false, "Print the version and exit")
	help := pflag.Bool("help", false, "Print this help message and exit")
	pflag.Parse()
	if *help {
		fmt.Fprintf(os.Stderr, "Usage of spine v%s-%s:\n", version.Version, version.CommitID)
		pflag.PrintDefaults()
		os.Exit(0)
	}
	if *v {
		fmt.Printf("spine v%s-%s\n", version.Version, version.CommitID)
		os.Exit(0)
	}
	if *cp != "" {
		viper.SetConfigFile(*cp)
	}
	viper.SetEnvPrefix("spine")
	err := viper.BindPFlags(pflag.CommandLine)
	if err != nil {
		panic(err)
	}
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Println("config file not found")
		} else {
			panic(err)
		}
	}
	Conf = &Config{
		ConfigFile: viper.ConfigFileUsed(),
		Debug:      viper.GetBool("debug"),
		Port:       viper.GetInt("port"),
		LogLevel:   viper.GetString("logLevel"),
		EnableGzip: viper.GetBool("enableGzip"),
	}
	Conf.Log.setValue()
	Conf.Cors.setValue()
	Conf.Monitor.setValue()
	Conf.Trap.setValue()
}

// GetDateFormat returns the layout used to stamp fatal-signal
// diagnostics, shared with the regular log formatter.
func GetDateFormat() string {
	if Conf != nil && Conf.Log.TimestampFormat != "" {
		return Conf.Log.TimestampFormat
	}
	return DefaultTimestampFormat
}

//arg > file > env
func init() {
	viper.SetDefault("debug", false)
	_ = viper.BindEnv("debug", "SPINE_DEBUG")
	pflag.Bool("debug", false, `enable debug mode. Env "SPINE_DEBUG"`)

	viper.SetDefault("port", 6163)
	_ = viper.BindEnv("port", "SPINE_PORT")
	pflag.IntP("port", "P", 6163, `http port. Env "SPINE_PORT"`)

	viper.SetDefault("logLevel", "info")
	_ = viper.BindEnv("logLevel", "SPINE_LOG_LEVEL")
	pflag.String("logLevel", "info", `log level (panic fatal error warn warning info debug trace). Env "SPINE_LOG_LEVEL"`)

	viper.SetDefault("enableGzip", false)
	_ = viper.BindEnv("enableGzip", "SPINE_ENABLE_GZIP")
	pflag.Bool("enableGzip", false, `enable http gzip response. Env "SPINE_ENABLE_GZIP"`)

	initLog()
	initCors()
	initMonitor()
	initTrap()

	err := viper.BindPFlags(pflag.CommandLine)
	if err != nil {
		panic(err)
	}
}
