package system

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"time"
	_ "time/tzdata" // load time zone data

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/kardianos/service"
	"github.com/spf13/viper"

	"github.com/cacti/spine/config"
	"github.com/cacti/spine/config/watch"
	"github.com/cacti/spine/controller"
	"github.com/cacti/spine/controller/status"
	"github.com/cacti/spine/log"
	"github.com/cacti/spine/monitor"
	"github.com/cacti/spine/sigtrap"
	"github.com/cacti/spine/tools/watcher"
	"github.com/cacti/spine/version"
)

var logger = log.GetLogger("SYS")

var testProg *program

// fatalTrap owns the process's fatal-signal dispositions; it is
// installed on service start and removed on graceful stop.
var fatalTrap *sigtrap.Trap

func Init() *gin.Engine {
	config.Init()
	log.ConfigLog()
	keys := viper.AllKeys()
	sort.Strings(keys)
	logger.Info("                     global config")
	logger.Info("=================================================================")
	for _, key := range keys {
		if key == "version" {
			continue
		}
		v := viper.Get(key)
		if v == "" {
			v = `""`
		}
		logger.Infof("%-45s%v", key, v)
	}
	logger.Infof("%-45s%v", "version", version.Version)
	logger.Infof("%-45s%v", "gitinfo", version.CommitID)
	logger.Infof("%-45s%v", "buildinfo", version.BuildInfo)
	logger.Info("=================================================================")

	logger.Infof("start server: %s", log.ServerID)
	diag := sigtrap.NewDiag(config.Conf.Trap.BacktraceDepth)
	fatalTrap = sigtrap.New(diag, config.GetDateFormat)
	status.SetDiag(diag)
	router := createRouter(config.Conf.Debug, &config.Conf.Cors, config.Conf.EnableGzip)
	controllers := controller.GetControllers()
	for _, webController := range controllers {
		webController.Init(router)
	}
	return router
}

func createRouter(debug bool, corsConf *config.CorsConfig, enableGzip bool) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(log.GinLog())
	router.Use(log.GinRecoverLog())
	if debug {
		pprof.Register(router)
	}
	if enableGzip {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithDecompressFn(gzip.DefaultDecompressHandle)))
	}
	router.Use(cors.New(corsConf.GetConfig()))
	return router
}

func Start(router *gin.Engine, startHttpServer func(server *http.Server)) {
	var w *watcher.Watcher
	if config.Conf.ConfigFile != "" {
		var err error
		w, err = watcher.NewWatcher(logger, watch.OnConfigChange, config.Conf.ConfigFile)
		if err != nil {
			logger.Fatal("watcher init failed: ", err)
		}
	}
	prg := newProgram(router, startHttpServer, w)
	svcConfig := &service.Config{
		Name:        "spine",
		DisplayName: "spine",
		Description: "Spine is a supplemental data collector for Cacti.",
	}
	s, err := service.New(prg, svcConfig)
	if err != nil {
		logger.Fatal(err)
	}
	testProg = prg
	err = s.Run()
	if err != nil {
		logger.Fatal(err)
	}
}

type program struct {
	router          *gin.Engine
	server          *http.Server
	startHttpServer func(server *http.Server)
	watcher         *watcher.Watcher
}

func newProgram(router *gin.Engine, startHttpServer func(server *http.Server), w *watcher.Watcher) *program {
	server := &http.Server{
		Addr:    ":" + strconv.Itoa(config.Conf.Port),
		Handler: router,
	}
	return &program{router: router, server: server, startHttpServer: startHttpServer, watcher: w}
}

func (p *program) Start(s service.Service) error {
	if service.Interactive() {
		logger.Info("Running in terminal.")
	} else {
		logger.Info("Running under service manager.")
	}
	fatalTrap.Install()
	monitor.StartMonitor()
	logger.Printf("server on: %d", config.Conf.Port)
	go p.startHttpServer(p.server)
	return nil
}

func (p *program) Stop(s service.Service) error {
	logger.Println("Uninstall signal traps ...")
	fatalTrap.Uninstall()
	logger.Println("Shutdown WebServer ...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go func() {
		if err := p.server.Shutdown(ctx); err != nil {
			logger.Println("WebServer Shutdown error:", err)
		}
	}()
	if p.watcher != nil {
		logger.Println("Close Watcher ...")
		err := p.watcher.Close()
		if err != nil {
			logger.Println("Watcher Close error:", err)
		}
	}
	logger.Println("Server exiting")
	ctxLog, cancelLog := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelLog()
	logger.Println("Flushing Log")
	log.Close(ctxLog)
	return nil
}
