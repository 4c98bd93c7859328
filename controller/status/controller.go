package status

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"

	"github.com/cacti/spine/controller"
	"github.com/cacti/spine/monitor"
	"github.com/cacti/spine/sigtrap"
	"github.com/cacti/spine/version"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var startAt = time.Now()

var diag *sigtrap.Diag

// SetDiag hands the controller the process diagnostic state so the
// last fatal code shows up in the status report.
func SetDiag(d *sigtrap.Diag) {
	diag = d
}

type Status struct {
	Version       string    `json:"version"`
	CommitID      string    `json:"commit_id"`
	BuildInfo     string    `json:"build_info"`
	Pid           int       `json:"pid"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	PollingPaused bool      `json:"polling_paused"`
	LastFatalCode int       `json:"last_fatal_code"`
	CollectTime   time.Time `json:"collect_time"`
	CpuPercent    float64   `json:"cpu_percent"`
	MemPercent    float64   `json:"mem_percent"`
	Goroutines    int       `json:"goroutines"`
	Threads       int       `json:"threads"`
}

type Controller struct {
}

func (c Controller) Init(r gin.IRouter) {
	r.GET("-/status", func(c *gin.Context) {
		sys := monitor.SysMonitor.LastStatus()
		status := Status{
			Version:       version.Version,
			CommitID:      version.CommitID,
			BuildInfo:     version.BuildInfo,
			Pid:           os.Getpid(),
			UptimeSeconds: int64(time.Since(startAt).Seconds()),
			PollingPaused: monitor.PollingPaused(),
			CollectTime:   sys.CollectTime,
			CpuPercent:    sys.CpuPercent,
			MemPercent:    sys.MemPercent,
			Goroutines:    sys.GoroutineCounts,
			Threads:       sys.ThreadCounts,
		}
		if diag != nil {
			status.LastFatalCode = diag.ExitCode()
		}
		b, err := json.Marshal(status)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", b)
	})
}

func init() {
	r := &Controller{}
	controller.AddController(r)
}
