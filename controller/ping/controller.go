package ping

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cacti/spine/controller"
	"github.com/cacti/spine/monitor"
)

type Controller struct {
}

func (c Controller) Init(r gin.IRouter) {
	r.GET("-/ping", func(c *gin.Context) {
		if monitor.PollingPaused() {
			c.Status(http.StatusServiceUnavailable)
			return
		}
		c.Status(http.StatusOK)
	})
}

func init() {
	r := &Controller{}
	controller.AddController(r)
}
