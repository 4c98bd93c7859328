package main

import (
	"net"
	"net/http"

	_ "go.uber.org/automaxprocs"

	"github.com/cacti/spine/log"
	"github.com/cacti/spine/system"
)

var logger = log.GetLogger("main")

func main() {
	router := system.Init()
	system.Start(router, func(server *http.Server) {
		ln, err := net.Listen("tcp", server.Addr)
		if err != nil {
			logger.Fatalf("listen: %s", err)
		}
		if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("serve: %s", err)
		}
	})
}
