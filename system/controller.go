package system

import (
	_ "github.com/cacti/spine/controller/metrics"
	_ "github.com/cacti/spine/controller/ping"
)
