package log

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "spine_http_request_in_flight",
		Help: "Number of http requests currently being served",
	})
	RequestSummary = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name: "spine_http_request_milliseconds",
		Help: "Http request latency in milliseconds",
	}, []string{"request_method", "request_uri"})
	TotalRequest = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "spine_http_request_total",
		Help: "Total number of http requests",
	}, []string{"status_code", "client_ip", "request_method", "request_uri"})
	FailRequest = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "spine_http_request_fail",
		Help: "Number of failed http requests",
	}, []string{"status_code", "client_ip", "request_method", "request_uri"})
)

func init() {
	prometheus.MustRegister(RequestInFlight, RequestSummary, TotalRequest, FailRequest)
}
