package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics รวม collector ของ API ไว้ใน registry เดียว
type Metrics struct {
	Registry        *prometheus.Registry
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	MailSent        *prometheus.CounterVec
	MailFailed      *prometheus.CounterVec
	HousekeepingRun *prometheus.CounterVec
}

// New สร้าง registry ใหม่ ใช้ registry แยกเพื่อให้ test สร้างได้หลายครั้ง
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		Registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kanban",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kanban",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		MailSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kanban",
			Name:      "mail_sent_total",
			Help:      "Emails handed to the mail transport.",
		}, []string{"kind"}),
		MailFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kanban",
			Name:      "mail_failed_total",
			Help:      "Emails that could not be delivered.",
		}, []string{"kind"}),
		HousekeepingRun: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kanban",
			Name:      "housekeeping_removed_total",
			Help:      "Rows purged by the housekeeping job.",
		}, []string{"target"}),
	}

	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.MailSent, m.MailFailed, m.HousekeepingRun)
	return m
}
