// monitor/monitor.go
package monitor

import (
	"expvar"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	PlayersOnline  prometheus.Gauge
	RoomsActive    prometheus.Gauge
	EventsReceived prometheus.Counter
	AnswerTime     prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		PlayersOnline: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "players_online",
			Help:      "Number of live player connections",
		}),
		RoomsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rooms_active",
			Help:      "Number of rooms in the registry",
		}),
		EventsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_received_total",
			Help:      "Total number of inbound client events",
		}),
		AnswerTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "answer_time_seconds",
			Help:      "Client-reported answer response time",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 7), // 0.25s .. 16s
		}),
	}

	prometheus.MustRegister(
		m.PlayersOnline,
		m.RoomsActive,
		m.EventsReceived,
		m.AnswerTime,
	)

	return m
}

type Monitor struct {
	metrics   *Metrics
	startTime time.Time
}

func NewMonitor(namespace string) *Monitor {
	return &Monitor{
		metrics:   NewMetrics(namespace),
		startTime: time.Now(),
	}
}

func (m *Monitor) StartServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/debug/vars", expvar.Handler())

	expvar.Publish("uptime", expvar.Func(func() interface{} {
		return time.Since(m.startTime).Seconds()
	}))

	go http.ListenAndServe(addr, mux)
}

func (m *Monitor) IncPlayersOnline() {
	m.metrics.PlayersOnline.Inc()
}

func (m *Monitor) DecPlayersOnline() {
	m.metrics.PlayersOnline.Dec()
}

func (m *Monitor) SetRoomsActive(count int) {
	m.metrics.RoomsActive.Set(float64(count))
}

func (m *Monitor) IncEventsReceived() {
	m.metrics.EventsReceived.Inc()
}

func (m *Monitor) ObserveAnswerTime(duration time.Duration) {
	m.metrics.AnswerTime.Observe(duration.Seconds())
}
