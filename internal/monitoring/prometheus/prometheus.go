package prometheus

import (
	"errors"
	"fmt"

	"github.com/canonical/scim-admin-ui/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

type Monitor struct {
	service string

	responseTime *prometheus.HistogramVec
	dependencies *prometheus.GaugeVec
	loaderEvents *prometheus.CounterVec

	logger logging.LoggerInterface
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) SetResponseTimeMetric(tags map[string]string, value float64) error {
	if m.responseTime == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.responseTime.With(m.labels(tags, "route", "status")).Observe(value)

	return nil
}

func (m *Monitor) SetDependencyAvailability(tags map[string]string, value float64) error {
	if m.dependencies == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.dependencies.With(m.labels(tags, "component")).Set(value)

	return nil
}

func (m *Monitor) IncLoaderEvent(tags map[string]string) error {
	if m.loaderEvents == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.loaderEvents.With(m.labels(tags, "binding", "event")).Inc()

	return nil
}

// labels keeps only the label names the vector was declared with, missing ones are left empty
func (m *Monitor) labels(tags map[string]string, names ...string) prometheus.Labels {
	l := prometheus.Labels{"service": m.service}

	for _, name := range names {
		l[name] = tags[name]
	}

	return l
}

func (m *Monitor) registerHistogram(h *prometheus.HistogramVec) *prometheus.HistogramVec {
	are := prometheus.AlreadyRegisteredError{}

	if err := prometheus.Register(h); err != nil {
		if errors.As(err, &are) {
			return are.ExistingCollector.(*prometheus.HistogramVec)
		}

		m.logger.Errorf("failed registering histogram: %s", err)
	}

	return h
}

func (m *Monitor) registerGauge(g *prometheus.GaugeVec) *prometheus.GaugeVec {
	are := prometheus.AlreadyRegisteredError{}

	if err := prometheus.Register(g); err != nil {
		if errors.As(err, &are) {
			return are.ExistingCollector.(*prometheus.GaugeVec)
		}

		m.logger.Errorf("failed registering gauge: %s", err)
	}

	return g
}

func (m *Monitor) registerCounter(c *prometheus.CounterVec) *prometheus.CounterVec {
	are := prometheus.AlreadyRegisteredError{}

	if err := prometheus.Register(c); err != nil {
		if errors.As(err, &are) {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}

		m.logger.Errorf("failed registering counter: %s", err)
	}

	return c
}

func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.logger = logger

	m.responseTime = m.registerHistogram(
		prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_response_time_seconds",
				Help: "http_response_time_seconds",
			},
			[]string{"route", "status", "service"},
		),
	)

	m.dependencies = m.registerGauge(
		prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dependency_available",
				Help: "dependency_available",
			},
			[]string{"component", "service"},
		),
	)

	m.loaderEvents = m.registerCounter(
		prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loader_events_total",
				Help: "cache hits, misses, joined and discarded fetches of route bound resources",
			},
			[]string{"binding", "event", "service"},
		),
	)

	return m
}
