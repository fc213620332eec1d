// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package perf

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricsSubSystemLayout = "layout"
	metricsSubSystemWS     = "ws"
)

type Metrics struct {
	registry *prometheus.Registry

	LayoutPasses            prometheus.Counter
	ActiveSpeakerChanges    prometheus.Counter
	PinRejections           prometheus.Counter
	InvariantViolations     prometheus.Counter
	StaleEventCounters      *prometheus.CounterVec
	LayoutSessions          prometheus.Gauge
	DroppedMessageCounters  *prometheus.CounterVec
	WSConnections           prometheus.Gauge
	WSMessageCounters       *prometheus.CounterVec
	WSMessageDecodeFailures prometheus.Counter
}

func NewMetrics(namespace string, registry *prometheus.Registry) *Metrics {
	var m Metrics

	if registry != nil {
		m.registry = registry
	} else {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{
			Namespace: namespace,
		}))
		m.registry.MustRegister(collectors.NewGoCollector())
	}

	m.LayoutPasses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: metricsSubSystemLayout,
			Name:      "passes_total",
			Help:      "Total number of layout passes",
		},
	)
	m.registry.MustRegister(m.LayoutPasses)

	m.ActiveSpeakerChanges = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: metricsSubSystemLayout,
			Name:      "active_speaker_changes_total",
			Help:      "Total number of active speaker changes",
		},
	)
	m.registry.MustRegister(m.ActiveSpeakerChanges)

	m.PinRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: metricsSubSystemLayout,
			Name:      "pin_rejections_total",
			Help:      "Total number of pin requests rejected because of the pin limit",
		},
	)
	m.registry.MustRegister(m.PinRejections)

	m.InvariantViolations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: metricsSubSystemLayout,
			Name:      "invariant_violations_total",
			Help:      "Total number of repaired display order violations",
		},
	)
	m.registry.MustRegister(m.InvariantViolations)

	m.StaleEventCounters = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: metricsSubSystemLayout,
			Name:      "stale_events_total",
			Help:      "Total number of events ignored because they referred to unknown participants",
		},
		[]string{"type"},
	)
	m.registry.MustRegister(m.StaleEventCounters)

	m.LayoutSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: metricsSubSystemLayout,
			Name:      "sessions_total",
			Help:      "Total number of active layout sessions",
		},
	)
	m.registry.MustRegister(m.LayoutSessions)

	m.DroppedMessageCounters = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: metricsSubSystemLayout,
			Name:      "dropped_messages_total",
			Help:      "Total number of inbound messages dropped by the rate limiter",
		},
		[]string{"type"},
	)
	m.registry.MustRegister(m.DroppedMessageCounters)

	m.WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: metricsSubSystemWS,
			Name:      "connections_total",
			Help:      "Total number of active WebSocket connections",
		},
	)
	m.registry.MustRegister(m.WSConnections)

	m.WSMessageCounters = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: metricsSubSystemWS,
			Name:      "messages_total",
			Help:      "Total number of sent/received WebSocket messages",
		},
		[]string{"type", "direction"},
	)
	m.registry.MustRegister(m.WSMessageCounters)

	m.WSMessageDecodeFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: metricsSubSystemWS,
			Name:      "decode_failures_total",
			Help:      "Total number of WebSocket messages that could not be decoded",
		},
	)
	m.registry.MustRegister(m.WSMessageDecodeFailures)

	return &m
}

func (m *Metrics) IncLayoutPasses() {
	m.LayoutPasses.Inc()
}

func (m *Metrics) IncActiveSpeakerChanges() {
	m.ActiveSpeakerChanges.Inc()
}

func (m *Metrics) IncPinRejections() {
	m.PinRejections.Inc()
}

func (m *Metrics) IncInvariantViolations() {
	m.InvariantViolations.Inc()
}

func (m *Metrics) IncStaleEvents(eventType string) {
	m.StaleEventCounters.With(prometheus.Labels{"type": eventType}).Inc()
}

func (m *Metrics) IncLayoutSessions() {
	m.LayoutSessions.Inc()
}

func (m *Metrics) DecLayoutSessions() {
	m.LayoutSessions.Dec()
}

func (m *Metrics) IncDroppedMessages(msgType string) {
	m.DroppedMessageCounters.With(prometheus.Labels{"type": msgType}).Inc()
}

func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}

func (m *Metrics) IncWSMessages(msgType, direction string) {
	m.WSMessageCounters.With(prometheus.Labels{"type": msgType, "direction": direction}).Inc()
}

func (m *Metrics) IncWSMessageDecodeFailures() {
	m.WSMessageDecodeFailures.Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
