package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values are bounded: contact outcomes and HTTP route names only.
var (
	ProjectilesFired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trajectory_projectiles_fired_total",
		Help: "Projectiles handed to the engine",
	})

	ActiveProjectiles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "trajectory_active_projectiles",
		Help: "Projectiles tracked by the session",
	})

	Contacts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trajectory_contacts_total",
		Help: "Contacts evaluated by the landing detector",
	}, []string{"outcome"}) // ignored, already_landed, behind_origin, landed

	Resets = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trajectory_resets_total",
		Help: "Session resets, including resets caused by viewport resizes",
	})

	InvariantViolations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trajectory_invariant_violations_total",
		Help: "Events referencing projectiles the session does not track",
	})

	TickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trajectory_tick_duration_seconds",
		Help:    "Time spent in a simulation tick",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025},
	})

	CommandsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trajectory_commands_dropped_total",
		Help: "Commands rejected before reaching the session",
	}, []string{"reason"}) // rate_limit, queue_full

	EventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trajectory_events_dropped_total",
		Help: "Session events dropped because the outbound channel was full",
	})

	StreamClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "trajectory_stream_clients",
		Help: "Connected event stream clients",
	})

	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trajectory_http_requests_total",
		Help: "HTTP requests by route and status",
	}, []string{"route", "status"})
)
