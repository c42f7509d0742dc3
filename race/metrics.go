package race

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	functionLabel       = "function"
	checkpointTypeLabel = "checkpoint_type"
)

var (
	raceTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ringsmapeditor_race_ticks_total",
		Help: "The total number of evaluated race ticks.",
	})

	triggerFires = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ringsmapeditor_race_trigger_fires_total",
		Help: "The total number of trigger functions run on cars.",
	}, []string{functionLabel})

	checkpointCrossings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ringsmapeditor_race_checkpoint_crossings_total",
		Help: "The total number of checkpoint changes.",
	}, []string{checkpointTypeLabel})

	ringPasses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ringsmapeditor_race_ring_passes_total",
		Help: "The total number of rings passed through.",
	})

	ringFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ringsmapeditor_race_ring_failures_total",
		Help: "The total number of rings driven around.",
	})

	teleports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ringsmapeditor_race_teleports_total",
		Help: "The total number of cars sent back to a checkpoint.",
	})

	raceTime = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ringsmapeditor_race_time_seconds",
		Help:    "The time of finished races.",
		Buckets: prometheus.ExponentialBuckets(5, 2, 8),
	})
)

func instrumentTick() {
	raceTicks.Inc()
}

func instrumentTriggerFire(function string) {
	triggerFires.
		With(prometheus.Labels{functionLabel: function}).
		Inc()
}

func instrumentCheckpointCrossing(checkpointType string) {
	checkpointCrossings.
		With(prometheus.Labels{checkpointTypeLabel: checkpointType}).
		Inc()
}

func instrumentRingPass() {
	ringPasses.Inc()
}

func instrumentRingFailure() {
	ringFailures.Inc()
}

func instrumentTeleport() {
	teleports.Inc()
}

func instrumentRaceTime(d time.Duration) {
	raceTime.Observe(d.Seconds())
}
