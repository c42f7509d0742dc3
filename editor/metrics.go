package editor

import (
	"github.com/aukilabs/ringsmapeditor/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	modeLabel              = "mode"
	stateLabel             = "state"
	objectTypeLabel        = "object_type"
	triggerVolumeTypeLabel = "trigger_volume_type"
)

var (
	modeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ringsmapeditor_editor_mode_toggles_total",
		Help: "The total number of editor mode state changes.",
	}, []string{modeLabel, stateLabel})

	placements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ringsmapeditor_editor_placements_total",
		Help: "The total number of objects placed in Build Mode.",
	}, []string{objectTypeLabel})

	selections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ringsmapeditor_editor_selections_total",
		Help: "The total number of objects selected in Edit Mode.",
	}, []string{objectTypeLabel})

	conversions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ringsmapeditor_editor_conversions_total",
		Help: "The total number of preview trigger volume conversions.",
	}, []string{triggerVolumeTypeLabel})
)

func instrumentModeToggle(mode string, enabled bool) {
	state := "disabled"
	if enabled {
		state = "enabled"
	}

	modeToggles.
		With(prometheus.Labels{modeLabel: mode, stateLabel: state}).
		Inc()
}

func instrumentPlacement(t models.ObjectType) {
	placements.
		With(prometheus.Labels{objectTypeLabel: t.String()}).
		Inc()
}

func instrumentSelection(t models.ObjectType) {
	selections.
		With(prometheus.Labels{objectTypeLabel: t.String()}).
		Inc()
}

func instrumentConversion(t models.TriggerVolumeType) {
	conversions.
		With(prometheus.Labels{triggerVolumeTypeLabel: t.String()}).
		Inc()
}
