package plugin

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	modeLabel      = "mode"
	operationLabel = "operation"
	resultLabel    = "result"

	levelSave = "save"
	levelLoad = "load"
)

var (
	modeSwitches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ringsmapeditor_mode_switches_total",
		Help: "The total number of switches to a plugin mode.",
	}, []string{modeLabel})

	levelIO = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ringsmapeditor_level_io_total",
		Help: "The total number of level saves and loads.",
	}, []string{operationLabel, resultLabel})
)

func instrumentModeSwitch(m Mode) {
	modeSwitches.
		With(prometheus.Labels{modeLabel: m.String()}).
		Inc()
}

func instrumentLevelIO(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}

	levelIO.
		With(prometheus.Labels{
			operationLabel: operation,
			resultLabel:    result,
		}).
		Inc()
}
