package models

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	objectTypeLabel = "object_type"
)

var (
	objectCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ringsmapeditor_object_count",
		Help: "The number of objects in the level.",
	}, []string{objectTypeLabel})

	objectCountTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ringsmapeditor_object_count_total",
		Help: "The total number of objects added to the level.",
	}, []string{objectTypeLabel})
)

func instrumentObjectAdded(t ObjectType) {
	objectCount.
		With(prometheus.Labels{objectTypeLabel: t.String()}).
		Inc()
	objectCountTotal.
		With(prometheus.Labels{objectTypeLabel: t.String()}).
		Inc()
}

func instrumentObjectRemoved(t ObjectType) {
	objectCount.
		With(prometheus.Labels{objectTypeLabel: t.String()}).
		Dec()
}
