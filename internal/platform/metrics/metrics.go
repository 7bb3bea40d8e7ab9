package metrics

import (
	"errors"
	"net/http"

	"lab-semillas/internal/domain/analisis"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implementa los puertos de métricas del workflow y de la auditoría
// sobre un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	transiciones        *prometheus.CounterVec
	auditoriaOmitida    *prometheus.CounterVec
	notificacionFallida *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transiciones: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lab_workflow_operations_total",
			Help: "Workflow operations by analysis type, operation and result.",
		}, []string{"tipo", "operacion", "resultado"}),
		auditoriaOmitida: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lab_audit_skipped_total",
			Help: "History entries that were not recorded, by reason.",
		}, []string{"motivo"}),
		notificacionFallida: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lab_notifications_failed_total",
			Help: "Workflow notifications that failed to dispatch.",
		}, []string{"evento"}),
	}

	m.registry.MustRegister(
		m.transiciones,
		m.auditoriaOmitida,
		m.notificacionFallida,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Transicion(tipo analisis.Tipo, operacion string, err error) {
	m.transiciones.WithLabelValues(string(tipo), operacion, resultadoDe(err)).Inc()
}

func (m *Metrics) NotificacionFallida(evento analisis.EventoTipo) {
	m.notificacionFallida.WithLabelValues(string(evento)).Inc()
}

func (m *Metrics) AuditoriaOmitida(motivo string) {
	m.auditoriaOmitida.WithLabelValues(motivo).Inc()
}

// Handler expone /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func resultadoDe(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, analisis.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, analisis.ErrNotFound):
		return "not_found"
	case errors.Is(err, analisis.ErrConflict):
		return "conflict"
	case errors.Is(err, analisis.ErrValidation):
		return "validation"
	case errors.Is(err, analisis.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}
