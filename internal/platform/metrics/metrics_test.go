package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lab-semillas/internal/domain/analisis"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestTransicion_LabelsByResult(t *testing.T) {
	m := New()

	m.Transicion(analisis.TipoPureza, "aprobar", nil)
	m.Transicion(analisis.TipoPureza, "aprobar", analisis.ErrConflict)
	m.Transicion(analisis.TipoPureza, "aprobar", &analisis.InvalidStateError{Operacion: "aprobar"})
	m.Transicion(analisis.TipoPureza, "aprobar", errors.New("db down"))

	cases := map[string]float64{"ok": 1, "conflict": 1, "invalid_state": 1, "error": 1, "validation": 0}
	for resultado, want := range cases {
		got := testutil.ToFloat64(m.transiciones.WithLabelValues("PUREZA", "aprobar", resultado))
		if got != want {
			t.Fatalf("resultado %s: expected %v, got %v", resultado, want, got)
		}
	}
}

func TestHandler_ExposesCounters(t *testing.T) {
	m := New()
	m.AuditoriaOmitida("sin_sesion")
	m.NotificacionFallida(analisis.EventoAprobado)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{
		`lab_audit_skipped_total{motivo="sin_sesion"} 1`,
		`lab_notifications_failed_total{evento="ANALISIS_APROBADO"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in metrics output", want)
		}
	}
}
