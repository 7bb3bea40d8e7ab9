package redispub

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"lab-semillas/internal/domain/analisis"

	"github.com/go-redis/redis/v8"
)

type fakePublisher struct {
	channel string
	payload []byte
	err     error
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	f.payload, _ = message.([]byte)
	return redis.NewIntResult(1, f.err)
}

func TestNotificar_PublishesJSON(t *testing.T) {
	pub := &fakePublisher{}
	n := NewNotificador(pub, "")

	ev := analisis.Evento{
		Tipo:       analisis.EventoFinalizado,
		Analisis:   analisis.Ref{Tipo: analisis.TipoPureza, ID: 4},
		LoteID:     2,
		Estado:     analisis.EstadoPendienteAprobacion,
		Username:   "ana",
		OcurridoEn: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := n.Notificar(context.Background(), ev); err != nil {
		t.Fatalf("notificar: %v", err)
	}
	if pub.channel != "lab-semillas.workflow" {
		t.Fatalf("unexpected channel %q", pub.channel)
	}

	var got map[string]any
	if err := json.Unmarshal(pub.payload, &got); err != nil {
		t.Fatalf("payload is not json: %v", err)
	}
	if got["evento"] != "ANALISIS_FINALIZADO" || got["tipo"] != "PUREZA" || got["analisis_id"] != float64(4) {
		t.Fatalf("unexpected payload %v", got)
	}
}

func TestNotificar_WrapsPublishError(t *testing.T) {
	n := NewNotificador(&fakePublisher{err: errors.New("connection refused")}, "canal")
	err := n.Notificar(context.Background(), analisis.Evento{Tipo: analisis.EventoAprobado})
	if err == nil {
		t.Fatalf("expected publish error")
	}
}
