package redispub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lab-semillas/internal/domain/analisis"

	"github.com/go-redis/redis/v8"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

// Connect abre el cliente y verifica la conexión con PING.
func Connect(cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     20,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
		IdleTimeout:  5 * time.Minute,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// Publisher es lo único que usamos de *redis.Client.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Notificador publica los eventos del workflow en un canal Redis.
// La entrega (mail, push) es responsabilidad de otro servicio suscripto.
type Notificador struct {
	client  Publisher
	channel string
	timeout time.Duration
}

func NewNotificador(client Publisher, channel string) *Notificador {
	if channel == "" {
		channel = "lab-semillas.workflow"
	}
	return &Notificador{client: client, channel: channel, timeout: 2 * time.Second}
}

var _ analisis.Notificador = (*Notificador)(nil)

type mensaje struct {
	Evento     analisis.EventoTipo `json:"evento"`
	Tipo       analisis.Tipo       `json:"tipo"`
	AnalisisID int64               `json:"analisis_id"`
	LoteID     int64               `json:"lote_id"`
	Estado     analisis.Estado     `json:"estado"`
	Username   string              `json:"username,omitempty"`
	OcurridoEn time.Time           `json:"ocurrido_en"`
}

func (n *Notificador) Notificar(ctx context.Context, ev analisis.Evento) error {
	payload, err := json.Marshal(mensaje{
		Evento:     ev.Tipo,
		Tipo:       ev.Analisis.Tipo,
		AnalisisID: ev.Analisis.ID,
		LoteID:     ev.LoteID,
		Estado:     ev.Estado,
		Username:   ev.Username,
		OcurridoEn: ev.OcurridoEn.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// La transición ya está persistida: no dejamos que un Redis lento la demore.
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Tipo, err)
	}
	return nil
}
