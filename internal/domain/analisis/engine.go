package analisis

import (
	"context"
	"fmt"
	"time"

	"lab-semillas/internal/platform/logger"
	"lab-semillas/internal/ports/auth"
)

// Auditor registra historial. Nunca devuelve error: la auditoría es best-effort.
type Auditor interface {
	RegistrarCreacion(ctx context.Context, actor auth.ActorContext, a *Analisis)
	RegistrarModificacion(ctx context.Context, actor auth.ActorContext, a *Analisis)
}

// Notificador despacha avisos de workflow (p.ej. "hay un análisis para aprobar").
type Notificador interface {
	Notificar(ctx context.Context, ev Evento) error
}

// Metricas observa el resultado de cada operación del workflow.
type Metricas interface {
	Transicion(tipo Tipo, operacion string, err error)
	NotificacionFallida(evento EventoTipo)
}

type EventoTipo string

const (
	EventoFinalizado EventoTipo = "ANALISIS_FINALIZADO"
	EventoAprobado   EventoTipo = "ANALISIS_APROBADO"
	EventoARepetir   EventoTipo = "ANALISIS_A_REPETIR"
)

type Evento struct {
	Tipo       EventoTipo
	Analisis   Ref
	LoteID     int64
	Estado     Estado
	Username   string
	OcurridoEn time.Time
}

type Options struct {
	Auditor     Auditor
	Notificador Notificador
	Metricas    Metricas
	Logger      logger.Logger
}

// Engine implementa la máquina de estados común a todos los subtipos.
// No conoce la persistencia: las variantes genéricas reciben accessor/mapper/validador por llamada.
type Engine struct {
	auditor     Auditor
	notificador Notificador
	metricas    Metricas
	log         logger.Logger
	now         func() time.Time
}

func NewEngine(opts Options) *Engine {
	e := &Engine{
		auditor:     opts.Auditor,
		notificador: opts.Notificador,
		metricas:    opts.Metricas,
		log:         opts.Logger,
		now:         time.Now,
	}
	if e.auditor == nil {
		e.auditor = nopAuditor{}
	}
	if e.metricas == nil {
		e.metricas = nopMetricas{}
	}
	if e.log == nil {
		e.log = logger.Discard()
	}
	return e
}

// transicion describe una arista de la máquina de estados.
type transicion struct {
	operacion string
	desde     []Estado
	evento    EventoTipo
	aplicar   func(e *Engine, actor auth.ActorContext, a *Analisis)
}

func (t transicion) verificar(a *Analisis) error {
	if a == nil {
		return ErrInvalidInput
	}
	if !a.Activo {
		return &InvalidStateError{Operacion: t.operacion, Requeridos: t.desde, Actual: a.Estado, Motivo: "requires an active analysis"}
	}
	for _, s := range t.desde {
		if a.Estado == s {
			return nil
		}
	}
	return &InvalidStateError{Operacion: t.operacion, Requeridos: t.desde, Actual: a.Estado}
}

var (
	trFinalizar = transicion{
		operacion: "finalizar",
		desde:     []Estado{EstadoRegistrado, EstadoEnProceso},
		evento:    EventoFinalizado,
		aplicar: func(e *Engine, actor auth.ActorContext, a *Analisis) {
			fin := e.now()
			a.FechaFin = &fin
			if auth.EsAnalista(actor) {
				a.Estado = EstadoPendienteAprobacion
			} else {
				a.Estado = EstadoAprobado
			}
		},
	}
	trAprobar = transicion{
		operacion: "aprobar",
		desde:     []Estado{EstadoPendienteAprobacion},
		evento:    EventoAprobado,
		aplicar: func(e *Engine, _ auth.ActorContext, a *Analisis) {
			fin := e.now()
			a.FechaFin = &fin
			a.Estado = EstadoAprobado
		},
	}
	trRepetir = transicion{
		operacion: "marcar para repetir",
		desde:     []Estado{EstadoRegistrado, EstadoEnProceso, EstadoPendienteAprobacion, EstadoAprobado},
		evento:    EventoARepetir,
		aplicar: func(_ *Engine, _ auth.ActorContext, a *Analisis) {
			a.Estado = EstadoARepetir
		},
	}
)

// EstablecerFechaInicio setea FechaInicio la primera vez. Idempotente.
func (e *Engine) EstablecerFechaInicio(a *Analisis) {
	if a == nil || a.FechaInicio != nil {
		return
	}
	inicio := e.now()
	a.FechaInicio = &inicio
}

// Finalizar cierra un análisis en memoria. El analista lo deja pendiente de aprobación;
// cualquier otro rol lo aprueba directamente.
func (e *Engine) Finalizar(ctx context.Context, actor auth.ActorContext, a *Analisis) error {
	return e.ejecutar(ctx, actor, trFinalizar, a)
}

// Aprobar requiere PENDIENTE_APROBACION.
func (e *Engine) Aprobar(ctx context.Context, actor auth.ActorContext, a *Analisis) error {
	return e.ejecutar(ctx, actor, trAprobar, a)
}

func (e *Engine) MarcarParaRepetir(ctx context.Context, actor auth.ActorContext, a *Analisis) error {
	return e.ejecutar(ctx, actor, trRepetir, a)
}

// ManejarEdicionFinalizado regresa un análisis APROBADO a PENDIENTE_APROBACION
// cuando lo edita un analista. Devuelve true si hubo cambio.
func (e *Engine) ManejarEdicionFinalizado(ctx context.Context, actor auth.ActorContext, a *Analisis) bool {
	if !regresarSiAprobado(actor, a) {
		return false
	}
	e.auditor.RegistrarModificacion(ctx, actor, a)
	return true
}

func regresarSiAprobado(actor auth.ActorContext, a *Analisis) bool {
	if a == nil || a.Estado != EstadoAprobado || !auth.EsAnalista(actor) {
		return false
	}
	a.Estado = EstadoPendienteAprobacion
	return true
}

func (e *Engine) ejecutar(ctx context.Context, actor auth.ActorContext, tr transicion, a *Analisis) (err error) {
	defer func() { e.observar(a, tr.operacion, err) }()

	if err := tr.verificar(a); err != nil {
		return err
	}
	tr.aplicar(e, actor, a)
	e.despuesDeTransicion(ctx, actor, tr, a)
	return nil
}

// despuesDeTransicion corre los side effects de una transición ya aplicada (y persistida,
// en las variantes genéricas): exactamente un registro de auditoría y la notificación.
func (e *Engine) despuesDeTransicion(ctx context.Context, actor auth.ActorContext, tr transicion, a *Analisis) {
	e.auditor.RegistrarModificacion(ctx, actor, a)
	if tr.evento != "" {
		e.notificar(ctx, actor, tr.evento, a)
	}
}

// notificar es fire-and-forget: errores y panics se loguean y se cuentan, nunca se propagan.
func (e *Engine) notificar(ctx context.Context, actor auth.ActorContext, tipo EventoTipo, a *Analisis) {
	if e.notificador == nil || a == nil {
		return
	}
	username, _ := auth.Username(actor)
	ev := Evento{
		Tipo:       tipo,
		Analisis:   a.Ref(),
		LoteID:     a.LoteID,
		Estado:     a.Estado,
		Username:   username,
		OcurridoEn: e.now(),
	}

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("notifier panic: %v", r)
			}
		}()
		err = e.notificador.Notificar(ctx, ev)
	}()
	if err == nil {
		return
	}

	e.metricas.NotificacionFallida(tipo)
	logger.FromContext(ctx, e.log).Warn("notification failed", logger.Fields{
		"evento":      string(tipo),
		"tipo":        string(a.Tipo),
		"analisis_id": a.ID,
		"err":         err,
	})
}

func (e *Engine) observar(a *Analisis, operacion string, err error) {
	var tipo Tipo
	if a != nil {
		tipo = a.Tipo
	}
	e.metricas.Transicion(tipo, operacion, err)
}

type nopAuditor struct{}

func (nopAuditor) RegistrarCreacion(context.Context, auth.ActorContext, *Analisis)     {}
func (nopAuditor) RegistrarModificacion(context.Context, auth.ActorContext, *Analisis) {}

type nopMetricas struct{}

func (nopMetricas) Transicion(Tipo, string, error) {}
func (nopMetricas) NotificacionFallida(EventoTipo) {}
