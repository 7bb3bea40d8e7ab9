package historial

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"lab-semillas/internal/domain/analisis"
	"lab-semillas/internal/domain/usuarios"
	"lab-semillas/internal/platform/logger"
	"lab-semillas/internal/ports/auth"

	"github.com/google/uuid"
)

// Motivos por los que una entrada de auditoría no se guardó.
const (
	MotivoSinSesion          = "sin_sesion"
	MotivoUsuarioDesconocido = "usuario_desconocido"
	MotivoErrorUsuario       = "error_usuario"
	MotivoErrorRepositorio   = "error_repositorio"
)

type Metricas interface {
	AuditoriaOmitida(motivo string)
}

type Options struct {
	Metricas Metricas
	Logger   logger.Logger
}

// Recorder implementa analisis.Auditor. Es best-effort: ningún fallo
// (sesión, usuario, storage, panic) llega a la operación que lo invocó.
type Recorder struct {
	repo     Repository
	usuarios usuarios.Repository
	metricas Metricas
	log      logger.Logger

	now   func() time.Time
	newID func() string
}

func NewRecorder(repo Repository, usrs usuarios.Repository, opts Options) *Recorder {
	r := &Recorder{
		repo:     repo,
		usuarios: usrs,
		metricas: opts.Metricas,
		log:      opts.Logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	if r.metricas == nil {
		r.metricas = nopMetricas{}
	}
	if r.log == nil {
		r.log = logger.Discard()
	}
	return r
}

var _ analisis.Auditor = (*Recorder)(nil)

func (r *Recorder) RegistrarCreacion(ctx context.Context, actor auth.ActorContext, a *analisis.Analisis) {
	r.registrar(ctx, actor, a, AccionCreacion)
}

func (r *Recorder) RegistrarModificacion(ctx context.Context, actor auth.ActorContext, a *analisis.Analisis) {
	r.registrar(ctx, actor, a, AccionModificacion)
}

func (r *Recorder) registrar(ctx context.Context, actor auth.ActorContext, a *analisis.Analisis, accion Accion) {
	log := logger.FromContext(ctx, r.log)
	defer func() {
		if p := recover(); p != nil {
			r.metricas.AuditoriaOmitida(MotivoErrorRepositorio)
			log.Error("audit record panicked", logger.Fields{"accion": string(accion), "panic": fmt.Sprint(p)})
		}
	}()

	if a == nil || !a.Ref().Valida() {
		return
	}
	campos := logger.Fields{
		"accion":      string(accion),
		"tipo":        string(a.Tipo),
		"analisis_id": a.ID,
	}

	username, ok := auth.Username(actor)
	if !ok {
		r.metricas.AuditoriaOmitida(MotivoSinSesion)
		log.Debug("audit skipped: no session", campos)
		return
	}

	u, err := r.usuarios.GetByUsername(ctx, username)
	if err != nil {
		campos["username"] = username
		if errors.Is(err, usuarios.ErrNotFound) {
			r.metricas.AuditoriaOmitida(MotivoUsuarioDesconocido)
			log.Debug("audit skipped: unknown user", campos)
			return
		}
		campos["err"] = err
		r.metricas.AuditoriaOmitida(MotivoErrorUsuario)
		log.Warn("audit skipped: user lookup failed", campos)
		return
	}

	uid := u.ID
	entrada := Entrada{
		ID:        r.newID(),
		Analisis:  a.Ref(),
		UsuarioID: &uid,
		Username:  u.Username,
		Accion:    accion,
		Estado:    a.Estado,
		FechaHora: r.now().UTC(),
	}
	if err := r.repo.Create(ctx, entrada); err != nil {
		campos["err"] = err
		r.metricas.AuditoriaOmitida(MotivoErrorRepositorio)
		log.Error("audit record failed", campos)
	}
}

// ObtenerHistorialAnalisis devuelve el historial de un análisis, más reciente primero.
func (r *Recorder) ObtenerHistorialAnalisis(ctx context.Context, ref analisis.Ref) ([]Entrada, error) {
	if !ref.Valida() {
		return []Entrada{}, nil
	}
	out, err := r.repo.ListByAnalisis(ctx, ref)
	if err != nil {
		return nil, err
	}
	return masRecientePrimero(out), nil
}

// ObtenerHistorialUsuario devuelve lo que hizo un usuario, más reciente primero.
func (r *Recorder) ObtenerHistorialUsuario(ctx context.Context, usuarioID int64) ([]Entrada, error) {
	if usuarioID <= 0 {
		return []Entrada{}, nil
	}
	out, err := r.repo.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	return masRecientePrimero(out), nil
}

// masRecientePrimero recibe en orden de inserción. Con FechaHora empatada
// queda primero la última insertada.
func masRecientePrimero(in []Entrada) []Entrada {
	if in == nil {
		return []Entrada{}
	}
	slices.Reverse(in)
	sort.SliceStable(in, func(i, j int) bool {
		return in[i].FechaHora.After(in[j].FechaHora)
	})
	return in
}

type nopMetricas struct{}

func (nopMetricas) AuditoriaOmitida(string) {}
