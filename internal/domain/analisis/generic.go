package analisis

import (
	"context"
	"fmt"

	"lab-semillas/internal/ports/auth"
)

// Accessor es la persistencia mínima que el workflow necesita de un subtipo.
// Save con ID 0 inserta; con ID existente actualiza comparando Version.
type Accessor[T Entidad] interface {
	FindByID(ctx context.Context, id int64) (T, bool, error)
	Save(ctx context.Context, e T) (T, error)
}

// Validador corre antes de mutar el estado. Su error se reporta como ErrValidation.
type Validador[T Entidad] func(T) error

// Mapper arma la representación de respuesta del subtipo, después de persistir.
type Mapper[T Entidad, R any] func(T) R

// ConsultaHermanos devuelve los análisis del mismo subtipo sobre un lote.
type ConsultaHermanos[T Entidad] func(ctx context.Context, loteID int64) ([]T, error)

// Transaccional lo implementan los accessors capaces de serializar operaciones por lote.
// AprobarGenerico lo usa para que el chequeo de hermanos y la escritura sean atómicos.
type Transaccional interface {
	EnLote(ctx context.Context, loteID int64, fn func(ctx context.Context) error) error
}

func cargar[T Entidad](ctx context.Context, acc Accessor[T], id int64) (T, error) {
	var zero T
	if id <= 0 {
		return zero, notFound(id)
	}
	e, ok, err := acc.FindByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, notFound(id)
	}
	return e, nil
}

func validar[T Entidad](v Validador[T], e T) error {
	if v == nil {
		return nil
	}
	return validationError(v(e))
}

func mapear[T Entidad, R any](m Mapper[T, R], e T) R {
	var out R
	if m == nil {
		return out
	}
	return m(e)
}

// ObtenerGenerico carga y mapea.
func ObtenerGenerico[T Entidad, R any](ctx context.Context, acc Accessor[T], id int64, m Mapper[T, R]) (R, error) {
	var out R
	e, err := cargar(ctx, acc, id)
	if err != nil {
		return out, err
	}
	return mapear(m, e), nil
}

// CrearGenerico persiste un análisis nuevo en REGISTRADO y registra la creación.
func CrearGenerico[T Entidad, R any](
	ctx context.Context,
	eng *Engine,
	actor auth.ActorContext,
	nuevo T,
	acc Accessor[T],
	v Validador[T],
	m Mapper[T, R],
) (out R, err error) {
	a := nuevo.Cabecera()
	defer func() { eng.observar(a, "crear", err) }()

	if a == nil || a.LoteID <= 0 {
		return out, fmt.Errorf("%w: lote is required", ErrInvalidInput)
	}
	a.ID = 0
	a.Estado = EstadoRegistrado
	a.Activo = true
	a.FechaInicio = nil
	a.FechaFin = nil
	a.Version = 0

	if err := validar(v, nuevo); err != nil {
		return out, err
	}

	guardado, err := acc.Save(ctx, nuevo)
	if err != nil {
		return out, err
	}
	eng.auditor.RegistrarCreacion(ctx, actor, guardado.Cabecera())
	return mapear(m, guardado), nil
}

// ActualizarGenerico aplica una edición de datos del subtipo.
// La primera medición pasa REGISTRADO a EN_PROCESO; editar un APROBADO como analista
// lo regresa a PENDIENTE_APROBACION. Registra exactamente una modificación.
func ActualizarGenerico[T Entidad, R any](
	ctx context.Context,
	eng *Engine,
	actor auth.ActorContext,
	id int64,
	acc Accessor[T],
	editar func(T) error,
	v Validador[T],
	m Mapper[T, R],
) (out R, err error) {
	var a *Analisis
	defer func() { eng.observar(a, "editar", err) }()

	e, err := cargar(ctx, acc, id)
	if err != nil {
		return out, err
	}
	a = e.Cabecera()
	if !a.Activo {
		return out, &InvalidStateError{Operacion: "editar", Actual: a.Estado, Motivo: "requires an active analysis"}
	}

	if editar != nil {
		if err := validationError(editar(e)); err != nil {
			return out, err
		}
	}
	if err := validar(v, e); err != nil {
		return out, err
	}

	switch a.Estado {
	case EstadoRegistrado:
		a.Estado = EstadoEnProceso
		eng.EstablecerFechaInicio(a)
	case EstadoAprobado:
		regresarSiAprobado(actor, a)
	}

	guardado, err := acc.Save(ctx, e)
	if err != nil {
		return out, err
	}
	a = guardado.Cabecera()
	eng.auditor.RegistrarModificacion(ctx, actor, a)
	return mapear(m, guardado), nil
}

// FinalizarGenerico: precondición, validador, transición, persistencia, auditoría, mapper.
func FinalizarGenerico[T Entidad, R any](
	ctx context.Context,
	eng *Engine,
	actor auth.ActorContext,
	id int64,
	acc Accessor[T],
	v Validador[T],
	m Mapper[T, R],
) (R, error) {
	return transicionGenerica(ctx, eng, actor, id, acc, trFinalizar, v, m)
}

func MarcarParaRepetirGenerico[T Entidad, R any](
	ctx context.Context,
	eng *Engine,
	actor auth.ActorContext,
	id int64,
	acc Accessor[T],
	v Validador[T],
	m Mapper[T, R],
) (R, error) {
	return transicionGenerica(ctx, eng, actor, id, acc, trRepetir, v, m)
}

func transicionGenerica[T Entidad, R any](
	ctx context.Context,
	eng *Engine,
	actor auth.ActorContext,
	id int64,
	acc Accessor[T],
	tr transicion,
	v Validador[T],
	m Mapper[T, R],
) (out R, err error) {
	var a *Analisis
	defer func() { eng.observar(a, tr.operacion, err) }()

	e, err := cargar(ctx, acc, id)
	if err != nil {
		return out, err
	}
	a = e.Cabecera()
	if err := tr.verificar(a); err != nil {
		return out, err
	}
	if err := validar(v, e); err != nil {
		return out, err
	}
	tr.aplicar(eng, actor, a)

	guardado, err := acc.Save(ctx, e)
	if err != nil {
		return out, err
	}
	a = guardado.Cabecera()
	eng.despuesDeTransicion(ctx, actor, tr, a)
	return mapear(m, guardado), nil
}

// AprobarGenerico aprueba un análisis PENDIENTE_APROBACION. Falla con ErrConflict si
// otro análisis activo del mismo lote no está A_REPETIR.
func AprobarGenerico[T Entidad, R any](
	ctx context.Context,
	eng *Engine,
	actor auth.ActorContext,
	id int64,
	acc Accessor[T],
	hermanos ConsultaHermanos[T],
	v Validador[T],
	m Mapper[T, R],
) (out R, err error) {
	var a *Analisis
	defer func() { eng.observar(a, trAprobar.operacion, err) }()

	e, err := cargar(ctx, acc, id)
	if err != nil {
		return out, err
	}
	a = e.Cabecera()
	if err := trAprobar.verificar(a); err != nil {
		return out, err
	}

	var guardado T
	aprobar := func(ctx context.Context) error {
		// Se recarga dentro del lock: lo leído antes puede estar viejo.
		actual, err := cargar(ctx, acc, id)
		if err != nil {
			return err
		}
		ca := actual.Cabecera()
		if err := trAprobar.verificar(ca); err != nil {
			return err
		}
		if err := verificarHermanos(ctx, hermanos, ca); err != nil {
			return err
		}
		if err := validar(v, actual); err != nil {
			return err
		}
		trAprobar.aplicar(eng, actor, ca)

		guardado, err = acc.Save(ctx, actual)
		return err
	}

	if tx, ok := any(acc).(Transaccional); ok {
		err = tx.EnLote(ctx, a.LoteID, aprobar)
	} else {
		err = aprobar(ctx)
	}
	if err != nil {
		return out, err
	}

	a = guardado.Cabecera()
	eng.despuesDeTransicion(ctx, actor, trAprobar, a)
	return mapear(m, guardado), nil
}

func verificarHermanos[T Entidad](ctx context.Context, hermanos ConsultaHermanos[T], a *Analisis) error {
	if hermanos == nil {
		return nil
	}
	lista, err := hermanos(ctx, a.LoteID)
	if err != nil {
		return err
	}
	for _, h := range lista {
		hc := h.Cabecera()
		if hc == nil || hc.ID == a.ID || !hc.Activo {
			continue
		}
		if hc.Estado != EstadoARepetir {
			return fmt.Errorf("%w: lote %d already has a valid %s analysis (%d, %s)",
				ErrConflict, a.LoteID, hc.Tipo, hc.ID, hc.Estado)
		}
	}
	return nil
}

// Desactivar es un soft delete; no toca Estado. Desactivar un inactivo no hace nada.
func Desactivar[T Entidad](ctx context.Context, eng *Engine, actor auth.ActorContext, id int64, acc Accessor[T]) (err error) {
	var a *Analisis
	defer func() { eng.observar(a, "desactivar", err) }()

	e, err := cargar(ctx, acc, id)
	if err != nil {
		return err
	}
	a = e.Cabecera()
	if !a.Activo {
		return nil
	}
	a.Activo = false

	guardado, err := acc.Save(ctx, e)
	if err != nil {
		return err
	}
	a = guardado.Cabecera()
	eng.auditor.RegistrarModificacion(ctx, actor, a)
	return nil
}

// Reactivar falla con ErrInvalidState si el análisis ya está activo.
func Reactivar[T Entidad, R any](ctx context.Context, eng *Engine, actor auth.ActorContext, id int64, acc Accessor[T], m Mapper[T, R]) (out R, err error) {
	var a *Analisis
	defer func() { eng.observar(a, "reactivar", err) }()

	e, err := cargar(ctx, acc, id)
	if err != nil {
		return out, err
	}
	a = e.Cabecera()
	if a.Activo {
		return out, &InvalidStateError{Operacion: "reactivar", Actual: a.Estado, Motivo: "requires an inactive analysis"}
	}
	a.Activo = true

	guardado, err := acc.Save(ctx, e)
	if err != nil {
		return out, err
	}
	a = guardado.Cabecera()
	eng.auditor.RegistrarModificacion(ctx, actor, a)
	return mapear(m, guardado), nil
}
