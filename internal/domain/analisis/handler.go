package analisis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"lab-semillas/internal/middleware"
	"lab-semillas/internal/platform/logger"
	"lab-semillas/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// Decoders traduce el body HTTP a datos del subtipo.
type Decoders[T Entidad] struct {
	Alta    func(r *http.Request) (T, error)
	Edicion func(r *http.Request) (func(T) error, error)
}

// RegisterRoutes monta el CRUD mínimo y las transiciones del workflow de un subtipo bajo path.
func RegisterRoutes[T Entidad, R any](r chi.Router, path string, svc *Service[T, R], dec Decoders[T]) {
	r.Route(path, func(ar chi.Router) {
		ar.Post("/", crearHandler(svc, dec))
		ar.Get("/{id}", obtenerHandler(svc))
		ar.Patch("/{id}", actualizarHandler(svc, dec))

		ar.Post("/{id}/finalizar", transicionHandler(svc.Finalizar))
		ar.Post("/{id}/aprobar", transicionHandler(svc.Aprobar))
		ar.Post("/{id}/repetir", transicionHandler(svc.MarcarParaRepetir))
		ar.Post("/{id}/reactivar", transicionHandler(svc.Reactivar))
		ar.Post("/{id}/desactivar", desactivarHandler(svc))
	})
}

// CabeceraResponse es la parte común de todas las respuestas de análisis;
// los subtipos la embeben en su respuesta.
type CabeceraResponse struct {
	ID          int64      `json:"id"`
	Tipo        Tipo       `json:"tipo"`
	LoteID      int64      `json:"lote_id"`
	Estado      Estado     `json:"estado"`
	Activo      bool       `json:"activo"`
	FechaInicio *time.Time `json:"fecha_inicio,omitempty"`
	FechaFin    *time.Time `json:"fecha_fin,omitempty"`
	Comentarios string     `json:"comentarios"`
	Version     int64      `json:"version"`
}

func NewCabeceraResponse(a *Analisis) CabeceraResponse {
	return CabeceraResponse{
		ID:          a.ID,
		Tipo:        a.Tipo,
		LoteID:      a.LoteID,
		Estado:      a.Estado,
		Activo:      a.Activo,
		FechaInicio: a.FechaInicio,
		FechaFin:    a.FechaFin,
		Comentarios: a.Comentarios,
		Version:     a.Version,
	}
}

// crearHandler godoc
// @Summary Registrar análisis
// @Description Crea un análisis en estado REGISTRADO sobre un lote existente. Requiere rol ANALISTA o ADMIN.
// @Tags analisis
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, username"
// @Param X-Debug-Role header string false "Solo en modo dev, rol (ANALISTA, ADMIN, OBSERVADOR)"
// @Success 201 {object} object
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "lote not found"
// @Router /{tipo} [post]
func crearHandler[T Entidad, R any](svc *Service[T, R], dec Decoders[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireWriter(w, r)
		if !ok {
			return
		}

		nuevo, err := dec.Alta(r)
		if err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		out, err := svc.Crear(r.Context(), actor, nuevo)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, out)
	}
}

// obtenerHandler godoc
// @Summary Obtener análisis
// @Tags analisis
// @Produce json
// @Param id path int true "ID del análisis"
// @Success 200 {object} object
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "not found"
// @Router /{tipo}/{id} [get]
func obtenerHandler[T Entidad, R any](svc *Service[T, R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetActor(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		out, err := svc.Obtener(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// actualizarHandler godoc
// @Summary Editar datos del análisis
// @Description Registra mediciones/datos del subtipo. La primera edición pasa REGISTRADO a EN_PROCESO. Si un ANALISTA edita un análisis APROBADO, vuelve a PENDIENTE_APROBACION.
// @Tags analisis
// @Accept json
// @Produce json
// @Param id path int true "ID del análisis"
// @Success 200 {object} object
// @Failure 400 {string} string "invalid json"
// @Failure 409 {string} string "invalid state / conflict"
// @Failure 422 {string} string "validation failed"
// @Router /{tipo}/{id} [patch]
func actualizarHandler[T Entidad, R any](svc *Service[T, R], dec Decoders[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireWriter(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		editar, err := dec.Edicion(r)
		if err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		out, err := svc.Actualizar(r.Context(), actor, id, editar)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// transicionHandler godoc
// @Summary Transición de workflow
// @Description finalizar, aprobar, repetir o reactivar. Finalizar como ANALISTA deja el análisis PENDIENTE_APROBACION; con otro rol queda APROBADO. Aprobar falla con 409 si otro análisis válido del lote no está A_REPETIR.
// @Tags analisis
// @Produce json
// @Param id path int true "ID del análisis"
// @Success 200 {object} object
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "not found"
// @Failure 409 {string} string "invalid state / conflict"
// @Failure 422 {string} string "validation failed"
// @Router /{tipo}/{id}/finalizar [post]
func transicionHandler[R any](op func(context.Context, auth.ActorContext, int64) (R, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireWriter(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		out, err := op(r.Context(), actor, id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// desactivarHandler godoc
// @Summary Desactivar análisis (soft delete)
// @Tags analisis
// @Param id path int true "ID del análisis"
// @Success 204
// @Failure 404 {string} string "not found"
// @Router /{tipo}/{id}/desactivar [post]
func desactivarHandler[T Entidad, R any](svc *Service[T, R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireWriter(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		if err := svc.Desactivar(r.Context(), actor, id); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// requireWriter exige sesión y rol ANALISTA o ADMIN.
func requireWriter(w http.ResponseWriter, r *http.Request) (auth.Actor, bool) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return auth.Actor{}, false
	}
	if !auth.PuedeEscribir(actor.Rol) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return auth.Actor{}, false
	}
	return actor, true
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrValidation):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		logger.FromContext(r.Context(), nil).Error("analysis request failed", logger.Fields{"err": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
