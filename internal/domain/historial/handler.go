package historial

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lab-semillas/internal/domain/analisis"
	"lab-semillas/internal/middleware"
	"lab-semillas/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, rec *Recorder) {
	// Historial de un análisis; tipo = GERMINACION, PUREZA, PMS, TETRAZOLIO
	r.Get("/analisis/{tipo}/{id}/historial", historialAnalisisHandler(rec))

	// Lo que hizo un usuario
	r.Get("/usuarios/{userID}/historial", historialUsuarioHandler(rec))
}

type entradaResponse struct {
	ID         string          `json:"id"`
	Tipo       analisis.Tipo   `json:"tipo"`
	AnalisisID int64           `json:"analisis_id"`
	UsuarioID  *int64          `json:"usuario_id,omitempty"`
	Username   string          `json:"username"`
	Accion     Accion          `json:"accion"`
	Estado     analisis.Estado `json:"estado"`
	FechaHora  time.Time       `json:"fecha_hora"`
}

func toEntradaResponses(in []Entrada) []entradaResponse {
	out := make([]entradaResponse, 0, len(in))
	for _, e := range in {
		out = append(out, entradaResponse{
			ID:         e.ID,
			Tipo:       e.Analisis.Tipo,
			AnalisisID: e.Analisis.ID,
			UsuarioID:  e.UsuarioID,
			Username:   e.Username,
			Accion:     e.Accion,
			Estado:     e.Estado,
			FechaHora:  e.FechaHora,
		})
	}
	return out
}

// historialAnalisisHandler godoc
// @Summary Historial de un análisis
// @Description Entradas de auditoría del análisis, más reciente primero.
// @Tags historial
// @Produce json
// @Param tipo path string true "GERMINACION, PUREZA, PMS o TETRAZOLIO"
// @Param id path int true "ID del análisis"
// @Success 200 {array} entradaResponse
// @Failure 400 {string} string "invalid tipo / invalid id"
// @Failure 401 {string} string "unauthorized"
// @Router /analisis/{tipo}/{id}/historial [get]
func historialAnalisisHandler(rec *Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetActor(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		tipo, ok := analisis.ParseTipo(strings.ToUpper(chi.URLParam(r, "tipo")))
		if !ok {
			http.Error(w, "invalid tipo", http.StatusBadRequest)
			return
		}
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		out, err := rec.ObtenerHistorialAnalisis(r.Context(), analisis.Ref{Tipo: tipo, ID: id})
		if err != nil {
			internalError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toEntradaResponses(out))
	}
}

// historialUsuarioHandler godoc
// @Summary Historial de un usuario
// @Tags historial
// @Produce json
// @Param userID path int true "ID del usuario"
// @Success 200 {array} entradaResponse
// @Failure 400 {string} string "invalid user id"
// @Failure 401 {string} string "unauthorized"
// @Router /usuarios/{userID}/historial [get]
func historialUsuarioHandler(rec *Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetActor(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		out, err := rec.ObtenerHistorialUsuario(r.Context(), userID)
		if err != nil {
			internalError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toEntradaResponses(out))
	}
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context(), nil).Error("history request failed", logger.Fields{"err": err})
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
