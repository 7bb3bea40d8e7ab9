package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"lab-semillas/internal/domain/analisis"
	"lab-semillas/internal/middleware"
	"lab-semillas/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/dashboard", func(dr chi.Router) {
		dr.Get("/pendientes", colaHandler(svc.Pendientes))
		dr.Get("/por-aprobar", colaHandler(svc.PorAprobar))
	})
}

type resumenResponse struct {
	Tipo         analisis.Tipo   `json:"tipo"`
	ID           int64           `json:"id"`
	LoteID       int64           `json:"lote_id"`
	Ficha        string          `json:"ficha"`
	Especie      string          `json:"especie"`
	Estado       analisis.Estado `json:"estado"`
	FechaInicio  *time.Time      `json:"fecha_inicio,omitempty"`
	FechaEntrega *time.Time      `json:"fecha_entrega,omitempty"`
}

type paginaResponse struct {
	Items      []resumenResponse `json:"items"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

func toPaginaResponse(p Pagina[Resumen]) paginaResponse {
	out := paginaResponse{
		Items:      make([]resumenResponse, 0, len(p.Items)),
		NextCursor: p.SiguienteCursor,
	}
	for _, r := range p.Items {
		out.Items = append(out.Items, resumenResponse{
			Tipo:         r.Tipo,
			ID:           r.ID,
			LoteID:       r.LoteID,
			Ficha:        r.Ficha,
			Especie:      r.Especie,
			Estado:       r.Estado,
			FechaInicio:  r.FechaInicio,
			FechaEntrega: r.FechaEntrega,
		})
	}
	return out
}

type cola func(ctx context.Context, cursor string, limite int) (Pagina[Resumen], error)

// colaHandler godoc
// @Summary Colas del dashboard
// @Description Paginación por cursor. next_cursor vacío indica la última página.
// @Tags dashboard
// @Produce json
// @Param cursor query string false "Cursor opaco de la página anterior"
// @Param limit query int false "Tamaño de página (default 20, máximo 100)"
// @Success 200 {object} paginaResponse
// @Failure 400 {string} string "invalid cursor / invalid limit"
// @Failure 401 {string} string "unauthorized"
// @Router /dashboard/pendientes [get]
// @Router /dashboard/por-aprobar [get]
func colaHandler(listar cola) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetActor(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		limite := 0
		if raw := q.Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limite = n
		}

		pagina, err := listar(r.Context(), q.Get("cursor"), limite)
		if err != nil {
			if errors.Is(err, ErrCursorInvalido) {
				http.Error(w, "invalid cursor", http.StatusBadRequest)
				return
			}
			logger.FromContext(r.Context(), nil).Error("dashboard query failed", logger.Fields{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toPaginaResponse(pagina))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
