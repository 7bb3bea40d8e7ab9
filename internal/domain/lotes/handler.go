package lotes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"lab-semillas/internal/middleware"
	"lab-semillas/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/lotes", func(lr chi.Router) {
		lr.Post("/", createLoteHandler(svc))
		lr.Get("/{loteID}", getLoteHandler(svc))
	})
}

type createLoteRequest struct {
	Ficha        string `json:"ficha"`
	Especie      string `json:"especie"`
	FechaRecibo  string `json:"fecha_recibo"`  // RFC3339 opcional; default ahora
	FechaEntrega string `json:"fecha_entrega"` // RFC3339 opcional
}

type loteResponse struct {
	ID           int64      `json:"id"`
	Ficha        string     `json:"ficha"`
	Especie      string     `json:"especie"`
	FechaRecibo  time.Time  `json:"fecha_recibo"`
	FechaEntrega *time.Time `json:"fecha_entrega,omitempty"`
	Activo       bool       `json:"activo"`
}

func toLoteResponse(l Lote) loteResponse {
	return loteResponse{
		ID:           l.ID,
		Ficha:        l.Ficha,
		Especie:      l.Especie,
		FechaRecibo:  l.FechaRecibo,
		FechaEntrega: l.FechaEntrega,
		Activo:       l.Activo,
	}
}

// createLoteHandler godoc
// @Summary Registrar lote
// @Tags lotes
// @Accept json
// @Produce json
// @Param body body createLoteRequest true "Lote"
// @Success 201 {object} loteResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /lotes [post]
func createLoteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !auth.PuedeEscribir(actor.Rol) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req createLoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		recibo, err := parseFecha(req.FechaRecibo)
		if err != nil {
			http.Error(w, "fecha_recibo must be RFC3339", http.StatusBadRequest)
			return
		}
		entrega, err := parseFecha(req.FechaEntrega)
		if err != nil {
			http.Error(w, "fecha_entrega must be RFC3339", http.StatusBadRequest)
			return
		}

		l, err := svc.Create(r.Context(), CreateInput{
			Ficha:        req.Ficha,
			Especie:      req.Especie,
			FechaRecibo:  recibo,
			FechaEntrega: entrega,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toLoteResponse(l))
	}
}

// getLoteHandler godoc
// @Summary Obtener lote
// @Tags lotes
// @Produce json
// @Param loteID path int true "ID del lote"
// @Success 200 {object} loteResponse
// @Failure 404 {string} string "not found"
// @Router /lotes/{loteID} [get]
func getLoteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetActor(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "loteID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid lote id", http.StatusBadRequest)
			return
		}

		l, err := svc.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toLoteResponse(l))
	}
}

func parseFecha(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
