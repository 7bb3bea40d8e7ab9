package germinacion

import (
	"encoding/json"
	"net/http"

	"lab-semillas/internal/domain/analisis"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	analisis.RegisterRoutes(r, "/germinaciones", svc, analisis.Decoders[*Germinacion]{
		Alta:    decodeAlta,
		Edicion: decodeEdicion,
	})
}

type createRequest struct {
	LoteID                int64  `json:"lote_id"`
	Comentarios           string `json:"comentarios"`
	NumeroDias            int    `json:"numero_dias"`
	SemillasPorRepeticion int    `json:"semillas_por_repeticion"`
	Repeticiones          int    `json:"repeticiones"`
}

type updateRequest struct {
	// Punteros: nil = no tocar.
	Comentarios        *string  `json:"comentarios"`
	NumeroDias         *int     `json:"numero_dias"`
	PorcentajeNormales *float64 `json:"porcentaje_normales"`
}

func decodeAlta(r *http.Request) (*Germinacion, error) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return &Germinacion{
		Analisis:              analisis.Analisis{LoteID: req.LoteID, Comentarios: req.Comentarios},
		NumeroDias:            req.NumeroDias,
		SemillasPorRepeticion: req.SemillasPorRepeticion,
		Repeticiones:          req.Repeticiones,
	}, nil
}

func decodeEdicion(r *http.Request) (func(*Germinacion) error, error) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return func(g *Germinacion) error {
		if req.Comentarios != nil {
			g.Comentarios = *req.Comentarios
		}
		if req.NumeroDias != nil {
			g.NumeroDias = *req.NumeroDias
		}
		if req.PorcentajeNormales != nil {
			v := *req.PorcentajeNormales
			g.PorcentajeNormales = &v
		}
		return nil
	}, nil
}
