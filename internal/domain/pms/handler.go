package pms

import (
	"encoding/json"
	"net/http"

	"lab-semillas/internal/domain/analisis"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	analisis.RegisterRoutes(r, "/pms", svc, analisis.Decoders[*PesoMilSemillas]{
		Alta:    decodeAlta,
		Edicion: decodeEdicion,
	})
}

type createRequest struct {
	LoteID                  int64   `json:"lote_id"`
	Comentarios             string  `json:"comentarios"`
	CoeficienteVariacionMax float64 `json:"coeficiente_variacion_max"` // 0 = default
}

type updateRequest struct {
	Comentarios *string `json:"comentarios"`

	// Repeticiones reemplaza la lista completa.
	Repeticiones []float64 `json:"repeticiones"`

	// Agregar suma repeticiones al final.
	Agregar []float64 `json:"agregar"`
}

func decodeAlta(r *http.Request) (*PesoMilSemillas, error) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return Nuevo(req.LoteID, req.Comentarios, req.CoeficienteVariacionMax), nil
}

func decodeEdicion(r *http.Request) (func(*PesoMilSemillas) error, error) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return func(p *PesoMilSemillas) error {
		if req.Comentarios != nil {
			p.Comentarios = *req.Comentarios
		}
		if req.Repeticiones != nil {
			p.Repeticiones = append([]float64(nil), req.Repeticiones...)
		}
		p.Repeticiones = append(p.Repeticiones, req.Agregar...)
		return nil
	}, nil
}
