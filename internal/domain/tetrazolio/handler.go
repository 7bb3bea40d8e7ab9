package tetrazolio

import (
	"encoding/json"
	"net/http"

	"lab-semillas/internal/domain/analisis"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	analisis.RegisterRoutes(r, "/tetrazolios", svc, analisis.Decoders[*Tetrazolio]{
		Alta:    decodeAlta,
		Edicion: decodeEdicion,
	})
}

type createRequest struct {
	LoteID            int64  `json:"lote_id"`
	Comentarios       string `json:"comentarios"`
	SemillasEvaluadas int    `json:"semillas_evaluadas"`
}

type updateRequest struct {
	Comentarios *string `json:"comentarios"`
	Viables     *int    `json:"viables"`
}

func decodeAlta(r *http.Request) (*Tetrazolio, error) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return &Tetrazolio{
		Analisis:          analisis.Analisis{LoteID: req.LoteID, Comentarios: req.Comentarios},
		SemillasEvaluadas: req.SemillasEvaluadas,
	}, nil
}

func decodeEdicion(r *http.Request) (func(*Tetrazolio) error, error) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return func(t *Tetrazolio) error {
		if req.Comentarios != nil {
			t.Comentarios = *req.Comentarios
		}
		if req.Viables != nil {
			v := *req.Viables
			t.Viables = &v
		}
		return nil
	}, nil
}
