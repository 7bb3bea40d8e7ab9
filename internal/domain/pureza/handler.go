package pureza

import (
	"encoding/json"
	"net/http"

	"lab-semillas/internal/domain/analisis"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	analisis.RegisterRoutes(r, "/purezas", svc, analisis.Decoders[*Pureza]{
		Alta:    decodeAlta,
		Edicion: decodeEdicion,
	})
}

type createRequest struct {
	LoteID            int64   `json:"lote_id"`
	Comentarios       string  `json:"comentarios"`
	PesoInicialGramos float64 `json:"peso_inicial_gramos"`
}

type updateRequest struct {
	Comentarios         *string  `json:"comentarios"`
	SemillaPuraGramos   *float64 `json:"semilla_pura_gramos"`
	MateriaInerteGramos *float64 `json:"materia_inerte_gramos"`
	OtrasSemillasGramos *float64 `json:"otras_semillas_gramos"`
}

func decodeAlta(r *http.Request) (*Pureza, error) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return &Pureza{
		Analisis:          analisis.Analisis{LoteID: req.LoteID, Comentarios: req.Comentarios},
		PesoInicialGramos: req.PesoInicialGramos,
	}, nil
}

func decodeEdicion(r *http.Request) (func(*Pureza) error, error) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return func(p *Pureza) error {
		if req.Comentarios != nil {
			p.Comentarios = *req.Comentarios
		}
		if req.SemillaPuraGramos != nil {
			p.SemillaPuraGramos = copiar(req.SemillaPuraGramos)
		}
		if req.MateriaInerteGramos != nil {
			p.MateriaInerteGramos = copiar(req.MateriaInerteGramos)
		}
		if req.OtrasSemillasGramos != nil {
			p.OtrasSemillasGramos = copiar(req.OtrasSemillasGramos)
		}
		return nil
	}, nil
}
