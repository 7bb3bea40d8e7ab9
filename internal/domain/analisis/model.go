package analisis

import "time"

// Estado es el estado del ciclo de vida de un análisis.
type Estado string

const (
	EstadoRegistrado          Estado = "REGISTRADO"
	EstadoEnProceso           Estado = "EN_PROCESO"
	EstadoPendienteAprobacion Estado = "PENDIENTE_APROBACION"
	EstadoAprobado            Estado = "APROBADO"
	EstadoARepetir            Estado = "A_REPETIR"
)

// Tipo identifica el subtipo de análisis (y su tabla).
type Tipo string

const (
	TipoGerminacion     Tipo = "GERMINACION"
	TipoPureza          Tipo = "PUREZA"
	TipoPesoMilSemillas Tipo = "PMS"
	TipoTetrazolio      Tipo = "TETRAZOLIO"
)

// Tipos lista los subtipos soportados, en orden estable.
var Tipos = []Tipo{TipoGerminacion, TipoPureza, TipoPesoMilSemillas, TipoTetrazolio}

func ParseTipo(s string) (Tipo, bool) {
	for _, t := range Tipos {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Analisis es la cabecera común a todos los subtipos.
// FechaInicio y FechaFin las setea únicamente el workflow.
type Analisis struct {
	ID     int64
	Tipo   Tipo
	LoteID int64

	Estado Estado
	Activo bool

	FechaInicio *time.Time
	FechaFin    *time.Time

	Comentarios string

	// Version se incrementa en cada Save; un Save con versión vieja falla con ErrConflict.
	Version int64
}

// Cabecera permite que cualquier subtipo que embeba Analisis sea una Entidad.
func (a *Analisis) Cabecera() *Analisis { return a }

func (a *Analisis) Ref() Ref { return Ref{Tipo: a.Tipo, ID: a.ID} }

// Entidad es lo único que el workflow necesita de un subtipo.
type Entidad interface {
	Cabecera() *Analisis
}

// Ref identifica un análisis entre todas las tablas de subtipos.
type Ref struct {
	Tipo Tipo
	ID   int64
}

func (r Ref) Valida() bool { return r.Tipo != "" && r.ID > 0 }

// CopiarCabecera copia la cabecera sin compartir los punteros de fechas.
func CopiarCabecera(a Analisis) Analisis {
	if a.FechaInicio != nil {
		v := *a.FechaInicio
		a.FechaInicio = &v
	}
	if a.FechaFin != nil {
		v := *a.FechaFin
		a.FechaFin = &v
	}
	return a
}
