package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"lab-semillas/internal/domain/analisis"
	"lab-semillas/internal/domain/dashboard"
)

// tablasDashboard son las tablas de subtipos que alimentan las colas.
var tablasDashboard = []struct {
	nombre string
	tipo   analisis.Tipo
}{
	{"germinaciones", analisis.TipoGerminacion},
	{"purezas", analisis.TipoPureza},
	{"pms", analisis.TipoPesoMilSemillas},
	{"tetrazolios", analisis.TipoTetrazolio},
}

// chr(31) es el mismo separador que usa dashboard.ClavePendiente.
const (
	clavePendienteSQL  = `l.ficha || chr(31) || '%s'`
	clavePorAprobarSQL = `COALESCE(to_char(l.fecha_entrega AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS.US"000Z"'), '') || chr(31) || '%s'`
)

type DashboardRepo struct {
	db *sql.DB

	pendientesSQL string
	porAprobarSQL string
}

func NewDashboardRepo(db *sql.DB) *DashboardRepo {
	return &DashboardRepo{
		db:            db,
		pendientesSQL: colaSQL(clavePendienteSQL, analisis.EstadoRegistrado, analisis.EstadoEnProceso),
		porAprobarSQL: colaSQL(clavePorAprobarSQL, analisis.EstadoPendienteAprobacion),
	}
}

// colaSQL arma un UNION ALL sobre todas las tablas de subtipos. La comparación
// por fila (clave, id) < ($1, $2) con COLLATE "C" coincide con el orden de bytes
// que usa el cursor en Go.
func colaSQL(clave string, estados ...analisis.Estado) string {
	in := make([]string, len(estados))
	for i, e := range estados {
		in[i] = "'" + string(e) + "'"
	}

	partes := make([]string, 0, len(tablasDashboard))
	for _, t := range tablasDashboard {
		partes = append(partes, fmt.Sprintf(`
			SELECT '%[1]s' AS tipo, a.id, a.lote_id, l.ficha, l.especie, a.estado, a.fecha_inicio, l.fecha_entrega,
				(%[2]s) COLLATE "C" AS clave
			FROM %[3]s a
			JOIN lotes l ON l.id = a.lote_id
			WHERE a.activo AND a.estado IN (%[4]s)`,
			t.tipo, fmt.Sprintf(clave, t.tipo), t.nombre, strings.Join(in, ", ")))
	}

	return `
		SELECT tipo, id, lote_id, ficha, especie, estado, fecha_inicio, fecha_entrega, clave
		FROM (` + strings.Join(partes, "\n\t\t\tUNION ALL") + `
		) q
		WHERE $1::boolean OR (q.clave, q.id) < ($2::text COLLATE "C", $3::bigint)
		ORDER BY q.clave DESC, q.id DESC
		LIMIT $4`
}

func (r *DashboardRepo) Pendientes(ctx context.Context, despues *dashboard.Cursor, limite int) ([]dashboard.Resumen, error) {
	return r.cola(ctx, r.pendientesSQL, despues, limite)
}

func (r *DashboardRepo) PorAprobar(ctx context.Context, despues *dashboard.Cursor, limite int) ([]dashboard.Resumen, error) {
	return r.cola(ctx, r.porAprobarSQL, despues, limite)
}

func (r *DashboardRepo) cola(ctx context.Context, query string, despues *dashboard.Cursor, limite int) ([]dashboard.Resumen, error) {
	desdeInicio := despues == nil
	var (
		clave string
		id    int64
	)
	if despues != nil {
		clave, id = despues.Clave, despues.ID
	}

	rows, err := r.db.QueryContext(ctx, query, desdeInicio, clave, id, limite)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dashboard.Resumen, 0, limite)
	for rows.Next() {
		var (
			res             dashboard.Resumen
			tipo, estado    string
			inicio, entrega sql.NullTime
		)
		if err := rows.Scan(&tipo, &res.ID, &res.LoteID, &res.Ficha, &res.Especie, &estado, &inicio, &entrega, &res.Clave); err != nil {
			return nil, err
		}
		res.Tipo = analisis.Tipo(tipo)
		res.Estado = analisis.Estado(estado)
		res.FechaInicio = fromNullTime(inicio)
		res.FechaEntrega = fromNullTime(entrega)
		out = append(out, res)
	}
	return out, rows.Err()
}
