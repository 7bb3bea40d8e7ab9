package dashboard

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"testing"
)

// tablaFake ordena y filtra como lo haría la consulta real.
type tablaFake struct {
	filas []Resumen
}

func (f *tablaFake) consulta(_ context.Context, despues *Cursor, limite int) ([]Resumen, error) {
	out := make([]Resumen, 0, limite)
	for _, r := range f.filas {
		if despues == nil || Antes(*despues, r.Posicion()) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return Antes(out[i].Posicion(), out[j].Posicion()) })
	if len(out) > limite {
		out = out[:limite]
	}
	return out, nil
}

func fila(clave string, id int64) Resumen { return Resumen{Clave: clave, ID: id} }

func TestPaginar_ConcreteScenario(t *testing.T) {
	tabla := &tablaFake{filas: []Resumen{fila("K1", 1), fila("K1", 2), fila("K2", 3)}}
	ctx := context.Background()

	p1, err := Paginar[Resumen](ctx, "", 2, tabla.consulta)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(p1.Items) != 2 || p1.Items[0].Posicion() != (Cursor{"K2", 3}) || p1.Items[1].Posicion() != (Cursor{"K1", 2}) {
		t.Fatalf("unexpected page 1 %#v", p1.Items)
	}
	if p1.SiguienteCursor == "" {
		t.Fatalf("expected next cursor on page 1")
	}

	p2, err := Paginar[Resumen](ctx, p1.SiguienteCursor, 2, tabla.consulta)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(p2.Items) != 1 || p2.Items[0].Posicion() != (Cursor{"K1", 1}) {
		t.Fatalf("unexpected page 2 %#v", p2.Items)
	}
	if p2.SiguienteCursor != "" {
		t.Fatalf("expected terminal page")
	}
}

func TestPaginar_ExactMultipleEndsWithoutEmptyPage(t *testing.T) {
	tabla := &tablaFake{filas: []Resumen{fila("A", 1), fila("B", 2)}}
	p, err := Paginar[Resumen](context.Background(), "", 2, tabla.consulta)
	if err != nil {
		t.Fatalf("paginar: %v", err)
	}
	if len(p.Items) != 2 || p.SiguienteCursor != "" {
		t.Fatalf("expected both rows and no cursor, got %d items cursor=%q", len(p.Items), p.SiguienteCursor)
	}
}

func TestPaginar_EmptyTable(t *testing.T) {
	p, err := Paginar[Resumen](context.Background(), "", 10, (&tablaFake{}).consulta)
	if err != nil {
		t.Fatalf("paginar: %v", err)
	}
	if p.Items == nil || len(p.Items) != 0 || p.SiguienteCursor != "" {
		t.Fatalf("expected empty page, got %#v", p)
	}
}

func TestPaginar_Limits(t *testing.T) {
	var pedido int
	q := func(_ context.Context, _ *Cursor, limite int) ([]Resumen, error) {
		pedido = limite
		return nil, nil
	}

	cases := map[int]int{0: DefaultLimit + 1, -3: DefaultLimit + 1, 5: 6, 1000: MaxLimit + 1}
	for in, want := range cases {
		if _, err := Paginar[Resumen](context.Background(), "", in, q); err != nil {
			t.Fatalf("limit %d: %v", in, err)
		}
		if pedido != want {
			t.Fatalf("limit %d: expected query for %d rows, got %d", in, want, pedido)
		}
	}
}

func TestPaginar_InvalidCursor(t *testing.T) {
	called := false
	q := func(context.Context, *Cursor, int) ([]Resumen, error) { called = true; return nil, nil }
	if _, err := Paginar[Resumen](context.Background(), "not a cursor!", 10, q); err == nil {
		t.Fatalf("expected error for invalid cursor")
	}
	if called {
		t.Fatalf("query must not run with an invalid cursor")
	}
}

// Para cualquier tamaño de página, recorrer todas las páginas emite cada fila una vez y en orden.
func TestPaginar_CoversEveryRowOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for n := 0; n <= 40; n++ {
		tabla := &tablaFake{}
		for i := 0; i < n; i++ {
			// Pocas claves distintas para forzar empates resueltos por ID.
			tabla.filas = append(tabla.filas, fila(fmt.Sprintf("K%d", rng.Intn(4)), int64(i+1)))
		}

		for size := 1; size <= n+1; size++ {
			vistos := recorrer(t, tabla, size, nil)
			if len(vistos) != n {
				t.Fatalf("n=%d size=%d: expected %d rows, got %d", n, size, n, len(vistos))
			}
			for i := 1; i < len(vistos); i++ {
				if !Antes(vistos[i-1], vistos[i]) {
					t.Fatalf("n=%d size=%d: rows out of order at %d", n, size, i)
				}
			}
		}
	}
}

// Filas insertadas entre páginas no provocan duplicados ni saltos sobre las existentes.
func TestPaginar_ConcurrentInserts(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	tabla := &tablaFake{}
	for i := 1; i <= 30; i++ {
		tabla.filas = append(tabla.filas, fila(fmt.Sprintf("K%02d", rng.Intn(10)), int64(i)))
	}
	originales := make(map[Cursor]bool, len(tabla.filas))
	for _, f := range tabla.filas {
		originales[f.Posicion()] = true
	}

	next := int64(100)
	insertar := func() {
		for k := 0; k < 3; k++ {
			next++
			tabla.filas = append(tabla.filas, fila(fmt.Sprintf("K%02d", rng.Intn(10)), next))
		}
	}

	vistos := recorrer(t, tabla, 4, insertar)

	repetidos := map[Cursor]bool{}
	for _, c := range vistos {
		if repetidos[c] {
			t.Fatalf("row %#v emitted twice", c)
		}
		repetidos[c] = true
	}
	for c := range originales {
		if !repetidos[c] {
			t.Fatalf("pre-existing row %#v was skipped", c)
		}
	}
}

func recorrer(t *testing.T, tabla *tablaFake, size int, entrePaginas func()) []Cursor {
	t.Helper()

	var (
		out    []Cursor
		cursor string
	)
	for guard := 0; guard < 1000; guard++ {
		p, err := Paginar[Resumen](context.Background(), cursor, size, tabla.consulta)
		if err != nil {
			t.Fatalf("paginar: %v", err)
		}
		for _, r := range p.Items {
			out = append(out, r.Posicion())
		}
		if p.SiguienteCursor == "" {
			return out
		}
		cursor = p.SiguienteCursor
		if entrePaginas != nil {
			entrePaginas()
		}
	}
	t.Fatalf("pagination did not terminate")
	return nil
}
