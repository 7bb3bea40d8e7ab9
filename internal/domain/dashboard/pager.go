package dashboard

import "context"

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Pagina es una página de resultados. SiguienteCursor vacío indica la última página.
type Pagina[T any] struct {
	Items           []T
	SiguienteCursor string
}

// Posicionable es cualquier fila que sabe su posición en la cola.
type Posicionable interface {
	Posicion() Cursor
}

// Consulta trae hasta limite filas estrictamente después de despues
// (nil: desde el principio), ya ordenadas.
type Consulta[T Posicionable] func(ctx context.Context, despues *Cursor, limite int) ([]T, error)

func NormalizarLimite(n int) int {
	if n <= 0 {
		return DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// Paginar pide limite+1 filas: si vuelven más de limite hay otra página y el cursor
// se arma con la última fila emitida.
func Paginar[T Posicionable](ctx context.Context, cursor string, limite int, q Consulta[T]) (Pagina[T], error) {
	despues, err := Decodificar(cursor)
	if err != nil {
		return Pagina[T]{}, err
	}
	limite = NormalizarLimite(limite)

	filas, err := q(ctx, despues, limite+1)
	if err != nil {
		return Pagina[T]{}, err
	}
	if filas == nil {
		filas = []T{}
	}

	if len(filas) <= limite {
		return Pagina[T]{Items: filas}, nil
	}
	filas = filas[:limite]
	return Pagina[T]{
		Items:           filas,
		SiguienteCursor: Codificar(filas[limite-1].Posicion()),
	}, nil
}
