package dashboard

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrCursorInvalido = errors.New("invalid cursor")

// Cursor es la posición de la última fila emitida: (Clave, ID) en el orden de la cola.
// Viaja opaco en la URL y nunca se persiste.
type Cursor struct {
	Clave string
	ID    int64
}

type cursorWire struct {
	K string `json:"k"`
	I int64  `json:"i"`
}

// Codificar produce un string URL-safe sin padding.
func Codificar(c Cursor) string {
	b, _ := json.Marshal(cursorWire{K: c.Clave, I: c.ID})
	return base64.RawURLEncoding.EncodeToString(b)
}

// Decodificar acepta "" como "desde el principio" y devuelve nil.
func Decodificar(s string) (*Cursor, error) {
	if s == "" {
		return nil, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCursorInvalido, err)
	}
	var w cursorWire
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCursorInvalido, err)
	}
	if w.I <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrCursorInvalido)
	}
	return &Cursor{Clave: w.K, ID: w.I}, nil
}

// Antes reporta si a va antes que b en orden descendente por (Clave, ID).
// Es el mismo orden que usa Postgres con COLLATE "C".
func Antes(a, b Cursor) bool {
	if a.Clave != b.Clave {
		return a.Clave > b.Clave
	}
	return a.ID > b.ID
}
