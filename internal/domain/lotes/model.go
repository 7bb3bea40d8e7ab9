package lotes

import "time"

// Lote es la muestra recibida por el laboratorio. Ficha es el número de ingreso.
type Lote struct {
	ID           int64
	Ficha        string
	Especie      string
	FechaRecibo  time.Time
	FechaEntrega *time.Time // compromiso de entrega; ordena la cola de aprobación
	Activo       bool
}
