package auth

import "strings"

// Rol determina el resultado de las transiciones del workflow.
type Rol string

const (
	RolAnalista   Rol = "ANALISTA"
	RolAdmin      Rol = "ADMIN"
	RolObservador Rol = "OBSERVADOR"
)

// ParseRol normaliza el rol recibido en claims/headers. Valores desconocidos quedan vacíos.
func ParseRol(s string) Rol {
	switch Rol(strings.ToUpper(strings.TrimSpace(s))) {
	case RolAnalista:
		return RolAnalista
	case RolAdmin:
		return RolAdmin
	case RolObservador:
		return RolObservador
	default:
		return ""
	}
}

// PuedeEscribir: solo ANALISTA y ADMIN modifican. OBSERVADOR, vacío o desconocido es solo lectura.
func PuedeEscribir(r Rol) bool {
	return r == RolAnalista || r == RolAdmin
}

// Claims representa la información extraída del token.
type Claims struct {
	UserID   string
	Username string
	Email    string
	TenantID string
	Rol      Rol
}
