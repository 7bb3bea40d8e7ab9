package auth

import "strings"

// ActorContext expone el principal que ejecuta la operación actual.
// El workflow y la auditoría lo reciben explícitamente en cada llamada.
type ActorContext interface {
	CurrentUsername() (string, bool)
	CurrentRole() Rol
}

// Actor es la implementación request-scoped de ActorContext.
type Actor struct {
	Username string
	Rol      Rol
}

func (a Actor) CurrentUsername() (string, bool) {
	u := strings.TrimSpace(a.Username)
	return u, u != ""
}

func (a Actor) CurrentRole() Rol { return a.Rol }

// ActorFromClaims arma el actor a partir de los claims verificados.
// Si el token no trae username se usa el user id.
func ActorFromClaims(c Claims) Actor {
	username := strings.TrimSpace(c.Username)
	if username == "" {
		username = strings.TrimSpace(c.UserID)
	}
	return Actor{Username: username, Rol: c.Rol}
}

// EsAnalista es la única regla de rol que usa el workflow.
func EsAnalista(actor ActorContext) bool {
	return actor != nil && actor.CurrentRole() == RolAnalista
}

// Username devuelve el username del actor, tolerando actor nil.
func Username(actor ActorContext) (string, bool) {
	if actor == nil {
		return "", false
	}
	return actor.CurrentUsername()
}
