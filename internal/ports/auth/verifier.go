package auth

import "context"

// AuthVerifier valida un bearer token contra el proveedor de identidad.
// Los claims devueltos deben incluir el rol; sin rol el usuario no es analista.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
