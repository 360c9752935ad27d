package auth

import "context"

// TokenInspector valida localmente un token de sesión antes de usarlo.
// No reemplaza la validación del backend: solo evita mandar tokens vencidos.
type TokenInspector interface {
	Inspect(ctx context.Context, token string) (Claims, error)
}
