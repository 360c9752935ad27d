package auth

import "time"

// Claims representa la información que se puede leer del token de sesión
// sin hablar con el backend.
type Claims struct {
	UserID    string
	Email     string
	ExpiresAt *time.Time
}
