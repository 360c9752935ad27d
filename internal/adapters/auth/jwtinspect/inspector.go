package jwtinspect

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-companion/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty     = errors.New("token is empty")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token expired")
)

// Inspector lee los claims del token de sesión sin verificar la firma:
// la firma la valida el backend, acá solo evitamos arrancar con un token vencido.
type Inspector struct {
	// AllowOpaque acepta tokens que no son JWT (p.ej. tokens personales del backend).
	AllowOpaque bool
	// Leeway tolera desfasajes de reloj del dispositivo.
	Leeway time.Duration

	now func() time.Time
}

func New(allowOpaque bool) *Inspector {
	return &Inspector{AllowOpaque: allowOpaque, Leeway: 30 * time.Second, now: time.Now}
}

func (i *Inspector) Inspect(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	if strings.Count(token, ".") != 2 {
		if i.AllowOpaque {
			return auth.Claims{}, nil
		}
		return auth.Claims{}, ErrTokenMalformed
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	out := auth.Claims{
		UserID: firstString(claims, "sub", "user_id", "uid"),
		Email:  firstString(claims, "email"),
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	if exp != nil {
		t := exp.Time
		out.ExpiresAt = &t
		now := time.Now
		if i.now != nil {
			now = i.now
		}
		if now().After(t.Add(i.Leeway)) {
			return out, ErrTokenExpired
		}
	}

	return out, nil
}

func firstString(c jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		switch v := c[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}
