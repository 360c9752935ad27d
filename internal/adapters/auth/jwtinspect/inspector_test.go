package jwtinspect

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestInspect(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	in := New(false)
	in.now = func() time.Time { return now }
	ctx := context.Background()

	valid := sign(t, jwt.MapClaims{"sub": "u1", "email": "a@b.c", "exp": now.Add(time.Hour).Unix()})
	c, err := in.Inspect(ctx, "Bearer "+valid)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if c.UserID != "u1" || c.Email != "a@b.c" || c.ExpiresAt == nil {
		t.Fatalf("unexpected claims %#v", c)
	}

	numeric := sign(t, jwt.MapClaims{"user_id": float64(42)})
	if c, err := in.Inspect(ctx, numeric); err != nil || c.UserID != "42" {
		t.Fatalf("expected numeric user id, got %#v err=%v", c, err)
	}

	expired := sign(t, jwt.MapClaims{"sub": "u1", "exp": now.Add(-time.Hour).Unix()})
	if _, err := in.Inspect(ctx, expired); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected expired, got %v", err)
	}

	if _, err := in.Inspect(ctx, "  "); !errors.Is(err, ErrTokenEmpty) {
		t.Fatalf("expected empty, got %v", err)
	}
	if _, err := in.Inspect(ctx, "12|opaque"); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected malformed, got %v", err)
	}

	in.AllowOpaque = true
	if _, err := in.Inspect(ctx, "12|opaque"); err != nil {
		t.Fatalf("opaque tokens must pass when allowed, got %v", err)
	}
}
