package memory

import (
	"context"
	"strings"
	"sync"

	"pet-companion/internal/platform/apperrors"
	"pet-companion/internal/session"
)

// Profiles resuelve token -> usuario en memoria. Un token desconocido responde como un 401.
type Profiles struct {
	mu      sync.RWMutex
	byToken map[string]session.User
}

func NewProfiles() *Profiles {
	return &Profiles{byToken: make(map[string]session.User)}
}

func (p *Profiles) Add(token string, u session.User) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byToken[strings.TrimSpace(token)] = u
}

// Revoke simula que el backend invalidó el token.
func (p *Profiles) Revoke(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.byToken, strings.TrimSpace(token))
}

// UseAttempt suma un intento de IA al usuario del token.
func (p *Profiles) UseAttempt(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if u, ok := p.byToken[token]; ok {
		u.MonthlyAIAttempts++
		p.byToken[token] = u
	}
}

func (p *Profiles) Profile(_ context.Context, token string) (session.User, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	u, ok := p.byToken[strings.TrimSpace(token)]
	if !ok {
		return session.User{}, apperrors.Unauthorized("")
	}
	return u, nil
}
