package session

import (
	"context"
	"strings"
	"sync"

	"pet-companion/internal/platform/apperrors"
	"pet-companion/internal/platform/logger"
	"pet-companion/internal/ports/auth"
)

// User es el usuario logueado tal como lo describe el backend.
type User struct {
	ID                string `json:"id"`
	DisplayName       string `json:"display_name"`
	PhotoURL          string `json:"photo_url"`
	MonthlyAIAttempts int    `json:"monthly_ai_attempts"`
	IsCollaborator    bool   `json:"is_collaborator"`
}

// ProfileSource trae el perfil del usuario dueño del token.
type ProfileSource interface {
	Profile(ctx context.Context, token string) (User, error)
}

// Container guarda la única sesión del proceso.
// Login la llena, Logout o cualquier 401 la vacían.
type Container struct {
	mu    sync.RWMutex
	token string
	user  *User

	profiles  ProfileSource
	inspector auth.TokenInspector
	log       logger.Logger

	onClear []func()
}

// New crea el container. inspector puede ser nil (sin chequeo local del token).
func New(profiles ProfileSource, inspector auth.TokenInspector, log logger.Logger) *Container {
	if log == nil {
		log = logger.Nop()
	}
	return &Container{
		profiles:  profiles,
		inspector: inspector,
		log:       log,
	}
}

// OnClear registra un callback que corre cada vez que se vacía la sesión.
// Debe registrarse durante el wiring, antes de servir requests.
func (c *Container) OnClear(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onClear = append(c.onClear, fn)
}

// Login valida el token, trae el perfil y recién ahí publica la sesión.
func (c *Container) Login(ctx context.Context, token string) (User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return User{}, apperrors.Validation("token", "Falta el token de sesión.")
	}

	if c.inspector != nil {
		if _, err := c.inspector.Inspect(ctx, token); err != nil {
			return User{}, apperrors.Validation("token", "El token de sesión no es válido o expiró.")
		}
	}

	u, err := c.profiles.Profile(ctx, token)
	if err != nil {
		return User{}, err
	}
	if strings.TrimSpace(u.ID) == "" {
		return User{}, apperrors.Server(0, "El perfil no trae id de usuario.")
	}

	// otro usuario: se descarta todo lo del anterior antes de publicar al nuevo
	if prev, ok := c.Current(); ok && !sameUser(prev.ID, u.ID) {
		c.clear("switch")
	}

	c.mu.Lock()
	c.token = token
	c.user = &u
	c.mu.Unlock()

	c.log.Info("session started", map[string]any{"user_id": u.ID})
	return u, nil
}

// Refresh vuelve a pedir el perfil (p.ej. después de un análisis con IA,
// para actualizar el contador de intentos).
func (c *Container) Refresh(ctx context.Context) (User, error) {
	token := c.Token()
	if token == "" {
		return User{}, apperrors.Unauthorized("")
	}

	u, err := c.profiles.Profile(ctx, token)
	if err != nil {
		return User{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// si entre medio hubo logout, no resucitamos la sesión
	if c.token != token {
		return User{}, apperrors.Unauthorized("")
	}
	c.user = &u
	return u, nil
}

// Logout vacía la sesión a pedido del usuario.
func (c *Container) Logout() {
	c.clear("logout")
}

// Clear vacía la sesión porque el backend respondió 401.
func (c *Container) Clear() {
	c.clear("unauthorized")
}

func (c *Container) clear(reason string) {
	c.mu.Lock()
	had := c.user != nil
	c.token = ""
	c.user = nil
	hooks := append([]func(){}, c.onClear...)
	c.mu.Unlock()

	if !had {
		return
	}
	c.log.Info("session cleared", map[string]any{"reason": reason})
	for _, fn := range hooks {
		fn()
	}
}

func (c *Container) Current() (User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return User{}, false
	}
	return *c.user, true
}

func (c *Container) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// UserID devuelve "" si no hay sesión.
func (c *Container) UserID() string {
	u, ok := c.Current()
	if !ok {
		return ""
	}
	return u.ID
}

func sameUser(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
