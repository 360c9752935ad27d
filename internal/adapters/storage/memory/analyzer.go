package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pet-companion/internal/domain/scans"
	"pet-companion/internal/platform/apperrors"
	"pet-companion/internal/ports/media"

	"github.com/google/uuid"
)

// TokenSource da el token de la sesión actual.
type TokenSource interface {
	Token() string
}

// Analyzer simula la IA del backend con un cupo mensual por usuario.
type Analyzer struct {
	mu       sync.Mutex
	profiles *Profiles
	tokens   TokenSource
	limit    int

	now func() time.Time
}

// NewAnalyzer crea el simulador. limit <= 0 = sin límite.
func NewAnalyzer(profiles *Profiles, tokens TokenSource, limit int) *Analyzer {
	return &Analyzer{profiles: profiles, tokens: tokens, limit: limit, now: time.Now}
}

func (a *Analyzer) Analyze(ctx context.Context, kind scans.Kind, petID string, photo media.Photo) (scans.Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	token := a.tokens.Token()
	u, err := a.profiles.Profile(ctx, token)
	if err != nil {
		return scans.Result{}, err
	}
	if a.limit > 0 && !u.IsCollaborator && u.MonthlyAIAttempts >= a.limit {
		return scans.Result{}, apperrors.Quota(402, "")
	}
	a.profiles.UseAttempt(token)

	return scans.Result{
		ID:        uuid.NewString(),
		Kind:      kind,
		PetID:     petID,
		Summary:   fmt.Sprintf("Análisis %s listo (%d KB)", kind, len(photo.Data)/1024),
		Details:   map[string]any{"bytes": len(photo.Data), "content_type": photo.ContentType},
		CreatedAt: a.now().UTC(),
	}, nil
}
