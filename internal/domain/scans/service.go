package scans

import (
	"context"
	"strings"

	"pet-companion/internal/platform/apperrors"
	"pet-companion/internal/platform/imaging"
	"pet-companion/internal/platform/logger"
	"pet-companion/internal/ports/media"
	"pet-companion/internal/session"
)

// Analyzer manda la foto al backend de IA.
type Analyzer interface {
	Analyze(ctx context.Context, kind Kind, petID string, photo media.Photo) (Result, error)
}

// PetOwners resuelve el dueño de una mascota (pets.Service).
type PetOwners interface {
	OwnerOf(petID string) (string, error)
}

// SessionRefresher vuelve a traer el perfil para actualizar el contador de intentos.
type SessionRefresher interface {
	Refresh(ctx context.Context) (session.User, error)
}

// Trigger dispara un refresh general sin esperarlo.
type Trigger interface {
	Trigger()
}

type Service struct {
	analyzer Analyzer
	pets     PetOwners
	session  SessionRefresher
	refresh  Trigger
	log      logger.Logger
}

func NewService(analyzer Analyzer, pets PetOwners, sess SessionRefresher, refresh Trigger, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		analyzer: analyzer,
		pets:     pets,
		session:  sess,
		refresh:  refresh,
		log:      log.With(map[string]any{"component": "scans"}),
	}
}

// Outcome es el resultado de Scan. Cancelled = el usuario cerró el selector.
type Outcome struct {
	Result    Result        `json:"result"`
	Cancelled bool          `json:"cancelled"`
	User      *session.User `json:"user,omitempty"`
}

// Scan pide la foto, la achica y la manda a analizar. Cancelar el selector
// termina sin efectos ni errores.
func (s *Service) Scan(ctx context.Context, userID string, kind Kind, petID string, picker media.Picker) (Outcome, error) {
	kind, ok := ParseKind(string(kind))
	if !ok {
		return Outcome{}, apperrors.Validation("kind", "Tipo de análisis desconocido.")
	}

	petID = strings.TrimSpace(petID)
	if petID != "" {
		owner, err := s.pets.OwnerOf(petID)
		if err != nil || !ownedBy(owner, userID) {
			return Outcome{}, apperrors.Validation("pet_id", "Elegí una de tus mascotas.")
		}
	}

	res, err := picker.Pick(ctx)
	if err != nil {
		return Outcome{}, err
	}
	if res.Cancelled {
		return Outcome{Cancelled: true}, nil
	}

	data, ct, err := imaging.Downscale(res.Photo.Data, imaging.MaxSide)
	if err != nil {
		return Outcome{}, apperrors.Validation("photo", "La foto no es una imagen válida.")
	}
	photo := media.Photo{Name: res.Photo.Name, ContentType: ct, Data: data}

	result, err := s.analyzer.Analyze(ctx, kind, petID, photo)
	if err != nil {
		// cupo agotado: igual refrescamos el perfil para mostrar los intentos reales
		if apperrors.KindOf(err) == apperrors.KindQuotaExceeded {
			s.refreshSession(ctx)
		}
		return Outcome{}, err
	}

	out := Outcome{Result: result}
	if u, ok := s.refreshSession(ctx); ok {
		out.User = &u
	}
	s.refresh.Trigger()
	return out, nil
}

func (s *Service) refreshSession(ctx context.Context) (session.User, bool) {
	u, err := s.session.Refresh(ctx)
	if err != nil {
		s.log.Warn("session refresh after scan failed", map[string]any{"error": err})
		return session.User{}, false
	}
	return u, true
}

// ownedBy: un id vacío de cualquier lado no cuenta como propio.
func ownedBy(owner, userID string) bool {
	owner, userID = strings.TrimSpace(owner), strings.TrimSpace(userID)
	if owner == "" || userID == "" {
		return false
	}
	return strings.EqualFold(owner, userID)
}
