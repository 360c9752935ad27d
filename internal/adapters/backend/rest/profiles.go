package rest

import (
	"context"
	"net/http"

	"pet-companion/internal/session"
)

type Profiles struct{ c *Client }

func NewProfiles(c *Client) *Profiles { return &Profiles{c: c} }

type profileDTO struct {
	ID                any    `json:"id"`
	Name              string `json:"name"`
	DisplayName       string `json:"display_name"`
	PhotoURL          string `json:"photo_url"`
	Avatar            string `json:"avatar"`
	MonthlyAIAttempts int    `json:"monthly_ai_attempts"`
	IsCollaborator    bool   `json:"is_collaborator"`
}

// Profile trae el usuario dueño de token. Se usa con el token explícito
// porque en el login todavía no hay sesión.
func (p *Profiles) Profile(ctx context.Context, token string) (session.User, error) {
	var dto profileDTO
	err := p.c.mapErr(p.c.http.DoJSON(ctx, http.MethodGet, "/api/user", p.c.headers(token), nil, &dto))
	if err != nil {
		return session.User{}, err
	}

	u := session.User{
		ID:                idString(dto.ID),
		DisplayName:       first(dto.DisplayName, dto.Name),
		PhotoURL:          first(dto.PhotoURL, dto.Avatar),
		MonthlyAIAttempts: dto.MonthlyAIAttempts,
		IsCollaborator:    dto.IsCollaborator,
	}
	return u, nil
}
