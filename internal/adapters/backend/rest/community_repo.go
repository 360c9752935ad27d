package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"pet-companion/internal/domain/community"
	"pet-companion/internal/platform/httpclient"
	"pet-companion/internal/ports/media"
)

// CommunityRepo implementa community.Source y community.Publisher.
type CommunityRepo struct{ c *Client }

func NewCommunityRepo(c *Client) *CommunityRepo { return &CommunityRepo{c: c} }

func collection(tag community.Tag) (string, error) {
	switch tag {
	case community.TagLost:
		return "/api/lost-pets", nil
	case community.TagAdoption:
		return "/api/adoptions", nil
	case community.TagShelter:
		return "/api/shelters", nil
	default:
		return "", fmt.Errorf("unknown tag %q", tag)
	}
}

func (r *CommunityRepo) ListLost(ctx context.Context) ([]community.LostDTO, error) {
	var out []community.LostDTO
	err := r.c.getJSON(ctx, "/api/lost-pets", &out)
	return out, err
}

func (r *CommunityRepo) ListAdoption(ctx context.Context) ([]community.AdoptionDTO, error) {
	var out []community.AdoptionDTO
	err := r.c.getJSON(ctx, "/api/adoptions", &out)
	return out, err
}

func (r *CommunityRepo) ListShelters(ctx context.Context) ([]community.ShelterDTO, error) {
	var out []community.ShelterDTO
	err := r.c.getJSON(ctx, "/api/shelters", &out)
	return out, err
}

func (r *CommunityRepo) PublishLost(ctx context.Context, in community.LostDTO, photo *media.Photo) error {
	if photo == nil {
		return r.c.sendJSON(ctx, http.MethodPost, "/api/lost-pets", in, nil)
	}
	datos, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return r.c.sendMultipart(ctx, http.MethodPost, "/api/lost-pets",
		map[string]string{"datos": string(datos)},
		[]httpclient.File{fileOf(*photo)},
		nil,
	)
}

func (r *CommunityRepo) Delete(ctx context.Context, ref community.ItemRef) error {
	base, err := collection(ref.Tag)
	if err != nil {
		return err
	}
	return r.c.sendJSON(ctx, http.MethodDelete, base+"/"+url.PathEscape(ref.ID), nil, nil)
}
