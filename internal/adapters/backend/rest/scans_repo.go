package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"pet-companion/internal/domain/scans"
	"pet-companion/internal/platform/httpclient"
	"pet-companion/internal/ports/media"
)

// Analyzer implementa scans.Analyzer contra /api/scans/{kind}.
type Analyzer struct{ c *Client }

func NewAnalyzer(c *Client) *Analyzer { return &Analyzer{c: c} }

func (a *Analyzer) Analyze(ctx context.Context, kind scans.Kind, petID string, photo media.Photo) (scans.Result, error) {
	datos, _ := json.Marshal(map[string]string{"pet_id": petID})

	var out scans.Result
	err := a.c.sendMultipart(ctx, http.MethodPost, "/api/scans/"+string(kind),
		map[string]string{"datos": string(datos)},
		[]httpclient.File{fileOf(photo)},
		&out,
	)
	if err != nil {
		return scans.Result{}, err
	}
	if out.Kind == "" {
		out.Kind = kind
	}
	if out.PetID == "" {
		out.PetID = petID
	}
	return out, nil
}
