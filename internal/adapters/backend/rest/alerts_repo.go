package rest

import (
	"context"
	"net/http"
	"net/url"

	"pet-companion/internal/domain/alerts"
)

type AlertsRepo struct{ c *Client }

func NewAlertsRepo(c *Client) *AlertsRepo { return &AlertsRepo{c: c} }

func (r *AlertsRepo) List(ctx context.Context) ([]alerts.Alert, error) {
	var out []alerts.Alert
	err := r.c.getJSON(ctx, "/api/alerts", &out)
	return out, err
}

func (r *AlertsRepo) MarkRead(ctx context.Context, id string) error {
	return r.c.sendJSON(ctx, http.MethodPut, "/api/alerts/"+url.PathEscape(id)+"/read", nil, nil)
}
