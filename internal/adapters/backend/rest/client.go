package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-companion/internal/platform/apperrors"
	"pet-companion/internal/platform/httpclient"
	"pet-companion/internal/platform/logger"
)

// TokenSource da el token de la sesión actual.
type TokenSource interface {
	Token() string
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client es la base de todos los repos REST: agrega el bearer token,
// traduce errores a apperrors y vacía la sesión ante un 401.
type Client struct {
	http   *httpclient.Client
	tokens TokenSource
	log    logger.Logger

	onUnauthorized func()
}

func NewClient(cfg Config, tokens TokenSource, log logger.Logger) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{http: hc, tokens: tokens, log: log.With(map[string]any{"component": "backend"})}, nil
}

// OnUnauthorized registra qué hacer cuando el backend responde 401 (session.Clear).
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// ResetCookies descarta cookies (sesión + CSRF) al hacer logout.
func (c *Client) ResetCookies() {
	c.http.ResetCookies()
}

func (c *Client) headers(token string) map[string]string {
	if token == "" && c.tokens != nil {
		token = c.tokens.Token()
	}
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.mapErr(c.http.DoJSON(ctx, http.MethodGet, path, c.headers(""), nil, out))
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	return c.mapErr(c.http.DoJSON(ctx, method, path, c.headers(""), in, out))
}

func (c *Client) sendMultipart(ctx context.Context, method, path string, fields map[string]string, files []httpclient.File, out any) error {
	return c.mapErr(c.http.DoMultipart(ctx, method, path, c.headers(""), fields, files, out))
}

// mapErr traduce errores de transporte al vocabulario de la app.
func (c *Client) mapErr(err error) error {
	if err == nil {
		return nil
	}

	var te *httpclient.TransportError
	if errors.As(err, &te) {
		return apperrors.Network(err)
	}

	var he *httpclient.HTTPError
	if !errors.As(err, &he) {
		return err
	}

	switch {
	case he.StatusCode == http.StatusUnauthorized:
		c.log.Warn("backend answered 401, clearing session", nil)
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apperrors.Unauthorized("")
	case he.Code() == apperrors.QuotaExceededCode || he.StatusCode == http.StatusPaymentRequired:
		return apperrors.Quota(he.StatusCode, he.Message())
	default:
		return apperrors.Server(he.StatusCode, he.Message())
	}
}
