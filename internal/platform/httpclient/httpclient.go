package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second

	DefaultCSRFCookie = "XSRF-TOKEN"
	DefaultCSRFHeader = "X-XSRF-TOKEN"

	maxBody = 1 << 20 // 1MB
)

// Client envuelve *http.Client con helpers comunes para adapters.
// Mantiene cookies (sesión + CSRF) en un jar propio.
type Client struct {
	HTTP    *http.Client
	BaseURL string // opcional; si se define, DoJSON puede recibir paths relativos

	CSRFCookie string
	CSRFHeader string
}

// New crea un Client con timeout razonable y cookie jar.
func New(timeout time.Duration) *Client {
	return NewWithTransport(timeout, nil)
}

// NewWithBaseURL crea un Client con BaseURL + timeout.
func NewWithBaseURL(baseURL string, timeout time.Duration) (*Client, error) {
	c := New(timeout)
	if strings.TrimSpace(baseURL) == "" {
		return c, nil
	}
	_, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c.BaseURL = strings.TrimRight(baseURL, "/")
	return c, nil
}

// NewWithTransport permite inyectar un Transport (p.ej. para tests).
func NewWithTransport(timeout time.Duration, tr http.RoundTripper) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if tr == nil {
		tr = http.DefaultTransport
	}
	jar, _ := cookiejar.New(nil) // nunca falla con options nil
	return &Client{
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: tr,
			Jar:       jar,
		},
		CSRFCookie: DefaultCSRFCookie,
		CSRFHeader: DefaultCSRFHeader,
	}
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// errorBody es el formato de error que devuelve el backend.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func (e *HTTPError) decode() errorBody {
	var b errorBody
	_ = json.Unmarshal([]byte(e.Body), &b)
	return b
}

// Message aplica la cadena message || error || "Error <status>".
func (e *HTTPError) Message() string {
	b := e.decode()
	if s := strings.TrimSpace(b.Message); s != "" {
		return s
	}
	if s := strings.TrimSpace(b.Error); s != "" {
		return s
	}
	return fmt.Sprintf("Error %d", e.StatusCode)
}

// Code devuelve el código de error del backend, si vino.
func (e *HTTPError) Code() string {
	return strings.TrimSpace(e.decode().Code)
}

// TransportError indica que no hubo respuesta (red caída, timeout, DNS...).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "httpclient: do request: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// File es un archivo a subir en multipart.
type File struct {
	Field       string // por defecto "files"
	Name        string
	ContentType string
	Data        []byte
}

// DoJSON hace un request JSON.
// - in: body a enviar (opcional). Si nil => no body.
// - out: donde decodificar JSON (opcional). Si nil => ignora body.
// Retorna *HTTPError si status no es 2xx y *TransportError si no hubo respuesta.
func (c *Client) DoJSON(
	ctx context.Context,
	method string,
	pathOrURL string,
	headers map[string]string,
	in any,
	out any,
) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	h := map[string]string{}
	if in != nil {
		h["Content-Type"] = "application/json"
	}
	for k, v := range headers {
		h[k] = v
	}

	return c.do(ctx, method, pathOrURL, h, body, out)
}

// DoMultipart manda multipart/form-data: los campos de texto van en fields
// (convención del backend: JSON serializado en "datos") y los archivos en files.
func (c *Client) DoMultipart(
	ctx context.Context,
	method string,
	pathOrURL string,
	headers map[string]string,
	fields map[string]string,
	files []File,
	out any,
) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("httpclient: write field: %w", err)
		}
	}
	for _, f := range files {
		field := f.Field
		if field == "" {
			field = "files"
		}
		name := f.Name
		if name == "" {
			name = "upload"
		}
		part, err := mw.CreateFormFile(field, name)
		if err != nil {
			return fmt.Errorf("httpclient: create form file: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return fmt.Errorf("httpclient: write file: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("httpclient: close multipart: %w", err)
	}

	h := map[string]string{"Content-Type": mw.FormDataContentType()}
	for k, v := range headers {
		h[k] = v
	}

	return c.do(ctx, method, pathOrURL, h, &buf, out)
}

func (c *Client) do(ctx context.Context, method, pathOrURL string, headers map[string]string, body io.Reader, out any) error {
	if c == nil || c.HTTP == nil {
		return errors.New("httpclient: nil client")
	}

	fullURL, err := c.resolveURL(pathOrURL)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if isMutating(method) {
		if tok := c.CSRFToken(); tok != "" {
			req.Header.Set(c.CSRFHeader, tok)
		}
	}
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, _ := readAtMost(resp.Body, maxBody)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}

	return nil
}

// CSRFToken lee el token CSRF de la cookie guardada para BaseURL.
func (c *Client) CSRFToken() string {
	if c == nil || c.HTTP == nil || c.HTTP.Jar == nil || c.BaseURL == "" || c.CSRFCookie == "" {
		return ""
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return ""
	}
	for _, ck := range c.HTTP.Jar.Cookies(u) {
		if ck.Name == c.CSRFCookie {
			v, err := url.QueryUnescape(ck.Value)
			if err != nil {
				return ck.Value
			}
			return v
		}
	}
	return ""
}

// ResetCookies descarta la sesión de cookies (logout).
func (c *Client) ResetCookies() {
	if c == nil || c.HTTP == nil {
		return
	}
	jar, _ := cookiejar.New(nil)
	c.HTTP.Jar = jar
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return "", errors.New("httpclient: empty url")
	}

	// Si ya es URL absoluta, úsala tal cual.
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL, nil
	}

	if strings.TrimSpace(c.BaseURL) == "" {
		return "", errors.New("httpclient: relative path requires BaseURL")
	}

	if !strings.HasPrefix(pathOrURL, "/") {
		pathOrURL = "/" + pathOrURL
	}
	return c.BaseURL + pathOrURL, nil
}

func isMutating(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	default:
		return true
	}
}

func readAtMost(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		max = maxBody
	}
	lr := io.LimitReader(r, max)
	return io.ReadAll(lr)
}
