package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDoJSON_InjectsCSRFOnMutatingCalls(t *testing.T) {
	var gotGet, gotPost string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			gotGet = r.Header.Get(DefaultCSRFHeader)
			http.SetCookie(w, &http.Cookie{Name: DefaultCSRFCookie, Value: "tok%3D1", Path: "/"})
			_, _ = w.Write([]byte(`{"ok":true}`))
		case http.MethodPost:
			gotPost = r.Header.Get(DefaultCSRFHeader)
			w.WriteHeader(http.StatusCreated)
		}
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL, time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	var out struct {
		OK bool `json:"ok"`
	}
	if err := c.DoJSON(context.Background(), http.MethodGet, "/csrf", nil, nil, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if !out.OK {
		t.Fatalf("expected decoded body")
	}
	if gotGet != "" {
		t.Fatalf("GET must not carry csrf header, got %q", gotGet)
	}

	if err := c.DoJSON(context.Background(), http.MethodPost, "pets", nil, map[string]string{"a": "b"}, nil); err != nil {
		t.Fatalf("post: %v", err)
	}
	if gotPost != "tok=1" {
		t.Fatalf("expected unescaped csrf token on POST, got %q", gotPost)
	}
}

func TestHTTPError_MessageFallbackChain(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"message":"Mascota no encontrada","error":"x"}`, "Mascota no encontrada"},
		{`{"error":"bad things"}`, "bad things"},
		{`<html>oops</html>`, "Error 500"},
		{``, "Error 500"},
	}
	for _, c := range cases {
		e := &HTTPError{StatusCode: 500, Body: c.body}
		if got := e.Message(); got != c.want {
			t.Fatalf("body=%q: expected %q, got %q", c.body, c.want, got)
		}
	}

	e := &HTTPError{StatusCode: 429, Body: `{"code":"QUOTA_EXCEEDED"}`}
	if e.Code() != "QUOTA_EXCEEDED" {
		t.Fatalf("expected code, got %q", e.Code())
	}
}

func TestDo_TransportErrorWhenUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c, _ := NewWithBaseURL(url, time.Second)
	err := c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil)

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %T %v", err, err)
	}
}

func TestDoMultipart_SendsFieldsAndFiles(t *testing.T) {
	var datos, fileBody, fileName string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		datos = r.FormValue("datos")
		f, h, err := r.FormFile("files")
		if err != nil {
			t.Errorf("form file: %v", err)
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		fileBody = string(b)
		fileName = h.Filename
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c, _ := NewWithBaseURL(ts.URL, time.Second)
	err := c.DoMultipart(context.Background(), http.MethodPost, "/api/pets", nil,
		map[string]string{"datos": `{"name":"Milo"}`},
		[]File{{Name: "milo.jpg", Data: []byte("jpegdata")}},
		nil,
	)
	if err != nil {
		t.Fatalf("multipart: %v", err)
	}
	if datos != `{"name":"Milo"}` || fileBody != "jpegdata" || fileName != "milo.jpg" {
		t.Fatalf("unexpected upload datos=%q file=%q name=%q", datos, fileBody, fileName)
	}
}
