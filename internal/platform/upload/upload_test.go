package upload

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func multipartReq(t *testing.T, fields map[string]string, file []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	if file != nil {
		part, err := mw.CreateFormFile(FieldFiles, "milo.jpg")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = part.Write(file)
	}
	_ = mw.Close()

	r := httptest.NewRequest(http.MethodPost, "/x", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestDatos_MultipartAndJSON(t *testing.T) {
	var got struct {
		Name string `json:"name"`
	}

	r := multipartReq(t, map[string]string{FieldDatos: `{"name":"Milo"}`}, nil)
	if err := Datos(r, &got); err != nil || got.Name != "Milo" {
		t.Fatalf("multipart datos: %#v %v", got, err)
	}

	got.Name = ""
	r = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"name":"Luna"}`))
	r.Header.Set("Content-Type", "application/json")
	if err := Datos(r, &got); err != nil || got.Name != "Luna" {
		t.Fatalf("json datos: %#v %v", got, err)
	}
}

func TestPhoto_NilWhenMissing(t *testing.T) {
	p, err := Photo(multipartReq(t, nil, nil))
	if err != nil || p != nil {
		t.Fatalf("expected no photo, got %#v %v", p, err)
	}

	p, err = Photo(multipartReq(t, nil, []byte("jpegdata")))
	if err != nil || p == nil || string(p.Data) != "jpegdata" || p.Name != "milo.jpg" {
		t.Fatalf("unexpected photo %#v %v", p, err)
	}
}

func TestRequestPicker(t *testing.T) {
	cases := []struct {
		name      string
		fields    map[string]string
		file      []byte
		cancelled bool
	}{
		{"explicit cancel", map[string]string{"cancelled": "true"}, []byte("x"), true},
		{"no file", nil, nil, true},
		{"picked", nil, []byte("x"), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := RequestPicker{R: multipartReq(t, c.fields, c.file)}.Pick(context.Background())
			if err != nil {
				t.Fatalf("pick: %v", err)
			}
			if res.Cancelled != c.cancelled {
				t.Fatalf("expected cancelled=%v, got %#v", c.cancelled, res)
			}
		})
	}
}
