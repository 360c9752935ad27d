package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"pet-companion/internal/ports/media"
)

const (
	// MaxMemory es lo que ParseMultipartForm guarda en memoria (el resto va a disco).
	MaxMemory = 10 << 20

	// MaxPhotoBytes limita el tamaño de una foto.
	MaxPhotoBytes = 15 << 20

	FieldDatos = "datos"
	FieldFiles = "files"
)

var ErrPhotoTooLarge = errors.New("photo too large")

// Parse parsea multipart si el request lo es. Requests JSON pasan sin tocar.
func Parse(r *http.Request) error {
	if !IsMultipart(r) {
		return nil
	}
	if r.MultipartForm != nil {
		return nil
	}
	return r.ParseMultipartForm(MaxMemory)
}

func IsMultipart(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/form-data")
}

// Datos decodifica el JSON del campo "datos" (multipart) o el body (JSON).
func Datos(r *http.Request, dst any) error {
	if err := Parse(r); err != nil {
		return err
	}
	if IsMultipart(r) {
		raw := r.FormValue(FieldDatos)
		if strings.TrimSpace(raw) == "" {
			return nil
		}
		return json.Unmarshal([]byte(raw), dst)
	}
	return json.NewDecoder(r.Body).Decode(dst)
}

// Photo lee el primer archivo del campo "files". Devuelve nil si no vino ninguno.
func Photo(r *http.Request) (*media.Photo, error) {
	if !IsMultipart(r) {
		return nil, nil
	}
	if err := Parse(r); err != nil {
		return nil, err
	}
	f, h, err := r.FormFile(FieldFiles)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxPhotoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	if len(data) > MaxPhotoBytes {
		return nil, ErrPhotoTooLarge
	}
	if len(data) == 0 {
		return nil, nil
	}

	return &media.Photo{
		Name:        h.Filename,
		ContentType: h.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// RequestPicker expone el archivo del request como si fuera el selector nativo.
// El cliente marca cancelled=true (o no manda archivo) cuando el usuario cerró el diálogo.
type RequestPicker struct {
	R *http.Request
}

func (p RequestPicker) Pick(_ context.Context) (media.Result, error) {
	if err := Parse(p.R); err != nil {
		return media.Result{}, err
	}
	if c, _ := strconv.ParseBool(p.R.FormValue("cancelled")); c {
		return media.Cancelled(), nil
	}
	ph, err := Photo(p.R)
	if err != nil {
		return media.Result{}, err
	}
	if ph == nil {
		return media.Cancelled(), nil
	}
	return media.Picked(*ph), nil
}
