package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
)

type NoticeType string

const (
	NoticeToast NoticeType = "toast"
	NoticeModal NoticeType = "modal"
)

// Modales conocidos por la UI.
const (
	ModalValidation = "validation"
	ModalUpsell     = "upsell"
)

// Notice es lo que la UI muestra para un error: toast o modal.
type Notice struct {
	Type    NoticeType `json:"type"`
	Kind    Kind       `json:"kind"`
	Modal   string     `json:"modal,omitempty"`
	Field   string     `json:"field,omitempty"`
	Message string     `json:"message"`
}

// NoticeFrom convierte cualquier error en un Notice y el status HTTP a devolver.
func NoticeFrom(err error) (Notice, int) {
	var ae *Error
	if !errors.As(err, &ae) {
		return Notice{Type: NoticeToast, Kind: KindServer, Message: MsgInternal}, http.StatusInternalServerError
	}

	switch ae.Kind {
	case KindValidation:
		return Notice{Type: NoticeModal, Kind: ae.Kind, Modal: ModalValidation, Field: ae.Field, Message: ae.Message},
			http.StatusUnprocessableEntity
	case KindQuotaExceeded:
		return Notice{Type: NoticeModal, Kind: ae.Kind, Modal: ModalUpsell, Message: ae.Message}, http.StatusPaymentRequired
	case KindNetwork:
		return Notice{Type: NoticeToast, Kind: ae.Kind, Message: ae.Message}, http.StatusServiceUnavailable
	case KindUnauthorized:
		return Notice{Type: NoticeToast, Kind: ae.Kind, Message: ae.Message}, http.StatusUnauthorized
	default:
		status := ae.Status
		switch {
		case status >= 500 || status == 0:
			status = http.StatusBadGateway
		case status < 400:
			status = http.StatusBadGateway
		}
		return Notice{Type: NoticeToast, Kind: KindServer, Message: ae.Message}, status
	}
}

// WriteError serializa el Notice correspondiente a err.
func WriteError(w http.ResponseWriter, err error) Notice {
	n, status := NoticeFrom(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"notice": n})
	return n
}
