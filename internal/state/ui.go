package state

import (
	"errors"
	"strings"

	"pet-companion/internal/domain/community"
	"pet-companion/internal/platform/apperrors"
)

// Modal identifica el modal abierto. "" = ninguno.
type Modal string

const (
	ModalNone          Modal = ""
	ModalValidation    Modal = apperrors.ModalValidation
	ModalUpsell        Modal = apperrors.ModalUpsell
	ModalConfirmDelete Modal = "confirm_delete"
	ModalPhotoZoom     Modal = "photo_zoom"
)

// UI es el estado global de modales y toasts.
type UI struct {
	Modal           Modal              `json:"modal"`
	Message         string             `json:"message,omitempty"`
	Field           string             `json:"field,omitempty"`
	Toast           string             `json:"toast,omitempty"`
	PendingDeletion *community.ItemRef `json:"pending_deletion,omitempty"`
	ZoomedPhoto     string             `json:"zoomed_photo,omitempty"`
}

type ActionType string

const (
	ActionShowNotice   ActionType = "show_notice"
	ActionAskDelete    ActionType = "ask_delete"
	ActionZoomPhoto    ActionType = "zoom_photo"
	ActionClose        ActionType = "close"
	ActionDismissToast ActionType = "dismiss_toast"
)

type Action struct {
	Type     ActionType         `json:"type"`
	Notice   *apperrors.Notice  `json:"notice,omitempty"`
	Ref      *community.ItemRef `json:"ref,omitempty"`
	PhotoURL string             `json:"photo_url,omitempty"`
}

var ErrInvalidAction = errors.New("invalid ui action")

// Reduce es puro: devuelve el estado siguiente sin tocar el anterior.
func Reduce(ui UI, a Action) (UI, error) {
	switch a.Type {
	case ActionShowNotice:
		if a.Notice == nil {
			return ui, ErrInvalidAction
		}
		n := *a.Notice
		if n.Type == apperrors.NoticeToast {
			ui.Toast = n.Message
			return ui, nil
		}
		return UI{
			Modal:   Modal(n.Modal),
			Message: n.Message,
			Field:   n.Field,
			Toast:   ui.Toast,
		}, nil

	case ActionAskDelete:
		if a.Ref == nil || !a.Ref.Tag.Valid() || strings.TrimSpace(a.Ref.ID) == "" {
			return ui, ErrInvalidAction
		}
		ref := *a.Ref
		return UI{Modal: ModalConfirmDelete, PendingDeletion: &ref, Toast: ui.Toast}, nil

	case ActionZoomPhoto:
		if strings.TrimSpace(a.PhotoURL) == "" {
			return ui, ErrInvalidAction
		}
		return UI{Modal: ModalPhotoZoom, ZoomedPhoto: a.PhotoURL, Toast: ui.Toast}, nil

	case ActionClose:
		return UI{Toast: ui.Toast}, nil

	case ActionDismissToast:
		ui.Toast = ""
		return ui, nil

	default:
		return ui, ErrInvalidAction
	}
}
