package state

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"pet-companion/internal/domain/community"
	"pet-companion/internal/middleware"
	"pet-companion/internal/platform/apperrors"

	"github.com/go-chi/chi/v5"
)

// ActionConfirmDelete confirma el modal confirm_delete: borra la publicación pendiente.
// No pasa por Reduce porque tiene efectos.
const ActionConfirmDelete ActionType = "confirm_delete"

// Deleter borra publicaciones de la comunidad (community.Service).
type Deleter interface {
	Delete(ctx context.Context, userID string, ref community.ItemRef) error
}

func RegisterRoutes(r chi.Router, store *Store, deleter Deleter) {
	r.Route("/ui", func(ur chi.Router) {
		ur.Get("/", getUIHandler(store))
		ur.Post("/actions", dispatchHandler(store, deleter))
	})
}

type uiResponse struct {
	UI     UI                  `json:"ui"`
	Slices map[Slice]SliceInfo `json:"slices"`
}

// getUIHandler godoc
// @Summary      Estado de la UI y de las colecciones locales
// @Tags         ui
// @Produce      json
// @Success      200  {object}  uiResponse
// @Router       /ui [get]
func getUIHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, uiResponse{UI: store.UI(), Slices: store.Info()})
	}
}

// dispatchHandler godoc
// @Summary      Aplica una acción de UI
// @Tags         ui
// @Accept       json
// @Produce      json
// @Param        body  body  Action  true  "Acción"
// @Success      200  {object}  UI
// @Failure      400  {string}  string  "invalid ui action"
// @Router       /ui/actions [post]
func dispatchHandler(store *Store, deleter Deleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a Action
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if a.Type == ActionConfirmDelete {
			confirmDelete(w, r, store, deleter)
			return
		}

		ui, err := store.Dispatch(a)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, ui)
	}
}

func confirmDelete(w http.ResponseWriter, r *http.Request, store *Store, deleter Deleter) {
	u, ok := middleware.GetUser(r.Context())
	if !ok {
		apperrors.WriteError(w, apperrors.Unauthorized(""))
		return
	}

	cur := store.UI()
	if cur.Modal != ModalConfirmDelete || cur.PendingDeletion == nil {
		http.Error(w, ErrInvalidAction.Error(), http.StatusBadRequest)
		return
	}

	err := deleter.Delete(r.Context(), u.ID, *cur.PendingDeletion)
	switch {
	case err == nil:
		ui, _ := store.Dispatch(Action{Type: ActionClose})
		writeJSON(w, http.StatusOK, ui)
	case errors.Is(err, community.ErrNotFound):
		_, _ = store.Dispatch(Action{Type: ActionClose})
		http.Error(w, "listing not found", http.StatusNotFound)
	case errors.Is(err, community.ErrForbidden):
		_, _ = store.Dispatch(Action{Type: ActionClose})
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		n := apperrors.WriteError(w, err)
		_, _ = store.Dispatch(Action{Type: ActionShowNotice, Notice: &n})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
