package session

import (
	"context"
	"encoding/json"
	"net/http"

	"pet-companion/internal/platform/apperrors"

	"github.com/go-chi/chi/v5"
)

// LoginHook corre después de un login exitoso (hidratar y refrescar el estado).
type LoginHook func(ctx context.Context)

func RegisterRoutes(r chi.Router, c *Container, afterLogin LoginHook) {
	r.Route("/session", func(sr chi.Router) {
		sr.Post("/login", loginHandler(c, afterLogin))
		sr.Post("/logout", logoutHandler(c))
		sr.Get("/", currentHandler(c))
	})
}

type loginRequest struct {
	Token string `json:"token"`
}

// loginHandler godoc
// @Summary      Inicia la sesión con el token del backend
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  loginRequest  true  "Token"
// @Success      200  {object}  User
// @Failure      401  {object}  apperrors.Notice
// @Failure      422  {object}  apperrors.Notice
// @Router       /session/login [post]
func loginHandler(c *Container, afterLogin LoginHook) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := c.Login(r.Context(), req.Token)
		if err != nil {
			apperrors.WriteError(w, err)
			return
		}
		if afterLogin != nil {
			afterLogin(r.Context())
		}
		// el refresh pudo haber actualizado el perfil o vaciado la sesión (401)
		if cur, ok := c.Current(); ok {
			u = cur
		} else {
			apperrors.WriteError(w, apperrors.Unauthorized(""))
			return
		}

		writeJSON(w, http.StatusOK, u)
	}
}

// logoutHandler godoc
// @Summary      Cierra la sesión y vacía el estado local
// @Tags         session
// @Success      204
// @Router       /session/logout [post]
func logoutHandler(c *Container) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		c.Logout()
		w.WriteHeader(http.StatusNoContent)
	}
}

// currentHandler godoc
// @Summary      Usuario de la sesión actual
// @Tags         session
// @Produce      json
// @Success      200  {object}  User
// @Failure      401  {object}  apperrors.Notice
// @Router       /session [get]
func currentHandler(c *Container) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		u, ok := c.Current()
		if !ok {
			apperrors.WriteError(w, apperrors.Unauthorized(""))
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
