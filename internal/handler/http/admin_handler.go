package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/lieblingsring/storefront/internal/auth"
)

const adminSessionTTL = 60 * 60 * 6 // 6 hours

// AdminAuthHandler issues and clears the shared-secret admin session cookie.
type AdminAuthHandler struct {
	password   string
	cookieName string
}

func NewAdminAuthHandler(password, cookieName string) *AdminAuthHandler {
	return &AdminAuthHandler{password: password, cookieName: cookieName}
}

// RegisterRoutes registers the unguarded login/logout endpoints; they must
// stay outside the admin guard or nobody could ever log in.
func (h *AdminAuthHandler) RegisterRoutes(router chi.Router) {
	router.Post("/login", h.handleLogin)
	router.Post("/logout", h.handleLogout)
}

func (h *AdminAuthHandler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/me", h.handleMe)
}

type adminLoginRequest struct {
	Password string `json:"password"`
}

func (h *AdminAuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if !auth.CheckAdminPassword(req.Password, h.password) {
		log.Warn().Str("remote_addr", r.RemoteAddr).Msg("Admin login failed")
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    auth.AdminSessionValue,
		Path:     "/",
		MaxAge:   adminSessionTTL,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

func (h *AdminAuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

func (h *AdminAuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	// Reached only behind AdminOnly.
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}
