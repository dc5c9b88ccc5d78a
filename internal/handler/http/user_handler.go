package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/lieblingsring/storefront/internal/auth"
	"github.com/lieblingsring/storefront/internal/user"
)

type UserHandler struct {
	svc        user.Service
	tokens     *auth.TokenManager
	cookieName string
	validate   *validator.Validate
}

func NewUserHandler(svc user.Service, tokens *auth.TokenManager, cookieName string) *UserHandler {
	return &UserHandler{
		svc:        svc,
		tokens:     tokens,
		cookieName: cookieName,
		validate:   validator.New(),
	}
}

func (h *UserHandler) RegisterRoutes(router chi.Router) {
	router.Post("/auth/signup", h.handleSignup)
	router.Post("/auth/login", h.handleLogin)
	router.Post("/auth/logout", h.handleLogout)
	router.With(RequireUser(h.tokens, h.cookieName)).Get("/auth/me", h.handleMe)
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

func (h *UserHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "email and a password of at least 8 characters are required")
		return
	}

	created, err := h.svc.Signup(r.Context(), req.Email, req.Password, req.Name, req.Phone)
	if err != nil {
		var clientMessage string
		if errors.Is(err, user.ErrEmailExists) {
			clientMessage = "email already registered"
		} else if errors.Is(err, user.ErrInvalidInput) {
			clientMessage = err.Error()
		} else {
			log.Error().Err(err).Msg("Failed to sign up user via service")
			clientMessage = "failed to sign up"
		}
		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{"ok": true, "id": created.ID})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *UserHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		log.Error().Err(err).Msg("Failed to log in user via service")
		respondWithError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	token, err := h.tokens.Sign(u.ID.String(), u.Email)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sign session token")
		respondWithError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokens.TTL() / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

func (h *UserHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
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

type meResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (h *UserHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.svc.GetUserByID(r.Context(), userID)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "user not found")
		return
	}

	respondWithJSON(w, http.StatusOK, meResponse{
		ID:    u.ID.String(),
		Email: u.Email,
		Name:  u.Name,
		Phone: u.Phone,
	})
}
