package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/logger"
	"drivehub-backend/internal/security"
	"drivehub-backend/internal/service"
)

type AuthHandler struct {
	auth       service.AuthService
	tokens     security.TokenManager
	cookieName string
	cookieTTL  time.Duration
}

func NewAuthHandler(auth service.AuthService, tokens security.TokenManager, cookieName string, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens, cookieName: cookieName, cookieTTL: cookieTTL}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "invalid request body"})
		return
	}

	user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"status": "error", "message": "Invalid Credentials"})
			return
		}
		logger.Error("Login failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "message": "Internal error"})
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		logger.Error("Failed to mint session token", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "message": "Internal error"})
		return
	}
	h.setSessionCookie(w, token, int(h.cookieTTL.Seconds()))

	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "user": user})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "invalid request body"})
		return
	}

	if _, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password); err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			writeJSON(w, http.StatusConflict, map[string]string{"status": "error", "message": "Email exists"})
			return
		}
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": verr.Error()})
			return
		}
		logger.Error("Registration failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "message": "Internal error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setSessionCookie(w, "", -1)
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
