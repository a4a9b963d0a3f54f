package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmorell/newsroom-be/internal/apperr"
	"github.com/jmorell/newsroom-be/internal/auth"
	"github.com/jmorell/newsroom-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	users  services.UserServiceProvider
	audit  services.AuditServiceProvider
	tokens *auth.TokenManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, audit services.AuditServiceProvider, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{users: users, audit: audit, tokens: tokens}
}

// CredentialsPayload defines the structure for register and login requests.
type CredentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles new user registration. The first account registered in
// a fresh system is granted the admin role.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if payload.Username == "" || payload.Password == "" {
		respondMsg(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.users.Register(payload.Username, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrUserExists):
			respondMsg(w, http.StatusBadRequest, "User already exists")
		case errors.Is(err, apperr.ErrValidation):
			respondMsg(w, http.StatusBadRequest, "Username and password are required")
		default:
			log.Error().Err(err).Str("username", payload.Username).Msg("Failed to register user")
			respondMsg(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	if err := h.audit.Record("user.register", "info", fmt.Sprintf("User %s registered with role %s", user.Username, user.Role), &user.ID); err != nil {
		log.Warn().Err(err).Msg("Failed to record registration audit event")
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"msg":  "User registered successfully",
		"role": user.Role,
	})
}

// Login handles credential verification and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.Authenticate(payload.Username, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrUserNotFound):
			respondMsg(w, http.StatusBadRequest, "User does not exist")
		case errors.Is(err, apperr.ErrInvalidCredentials):
			log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
			if auditErr := h.audit.Record("user.login.fail", "warn", fmt.Sprintf("Failed login for %s", payload.Username), nil); auditErr != nil {
				log.Warn().Err(auditErr).Msg("Failed to record login audit event")
			}
			respondMsg(w, http.StatusBadRequest, "Invalid credentials")
		default:
			log.Error().Err(err).Str("username", payload.Username).Msg("Login failed")
			respondMsg(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Role)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue token")
		respondMsg(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := h.audit.Record("user.login", "info", fmt.Sprintf("User %s logged in", user.Username), &user.ID); err != nil {
		log.Warn().Err(err).Msg("Failed to record login audit event")
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"token": token,
		"role":  user.Role,
	})
}
