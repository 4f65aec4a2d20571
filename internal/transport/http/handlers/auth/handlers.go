package authhandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
)

type Handler struct {
	Store      *auth.Store
	Secret     string
	TokenTTL   time.Duration
	LoginLimit int
}

func NewHandler(store *auth.Store, secret string, tokenTTL time.Duration, loginLimit int) *Handler {
	return &Handler{Store: store, Secret: secret, TokenTTL: tokenTTL, LoginLimit: loginLimit}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.LoginRateLimit(h.LoginLimit, time.Minute)).Post("/auth/login", h.handleLogin)
	r.With(middleware.RequireRole()).Get("/auth/me", h.handleMe)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "email and password are required", reqID)
		return
	}

	user, err := h.Store.FindActiveUserByEmail(r.Context(), payload.Email)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", reqID)
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", reqID)
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		UserID:     user.ID,
		EmployeeID: user.EmployeeID,
		Role:       user.Role,
	}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_failed", "failed to issue token", reqID)
		return
	}

	if err := h.Store.UpdateLastLogin(r.Context(), user.ID, time.Now().UTC()); err != nil {
		slog.Warn("update last login failed", "userId", user.ID, "err", err)
	}

	api.Success(w, map[string]any{
		"token":     token,
		"expiresIn": int(h.TokenTTL.Seconds()),
		"role":      user.Role,
	}, reqID)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	api.Success(w, map[string]string{
		"userId":     user.UserID,
		"employeeId": user.EmployeeID,
		"role":       user.Role,
	}, reqID)
}
