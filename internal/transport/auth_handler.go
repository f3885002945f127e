package transport

import (
	"encoding/json"
	"net/http"

	"storeforge/internal/middleware"
	"storeforge/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoginRequest is the staff login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionRequest carries a session token for logout/refresh
type SessionRequest struct {
	SessionToken string `json:"session_token" validate:"required"`
}

// StaffProfile is the staff account shape returned by the API
type StaffProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// LoginResponse is the login response
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	SessionToken string       `json:"session_token"`
	Staff        StaffProfile `json:"staff"`
}

// AuthHandler handles HTTP requests for staff authentication
type AuthHandler struct {
	auth   service.AuthService
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/refresh", h.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/logout", h.Logout)
			r.Get("/profile", h.Profile)
		})
	})
}

// Login authenticates a staff member.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	accessToken, sessionToken, staff, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			middleware.RespondWithError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.logger.Error("Login failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	h.logger.Info("Staff logged in", zap.String("staff_id", staff.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, LoginResponse{
		AccessToken:  accessToken,
		SessionToken: sessionToken,
		Staff: StaffProfile{
			ID:    staff.ID.String(),
			Email: staff.Email,
			Name:  staff.Name,
			Role:  staff.Role,
		},
	})
}

// Logout revokes the caller's session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.auth.Logout(r.Context(), req.SessionToken); err != nil {
		h.logger.Error("Logout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to logout")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Refresh mints a new access token against a live session.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	accessToken, err := h.auth.Refresh(r.Context(), req.SessionToken)
	if err != nil {
		switch err {
		case service.ErrInvalidToken:
			middleware.RespondWithError(w, http.StatusUnauthorized, "invalid session token")
		case service.ErrSessionExpired:
			middleware.RespondWithError(w, http.StatusUnauthorized, "session expired")
		default:
			h.logger.Error("Refresh failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to refresh token")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"access_token": accessToken})
}

// Profile returns the authenticated staff member's account.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	staffIDStr, ok := middleware.GetStaffID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	staffID, err := uuid.Parse(staffIDStr)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid staff ID")
		return
	}

	staff, err := h.auth.GetStaffByID(r.Context(), staffID)
	if err != nil {
		h.logger.Error("Failed to load staff profile", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, StaffProfile{
		ID:    staff.ID.String(),
		Email: staff.Email,
		Name:  staff.Name,
		Role:  staff.Role,
	})
}
