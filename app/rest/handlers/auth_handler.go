package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"tenant-auth-service/app/domain"
	"tenant-auth-service/app/port"
	apperrors "tenant-auth-service/app/utils/errors"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authUsecase port.AuthUsecase
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase port.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

// AdminLoginRequest is the payload for an identity-provider login.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the payload for a stored-credential login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse wraps the active session for JSON responses.
type SessionResponse struct {
	Session *domain.Session `json:"session"`
}

// AdminLogin authenticates an administrator against the identity
// provider. The organizational domain check runs before any provider
// call, so a wrong-domain email fails fast with 403.
// @Summary Administrator login
// @Tags authentication
// @Accept json
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /v1/auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid request body"))
	}
	if req.Email == "" || req.Password == "" {
		return writeError(c, apperrors.New(apperrors.ErrCodeMissingField, "email and password are required"))
	}

	session, err := h.authUsecase.LoginAsAdministrator(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("administrator login failed", "error", err, "ip", c.RealIP())
		return writeError(c, err)
	}

	h.logger.Info("administrator logged in", "uid", session.UID, "ip", c.RealIP())
	return c.JSON(http.StatusOK, SessionResponse{Session: session})
}

// Login authenticates a tenant owner or delegated manager against the
// stored credential collections.
// @Summary Credential login
// @Tags authentication
// @Accept json
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid request body"))
	}
	if req.Username == "" || req.Password == "" {
		return writeError(c, apperrors.New(apperrors.ErrCodeMissingField, "username and password are required"))
	}

	session, err := h.authUsecase.LoginWithCredentials(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Warn("credential login failed", "error", err, "ip", c.RealIP())
		return writeError(c, err)
	}

	h.logger.Info("login succeeded", "uid", session.UID, "role", session.Role, "ip", c.RealIP())
	return c.JSON(http.StatusOK, SessionResponse{Session: session})
}

// Restore attempts to rebuild a session from the persisted slot or the
// identity provider. A failed restore is not an error: the response is
// 200 with a null session, and the client falls back to the login page.
// @Summary Restore session
// @Tags authentication
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /v1/auth/restore [post]
func (h *AuthHandler) Restore(c echo.Context) error {
	session, err := h.authUsecase.RestoreSession(c.Request().Context())
	if err != nil {
		h.logger.Error("session restore failed", "error", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SessionResponse{Session: session})
}

// Logout terminates the current session and clears the persisted slot.
// Logging out without a session is a no-op.
// @Summary Logout
// @Tags authentication
// @Success 204
// @Router /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authUsecase.Logout(c.Request().Context()); err != nil {
		h.logger.Error("logout failed", "error", err)
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CurrentSession returns the in-memory session snapshot.
// @Summary Current session
// @Tags authentication
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} ErrorResponse
// @Router /v1/auth/session [get]
func (h *AuthHandler) CurrentSession(c echo.Context) error {
	session := h.authUsecase.CurrentSession()
	if session == nil {
		return writeError(c, domain.ErrNoSession)
	}
	return c.JSON(http.StatusOK, SessionResponse{Session: session})
}

// CheckAccess evaluates an access spec against the current session and
// returns the decision. Denial is a normal outcome, not an error.
// @Summary Evaluate access
// @Tags authorization
// @Accept json
// @Produce json
// @Success 200 {object} domain.Decision
// @Failure 400 {object} ErrorResponse
// @Router /v1/auth/access [post]
func (h *AuthHandler) CheckAccess(c echo.Context) error {
	var spec domain.AccessSpec
	if err := c.Bind(&spec); err != nil {
		return writeError(c, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid access spec"))
	}

	decision := h.authUsecase.CheckAccess(spec)
	return c.JSON(http.StatusOK, decision)
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// writeError maps an error onto the uniform error body and status code.
func writeError(c echo.Context, err error) error {
	appErr := apperrors.FromDomain(err)
	return c.JSON(appErr.StatusCode, ErrorResponse{
		Error:   appErr.Message,
		Code:    string(appErr.Code),
		Details: appErr.Details,
	})
}
