package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tenant-auth-service/app/domain"
	"tenant-auth-service/app/port"
	apperrors "tenant-auth-service/app/utils/errors"
	appvalidator "tenant-auth-service/app/utils/validator"
)

// AccountHandler handles delegated account provisioning requests
type AccountHandler struct {
	authUsecase port.AuthUsecase
	validator   *appvalidator.Validator
	logger      *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(authUsecase port.AuthUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		authUsecase: authUsecase,
		validator:   appvalidator.New(),
		logger:      logger.With("component", "account_handler"),
	}
}

// ProvisionedAccountResponse carries the new identity and its generated
// password. The password is displayable exactly once; it is never stored
// in plaintext and never returned again.
type ProvisionedAccountResponse struct {
	Identity *domain.Identity `json:"identity"`
	Password string           `json:"password"`
}

// ProvisionManager creates a delegated manager account under an owner.
// The username is allocated from the display name; the initial password
// is generated server-side and returned once.
// @Summary Provision delegated manager
// @Tags accounts
// @Accept json
// @Produce json
// @Success 201 {object} ProvisionedAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /v1/accounts/managers [post]
func (h *AccountHandler) ProvisionManager(c echo.Context) error {
	var input domain.ProvisionInput
	if err := c.Bind(&input); err != nil {
		return writeError(c, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid request body"))
	}
	if err := h.validator.Validate(input); err != nil {
		return writeError(c, apperrors.NewValidationError(err.Error()))
	}
	for _, p := range input.Permissions {
		if !appvalidator.IsValidPermission(string(p)) {
			return writeError(c, apperrors.Newf(apperrors.ErrCodeInvalidInput, "unknown permission %q", p))
		}
	}

	identity, password, err := h.authUsecase.ProvisionDelegatedAccount(c.Request().Context(), input)
	if err != nil {
		h.logger.Warn("account provisioning failed", "error", err, "owner_id", input.OwnerID)
		return writeError(c, err)
	}

	h.logger.Info("delegated account provisioned",
		"identity_id", identity.ID,
		"username", identity.Username,
		"owner_id", input.OwnerID)

	return c.JSON(http.StatusCreated, ProvisionedAccountResponse{
		Identity: identity,
		Password: password,
	})
}

// StatusUpdateRequest carries the target lifecycle status.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,account_status"`
}

// SetManagerStatus activates or deactivates a delegated account. A
// deactivated account is locked out at its next login or restore.
// @Summary Update manager status
// @Tags accounts
// @Accept json
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /v1/accounts/managers/{id}/status [patch]
func (h *AccountHandler) SetManagerStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid account id"))
	}

	var req StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid request body"))
	}
	if err := h.validator.Validate(req); err != nil {
		return writeError(c, apperrors.NewValidationError(err.Error()))
	}

	if err := h.authUsecase.UpdateManagerStatus(c.Request().Context(), id, domain.IdentityStatus(req.Status)); err != nil {
		h.logger.Warn("manager status update failed", "error", err, "identity_id", id)
		return writeError(c, err)
	}

	h.logger.Info("manager status updated", "identity_id", id, "status", req.Status)
	return c.NoContent(http.StatusNoContent)
}
