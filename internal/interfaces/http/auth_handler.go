package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/multitenant-inventory/internal/application/auth"
	"github.com/jhoicas/multitenant-inventory/internal/application/dto"
	"github.com/jhoicas/multitenant-inventory/internal/domain"
	"github.com/jhoicas/multitenant-inventory/internal/infrastructure/metrics"
	"github.com/jhoicas/multitenant-inventory/pkg/logger"
)

// AuthHandler emite, renueva y revoca tokens.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	metrics *metrics.Metrics
	log     *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, m *metrics.Metrics, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, metrics: m, log: log}
}

// Token godoc
// @Summary      Obtener par de tokens (login)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TokenRequest  true  "email y password"
// @Success      200   {object}  dto.TokenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/token [post]
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var in dto.TokenRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	h.recordLogin(err)
	if err != nil {
		if auth.IsAuthError(err) {
			h.log.Info().Str("email", in.Email).Err(err).Msg("login rechazado")
		}
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Refresh godoc
// @Summary      Renovar access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  true  "refresh token"
// @Success      200   {object}  dto.AccessResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/token/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Refresh(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Blacklist godoc
// @Summary      Revocar refresh token (logout)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  true  "refresh token"
// @Success      200   {object}  dto.MessageResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/token/blacklist [post]
func (h *AuthHandler) Blacklist(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.uc.Blacklist(c.UserContext(), in); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "token revocado"})
}

func (h *AuthHandler) recordLogin(err error) {
	if h.metrics == nil {
		return
	}
	result := "ok"
	switch {
	case err == nil:
	case auth.IsAuthError(err):
		result = "rejected"
	case errors.Is(err, domain.ErrInvalidInput):
		result = "invalid"
	default:
		result = "error"
	}
	h.metrics.LoginAttemptsTotal.WithLabelValues(result).Inc()
}
