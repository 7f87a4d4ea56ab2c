package handlers

import (
	"Recipe-API/domain"
	"Recipe-API/internal/api/presenters"
	"Recipe-API/internal/middleware"
	"Recipe-API/internal/utils"
	"Recipe-API/pkg/user"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type (
	UserHandler interface {
		Register(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		RefreshToken(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
		validator   *validator.Validate
		log         *zap.Logger
	}
)

func NewUserHandler(userService user.UserService, validator *validator.Validate, log *zap.Logger) UserHandler {
	return &userHandler{
		userService: userService,
		validator:   validator,
		log:         log,
	}
}

func (h *userHandler) Register(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := utils.CheckRequiredFields(h.validator, payload, "username", "password", "name"); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	req := new(domain.RegisterRequest)
	if err := bindPayload(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.userService.Register(c.Context(), *req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageUsernameExists, nil)
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageEmailExists, nil)
		case errors.Is(err, domain.ErrPasswordTooLong):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPasswordLength, nil)
		}
		h.log.Error("register failed", zap.Error(err))
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedRegister, nil)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRegister)
}

func (h *userHandler) Login(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := utils.CheckRequiredFields(h.validator, payload, "username", "password"); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	req := new(domain.LoginRequest)
	if err := bindPayload(c, req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.userService.Login(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedLogin, nil)
		}
		h.log.Error("login failed", zap.Error(err))
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessRequest, nil)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLogin)
}

// RefreshToken sits behind the refresh-kind auth middleware.
func (h *userHandler) RefreshToken(c *fiber.Ctx) error {
	token, _ := c.Locals(middleware.LocalsToken).(string)

	accessToken, err := h.userService.RefreshToken(c.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrFailedGenerateToken) {
			h.log.Error("refresh failed", zap.Error(err))
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedRefreshToken, nil)
		}
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, nil)
	}

	return c.Status(fiber.StatusOK).JSON(domain.RefreshTokenResponse{
		Status:      domain.StatusSuccess,
		Message:     domain.MessageSuccessRefreshToken,
		AccessToken: accessToken,
	})
}
