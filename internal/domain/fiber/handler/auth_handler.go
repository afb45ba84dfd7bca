package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"interview-navigator/internal/dto"
	"interview-navigator/internal/middleware"
	"interview-navigator/internal/repository"
	"interview-navigator/internal/usecase"
	"interview-navigator/internal/util"
)

type AuthHandler struct {
	uc *usecase.AuthUsecase
}

func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/register", h.Register)
	app.Post("/api/login", h.Login)
	app.Get("/api/profile", middleware.RequireAuth(), h.Profile)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Username, email, and password are required",
		})
	}

	user, token, err := h.uc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUsernameTaken):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "Username already exists",
			})
		case errors.Is(err, usecase.ErrEmailTaken):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "Email already exists",
			})
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "Registration failed",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "User registered successfully",
		Data:    dto.AuthResponse{Token: token, User: user},
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}

	if req.Username == "" || req.Password == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Username and password are required",
		})
	}

	user, token, err := h.uc.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "Invalid username or password",
			})
		case errors.Is(err, usecase.ErrAccountInactive):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusForbidden,
				Message: "Account is inactive",
			})
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "Login failed",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Login successful",
		Data:    dto.AuthResponse{Token: token, User: user},
	})
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, err := h.uc.Profile(middleware.CallerID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusNotFound,
				Message: "User not found",
			})
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "Failed to fetch profile",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get profile",
		Data:    user,
	})
}
