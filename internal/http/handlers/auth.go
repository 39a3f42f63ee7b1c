package handlers

import (
	"github.com/gofiber/fiber/v2"

	"careerbridge/internal/app"
	"careerbridge/internal/common"
)

type AuthHandler struct {
	auth *app.AuthService
}

func NewAuthHandler(auth *app.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
	Role        string `json:"role"`
}

func (h *AuthHandler) RegisterStudent(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, common.NewError(common.CodeValidation, "invalid request body", err))
	}
	created, err := h.auth.RegisterStudent(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *AuthHandler) RegisterCompany(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, common.NewError(common.CodeValidation, "invalid request body", err))
	}
	created, err := h.auth.RegisterCompany(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, common.NewError(common.CodeValidation, "invalid request body", err))
	}
	result, err := h.auth.Login(c.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(result)
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, common.NewError(common.CodeValidation, "invalid request body", err))
	}
	if err := h.auth.ResetPassword(c.Context(), req.Email, req.NewPassword, req.Role); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "password reset successful"})
}
