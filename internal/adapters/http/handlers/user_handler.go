package handlers

import (
	"encoding/base64"
	"errors"

	"pnp-asset-tracker/internal/core/domain"
	"pnp-asset-tracker/internal/core/services"
	"pnp-asset-tracker/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles profile endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// UpdateProfileRequest represents profile edit request body
type UpdateProfileRequest struct {
	CurrentPassword string  `json:"current_password"`
	Username        *string `json:"username"`
	NewPassword     *string `json:"new_password"`
	SignaturePNG    string  `json:"signature_png"`
}

// GetProfile returns the caller's profile
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to load profile")
	}

	return response.Success(c, "", fiber.Map{
		"user": user,
	})
}

// UpdateProfile updates the caller's username, password or signature.
// Every change requires the current password.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateProfileInput{
		CurrentPassword: req.CurrentPassword,
		Username:        req.Username,
		NewPassword:     req.NewPassword,
	}

	if req.SignaturePNG != "" {
		signaturePNG, err := base64.StdEncoding.DecodeString(req.SignaturePNG)
		if err != nil {
			return response.BadRequest(c, "Signature must be base64-encoded PNG")
		}
		input.SignaturePNG = signaturePNG
	}

	user, err := h.userService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, "Current password is required to save changes")
		case errors.Is(err, services.ErrCurrentPasswordWrong):
			return response.Unauthorized(c, "The current password you entered is incorrect")
		case errors.Is(err, services.ErrWeakPassword):
			return response.BadRequest(c, "New password must be at least 8 characters")
		case errors.Is(err, services.ErrSignatureInvalid):
			return response.UnprocessableEntity(c, "A drawn signature is required")
		case errors.Is(err, domain.ErrUserAlreadyExists):
			return response.Conflict(c, "Username is already taken")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to update profile")
		}
	}

	return response.Success(c, "Profile updated", fiber.Map{
		"user": user,
	})
}

// GetSignature returns the caller's signature reference
func (h *UserHandler) GetSignature(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	path, err := h.userService.GetSignaturePath(c.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrSignatureMissing):
			return response.NotFound(c, "No signature on file")
		default:
			return response.InternalServerError(c, "Failed to load signature")
		}
	}

	return response.Success(c, "", fiber.Map{
		"signature_path": path,
	})
}
