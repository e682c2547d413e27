package handler

import (
	"mobility-profile/internal/dto"
	"mobility-profile/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	service service.ProfileService
}

func NewProfileHandler(service service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// GetProfile godoc
// @Summary Get my profile
// @Tags account
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /account/profile [get]
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	profile, err := h.service.GetProfile(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// UpdateProfile godoc
// @Summary Update my profile
// @Description Applies the given fields and keeps the omitted ones
// @Tags account
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param profile body dto.ProfileUpdateRequest true "Profile fields"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /account/profile [put]
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	req, err := validatedBody[dto.ProfileUpdateRequest](c)
	if err != nil {
		return err
	}
	profile, err := h.service.UpdateProfile(c.UserContext(), userID, *req)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}
