package handler

import (
	"mobility-profile/internal/domain"
	"mobility-profile/internal/dto"
	"mobility-profile/internal/middleware"
	"mobility-profile/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PollHandler opens and closes poll sessions.
type PollHandler struct {
	service service.PollService
}

func NewPollHandler(service service.PollService) *PollHandler {
	return &PollHandler{service: service}
}

// StartPoll godoc
// @Summary Start a poll
// @Description Creates an anonymous user and returns its bearer token
// @Tags poll
// @Produce json
// @Success 200 {object} dto.StartPollResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Router /question/start_poll [post]
func (h *PollHandler) StartPoll(c *fiber.Ctx) error {
	resp, err := h.service.StartPoll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// EndPoll godoc
// @Summary End the poll
// @Description Counts the result in the postal code statistics and invalidates the token
// @Tags poll
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /question/end_poll [post]
func (h *PollHandler) EndPoll(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return domain.NewUnauthorizedError("token claims not found in context")
	}
	if err := h.service.EndPoll(c.UserContext(), claims); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Poll ended"})
}
