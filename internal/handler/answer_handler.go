package handler

import (
	"mobility-profile/internal/domain"
	"mobility-profile/internal/dto"
	"mobility-profile/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AnswerHandler records answers and serves the resulting profile.
type AnswerHandler struct {
	service service.AnswerService
}

func NewAnswerHandler(service service.AnswerService) *AnswerHandler {
	return &AnswerHandler{service: service}
}

// SubmitAnswer godoc
// @Summary Answer a question
// @Description Creates the answer of the (question, sub_question) slot or replaces it
// @Tags answer
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param answer body dto.AnswerRequest true "Answer"
// @Success 201 {object} dto.AnswerResponse
// @Failure 400 {object} middleware.ErrorResponse "Missing field or free text required"
// @Failure 404 {object} middleware.ErrorResponse "Question, sub question or option not found"
// @Failure 405 {object} middleware.ErrorResponse "Condition not met"
// @Router /answer [post]
func (h *AnswerHandler) SubmitAnswer(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	req, err := validatedBody[dto.AnswerRequest](c)
	if err != nil {
		return err
	}

	outcome, err := h.service.SubmitAnswer(c.UserContext(), domain.AnswerSubmission{
		UserID:        userID,
		QuestionID:    req.Question,
		OptionID:      req.Option,
		SubQuestionID: req.SubQuestion,
		Other:         req.Other,
	})
	if err != nil {
		return err
	}

	a := outcome.Answer
	return c.Status(fiber.StatusCreated).JSON(dto.AnswerResponse{
		ID:          a.ID,
		User:        a.UserID,
		Question:    a.QuestionID,
		SubQuestion: a.SubQuestionID,
		Option:      a.OptionID,
		Other:       a.Other,
	})
}

// GetResult godoc
// @Summary Get the current result
// @Description Returns the result computed from the user's answers
// @Tags answer
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ResultResponse
// @Failure 400 {object} middleware.ErrorResponse "No result yet"
// @Router /answer/get_result [get]
func (h *AnswerHandler) GetResult(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	result, err := h.service.GetResult(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(service.ToResultResponse(result))
}
