package handler

import (
	"mobility-profile/internal/domain"
	"mobility-profile/internal/dto"
	"mobility-profile/internal/middleware"
	"mobility-profile/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuestionHandler serves the catalog and the condition checks of the poll.
type QuestionHandler struct {
	service service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(service service.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: service}
}

// ListQuestions godoc
// @Summary List questions
// @Description Returns every question ordered by number, with sub-questions and options
// @Tags question
// @Produce json
// @Success 200 {array} dto.QuestionResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /question [get]
func (h *QuestionHandler) ListQuestions(c *fiber.Ctx) error {
	questions, err := h.service.ListQuestions(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(questions)
}

// GetQuestion godoc
// @Summary Get a question
// @Tags question
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /question/{id} [get]
func (h *QuestionHandler) GetQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return domain.NewInvalidInputError("question id must be an integer")
	}
	question, err := h.service.GetQuestion(c.UserContext(), int64(id))
	if err != nil {
		return err
	}
	return c.JSON(question)
}

// ListResults godoc
// @Summary List result categories
// @Tags result
// @Produce json
// @Success 200 {array} dto.ResultResponse
// @Router /result [get]
func (h *QuestionHandler) ListResults(c *fiber.Ctx) error {
	results, err := h.service.ListResults(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(results)
}

// QuestionsWithConditions godoc
// @Summary List conditioned questions
// @Description Returns the questions gated by at least one condition, ordered by number
// @Tags question
// @Produce json
// @Success 200 {array} dto.QuestionResponse
// @Router /question/get_questions_with_conditions [get]
func (h *QuestionHandler) QuestionsWithConditions(c *fiber.Ctx) error {
	questions, err := h.service.QuestionsWithConditions(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(questions)
}

// QuestionConditionStates godoc
// @Summary Condition states of questions
// @Description Evaluates the condition of every conditioned question for the current user
// @Tags question
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.ConditionStateResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /question/get_questions_conditions_states [get]
func (h *QuestionHandler) QuestionConditionStates(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	states, err := h.service.QuestionConditionStates(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(toConditionStateResponses(states))
}

// SubQuestionConditionStates godoc
// @Summary Condition states of sub-questions
// @Tags question
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.ConditionStateResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /question/get_sub_questions_conditions_states [get]
func (h *QuestionHandler) SubQuestionConditionStates(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	states, err := h.service.SubQuestionConditionStates(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(toConditionStateResponses(states))
}

// CheckQuestionCondition godoc
// @Summary Check a question condition
// @Tags question
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CheckQuestionConditionRequest true "Question"
// @Success 200 {object} dto.ConditionMetResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse "Question or its condition not found"
// @Router /question/check_if_question_condition_met [post]
func (h *QuestionHandler) CheckQuestionCondition(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	req, err := validatedBody[dto.CheckQuestionConditionRequest](c)
	if err != nil {
		return err
	}
	met, err := h.service.CheckQuestionCondition(c.UserContext(), userID, *req.Question)
	if err != nil {
		return err
	}
	return c.JSON(dto.ConditionMetResponse{ConditionMet: met})
}

// CheckSubQuestionCondition godoc
// @Summary Check a sub-question condition
// @Tags question
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CheckSubQuestionConditionRequest true "Sub question"
// @Success 200 {object} dto.ConditionMetResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /question/check_if_sub_question_condition_met [post]
func (h *QuestionHandler) CheckSubQuestionCondition(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	req, err := validatedBody[dto.CheckSubQuestionConditionRequest](c)
	if err != nil {
		return err
	}
	met, err := h.service.CheckSubQuestionCondition(c.UserContext(), userID, *req.SubQuestion)
	if err != nil {
		return err
	}
	return c.JSON(dto.ConditionMetResponse{ConditionMet: met})
}

// InCondition godoc
// @Summary Is the question a condition source
// @Description Tells whether answers to the question gate other questions
// @Tags question
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CheckQuestionConditionRequest true "Question"
// @Success 200 {object} dto.InConditionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /question/in_condition [post]
func (h *QuestionHandler) InCondition(c *fiber.Ctx) error {
	req, err := validatedBody[dto.CheckQuestionConditionRequest](c)
	if err != nil {
		return err
	}
	in, err := h.service.InCondition(c.UserContext(), *req.Question)
	if err != nil {
		return err
	}
	return c.JSON(dto.InConditionResponse{InCondition: in})
}

func toConditionStateResponses(states []domain.ConditionState) []dto.ConditionStateResponse {
	resp := make([]dto.ConditionStateResponse, 0, len(states))
	for _, s := range states {
		resp = append(resp, dto.ConditionStateResponse{ID: s.ID, State: s.State})
	}
	return resp
}

// currentUserID reads the user set by middleware.Protected.
func currentUserID(c *fiber.Ctx) (string, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return "", domain.NewUnauthorizedError("user id not found in context")
	}
	return userID, nil
}

func validatedBody[T any](c *fiber.Ctx) (*T, error) {
	req, ok := middleware.ValidatedBody[T](c)
	if !ok {
		return nil, domain.NewInternalError("request body was not validated", nil)
	}
	return req, nil
}
