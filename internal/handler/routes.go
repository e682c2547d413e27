package handler

import (
	"mobility-profile/internal/config"
	"mobility-profile/internal/dto"
	"mobility-profile/internal/middleware"
	"mobility-profile/internal/service"
	"mobility-profile/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups every HTTP handler of the API.
type Handlers struct {
	Question *QuestionHandler
	Answer   *AnswerHandler
	Poll     *PollHandler
	Profile  *ProfileHandler
}

// SetupRoutes mounts the poll API under /api/v1 and the account API under /api/account.
func SetupRoutes(app *fiber.App, h Handlers, authService service.AuthService, v *validation.Validator, rateLimit config.RateLimitConfig) {
	protected := middleware.Protected(authService)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	question := v1.Group("/question")
	question.Get("/", h.Question.ListQuestions)
	question.Post("/start_poll", middleware.StartPollRateLimiter(rateLimit), h.Poll.StartPoll)
	question.Post("/end_poll", protected, h.Poll.EndPoll)
	question.Get("/get_questions_with_conditions", h.Question.QuestionsWithConditions)
	question.Get("/get_questions_conditions_states", protected, h.Question.QuestionConditionStates)
	question.Get("/get_sub_questions_conditions_states", protected, h.Question.SubQuestionConditionStates)
	question.Post("/check_if_question_condition_met", protected,
		middleware.ValidateBody[dto.CheckQuestionConditionRequest](v), h.Question.CheckQuestionCondition)
	question.Post("/check_if_sub_question_condition_met", protected,
		middleware.ValidateBody[dto.CheckSubQuestionConditionRequest](v), h.Question.CheckSubQuestionCondition)
	question.Post("/in_condition", protected,
		middleware.ValidateBody[dto.CheckQuestionConditionRequest](v), h.Question.InCondition)
	question.Get("/:id<int>", h.Question.GetQuestion)

	v1.Get("/result", h.Question.ListResults)

	answer := v1.Group("/answer", protected)
	answer.Post("/", middleware.ValidateBody[dto.AnswerRequest](v), h.Answer.SubmitAnswer)
	answer.Get("/get_result", h.Answer.GetResult)

	account := api.Group("/account", protected)
	account.Get("/profile", h.Profile.GetProfile)
	account.Put("/profile", middleware.ValidateBody[dto.ProfileUpdateRequest](v), h.Profile.UpdateProfile)
}
