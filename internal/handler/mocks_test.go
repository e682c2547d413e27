package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mobility-profile/internal/config"
	"mobility-profile/internal/domain"
	"mobility-profile/internal/dto"
	"mobility-profile/internal/handler"
	"mobility-profile/internal/middleware"
	"mobility-profile/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testToken = "token-user-1"

// ManualMockQuestionService for testing question handlers
type ManualMockQuestionService struct {
	ListQuestionsFunc              func(ctx context.Context) ([]dto.QuestionResponse, error)
	GetQuestionFunc                func(ctx context.Context, id int64) (*dto.QuestionResponse, error)
	ListResultsFunc                func(ctx context.Context) ([]dto.ResultResponse, error)
	QuestionsWithConditionsFunc    func(ctx context.Context) ([]dto.QuestionResponse, error)
	QuestionConditionStatesFunc    func(ctx context.Context, userID string) ([]domain.ConditionState, error)
	SubQuestionConditionStatesFunc func(ctx context.Context, userID string) ([]domain.ConditionState, error)
	CheckQuestionConditionFunc     func(ctx context.Context, userID string, questionID int64) (bool, error)
	CheckSubQuestionConditionFunc  func(ctx context.Context, userID string, subQuestionID int64) (bool, error)
	InConditionFunc                func(ctx context.Context, questionID int64) (bool, error)
}

func (m *ManualMockQuestionService) ListQuestions(ctx context.Context) ([]dto.QuestionResponse, error) {
	if m.ListQuestionsFunc != nil {
		return m.ListQuestionsFunc(ctx)
	}
	panic("ListQuestionsFunc not set")
}

func (m *ManualMockQuestionService) GetQuestion(ctx context.Context, id int64) (*dto.QuestionResponse, error) {
	if m.GetQuestionFunc != nil {
		return m.GetQuestionFunc(ctx, id)
	}
	panic("GetQuestionFunc not set")
}

func (m *ManualMockQuestionService) ListResults(ctx context.Context) ([]dto.ResultResponse, error) {
	if m.ListResultsFunc != nil {
		return m.ListResultsFunc(ctx)
	}
	panic("ListResultsFunc not set")
}

func (m *ManualMockQuestionService) QuestionsWithConditions(ctx context.Context) ([]dto.QuestionResponse, error) {
	if m.QuestionsWithConditionsFunc != nil {
		return m.QuestionsWithConditionsFunc(ctx)
	}
	panic("QuestionsWithConditionsFunc not set")
}

func (m *ManualMockQuestionService) QuestionConditionStates(ctx context.Context, userID string) ([]domain.ConditionState, error) {
	if m.QuestionConditionStatesFunc != nil {
		return m.QuestionConditionStatesFunc(ctx, userID)
	}
	panic("QuestionConditionStatesFunc not set")
}

func (m *ManualMockQuestionService) SubQuestionConditionStates(ctx context.Context, userID string) ([]domain.ConditionState, error) {
	if m.SubQuestionConditionStatesFunc != nil {
		return m.SubQuestionConditionStatesFunc(ctx, userID)
	}
	panic("SubQuestionConditionStatesFunc not set")
}

func (m *ManualMockQuestionService) CheckQuestionCondition(ctx context.Context, userID string, questionID int64) (bool, error) {
	if m.CheckQuestionConditionFunc != nil {
		return m.CheckQuestionConditionFunc(ctx, userID, questionID)
	}
	panic("CheckQuestionConditionFunc not set")
}

func (m *ManualMockQuestionService) CheckSubQuestionCondition(ctx context.Context, userID string, subQuestionID int64) (bool, error) {
	if m.CheckSubQuestionConditionFunc != nil {
		return m.CheckSubQuestionConditionFunc(ctx, userID, subQuestionID)
	}
	panic("CheckSubQuestionConditionFunc not set")
}

func (m *ManualMockQuestionService) InCondition(ctx context.Context, questionID int64) (bool, error) {
	if m.InConditionFunc != nil {
		return m.InConditionFunc(ctx, questionID)
	}
	panic("InConditionFunc not set")
}

// ManualMockAnswerService for testing answer handlers
type ManualMockAnswerService struct {
	SubmitAnswerFunc func(ctx context.Context, submission domain.AnswerSubmission) (*domain.AnswerOutcome, error)
	GetResultFunc    func(ctx context.Context, userID string) (*domain.Result, error)
}

func (m *ManualMockAnswerService) SubmitAnswer(ctx context.Context, submission domain.AnswerSubmission) (*domain.AnswerOutcome, error) {
	if m.SubmitAnswerFunc != nil {
		return m.SubmitAnswerFunc(ctx, submission)
	}
	panic("SubmitAnswerFunc not set")
}

func (m *ManualMockAnswerService) GetResult(ctx context.Context, userID string) (*domain.Result, error) {
	if m.GetResultFunc != nil {
		return m.GetResultFunc(ctx, userID)
	}
	panic("GetResultFunc not set")
}

// ManualMockPollService for testing poll handlers
type ManualMockPollService struct {
	StartPollFunc func(ctx context.Context) (*dto.StartPollResponse, error)
	EndPollFunc   func(ctx context.Context, claims *dto.AuthClaims) error
}

func (m *ManualMockPollService) StartPoll(ctx context.Context) (*dto.StartPollResponse, error) {
	if m.StartPollFunc != nil {
		return m.StartPollFunc(ctx)
	}
	panic("StartPollFunc not set")
}

func (m *ManualMockPollService) EndPoll(ctx context.Context, claims *dto.AuthClaims) error {
	if m.EndPollFunc != nil {
		return m.EndPollFunc(ctx, claims)
	}
	panic("EndPollFunc not set")
}

// ManualMockProfileService for testing profile handlers
type ManualMockProfileService struct {
	GetProfileFunc    func(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	UpdateProfileFunc func(ctx context.Context, userID string, req dto.ProfileUpdateRequest) (*dto.ProfileResponse, error)
}

func (m *ManualMockProfileService) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	panic("GetProfileFunc not set")
}

func (m *ManualMockProfileService) UpdateProfile(ctx context.Context, userID string, req dto.ProfileUpdateRequest) (*dto.ProfileResponse, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, req)
	}
	panic("UpdateProfileFunc not set")
}

// stubAuthService accepts testToken only.
type stubAuthService struct{}

func (stubAuthService) IssueToken(ctx context.Context, userID string) (string, error) {
	panic("not implemented in mock")
}

func (stubAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if tokenString != testToken {
		return nil, jwt.ErrTokenMalformed
	}
	return &dto.AuthClaims{
		UserID:           "user-1",
		TokenType:        "access",
		RegisteredClaims: jwt.RegisteredClaims{ID: "jti-1", Subject: "user-1"},
	}, nil
}

func (stubAuthService) RevokeToken(ctx context.Context, claims *dto.AuthClaims) error {
	panic("not implemented in mock")
}

type testServices struct {
	question *ManualMockQuestionService
	answer   *ManualMockAnswerService
	poll     *ManualMockPollService
	profile  *ManualMockProfileService
}

func newTestApp(t *testing.T) (*fiber.App, *testServices) {
	t.Helper()
	svc := &testServices{
		question: &ManualMockQuestionService{},
		answer:   &ManualMockAnswerService{},
		poll:     &ManualMockPollService{},
		profile:  &ManualMockProfileService{},
	}
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.SetupRoutes(app, handler.Handlers{
		Question: handler.NewQuestionHandler(svc.question),
		Answer:   handler.NewAnswerHandler(svc.answer),
		Poll:     handler.NewPollHandler(svc.poll),
		Profile:  handler.NewProfileHandler(svc.profile),
	}, stubAuthService{}, validation.NewValidator(), config.RateLimitConfig{
		GlobalMax:       1000,
		GlobalWindow:    time.Minute,
		StartPollMax:    2,
		StartPollWindow: time.Minute,
	})
	return app, svc
}

// doRequest sends body as JSON; an empty token sends no Authorization header.
func doRequest(t *testing.T, app *fiber.App, method, path, token, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decodeError(t *testing.T, data []byte) middleware.ErrorResponse {
	t.Helper()
	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	return resp
}

func int64Ptr(v int64) *int64 { return &v }
