package service

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"mobility-profile/internal/config"
	"mobility-profile/internal/domain"
	"mobility-profile/internal/dto"
	"mobility-profile/internal/logger"

	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Env: "test", Level: "debug"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

func int64Ptr(v int64) *int64 { return &v }

// --- MockTransactionManager ---

// MockTransactionManager runs fn directly, counting the calls.
type MockTransactionManager struct {
	Calls int
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

// --- MockCatalogRepository ---
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListQuestions(ctx context.Context) ([]*domain.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockCatalogRepository) GetQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockCatalogRepository) GetSubQuestion(ctx context.Context, id int64) (*domain.SubQuestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubQuestion), args.Error(1)
}

func (m *MockCatalogRepository) GetOption(ctx context.Context, id int64) (*domain.Option, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Option), args.Error(1)
}

func (m *MockCatalogRepository) OptionResultIDs(ctx context.Context, optionIDs []int64) (map[int64][]int64, error) {
	args := m.Called(ctx, optionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]int64), args.Error(1)
}

func (m *MockCatalogRepository) ListResults(ctx context.Context) ([]*domain.Result, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Result), args.Error(1)
}

func (m *MockCatalogRepository) GetResult(ctx context.Context, id int64) (*domain.Result, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Result), args.Error(1)
}

func (m *MockCatalogRepository) CountOptionsPerResult(ctx context.Context) (map[int64]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

func (m *MockCatalogRepository) UpdateResultNumOptions(ctx context.Context, counts map[int64]int) error {
	args := m.Called(ctx, counts)
	return args.Error(0)
}

// --- MockConditionRepository ---
type MockConditionRepository struct {
	mock.Mock
}

func (m *MockConditionRepository) ListQuestionConditions(ctx context.Context, questionID int64) ([]*domain.QuestionCondition, error) {
	args := m.Called(ctx, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuestionCondition), args.Error(1)
}

func (m *MockConditionRepository) GetSubQuestionCondition(ctx context.Context, subQuestionID int64) (*domain.SubQuestionCondition, error) {
	args := m.Called(ctx, subQuestionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubQuestionCondition), args.Error(1)
}

func (m *MockConditionRepository) ListConditionedQuestionIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockConditionRepository) ListConditionedSubQuestionIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockConditionRepository) IsReferencedAsSource(ctx context.Context, questionID int64) (bool, error) {
	args := m.Called(ctx, questionID)
	return args.Bool(0), args.Error(1)
}

// --- MockAnswerRepository ---
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Answer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Answer), args.Error(1)
}

func (m *MockAnswerRepository) ChosenOptionsForQuestion(ctx context.Context, userID string, questionID int64) ([]int64, error) {
	args := m.Called(ctx, userID, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockAnswerRepository) ChosenOptionsForSubQuestion(ctx context.Context, userID string, subQuestionID int64) ([]int64, error) {
	args := m.Called(ctx, userID, subQuestionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockAnswerRepository) HasChosenOption(ctx context.Context, userID string, optionID int64) (bool, error) {
	args := m.Called(ctx, userID, optionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAnswerRepository) FindForUpdate(ctx context.Context, userID string, questionID int64, subQuestionID *int64) (*domain.Answer, error) {
	args := m.Called(ctx, userID, questionID, subQuestionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Answer), args.Error(1)
}

func (m *MockAnswerRepository) Create(ctx context.Context, answer *domain.Answer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

func (m *MockAnswerRepository) Update(ctx context.Context, answer *domain.Answer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

// --- MockUserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserForUpdate(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SetResult(ctx context.Context, userID string, resultID *int64) error {
	args := m.Called(ctx, userID, resultID)
	return args.Error(0)
}

func (m *MockUserRepository) MarkPostalCodeResultSaved(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockUserRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// --- MockPostalCodeRepository ---
type MockPostalCodeRepository struct {
	mock.Mock
}

func (m *MockPostalCodeRepository) GetOrCreatePostalCode(ctx context.Context, code *string) (*domain.PostalCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostalCode), args.Error(1)
}

func (m *MockPostalCodeRepository) GetPostalCodeTypeID(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostalCodeRepository) IncrementResult(ctx context.Context, postalCodeID string, postalCodeTypeID int64, resultID int64) error {
	args := m.Called(ctx, postalCodeID, postalCodeTypeID, resultID)
	return args.Error(0)
}

// --- ManualMockCache ---

// ManualMockCache for domain.Cache interface
type ManualMockCache struct {
	GetFunc     func(ctx context.Context, key string) (string, error)
	SetFunc     func(ctx context.Context, key string, value string, ttl time.Duration) error
	DeleteFunc  func(ctx context.Context, key string) error
	PingFunc    func(ctx context.Context) error
	HGetAllFunc func(ctx context.Context, key string) (map[string]string, error)
	HSetAllFunc func(ctx context.Context, key string, values map[string]string, ttl time.Duration) error
	ExistsFunc  func(ctx context.Context, key string) (bool, error)
}

func (m *ManualMockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return "", errors.New("GetFunc not set")
}

func (m *ManualMockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	return errors.New("SetFunc not set")
}

func (m *ManualMockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return errors.New("DeleteFunc not set")
}

func (m *ManualMockCache) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return errors.New("PingFunc not set")
}

func (m *ManualMockCache) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.HGetAllFunc != nil {
		return m.HGetAllFunc(ctx, key)
	}
	return nil, errors.New("HGetAllFunc not set")
}

func (m *ManualMockCache) HSetAll(ctx context.Context, key string, values map[string]string, ttl time.Duration) error {
	if m.HSetAllFunc != nil {
		return m.HSetAllFunc(ctx, key, values, ttl)
	}
	return errors.New("HSetAllFunc not set")
}

func (m *ManualMockCache) Exists(ctx context.Context, key string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, key)
	}
	return false, errors.New("ExistsFunc not set")
}

// --- Service mocks ---

type MockConditionEvaluator struct {
	mock.Mock
}

func (m *MockConditionEvaluator) QuestionConditionMet(ctx context.Context, userID string, questionID int64) (bool, error) {
	args := m.Called(ctx, userID, questionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockConditionEvaluator) SubQuestionConditionMet(ctx context.Context, userID string, subQuestionID int64) (bool, error) {
	args := m.Called(ctx, userID, subQuestionID)
	return args.Bool(0), args.Error(1)
}

type MockResultScorer struct {
	mock.Mock
}

func (m *MockResultScorer) ComputeResult(ctx context.Context, userID string) (*domain.Result, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Result), args.Error(1)
}

type MockOptionCountCache struct {
	mock.Mock
}

func (m *MockOptionCountCache) Counts(ctx context.Context) (map[int64]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

func (m *MockOptionCountCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOptionCountCache) Recompute(ctx context.Context) (map[int64]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

type MockAggregationService struct {
	mock.Mock
}

func (m *MockAggregationService) FinalizeSession(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) IssueToken(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthClaims), args.Error(1)
}

func (m *MockAuthService) RevokeToken(ctx context.Context, claims *dto.AuthClaims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}
