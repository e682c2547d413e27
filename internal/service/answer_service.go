package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mobility-profile/internal/domain"
	"mobility-profile/internal/logger"
	"mobility-profile/internal/util"

	"go.uber.org/zap"
)

// AnswerService records a user's answers and serves the result derived from them.
type AnswerService interface {
	// SubmitAnswer validates the submission, then creates or replaces the answer of its
	// (question, sub-question) slot and refreshes the user's stored result.
	SubmitAnswer(ctx context.Context, submission domain.AnswerSubmission) (*domain.AnswerOutcome, error)

	// GetResult returns the stored result of the user, or a NO_RESULT error.
	GetResult(ctx context.Context, userID string) (*domain.Result, error)
}

type answerServiceImpl struct {
	catalogRepo domain.CatalogRepository
	answerRepo  domain.AnswerRepository
	userRepo    domain.UserRepository
	evaluator   ConditionEvaluator
	scorer      ResultScorer
	txManager   domain.TransactionManager
}

func NewAnswerService(
	catalogRepo domain.CatalogRepository,
	answerRepo domain.AnswerRepository,
	userRepo domain.UserRepository,
	evaluator ConditionEvaluator,
	scorer ResultScorer,
	txManager domain.TransactionManager,
) AnswerService {
	return &answerServiceImpl{
		catalogRepo: catalogRepo,
		answerRepo:  answerRepo,
		userRepo:    userRepo,
		evaluator:   evaluator,
		scorer:      scorer,
		txManager:   txManager,
	}
}

func (s *answerServiceImpl) SubmitAnswer(ctx context.Context, submission domain.AnswerSubmission) (*domain.AnswerOutcome, error) {
	if submission.QuestionID == nil {
		return nil, domain.NewMissingFieldError("question")
	}
	if submission.OptionID == nil {
		return nil, domain.NewMissingFieldError("option")
	}
	questionID, optionID := *submission.QuestionID, *submission.OptionID

	question, err := s.catalogRepo.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load question", err)
	}
	if question == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("question %d not found", questionID))
	}

	subQuestion, err := resolveSubQuestion(question, submission.SubQuestionID)
	if err != nil {
		return nil, err
	}

	option, err := s.catalogRepo.GetOption(ctx, optionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load option", err)
	}
	if option == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("option %d not found", optionID))
	}
	if subQuestion != nil && !option.BelongsToSubQuestion(subQuestion.ID) {
		return nil, domain.NewNotFoundError(fmt.Sprintf("option %d does not belong to sub question %d", optionID, subQuestion.ID))
	}
	if subQuestion == nil && !option.BelongsToQuestion(question.ID) {
		return nil, domain.NewNotFoundError(fmt.Sprintf("option %d does not belong to question %d", optionID, question.ID))
	}

	var outcome *domain.AnswerOutcome
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.checkConditions(txCtx, submission.UserID, question.ID, subQuestion); err != nil {
			return err
		}

		other := strings.TrimSpace(submission.Other)
		if option.IsOther && other == "" {
			return domain.NewOtherTextRequiredError(option.ID)
		}
		if !option.IsOther {
			other = ""
		}

		answer, created, err := s.upsert(txCtx, submission.UserID, question.ID, subQuestion, option.ID, other)
		if err != nil {
			return err
		}

		result, err := s.scorer.ComputeResult(txCtx, submission.UserID)
		if err != nil {
			return fmt.Errorf("failed to compute result: %w", err)
		}
		var resultID *int64
		if result != nil {
			resultID = &result.ID
		}
		if err := s.userRepo.SetResult(txCtx, submission.UserID, resultID); err != nil {
			return err
		}

		outcome = &domain.AnswerOutcome{Answer: answer, Created: created, Result: result}
		return nil
	})
	if err != nil {
		var domainErr *domain.DomainError
		switch {
		case errors.As(err, &domainErr):
			return nil, domainErr
		case errors.Is(err, domain.ErrDuplicate):
			return nil, domain.NewDuplicateError("answer was submitted concurrently, retry the request", err)
		default:
			logger.Get().Error("Failed to store answer",
				zap.Error(err),
				zap.String("userID", submission.UserID),
				zap.Int64("questionID", question.ID))
			return nil, domain.NewInternalError("failed to store answer", err)
		}
	}

	logger.Get().Info("Answer stored",
		zap.String("userID", submission.UserID),
		zap.Int64("questionID", question.ID),
		zap.Int64("optionID", option.ID),
		zap.Bool("created", outcome.Created))
	return outcome, nil
}

// resolveSubQuestion enforces that a sub-question is named exactly when the question has them.
func resolveSubQuestion(question *domain.Question, subQuestionID *int64) (*domain.SubQuestion, error) {
	if !question.HasSubQuestions() {
		if subQuestionID != nil {
			return nil, domain.NewNotFoundError(fmt.Sprintf("question %d has no sub question %d", question.ID, *subQuestionID))
		}
		return nil, nil
	}
	if subQuestionID == nil {
		return nil, domain.NewMissingFieldError("sub_question")
	}
	subQuestion := question.SubQuestion(*subQuestionID)
	if subQuestion == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("sub question %d not found in question %d", *subQuestionID, question.ID))
	}
	return subQuestion, nil
}

func (s *answerServiceImpl) checkConditions(ctx context.Context, userID string, questionID int64, subQuestion *domain.SubQuestion) error {
	met, err := s.evaluator.QuestionConditionMet(ctx, userID, questionID)
	if err != nil {
		return err
	}
	if !met {
		return domain.NewConditionNotMetError(fmt.Sprintf("condition of question %d is not met", questionID))
	}

	if subQuestion == nil {
		return nil
	}
	met, err = s.evaluator.SubQuestionConditionMet(ctx, userID, subQuestion.ID)
	if err != nil {
		return err
	}
	if !met {
		return domain.NewConditionNotMetError(fmt.Sprintf("condition of sub question %d is not met", subQuestion.ID))
	}
	return nil
}

func (s *answerServiceImpl) upsert(ctx context.Context, userID string, questionID int64, subQuestion *domain.SubQuestion, optionID int64, other string) (*domain.Answer, bool, error) {
	var subQuestionID *int64
	if subQuestion != nil {
		subQuestionID = &subQuestion.ID
	}

	existing, err := s.answerRepo.FindForUpdate(ctx, userID, questionID, subQuestionID)
	if err != nil {
		return nil, false, err
	}

	now := time.Now()
	if existing != nil {
		existing.OptionID = optionID
		existing.Other = other
		existing.UpdatedAt = now
		if err := s.answerRepo.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	answer := &domain.Answer{
		ID:            util.NewULID(),
		UserID:        userID,
		QuestionID:    questionID,
		SubQuestionID: subQuestionID,
		OptionID:      optionID,
		Other:         other,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.answerRepo.Create(ctx, answer); err != nil {
		return nil, false, err
	}
	return answer, true, nil
}

func (s *answerServiceImpl) GetResult(ctx context.Context, userID string) (*domain.Result, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("user %s not found", userID))
	}
	if user.ResultID == nil {
		return nil, domain.NewNoResultError()
	}

	result, err := s.catalogRepo.GetResult(ctx, *user.ResultID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load result", err)
	}
	if result == nil {
		return nil, domain.NewNoResultError()
	}
	return result, nil
}
