package service

import (
	"context"
	"fmt"

	"mobility-profile/internal/domain"
	"mobility-profile/internal/logger"

	"go.uber.org/zap"
)

// ConditionEvaluator decides whether a user may currently answer a question or sub-question.
// Every call reads the user's live answers.
type ConditionEvaluator interface {
	// QuestionConditionMet is true when every condition targeting the question is satisfied,
	// and vacuously true when the question has none.
	QuestionConditionMet(ctx context.Context, userID string, questionID int64) (bool, error)

	// SubQuestionConditionMet is true when the user selected the option required by the
	// sub-question's first condition, and vacuously true when it has none.
	SubQuestionConditionMet(ctx context.Context, userID string, subQuestionID int64) (bool, error)
}

type conditionEvaluatorImpl struct {
	conditionRepo domain.ConditionRepository
	answerRepo    domain.AnswerRepository
}

func NewConditionEvaluator(conditionRepo domain.ConditionRepository, answerRepo domain.AnswerRepository) ConditionEvaluator {
	return &conditionEvaluatorImpl{
		conditionRepo: conditionRepo,
		answerRepo:    answerRepo,
	}
}

func (e *conditionEvaluatorImpl) QuestionConditionMet(ctx context.Context, userID string, questionID int64) (bool, error) {
	conditions, err := e.conditionRepo.ListQuestionConditions(ctx, questionID)
	if err != nil {
		return false, fmt.Errorf("failed to load conditions of question %d: %w", questionID, err)
	}

	for _, condition := range conditions {
		chosen, err := e.chosenOptions(ctx, userID, condition)
		if err != nil {
			return false, err
		}
		if !condition.Satisfied(chosen) {
			logger.Get().Debug("Question condition not met",
				zap.String("userID", userID),
				zap.Int64("questionID", questionID),
				zap.Int64("conditionID", condition.ID))
			return false, nil
		}
	}
	return true, nil
}

// chosenOptions resolves the answers the condition reads: one sub-question when set, else the whole source question.
func (e *conditionEvaluatorImpl) chosenOptions(ctx context.Context, userID string, condition *domain.QuestionCondition) ([]int64, error) {
	switch {
	case condition.SourceSubQuestionID != nil:
		chosen, err := e.answerRepo.ChosenOptionsForSubQuestion(ctx, userID, *condition.SourceSubQuestionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load answers for condition %d: %w", condition.ID, err)
		}
		return chosen, nil
	case condition.SourceQuestionID != nil:
		chosen, err := e.answerRepo.ChosenOptionsForQuestion(ctx, userID, *condition.SourceQuestionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load answers for condition %d: %w", condition.ID, err)
		}
		return chosen, nil
	default:
		logger.Get().Warn("Question condition has no source, treating it as unmet",
			zap.Int64("conditionID", condition.ID),
			zap.Int64("questionID", condition.QuestionID))
		return nil, nil
	}
}

func (e *conditionEvaluatorImpl) SubQuestionConditionMet(ctx context.Context, userID string, subQuestionID int64) (bool, error) {
	condition, err := e.conditionRepo.GetSubQuestionCondition(ctx, subQuestionID)
	if err != nil {
		return false, fmt.Errorf("failed to load condition of sub question %d: %w", subQuestionID, err)
	}
	if condition == nil {
		return true, nil
	}

	chosen, err := e.answerRepo.HasChosenOption(ctx, userID, condition.OptionID)
	if err != nil {
		return false, fmt.Errorf("failed to load answers for sub question condition %d: %w", condition.ID, err)
	}
	if !chosen {
		logger.Get().Debug("Sub question condition not met",
			zap.String("userID", userID),
			zap.Int64("subQuestionID", subQuestionID),
			zap.Int64("optionID", condition.OptionID))
	}
	return chosen, nil
}
