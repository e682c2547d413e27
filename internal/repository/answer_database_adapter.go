package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mobility-profile/internal/domain"
	"mobility-profile/internal/repository/models"
	"mobility-profile/internal/util"

	"github.com/jmoiron/sqlx"
)

const answerColumns = "id, user_id, question_id, sub_question_id, option_id, other, created_at, updated_at"

type AnswerDatabaseAdapter struct {
	db *sqlx.DB
}

// NewAnswerDatabaseAdapter creates a new instance of AnswerDatabaseAdapter
func NewAnswerDatabaseAdapter(db *sqlx.DB) domain.AnswerRepository {
	return &AnswerDatabaseAdapter{db: db}
}

func (r *AnswerDatabaseAdapter) ListByUser(ctx context.Context, userID string) ([]*domain.Answer, error) {
	exec := GetExecutor(ctx, r.db)

	var rows []models.Answer
	if err := exec.SelectContext(ctx, &rows,
		exec.Rebind("SELECT "+answerColumns+" FROM answers WHERE user_id = ? ORDER BY created_at, id"), userID); err != nil {
		return nil, fmt.Errorf("failed to list answers of user %s: %w", userID, err)
	}

	answers := make([]*domain.Answer, len(rows))
	for i := range rows {
		answers[i] = convertToDomainAnswer(&rows[i])
	}
	return answers, nil
}

// ChosenOptionsForQuestion includes answers given to any sub-question of the question
func (r *AnswerDatabaseAdapter) ChosenOptionsForQuestion(ctx context.Context, userID string, questionID int64) ([]int64, error) {
	exec := GetExecutor(ctx, r.db)

	optionIDs := []int64{}
	if err := exec.SelectContext(ctx, &optionIDs,
		exec.Rebind("SELECT option_id FROM answers WHERE user_id = ? AND question_id = ?"), userID, questionID); err != nil {
		return nil, fmt.Errorf("failed to get chosen options of question %d: %w", questionID, err)
	}
	return optionIDs, nil
}

func (r *AnswerDatabaseAdapter) ChosenOptionsForSubQuestion(ctx context.Context, userID string, subQuestionID int64) ([]int64, error) {
	exec := GetExecutor(ctx, r.db)

	optionIDs := []int64{}
	if err := exec.SelectContext(ctx, &optionIDs,
		exec.Rebind("SELECT option_id FROM answers WHERE user_id = ? AND sub_question_id = ?"), userID, subQuestionID); err != nil {
		return nil, fmt.Errorf("failed to get chosen options of sub question %d: %w", subQuestionID, err)
	}
	return optionIDs, nil
}

func (r *AnswerDatabaseAdapter) HasChosenOption(ctx context.Context, userID string, optionID int64) (bool, error) {
	exec := GetExecutor(ctx, r.db)

	var count int
	if err := exec.GetContext(ctx, &count,
		exec.Rebind("SELECT COUNT(*) FROM answers WHERE user_id = ? AND option_id = ?"), userID, optionID); err != nil {
		return false, fmt.Errorf("failed to check chosen option %d: %w", optionID, err)
	}
	return count > 0, nil
}

// FindForUpdate locks the answer row of the slot for the rest of the transaction
func (r *AnswerDatabaseAdapter) FindForUpdate(ctx context.Context, userID string, questionID int64, subQuestionID *int64) (*domain.Answer, error) {
	exec := GetExecutor(ctx, r.db)

	var (
		row models.Answer
		err error
	)
	if subQuestionID == nil {
		err = exec.GetContext(ctx, &row,
			exec.Rebind("SELECT "+answerColumns+" FROM answers WHERE user_id = ? AND question_id = ? AND sub_question_id IS NULL FOR UPDATE"),
			userID, questionID)
	} else {
		err = exec.GetContext(ctx, &row,
			exec.Rebind("SELECT "+answerColumns+" FROM answers WHERE user_id = ? AND question_id = ? AND sub_question_id = ? FOR UPDATE"),
			userID, questionID, *subQuestionID)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find answer of question %d: %w", questionID, err)
	}
	return convertToDomainAnswer(&row), nil
}

// Create inserts the answer. A concurrent insert for the same slot yields domain.ErrDuplicate.
func (r *AnswerDatabaseAdapter) Create(ctx context.Context, answer *domain.Answer) error {
	query := `INSERT INTO answers (id, user_id, question_id, sub_question_id, option_id, other, created_at, updated_at)
	          VALUES (:id, :user_id, :question_id, :sub_question_id, :option_id, :other, :created_at, :updated_at)`

	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, convertToModelAnswer(answer)); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("answer of question %d: %w", answer.QuestionID, domain.ErrDuplicate)
		}
		return fmt.Errorf("failed to create answer: %w", err)
	}
	return nil
}

func (r *AnswerDatabaseAdapter) Update(ctx context.Context, answer *domain.Answer) error {
	query := `UPDATE answers SET option_id = :option_id, other = :other, updated_at = :updated_at WHERE id = :id`

	result, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, convertToModelAnswer(answer))
	if err != nil {
		return fmt.Errorf("failed to update answer %s: %w", answer.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("answer %s: %w", answer.ID, sql.ErrNoRows)
	}
	return nil
}

func convertToDomainAnswer(a *models.Answer) *domain.Answer {
	return &domain.Answer{
		ID:            a.ID,
		UserID:        a.UserID,
		QuestionID:    a.QuestionID,
		SubQuestionID: util.NullInt64ToInt64Ptr(a.SubQuestionID),
		OptionID:      a.OptionID,
		Other:         util.NullStringToString(a.Other),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func convertToModelAnswer(a *domain.Answer) *models.Answer {
	return &models.Answer{
		ID:            a.ID,
		UserID:        a.UserID,
		QuestionID:    a.QuestionID,
		SubQuestionID: util.Int64PtrToNullInt64(a.SubQuestionID),
		OptionID:      a.OptionID,
		Other:         util.StringToNullString(a.Other),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
