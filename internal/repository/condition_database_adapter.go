package repository

import (
	"context"
	"fmt"

	"mobility-profile/internal/domain"
	"mobility-profile/internal/repository/models"
	"mobility-profile/internal/util"

	"github.com/jmoiron/sqlx"
)

type ConditionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewConditionDatabaseAdapter creates a new instance of ConditionDatabaseAdapter
func NewConditionDatabaseAdapter(db *sqlx.DB) domain.ConditionRepository {
	return &ConditionDatabaseAdapter{db: db}
}

// ListQuestionConditions returns the conditions targeting the question with their triggering options
func (r *ConditionDatabaseAdapter) ListQuestionConditions(ctx context.Context, questionID int64) ([]*domain.QuestionCondition, error) {
	exec := GetExecutor(ctx, r.db)

	var rows []models.QuestionCondition
	if err := exec.SelectContext(ctx, &rows,
		exec.Rebind("SELECT id, question_id, question_condition_id, sub_question_condition_id FROM question_conditions WHERE question_id = ? ORDER BY id"),
		questionID); err != nil {
		return nil, fmt.Errorf("failed to list conditions of question %d: %w", questionID, err)
	}
	if len(rows) == 0 {
		return []*domain.QuestionCondition{}, nil
	}

	conditionIDs := make([]int64, len(rows))
	for i, row := range rows {
		conditionIDs[i] = row.ID
	}
	var triggers []models.QuestionConditionOption
	if err := selectIn(ctx, exec, &triggers,
		"SELECT question_condition_id, option_id FROM question_condition_options WHERE question_condition_id IN (?) ORDER BY question_condition_id, option_id",
		conditionIDs); err != nil {
		return nil, fmt.Errorf("failed to list triggering options of question %d: %w", questionID, err)
	}

	optionIDs := make(map[int64][]int64, len(rows))
	for _, trigger := range triggers {
		optionIDs[trigger.QuestionConditionID] = append(optionIDs[trigger.QuestionConditionID], trigger.OptionID)
	}

	conditions := make([]*domain.QuestionCondition, len(rows))
	for i, row := range rows {
		conditions[i] = &domain.QuestionCondition{
			ID:                  row.ID,
			QuestionID:          row.QuestionID,
			SourceQuestionID:    util.NullInt64ToInt64Ptr(row.QuestionConditionID),
			SourceSubQuestionID: util.NullInt64ToInt64Ptr(row.SubQuestionConditionID),
			OptionIDs:           optionIDs[row.ID],
		}
	}
	return conditions, nil
}

// GetSubQuestionCondition returns the condition with the lowest id for the sub-question, or nil
func (r *ConditionDatabaseAdapter) GetSubQuestionCondition(ctx context.Context, subQuestionID int64) (*domain.SubQuestionCondition, error) {
	exec := GetExecutor(ctx, r.db)

	var rows []models.SubQuestionCondition
	if err := exec.SelectContext(ctx, &rows,
		exec.Rebind("SELECT id, sub_question_id, option_id FROM sub_question_conditions WHERE sub_question_id = ? ORDER BY id"),
		subQuestionID); err != nil {
		return nil, fmt.Errorf("failed to get condition of sub question %d: %w", subQuestionID, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &domain.SubQuestionCondition{
		ID:            rows[0].ID,
		SubQuestionID: rows[0].SubQuestionID,
		OptionID:      rows[0].OptionID,
	}, nil
}

func (r *ConditionDatabaseAdapter) ListConditionedQuestionIDs(ctx context.Context) ([]int64, error) {
	var rows []models.ConditionedQuestion
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows,
		"SELECT DISTINCT q.id, q.number FROM questions q JOIN question_conditions qc ON qc.question_id = q.id ORDER BY q.number, q.id"); err != nil {
		return nil, fmt.Errorf("failed to list conditioned questions: %w", err)
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids, nil
}

func (r *ConditionDatabaseAdapter) ListConditionedSubQuestionIDs(ctx context.Context) ([]int64, error) {
	ids := []int64{}
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &ids,
		"SELECT DISTINCT sub_question_id FROM sub_question_conditions ORDER BY sub_question_id"); err != nil {
		return nil, fmt.Errorf("failed to list conditioned sub questions: %w", err)
	}
	return ids, nil
}

// IsReferencedAsSource reports whether a question condition reads the answers of the question
func (r *ConditionDatabaseAdapter) IsReferencedAsSource(ctx context.Context, questionID int64) (bool, error) {
	exec := GetExecutor(ctx, r.db)

	var count int
	if err := exec.GetContext(ctx, &count,
		exec.Rebind("SELECT COUNT(*) FROM question_conditions WHERE question_condition_id = ?"), questionID); err != nil {
		return false, fmt.Errorf("failed to check conditions referencing question %d: %w", questionID, err)
	}
	return count > 0, nil
}
