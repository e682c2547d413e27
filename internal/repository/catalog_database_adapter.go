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

const (
	questionColumns    = "id, number, question, description, number_of_options_to_choose, mandatory_number_of_sub_questions_to_answer"
	subQuestionColumns = "id, question_id, description, additional_description, order_number"
	optionColumns      = "id, question_id, sub_question_id, value, order_number, is_other, affect_result"
	resultColumns      = "id, topic, value, description, num_options"
)

type CatalogDatabaseAdapter struct {
	db *sqlx.DB
}

// NewCatalogDatabaseAdapter creates a new instance of CatalogDatabaseAdapter
func NewCatalogDatabaseAdapter(db *sqlx.DB) domain.CatalogRepository {
	return &CatalogDatabaseAdapter{db: db}
}

// ListQuestions returns every question ordered by number with its sub-questions and options
func (r *CatalogDatabaseAdapter) ListQuestions(ctx context.Context) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, r.db)

	var questions []models.Question
	if err := exec.SelectContext(ctx, &questions,
		"SELECT "+questionColumns+" FROM questions ORDER BY number, id"); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	var subQuestions []models.SubQuestion
	if err := exec.SelectContext(ctx, &subQuestions,
		"SELECT "+subQuestionColumns+" FROM sub_questions ORDER BY question_id, order_number, id"); err != nil {
		return nil, fmt.Errorf("failed to list sub questions: %w", err)
	}

	var options []models.Option
	if err := exec.SelectContext(ctx, &options,
		"SELECT "+optionColumns+" FROM options ORDER BY order_number, id"); err != nil {
		return nil, fmt.Errorf("failed to list options: %w", err)
	}

	var links []models.OptionResult
	if err := exec.SelectContext(ctx, &links,
		"SELECT option_id, result_id FROM option_results ORDER BY option_id, result_id"); err != nil {
		return nil, fmt.Errorf("failed to list option results: %w", err)
	}

	return assembleQuestions(questions, subQuestions, options, links), nil
}

// GetQuestion returns the question with its sub-questions and options, or nil
func (r *CatalogDatabaseAdapter) GetQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	exec := GetExecutor(ctx, r.db)

	var question models.Question
	err := exec.GetContext(ctx, &question, exec.Rebind("SELECT "+questionColumns+" FROM questions WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question %d: %w", id, err)
	}

	var subQuestions []models.SubQuestion
	if err := exec.SelectContext(ctx, &subQuestions,
		exec.Rebind("SELECT "+subQuestionColumns+" FROM sub_questions WHERE question_id = ? ORDER BY order_number, id"), id); err != nil {
		return nil, fmt.Errorf("failed to get sub questions of question %d: %w", id, err)
	}

	var options []models.Option
	if err := exec.SelectContext(ctx, &options,
		exec.Rebind("SELECT "+optionColumns+" FROM options WHERE question_id = ? OR sub_question_id IN (SELECT id FROM sub_questions WHERE question_id = ?) ORDER BY order_number, id"),
		id, id); err != nil {
		return nil, fmt.Errorf("failed to get options of question %d: %w", id, err)
	}

	var links []models.OptionResult
	if len(options) > 0 {
		optionIDs := make([]int64, len(options))
		for i, o := range options {
			optionIDs[i] = o.ID
		}
		if err := selectIn(ctx, exec, &links,
			"SELECT option_id, result_id FROM option_results WHERE option_id IN (?) ORDER BY option_id, result_id", optionIDs); err != nil {
			return nil, fmt.Errorf("failed to get option results of question %d: %w", id, err)
		}
	}

	return assembleQuestions([]models.Question{question}, subQuestions, options, links)[0], nil
}

// GetSubQuestion returns the sub-question without options, or nil
func (r *CatalogDatabaseAdapter) GetSubQuestion(ctx context.Context, id int64) (*domain.SubQuestion, error) {
	exec := GetExecutor(ctx, r.db)

	var subQuestion models.SubQuestion
	err := exec.GetContext(ctx, &subQuestion, exec.Rebind("SELECT "+subQuestionColumns+" FROM sub_questions WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sub question %d: %w", id, err)
	}
	return convertToDomainSubQuestion(&subQuestion), nil
}

// GetOption returns the option with its result links, or nil
func (r *CatalogDatabaseAdapter) GetOption(ctx context.Context, id int64) (*domain.Option, error) {
	exec := GetExecutor(ctx, r.db)

	var option models.Option
	err := exec.GetContext(ctx, &option, exec.Rebind("SELECT "+optionColumns+" FROM options WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get option %d: %w", id, err)
	}

	var resultIDs []int64
	if err := exec.SelectContext(ctx, &resultIDs,
		exec.Rebind("SELECT result_id FROM option_results WHERE option_id = ? ORDER BY result_id"), id); err != nil {
		return nil, fmt.Errorf("failed to get results of option %d: %w", id, err)
	}

	domainOption := convertToDomainOption(&option)
	domainOption.ResultIDs = resultIDs
	return domainOption, nil
}

// OptionResultIDs maps each option to the results it counts toward
func (r *CatalogDatabaseAdapter) OptionResultIDs(ctx context.Context, optionIDs []int64) (map[int64][]int64, error) {
	resultIDs := make(map[int64][]int64, len(optionIDs))
	if len(optionIDs) == 0 {
		return resultIDs, nil
	}

	var links []models.OptionResult
	if err := selectIn(ctx, GetExecutor(ctx, r.db), &links,
		"SELECT option_id, result_id FROM option_results WHERE option_id IN (?) ORDER BY option_id, result_id", optionIDs); err != nil {
		return nil, fmt.Errorf("failed to get option results: %w", err)
	}
	for _, link := range links {
		resultIDs[link.OptionID] = append(resultIDs[link.OptionID], link.ResultID)
	}
	return resultIDs, nil
}

// ListResults returns every result ordered by id
func (r *CatalogDatabaseAdapter) ListResults(ctx context.Context) ([]*domain.Result, error) {
	var results []models.Result
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &results,
		"SELECT "+resultColumns+" FROM results ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	domainResults := make([]*domain.Result, len(results))
	for i := range results {
		domainResults[i] = convertToDomainResult(&results[i])
	}
	return domainResults, nil
}

func (r *CatalogDatabaseAdapter) GetResult(ctx context.Context, id int64) (*domain.Result, error) {
	exec := GetExecutor(ctx, r.db)

	var result models.Result
	err := exec.GetContext(ctx, &result, exec.Rebind("SELECT "+resultColumns+" FROM results WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get result %d: %w", id, err)
	}
	return convertToDomainResult(&result), nil
}

// CountOptionsPerResult counts the option links of every result that has at least one
func (r *CatalogDatabaseAdapter) CountOptionsPerResult(ctx context.Context) (map[int64]int, error) {
	var rows []models.ResultOptionCount
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows,
		"SELECT result_id, COUNT(option_id) AS num_options FROM option_results GROUP BY result_id"); err != nil {
		return nil, fmt.Errorf("failed to count options per result: %w", err)
	}

	counts := make(map[int64]int, len(rows))
	for _, row := range rows {
		counts[row.ResultID] = row.NumOptions
	}
	return counts, nil
}

// UpdateResultNumOptions stores counts on the results; results missing from counts get 0
func (r *CatalogDatabaseAdapter) UpdateResultNumOptions(ctx context.Context, counts map[int64]int) error {
	exec := GetExecutor(ctx, r.db)

	if _, err := exec.ExecContext(ctx, "UPDATE results SET num_options = 0"); err != nil {
		return fmt.Errorf("failed to reset result option counts: %w", err)
	}
	for resultID, count := range counts {
		if _, err := exec.ExecContext(ctx, exec.Rebind("UPDATE results SET num_options = ? WHERE id = ?"), count, resultID); err != nil {
			return fmt.Errorf("failed to update option count of result %d: %w", resultID, err)
		}
	}
	return nil
}

// assembleQuestions attaches sub-questions, options and result links to their questions,
// keeping the order of each input slice.
func assembleQuestions(questions []models.Question, subQuestions []models.SubQuestion, options []models.Option, links []models.OptionResult) []*domain.Question {
	resultIDs := make(map[int64][]int64)
	for _, link := range links {
		resultIDs[link.OptionID] = append(resultIDs[link.OptionID], link.ResultID)
	}

	byQuestion := make(map[int64]*domain.Question, len(questions))
	domainQuestions := make([]*domain.Question, len(questions))
	for i := range questions {
		domainQuestions[i] = convertToDomainQuestion(&questions[i])
		byQuestion[questions[i].ID] = domainQuestions[i]
	}

	bySubQuestion := make(map[int64]*domain.SubQuestion, len(subQuestions))
	for i := range subQuestions {
		sq := convertToDomainSubQuestion(&subQuestions[i])
		if q, ok := byQuestion[sq.QuestionID]; ok {
			q.SubQuestions = append(q.SubQuestions, sq)
			bySubQuestion[sq.ID] = sq
		}
	}

	for i := range options {
		o := convertToDomainOption(&options[i])
		o.ResultIDs = resultIDs[o.ID]
		switch {
		case o.SubQuestionID != nil:
			if sq, ok := bySubQuestion[*o.SubQuestionID]; ok {
				sq.Options = append(sq.Options, o)
			}
		case o.QuestionID != nil:
			if q, ok := byQuestion[*o.QuestionID]; ok {
				q.Options = append(q.Options, o)
			}
		}
	}
	return domainQuestions
}

func convertToDomainQuestion(q *models.Question) *domain.Question {
	return &domain.Question{
		ID:                                    q.ID,
		Number:                                q.Number,
		Text:                                  util.NullStringToString(q.Question),
		Description:                           util.NullStringToString(q.Description),
		NumberOfOptionsToChoose:               q.NumberOfOptionsToChoose,
		MandatoryNumberOfSubQuestionsToAnswer: q.MandatoryNumberOfSubQuestionsToAnswer,
	}
}

func convertToDomainSubQuestion(sq *models.SubQuestion) *domain.SubQuestion {
	return &domain.SubQuestion{
		ID:                    sq.ID,
		QuestionID:            sq.QuestionID,
		Description:           util.NullStringToString(sq.Description),
		AdditionalDescription: util.NullStringToString(sq.AdditionalDescription),
		OrderNumber:           int(sq.OrderNumber.Int32),
	}
}

func convertToDomainOption(o *models.Option) *domain.Option {
	return &domain.Option{
		ID:            o.ID,
		QuestionID:    util.NullInt64ToInt64Ptr(o.QuestionID),
		SubQuestionID: util.NullInt64ToInt64Ptr(o.SubQuestionID),
		Value:         util.NullStringToString(o.Value),
		OrderNumber:   int(o.OrderNumber.Int32),
		IsOther:       o.IsOther,
		AffectResult:  o.AffectResult,
	}
}

func convertToDomainResult(r *models.Result) *domain.Result {
	return &domain.Result{
		ID:          r.ID,
		Topic:       util.NullStringToString(r.Topic),
		Value:       util.NullStringToString(r.Value),
		Description: util.NullStringToString(r.Description),
		NumOptions:  r.NumOptions,
	}
}
