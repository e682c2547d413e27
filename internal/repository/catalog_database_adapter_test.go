package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a new sqlx.DB instance and sqlmock for repository testing.
func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	t.Cleanup(func() { sqlxDB.Close() })
	return sqlxDB, mock
}

var (
	questionRowColumns    = []string{"id", "number", "question", "description", "number_of_options_to_choose", "mandatory_number_of_sub_questions_to_answer"}
	subQuestionRowColumns = []string{"id", "question_id", "description", "additional_description", "order_number"}
	optionRowColumns      = []string{"id", "question_id", "sub_question_id", "value", "order_number", "is_other", "affect_result"}
	resultRowColumns      = []string{"id", "topic", "value", "description", "num_options"}
)

func TestListQuestions(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCatalogDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + questionColumns + " FROM questions ORDER BY number, id")).
		WillReturnRows(sqlmock.NewRows(questionRowColumns).
			AddRow(1, "1", "How do you commute?", nil, "choose_one_option", "0").
			AddRow(2, "2", "Rate these", "Pick per row", "choose_one_option", "all"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + subQuestionColumns + " FROM sub_questions ORDER BY question_id, order_number, id")).
		WillReturnRows(sqlmock.NewRows(subQuestionRowColumns).
			AddRow(10, 2, "Bus", nil, 1).
			AddRow(11, 2, "Bike", nil, 2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + optionColumns + " FROM options ORDER BY order_number, id")).
		WillReturnRows(sqlmock.NewRows(optionRowColumns).
			AddRow(100, 1, nil, "Car", 1, false, true).
			AddRow(101, 1, nil, "Other", 2, true, false).
			AddRow(110, nil, 10, "Often", 1, false, true).
			AddRow(111, nil, 11, "Never", 1, false, true))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT option_id, result_id FROM option_results ORDER BY option_id, result_id")).
		WillReturnRows(sqlmock.NewRows([]string{"option_id", "result_id"}).
			AddRow(100, 1).
			AddRow(100, 2).
			AddRow(110, 3))

	questions, err := repo.ListQuestions(context.Background())

	require.NoError(t, err)
	require.Len(t, questions, 2)

	first := questions[0]
	assert.Equal(t, "How do you commute?", first.Text)
	assert.Empty(t, first.Description)
	require.Len(t, first.Options, 2)
	assert.Equal(t, []int64{1, 2}, first.Options[0].ResultIDs)
	assert.True(t, first.Options[1].IsOther)
	assert.False(t, first.HasSubQuestions())

	second := questions[1]
	require.Len(t, second.SubQuestions, 2)
	assert.Empty(t, second.Options)
	require.Len(t, second.SubQuestions[0].Options, 1)
	assert.Equal(t, int64(110), second.SubQuestions[0].Options[0].ID)
	assert.Equal(t, []int64{3}, second.SubQuestions[0].Options[0].ResultIDs)
	assert.Nil(t, second.SubQuestions[1].Options[0].ResultIDs)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuestion(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewCatalogDatabaseAdapter(db)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT " + questionColumns + " FROM questions WHERE id = ?")).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows(questionRowColumns).AddRow(2, "2", "Rate these", nil, "choose_one_option", "all"))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT " + subQuestionColumns + " FROM sub_questions WHERE question_id = ? ORDER BY order_number, id")).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows(subQuestionRowColumns).AddRow(10, 2, "Bus", nil, 1))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT "+optionColumns+" FROM options WHERE question_id = ? OR sub_question_id IN (SELECT id FROM sub_questions WHERE question_id = ?) ORDER BY order_number, id")).
			WithArgs(int64(2), int64(2)).
			WillReturnRows(sqlmock.NewRows(optionRowColumns).
				AddRow(110, nil, 10, "Often", 1, false, true).
				AddRow(112, nil, 10, "Rarely", 2, false, true))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT option_id, result_id FROM option_results WHERE option_id IN (?, ?) ORDER BY option_id, result_id")).
			WithArgs(int64(110), int64(112)).
			WillReturnRows(sqlmock.NewRows([]string{"option_id", "result_id"}).AddRow(112, 4))

		question, err := repo.GetQuestion(context.Background(), 2)

		require.NoError(t, err)
		require.NotNil(t, question)
		require.NotNil(t, question.SubQuestion(10))
		assert.Len(t, question.SubQuestion(10).Options, 2)
		assert.Equal(t, []int64{4}, question.SubQuestion(10).Options[1].ResultIDs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewCatalogDatabaseAdapter(db)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT " + questionColumns + " FROM questions WHERE id = ?")).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows(questionRowColumns))

		question, err := repo.GetQuestion(context.Background(), 99)

		assert.NoError(t, err)
		assert.Nil(t, question)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewCatalogDatabaseAdapter(db)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT " + questionColumns + " FROM questions WHERE id = ?")).
			WithArgs(int64(1)).
			WillReturnError(errors.New("connection reset"))

		question, err := repo.GetQuestion(context.Background(), 1)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
		assert.Nil(t, question)
	})
}

func TestGetOption(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCatalogDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + optionColumns + " FROM options WHERE id = ?")).
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows(optionRowColumns).AddRow(100, 1, nil, "Car", 1, false, true))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT result_id FROM option_results WHERE option_id = ? ORDER BY result_id")).
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"result_id"}).AddRow(1).AddRow(2))

	option, err := repo.GetOption(context.Background(), 100)

	require.NoError(t, err)
	require.NotNil(t, option)
	assert.True(t, option.BelongsToQuestion(1))
	assert.Nil(t, option.SubQuestionID)
	assert.Equal(t, []int64{1, 2}, option.ResultIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOptionResultIDs(t *testing.T) {
	t.Run("empty input skips the query", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewCatalogDatabaseAdapter(db)

		ids, err := repo.OptionResultIDs(context.Background(), nil)

		assert.NoError(t, err)
		assert.Empty(t, ids)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("groups links per option", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewCatalogDatabaseAdapter(db)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT option_id, result_id FROM option_results WHERE option_id IN (?, ?, ?) ORDER BY option_id, result_id")).
			WithArgs(int64(1), int64(2), int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"option_id", "result_id"}).
				AddRow(1, 10).
				AddRow(1, 11).
				AddRow(3, 10))

		ids, err := repo.OptionResultIDs(context.Background(), []int64{1, 2, 3})

		require.NoError(t, err)
		assert.Equal(t, []int64{10, 11}, ids[1])
		assert.NotContains(t, ids, int64(2))
		assert.Equal(t, []int64{10}, ids[3])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListResults(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCatalogDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + resultColumns + " FROM results ORDER BY id")).
		WillReturnRows(sqlmock.NewRows(resultRowColumns).
			AddRow(1, "Cyclist", "cyclist", "Two wheels", 4).
			AddRow(2, "Driver", nil, nil, 0))

	results, err := repo.ListResults(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Cyclist", results[0].Topic)
	assert.Equal(t, 4, results[0].NumOptions)
	assert.Empty(t, results[1].Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetResult_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCatalogDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + resultColumns + " FROM results WHERE id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(resultRowColumns))

	result, err := repo.GetResult(context.Background(), 7)

	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountOptionsPerResult(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCatalogDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT result_id, COUNT(option_id) AS num_options FROM option_results GROUP BY result_id")).
		WillReturnRows(sqlmock.NewRows([]string{"result_id", "num_options"}).AddRow(1, 3).AddRow(2, 5))

	counts, err := repo.CountOptionsPerResult(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[int64]int{1: 3, 2: 5}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateResultNumOptions(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCatalogDatabaseAdapter(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE results SET num_options = 0")).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE results SET num_options = ? WHERE id = ?")).
		WithArgs(4, int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateResultNumOptions(context.Background(), map[int64]int{2: 4})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
