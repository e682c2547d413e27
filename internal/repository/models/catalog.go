package models

import "database/sql"

// Question represents a row of the questions table
type Question struct {
	ID                                    int64          `db:"id"`
	Number                                string         `db:"number"`
	Question                              sql.NullString `db:"question"`
	Description                           sql.NullString `db:"description"`
	NumberOfOptionsToChoose               string         `db:"number_of_options_to_choose"`
	MandatoryNumberOfSubQuestionsToAnswer string         `db:"mandatory_number_of_sub_questions_to_answer"`
}

type SubQuestion struct {
	ID                    int64          `db:"id"`
	QuestionID            int64          `db:"question_id"`
	Description           sql.NullString `db:"description"`
	AdditionalDescription sql.NullString `db:"additional_description"`
	OrderNumber           sql.NullInt32  `db:"order_number"`
}

type Option struct {
	ID            int64          `db:"id"`
	QuestionID    sql.NullInt64  `db:"question_id"`
	SubQuestionID sql.NullInt64  `db:"sub_question_id"`
	Value         sql.NullString `db:"value"`
	OrderNumber   sql.NullInt32  `db:"order_number"`
	IsOther       bool           `db:"is_other"`
	AffectResult  bool           `db:"affect_result"`
}

// OptionResult is one link of the option <-> result many-to-many relation
type OptionResult struct {
	OptionID int64 `db:"option_id"`
	ResultID int64 `db:"result_id"`
}

type Result struct {
	ID          int64          `db:"id"`
	Topic       sql.NullString `db:"topic"`
	Value       sql.NullString `db:"value"`
	Description sql.NullString `db:"description"`
	NumOptions  int            `db:"num_options"`
}

// ResultOptionCount is an aggregate row of option links per result
type ResultOptionCount struct {
	ResultID   int64 `db:"result_id"`
	NumOptions int   `db:"num_options"`
}
