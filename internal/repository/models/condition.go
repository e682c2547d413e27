package models

import "database/sql"

type QuestionCondition struct {
	ID                     int64         `db:"id"`
	QuestionID             int64         `db:"question_id"`
	QuestionConditionID    sql.NullInt64 `db:"question_condition_id"`
	SubQuestionConditionID sql.NullInt64 `db:"sub_question_condition_id"`
}

// QuestionConditionOption is one triggering option of a question condition
type QuestionConditionOption struct {
	QuestionConditionID int64 `db:"question_condition_id"`
	OptionID            int64 `db:"option_id"`
}

type SubQuestionCondition struct {
	ID            int64 `db:"id"`
	SubQuestionID int64 `db:"sub_question_id"`
	OptionID      int64 `db:"option_id"`
}

// ConditionedQuestion is a question that is the target of at least one condition
type ConditionedQuestion struct {
	ID     int64  `db:"id"`
	Number string `db:"number"`
}
