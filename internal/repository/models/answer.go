package models

import (
	"database/sql"
	"time"
)

// Answer represents a row of the answers table
type Answer struct {
	ID            string         `db:"id"`
	UserID        string         `db:"user_id"`
	QuestionID    int64          `db:"question_id"`
	SubQuestionID sql.NullInt64  `db:"sub_question_id"`
	OptionID      int64          `db:"option_id"`
	Other         sql.NullString `db:"other"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}
