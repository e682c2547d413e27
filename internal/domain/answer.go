package domain

import "time"

// Answer is a user's current choice for one (question, sub-question) slot.
type Answer struct {
	ID            string
	UserID        string
	QuestionID    int64
	SubQuestionID *int64
	OptionID      int64
	Other         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AnswerSubmission is the input of the answer ledger.
type AnswerSubmission struct {
	UserID        string
	QuestionID    *int64
	OptionID      *int64
	SubQuestionID *int64
	Other         string
}

// AnswerOutcome tells whether a submission created a new answer or replaced one.
type AnswerOutcome struct {
	Answer  *Answer
	Created bool
	Result  *Result
}
