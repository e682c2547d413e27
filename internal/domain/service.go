package domain

import "context"

// TransactionManager runs fn inside one database transaction. Repositories called
// with the ctx passed to fn take part in it.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CatalogRepository reads the question catalog. Lookups of a single row return
// (nil, nil) when it does not exist.
type CatalogRepository interface {
	// ListQuestions returns every question ordered by number, with sub-questions and options loaded
	ListQuestions(ctx context.Context) ([]*Question, error)

	// GetQuestion returns one question with sub-questions and options loaded
	GetQuestion(ctx context.Context, id int64) (*Question, error)

	GetSubQuestion(ctx context.Context, id int64) (*SubQuestion, error)

	// GetOption returns one option with its result links loaded
	GetOption(ctx context.Context, id int64) (*Option, error)

	// OptionResultIDs maps each given option to the results it points to
	OptionResultIDs(ctx context.Context, optionIDs []int64) (map[int64][]int64, error)

	// ListResults returns every result ordered by id
	ListResults(ctx context.Context) ([]*Result, error)

	GetResult(ctx context.Context, id int64) (*Result, error)

	// CountOptionsPerResult counts option links per result from the link table
	CountOptionsPerResult(ctx context.Context) (map[int64]int, error)

	// UpdateResultNumOptions stores precomputed option counts on the results
	UpdateResultNumOptions(ctx context.Context, counts map[int64]int) error
}

// ConditionRepository reads the conditions gating questions and sub-questions.
type ConditionRepository interface {
	// ListQuestionConditions returns every condition whose target is the question, ordered by id
	ListQuestionConditions(ctx context.Context, questionID int64) ([]*QuestionCondition, error)

	// GetSubQuestionCondition returns the first condition of the sub-question, or nil
	GetSubQuestionCondition(ctx context.Context, subQuestionID int64) (*SubQuestionCondition, error)

	// ListConditionedQuestionIDs returns the targets of question conditions ordered by question number
	ListConditionedQuestionIDs(ctx context.Context) ([]int64, error)

	// ListConditionedSubQuestionIDs returns every sub-question with a condition
	ListConditionedSubQuestionIDs(ctx context.Context) ([]int64, error)

	// IsReferencedAsSource reports whether any question condition reads answers of the question
	IsReferencedAsSource(ctx context.Context, questionID int64) (bool, error)
}

// AnswerRepository persists the answer ledger.
type AnswerRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*Answer, error)

	// ChosenOptionsForQuestion returns the options the user chose for the question, across its sub-questions
	ChosenOptionsForQuestion(ctx context.Context, userID string, questionID int64) ([]int64, error)

	ChosenOptionsForSubQuestion(ctx context.Context, userID string, subQuestionID int64) ([]int64, error)

	// HasChosenOption reports whether any answer of the user selects the option
	HasChosenOption(ctx context.Context, userID string, optionID int64) (bool, error)

	// FindForUpdate locks and returns the answer of the slot, or nil
	FindForUpdate(ctx context.Context, userID string, questionID int64, subQuestionID *int64) (*Answer, error)

	Create(ctx context.Context, answer *Answer) error
	Update(ctx context.Context, answer *Answer) error
}

// UserRepository persists poll users and their profiles.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)

	// GetUserForUpdate locks the user row until the surrounding transaction ends
	GetUserForUpdate(ctx context.Context, id string) (*User, error)

	SetResult(ctx context.Context, userID string, resultID *int64) error
	MarkPostalCodeResultSaved(ctx context.Context, userID string) error

	CreateProfile(ctx context.Context, profile *Profile) error
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, profile *Profile) error
}

// PostalCodeRepository maintains the postal code aggregation buckets.
type PostalCodeRepository interface {
	// GetOrCreatePostalCode returns the row of the code, nil meaning "no code given"
	GetOrCreatePostalCode(ctx context.Context, code *string) (*PostalCode, error)

	GetPostalCodeTypeID(ctx context.Context, name string) (int64, error)

	// IncrementResult adds one to the bucket, creating it on first use
	IncrementResult(ctx context.Context, postalCodeID string, postalCodeTypeID int64, resultID int64) error
}
