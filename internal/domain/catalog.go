package domain

// Values of Question.NumberOfOptionsToChoose and
// Question.MandatoryNumberOfSubQuestionsToAnswer besides plain digits.
const (
	ChooseOne        = "1"
	ChooseOneOrMore  = "+"
	ChooseZeroOrMore = "*"
)

// Question is a top-level prompt of the poll. Its options are attached either
// directly or through its sub-questions, never both.
type Question struct {
	ID                                    int64
	Number                                string
	Text                                  string
	Description                           string
	NumberOfOptionsToChoose               string
	MandatoryNumberOfSubQuestionsToAnswer string
	SubQuestions                          []*SubQuestion
	Options                               []*Option
}

// HasSubQuestions reports whether answers must name one of the question's sub-questions.
func (q *Question) HasSubQuestions() bool {
	return len(q.SubQuestions) > 0
}

// SubQuestion finds one of the question's own sub-questions.
func (q *Question) SubQuestion(id int64) *SubQuestion {
	for _, sq := range q.SubQuestions {
		if sq.ID == id {
			return sq
		}
	}
	return nil
}

type SubQuestion struct {
	ID                    int64
	QuestionID            int64
	Description           string
	AdditionalDescription string
	OrderNumber           int
	Options               []*Option
}

// Option belongs to exactly one of a question or a sub-question.
type Option struct {
	ID            int64
	QuestionID    *int64
	SubQuestionID *int64
	Value         string
	OrderNumber   int
	IsOther       bool
	AffectResult  bool
	ResultIDs     []int64
}

// BelongsToQuestion reports whether the option is attached directly to the question.
func (o *Option) BelongsToQuestion(questionID int64) bool {
	return o.SubQuestionID == nil && o.QuestionID != nil && *o.QuestionID == questionID
}

// BelongsToSubQuestion reports whether the option is attached to the sub-question.
func (o *Option) BelongsToSubQuestion(subQuestionID int64) bool {
	return o.SubQuestionID != nil && *o.SubQuestionID == subQuestionID
}

// Result is a persona the poll can assign. NumOptions is the number of options
// across the catalog that point to it.
type Result struct {
	ID          int64
	Topic       string
	Value       string
	Description string
	NumOptions  int
}
