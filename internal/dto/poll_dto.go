package dto

// ResultResponse is the representation of a result category.
type ResultResponse struct {
	ID          int64  `json:"id"`
	Topic       string `json:"topic"`
	Value       string `json:"value,omitempty"`
	Description string `json:"description,omitempty"`
	NumOptions  int    `json:"num_options"`
}

type OptionResponse struct {
	ID           int64   `json:"id"`
	Question     *int64  `json:"question"`
	SubQuestion  *int64  `json:"sub_question"`
	Value        string  `json:"value"`
	OrderNumber  int     `json:"order_number"`
	IsOther      bool    `json:"is_other"`
	AffectResult bool    `json:"affect_result"`
	Results      []int64 `json:"results"`
}

type SubQuestionResponse struct {
	ID                    int64            `json:"id"`
	Question              int64            `json:"question"`
	Description           string           `json:"description"`
	AdditionalDescription string           `json:"additional_description,omitempty"`
	OrderNumber           int              `json:"order_number"`
	Options               []OptionResponse `json:"options"`
}

// QuestionResponse is a question with its sub-questions and direct options.
type QuestionResponse struct {
	ID                                    int64                 `json:"id"`
	Number                                string                `json:"number"`
	Question                              string                `json:"question"`
	Description                           string                `json:"description,omitempty"`
	NumberOfOptionsToChoose               string                `json:"number_of_options_to_choose"`
	MandatoryNumberOfSubQuestionsToAnswer string                `json:"mandatory_number_of_sub_questions_to_answer"`
	NumSubQuestions                       int                   `json:"num_sub_questions"`
	SubQuestions                          []SubQuestionResponse `json:"sub_questions"`
	Options                               []OptionResponse      `json:"options"`
}

// ConditionStateResponse reports whether the condition of a question or sub-question is met.
type ConditionStateResponse struct {
	ID    int64 `json:"id"`
	State bool  `json:"state"`
}

// CheckQuestionConditionRequest is the body of the question condition checks.
type CheckQuestionConditionRequest struct {
	Question *int64 `json:"question" validate:"required"`
}

// CheckSubQuestionConditionRequest is the body of the sub-question condition check.
type CheckSubQuestionConditionRequest struct {
	SubQuestion *int64 `json:"sub_question" validate:"required"`
}

type ConditionMetResponse struct {
	ConditionMet bool `json:"condition_met"`
}

type InConditionResponse struct {
	InCondition bool `json:"in_condition"`
}

// AnswerRequest represents the body of an answer submission.
// @Description Request body for answering a question or sub-question
type AnswerRequest struct {
	Question    *int64 `json:"question"`
	Option      *int64 `json:"option"`
	SubQuestion *int64 `json:"sub_question"`
	Other       string `json:"other" validate:"max=255"`
}

// AnswerResponse echoes the stored answer.
type AnswerResponse struct {
	ID          string `json:"id"`
	User        string `json:"user"`
	Question    int64  `json:"question"`
	SubQuestion *int64 `json:"sub_question"`
	Option      int64  `json:"option"`
	Other       string `json:"other,omitempty"`
}
