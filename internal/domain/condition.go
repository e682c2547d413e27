package domain

// QuestionCondition gates QuestionID on the user having picked one of OptionIDs
// when answering SourceQuestionID, or only SourceSubQuestionID when that is set.
type QuestionCondition struct {
	ID                  int64
	QuestionID          int64
	SourceQuestionID    *int64
	SourceSubQuestionID *int64
	OptionIDs           []int64
}

// Satisfied reports whether any of the chosen options triggers the condition.
func (c *QuestionCondition) Satisfied(chosen []int64) bool {
	if len(chosen) == 0 || len(c.OptionIDs) == 0 {
		return false
	}
	triggering := make(map[int64]struct{}, len(c.OptionIDs))
	for _, id := range c.OptionIDs {
		triggering[id] = struct{}{}
	}
	for _, id := range chosen {
		if _, ok := triggering[id]; ok {
			return true
		}
	}
	return false
}

// SubQuestionCondition gates SubQuestionID on the user having selected OptionID anywhere.
type SubQuestionCondition struct {
	ID            int64
	SubQuestionID int64
	OptionID      int64
}

// ConditionState is the evaluated condition of one question or sub-question.
type ConditionState struct {
	ID    int64
	State bool
}
