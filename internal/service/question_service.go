package service

import (
	"context"
	"fmt"

	"mobility-profile/internal/domain"
	"mobility-profile/internal/dto"
)

// QuestionService serves the catalog and the condition state of its questions.
type QuestionService interface {
	ListQuestions(ctx context.Context) ([]dto.QuestionResponse, error)
	GetQuestion(ctx context.Context, id int64) (*dto.QuestionResponse, error)
	ListResults(ctx context.Context) ([]dto.ResultResponse, error)

	// QuestionsWithConditions returns the questions gated by at least one condition, ordered by number.
	QuestionsWithConditions(ctx context.Context) ([]dto.QuestionResponse, error)

	QuestionConditionStates(ctx context.Context, userID string) ([]domain.ConditionState, error)
	SubQuestionConditionStates(ctx context.Context, userID string) ([]domain.ConditionState, error)

	// CheckQuestionCondition fails with NOT_FOUND when the question does not exist or has no condition.
	CheckQuestionCondition(ctx context.Context, userID string, questionID int64) (bool, error)
	CheckSubQuestionCondition(ctx context.Context, userID string, subQuestionID int64) (bool, error)

	// InCondition reports whether answers to the question gate other questions.
	InCondition(ctx context.Context, questionID int64) (bool, error)
}

type questionServiceImpl struct {
	catalogRepo   domain.CatalogRepository
	conditionRepo domain.ConditionRepository
	evaluator     ConditionEvaluator
}

func NewQuestionService(catalogRepo domain.CatalogRepository, conditionRepo domain.ConditionRepository, evaluator ConditionEvaluator) QuestionService {
	return &questionServiceImpl{
		catalogRepo:   catalogRepo,
		conditionRepo: conditionRepo,
		evaluator:     evaluator,
	}
}

func (s *questionServiceImpl) ListQuestions(ctx context.Context) ([]dto.QuestionResponse, error) {
	questions, err := s.catalogRepo.ListQuestions(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list questions", err)
	}
	resp := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		resp = append(resp, toQuestionResponse(q))
	}
	return resp, nil
}

func (s *questionServiceImpl) GetQuestion(ctx context.Context, id int64) (*dto.QuestionResponse, error) {
	question, err := s.getQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toQuestionResponse(question)
	return &resp, nil
}

func (s *questionServiceImpl) getQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	question, err := s.catalogRepo.GetQuestion(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to load question", err)
	}
	if question == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("question %d not found", id))
	}
	return question, nil
}

func (s *questionServiceImpl) ListResults(ctx context.Context) ([]dto.ResultResponse, error) {
	results, err := s.catalogRepo.ListResults(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list results", err)
	}
	resp := make([]dto.ResultResponse, 0, len(results))
	for _, r := range results {
		resp = append(resp, ToResultResponse(r))
	}
	return resp, nil
}

func (s *questionServiceImpl) QuestionsWithConditions(ctx context.Context) ([]dto.QuestionResponse, error) {
	ids, err := s.conditionRepo.ListConditionedQuestionIDs(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list conditioned questions", err)
	}
	if len(ids) == 0 {
		return []dto.QuestionResponse{}, nil
	}

	questions, err := s.catalogRepo.ListQuestions(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list questions", err)
	}
	byID := make(map[int64]*domain.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	resp := make([]dto.QuestionResponse, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			resp = append(resp, toQuestionResponse(q))
		}
	}
	return resp, nil
}

func (s *questionServiceImpl) QuestionConditionStates(ctx context.Context, userID string) ([]domain.ConditionState, error) {
	ids, err := s.conditionRepo.ListConditionedQuestionIDs(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list conditioned questions", err)
	}
	states := make([]domain.ConditionState, 0, len(ids))
	for _, id := range ids {
		met, err := s.evaluator.QuestionConditionMet(ctx, userID, id)
		if err != nil {
			return nil, domain.NewInternalError("failed to evaluate question condition", err)
		}
		states = append(states, domain.ConditionState{ID: id, State: met})
	}
	return states, nil
}

func (s *questionServiceImpl) SubQuestionConditionStates(ctx context.Context, userID string) ([]domain.ConditionState, error) {
	ids, err := s.conditionRepo.ListConditionedSubQuestionIDs(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list conditioned sub questions", err)
	}
	states := make([]domain.ConditionState, 0, len(ids))
	for _, id := range ids {
		met, err := s.evaluator.SubQuestionConditionMet(ctx, userID, id)
		if err != nil {
			return nil, domain.NewInternalError("failed to evaluate sub question condition", err)
		}
		states = append(states, domain.ConditionState{ID: id, State: met})
	}
	return states, nil
}

func (s *questionServiceImpl) CheckQuestionCondition(ctx context.Context, userID string, questionID int64) (bool, error) {
	if _, err := s.getQuestion(ctx, questionID); err != nil {
		return false, err
	}

	conditions, err := s.conditionRepo.ListQuestionConditions(ctx, questionID)
	if err != nil {
		return false, domain.NewInternalError("failed to load question conditions", err)
	}
	if len(conditions) == 0 {
		return false, domain.NewNotFoundError(fmt.Sprintf("question %d has no condition", questionID))
	}

	met, err := s.evaluator.QuestionConditionMet(ctx, userID, questionID)
	if err != nil {
		return false, domain.NewInternalError("failed to evaluate question condition", err)
	}
	return met, nil
}

func (s *questionServiceImpl) CheckSubQuestionCondition(ctx context.Context, userID string, subQuestionID int64) (bool, error) {
	subQuestion, err := s.catalogRepo.GetSubQuestion(ctx, subQuestionID)
	if err != nil {
		return false, domain.NewInternalError("failed to load sub question", err)
	}
	if subQuestion == nil {
		return false, domain.NewNotFoundError(fmt.Sprintf("sub question %d not found", subQuestionID))
	}

	met, err := s.evaluator.SubQuestionConditionMet(ctx, userID, subQuestionID)
	if err != nil {
		return false, domain.NewInternalError("failed to evaluate sub question condition", err)
	}
	return met, nil
}

func (s *questionServiceImpl) InCondition(ctx context.Context, questionID int64) (bool, error) {
	if _, err := s.getQuestion(ctx, questionID); err != nil {
		return false, err
	}
	referenced, err := s.conditionRepo.IsReferencedAsSource(ctx, questionID)
	if err != nil {
		return false, domain.NewInternalError("failed to look up conditions", err)
	}
	return referenced, nil
}

func toQuestionResponse(q *domain.Question) dto.QuestionResponse {
	resp := dto.QuestionResponse{
		ID:                                    q.ID,
		Number:                                q.Number,
		Question:                              q.Text,
		Description:                           q.Description,
		NumberOfOptionsToChoose:               q.NumberOfOptionsToChoose,
		MandatoryNumberOfSubQuestionsToAnswer: q.MandatoryNumberOfSubQuestionsToAnswer,
		NumSubQuestions:                       len(q.SubQuestions),
		SubQuestions:                          make([]dto.SubQuestionResponse, 0, len(q.SubQuestions)),
		Options:                               toOptionResponses(q.Options),
	}
	for _, sq := range q.SubQuestions {
		resp.SubQuestions = append(resp.SubQuestions, dto.SubQuestionResponse{
			ID:                    sq.ID,
			Question:              sq.QuestionID,
			Description:           sq.Description,
			AdditionalDescription: sq.AdditionalDescription,
			OrderNumber:           sq.OrderNumber,
			Options:               toOptionResponses(sq.Options),
		})
	}
	return resp
}

func toOptionResponses(options []*domain.Option) []dto.OptionResponse {
	resp := make([]dto.OptionResponse, 0, len(options))
	for _, o := range options {
		results := o.ResultIDs
		if results == nil {
			results = []int64{}
		}
		resp = append(resp, dto.OptionResponse{
			ID:           o.ID,
			Question:     o.QuestionID,
			SubQuestion:  o.SubQuestionID,
			Value:        o.Value,
			OrderNumber:  o.OrderNumber,
			IsOther:      o.IsOther,
			AffectResult: o.AffectResult,
			Results:      results,
		})
	}
	return resp
}

// ToResultResponse maps a result to its API representation.
func ToResultResponse(r *domain.Result) dto.ResultResponse {
	return dto.ResultResponse{
		ID:          r.ID,
		Topic:       r.Topic,
		Value:       r.Value,
		Description: r.Description,
		NumOptions:  r.NumOptions,
	}
}
