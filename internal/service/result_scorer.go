package service

import (
	"context"
	"fmt"
	"sort"

	"mobility-profile/internal/domain"
	"mobility-profile/internal/logger"

	"go.uber.org/zap"
)

// ResultScorer computes the result that best matches a user's answers.
type ResultScorer interface {
	// ComputeResult returns nil when the user has no answers or none of the chosen
	// options points to a result.
	ComputeResult(ctx context.Context, userID string) (*domain.Result, error)
}

type resultScorerImpl struct {
	answerRepo   domain.AnswerRepository
	catalogRepo  domain.CatalogRepository
	optionCounts OptionCountCache
}

func NewResultScorer(answerRepo domain.AnswerRepository, catalogRepo domain.CatalogRepository, optionCounts OptionCountCache) ResultScorer {
	return &resultScorerImpl{
		answerRepo:   answerRepo,
		catalogRepo:  catalogRepo,
		optionCounts: optionCounts,
	}
}

func (s *resultScorerImpl) ComputeResult(ctx context.Context, userID string) (*domain.Result, error) {
	answers, err := s.answerRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers of user %s: %w", userID, err)
	}
	if len(answers) == 0 {
		return nil, nil
	}

	optionIDs := make([]int64, 0, len(answers))
	seen := make(map[int64]struct{}, len(answers))
	for _, a := range answers {
		if _, ok := seen[a.OptionID]; !ok {
			seen[a.OptionID] = struct{}{}
			optionIDs = append(optionIDs, a.OptionID)
		}
	}
	links, err := s.catalogRepo.OptionResultIDs(ctx, optionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load result links: %w", err)
	}

	raw := make(map[int64]int)
	for _, a := range answers {
		for _, resultID := range links[a.OptionID] {
			raw[resultID]++
		}
	}
	if len(raw) == 0 {
		return nil, nil
	}

	counts, err := s.optionCounts.Counts(ctx)
	if err != nil {
		return nil, err
	}

	bestID, ok := bestNormalizedScore(raw, counts)
	if !ok {
		return nil, nil
	}

	result, err := s.catalogRepo.GetResult(ctx, bestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load result %d: %w", bestID, err)
	}
	return result, nil
}

// bestNormalizedScore picks the result with the highest raw/num_options. Ties go to the
// lowest result id. Results with no known option count are skipped.
func bestNormalizedScore(raw map[int64]int, counts map[int64]int) (int64, bool) {
	ids := make([]int64, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var (
		bestID    int64
		bestScore float64
		found     bool
	)
	for _, id := range ids {
		denominator := counts[id]
		if denominator <= 0 {
			logger.Get().Warn("Result has answers but no option count, skipping", zap.Int64("resultID", id))
			continue
		}
		score := float64(raw[id]) / float64(denominator)
		if !found || score > bestScore {
			bestID, bestScore, found = id, score, true
		}
	}
	return bestID, found
}
