package service

import (
	"context"
	"errors"
	"fmt"

	"mobility-profile/internal/domain"
	"mobility-profile/internal/logger"

	"go.uber.org/zap"
)

// AggregationService folds a finished session into the postal code statistics.
type AggregationService interface {
	// FinalizeSession counts the user's result once under their home and optional postal
	// codes. It is a no-op when the result was already counted, the profile opts out,
	// or there is no result.
	FinalizeSession(ctx context.Context, userID string) error
}

type aggregationServiceImpl struct {
	userRepo   domain.UserRepository
	postalRepo domain.PostalCodeRepository
	scorer     ResultScorer
	txManager  domain.TransactionManager
}

func NewAggregationService(userRepo domain.UserRepository, postalRepo domain.PostalCodeRepository, scorer ResultScorer, txManager domain.TransactionManager) AggregationService {
	return &aggregationServiceImpl{
		userRepo:   userRepo,
		postalRepo: postalRepo,
		scorer:     scorer,
		txManager:  txManager,
	}
}

func (s *aggregationServiceImpl) FinalizeSession(ctx context.Context, userID string) error {
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		user, err := s.userRepo.GetUserForUpdate(txCtx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.NewNotFoundError(fmt.Sprintf("user %s not found", userID))
		}
		if user.PostalCodeResultSaved {
			logger.Get().Debug("Session already aggregated", zap.String("userID", userID))
			return nil
		}

		profile, err := s.userRepo.GetProfile(txCtx, userID)
		if err != nil {
			return err
		}
		if profile == nil {
			profile = domain.NewProfile(userID)
		}
		if !profile.CountsTowardStatistics() {
			logger.Get().Debug("Profile opted out of statistics", zap.String("userID", userID))
			return nil
		}

		result, err := s.scorer.ComputeResult(txCtx, userID)
		if err != nil {
			return err
		}
		if result == nil {
			logger.Get().Debug("No result to aggregate", zap.String("userID", userID))
			return nil
		}

		buckets := []struct {
			code     string
			typeName string
		}{
			{profile.PostalCode, domain.PostalCodeTypeHome},
			{profile.OptionalPostalCode, domain.PostalCodeTypeOptional},
		}
		for _, b := range buckets {
			if err := s.increment(txCtx, b.code, b.typeName, result.ID); err != nil {
				return err
			}
		}

		if err := s.userRepo.MarkPostalCodeResultSaved(txCtx, userID); err != nil {
			return err
		}
		logger.Get().Info("Session aggregated",
			zap.String("userID", userID),
			zap.Int64("resultID", result.ID))
		return nil
	})
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return domainErr
		}
		logger.Get().Error("Failed to aggregate session", zap.Error(err), zap.String("userID", userID))
		return domain.NewInternalError("failed to aggregate session", err)
	}
	return nil
}

// increment adds one to the bucket of the code, an empty code counting toward the null postal code.
func (s *aggregationServiceImpl) increment(ctx context.Context, code string, typeName string, resultID int64) error {
	var codePtr *string
	if code != "" {
		codePtr = &code
	}

	postalCode, err := s.postalRepo.GetOrCreatePostalCode(ctx, codePtr)
	if err != nil {
		return err
	}
	typeID, err := s.postalRepo.GetPostalCodeTypeID(ctx, typeName)
	if err != nil {
		return err
	}
	return s.postalRepo.IncrementResult(ctx, postalCode.ID, typeID, resultID)
}
