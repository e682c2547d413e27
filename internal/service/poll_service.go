package service

import (
	"context"
	"errors"

	"mobility-profile/internal/domain"
	"mobility-profile/internal/dto"
	"mobility-profile/internal/logger"
	"mobility-profile/internal/util"

	"go.uber.org/zap"
)

// PollService opens and closes anonymous poll sessions.
type PollService interface {
	// StartPoll creates a generated user with an empty profile and a token for it.
	StartPoll(ctx context.Context) (*dto.StartPollResponse, error)

	// EndPoll aggregates the session, then revokes the token it was opened with.
	EndPoll(ctx context.Context, claims *dto.AuthClaims) error
}

type pollServiceImpl struct {
	userRepo    domain.UserRepository
	aggregation AggregationService
	authService AuthService
	txManager   domain.TransactionManager
}

func NewPollService(userRepo domain.UserRepository, aggregation AggregationService, authService AuthService, txManager domain.TransactionManager) PollService {
	return &pollServiceImpl{
		userRepo:    userRepo,
		aggregation: aggregation,
		authService: authService,
		txManager:   txManager,
	}
}

func (s *pollServiceImpl) StartPoll(ctx context.Context) (*dto.StartPollResponse, error) {
	user := domain.NewGeneratedUser(util.NewULID())

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.CreateUser(txCtx, user); err != nil {
			return err
		}
		return s.userRepo.CreateProfile(txCtx, domain.NewProfile(user.ID))
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewDuplicateError("poll user already exists", err)
		}
		logger.Get().Error("Failed to create poll user", zap.Error(err))
		return nil, domain.NewInternalError("failed to start poll", err)
	}

	token, err := s.authService.IssueToken(ctx, user.ID)
	if err != nil {
		logger.Get().Error("Failed to issue poll token", zap.Error(err), zap.String("userID", user.ID))
		return nil, domain.NewInternalError("failed to start poll", err)
	}

	logger.Get().Info("Poll started", zap.String("userID", user.ID))
	return &dto.StartPollResponse{ID: user.ID, Token: token}, nil
}

func (s *pollServiceImpl) EndPoll(ctx context.Context, claims *dto.AuthClaims) error {
	if err := s.aggregation.FinalizeSession(ctx, claims.UserID); err != nil {
		return err
	}
	if err := s.authService.RevokeToken(ctx, claims); err != nil {
		logger.Get().Error("Failed to revoke poll token", zap.Error(err), zap.String("userID", claims.UserID))
		return domain.NewInternalError("failed to end poll", err)
	}
	logger.Get().Info("Poll ended", zap.String("userID", claims.UserID))
	return nil
}
