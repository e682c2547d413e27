package service

import (
	"context"
	"fmt"
	"time"

	"mobility-profile/internal/domain"
	"mobility-profile/internal/dto"
	"mobility-profile/internal/logger"

	"go.uber.org/zap"
)

// ProfileService reads and edits the background data of a poll user.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)

	// UpdateProfile applies the fields present in req and keeps the others.
	UpdateProfile(ctx context.Context, userID string, req dto.ProfileUpdateRequest) (*dto.ProfileResponse, error)
}

type profileServiceImpl struct {
	userRepo  domain.UserRepository
	txManager domain.TransactionManager
}

func NewProfileService(userRepo domain.UserRepository, txManager domain.TransactionManager) ProfileService {
	return &profileServiceImpl{
		userRepo:  userRepo,
		txManager: txManager,
	}
}

func (s *profileServiceImpl) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	profile, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load profile", err)
	}
	if profile == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("profile of user %s not found", userID))
	}
	return toProfileResponse(profile), nil
}

func (s *profileServiceImpl) UpdateProfile(ctx context.Context, userID string, req dto.ProfileUpdateRequest) (*dto.ProfileResponse, error) {
	var updated *domain.Profile
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		user, err := s.userRepo.GetUserByID(txCtx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.NewNotFoundError(fmt.Sprintf("user %s not found", userID))
		}

		profile, err := s.userRepo.GetProfile(txCtx, userID)
		if err != nil {
			return err
		}
		created := profile == nil
		if created {
			profile = domain.NewProfile(userID)
		}

		applyProfileUpdate(profile, req)
		profile.UpdatedAt = time.Now()

		if created {
			err = s.userRepo.CreateProfile(txCtx, profile)
		} else {
			err = s.userRepo.UpdateProfile(txCtx, profile)
		}
		if err != nil {
			return err
		}
		updated = profile
		return nil
	})
	if err != nil {
		if code := domain.ErrorCodeOf(err); code != domain.CodeInternal {
			return nil, err
		}
		logger.Get().Error("Failed to update profile", zap.Error(err), zap.String("userID", userID))
		return nil, domain.NewInternalError("failed to update profile", err)
	}

	logger.Get().Info("Profile updated", zap.String("userID", userID))
	return toProfileResponse(updated), nil
}

func applyProfileUpdate(profile *domain.Profile, req dto.ProfileUpdateRequest) {
	if req.YearOfBirth != nil {
		year := *req.YearOfBirth
		profile.YearOfBirth = &year
	}
	if req.PostalCode != nil {
		profile.PostalCode = *req.PostalCode
	}
	if req.OptionalPostalCode != nil {
		profile.OptionalPostalCode = *req.OptionalPostalCode
	}
	if req.IsFilledForFun != nil {
		profile.IsFilledForFun = *req.IsFilledForFun
	}
	if req.IsInterestedInMobility != nil {
		profile.IsInterestedInMobility = *req.IsInterestedInMobility
	}
	if req.ResultCanBeUsed != nil {
		profile.ResultCanBeUsed = *req.ResultCanBeUsed
	}
	if req.Gender != nil {
		profile.Gender = *req.Gender
	}
}

func toProfileResponse(p *domain.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:                     p.UserID,
		YearOfBirth:            p.YearOfBirth,
		PostalCode:             p.PostalCode,
		OptionalPostalCode:     p.OptionalPostalCode,
		IsFilledForFun:         p.IsFilledForFun,
		IsInterestedInMobility: p.IsInterestedInMobility,
		ResultCanBeUsed:        p.ResultCanBeUsed,
		Gender:                 p.Gender,
	}
}
