package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mobility-profile/internal/domain"
	"mobility-profile/internal/repository/models"
	"mobility-profile/internal/util"

	"github.com/jmoiron/sqlx"
)

const (
	userColumns    = "id, username, is_generated, result_id, postal_code_result_saved, created_at, updated_at"
	profileColumns = "user_id, year_of_birth, postal_code, optional_postal_code, is_filled_for_fun, is_interested_in_mobility, result_can_be_used, gender, updated_at"
)

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

// CreateUser inserts a new user. A taken username yields domain.ErrDuplicate.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, username, is_generated, result_id, postal_code_result_saved, created_at, updated_at)
	          VALUES (:id, :username, :is_generated, :result_id, :postal_code_result_saved, :created_at, :updated_at)`

	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, convertToModelUser(user)); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %s: %w", user.Username, domain.ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID returns nil, nil when the user does not exist.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
}

func (r *sqlxUserRepository) GetUserForUpdate(ctx context.Context, id string) (*domain.User, error) {
	return r.getUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = ? FOR UPDATE", id)
}

func (r *sqlxUserRepository) getUser(ctx context.Context, query string, id string) (*domain.User, error) {
	exec := GetExecutor(ctx, r.db)

	var user models.User
	if err := exec.GetContext(ctx, &user, exec.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return convertToDomainUser(&user), nil
}

// SetResult stores the user's latest computed result, nil clearing it.
func (r *sqlxUserRepository) SetResult(ctx context.Context, userID string, resultID *int64) error {
	exec := GetExecutor(ctx, r.db)
	_, err := exec.ExecContext(ctx,
		exec.Rebind("UPDATE users SET result_id = ?, updated_at = ? WHERE id = ?"),
		util.Int64PtrToNullInt64(resultID), time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to set result of user %s: %w", userID, err)
	}
	return nil
}

func (r *sqlxUserRepository) MarkPostalCodeResultSaved(ctx context.Context, userID string) error {
	exec := GetExecutor(ctx, r.db)
	result, err := exec.ExecContext(ctx,
		exec.Rebind("UPDATE users SET postal_code_result_saved = ?, updated_at = ? WHERE id = ?"),
		true, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to mark postal code result saved for user %s: %w", userID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user %s: %w", userID, sql.ErrNoRows)
	}
	return nil
}

func (r *sqlxUserRepository) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	query := `INSERT INTO profiles (user_id, year_of_birth, postal_code, optional_postal_code, is_filled_for_fun, is_interested_in_mobility, result_can_be_used, gender, updated_at)
	          VALUES (:user_id, :year_of_birth, :postal_code, :optional_postal_code, :is_filled_for_fun, :is_interested_in_mobility, :result_can_be_used, :gender, :updated_at)`

	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, convertToModelProfile(profile)); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("profile of user %s: %w", profile.UserID, domain.ErrDuplicate)
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetProfile returns nil, nil when the user has no profile.
func (r *sqlxUserRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	exec := GetExecutor(ctx, r.db)

	var profile models.Profile
	if err := exec.GetContext(ctx, &profile, exec.Rebind("SELECT "+profileColumns+" FROM profiles WHERE user_id = ?"), userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile of user %s: %w", userID, err)
	}
	return convertToDomainProfile(&profile), nil
}

func (r *sqlxUserRepository) UpdateProfile(ctx context.Context, profile *domain.Profile) error {
	query := `UPDATE profiles SET
	            year_of_birth = :year_of_birth,
	            postal_code = :postal_code,
	            optional_postal_code = :optional_postal_code,
	            is_filled_for_fun = :is_filled_for_fun,
	            is_interested_in_mobility = :is_interested_in_mobility,
	            result_can_be_used = :result_can_be_used,
	            gender = :gender,
	            updated_at = :updated_at
	          WHERE user_id = :user_id`

	result, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, convertToModelProfile(profile))
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("profile of user %s: %w", profile.UserID, sql.ErrNoRows)
	}
	return nil
}

func convertToDomainUser(u *models.User) *domain.User {
	return &domain.User{
		ID:                    u.ID,
		Username:              u.Username,
		IsGenerated:           u.IsGenerated,
		ResultID:              util.NullInt64ToInt64Ptr(u.ResultID),
		PostalCodeResultSaved: u.PostalCodeResultSaved,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}

func convertToModelUser(u *domain.User) *models.User {
	return &models.User{
		ID:                    u.ID,
		Username:              u.Username,
		IsGenerated:           u.IsGenerated,
		ResultID:              util.Int64PtrToNullInt64(u.ResultID),
		PostalCodeResultSaved: u.PostalCodeResultSaved,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}

func convertToDomainProfile(p *models.Profile) *domain.Profile {
	return &domain.Profile{
		UserID:                 p.UserID,
		YearOfBirth:            util.NullInt32ToIntPtr(p.YearOfBirth),
		PostalCode:             util.NullStringToString(p.PostalCode),
		OptionalPostalCode:     util.NullStringToString(p.OptionalPostalCode),
		IsFilledForFun:         p.IsFilledForFun,
		IsInterestedInMobility: p.IsInterestedInMobility,
		ResultCanBeUsed:        p.ResultCanBeUsed,
		Gender:                 util.NullStringToString(p.Gender),
		UpdatedAt:              p.UpdatedAt,
	}
}

func convertToModelProfile(p *domain.Profile) *models.Profile {
	return &models.Profile{
		UserID:                 p.UserID,
		YearOfBirth:            util.IntPtrToNullInt32(p.YearOfBirth),
		PostalCode:             util.StringToNullString(p.PostalCode),
		OptionalPostalCode:     util.StringToNullString(p.OptionalPostalCode),
		IsFilledForFun:         p.IsFilledForFun,
		IsInterestedInMobility: p.IsInterestedInMobility,
		ResultCanBeUsed:        p.ResultCanBeUsed,
		Gender:                 util.StringToNullString(p.Gender),
		UpdatedAt:              p.UpdatedAt,
	}
}
