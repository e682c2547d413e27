package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mobility-profile/internal/domain"
	"mobility-profile/internal/repository/models"
	"mobility-profile/internal/util"

	"github.com/jmoiron/sqlx"
)

type PostalCodeDatabaseAdapter struct {
	db      *sqlx.DB
	dialect dialect
}

// NewPostalCodeDatabaseAdapter creates a new instance of PostalCodeDatabaseAdapter
func NewPostalCodeDatabaseAdapter(db *sqlx.DB) domain.PostalCodeRepository {
	return &PostalCodeDatabaseAdapter{db: db, dialect: dialectFor(db)}
}

// GetOrCreatePostalCode is safe against concurrent creation of the same code:
// the insert is skipped on conflict and the row is read back.
func (r *PostalCodeDatabaseAdapter) GetOrCreatePostalCode(ctx context.Context, code *string) (*domain.PostalCode, error) {
	existing, err := r.findPostalCode(ctx, code)
	if err != nil || existing != nil {
		return existing, err
	}

	exec := GetExecutor(ctx, r.db)
	var codeArg sql.NullString
	if code != nil {
		codeArg = util.StringToNullString(*code)
	}
	if _, err := exec.ExecContext(ctx, exec.Rebind(r.dialect.insertPostalCodeIfAbsent), util.NewULID(), codeArg); err != nil {
		return nil, fmt.Errorf("failed to create postal code: %w", err)
	}

	created, err := r.findPostalCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("postal code missing right after insert")
	}
	return created, nil
}

func (r *PostalCodeDatabaseAdapter) findPostalCode(ctx context.Context, code *string) (*domain.PostalCode, error) {
	exec := GetExecutor(ctx, r.db)

	var (
		row models.PostalCode
		err error
	)
	if code == nil || *code == "" {
		err = exec.GetContext(ctx, &row, "SELECT id, postal_code FROM postal_codes WHERE postal_code IS NULL")
	} else {
		err = exec.GetContext(ctx, &row, exec.Rebind("SELECT id, postal_code FROM postal_codes WHERE postal_code = ?"), *code)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get postal code: %w", err)
	}

	postalCode := &domain.PostalCode{ID: row.ID}
	if row.PostalCode.Valid {
		value := row.PostalCode.String
		postalCode.Code = &value
	}
	return postalCode, nil
}

func (r *PostalCodeDatabaseAdapter) GetPostalCodeTypeID(ctx context.Context, name string) (int64, error) {
	exec := GetExecutor(ctx, r.db)

	var id int64
	if err := exec.GetContext(ctx, &id, exec.Rebind("SELECT id FROM postal_code_types WHERE type_name = ?"), name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("postal code type %q is not seeded: %w", name, err)
		}
		return 0, fmt.Errorf("failed to get postal code type %q: %w", name, err)
	}
	return id, nil
}

// IncrementResult adds one to the (postal code, type, result) bucket in a single statement
func (r *PostalCodeDatabaseAdapter) IncrementResult(ctx context.Context, postalCodeID string, postalCodeTypeID int64, resultID int64) error {
	exec := GetExecutor(ctx, r.db)
	if _, err := exec.ExecContext(ctx, exec.Rebind(r.dialect.incrementPostalCodeResult),
		util.NewULID(), postalCodeID, postalCodeTypeID, resultID); err != nil {
		return fmt.Errorf("failed to increment postal code result: %w", err)
	}
	return nil
}
