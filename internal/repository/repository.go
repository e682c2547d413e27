package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"mobility-profile/internal/config"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// DBTX is an interface abstracting *sqlx.DB and *sqlx.Tx for repository use.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	Rebind(query string) string
}

// postgresUniqueViolation is the SQLSTATE of a unique constraint violation.
const postgresUniqueViolation = "23505"

// isUniqueViolation recognises duplicate key errors of lib/pq and go-ora.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == postgresUniqueViolation
	}
	return strings.Contains(err.Error(), "ORA-00001")
}

// selectIn runs a query containing a single "IN (?)" list, returning no rows for an empty list.
func selectIn[T any](ctx context.Context, exec DBTX, dest *[]T, query string, args ...interface{}) error {
	query, inArgs, err := sqlx.In(query, args...)
	if err != nil {
		return err
	}
	return exec.SelectContext(ctx, dest, exec.Rebind(query), inArgs...)
}

// dialect holds the statements that differ between PostgreSQL and Oracle.
type dialect struct {
	insertPostalCodeIfAbsent  string
	incrementPostalCodeResult string
}

var postgresDialect = dialect{
	insertPostalCodeIfAbsent: `INSERT INTO postal_codes (id, postal_code) VALUES (?, ?) ON CONFLICT DO NOTHING`,
	incrementPostalCodeResult: `INSERT INTO postal_code_results (id, postal_code_id, postal_code_type_id, result_id, count)
		VALUES (?, ?, ?, ?, 1)
		ON CONFLICT (postal_code_id, postal_code_type_id, result_id)
		DO UPDATE SET count = postal_code_results.count + 1`,
}

var oracleDialect = dialect{
	insertPostalCodeIfAbsent: `MERGE INTO postal_codes t
		USING (SELECT ? AS id, ? AS postal_code FROM dual) s
		ON (t.postal_code = s.postal_code OR (t.postal_code IS NULL AND s.postal_code IS NULL))
		WHEN NOT MATCHED THEN INSERT (id, postal_code) VALUES (s.id, s.postal_code)`,
	incrementPostalCodeResult: `MERGE INTO postal_code_results t
		USING (SELECT ? AS id, ? AS postal_code_id, ? AS postal_code_type_id, ? AS result_id FROM dual) s
		ON (t.postal_code_id = s.postal_code_id AND t.postal_code_type_id = s.postal_code_type_id AND t.result_id = s.result_id)
		WHEN MATCHED THEN UPDATE SET t.count = t.count + 1
		WHEN NOT MATCHED THEN INSERT (id, postal_code_id, postal_code_type_id, result_id, count)
			VALUES (s.id, s.postal_code_id, s.postal_code_type_id, s.result_id, 1)`,
}

func dialectFor(db *sqlx.DB) dialect {
	if db.DriverName() == config.DriverOracle {
		return oracleDialect
	}
	return postgresDialect
}
