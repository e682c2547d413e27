package models

import (
	"database/sql"
	"time"
)

// User represents a row of the users table
type User struct {
	ID                    string        `db:"id"`
	Username              string        `db:"username"`
	IsGenerated           bool          `db:"is_generated"`
	ResultID              sql.NullInt64 `db:"result_id"`
	PostalCodeResultSaved bool          `db:"postal_code_result_saved"`
	CreatedAt             time.Time     `db:"created_at"`
	UpdatedAt             time.Time     `db:"updated_at"`
}

// Profile represents a row of the profiles table
type Profile struct {
	UserID                 string         `db:"user_id"`
	YearOfBirth            sql.NullInt32  `db:"year_of_birth"`
	PostalCode             sql.NullString `db:"postal_code"`
	OptionalPostalCode     sql.NullString `db:"optional_postal_code"`
	IsFilledForFun         bool           `db:"is_filled_for_fun"`
	IsInterestedInMobility bool           `db:"is_interested_in_mobility"`
	ResultCanBeUsed        bool           `db:"result_can_be_used"`
	Gender                 sql.NullString `db:"gender"`
	UpdatedAt              time.Time      `db:"updated_at"`
}
