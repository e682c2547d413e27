package models

import "database/sql"

type PostalCode struct {
	ID         string         `db:"id"`
	PostalCode sql.NullString `db:"postal_code"`
}
