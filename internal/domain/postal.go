package domain

// Postal code types seeded by the initial migration.
const (
	PostalCodeTypeHome     = "Home"
	PostalCodeTypeOptional = "Optional"
)

// PostalCode is an aggregation key. A nil Code is the bucket for users who gave no code.
type PostalCode struct {
	ID   string
	Code *string
}

// PostalCodeResult counts users with a given result per postal code and type.
// PostalCodeID and PostalCodeTypeID are either both set or both nil.
type PostalCodeResult struct {
	ID               string
	PostalCodeID     *string
	PostalCodeTypeID *int64
	ResultID         int64
	Count            int
}
