package domain

import (
	"time"
)

const (
	GenderMale      = "M"
	GenderFemale    = "F"
	GenderNonbinary = "NB"
)

// User is a poll participant. Poll sessions create generated users.
type User struct {
	ID                    string
	Username              string
	IsGenerated           bool
	ResultID              *int64
	PostalCodeResultSaved bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NewGeneratedUser creates the anonymous user of a new poll session.
func NewGeneratedUser(id string) *User {
	now := time.Now()
	return &User{
		ID:          id,
		Username:    "anonymous_" + id,
		IsGenerated: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Profile carries the background data a user gives alongside their answers.
type Profile struct {
	UserID                 string
	YearOfBirth            *int
	PostalCode             string
	OptionalPostalCode     string
	IsFilledForFun         bool
	IsInterestedInMobility bool
	ResultCanBeUsed        bool
	Gender                 string
	UpdatedAt              time.Time
}

// NewProfile returns the defaults of a freshly created profile.
func NewProfile(userID string) *Profile {
	return &Profile{
		UserID:          userID,
		ResultCanBeUsed: true,
		UpdatedAt:       time.Now(),
	}
}

// CountsTowardStatistics reports whether the profile allows aggregating the user's result.
func (p *Profile) CountsTowardStatistics() bool {
	return !p.IsFilledForFun && p.ResultCanBeUsed
}
