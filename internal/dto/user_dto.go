package dto

import (
	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"` // "access"
	jwt.RegisteredClaims
}

// StartPollResponse carries the anonymous user created for a poll session.
// @Description Response body of start_poll
type StartPollResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// ProfileUpdateRequest represents a partial profile update. Omitted fields keep their value.
// @Description Request body for updating the poll profile
type ProfileUpdateRequest struct {
	YearOfBirth            *int    `json:"year_of_birth" validate:"omitempty,min=1900,max=2100"`
	PostalCode             *string `json:"postal_code" validate:"omitempty,numeric,len=5"`
	OptionalPostalCode     *string `json:"optional_postal_code" validate:"omitempty,numeric,len=5"`
	IsFilledForFun         *bool   `json:"is_filled_for_fun"`
	IsInterestedInMobility *bool   `json:"is_interested_in_mobility"`
	ResultCanBeUsed        *bool   `json:"result_can_be_used"`
	Gender                 *string `json:"gender" validate:"omitempty,oneof=M F NB"`
}

// ProfileResponse represents the stored profile of the current user.
type ProfileResponse struct {
	ID                     string `json:"id"`
	YearOfBirth            *int   `json:"year_of_birth"`
	PostalCode             string `json:"postal_code,omitempty"`
	OptionalPostalCode     string `json:"optional_postal_code,omitempty"`
	IsFilledForFun         bool   `json:"is_filled_for_fun"`
	IsInterestedInMobility bool   `json:"is_interested_in_mobility"`
	ResultCanBeUsed        bool   `json:"result_can_be_used"`
	Gender                 string `json:"gender,omitempty"`
}

// MessageResponse represents a generic message response.
// @Description Generic message response
type MessageResponse struct {
	Message string `json:"message"`
}
