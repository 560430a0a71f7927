package dto

import (
	"time"

	"github.com/gemline/repair-service/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Email      string          `json:"email"`
	Mobile     string          `json:"mobile"`
	Password   string          `json:"password"`
	LineUserID *string         `json:"line_user_id"`
	Address    *AddressPayload `json:"address"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AddressPayload mirrors a delivery address on the wire.
type AddressPayload struct {
	Province    string `json:"province"`
	District    string `json:"district"`
	SubDistrict string `json:"sub_district"`
	PostalCode  string `json:"postal_code"`
	Details     string `json:"details"`
}

// UpdateProfileRequest carries a partial profile update.
type UpdateProfileRequest struct {
	FirstName *string         `json:"first_name"`
	LastName  *string         `json:"last_name"`
	Mobile    *string         `json:"mobile"`
	Address   *AddressPayload `json:"address"`
}

// LinkLineRequest attaches a LINE user id to the account.
type LinkLineRequest struct {
	LineUserID string `json:"line_user_id"`
}

// CustomerResponse is the public account shape.
type CustomerResponse struct {
	ID         string          `json:"id"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Email      string          `json:"email"`
	Mobile     string          `json:"mobile"`
	Role       domain.Role     `json:"role"`
	LineLinked bool            `json:"line_linked"`
	Address    *AddressPayload `json:"address,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// AuthResponse wraps an issued access token.
type AuthResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Customer  CustomerResponse `json:"customer"`
}

// LocationResponse is one Thai administrative-area row.
type LocationResponse struct {
	Province string `json:"province"`
	Amphoe   string `json:"amphoe"`
	Tambon   string `json:"tambon"`
	Zipcode  string `json:"zipcode"`
}
