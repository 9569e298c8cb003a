package dto

import "time"

type RegisterInput struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required"`
	City         string `json:"city"`
	Password     string `json:"password" binding:"required,min=6"`
	ReferralCode string `json:"referralCode"`
}

// LoginInput accepts an email or a phone number as identifier.
type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type GoogleLoginInput struct {
	IDToken string `json:"idToken" binding:"required"`
}

type CreateVendorInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

// AccountResponse is returned by every login endpoint next to the cookie.
type AccountResponse struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Role         string    `json:"role"`
	ReferralCode string    `json:"referralCode,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AuthResult carries the signed token to the controller, which moves it into a cookie.
type AuthResult struct {
	Account AccountResponse
	Token   string
}
