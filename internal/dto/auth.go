package dto

// Auth Request DTOs

// RegisterRequest contains user registration data
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}

// LoginRequest contains login credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest contains the refresh token for renewal
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// Auth Response DTOs

// TokenResponse contains the authentication token pair. A refresh exchange
// returns only the access field.
type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}
