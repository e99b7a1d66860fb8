package api

import (
	"context"

	"budgetbook/internal/dto"
)

// ClientInterface defines every backend operation the application uses
type ClientInterface interface {
	// Auth
	Login(ctx context.Context, req dto.LoginRequest) error
	Register(ctx context.Context, req dto.RegisterRequest) error
	Logout()

	// Profile
	Profile(ctx context.Context) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	OnboardingStatus(ctx context.Context) (*dto.OnboardingStatusResponse, error)

	// Onboarding
	CompleteOnboarding(ctx context.Context, req dto.OnboardingRequest) error

	// Financial data
	FinancialData(ctx context.Context) (*dto.FinancialDataResponse, error)
	Categories(ctx context.Context) ([]dto.CategoryResponse, error)
	CreateCategory(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id int64, req dto.CategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id int64) error
	Transactions(ctx context.Context) ([]dto.TransactionResponse, error)
	CreateTransaction(ctx context.Context, req dto.TransactionRequest) (*dto.TransactionResponse, error)
	UpdateTransaction(ctx context.Context, id int64, req dto.TransactionRequest) (*dto.TransactionResponse, error)
	DeleteTransaction(ctx context.Context, id int64) error

	// Session plumbing
	Tokens() TokenStore
	SetForcedLogoutHandler(fn func())
}
