package api

import (
	"context"
	"fmt"
	"net/http"

	"budgetbook/internal/dto"
	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/validation"
)

var validate = validation.NewValidator()

func validateRequest(req any) error {
	if fields := validate.Struct(req); fields != nil {
		return &apperrors.APIError{
			Code:       apperrors.ValidationGeneral,
			StatusCode: http.StatusBadRequest,
			Message:    fmt.Sprintf("validation failed: %v", fields),
		}
	}
	return nil
}

// Login exchanges credentials for a token pair and stores it. Credentials
// never touch the token store.
func (c *client) Login(ctx context.Context, req dto.LoginRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	var tokens dto.TokenResponse
	if _, err := c.doOnce(ctx, http.MethodPost, "/auth/login/", req, &tokens, false); err != nil {
		if apperrors.StatusOf(err) == http.StatusUnauthorized {
			return &apperrors.APIError{Code: apperrors.AuthInvalidCredentials, StatusCode: http.StatusUnauthorized}
		}
		return err
	}

	c.tokens.SetTokens(tokens.Access, tokens.Refresh)
	if c.metrics != nil {
		c.metrics.IncrementCounter("authentication_event", map[string]string{"event_type": "login"})
	}
	return nil
}

func (c *client) Register(ctx context.Context, req dto.RegisterRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	_, err := c.doOnce(ctx, http.MethodPost, "/auth/register/", req, nil, false)
	return err
}

// Logout drops the local token pair. The backend keeps no session state
// worth revoking.
func (c *client) Logout() {
	c.tokens.Clear()
	if c.metrics != nil {
		c.metrics.IncrementCounter("authentication_event", map[string]string{"event_type": "logout"})
		c.metrics.RecordGauge("session.active", 0, nil)
	}
}

func (c *client) Profile(ctx context.Context) (*dto.UserProfileResponse, error) {
	var profile dto.UserProfileResponse
	if err := c.do(ctx, http.MethodGet, "/auth/profile/", nil, &profile, true); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *client) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	var profile dto.UserProfileResponse
	if err := c.do(ctx, http.MethodPatch, "/auth/profile/", req, &profile, true); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *client) OnboardingStatus(ctx context.Context) (*dto.OnboardingStatusResponse, error) {
	var status dto.OnboardingStatusResponse
	if err := c.do(ctx, http.MethodGet, "/auth/onboarding-status/", nil, &status, true); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *client) CompleteOnboarding(ctx context.Context, req dto.OnboardingRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/onboarding/complete/", req, nil, true)
}

func (c *client) FinancialData(ctx context.Context) (*dto.FinancialDataResponse, error) {
	var data dto.FinancialDataResponse
	if err := c.do(ctx, http.MethodGet, "/financial/data/", nil, &data, true); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *client) Categories(ctx context.Context) ([]dto.CategoryResponse, error) {
	var categories []dto.CategoryResponse
	if err := c.do(ctx, http.MethodGet, "/categories/", nil, &categories, true); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *client) CreateCategory(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	var category dto.CategoryResponse
	if err := c.do(ctx, http.MethodPost, "/categories/", req, &category, true); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *client) UpdateCategory(ctx context.Context, id int64, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	var category dto.CategoryResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d/", id), req, &category, true); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d/", id), nil, nil, true)
}

func (c *client) Transactions(ctx context.Context) ([]dto.TransactionResponse, error) {
	var transactions []dto.TransactionResponse
	if err := c.do(ctx, http.MethodGet, "/transactions/", nil, &transactions, true); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (c *client) CreateTransaction(ctx context.Context, req dto.TransactionRequest) (*dto.TransactionResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	var transaction dto.TransactionResponse
	if err := c.do(ctx, http.MethodPost, "/transactions/", req, &transaction, true); err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (c *client) UpdateTransaction(ctx context.Context, id int64, req dto.TransactionRequest) (*dto.TransactionResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	var transaction dto.TransactionResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/transactions/%d/", id), req, &transaction, true); err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (c *client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/transactions/%d/", id), nil, nil, true)
}
