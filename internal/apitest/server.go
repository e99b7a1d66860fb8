// Package apitest runs an in-process fake of the budgeting backend for
// integration-style tests. It speaks the same routes and payload shapes as
// the real API, including bearer auth and token refresh, with injectable
// failures.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"budgetbook/internal/dto"
	"budgetbook/internal/numeric"
)

var signingKey = []byte("apitest-signing-key")

// Server is the fake backend. Exported state fields may be seeded before
// the first request; after that, mutate only through the API.
type Server struct {
	mu sync.Mutex

	Email    string
	Password string

	Profile             dto.UserProfileResponse
	OnboardingCompleted bool
	Data                dto.FinancialDataResponse
	Categories          []dto.CategoryResponse
	Ledger              []dto.TransactionResponse

	LastOnboarding *dto.OnboardingRequest

	// RequestCount tracks calls per route for assertions on retry behavior.
	RequestCount map[string]int

	accessToken  string
	refreshToken string
	failures     map[string]*failureState
	nextID       int64
	tokenSerial  int64

	httpServer *httptest.Server
}

type failureState struct {
	status int
	left   int
}

// New starts a fake backend with one registered user.
func New() *Server {
	s := &Server{
		Email:    "user@example.com",
		Password: "secret-password",
		Profile: dto.UserProfileResponse{
			ID:        1,
			Username:  "demo",
			Email:     "user@example.com",
			FirstName: "Demo",
			LastName:  "User",
			Currency:  "EUR",
		},
		RequestCount: map[string]int{},
		failures:     map[string]*failureState{},
		nextID:       100,
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(s.countRequests)

	e.POST("/auth/login/", s.handleLogin)
	e.POST("/auth/register/", s.handleRegister)
	e.POST("/auth/refresh/", s.handleRefresh)

	authed := e.Group("", s.requireBearer)
	authed.GET("/auth/profile/", s.handleProfile)
	authed.PATCH("/auth/profile/", s.handleUpdateProfile)
	authed.GET("/auth/onboarding-status/", s.handleOnboardingStatus)
	authed.POST("/onboarding/complete/", s.handleCompleteOnboarding)
	authed.GET("/financial/data/", s.handleFinancialData)
	authed.GET("/categories/", s.handleListCategories)
	authed.POST("/categories/", s.handleCreateCategory)
	authed.PUT("/categories/:id/", s.handleUpdateCategory)
	authed.DELETE("/categories/:id/", s.handleDeleteCategory)
	authed.GET("/transactions/", s.handleListTransactions)
	authed.POST("/transactions/", s.handleCreateTransaction)
	authed.PUT("/transactions/:id/", s.handleUpdateTransaction)
	authed.DELETE("/transactions/:id/", s.handleDeleteTransaction)

	s.httpServer = httptest.NewServer(e)
	return s
}

// URL returns the base URL clients should point at.
func (s *Server) URL() string {
	return s.httpServer.URL
}

// Close shuts the fake backend down.
func (s *Server) Close() {
	s.httpServer.Close()
}

// FailNext makes the next n requests to path return the given status.
func (s *Server) FailNext(path string, status, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = &failureState{status: status, left: n}
}

// InvalidateAccessToken rotates the server-side access token, so whatever
// token the client currently holds stops working. The refresh token stays
// valid, which pushes the client through the refresh-and-retry path.
func (s *Server) InvalidateAccessToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = s.signToken(15 * time.Minute)
}

// RevokeSession invalidates both tokens, so even a refresh cannot recover.
func (s *Server) RevokeSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = s.signToken(15 * time.Minute)
	s.refreshToken = ""
}

// AccessToken returns the currently valid access token.
func (s *Server) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

func (s *Server) signToken(ttl time.Duration) string {
	// The other claims have second resolution, so two tokens signed within
	// the same second would be identical; the serial keeps rotation real.
	s.tokenSerial++
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(s.Profile.ID, 10),
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
		"jti": strconv.FormatInt(s.tokenSerial, 10),
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	return token
}

func (s *Server) takeFailure(path string) (int, bool) {
	state, ok := s.failures[path]
	if !ok || state.left <= 0 {
		return 0, false
	}
	state.left--
	return state.status, true
}

// countRequests tallies every request as it arrives, ahead of the bearer
// check, so rejected attempts show up in RequestCount alongside served ones.
func (s *Server) countRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		s.RequestCount[c.Request().Method+" "+c.Path()]++
		s.mu.Unlock()
		return next(c)
	}
}

func (s *Server) requireBearer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		header := c.Request().Header.Get("Authorization")
		valid := s.accessToken != "" && header == "Bearer "+s.accessToken
		s.mu.Unlock()

		if !valid {
			return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Given token not valid for any token type"})
		}
		return next(c)
	}
}

func (s *Server) handleLogin(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.takeFailure(c.Path()); ok {
		return c.JSON(status, echo.Map{"detail": "injected failure"})
	}

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "malformed body"})
	}
	if req.Email != s.Email || req.Password != s.Password {
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "No active account found with the given credentials"})
	}

	s.accessToken = s.signToken(15 * time.Minute)
	s.refreshToken = s.signToken(7 * 24 * time.Hour)
	return c.JSON(http.StatusOK, dto.TokenResponse{Access: s.accessToken, Refresh: s.refreshToken})
}

func (s *Server) handleRegister(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.takeFailure(c.Path()); ok {
		return c.JSON(status, echo.Map{"detail": "injected failure"})
	}

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "malformed body"})
	}
	if req.Email == s.Email {
		return c.JSON(http.StatusConflict, echo.Map{"detail": "email already registered"})
	}

	s.Email = req.Email
	s.Password = req.Password
	s.Profile.Username = req.Username
	s.Profile.Email = req.Email
	s.Profile.FirstName = req.FirstName
	s.Profile.LastName = req.LastName
	return c.NoContent(http.StatusCreated)
}

func (s *Server) handleRefresh(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.takeFailure(c.Path()); ok {
		return c.JSON(status, echo.Map{"detail": "injected failure"})
	}

	var req dto.RefreshRequest
	if err := c.Bind(&req); err != nil || req.Refresh != s.refreshToken || s.refreshToken == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Token is invalid or expired"})
	}

	s.accessToken = s.signToken(15 * time.Minute)
	return c.JSON(http.StatusOK, dto.TokenResponse{Access: s.accessToken})
}

func (s *Server) handleProfile(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.takeFailure(c.Path()); ok {
		return c.JSON(status, echo.Map{"detail": "injected failure"})
	}

	profile := s.Profile
	profile.OnboardingCompleted = s.OnboardingCompleted
	return c.JSON(http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.takeFailure(c.Path()); ok {
		return c.JSON(status, echo.Map{"detail": "injected failure"})
	}

	var req dto.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "malformed body"})
	}
	if req.FirstName != "" {
		s.Profile.FirstName = req.FirstName
	}
	if req.LastName != "" {
		s.Profile.LastName = req.LastName
	}
	if req.Currency != "" {
		s.Profile.Currency = req.Currency
	}
	if req.MonthlyIncome != nil {
		s.Profile.MonthlyIncome = numericAmount(*req.MonthlyIncome)
	}

	profile := s.Profile
	profile.OnboardingCompleted = s.OnboardingCompleted
	return c.JSON(http.StatusOK, profile)
}

func (s *Server) handleOnboardingStatus(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.takeFailure(c.Path()); ok {
		return c.JSON(status, echo.Map{"detail": "injected failure"})
	}

	return c.JSON(http.StatusOK, dto.OnboardingStatusResponse{OnboardingCompleted: s.OnboardingCompleted})
}

func (s *Server) handleCompleteOnboarding(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.takeFailure(c.Path()); ok {
		return c.JSON(status, echo.Map{"detail": "injected failure"})
	}

	var req dto.OnboardingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "malformed body"})
	}

	s.LastOnboarding = &req
	s.OnboardingCompleted = true
	s.Profile.MonthlyIncome = numericAmount(req.MonthlyIncome)
	if req.Currency != "" {
		s.Profile.Currency = req.Currency
	}

	s.Data = dto.FinancialDataResponse{MonthlyIncome: numericAmount(req.MonthlyIncome)}
	for _, income := range req.Incomes {
		s.Data.Incomes = append(s.Data.Incomes, dto.IncomeResponse{
			ID:        s.id(),
			Name:      income.Name,
			Amount:    numericAmount(income.Amount),
			Type:      income.Type,
			IsPrimary: income.IsPrimary,
			Frequency: income.Frequency,
		})
	}
	for _, expense := range req.FixedExpenses {
		s.Data.FixedExpenses = append(s.Data.FixedExpenses, s.expenseResponse(expense))
	}
	for _, expense := range req.VariableExpenses {
		s.Data.VariableExpenses = append(s.Data.VariableExpenses, s.expenseResponse(expense))
	}
	for _, goal := range req.SavingsGoals {
		s.Data.SavingsGoals = append(s.Data.SavingsGoals, dto.SavingsGoalResponse{
			ID:            s.id(),
			Name:          goal.Name,
			TargetAmount:  numericAmount(goal.TargetAmount),
			CurrentAmount: numericAmount(goal.CurrentAmount),
			TargetDate:    goal.TargetDate,
			Type:          goal.Type,
			Priority:      goal.Priority,
		})
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleFinancialData(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.takeFailure(c.Path()); ok {
		return c.JSON(status, echo.Map{"detail": "injected failure"})
	}

	return c.JSON(http.StatusOK, s.Data)
}

func (s *Server) handleListCategories(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.takeFailure(c.Path()); ok {
		return c.JSON(status, echo.Map{"detail": "injected failure"})
	}

	if s.Categories == nil {
		return c.JSON(http.StatusOK, []dto.CategoryResponse{})
	}
	return c.JSON(http.StatusOK, s.Categories)
}

func (s *Server) handleCreateCategory(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.takeFailure(c.Path()); ok {
		return c.JSON(status, echo.Map{"detail": "injected failure"})
	}

	var req dto.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "malformed body"})
	}

	category := dto.CategoryResponse{
		ID:    s.id(),
		Name:  req.Name,
		Type:  req.Type,
		Color: req.Color,
		Icon:  req.Icon,
	}
	if req.MonthlyBudget != nil {
		budget := numericAmount(*req.MonthlyBudget)
		category.MonthlyBudget = &budget
	}
	s.Categories = append(s.Categories, category)
	return c.JSON(http.StatusCreated, category)
}

func (s *Server) handleUpdateCategory(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.takeFailure(c.Path()); ok {
		return c.JSON(status, echo.Map{"detail": "injected failure"})
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "bad id"})
	}
	var req dto.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "malformed body"})
	}

	for i := range s.Categories {
		if s.Categories[i].ID != id {
			continue
		}
		s.Categories[i].Name = req.Name
		s.Categories[i].Type = req.Type
		s.Categories[i].Color = req.Color
		s.Categories[i].Icon = req.Icon
		s.Categories[i].MonthlyBudget = nil
		if req.MonthlyBudget != nil {
			budget := numericAmount(*req.MonthlyBudget)
			s.Categories[i].MonthlyBudget = &budget
		}
		return c.JSON(http.StatusOK, s.Categories[i])
	}
	return c.JSON(http.StatusNotFound, echo.Map{"detail": "category not found"})
}

func (s *Server) handleDeleteCategory(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.takeFailure(c.Path()); ok {
		return c.JSON(status, echo.Map{"detail": "injected failure"})
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "bad id"})
	}
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			s.Categories = append(s.Categories[:i], s.Categories[i+1:]...)
			return c.NoContent(http.StatusNoContent)
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"detail": "category not found"})
}

func (s *Server) handleListTransactions(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.takeFailure(c.Path()); ok {
		return c.JSON(status, echo.Map{"detail": "injected failure"})
	}

	if s.Ledger == nil {
		return c.JSON(http.StatusOK, []dto.TransactionResponse{})
	}
	return c.JSON(http.StatusOK, s.Ledger)
}

func (s *Server) handleCreateTransaction(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.takeFailure(c.Path()); ok {
		return c.JSON(status, echo.Map{"detail": "injected failure"})
	}

	var req dto.TransactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "malformed body"})
	}

	transaction := dto.TransactionResponse{
		ID:            s.id(),
		Name:          req.Name,
		Amount:        numericAmount(req.Amount),
		Type:          req.Type,
		Category:      req.Category,
		Date:          req.Date,
		PaymentMethod: req.PaymentMethod,
		Frequency:     req.Frequency,
	}
	s.Ledger = append(s.Ledger, transaction)
	return c.JSON(http.StatusCreated, transaction)
}

func (s *Server) handleUpdateTransaction(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.takeFailure(c.Path()); ok {
		return c.JSON(status, echo.Map{"detail": "injected failure"})
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "bad id"})
	}
	var req dto.TransactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "malformed body"})
	}

	for i := range s.Ledger {
		if s.Ledger[i].ID != id {
			continue
		}
		s.Ledger[i].Name = req.Name
		s.Ledger[i].Amount = numericAmount(req.Amount)
		s.Ledger[i].Type = req.Type
		s.Ledger[i].Category = req.Category
		s.Ledger[i].Date = req.Date
		s.Ledger[i].PaymentMethod = req.PaymentMethod
		s.Ledger[i].Frequency = req.Frequency
		return c.JSON(http.StatusOK, s.Ledger[i])
	}
	return c.JSON(http.StatusNotFound, echo.Map{"detail": "transaction not found"})
}

func (s *Server) handleDeleteTransaction(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.takeFailure(c.Path()); ok {
		return c.JSON(status, echo.Map{"detail": "injected failure"})
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "bad id"})
	}
	for i := range s.Ledger {
		if s.Ledger[i].ID == id {
			s.Ledger = append(s.Ledger[:i], s.Ledger[i+1:]...)
			return c.NoContent(http.StatusNoContent)
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"detail": "transaction not found"})
}

func (s *Server) expenseResponse(req dto.ExpenseRequest) dto.ExpenseResponse {
	resp := dto.ExpenseResponse{
		ID:        s.id(),
		Name:      req.Name,
		Amount:    numericAmount(req.Amount),
		Type:      req.Type,
		Category:  req.Category,
		Frequency: req.Frequency,
	}
	for _, category := range s.Categories {
		if req.Category != nil && category.ID == *req.Category {
			resp.CategoryName = category.Name
		}
	}
	return resp
}

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(strings.TrimSuffix(c.Param("id"), "/"), 10, 64)
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

func numericAmount(v float64) numeric.Amount {
	return numeric.Amount(v)
}
