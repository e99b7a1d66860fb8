// Package session owns the authenticated application state: the signed-in
// user, the financial snapshot and the ad-hoc ledger. A Session is built by
// injection and passed to whoever needs it; there is deliberately no
// package-level instance, so tests and multi-account scenarios can hold
// several sessions side by side.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"budgetbook/internal/api"
	"budgetbook/internal/dto"
	"budgetbook/internal/models"
	"budgetbook/internal/onboarding"
	"budgetbook/internal/services"
)

// SessionInterface is the application-facing surface of the session store
type SessionInterface interface {
	// Auth lifecycle
	Login(ctx context.Context, email, password string) error
	Signup(ctx context.Context, req dto.RegisterRequest) error
	Logout()
	IsAuthenticated() bool
	Loading() bool

	// Onboarding
	OnboardingCompleted() bool
	OnboardingManager() onboarding.ManagerInterface
	CompleteOnboarding(ctx context.Context) error

	// Data access
	User() *models.User
	Snapshot() *models.FinancialSnapshot
	Categories() []models.Category
	Ledger() []models.Transaction
	RefreshFinancialData(ctx context.Context) error
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) error
	SaveTransaction(ctx context.Context, t models.Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error

	// Derived views
	Rollups() []models.CategoryRollup
	SpentShare() (float64, bool)
	MonthlyFlows(year int) []models.MonthlyFlow
	MergedTransactions() []models.Transaction
	ExportCSV(w io.Writer) error
}

type session struct {
	client     api.ClientInterface
	aggregator services.FinancialAggregatorInterface
	rollups    services.CategoryRollupBuilderInterface
	exporter   services.CSVExporterInterface
	metrics    services.MetricsRecorderInterface
	logger     *slog.Logger
	manager    onboarding.ManagerInterface

	mu                  sync.RWMutex
	user                *models.User
	snapshot            *models.FinancialSnapshot
	categories          []models.Category
	ledger              []models.Transaction
	onboardingCompleted bool
	inFlight            int

	// Refresh responses apply in issue order. A slow response that loses
	// the race to a newer one is discarded, never written over fresh data.
	issuedSeq  uint64
	appliedSeq uint64
}

// NewSession creates a new SessionInterface instance. All collaborators are
// injected; nothing here reaches for globals.
func NewSession(
	client api.ClientInterface,
	aggregator services.FinancialAggregatorInterface,
	rollups services.CategoryRollupBuilderInterface,
	exporter services.CSVExporterInterface,
	metrics services.MetricsRecorderInterface,
	logger *slog.Logger,
) SessionInterface {
	if logger == nil {
		logger = slog.Default()
	}

	s := &session{
		client:     client,
		aggregator: aggregator,
		rollups:    rollups,
		exporter:   exporter,
		metrics:    metrics,
		logger:     logger,
		manager:    onboarding.NewManager(client, logger),
	}

	client.SetForcedLogoutHandler(func() {
		s.logger.Warn("session ended by failed token refresh")
		s.clear()
	})

	return s
}

// Login establishes the session in a fixed order: authenticate, load the
// profile, check onboarding, then pull financial data. Any failure rolls
// the whole thing back so a half-initialized session can never be observed.
func (s *session) Login(ctx context.Context, email, password string) error {
	s.beginRequest()
	defer s.endRequest()

	if err := s.client.Login(ctx, dto.LoginRequest{Email: email, Password: password}); err != nil {
		return err
	}

	profile, err := s.client.Profile(ctx)
	if err != nil {
		s.rollbackLogin()
		return fmt.Errorf("failed to load profile: %w", err)
	}

	status, err := s.client.OnboardingStatus(ctx)
	if err != nil {
		s.rollbackLogin()
		return fmt.Errorf("failed to load onboarding status: %w", err)
	}

	user := profile.ToModel()
	s.mu.Lock()
	s.user = &user
	s.onboardingCompleted = status.OnboardingCompleted
	s.mu.Unlock()

	if status.OnboardingCompleted {
		if err := s.RefreshFinancialData(ctx); err != nil {
			s.rollbackLogin()
			return fmt.Errorf("failed to load financial data: %w", err)
		}
	} else {
		// Seed the wizard with the profile name so returning users do not
		// retype it on the first step.
		s.manager.Wizard().SetPersonalInfo(user.FirstName, user.LastName)
	}

	s.recordGauge("session.active", 1)
	s.logger.Info("session established", "user", user.Username, "onboarded", status.OnboardingCompleted)
	return nil
}

// Signup registers the account and immediately signs in with the same
// credentials.
func (s *session) Signup(ctx context.Context, req dto.RegisterRequest) error {
	s.beginRequest()
	err := s.client.Register(ctx, req)
	s.endRequest()
	if err != nil {
		return err
	}
	return s.Login(ctx, req.Email, req.Password)
}

func (s *session) Logout() {
	s.client.Logout()
	s.clear()
	s.logger.Info("session ended")
}

func (s *session) rollbackLogin() {
	s.client.Logout()
	s.clear()
}

func (s *session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.snapshot = nil
	s.categories = nil
	s.ledger = nil
	s.onboardingCompleted = false
	s.issuedSeq++
	s.appliedSeq = s.issuedSeq
	s.recordGauge("session.active", 0)
}

func (s *session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Loading reports whether any session operation has a request in flight,
// so the UI can disable controls instead of issuing overlapping calls.
func (s *session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight > 0
}

func (s *session) beginRequest() {
	s.mu.Lock()
	s.inFlight++
	s.mu.Unlock()
}

func (s *session) endRequest() {
	s.mu.Lock()
	s.inFlight--
	s.mu.Unlock()
}

func (s *session) OnboardingCompleted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.onboardingCompleted
}

func (s *session) OnboardingManager() onboarding.ManagerInterface {
	return s.manager
}

// CompleteOnboarding submits the wizard draft and, once the backend
// confirms, flips the local flag and pulls the freshly created data.
func (s *session) CompleteOnboarding(ctx context.Context) error {
	s.beginRequest()
	err := s.manager.Complete(ctx)
	s.endRequest()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.onboardingCompleted = true
	s.mu.Unlock()

	return s.RefreshFinancialData(ctx)
}

func (s *session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

func (s *session) Snapshot() *models.FinancialSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *session) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories
}

func (s *session) Ledger() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger
}

// RefreshFinancialData rebuilds the snapshot from the backend. Each call
// takes a sequence number before fetching; when the response arrives it is
// only applied if no newer refresh has completed in the meantime.
func (s *session) RefreshFinancialData(ctx context.Context) error {
	s.beginRequest()
	defer s.endRequest()

	s.mu.Lock()
	s.issuedSeq++
	seq := s.issuedSeq
	s.mu.Unlock()

	data, err := s.client.FinancialData(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch financial data: %w", err)
	}
	categoriesResp, err := s.client.Categories(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch categories: %w", err)
	}
	ledgerResp, err := s.client.Transactions(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch transactions: %w", err)
	}

	snapshot := s.aggregator.BuildSnapshot(data)
	categories := dto.ToCategories(categoriesResp)
	ledger := dto.ToTransactions(ledgerResp)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.appliedSeq {
		s.logger.Debug("discarding stale refresh", "seq", seq, "applied", s.appliedSeq)
		s.incrementCounter("refresh.stale_discarded", nil)
		return nil
	}
	s.appliedSeq = seq
	s.snapshot = snapshot
	s.categories = categories
	s.ledger = ledger
	if s.user != nil && snapshot.MonthlyIncome > 0 {
		s.user.MonthlyIncome = snapshot.MonthlyIncome
	}
	s.incrementCounter("snapshot.rebuild", nil)
	return nil
}

// SaveTransaction writes a ledger entry, creating it when it has no ID yet,
// then reloads the snapshot so the derived views pick it up.
func (s *session) SaveTransaction(ctx context.Context, t models.Transaction) error {
	s.beginRequest()
	var err error
	if t.ID == 0 {
		_, err = s.client.CreateTransaction(ctx, dto.FromTransaction(t))
	} else {
		_, err = s.client.UpdateTransaction(ctx, t.ID, dto.FromTransaction(t))
	}
	s.endRequest()
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return s.RefreshFinancialData(ctx)
}

// DeleteTransaction removes a ledger entry and reloads the snapshot.
func (s *session) DeleteTransaction(ctx context.Context, id int64) error {
	s.beginRequest()
	err := s.client.DeleteTransaction(ctx, id)
	s.endRequest()
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return s.RefreshFinancialData(ctx)
}

// UpdateProfile pushes the edit and applies the authoritative copy the
// backend returns.
func (s *session) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) error {
	s.beginRequest()
	defer s.endRequest()

	profile, err := s.client.UpdateProfile(ctx, req)
	if err != nil {
		return err
	}

	user := profile.ToModel()
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return nil
}

func (s *session) Rollups() []models.CategoryRollup {
	s.mu.RLock()
	snapshot := s.snapshot
	categories := s.categories
	s.mu.RUnlock()

	if snapshot == nil {
		return nil
	}
	expenses := make([]models.Expense, 0, len(snapshot.FixedExpenses)+len(snapshot.VariableExpenses))
	expenses = append(expenses, snapshot.FixedExpenses...)
	expenses = append(expenses, snapshot.VariableExpenses...)
	return s.rollups.Build(expenses, categories)
}

func (s *session) SpentShare() (float64, bool) {
	return s.aggregator.SpentShareOfIncome(s.Snapshot())
}

func (s *session) MonthlyFlows(year int) []models.MonthlyFlow {
	s.mu.RLock()
	snapshot := s.snapshot
	ledger := s.ledger
	s.mu.RUnlock()
	return s.aggregator.MonthlyFlows(snapshot, ledger, year)
}

func (s *session) MergedTransactions() []models.Transaction {
	s.mu.RLock()
	snapshot := s.snapshot
	ledger := s.ledger
	s.mu.RUnlock()
	return s.aggregator.MergeTransactions(snapshot, ledger)
}

// ExportCSV writes the merged transaction view as a spreadsheet.
func (s *session) ExportCSV(w io.Writer) error {
	if err := s.exporter.Export(w, s.MergedTransactions()); err != nil {
		s.incrementCounter("export.csv", map[string]string{"status": "failed"})
		return fmt.Errorf("failed to export transactions: %w", err)
	}
	s.incrementCounter("export.csv", map[string]string{"status": "success"})
	return nil
}

func (s *session) incrementCounter(name string, tags map[string]string) {
	if s.metrics != nil {
		s.metrics.IncrementCounter(name, tags)
	}
}

func (s *session) recordGauge(name string, value float64) {
	if s.metrics != nil {
		s.metrics.RecordGauge(name, value, nil)
	}
}
