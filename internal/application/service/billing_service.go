package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/billing"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/entity"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/repository"
	"github.com/togay-aytemiz/lumiso-sub014/internal/observability/logger"
	"github.com/togay-aytemiz/lumiso-sub014/internal/observability/metrics"
	"github.com/togay-aytemiz/lumiso-sub014/pkg/apperror"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// BillingService answers the money questions of a project: header figures,
// service totals, payment summaries, deposit quotes and installment status.
type BillingService struct {
	projectRepo        repository.ProjectRepository
	projectServiceRepo repository.ProjectServiceRepository
	paymentRepo        repository.PaymentRepository
	todoRepo           repository.TodoRepository
	tenantRepo         repository.TenantRepository
	metrics            *metrics.Billing
	defaultCurrency    string
}

// NewBillingService creates a new billing service
func NewBillingService(
	projectRepo repository.ProjectRepository,
	projectServiceRepo repository.ProjectServiceRepository,
	paymentRepo repository.PaymentRepository,
	todoRepo repository.TodoRepository,
	tenantRepo repository.TenantRepository,
	m *metrics.Billing,
	defaultCurrency string,
) *BillingService {
	return &BillingService{
		projectRepo:        projectRepo,
		projectServiceRepo: projectServiceRepo,
		paymentRepo:        paymentRepo,
		todoRepo:           todoRepo,
		tenantRepo:         tenantRepo,
		metrics:            m,
		defaultCurrency:    defaultCurrency,
	}
}

// DepositQuote is the deposit owed on a project and how much of it is paid
type DepositQuote struct {
	Config   billing.DepositConfig  `json:"config"`
	Context  billing.PricingContext `json:"context"`
	Ceiling  float64                `json:"ceiling"`
	Amount   float64                `json:"amount"`
	Progress billing.DepositStatus  `json:"progress"`
}

// OutstandingSchedule is the settled state of a project's installments
type OutstandingSchedule struct {
	Collected    float64                         `json:"collected"`
	Outstanding  float64                         `json:"outstanding"`
	Installments []billing.InstallmentAllocation `json:"installments"`
}

// ProjectHeaderSummary loads the project, its services, payments and todos
// concurrently and computes the header figures. Any failed fetch fails the
// whole call.
func (s *BillingService) ProjectHeaderSummary(ctx context.Context, projectID uuid.UUID) (billing.HeaderSummary, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveHeader(time.Since(start)) }()

	var (
		project  *entity.Project
		services []entity.ProjectService
		payments []entity.Payment
		todos    []entity.Todo
		currency string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if project, err = s.loadProject(gctx, projectID); err != nil {
			return err
		}
		currency, err = s.tenantCurrency(gctx, project.TenantID)
		return err
	})
	g.Go(func() (err error) {
		services, err = s.loadServices(gctx, projectID)
		return err
	})
	g.Go(func() (err error) {
		payments, err = s.loadPayments(gctx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		todos, err = s.todoRepo.ListByProject(gctx, projectID)
		return s.collaboratorError(metrics.CollaboratorTodos, err)
	})
	if err := g.Wait(); err != nil {
		return billing.HeaderSummary{}, err
	}

	lines := make([]billing.ServiceLine, 0, len(services))
	for i := range services {
		lines = append(lines, services[i].ServiceLine())
	}
	items := make([]billing.TodoItem, 0, len(todos))
	for _, t := range todos {
		items = append(items, billing.TodoItem{Completed: t.IsCompleted})
	}

	return billing.ComputeHeaderSummary(billing.HeaderInput{
		BasePrice: project.BasePrice,
		Services:  lines,
		Payments:  entity.LedgerEntries(payments),
		Todos:     items,
		Currency:  currency,
	}), nil
}

// HeaderSummaryOrZero is ProjectHeaderSummary with a safety net: when a
// collaborator fetch fails the error is logged and counted, and an all-zero
// summary is returned with degraded set. A missing project is still an error.
func (s *BillingService) HeaderSummaryOrZero(ctx context.Context, projectID uuid.UUID) (billing.HeaderSummary, bool, error) {
	summary, err := s.ProjectHeaderSummary(ctx, projectID)
	if err == nil {
		return summary, false, nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Code == http.StatusNotFound {
		return billing.HeaderSummary{}, false, err
	}

	logger.FromContext(ctx).Error("header summary fell back to zero",
		zap.String("project_id", projectID.String()),
		zap.Error(err),
	)
	s.metrics.Fallback()
	return billing.ZeroHeaderSummary(s.defaultCurrency), true, nil
}

// ServiceTotals prices every service attached to the project
func (s *BillingService) ServiceTotals(ctx context.Context, projectID uuid.UUID) (*billing.ServiceAggregate, error) {
	if _, err := s.loadProject(ctx, projectID); err != nil {
		return nil, err
	}
	services, err := s.loadServices(ctx, projectID)
	if err != nil {
		return nil, err
	}

	lines := make([]billing.ServiceLine, 0, len(services))
	for i := range services {
		lines = append(lines, services[i].ServiceLine())
	}
	agg := billing.AggregateServices(lines)
	return &agg, nil
}

// PaymentSummary summarizes the project's payment ledger
func (s *BillingService) PaymentSummary(ctx context.Context, projectID uuid.UUID) (*billing.PaymentSummary, error) {
	if _, err := s.loadProject(ctx, projectID); err != nil {
		return nil, err
	}
	payments, err := s.loadPayments(ctx, projectID)
	if err != nil {
		return nil, err
	}

	summary := billing.SummarizePayments(entity.LedgerEntries(payments))
	return &summary, nil
}

// DepositQuote computes the deposit owed under the project's stored terms.
// contractTotal, when given, replaces base price plus extras as the ceiling.
func (s *BillingService) DepositQuote(ctx context.Context, projectID uuid.UUID, contractTotal *float64) (*DepositQuote, error) {
	var (
		project  *entity.Project
		services []entity.ProjectService
		payments []entity.Payment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		project, err = s.loadProject(gctx, projectID)
		return err
	})
	g.Go(func() (err error) {
		services, err = s.loadServices(gctx, projectID)
		return err
	})
	g.Go(func() (err error) {
		payments, err = s.loadPayments(gctx, projectID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lines := make([]billing.ServiceLine, 0, len(services))
	for i := range services {
		lines = append(lines, services[i].ServiceLine())
	}
	pricing := billing.PricingContext{
		BasePrice:     project.BasePrice,
		ExtrasTotal:   billing.AggregateServiceTotals(lines),
		ContractTotal: contractTotal,
	}
	amount := billing.ComputeDeposit(project.DepositConfig, pricing)

	return &DepositQuote{
		Config:   project.DepositConfig,
		Context:  pricing,
		Ceiling:  pricing.Ceiling(),
		Amount:   amount,
		Progress: billing.DepositProgress(amount, billing.DepositPaid(entity.LedgerEntries(payments))),
	}, nil
}

// UpdateDepositConfig validates and stores the project's deposit terms.
// Only the terms are stored; amounts are always derived on read.
func (s *BillingService) UpdateDepositConfig(ctx context.Context, projectID uuid.UUID, cfg billing.DepositConfig) (*billing.DepositConfig, error) {
	if issues := billing.ValidateDepositConfig(cfg); len(issues) > 0 {
		return nil, validationError(issues)
	}

	err := s.projectRepo.UpdateDepositConfig(ctx, projectID, cfg)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NewNotFoundError("Project")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to store deposit config: %w", err)
	}
	return &cfg, nil
}

// OutstandingSchedule spreads the money collected so far over the project's
// scheduled installments, oldest first. Nothing is written back.
func (s *BillingService) OutstandingSchedule(ctx context.Context, projectID uuid.UUID) (*OutstandingSchedule, error) {
	if _, err := s.loadProject(ctx, projectID); err != nil {
		return nil, err
	}
	payments, err := s.loadPayments(ctx, projectID)
	if err != nil {
		return nil, err
	}

	entries := entity.LedgerEntries(payments)
	collected := billing.CollectedTotal(entries)
	allocations := billing.AllocateScheduled(billing.Schedules(entries), collected)

	var outstanding billing.Cents
	for _, a := range allocations {
		outstanding += billing.ToCents(a.Remaining)
	}
	return &OutstandingSchedule{
		Collected:    collected,
		Outstanding:  outstanding.Float64(),
		Installments: allocations,
	}, nil
}

func (s *BillingService) loadProject(ctx context.Context, projectID uuid.UUID) (*entity.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, s.collaboratorError(metrics.CollaboratorProject, err)
	}
	if project == nil {
		return nil, apperror.NewNotFoundError("Project")
	}
	return project, nil
}

func (s *BillingService) loadServices(ctx context.Context, projectID uuid.UUID) ([]entity.ProjectService, error) {
	services, err := s.projectServiceRepo.ListByProject(ctx, projectID)
	return services, s.collaboratorError(metrics.CollaboratorServices, err)
}

func (s *BillingService) loadPayments(ctx context.Context, projectID uuid.UUID) ([]entity.Payment, error) {
	payments, err := s.paymentRepo.ListByProject(ctx, projectID)
	return payments, s.collaboratorError(metrics.CollaboratorPayments, err)
}

// tenantCurrency returns the currency configured on the tenant owning the
// project, which differs from the caller's tenant for super admins.
func (s *BillingService) tenantCurrency(ctx context.Context, tenantID uuid.UUID) (string, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return "", s.collaboratorError(metrics.CollaboratorTenant, err)
	}
	if tenant == nil {
		return s.defaultCurrency, nil
	}
	return tenant.Settings.CurrencyOr(s.defaultCurrency), nil
}

// collaboratorError counts and wraps a failed fetch. A nil err passes through.
func (s *BillingService) collaboratorError(collaborator string, err error) error {
	if err == nil {
		return nil
	}
	// siblings cancelled by the errgroup are not failures of their own
	if !errors.Is(err, context.Canceled) {
		s.metrics.CollaboratorFailed(collaborator)
	}
	return fmt.Errorf("failed to load %s: %w", collaborator, err)
}

func validationError(issues []billing.FieldIssue) *apperror.AppError {
	fields := make([]apperror.FieldError, 0, len(issues))
	for _, issue := range issues {
		fields = append(fields, apperror.FieldError{Field: issue.Field, Message: issue.Message})
	}
	return apperror.NewValidationError(fields)
}
