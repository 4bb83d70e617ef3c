package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/entity"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/enum"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/repository"
	infraRepo "github.com/togay-aytemiz/lumiso-sub014/internal/infrastructure/repository"
	"github.com/togay-aytemiz/lumiso-sub014/pkg/apperror"
	"github.com/togay-aytemiz/lumiso-sub014/pkg/pagination"
)

// PaymentService handles a project's payment ledger
type PaymentService struct {
	projectRepo repository.ProjectRepository
	paymentRepo repository.PaymentRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(projectRepo repository.ProjectRepository, paymentRepo repository.PaymentRepository) *PaymentService {
	return &PaymentService{
		projectRepo: projectRepo,
		paymentRepo: paymentRepo,
	}
}

// RecordPaymentInput represents the input for adding a ledger row
type RecordPaymentInput struct {
	Amount            float64
	Status            string
	EntryKind         enum.EntryKind
	Type              string
	Description       string
	DatePaid          *time.Time
	DepositAllocation float64
}

// RecordPayment appends a row to the project's ledger. Negative recorded
// amounts are refunds; scheduled rows keep their amount as the installment's
// initial and remaining amount.
func (s *PaymentService) RecordPayment(ctx context.Context, projectID uuid.UUID, input *RecordPaymentInput) (*entity.Payment, error) {
	if _, ok := infraRepo.GetTenantID(ctx); !ok {
		return nil, apperror.ErrForbidden
	}

	kind := enum.EntryKindRecorded
	if input.EntryKind.IsScheduled() {
		kind = enum.EntryKindScheduled
	}
	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status == "" {
		status = enum.PaymentStatusPaid
		if kind.IsScheduled() {
			status = enum.PaymentStatusDue
		}
	}

	if fields := validatePayment(input, kind); len(fields) > 0 {
		return nil, apperror.NewValidationError(fields)
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if project == nil {
		return nil, apperror.NewNotFoundError("Project")
	}

	// Rows belong to the project's tenant, also when a super admin writes them.
	payment := &entity.Payment{
		TenantID:          project.TenantID,
		ProjectID:         project.ID,
		Amount:            input.Amount,
		Status:            status,
		EntryKind:         kind,
		Type:              input.Type,
		Description:       input.Description,
		DatePaid:          input.DatePaid,
		DepositAllocation: input.DepositAllocation,
	}
	if kind.IsScheduled() {
		initial := input.Amount
		remaining := input.Amount
		payment.ScheduledInitialAmount = &initial
		payment.ScheduledRemainingAmount = &remaining
	}
	if enum.IsPaidStatus(status) && payment.DatePaid == nil {
		now := time.Now()
		payment.DatePaid = &now
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	return payment, nil
}

func validatePayment(input *RecordPaymentInput, kind enum.EntryKind) []apperror.FieldError {
	var fields []apperror.FieldError
	amount := input.Amount
	switch {
	case math.IsNaN(amount) || math.IsInf(amount, 0):
		fields = append(fields, apperror.FieldError{Field: "amount", Message: "amount must be a number"})
	case amount == 0:
		fields = append(fields, apperror.FieldError{Field: "amount", Message: "amount must not be zero"})
	case amount < 0 && kind.IsScheduled():
		fields = append(fields, apperror.FieldError{Field: "amount", Message: "scheduled installments cannot be negative"})
	}

	alloc := input.DepositAllocation
	switch {
	case math.IsNaN(alloc) || math.IsInf(alloc, 0) || alloc < 0:
		fields = append(fields, apperror.FieldError{Field: "deposit_allocation", Message: "deposit allocation must be a non-negative number"})
	case alloc > 0 && (kind.IsScheduled() || alloc > amount):
		fields = append(fields, apperror.FieldError{Field: "deposit_allocation", Message: "deposit allocation must not exceed a recorded payment's amount"})
	}
	return fields
}

// ListPayments returns one page of the project's ledger, newest first
func (s *PaymentService) ListPayments(ctx context.Context, projectID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Payment], error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if project == nil {
		return nil, apperror.NewNotFoundError("Project")
	}

	payments, total, err := s.paymentRepo.Paginate(ctx, projectID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return pagination.NewPaginatedResult(payments, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
