package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/entity"
	"github.com/togay-aytemiz/lumiso-sub014/pkg/pagination"
)

// PaymentRepository defines the interface for payment ledger operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	// ListByProject returns every ledger row of the project, oldest first
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]entity.Payment, error)
	// Paginate returns one page of the project's ledger, newest first
	Paginate(ctx context.Context, projectID uuid.UUID, params *pagination.PaginationParams) ([]entity.Payment, int64, error)
}
