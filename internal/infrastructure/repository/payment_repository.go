package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/entity"
	domainRepo "github.com/togay-aytemiz/lumiso-sub014/internal/domain/repository"
	"github.com/togay-aytemiz/lumiso-sub014/pkg/pagination"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) Paginate(ctx context.Context, projectID uuid.UUID, params *pagination.PaginationParams) ([]entity.Payment, int64, error) {
	var payments []entity.Payment
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entity.Payment{}).
		Scopes(TenantScope(ctx)).
		Where("project_id = ?", projectID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&payments).Error

	return payments, total, err
}
