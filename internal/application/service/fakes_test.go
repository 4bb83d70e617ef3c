package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/billing"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/entity"
	"github.com/togay-aytemiz/lumiso-sub014/pkg/pagination"
	"gorm.io/gorm"
)

type fakeProjects struct {
	project   *entity.Project
	err       error
	updateErr error
	stored    *billing.DepositConfig
}

func (f *fakeProjects) Create(ctx context.Context, p *entity.Project) error {
	f.project = p
	return nil
}

func (f *fakeProjects) GetByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.project == nil || f.project.ID != id {
		return nil, nil
	}
	return f.project, nil
}

func (f *fakeProjects) UpdateDepositConfig(ctx context.Context, id uuid.UUID, cfg billing.DepositConfig) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.project == nil || f.project.ID != id {
		return gorm.ErrRecordNotFound
	}
	f.stored = &cfg
	f.project.DepositConfig = cfg
	return nil
}

type fakeProjectServices struct {
	rows []entity.ProjectService
	err  error
}

func (f *fakeProjectServices) Create(ctx context.Context, ps *entity.ProjectService) error {
	f.rows = append(f.rows, *ps)
	return nil
}

func (f *fakeProjectServices) ListByProject(ctx context.Context, projectID uuid.UUID) ([]entity.ProjectService, error) {
	return f.rows, f.err
}

type fakePayments struct {
	rows    []entity.Payment
	err     error
	created []*entity.Payment
}

func (f *fakePayments) Create(ctx context.Context, p *entity.Payment) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, p)
	return nil
}

func (f *fakePayments) ListByProject(ctx context.Context, projectID uuid.UUID) ([]entity.Payment, error) {
	return f.rows, f.err
}

func (f *fakePayments) Paginate(ctx context.Context, projectID uuid.UUID, params *pagination.PaginationParams) ([]entity.Payment, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	params.Validate()
	start := params.Offset()
	if start > len(f.rows) {
		start = len(f.rows)
	}
	end := start + params.PerPage
	if end > len(f.rows) {
		end = len(f.rows)
	}
	return f.rows[start:end], int64(len(f.rows)), nil
}

type fakeTodos struct {
	rows []entity.Todo
	err  error
}

func (f *fakeTodos) Create(ctx context.Context, t *entity.Todo) error {
	f.rows = append(f.rows, *t)
	return nil
}

func (f *fakeTodos) ListByProject(ctx context.Context, projectID uuid.UUID) ([]entity.Todo, error) {
	return f.rows, f.err
}

type fakeTenants struct {
	tenant *entity.Tenant
	err    error
}

func (f *fakeTenants) Create(ctx context.Context, t *entity.Tenant) error {
	f.tenant = t
	return nil
}

func (f *fakeTenants) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.tenant == nil || f.tenant.ID != id {
		return nil, nil
	}
	return f.tenant, nil
}

func (f *fakeTenants) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	if f.tenant == nil || f.tenant.Slug != slug {
		return nil, nil
	}
	return f.tenant, nil
}
