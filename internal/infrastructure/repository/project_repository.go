package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/billing"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/entity"
	domainRepo "github.com/togay-aytemiz/lumiso-sub014/internal/domain/repository"
	"gorm.io/gorm"
)

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) domainRepo.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	var project entity.Project
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &project, err
}

func (r *projectRepository) UpdateDepositConfig(ctx context.Context, id uuid.UUID, cfg billing.DepositConfig) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Project{}).
		Scopes(TenantScope(ctx)).
		Where("id = ?", id).
		Select("deposit_config").
		Updates(&entity.Project{DepositConfig: cfg})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type projectServiceRepository struct {
	db *gorm.DB
}

// NewProjectServiceRepository creates a new project service repository
func NewProjectServiceRepository(db *gorm.DB) domainRepo.ProjectServiceRepository {
	return &projectServiceRepository{db: db}
}

func (r *projectServiceRepository) Create(ctx context.Context, ps *entity.ProjectService) error {
	return r.db.WithContext(ctx).Create(ps).Error
}

func (r *projectServiceRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]entity.ProjectService, error) {
	var services []entity.ProjectService
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Service").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&services).Error
	return services, err
}

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new catalog service repository
func NewServiceRepository(db *gorm.DB) domainRepo.ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *serviceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	var service entity.Service
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &service, err
}

type todoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new todo repository
func NewTodoRepository(db *gorm.DB) domainRepo.TodoRepository {
	return &todoRepository{db: db}
}

func (r *todoRepository) Create(ctx context.Context, todo *entity.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

func (r *todoRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]entity.Todo, error) {
	var todos []entity.Todo
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&todos).Error
	return todos, err
}
