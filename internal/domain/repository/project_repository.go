package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/billing"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/entity"
)

// ProjectRepository defines the interface for project data operations.
// All methods are scoped to the tenant carried by ctx.
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Project, error)
	UpdateDepositConfig(ctx context.Context, id uuid.UUID, cfg billing.DepositConfig) error
}

// ProjectServiceRepository reads the services attached to a project
type ProjectServiceRepository interface {
	Create(ctx context.Context, ps *entity.ProjectService) error
	// ListByProject returns the project's services with their catalog entry preloaded
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]entity.ProjectService, error)
}

// ServiceRepository defines the interface for catalog service operations
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
}

// TodoRepository reads project todos
type TodoRepository interface {
	Create(ctx context.Context, todo *entity.Todo) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]entity.Todo, error)
}
