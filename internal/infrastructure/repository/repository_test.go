package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/billing"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/entity"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/enum"
	"github.com/togay-aytemiz/lumiso-sub014/internal/infrastructure/database"
	"github.com/togay-aytemiz/lumiso-sub014/pkg/pagination"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func ptr[T any](v T) *T { return &v }

type fixture struct {
	tenantA, tenantB uuid.UUID
	project          *entity.Project
}

func seed(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	ctx := context.Background()
	a := &entity.Tenant{Name: "Studio A", Slug: "a"}
	b := &entity.Tenant{Name: "Studio B", Slug: "b"}
	tenants := NewTenantRepository(db)
	for _, tn := range []*entity.Tenant{a, b} {
		if err := tenants.Create(ctx, tn); err != nil {
			t.Fatalf("create tenant: %v", err)
		}
	}

	project := &entity.Project{TenantID: a.ID, Name: "Wedding", BasePrice: 2000}
	if err := NewProjectRepository(db).Create(ctx, project); err != nil {
		t.Fatalf("create project: %v", err)
	}

	service := &entity.Service{TenantID: a.ID, Name: "Album", SellingPrice: ptr(100.0), VATRate: ptr(20.0), PriceIncludesVAT: ptr(false)}
	if err := NewServiceRepository(db).Create(ctx, service); err != nil {
		t.Fatalf("create service: %v", err)
	}
	ps := &entity.ProjectService{TenantID: a.ID, ProjectID: project.ID, ServiceID: service.ID, BillingType: enum.BillingTypeExtra, Quantity: 2}
	if err := NewProjectServiceRepository(db).Create(ctx, ps); err != nil {
		t.Fatalf("create project service: %v", err)
	}

	payments := NewPaymentRepository(db)
	base := time.Now().Add(-time.Hour)
	for i, p := range []entity.Payment{
		{Amount: 500, Status: "paid", EntryKind: enum.EntryKindRecorded},
		{Amount: 1000, Status: "due", EntryKind: enum.EntryKindScheduled, ScheduledInitialAmount: ptr(1000.0)},
		{Amount: -100, Status: "paid", EntryKind: enum.EntryKindRecorded},
	} {
		p.TenantID = a.ID
		p.ProjectID = project.ID
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := payments.Create(ctx, &p); err != nil {
			t.Fatalf("create payment: %v", err)
		}
	}

	todos := NewTodoRepository(db)
	for _, done := range []bool{true, false} {
		if err := todos.Create(ctx, &entity.Todo{TenantID: a.ID, ProjectID: project.ID, Content: "task", IsCompleted: done}); err != nil {
			t.Fatalf("create todo: %v", err)
		}
	}

	return fixture{tenantA: a.ID, tenantB: b.ID, project: project}
}

func TestProjectRepositoryIsTenantScoped(t *testing.T) {
	db := setupTestDB(t)
	fx := seed(t, db)
	repo := NewProjectRepository(db)

	got, err := repo.GetByID(WithTenant(context.Background(), fx.tenantA), fx.project.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID() for owner = %v, %v", got, err)
	}
	if got.BasePrice != 2000 {
		t.Errorf("BasePrice = %v, want 2000", got.BasePrice)
	}

	got, err = repo.GetByID(WithTenant(context.Background(), fx.tenantB), fx.project.ID)
	if err != nil || got != nil {
		t.Fatalf("GetByID() for other tenant = %v, %v; want nil, nil", got, err)
	}

	got, err = repo.GetByID(context.Background(), fx.project.ID)
	if err != nil || got != nil {
		t.Fatalf("GetByID() without tenant = %v, %v; want nil, nil", got, err)
	}
}

func TestUpdateDepositConfig(t *testing.T) {
	db := setupTestDB(t)
	fx := seed(t, db)
	repo := NewProjectRepository(db)
	ctx := WithTenant(context.Background(), fx.tenantA)

	cfg := billing.DepositConfig{Mode: enum.DepositModePercentBase, Value: ptr(30.0), DueLabel: "on signing"}
	if err := repo.UpdateDepositConfig(ctx, fx.project.ID, cfg); err != nil {
		t.Fatalf("UpdateDepositConfig() error = %v", err)
	}

	got, err := repo.GetByID(ctx, fx.project.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID() = %v, %v", got, err)
	}
	if got.DepositConfig.Mode != enum.DepositModePercentBase || got.DepositConfig.Value == nil || *got.DepositConfig.Value != 30 {
		t.Fatalf("stored config = %+v", got.DepositConfig)
	}
	if got.DepositConfig.DueLabel != "on signing" {
		t.Errorf("DueLabel = %q", got.DepositConfig.DueLabel)
	}

	err = repo.UpdateDepositConfig(WithTenant(context.Background(), fx.tenantB), fx.project.ID, cfg)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("update from other tenant error = %v, want record not found", err)
	}
}

func TestProjectServicesPreloadCatalog(t *testing.T) {
	db := setupTestDB(t)
	fx := seed(t, db)
	repo := NewProjectServiceRepository(db)

	services, err := repo.ListByProject(WithTenant(context.Background(), fx.tenantA), fx.project.ID)
	if err != nil {
		t.Fatalf("ListByProject() error = %v", err)
	}
	if len(services) != 1 {
		t.Fatalf("expected 1 service, got %d", len(services))
	}

	line := services[0].ServiceLine()
	if line.Name != "Album" || line.CatalogPrice == nil || *line.CatalogPrice != 100 {
		t.Fatalf("service line = %+v", line)
	}
	if got := billing.AggregateServiceTotals([]billing.ServiceLine{line}); got != 240 {
		t.Fatalf("extras total = %v, want 240", got)
	}

	services, err = repo.ListByProject(WithTenant(context.Background(), fx.tenantB), fx.project.ID)
	if err != nil || len(services) != 0 {
		t.Fatalf("other tenant sees %d services (err %v)", len(services), err)
	}
}

func TestPaymentRepository(t *testing.T) {
	db := setupTestDB(t)
	fx := seed(t, db)
	repo := NewPaymentRepository(db)
	ctx := WithTenant(context.Background(), fx.tenantA)

	payments, err := repo.ListByProject(ctx, fx.project.ID)
	if err != nil {
		t.Fatalf("ListByProject() error = %v", err)
	}
	if len(payments) != 3 || payments[0].Amount != 500 || payments[2].Amount != -100 {
		t.Fatalf("payments not in creation order: %+v", payments)
	}

	summary := billing.SummarizePayments(entity.LedgerEntries(payments))
	if summary.TotalPaid != 500 || summary.TotalRefunded != 100 || summary.TotalInvoiced != 1000 {
		t.Fatalf("summary = %+v", summary)
	}

	page, total, err := repo.Paginate(ctx, fx.project.ID, &pagination.PaginationParams{Page: 1, PerPage: 2})
	if err != nil {
		t.Fatalf("Paginate() error = %v", err)
	}
	if total != 3 || len(page) != 2 {
		t.Fatalf("Paginate() = %d rows of %d, want 2 of 3", len(page), total)
	}
	if page[0].Amount != -100 {
		t.Errorf("first page should start with the newest row, got %v", page[0].Amount)
	}

	_, total, err = repo.Paginate(WithTenant(context.Background(), fx.tenantB), fx.project.ID, pagination.DefaultPagination())
	if err != nil || total != 0 {
		t.Fatalf("other tenant total = %d (err %v), want 0", total, err)
	}
}

func TestTodoRepository(t *testing.T) {
	db := setupTestDB(t)
	fx := seed(t, db)

	todos, err := NewTodoRepository(db).ListByProject(WithTenant(context.Background(), fx.tenantA), fx.project.ID)
	if err != nil {
		t.Fatalf("ListByProject() error = %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(todos))
	}
}

func TestIdempotencyRepository(t *testing.T) {
	db := setupTestDB(t)
	fx := seed(t, db)
	repo := NewIdempotencyRepository(db)
	userID := uuid.New()
	ctx := WithTenant(context.Background(), fx.tenantA)

	key := &entity.IdempotencyKey{
		Key:          "k-1",
		TenantID:     fx.tenantA,
		UserID:       userID,
		Endpoint:     "PUT /deposit",
		RequestHash:  "abc",
		ResponseCode: 200,
		ResponseBody: `{"success":true}`,
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	if err := repo.Create(ctx, key); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByKey(ctx, "k-1", userID)
	if err != nil || got == nil {
		t.Fatalf("GetByKey() = %v, %v", got, err)
	}
	if !got.MatchesRequest("abc") || got.MatchesRequest("other") {
		t.Errorf("MatchesRequest() does not compare hashes")
	}

	got, err = repo.GetByKey(WithTenant(context.Background(), fx.tenantB), "k-1", userID)
	if err != nil || got != nil {
		t.Fatalf("GetByKey() from other tenant = %v, %v", got, err)
	}

	expired := &entity.IdempotencyKey{Key: "k-2", TenantID: fx.tenantA, UserID: userID, Endpoint: "PUT /deposit", ResponseCode: 200, ExpiresAt: time.Now().Add(-time.Minute)}
	if err := repo.Create(ctx, expired); err != nil {
		t.Fatalf("Create() expired error = %v", err)
	}
	if err := repo.DeleteExpired(ctx); err != nil {
		t.Fatalf("DeleteExpired() error = %v", err)
	}
	if got, _ := repo.GetByKey(ctx, "k-2", userID); got != nil {
		t.Fatalf("expired key still present")
	}
}

func TestTenantScopeSkip(t *testing.T) {
	db := setupTestDB(t)
	fx := seed(t, db)

	ctx := WithSkipTenantScope(context.Background(), true)
	got, err := NewProjectRepository(db).GetByID(ctx, fx.project.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID() with skipped scope = %v, %v", got, err)
	}
}
