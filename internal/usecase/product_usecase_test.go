package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// mocks
// =====================

type InventoryRepoMock struct {
	mock.Mock
}

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	panic("not used in ProductUsecase tests")
}

func (m *InventoryRepoMock) SetStockWithAdjustment(ctx context.Context, adminUserID string, productID int64, newStock int64, reason string) error {
	args := m.Called(ctx, adminUserID, productID, newStock, reason)
	return args.Error(0)
}

type AuditLogRepoMock struct {
	mock.Mock
}

func (m *AuditLogRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditLogRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

func newProductUsecase(productRepo *ProductRepoMock, inventoryRepo *InventoryRepoMock, auditRepo *AuditLogRepoMock) *ProductUsecase {
	return NewProductUsecase(productRepo, inventoryRepo, auditRepo)
}

// =====================
// tests
// =====================

func TestGetProductDetail_Success(t *testing.T) {
	productRepo := new(ProductRepoMock)
	productRepo.On("FindByID", mock.Anything, int64(1)).Return(productWithStock(1, "Apple", 10, "3.50"), nil)

	uc := newProductUsecase(productRepo, new(InventoryRepoMock), new(AuditLogRepoMock))
	p, err := uc.GetProductDetail(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, "Apple", p.Name)
}

func TestGetProductDetail_NotFound(t *testing.T) {
	productRepo := new(ProductRepoMock)
	productRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	uc := newProductUsecase(productRepo, new(InventoryRepoMock), new(AuditLogRepoMock))
	_, err := uc.GetProductDetail(context.Background(), 99)

	assertHTTPErr(t, err, http.StatusNotFound)
}

// 作成と同時に監査ログも残る
func TestAdminCreateProduct_WritesAudit(t *testing.T) {
	productRepo := new(ProductRepoMock)
	auditRepo := new(AuditLogRepoMock)

	productRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Apple" && p.AvailableQuantity == 10
	})).Return(productWithStock(3, "Apple", 10, "3.50"), nil)
	auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionCreateProduct && l.ResourceID == 3 && l.ActorUserID == "admin-1"
	})).Return(nil)

	uc := newProductUsecase(productRepo, new(InventoryRepoMock), auditRepo)
	id, err := uc.AdminCreateProduct(context.Background(), "admin-1", AdminProductInput{
		Name:  "Apple",
		Stock: 10,
		Price: decimal.RequireFromString("3.50"),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(3), id)
	auditRepo.AssertExpectations(t)
}

func TestAdminCreateProduct_Invalid(t *testing.T) {
	uc := newProductUsecase(new(ProductRepoMock), new(InventoryRepoMock), new(AuditLogRepoMock))

	_, err := uc.AdminCreateProduct(context.Background(), "admin-1", AdminProductInput{
		Name:  "",
		Price: decimal.RequireFromString("3.50"),
	})
	assertHTTPErr(t, err, http.StatusBadRequest)

	_, err = uc.AdminCreateProduct(context.Background(), "admin-1", AdminProductInput{
		Name:  "Apple",
		Price: decimal.RequireFromString("-1"),
	})
	assertHTTPErr(t, err, http.StatusBadRequest)
}

// 監査ログの失敗は操作を巻き込まない
func TestAdminDeleteProduct_AuditFailureIgnored(t *testing.T) {
	productRepo := new(ProductRepoMock)
	auditRepo := new(AuditLogRepoMock)

	productRepo.On("SoftDelete", mock.Anything, int64(3)).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	uc := newProductUsecase(productRepo, new(InventoryRepoMock), auditRepo)
	err := uc.AdminDeleteProduct(context.Background(), "admin-1", 3)

	assert.NoError(t, err)
}

func TestAdminUpdateInventory_Success(t *testing.T) {
	productRepo := new(ProductRepoMock)
	inventoryRepo := new(InventoryRepoMock)
	auditRepo := new(AuditLogRepoMock)

	productRepo.On("FindByID", mock.Anything, int64(3)).Return(productWithStock(3, "Apple", 10, "3.50"), nil)
	inventoryRepo.On("SetStockWithAdjustment", mock.Anything, "admin-1", int64(3), int64(25), "restock").Return(nil)
	auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateStock &&
			l.BeforeJSON == `{"stock":10}` &&
			l.AfterJSON == `{"stock":25}`
	})).Return(nil)

	uc := newProductUsecase(productRepo, inventoryRepo, auditRepo)
	err := uc.AdminUpdateInventory(context.Background(), "admin-1", 3, 25, "restock")

	assert.NoError(t, err)
	inventoryRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

// 検索条件は指定された項目だけフィルタに載る
func TestAdminListAuditLogs_FilterMapping(t *testing.T) {
	auditRepo := new(AuditLogRepoMock)
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	auditRepo.On("List", mock.Anything, mock.MatchedBy(func(f repo.AuditLogFilter) bool {
		return f.ActorUserID != nil && *f.ActorUserID == "admin-2" &&
			f.Action != nil && *f.Action == model.AuditActionUpdateStock &&
			f.CreatedFrom != nil && f.CreatedFrom.Equal(from) &&
			f.CreatedTo == nil &&
			f.Limit == 10 && f.Offset == 0
	})).Return([]model.AuditLog{{ID: 1, ActorUserID: "admin-2"}}, nil)

	uc := newProductUsecase(new(ProductRepoMock), new(InventoryRepoMock), auditRepo)
	logs, err := uc.AdminListAuditLogs(context.Background(), "admin-1", AuditLogQuery{
		ActorUserID: "admin-2",
		Action:      "UPDATE_STOCK",
		From:        &from,
		Limit:       10,
	})

	assert.NoError(t, err)
	assert.Len(t, logs, 1)
	auditRepo.AssertExpectations(t)
}

// 条件なしならフィルタも空
func TestAdminListAuditLogs_EmptyQuery(t *testing.T) {
	auditRepo := new(AuditLogRepoMock)

	auditRepo.On("List", mock.Anything, mock.MatchedBy(func(f repo.AuditLogFilter) bool {
		return f.ActorUserID == nil && f.Action == nil &&
			f.CreatedFrom == nil && f.CreatedTo == nil
	})).Return([]model.AuditLog{}, nil)

	uc := newProductUsecase(new(ProductRepoMock), new(InventoryRepoMock), auditRepo)
	logs, err := uc.AdminListAuditLogs(context.Background(), "admin-1", AuditLogQuery{})

	assert.NoError(t, err)
	assert.Empty(t, logs)
}

func TestAdminListAuditLogs_Unauthorized(t *testing.T) {
	uc := newProductUsecase(new(ProductRepoMock), new(InventoryRepoMock), new(AuditLogRepoMock))

	_, err := uc.AdminListAuditLogs(context.Background(), " ", AuditLogQuery{})

	assertHTTPErr(t, err, http.StatusUnauthorized)
}

func TestAdminUpdateInventory_ReasonRequired(t *testing.T) {
	uc := newProductUsecase(new(ProductRepoMock), new(InventoryRepoMock), new(AuditLogRepoMock))

	err := uc.AdminUpdateInventory(context.Background(), "admin-1", 3, 25, "  ")

	assertHTTPErr(t, err, http.StatusBadRequest)
}

func TestAdminUpdateInventory_NegativeStock(t *testing.T) {
	uc := newProductUsecase(new(ProductRepoMock), new(InventoryRepoMock), new(AuditLogRepoMock))

	err := uc.AdminUpdateInventory(context.Background(), "admin-1", 3, -1, "restock")

	assertHTTPErr(t, err, http.StatusBadRequest)
}
