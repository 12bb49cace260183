package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	productRepo   repo.ProductRepository
	inventoryRepo repo.InventoryRepository
	auditRepo     repo.AuditLogRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	inventoryRepo repo.InventoryRepository,
	auditRepo repo.AuditLogRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
	}
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return p, nil
}

type AdminProductInput struct {
	Name          string
	Description   string
	Category      string
	Stock         int64
	ImageURL      string
	Price         decimal.Decimal
	Discount      decimal.NullDecimal
	Specification string
}

func (in AdminProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Discount.Valid && in.Discount.Decimal.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "discount must be >= 0")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	return nil
}

func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, adminUserID string, in AdminProductInput) (int64, error) {
	if strings.TrimSpace(adminUserID) == "" {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := in.validate(); err != nil {
		return 0, err
	}

	now := time.Now()
	p, err := u.productRepo.Create(ctx, model.Product{
		Name:              strings.TrimSpace(in.Name),
		Description:       in.Description,
		Category:          in.Category,
		AvailableQuantity: in.Stock,
		ImageURL:          in.ImageURL,
		Price:             in.Price,
		Discount:          in.Discount,
		Specification:     in.Specification,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionCreateProduct, p.ID, "", fmt.Sprintf(`{"name":%q}`, p.Name))
	return p.ID, nil
}

func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, adminUserID string, productID int64, in AdminProductInput) error {
	if strings.TrimSpace(adminUserID) == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if err := in.validate(); err != nil {
		return err
	}

	err := u.productRepo.Update(ctx, model.Product{
		ID:                productID,
		Name:              strings.TrimSpace(in.Name),
		Description:       in.Description,
		Category:          in.Category,
		AvailableQuantity: in.Stock,
		ImageURL:          in.ImageURL,
		Price:             in.Price,
		Discount:          in.Discount,
		Specification:     in.Specification,
		UpdatedAt:         time.Now(),
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionUpdateProduct, productID, "", fmt.Sprintf(`{"name":%q}`, in.Name))
	return nil
}

func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, adminUserID string, productID int64) error {
	if strings.TrimSpace(adminUserID) == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.productRepo.SoftDelete(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionDeleteProduct, productID, "", "")
	return nil
}

func (u *ProductUsecase) AdminUpdateInventory(ctx context.Context, adminUserID string, productID int64, newStock int64, reason string) error {
	if strings.TrimSpace(adminUserID) == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if newStock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	if strings.TrimSpace(reason) == "" {
		return NewHTTPError(http.StatusBadRequest, "reason required")
	}

	//変更前の在庫（before）
	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	beforeJSON := fmt.Sprintf(`{"stock":%d}`, p.AvailableQuantity)
	afterJSON := fmt.Sprintf(`{"stock":%d}`, newStock)

	//在庫の現在値を更新＋調整履歴
	if err := u.inventoryRepo.SetStockWithAdjustment(ctx, adminUserID, productID, newStock, reason); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionUpdateStock, productID, beforeJSON, afterJSON)
	return nil
}

// 監査ログの検索条件（ゼロ値の項目は条件なし）
type AuditLogQuery struct {
	ActorUserID string
	Action      string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// AdminListAuditLogs は管理者操作の監査ログを新しい順で検索する。
func (u *ProductUsecase) AdminListAuditLogs(ctx context.Context, adminUserID string, q AuditLogQuery) ([]model.AuditLog, error) {
	if strings.TrimSpace(adminUserID) == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	filter := repo.AuditLogFilter{
		CreatedFrom: q.From,
		CreatedTo:   q.To,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}
	if s := strings.TrimSpace(q.ActorUserID); s != "" {
		filter.ActorUserID = &s
	}
	if s := strings.TrimSpace(q.Action); s != "" {
		a := model.AuditAction(s)
		filter.Action = &a
	}

	logs, err := u.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}

// 監査ログ。失敗しても操作自体は成功扱い。
func (u *ProductUsecase) writeAudit(ctx context.Context, actorUserID string, action model.AuditAction, productID int64, beforeJSON, afterJSON string) {
	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorUserID,
		Action:       action,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    time.Now(),
	})
}
