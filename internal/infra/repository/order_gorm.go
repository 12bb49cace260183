package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// 注文を明細ごと保存（Itemsは関連として同時にINSERTされる）。
// order_numberのユニーク制約違反だけはErrDuplicateOrderNumberに変換する。
// 外側のトランザクション内で呼ばれるとSAVEPOINTになるので、
// 番号衝突で失敗してもここまでの巻き戻しで済み、呼び出し側は番号を作り直して挿入だけやり直せる。
func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (model.Order, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return model.Order{}, repo.ErrDuplicateOrderNumber
		}
		return model.Order{}, err
	}
	return order, nil
}

// ユーザーの注文履歴を新しい順で取得。
// 明細の商品は削除済みも含めて付ける（履歴の表示名のため）。
func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	var orders []model.Order

	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.id asc")
		}).
		Preload("Items.Product", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc").
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}

	return orders, nil
}

// PostgreSQLのunique_violation（23505）かどうか
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
