package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	// 注文を明細ごと保存する。order_numberが衝突したらErrDuplicateOrderNumber。
	Create(ctx context.Context, order model.Order) (model.Order, error)

	// 新しい順。明細と（削除済み含む）商品を付けて返す。
	ListByUserID(ctx context.Context, userID string) ([]model.Order, error)
}
