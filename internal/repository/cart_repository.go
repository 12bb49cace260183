package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	GetOrCreateByUserID(ctx context.Context, userID string) (model.Cart, error)

	// 明細＋商品込みで取得。削除済み商品も明細には付けて返す
	// （注文時に「消えた商品」の名前を出すため）。
	FindByUserID(ctx context.Context, userID string) (model.Cart, error)

	Clear(ctx context.Context, cartID int64) error
}
