package repository

import "context"

type InventoryRepository interface {
	// 在庫が足りるときだけ減算。足りなければfalse。
	// 確定時の再チェックを兼ねるので、必ず注文トランザクションの中で呼ぶ。
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 在庫の現在値を設定し、調整履歴も残す（管理者用）
	SetStockWithAdjustment(ctx context.Context, adminUserID string, productID int64, newStock int64, reason string) error
}
