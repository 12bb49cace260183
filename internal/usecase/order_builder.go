package usecase

import (
	"time"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 注文1行ぶんの入力。価格と割引はトランザクション内で読み直した値を渡す。
type OrderLine struct {
	ProductID   int64
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Discount    decimal.NullDecimal
}

// カートの行から未保存の注文を組み立てる（純粋な構築のみ。永続化も在庫減算もしない）。
// 明細には読み取り時点の価格・割引がそのままスナップショットされる。
func BuildOrder(userID string, lines []OrderLine, now time.Time) (model.Order, error) {
	if len(lines) == 0 {
		return model.Order{}, NewOrderError(OrderErrEmptyCart, "")
	}

	items := make([]model.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, model.OrderItem{
			ProductID:          l.ProductID,
			Quantity:           l.Quantity,
			UnitPrice:          l.UnitPrice,
			DiscountAtPurchase: l.Discount,
			CreatedAt:          now,
		})
	}

	return model.Order{
		OrderNumber: GenerateOrderNumber(now),
		UserID:      userID,
		Items:       items,
		CreatedAt:   now,
	}, nil
}

// 明細の小計＝（単価−割引）×数量
func lineSubtotal(unitPrice decimal.Decimal, discount decimal.NullDecimal, qty int64) decimal.Decimal {
	unit := unitPrice
	if discount.Valid {
		unit = unit.Sub(discount.Decimal)
	}
	return unit.Mul(decimal.NewFromInt(qty))
}
