package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細。unit_priceとdiscount_at_purchaseは購入時点のスナップショットで、
// 後から商品の価格が変わっても書き換えない。
// 商品名は保存せず、表示時に商品を引いて解決する（商品は後で消えることがある）。
type OrderItem struct {
	ID                 int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID            int64               `gorm:"not null;index" json:"order_id"`
	ProductID          int64               `gorm:"not null;index" json:"product_id"`
	Quantity           int64               `gorm:"not null" json:"quantity"`
	UnitPrice          decimal.Decimal     `gorm:"type:numeric(18,2);not null" json:"unit_price"`
	DiscountAtPurchase decimal.NullDecimal `gorm:"type:numeric(18,2)" json:"discount_at_purchase"`
	Product            *Product            `gorm:"foreignKey:ProductID" json:"-"`
	CreatedAt          time.Time           `gorm:"not null;autoCreateTime" json:"created_at"`
}
