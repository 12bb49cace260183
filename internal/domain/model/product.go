package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 商品。在庫は available_quantity（販売可能数）。
// 価格は numeric(18,2)。割引は任意で、無い場合はNULL。
type Product struct {
	ID                int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	Name              string              `gorm:"type:varchar(100);not null" json:"name"`
	Description       string              `gorm:"type:varchar(255);not null" json:"description"`
	Category          string              `gorm:"type:varchar(100);not null" json:"category"`
	AvailableQuantity int64               `gorm:"not null" json:"available_quantity"`
	ImageURL          string              `gorm:"type:text;not null" json:"image_url"`
	Price             decimal.Decimal     `gorm:"type:numeric(18,2);not null" json:"price"`
	Discount          decimal.NullDecimal `gorm:"type:numeric(18,2)" json:"discount"`
	Specification     string              `gorm:"type:varchar(100)" json:"specification"`
	CreatedAt         time.Time           `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time           `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt      `gorm:"index" json:"-"`
}
