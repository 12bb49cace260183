package model

import "time"

// 注文。作成後は明細も含めて不変。
// order_numberはユーザーに見せる番号で、DBのユニーク制約が最終ガード。
type Order struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber string      `gorm:"type:varchar(30);not null;uniqueIndex" json:"order_number"`
	UserID      string      `gorm:"type:varchar(100);not null;index" json:"user_id"`
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt   time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
}
