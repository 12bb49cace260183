package model

import "time"

// 商品レビュー（1〜5の評価＋コメント）
type Review struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	UserID    string    `gorm:"type:varchar(100);not null;index" json:"user_id"`
	UserName  string    `gorm:"type:varchar(100)" json:"user_name"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:varchar(500);not null" json:"comment"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
