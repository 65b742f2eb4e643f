package models

import "time"

// CanceledOrder is the append-only cancellation log. Rows keep the
// original placement time alongside the cancellation time.
type CanceledOrder struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TableNum   int       `gorm:"index;not null" json:"table_num"`
	MenuName   string    `gorm:"type:varchar(255);not null" json:"menu_name"`
	OrderTime  time.Time `gorm:"not null" json:"order_time"`
	CanceledAt time.Time `gorm:"not null" json:"canceled_at"`
}

func (CanceledOrder) TableName() string {
	return "canceled_orders"
}

// CompletedOrder is the append-only fulfillment log. A row lands here when
// the kitchen marks a single line done, or when a table is paid out and its
// remaining active lines are closed.
type CompletedOrder struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TableNum    int       `gorm:"index;not null" json:"table_num"`
	MenuName    string    `gorm:"type:varchar(255);not null" json:"menu_name"`
	OrderTime   time.Time `gorm:"not null" json:"order_time"`
	CompletedAt time.Time `gorm:"not null" json:"completed_at"`
}

func (CompletedOrder) TableName() string {
	return "completed_orders"
}
