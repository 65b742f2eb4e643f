package models

import "time"

// OrderLine is one unit of one menu item placed for a table (or takeout
// number). The orders table holds only active lines; canceling or
// completing a line moves it to its log table.
type OrderLine struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	TableNum int       `gorm:"index;not null" json:"table_num"`
	MenuName string    `gorm:"type:varchar(255);not null" json:"menu_name"`
	Price    int       `gorm:"not null" json:"price"`
	PlacedAt time.Time `gorm:"not null" json:"placed_at"`
	Takeout  bool      `gorm:"not null;default:false" json:"takeout"`
}

func (OrderLine) TableName() string {
	return "orders"
}
