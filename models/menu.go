package models

import "time"

// Menu contexts. The venue sells partly overlapping catalogs at different
// prices depending on whether the guest is seated or ordering takeout.
const (
	MenuContextDineIn  = "dine_in"
	MenuContextTakeout = "takeout"
)

type Menu struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_menu_name_context" json:"name"`
	Price     int       `gorm:"not null" json:"price"`
	Context   string    `gorm:"type:varchar(20);not null;default:'dine_in';uniqueIndex:idx_menu_name_context" json:"context"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
