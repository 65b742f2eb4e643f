package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ItemCounts maps a menu name to the number of active units on a bill.
// Stored as a JSON text column so the per-table snapshot survives as a
// single row regardless of catalog size.
type ItemCounts map[string]int

func (ic ItemCounts) Value() (driver.Value, error) {
	if ic == nil {
		ic = ItemCounts{}
	}
	data, err := json.Marshal(ic)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (ic *ItemCounts) Scan(value interface{}) error {
	if value == nil {
		*ic = ItemCounts{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for ItemCounts", value)
	}
	if len(data) == 0 {
		*ic = ItemCounts{}
		return nil
	}
	return json.Unmarshal(data, ic)
}

// TableLedgerEntry is the running bill for one numbered table. One row
// per table exists from seeding onward; paying out resets the row to the
// all-zero catalog map instead of deleting it.
type TableLedgerEntry struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	TableNum     int        `gorm:"uniqueIndex;not null" json:"table_num"`
	ActiveItems  ItemCounts `gorm:"type:text;not null" json:"active_items"`
	People       int        `gorm:"not null;default:0" json:"people"`
	TotalPrice   int        `gorm:"not null;default:0" json:"total_price"`
	Note         string     `gorm:"type:text" json:"note"`
	EntranceTime *time.Time `json:"entrance_time,omitempty"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (TableLedgerEntry) TableName() string {
	return "table_orders"
}
