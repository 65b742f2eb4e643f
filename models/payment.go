package models

import "time"

// PaymentRecord is one finalized settlement: a dine-in table paid out, or
// a takeout order (settled at submission, so entrance/end stay nil and
// the duration fields stay zero). Append-only.
type PaymentRecord struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	TableNum     int        `gorm:"index;not null" json:"table_num"`
	TotalPrice   int        `gorm:"not null" json:"total_price"`
	PaymentTime  time.Time  `gorm:"not null" json:"payment_time"`
	Note         string     `gorm:"type:text" json:"note"`
	Detail       ItemCounts `gorm:"type:text" json:"detail"`
	EntranceTime *time.Time `json:"entrance_time,omitempty"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	UsedTime     string     `gorm:"type:varchar(20)" json:"used_time"`
	UsedSeconds  int        `gorm:"not null;default:0" json:"used_seconds"`
}

func (PaymentRecord) TableName() string {
	return "payments"
}
