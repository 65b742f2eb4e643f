package services

import (
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/iternull/kendobar-pos/models"
)

// Takeout numbers live above every dine-in table number (tables occupy
// 1..18). Numbering derives from the payment ledger on every call, so it
// survives restarts without separate counter state.
const TakeoutFloor = 20

// TakeoutService allocates takeout numbers and settles takeout orders in
// a single step: takeout has no occupancy period, so submission writes
// both the journal lines and the payment record at once.
type TakeoutService struct {
	db *gorm.DB
}

func NewTakeoutService(db *gorm.DB) *TakeoutService {
	return &TakeoutService{db: db}
}

// TakeoutItem is one submitted order position.
type TakeoutItem struct {
	Count int `json:"count"`
	Price int `json:"price"`
}

// NextTakeoutNumber returns the next free takeout number: one past the
// highest takeout number in the payment ledger, or the floor when no
// takeout has been settled yet. Dine-in payments never influence it.
func (s *TakeoutService) NextTakeoutNumber() (int, error) {
	return nextTakeoutNumber(s.db)
}

func nextTakeoutNumber(tx *gorm.DB) (int, error) {
	var max sql.NullInt64
	err := tx.Model(&models.PaymentRecord{}).
		Where("table_num >= ?", TakeoutFloor).
		Select("MAX(table_num)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if !max.Valid || int(max.Int64) < TakeoutFloor {
		return TakeoutFloor, nil
	}
	return int(max.Int64) + 1, nil
}

// SubmitOrder settles a takeout order: allocates the number, writes one
// active journal line per ordered unit, and appends the payment record
// with zero occupancy sentinels. All inside one transaction.
func (s *TakeoutService) SubmitOrder(items map[string]TakeoutItem, note string) (*models.PaymentRecord, error) {
	if len(items) == 0 {
		return nil, ErrInvalidState
	}

	var record *models.PaymentRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		number, err := nextTakeoutNumber(tx)
		if err != nil {
			return err
		}

		now := time.Now()
		totalPrice := 0
		detail := make(models.ItemCounts, len(items))

		for name, item := range items {
			if item.Count <= 0 {
				continue
			}

			var menu models.Menu
			if err := tx.Where("name = ? AND context = ?", name, models.MenuContextTakeout).First(&menu).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrUnknownMenu
				}
				return err
			}
			price := item.Price
			if price <= 0 {
				price = menu.Price
			}

			totalPrice += item.Count * price
			detail[name] = item.Count

			for i := 0; i < item.Count; i++ {
				line := models.OrderLine{
					TableNum: number,
					MenuName: name,
					Price:    price,
					PlacedAt: now,
					Takeout:  true,
				}
				if err := tx.Create(&line).Error; err != nil {
					return err
				}
			}
		}

		if len(detail) == 0 {
			return ErrInvalidState
		}

		record = &models.PaymentRecord{
			TableNum:    number,
			TotalPrice:  totalPrice,
			PaymentTime: now,
			Note:        note,
			Detail:      detail,
			UsedTime:    "",
			UsedSeconds: 0,
		}
		return tx.Create(record).Error
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}
