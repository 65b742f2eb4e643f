package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iternull/kendobar-pos/models"
	"github.com/iternull/kendobar-pos/utils"
)

// BillingService applies order and settlement operations against the
// per-table ledger and the order journal. Every mutating call runs its
// journal write and ledger update inside one transaction, so a failure
// leaves both exactly as they were.
type BillingService struct {
	db *gorm.DB
}

func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{db: db}
}

// TableStatus is a read snapshot of one table, with the occupancy timer
// already resolved into elapsed seconds.
type TableStatus struct {
	TableNum       int               `json:"table_num"`
	ActiveItems    models.ItemCounts `json:"active_items"`
	TotalPrice     int               `json:"total_price"`
	Note           string            `json:"note"`
	EntranceTime   *time.Time        `json:"entrance_time,omitempty"`
	ElapsedSeconds int               `json:"elapsed_seconds"`
	ElapsedTime    string            `json:"elapsed_time"`
}

func snapshotOf(entry *models.TableLedgerEntry, now time.Time) TableStatus {
	status := TableStatus{
		TableNum:     entry.TableNum,
		ActiveItems:  entry.ActiveItems,
		TotalPrice:   entry.TotalPrice,
		Note:         entry.Note,
		EntranceTime: entry.EntranceTime,
	}
	if entry.EntranceTime != nil {
		status.ElapsedSeconds = int(now.Sub(*entry.EntranceTime).Seconds())
	}
	status.ElapsedTime = utils.FormatDuration(status.ElapsedSeconds)
	return status
}

// ListTables returns a snapshot of every table, ordered by table number.
func (s *BillingService) ListTables() ([]TableStatus, error) {
	var entries []models.TableLedgerEntry
	if err := s.db.Order("table_num asc").Find(&entries).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	statuses := make([]TableStatus, 0, len(entries))
	for i := range entries {
		statuses = append(statuses, snapshotOf(&entries[i], now))
	}
	return statuses, nil
}

// TableStatus returns the snapshot of one table.
func (s *BillingService) TableStatus(tableNum int) (*TableStatus, error) {
	var entry models.TableLedgerEntry
	if err := s.db.Where("table_num = ?", tableNum).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	status := snapshotOf(&entry, time.Now())
	return &status, nil
}

// AddLine places one unit of one menu item on a table's bill: an active
// journal row plus the matching ledger increment, atomically. The menu
// name must exist in the dine-in catalog; a non-positive price is
// replaced with the catalog price, a positive one is taken as supplied.
func (s *BillingService) AddLine(tableNum int, menuName string, price int) error {
	if menuName == "" {
		return ErrInvalidState
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var entry models.TableLedgerEntry
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("table_num = ?", tableNum).First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTableNotFound
			}
			return err
		}

		var menu models.Menu
		if err := tx.Where("name = ? AND context = ?", menuName, models.MenuContextDineIn).First(&menu).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownMenu
			}
			return err
		}
		if price <= 0 {
			price = menu.Price
		}

		line := models.OrderLine{
			TableNum: tableNum,
			MenuName: menuName,
			Price:    price,
			PlacedAt: time.Now(),
		}
		if err := tx.Create(&line).Error; err != nil {
			return err
		}

		if entry.ActiveItems == nil {
			entry.ActiveItems = models.ItemCounts{}
		}
		entry.ActiveItems[menuName]++
		updates := map[string]interface{}{
			"active_items": entry.ActiveItems,
			"total_price":  entry.TotalPrice + price,
		}
		return tx.Model(&models.TableLedgerEntry{}).
			Where("table_num = ?", tableNum).
			Updates(updates).Error
	})
}

// CancelLine removes one unit of one menu item from a table's bill. The
// most recent matching active line moves to the cancellation log and the
// ledger decrements. Canceling an item with no active units is a no-op.
func (s *BillingService) CancelLine(tableNum int, menuName string, price int) error {
	if tableNum <= 0 || menuName == "" || price <= 0 {
		return ErrInvalidState
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var entry models.TableLedgerEntry
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("table_num = ?", tableNum).First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTableNotFound
			}
			return err
		}

		if entry.ActiveItems[menuName] <= 0 {
			return nil
		}

		// The matching journal row may already be gone when the kitchen
		// fulfilled the line; the bill still has to come down, only the
		// cancellation-log move is skipped then.
		var line models.OrderLine
		err := tx.Where("table_num = ? AND menu_name = ?", tableNum, menuName).
			Order("placed_at desc, id desc").
			First(&line).Error
		switch {
		case err == nil:
			canceled := models.CanceledOrder{
				TableNum:   line.TableNum,
				MenuName:   line.MenuName,
				OrderTime:  line.PlacedAt,
				CanceledAt: time.Now(),
			}
			if err := tx.Create(&canceled).Error; err != nil {
				return err
			}
			if err := tx.Delete(&line).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// no journal row left, decrement the ledger alone
		default:
			return err
		}

		entry.ActiveItems[menuName]--
		total := entry.TotalPrice - price
		if total < 0 {
			total = 0
		}
		updates := map[string]interface{}{
			"active_items": entry.ActiveItems,
			"total_price":  total,
		}
		return tx.Model(&models.TableLedgerEntry{}).
			Where("table_num = ?", tableNum).
			Updates(updates).Error
	})
}

// CompleteTable settles a table. If the occupancy timer was running, a
// payment record freezes the current snapshot with the used duration; a
// table that never started its timer writes no record. Remaining active
// lines for the table are closed into the fulfillment log, and the
// ledger resets to the all-zero catalog map.
func (s *BillingService) CompleteTable(tableNum int) (*models.PaymentRecord, error) {
	var record *models.PaymentRecord

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var entry models.TableLedgerEntry
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("table_num = ?", tableNum).First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTableNotFound
			}
			return err
		}

		now := time.Now()
		if entry.EntranceTime != nil {
			usedSeconds := int(now.Sub(*entry.EntranceTime).Seconds())
			snapshot := make(models.ItemCounts, len(entry.ActiveItems))
			for name, count := range entry.ActiveItems {
				snapshot[name] = count
			}
			record = &models.PaymentRecord{
				TableNum:     entry.TableNum,
				TotalPrice:   entry.TotalPrice,
				PaymentTime:  now,
				Note:         entry.Note,
				Detail:       snapshot,
				EntranceTime: entry.EntranceTime,
				EndTime:      &now,
				UsedTime:     utils.FormatDuration(usedSeconds),
				UsedSeconds:  usedSeconds,
			}
			if err := tx.Create(record).Error; err != nil {
				return err
			}
		}

		// Close lingering active lines so the journal never strands
		// rows for a settled table.
		var lines []models.OrderLine
		if err := tx.Where("table_num = ?", tableNum).Find(&lines).Error; err != nil {
			return err
		}
		for _, line := range lines {
			done := models.CompletedOrder{
				TableNum:    line.TableNum,
				MenuName:    line.MenuName,
				OrderTime:   line.PlacedAt,
				CompletedAt: now,
			}
			if err := tx.Create(&done).Error; err != nil {
				return err
			}
		}
		if len(lines) > 0 {
			if err := tx.Where("table_num = ?", tableNum).Delete(&models.OrderLine{}).Error; err != nil {
				return err
			}
		}

		empty, err := emptyItemCounts(tx)
		if err != nil {
			return err
		}
		updates := map[string]interface{}{
			"active_items":  empty,
			"total_price":   0,
			"note":          "",
			"entrance_time": nil,
			"end_time":      nil,
		}
		return tx.Model(&models.TableLedgerEntry{}).
			Where("table_num = ?", tableNum).
			Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// StartTimer begins the occupancy timer for a table. A second call while
// the timer already runs keeps the original entrance time.
func (s *BillingService) StartTimer(tableNum int) (time.Time, error) {
	var effective time.Time

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var entry models.TableLedgerEntry
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("table_num = ?", tableNum).First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTableNotFound
			}
			return err
		}

		if entry.EntranceTime != nil {
			effective = *entry.EntranceTime
			return nil
		}

		now := time.Now()
		effective = now
		return tx.Model(&models.TableLedgerEntry{}).
			Where("table_num = ?", tableNum).
			Update("entrance_time", now).Error
	})
	if err != nil {
		return time.Time{}, err
	}
	return effective, nil
}

// SaveNote overwrites a table's free-text note.
func (s *BillingService) SaveNote(tableNum int, note string) error {
	result := s.db.Model(&models.TableLedgerEntry{}).
		Where("table_num = ?", tableNum).
		Update("note", note)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTableNotFound
	}
	return nil
}

// CompleteOrderLine marks one journal line as fulfilled by id. The ledger
// is deliberately untouched: billing counts stay driven by add/cancel
// only, this exists for kitchen tracking.
func (s *BillingService) CompleteOrderLine(orderID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var line models.OrderLine
		if err := tx.First(&line, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		done := models.CompletedOrder{
			TableNum:    line.TableNum,
			MenuName:    line.MenuName,
			OrderTime:   line.PlacedAt,
			CompletedAt: time.Now(),
		}
		if err := tx.Create(&done).Error; err != nil {
			return err
		}
		return tx.Delete(&line).Error
	})
}

// ActiveLines lists active journal lines, optionally restricted to a set
// of menu names (the kitchen views filter by category).
func (s *BillingService) ActiveLines(menuNames []string) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	query := s.db.Order("placed_at asc, id asc")
	if len(menuNames) > 0 {
		query = query.Where("menu_name IN ?", menuNames)
	}
	if err := query.Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// CompletedOrders lists the fulfillment log, newest first.
func (s *BillingService) CompletedOrders() ([]models.CompletedOrder, error) {
	var orders []models.CompletedOrder
	if err := s.db.Order("completed_at desc, id desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CanceledOrders lists the cancellation log, newest first.
func (s *BillingService) CanceledOrders() ([]models.CanceledOrder, error) {
	var orders []models.CanceledOrder
	if err := s.db.Order("canceled_at desc, id desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// emptyItemCounts builds the canonical all-zero map over the dine-in
// catalog, used to reset a table after settlement.
func emptyItemCounts(tx *gorm.DB) (models.ItemCounts, error) {
	var names []string
	if err := tx.Model(&models.Menu{}).
		Where("context = ?", models.MenuContextDineIn).
		Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	counts := make(models.ItemCounts, len(names))
	for _, name := range names {
		counts[name] = 0
	}
	return counts, nil
}
