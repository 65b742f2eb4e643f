package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iternull/kendobar-pos/models"
)

const (
	takoyakiTeriyaki = "타코야끼 (데리야끼)"
	hwangdo          = "황도"
)

func TestAddLineUpdatesLedgerAndJournal(t *testing.T) {
	db := setupDB(t)
	billing := NewBillingService(db)

	assert.NoError(t, billing.AddLine(3, takoyakiTeriyaki, 8500))
	assert.NoError(t, billing.AddLine(3, takoyakiTeriyaki, 8500))

	entry := ledgerFor(t, db, 3)
	assert.Equal(t, 17000, entry.TotalPrice)
	assert.Equal(t, 2, entry.ActiveItems[takoyakiTeriyaki])

	var lines []models.OrderLine
	assert.NoError(t, db.Where("table_num = ?", 3).Find(&lines).Error)
	assert.Len(t, lines, 2)
	for _, line := range lines {
		assert.Equal(t, takoyakiTeriyaki, line.MenuName)
		assert.Equal(t, 8500, line.Price)
		assert.False(t, line.Takeout)
	}
}

func TestAddLineDerivesCatalogPriceWhenMissing(t *testing.T) {
	db := setupDB(t)
	billing := NewBillingService(db)

	assert.NoError(t, billing.AddLine(1, hwangdo, 0))

	entry := ledgerFor(t, db, 1)
	assert.Equal(t, 10000, entry.TotalPrice)
	assert.Equal(t, 1, entry.ActiveItems[hwangdo])
}

func TestAddLineRejectsUnknownMenu(t *testing.T) {
	db := setupDB(t)
	billing := NewBillingService(db)

	err := billing.AddLine(1, "존재하지 않는 메뉴", 5000)
	assert.ErrorIs(t, err, ErrUnknownMenu)

	entry := ledgerFor(t, db, 1)
	assert.Equal(t, 0, entry.TotalPrice)

	var count int64
	db.Model(&models.OrderLine{}).Count(&count)
	assert.Zero(t, count)
}

func TestAddLineUnknownTable(t *testing.T) {
	db := setupDB(t)
	billing := NewBillingService(db)

	err := billing.AddLine(99, takoyakiTeriyaki, 8500)
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestCancelRoundTripRestoresLedger(t *testing.T) {
	db := setupDB(t)
	billing := NewBillingService(db)

	before := ledgerFor(t, db, 5)

	assert.NoError(t, billing.AddLine(5, takoyakiTeriyaki, 8500))
	assert.NoError(t, billing.CancelLine(5, takoyakiTeriyaki, 8500))

	after := ledgerFor(t, db, 5)
	assert.Equal(t, before.TotalPrice, after.TotalPrice)
	assert.Equal(t, before.ActiveItems[takoyakiTeriyaki], after.ActiveItems[takoyakiTeriyaki])

	var active int64
	db.Model(&models.OrderLine{}).Where("table_num = ?", 5).Count(&active)
	assert.Zero(t, active)

	var canceled []models.CanceledOrder
	assert.NoError(t, db.Where("table_num = ?", 5).Find(&canceled).Error)
	assert.Len(t, canceled, 1)
	assert.Equal(t, takoyakiTeriyaki, canceled[0].MenuName)
}

func TestCancelAtZeroCountIsNoOp(t *testing.T) {
	db := setupDB(t)
	billing := NewBillingService(db)

	assert.NoError(t, billing.CancelLine(2, takoyakiTeriyaki, 8500))

	entry := ledgerFor(t, db, 2)
	assert.Equal(t, 0, entry.TotalPrice)
	assert.Equal(t, 0, entry.ActiveItems[takoyakiTeriyaki])

	var canceled int64
	db.Model(&models.CanceledOrder{}).Count(&canceled)
	assert.Zero(t, canceled)
}

func TestCancelNeverDrivesCountNegative(t *testing.T) {
	db := setupDB(t)
	billing := NewBillingService(db)

	assert.NoError(t, billing.AddLine(4, hwangdo, 10000))
	assert.NoError(t, billing.CancelLine(4, hwangdo, 10000))
	// Second cancel has nothing left to remove.
	assert.NoError(t, billing.CancelLine(4, hwangdo, 10000))

	entry := ledgerFor(t, db, 4)
	assert.Equal(t, 0, entry.ActiveItems[hwangdo])
	assert.Equal(t, 0, entry.TotalPrice)
}

func TestCancelMissingFields(t *testing.T) {
	db := setupDB(t)
	billing := NewBillingService(db)

	assert.ErrorIs(t, billing.CancelLine(0, takoyakiTeriyaki, 8500), ErrInvalidState)
	assert.ErrorIs(t, billing.CancelLine(1, "", 8500), ErrInvalidState)
	assert.ErrorIs(t, billing.CancelLine(1, takoyakiTeriyaki, 0), ErrInvalidState)
}

func TestStartTimerIsIdempotent(t *testing.T) {
	db := setupDB(t)
	billing := NewBillingService(db)

	first, err := billing.StartTimer(7)
	assert.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	second, err := billing.StartTimer(7)
	assert.NoError(t, err)
	assert.Equal(t, first.Unix(), second.Unix())

	entry := ledgerFor(t, db, 7)
	assert.NotNil(t, entry.EntranceTime)
	assert.Equal(t, first.Unix(), entry.EntranceTime.Unix())
}

func TestStartTimerUnknownTable(t *testing.T) {
	db := setupDB(t)
	billing := NewBillingService(db)

	_, err := billing.StartTimer(200)
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestSaveNoteOverwrites(t *testing.T) {
	db := setupDB(t)
	billing := NewBillingService(db)

	assert.NoError(t, billing.SaveNote(6, "창가 자리"))
	assert.NoError(t, billing.SaveNote(6, "예약석"))

	entry := ledgerFor(t, db, 6)
	assert.Equal(t, "예약석", entry.Note)

	assert.ErrorIs(t, billing.SaveNote(300, "x"), ErrTableNotFound)
}

func TestCompleteTableSettlesAndResets(t *testing.T) {
	db := setupDB(t)
	billing := NewBillingService(db)

	_, err := billing.StartTimer(3)
	assert.NoError(t, err)
	assert.NoError(t, billing.AddLine(3, takoyakiTeriyaki, 8500))
	assert.NoError(t, billing.AddLine(3, takoyakiTeriyaki, 8500))
	assert.NoError(t, billing.CancelLine(3, takoyakiTeriyaki, 8500))
	assert.NoError(t, billing.SaveNote(3, "단체 손님"))

	record, err := billing.CompleteTable(3)
	assert.NoError(t, err)
	assert.NotNil(t, record)
	assert.Equal(t, 3, record.TableNum)
	assert.Equal(t, 8500, record.TotalPrice)
	assert.Equal(t, 1, record.Detail[takoyakiTeriyaki])
	assert.Equal(t, "단체 손님", record.Note)
	assert.NotNil(t, record.EntranceTime)
	assert.NotNil(t, record.EndTime)
	assert.Regexp(t, `^\d{2}:\d{2}:\d{2}$`, record.UsedTime)

	entry := ledgerFor(t, db, 3)
	assert.Equal(t, 0, entry.TotalPrice)
	assert.Nil(t, entry.EntranceTime)
	assert.Empty(t, entry.Note)
	// Every catalog item resets to zero.
	assert.NotEmpty(t, entry.ActiveItems)
	for name, count := range entry.ActiveItems {
		assert.Zerof(t, count, "item %s not reset", name)
	}

	// Remaining active lines are closed into the fulfillment log.
	var active int64
	db.Model(&models.OrderLine{}).Where("table_num = ?", 3).Count(&active)
	assert.Zero(t, active)
	var done int64
	db.Model(&models.CompletedOrder{}).Where("table_num = ?", 3).Count(&done)
	assert.Equal(t, int64(1), done)
}

func TestCompleteTableWithoutTimerWritesNoRecord(t *testing.T) {
	db := setupDB(t)
	billing := NewBillingService(db)

	assert.NoError(t, billing.AddLine(8, hwangdo, 10000))

	record, err := billing.CompleteTable(8)
	assert.NoError(t, err)
	assert.Nil(t, record)

	var payments int64
	db.Model(&models.PaymentRecord{}).Count(&payments)
	assert.Zero(t, payments)

	entry := ledgerFor(t, db, 8)
	assert.Equal(t, 0, entry.TotalPrice)
	assert.Equal(t, 0, entry.ActiveItems[hwangdo])
}

func TestCompleteOrderLineLeavesLedgerAlone(t *testing.T) {
	db := setupDB(t)
	billing := NewBillingService(db)

	assert.NoError(t, billing.AddLine(9, hwangdo, 10000))

	var line models.OrderLine
	assert.NoError(t, db.Where("table_num = ?", 9).First(&line).Error)

	assert.NoError(t, billing.CompleteOrderLine(line.ID))

	// Billing state keeps counting the item; only fulfillment moved.
	entry := ledgerFor(t, db, 9)
	assert.Equal(t, 1, entry.ActiveItems[hwangdo])
	assert.Equal(t, 10000, entry.TotalPrice)

	var active int64
	db.Model(&models.OrderLine{}).Where("table_num = ?", 9).Count(&active)
	assert.Zero(t, active)

	var done models.CompletedOrder
	assert.NoError(t, db.Where("table_num = ?", 9).First(&done).Error)
	assert.Equal(t, hwangdo, done.MenuName)
	assert.Equal(t, line.PlacedAt.Unix(), done.OrderTime.Unix())
}

func TestCancelAfterFulfillmentStillDecrements(t *testing.T) {
	db := setupDB(t)
	billing := NewBillingService(db)

	assert.NoError(t, billing.AddLine(3, hwangdo, 10000))

	var line models.OrderLine
	assert.NoError(t, db.Where("table_num = ?", 3).First(&line).Error)
	assert.NoError(t, billing.CompleteOrderLine(line.ID))

	// The kitchen already fulfilled the line, so the journal row is
	// gone, but the cancellation must still bring the bill down.
	assert.NoError(t, billing.CancelLine(3, hwangdo, 10000))

	entry := ledgerFor(t, db, 3)
	assert.Equal(t, 0, entry.ActiveItems[hwangdo])
	assert.Equal(t, 0, entry.TotalPrice)

	var canceled int64
	db.Model(&models.CanceledOrder{}).Where("table_num = ?", 3).Count(&canceled)
	assert.Zero(t, canceled)
}

func TestCompleteOrderLineUnknownID(t *testing.T) {
	db := setupDB(t)
	billing := NewBillingService(db)

	assert.ErrorIs(t, billing.CompleteOrderLine(9999), ErrOrderNotFound)
}

func TestLedgerTotalMatchesActiveItems(t *testing.T) {
	db := setupDB(t)
	billing := NewBillingService(db)

	prices := map[string]int{}
	var menus []models.Menu
	assert.NoError(t, db.Where("context = ?", models.MenuContextDineIn).Find(&menus).Error)
	for _, m := range menus {
		prices[m.Name] = m.Price
	}

	assert.NoError(t, billing.AddLine(10, takoyakiTeriyaki, prices[takoyakiTeriyaki]))
	assert.NoError(t, billing.AddLine(10, takoyakiTeriyaki, prices[takoyakiTeriyaki]))
	assert.NoError(t, billing.AddLine(10, hwangdo, prices[hwangdo]))
	assert.NoError(t, billing.CancelLine(10, takoyakiTeriyaki, prices[takoyakiTeriyaki]))

	entry := ledgerFor(t, db, 10)
	expected := 0
	for name, count := range entry.ActiveItems {
		expected += count * prices[name]
	}
	assert.Equal(t, expected, entry.TotalPrice)

	// The journal mirrors the ledger counts exactly.
	for name, count := range entry.ActiveItems {
		var journal int64
		db.Model(&models.OrderLine{}).Where("table_num = ? AND menu_name = ?", 10, name).Count(&journal)
		assert.Equal(t, int64(count), journal)
	}
}

func TestActiveLinesFiltering(t *testing.T) {
	db := setupDB(t)
	billing := NewBillingService(db)

	assert.NoError(t, billing.AddLine(1, takoyakiTeriyaki, 8500))
	assert.NoError(t, billing.AddLine(2, hwangdo, 10000))

	all, err := billing.ActiveLines(nil)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := billing.ActiveLines([]string{hwangdo})
	assert.NoError(t, err)
	assert.Len(t, filtered, 1)
	assert.Equal(t, 2, filtered[0].TableNum)
}
