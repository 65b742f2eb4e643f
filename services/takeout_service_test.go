package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iternull/kendobar-pos/models"
)

func TestNextTakeoutNumberStartsAtFloor(t *testing.T) {
	db := setupDB(t)
	takeout := NewTakeoutService(db)

	number, err := takeout.NextTakeoutNumber()
	assert.NoError(t, err)
	assert.Equal(t, TakeoutFloor, number)
}

func TestNextTakeoutNumberFollowsLedgerMax(t *testing.T) {
	db := setupDB(t)
	takeout := NewTakeoutService(db)

	assert.NoError(t, db.Create(&models.PaymentRecord{
		TableNum:    25,
		TotalPrice:  12000,
		PaymentTime: time.Now(),
	}).Error)

	number, err := takeout.NextTakeoutNumber()
	assert.NoError(t, err)
	assert.Equal(t, 26, number)
}

func TestNextTakeoutNumberIgnoresDineInPayments(t *testing.T) {
	db := setupDB(t)
	takeout := NewTakeoutService(db)

	assert.NoError(t, db.Create(&models.PaymentRecord{
		TableNum:    5,
		TotalPrice:  8500,
		PaymentTime: time.Now(),
	}).Error)

	number, err := takeout.NextTakeoutNumber()
	assert.NoError(t, err)
	assert.Equal(t, TakeoutFloor, number)
}

func TestSubmitTakeoutSettlesInOneStep(t *testing.T) {
	db := setupDB(t)
	takeout := NewTakeoutService(db)

	record, err := takeout.SubmitOrder(map[string]TakeoutItem{
		"황도": {Count: 2, Price: 10000},
	}, "포장 주문")
	assert.NoError(t, err)
	assert.Equal(t, TakeoutFloor, record.TableNum)
	assert.Equal(t, 20000, record.TotalPrice)
	assert.Equal(t, 2, record.Detail["황도"])
	assert.Equal(t, "포장 주문", record.Note)

	// No occupancy period for takeout.
	assert.Nil(t, record.EntranceTime)
	assert.Nil(t, record.EndTime)
	assert.Empty(t, record.UsedTime)
	assert.Zero(t, record.UsedSeconds)

	var lines []models.OrderLine
	assert.NoError(t, db.Where("table_num = ?", TakeoutFloor).Find(&lines).Error)
	assert.Len(t, lines, 2)
	for _, line := range lines {
		assert.True(t, line.Takeout)
		assert.Equal(t, "황도", line.MenuName)
		assert.Equal(t, 10000, line.Price)
	}
}

func TestSubmitTakeoutNumbersNeverCollide(t *testing.T) {
	db := setupDB(t)
	takeout := NewTakeoutService(db)

	first, err := takeout.SubmitOrder(map[string]TakeoutItem{
		"메론소다": {Count: 1, Price: 3000},
	}, "")
	assert.NoError(t, err)
	assert.Equal(t, 20, first.TableNum)

	second, err := takeout.SubmitOrder(map[string]TakeoutItem{
		"메론소다": {Count: 1, Price: 3000},
	}, "")
	assert.NoError(t, err)
	assert.Equal(t, 21, second.TableNum)
}

func TestSubmitTakeoutDerivesCatalogPrice(t *testing.T) {
	db := setupDB(t)
	takeout := NewTakeoutService(db)

	// Takeout catalog sells 타코야끼 (데리야끼) at 6500, not the dine-in 8500.
	record, err := takeout.SubmitOrder(map[string]TakeoutItem{
		"타코야끼 (데리야끼)": {Count: 1},
	}, "")
	assert.NoError(t, err)
	assert.Equal(t, 6500, record.TotalPrice)
}

func TestSubmitTakeoutRejectsUnknownOrDineInOnlyMenu(t *testing.T) {
	db := setupDB(t)
	takeout := NewTakeoutService(db)

	// 교자 exists only in the dine-in catalog.
	_, err := takeout.SubmitOrder(map[string]TakeoutItem{
		"교자": {Count: 1, Price: 8000},
	}, "")
	assert.ErrorIs(t, err, ErrUnknownMenu)

	// The failed submission must leave no partial rows behind.
	var lines, payments int64
	db.Model(&models.OrderLine{}).Count(&lines)
	db.Model(&models.PaymentRecord{}).Count(&payments)
	assert.Zero(t, lines)
	assert.Zero(t, payments)
}

func TestSubmitTakeoutRejectsEmptyOrder(t *testing.T) {
	db := setupDB(t)
	takeout := NewTakeoutService(db)

	_, err := takeout.SubmitOrder(map[string]TakeoutItem{}, "")
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = takeout.SubmitOrder(map[string]TakeoutItem{
		"황도": {Count: 0, Price: 10000},
	}, "")
	assert.ErrorIs(t, err, ErrInvalidState)
}
