package services

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/iternull/kendobar-pos/models"
	"github.com/iternull/kendobar-pos/utils"
)

// PaymentService reads the settled-payments ledger and renders the
// spreadsheet export.
type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// ListPayments returns every payment record plus the summed revenue.
func (s *PaymentService) ListPayments() ([]models.PaymentRecord, int, error) {
	var records []models.PaymentRecord
	if err := s.db.Order("payment_time asc, id asc").Find(&records).Error; err != nil {
		return nil, 0, err
	}

	revenue := 0
	for _, record := range records {
		revenue += record.TotalPrice
	}
	return records, revenue, nil
}

var exportHeaders = []string{
	"table_num", "total_price", "entrance_time", "payment_time", "used_time", "note", "detail",
}

// ExportWorkbook renders the payment ledger as an xlsx workbook. The
// detail column spells out each settled position with the dine-in unit
// price, e.g. "황도(2 × 10000 = ₩20,000)".
func (s *PaymentService) ExportWorkbook() ([]byte, error) {
	records, _, err := s.ListPayments()
	if err != nil {
		return nil, err
	}

	var menus []models.Menu
	if err := s.db.Where("context = ?", models.MenuContextDineIn).Find(&menus).Error; err != nil {
		return nil, err
	}
	prices := make(map[string]int, len(menus))
	for _, menu := range menus {
		prices[menu.Name] = menu.Price
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Payments"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, record := range records {
		row := []interface{}{
			record.TableNum,
			record.TotalPrice,
			formatLedgerTime(record.EntranceTime),
			record.PaymentTime.Format("2006-01-02 15:04:05"),
			record.UsedTime,
			record.Note,
			DetailString(record.Detail, prices),
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DetailString joins the positions of a payment snapshot into one cell:
// "name(count x unit = ₩subtotal), ..." for every count above zero, in
// stable name order.
func DetailString(detail models.ItemCounts, prices map[string]int) string {
	names := make([]string, 0, len(detail))
	for name, count := range detail {
		if count > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		count := detail[name]
		unit := prices[name]
		parts = append(parts, fmt.Sprintf("%s(%d × %d = %s)", name, count, unit, utils.FormatWon(count*unit)))
	}
	return strings.Join(parts, ", ")
}

func formatLedgerTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
