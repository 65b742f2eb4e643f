package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/iternull/kendobar-pos/events"
	"github.com/iternull/kendobar-pos/services"
	"github.com/iternull/kendobar-pos/utils"
)

type PaymentController struct {
	DB       *gorm.DB
	billing  *services.BillingService
	payments *services.PaymentService
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{
		DB:       db,
		billing:  services.NewBillingService(db),
		payments: services.NewPaymentService(db),
	}
}

// CompleteTable -> settle a table's bill and reset the ledger
func (pc *PaymentController) CompleteTable(c *gin.Context) {
	tableNum, ok := tableNumParam(c)
	if !ok {
		return
	}

	record, err := pc.billing.CompleteTable(tableNum)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.Broadcast(events.EventTableSettled, gin.H{
		"table_num": tableNum,
		"payment":   record,
	})

	if record != nil {
		utils.InfoLogger.Printf("Table %d settled: %s (%s)", tableNum, utils.FormatWon(record.TotalPrice), record.UsedTime)
	} else {
		utils.InfoLogger.Printf("Table %d reset without settlement (timer never started)", tableNum)
	}

	utils.RespondJSON(c, http.StatusOK, "Payment completed successfully", record)
}

// ListPayments -> the settled ledger plus total revenue
func (pc *PaymentController) ListPayments(c *gin.Context) {
	records, revenue, err := pc.payments.ListPayments()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of payments", gin.H{
		"payments":      records,
		"total_revenue": revenue,
	})
}

// ExportPayments -> the settled ledger as a downloadable xlsx workbook
func (pc *PaymentController) ExportPayments(c *gin.Context) {
	workbook, err := pc.payments.ExportWorkbook()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="payments.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}
