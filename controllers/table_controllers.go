package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/iternull/kendobar-pos/events"
	"github.com/iternull/kendobar-pos/services"
	"github.com/iternull/kendobar-pos/utils"
)

type TableController struct {
	DB      *gorm.DB
	billing *services.BillingService
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{
		DB:      db,
		billing: services.NewBillingService(db),
	}
}

func tableNumParam(c *gin.Context) (int, bool) {
	num, err := strconv.Atoi(c.Param("table_num"))
	if err != nil || num <= 0 {
		utils.RespondError(c, http.StatusBadRequest, services.ErrInvalidState)
		return 0, false
	}
	return num, true
}

// GetAllTables -> floor overview with running bills and elapsed timers
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.billing.ListTables()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTable -> one table's snapshot
func (tc *TableController) GetTable(c *gin.Context) {
	tableNum, ok := tableNumParam(c)
	if !ok {
		return
	}

	status, err := tc.billing.TableStatus(tableNum)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", status)
}

// StartTimer -> begin the occupancy timer; repeated calls keep the
// original entrance time
func (tc *TableController) StartTimer(c *gin.Context) {
	tableNum, ok := tableNumParam(c)
	if !ok {
		return
	}

	timestamp, err := tc.billing.StartTimer(tableNum)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.Broadcast(events.EventTimerStarted, gin.H{
		"table_num": tableNum,
		"timestamp": timestamp,
	})

	utils.InfoLogger.Printf("Timer running for table %d since %s", tableNum, timestamp.Format("2006-01-02 15:04:05"))
	utils.RespondJSON(c, http.StatusOK, "Timer started", gin.H{
		"timestamp": timestamp,
	})
}

// SaveNote -> overwrite the table note
func (tc *TableController) SaveNote(c *gin.Context) {
	tableNum, ok := tableNumParam(c)
	if !ok {
		return
	}

	var body struct {
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := tc.billing.SaveNote(tableNum, body.Note); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Note saved", nil)
}
