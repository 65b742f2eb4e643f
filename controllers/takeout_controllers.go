package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/iternull/kendobar-pos/events"
	"github.com/iternull/kendobar-pos/services"
	"github.com/iternull/kendobar-pos/utils"
)

type TakeoutController struct {
	DB      *gorm.DB
	takeout *services.TakeoutService
}

func NewTakeoutController(db *gorm.DB) *TakeoutController {
	return &TakeoutController{
		DB:      db,
		takeout: services.NewTakeoutService(db),
	}
}

// GetNextNumber -> the takeout number the next submission would get
func (tc *TakeoutController) GetNextNumber(c *gin.Context) {
	number, err := tc.takeout.NextTakeoutNumber()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Next takeout number", gin.H{
		"takeout_number": number,
	})
}

// SubmitOrder -> settle a takeout order in one step
func (tc *TakeoutController) SubmitOrder(c *gin.Context) {
	var body struct {
		Orders map[string]services.TakeoutItem `json:"orders" binding:"required"`
		Note   string                          `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	record, err := tc.takeout.SubmitOrder(body.Orders, body.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.Broadcast(events.EventTakeoutSettled, record)

	utils.InfoLogger.Printf("Takeout #%d settled: %s", record.TableNum, utils.FormatWon(record.TotalPrice))
	utils.RespondJSON(c, http.StatusOK, "Takeout order completed", record)
}
