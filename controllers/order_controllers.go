package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/iternull/kendobar-pos/events"
	"github.com/iternull/kendobar-pos/services"
	"github.com/iternull/kendobar-pos/utils"
)

// menuCategories groups menu names for the kitchen views. The mapping is
// fixed alongside the catalog.
var menuCategories = map[string][]string{
	"타코야끼":     {"타코야끼 (데리야끼)", "타코야끼 (불닭)"},
	"야끼소바":     {"야끼소바 (간장)", "야끼소바 (불닭)"},
	"우삼겹숙주볶음":  {"우삼겹숙주볶음"},
	"나가사키해물우동": {"나가사키해물우동"},
	"사이드":      {"흑당인절미 당고", "황도", "교자"},
	"음료": {
		"메론소다", "청포도 에이드", "망고 에이드", "아망추",
		"선라이즈", "로이 로저스", "신데렐라", "하이볼 키트",
	},
}

type OrderController struct {
	DB      *gorm.DB
	billing *services.BillingService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:      db,
		billing: services.NewBillingService(db),
	}
}

// AddOrder -> place one unit on a table's bill
func (oc *OrderController) AddOrder(c *gin.Context) {
	tableNum, ok := tableNumParam(c)
	if !ok {
		return
	}

	var body struct {
		MenuName string `json:"menu_name" binding:"required"`
		Price    int    `json:"price"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := oc.billing.AddLine(tableNum, body.MenuName, body.Price); err != nil {
		respondServiceError(c, err)
		return
	}

	events.Broadcast(events.EventOrderAdded, gin.H{
		"table_num": tableNum,
		"menu_name": body.MenuName,
	})

	utils.InfoLogger.Printf("Order added: table %d, %s", tableNum, body.MenuName)
	utils.RespondJSON(c, http.StatusOK, "Order added successfully", nil)
}

// CancelOrder -> remove one unit from a table's bill
func (oc *OrderController) CancelOrder(c *gin.Context) {
	tableNum, ok := tableNumParam(c)
	if !ok {
		return
	}

	var body struct {
		MenuName string `json:"menu_name" binding:"required"`
		Price    int    `json:"price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, services.ErrInvalidState)
		return
	}

	if err := oc.billing.CancelLine(tableNum, body.MenuName, body.Price); err != nil {
		respondServiceError(c, err)
		return
	}

	events.Broadcast(events.EventOrderCanceled, gin.H{
		"table_num": tableNum,
		"menu_name": body.MenuName,
	})

	utils.InfoLogger.Printf("Order canceled: table %d, %s", tableNum, body.MenuName)
	utils.RespondJSON(c, http.StatusOK, "Order canceled successfully", nil)
}

// CompleteOrderLine -> kitchen marks one line done; billing untouched
func (oc *OrderController) CompleteOrderLine(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, services.ErrInvalidState)
		return
	}

	if err := oc.billing.CompleteOrderLine(uint(orderID)); err != nil {
		respondServiceError(c, err)
		return
	}

	events.Broadcast(events.EventOrderCompleted, gin.H{
		"order_id": orderID,
	})

	utils.RespondJSON(c, http.StatusOK, "Order line completed", nil)
}

// GetActiveOrders -> active journal lines, filterable by kitchen category
// or a single menu name
func (oc *OrderController) GetActiveOrders(c *gin.Context) {
	var names []string
	if category := c.Query("category"); category != "" {
		mapped, ok := menuCategories[category]
		if !ok {
			utils.RespondError(c, http.StatusNotFound, fmt.Errorf("unknown category: %s", category))
			return
		}
		names = mapped
	} else if menuName := c.Query("menu_name"); menuName != "" {
		names = []string{menuName}
	}

	lines, err := oc.billing.ActiveLines(names)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active orders", lines)
}

// GetCompletedOrders -> the fulfillment log, newest first
func (oc *OrderController) GetCompletedOrders(c *gin.Context) {
	orders, err := oc.billing.CompletedOrders()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Completed orders", orders)
}

// GetCanceledOrders -> the cancellation log, newest first
func (oc *OrderController) GetCanceledOrders(c *gin.Context) {
	orders, err := oc.billing.CanceledOrders()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Canceled orders", orders)
}
