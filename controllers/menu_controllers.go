package controllers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/iternull/kendobar-pos/models"
	"github.com/iternull/kendobar-pos/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetMenus -> the catalog for one context (?context=dine_in|takeout)
func (mc *MenuController) GetMenus(c *gin.Context) {
	context := c.DefaultQuery("context", models.MenuContextDineIn)
	if context != models.MenuContextDineIn && context != models.MenuContextTakeout {
		utils.RespondError(c, http.StatusBadRequest, errInvalidContext)
		return
	}

	var menus []models.Menu
	if err := mc.DB.Where("context = ?", context).Order("id asc").Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetCategories -> the fixed kitchen-view category names
func (mc *MenuController) GetCategories(c *gin.Context) {
	categories := make([]string, 0, len(menuCategories))
	for name := range menuCategories {
		categories = append(categories, name)
	}
	sort.Strings(categories)
	utils.RespondJSON(c, http.StatusOK, "List of categories", categories)
}
