package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iternull/kendobar-pos/services"
	"github.com/iternull/kendobar-pos/utils"
)

var (
	ErrNoPermission   = errors.New("you don't have permission for this action")
	errInvalidContext = errors.New("context must be dine_in or takeout")
)

// respondServiceError maps the service error kinds onto HTTP statuses:
// missing references are 404, bad input is 400, anything else is a
// storage failure.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTableNotFound), errors.Is(err, services.ErrOrderNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrInvalidState), errors.Is(err, services.ErrUnknownMenu):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
