package handler

import (
	"errors"
	"net/http"
	"strconv"

	"fuelprice/internal/model"
	"fuelprice/internal/pricing"
	"fuelprice/internal/ratefeed"
	"fuelprice/internal/service"
	"fuelprice/pkg/response"

	"github.com/gin-gonic/gin"
)

var (
	readRoles  = []string{model.RoleAdmin, model.RoleManager, model.RoleStaff}
	writeRoles = []string{model.RoleAdmin, model.RoleManager}
)

// statusFor maps service and job errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrNoRackPrices),
		errors.Is(err, service.ErrNoOperators),
		errors.Is(err, ratefeed.ErrFeedURLMissing),
		errors.Is(err, ratefeed.ErrFeedUnavailable),
		errors.Is(err, ratefeed.ErrFeedMalformed):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrInUse):
		return http.StatusConflict
	case errors.Is(err, pricing.ErrTaxRateNotFound):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	code := statusFor(err)
	_ = c.Error(err)
	c.JSON(code, response.Error(code, err.Error()))
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, msg))
}

// pathID reads the :id parameter, answering 400 when it is not a positive integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "Invalid ID")
		return 0, false
	}
	return id, true
}
