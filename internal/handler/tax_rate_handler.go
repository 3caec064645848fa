package handler

import (
	"net/http"

	"fuelprice/internal/middleware"
	"fuelprice/internal/service"
	"fuelprice/pkg/response"

	"github.com/gin-gonic/gin"
)

type TaxRateHandler struct {
	taxRateService service.TaxRateService
	auth           *middleware.Auth
}

func NewTaxRateHandler(taxRateService service.TaxRateService, auth *middleware.Auth) *TaxRateHandler {
	return &TaxRateHandler{taxRateService: taxRateService, auth: auth}
}

func (h *TaxRateHandler) RegisterRoutes(router *gin.RouterGroup) {
	rates := router.Group("/api/tax-rates")
	{
		rates.GET("", h.auth.RequireRole(readRoles...), h.ListTaxRates)
		rates.GET("/:id", h.auth.RequireRole(readRoles...), h.GetTaxRate)
		rates.POST("", h.auth.RequireRole(writeRoles...), h.CreateTaxRate)
		rates.PUT("/:id", h.auth.RequireRole(writeRoles...), h.UpdateTaxRate)
		rates.DELETE("/:id", h.auth.RequireRole(writeRoles...), h.DeleteTaxRate)
	}
}

// ListTaxRates returns every tax rate ordered by province then fuel type
// @Summary      List tax rates
// @Tags         tax-rates
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.TaxRateResponse}
// @Router       /api/tax-rates [get]
func (h *TaxRateHandler) ListTaxRates(c *gin.Context) {
	rates, err := h.taxRateService.ListTaxRates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rates))
}

// GetTaxRate godoc
// @Summary      Get tax rate
// @Tags         tax-rates
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Tax rate ID"
// @Success      200  {object}  response.Response{data=service.TaxRateResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/tax-rates/{id} [get]
func (h *TaxRateHandler) GetTaxRate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rate, err := h.taxRateService.GetTaxRate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rate))
}

// CreateTaxRate creates the rate for one (province, fuel type) pair
// @Summary      Create tax rate
// @Tags         tax-rates
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateTaxRateRequest  true  "Tax rate"
// @Success      201      {object}  response.Response{data=service.TaxRateResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/tax-rates [post]
func (h *TaxRateHandler) CreateTaxRate(c *gin.Context) {
	var req service.CreateTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	rate, err := h.taxRateService.CreateTaxRate(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rate))
}

// UpdateTaxRate replaces the three tax components
// @Summary      Update tax rate
// @Tags         tax-rates
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                           true  "Tax rate ID"
// @Param        payload  body      service.UpdateTaxRateRequest  true  "Tax components"
// @Success      200      {object}  response.Response{data=service.TaxRateResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/tax-rates/{id} [put]
func (h *TaxRateHandler) UpdateTaxRate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	rate, err := h.taxRateService.UpdateTaxRate(c.Request.Context(), id, req, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rate))
}

// DeleteTaxRate godoc
// @Summary      Delete tax rate
// @Tags         tax-rates
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Tax rate ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/tax-rates/{id} [delete]
func (h *TaxRateHandler) DeleteTaxRate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.taxRateService.DeleteTaxRate(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Tax rate deleted successfully"))
}
