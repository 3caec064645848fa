package handler

import (
	"net/http"

	"fuelprice/internal/middleware"
	"fuelprice/internal/service"
	"fuelprice/pkg/response"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService service.CatalogService
	auth           *middleware.Auth
}

func NewCatalogHandler(catalogService service.CatalogService, auth *middleware.Auth) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, auth: auth}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	read := h.auth.RequireRole(readRoles...)
	write := h.auth.RequireRole(writeRoles...)

	provinces := router.Group("/api/provinces")
	{
		provinces.GET("", read, h.ListProvinces)
		provinces.POST("", write, h.CreateProvince)
	}

	locations := router.Group("/api/locations")
	{
		locations.GET("", read, h.ListLocations)
		locations.POST("", write, h.CreateLocation)
		locations.PUT("/:id", write, h.UpdateLocation)
		locations.DELETE("/:id", write, h.DeleteLocation)
	}

	fuelTypes := router.Group("/api/fuel-types")
	{
		fuelTypes.GET("", read, h.ListFuelTypes)
		fuelTypes.POST("", write, h.CreateFuelType)
	}
}

// ListProvinces godoc
// @Summary      List provinces
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.ProvinceResponse}
// @Router       /api/provinces [get]
func (h *CatalogHandler) ListProvinces(c *gin.Context) {
	provinces, err := h.catalogService.ListProvinces(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, provinces))
}

// CreateProvince godoc
// @Summary      Create province
// @Tags         catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateProvinceRequest  true  "Province"
// @Success      201      {object}  response.Response{data=service.ProvinceResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/provinces [post]
func (h *CatalogHandler) CreateProvince(c *gin.Context) {
	var req service.CreateProvinceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	province, err := h.catalogService.CreateProvince(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, province))
}

// ListLocations godoc
// @Summary      List locations
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.LocationResponse}
// @Router       /api/locations [get]
func (h *CatalogHandler) ListLocations(c *gin.Context) {
	locations, err := h.catalogService.ListLocations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, locations))
}

// CreateLocation godoc
// @Summary      Create location
// @Description  The name must match the Location column of the rack price feed exactly
// @Tags         catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LocationRequest  true  "Location"
// @Success      201      {object}  response.Response{data=service.LocationResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/locations [post]
func (h *CatalogHandler) CreateLocation(c *gin.Context) {
	var req service.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	location, err := h.catalogService.CreateLocation(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, location))
}

// UpdateLocation godoc
// @Summary      Update location
// @Tags         catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                      true  "Location ID"
// @Param        payload  body      service.LocationRequest  true  "Location"
// @Success      200      {object}  response.Response{data=service.LocationResponse}
// @Failure      404      {object}  response.Response
// @Router       /api/locations/{id} [put]
func (h *CatalogHandler) UpdateLocation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	location, err := h.catalogService.UpdateLocation(c.Request.Context(), id, req, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, location))
}

// DeleteLocation godoc
// @Summary      Delete location
// @Description  Refused with 409 while rack prices reference the location
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Location ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/locations/{id} [delete]
func (h *CatalogHandler) DeleteLocation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.catalogService.DeleteLocation(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Location deleted successfully"))
}

// ListFuelTypes godoc
// @Summary      List fuel types
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.FuelTypeResponse}
// @Router       /api/fuel-types [get]
func (h *CatalogHandler) ListFuelTypes(c *gin.Context) {
	fuelTypes, err := h.catalogService.ListFuelTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, fuelTypes))
}

// CreateFuelType godoc
// @Summary      Create fuel type
// @Tags         catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateFuelTypeRequest  true  "Fuel type"
// @Success      201      {object}  response.Response{data=service.FuelTypeResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/fuel-types [post]
func (h *CatalogHandler) CreateFuelType(c *gin.Context) {
	var req service.CreateFuelTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	fuelType, err := h.catalogService.CreateFuelType(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, fuelType))
}
