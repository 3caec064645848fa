package handler

import (
	"net/http"

	"fuelprice/internal/middleware"
	"fuelprice/internal/service"
	"fuelprice/pkg/pagination"
	"fuelprice/pkg/response"

	"github.com/gin-gonic/gin"
)

type OperatorHandler struct {
	operatorService service.OperatorService
	auth            *middleware.Auth
}

func NewOperatorHandler(operatorService service.OperatorService, auth *middleware.Auth) *OperatorHandler {
	return &OperatorHandler{operatorService: operatorService, auth: auth}
}

func (h *OperatorHandler) RegisterRoutes(router *gin.RouterGroup) {
	operators := router.Group("/api/operators")
	{
		operators.GET("", h.auth.RequireRole(readRoles...), h.ListOperators)
		operators.GET("/:id", h.auth.RequireRole(readRoles...), h.GetOperator)
		operators.POST("", h.auth.RequireRole(writeRoles...), h.CreateOperator)
		operators.PUT("/:id", h.auth.RequireRole(writeRoles...), h.UpdateOperator)
		operators.DELETE("/:id", h.auth.RequireRole(writeRoles...), h.DeleteOperator)
	}
}

// ListOperators handles GET /api/operators
// @Summary      List operators
// @Description  Paginated list, optionally filtered by name or email
// @Tags         operators
// @Security     BearerAuth
// @Produce      json
// @Param        search  query     string  false  "Name or email contains"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 20)"
// @Success      200     {object}  response.Response{data=[]service.OperatorResponse}
// @Router       /api/operators [get]
func (h *OperatorHandler) ListOperators(c *gin.Context) {
	p := pagination.Parse(c)

	operators, total, err := h.operatorService.ListOperators(c.Request.Context(), c.Query("search"), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, operators, p.Page, p.Limit, total))
}

// GetOperator handles GET /api/operators/:id
// @Summary      Get operator
// @Tags         operators
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Operator ID"
// @Success      200  {object}  response.Response{data=service.OperatorResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/operators/{id} [get]
func (h *OperatorHandler) GetOperator(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	operator, err := h.operatorService.GetOperator(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, operator))
}

// CreateOperator handles POST /api/operators
// @Summary      Create operator
// @Tags         operators
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateOperatorRequest  true  "Operator"
// @Success      201      {object}  response.Response{data=service.OperatorResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/operators [post]
func (h *OperatorHandler) CreateOperator(c *gin.Context) {
	var req service.CreateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	operator, err := h.operatorService.CreateOperator(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, operator))
}

// UpdateOperator handles PUT /api/operators/:id
// @Summary      Update operator
// @Description  Only the fields present in the payload are changed
// @Tags         operators
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                            true  "Operator ID"
// @Param        payload  body      service.UpdateOperatorRequest  true  "Operator fields"
// @Success      200      {object}  response.Response{data=service.OperatorResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/operators/{id} [put]
func (h *OperatorHandler) UpdateOperator(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	operator, err := h.operatorService.UpdateOperator(c.Request.Context(), id, req, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, operator))
}

// DeleteOperator handles DELETE /api/operators/:id
// @Summary      Delete operator
// @Description  Also removes the operator's email logs
// @Tags         operators
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Operator ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/operators/{id} [delete]
func (h *OperatorHandler) DeleteOperator(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.operatorService.DeleteOperator(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Operator deleted successfully"))
}
