package handler

import (
	"net/http"

	"fuelprice/internal/middleware"
	"fuelprice/internal/service"
	"fuelprice/pkg/pagination"
	"fuelprice/pkg/response"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the read-only views of the dashboard.
type ReportHandler struct {
	rackPrices service.RackPriceService
	emailLogs  service.EmailLogService
	dashboard  service.DashboardService
	audit      service.AuditService
	auth       *middleware.Auth
}

func NewReportHandler(
	rackPrices service.RackPriceService,
	emailLogs service.EmailLogService,
	dashboard service.DashboardService,
	audit service.AuditService,
	auth *middleware.Auth,
) *ReportHandler {
	return &ReportHandler{
		rackPrices: rackPrices,
		emailLogs:  emailLogs,
		dashboard:  dashboard,
		audit:      audit,
		auth:       auth,
	}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api")
	api.Use(h.auth.RequireRole(readRoles...))
	{
		api.GET("/rack-prices", h.ListRackPrices)
		api.GET("/email-logs", h.ListEmailLogs)
		api.GET("/dashboard", h.GetDashboard)
	}

	// Protect history logs
	router.GET("/api/audit-logs", h.auth.RequireRole(writeRoles...), h.GetAuditLogs)
}

// ListRackPrices godoc
// @Summary      List rack prices
// @Description  Prices of the given day, or the latest 20 across all days when no date is given
// @Tags         rack-prices
// @Security     BearerAuth
// @Produce      json
// @Param        date  query     string  false  "Day (YYYY-MM-DD)"
// @Success      200   {object}  response.Response{data=[]service.RackPriceResponse}
// @Failure      400   {object}  response.Response
// @Router       /api/rack-prices [get]
func (h *ReportHandler) ListRackPrices(c *gin.Context) {
	prices, err := h.rackPrices.ListRackPrices(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, prices))
}

// ListEmailLogs godoc
// @Summary      List email logs
// @Description  Most recent first
// @Tags         email-logs
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "sent or error"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 50)"
// @Success      200     {object}  response.Response{data=[]service.EmailLogResponse}
// @Failure      400     {object}  response.Response
// @Router       /api/email-logs [get]
func (h *ReportHandler) ListEmailLogs(c *gin.Context) {
	p := pagination.ParseWithDefault(c, service.DefaultEmailLogLimit)

	logs, total, err := h.emailLogs.ListEmailLogs(c.Request.Context(), c.Query("status"), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, logs, p.Page, p.Limit, total))
}

// GetDashboard godoc
// @Summary      Dashboard snapshot
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.DashboardSnapshot}
// @Router       /api/dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	snap, err := h.dashboard.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, snap))
}

// GetAuditLogs godoc
// @Summary      Get audit logs
// @Description  Who changed tax rates, operators and locations
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        action  query     string  false  "Filter by action"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 20)"
// @Success      200     {object}  response.Response{data=[]service.AuditLogResponse}
// @Router       /api/audit-logs [get]
func (h *ReportHandler) GetAuditLogs(c *gin.Context) {
	p := pagination.Parse(c)

	logs, total, err := h.audit.GetAuditLogs(c.Request.Context(), c.Query("action"), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, logs, p.Page, p.Limit, total))
}
