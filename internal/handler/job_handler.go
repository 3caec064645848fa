package handler

import (
	"fmt"
	"net/http"

	"fuelprice/internal/export"
	"fuelprice/internal/middleware"
	"fuelprice/internal/service"
	"fuelprice/pkg/response"

	"github.com/gin-gonic/gin"
)

// JobHandler exposes the two daily jobs so they can be triggered by cron or
// from the dashboard.
type JobHandler struct {
	ingest service.IngestService
	daily  service.DailyPriceService
	auth   *middleware.Auth
}

func NewJobHandler(ingest service.IngestService, daily service.DailyPriceService, auth *middleware.Auth) *JobHandler {
	return &JobHandler{ingest: ingest, daily: daily, auth: auth}
}

func (h *JobHandler) RegisterRoutes(router *gin.RouterGroup) {
	trigger := h.auth.RequireRole(writeRoles...)
	read := h.auth.RequireRole(readRoles...)

	router.GET("/api/fetch-prices", trigger, h.FetchPrices)
	router.POST("/api/fetch-prices", trigger, h.FetchPrices)

	daily := router.Group("/api/daily-prices")
	{
		daily.GET("", trigger, h.SendDailyPrices)
		daily.POST("", trigger, h.SendDailyPrices)
		daily.GET("/preview", read, h.PreviewDailyPrices)
		daily.GET("/export", read, h.ExportDailyPrices)
	}
}

// FetchPrices downloads today's rack price feed and stores it
// @Summary      Fetch rack prices
// @Description  Rows that cannot be resolved are reported in errors and skipped
// @Tags         jobs
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  service.IngestResult
// @Failure      404  {object}  response.Response
// @Router       /api/fetch-prices [post]
func (h *JobHandler) FetchPrices(c *gin.Context) {
	res, err := h.ingest.FetchAndStore(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// SendDailyPrices calculates today's prices and emails every operator
// @Summary      Send daily prices
// @Description  One email and one email log per operator; a failed send does not stop the batch
// @Tags         jobs
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  service.DailyResult
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /api/daily-prices [post]
func (h *JobHandler) SendDailyPrices(c *gin.Context) {
	res, err := h.daily.CalculateAndSend(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// PreviewDailyPrices godoc
// @Summary      Preview daily prices
// @Description  Today's calculated prices without sending anything
// @Tags         jobs
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.DailyPreview}
// @Failure      404  {object}  response.Response
// @Router       /api/daily-prices/preview [get]
func (h *JobHandler) PreviewDailyPrices(c *gin.Context) {
	preview, err := h.daily.Preview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, preview))
}

// ExportDailyPrices godoc
// @Summary      Export daily prices
// @Tags         jobs
// @Security     BearerAuth
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format  query  string  false  "xlsx (default) or pdf"
// @Success      200
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/daily-prices/export [get]
func (h *JobHandler) ExportDailyPrices(c *gin.Context) {
	file, err := h.daily.PriceSheet(c.Request.Context(), c.DefaultQuery("format", export.FormatXLSX))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
