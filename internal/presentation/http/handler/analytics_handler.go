package handler

import (
	"fmt"
	"time"

	"github.com/daftar-app/daftar-api/internal/application/service"
	"github.com/daftar-app/daftar-api/internal/domain/analytics"
	"github.com/daftar-app/daftar-api/internal/infrastructure/export"
	"github.com/daftar-app/daftar-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// AnalyticsHandler handles analytics report and export HTTP requests
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	exporter         *export.ExcelExporter
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService, exporter *export.ExcelExporter) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		exporter:         exporter,
	}
}

// Report handles getting the financial report for a range
func (h *AnalyticsHandler) Report(c *gin.Context) {
	r, err := analytics.ParseRange(c.Query("range"))
	if err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.analyticsService.GetReport(c.Request.Context(), r, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report generated successfully", report)
}

// Export handles downloading the financial report as an XLSX workbook
func (h *AnalyticsHandler) Export(c *gin.Context) {
	r, err := analytics.ParseRange(c.Query("range"))
	if err != nil {
		response.Error(c, err)
		return
	}

	now := time.Now()
	report, err := h.analyticsService.GetReport(c.Request.Context(), r, now)
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := h.exporter.Export(report, now)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("report-%s-%s.xlsx", r, now.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
