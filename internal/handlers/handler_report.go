package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/soketoanvn/vn_ledger_app/internal/core/ports/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// reportHandler serves the statutory reports.
type reportHandler struct {
	reportingSvc portssvc.ReportingSvcFacade
}

func newReportHandler(reportingSvc portssvc.ReportingSvcFacade) *reportHandler {
	return &reportHandler{reportingSvc: reportingSvc}
}

// registerReportRoutes registers report routes.
func registerReportRoutes(group *gin.RouterGroup, reportingSvc portssvc.ReportingSvcFacade) {
	h := newReportHandler(reportingSvc)

	reports := group.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/trial-balance/xlsx", h.trialBalanceXLSX)
		reports.GET("/balance-sheet", h.balanceSheet)
		reports.GET("/balance-sheet/xlsx", h.balanceSheetXLSX)
		reports.GET("/income-statement", h.incomeStatement)
		reports.GET("/cash-flow", h.cashFlow)
	}
}

func (h *reportHandler) trialBalance(c *gin.Context) {
	asOf, ok := parseDateQuery(c, "asOf", time.Now().UTC())
	if !ok {
		return
	}
	rows, err := h.reportingSvc.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, err, "Failed to generate trial balance")
		return
	}
	c.JSON(http.StatusOK, gin.H{"asOf": asOf.Format("2006-01-02"), "rows": rows})
}

func (h *reportHandler) trialBalanceXLSX(c *gin.Context) {
	asOf, ok := parseDateQuery(c, "asOf", time.Now().UTC())
	if !ok {
		return
	}
	data, err := h.reportingSvc.ExportTrialBalanceXLSX(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, err, "Failed to export trial balance")
		return
	}
	filename := "trial-balance-" + asOf.Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *reportHandler) balanceSheet(c *gin.Context) {
	asOf, ok := parseDateQuery(c, "asOf", time.Now().UTC())
	if !ok {
		return
	}
	report, err := h.reportingSvc.BalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, err, "Failed to generate balance sheet")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportHandler) balanceSheetXLSX(c *gin.Context) {
	asOf, ok := parseDateQuery(c, "asOf", time.Now().UTC())
	if !ok {
		return
	}
	data, err := h.reportingSvc.ExportBalanceSheetXLSX(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, err, "Failed to export balance sheet")
		return
	}
	filename := "balance-sheet-" + asOf.Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *reportHandler) incomeStatement(c *gin.Context) {
	from, to, ok := parseRangeQuery(c)
	if !ok {
		return
	}
	report, err := h.reportingSvc.IncomeStatement(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err, "Failed to generate income statement")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportHandler) cashFlow(c *gin.Context) {
	from, to, ok := parseRangeQuery(c)
	if !ok {
		return
	}
	report, err := h.reportingSvc.CashFlow(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err, "Failed to generate cash flow statement")
		return
	}
	c.JSON(http.StatusOK, report)
}
