package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/soketoanvn/vn_ledger_app/internal/core/ports/services"
	"github.com/soketoanvn/vn_ledger_app/internal/dto"
)

// accountHandler serves the chart of accounts and per-account balances.
type accountHandler struct {
	chartSvc  portssvc.ChartSvcFacade
	ledgerSvc portssvc.LedgerSvcFacade
}

func newAccountHandler(chartSvc portssvc.ChartSvcFacade, ledgerSvc portssvc.LedgerSvcFacade) *accountHandler {
	return &accountHandler{chartSvc: chartSvc, ledgerSvc: ledgerSvc}
}

// registerAccountRoutes registers chart and balance routes.
func registerAccountRoutes(group *gin.RouterGroup, chartSvc portssvc.ChartSvcFacade, ledgerSvc portssvc.LedgerSvcFacade) {
	h := newAccountHandler(chartSvc, ledgerSvc)

	accounts := group.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.GET("/:code", h.getAccount)
		accounts.GET("/:code/balance", h.getBalance)
		accounts.GET("/:code/movement", h.getMovement)
	}
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	accounts := h.chartSvc.ListAccounts(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.chartSvc.GetAccount(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(&account))
}

// getBalance returns the accumulated and net balance of one account as of a
// date (defaulting to today).
func (h *accountHandler) getBalance(c *gin.Context) {
	code := c.Param("code")
	if _, err := h.chartSvc.GetAccount(c.Request.Context(), code); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	asOf, ok := parseDateQuery(c, "asOf", time.Now().UTC())
	if !ok {
		return
	}

	balance, err := h.ledgerSvc.BalanceAsOf(c.Request.Context(), code, asOf)
	if err != nil {
		respondError(c, err, "Failed to compute balance")
		return
	}
	net, err := h.ledgerSvc.NetBalanceAsOf(c.Request.Context(), code, asOf)
	if err != nil {
		respondError(c, err, "Failed to compute balance")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accountCode": code,
		"asOf":        asOf.Format("2006-01-02"),
		"debit":       balance.Debit,
		"credit":      balance.Credit,
		"net":         net,
	})
}

// getMovement returns the totals accumulated within [from, to].
func (h *accountHandler) getMovement(c *gin.Context) {
	code := c.Param("code")
	if _, err := h.chartSvc.GetAccount(c.Request.Context(), code); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	from, to, ok := parseRangeQuery(c)
	if !ok {
		return
	}

	movement, err := h.ledgerSvc.Movement(c.Request.Context(), code, from, to)
	if err != nil {
		respondError(c, err, "Failed to compute movement")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accountCode": code,
		"from":        from.Format("2006-01-02"),
		"to":          to.Format("2006-01-02"),
		"debit":       movement.Debit,
		"credit":      movement.Credit,
	})
}

// parseDateQuery reads a yyyy-mm-dd query parameter, answering 400 on a
// malformed value.
func parseDateQuery(c *gin.Context, name string, fallback time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name + " date, expected yyyy-mm-dd"})
		return time.Time{}, false
	}
	return date, true
}

// parseRangeQuery reads mandatory from/to query parameters.
func parseRangeQuery(c *gin.Context) (time.Time, time.Time, bool) {
	fromRaw, toRaw := c.Query("from"), c.Query("to")
	if fromRaw == "" || toRaw == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Both from and to query parameters are required"})
		return time.Time{}, time.Time{}, false
	}
	from, err := time.Parse("2006-01-02", fromRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid from date, expected yyyy-mm-dd"})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse("2006-01-02", toRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid to date, expected yyyy-mm-dd"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
