package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/soketoanvn/vn_ledger_app/internal/core/ports/services"
	"github.com/soketoanvn/vn_ledger_app/internal/dto"
)

// periodHandler handles HTTP requests for accounting periods.
type periodHandler struct {
	periodSvc portssvc.PeriodSvcFacade
}

func newPeriodHandler(periodSvc portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{periodSvc: periodSvc}
}

// registerPeriodRoutes registers period routes.
func registerPeriodRoutes(group *gin.RouterGroup, periodSvc portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodSvc)

	periods := group.Group("/periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/:periodID", h.getPeriod)
		periods.POST("/:periodID/lock", h.lockPeriod)
		periods.POST("/:periodID/unlock", h.unlockPeriod)
	}
}

func (h *periodHandler) createPeriod(c *gin.Context) {
	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	period, err := h.periodSvc.CreatePeriod(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create period")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

func (h *periodHandler) getPeriod(c *gin.Context) {
	period, err := h.periodSvc.GetPeriod(c.Request.Context(), c.Param("periodID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

func (h *periodHandler) listPeriods(c *gin.Context) {
	periods, err := h.periodSvc.ListPeriods(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list periods")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponses(periods))
}

func (h *periodHandler) lockPeriod(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	period, err := h.periodSvc.LockPeriod(c.Request.Context(), c.Param("periodID"), userID)
	if err != nil {
		respondError(c, err, "Failed to lock period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

func (h *periodHandler) unlockPeriod(c *gin.Context) {
	var req dto.UnlockPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unlock justification is required"})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	period, err := h.periodSvc.UnlockPeriod(c.Request.Context(), c.Param("periodID"), req.Reason, userID)
	if err != nil {
		respondError(c, err, "Failed to unlock period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}
