package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/soketoanvn/vn_ledger_app/internal/core/ports/services"
	"github.com/soketoanvn/vn_ledger_app/internal/dto"
)

// closingHandler triggers year-end closing.
type closingHandler struct {
	closingSvc portssvc.ClosingSvcFacade
}

func newClosingHandler(closingSvc portssvc.ClosingSvcFacade) *closingHandler {
	return &closingHandler{closingSvc: closingSvc}
}

// registerClosingRoutes registers the year-end closing route.
func registerClosingRoutes(group *gin.RouterGroup, closingSvc portssvc.ClosingSvcFacade) {
	h := newClosingHandler(closingSvc)
	group.POST("/closing/:year", h.closeYear)
}

func (h *closingHandler) closeYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1900 || year > 9999 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid year"})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	result, err := h.closingSvc.CloseYear(c.Request.Context(), year, userID)
	if err != nil {
		respondError(c, err, "Failed to close year")
		return
	}

	entries := make([]dto.EntryResponse, 0, len(result.Entries))
	for _, e := range result.Entries {
		entries = append(entries, dto.ToEntryResponse(e))
	}
	c.JSON(http.StatusOK, gin.H{
		"year":           result.Year,
		"entries":        entries,
		"nothingToClose": result.NothingToClose,
	})
}
