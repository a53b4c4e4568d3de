package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/soketoanvn/vn_ledger_app/internal/core/ports/services"
	"github.com/soketoanvn/vn_ledger_app/internal/dto"
	"github.com/soketoanvn/vn_ledger_app/internal/middleware"
)

// entryHandler handles HTTP requests for journal entries.
type entryHandler struct {
	journalSvc portssvc.JournalSvcFacade
}

func newEntryHandler(journalSvc portssvc.JournalSvcFacade) *entryHandler {
	return &entryHandler{journalSvc: journalSvc}
}

// registerEntryRoutes registers journal entry routes.
func registerEntryRoutes(group *gin.RouterGroup, journalSvc portssvc.JournalSvcFacade) {
	h := newEntryHandler(journalSvc)

	entries := group.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.PUT("/:entryID", h.updateEntry)
		entries.DELETE("/:entryID", h.deleteEntry)
		entries.POST("/:entryID/post", h.postEntry)
		entries.POST("/:entryID/unpost", h.unpostEntry)
	}
}

func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind entry payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	entry, err := h.journalSvc.CreateEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *entryHandler) getEntry(c *gin.Context) {
	entry, err := h.journalSvc.GetEntry(c.Request.Context(), c.Param("entryID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *entryHandler) listEntries(c *gin.Context) {
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.journalSvc.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponses(entries))
}

func (h *entryHandler) updateEntry(c *gin.Context) {
	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	entry, err := h.journalSvc.UpdateEntry(c.Request.Context(), c.Param("entryID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *entryHandler) deleteEntry(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.journalSvc.DeleteEntry(c.Request.Context(), c.Param("entryID"), userID); err != nil {
		respondError(c, err, "Failed to delete entry")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *entryHandler) postEntry(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	entry, err := h.journalSvc.PostEntry(c.Request.Context(), c.Param("entryID"), userID)
	if err != nil {
		respondError(c, err, "Failed to post entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *entryHandler) unpostEntry(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	entry, err := h.journalSvc.UnpostEntry(c.Request.Context(), c.Param("entryID"), userID)
	if err != nil {
		respondError(c, err, "Failed to unpost entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}
