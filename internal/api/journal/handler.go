package journal

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindfulware/therabot/internal/api/middleware"
	"github.com/mindfulware/therabot/internal/domain"
	"github.com/mindfulware/therabot/internal/service"
)

// Handler handles journal API requests
type Handler struct {
	journalService *service.JournalService
}

// NewHandler creates a new journal handler
func NewHandler(journalService *service.JournalService) *Handler {
	return &Handler{journalService: journalService}
}

// RegisterRoutes registers journal routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/entries", h.ListEntries)
	r.GET("/entry/:date", h.GetEntry)
	r.POST("/entry/:date", h.SaveEntry)
	r.DELETE("/entry/:date", h.DeleteEntry)
}

// ListEntries returns entry summaries for the current user
func (h *Handler) ListEntries(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	entries, err := h.journalService.List(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetEntry returns the entry for a date, or an empty template
func (h *Handler) GetEntry(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	entry, isNew, err := h.journalService.Get(c.Request.Context(), user.ID, c.Param("date"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidRequest) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      entry.ID,
		"date":    entry.EntryDate,
		"mood":    entry.Mood,
		"content": entry.Content,
		"is_new":  isNew,
	})
}

// SaveEntry creates or updates the entry for a date
func (h *Handler) SaveEntry(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req domain.SaveJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	created, err := h.journalService.Save(c.Request.Context(), user.ID, c.Param("date"), &req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidRequest) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	message := "Journal entry updated successfully"
	if created {
		message = "Journal entry created successfully"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "success": true})
}

// DeleteEntry removes the entry for a date
func (h *Handler) DeleteEntry(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.journalService.Delete(c.Request.Context(), user.ID, c.Param("date")); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Journal entry deleted successfully", "success": true})
}
