// Package api exposes the stored properties through a thin read-only
// HTTP surface.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"cba-rental-scraper/models"
	"cba-rental-scraper/storage"
	"cba-rental-scraper/utils"
)

// listLimit caps the /properties listing.
const listLimit = 100

// Handler serves the read-only property endpoints.
type Handler struct {
	reader storage.PropertyReader
	logger *utils.Logger
}

// NewHandler creates a Handler backed by the given reader.
func NewHandler(reader storage.PropertyReader, logger *utils.Logger) *Handler {
	return &Handler{reader: reader, logger: logger}
}

// RegisterRoutes registers all property routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	props := r.Group("/properties")
	props.GET("", h.ListProperties)
	props.GET("/stats/per-room", h.StatsPerRoom)
	props.GET("/:id", h.GetProperty)
}

// GET /properties
func (h *Handler) ListProperties(c *gin.Context) {
	listings, err := h.reader.List(c.Request.Context(), listLimit)
	if err != nil {
		h.logger.Error("[api] list properties: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list properties"})
		return
	}
	if listings == nil {
		listings = []models.StoredListing{}
	}
	c.JSON(http.StatusOK, listings)
}

// GET /properties/:id
func (h *Handler) GetProperty(c *gin.Context) {
	id := c.Param("id")

	listing, err := h.reader.GetByID(c.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("property with ID %s not found", id)})
		return
	}
	if err != nil {
		h.logger.Error("[api] get property %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch property"})
		return
	}
	c.JSON(http.StatusOK, listing)
}

// GET /properties/stats/per-room
func (h *Handler) StatsPerRoom(c *gin.Context) {
	stats, err := h.reader.StatsPerRoom(c.Request.Context())
	if err != nil {
		h.logger.Error("[api] per-room stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute per-room stats"})
		return
	}
	if stats == nil {
		stats = []models.RoomStats{}
	}
	c.JSON(http.StatusOK, stats)
}
