// File: handlers/slots.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotsmith/models"
	"slotsmith/services/scheduling"
	"slotsmith/utils"
)

const dateLayout = "2006-01-02"

// SlotsHandler serves the public slot query endpoint.
type SlotsHandler struct {
	Engine scheduling.Engine
}

func NewSlotsHandler(engine scheduling.Engine) *SlotsHandler {
	return &SlotsHandler{Engine: engine}
}

// GetSlots handles GET /api/slots?type_id=...&date=YYYY-MM-DD&destination=...
func (h *SlotsHandler) GetSlots(c *gin.Context) {
	logger := utils.GetLogger()

	typeID := c.Query("type_id")
	if typeID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing type_id", "type_id query parameter is required")
		return
	}
	day, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date", "date must be formatted YYYY-MM-DD")
		return
	}
	destination := c.Query("destination")

	slots, err := h.Engine.ComputeSlots(c.Request.Context(), typeID, day, destination)
	if err != nil {
		if errors.Is(err, scheduling.ErrUnknownAppointmentType) {
			utils.JSONError(c, http.StatusNotFound, "Unknown appointment type", typeID)
			return
		}
		// Backend trouble should read as "nothing available" to visitors,
		// not as an outage.
		logger.Error("Slot computation failed",
			zap.String("type_id", typeID),
			zap.String("date", c.Query("date")),
			zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"date": c.Query("date"), "slots": []models.Slot{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": c.Query("date"), "slots": slots})
}
