// File: handlers/booking.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	appttypeRepo "slotsmith/database/repository/appttype"
	bookingRepo "slotsmith/database/repository/booking"
	"slotsmith/models"
	"slotsmith/services/scheduling"
	"slotsmith/utils"
)

// BookingHandler serves booking creation and management.
type BookingHandler struct {
	Engine   scheduling.Engine
	Bookings bookingRepo.BookingRepository
	Types    appttypeRepo.AppointmentTypeRepository
}

func NewBookingHandler(engine scheduling.Engine, bookings bookingRepo.BookingRepository, types appttypeRepo.AppointmentTypeRepository) *BookingHandler {
	return &BookingHandler{Engine: engine, Bookings: bookings, Types: types}
}

type bookingRequest struct {
	AppointmentTypeID string `json:"appointment_type_id" binding:"required"`
	Date              string `json:"date" binding:"required"`
	Start             string `json:"start" binding:"required"`
	GuestName         string `json:"guest_name" binding:"required"`
	GuestEmail        string `json:"guest_email" binding:"required"`
	GuestPhone        string `json:"guest_phone"`
	Notes             string `json:"notes"`
	Location          string `json:"location"`
}

// CreateBooking handles POST /api/bookings. The requested start is verified
// against a fresh slot computation so a stale client cannot book over a
// conflict that appeared since it loaded the page.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	logger := utils.GetLogger()

	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	day, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date", "date must be formatted YYYY-MM-DD")
		return
	}
	startMinute, err := utils.ParseClock(req.Start)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid start time", err.Error())
		return
	}

	slots, err := h.Engine.ComputeSlots(c.Request.Context(), req.AppointmentTypeID, day, req.Location)
	if err != nil {
		if errors.Is(err, scheduling.ErrUnknownAppointmentType) {
			utils.JSONError(c, http.StatusNotFound, "Unknown appointment type", req.AppointmentTypeID)
			return
		}
		logger.Error("Slot verification failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify availability"})
		return
	}
	available := false
	for _, s := range slots {
		if s.Value == req.Start {
			available = true
			break
		}
	}
	if !available {
		utils.JSONError(c, http.StatusConflict, "Slot no longer available", req.Start)
		return
	}

	st, err := h.Types.GetActive(c.Request.Context(), req.AppointmentTypeID)
	if err != nil {
		logger.Error("Failed to load appointment type for booking", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}
	at := st.Type()

	start := time.Date(day.Year(), day.Month(), day.Day(), startMinute/60, startMinute%60, 0, 0, time.UTC)
	end := start.Add(time.Duration(at.DurationMinutes) * time.Minute)

	// The slot list only reflects calendar busy data; stored bookings are
	// not on the calendar, so check them directly before inserting.
	existing, err := h.Bookings.FindOverlap(c.Request.Context(), start, end)
	if err != nil {
		logger.Error("Failed to check booking overlap", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}
	if existing != nil {
		utils.JSONError(c, http.StatusConflict, "Slot no longer available", req.Start)
		return
	}

	booking := &models.Booking{
		AppointmentTypeID: req.AppointmentTypeID,
		Start:             start,
		End:               end,
		GuestName:         req.GuestName,
		GuestEmail:        req.GuestEmail,
		GuestPhone:        req.GuestPhone,
		Notes:             req.Notes,
		Location:          st.Destination(req.Location),
		Status:            models.BookingConfirmed,
	}
	id, err := h.Bookings.Create(c.Request.Context(), booking)
	if err != nil {
		logger.Error("Failed to create booking", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}
	booking.ID = id
	c.JSON(http.StatusCreated, booking)
}

// ListBookings handles GET /api/bookings?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	from, err := time.Parse(dateLayout, c.DefaultQuery("from", time.Now().Format(dateLayout)))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid from date", "dates must be formatted YYYY-MM-DD")
		return
	}
	to, err := time.Parse(dateLayout, c.DefaultQuery("to", from.AddDate(0, 0, 30).Format(dateLayout)))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid to date", "dates must be formatted YYYY-MM-DD")
		return
	}

	bookings, err := h.Bookings.ListBetween(c.Request.Context(), from, to.AddDate(0, 0, 1))
	if err != nil {
		utils.GetLogger().Error("Failed to list bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id := c.Param("id")
	booking, err := h.Bookings.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Booking not found", id)
			return
		}
		utils.GetLogger().Error("Failed to load booking", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load booking"})
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CancelBooking handles DELETE /api/bookings/:id.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id := c.Param("id")
	if err := h.Bookings.Cancel(c.Request.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Booking not found", id)
			return
		}
		utils.GetLogger().Error("Failed to cancel booking", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
		return
	}
	c.Status(http.StatusNoContent)
}
