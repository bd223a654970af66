// File: handlers/admin.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	appttypeRepo "slotsmith/database/repository/appttype"
	blockedRepo "slotsmith/database/repository/blocked"
	rulesRepo "slotsmith/database/repository/rules"
	"slotsmith/models"
	"slotsmith/utils"
)

// AdminHandler serves the availability configuration endpoints.
type AdminHandler struct {
	Rules   rulesRepo.RuleRepository
	Blocked blockedRepo.BlockedPeriodRepository
	Types   appttypeRepo.AppointmentTypeRepository
}

func NewAdminHandler(rules rulesRepo.RuleRepository, blocked blockedRepo.BlockedPeriodRepository, types appttypeRepo.AppointmentTypeRepository) *AdminHandler {
	return &AdminHandler{Rules: rules, Blocked: blocked, Types: types}
}

// ruleRequest is the wire form of an availability rule; times come in as
// "HH:MM" clock strings.
type ruleRequest struct {
	DayOfWeek         int    `json:"day_of_week"`
	Start             string `json:"start"`
	End               string `json:"end"`
	Active            *bool  `json:"active"`
	AppointmentTypeID string `json:"appointment_type_id"`
}

func (r *ruleRequest) toModel() (*models.AvailabilityRule, error) {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return nil, errors.New("day_of_week must be 0 (Sunday) through 6 (Saturday)")
	}
	start, err := utils.ParseClock(r.Start)
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseClock(r.End)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return nil, errors.New("start must be before end")
	}
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &models.AvailabilityRule{
		DayOfWeek:         r.DayOfWeek,
		StartMinute:       start,
		EndMinute:         end,
		Active:            active,
		AppointmentTypeID: r.AppointmentTypeID,
	}, nil
}

// ListRules handles GET /api/admin/rules.
func (h *AdminHandler) ListRules(c *gin.Context) {
	rules, err := h.Rules.ActiveRules(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to list rules", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rules"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// CreateRule handles POST /api/admin/rules.
func (h *AdminHandler) CreateRule(c *gin.Context) {
	var req ruleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	rule, err := req.toModel()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid rule", err.Error())
		return
	}
	id, err := h.Rules.Create(c.Request.Context(), rule)
	if err != nil {
		utils.GetLogger().Error("Failed to create rule", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rule"})
		return
	}
	rule.ID = id
	c.JSON(http.StatusCreated, rule)
}

// UpdateRule handles PUT /api/admin/rules/:id.
func (h *AdminHandler) UpdateRule(c *gin.Context) {
	var req ruleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	rule, err := req.toModel()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid rule", err.Error())
		return
	}
	rule.ID = c.Param("id")
	if err := h.Rules.Update(c.Request.Context(), rule); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Rule not found", rule.ID)
			return
		}
		utils.GetLogger().Error("Failed to update rule", zap.String("id", rule.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update rule"})
		return
	}
	c.JSON(http.StatusOK, rule)
}

// DeleteRule handles DELETE /api/admin/rules/:id.
func (h *AdminHandler) DeleteRule(c *gin.Context) {
	id := c.Param("id")
	if err := h.Rules.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Rule not found", id)
			return
		}
		utils.GetLogger().Error("Failed to delete rule", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rule"})
		return
	}
	c.Status(http.StatusNoContent)
}

type blockedRequest struct {
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
	Reason string    `json:"reason"`
}

// ListBlocked handles GET /api/admin/blocked.
func (h *AdminHandler) ListBlocked(c *gin.Context) {
	periods, err := h.Blocked.All(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to list blocked periods", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list blocked periods"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocked_periods": periods})
}

// CreateBlocked handles POST /api/admin/blocked.
func (h *AdminHandler) CreateBlocked(c *gin.Context) {
	var req blockedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if !req.Start.Before(req.End) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid blocked period", "start must be before end")
		return
	}
	period := &models.BlockedPeriod{Start: req.Start, End: req.End, Reason: req.Reason}
	id, err := h.Blocked.Create(c.Request.Context(), period)
	if err != nil {
		utils.GetLogger().Error("Failed to create blocked period", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create blocked period"})
		return
	}
	period.ID = id
	c.JSON(http.StatusCreated, period)
}

// DeleteBlocked handles DELETE /api/admin/blocked/:id.
func (h *AdminHandler) DeleteBlocked(c *gin.Context) {
	id := c.Param("id")
	if err := h.Blocked.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Blocked period not found", id)
			return
		}
		utils.GetLogger().Error("Failed to delete blocked period", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete blocked period"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTypes handles GET /api/admin/types.
func (h *AdminHandler) ListTypes(c *gin.Context) {
	types, err := h.Types.ListActive(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to list appointment types", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list appointment types"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment_types": types})
}

// CreateType handles POST /api/admin/types.
func (h *AdminHandler) CreateType(c *gin.Context) {
	var at models.AppointmentType
	if err := c.ShouldBindJSON(&at); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if at.DurationMinutes <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid appointment type", "duration_minutes must be positive")
		return
	}
	if at.BufferBeforeMinutes < 0 || at.BufferAfterMinutes < 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid appointment type", "buffers must not be negative")
		return
	}
	id, err := h.Types.Create(c.Request.Context(), &at)
	if err != nil {
		utils.GetLogger().Error("Failed to create appointment type", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create appointment type"})
		return
	}
	at.ID = id
	c.JSON(http.StatusCreated, at)
}

// UpdateType handles PUT /api/admin/types/:id.
func (h *AdminHandler) UpdateType(c *gin.Context) {
	var at models.AppointmentType
	if err := c.ShouldBindJSON(&at); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	at.ID = c.Param("id")
	if at.DurationMinutes <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid appointment type", "duration_minutes must be positive")
		return
	}
	if err := h.Types.Update(c.Request.Context(), &at); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Appointment type not found", at.ID)
			return
		}
		utils.GetLogger().Error("Failed to update appointment type", zap.String("id", at.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update appointment type"})
		return
	}
	c.JSON(http.StatusOK, at)
}

// DeleteType handles DELETE /api/admin/types/:id.
func (h *AdminHandler) DeleteType(c *gin.Context) {
	id := c.Param("id")
	if err := h.Types.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "Appointment type not found", id)
			return
		}
		utils.GetLogger().Error("Failed to delete appointment type", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete appointment type"})
		return
	}
	c.Status(http.StatusNoContent)
}
