package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
)

// GetWorkloadSummary - часы пользователя за период по проектам;
// без ?user_id= берется текущий пользователь
func (h *Handler) GetWorkloadSummary(c *gin.Context) {
	from, ok := parseDateQuery(c, "start_date")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "end_date")
	if !ok {
		return
	}

	userID := c.Query("user_id")
	if userID == "" {
		userID = requesterID(c)
	}

	summary, err := h.workload.SummarizeUser(c.Request.Context(), userID, from, to)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type allocateRequest struct {
	UserID         string    `json:"user_id" binding:"required"`
	ProjectID      string    `json:"project_id" binding:"required"`
	TaskID         string    `json:"task_id" binding:"required"`
	Date           time.Time `json:"date" binding:"required"`
	AllocatedHours *float64  `json:"allocated_hours"`
	ActualHours    *float64  `json:"actual_hours"`
}

// Allocate записывает часы на день; без allocated_hours ставится 8
func (h *Handler) Allocate(c *gin.Context) {
	var req allocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}

	entry, err := h.workload.Allocate(c.Request.Context(), domain.AllocateInput{
		UserID:         req.UserID,
		ProjectID:      req.ProjectID,
		TaskID:         req.TaskID,
		Date:           req.Date,
		AllocatedHours: req.AllocatedHours,
		ActualHours:    req.ActualHours,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GetWorkloadDistribution - 30-дневная раскладка загрузки текущего
// пользователя по проектам
func (h *Handler) GetWorkloadDistribution(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		userID = requesterID(c)
	}

	dist, err := h.workload.Distribution(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dist)
}

// GetCapacity - емкость и утилизация пользователя за период
func (h *Handler) GetCapacity(c *gin.Context) {
	from, ok := parseDateQuery(c, "start_date")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "end_date")
	if !ok {
		return
	}

	userID := c.Query("user_id")
	if userID == "" {
		userID = requesterID(c)
	}

	info, err := h.workload.CapacityInfo(c.Request.Context(), userID, from, to)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// GetUserTimeline - таймлайны всех проектов текущего пользователя
func (h *Handler) GetUserTimeline(c *gin.Context) {
	timelines, err := h.timeline.UserTimeline(c.Request.Context(), requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, timelines)
}
