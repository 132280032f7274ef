package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
)

type createTaskRequest struct {
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	ProjectID      string     `json:"project_id" binding:"required"`
	AssigneeID     *string    `json:"assignee_id"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	EstimatedHours *float64   `json:"estimated_hours"`
	Dependencies   []string   `json:"dependencies"`
}

func (h *Handler) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}

	status := domain.TaskStatus(req.Status)
	if req.Status != "" && !status.Valid() {
		badRequest(c, "Invalid task status")
		return
	}
	priority := domain.TaskPriority(req.Priority)
	if req.Priority != "" && !priority.Valid() {
		badRequest(c, "Invalid task priority")
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), domain.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		ProjectID:      req.ProjectID,
		AssigneeID:     req.AssigneeID,
		Status:         status,
		Priority:       priority,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		EstimatedHours: req.EstimatedHours,
		Dependencies:   req.Dependencies,
	}, requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c *gin.Context) {
	task, err := h.tasks.Get(c.Request.Context(), c.Param("id"), requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

type updateTaskRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	AssigneeID     *string    `json:"assignee_id"`
	Status         *string    `json:"status"`
	Priority       *string    `json:"priority"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	EstimatedHours *float64   `json:"estimated_hours"`
	ActualHours    *float64   `json:"actual_hours"`
	Dependencies   *[]string  `json:"dependencies"`
}

func (h *Handler) UpdateTask(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}

	patch := domain.TaskPatch{
		Title:          req.Title,
		Description:    req.Description,
		AssigneeID:     req.AssigneeID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		Dependencies:   req.Dependencies,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		if !status.Valid() {
			badRequest(c, "Invalid task status")
			return
		}
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		if !priority.Valid() {
			badRequest(c, "Invalid task priority")
			return
		}
		patch.Priority = &priority
	}

	task, err := h.tasks.Update(c.Request.Context(), c.Param("id"), patch, requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	if err := h.tasks.Delete(c.Request.Context(), c.Param("id"), requesterID(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAssignedTasks - задачи, назначенные текущему пользователю
func (h *Handler) ListAssignedTasks(c *gin.Context) {
	tasks, err := h.tasks.ListForAssignee(c.Request.Context(), requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

type assignTaskRequest struct {
	AssigneeID         string    `json:"assignee_id" binding:"required"`
	Strategy           string    `json:"strategy"`
	CustomDistribution []float64 `json:"custom_distribution"`
	AutoAllocate       bool      `json:"auto_allocate"`
}

// AssignTask переназначает исполнителя, при необходимости раскладывая
// оценку задачи по дням
func (h *Handler) AssignTask(c *gin.Context) {
	var req assignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}

	task, err := h.assignment.AssignWithAllocation(c.Request.Context(), c.Param("id"), req.AssigneeID, requesterID(c), domain.AssignOptions{
		Strategy:           domain.DistributionStrategy(req.Strategy),
		CustomDistribution: req.CustomDistribution,
		AutoAllocate:       req.AutoAllocate,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// SuggestAssignees ранжирует кандидатов из ?candidates=id1,id2 по
// доступности на интервале задачи
func (h *Handler) SuggestAssignees(c *gin.Context) {
	raw := c.Query("candidates")
	if raw == "" {
		badRequest(c, "Missing query parameter: candidates")
		return
	}
	candidateIDs := strings.Split(raw, ",")

	suggestions, err := h.assignment.SuggestAssignees(c.Request.Context(), c.Param("id"), requesterID(c), candidateIDs)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

// PreviewAssignmentImpact показывает, как назначение изменит загрузку
// кандидата
func (h *Handler) PreviewAssignmentImpact(c *gin.Context) {
	assigneeID := c.Query("assignee_id")
	if assigneeID == "" {
		badRequest(c, "Missing query parameter: assignee_id")
		return
	}

	impact, err := h.assignment.PreviewImpact(c.Request.Context(), c.Param("id"), assigneeID, requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, impact)
}

type moveTaskRequest struct {
	StartDate time.Time `json:"start_date" binding:"required"`
}

// MoveTask переносит дату начала задачи с проверкой зависимостей
func (h *Handler) MoveTask(c *gin.Context) {
	var req moveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}

	task, err := h.timeline.MoveTask(c.Request.Context(), c.Param("id"), req.StartDate, requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}
