package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
)

type createProjectRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"start_date" binding:"required"`
	EndDate     *time.Time `json:"end_date"`
	Status      string     `json:"status"`
	MemberIDs   []string   `json:"member_ids"`
}

func (h *Handler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}

	status := domain.ProjectStatus(req.Status)
	if req.Status != "" && !status.Valid() {
		badRequest(c, "Invalid project status")
		return
	}

	in := domain.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     requesterID(c),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      status,
	}

	var (
		project *domain.Project
		err     error
	)
	if len(req.MemberIDs) > 0 {
		project, err = h.projects.CreateWithInitialMembers(c.Request.Context(), in, req.MemberIDs)
	} else {
		project, err = h.projects.Create(c.Request.Context(), in)
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// ListProjects возвращает проекты пользователя; ?include_teams=true
// добавляет проекты, доступные через команды
func (h *Handler) ListProjects(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		projects []domain.Project
		err      error
	)
	if c.Query("include_teams") == "true" {
		projects, err = h.projects.ListForUserIncludingTeams(ctx, requesterID(c))
	} else {
		projects, err = h.projects.ListForUser(ctx, requesterID(c))
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) GetProject(c *gin.Context) {
	project, err := h.projects.Get(c.Request.Context(), c.Param("id"), requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

type updateProjectRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Status      *string    `json:"status"`
}

func (h *Handler) UpdateProject(c *gin.Context) {
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}

	patch := domain.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.Status != nil {
		status := domain.ProjectStatus(*req.Status)
		if !status.Valid() {
			badRequest(c, "Invalid project status")
			return
		}
		patch.Status = &status
	}

	project, err := h.projects.Update(c.Request.Context(), c.Param("id"), patch, requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), c.Param("id"), requesterID(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListProjectMembers(c *gin.Context) {
	members, err := h.projects.ListMembers(c.Request.Context(), c.Param("id"), requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *Handler) ListProjectTasks(c *gin.Context) {
	tasks, err := h.tasks.ListForProject(c.Request.Context(), c.Param("id"), requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) GetProjectTimeline(c *gin.Context) {
	timeline, err := h.timeline.ProjectTimeline(c.Request.Context(), c.Param("id"), requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, timeline)
}

// GetProjectWorkload - агрегат часов по проекту за период
func (h *Handler) GetProjectWorkload(c *gin.Context) {
	from, ok := parseDateQuery(c, "start_date")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "end_date")
	if !ok {
		return
	}

	ok2, err := h.projects.HasAccess(c.Request.Context(), c.Param("id"), requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if !ok2 {
		handleServiceError(c, domain.ErrAccessDenied)
		return
	}

	summary, err := h.workload.SummarizeTeam(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
