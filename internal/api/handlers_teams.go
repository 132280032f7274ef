package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
)

type createTeamRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *Handler) CreateTeam(c *gin.Context) {
	var req createTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}

	team, err := h.teams.Create(c.Request.Context(), domain.CreateTeamInput{
		Name:        req.Name,
		Description: req.Description,
	}, requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, team)
}

// ListTeams возвращает команды пользователя либо результат поиска по ?q=
func (h *Handler) ListTeams(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		teams []domain.Team
		err   error
	)
	if query := c.Query("q"); query != "" {
		teams, err = h.teams.Search(ctx, query)
	} else {
		teams, err = h.teams.ListForUser(ctx, requesterID(c))
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

func (h *Handler) GetTeam(c *gin.Context) {
	team, err := h.teams.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

type updateTeamRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *Handler) UpdateTeam(c *gin.Context) {
	var req updateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}

	team, err := h.teams.Update(c.Request.Context(), c.Param("id"), domain.TeamPatch{
		Name:        req.Name,
		Description: req.Description,
	}, requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

func (h *Handler) DeleteTeam(c *gin.Context) {
	if err := h.teams.Delete(c.Request.Context(), c.Param("id"), requesterID(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListTeamMembers(c *gin.Context) {
	members, err := h.teams.ListMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

type addTeamMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

func (h *Handler) AddTeamMember(c *gin.Context) {
	var req addTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}
	role := domain.TeamRole(req.Role)
	if !role.Valid() {
		badRequest(c, "Invalid team role")
		return
	}

	member, err := h.teams.AddMember(c.Request.Context(), c.Param("id"), req.UserID, role, requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h *Handler) RemoveTeamMember(c *gin.Context) {
	err := h.teams.RemoveMember(c.Request.Context(), c.Param("id"), c.Param("userId"), requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type updateTeamMemberRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *Handler) UpdateTeamMemberRole(c *gin.Context) {
	var req updateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}
	role := domain.TeamRole(req.Role)
	if !role.Valid() {
		badRequest(c, "Invalid team role")
		return
	}

	member, err := h.teams.UpdateMemberRole(c.Request.Context(), c.Param("id"), c.Param("userId"), role, requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

type teamProjectRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
}

// AddTeamToProject ассоциирует команду с проектом: все ее участники
// получают транзитивный доступ
func (h *Handler) AddTeamToProject(c *gin.Context) {
	var req teamProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}

	err := h.teams.AddToProject(c.Request.Context(), c.Param("id"), req.ProjectID, requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *Handler) RemoveTeamFromProject(c *gin.Context) {
	err := h.teams.RemoveFromProject(c.Request.Context(), c.Param("id"), c.Param("projectId"), requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
