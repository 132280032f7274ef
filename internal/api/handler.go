package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
	"github.com/Shishlyannikovvv/project-planner/internal/logger"
)

// Handler держит ссылки на сервисы, через которые вызывается бизнес-логика
type Handler struct {
	users      domain.UserDirectory
	projects   domain.ProjectService
	tasks      domain.TaskService
	teams      domain.TeamService
	comments   domain.CommentService
	workload   domain.WorkloadService
	assignment domain.AssignmentService
	timeline   domain.TimelineService
}

func NewHandler(
	users domain.UserDirectory,
	projects domain.ProjectService,
	tasks domain.TaskService,
	teams domain.TeamService,
	comments domain.CommentService,
	workload domain.WorkloadService,
	assignment domain.AssignmentService,
	timeline domain.TimelineService,
) *Handler {
	return &Handler{
		users:      users,
		projects:   projects,
		tasks:      tasks,
		teams:      teams,
		comments:   comments,
		workload:   workload,
		assignment: assignment,
		timeline:   timeline,
	}
}

// handleServiceError мапит доменные ошибки на HTTP-статусы
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrTeamNotFound),
		errors.Is(err, domain.ErrCommentNotFound),
		errors.Is(err, domain.ErrMemberNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAccessDenied),
		errors.Is(err, domain.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrLastOwner),
		errors.Is(err, domain.ErrDependencyViolation):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("unhandled service error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// parseDateQuery читает query-параметр формата YYYY-MM-DD
func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		badRequest(c, "Missing query parameter: "+name)
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		badRequest(c, "Invalid date in "+name+", expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return t, true
}
