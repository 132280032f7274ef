package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
)

// GetCurrentUser возвращает запись справочника для текущего запроса
func (h *Handler) GetCurrentUser(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

func (h *Handler) UpdateCurrentUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}

	user, err := h.users.Update(c.Request.Context(), requesterID(c), domain.UserPatch{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListUsers возвращает весь справочник либо результат поиска по ?q=
func (h *Handler) ListUsers(c *gin.Context) {
	query := c.Query("q")

	var (
		users []domain.User
		err   error
	)
	if query != "" {
		users, err = h.users.Search(c.Request.Context(), query)
	} else {
		users, err = h.users.List(c.Request.Context())
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
