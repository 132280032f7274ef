package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	defaultCommentLimit = 50
	maxCommentLength    = 1000
)

// validateCommentContent проверяет содержимое до передачи в сервис:
// пустой после обрезки текст и превышение лимита отклоняются здесь
func validateCommentContent(c *gin.Context, content string) bool {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		badRequest(c, "Comment content cannot be empty")
		return false
	}
	if len(trimmed) > maxCommentLength {
		badRequest(c, "Comment content cannot exceed 1000 characters")
		return false
	}
	return true
}

// ListTaskComments возвращает усеченный список с флагом has_more
func (h *Handler) ListTaskComments(c *gin.Context) {
	limit := defaultCommentLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			badRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	page, err := h.comments.ListTruncated(c.Request.Context(), c.Param("id"), requesterID(c), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) CreateComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}
	if !validateCommentContent(c, req.Content) {
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), c.Param("id"), req.Content, requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *Handler) GetComment(c *gin.Context) {
	comment, err := h.comments.Get(c.Request.Context(), c.Param("id"), requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *Handler) UpdateComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}
	if !validateCommentContent(c, req.Content) {
		return
	}

	comment, err := h.comments.Update(c.Request.Context(), c.Param("id"), req.Content, requesterID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *Handler) DeleteComment(c *gin.Context) {
	if err := h.comments.Delete(c.Request.Context(), c.Param("id"), requesterID(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
