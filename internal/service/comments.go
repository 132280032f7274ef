package service

import (
	"context"
	"strings"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
	"github.com/Shishlyannikovvv/project-planner/internal/logger"
)

// Comments - комментарии к задачам. Все операции сначала проверяют доступ
// к задаче (а через нее - к проекту). Мутации доступны только автору.
type Comments struct {
	repo  domain.Repository
	tasks domain.TaskService
}

func NewComments(repo domain.Repository, tasks domain.TaskService) *Comments {
	return &Comments{repo: repo, tasks: tasks}
}

func (s *Comments) List(ctx context.Context, taskID, requesterID string, limit int) ([]domain.CommentView, error) {
	if _, err := s.tasks.Get(ctx, taskID, requesterID); err != nil {
		return nil, err
	}
	comments, err := s.repo.ListComments(ctx, taskID, limit)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, comments), nil
}

// ListTruncated запрашивает limit+1 записей и отдает первые limit с
// флагом наличия продолжения
func (s *Comments) ListTruncated(ctx context.Context, taskID, requesterID string, limit int) (*domain.CommentPage, error) {
	if _, err := s.tasks.Get(ctx, taskID, requesterID); err != nil {
		return nil, err
	}
	comments, err := s.repo.ListComments(ctx, taskID, limit+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(comments) > limit
	if hasMore {
		comments = comments[:limit]
	}
	return &domain.CommentPage{
		Comments: s.enrich(ctx, comments),
		HasMore:  hasMore,
	}, nil
}

// Create сохраняет комментарий с обрезанными пробелами. Валидация длины
// и пустоты выполняется слоем выше.
func (s *Comments) Create(ctx context.Context, taskID, content, requesterID string) (*domain.TaskComment, error) {
	if _, err := s.tasks.Get(ctx, taskID, requesterID); err != nil {
		return nil, err
	}
	comment := &domain.TaskComment{
		TaskID:  taskID,
		UserID:  requesterID,
		Content: strings.TrimSpace(content),
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *Comments) Get(ctx context.Context, id, requesterID string) (*domain.CommentView, error) {
	comment, err := s.repo.GetCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.tasks.Get(ctx, comment.TaskID, requesterID); err != nil {
		return nil, err
	}
	views := s.enrich(ctx, []domain.TaskComment{*comment})
	return &views[0], nil
}

func (s *Comments) Update(ctx context.Context, id, content, requesterID string) (*domain.TaskComment, error) {
	comment, err := s.repo.GetCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.tasks.Get(ctx, comment.TaskID, requesterID); err != nil {
		return nil, err
	}
	if comment.UserID != requesterID {
		return nil, domain.ErrPermissionDenied
	}

	comment.Content = strings.TrimSpace(content)
	if err := s.repo.SaveComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *Comments) Delete(ctx context.Context, id, requesterID string) error {
	comment, err := s.repo.GetCommentByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.tasks.Get(ctx, comment.TaskID, requesterID); err != nil {
		return err
	}
	if comment.UserID != requesterID {
		return domain.ErrPermissionDenied
	}
	return s.repo.DeleteComment(ctx, id)
}

// enrich подставляет имя автора. Неразрешимый автор не фатален:
// комментарий возвращается без имени, пишется предупреждение.
func (s *Comments) enrich(ctx context.Context, comments []domain.TaskComment) []domain.CommentView {
	views := make([]domain.CommentView, 0, len(comments))
	for _, c := range comments {
		view := domain.CommentView{TaskComment: c}
		user, err := s.repo.GetUserByID(ctx, c.UserID)
		if err != nil {
			logger.Warn("failed to resolve comment author",
				"comment_id", c.ID, "user_id", c.UserID, "error", err)
		} else {
			view.AuthorName = user.Name
		}
		views = append(views, view)
	}
	return views
}
