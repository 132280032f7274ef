package service

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
	"github.com/Shishlyannikovvv/project-planner/internal/logger"
)

// Users - справочник пользователей. Внутренний ID генерируется при
// создании; subject приходит от внешнего identity-провайдера.
type Users struct {
	repo domain.Repository

	// Схлопывает конкурентные авто-создания одного и того же subject
	// в один запрос: все ожидающие получают результат первого.
	creating singleflight.Group
}

func NewUsers(repo domain.Repository) *Users {
	return &Users{repo: repo}
}

func (s *Users) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// GetBySubject возвращает nil без ошибки, если пользователя нет
func (s *Users) GetBySubject(ctx context.Context, subject string) (*domain.User, error) {
	return s.repo.GetUserBySubject(ctx, subject)
}

// Create идемпотентен относительно гонок: при конфликте вставки заново
// резолвим существующую запись по subject и возвращаем ее вместо ошибки
func (s *Users) Create(ctx context.Context, subject, email, name string) (*domain.User, error) {
	user := &domain.User{
		Subject: subject,
		Email:   email,
		Name:    name,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		existing, lookupErr := s.repo.GetUserBySubject(ctx, subject)
		if lookupErr == nil && existing != nil {
			logger.Debug("user create conflict recovered", "subject", subject, "user_id", existing.ID)
			return existing, nil
		}
		return nil, err
	}
	return user, nil
}

func (s *Users) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if err := s.repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Users) Search(ctx context.Context, query string) ([]domain.User, error) {
	return s.repo.SearchUsers(ctx, query)
}

func (s *Users) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}

// GetOrCreateBySubject резолвит пользователя по subject, создавая запись
// при первом обращении. Конкурентные вызовы для одного нового subject
// сходятся в одно создание.
func (s *Users) GetOrCreateBySubject(ctx context.Context, subject, email, name string) (*domain.User, error) {
	existing, err := s.repo.GetUserBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	v, err, _ := s.creating.Do(subject, func() (any, error) {
		return s.Create(ctx, subject, email, name)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.User), nil
}
