package storage

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
)

// Repository - GORM-реализация domain.Repository. Методы разбиты по
// файлам repository_*.go по областям.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DB дает прямой доступ к gorm.DB (нужен тестам для очистки таблиц)
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// --- Users ---

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *Repository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserBySubject возвращает nil, nil если записи нет - отсутствие
// пользователя по внешнему subject не считается ошибкой
func (r *Repository) GetUserBySubject(ctx context.Context, subject string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "subject = ?", subject).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) SaveUser(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// SearchUsers ищет подстроку без учета регистра в имени и email
func (r *Repository) SearchUsers(ctx context.Context, query string) ([]domain.User, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var users []domain.User
	err := r.db.WithContext(ctx).
		Where("lower(name) LIKE ? OR lower(email) LIKE ?", pattern, pattern).
		Order("name").
		Find(&users).Error
	return users, err
}

func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).Order("name").Find(&users).Error
	return users, err
}
