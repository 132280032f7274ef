package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Статусы проекта
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusOnHold,
		ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// Статусы и приоритеты задач
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusInReview   TaskStatus = "in_review"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusBlocked    TaskStatus = "blocked"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusInReview,
		TaskStatusDone, TaskStatusBlocked:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// Роли участников проекта
type ProjectRole string

const (
	ProjectRoleOwner  ProjectRole = "owner"
	ProjectRoleAdmin  ProjectRole = "admin"
	ProjectRoleMember ProjectRole = "member"
	ProjectRoleViewer ProjectRole = "viewer"
)

func (r ProjectRole) Valid() bool {
	switch r {
	case ProjectRoleOwner, ProjectRoleAdmin, ProjectRoleMember, ProjectRoleViewer:
		return true
	}
	return false
}

// Роли участников команды
type TeamRole string

const (
	TeamRoleOwner  TeamRole = "owner"
	TeamRoleAdmin  TeamRole = "admin"
	TeamRoleMember TeamRole = "member"
)

func (r TeamRole) Valid() bool {
	switch r {
	case TeamRoleOwner, TeamRoleAdmin, TeamRoleMember:
		return true
	}
	return false
}

// Стратегии распределения часов задачи по дням
type DistributionStrategy string

const (
	DistributionEven        DistributionStrategy = "even"
	DistributionFrontLoaded DistributionStrategy = "front_loaded"
	DistributionBackLoaded  DistributionStrategy = "back_loaded"
	DistributionCustom      DistributionStrategy = "custom"
)

// User - запись справочника пользователей. Subject - стабильный
// идентификатор из внешнего identity-провайдера, отдельный от внутреннего ID.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Subject   string    `json:"-" gorm:"column:subject;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Project - проект. Владелец неявно становится участником с ролью owner.
type Project struct {
	ID          string        `json:"id" gorm:"primaryKey"`
	Name        string        `json:"name" gorm:"not null"`
	Description string        `json:"description"`
	OwnerID     string        `json:"owner_id" gorm:"index;not null"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     *time.Time    `json:"end_date,omitempty"`
	Status      ProjectStatus `json:"status" gorm:"default:planning"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProjectMember - прямое членство пользователя в проекте.
// Одна запись на пару (проект, пользователь).
type ProjectMember struct {
	ID        string      `json:"id" gorm:"primaryKey"`
	ProjectID string      `json:"project_id" gorm:"uniqueIndex:idx_project_user;not null"`
	UserID    string      `json:"user_id" gorm:"uniqueIndex:idx_project_user;not null"`
	Role      ProjectRole `json:"role" gorm:"not null"`
	JoinedAt  time.Time   `json:"joined_at"`
}

func (m *ProjectMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}
	return nil
}

// Task - задача внутри одного проекта. Dependencies - упорядоченный список
// ID задач, от которых зависит расписание этой задачи (межпроектные ссылки
// не запрещаются, циклы при записи не проверяются).
type Task struct {
	ID             string                      `json:"id" gorm:"primaryKey"`
	Title          string                      `json:"title" gorm:"not null"`
	Description    string                      `json:"description"`
	ProjectID      string                      `json:"project_id" gorm:"index;not null"`
	AssigneeID     *string                     `json:"assignee_id,omitempty" gorm:"index"`
	Status         TaskStatus                  `json:"status" gorm:"default:todo"`
	Priority       TaskPriority                `json:"priority" gorm:"default:medium"`
	StartDate      *time.Time                  `json:"start_date,omitempty"`
	EndDate        *time.Time                  `json:"end_date,omitempty"`
	EstimatedHours *float64                    `json:"estimated_hours,omitempty"`
	ActualHours    *float64                    `json:"actual_hours,omitempty"`
	Dependencies   datatypes.JSONSlice[string] `json:"dependencies"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Team - команда пользователей. Ассоциация команды с проектом дает всем
// участникам команды транзитивный доступ к проекту.
type Team struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TeamMember - членство пользователя в команде.
type TeamMember struct {
	ID       string    `json:"id" gorm:"primaryKey"`
	TeamID   string    `json:"team_id" gorm:"uniqueIndex:idx_team_user;not null"`
	UserID   string    `json:"user_id" gorm:"uniqueIndex:idx_team_user;not null"`
	Role     TeamRole  `json:"role" gorm:"not null"`
	JoinedAt time.Time `json:"joined_at"`
}

func (m *TeamMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}
	return nil
}

// ProjectTeam - ассоциация команды с проектом.
type ProjectTeam struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	ProjectID string    `json:"project_id" gorm:"uniqueIndex:idx_project_team;not null"`
	TeamID    string    `json:"team_id" gorm:"uniqueIndex:idx_project_team;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (pt *ProjectTeam) BeforeCreate(tx *gorm.DB) error {
	if pt.ID == "" {
		pt.ID = uuid.NewString()
	}
	return nil
}

// TaskComment - комментарий к задаче. Редактировать и удалять может
// только автор.
type TaskComment struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	TaskID    string    `json:"task_id" gorm:"index:idx_comment_task;not null"`
	UserID    string    `json:"user_id" gorm:"not null"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_comment_task"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *TaskComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// WorkloadEntry - запланированные/фактические часы одного пользователя по
// одной задаче за один календарный день. Date нормализуется до полуночи UTC.
// Жесткого лимита на сумму часов при записи нет - переаллокация только
// подсвечивается при чтении, но не блокируется.
type WorkloadEntry struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	UserID         string    `json:"user_id" gorm:"uniqueIndex:idx_workload_user_task_date;index:idx_workload_user_date"`
	ProjectID      string    `json:"project_id" gorm:"index"`
	TaskID         string    `json:"task_id" gorm:"uniqueIndex:idx_workload_user_task_date"`
	Date           time.Time `json:"date" gorm:"uniqueIndex:idx_workload_user_task_date;index:idx_workload_user_date"`
	AllocatedHours float64   `json:"allocated_hours"`
	ActualHours    *float64  `json:"actual_hours,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (w *WorkloadEntry) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
