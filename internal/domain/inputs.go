package domain

import "time"

// UnknownUserName подставляется вместо имени, когда обогащение данных о
// пользователе не удалось. Такие сбои не фатальны для основной сущности.
const UnknownUserName = "Unknown User"

// UserPatch - частичное обновление пользователя (nil = поле не трогаем)
type UserPatch struct {
	Name  *string
	Email *string
}

type CreateProjectInput struct {
	Name        string
	Description string
	OwnerID     string
	StartDate   time.Time
	EndDate     *time.Time
	Status      ProjectStatus
}

type ProjectPatch struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *ProjectStatus
}

type CreateTaskInput struct {
	Title          string
	Description    string
	ProjectID      string
	AssigneeID     *string
	Status         TaskStatus
	Priority       TaskPriority
	StartDate      *time.Time
	EndDate        *time.Time
	EstimatedHours *float64
	Dependencies   []string
}

// TaskPatch - частичное обновление задачи. AssigneeID со значением ""
// трактуется как снятие исполнителя; Dependencies с пустым слайсом -
// как очистка списка зависимостей.
type TaskPatch struct {
	Title          *string
	Description    *string
	AssigneeID     *string
	Status         *TaskStatus
	Priority       *TaskPriority
	StartDate      *time.Time
	EndDate        *time.Time
	EstimatedHours *float64
	ActualHours    *float64
	Dependencies   *[]string
}

type CreateTeamInput struct {
	Name        string
	Description string
}

type TeamPatch struct {
	Name        *string
	Description *string
}

// ProjectMemberView - членство с подгруженными данными пользователя
type ProjectMemberView struct {
	ProjectMember
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email,omitempty"`
}

// TeamMemberView - членство в команде с данными пользователя
type TeamMemberView struct {
	TeamMember
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email,omitempty"`
}

// CommentView - комментарий с именем автора (пустое, если автор не нашелся)
type CommentView struct {
	TaskComment
	AuthorName string `json:"author_name,omitempty"`
}

// CommentPage - усеченный список комментариев с флагом наличия продолжения
type CommentPage struct {
	Comments []CommentView `json:"comments"`
	HasMore  bool          `json:"has_more"`
}

// ProjectHours - часы пользователя по одному проекту за период
type ProjectHours struct {
	ProjectID      string  `json:"project_id"`
	AllocatedHours float64 `json:"allocated_hours"`
	ActualHours    float64 `json:"actual_hours"`
}

// UserWorkloadSummary - агрегат часов пользователя за период с разбивкой
// по проектам
type UserWorkloadSummary struct {
	UserID              string         `json:"user_id"`
	UserName            string         `json:"user_name"`
	StartDate           time.Time      `json:"start_date"`
	EndDate             time.Time      `json:"end_date"`
	TotalAllocatedHours float64        `json:"total_allocated_hours"`
	TotalActualHours    float64        `json:"total_actual_hours"`
	Projects            []ProjectHours `json:"projects"`
}

// MemberHours - часы одного участника проекта за период
type MemberHours struct {
	UserID         string  `json:"user_id"`
	UserName       string  `json:"user_name"`
	AllocatedHours float64 `json:"allocated_hours"`
	ActualHours    float64 `json:"actual_hours"`
}

// TeamWorkloadSummary - агрегат часов по проекту с разбивкой по людям
type TeamWorkloadSummary struct {
	ProjectID           string        `json:"project_id"`
	StartDate           time.Time     `json:"start_date"`
	EndDate             time.Time     `json:"end_date"`
	TotalAllocatedHours float64       `json:"total_allocated_hours"`
	Members             []MemberHours `json:"members"`
}

// ProjectShare - доля проекта в загрузке пользователя
type ProjectShare struct {
	ProjectID      string  `json:"project_id"`
	AllocatedHours float64 `json:"allocated_hours"`
	Percent        float64 `json:"percent"`
}

// WorkloadDistribution - скользящая 30-дневная раскладка загрузки по
// проектам в процентах от недельной емкости 40 часов
type WorkloadDistribution struct {
	UserID   string         `json:"user_id"`
	From     time.Time      `json:"from"`
	To       time.Time      `json:"to"`
	Projects []ProjectShare `json:"projects"`
}

// CapacityInfo - емкость и утилизация пользователя за период
type CapacityInfo struct {
	UserID         string    `json:"user_id"`
	UserName       string    `json:"user_name"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	TotalCapacity  float64   `json:"total_capacity"`
	AllocatedHours float64   `json:"allocated_hours"`
	AvailableHours float64   `json:"available_hours"`
	Utilization    float64   `json:"utilization"`
	OverAllocated  bool      `json:"over_allocated"`
}

// AllocateInput - запись часов; AllocatedHours nil = 8 часов по умолчанию
type AllocateInput struct {
	UserID         string
	ProjectID      string
	TaskID         string
	Date           time.Time
	AllocatedHours *float64
	ActualHours    *float64
}

// AssignOptions - параметры назначения с автоаллокацией
type AssignOptions struct {
	Strategy           DistributionStrategy
	CustomDistribution []float64
	AutoAllocate       bool
}

// AssigneeSuggestion - кандидат в исполнители с оценкой
type AssigneeSuggestion struct {
	UserID       string  `json:"user_id"`
	UserName     string  `json:"user_name"`
	Utilization  float64 `json:"utilization"`
	Availability float64 `json:"availability"`
	Score        float64 `json:"score"`
}

// AssignmentImpact - прогноз загрузки исполнителя после назначения
type AssignmentImpact struct {
	UserID         string  `json:"user_id"`
	CurrentHours   float64 `json:"current_hours"`
	AddedHours     float64 `json:"added_hours"`
	ProjectedHours float64 `json:"projected_hours"`
	Capacity       float64 `json:"capacity"`
	Utilization    float64 `json:"utilization"`
	OverAllocated  bool    `json:"over_allocated"`
}

// TimelineRow - строка диаграммы Ганта
type TimelineRow struct {
	TaskID       string     `json:"task_id"`
	Title        string     `json:"title"`
	Status       TaskStatus `json:"status"`
	Progress     int        `json:"progress"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	AssigneeID   *string    `json:"assignee_id,omitempty"`
	AssigneeName string     `json:"assignee_name,omitempty"`
	Dependencies []string   `json:"dependencies"`
}

// ProjectTimeline - таймлайн одного проекта
type ProjectTimeline struct {
	ProjectID   string        `json:"project_id"`
	ProjectName string        `json:"project_name"`
	Rows        []TimelineRow `json:"rows"`
}
