package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
	"github.com/Shishlyannikovvv/project-planner/internal/logger"
)

const (
	// Номинальная емкость пользователя - 40 часов в неделю
	weeklyCapacityHours = 40.0
	// Порог переаллокации - 110% емкости периода
	overAllocationThreshold = 1.1
	// Аллокация по умолчанию - полный рабочий день
	defaultAllocationHours = 8.0
)

// Workload - агрегация и запись часов по дням
type Workload struct {
	repo domain.Repository
}

func NewWorkload(repo domain.Repository) *Workload {
	return &Workload{repo: repo}
}

// periodCapacity - номинальная емкость периода: (дни/7) x 40
func periodCapacity(from, to time.Time) float64 {
	days := daysInSpan(from, to)
	return float64(days) / 7.0 * weeklyCapacityHours
}

// SummarizeUser суммирует часы пользователя за период с разбивкой по
// проектам. Неразрешимый пользователь дает нулевую сводку, а не ошибку.
func (s *Workload) SummarizeUser(ctx context.Context, userID string, from, to time.Time) (*domain.UserWorkloadSummary, error) {
	from, to = normalizeDay(from), normalizeDay(to)
	summary := &domain.UserWorkloadSummary{
		UserID:    userID,
		UserName:  domain.UnknownUserName,
		StartDate: from,
		EndDate:   to,
		Projects:  []domain.ProjectHours{},
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			logger.Warn("workload summary requested for unknown user", "user_id", userID)
			return summary, nil
		}
		return nil, err
	}
	summary.UserName = user.Name

	entries, err := s.repo.ListWorkloadByUser(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	byProject := make(map[string]*domain.ProjectHours)
	for _, e := range entries {
		ph, ok := byProject[e.ProjectID]
		if !ok {
			ph = &domain.ProjectHours{ProjectID: e.ProjectID}
			byProject[e.ProjectID] = ph
		}
		ph.AllocatedHours += e.AllocatedHours
		summary.TotalAllocatedHours += e.AllocatedHours
		if e.ActualHours != nil {
			ph.ActualHours += *e.ActualHours
			summary.TotalActualHours += *e.ActualHours
		}
	}

	for _, ph := range byProject {
		summary.Projects = append(summary.Projects, *ph)
	}
	sort.Slice(summary.Projects, func(i, j int) bool {
		return summary.Projects[i].ProjectID < summary.Projects[j].ProjectID
	})
	return summary, nil
}

// SummarizeTeam суммирует часы по проекту с разбивкой по пользователям.
// Имена подставляются best-effort.
func (s *Workload) SummarizeTeam(ctx context.Context, projectID string, from, to time.Time) (*domain.TeamWorkloadSummary, error) {
	from, to = normalizeDay(from), normalizeDay(to)
	entries, err := s.repo.ListWorkloadByProject(ctx, projectID, from, to)
	if err != nil {
		return nil, err
	}

	summary := &domain.TeamWorkloadSummary{
		ProjectID: projectID,
		StartDate: from,
		EndDate:   to,
		Members:   []domain.MemberHours{},
	}

	byUser := make(map[string]*domain.MemberHours)
	for _, e := range entries {
		mh, ok := byUser[e.UserID]
		if !ok {
			mh = &domain.MemberHours{UserID: e.UserID, UserName: domain.UnknownUserName}
			byUser[e.UserID] = mh
		}
		mh.AllocatedHours += e.AllocatedHours
		summary.TotalAllocatedHours += e.AllocatedHours
		if e.ActualHours != nil {
			mh.ActualHours += *e.ActualHours
		}
	}

	for userID, mh := range byUser {
		user, err := s.repo.GetUserByID(ctx, userID)
		if err != nil {
			logger.Warn("failed to resolve user for team workload summary",
				"project_id", projectID, "user_id", userID, "error", err)
		} else {
			mh.UserName = user.Name
		}
		summary.Members = append(summary.Members, *mh)
	}
	sort.Slice(summary.Members, func(i, j int) bool {
		return summary.Members[i].UserID < summary.Members[j].UserID
	})
	return summary, nil
}

// Allocate записывает часы на день; без явного значения ставится 8 часов.
// Повторная запись по (user, task, date) перезаписывает существующую.
func (s *Workload) Allocate(ctx context.Context, in domain.AllocateInput) (*domain.WorkloadEntry, error) {
	hours := defaultAllocationHours
	if in.AllocatedHours != nil {
		hours = *in.AllocatedHours
	}

	entry := &domain.WorkloadEntry{
		UserID:         in.UserID,
		ProjectID:      in.ProjectID,
		TaskID:         in.TaskID,
		Date:           normalizeDay(in.Date),
		AllocatedHours: hours,
		ActualHours:    in.ActualHours,
	}
	if err := s.repo.UpsertWorkloadEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Distribution - скользящая сводка за последние 30 дней в процентах от
// недельной емкости 40 часов, по проектам
func (s *Workload) Distribution(ctx context.Context, userID string) (*domain.WorkloadDistribution, error) {
	to := normalizeDay(time.Now())
	from := to.AddDate(0, 0, -29)

	summary, err := s.SummarizeUser(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	capacity := periodCapacity(from, to)
	dist := &domain.WorkloadDistribution{
		UserID:   userID,
		From:     from,
		To:       to,
		Projects: make([]domain.ProjectShare, 0, len(summary.Projects)),
	}
	for _, ph := range summary.Projects {
		share := domain.ProjectShare{
			ProjectID:      ph.ProjectID,
			AllocatedHours: ph.AllocatedHours,
		}
		if capacity > 0 {
			share.Percent = ph.AllocatedHours / capacity * 100
		}
		dist.Projects = append(dist.Projects, share)
	}
	return dist, nil
}

// CapacityInfo считает емкость, занятость и утилизацию за период.
// Неизвестный пользователь дает нулевую запись с заглушкой вместо имени.
func (s *Workload) CapacityInfo(ctx context.Context, userID string, from, to time.Time) (*domain.CapacityInfo, error) {
	from, to = normalizeDay(from), normalizeDay(to)
	info := &domain.CapacityInfo{
		UserID:    userID,
		UserName:  domain.UnknownUserName,
		StartDate: from,
		EndDate:   to,
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			logger.Warn("capacity info requested for unknown user", "user_id", userID)
			return info, nil
		}
		return nil, err
	}
	info.UserName = user.Name

	summary, err := s.SummarizeUser(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	info.TotalCapacity = periodCapacity(from, to)
	info.AllocatedHours = summary.TotalAllocatedHours
	info.AvailableHours = info.TotalCapacity - info.AllocatedHours
	if info.AvailableHours < 0 {
		info.AvailableHours = 0
	}
	if info.TotalCapacity > 0 {
		info.Utilization = info.AllocatedHours / info.TotalCapacity
	}
	info.OverAllocated = info.Utilization > overAllocationThreshold
	return info, nil
}
