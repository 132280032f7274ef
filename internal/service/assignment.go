package service

import (
	"context"
	"math"
	"sort"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
	"github.com/Shishlyannikovvv/project-planner/internal/logger"
)

// Assignment связывает назначение задач с аллокацией часов: смена
// исполнителя может автоматически разложить оценку задачи по дням.
type Assignment struct {
	repo     domain.Repository
	tasks    domain.TaskService
	workload domain.WorkloadService
}

func NewAssignment(repo domain.Repository, tasks domain.TaskService, workload domain.WorkloadService) *Assignment {
	return &Assignment{repo: repo, tasks: tasks, workload: workload}
}

// AssignWithAllocation переназначает исполнителя задачи. Если включен
// AutoAllocate и у задачи есть оценка и обе даты, оценка раскладывается
// на одну запись загрузки на каждый календарный день интервала.
func (s *Assignment) AssignWithAllocation(ctx context.Context, taskID, assigneeID, requesterID string, opts domain.AssignOptions) (*domain.Task, error) {
	task, err := s.tasks.Update(ctx, taskID, domain.TaskPatch{AssigneeID: &assigneeID}, requesterID)
	if err != nil {
		return nil, err
	}

	if !opts.AutoAllocate {
		return task, nil
	}
	if task.EstimatedHours == nil || task.StartDate == nil || task.EndDate == nil {
		logger.Debug("auto-allocation skipped: task has incomplete scheduling info", "task_id", taskID)
		return task, nil
	}

	days := daysInSpan(*task.StartDate, *task.EndDate)
	if days == 0 {
		return task, nil
	}

	hours := distributeHours(*task.EstimatedHours, days, opts.Strategy, opts.CustomDistribution)
	for i, h := range hours {
		date := task.StartDate.AddDate(0, 0, i)
		_, err := s.workload.Allocate(ctx, domain.AllocateInput{
			UserID:         assigneeID,
			ProjectID:      task.ProjectID,
			TaskID:         task.ID,
			Date:           date,
			AllocatedHours: &h,
		})
		if err != nil {
			return nil, err
		}
	}
	return task, nil
}

// distributeHours раскладывает total часов по days дням согласно стратегии.
// Сумма результата всегда равна total: остаток округления у взвешенных
// стратегий размазывается поровну по всем дням.
func distributeHours(total float64, days int, strategy domain.DistributionStrategy, custom []float64) []float64 {
	hours := make([]float64, days)

	switch strategy {
	case domain.DistributionFrontLoaded, domain.DistributionBackLoaded:
		// Линейный спад весов: days, days-1, ..., 1
		var weightSum float64
		for i := 1; i <= days; i++ {
			weightSum += float64(i)
		}
		var rounded float64
		for i := 0; i < days; i++ {
			weight := float64(days - i)
			if strategy == domain.DistributionBackLoaded {
				weight = float64(i + 1)
			}
			hours[i] = math.Round(total*weight/weightSum*100) / 100
			rounded += hours[i]
		}
		remainder := (total - rounded) / float64(days)
		for i := range hours {
			hours[i] += remainder
		}
	case domain.DistributionCustom:
		if len(custom) == days {
			copy(hours, custom)
			break
		}
		// Некорректный пользовательский массив - откат на равномерную
		fallthrough
	default:
		// even и все нераспознанные стратегии
		per := total / float64(days)
		for i := range hours {
			hours[i] = per
		}
	}
	return hours
}

// SuggestAssignees оценивает кандидатов по занятости на интервале задачи.
// score = 0.6 x доступность + 0.4 x баланс; доступность = 1 - утилизация,
// баланс равен 1 до 80% утилизации и линейно падает выше. Без полной
// информации о сроках возвращается нейтральный список по алфавиту.
func (s *Assignment) SuggestAssignees(ctx context.Context, taskID, requesterID string, candidateIDs []string) ([]domain.AssigneeSuggestion, error) {
	task, err := s.tasks.Get(ctx, taskID, requesterID)
	if err != nil {
		return nil, err
	}

	if task.StartDate == nil || task.EndDate == nil || task.EstimatedHours == nil {
		return s.neutralSuggestions(ctx, candidateIDs), nil
	}

	suggestions := make([]domain.AssigneeSuggestion, 0, len(candidateIDs))
	for _, userID := range candidateIDs {
		info, err := s.workload.CapacityInfo(ctx, userID, *task.StartDate, *task.EndDate)
		if err != nil {
			return nil, err
		}

		availability := 1 - info.Utilization
		if availability < 0 {
			availability = 0
		}
		balance := 1.0
		if info.Utilization > 0.8 {
			balance = 1 - (info.Utilization-0.8)*2.5
			if balance < 0 {
				balance = 0
			}
		}

		suggestions = append(suggestions, domain.AssigneeSuggestion{
			UserID:       userID,
			UserName:     info.UserName,
			Utilization:  info.Utilization,
			Availability: availability,
			Score:        0.6*availability + 0.4*balance,
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].UserName < suggestions[j].UserName
	})
	return suggestions, nil
}

// neutralSuggestions - ровная оценка для всех кандидатов, сортировка по
// имени; используется когда у задачи нет полного расписания
func (s *Assignment) neutralSuggestions(ctx context.Context, candidateIDs []string) []domain.AssigneeSuggestion {
	suggestions := make([]domain.AssigneeSuggestion, 0, len(candidateIDs))
	for _, userID := range candidateIDs {
		name := domain.UnknownUserName
		user, err := s.repo.GetUserByID(ctx, userID)
		if err != nil {
			logger.Warn("failed to resolve suggestion candidate", "user_id", userID, "error", err)
		} else {
			name = user.Name
		}
		suggestions = append(suggestions, domain.AssigneeSuggestion{
			UserID:       userID,
			UserName:     name,
			Availability: 1,
			Score:        0.5,
		})
	}
	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].UserName < suggestions[j].UserName
	})
	return suggestions
}

// PreviewImpact считает текущую и прогнозную загрузку кандидата на
// интервале задачи. Без полного расписания возвращается нулевой прогноз.
func (s *Assignment) PreviewImpact(ctx context.Context, taskID, assigneeID, requesterID string) (*domain.AssignmentImpact, error) {
	task, err := s.tasks.Get(ctx, taskID, requesterID)
	if err != nil {
		return nil, err
	}

	impact := &domain.AssignmentImpact{UserID: assigneeID}
	if task.StartDate == nil || task.EndDate == nil || task.EstimatedHours == nil {
		return impact, nil
	}

	summary, err := s.workload.SummarizeUser(ctx, assigneeID, *task.StartDate, *task.EndDate)
	if err != nil {
		return nil, err
	}

	impact.CurrentHours = summary.TotalAllocatedHours
	impact.AddedHours = *task.EstimatedHours
	impact.ProjectedHours = impact.CurrentHours + impact.AddedHours
	impact.Capacity = periodCapacity(*task.StartDate, *task.EndDate)
	if impact.Capacity > 0 {
		impact.Utilization = impact.ProjectedHours / impact.Capacity
	}
	impact.OverAllocated = impact.Utilization > overAllocationThreshold
	return impact, nil
}
