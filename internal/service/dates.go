package service

import "time"

// normalizeDay обрезает время до полуночи UTC: все даты в планировании
// имеют дневную гранулярность
func normalizeDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func normalizeDayPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	day := normalizeDay(*t)
	return &day
}

// daysInSpan считает календарные дни в диапазоне включительно
func daysInSpan(from, to time.Time) int {
	from = normalizeDay(from)
	to = normalizeDay(to)
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}
