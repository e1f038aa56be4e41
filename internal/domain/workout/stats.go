package workout

import (
	"fmt"
	"time"
)

// WeeklyCompletion reports, for each day of the calendar week containing
// now (Monday first), whether any completed workout falls on that day.
func WeeklyCompletion(options []Option, now time.Time) [7]bool {
	var days [7]bool

	weekday := int(now.Weekday()+6) % 7 // Monday = 0
	weekStart := truncateToDay(now).AddDate(0, 0, -weekday)
	weekEnd := weekStart.AddDate(0, 0, 7)

	for _, opt := range options {
		if !opt.IsCompleted || opt.CompletedDate == nil {
			continue
		}
		done := *opt.CompletedDate
		if done.Before(weekStart) || !done.Before(weekEnd) {
			continue
		}
		idx := int(truncateToDay(done).Sub(weekStart).Hours() / 24)
		if idx >= 0 && idx < 7 {
			days[idx] = true
		}
	}

	return days
}

// Stats aggregates all persisted workouts.
type Stats struct {
	TotalCalories      int     `json:"total_calories"`
	TotalMinutes       int     `json:"total_minutes"`
	TotalTime          string  `json:"total_time"` // "{hours}h {minutes}m"
	TotalDistanceMiles float64 `json:"total_distance_miles"`
}

// Aggregate sums calories, time, and estimated distance across workouts.
// Distance uses the fixed per-type speed constants in miles per hour.
func Aggregate(options []Option) Stats {
	var s Stats
	for _, opt := range options {
		s.TotalCalories += opt.CaloriesBurned
		s.TotalMinutes += opt.Duration
		s.TotalDistanceMiles += opt.Type.SpeedMPH() * float64(opt.Duration) / 60
	}
	s.TotalTime = fmt.Sprintf("%dh %dm", s.TotalMinutes/60, s.TotalMinutes%60)
	return s
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
