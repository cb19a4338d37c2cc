package models

import (
	"fmt"
	"time"
)

// RepeatFrequency represents how often a schedule re-fires
type RepeatFrequency string

const (
	FrequencyNone    RepeatFrequency = "none"
	FrequencyDaily   RepeatFrequency = "daily"
	FrequencyWeekly  RepeatFrequency = "weekly"
	FrequencyMonthly RepeatFrequency = "monthly"
)

// ValidFrequency checks if a repeat frequency is supported
func ValidFrequency(f RepeatFrequency) bool {
	switch f {
	case FrequencyNone, FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// AnnouncementSchedule binds a recurrence rule to one announcement
type AnnouncementSchedule struct {
	ID             string          `json:"id" db:"id"`
	AnnouncementID string          `json:"announcement_id" db:"announcement_id"`
	NextRunAt      *time.Time      `json:"next_run_at,omitempty" db:"next_run_at"`
	Frequency      RepeatFrequency `json:"frequency" db:"frequency"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// Validate checks if the schedule fields are valid
func (s *AnnouncementSchedule) Validate() error {
	if s.AnnouncementID == "" {
		return fmt.Errorf("announcement ID is required")
	}
	if s.NextRunAt == nil {
		return fmt.Errorf("next run time is required")
	}
	if !ValidFrequency(s.Frequency) {
		return fmt.Errorf("invalid frequency: must be one of none, daily, weekly, monthly")
	}
	return nil
}

// NextOccurrence computes the run after the current one, advancing from the
// stored next-run time rather than from now so recurring schedules do not
// drift. Fire-once schedules return nil.
func (s *AnnouncementSchedule) NextOccurrence() *time.Time {
	if s.NextRunAt == nil {
		return nil
	}
	var next time.Time
	switch s.Frequency {
	case FrequencyDaily:
		next = s.NextRunAt.AddDate(0, 0, 1)
	case FrequencyWeekly:
		next = s.NextRunAt.AddDate(0, 0, 7)
	case FrequencyMonthly:
		next = s.NextRunAt.AddDate(0, 1, 0)
	default:
		return nil
	}
	return &next
}

// IsDue checks if the schedule should fire at the given time
func (s *AnnouncementSchedule) IsDue(now time.Time) bool {
	return s.NextRunAt != nil && !s.NextRunAt.After(now)
}
