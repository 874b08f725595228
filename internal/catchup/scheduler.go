// Package catchup moves missed study tasks onto the next lighter day and keeps
// the queue of pending moves.
package catchup

import (
	"time"

	"github.com/rcliao/study-tracker/internal/model"
)

// DefaultWindow is how many days past the missed date are searched for a slot.
const DefaultWindow = 30

// DayTyper resolves the planned day type for a date.
type DayTyper interface {
	DayType(date time.Time) model.DayType
}

// Scheduler picks make-up dates from a schedule template.
type Scheduler struct {
	Days   DayTyper
	Window int
}

// NewScheduler returns a Scheduler over days using the default window.
func NewScheduler(days DayTyper) *Scheduler {
	return &Scheduler{Days: days, Window: DefaultWindow}
}

func (s *Scheduler) window() int {
	if s.Window <= 0 {
		return DefaultWindow
	}
	return s.Window
}

// NextSlot scans the days after from for the first off or revision day. When
// none falls inside the window it returns from + window + 1 days and false.
func (s *Scheduler) NextSlot(from time.Time) (time.Time, bool) {
	w := s.window()
	for i := 1; i <= w; i++ {
		d := from.AddDate(0, 0, i)
		if s.Days.DayType(d).IsCatchUpSlot() {
			return d, true
		}
	}
	return from.AddDate(0, 0, w+1), false
}

// FindNextAvailableDay returns the suggested make-up date for a task missed on
// from. It always returns a date strictly after from.
func (s *Scheduler) FindNextAvailableDay(from time.Time) time.Time {
	d, _ := s.NextSlot(from)
	return d
}
