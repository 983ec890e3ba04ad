package form

import (
	"time"

	"github.com/google/uuid"
)

// ReminderTypeDueDate is the only reminder type the form produces:
// a notification anchored to the task's due date/time.
const ReminderTypeDueDate = "due_date"

// ReminderMatchTolerance is how far a stored reminder may drift from
// one of the known alert offsets and still be recognized on the
// reverse conversion. Kept explicit: the tolerance absorbs rounding
// from clients that persisted second-granular timestamps.
const ReminderMatchTolerance = time.Minute

// leadOffset is the fixed offset of the "15-min" alert.
const leadOffset = -15 * time.Minute

// Reminder is the persisted form of a selected alert: an absolute
// timestamp computed from the task's due date, time and duration.
type Reminder struct {
	ID            string
	Type          string
	ScheduledTime time.Time
	IsEnabled     bool
}

// BaseTime combines the due date and optional "HH:MM" time into the
// anchor timestamp reminders are offset from. A task without a time
// anchors at midnight. Returns false when there is no due date or the
// values do not parse.
func BaseTime(dueDate, timeOfDay string, loc *time.Location) (time.Time, bool) {
	if dueDate == "" {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation(isoDateFormat, dueDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	if timeOfDay == "" {
		return day, true
	}
	clock, err := time.Parse(clockFormat, timeOfDay)
	if err != nil {
		return time.Time{}, false
	}
	return day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute), true
}

func alertOffset(kind AlertKind, duration int) (time.Duration, bool) {
	switch kind {
	case AlertStart:
		return 0, true
	case AlertEnd:
		return time.Duration(duration) * time.Minute, true
	case AlertLead15:
		return leadOffset, true
	default:
		return 0, false
	}
}

// AlertsToReminders computes the persisted reminders for the selected
// alert set. Without a due date there is nothing to anchor to and the
// result is empty. Unknown alert kinds are skipped.
func AlertsToReminders(alerts []AlertKind, dueDate, timeOfDay string, duration int, loc *time.Location) []Reminder {
	base, ok := BaseTime(dueDate, timeOfDay, loc)
	if !ok {
		return nil
	}
	reminders := make([]Reminder, 0, len(alerts))
	for _, kind := range alerts {
		offset, ok := alertOffset(kind, duration)
		if !ok {
			continue
		}
		reminders = append(reminders, Reminder{
			ID:            uuid.NewString(),
			Type:          ReminderTypeDueDate,
			ScheduledTime: base.Add(offset),
			IsEnabled:     true,
		})
	}
	return reminders
}

// RemindersToAlerts reconstructs the alert set from stored reminders
// by matching each enabled reminder's delta from the base time against
// the known offsets, within ReminderMatchTolerance. Reminders that
// match nothing are dropped silently; a reminder written by an older
// client with a different offset simply disappears from the checklist
// rather than breaking the form.
func RemindersToAlerts(reminders []Reminder, dueDate, timeOfDay string, duration int, loc *time.Location) []AlertKind {
	base, ok := BaseTime(dueDate, timeOfDay, loc)
	if !ok {
		return nil
	}
	var alerts []AlertKind
	for _, r := range reminders {
		if !r.IsEnabled {
			continue
		}
		delta := r.ScheduledTime.Sub(base).Round(time.Minute)
		for _, kind := range AlertKinds {
			offset, _ := alertOffset(kind, duration)
			diff := delta - offset
			if diff < 0 {
				diff = -diff
			}
			if diff <= ReminderMatchTolerance && !containsAlert(alerts, kind) {
				alerts = append(alerts, kind)
				break
			}
		}
	}
	return alerts
}

func containsAlert(alerts []AlertKind, kind AlertKind) bool {
	for _, a := range alerts {
		if a == kind {
			return true
		}
	}
	return false
}
