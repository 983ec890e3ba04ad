package form

import (
	"fmt"
	"time"
)

// Semantic names a display color role. The concrete value comes from
// the palette (palette.go); callers that theme themselves only need
// the role.
type Semantic string

const (
	SemanticSuccess   Semantic = "success"
	SemanticError     Semantic = "error"
	SemanticWarning   Semantic = "warning"
	SemanticInfo      Semantic = "info"
	SemanticPurple    Semantic = "purple"
	SemanticSecondary Semantic = "secondary"
)

// Label is a derived picker-button caption plus its semantic color.
type Label struct {
	Text  string
	Color Semantic
}

const (
	isoDateFormat      = "2006-01-02"
	clockFormat        = "15:04"
	absoluteDateFormat = "2 Jan 2006"
)

// DateLabel derives the due-date caption from an ISO date string.
// Both sides are normalized to midnight so the comparison is
// day-granular regardless of the local hour. The weekend rule is
// checked before Today/Tomorrow/Next Week on purpose: a Saturday that
// is also "today" reads "This Weekend".
func DateLabel(dueDate string, today time.Time) Label {
	if dueDate == "" {
		return Label{Text: "No Date", Color: SemanticSecondary}
	}
	due, err := time.ParseInLocation(isoDateFormat, dueDate, today.Location())
	if err != nil {
		// Best-effort: show the raw value rather than failing the form.
		return Label{Text: dueDate, Color: SemanticSecondary}
	}

	dueMidnight := midnight(due)
	todayMidnight := midnight(today)
	diffDays := int(dueMidnight.Sub(todayMidnight).Round(24*time.Hour) / (24 * time.Hour))

	weekday := dueMidnight.Weekday()
	switch {
	case (weekday == time.Saturday || weekday == time.Sunday) && diffDays >= 0 && diffDays <= 6:
		return Label{Text: "This Weekend", Color: SemanticInfo}
	case diffDays == 0:
		return Label{Text: "Today", Color: SemanticSuccess}
	case diffDays == 1:
		return Label{Text: "Tomorrow", Color: SemanticWarning}
	case diffDays == 7:
		return Label{Text: "Next Week", Color: SemanticPurple}
	case diffDays == -1:
		return Label{Text: "Yesterday", Color: SemanticError}
	case diffDays < 0:
		return Label{Text: fmt.Sprintf("%d days ago", -diffDays), Color: SemanticError}
	default:
		return Label{Text: dueMidnight.Format(absoluteDateFormat), Color: SemanticSecondary}
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TimeDurationLabel derives the time-picker caption. With both a time
// and a duration the main text is the "start - end" range; the end
// time wraps across midnight. With only one of the two it falls back
// to whichever is present, and with neither it shows the placeholder.
func TimeDurationLabel(timeOfDay string, duration int) (mainText, subText string) {
	switch {
	case timeOfDay == "" && duration <= 0:
		return "Time & Duration", "No duration"
	case timeOfDay == "" && duration > 0:
		d := fmt.Sprintf("%dmin", duration)
		return d, d
	case duration <= 0:
		return timeOfDay, "No duration"
	default:
		end, err := EndTime(timeOfDay, duration)
		if err != nil {
			return timeOfDay, fmt.Sprintf("%dmin", duration)
		}
		return fmt.Sprintf("%s - %s", timeOfDay, end), fmt.Sprintf("%dmin", duration)
	}
}

// EndTime adds duration minutes to a "HH:MM" clock value using 24-hour
// modular arithmetic, so "23:45" + 30 yields "00:15".
func EndTime(timeOfDay string, duration int) (string, error) {
	start, err := time.Parse(clockFormat, timeOfDay)
	if err != nil {
		return "", fmt.Errorf("invalid time %q: %w", timeOfDay, err)
	}
	total := (start.Hour()*60 + start.Minute() + duration) % (24 * 60)
	if total < 0 {
		total += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60), nil
}

// AlertsLabel pluralizes the alert count for the alerts picker button.
func AlertsLabel(count int) string {
	switch count {
	case 0:
		return "No Alerts"
	case 1:
		return "1 Alert"
	default:
		return fmt.Sprintf("%d Alerts", count)
	}
}
