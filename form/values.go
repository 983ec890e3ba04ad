// Package form implements the task form session: the in-progress field
// values behind the create/edit task flows, their validation and
// change detection, the display labels derived from raw date/time
// values, alert↔reminder conversion, and the picker/subtask editing
// state. Everything here is pure state plus synchronous transitions;
// rendering and persistence are the caller's concern.
package form

import "strings"

// Color is one of the fixed palette keys a task or list can carry.
type Color string

const (
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorPurple Color = "purple"
	ColorTeal   Color = "teal"
	ColorOrange Color = "orange"
)

// Colors lists the palette in display order.
var Colors = []Color{
	ColorRed, ColorBlue, ColorGreen, ColorYellow,
	ColorPurple, ColorTeal, ColorOrange,
}

// Valid reports whether c is a known palette key.
func (c Color) Valid() bool {
	for _, k := range Colors {
		if c == k {
			return true
		}
	}
	return false
}

// RoutineType is the recurrence cadence of a task.
type RoutineType string

const (
	RoutineOnce    RoutineType = "once"
	RoutineDaily   RoutineType = "daily"
	RoutineWeekly  RoutineType = "weekly"
	RoutineMonthly RoutineType = "monthly"
	RoutineYearly  RoutineType = "yearly"
)

// RoutineTypes lists all recurrence cadences.
var RoutineTypes = []RoutineType{
	RoutineOnce, RoutineDaily, RoutineWeekly, RoutineMonthly, RoutineYearly,
}

// Valid reports whether r is a known routine type.
func (r RoutineType) Valid() bool {
	for _, k := range RoutineTypes {
		if r == k {
			return true
		}
	}
	return false
}

// AlertKind identifies one of the selectable task alerts. The UI keeps
// these as a set; the persisted form is a Reminder with an absolute
// timestamp (see reminders.go).
type AlertKind string

const (
	AlertStart  AlertKind = "start"
	AlertEnd    AlertKind = "end"
	AlertLead15 AlertKind = "15-min"
)

// AlertKinds lists all selectable alerts in display order.
var AlertKinds = []AlertKind{AlertStart, AlertEnd, AlertLead15}

// DurationPresets are the selectable task durations in minutes. Zero
// means "None".
var DurationPresets = []int{15, 30, 45, 60, 90, 120}

// Values holds every in-progress field of the task form. Absent
// optional fields are the zero value: empty DueDate/TimeOfDay strings
// and a zero Duration mean "not set".
type Values struct {
	Title       string
	Description string
	DueDate     string // ISO date, "2006-01-02"
	TimeOfDay   string // 24-hour "HH:MM"
	Duration    int    // minutes, 0 = none
	Color       Color
	Icon        string
	Alerts      []AlertKind
	Priority    int // 1..5
	Routine     RoutineType
	ListID      string
}

// Defaults returns the field values of a fresh create-task form.
func Defaults() Values {
	return Values{
		Color:    ColorBlue,
		Priority: 3,
		Routine:  RoutineOnce,
	}
}

// Clone returns a deep copy of v. The alert slice is the only field
// that needs copying; everything else is a scalar.
func (v Values) Clone() Values {
	out := v
	if v.Alerts != nil {
		out.Alerts = append([]AlertKind(nil), v.Alerts...)
	}
	return out
}

// HasAlert reports whether kind is in the current alert set.
func (v Values) HasAlert(kind AlertKind) bool {
	for _, a := range v.Alerts {
		if a == kind {
			return true
		}
	}
	return false
}

// TrimmedTitle is the title with surrounding whitespace removed, the
// form the validation and save paths operate on.
func (v Values) TrimmedTitle() string {
	return strings.TrimSpace(v.Title)
}
