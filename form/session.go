package form

// Session owns the state of one open task form: the current field
// values, the baseline they are compared against, the subtask list and
// the picker coordinator. A session is created when a modal opens,
// written back to the store on save, and discarded on close; it is
// never shared between flows.
type Session struct {
	values           Values
	baseline         Values
	subtasks         *SubtaskEditor
	baselineSubtasks []Subtask
	picker           *PickerCoordinator
	observer         func(Values)
	saving           bool
}

// NewSession starts a create-flow session seeded from defaults.
func NewSession() *Session {
	return NewSessionWith(Defaults(), nil)
}

// NewSessionWith starts an edit-flow session seeded from an existing
// task's values and subtasks, which also become the baseline for
// change detection.
func NewSessionWith(values Values, subtasks []Subtask) *Session {
	return &Session{
		values:           values.Clone(),
		baseline:         values.Clone(),
		subtasks:         NewSubtaskEditor(subtasks),
		baselineSubtasks: append([]Subtask(nil), subtasks...),
		picker:           NewPickerCoordinator(nil),
	}
}

// Observe registers a callback invoked after every field change, for a
// reactive caller that re-renders on state updates. Only one observer
// is kept.
func (s *Session) Observe(fn func(Values)) {
	s.observer = fn
}

// SetDismissKeyboard installs the hook the picker coordinator runs
// before opening any picker.
func (s *Session) SetDismissKeyboard(fn func()) {
	s.picker.dismissKeyboard = fn
}

// Values returns a copy of the current field values.
func (s *Session) Values() Values {
	return s.values.Clone()
}

// Baseline returns a copy of the values the form was seeded from.
func (s *Session) Baseline() Values {
	return s.baseline.Clone()
}

// Subtasks exposes the session's subtask editor.
func (s *Session) Subtasks() *SubtaskEditor {
	return s.subtasks
}

// Picker exposes the session's picker coordinator.
func (s *Session) Picker() *PickerCoordinator {
	return s.picker
}

// Each setter replaces exactly one field and leaves the rest
// untouched. No validation happens at set time; errors are derived
// on demand via Errors.

func (s *Session) SetTitle(v string)       { s.values.Title = v; s.notify() }
func (s *Session) SetDescription(v string) { s.values.Description = v; s.notify() }
func (s *Session) SetDueDate(v string)     { s.values.DueDate = v; s.notify() }
func (s *Session) SetTimeOfDay(v string)   { s.values.TimeOfDay = v; s.notify() }
func (s *Session) SetDuration(v int)       { s.values.Duration = v; s.notify() }
func (s *Session) SetColor(v Color)        { s.values.Color = v; s.notify() }
func (s *Session) SetIcon(v string)        { s.values.Icon = v; s.notify() }
func (s *Session) SetPriority(v int)       { s.values.Priority = v; s.notify() }
func (s *Session) SetRoutine(v RoutineType) {
	s.values.Routine = v
	s.notify()
}
func (s *Session) SetListID(v string) { s.values.ListID = v; s.notify() }

// SetAlerts replaces the alert selection with a copy of the given set.
func (s *Session) SetAlerts(alerts []AlertKind) {
	s.values.Alerts = append([]AlertKind(nil), alerts...)
	s.notify()
}

// ToggleAlert adds the alert when absent and removes it when present.
func (s *Session) ToggleAlert(kind AlertKind) {
	if s.values.HasAlert(kind) {
		next := make([]AlertKind, 0, len(s.values.Alerts)-1)
		for _, a := range s.values.Alerts {
			if a != kind {
				next = append(next, a)
			}
		}
		s.values.Alerts = next
	} else {
		s.values.Alerts = append(append([]AlertKind(nil), s.values.Alerts...), kind)
	}
	s.notify()
}

func (s *Session) notify() {
	if s.observer != nil {
		s.observer(s.values.Clone())
	}
}

// Errors derives the current field validation state.
func (s *Session) Errors() map[string]string {
	return ValidateAll(s.values)
}

// HasChanges reports whether any field or subtask differs from the
// baseline.
func (s *Session) HasChanges() bool {
	return HasChanges(s.values, s.baseline, s.subtasks.Items(), s.baselineSubtasks)
}

// BeginSave marks a save in flight and reports whether the caller may
// proceed. A second save attempted while one is outstanding is
// rejected; local editing stays unblocked either way.
func (s *Session) BeginSave() bool {
	if s.saving {
		return false
	}
	s.saving = true
	return true
}

// FinishSave clears the in-flight flag after the persistence call
// returns, successful or not.
func (s *Session) FinishSave() {
	s.saving = false
}

// Saving reports whether a save is outstanding.
func (s *Session) Saving() bool {
	return s.saving
}

// Reseed replaces both the current values and the baseline, mirroring
// an external update to the underlying task while the form is open.
// Uncommitted edits are overwritten by design.
func (s *Session) Reseed(values Values, subtasks []Subtask) {
	s.values = values.Clone()
	s.baseline = values.Clone()
	s.subtasks = NewSubtaskEditor(subtasks)
	s.baselineSubtasks = append([]Subtask(nil), subtasks...)
	s.notify()
}
