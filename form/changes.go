package form

// HasChanges reports whether the form differs from its baseline (fresh
// defaults on create, the saved task on edit). Scalar fields compare
// directly. Alerts compare as a set: the selection order carries no
// meaning, so a reordered-but-equal set is not a change. Subtasks
// compare id/title/completed only; the transient IsEditing flag never
// counts as an edit.
func HasChanges(current, baseline Values, currentSubtasks, baselineSubtasks []Subtask) bool {
	if current.Title != baseline.Title ||
		current.Description != baseline.Description ||
		current.DueDate != baseline.DueDate ||
		current.TimeOfDay != baseline.TimeOfDay ||
		current.Duration != baseline.Duration ||
		current.Color != baseline.Color ||
		current.Icon != baseline.Icon ||
		current.Priority != baseline.Priority ||
		current.Routine != baseline.Routine ||
		current.ListID != baseline.ListID {
		return true
	}
	if !sameAlertSet(current.Alerts, baseline.Alerts) {
		return true
	}
	return !sameSubtasks(currentSubtasks, baselineSubtasks)
}

func sameAlertSet(a, b []AlertKind) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[AlertKind]int, len(a))
	for _, k := range a {
		seen[k]++
	}
	for _, k := range b {
		seen[k]--
		if seen[k] < 0 {
			return false
		}
	}
	return true
}

func sameSubtasks(a, b []Subtask) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID ||
			a[i].Title != b[i].Title ||
			a[i].IsCompleted != b[i].IsCompleted {
			return false
		}
	}
	return true
}
