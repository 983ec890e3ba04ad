package form

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Subtask is one entry of the form's subtask checklist. IsEditing is
// transient UI state and never persisted or compared.
type Subtask struct {
	ID          string
	Title       string
	IsCompleted bool
	IsEditing   bool
}

// SubtaskEditor maintains the ordered subtask list of one form
// session. Every operation keyed by id is a no-op when the id is
// unknown: a tap racing a delete must not crash the session.
type SubtaskEditor struct {
	items []Subtask
}

// NewSubtaskEditor seeds an editor with a copy of the given subtasks.
func NewSubtaskEditor(baseline []Subtask) *SubtaskEditor {
	return &SubtaskEditor{items: append([]Subtask(nil), baseline...)}
}

// Create appends a fresh subtask with an empty title in editing mode
// and returns it. Ids are a millisecond timestamp plus a random
// suffix; collisions are treated as negligible.
func (e *SubtaskEditor) Create() Subtask {
	st := Subtask{
		ID:        newSubtaskID(),
		IsEditing: true,
	}
	e.items = append(e.items, st)
	return st
}

func newSubtaskID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// SetTitle replaces the title of the subtask with the given id.
func (e *SubtaskEditor) SetTitle(id, title string) {
	if i := e.indexOf(id); i >= 0 {
		e.items[i].Title = title
	}
}

// FinishEditing clears the editing flag. Empty titles are allowed to
// stand; the editor never deletes on blur.
func (e *SubtaskEditor) FinishEditing(id string) {
	if i := e.indexOf(id); i >= 0 {
		e.items[i].IsEditing = false
	}
}

// Toggle flips the completion state of the subtask with the given id.
func (e *SubtaskEditor) Toggle(id string) {
	if i := e.indexOf(id); i >= 0 {
		e.items[i].IsCompleted = !e.items[i].IsCompleted
	}
}

// Delete removes the subtask with the given id. Sort order is implied
// by position; it is recomputed from the array index at save time.
func (e *SubtaskEditor) Delete(id string) {
	if i := e.indexOf(id); i >= 0 {
		e.items = append(e.items[:i], e.items[i+1:]...)
	}
}

// Items returns a copy of the current list in order.
func (e *SubtaskEditor) Items() []Subtask {
	return append([]Subtask(nil), e.items...)
}

// Len returns the number of subtasks.
func (e *SubtaskEditor) Len() int {
	return len(e.items)
}

func (e *SubtaskEditor) indexOf(id string) int {
	for i := range e.items {
		if e.items[i].ID == id {
			return i
		}
	}
	return -1
}
