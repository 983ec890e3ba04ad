package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubtaskEditor(t *testing.T) {
	t.Run("create appends an editing subtask", func(t *testing.T) {
		e := NewSubtaskEditor(nil)
		st := e.Create()

		assert.NotEmpty(t, st.ID)
		assert.Empty(t, st.Title)
		assert.False(t, st.IsCompleted)
		assert.True(t, st.IsEditing)
		assert.Equal(t, 1, e.Len())
	})

	t.Run("generated ids are unique", func(t *testing.T) {
		e := NewSubtaskEditor(nil)
		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			st := e.Create()
			require.False(t, seen[st.ID], "duplicate id %s", st.ID)
			seen[st.ID] = true
		}
	})

	t.Run("set title then finish editing", func(t *testing.T) {
		e := NewSubtaskEditor(nil)
		st := e.Create()
		e.SetTitle(st.ID, "Pack charger")
		e.FinishEditing(st.ID)

		items := e.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "Pack charger", items[0].Title)
		assert.False(t, items[0].IsEditing)
	})

	t.Run("empty title survives finish editing", func(t *testing.T) {
		e := NewSubtaskEditor(nil)
		st := e.Create()
		e.FinishEditing(st.ID)
		require.Equal(t, 1, e.Len())
		assert.Empty(t, e.Items()[0].Title)
	})

	t.Run("toggle flips completion", func(t *testing.T) {
		e := NewSubtaskEditor([]Subtask{{ID: "a", Title: "one"}})
		e.Toggle("a")
		assert.True(t, e.Items()[0].IsCompleted)
		e.Toggle("a")
		assert.False(t, e.Items()[0].IsCompleted)
	})

	t.Run("delete preserves order of the rest", func(t *testing.T) {
		e := NewSubtaskEditor([]Subtask{
			{ID: "a", Title: "one"},
			{ID: "b", Title: "two"},
			{ID: "c", Title: "three"},
		})
		e.Delete("b")

		items := e.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "a", items[0].ID)
		assert.Equal(t, "c", items[1].ID)
	})

	t.Run("operations on unknown ids are no-ops", func(t *testing.T) {
		seed := []Subtask{{ID: "a", Title: "one"}}
		e := NewSubtaskEditor(seed)

		e.SetTitle("missing", "ghost")
		e.FinishEditing("missing")
		e.Toggle("missing")
		e.Delete("missing")

		assert.Equal(t, seed, e.Items())
	})

	t.Run("items returns a copy", func(t *testing.T) {
		e := NewSubtaskEditor([]Subtask{{ID: "a", Title: "one"}})
		items := e.Items()
		items[0].Title = "mutated"
		assert.Equal(t, "one", e.Items()[0].Title)
	})

	t.Run("editor does not alias the baseline slice", func(t *testing.T) {
		baseline := []Subtask{{ID: "a", Title: "one"}}
		e := NewSubtaskEditor(baseline)
		e.SetTitle("a", "changed")
		assert.Equal(t, "one", baseline[0].Title)
	})
}
