package digest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dailyflo/dailyflo/database"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestBuildBody(t *testing.T) {
	today := time.Date(2025, 6, 10, 7, 0, 0, 0, time.UTC)

	t.Run("empty agenda", func(t *testing.T) {
		body := BuildBody(nil, today)
		assert.Contains(t, body, "No tasks on the agenda")
	})

	t.Run("renders one line per task", func(t *testing.T) {
		tasks := []database.Task{
			{
				Title:           "Standup",
				DueDate:         strPtr("2025-06-10"),
				TimeOfDay:       strPtr("09:30"),
				DurationMinutes: intPtr(15),
			},
			{
				Title:       "Water plants",
				DueDate:     strPtr("2025-06-10"),
				IsCompleted: true,
			},
		}

		body := BuildBody(tasks, today)
		assert.Contains(t, body, "Agenda for Tuesday, 10 Jun 2025")
		assert.Contains(t, body, "[ ] Standup  09:30 - 09:45  (Today)")
		assert.Contains(t, body, "[x] Water plants  (Today)")
	})

	t.Run("includes subtask progress", func(t *testing.T) {
		tasks := []database.Task{
			{
				Title:   "Pack for trip",
				DueDate: strPtr("2025-06-11"),
				Metadata: database.TaskMetadata{
					Subtasks: []database.SubtaskRecord{
						{ID: "a", Title: "Clothes", IsCompleted: true},
						{ID: "b", Title: "Chargers"},
					},
				},
			},
		}

		body := BuildBody(tasks, today)
		assert.Contains(t, body, "1/2 subtasks")
		assert.Contains(t, body, "(Tomorrow)")
	})
}

func TestMailer_Validate(t *testing.T) {
	t.Run("missing public key", func(t *testing.T) {
		m := &Mailer{APIKeyPrivate: "x", Sender: "digest@dailyflo.app"}
		assert.ErrorContains(t, m.Validate(), "public key")
	})

	t.Run("missing private key", func(t *testing.T) {
		m := &Mailer{APIKeyPublic: "x", Sender: "digest@dailyflo.app"}
		assert.ErrorContains(t, m.Validate(), "private key")
	})

	t.Run("invalid sender", func(t *testing.T) {
		m := &Mailer{APIKeyPublic: "x", APIKeyPrivate: "y", Sender: "not-an-email"}
		assert.ErrorContains(t, m.Validate(), "sender")
	})

	t.Run("valid mailer", func(t *testing.T) {
		m := &Mailer{APIKeyPublic: "x", APIKeyPrivate: "y", Sender: "digest@dailyflo.app"}
		assert.NoError(t, m.Validate())
	})
}

func TestMailer_Send_RecipientValidation(t *testing.T) {
	m := &Mailer{APIKeyPublic: "x", APIKeyPrivate: "y", Sender: "digest@dailyflo.app"}
	_, err := m.Send("subject", "body", "broken-address", "Someone")
	assert.ErrorContains(t, err, "recipient")
}
