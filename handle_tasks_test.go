package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isoDate(daysFromNow int) string {
	return time.Now().AddDate(0, 0, daysFromNow).Format("2006-01-02")
}

func createTask(t *testing.T, router *gin.Engine, payload map[string]any) map[string]any {
	t.Helper()
	body, code := doRequestMap(t, router, http.MethodPost, "/api/v1/tasks", payload)
	require.Equal(t, http.StatusCreated, code, "create task failed: %v", body)
	return body
}

func TestHandleCreateTask(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("minimal task gets defaults", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		body := createTask(t, router, map[string]any{"title": "Water plants"})

		assert.Equal(t, "Water plants", body["title"])
		assert.Equal(t, "blue", body["color"])
		assert.EqualValues(t, 3, body["priority_level"])
		assert.Equal(t, "once", body["routine_type"])
		assert.NotEmpty(t, body["id"])
		assert.Equal(t, "No Alerts", body["alerts_label"])
	})

	t.Run("title is required", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		body, code := doRequestMap(t, router, http.MethodPost, "/api/v1/tasks", map[string]any{
			"title": "   ",
		})

		assert.Equal(t, http.StatusBadRequest, code)
		errs := body["errors"].(map[string]any)
		assert.Equal(t, "Title is required", errs["title"])
	})

	t.Run("overlong description is rejected", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		long := make([]byte, 501)
		for i := range long {
			long[i] = 'x'
		}
		body, code := doRequestMap(t, router, http.MethodPost, "/api/v1/tasks", map[string]any{
			"title":       "Read",
			"description": string(long),
		})

		assert.Equal(t, http.StatusBadRequest, code)
		errs := body["errors"].(map[string]any)
		assert.Contains(t, errs, "description")
	})

	t.Run("unknown list is rejected", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		_, code := doRequestMap(t, router, http.MethodPost, "/api/v1/tasks", map[string]any{
			"title":   "Orphan",
			"list_id": "does-not-exist",
		})
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("alerts become reminders and survive the round trip", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		body := createTask(t, router, map[string]any{
			"title":    "Standup",
			"due_date": isoDate(1),
			"time":     "09:30",
			"duration": 30,
			"alerts":   []string{"start", "15-min"},
		})

		assert.Len(t, body["reminders"], 2)
		assert.ElementsMatch(t, []any{"start", "15-min"}, body["alerts"])
		assert.Equal(t, "2 Alerts", body["alerts_label"])

		fetched, code := doRequestMap(t, router, http.MethodGet, "/api/tasks/"+body["id"].(string), nil)
		require.Equal(t, http.StatusOK, code)
		assert.ElementsMatch(t, []any{"start", "15-min"}, fetched["alerts"])
	})

	t.Run("unknown alert kinds are dropped", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		body := createTask(t, router, map[string]any{
			"title":    "Call dentist",
			"due_date": isoDate(2),
			"alerts":   []string{"start", "pigeon-post"},
		})
		assert.Equal(t, []any{"start"}, body["alerts"])
	})

	t.Run("derived labels are included", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		body := createTask(t, router, map[string]any{
			"title":    "Taxes",
			"due_date": isoDate(0),
			"time":     "14:00",
			"duration": 60,
		})

		// A Saturday or Sunday reads "This Weekend" even when it is today.
		expected := "Today"
		if wd := time.Now().Weekday(); wd == time.Saturday || wd == time.Sunday {
			expected = "This Weekend"
		}
		dateLabel := body["date_label"].(map[string]any)
		assert.Equal(t, expected, dateLabel["text"])
		timeLabel := body["time_label"].(map[string]any)
		assert.Equal(t, "14:00 - 15:00", timeLabel["main"])
		assert.Equal(t, "60min", timeLabel["sub"])
	})

	t.Run("subtasks are stored with their list position", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		body := createTask(t, router, map[string]any{
			"title": "Pack",
			"subtasks": []map[string]any{
				{"title": "Clothes", "is_completed": true},
				{"title": "Chargers"},
			},
		})

		subtasks := body["subtasks"].([]any)
		require.Len(t, subtasks, 2)
		first := subtasks[0].(map[string]any)
		assert.Equal(t, "Clothes", first["title"])
		assert.EqualValues(t, 0, first["sort_order"])
		assert.NotEmpty(t, first["id"])
		second := subtasks[1].(map[string]any)
		assert.EqualValues(t, 1, second["sort_order"])
	})
}

func TestHandleGetTask(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unknown id", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		_, code := doRequestMap(t, router, http.MethodGet, "/api/tasks/nope", nil)
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("marks overdue pending tasks", func(t *testing.T) {
		router, store := newTestRouter(t, nil)
		yesterday := isoDate(-1)
		task, err := store.CreateTask(taskInputWithDue("Late", yesterday))
		require.NoError(t, err)

		body, code := doRequestMap(t, router, http.MethodGet, "/api/tasks/"+task.ID, nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, true, body["is_overdue"])
	})
}

func TestHandleListTasks(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("filters by completion and list", func(t *testing.T) {
		router, store := newTestRouter(t, nil)
		list, err := store.CreateList(listInput("Errands"))
		require.NoError(t, err)

		a := createTask(t, router, map[string]any{"title": "A", "list_id": list.ID})
		createTask(t, router, map[string]any{"title": "B"})

		_, code := doRequestMap(t, router, http.MethodPost, "/api/v1/tasks/"+a["id"].(string)+"/complete", nil)
		require.Equal(t, http.StatusOK, code)

		body, code := doRequestMap(t, router, http.MethodGet, "/api/tasks?completed=true", nil)
		require.Equal(t, http.StatusOK, code)
		assert.EqualValues(t, 1, body["total_count"])

		body, code = doRequestMap(t, router, http.MethodGet, "/api/tasks?list="+list.ID, nil)
		require.Equal(t, http.StatusOK, code)
		assert.EqualValues(t, 1, body["total_count"])
	})

	t.Run("due today shortcut", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		createTask(t, router, map[string]any{"title": "Now", "due_date": isoDate(0)})
		createTask(t, router, map[string]any{"title": "Later", "due_date": isoDate(5)})

		body, code := doRequestMap(t, router, http.MethodGet, "/api/tasks?due=today", nil)
		require.Equal(t, http.StatusOK, code)
		assert.EqualValues(t, 1, body["total_count"])
	})
}

func TestHandleUpdateTask(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("patches only the given fields", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		created := createTask(t, router, map[string]any{
			"title":    "Draft report",
			"due_date": isoDate(3),
			"color":    "teal",
		})

		body, code := doRequestMap(t, router, http.MethodPatch, "/api/v1/tasks/"+created["id"].(string), map[string]any{
			"title": "Final report",
		})
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Final report", body["title"])
		assert.Equal(t, "teal", body["color"])
		assert.Equal(t, isoDate(3), body["due_date"])
	})

	t.Run("empty string clears an optional field", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		created := createTask(t, router, map[string]any{
			"title":    "Flexible",
			"due_date": isoDate(3),
			"time":     "10:00",
		})

		body, code := doRequestMap(t, router, http.MethodPatch, "/api/v1/tasks/"+created["id"].(string), map[string]any{
			"due_date": "",
			"time":     "",
		})
		require.Equal(t, http.StatusOK, code)
		assert.Empty(t, body["due_date"])
		assert.Empty(t, body["time"])
	})

	t.Run("rejects a patch that blanks the title", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		created := createTask(t, router, map[string]any{"title": "Keep me"})

		body, code := doRequestMap(t, router, http.MethodPatch, "/api/v1/tasks/"+created["id"].(string), map[string]any{
			"title": "",
		})
		assert.Equal(t, http.StatusBadRequest, code)
		errs := body["errors"].(map[string]any)
		assert.Equal(t, "Title is required", errs["title"])
	})

	t.Run("no-op patch returns the stored task", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		created := createTask(t, router, map[string]any{"title": "Same"})

		body, code := doRequestMap(t, router, http.MethodPatch, "/api/v1/tasks/"+created["id"].(string), map[string]any{
			"title": "Same",
		})
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Same", body["title"])
	})

	t.Run("unknown id", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		_, code := doRequestMap(t, router, http.MethodPatch, "/api/v1/tasks/nope", map[string]any{"title": "X"})
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("replacing alerts rewrites the reminders", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		created := createTask(t, router, map[string]any{
			"title":    "Standup",
			"due_date": isoDate(1),
			"time":     "09:30",
			"duration": 15,
			"alerts":   []string{"start", "end", "15-min"},
		})

		body, code := doRequestMap(t, router, http.MethodPatch, "/api/v1/tasks/"+created["id"].(string), map[string]any{
			"alerts": []string{"end"},
		})
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, []any{"end"}, body["alerts"])
		assert.Len(t, body["reminders"], 1)
	})
}

func TestHandleDeleteTask(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("deleted tasks disappear", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		created := createTask(t, router, map[string]any{"title": "Ephemeral"})
		id := created["id"].(string)

		_, code := doRequestMap(t, router, http.MethodDelete, "/api/v1/tasks/"+id, nil)
		assert.Equal(t, http.StatusOK, code)

		_, code = doRequestMap(t, router, http.MethodGet, "/api/tasks/"+id, nil)
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("unknown id", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		_, code := doRequestMap(t, router, http.MethodDelete, "/api/v1/tasks/nope", nil)
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestHandleCompleteTask(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("complete and uncomplete", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		created := createTask(t, router, map[string]any{"title": "Dishes"})
		id := created["id"].(string)

		body, code := doRequestMap(t, router, http.MethodPost, "/api/v1/tasks/"+id+"/complete", nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, true, body["is_completed"])
		assert.NotNil(t, body["completed_at"])

		body, code = doRequestMap(t, router, http.MethodPost, "/api/v1/tasks/"+id+"/complete", map[string]any{
			"is_completed": false,
		})
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, false, body["is_completed"])
		assert.Nil(t, body["completed_at"])
	})
}
