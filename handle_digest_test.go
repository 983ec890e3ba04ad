package main

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dailyflo/dailyflo/testutils/mocks"
)

func TestHandleDigest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("sends the agenda to the requested recipient", func(t *testing.T) {
		sender := &mocks.MockSender{}
		sender.On("Send", mock.Anything, mock.Anything, "alice@example.com", "Alice").
			Return("delivered", nil)

		router, _ := newTestRouter(t, sender)
		createTask(t, router, map[string]any{"title": "Standup", "due_date": isoDate(0), "time": "09:30"})

		body, code := doRequestMap(t, router, http.MethodPost, "/api/v1/digest", map[string]any{
			"to":      "alice@example.com",
			"to_name": "Alice",
		})

		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "digest sent", body["message"])
		assert.EqualValues(t, 1, body["task_count"])
		assert.Equal(t, "delivered", body["status"])

		sender.AssertExpectations(t)
		subject := sender.Calls[0].Arguments.String(0)
		assert.Contains(t, subject, "[Dailyflo] Agenda for")
		bodyArg := sender.Calls[0].Arguments.String(1)
		assert.Contains(t, bodyArg, "[ ] Standup")
	})

	t.Run("no recipient anywhere", func(t *testing.T) {
		sender := &mocks.MockSender{}
		router, _ := newTestRouter(t, sender)

		_, code := doRequestMap(t, router, http.MethodPost, "/api/v1/digest", nil)
		assert.Equal(t, http.StatusBadRequest, code)
		sender.AssertNotCalled(t, "Send")
	})

	t.Run("mailer failure surfaces as 500", func(t *testing.T) {
		sender := &mocks.MockSender{}
		sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("mailjet down"))

		router, _ := newTestRouter(t, sender)
		_, code := doRequestMap(t, router, http.MethodPost, "/api/v1/digest", map[string]any{
			"to": "alice@example.com",
		})
		assert.Equal(t, http.StatusInternalServerError, code)
	})
}
