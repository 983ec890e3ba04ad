package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dailyflo/dailyflo/database"
)

// HandleAgenda returns today's tasks: everything due on the current
// date plus pending tasks that slipped past their due date. An
// explicit ?date=2006-01-02 overrides today, without the overdue
// carry-over.
func HandleAgenda(c *gin.Context) {
	store := storeFrom(c)

	now := time.Now()
	today := now.Format("2006-01-02")
	explicit := c.Query("date")

	date := today
	if explicit != "" {
		if _, err := time.Parse("2006-01-02", explicit); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want 2006-01-02"})
			return
		}
		date = explicit
	}

	tasks, err := store.ListTasks(database.TaskFilter{DueOn: &date})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	overdueCount := 0
	if explicit == "" {
		pending := false
		all, err := store.ListTasks(database.TaskFilter{Completed: &pending})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		for i := range all {
			task := &all[i]
			if task.DueDate != nil && *task.DueDate < today {
				tasks = append(tasks, *task)
				overdueCount++
			}
		}
	}

	responses := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, toTaskResponse(&tasks[i], now))
	}
	c.JSON(http.StatusOK, gin.H{
		"date":          date,
		"tasks":         responses,
		"total_count":   len(responses),
		"overdue_count": overdueCount,
	})
}
