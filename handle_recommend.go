package main

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dailyflo/dailyflo/database"
	"github.com/dailyflo/dailyflo/form"
)

type recommendation struct {
	Rank   int          `json:"rank"`
	Task   taskResponse `json:"task"`
	Reason string       `json:"reason"`
}

// HandleRecommend suggests what to work on next: overdue tasks first,
// then higher priority, then the nearest due date, then oldest.
// ?top=N bounds the result, default 3, max 10.
func HandleRecommend(c *gin.Context) {
	store := storeFrom(c)

	top := 3
	if raw := c.Query("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "top must be a positive integer"})
			return
		}
		if n > 10 {
			n = 10
		}
		top = n
	}

	pending := false
	tasks, err := store.ListTasks(database.TaskFilter{Completed: &pending})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	today := now.Format("2006-01-02")

	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := &tasks[i], &tasks[j]
		ao, bo := overdue(a, today), overdue(b, today)
		if ao != bo {
			return ao
		}
		if a.PriorityLevel != b.PriorityLevel {
			return a.PriorityLevel > b.PriorityLevel
		}
		ad, bd := dueKey(a), dueKey(b)
		if ad != bd {
			return ad < bd
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	if len(tasks) > top {
		tasks = tasks[:top]
	}

	recommendations := make([]recommendation, 0, len(tasks))
	for i := range tasks {
		task := &tasks[i]
		recommendations = append(recommendations, recommendation{
			Rank:   i + 1,
			Task:   toTaskResponse(task, now),
			Reason: recommendReason(task, today, now),
		})
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recommendations})
}

func overdue(task *database.Task, today string) bool {
	return task.DueDate != nil && *task.DueDate < today
}

// dueKey orders tasks by due date, pushing undated tasks last. ISO
// dates compare correctly as strings.
func dueKey(task *database.Task) string {
	if task.DueDate == nil {
		return "9999-99-99"
	}
	return *task.DueDate
}

func recommendReason(task *database.Task, today string, now time.Time) string {
	if overdue(task, today) {
		return fmt.Sprintf("Overdue since %s", form.DateLabel(*task.DueDate, now).Text)
	}
	if task.DueDate != nil {
		return fmt.Sprintf("Due %s, priority %d", form.DateLabel(*task.DueDate, now).Text, task.PriorityLevel)
	}
	return fmt.Sprintf("Priority %d, no due date", task.PriorityLevel)
}
