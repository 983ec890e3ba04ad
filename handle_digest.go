package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dailyflo/dailyflo/database"
	"github.com/dailyflo/dailyflo/digest"
	"github.com/dailyflo/dailyflo/utils"
)

type digestPayload struct {
	To     string `json:"to"`
	ToName string `json:"to_name"`
}

// HandleDigest renders today's agenda and emails it. The recipient
// defaults to the configured digest address; the request body may
// override it.
func HandleDigest(c *gin.Context) {
	store := storeFrom(c)
	mailer := c.MustGet(utils.KeyMailer).(digest.Sender)

	var payload digestPayload
	_ = c.ShouldBindJSON(&payload)
	if payload.To == "" {
		payload.To = config.DigestRecipient
		payload.ToName = config.DigestToName
	}
	if payload.To == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no digest recipient configured or provided"})
		return
	}

	now := time.Now()
	today := now.Format("2006-01-02")
	tasks, err := store.ListTasks(database.TaskFilter{DueOn: &today})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	body := digest.BuildBody(tasks, now)
	subject := fmt.Sprintf("%s Agenda for %s", utils.SystemEmailPrefix, now.Format("Monday, 2 Jan 2006"))

	status, err := mailer.Send(subject, body, payload.To, payload.ToName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error in sending digest email": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "digest sent",
		"to":         payload.To,
		"task_count": len(tasks),
		"status":     status,
	})
}
