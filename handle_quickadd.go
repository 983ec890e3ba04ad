package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dailyflo/dailyflo/database"
	"github.com/dailyflo/dailyflo/form"
	"github.com/dailyflo/dailyflo/ingest"
	"github.com/dailyflo/dailyflo/utils"
)

// HandleQuickAdd turns an inbound email webhook into a task. The
// subject becomes the title and the body the description; an explicit
// "task" object in the payload can set date, time, duration, priority,
// color and routine. New tasks land in the default list when one is
// flagged.
func HandleQuickAdd(c *gin.Context) {
	store := storeFrom(c)

	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	payload := string(raw)

	message := ingest.ParseMessage(payload)
	log.Infof("Quick-add email from %s: %s", message.From, message.Subject)

	// Our own digest emails loop back through some forwarding setups.
	if strings.HasPrefix(message.Subject, utils.SystemEmailPrefix) {
		c.JSON(http.StatusOK, gin.H{"message": "system email ignored"})
		return
	}

	values := ingest.ToFormValues(payload, message, time.Now())

	session := form.NewSessionWith(values, nil)
	if errs := session.Errors(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	var listID *string
	if inbox, err := store.DefaultList(); err == nil {
		listID = &inbox.ID
	} else if !errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	input := database.TaskInput{
		Title:           values.TrimmedTitle(),
		Description:     values.Description,
		DueDate:         optional(values.DueDate),
		TimeOfDay:       optional(values.TimeOfDay),
		DurationMinutes: optionalInt(values.Duration),
		Color:           string(values.Color),
		PriorityLevel:   values.Priority,
		RoutineType:     string(values.Routine),
		ListID:          listID,
		Metadata:        buildMetadata(values, nil, "", nil),
	}

	task, err := store.CreateTask(input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toTaskResponse(task, time.Now()))
}
