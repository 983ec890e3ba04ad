package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dailyflo/dailyflo/database"
	"github.com/dailyflo/dailyflo/form"
	"github.com/dailyflo/dailyflo/utils"
)

// subtaskPayload is one subtask in a create/update request body.
type subtaskPayload struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"is_completed"`
}

// taskPayload is the JSON body for task create and update. Every field
// is optional; on update, absent fields keep their stored value.
type taskPayload struct {
	Title         *string           `json:"title"`
	Description   *string           `json:"description"`
	DueDate       *string           `json:"due_date"`
	TimeOfDay     *string           `json:"time"`
	Duration      *int              `json:"duration"`
	Color         *string           `json:"color"`
	Icon          *string           `json:"icon"`
	Alerts        *[]string         `json:"alerts"`
	PriorityLevel *int              `json:"priority_level"`
	RoutineType   *string           `json:"routine_type"`
	ListID        *string           `json:"list_id"`
	SortOrder     *int              `json:"sort_order"`
	Subtasks      *[]subtaskPayload `json:"subtasks"`
	Notes         *string           `json:"notes"`
	Tags          *[]string         `json:"tags"`
}

// labelPayload carries a derived caption plus its display color, so
// thin clients render picker buttons without recomputing the rules.
type labelPayload struct {
	Text  string `json:"text"`
	Color string `json:"color"`
	Hex   string `json:"hex"`
}

type timeLabelPayload struct {
	Main string `json:"main"`
	Sub  string `json:"sub"`
}

type taskResponse struct {
	ID            string                    `json:"id"`
	Title         string                    `json:"title"`
	Description   string                    `json:"description,omitempty"`
	DueDate       string                    `json:"due_date,omitempty"`
	TimeOfDay     string                    `json:"time,omitempty"`
	Duration      int                       `json:"duration,omitempty"`
	Color         string                    `json:"color"`
	ColorHex      string                    `json:"color_hex"`
	Icon          string                    `json:"icon,omitempty"`
	PriorityLevel int                       `json:"priority_level"`
	RoutineType   string                    `json:"routine_type"`
	ListID        string                    `json:"list_id,omitempty"`
	SortOrder     int                       `json:"sort_order"`
	IsCompleted   bool                      `json:"is_completed"`
	CompletedAt   *time.Time                `json:"completed_at,omitempty"`
	IsOverdue     bool                      `json:"is_overdue"`
	Alerts        []string                  `json:"alerts"`
	Subtasks      []database.SubtaskRecord  `json:"subtasks"`
	Reminders     []database.ReminderRecord `json:"reminders"`
	Notes         string                    `json:"notes,omitempty"`
	Tags          []string                  `json:"tags,omitempty"`
	DateLabel     labelPayload              `json:"date_label"`
	TimeLabel     timeLabelPayload          `json:"time_label"`
	AlertsLabel   string                    `json:"alerts_label"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

func storeFrom(c *gin.Context) *database.Store {
	return c.MustGet(utils.KeyStore).(*database.Store)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

// sessionFromTask seeds an edit-flow form session from a stored task.
// The alert set is reconstructed from the persisted reminders; stale
// reminders that match no known offset silently vanish from the set.
func sessionFromTask(task *database.Task) *form.Session {
	values := form.Values{
		Title:       task.Title,
		Description: task.Description,
		DueDate:     deref(task.DueDate),
		TimeOfDay:   deref(task.TimeOfDay),
		Duration:    derefInt(task.DurationMinutes),
		Color:       form.Color(task.Color),
		Icon:        task.Icon,
		Priority:    task.PriorityLevel,
		Routine:     form.RoutineType(task.RoutineType),
		ListID:      deref(task.ListID),
	}
	values.Alerts = form.RemindersToAlerts(
		remindersFromRecords(task.Metadata.Reminders),
		values.DueDate, values.TimeOfDay, values.Duration, time.Local,
	)

	subtasks := make([]form.Subtask, 0, len(task.Metadata.Subtasks))
	for _, st := range task.Metadata.Subtasks {
		subtasks = append(subtasks, form.Subtask{
			ID:          st.ID,
			Title:       st.Title,
			IsCompleted: st.IsCompleted,
		})
	}
	return form.NewSessionWith(values, subtasks)
}

func remindersFromRecords(records []database.ReminderRecord) []form.Reminder {
	reminders := make([]form.Reminder, 0, len(records))
	for _, r := range records {
		reminders = append(reminders, form.Reminder{
			ID:            r.ID,
			Type:          r.Type,
			ScheduledTime: r.ScheduledTime,
			IsEnabled:     r.IsEnabled,
		})
	}
	return reminders
}

// applyPayload replays the request fields onto the session, one setter
// per present field. Unknown alert kinds are dropped rather than
// rejected.
func applyPayload(s *form.Session, p taskPayload) {
	if p.Title != nil {
		s.SetTitle(*p.Title)
	}
	if p.Description != nil {
		s.SetDescription(*p.Description)
	}
	if p.DueDate != nil {
		s.SetDueDate(*p.DueDate)
	}
	if p.TimeOfDay != nil {
		s.SetTimeOfDay(*p.TimeOfDay)
	}
	if p.Duration != nil {
		s.SetDuration(*p.Duration)
	}
	if p.Color != nil && form.Color(*p.Color).Valid() {
		s.SetColor(form.Color(*p.Color))
	}
	if p.Icon != nil {
		s.SetIcon(*p.Icon)
	}
	if p.PriorityLevel != nil && *p.PriorityLevel >= 1 && *p.PriorityLevel <= 5 {
		s.SetPriority(*p.PriorityLevel)
	}
	if p.RoutineType != nil && form.RoutineType(*p.RoutineType).Valid() {
		s.SetRoutine(form.RoutineType(*p.RoutineType))
	}
	if p.ListID != nil {
		s.SetListID(*p.ListID)
	}
	if p.Alerts != nil {
		alerts := make([]form.AlertKind, 0, len(*p.Alerts))
		for _, a := range *p.Alerts {
			for _, known := range form.AlertKinds {
				if form.AlertKind(a) == known {
					alerts = append(alerts, known)
					break
				}
			}
		}
		s.SetAlerts(alerts)
	}
}

func subtasksFromPayload(payload []subtaskPayload) []form.Subtask {
	subtasks := make([]form.Subtask, 0, len(payload))
	for _, sp := range payload {
		id := sp.ID
		if id == "" {
			id = uuid.NewString()
		}
		subtasks = append(subtasks, form.Subtask{
			ID:          id,
			Title:       sp.Title,
			IsCompleted: sp.IsCompleted,
		})
	}
	return subtasks
}

// buildMetadata assembles the persisted metadata: subtasks with their
// sort order recomputed from list position, and reminders computed
// from the alert set.
func buildMetadata(values form.Values, subtasks []form.Subtask, notes string, tags []string) database.TaskMetadata {
	meta := database.TaskMetadata{Notes: notes, Tags: tags}

	for i, st := range subtasks {
		meta.Subtasks = append(meta.Subtasks, database.SubtaskRecord{
			ID:          st.ID,
			Title:       st.Title,
			IsCompleted: st.IsCompleted,
			SortOrder:   i,
		})
	}
	for _, r := range form.AlertsToReminders(values.Alerts, values.DueDate, values.TimeOfDay, values.Duration, time.Local) {
		meta.Reminders = append(meta.Reminders, database.ReminderRecord{
			ID:            r.ID,
			Type:          r.Type,
			ScheduledTime: r.ScheduledTime,
			IsEnabled:     r.IsEnabled,
		})
	}
	return meta
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalInt(i int) *int {
	if i == 0 {
		return nil
	}
	return &i
}

func toTaskResponse(task *database.Task, now time.Time) taskResponse {
	dueDate := deref(task.DueDate)
	timeOfDay := deref(task.TimeOfDay)
	duration := derefInt(task.DurationMinutes)

	alerts := form.RemindersToAlerts(
		remindersFromRecords(task.Metadata.Reminders),
		dueDate, timeOfDay, duration, now.Location(),
	)
	alertNames := make([]string, 0, len(alerts))
	for _, a := range alerts {
		alertNames = append(alertNames, string(a))
	}

	dateLabel := form.DateLabel(dueDate, now)
	mainText, subText := form.TimeDurationLabel(timeOfDay, duration)

	isOverdue := false
	if dueDate != "" && !task.IsCompleted {
		if base, ok := form.BaseTime(dueDate, "", now.Location()); ok {
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			isOverdue = base.Before(today)
		}
	}

	return taskResponse{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		DueDate:       dueDate,
		TimeOfDay:     timeOfDay,
		Duration:      duration,
		Color:         task.Color,
		ColorHex:      form.Color(task.Color).Hex(),
		Icon:          task.Icon,
		PriorityLevel: task.PriorityLevel,
		RoutineType:   task.RoutineType,
		ListID:        deref(task.ListID),
		SortOrder:     task.SortOrder,
		IsCompleted:   task.IsCompleted,
		CompletedAt:   task.CompletedAt,
		IsOverdue:     isOverdue,
		Alerts:        alertNames,
		Subtasks:      task.Metadata.Subtasks,
		Reminders:     task.Metadata.Reminders,
		Notes:         task.Metadata.Notes,
		Tags:          task.Metadata.Tags,
		DateLabel: labelPayload{
			Text:  dateLabel.Text,
			Color: string(dateLabel.Color),
			Hex:   dateLabel.Color.Hex(),
		},
		TimeLabel:   timeLabelPayload{Main: mainText, Sub: subText},
		AlertsLabel: form.AlertsLabel(len(alerts)),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// HandleListTasks returns tasks, optionally filtered by list id,
// completion state and due date. due=today resolves server-side.
func HandleListTasks(c *gin.Context) {
	store := storeFrom(c)

	filter := database.TaskFilter{}
	if list := c.Query("list"); list != "" {
		filter.ListID = &list
	}
	if completed := c.Query("completed"); completed != "" {
		done := completed == "true"
		filter.Completed = &done
	}
	if due := c.Query("due"); due != "" {
		if due == "today" {
			due = time.Now().Format("2006-01-02")
		}
		filter.DueOn = &due
	}

	tasks, err := store.ListTasks(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	responses := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, toTaskResponse(&tasks[i], now))
	}
	c.JSON(http.StatusOK, gin.H{"tasks": responses, "total_count": len(responses)})
}

// HandleGetTask returns one task by id.
func HandleGetTask(c *gin.Context) {
	store := storeFrom(c)

	task, err := store.GetTask(c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task, time.Now()))
}

// HandleCreateTask runs the create flow: seed a fresh form session,
// replay the request onto it, validate, convert and persist.
func HandleCreateTask(c *gin.Context) {
	store := storeFrom(c)

	var payload taskPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := form.NewSession()
	applyPayload(session, payload)

	if errs := session.Errors(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	var subtasks []form.Subtask
	if payload.Subtasks != nil {
		subtasks = subtasksFromPayload(*payload.Subtasks)
	}

	values := session.Values()
	var tags []string
	if payload.Tags != nil {
		tags = *payload.Tags
	}
	input := database.TaskInput{
		Title:           values.TrimmedTitle(),
		Description:     values.Description,
		DueDate:         optional(values.DueDate),
		TimeOfDay:       optional(values.TimeOfDay),
		DurationMinutes: optionalInt(values.Duration),
		Color:           string(values.Color),
		Icon:            values.Icon,
		PriorityLevel:   values.Priority,
		RoutineType:     string(values.Routine),
		ListID:          optional(values.ListID),
		SortOrder:       derefInt(payload.SortOrder),
		Metadata:        buildMetadata(values, subtasks, deref(payload.Notes), tags),
	}

	task, err := store.CreateTask(input)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toTaskResponse(task, time.Now()))
}

// HandleUpdateTask runs the edit flow: seed the session from the
// stored task, replay the request, validate and write back. When the
// request changes nothing the stored task is returned untouched.
func HandleUpdateTask(c *gin.Context) {
	store := storeFrom(c)

	task, err := store.GetTask(c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var payload taskPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := sessionFromTask(task)
	applyPayload(session, payload)

	if errs := session.Errors(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	subtasks := session.Subtasks().Items()
	if payload.Subtasks != nil {
		subtasks = subtasksFromPayload(*payload.Subtasks)
	}

	baselineSubtasks := session.Subtasks().Items()
	values := session.Values()
	if !form.HasChanges(values, session.Baseline(), subtasks, baselineSubtasks) &&
		payload.Notes == nil && payload.Tags == nil && payload.SortOrder == nil {
		c.JSON(http.StatusOK, toTaskResponse(task, time.Now()))
		return
	}

	notes := task.Metadata.Notes
	if payload.Notes != nil {
		notes = *payload.Notes
	}
	tags := task.Metadata.Tags
	if payload.Tags != nil {
		tags = *payload.Tags
	}
	meta := buildMetadata(values, subtasks, notes, tags)

	title := values.TrimmedTitle()
	description := values.Description
	color := string(values.Color)
	routine := string(values.Routine)
	update := database.TaskUpdate{
		Title:           &title,
		Description:     &description,
		DueDate:         optional(values.DueDate),
		ClearDueDate:    values.DueDate == "",
		TimeOfDay:       optional(values.TimeOfDay),
		ClearTimeOfDay:  values.TimeOfDay == "",
		DurationMinutes: optionalInt(values.Duration),
		ClearDuration:   values.Duration == 0,
		Color:           &color,
		Icon:            &values.Icon,
		PriorityLevel:   &values.Priority,
		RoutineType:     &routine,
		ListID:          optional(values.ListID),
		ClearListID:     values.ListID == "",
		SortOrder:       payload.SortOrder,
		Metadata:        &meta,
	}

	updated, err := store.UpdateTask(task.ID, update)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(updated, time.Now()))
}

// HandleDeleteTask soft-deletes a task.
func HandleDeleteTask(c *gin.Context) {
	store := storeFrom(c)

	if err := store.DeleteTask(c.Param("id")); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

type completePayload struct {
	IsCompleted *bool `json:"is_completed"`
}

// HandleCompleteTask marks a task complete, or incomplete when the
// body says {"is_completed": false}.
func HandleCompleteTask(c *gin.Context) {
	store := storeFrom(c)

	done := true
	var payload completePayload
	if err := c.ShouldBindJSON(&payload); err == nil && payload.IsCompleted != nil {
		done = *payload.IsCompleted
	}

	task, err := store.SetCompleted(c.Param("id"), done)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task, time.Now()))
}
