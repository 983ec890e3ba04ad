// Package database persists tasks and lists with gorm over SQLite. It
// is the store the form sessions are seeded from and saved back to;
// the form core itself never imports it.
package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

// ErrNotFound is returned when a task or list id does not exist.
var ErrNotFound = gorm.ErrRecordNotFound

// SubtaskRecord is the persisted form of one subtask. SortOrder is
// recomputed from the list position on every save; the transient
// editing flag of the form layer is never stored.
type SubtaskRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"is_completed"`
	SortOrder   int    `json:"sort_order"`
}

// ReminderRecord is the persisted form of one alert: an absolute
// scheduled time relative to the task's due date.
type ReminderRecord struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	ScheduledTime time.Time `json:"scheduled_time"`
	IsEnabled     bool      `json:"is_enabled"`
}

// TaskMetadata is the JSON blob carried by every task: subtasks,
// reminders, free-form notes and tags.
type TaskMetadata struct {
	Subtasks  []SubtaskRecord  `json:"subtasks,omitempty"`
	Reminders []ReminderRecord `json:"reminders,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	Tags      []string         `json:"tags,omitempty"`
}

// Task is the persisted task entity. DueDate keeps the ISO date string
// and TimeOfDay the "HH:MM" clock value exactly as the form holds
// them, so seeding a form session is a straight copy.
type Task struct {
	ID              string `gorm:"primaryKey"`
	Title           string `gorm:"not null"`
	Description     string
	DueDate         *string // ISO date "2006-01-02"
	TimeOfDay       *string // 24-hour "HH:MM"
	DurationMinutes *int
	Color           string `gorm:"default:blue"`
	Icon            string
	PriorityLevel   int    `gorm:"default:3"`
	RoutineType     string `gorm:"default:once"`
	ListID          *string
	SortOrder       int
	IsCompleted     bool
	CompletedAt     *time.Time
	Metadata        TaskMetadata `gorm:"serializer:json"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

// List groups tasks into a named, colored category.
type List struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	Color       string `gorm:"default:blue"`
	Icon        string
	IsDefault   bool
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// Store wraps the gorm handle with the task and list operations the
// handlers need.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite database at path and
// migrates the schema. Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.AutoMigrate(&Task{}, &List{}); err != nil {
		return nil, fmt.Errorf("failed to migrate SQLite database: %w", err)
	}
	log.Infof("Database initialized at %s", path)
	return &Store{db: db}, nil
}

// TaskInput carries every writable task field for creation.
type TaskInput struct {
	Title           string
	Description     string
	DueDate         *string
	TimeOfDay       *string
	DurationMinutes *int
	Color           string
	Icon            string
	PriorityLevel   int
	RoutineType     string
	ListID          *string
	SortOrder       int
	Metadata        TaskMetadata
}

// TaskUpdate carries partial task updates; nil fields stay unchanged
// and the Clear flags reset the corresponding optional field.
type TaskUpdate struct {
	Title           *string
	Description     *string
	DueDate         *string
	ClearDueDate    bool
	TimeOfDay       *string
	ClearTimeOfDay  bool
	DurationMinutes *int
	ClearDuration   bool
	Color           *string
	Icon            *string
	PriorityLevel   *int
	RoutineType     *string
	ListID          *string
	ClearListID     bool
	SortOrder       *int
	Metadata        *TaskMetadata
}

// TaskFilter narrows ListTasks. Nil fields match everything.
type TaskFilter struct {
	ListID    *string
	Completed *bool
	DueOn     *string // ISO date
}

// CreateTask inserts a new task and returns it.
func (s *Store) CreateTask(input TaskInput) (*Task, error) {
	if input.ListID != nil {
		if _, err := s.GetList(*input.ListID); err != nil {
			return nil, fmt.Errorf("list %s: %w", *input.ListID, err)
		}
	}
	task := Task{
		ID:              uuid.NewString(),
		Title:           input.Title,
		Description:     input.Description,
		DueDate:         input.DueDate,
		TimeOfDay:       input.TimeOfDay,
		DurationMinutes: input.DurationMinutes,
		Color:           input.Color,
		Icon:            input.Icon,
		PriorityLevel:   input.PriorityLevel,
		RoutineType:     input.RoutineType,
		ListID:          input.ListID,
		SortOrder:       input.SortOrder,
		Metadata:        input.Metadata,
	}
	if task.Color == "" {
		task.Color = "blue"
	}
	if task.PriorityLevel == 0 {
		task.PriorityLevel = 3
	}
	if task.RoutineType == "" {
		task.RoutineType = "once"
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	log.Infof("Task %s created", task.ID)
	return &task, nil
}

// GetTask fetches one task by id.
func (s *Store) GetTask(id string) (*Task, error) {
	var task Task
	if err := s.db.First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks returns tasks matching the filter, ordered by sort order
// then creation time.
func (s *Store) ListTasks(filter TaskFilter) ([]Task, error) {
	q := s.db.Order("sort_order asc, created_at asc")
	if filter.ListID != nil {
		q = q.Where("list_id = ?", *filter.ListID)
	}
	if filter.Completed != nil {
		q = q.Where("is_completed = ?", *filter.Completed)
	}
	if filter.DueOn != nil {
		q = q.Where("due_date = ?", *filter.DueOn)
	}
	var tasks []Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask applies a partial update and returns the stored result.
func (s *Store) UpdateTask(id string, update TaskUpdate) (*Task, error) {
	task, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}
	if update.ListID != nil {
		if _, err := s.GetList(*update.ListID); err != nil {
			return nil, fmt.Errorf("list %s: %w", *update.ListID, err)
		}
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.DueDate != nil {
		task.DueDate = update.DueDate
	} else if update.ClearDueDate {
		task.DueDate = nil
	}
	if update.TimeOfDay != nil {
		task.TimeOfDay = update.TimeOfDay
	} else if update.ClearTimeOfDay {
		task.TimeOfDay = nil
	}
	if update.DurationMinutes != nil {
		task.DurationMinutes = update.DurationMinutes
	} else if update.ClearDuration {
		task.DurationMinutes = nil
	}
	if update.Color != nil {
		task.Color = *update.Color
	}
	if update.Icon != nil {
		task.Icon = *update.Icon
	}
	if update.PriorityLevel != nil {
		task.PriorityLevel = *update.PriorityLevel
	}
	if update.RoutineType != nil {
		task.RoutineType = *update.RoutineType
	}
	if update.ListID != nil {
		task.ListID = update.ListID
	} else if update.ClearListID {
		task.ListID = nil
	}
	if update.SortOrder != nil {
		task.SortOrder = *update.SortOrder
	}
	if update.Metadata != nil {
		task.Metadata = *update.Metadata
	}

	if err := s.db.Save(task).Error; err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// SetCompleted marks a task complete or incomplete, stamping or
// clearing CompletedAt accordingly.
func (s *Store) SetCompleted(id string, done bool) (*Task, error) {
	task, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}
	if done && !task.IsCompleted {
		now := time.Now()
		task.IsCompleted = true
		task.CompletedAt = &now
	} else if !done && task.IsCompleted {
		task.IsCompleted = false
		task.CompletedAt = nil
	}
	if err := s.db.Save(task).Error; err != nil {
		return nil, fmt.Errorf("failed to update task completion: %w", err)
	}
	return task, nil
}

// DeleteTask soft-deletes a task. Deleted tasks drop out of every
// query but stay in the table.
func (s *Store) DeleteTask(id string) error {
	res := s.db.Delete(&Task{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListInput carries the writable list fields.
type ListInput struct {
	Name        string
	Description string
	Color       string
	Icon        string
	IsDefault   bool
	SortOrder   int
}

// CreateList inserts a new list.
func (s *Store) CreateList(input ListInput) (*List, error) {
	if input.Name == "" {
		return nil, errors.New("list name is required")
	}
	list := List{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
		Icon:        input.Icon,
		IsDefault:   input.IsDefault,
		SortOrder:   input.SortOrder,
	}
	if list.Color == "" {
		list.Color = "blue"
	}
	if err := s.db.Create(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}
	return &list, nil
}

// GetList fetches one list by id.
func (s *Store) GetList(id string) (*List, error) {
	var list List
	if err := s.db.First(&list, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// ListLists returns every list ordered by sort order.
func (s *Store) ListLists() ([]List, error) {
	var lists []List
	if err := s.db.Order("sort_order asc, created_at asc").Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	return lists, nil
}

// DefaultList returns the inbox list, or ErrNotFound when none is
// flagged.
func (s *Store) DefaultList() (*List, error) {
	var list List
	if err := s.db.First(&list, "is_default = ?", true).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// CountTasks returns how many tasks in the list are pending and
// completed, for list summaries.
func (s *Store) CountTasks(listID string) (pending, completed int64, err error) {
	if err = s.db.Model(&Task{}).
		Where("list_id = ? AND is_completed = ?", listID, false).
		Count(&pending).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count pending tasks: %w", err)
	}
	if err = s.db.Model(&Task{}).
		Where("list_id = ? AND is_completed = ?", listID, true).
		Count(&completed).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count completed tasks: %w", err)
	}
	return pending, completed, nil
}
