package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// TaskStatus represents the possible statuses of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
	// StatusDeleted is a soft-delete marker; the task's log entries are
	// never removed.
	StatusDeleted TaskStatus = "deleted"
)

// Task priorities by convention; any integer is accepted.
const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

// Task represents a single to-do item. Its identity never changes across
// updates; every mutation is recorded as a new snapshot log entry, and the
// current view of a task is the most recent snapshot per ID.
type Task struct {
	ID          string     `json:"id" validate:"required,uuid4"`
	Description string     `json:"description" validate:"required,min=1"`
	Priority    int        `json:"priority"`
	DueTime     *time.Time `json:"dueTime,omitempty"`
	Type        string     `json:"type"`
	Status      TaskStatus `json:"status" validate:"required,oneof=pending in-progress completed deleted"`
	CreatedAt   time.Time  `json:"createdAt" validate:"required"`
	UpdatedAt   time.Time  `json:"updatedAt" validate:"required"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}

// NewTask creates a task with a fresh ID and timestamps.
func NewTask(description string, priority int, dueTime *time.Time, taskType string) Task {
	now := time.Now()
	return Task{
		ID:          uuid.NewString(),
		Description: description,
		Priority:    priority,
		DueTime:     dueTime,
		Type:        taskType,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
