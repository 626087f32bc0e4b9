package models

import (
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	due := time.Now().Add(48 * time.Hour)
	task := NewTask("Plan sprint", PriorityHigh, &due, "planning")

	if task.ID == "" {
		t.Fatal("task ID is empty")
	}
	if task.Status != StatusPending {
		t.Errorf("new task status = %s, want %s", task.Status, StatusPending)
	}
	if !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Error("createdAt and updatedAt should match for a new task")
	}
	if err := ValidateStruct(task); err != nil {
		t.Errorf("new task failed validation: %v", err)
	}
}

func TestValidateStruct_Task(t *testing.T) {
	valid := NewTask("Valid task", PriorityMedium, nil, "work")

	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr bool
	}{
		{"valid", func(*Task) {}, false},
		{"empty description", func(tk *Task) { tk.Description = "" }, true},
		{"missing id", func(tk *Task) { tk.ID = "" }, true},
		{"non-uuid id", func(tk *Task) { tk.ID = "task-1" }, true},
		{"unknown status", func(tk *Task) { tk.Status = "archived" }, true},
		{"deleted status ok", func(tk *Task) { tk.Status = StatusDeleted }, false},
		{"zero created at", func(tk *Task) { tk.CreatedAt = time.Time{} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := valid
			tt.mutate(&task)
			err := ValidateStruct(task)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
