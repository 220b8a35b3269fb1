package domain

import (
	"errors"
	"time"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusProgress  TaskStatus = "progress"
	StatusCompleted TaskStatus = "completed"
)

// TaskPriority represents how urgent a task is.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMiddle TaskPriority = "middle"
	PriorityHigh   TaskPriority = "high"
)

var ErrTaskNotFound = errors.New("task with this id not found")
var ErrCommentNotFound = errors.New("comment with this id not found")
var ErrForbidden = errors.New("access forbidden")

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProgress, StatusCompleted:
		return true
	}
	return false
}

// Valid reports whether p is one of the known task priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMiddle, PriorityHigh:
		return true
	}
	return false
}

// Task is the core aggregate. Author and performer are referenced by email;
// mutations are authorized against those two fields.
type Task struct {
	ID             string       `json:"id"`
	Header         string       `json:"header"`
	Description    string       `json:"description"`
	Status         TaskStatus   `json:"status"`
	Priority       TaskPriority `json:"priority"`
	AuthorEmail    string       `json:"author_email"`
	PerformerEmail string       `json:"performer_email"`
	CreatedAt      time.Time    `json:"created_at"`
}

// Comment is a note left under a task. Author holds the commenter's email.
type Comment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
