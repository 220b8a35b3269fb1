package ports

import (
	"context"

	"github.com/taskhub/task-management-api/internal/core/domain"
)

// CreateTaskInput is the DTO passed from the transport layer to create a task.
// AuthorEmail is always the authenticated caller, never client-supplied.
type CreateTaskInput struct {
	Header         string
	Description    string
	Status         domain.TaskStatus
	Priority       domain.TaskPriority
	AuthorEmail    string
	PerformerEmail string
}

// UpdateTaskInput carries the requested changes for an existing task. How much
// of it is applied depends on who the caller is (author vs performer).
type UpdateTaskInput struct {
	Header         string
	Description    string
	Status         domain.TaskStatus
	Priority       domain.TaskPriority
	PerformerEmail string
}

// TaskSlice is one pagination window plus a has-more flag.
type TaskSlice struct {
	Tasks   []domain.Task
	HasNext bool
}

// TaskDetail is a task together with its comments.
type TaskDetail struct {
	Task     domain.Task
	Comments []domain.Comment
}

// TaskService implements task CRUD and the mutation authorization policy:
// only the author may delete, the author may update everything, the
// performer may update the status only.
type TaskService interface {
	Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, id string) (*TaskDetail, error)
	List(ctx context.Context, offset, limit int) (*TaskSlice, error)
	ListByAuthor(ctx context.Context, email string, offset, limit int) (*TaskSlice, error)
	ListByPerformer(ctx context.Context, email string, offset, limit int) (*TaskSlice, error)
	Update(ctx context.Context, id, identity string, in UpdateTaskInput) error
	Delete(ctx context.Context, id, identity string) error
}

// CommentService implements comment creation and author-only deletion.
type CommentService interface {
	Add(ctx context.Context, taskID, author, text string) (*domain.Comment, error)
	Delete(ctx context.Context, taskID, commentID, identity string) error
}
