package ports

import (
	"context"

	"github.com/taskhub/task-management-api/internal/core/domain"
)

// TaskRepository handles task persistence. Listing methods return the
// requested window plus a flag telling whether more records follow.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	FindAll(ctx context.Context, offset, limit int) ([]domain.Task, bool, error)
	FindByAuthor(ctx context.Context, email string, offset, limit int) ([]domain.Task, bool, error)
	FindByPerformer(ctx context.Context, email string, offset, limit int) ([]domain.Task, bool, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
}

// CommentRepository handles comment persistence.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	FindByTask(ctx context.Context, taskID string) ([]domain.Comment, error)
	Delete(ctx context.Context, id string) error
}
