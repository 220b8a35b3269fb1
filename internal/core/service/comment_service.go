package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhub/task-management-api/internal/api/metrics"
	"github.com/taskhub/task-management-api/internal/core/domain"
	"github.com/taskhub/task-management-api/internal/core/ports"
)

// CommentService implements comment creation and author-only deletion.
type CommentService struct {
	comments ports.CommentRepository
	tasks    ports.TaskRepository
	logger   zerolog.Logger
}

func NewCommentService(comments ports.CommentRepository, tasks ports.TaskRepository, logger zerolog.Logger) *CommentService {
	return &CommentService{comments: comments, tasks: tasks, logger: logger}
}

// Add attaches a comment to a task. The author is the authenticated caller.
func (s *CommentService) Add(ctx context.Context, taskID, author, text string) (*domain.Comment, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		TaskID:    task.ID,
		Author:    author,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.comments.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", task.ID).Str("author", author).Msg("comment added")
	return created, nil
}

// Delete removes a comment. Only the comment's author may delete it.
func (s *CommentService) Delete(ctx context.Context, taskID, commentID, identity string) error {
	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		return err
	}

	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.Author != identity {
		metrics.AuthzDeniedTotal.WithLabelValues("comment_delete").Inc()
		return domain.ErrForbidden
	}

	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return err
	}

	s.logger.Info().Str("comment_id", comment.ID).Str("identity", identity).Msg("comment deleted")
	return nil
}
