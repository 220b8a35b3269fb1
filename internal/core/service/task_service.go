package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhub/task-management-api/internal/api/metrics"
	"github.com/taskhub/task-management-api/internal/core/domain"
	"github.com/taskhub/task-management-api/internal/core/ports"
)

// TaskCache abstracts the task-by-id cache (Redis). A nil task with a nil
// error means a miss.
type TaskCache interface {
	Get(ctx context.Context, id string) (*domain.Task, error)
	Set(ctx context.Context, task *domain.Task) error
	Invalidate(ctx context.Context, id string) error
}

// TaskService implements task CRUD plus the mutation authorization policy.
type TaskService struct {
	tasks    ports.TaskRepository
	comments ports.CommentRepository
	users    ports.UserRepository
	cache    TaskCache
	logger   zerolog.Logger
}

func NewTaskService(
	tasks ports.TaskRepository,
	comments ports.CommentRepository,
	users ports.UserRepository,
	cache TaskCache,
	logger zerolog.Logger,
) *TaskService {
	return &TaskService{tasks: tasks, comments: comments, users: users, cache: cache, logger: logger}
}

// Create persists a new task. The performer must be a registered user; the
// author is the authenticated caller and is trusted.
func (s *TaskService) Create(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	performer, err := s.users.FindByEmail(ctx, in.PerformerEmail)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		Header:         in.Header,
		Description:    in.Description,
		Status:         in.Status,
		Priority:       in.Priority,
		AuthorEmail:    in.AuthorEmail,
		PerformerEmail: performer.Email,
		CreatedAt:      time.Now().UTC(),
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(created.Priority)).Inc()
	s.logger.Info().Str("task_id", created.ID).Str("author", created.AuthorEmail).Msg("task created")

	return created, nil
}

// Get returns a task with its comments, reading the task through the cache.
func (s *TaskService) Get(ctx context.Context, id string) (*ports.TaskDetail, error) {
	task, err := s.findTask(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.FindByTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}

	return &ports.TaskDetail{Task: *task, Comments: comments}, nil
}

func (s *TaskService) List(ctx context.Context, offset, limit int) (*ports.TaskSlice, error) {
	tasks, hasNext, err := s.tasks.FindAll(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return &ports.TaskSlice{Tasks: tasks, HasNext: hasNext}, nil
}

func (s *TaskService) ListByAuthor(ctx context.Context, email string, offset, limit int) (*ports.TaskSlice, error) {
	tasks, hasNext, err := s.tasks.FindByAuthor(ctx, email, offset, limit)
	if err != nil {
		return nil, err
	}
	return &ports.TaskSlice{Tasks: tasks, HasNext: hasNext}, nil
}

func (s *TaskService) ListByPerformer(ctx context.Context, email string, offset, limit int) (*ports.TaskSlice, error) {
	tasks, hasNext, err := s.tasks.FindByPerformer(ctx, email, offset, limit)
	if err != nil {
		return nil, err
	}
	return &ports.TaskSlice{Tasks: tasks, HasNext: hasNext}, nil
}

// Update applies the requested changes under the mutation policy: the author
// may change everything, the performer only the status, anyone else is
// rejected.
func (s *TaskService) Update(ctx context.Context, id, identity string, in ports.UpdateTaskInput) error {
	task, err := s.findTask(ctx, id)
	if err != nil {
		return err
	}

	switch identity {
	case task.AuthorEmail:
		if in.PerformerEmail != task.PerformerEmail {
			performer, err := s.users.FindByEmail(ctx, in.PerformerEmail)
			if err != nil {
				return err
			}
			task.PerformerEmail = performer.Email
		}
		task.Header = in.Header
		task.Description = in.Description
		task.Status = in.Status
		task.Priority = in.Priority
	case task.PerformerEmail:
		// Performer may move the status only; everything else is kept.
		task.Status = in.Status
	default:
		metrics.AuthzDeniedTotal.WithLabelValues("task_update").Inc()
		return domain.ErrForbidden
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return err
	}
	s.invalidate(ctx, task.ID)

	s.logger.Info().Str("task_id", task.ID).Str("identity", identity).Msg("task updated")
	return nil
}

// Delete removes a task. Only the author may delete it.
func (s *TaskService) Delete(ctx context.Context, id, identity string) error {
	task, err := s.findTask(ctx, id)
	if err != nil {
		return err
	}

	if task.AuthorEmail != identity {
		metrics.AuthzDeniedTotal.WithLabelValues("task_delete").Inc()
		return domain.ErrForbidden
	}

	if err := s.tasks.Delete(ctx, task.ID); err != nil {
		return err
	}
	s.invalidate(ctx, task.ID)

	s.logger.Info().Str("task_id", task.ID).Str("identity", identity).Msg("task deleted")
	return nil
}

// findTask reads through the cache. Cache failures degrade to the repository
// and never fail the request.
func (s *TaskService) findTask(ctx context.Context, id string) (*domain.Task, error) {
	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Str("task_id", id).Msg("task cache read failed")
	} else if cached != nil {
		metrics.TaskCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.TaskCacheTotal.WithLabelValues("miss").Inc()

	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, task); err != nil {
		s.logger.Warn().Err(err).Str("task_id", id).Msg("task cache write failed")
	}
	return task, nil
}

func (s *TaskService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("task_id", id).Msg("task cache invalidation failed")
	}
}
