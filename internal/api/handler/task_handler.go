package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-management-api/internal/core/domain"
	"github.com/taskhub/task-management-api/internal/core/ports"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// TaskHandler handles HTTP requests for task and comment operations.
type TaskHandler struct {
	tasks    ports.TaskService
	comments ports.CommentService
}

func NewTaskHandler(tasks ports.TaskService, comments ports.CommentService) *TaskHandler {
	return &TaskHandler{tasks: tasks, comments: comments}
}

// List handles GET /tasks.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        offset  query     int  false  "Records to skip"
// @Param        limit   query     int  false  "Page size (max 100)"
// @Success      200     {object}  taskSliceResponse
// @Failure      401     {object}  map[string]string
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	offset, limit := pagination(c)

	slice, err := h.tasks.List(c.Request().Context(), offset, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskSliceResponse(slice))
}

// ListByAuthor handles GET /tasks/author/:email.
//
// @Summary      List tasks by author
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        email   path      string  true  "Author email"
// @Param        offset  query     int     false "Records to skip"
// @Param        limit   query     int     false "Page size (max 100)"
// @Success      200     {object}  taskSliceResponse
// @Router       /tasks/author/{email} [get]
func (h *TaskHandler) ListByAuthor(c echo.Context) error {
	offset, limit := pagination(c)

	slice, err := h.tasks.ListByAuthor(c.Request().Context(), c.Param("email"), offset, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskSliceResponse(slice))
}

// ListByPerformer handles GET /tasks/performer/:email.
//
// @Summary      List tasks by performer
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        email   path      string  true  "Performer email"
// @Param        offset  query     int     false "Records to skip"
// @Param        limit   query     int     false "Page size (max 100)"
// @Success      200     {object}  taskSliceResponse
// @Router       /tasks/performer/{email} [get]
func (h *TaskHandler) ListByPerformer(c echo.Context) error {
	offset, limit := pagination(c)

	slice, err := h.tasks.ListByPerformer(c.Request().Context(), c.Param("email"), offset, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskSliceResponse(slice))
}

// Create handles POST /tasks. The author is always the authenticated caller.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      taskRequest  true  "Task details"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.tasks.Create(c.Request().Context(), ports.CreateTaskInput{
		Header:         req.Header,
		Description:    req.Description,
		Status:         domain.TaskStatus(req.Status),
		Priority:       domain.TaskPriority(req.Priority),
		AuthorEmail:    identity,
		PerformerEmail: req.Performer.Email,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: task.ID})
}

// Get handles GET /tasks/:id.
//
// @Summary      Get a task by id
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  taskResponse
// @Failure      400  {object}  map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	detail, err := h.tasks.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskDetailResponse(detail))
}

// Update handles PATCH /tasks/:id. The author may change everything; the
// performer only the status.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string       true  "Task id"
// @Param        body  body  taskRequest  true  "New task fields"
// @Success      200
// @Failure      403  {object}  map[string]string
// @Router       /tasks/{id} [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err = h.tasks.Update(c.Request().Context(), c.Param("id"), identity, ports.UpdateTaskInput{
		Header:         req.Header,
		Description:    req.Description,
		Status:         domain.TaskStatus(req.Status),
		Priority:       domain.TaskPriority(req.Priority),
		PerformerEmail: req.Performer.Email,
	})
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusOK)
}

// Delete handles DELETE /tasks/:id. Author only.
//
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id  path  string  true  "Task id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.tasks.Delete(c.Request().Context(), c.Param("id"), identity); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddComment handles PATCH /tasks/:id/comments.
//
// @Summary      Comment on a task
// @Tags         tasks
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string          true  "Task id"
// @Param        body  body  commentRequest  true  "Comment"
// @Success      201
// @Failure      400  {object}  map[string]string
// @Router       /tasks/{id}/comments [patch]
func (h *TaskHandler) AddComment(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.comments.Add(c.Request().Context(), c.Param("id"), identity, req.Text)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: comment.ID})
}

// DeleteComment handles DELETE /tasks/:id/comments/:cid. Comment author only.
//
// @Summary      Delete a comment
// @Tags         tasks
// @Security     BearerAuth
// @Param        id   path  string  true  "Task id"
// @Param        cid  path  string  true  "Comment id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Router       /tasks/{id}/comments/{cid} [delete]
func (h *TaskHandler) DeleteComment(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.comments.Delete(c.Request().Context(), c.Param("id"), c.Param("cid"), identity); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// pagination reads offset/limit query params with sane bounds.
func pagination(c echo.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return offset, limit
}
