package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskhub/task-management-api/internal/core/domain"
)

const taskCollection = "tasks"

// TaskRepository persists tasks in the tasks collection.
type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(taskCollection)}
}

type taskDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Header         string             `bson:"header"`
	Description    string             `bson:"description"`
	Status         string             `bson:"status"`
	Priority       string             `bson:"priority"`
	AuthorEmail    string             `bson:"author_email"`
	PerformerEmail string             `bson:"performer_email"`
	CreatedAt      int64              `bson:"created_at"`
}

func (d taskDoc) toDomain() domain.Task {
	return domain.Task{
		ID:             d.ID.Hex(),
		Header:         d.Header,
		Description:    d.Description,
		Status:         domain.TaskStatus(d.Status),
		Priority:       domain.TaskPriority(d.Priority),
		AuthorEmail:    d.AuthorEmail,
		PerformerEmail: d.PerformerEmail,
		CreatedAt:      unixToTime(d.CreatedAt),
	}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	doc := taskDoc{
		Header:         task.Header,
		Description:    task.Description,
		Status:         string(task.Status),
		Priority:       string(task.Priority),
		AuthorEmail:    task.AuthorEmail,
		PerformerEmail: task.PerformerEmail,
		CreatedAt:      task.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	created := *task
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	var doc taskDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	task := doc.toDomain()
	return &task, nil
}

func (r *TaskRepository) FindAll(ctx context.Context, offset, limit int) ([]domain.Task, bool, error) {
	return r.findSlice(ctx, bson.M{}, offset, limit)
}

func (r *TaskRepository) FindByAuthor(ctx context.Context, email string, offset, limit int) ([]domain.Task, bool, error) {
	return r.findSlice(ctx, bson.M{"author_email": email}, offset, limit)
}

func (r *TaskRepository) FindByPerformer(ctx context.Context, email string, offset, limit int) ([]domain.Task, bool, error) {
	return r.findSlice(ctx, bson.M{"performer_email": email}, offset, limit)
}

// findSlice fetches one extra record past the window to compute has-next
// without a separate count query.
func (r *TaskRepository) findSlice(ctx context.Context, filter bson.M, offset, limit int) ([]domain.Task, bool, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit) + 1)

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, false, fmt.Errorf("find tasks: %w", err)
	}
	defer cur.Close(ctx)

	var docs []taskDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, false, fmt.Errorf("decode tasks: %w", err)
	}

	hasNext := len(docs) > limit
	if hasNext {
		docs = docs[:limit]
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, d := range docs {
		tasks = append(tasks, d.toDomain())
	}
	return tasks, hasNext, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	oid, err := primitive.ObjectIDFromHex(task.ID)
	if err != nil {
		return domain.ErrTaskNotFound
	}

	update := bson.M{"$set": bson.M{
		"header":          task.Header,
		"description":     task.Description,
		"status":          string(task.Status),
		"priority":        string(task.Priority),
		"performer_email": task.PerformerEmail,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTaskNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
