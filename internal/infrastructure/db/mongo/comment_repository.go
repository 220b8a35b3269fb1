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

const commentCollection = "comments"

// CommentRepository persists comments in the comments collection.
type CommentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{coll: db.Collection(commentCollection)}
}

type commentDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	TaskID    string             `bson:"task_id"`
	Author    string             `bson:"author"`
	Text      string             `bson:"text"`
	CreatedAt int64              `bson:"created_at"`
}

func (d commentDoc) toDomain() domain.Comment {
	return domain.Comment{
		ID:        d.ID.Hex(),
		TaskID:    d.TaskID,
		Author:    d.Author,
		Text:      d.Text,
		CreatedAt: unixToTime(d.CreatedAt),
	}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	doc := commentDoc{
		TaskID:    comment.TaskID,
		Author:    comment.Author,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	created := *comment
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCommentNotFound
	}

	var doc commentDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}

	comment := doc.toDomain()
	return &comment, nil
}

func (r *CommentRepository) FindByTask(ctx context.Context, taskID string) ([]domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cur, err := r.coll.Find(ctx, bson.M{"task_id": taskID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find comments: %w", err)
	}
	defer cur.Close(ctx)

	var docs []commentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}

	comments := make([]domain.Comment, 0, len(docs))
	for _, d := range docs {
		comments = append(comments, d.toDomain())
	}
	return comments, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCommentNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}
