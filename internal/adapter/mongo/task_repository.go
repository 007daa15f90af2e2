package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
)

type TaskRepository struct {
	collection *mongo.Collection
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{collection: db.Collection(tasksCollection)}
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	return r.find(ctx, bson.M{"userId": userID}, opts)
}

func (r *TaskRepository) ListCompletedBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.Task, error) {
	filter := bson.M{
		"userId":    userID,
		"completed": true,
		"updatedAt": bson.M{"$gte": from, "$lt": to},
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "updatedAt", Value: 1}}))
}

func (r *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	doc := newTaskDocument(task)
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return domain.Task{}, err
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) Update(ctx context.Context, userID, taskID string, input domain.UpdateTaskInput, updatedAt time.Time) (domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return domain.Task{}, domain.ErrInvalidID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc taskDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid, "userId": userID}, taskUpdateDocument(input, updatedAt), opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	oid, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return domain.ErrInvalidID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Task, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, doc.toDomain())
	}
	return tasks, nil
}

// taskUpdateDocument turns a patch into $set/$unset operators. Clearing a
// nullable field removes it from the document.
func taskUpdateDocument(input domain.UpdateTaskInput, updatedAt time.Time) bson.M {
	set := bson.M{"updatedAt": updatedAt}
	unset := bson.M{}

	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.DescriptionSet {
		if input.Description == nil {
			unset["description"] = ""
		} else {
			set["description"] = *input.Description
		}
	}
	if input.Completed != nil {
		set["completed"] = *input.Completed
	}
	if input.Priority != nil {
		set["priority"] = string(*input.Priority)
	}
	if input.Category != nil {
		set["category"] = *input.Category
	}
	if input.DueDateSet {
		if input.DueDate == nil {
			unset["dueDate"] = ""
		} else {
			set["dueDate"] = *input.DueDate
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}
