package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"expenseapi/internal/model"
	"expenseapi/internal/repository"
)

// expenseDocument is the stored shape of an expense.
// date and time are kept as YYYY-MM-DD / HH:MM:SS strings, the format existing collections already use;
// range filters rely on that layout sorting the same way as chronological order.
type expenseDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Amount   float64            `bson:"amount"`
	Category string             `bson:"category"`
	Date     string             `bson:"date"`
	Time     string             `bson:"time"`
}

func (d expenseDocument) toModel() model.Expense {
	return model.Expense{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Amount:   d.Amount,
		Category: d.Category,
		Date:     d.Date,
		Time:     d.Time,
	}
}

// ExpenseMongo is a MongoDB implementation of repository.ExpenseRepository.
type ExpenseMongo struct {
	coll *mongo.Collection
}

// NewExpenseMongo creates a repository backed by the given collection.
func NewExpenseMongo(coll *mongo.Collection) *ExpenseMongo {
	return &ExpenseMongo{coll: coll}
}

var _ repository.ExpenseRepository = (*ExpenseMongo)(nil)

// Create inserts the expense; the store assigns the ObjectID.
func (r *ExpenseMongo) Create(ctx context.Context, e *model.Expense) (*model.Expense, error) {
	doc := expenseDocument{
		Name:     e.Name,
		Amount:   e.Amount,
		Category: e.Category,
		Date:     e.Date,
		Time:     e.Time,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	doc.ID = oid

	out := doc.toModel()
	return &out, nil
}

// List returns every document in natural order.
func (r *ExpenseMongo) List(ctx context.Context) ([]model.Expense, error) {
	return r.find(ctx, bson.D{})
}

// ListByDateRange filters on the textual date field.
func (r *ExpenseMongo) ListByDateRange(ctx context.Context, dr model.DateRange) ([]model.Expense, error) {
	return r.find(ctx, dateRangeFilter(dr))
}

// Ping checks the client behind the collection.
func (r *ExpenseMongo) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}

func (r *ExpenseMongo) find(ctx context.Context, filter bson.D) ([]model.Expense, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []expenseDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	items := make([]model.Expense, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toModel())
	}
	return items, nil
}

func dateRangeFilter(dr model.DateRange) bson.D {
	return bson.D{{Key: "date", Value: bson.D{
		{Key: "$gte", Value: dr.FromString()},
		{Key: "$lt", Value: dr.ToString()},
	}}}
}
