package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PandeyAnukrati/payment-app/internal/models"
	"github.com/PandeyAnukrati/payment-app/internal/providers"
	"github.com/PandeyAnukrati/payment-app/internal/structures"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DayBucket is one grouped aggregation row; Day is a YYYY-MM-DD key. The
// chart builder merges buckets by that key, never by index, since days with
// no payments produce no bucket at all.
type DayBucket struct {
	Day     string  `bson:"_id"`
	Revenue float64 `bson:"revenue"`
	Count   int64   `bson:"count"`
}

type PaymentStoreInterface interface {
	Insert(ctx context.Context, p *models.Payment) error
	FindByID(ctx context.Context, id string) (*models.Payment, error)
	List(ctx context.Context, f models.PaymentFilter, page, limit int64) ([]*models.Payment, int64, error)
	Count(ctx context.Context, f models.PaymentFilter) (int64, error)
	SumAmount(ctx context.Context, f models.PaymentFilter) (float64, error)
	RevenueByDay(ctx context.Context, f models.PaymentFilter) ([]DayBucket, error)
	Ping(ctx context.Context) error
}

type PaymentStore struct {
	col     *mongo.Collection
	timeout time.Duration
	logger  providers.Logger
}

func NewPaymentStore(client *mongo.Client, conf *structures.Config, logger providers.Logger) (PaymentStoreInterface, error) {
	store := &PaymentStore{
		col:     client.Database(conf.Mongo.Database).Collection("payments"),
		timeout: conf.Mongo.Timeout,
		logger:  logger,
	}

	// The unique index is the real uniqueness guarantee for transaction ids;
	// the generator's random suffix only makes collisions negligible.
	ctx, cancel := context.WithTimeout(context.Background(), conf.Mongo.Timeout)
	defer cancel()
	_, err := store.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "transactionId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating payment indexes: %w", err)
	}

	return store, nil
}

func (s *PaymentStore) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func buildFilter(f models.PaymentFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Method != "" {
		filter["method"] = f.Method
	}
	if f.Receiver != "" {
		filter["receiver"] = primitive.Regex{Pattern: f.Receiver, Options: "i"}
	}
	createdAt := bson.M{}
	if !f.From.IsZero() {
		createdAt["$gte"] = f.From
	}
	if !f.To.IsZero() {
		createdAt["$lt"] = f.To
	}
	if len(createdAt) > 0 {
		filter["createdAt"] = createdAt
	}
	return filter
}

// storeErr maps driver failures to ErrStoreUnavailable so callers can apply
// the degrade-or-propagate policy without knowing driver error types.
func (s *PaymentStore) storeErr(op string, err error) error {
	s.logger.Errorf(providers.TypeStore, "payments.%s failed: %s", op, err)
	return fmt.Errorf("%w: %s: %s", models.ErrStoreUnavailable, op, err)
}

func (s *PaymentStore) Insert(ctx context.Context, p *models.Payment) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	res, err := s.col.InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrDuplicateTransaction
		}
		return s.storeErr("insert", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}
	return nil
}

func (s *PaymentStore) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var p models.Payment
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, s.storeErr("findById", err)
	}
	return &p, nil
}

func (s *PaymentStore) List(ctx context.Context, f models.PaymentFilter, page, limit int64) ([]*models.Payment, int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	filter := buildFilter(f)

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, s.storeErr("count", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, s.storeErr("find", err)
	}
	defer cursor.Close(ctx)

	payments := make([]*models.Payment, 0, limit)
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, 0, s.storeErr("decode", err)
	}
	return payments, total, nil
}

func (s *PaymentStore) Count(ctx context.Context, f models.PaymentFilter) (int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	n, err := s.col.CountDocuments(ctx, buildFilter(f))
	if err != nil {
		return 0, s.storeErr("count", err)
	}
	return n, nil
}

func (s *PaymentStore) SumAmount(ctx context.Context, f models.PaymentFilter) (float64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: buildFilter(f)}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, s.storeErr("sum", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, s.storeErr("sumDecode", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (s *PaymentStore) RevenueByDay(ctx context.Context, f models.PaymentFilter) ([]DayBucket, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	// Day keys must match the server-local keys the chart builder generates,
	// so the grouping timezone is the server's current UTC offset.
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: buildFilter(f)}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format":   "%Y-%m-%d",
				"date":     "$createdAt",
				"timezone": time.Now().Format("-07:00"),
			}},
			"revenue": bson.M{"$sum": "$amount"},
			"count":   bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, s.storeErr("revenueByDay", err)
	}
	defer cursor.Close(ctx)

	var buckets []DayBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, s.storeErr("revenueByDayDecode", err)
	}
	return buckets, nil
}

func (s *PaymentStore) Ping(ctx context.Context) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return s.col.Database().Client().Ping(ctx, readpref.Primary())
}
