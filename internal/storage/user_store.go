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
)

type UserStoreInterface interface {
	Insert(ctx context.Context, u *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}

type UserStore struct {
	col     *mongo.Collection
	timeout time.Duration
	logger  providers.Logger
}

func NewUserStore(client *mongo.Client, conf *structures.Config, logger providers.Logger) (UserStoreInterface, error) {
	store := &UserStore{
		col:     client.Database(conf.Mongo.Database).Collection("users"),
		timeout: conf.Mongo.Timeout,
		logger:  logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), conf.Mongo.Timeout)
	defer cancel()
	_, err := store.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("creating user indexes: %w", err)
	}

	return store, nil
}

func (s *UserStore) Insert(ctx context.Context, u *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.col.InsertOne(ctx, u)
	if err != nil {
		s.logger.Errorf(providers.TypeStore, "users.insert failed: %s", err)
		return fmt.Errorf("%w: insert user: %s", models.ErrStoreUnavailable, err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = id
	}
	return nil
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var u models.User
	err := s.col.FindOne(ctx, bson.M{"username": username}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		s.logger.Errorf(providers.TypeStore, "users.find failed: %s", err)
		return nil, fmt.Errorf("%w: find user: %s", models.ErrStoreUnavailable, err)
	}
	return &u, nil
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("%w: count users: %s", models.ErrStoreUnavailable, err)
	}
	return n, nil
}
