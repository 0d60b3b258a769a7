package services

import (
	"context"
	"errors"
	"time"

	"github.com/PandeyAnukrati/payment-app/internal/models"
	"github.com/PandeyAnukrati/payment-app/internal/providers"
	"github.com/PandeyAnukrati/payment-app/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceInterface interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	Create(ctx context.Context, username, email, password, role string) (*models.User, error)
	SeedDefaults(ctx context.Context) error
}

type UserService struct {
	store  storage.UserStoreInterface
	logger providers.Logger
	now    func() time.Time
}

func NewUserService(store storage.UserStoreInterface, logger providers.Logger) UserServiceInterface {
	return &UserService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (us *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := us.store.FindByUsername(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, models.ErrInvalidCredentials
	}
	return user, nil
}

func (us *UserService) Create(ctx context.Context, username, email, password, role string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := us.now()
	user := &models.User{
		Username:  username,
		Email:     email,
		Password:  string(hash),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := us.store.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SeedDefaults creates the demo accounts on an empty users collection.
func (us *UserService) SeedDefaults(ctx context.Context) error {
	count, err := us.store.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		username, email, password, role string
	}{
		{"admin", "admin@payapp.local", "admin123", "admin"},
		{"demo", "demo@payapp.local", "demo123", "user"},
	}
	for _, d := range defaults {
		if _, err := us.Create(ctx, d.username, d.email, d.password, d.role); err != nil {
			return err
		}
		us.logger.Infof(providers.TypeApp, "Seeded default user %q", d.username)
	}
	return nil
}
