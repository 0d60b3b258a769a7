package services

import (
	"context"

	"github.com/PandeyAnukrati/payment-app/internal/models"
	"github.com/PandeyAnukrati/payment-app/internal/providers"
	"github.com/PandeyAnukrati/payment-app/internal/storage"
	"github.com/PandeyAnukrati/payment-app/internal/structures"
)

// Seeder populates demo users and sample payments on first start. Payments go
// through the regular creation flow so the usual broadcasts fire.
type Seeder struct {
	conf     *structures.Config
	logger   providers.Logger
	users    UserServiceInterface
	payments PaymentServiceInterface
	store    storage.PaymentStoreInterface
}

func NewSeeder(
	conf *structures.Config,
	logger providers.Logger,
	users UserServiceInterface,
	payments PaymentServiceInterface,
	store storage.PaymentStoreInterface,
) *Seeder {
	return &Seeder{
		conf:     conf,
		logger:   logger,
		users:    users,
		payments: payments,
		store:    store,
	}
}

func (s *Seeder) Run(ctx context.Context) {
	if !s.conf.Seed.Enabled {
		return
	}

	if err := s.users.SeedDefaults(ctx); err != nil {
		s.logger.Errorf(providers.TypeApp, "Seeding users failed: %s", err)
	}

	count, err := s.store.Count(ctx, models.PaymentFilter{})
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Seeding payments skipped, count failed: %s", err)
		return
	}
	if count > 0 {
		return
	}

	samples := []models.CreatePaymentInput{
		{Amount: 150.00, Receiver: "John Doe", Status: "success", Method: "credit_card", Description: "Online purchase", Currency: "USD"},
		{Amount: 75.50, Receiver: "Jane Smith", Status: "success", Method: "paypal", Description: "Service payment", Currency: "USD"},
		{Amount: 200.00, Receiver: "Bob Johnson", Status: "failed", Method: "bank_transfer", Description: "Refund", Currency: "USD"},
		{Amount: 89.99, Receiver: "Alice Brown", Status: "pending", Method: "debit_card", Description: "Subscription", Currency: "USD"},
	}
	for i := range samples {
		if _, err := s.payments.Create(ctx, &samples[i]); err != nil {
			s.logger.Errorf(providers.TypeApp, "Seeding payment for %q failed: %s", samples[i].Receiver, err)
			return
		}
	}
	s.logger.Infof(providers.TypeApp, "Seeded %d sample payments", len(samples))
}
