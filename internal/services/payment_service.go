package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/PandeyAnukrati/payment-app/internal/models"
	"github.com/PandeyAnukrati/payment-app/internal/providers"
	"github.com/PandeyAnukrati/payment-app/internal/storage"
	"github.com/google/uuid"
	"github.com/gookit/validate"
)

const (
	defaultCurrency = "USD"
	defaultPageSize = 10
	maxPageSize     = 100
)

type ListQuery struct {
	Page      int64
	Limit     int64
	Status    string
	Method    string
	Receiver  string
	StartDate string
	EndDate   string
}

type PaymentServiceInterface interface {
	Create(ctx context.Context, in *models.CreatePaymentInput) (*models.Payment, error)
	List(ctx context.Context, q ListQuery) (*models.PaymentPage, error)
	Get(ctx context.Context, id string) (*models.Payment, error)
	GetStats(ctx context.Context) (*models.StatsSnapshot, error)
}

type PaymentService struct {
	store    storage.PaymentStoreInterface
	notifier NotifierInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	now      func() time.Time
}

func NewPaymentService(
	store storage.PaymentStoreInterface,
	notifier NotifierInterface,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) PaymentServiceInterface {
	return &PaymentService{
		store:    store,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Create runs the validate → persist → broadcast flow. A persisted payment is
// reported as created even when broadcasting fails afterwards.
func (ps *PaymentService) Create(ctx context.Context, in *models.CreatePaymentInput) (*models.Payment, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	now := ps.now()
	payment := &models.Payment{
		Amount:        in.Amount,
		Receiver:      in.Receiver,
		Status:        models.PaymentStatus(in.Status),
		Method:        models.PaymentMethod(in.Method),
		Description:   in.Description,
		TransactionID: generateTransactionID(now),
		Currency:      in.Currency,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if payment.Currency == "" {
		payment.Currency = defaultCurrency
	}

	err := ps.store.Insert(ctx, payment)
	if errors.Is(err, models.ErrDuplicateTransaction) {
		// One retry with a fresh suffix; a second collision means something
		// is broken beyond what retrying can fix.
		payment.TransactionID = generateTransactionID(ps.now())
		err = ps.store.Insert(ctx, payment)
	}
	if err != nil {
		return nil, err
	}

	ps.metrics.IncPaymentsCreated(string(payment.Status))

	// newPayment must go out before statsUpdate; dashboard consumers rely on
	// seeing the raw record before the aggregate refresh.
	ps.notifier.BroadcastAll(EventNewPayment, payment)

	snapshot, statsErr := ps.GetStats(ctx)
	if statsErr != nil {
		ps.logger.Errorf(providers.TypeApp, "Stats recompute after create %s failed: %s", payment.TransactionID, statsErr)
		return payment, nil
	}
	ps.notifier.BroadcastRoom(DashboardRoom, EventStatsUpdate, snapshot)

	return payment, nil
}

func (ps *PaymentService) Get(ctx context.Context, id string) (*models.Payment, error) {
	return ps.store.FindByID(ctx, id)
}

func (ps *PaymentService) List(ctx context.Context, q ListQuery) (*models.PaymentPage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	filter := models.PaymentFilter{
		Status:   models.PaymentStatus(q.Status),
		Method:   models.PaymentMethod(q.Method),
		Receiver: q.Receiver,
	}
	if t, ok := parseDate(q.StartDate); ok {
		filter.From = t
	}
	if t, ok := parseDate(q.EndDate); ok {
		// End date is inclusive in the query surface; the filter upper bound
		// is exclusive, so advance it one day.
		filter.To = t.AddDate(0, 0, 1)
	}

	payments, total, err := ps.store.List(ctx, filter, page, limit)
	if err != nil {
		return nil, err
	}

	return &models.PaymentPage{
		Payments:   payments,
		Total:      total,
		Page:       page,
		TotalPages: int64(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// GetStats recomputes the full snapshot from the store. Nothing is cached;
// the result reflects store contents as of this call.
func (ps *PaymentService) GetStats(ctx context.Context) (*models.StatsSnapshot, error) {
	start := time.Now()
	now := ps.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := midnight.AddDate(0, 0, -7)

	todayFilter := models.PaymentFilter{Status: models.StatusSuccess, From: midnight, To: now}
	weekFilter := models.PaymentFilter{Status: models.StatusSuccess, From: weekStart, To: now}

	paymentsToday, err := ps.store.Count(ctx, todayFilter)
	if err != nil {
		return nil, err
	}
	paymentsWeek, err := ps.store.Count(ctx, weekFilter)
	if err != nil {
		return nil, err
	}
	revenueToday, err := ps.store.SumAmount(ctx, todayFilter)
	if err != nil {
		return nil, err
	}
	revenueWeek, err := ps.store.SumAmount(ctx, weekFilter)
	if err != nil {
		return nil, err
	}

	// All-time by design, unlike the windowed metrics above.
	failed, err := ps.store.Count(ctx, models.PaymentFilter{Status: models.StatusFailed})
	if err != nil {
		return nil, err
	}

	chart, err := ps.buildChart(ctx, now)
	if err != nil {
		return nil, err
	}

	ps.metrics.ObserveStatsCompute(time.Since(start))

	return &models.StatsSnapshot{
		TotalPaymentsToday: paymentsToday,
		TotalPaymentsWeek:  paymentsWeek,
		TotalRevenueToday:  revenueToday,
		TotalRevenueWeek:   revenueWeek,
		FailedTransactions: failed,
		RevenueChart:       chart,
	}, nil
}

// buildChart returns exactly 7 points, one per calendar day ending today,
// oldest first. Days absent from the grouped result come back zero-filled;
// the merge is by day key, never by slice index.
func (ps *PaymentService) buildChart(ctx context.Context, now time.Time) ([]models.RevenuePoint, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	chartStart := midnight.AddDate(0, 0, -(models.ChartDaySpan - 1))

	buckets, err := ps.store.RevenueByDay(ctx, models.PaymentFilter{
		Status: models.StatusSuccess,
		From:   chartStart,
		To:     now,
	})
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]storage.DayBucket, len(buckets))
	for _, b := range buckets {
		byDay[b.Day] = b
	}

	chart := make([]models.RevenuePoint, 0, models.ChartDaySpan)
	for _, day := range models.ChartDays(now) {
		point := models.RevenuePoint{Date: day}
		if b, ok := byDay[day]; ok {
			point.Revenue = b.Revenue
			point.Count = b.Count
		}
		chart = append(chart, point)
	}
	return chart, nil
}

func validateInput(in *models.CreatePaymentInput) error {
	v := validate.Struct(in)
	if !v.Validate() {
		fields := make(map[string]string)
		for field, msgs := range v.Errors.All() {
			for _, msg := range msgs {
				fields[field] = msg
				break
			}
		}
		return &models.ValidationError{Fields: fields}
	}
	if in.Amount <= 0 {
		return models.NewValidationError("amount", "amount must be greater than zero")
	}
	if strings.TrimSpace(in.Receiver) == "" {
		return models.NewValidationError("receiver", "receiver must not be empty")
	}
	return nil
}

// generateTransactionID produces TXN + unix millis + a 10-char random suffix.
// Uniqueness is enforced by the store index, not by this generator.
func generateTransactionID(now time.Time) string {
	u := uuid.New()
	suffix := strings.ToUpper(strings.ReplaceAll(u.String(), "-", ""))[:10]
	return fmt.Sprintf("TXN%d%s", now.UnixMilli(), suffix)
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}
