package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/PandeyAnukrati/payment-app/internal/models"
	"github.com/PandeyAnukrati/payment-app/internal/providers"
	"github.com/PandeyAnukrati/payment-app/internal/storage"
	"github.com/PandeyAnukrati/payment-app/internal/structures"
	"github.com/PandeyAnukrati/payment-app/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.August, 28, 15, 30, 0, 0, time.Local)

func noopMetrics() providers.MetricsProviderInterface {
	return providers.NewMetricsProvider(&structures.Config{}, nil)
}

func newTestService(store storage.PaymentStoreInterface, notifier NotifierInterface) *PaymentService {
	return &PaymentService{
		store:    store,
		notifier: notifier,
		logger:   &testutil.MockLogger{},
		metrics:  noopMetrics(),
		now:      func() time.Time { return testNow },
	}
}

func validInput() *models.CreatePaymentInput {
	return &models.CreatePaymentInput{
		Amount:   150,
		Receiver: "John Doe",
		Status:   "success",
		Method:   "credit_card",
	}
}

// --- creation flow ---

func TestCreate_PersistsAndBroadcasts(t *testing.T) {
	store := &testutil.MemoryPaymentStore{}
	notifier := &testutil.MockNotifier{}
	ps := newTestService(store, notifier)

	payment, err := ps.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, 150.0, payment.Amount)
	assert.Equal(t, models.StatusSuccess, payment.Status)
	assert.Equal(t, "USD", payment.Currency)
	assert.Equal(t, testNow, payment.CreatedAt)
	assert.Equal(t, testNow, payment.UpdatedAt)
	assert.True(t, strings.HasPrefix(payment.TransactionID, "TXN"))
	require.Len(t, store.Payments, 1)

	require.Len(t, notifier.Events, 2)
	assert.Equal(t, EventNewPayment, notifier.Events[0].Event)
	assert.Empty(t, notifier.Events[0].Room)
	assert.Equal(t, EventStatsUpdate, notifier.Events[1].Event)
	assert.Equal(t, DashboardRoom, notifier.Events[1].Room)

	snapshot, ok := notifier.Events[1].Payload.(*models.StatsSnapshot)
	require.True(t, ok)
	assert.Equal(t, int64(1), snapshot.TotalPaymentsToday)
	assert.Equal(t, 150.0, snapshot.TotalRevenueToday)
}

func TestCreate_KeepsExplicitCurrency(t *testing.T) {
	ps := newTestService(&testutil.MemoryPaymentStore{}, &testutil.MockNotifier{})

	in := validInput()
	in.Currency = "EUR"
	payment, err := ps.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "EUR", payment.Currency)
}

func TestCreate_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.CreatePaymentInput)
		field  string
	}{
		{"zero amount", func(in *models.CreatePaymentInput) { in.Amount = 0 }, "amount"},
		{"negative amount", func(in *models.CreatePaymentInput) { in.Amount = -5 }, "amount"},
		{"empty receiver", func(in *models.CreatePaymentInput) { in.Receiver = "" }, "receiver"},
		{"blank receiver", func(in *models.CreatePaymentInput) { in.Receiver = "   " }, "receiver"},
		{"unknown status", func(in *models.CreatePaymentInput) { in.Status = "refunded" }, "status"},
		{"unknown method", func(in *models.CreatePaymentInput) { in.Method = "cash" }, "method"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &testutil.MemoryPaymentStore{}
			notifier := &testutil.MockNotifier{}
			ps := newTestService(store, notifier)

			in := validInput()
			tc.mutate(in)

			_, err := ps.Create(context.Background(), in)
			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
			assert.Empty(t, store.Payments)
			assert.Empty(t, notifier.Events)
		})
	}
}

func TestCreate_StoreUnavailable(t *testing.T) {
	store := &testutil.MemoryPaymentStore{Err: models.ErrStoreUnavailable}
	notifier := &testutil.MockNotifier{}
	ps := newTestService(store, notifier)

	_, err := ps.Create(context.Background(), validInput())
	require.ErrorIs(t, err, models.ErrStoreUnavailable)
	assert.Empty(t, notifier.Events)
}

// duplicateOnFirstInsertStore forces one transaction id collision.
type duplicateOnFirstInsertStore struct {
	testutil.MemoryPaymentStore
	inserts int
}

func (s *duplicateOnFirstInsertStore) Insert(ctx context.Context, p *models.Payment) error {
	s.inserts++
	if s.inserts == 1 {
		return models.ErrDuplicateTransaction
	}
	return s.MemoryPaymentStore.Insert(ctx, p)
}

func TestCreate_RetriesOnceOnDuplicateTransactionID(t *testing.T) {
	store := &duplicateOnFirstInsertStore{}
	ps := newTestService(store, &testutil.MockNotifier{})

	payment, err := ps.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, 2, store.inserts)
	require.Len(t, store.Payments, 1)
	assert.Equal(t, payment.TransactionID, store.Payments[0].TransactionID)
}

// statsFailingStore accepts writes but fails every aggregate read.
type statsFailingStore struct {
	testutil.MemoryPaymentStore
}

func (s *statsFailingStore) Count(context.Context, models.PaymentFilter) (int64, error) {
	return 0, fmt.Errorf("%w: count", models.ErrStoreUnavailable)
}

func TestCreate_SucceedsWhenStatsRecomputeFails(t *testing.T) {
	store := &statsFailingStore{}
	notifier := &testutil.MockNotifier{}
	ps := newTestService(store, notifier)

	payment, err := ps.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotNil(t, payment)

	// newPayment still fanned out; statsUpdate skipped.
	require.Len(t, notifier.Events, 1)
	assert.Equal(t, EventNewPayment, notifier.Events[0].Event)
}

// --- stats aggregation ---

func seedPayment(store *testutil.MemoryPaymentStore, amount float64, status models.PaymentStatus, createdAt time.Time) {
	_ = store.Insert(context.Background(), &models.Payment{
		Amount:        amount,
		Receiver:      "seed",
		Status:        status,
		Method:        models.MethodCreditCard,
		TransactionID: fmt.Sprintf("TXN-seed-%d-%d", createdAt.UnixNano(), len(store.Payments)),
		Currency:      "USD",
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	})
}

func TestGetStats_EmptyStore(t *testing.T) {
	ps := newTestService(&testutil.MemoryPaymentStore{}, &testutil.MockNotifier{})

	snapshot, err := ps.GetStats(context.Background())
	require.NoError(t, err)

	assert.Zero(t, snapshot.TotalPaymentsToday)
	assert.Zero(t, snapshot.TotalPaymentsWeek)
	assert.Zero(t, snapshot.TotalRevenueToday)
	assert.Zero(t, snapshot.TotalRevenueWeek)
	assert.Zero(t, snapshot.FailedTransactions)

	require.Len(t, snapshot.RevenueChart, models.ChartDaySpan)
	for i, point := range snapshot.RevenueChart {
		assert.Equal(t, testNow.AddDate(0, 0, i-6).Format("2006-01-02"), point.Date)
		assert.Zero(t, point.Revenue)
		assert.Zero(t, point.Count)
	}
}

func TestGetStats_SingleSuccessToday(t *testing.T) {
	store := &testutil.MemoryPaymentStore{}
	seedPayment(store, 150, models.StatusSuccess, testNow.Add(-time.Hour))
	ps := newTestService(store, &testutil.MockNotifier{})

	snapshot, err := ps.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), snapshot.TotalPaymentsToday)
	assert.Equal(t, int64(1), snapshot.TotalPaymentsWeek)
	assert.Equal(t, 150.0, snapshot.TotalRevenueToday)
	assert.Equal(t, 150.0, snapshot.TotalRevenueWeek)
	assert.Zero(t, snapshot.FailedTransactions)

	last := snapshot.RevenueChart[len(snapshot.RevenueChart)-1]
	assert.Equal(t, testNow.Format("2006-01-02"), last.Date)
	assert.Equal(t, 150.0, last.Revenue)
	assert.Equal(t, int64(1), last.Count)
}

func TestGetStats_FailedIsAllTimeAndExcludedFromRevenue(t *testing.T) {
	store := &testutil.MemoryPaymentStore{}
	seedPayment(store, 150, models.StatusSuccess, testNow.Add(-time.Hour))
	seedPayment(store, 200, models.StatusFailed, testNow.Add(-2*time.Hour))
	seedPayment(store, 300, models.StatusFailed, testNow.AddDate(0, 0, -30))
	ps := newTestService(store, &testutil.MockNotifier{})

	snapshot, err := ps.GetStats(context.Background())
	require.NoError(t, err)

	// Both failures count, even the one far outside every window.
	assert.Equal(t, int64(2), snapshot.FailedTransactions)
	assert.Equal(t, 150.0, snapshot.TotalRevenueToday)
	assert.Equal(t, int64(1), snapshot.TotalPaymentsToday)
}

func TestGetStats_WindowBoundaries(t *testing.T) {
	store := &testutil.MemoryPaymentStore{}
	midnight := time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 0, 0, 0, 0, time.Local)

	seedPayment(store, 10, models.StatusSuccess, midnight.Add(-time.Minute))    // yesterday: week only
	seedPayment(store, 20, models.StatusSuccess, midnight)                      // today window start
	seedPayment(store, 40, models.StatusSuccess, midnight.AddDate(0, 0, -8))    // before the week window
	seedPayment(store, 80, models.StatusPending, testNow.Add(-time.Minute))     // pending never counts
	ps := newTestService(store, &testutil.MockNotifier{})

	snapshot, err := ps.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), snapshot.TotalPaymentsToday)
	assert.Equal(t, 20.0, snapshot.TotalRevenueToday)
	assert.Equal(t, int64(2), snapshot.TotalPaymentsWeek)
	assert.Equal(t, 30.0, snapshot.TotalRevenueWeek)
}

func TestGetStats_Idempotent(t *testing.T) {
	store := &testutil.MemoryPaymentStore{}
	seedPayment(store, 150, models.StatusSuccess, testNow.Add(-time.Hour))
	seedPayment(store, 60, models.StatusSuccess, testNow.AddDate(0, 0, -3))
	ps := newTestService(store, &testutil.MockNotifier{})

	first, err := ps.GetStats(context.Background())
	require.NoError(t, err)
	second, err := ps.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetStats_WeekRevenueCoversToday(t *testing.T) {
	store := &testutil.MemoryPaymentStore{}
	seedPayment(store, 150, models.StatusSuccess, testNow.Add(-time.Hour))
	seedPayment(store, 60, models.StatusSuccess, testNow.AddDate(0, 0, -2))
	ps := newTestService(store, &testutil.MockNotifier{})

	snapshot, err := ps.GetStats(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, snapshot.TotalRevenueWeek, snapshot.TotalRevenueToday)
}

func TestBuildChart_ZeroFillsGaps(t *testing.T) {
	store := &testutil.MemoryPaymentStore{}
	oldest := testNow.AddDate(0, 0, -6)
	seedPayment(store, 25, models.StatusSuccess, oldest)
	seedPayment(store, 75, models.StatusSuccess, testNow.Add(-time.Hour))
	seedPayment(store, 999, models.StatusSuccess, testNow.AddDate(0, 0, -10)) // outside the span
	ps := newTestService(store, &testutil.MockNotifier{})

	chart, err := ps.buildChart(context.Background(), testNow)
	require.NoError(t, err)
	require.Len(t, chart, models.ChartDaySpan)

	assert.Equal(t, oldest.Format("2006-01-02"), chart[0].Date)
	assert.Equal(t, 25.0, chart[0].Revenue)
	assert.Equal(t, int64(1), chart[0].Count)

	for _, point := range chart[1:6] {
		assert.Zero(t, point.Revenue, "day %s", point.Date)
		assert.Zero(t, point.Count, "day %s", point.Date)
	}

	assert.Equal(t, testNow.Format("2006-01-02"), chart[6].Date)
	assert.Equal(t, 75.0, chart[6].Revenue)

	for i := 1; i < len(chart); i++ {
		assert.Less(t, chart[i-1].Date, chart[i].Date)
	}
}

func TestGetStats_StoreUnavailable(t *testing.T) {
	store := &testutil.MemoryPaymentStore{Err: models.ErrStoreUnavailable}
	ps := newTestService(store, &testutil.MockNotifier{})

	_, err := ps.GetStats(context.Background())
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
}

// --- listing ---

func TestList_PaginatesNewestFirst(t *testing.T) {
	store := &testutil.MemoryPaymentStore{}
	for i := 0; i < 25; i++ {
		seedPayment(store, float64(i+1), models.StatusSuccess, testNow.Add(-time.Duration(i)*time.Hour))
	}
	ps := newTestService(store, &testutil.MockNotifier{})

	page, err := ps.List(context.Background(), ListQuery{Page: 2, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, int64(2), page.Page)
	assert.Equal(t, int64(3), page.TotalPages)
	require.Len(t, page.Payments, 10)
	// Newest first: page 2 starts at the 11th most recent.
	assert.Equal(t, 11.0, page.Payments[0].Amount)
}

func TestList_DefaultsAndFilters(t *testing.T) {
	store := &testutil.MemoryPaymentStore{}
	seedPayment(store, 10, models.StatusSuccess, testNow.Add(-time.Hour))
	seedPayment(store, 20, models.StatusFailed, testNow.Add(-2*time.Hour))
	ps := newTestService(store, &testutil.MockNotifier{})

	page, err := ps.List(context.Background(), ListQuery{Status: "failed"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, int64(1), page.Page)
	require.Len(t, page.Payments, 1)
	assert.Equal(t, models.StatusFailed, page.Payments[0].Status)
}

func TestList_DateRangeInclusiveEndDate(t *testing.T) {
	store := &testutil.MemoryPaymentStore{}
	day := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.Local)
	seedPayment(store, 10, models.StatusSuccess, day)
	seedPayment(store, 20, models.StatusSuccess, day.AddDate(0, 0, 3))
	ps := newTestService(store, &testutil.MockNotifier{})

	page, err := ps.List(context.Background(), ListQuery{
		StartDate: "2026-08-20",
		EndDate:   "2026-08-20",
	})
	require.NoError(t, err)
	require.Len(t, page.Payments, 1)
	assert.Equal(t, 10.0, page.Payments[0].Amount)
}

// --- helpers ---

func TestGenerateTransactionID(t *testing.T) {
	id := generateTransactionID(testNow)
	assert.True(t, strings.HasPrefix(id, "TXN"))
	assert.Len(t, id, 3+13+10) // prefix + unix millis + suffix
	assert.Equal(t, strings.ToUpper(id), id)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		seen[generateTransactionID(testNow)] = struct{}{}
	}
	assert.Len(t, seen, 100)
}

func TestParseDate(t *testing.T) {
	tm, ok := parseDate("2026-08-28")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.August, 28, 0, 0, 0, 0, time.Local), tm)

	tm, ok = parseDate("2026-08-28T10:00:00Z")
	require.True(t, ok)
	assert.Equal(t, 10, tm.UTC().Hour())

	_, ok = parseDate("")
	assert.False(t, ok)
	_, ok = parseDate("not-a-date")
	assert.False(t, ok)
}
