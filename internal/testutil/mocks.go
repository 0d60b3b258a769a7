package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/PandeyAnukrati/payment-app/internal/models"
	"github.com/PandeyAnukrati/payment-app/internal/providers"
	"github.com/PandeyAnukrati/payment-app/internal/storage"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockNotifier implements services.NotifierInterface and records broadcasts
// in emission order.
type MockNotifier struct {
	mu     sync.Mutex
	Events []BroadcastCall
}

type BroadcastCall struct {
	Room    string // empty for BroadcastAll
	Event   string
	Payload interface{}
}

func (m *MockNotifier) BroadcastAll(event string, payload interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, BroadcastCall{Event: event, Payload: payload})
}

func (m *MockNotifier) BroadcastRoom(room, event string, payload interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, BroadcastCall{Room: room, Event: event, Payload: payload})
}

// MemoryPaymentStore is an in-memory reference implementation of
// storage.PaymentStoreInterface. Setting Err makes every operation fail with
// that error, simulating an unreachable store.
type MemoryPaymentStore struct {
	mu       sync.Mutex
	Payments []*models.Payment
	Err      error
}

func (m *MemoryPaymentStore) matches(f models.PaymentFilter, p *models.Payment) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Method != "" && p.Method != f.Method {
		return false
	}
	if f.Receiver != "" && !strings.Contains(strings.ToLower(p.Receiver), strings.ToLower(f.Receiver)) {
		return false
	}
	if !f.From.IsZero() && p.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !p.CreatedAt.Before(f.To) {
		return false
	}
	return true
}

func (m *MemoryPaymentStore) Insert(_ context.Context, p *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for _, existing := range m.Payments {
		if existing.TransactionID == p.TransactionID {
			return models.ErrDuplicateTransaction
		}
	}
	cp := *p
	m.Payments = append(m.Payments, &cp)
	return nil
}

func (m *MemoryPaymentStore) FindByID(_ context.Context, id string) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, p := range m.Payments {
		if p.ID.Hex() == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *MemoryPaymentStore) List(_ context.Context, f models.PaymentFilter, page, limit int64) ([]*models.Payment, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, 0, m.Err
	}

	matched := make([]*models.Payment, 0, len(m.Payments))
	for _, p := range m.Payments {
		if m.matches(f, p) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	out := make([]*models.Payment, 0, end-start)
	for _, p := range matched[start:end] {
		cp := *p
		out = append(out, &cp)
	}
	return out, total, nil
}

func (m *MemoryPaymentStore) Count(_ context.Context, f models.PaymentFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	var n int64
	for _, p := range m.Payments {
		if m.matches(f, p) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryPaymentStore) SumAmount(_ context.Context, f models.PaymentFilter) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	var sum float64
	for _, p := range m.Payments {
		if m.matches(f, p) {
			sum += p.Amount
		}
	}
	return sum, nil
}

func (m *MemoryPaymentStore) RevenueByDay(_ context.Context, f models.PaymentFilter) ([]storage.DayBucket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	byDay := make(map[string]*storage.DayBucket)
	for _, p := range m.Payments {
		if !m.matches(f, p) {
			continue
		}
		day := p.CreatedAt.Format("2006-01-02")
		b, ok := byDay[day]
		if !ok {
			b = &storage.DayBucket{Day: day}
			byDay[day] = b
		}
		b.Revenue += p.Amount
		b.Count++
	}

	buckets := make([]storage.DayBucket, 0, len(byDay))
	for _, b := range byDay {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Day < buckets[j].Day })
	return buckets, nil
}

func (m *MemoryPaymentStore) Ping(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Err
}

// MemoryUserStore is an in-memory storage.UserStoreInterface.
type MemoryUserStore struct {
	mu    sync.Mutex
	Users []*models.User
	Err   error
}

func (m *MemoryUserStore) Insert(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	cp := *u
	m.Users = append(m.Users, &cp)
	return nil
}

func (m *MemoryUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *MemoryUserStore) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.Users)), nil
}
