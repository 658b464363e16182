package quota

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/lostmatch/internal/domain"
)

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func TestTracker_RejectWhenExceeded(t *testing.T) {
	tr := NewTracker("test", 100, 0, ActionReject, zap.NewNop())

	tr.Record(100)

	err := tr.Check(context.Background())
	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("expected domain.ErrQuotaExceeded, got %v", err)
	}
	if tr.DailyRejected() != 1 || tr.MonthlyRejected() != 1 {
		t.Errorf("rejected = %d/%d, want 1/1", tr.DailyRejected(), tr.MonthlyRejected())
	}
}

func TestTracker_WarnWhenExceeded(t *testing.T) {
	tr := NewTracker("test", 100, 0, ActionWarn, zap.NewNop())

	tr.Record(200)

	if err := tr.Check(context.Background()); err != nil {
		t.Fatalf("expected nil error for warn action, got %v", err)
	}
	if tr.DailyRejected() != 0 {
		t.Errorf("warn action should not count rejections, got %d", tr.DailyRejected())
	}
}

func TestTracker_MonthlyReject(t *testing.T) {
	tr := NewTracker("test", 0, 500, ActionReject, zap.NewNop())

	tr.Record(500)

	if err := tr.Check(context.Background()); !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("expected domain.ErrQuotaExceeded for monthly limit, got %v", err)
	}
}

func TestTracker_UnlimitedWhenZero(t *testing.T) {
	tr := NewTracker("test", 0, 0, ActionReject, zap.NewNop())

	tr.Record(999999999)

	if err := tr.Check(context.Background()); err != nil {
		t.Fatalf("expected nil error for unlimited quota, got %v", err)
	}
	if tr.RemainingDaily() != -1 || tr.RemainingMonthly() != -1 {
		t.Errorf("remaining = %d/%d, want -1/-1", tr.RemainingDaily(), tr.RemainingMonthly())
	}
}

func TestTracker_Remaining(t *testing.T) {
	tr := NewTracker("test", 1000, 10000, ActionWarn, zap.NewNop())

	tr.Record(300)

	if got := tr.RemainingDaily(); got != 700 {
		t.Errorf("expected daily remaining 700, got %d", got)
	}
	if got := tr.RemainingMonthly(); got != 9700 {
		t.Errorf("expected monthly remaining 9700, got %d", got)
	}

	tr.Record(5000)
	if got := tr.RemainingDaily(); got != 0 {
		t.Errorf("expected daily remaining clamped to 0, got %d", got)
	}
}

func TestTracker_BelowLimitAllows(t *testing.T) {
	tr := NewTracker("test", 1000, 10000, ActionReject, zap.NewNop())

	tr.Record(999)

	if err := tr.Check(context.Background()); err != nil {
		t.Fatalf("expected nil error when below limit, got %v", err)
	}
}

func TestTracker_DayRollover(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 10, 17, 23, 59, 0, 0, time.UTC)}
	tr := NewTracker("test", 10, 100, ActionReject, zap.NewNop()).WithClock(clock.Now)

	tr.Record(10)
	if err := tr.Check(context.Background()); !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("expected quota exceeded before midnight, got %v", err)
	}

	clock.Set(time.Date(2026, 10, 18, 0, 0, 1, 0, time.UTC))
	if err := tr.Check(context.Background()); err != nil {
		t.Fatalf("expected daily reset after midnight, got %v", err)
	}
	if tr.DailyUsed() != 0 {
		t.Errorf("daily used = %d, want 0", tr.DailyUsed())
	}
	if tr.MonthlyUsed() != 10 {
		t.Errorf("monthly used = %d, want 10", tr.MonthlyUsed())
	}
	if tr.DailyRejected() != 0 || tr.MonthlyRejected() != 1 {
		t.Errorf("rejected = %d/%d, want 0/1", tr.DailyRejected(), tr.MonthlyRejected())
	}
}

func TestTracker_MonthRollover(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 10, 31, 12, 0, 0, 0, time.UTC)}
	tr := NewTracker("test", 0, 5, ActionReject, zap.NewNop()).WithClock(clock.Now)

	tr.Record(5)
	clock.Set(time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC))

	if tr.MonthlyUsed() != 0 {
		t.Errorf("monthly used = %d, want 0 after rollover", tr.MonthlyUsed())
	}
	if err := tr.Check(context.Background()); err != nil {
		t.Errorf("expected nil after month rollover, got %v", err)
	}
}

func TestParseAction(t *testing.T) {
	if ParseAction("reject") != ActionReject {
		t.Error("reject should parse to ActionReject")
	}
	for _, s := range []string{"", "warn", "other"} {
		if ParseAction(s) != ActionWarn {
			t.Errorf("ParseAction(%q) should default to warn", s)
		}
	}
}

// --- Mock CounterStore ---

type mockCounterStore struct {
	mu     sync.Mutex
	data   map[string]int64
	getErr error
	setErr error
}

func newMockCounterStore() *mockCounterStore {
	return &mockCounterStore{data: make(map[string]int64)}
}

func (m *mockCounterStore) IncrBy(_ context.Context, key string, val int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] += val
	return nil
}

func (m *mockCounterStore) Get(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return 0, m.getErr
	}
	return m.data[key], nil
}

// --- Persistence tests ---

var fixedNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

func TestTracker_WithStore_LoadsValues(t *testing.T) {
	store := newMockCounterStore()
	store.data["lostmatch:quota:match:daily:2026-10-17"] = 300
	store.data["lostmatch:quota:match:monthly:2026-10"] = 5000

	tr := NewTracker("match", 1000, 10000, ActionReject, zap.NewNop()).
		WithClock(func() time.Time { return fixedNow }).
		WithStore(context.Background(), store)

	if tr.DailyUsed() != 300 {
		t.Errorf("expected daily_used=300, got %d", tr.DailyUsed())
	}
	if tr.MonthlyUsed() != 5000 {
		t.Errorf("expected monthly_used=5000, got %d", tr.MonthlyUsed())
	}
}

func TestTracker_Record_PersistsToStore(t *testing.T) {
	store := newMockCounterStore()
	tr := NewTracker("match", 1000, 10000, ActionWarn, zap.NewNop()).
		WithClock(func() time.Time { return fixedNow }).
		WithStore(context.Background(), store)

	tr.Record(1)
	tr.Record(2)
	tr.Record(3)

	if tr.DailyUsed() != 6 {
		t.Errorf("expected daily_used=6, got %d", tr.DailyUsed())
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if got := store.data["lostmatch:quota:match:daily:2026-10-17"]; got != 6 {
		t.Errorf("expected store daily=6, got %d", got)
	}
	if got := store.data["lostmatch:quota:match:monthly:2026-10"]; got != 6 {
		t.Errorf("expected store monthly=6, got %d", got)
	}
}

func TestTracker_WithStore_LoadError(t *testing.T) {
	store := newMockCounterStore()
	store.getErr = errors.New("connection refused")

	tr := NewTracker("match", 1000, 10000, ActionReject, zap.NewNop())
	tr.WithStore(context.Background(), store)

	if tr.DailyUsed() != 0 || tr.MonthlyUsed() != 0 {
		t.Errorf("expected zero counters on load error, got %d/%d", tr.DailyUsed(), tr.MonthlyUsed())
	}
}

func TestTracker_Record_StoreWriteError(t *testing.T) {
	store := newMockCounterStore()
	tr := NewTracker("match", 1000, 10000, ActionWarn, zap.NewNop())
	tr.WithStore(context.Background(), store)

	store.mu.Lock()
	store.setErr = errors.New("write timeout")
	store.mu.Unlock()

	tr.Record(50)

	if tr.DailyUsed() != 50 {
		t.Errorf("expected daily_used=50 even with store error, got %d", tr.DailyUsed())
	}
}

func TestTracker_KeyFormat(t *testing.T) {
	tr := NewTracker("match", 0, 0, ActionWarn, zap.NewNop())
	if got := tr.dailyKey(fixedNow); got != "lostmatch:quota:match:daily:2026-10-17" {
		t.Errorf("dailyKey = %q", got)
	}
	if got := tr.monthlyKey(fixedNow); got != "lostmatch:quota:match:monthly:2026-10" {
		t.Errorf("monthlyKey = %q", got)
	}
}

func TestTracker_ConcurrentRecord(t *testing.T) {
	tr := NewTracker("match", 0, 0, ActionWarn, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Record(1)
			_ = tr.Check(context.Background())
		}()
	}
	wg.Wait()

	if tr.DailyUsed() != 50 {
		t.Errorf("daily used = %d, want 50", tr.DailyUsed())
	}
}
