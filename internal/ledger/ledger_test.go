package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sheikh-saqib/session-account-ledger/internal/models"
	"github.com/sheikh-saqib/session-account-ledger/internal/models/events"
	"github.com/sheikh-saqib/session-account-ledger/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	events []any
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.keys = append(p.keys, key)
	p.events = append(p.events, event)
	return p.err
}

func newTestLedger(t *testing.T, balance string, opts ...Option) *Ledger {
	t.Helper()
	return NewLedger(memory.NewMemoryBalanceStoreWith(dec(balance)), opts...)
}

func TestNewLedgerStartsAtInitialBalance(t *testing.T) {
	l := NewLedger(memory.NewMemoryBalanceStore())

	assert.Equal(t, "1000.00", l.GetBalance().StringFixed(2))
	assert.NotEmpty(t, l.SessionID())
}

func TestGetBalanceIsIdempotent(t *testing.T) {
	l := NewLedger(memory.NewMemoryBalanceStore())

	first := l.GetBalance()
	for n := 0; n < 3; n++ {
		assert.True(t, first.Equal(l.GetBalance()))
	}
}

func TestSetBalanceDoesNotValidate(t *testing.T) {
	l := NewLedger(memory.NewMemoryBalanceStore())

	l.SetBalance(dec("2500.00"))
	assert.Equal(t, "2500.00", l.GetBalance().StringFixed(2))
}

func TestLedgersAreIndependent(t *testing.T) {
	ctx := context.Background()
	first := NewLedger(memory.NewMemoryBalanceStore())

	first.PostRaw(ctx, models.KindCredit, "500")
	first.PostRaw(ctx, models.KindDebit, "200")
	require.Equal(t, "1300.00", first.GetBalance().StringFixed(2))

	second := NewLedger(memory.NewMemoryBalanceStore())
	assert.Equal(t, "1000.00", second.GetBalance().StringFixed(2))
	assert.NotEqual(t, first.SessionID(), second.SessionID())
}

func TestPostScenarios(t *testing.T) {
	ctx := context.Background()

	t.Run("debit above balance is rejected", func(t *testing.T) {
		l := newTestLedger(t, "1000.00")

		out := l.PostRaw(ctx, models.KindDebit, "1500")

		assert.False(t, out.Accepted)
		assert.Equal(t, models.ReasonInsufficientFunds, out.Reason)
		assert.Equal(t, "1000.00", l.GetBalance().StringFixed(2))
	})

	t.Run("debit of whole balance reaches zero", func(t *testing.T) {
		l := newTestLedger(t, "1000.00")

		out := l.PostRaw(ctx, models.KindDebit, "1000.00")

		assert.True(t, out.Accepted)
		assert.True(t, l.GetBalance().IsZero())
		assert.Equal(t, "0.00", l.GetBalance().StringFixed(2))
	})

	t.Run("credit to exact maximum", func(t *testing.T) {
		l := newTestLedger(t, "999000.00")

		out := l.PostRaw(ctx, models.KindCredit, "999.99")

		assert.True(t, out.Accepted)
		assert.Equal(t, "999999.99", l.GetBalance().StringFixed(2))
	})

	t.Run("credit past maximum", func(t *testing.T) {
		l := newTestLedger(t, "999000.00")

		out := l.PostRaw(ctx, models.KindCredit, "2000.00")

		assert.Equal(t, models.ReasonExceedsMaximumBalance, out.Reason)
		assert.Equal(t, "999000.00", l.GetBalance().StringFixed(2))
	})

	t.Run("credit over transaction limit", func(t *testing.T) {
		l := newTestLedger(t, "1000.00")

		out := l.PostRaw(ctx, models.KindCredit, "1000000.00")

		assert.Equal(t, models.ReasonAmountExceedsTransactionLimit, out.Reason)
		assert.Equal(t, "1000.00", l.GetBalance().StringFixed(2))
	})

	t.Run("invalid amounts leave balance unchanged", func(t *testing.T) {
		l := newTestLedger(t, "1000.00")

		for _, raw := range []string{"0", "-100", "abc", ""} {
			for _, kind := range []models.TransactionKind{models.KindCredit, models.KindDebit} {
				out := l.PostRaw(ctx, kind, raw)
				assert.Equal(t, models.ReasonInvalidAmount, out.Reason, "%s %q", kind, raw)
			}
		}
		assert.Equal(t, "1000.00", l.GetBalance().StringFixed(2))
	})
}

func TestPostRoundTrip(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(memory.NewMemoryBalanceStore())

	out := l.PostRaw(ctx, models.KindCredit, "0.01")
	require.True(t, out.Accepted)
	assert.Equal(t, "1000.01", out.Balance.StringFixed(2))

	out = l.PostRaw(ctx, models.KindDebit, "0.01")
	require.True(t, out.Accepted)
	assert.True(t, l.GetBalance().Equal(models.InitialBalance))
}

func TestPostWorkflow(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(memory.NewMemoryBalanceStore())

	l.PostRaw(ctx, models.KindCredit, "500")
	assert.Equal(t, "1500.00", l.GetBalance().StringFixed(2))

	out := l.PostRaw(ctx, models.KindDebit, "2000")
	assert.ErrorIs(t, out.Err(), models.ErrInsufficientFunds)
	assert.Equal(t, "1500.00", l.GetBalance().StringFixed(2))

	l.PostRaw(ctx, models.KindDebit, "500")
	assert.Equal(t, "1000.00", l.GetBalance().StringFixed(2))

	// Consecutive debits until the funds run out.
	l.PostRaw(ctx, models.KindDebit, "300")
	l.PostRaw(ctx, models.KindDebit, "300")
	l.PostRaw(ctx, models.KindDebit, "300")
	out = l.PostRaw(ctx, models.KindDebit, "300")
	assert.False(t, out.Accepted)
	assert.Equal(t, "100.00", l.GetBalance().StringFixed(2))
}

func TestPostPublishesCommittedChanges(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	at := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	l := newTestLedger(t, "1000.00",
		WithPublisher(pub),
		WithSessionID("session-1"),
		WithClock(func() time.Time { return at }),
	)

	l.PostRaw(ctx, models.KindCredit, "250")
	l.PostRaw(ctx, models.KindDebit, "5000")
	l.Post(ctx, models.TransactionRequest{Kind: models.KindView})

	require.Len(t, pub.events, 1)
	assert.Equal(t, []string{"session-1"}, pub.keys)

	event, ok := pub.events[0].(events.BalanceChanged)
	require.True(t, ok)
	assert.Equal(t, "session-1", event.SessionID)
	assert.Equal(t, "CREDIT", event.Kind)
	assert.Equal(t, "250.00", event.Amount)
	assert.Equal(t, "1000.00", event.PreviousBalance)
	assert.Equal(t, "1250.00", event.NewBalance)
	assert.Equal(t, at, event.OccurredAt)
	assert.NotEmpty(t, event.EventID)
}

func TestPostPublishFailureKeepsOutcome(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	pub := &recordingPublisher{err: errors.New("broker unavailable")}

	l := newTestLedger(t, "1000.00", WithPublisher(pub), WithLogger(zap.New(core)))

	out := l.PostRaw(context.Background(), models.KindDebit, "100")

	assert.True(t, out.Accepted)
	assert.Equal(t, "900.00", l.GetBalance().StringFixed(2))
	require.Equal(t, 1, logs.FilterMessage("failed to publish balance change").Len())
}

func TestPostLogsRejections(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := newTestLedger(t, "10.00", WithLogger(zap.New(core)), WithSessionID("s"))

	l.PostRaw(context.Background(), models.KindDebit, "11")

	entries := logs.FilterMessage("transaction rejected").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "INSUFFICIENT_FUNDS", fields["reason"])
	assert.Equal(t, "s", fields["session_id"])
}

func TestPostRejectsUnknownKind(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	pub := &recordingPublisher{}
	l := newTestLedger(t, "1000.00", WithPublisher(pub), WithLogger(zap.New(core)))

	out := l.Post(context.Background(), models.NewAmountRequest(models.TransactionKind("TRANSFER"), dec("10")))

	assert.False(t, out.Accepted)
	assert.ErrorIs(t, out.Err(), models.ErrUnsupportedOperation)
	assert.Equal(t, "1000.00", l.GetBalance().StringFixed(2))
	assert.Empty(t, pub.events)

	entries := logs.FilterMessage("transaction rejected").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "UNSUPPORTED_OPERATION", entries[0].ContextMap()["reason"])
}

func TestPostKeepsSubCentAmountsExact(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t, "1000.00")

	out := l.PostRaw(ctx, models.KindDebit, "1000.004")
	assert.Equal(t, models.ReasonInsufficientFunds, out.Reason)
	assert.Equal(t, "1000.00", l.GetBalance().StringFixed(2))

	out = l.PostRaw(ctx, models.KindCredit, "0.005")
	assert.True(t, out.Accepted)
	assert.True(t, l.GetBalance().Equal(dec("1000.01")))
}

func TestPostSerializesConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t, "0.00")

	var wg sync.WaitGroup
	for n := 0; n < 100; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.PostRaw(ctx, models.KindCredit, "0.01")
		}()
	}
	wg.Wait()

	assert.Equal(t, "1.00", l.GetBalance().StringFixed(2))

	accepted := 0
	var mu sync.Mutex
	for n := 0; n < 150; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.PostRaw(ctx, models.KindDebit, "0.01").Accepted {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, accepted)
	assert.True(t, l.GetBalance().IsZero())
}
