package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	interfaces "github.com/sheikh-saqib/session-account-ledger/internal/interfaces"
	"github.com/sheikh-saqib/session-account-ledger/internal/models"
	"github.com/sheikh-saqib/session-account-ledger/internal/models/events"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Ledger owns the balance of one session.
// Every read-modify-write goes through mu, so a Ledger may be shared between
// goroutines even though the interactive shell only ever drives it from one.
type Ledger struct {
	store     interfaces.BalanceStore
	validator Validator
	publisher interfaces.EventPublisher
	logger    *zap.Logger
	sessionID string
	now       func() time.Time
	mu        sync.Mutex
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithPublisher sends a BalanceChanged event after every committed mutation.
func WithPublisher(p interfaces.EventPublisher) Option {
	return func(l *Ledger) {
		l.publisher = p
	}
}

// WithLogger sets the logger; nil keeps the no-op default.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) Option {
	return func(l *Ledger) {
		if id != "" {
			l.sessionID = id
		}
	}
}

// WithClock sets the time source stamped on published events.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLedger creates a ledger over store. The store decides the starting
// balance; there is no way to reset it other than building a new ledger.
func NewLedger(store interfaces.BalanceStore, opts ...Option) *Ledger {
	l := &Ledger{
		store:     store,
		logger:    zap.NewNop(),
		sessionID: uuid.New().String(),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	l.logger = l.logger.With(zap.String("session_id", l.sessionID))

	return l
}

// SessionID identifies this ledger's session in logs and events.
func (l *Ledger) SessionID() string {
	return l.sessionID
}

// GetBalance returns the current balance. It has no side effects.
func (l *Ledger) GetBalance() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.store.Balance()
}

// SetBalance replaces the balance without validating it. Callers must only
// pass balances produced by an accepted Outcome.
func (l *Ledger) SetBalance(balance decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.store.SetBalance(balance)
}

// PostRaw parses raw as the amount of a credit or debit and posts it.
func (l *Ledger) PostRaw(ctx context.Context, kind models.TransactionKind, raw string) models.Outcome {
	return l.Post(ctx, models.NewTransactionRequest(kind, raw))
}

// Post validates req against the current balance and commits it when accepted.
// The read, the validation and the write happen under a single lock.
func (l *Ledger) Post(ctx context.Context, req models.TransactionRequest) models.Outcome {
	l.mu.Lock()
	previous := l.store.Balance()
	outcome := l.validator.Evaluate(previous, req)
	if outcome.Accepted && req.Kind.Mutates() {
		l.store.SetBalance(outcome.Balance)
	}
	l.mu.Unlock()

	if !outcome.Accepted {
		l.logger.Info("transaction rejected",
			zap.String("kind", req.Kind.String()),
			zap.String("amount", req.RawAmount),
			zap.String("reason", string(outcome.Reason)),
			zap.String("balance", models.FormatAmount(previous)),
		)
		return outcome
	}

	if !req.Kind.Mutates() {
		return outcome
	}

	l.logger.Debug("transaction committed",
		zap.String("kind", req.Kind.String()),
		zap.String("amount", models.FormatAmount(req.Amount)),
		zap.String("previous_balance", models.FormatAmount(previous)),
		zap.String("new_balance", models.FormatAmount(outcome.Balance)),
	)

	l.publish(ctx, events.NewBalanceChanged(l.sessionID, req, previous, outcome.Balance, l.now()))

	return outcome
}

func (l *Ledger) publish(ctx context.Context, event events.BalanceChanged) {
	if l.publisher == nil {
		return
	}

	// The balance is already committed; a failed notification is only logged.
	if err := l.publisher.Publish(ctx, l.sessionID, event); err != nil {
		l.logger.Warn("failed to publish balance change",
			zap.String("event_id", event.EventID),
			zap.Error(err),
		)
	}
}
