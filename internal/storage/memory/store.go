package memory

import (
	"sync" // guards the balance against concurrent readers and writers

	interfaces "github.com/sheikh-saqib/session-account-ledger/internal/interfaces"
	"github.com/sheikh-saqib/session-account-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// MemoryBalanceStore is an in-memory implementation of interfaces.BalanceStore.
// It keeps one balance for the lifetime of the process and forgets it on exit.
type MemoryBalanceStore struct {
	mu      sync.RWMutex
	balance decimal.Decimal
}

// NewMemoryBalanceStore creates a store seeded with the session's initial balance.
func NewMemoryBalanceStore() *MemoryBalanceStore {
	return NewMemoryBalanceStoreWith(models.InitialBalance)
}

// NewMemoryBalanceStoreWith creates a store seeded with an arbitrary balance.
// Used to start sessions from a known state, mostly in tests.
func NewMemoryBalanceStoreWith(balance decimal.Decimal) *MemoryBalanceStore {
	return &MemoryBalanceStore{
		balance: models.Quantize(balance),
	}
}

// Balance returns the stored value. decimal.Decimal is immutable so the
// caller can hold on to it without seeing later writes.
func (m *MemoryBalanceStore) Balance() decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.balance
}

// SetBalance replaces the stored value unconditionally.
func (m *MemoryBalanceStore) SetBalance(balance decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.balance = balance
}

// Compile-time check: ensure MemoryBalanceStore implements BalanceStore interface
var _ interfaces.BalanceStore = (*MemoryBalanceStore)(nil)
