package ledger_test

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/domain/banking"
	"github.com/bookkeeping/backend/internal/domain/partner"
	"github.com/bookkeeping/backend/internal/domain/voucher"
	"github.com/bookkeeping/backend/internal/infrastructure/config"
	"github.com/bookkeeping/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fixture struct {
	services *ledger.Services
	repos    ledger.Repositories
	counters *persistence.GormCounterRepository
	store    *memoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	database, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		Path:     ":memory:",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate())
	t.Cleanup(func() { _ = database.Close() })

	repos := persistence.NewRepositories(database.DB, 0)
	store := newMemoryStore()
	services := ledger.NewServices(ledger.Dependencies{
		Repos:  repos,
		Scope:  persistence.NewGormTransactionScope(database.DB, 0),
		Config: ledger.Config{VoucherPrefix: "VCH", PurchasePrefix: "PUR"},
		Logger: zaptest.NewLogger(t),
	}, store)
	return &fixture{
		services: services,
		repos:    repos,
		counters: persistence.NewGormCounterRepository(database.DB, 0),
		store:    store,
	}
}

func (f *fixture) bank(t *testing.T, name string, opening int64) *banking.Bank {
	t.Helper()
	b, err := f.services.Banks.CreateBank(context.Background(), name, "", decimal.NewFromInt(opening))
	require.NoError(t, err)
	return b
}

func (f *fixture) balance(t *testing.T, b *banking.Bank) decimal.Decimal {
	t.Helper()
	bal, err := f.services.Banks.Balance(context.Background(), b.ID)
	require.NoError(t, err)
	return bal.Balance
}

func (f *fixture) supplier(t *testing.T, name string) *partner.Supplier {
	t.Helper()
	s, err := f.services.Partners.CreateSupplier(context.Background(), name, partner.Contact{})
	require.NoError(t, err)
	return s
}

func (f *fixture) customer(t *testing.T, name string) *partner.Customer {
	t.Helper()
	c, err := f.services.Partners.CreateCustomer(context.Background(), name, partner.Contact{})
	require.NoError(t, err)
	return c
}

func (f *fixture) branch(t *testing.T, name string) *partner.Branch {
	t.Helper()
	b, err := f.services.Partners.CreateBranch(context.Background(), name, "")
	require.NoError(t, err)
	return b
}

// vouchersIssued returns how many vouchers the sequencer has handed out
func (f *fixture) vouchersIssued(t *testing.T) int64 {
	t.Helper()
	next, err := f.counters.Peek(context.Background(), voucher.KeyVoucher)
	require.NoError(t, err)
	return next - 1
}

func (f *fixture) saleTransactions(t *testing.T, ref string) []banking.BankTransaction {
	t.Helper()
	txns, err := f.repos.BankTransactions().FindByReference(context.Background(), ref)
	require.NoError(t, err)
	return txns
}

func d(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// memoryStore is an attachment store that keeps objects in a map
type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: make(map[string][]byte)}
}

func (s *memoryStore) Put(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = buf.Bytes()
	return nil
}

func (s *memoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.objects, k)
		s.deleted = append(s.deleted, k)
	}
	return nil
}

var _ ledger.AttachmentStore = (*memoryStore)(nil)
