//go:build integration

package persistence_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/domain/banking"
	"github.com/bookkeeping/backend/internal/domain/voucher"
	"github.com/bookkeeping/backend/internal/infrastructure/config"
	"github.com/bookkeeping/backend/internal/infrastructure/migration"
	"github.com/bookkeeping/backend/internal/infrastructure/persistence"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

const (
	pgUser     = "postgres"
	pgPassword = "ledger123"
	pgDatabase = "bookkeeping_test"
)

// newPostgres starts a throwaway PostgreSQL, applies the versioned
// migrations and returns a connected Database
func newPostgres(t *testing.T) *persistence.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase(pgDatabase),
		tcpostgres.WithUsername(pgUser),
		tcpostgres.WithPassword(pgPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	m, err := migration.New(sqlDB, migration.DriverPostgres, migration.Dir(migrationsRoot(t), config.DriverPostgres), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:       config.DriverPostgres,
		Host:         host,
		Port:         port.Int(),
		User:         pgUser,
		Password:     pgPassword,
		DBName:       pgDatabase,
		SSLMode:      "disable",
		MaxOpenConns: 10,
		MaxIdleConns: 2,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func migrationsRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")
}

func TestPostgres_ConcurrentVoucherIssuance(t *testing.T) {
	db := newPostgres(t)
	counters := persistence.NewGormCounterRepository(db.DB, 100)

	const workers = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		got  []int64
		errs []error
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := counters.Next(context.Background(), voucher.KeyVoucher)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			got = append(got, n)
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	for i, n := range got {
		assert.Equal(t, int64(i+1), n, "numbers must be gap-free and unique")
	}
}

func TestPostgres_TransfersOnMigratedSchema(t *testing.T) {
	db := newPostgres(t)
	services := ledger.NewServices(ledger.Dependencies{
		Repos:  persistence.NewRepositories(db.DB, 100),
		Scope:  persistence.NewGormTransactionScope(db.DB, 100),
		Config: ledger.Config{VoucherPrefix: "VCH", PurchasePrefix: "PUR"},
	}, nil)
	ctx := context.Background()

	from, err := services.Banks.CreateBank(ctx, "Operating", "001", decimal.NewFromInt(1000))
	require.NoError(t, err)
	to, err := services.Banks.CreateBank(ctx, "Reserve", "002", decimal.Zero)
	require.NoError(t, err)

	const transfers = 8
	var wg sync.WaitGroup
	vouchers := make(chan string, transfers)
	for i := range transfers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := services.Banks.Transfer(ctx, ledger.TransferInput{
				FromBankID: from.ID,
				ToBankID:   to.ID,
				Amount:     decimal.NewFromInt(50),
				Date:       time.Now().UTC(),
				Remarks:    "sweep " + strconv.Itoa(i),
			})
			if assert.NoError(t, err) {
				vouchers <- res.Voucher
			}
		}()
	}
	wg.Wait()
	close(vouchers)

	seen := map[string]bool{}
	for v := range vouchers {
		assert.False(t, seen[v], "voucher %s issued twice", v)
		seen[v] = true
	}
	assert.Len(t, seen, transfers)

	fromBal, err := services.Banks.Balance(ctx, from.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(600).Equal(fromBal.Balance), "got %s", fromBal.Balance)

	toBal, err := services.Banks.Balance(ctx, to.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(400).Equal(toBal.Balance), "got %s", toBal.Balance)

	txns, total, err := services.Banks.ListTransactions(ctx, to.ID, banking.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(transfers), total)
	assert.Len(t, txns, transfers)
}
