//go:build integration

package persistence_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/bookkeeping/backend/internal/domain/voucher"
	"github.com/bookkeeping/backend/internal/infrastructure/config"
	"github.com/bookkeeping/backend/internal/infrastructure/migration"
	"github.com/bookkeeping/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	myPassword = "ledger123"
	myDatabase = "bookkeeping_test"
)

// newMySQL starts a throwaway MySQL 8 (InnoDB, REPEATABLE READ), applies the
// versioned migrations and returns a connected Database
func newMySQL(t *testing.T) *persistence.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mysql:8.0",
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": myPassword,
				"MYSQL_DATABASE":      myDatabase,
			},
			WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start MySQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "3306/tcp")
	require.NoError(t, err)

	cfg := &config.DatabaseConfig{
		Driver:       config.DriverMySQL,
		Host:         host,
		Port:         port.Int(),
		User:         "root",
		Password:     myPassword,
		DBName:       myDatabase,
		MaxOpenConns: 20,
		MaxIdleConns: 2,
		LogLevel:     "silent",
	}

	m, err := migration.NewFromURL(cfg.MigrationURL(), migration.Dir(migrationsRoot(t), config.DriverMySQL), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	db, err := persistence.NewDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Each caller reads the counter before issuing from it, so its transaction
// snapshot is older than the commits of the callers ahead of it.
func TestMySQL_VoucherIssuanceInsideTransactions(t *testing.T) {
	db := newMySQL(t)
	first, err := persistence.NewGormCounterRepository(db.DB, 5).Next(context.Background(), voucher.KeyVoucher)
	require.NoError(t, err)
	require.Equal(t, int64(1), first)

	const workers = 12
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		got  []int64
		errs []error
	)
	start := make(chan struct{})
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			var issued int64
			err := db.DB.Transaction(func(tx *gorm.DB) error {
				counters := persistence.NewGormCounterRepository(tx, 5)
				if _, err := counters.Peek(context.Background(), voucher.KeyVoucher); err != nil {
					return err
				}
				time.Sleep(20 * time.Millisecond)
				n, err := counters.Next(context.Background(), voucher.KeyVoucher)
				issued = n
				return err
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			got = append(got, issued)
		}()
	}
	close(start)
	wg.Wait()

	require.Empty(t, errs)
	require.Len(t, got, workers)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	for i, n := range got {
		assert.Equal(t, int64(i+2), n, "numbers must be gap-free and unique")
	}

	next, err := persistence.NewGormCounterRepository(db.DB, 5).Peek(context.Background(), voucher.KeyVoucher)
	require.NoError(t, err)
	assert.Equal(t, int64(workers+2), next)
}

func TestMySQL_FirstUseOfKeyUnderContention(t *testing.T) {
	db := newMySQL(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make(chan int64, 10)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = db.DB.Transaction(func(tx *gorm.DB) error {
				n, err := persistence.NewGormCounterRepository(tx, 5).Next(ctx, voucher.KeyPurchaseInvoice)
				if assert.NoError(t, err) {
					results <- n
				}
				return err
			})
		}()
	}
	wg.Wait()
	close(results)

	seen := map[int64]bool{}
	for n := range results {
		assert.False(t, seen[n], "number %d issued twice", n)
		seen[n] = true
	}
	assert.Len(t, seen, 10)
	for n := int64(1); n <= 10; n++ {
		assert.True(t, seen[n], "number %d missing", n)
	}
}
