package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/domain/banking"
	"github.com/bookkeeping/backend/internal/domain/voucher"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTransactionScope_Execute(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	scope := NewGormTransactionScope(db, 0)
	root := NewRepositories(db, 0)

	bank, err := banking.NewBank("Main", "", decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, root.Banks().Save(ctx, bank))

	t.Run("commits every write", func(t *testing.T) {
		err := scope.Execute(ctx, func(repos ledger.Repositories) error {
			v, err := repos.Counters().Next(ctx, voucher.KeyVoucher)
			if err != nil {
				return err
			}
			tx, err := banking.NewBankTransaction(bank.ID, banking.TransactionTypeDeposit, decimal.NewFromInt(10), day(2026, 1, 1), voucher.Format("VCH", v), "")
			if err != nil {
				return err
			}
			return repos.BankTransactions().Save(ctx, tx)
		})
		require.NoError(t, err)

		found, err := root.BankTransactions().FindByReference(ctx, "VCH-000001")
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("rolls back the counter with the rest", func(t *testing.T) {
		boom := errors.New("late failure")
		err := scope.Execute(ctx, func(repos ledger.Repositories) error {
			if _, err := repos.Counters().Next(ctx, voucher.KeyVoucher); err != nil {
				return err
			}
			tx, err := banking.NewBankTransaction(bank.ID, banking.TransactionTypeDeposit, decimal.NewFromInt(99), day(2026, 1, 2), "VCH-000002", "")
			if err != nil {
				return err
			}
			if err := repos.BankTransactions().Save(ctx, tx); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		found, err := root.BankTransactions().FindByReference(ctx, "VCH-000002")
		require.NoError(t, err)
		assert.Empty(t, found)

		next, err := NewGormCounterRepository(db, 0).Peek(ctx, voucher.KeyVoucher)
		require.NoError(t, err)
		assert.Equal(t, int64(2), next)
	})
}
