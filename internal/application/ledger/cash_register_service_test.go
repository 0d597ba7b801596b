package ledger_test

import (
	"context"
	"testing"

	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/domain/cashregister"
	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCashRegisterService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	branch := f.branch(t, "Main")
	counted := d(1200)

	figures := cashregister.Figures{
		OpeningCash:    d(500),
		SalesCash:      d(1000),
		ExpenseCash:    d(100),
		BankDeposit:    d(300),
		BankWithdrawal: d(300),
		ClosingCash:    &counted,
	}

	entry, err := f.services.CashRegister.CreateEntry(ctx, ledger.CashEntryInput{
		BranchID: branch.ID,
		Date:     date(2024, 5, 1),
		Figures:  figures,
	})
	require.NoError(t, err)
	assert.True(t, entry.ExpectedClosing.Equal(d(1400)))
	assert.True(t, entry.Difference.Equal(d(-200)))

	t.Run("second entry for the day is rejected", func(t *testing.T) {
		_, err := f.services.CashRegister.CreateEntry(ctx, ledger.CashEntryInput{
			BranchID: branch.ID,
			Date:     date(2024, 5, 1),
			Figures:  figures,
		})
		assert.ErrorIs(t, err, shared.ErrDuplicateCashEntry)
	})

	t.Run("edit recomputes the difference", func(t *testing.T) {
		recount := d(1400)
		fixed := figures
		fixed.ClosingCash = &recount

		edited, err := f.services.CashRegister.EditEntry(ctx, branch.ID, date(2024, 5, 1), fixed, "recounted")
		require.NoError(t, err)
		assert.True(t, edited.Difference.IsZero())
		assert.True(t, edited.IsBalanced())

		got, err := f.services.CashRegister.GetEntry(ctx, branch.ID, date(2024, 5, 1))
		require.NoError(t, err)
		assert.Equal(t, entry.ID, got.ID)
		assert.Equal(t, "recounted", got.Remarks)
	})

	t.Run("missing closing count balances", func(t *testing.T) {
		next := figures
		next.ClosingCash = nil
		e, err := f.services.CashRegister.CreateEntry(ctx, ledger.CashEntryInput{
			BranchID: branch.ID,
			Date:     date(2024, 5, 2),
			Figures:  next,
		})
		require.NoError(t, err)
		assert.True(t, e.ClosingCash.Equal(e.ExpectedClosing))
		assert.True(t, e.Difference.Equal(decimal.Zero))
	})

	t.Run("edit of a missing day", func(t *testing.T) {
		_, err := f.services.CashRegister.EditEntry(ctx, branch.ID, date(2024, 6, 1), figures, "")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("unknown branch", func(t *testing.T) {
		_, err := f.services.CashRegister.CreateEntry(ctx, ledger.CashEntryInput{
			BranchID: uuid.New(),
			Date:     date(2024, 5, 1),
			Figures:  figures,
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("list by branch", func(t *testing.T) {
		entries, total, err := f.services.CashRegister.ListEntries(ctx, cashregister.EntryFilter{BranchID: &branch.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, entries, 2)
	})
}
