package ledger_test

import (
	"context"
	"testing"

	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/domain/banking"
	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankService_Transfer(t *testing.T) {
	ctx := context.Background()

	t.Run("moves money under one voucher", func(t *testing.T) {
		f := newFixture(t)
		from := f.bank(t, "Alpha", 1000)
		to := f.bank(t, "Beta", 100)

		result, err := f.services.Banks.Transfer(ctx, ledger.TransferInput{
			FromBankID: from.ID,
			ToBankID:   to.ID,
			Amount:     d(250),
			Date:       date(2024, 4, 2),
			Remarks:    "float top-up",
		})
		require.NoError(t, err)
		assert.Equal(t, "VCH-000001", result.Voucher)
		assert.True(t, result.Amount.Equal(d(250)))

		assert.True(t, f.balance(t, from).Equal(d(750)))
		assert.True(t, f.balance(t, to).Equal(d(350)))

		txns, err := f.repos.BankTransactions().FindByReference(ctx, result.Voucher)
		require.NoError(t, err)
		require.Len(t, txns, 2)
		types := []banking.TransactionType{txns[0].Type, txns[1].Type}
		assert.ElementsMatch(t, []banking.TransactionType{
			banking.TransactionTypeTransferOut,
			banking.TransactionTypeTransferIn,
		}, types)
		assert.Contains(t, txns[0].Description, "float top-up")
	})

	t.Run("rejects invalid transfers", func(t *testing.T) {
		f := newFixture(t)
		a := f.bank(t, "Alpha", 0)

		_, err := f.services.Banks.Transfer(ctx, ledger.TransferInput{FromBankID: a.ID, ToBankID: a.ID, Amount: d(1)})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		_, err = f.services.Banks.Transfer(ctx, ledger.TransferInput{FromBankID: a.ID, ToBankID: uuid.New(), Amount: d(0)})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		_, err = f.services.Banks.Transfer(ctx, ledger.TransferInput{FromBankID: a.ID, Amount: d(1)})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		_, err = f.services.Banks.Transfer(ctx, ledger.TransferInput{FromBankID: a.ID, ToBankID: uuid.New(), Amount: d(1)})
		assert.ErrorIs(t, err, shared.ErrNotFound)

		assert.Zero(t, f.vouchersIssued(t))
	})
}

func TestBankService_Balance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bank := f.bank(t, "Alpha", 500)

	for _, in := range []ledger.TransactionInput{
		{BankID: bank.ID, Type: banking.TransactionTypeDeposit, Amount: d(300), Date: date(2024, 1, 2)},
		{BankID: bank.ID, Type: banking.TransactionTypeWithdrawal, Amount: d(120), Date: date(2024, 1, 3)},
		{BankID: bank.ID, Type: banking.TransactionTypePayment, Amount: d(80), Date: date(2024, 1, 4)},
	} {
		_, err := f.services.Banks.RecordTransaction(ctx, in)
		require.NoError(t, err)
	}

	balance, err := f.services.Banks.Balance(ctx, bank.ID)
	require.NoError(t, err)
	assert.True(t, balance.Credits.Equal(d(300)))
	assert.True(t, balance.Debits.Equal(d(200)))
	assert.True(t, balance.Balance.Equal(d(600)))

	_, err = f.services.Banks.Balance(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = f.services.Banks.RecordTransaction(ctx, ledger.TransactionInput{
		BankID: uuid.New(), Type: banking.TransactionTypeDeposit, Amount: d(1),
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = f.services.Banks.CreateBank(ctx, "  ", "", d(0))
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestBankService_Reconciliation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bank := f.bank(t, "Alpha", 1000)

	for _, in := range []ledger.TransactionInput{
		{BankID: bank.ID, Type: banking.TransactionTypeDeposit, Amount: d(200), Date: date(2024, 1, 5)},
		{BankID: bank.ID, Type: banking.TransactionTypePayment, Amount: d(50), Date: date(2024, 2, 1)},
		{BankID: bank.ID, Type: banking.TransactionTypeDeposit, Amount: d(30), Date: date(2024, 2, 10)},
		{BankID: bank.ID, Type: banking.TransactionTypeWithdrawal, Amount: d(400), Date: date(2024, 3, 1)},
	} {
		_, err := f.services.Banks.RecordTransaction(ctx, in)
		require.NoError(t, err)
	}

	t.Run("full history", func(t *testing.T) {
		rec, err := f.services.Banks.Reconciliation(ctx, bank.ID, nil, nil)
		require.NoError(t, err)
		assert.True(t, rec.OpeningBalance.Equal(d(1000)))
		require.Len(t, rec.Lines, 4)
		assert.True(t, rec.Lines[0].RunningBalance.Equal(d(1200)))
		assert.True(t, rec.ClosingBalance.Equal(d(780)))
		assert.True(t, rec.TotalCredit.Equal(d(230)))
		assert.True(t, rec.TotalDebit.Equal(d(450)))
	})

	t.Run("period opens at the carried balance", func(t *testing.T) {
		from, to := date(2024, 2, 1), date(2024, 2, 29)
		rec, err := f.services.Banks.Reconciliation(ctx, bank.ID, &from, &to)
		require.NoError(t, err)
		assert.True(t, rec.OpeningBalance.Equal(d(1200)))
		require.Len(t, rec.Lines, 2)
		assert.True(t, rec.Lines[0].Debit.Equal(d(50)))
		assert.True(t, rec.Lines[1].Credit.Equal(d(30)))
		assert.True(t, rec.ClosingBalance.Equal(d(1180)))
	})

	t.Run("inverted range", func(t *testing.T) {
		from, to := date(2024, 3, 1), date(2024, 1, 1)
		_, err := f.services.Banks.Reconciliation(ctx, bank.ID, &from, &to)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("unknown bank", func(t *testing.T) {
		_, err := f.services.Banks.Reconciliation(ctx, uuid.New(), nil, nil)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
