package ledger_test

import (
	"context"
	"strings"
	"testing"

	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/domain/banking"
	"github.com/bookkeeping/backend/internal/domain/finance"
	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesService_RecordSale(t *testing.T) {
	ctx := context.Background()

	t.Run("credit sale creates a pending receivable", func(t *testing.T) {
		f := newFixture(t)
		branch := f.branch(t, "Main")
		customer := f.customer(t, "Acme")

		result, err := f.services.Sales.RecordSale(ctx, ledger.SaleInput{
			BranchID:   &branch.ID,
			CustomerID: &customer.ID,
			Date:       date(2024, 3, 1),
			Cash:       d(200),
			Credit:     d(300),
			Discount:   d(50),
		})
		require.NoError(t, err)
		assert.Equal(t, "VCH-000001", result.Voucher)
		assert.True(t, result.NetSales.Equal(d(450)))

		receivables, err := f.repos.Receivables().FindBySale(ctx, result.ID)
		require.NoError(t, err)
		require.Len(t, receivables, 1)
		assert.True(t, receivables[0].Amount.Equal(d(300)))
		assert.Equal(t, finance.ReceivableStatusPending, receivables[0].Status)
		assert.Equal(t, customer.ID, *receivables[0].CustomerID)

		sale, err := f.services.Sales.GetSale(ctx, result.ID)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(sale.Remarks, "VCH-000001"))
		assert.Empty(t, f.saleTransactions(t, banking.SaleReference(result.ID)))
	})

	t.Run("single bank amount deposits to the bank", func(t *testing.T) {
		f := newFixture(t)
		bank := f.bank(t, "Alpha", 1000)

		result, err := f.services.Sales.RecordSale(ctx, ledger.SaleInput{
			BankID: &bank.ID,
			Date:   date(2024, 3, 1),
			Bank:   d(500),
		})
		require.NoError(t, err)

		txns := f.saleTransactions(t, banking.SaleReference(result.ID))
		require.Len(t, txns, 1)
		assert.Equal(t, banking.TransactionTypeDeposit, txns[0].Type)
		assert.True(t, f.balance(t, bank).Equal(d(1500)))
	})

	t.Run("splits override the bank amount", func(t *testing.T) {
		f := newFixture(t)
		a := f.bank(t, "Alpha", 0)
		b := f.bank(t, "Beta", 0)

		result, err := f.services.Sales.RecordSale(ctx, ledger.SaleInput{
			Bank: d(999),
			Splits: []ledger.SplitInput{
				{BankID: a.ID, Amount: d(200)},
				{BankID: b.ID, Amount: d(300)},
				{BankID: uuid.New(), Amount: d(700)},
				{BankID: a.ID, Amount: d(0)},
			},
		})
		require.NoError(t, err)
		assert.True(t, result.NetSales.Equal(d(500)))

		sale, err := f.services.Sales.GetSale(ctx, result.ID)
		require.NoError(t, err)
		assert.True(t, sale.BankAmount.Equal(d(500)))
		assert.Len(t, sale.Splits, 2)
		assert.Equal(t, a.ID, *sale.BankID)

		assert.Len(t, f.saleTransactions(t, banking.SaleReference(result.ID)), 2)
		assert.True(t, f.balance(t, a).Equal(d(200)))
		assert.True(t, f.balance(t, b).Equal(d(300)))
	})

	t.Run("unknown bank for bank amount is rejected", func(t *testing.T) {
		f := newFixture(t)
		missing := uuid.New()

		_, err := f.services.Sales.RecordSale(ctx, ledger.SaleInput{BankID: &missing, Bank: d(100)})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.Zero(t, f.vouchersIssued(t))
	})

	t.Run("unknown customer is not found", func(t *testing.T) {
		f := newFixture(t)
		missing := uuid.New()

		_, err := f.services.Sales.RecordSale(ctx, ledger.SaleInput{CustomerID: &missing, Cash: d(10)})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("negative figure is rejected without consuming a voucher", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.services.Sales.RecordSale(ctx, ledger.SaleInput{Cash: d(-1)})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		_, err = f.services.Sales.RecordSale(ctx, ledger.SaleInput{Cash: d(10)})
		require.NoError(t, err)
		assert.EqualValues(t, 1, f.vouchersIssued(t))
	})
}

func TestSalesService_EditSale(t *testing.T) {
	ctx := context.Background()

	t.Run("single bank to split replaces the deposits", func(t *testing.T) {
		f := newFixture(t)
		a := f.bank(t, "Alpha", 0)
		b := f.bank(t, "Beta", 0)

		recorded, err := f.services.Sales.RecordSale(ctx, ledger.SaleInput{BankID: &a.ID, Bank: d(500)})
		require.NoError(t, err)

		edited, err := f.services.Sales.EditSale(ctx, recorded.ID, ledger.SaleInput{
			Splits: []ledger.SplitInput{
				{BankID: a.ID, Amount: d(200)},
				{BankID: b.ID, Amount: d(300)},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, recorded.Voucher, edited.Voucher)
		assert.EqualValues(t, 1, f.vouchersIssued(t))

		txns := f.saleTransactions(t, banking.SaleReference(recorded.ID))
		require.Len(t, txns, 2)
		assert.True(t, f.balance(t, a).Equal(d(200)))
		assert.True(t, f.balance(t, b).Equal(d(300)))
	})

	t.Run("changed credit replaces the receivable", func(t *testing.T) {
		f := newFixture(t)

		recorded, err := f.services.Sales.RecordSale(ctx, ledger.SaleInput{Credit: d(300)})
		require.NoError(t, err)
		before, err := f.repos.Receivables().FindBySale(ctx, recorded.ID)
		require.NoError(t, err)
		require.Len(t, before, 1)

		_, err = f.services.Sales.EditSale(ctx, recorded.ID, ledger.SaleInput{Credit: d(450)})
		require.NoError(t, err)

		after, err := f.repos.Receivables().FindBySale(ctx, recorded.ID)
		require.NoError(t, err)
		require.Len(t, after, 1)
		assert.NotEqual(t, before[0].ID, after[0].ID)
		assert.True(t, after[0].Amount.Equal(d(450)))
	})

	t.Run("credit removed drops the receivable", func(t *testing.T) {
		f := newFixture(t)

		recorded, err := f.services.Sales.RecordSale(ctx, ledger.SaleInput{Credit: d(300)})
		require.NoError(t, err)
		_, err = f.services.Sales.EditSale(ctx, recorded.ID, ledger.SaleInput{Cash: d(300)})
		require.NoError(t, err)

		after, err := f.repos.Receivables().FindBySale(ctx, recorded.ID)
		require.NoError(t, err)
		assert.Empty(t, after)
	})

	t.Run("credit cannot change after a recovery", func(t *testing.T) {
		f := newFixture(t)

		recorded, err := f.services.Sales.RecordSale(ctx, ledger.SaleInput{Credit: d(300)})
		require.NoError(t, err)
		receivables, err := f.repos.Receivables().FindBySale(ctx, recorded.ID)
		require.NoError(t, err)
		_, err = f.services.Payments.Pay(ctx, ledger.PayInput{
			Category:    finance.PaymentCategoryReceivableRecovery,
			ReferenceID: receivables[0].ID,
			Amount:      d(100),
		})
		require.NoError(t, err)

		_, err = f.services.Sales.EditSale(ctx, recorded.ID, ledger.SaleInput{Credit: d(250)})
		assert.ErrorIs(t, err, shared.ErrConflict)

		// figures other than credit may still change
		_, err = f.services.Sales.EditSale(ctx, recorded.ID, ledger.SaleInput{Credit: d(300), Cash: d(20)})
		assert.NoError(t, err)
	})

	t.Run("missing sale", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.services.Sales.EditSale(ctx, uuid.New(), ledger.SaleInput{Cash: d(1)})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestSalesService_LockedSale(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	recorded, err := f.services.Sales.RecordSale(ctx, ledger.SaleInput{Cash: d(100)})
	require.NoError(t, err)

	locked, err := f.services.Sales.LockSale(ctx, recorded.ID)
	require.NoError(t, err)
	assert.True(t, locked.IsLocked)

	again, err := f.services.Sales.LockSale(ctx, recorded.ID)
	require.NoError(t, err)
	assert.True(t, again.IsLocked)

	_, err = f.services.Sales.EditSale(ctx, recorded.ID, ledger.SaleInput{Cash: d(200)})
	assert.ErrorIs(t, err, shared.ErrLocked)

	err = f.services.Sales.DeleteSale(ctx, recorded.ID)
	assert.ErrorIs(t, err, shared.ErrLocked)

	sale, err := f.services.Sales.GetSale(ctx, recorded.ID)
	require.NoError(t, err)
	assert.True(t, sale.CashAmount.Equal(d(100)))
}

func TestSalesService_DeleteSale(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bank := f.bank(t, "Alpha", 0)

	recorded, err := f.services.Sales.RecordSale(ctx, ledger.SaleInput{
		BankID: &bank.ID,
		Bank:   d(100),
		Credit: d(300),
	})
	require.NoError(t, err)

	receivables, err := f.repos.Receivables().FindBySale(ctx, recorded.ID)
	require.NoError(t, err)
	require.Len(t, receivables, 1)
	receivableID := receivables[0].ID

	_, err = f.services.Payments.Pay(ctx, ledger.PayInput{
		Category:    finance.PaymentCategoryReceivableRecovery,
		ReferenceID: receivableID,
		Amount:      d(100),
	})
	require.NoError(t, err)

	attachment, err := f.services.Sales.AttachFile(ctx, recorded.ID, "receipt.pdf", "application/pdf",
		strings.NewReader("%PDF"), 4)
	require.NoError(t, err)
	assert.Contains(t, f.store.objects, attachment.ObjectKey)

	require.NoError(t, f.services.Sales.DeleteSale(ctx, recorded.ID))

	_, err = f.services.Sales.GetSale(ctx, recorded.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = f.services.Receivables.GetReceivable(ctx, receivableID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	count, err := f.repos.Receivables().CountRecoveries(ctx, []uuid.UUID{receivableID})
	require.NoError(t, err)
	assert.Zero(t, count)

	// deposits stay on the bank ledger
	assert.Len(t, f.saleTransactions(t, banking.SaleReference(recorded.ID)), 1)
	assert.True(t, f.balance(t, bank).Equal(d(100)))

	assert.NotContains(t, f.store.objects, attachment.ObjectKey)
	assert.Equal(t, []string{attachment.ObjectKey}, f.store.deleted)

	err = f.services.Sales.DeleteSale(ctx, recorded.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSalesService_Attachments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	recorded, err := f.services.Sales.RecordSale(ctx, ledger.SaleInput{Cash: d(100)})
	require.NoError(t, err)

	attachment, err := f.services.Sales.AttachFile(ctx, recorded.ID, "../../etc/slip.png", "image/png",
		strings.NewReader("png"), 3)
	require.NoError(t, err)
	assert.Equal(t, "slip.png", attachment.FileName)
	assert.True(t, strings.HasPrefix(attachment.ObjectKey, "sales/"+recorded.ID.String()+"/"))
	assert.Equal(t, []byte("png"), f.store.objects[attachment.ObjectKey])

	list, err := f.services.Sales.ListAttachments(ctx, recorded.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, attachment.ID, list[0].ID)

	_, err = f.services.Sales.ListAttachments(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSalesService_NetSalesSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	branch := f.branch(t, "Main")

	for _, in := range []ledger.SaleInput{
		{BranchID: &branch.ID, Date: date(2024, 1, 10), Cash: d(100)},
		{BranchID: &branch.ID, Date: date(2024, 1, 20), Cash: d(50), Returns: d(80)},
		{Date: date(2024, 1, 15), Cash: d(70)},
		{BranchID: &branch.ID, Date: date(2024, 2, 1), Cash: d(1000)},
	} {
		_, err := f.services.Sales.RecordSale(ctx, in)
		require.NoError(t, err)
	}

	from, to := date(2024, 1, 1), date(2024, 1, 31)
	summary, err := f.services.Sales.NetSalesSummary(ctx, &branch.ID, &from, &to)
	require.NoError(t, err)
	// the second sale floors at zero
	assert.True(t, summary.TotalNetSales.Equal(d(100)), summary.TotalNetSales.String())

	_, err = f.services.Sales.NetSalesSummary(ctx, nil, &to, &from)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
