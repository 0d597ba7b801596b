package ledger_test

import (
	"context"
	"testing"

	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/domain/banking"
	"github.com/bookkeeping/backend/internal/domain/finance"
	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	bankID := uuid.New()

	tests := []struct {
		name    string
		method  string
		mode    finance.PaymentMode
		bank    *uuid.UUID
		wantErr bool
	}{
		{name: "empty is cash", method: "", mode: finance.PaymentModeCash},
		{name: "cash", method: "cash", mode: finance.PaymentModeCash},
		{name: "cash any case", method: " CASH ", mode: finance.PaymentModeCash},
		{name: "bank id", method: bankID.String(), mode: finance.PaymentModeBank, bank: &bankID},
		{name: "nil uuid", method: uuid.Nil.String(), wantErr: true},
		{name: "garbage", method: "cheque", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, bank, err := ledger.ParseMethod(tt.method)
			if tt.wantErr {
				assert.ErrorIs(t, err, shared.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.mode, mode)
			assert.Equal(t, tt.bank, bank)
		})
	}
}

func TestPaymentRouter_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tests := []struct {
		name string
		in   ledger.PayInput
	}{
		{name: "unknown category", in: ledger.PayInput{Category: "tips", ReferenceID: uuid.New(), Amount: d(1)}},
		{name: "missing reference", in: ledger.PayInput{Category: finance.PaymentCategorySalary, Amount: d(1)}},
		{name: "zero amount", in: ledger.PayInput{Category: finance.PaymentCategorySalary, ReferenceID: uuid.New()}},
		{name: "negative amount", in: ledger.PayInput{Category: finance.PaymentCategorySalary, ReferenceID: uuid.New(), Amount: d(-5)}},
		{name: "bad method", in: ledger.PayInput{Category: finance.PaymentCategorySalary, ReferenceID: uuid.New(), Amount: d(1), Method: "card"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.services.Payments.Pay(ctx, tt.in)
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
		})
	}
	assert.Zero(t, f.vouchersIssued(t))
}

func TestPaymentRouter_Supplier(t *testing.T) {
	ctx := context.Background()

	newInvoices := func(t *testing.T, f *fixture, supplierID uuid.UUID, totals ...int64) []*finance.Purchase {
		t.Helper()
		out := make([]*finance.Purchase, 0, len(totals))
		for i, total := range totals {
			p, err := f.services.Purchases.CreateInvoice(ctx, ledger.PurchaseInput{
				SupplierID:  supplierID,
				Date:        date(2024, 1, i+1),
				TotalAmount: d(total),
			})
			require.NoError(t, err)
			out = append(out, p)
		}
		return out
	}

	t.Run("allocates oldest invoices first", func(t *testing.T) {
		f := newFixture(t)
		supplier := f.supplier(t, "Mill")
		invoices := newInvoices(t, f, supplier.ID, 100, 50, 30)

		result, err := f.services.Payments.Pay(ctx, ledger.PayInput{
			Category:    finance.PaymentCategorySupplier,
			ReferenceID: supplier.ID,
			Amount:      d(120),
			Date:        date(2024, 2, 1),
		})
		require.NoError(t, err)
		assert.True(t, result.OK)
		assert.Equal(t, "VCH-000001", result.Voucher)
		assert.True(t, result.Unallocated.IsZero())
		require.Len(t, result.Allocations, 2)
		assert.True(t, result.Allocations[0].Amount.Equal(d(100)))
		assert.True(t, result.Allocations[1].Amount.Equal(d(20)))

		want := []int64{0, 30, 30}
		for i, inv := range invoices {
			got, err := f.services.Purchases.GetPurchase(ctx, inv.ID)
			require.NoError(t, err)
			assert.True(t, got.Balance.Equal(d(want[i])), "invoice %d balance %s", i, got.Balance)
		}

		payments, total, err := f.services.Payments.ListPayments(ctx, finance.PaymentFilter{
			Filter:      shared.Filter{Page: 1, PageSize: 10},
			ReferenceID: &supplier.ID,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, payments, 1)
		assert.Equal(t, finance.PaymentModeCash, payments[0].Mode)
		assert.Equal(t, "supplier", payments[0].ReferenceType)
	})

	t.Run("overpayment is reported as unallocated", func(t *testing.T) {
		f := newFixture(t)
		supplier := f.supplier(t, "Mill")
		newInvoices(t, f, supplier.ID, 40)

		result, err := f.services.Payments.Pay(ctx, ledger.PayInput{
			Category:    finance.PaymentCategorySupplier,
			ReferenceID: supplier.ID,
			Amount:      d(100),
		})
		require.NoError(t, err)
		assert.True(t, result.Unallocated.Equal(d(60)))

		ledgerView, err := f.services.Purchases.SupplierLedger(ctx, supplier.ID)
		require.NoError(t, err)
		assert.True(t, ledgerView.Balance.IsZero())
		assert.Len(t, ledgerView.Payments, 1)
	})

	t.Run("bank payment debits the bank", func(t *testing.T) {
		f := newFixture(t)
		bank := f.bank(t, "Alpha", 500)
		supplier := f.supplier(t, "Mill")
		newInvoices(t, f, supplier.ID, 100)

		result, err := f.services.Payments.Pay(ctx, ledger.PayInput{
			Category:    finance.PaymentCategorySupplier,
			ReferenceID: supplier.ID,
			Amount:      d(80),
			Method:      bank.ID.String(),
		})
		require.NoError(t, err)

		txns, err := f.repos.BankTransactions().FindByReference(ctx, result.Voucher)
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, banking.TransactionTypePayment, txns[0].Type)
		assert.True(t, f.balance(t, bank).Equal(d(420)))
	})

	t.Run("unknown supplier", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.services.Payments.Pay(ctx, ledger.PayInput{
			Category:    finance.PaymentCategorySupplier,
			ReferenceID: uuid.New(),
			Amount:      d(10),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Zero(t, f.vouchersIssued(t))
	})

	t.Run("unknown bank leaves invoices untouched", func(t *testing.T) {
		f := newFixture(t)
		supplier := f.supplier(t, "Mill")
		invoices := newInvoices(t, f, supplier.ID, 100)

		_, err := f.services.Payments.Pay(ctx, ledger.PayInput{
			Category:    finance.PaymentCategorySupplier,
			ReferenceID: supplier.ID,
			Amount:      d(10),
			Method:      uuid.NewString(),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)

		got, err := f.services.Purchases.GetPurchase(ctx, invoices[0].ID)
		require.NoError(t, err)
		assert.True(t, got.Balance.Equal(d(100)))
		assert.Zero(t, f.vouchersIssued(t))
	})
}

func TestPaymentRouter_RentBill(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	bill, err := f.services.Bills.CreateBill(ctx, ledger.BillInput{Name: "Shop rent", Amount: d(1000)})
	require.NoError(t, err)

	pay := func(amount decimal.Decimal) error {
		_, err := f.services.Payments.Pay(ctx, ledger.PayInput{
			Category:    finance.PaymentCategoryRentBill,
			ReferenceID: bill.ID,
			Amount:      amount,
		})
		return err
	}

	require.NoError(t, pay(d(400)))
	got, err := f.services.Bills.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, finance.BillStatusPartial, got.Status)
	assert.True(t, got.Balance.Equal(d(600)))

	err = pay(d(601))
	assert.ErrorIs(t, err, shared.ErrAmountExceedsBalance)
	assert.EqualValues(t, 1, f.vouchersIssued(t))

	require.NoError(t, pay(d(600)))
	got, err = f.services.Bills.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, finance.BillStatusPaid, got.Status)
	assert.True(t, got.Balance.IsZero())

	assert.ErrorIs(t, pay(d(1)), shared.ErrAmountExceedsBalance)
}

func TestPaymentRouter_Salary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bank := f.bank(t, "Payroll", 5000)

	record, err := f.services.Salaries.CreateSalary(ctx, ledger.SalaryInput{
		EmployeeName: "R. Perera",
		Period:       "2024-03",
		Amount:       d(2500),
	})
	require.NoError(t, err)

	_, err = f.services.Payments.Pay(ctx, ledger.PayInput{
		Category:    finance.PaymentCategorySalary,
		ReferenceID: record.ID,
		Amount:      d(2400),
		Date:        date(2024, 3, 31),
		Method:      bank.ID.String(),
	})
	require.NoError(t, err)

	got, err := f.services.Salaries.GetSalary(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, finance.SalaryStatusPaid, got.Status)
	assert.True(t, got.PaidAmount.Equal(d(2400)))
	require.NotNil(t, got.PaidDate)
	assert.Equal(t, date(2024, 3, 31), *got.PaidDate)
	assert.True(t, f.balance(t, bank).Equal(d(2600)))

	_, err = f.services.Payments.Pay(ctx, ledger.PayInput{
		Category:    finance.PaymentCategorySalary,
		ReferenceID: record.ID,
		Amount:      d(100),
	})
	assert.ErrorIs(t, err, shared.ErrAlreadyPaid)
}

func TestPaymentRouter_ReceivableRecovery(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bank := f.bank(t, "Alpha", 0)

	receivable, err := f.services.Receivables.CreateStandalone(ctx, ledger.ReceivableInput{Amount: d(300)})
	require.NoError(t, err)
	assert.Equal(t, finance.ReceivableStatusPending, receivable.Status)

	recoverAmount := func(amount int64, method string) (*ledger.PayResult, error) {
		return f.services.Payments.Pay(ctx, ledger.PayInput{
			Category:    finance.PaymentCategoryReceivableRecovery,
			ReferenceID: receivable.ID,
			Amount:      d(amount),
			Method:      method,
		})
	}

	first, err := recoverAmount(100, bank.ID.String())
	require.NoError(t, err)
	detail, err := f.services.Receivables.GetReceivable(ctx, receivable.ID)
	require.NoError(t, err)
	assert.Equal(t, finance.ReceivableStatusPartial, detail.Status)
	assert.True(t, detail.Amount.Equal(d(200)))
	require.Len(t, detail.Recoveries, 1)
	assert.Equal(t, first.Voucher, detail.Recoveries[0].Voucher)

	// recoveries are money coming in
	txns, err := f.repos.BankTransactions().FindByReference(ctx, first.Voucher)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, banking.TransactionTypeDeposit, txns[0].Type)
	assert.True(t, f.balance(t, bank).Equal(d(100)))

	_, err = recoverAmount(201, "")
	assert.ErrorIs(t, err, shared.ErrAmountExceedsBalance)

	_, err = recoverAmount(200, "")
	require.NoError(t, err)
	detail, err = f.services.Receivables.GetReceivable(ctx, receivable.ID)
	require.NoError(t, err)
	assert.Equal(t, finance.ReceivableStatusRecovered, detail.Status)
	assert.True(t, detail.Amount.IsZero())
	assert.True(t, detail.OriginalAmount.Equal(d(300)))
	assert.Len(t, detail.Recoveries, 2)

	_, err = recoverAmount(1, "")
	assert.ErrorIs(t, err, shared.ErrAmountExceedsBalance)
	assert.EqualValues(t, 2, f.vouchersIssued(t))
}
