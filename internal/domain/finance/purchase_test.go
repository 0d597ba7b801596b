package finance

import (
	"testing"
	"time"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPurchase(t *testing.T, supplierID uuid.UUID, date string, total string) *Purchase {
	t.Helper()
	dt, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	p, err := NewPurchase(PurchaseParams{
		SupplierID:  supplierID,
		InvoiceNo:   "INV-" + date + "-" + total,
		Date:        dt,
		TotalAmount: dec(total),
	})
	require.NoError(t, err)
	return p
}

func assertBalanceInvariant(t *testing.T, p *Purchase) {
	t.Helper()
	assert.True(t, ComputeBalance(p.TotalAmount, p.PaidAmount).Equal(p.Balance),
		"balance %s, total %s, paid %s", p.Balance, p.TotalAmount, p.PaidAmount)
	assert.False(t, p.Balance.IsNegative())
}

func TestComputeBalance(t *testing.T) {
	assert.True(t, dec("40").Equal(ComputeBalance(dec("100"), dec("60"))))
	assert.True(t, ComputeBalance(dec("100"), dec("150")).IsZero())
}

func TestNewPurchase(t *testing.T) {
	supplier := uuid.New()

	_, err := NewPurchase(PurchaseParams{InvoiceNo: "A", TotalAmount: dec("1")})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	_, err = NewPurchase(PurchaseParams{SupplierID: supplier, TotalAmount: dec("1")})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	_, err = NewPurchase(PurchaseParams{SupplierID: supplier, InvoiceNo: "A", TotalAmount: dec("0")})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	_, err = NewPurchase(PurchaseParams{SupplierID: supplier, InvoiceNo: "A", TotalAmount: dec("1"), PaidAmount: dec("-1")})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	p, err := NewPurchase(PurchaseParams{SupplierID: supplier, InvoiceNo: " A-1 ", TotalAmount: dec("100"), PaidAmount: dec("30")})
	require.NoError(t, err)
	assert.Equal(t, "A-1", p.InvoiceNo)
	assert.True(t, dec("70").Equal(p.Balance))
	assertBalanceInvariant(t, p)
}

func TestPurchase_ApplyPayment(t *testing.T) {
	p := newPurchase(t, uuid.New(), "2024-01-01", "100")

	require.NoError(t, p.ApplyPayment(dec("40")))
	assertBalanceInvariant(t, p)
	assert.True(t, p.IsOutstanding())

	require.NoError(t, p.ApplyPayment(dec("80")))
	assertBalanceInvariant(t, p)
	assert.True(t, dec("120").Equal(p.PaidAmount))
	assert.True(t, p.Balance.IsZero())
	assert.False(t, p.IsOutstanding())

	assert.ErrorIs(t, p.ApplyPayment(decimal.Zero), shared.ErrInvalidInput)
}
