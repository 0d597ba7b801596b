package finance

import (
	"bytes"
	"sort"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceAllocation is the share of a supplier payment applied to one invoice
type InvoiceAllocation struct {
	PurchaseID   uuid.UUID       `json:"purchase_id"`
	InvoiceNo    string          `json:"invoice_no"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
}

// SupplierAllocation is the outcome of spreading one payment over a supplier's invoices
type SupplierAllocation struct {
	Allocations    []InvoiceAllocation
	TotalAllocated decimal.Decimal
	// Unallocated is the part of the payment larger than the total outstanding.
	// It is not carried on any invoice.
	Unallocated decimal.Decimal
}

// FullyAllocated returns true when nothing was left over
func (a *SupplierAllocation) FullyAllocated() bool {
	return a.Unallocated.IsZero()
}

// SortFIFO orders invoices oldest first: purchase date ascending, then ID
// ascending, which is insertion order for time-ordered IDs
func SortFIFO(purchases []*Purchase) {
	sort.SliceStable(purchases, func(i, j int) bool {
		if !purchases[i].Date.Equal(purchases[j].Date) {
			return purchases[i].Date.Before(purchases[j].Date)
		}
		return bytes.Compare(purchases[i].ID[:], purchases[j].ID[:]) < 0
	})
}

// AllocateFIFO applies amount to the given invoices, oldest first, mutating
// their paid amount and balance. Invoices without a balance are skipped.
// Allocation stops when the amount is used up or the invoices run out.
func AllocateFIFO(amount decimal.Decimal, purchases []*Purchase) (*SupplierAllocation, error) {
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("allocation amount must be greater than zero")
	}

	ordered := make([]*Purchase, len(purchases))
	copy(ordered, purchases)
	SortFIFO(ordered)

	result := &SupplierAllocation{
		Allocations:    make([]InvoiceAllocation, 0),
		TotalAllocated: decimal.Zero,
	}
	remaining := amount

	for _, p := range ordered {
		if !remaining.IsPositive() {
			break
		}
		if !p.Balance.IsPositive() {
			continue
		}

		apply := decimal.Min(remaining, p.Balance)
		if err := p.ApplyPayment(apply); err != nil {
			return nil, err
		}
		remaining = remaining.Sub(apply)
		result.TotalAllocated = result.TotalAllocated.Add(apply)
		result.Allocations = append(result.Allocations, InvoiceAllocation{
			PurchaseID:   p.ID,
			InvoiceNo:    p.InvoiceNo,
			Amount:       apply,
			BalanceAfter: p.Balance,
		})
	}

	result.Unallocated = remaining
	return result, nil
}
