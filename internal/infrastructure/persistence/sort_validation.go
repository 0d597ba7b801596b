package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed != "" && allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

func withCommon(fields ...string) map[string]bool {
	m := map[string]bool{"id": true, "created_at": true, "updated_at": true}
	for _, f := range fields {
		m[f] = true
	}
	return m
}

// Allowed sort fields per table
var (
	PartnerSortFields         = withCommon("name")
	BankSortFields            = withCommon("name", "account_number")
	BankTransactionSortFields = withCommon("transaction_date", "type", "amount", "reference")
	SaleSortFields            = withCommon("sale_date", "voucher", "net_sales", "cash_amount", "bank_amount", "credit_amount")
	ReceivableSortFields      = withCommon("amount", "original_amount", "due_date", "status")
	PurchaseSortFields        = withCommon("purchase_date", "invoice_no", "total_amount", "paid_amount", "balance", "due_date")
	PaymentSortFields         = withCommon("payment_date", "voucher", "category", "amount")
	BillSortFields            = withCommon("name", "amount", "balance", "due_date", "status")
	SalarySortFields          = withCommon("employee_name", "period", "amount", "status")
	CashEntrySortFields       = withCommon("entry_date")
)
