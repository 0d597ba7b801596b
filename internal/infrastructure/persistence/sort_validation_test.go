package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"asc", "ASC"},
		{" ASC ", "ASC"},
		{"desc", "DESC"},
		{"", "DESC"},
		{"asc; DROP TABLE sales", "DESC"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidateSortOrder(tt.in), tt.in)
	}
}

func TestValidateSortField(t *testing.T) {
	assert.Equal(t, "sale_date", ValidateSortField("sale_date", SaleSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("", SaleSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("balance", SaleSortFields, "created_at"))
	assert.Equal(t, "balance", ValidateSortField(" balance ", PurchaseSortFields, "purchase_date"))
	assert.True(t, CashEntrySortFields["id"])
}
