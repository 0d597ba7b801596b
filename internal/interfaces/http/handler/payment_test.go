package handler_test

import (
	"net/http"
	"testing"

	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/interfaces/http/dto"
	"github.com/bookkeeping/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplierPaymentAllocatesFIFO(t *testing.T) {
	s := newServer(t)
	supplier := s.create(t, "/suppliers", map[string]any{"name": "Mill"})
	for i, total := range []string{"100", "50", "30"} {
		s.create(t, "/purchases", map[string]any{
			"supplier_id":   supplier,
			"purchase_date": []string{"2026-01-01", "2026-01-02", "2026-01-03"}[i],
			"total_amount":  total,
		})
	}

	code, env := s.do(t, http.MethodPost, "/payments", map[string]any{
		"category":       "supplier",
		"reference_id":   supplier,
		"amount":         "120",
		"payment_date":   "2026-02-01",
		"payment_method": "cash",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	result := decode[ledger.PayResult](t, env)
	assert.True(t, result.OK)
	assert.NotEmpty(t, result.Voucher)
	assert.True(t, result.Unallocated.IsZero())
	require.Len(t, result.Allocations, 2)

	code, env = s.do(t, http.MethodGet, "/suppliers/"+supplier+"/ledger", nil)
	require.Equal(t, http.StatusOK, code)
	sl := decode[handler.SupplierLedgerResponse](t, env)
	requireDecimal(t, 180, sl.TotalPurchases)
	requireDecimal(t, 120, sl.TotalPaid)
	requireDecimal(t, 60, sl.Balance)
	assert.Len(t, sl.Payments, 1)

	code, env = s.do(t, http.MethodGet, "/purchases?supplier_id="+supplier+"&outstanding_only=true", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]handler.PurchaseResponse](t, env), 2)

	code, env = s.do(t, http.MethodGet, "/payments?category=supplier", nil)
	require.Equal(t, http.StatusOK, code)
	payments := decode[[]handler.PaymentResponse](t, env)
	require.Len(t, payments, 1)
	assert.Equal(t, "cash", payments[0].Mode)
}

func TestPaymentRejections(t *testing.T) {
	s := newServer(t)
	bill := s.create(t, "/bills", map[string]any{"name": "March rent", "amount": "500"})

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unknown category",
			body:       map[string]any{"category": "lottery", "reference_id": bill, "amount": "10"},
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrCodeValidation,
		},
		{
			name:       "zero amount",
			body:       map[string]any{"category": "rent_bill", "reference_id": bill, "amount": "0"},
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrCodeValidation,
		},
		{
			name:       "more than the bill balance",
			body:       map[string]any{"category": "rent_bill", "reference_id": bill, "amount": "600"},
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrCodeAmountExceedsBalance,
		},
		{
			name: "unknown bank",
			body: map[string]any{"category": "rent_bill", "reference_id": bill, "amount": "10",
				"payment_method": "0f6f2f6e-4b1a-4f7e-8a8c-3b7c1c0d9e21"},
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrCodeNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := s.do(t, http.MethodPost, "/payments", tt.body)
			assert.Equal(t, tt.wantStatus, code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}

	code, env := s.do(t, http.MethodGet, "/bills/"+bill, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "unpaid", decode[handler.BillResponse](t, env).Status)
}

func TestBillAndSalaryPayments(t *testing.T) {
	s := newServer(t)
	bank := s.create(t, "/banks", map[string]any{"name": "Main", "opening_balance": "1000"})
	bill := s.create(t, "/bills", map[string]any{"name": "Power", "amount": "300"})
	salary := s.create(t, "/salaries", map[string]any{"employee_name": "Amina", "period": "2026-03", "amount": "400"})

	code, env := s.do(t, http.MethodPost, "/payments", map[string]any{
		"category": "rent_bill", "reference_id": bill, "amount": "100", "payment_method": bank,
	})
	require.Equal(t, http.StatusCreated, code, env.Error)

	code, env = s.do(t, http.MethodGet, "/bills/"+bill, nil)
	require.Equal(t, http.StatusOK, code)
	b := decode[handler.BillResponse](t, env)
	assert.Equal(t, "partial", b.Status)
	requireDecimal(t, 200, b.Balance)

	code, env = s.do(t, http.MethodPost, "/payments", map[string]any{
		"category": "salary", "reference_id": salary, "amount": "400",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)

	code, env = s.do(t, http.MethodPost, "/payments", map[string]any{
		"category": "salary", "reference_id": salary, "amount": "400",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, dto.ErrCodeAlreadyPaid, env.Error.Code)

	code, env = s.do(t, http.MethodGet, "/salaries?period=2026-03&status=paid", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]handler.SalaryResponse](t, env), 1)

	code, env = s.do(t, http.MethodGet, "/banks/"+bank+"/balance", nil)
	require.Equal(t, http.StatusOK, code)
	requireDecimal(t, 900, decode[handler.BankBalanceResponse](t, env).Balance)
}

func TestReceivableRecovery(t *testing.T) {
	s := newServer(t)
	customer := s.create(t, "/customers", map[string]any{"name": "Corner Shop"})
	receivable := s.create(t, "/receivables", map[string]any{"customer_id": customer, "amount": "80"})

	code, env := s.do(t, http.MethodPost, "/receivables/"+receivable+"/recoveries", map[string]any{"amount": "90"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, dto.ErrCodeAmountExceedsBalance, env.Error.Code)

	code, env = s.do(t, http.MethodPost, "/receivables/"+receivable+"/recoveries", map[string]any{"amount": "30"})
	require.Equal(t, http.StatusCreated, code, env.Error)
	assert.Equal(t, "receivable_recovery", string(decode[ledger.PayResult](t, env).Category))

	code, env = s.do(t, http.MethodGet, "/receivables/"+receivable, nil)
	require.Equal(t, http.StatusOK, code)
	detail := decode[handler.ReceivableDetailResponse](t, env)
	assert.Equal(t, "partial", detail.Status)
	requireDecimal(t, 50, detail.Amount)
	require.Len(t, detail.Recoveries, 1)
	assert.NotEmpty(t, detail.Recoveries[0].Voucher)

	code, env = s.do(t, http.MethodGet, "/receivables?status=partial&customer_id="+customer, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]handler.ReceivableResponse](t, env), 1)
}

func TestDirectInvoicePayment(t *testing.T) {
	s := newServer(t)
	supplier := s.create(t, "/suppliers", map[string]any{"name": "Mill"})
	bank := s.create(t, "/banks", map[string]any{"name": "Main", "opening_balance": "500"})
	invoice := s.create(t, "/purchases", map[string]any{
		"supplier_id":   supplier,
		"purchase_date": "2026-01-05",
		"total_amount":  "300",
	})

	code, env := s.do(t, http.MethodPost, "/purchases/"+invoice+"/payments", map[string]any{
		"amount":         "120",
		"payment_date":   "2026-01-20",
		"payment_method": bank,
	})
	require.Equal(t, http.StatusOK, code, env.Error)
	paid := decode[handler.PurchasePaymentResponse](t, env)
	assert.Equal(t, "VCH-000001", paid.Voucher)
	requireDecimal(t, 180, paid.Balance)

	code, env = s.do(t, http.MethodGet, "/payments?category=purchase_invoice", nil)
	require.Equal(t, http.StatusOK, code)
	payments := decode[[]handler.PaymentResponse](t, env)
	require.Len(t, payments, 1)
	assert.Equal(t, "bank", payments[0].Mode)
	assert.Equal(t, paid.Voucher, payments[0].Voucher)

	code, env = s.do(t, http.MethodPost, "/purchases/"+invoice+"/payments", map[string]any{"amount": "0"})
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)
}
