package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/infrastructure/config"
	"github.com/bookkeeping/backend/internal/infrastructure/persistence"
	"github.com/bookkeeping/backend/internal/infrastructure/storage"
	"github.com/bookkeeping/backend/internal/interfaces/http/dto"
	"github.com/bookkeeping/backend/internal/interfaces/http/handler"
	"github.com/bookkeeping/backend/internal/interfaces/http/middleware"
	"github.com/bookkeeping/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type server struct {
	engine   *gin.Engine
	services *ledger.Services
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func newServer(t *testing.T) *server {
	t.Helper()

	database, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		Path:     ":memory:",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate())
	t.Cleanup(func() { _ = database.Close() })

	services := ledger.NewServices(ledger.Dependencies{
		Repos:  persistence.NewRepositories(database.DB, 0),
		Scope:  persistence.NewGormTransactionScope(database.DB, 0),
		Config: ledger.Config{VoucherPrefix: "VCH", PurchasePrefix: "PUR"},
		Logger: zap.NewNop(),
	}, storage.NewMemoryStore())

	engine := gin.New()
	engine.Use(middleware.RequestID())
	router.RegisterLedger(router.NewRouter(engine), router.LedgerHandlers{
		Banks:       handler.NewBankHandler(services.Banks),
		Sales:       handler.NewSaleHandler(services.Sales),
		Receivables: handler.NewReceivableHandler(services.Receivables, services.Payments),
		Purchases:   handler.NewPurchaseHandler(services.Purchases),
		Payments:    handler.NewPaymentHandler(services.Payments),
		CashEntries: handler.NewCashEntryHandler(services.CashRegister),
		Bills:       handler.NewBillHandler(services.Bills),
		Salaries:    handler.NewSalaryHandler(services.Salaries),
		Partners:    handler.NewPartnerHandler(services.Partners),
		System:      handler.NewSystemHandler(database, "test"),
	}, nil)
	return &server{engine: engine, services: services}
}

// do sends a JSON request and decodes the response envelope
func (s *server) do(t *testing.T, method, path string, body any) (int, envelope) {
	t.Helper()
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Code != http.StatusNoContent {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

// create posts body and returns the new resource's id
func (s *server) create(t *testing.T, path string, body any) string {
	t.Helper()
	code, env := s.do(t, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, code, string(env.Data), env.Error)
	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out.ID
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func requireDecimal(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	require.True(t, dec(want).Equal(got), "want %d, got %s", want, got)
}
