package router

import (
	"github.com/bookkeeping/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// LedgerHandlers are the endpoint handlers of the ledger API
type LedgerHandlers struct {
	Banks       *handler.BankHandler
	Sales       *handler.SaleHandler
	Receivables *handler.ReceivableHandler
	Purchases   *handler.PurchaseHandler
	Payments    *handler.PaymentHandler
	CashEntries *handler.CashEntryHandler
	Bills       *handler.BillHandler
	Salaries    *handler.SalaryHandler
	Partners    *handler.PartnerHandler
	System      *handler.SystemHandler
}

// RegisterLedger mounts the ledger API and the unversioned /health check.
// idempotent guards the writes that move money; nil leaves them unguarded.
func RegisterLedger(r *Router, h LedgerHandlers, idempotent gin.HandlerFunc) {
	guard := func(fn gin.HandlerFunc) []gin.HandlerFunc {
		if idempotent == nil {
			return []gin.HandlerFunc{fn}
		}
		return []gin.HandlerFunc{idempotent, fn}
	}

	r.engine.GET("/health", h.System.Health)

	system := NewDomainGroup("system", "")
	system.GET("/health", h.System.Health)
	system.GET("/system/info", h.System.Info)

	banks := NewDomainGroup("banks", "/banks")
	banks.POST("", h.Banks.Create).
		GET("", h.Banks.List).
		POST("/transfers", guard(h.Banks.Transfer)...).
		GET("/:id", h.Banks.Get).
		GET("/:id/balance", h.Banks.Balance).
		POST("/:id/transactions", h.Banks.RecordTransaction).
		GET("/:id/transactions", h.Banks.ListTransactions).
		GET("/:id/reconciliation", h.Banks.Reconciliation)

	sales := NewDomainGroup("sales", "/sales")
	sales.POST("", guard(h.Sales.Create)...).
		GET("", h.Sales.List).
		GET("/summary", h.Sales.Summary).
		GET("/:id", h.Sales.Get).
		PUT("/:id", h.Sales.Update).
		DELETE("/:id", h.Sales.Delete).
		POST("/:id/lock", h.Sales.Lock).
		POST("/:id/attachments", h.Sales.UploadAttachment).
		GET("/:id/attachments", h.Sales.ListAttachments)

	receivables := NewDomainGroup("receivables", "/receivables")
	receivables.POST("", h.Receivables.Create).
		GET("", h.Receivables.List).
		GET("/:id", h.Receivables.Get).
		POST("/:id/recoveries", guard(h.Receivables.Recover)...)

	purchases := NewDomainGroup("purchases", "/purchases")
	purchases.POST("", h.Purchases.Create).
		GET("", h.Purchases.List).
		GET("/:id", h.Purchases.Get).
		POST("/:id/payments", guard(h.Purchases.ApplyPayment)...)

	payments := NewDomainGroup("payments", "/payments")
	payments.POST("", guard(h.Payments.Pay)...).
		GET("", h.Payments.List)

	cash := NewDomainGroup("cash-entries", "/cash-entries")
	cash.POST("", h.CashEntries.Create).
		GET("", h.CashEntries.List).
		GET("/:branch_id/:date", h.CashEntries.Get).
		PUT("/:branch_id/:date", h.CashEntries.Update)

	bills := NewDomainGroup("bills", "/bills")
	bills.POST("", h.Bills.Create).
		GET("", h.Bills.List).
		GET("/:id", h.Bills.Get)

	salaries := NewDomainGroup("salaries", "/salaries")
	salaries.POST("", h.Salaries.Create).
		GET("", h.Salaries.List).
		GET("/:id", h.Salaries.Get)

	customers := NewDomainGroup("customers", "/customers")
	customers.POST("", h.Partners.CreateCustomer).
		GET("", h.Partners.ListCustomers).
		GET("/:id", h.Partners.GetCustomer)

	suppliers := NewDomainGroup("suppliers", "/suppliers")
	suppliers.POST("", h.Partners.CreateSupplier).
		GET("", h.Partners.ListSuppliers).
		GET("/:id", h.Partners.GetSupplier).
		GET("/:id/ledger", h.Purchases.SupplierLedger)

	branches := NewDomainGroup("branches", "/branches")
	branches.POST("", h.Partners.CreateBranch).
		GET("", h.Partners.ListBranches).
		GET("/:id", h.Partners.GetBranch)

	r.Register(system, banks, sales, receivables, purchases, payments, cash, bills, salaries, customers, suppliers, branches)
	r.Setup()
}
