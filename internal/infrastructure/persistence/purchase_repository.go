package persistence

import (
	"context"
	"strings"

	"github.com/bookkeeping/backend/internal/domain/finance"
	"github.com/bookkeeping/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements finance.PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Purchase, error) {
	var model models.PurchaseModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		return nil, translateError(err, "purchase", "find")
	}
	return model.ToDomain(), nil
}

// FindAll lists purchases matching the filter
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter finance.PurchaseFilter) ([]finance.Purchase, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PurchaseModel{})
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.OutstandingOnly {
		query = query.Where("balance > 0")
	}
	if filter.Search != "" {
		query = query.Where("invoice_no LIKE ?", "%"+strings.TrimSpace(filter.Search)+"%")
	}
	query = withinDates(query, "purchase_date", filter.From, filter.To)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "purchase", "count")
	}

	var rows []models.PurchaseModel
	if err := paginate(query, filter.Filter, PurchaseSortFields, "purchase_date").Find(&rows).Error; err != nil {
		return nil, 0, translateError(err, "purchase", "list")
	}
	return purchasesToDomain(rows), total, nil
}

// FindOutstandingBySupplier returns invoices with balance > 0, oldest first
func (r *GormPurchaseRepository) FindOutstandingBySupplier(ctx context.Context, supplierID uuid.UUID) ([]finance.Purchase, error) {
	var rows []models.PurchaseModel
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND balance > 0", supplierID).
		Order("purchase_date ASC").Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, translateError(err, "purchase", "list")
	}
	return purchasesToDomain(rows), nil
}

// ExistsByInvoiceNo reports whether the invoice number is taken
func (r *GormPurchaseRepository) ExistsByInvoiceNo(ctx context.Context, invoiceNo string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PurchaseModel{}).
		Where("invoice_no = ?", invoiceNo).
		Count(&count).Error; err != nil {
		return false, translateError(err, "purchase", "check")
	}
	return count > 0, nil
}

// Save creates or updates a purchase
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *finance.Purchase) error {
	return translateError(
		r.db.WithContext(ctx).Save(models.PurchaseModelFromDomain(purchase)).Error,
		"purchase", "save")
}

type purchaseTotalsRow struct {
	Count       int64
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal
	Balance     decimal.Decimal
}

// SupplierTotals aggregates a supplier's invoices in SQL
func (r *GormPurchaseRepository) SupplierTotals(ctx context.Context, supplierID uuid.UUID) (*finance.PurchaseTotals, error) {
	var row purchaseTotalsRow
	if err := r.db.WithContext(ctx).Model(&models.PurchaseModel{}).
		Select("COUNT(*) AS count, "+
			"COALESCE(SUM(total_amount), 0) AS total_amount, "+
			"COALESCE(SUM(paid_amount), 0) AS paid_amount, "+
			"COALESCE(SUM(balance), 0) AS balance").
		Where("supplier_id = ?", supplierID).
		Scan(&row).Error; err != nil {
		return nil, translateError(err, "purchase", "sum")
	}
	return &finance.PurchaseTotals{
		Count:       row.Count,
		TotalAmount: row.TotalAmount,
		PaidAmount:  row.PaidAmount,
		Balance:     row.Balance,
	}, nil
}

func purchasesToDomain(rows []models.PurchaseModel) []finance.Purchase {
	out := make([]finance.Purchase, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ finance.PurchaseRepository = (*GormPurchaseRepository)(nil)
