package persistence

import (
	"context"
	"time"

	"github.com/bookkeeping/backend/internal/domain/sales"
	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/bookkeeping/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSaleRepository implements sales.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID loads the sale with its splits
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).
		Preload("Splits", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ?", id).
		Take(&model).Error; err != nil {
		return nil, translateError(err, "sale", "find")
	}
	return model.ToDomain(), nil
}

// FindAll lists sales without their splits
func (r *GormSaleRepository) FindAll(ctx context.Context, filter sales.SaleFilter) ([]sales.Sale, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SaleModel{})
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("voucher LIKE ? OR remarks LIKE ?", like, like)
	}
	query = withinDates(query, "sale_date", filter.From, filter.To)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "sale", "count")
	}

	var rows []models.SaleModel
	if err := paginate(query, filter.Filter, SaleSortFields, "sale_date").Find(&rows).Error; err != nil {
		return nil, 0, translateError(err, "sale", "list")
	}
	out := make([]sales.Sale, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save upserts the sale row and replaces its splits
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit("Splits").Save(models.SaleModelFromDomain(sale)).Error; err != nil {
		return translateError(err, "sale", "save")
	}
	if err := db.Where("sale_id = ?", sale.ID).Delete(&models.SaleBankSplitModel{}).Error; err != nil {
		return translateError(err, "sale split", "delete")
	}
	if len(sale.Splits) == 0 {
		return nil
	}
	rows := make([]*models.SaleBankSplitModel, len(sale.Splits))
	for i := range sale.Splits {
		rows[i] = models.SaleBankSplitModelFromDomain(&sale.Splits[i])
	}
	return translateError(db.Create(&rows).Error, "sale split", "save")
}

// Delete removes the sale and its splits
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("sale_id = ?", id).Delete(&models.SaleBankSplitModel{}).Error; err != nil {
		return translateError(err, "sale split", "delete")
	}
	result := db.Where("id = ?", id).Delete(&models.SaleModel{})
	if result.Error != nil {
		return translateError(result.Error, "sale", "delete")
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("sale")
	}
	return nil
}

type saleSummaryRow struct {
	Count int64
	Total decimal.Decimal
}

// Summarize aggregates net sales in SQL over an optional branch and date range
func (r *GormSaleRepository) Summarize(ctx context.Context, branchID *uuid.UUID, from, to *time.Time) (*sales.Summary, error) {
	query := r.db.WithContext(ctx).Model(&models.SaleModel{}).
		Select("COUNT(*) AS count, COALESCE(SUM(net_sales), 0) AS total")
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}
	query = withinDates(query, "sale_date", from, to)

	var row saleSummaryRow
	if err := query.Scan(&row).Error; err != nil {
		return nil, translateError(err, "sale", "summarize")
	}
	return &sales.Summary{
		BranchID:      branchID,
		From:          from,
		To:            to,
		Count:         row.Count,
		TotalNetSales: row.Total,
	}, nil
}

// SaveAttachment records attachment metadata
func (r *GormSaleRepository) SaveAttachment(ctx context.Context, attachment *sales.SaleAttachment) error {
	return translateError(
		r.db.WithContext(ctx).Create(models.SaleAttachmentModelFromDomain(attachment)).Error,
		"sale attachment", "save")
}

// FindAttachments lists a sale's attachment metadata
func (r *GormSaleRepository) FindAttachments(ctx context.Context, saleID uuid.UUID) ([]sales.SaleAttachment, error) {
	var rows []models.SaleAttachmentModel
	if err := r.db.WithContext(ctx).Where("sale_id = ?", saleID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translateError(err, "sale attachment", "list")
	}
	out := make([]sales.SaleAttachment, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// DeleteAttachments removes a sale's attachment metadata
func (r *GormSaleRepository) DeleteAttachments(ctx context.Context, saleID uuid.UUID) error {
	return translateError(
		r.db.WithContext(ctx).Where("sale_id = ?", saleID).Delete(&models.SaleAttachmentModel{}).Error,
		"sale attachment", "delete")
}

var _ sales.SaleRepository = (*GormSaleRepository)(nil)
