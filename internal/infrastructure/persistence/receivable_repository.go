package persistence

import (
	"context"

	"github.com/bookkeeping/backend/internal/domain/finance"
	"github.com/bookkeeping/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReceivableRepository implements finance.ReceivableRepository using GORM
type GormReceivableRepository struct {
	db *gorm.DB
}

// NewGormReceivableRepository creates a new GormReceivableRepository
func NewGormReceivableRepository(db *gorm.DB) *GormReceivableRepository {
	return &GormReceivableRepository{db: db}
}

// FindByID finds a receivable by its ID
func (r *GormReceivableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Receivable, error) {
	var model models.ReceivableModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		return nil, translateError(err, "receivable", "find")
	}
	return model.ToDomain(), nil
}

// FindAll lists receivables matching the filter
func (r *GormReceivableRepository) FindAll(ctx context.Context, filter finance.ReceivableFilter) ([]finance.Receivable, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ReceivableModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.SaleID != nil {
		query = query.Where("sale_id = ?", *filter.SaleID)
	}
	query = withinDates(query, "due_date", filter.From, filter.To)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "receivable", "count")
	}

	var rows []models.ReceivableModel
	if err := paginate(query, filter.Filter, ReceivableSortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, translateError(err, "receivable", "list")
	}
	return receivablesToDomain(rows), total, nil
}

// FindBySale returns the receivables generated by a sale
func (r *GormReceivableRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]finance.Receivable, error) {
	var rows []models.ReceivableModel
	if err := r.db.WithContext(ctx).Where("sale_id = ?", saleID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translateError(err, "receivable", "list")
	}
	return receivablesToDomain(rows), nil
}

// Save creates or updates a receivable
func (r *GormReceivableRepository) Save(ctx context.Context, receivable *finance.Receivable) error {
	return translateError(
		r.db.WithContext(ctx).Save(models.ReceivableModelFromDomain(receivable)).Error,
		"receivable", "save")
}

// DeleteByIDs removes receivables by ID
func (r *GormReceivableRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return translateError(
		r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.ReceivableModel{}).Error,
		"receivable", "delete")
}

// SaveRecovery appends a recovery history row
func (r *GormReceivableRepository) SaveRecovery(ctx context.Context, recovery *finance.ReceivableRecovery) error {
	return translateError(
		r.db.WithContext(ctx).Create(models.ReceivableRecoveryModelFromDomain(recovery)).Error,
		"receivable recovery", "save")
}

// FindRecoveries lists a receivable's recoveries oldest first
func (r *GormReceivableRepository) FindRecoveries(ctx context.Context, receivableID uuid.UUID) ([]finance.ReceivableRecovery, error) {
	var rows []models.ReceivableRecoveryModel
	if err := r.db.WithContext(ctx).
		Where("receivable_id = ?", receivableID).
		Order("recorded_at ASC").Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, translateError(err, "receivable recovery", "list")
	}
	out := make([]finance.ReceivableRecovery, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// CountRecoveries counts recoveries across the given receivables
func (r *GormReceivableRepository) CountRecoveries(ctx context.Context, receivableIDs []uuid.UUID) (int64, error) {
	if len(receivableIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ReceivableRecoveryModel{}).
		Where("receivable_id IN ?", receivableIDs).
		Count(&count).Error; err != nil {
		return 0, translateError(err, "receivable recovery", "count")
	}
	return count, nil
}

// DeleteRecoveries removes recovery history for the given receivables
func (r *GormReceivableRepository) DeleteRecoveries(ctx context.Context, receivableIDs []uuid.UUID) error {
	if len(receivableIDs) == 0 {
		return nil
	}
	return translateError(
		r.db.WithContext(ctx).Where("receivable_id IN ?", receivableIDs).Delete(&models.ReceivableRecoveryModel{}).Error,
		"receivable recovery", "delete")
}

func receivablesToDomain(rows []models.ReceivableModel) []finance.Receivable {
	out := make([]finance.Receivable, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ finance.ReceivableRepository = (*GormReceivableRepository)(nil)
