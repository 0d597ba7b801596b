package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bookkeeping/backend/internal/domain/cashregister"
	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/bookkeeping/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCashEntryRepository implements cashregister.Repository using GORM
type GormCashEntryRepository struct {
	db *gorm.DB
}

// NewGormCashEntryRepository creates a new GormCashEntryRepository
func NewGormCashEntryRepository(db *gorm.DB) *GormCashEntryRepository {
	return &GormCashEntryRepository{db: db}
}

// FindByBranchAndDate returns the entry for a branch and day
func (r *GormCashEntryRepository) FindByBranchAndDate(ctx context.Context, branchID uuid.UUID, date time.Time) (*cashregister.CashEntry, error) {
	var model models.CashEntryModel
	if err := r.db.WithContext(ctx).
		Where("branch_id = ? AND entry_date = ?", branchID, shared.NormalizeDate(date)).
		Take(&model).Error; err != nil {
		return nil, translateError(err, "cash entry", "find")
	}
	return model.ToDomain(), nil
}

// FindAll lists entries, newest day first by default
func (r *GormCashEntryRepository) FindAll(ctx context.Context, filter cashregister.EntryFilter) ([]cashregister.CashEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CashEntryModel{})
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	query = withinDates(query, "entry_date", filter.From, filter.To)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "cash entry", "count")
	}

	var rows []models.CashEntryModel
	if err := paginate(query, filter.Filter, CashEntrySortFields, "entry_date").Find(&rows).Error; err != nil {
		return nil, 0, translateError(err, "cash entry", "list")
	}
	out := make([]cashregister.CashEntry, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// ExistsByBranchAndDate reports whether the branch already has an entry for the day
func (r *GormCashEntryRepository) ExistsByBranchAndDate(ctx context.Context, branchID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CashEntryModel{}).
		Where("branch_id = ? AND entry_date = ?", branchID, shared.NormalizeDate(date)).
		Count(&count).Error; err != nil {
		return false, translateError(err, "cash entry", "check")
	}
	return count > 0, nil
}

// Save creates or updates an entry. A second entry for the same branch and
// day violates the unique index and surfaces as ErrDuplicateCashEntry.
func (r *GormCashEntryRepository) Save(ctx context.Context, entry *cashregister.CashEntry) error {
	err := r.db.WithContext(ctx).Save(models.CashEntryModelFromDomain(entry)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrDuplicateCashEntry
	}
	return translateError(err, "cash entry", "save")
}

var _ cashregister.Repository = (*GormCashEntryRepository)(nil)
