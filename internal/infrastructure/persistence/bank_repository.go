package persistence

import (
	"context"
	"time"

	"github.com/bookkeeping/backend/internal/domain/banking"
	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/bookkeeping/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormBankRepository implements banking.BankRepository using GORM
type GormBankRepository struct {
	db *gorm.DB
}

// NewGormBankRepository creates a new GormBankRepository
func NewGormBankRepository(db *gorm.DB) *GormBankRepository {
	return &GormBankRepository{db: db}
}

// FindByID finds a bank by its ID
func (r *GormBankRepository) FindByID(ctx context.Context, id uuid.UUID) (*banking.Bank, error) {
	var model models.BankModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		return nil, translateError(err, "bank", "find")
	}
	return model.ToDomain(), nil
}

// FindAll lists banks, searching by name or account number
func (r *GormBankRepository) FindAll(ctx context.Context, filter shared.Filter) ([]banking.Bank, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BankModel{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR account_number LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "bank", "count")
	}

	var rows []models.BankModel
	if err := paginate(query, filter, BankSortFields, "name").Find(&rows).Error; err != nil {
		return nil, 0, translateError(err, "bank", "list")
	}
	banks := make([]banking.Bank, len(rows))
	for i := range rows {
		banks[i] = *rows[i].ToDomain()
	}
	return banks, total, nil
}

// ExistsByID reports whether the bank exists
func (r *GormBankRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.BankModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translateError(err, "bank", "check")
	}
	return count > 0, nil
}

// Save creates or updates a bank
func (r *GormBankRepository) Save(ctx context.Context, bank *banking.Bank) error {
	return translateError(r.db.WithContext(ctx).Save(models.BankModelFromDomain(bank)).Error, "bank", "save")
}

// GormBankTransactionRepository implements banking.BankTransactionRepository using GORM
type GormBankTransactionRepository struct {
	db *gorm.DB
}

// NewGormBankTransactionRepository creates a new GormBankTransactionRepository
func NewGormBankTransactionRepository(db *gorm.DB) *GormBankTransactionRepository {
	return &GormBankTransactionRepository{db: db}
}

// Save appends a transaction
func (r *GormBankTransactionRepository) Save(ctx context.Context, tx *banking.BankTransaction) error {
	return translateError(r.db.WithContext(ctx).Create(models.BankTransactionModelFromDomain(tx)).Error, "bank transaction", "save")
}

// SaveBatch appends several transactions in one statement
func (r *GormBankTransactionRepository) SaveBatch(ctx context.Context, txns []*banking.BankTransaction) error {
	if len(txns) == 0 {
		return nil
	}
	rows := make([]*models.BankTransactionModel, len(txns))
	for i, t := range txns {
		rows[i] = models.BankTransactionModelFromDomain(t)
	}
	return translateError(r.db.WithContext(ctx).Create(&rows).Error, "bank transaction", "save")
}

// FindByBank lists a bank's transactions
func (r *GormBankTransactionRepository) FindByBank(ctx context.Context, bankID uuid.UUID, filter banking.TransactionFilter) ([]banking.BankTransaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BankTransactionModel{}).Where("bank_id = ?", bankID)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Reference != "" {
		query = query.Where("reference = ?", filter.Reference)
	}
	query = withinDates(query, "transaction_date", filter.From, filter.To)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "bank transaction", "count")
	}

	var rows []models.BankTransactionModel
	if err := paginate(query, filter.Filter, BankTransactionSortFields, "transaction_date").Find(&rows).Error; err != nil {
		return nil, 0, translateError(err, "bank transaction", "list")
	}
	return bankTransactionsToDomain(rows), total, nil
}

// FindByReference returns every transaction carrying reference, in replay order
func (r *GormBankTransactionRepository) FindByReference(ctx context.Context, reference string) ([]banking.BankTransaction, error) {
	var rows []models.BankTransactionModel
	if err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		Order("transaction_date ASC").Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, translateError(err, "bank transaction", "list")
	}
	return bankTransactionsToDomain(rows), nil
}

// FindInPeriod returns the bank's transactions within [from, to] ordered by date, id
func (r *GormBankTransactionRepository) FindInPeriod(ctx context.Context, bankID uuid.UUID, from, to *time.Time) ([]banking.BankTransaction, error) {
	query := withinDates(r.db.WithContext(ctx).Where("bank_id = ?", bankID), "transaction_date", from, to)

	var rows []models.BankTransactionModel
	if err := query.Order("transaction_date ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translateError(err, "bank transaction", "list")
	}
	return bankTransactionsToDomain(rows), nil
}

type bankTotalsRow struct {
	Credits decimal.Decimal
	Debits  decimal.Decimal
}

// SumByBank aggregates credits and debits in SQL.
// When before is set only transactions dated strictly earlier are counted.
func (r *GormBankTransactionRepository) SumByBank(ctx context.Context, bankID uuid.UUID, before *time.Time) (banking.Totals, error) {
	query := r.db.WithContext(ctx).Model(&models.BankTransactionModel{}).
		Select(
			"COALESCE(SUM(CASE WHEN type IN ? THEN amount ELSE 0 END), 0) AS credits, "+
				"COALESCE(SUM(CASE WHEN type IN ? THEN amount ELSE 0 END), 0) AS debits",
			banking.CreditTypes(), banking.DebitTypes(),
		).
		Where("bank_id = ?", bankID)
	if before != nil {
		query = query.Where("transaction_date < ?", shared.NormalizeDate(*before))
	}

	var row bankTotalsRow
	if err := query.Scan(&row).Error; err != nil {
		return banking.Totals{}, translateError(err, "bank transaction", "sum")
	}
	return banking.Totals{Credits: row.Credits, Debits: row.Debits}, nil
}

// DeleteByReference removes every transaction carrying reference
func (r *GormBankTransactionRepository) DeleteByReference(ctx context.Context, reference string) (int64, error) {
	result := r.db.WithContext(ctx).Where("reference = ?", reference).Delete(&models.BankTransactionModel{})
	if result.Error != nil {
		return 0, translateError(result.Error, "bank transaction", "delete")
	}
	return result.RowsAffected, nil
}

func bankTransactionsToDomain(rows []models.BankTransactionModel) []banking.BankTransaction {
	out := make([]banking.BankTransaction, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// withinDates bounds a date column by an inclusive [from, to] range; nil ends are open
func withinDates(query *gorm.DB, column string, from, to *time.Time) *gorm.DB {
	if from != nil {
		query = query.Where(column+" >= ?", shared.NormalizeDate(*from))
	}
	if to != nil {
		query = query.Where(column+" <= ?", shared.NormalizeDate(*to))
	}
	return query
}

var (
	_ banking.BankRepository            = (*GormBankRepository)(nil)
	_ banking.BankTransactionRepository = (*GormBankTransactionRepository)(nil)
)
