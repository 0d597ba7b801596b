package persistence

import (
	"context"

	"github.com/bookkeeping/backend/internal/domain/finance"
	"github.com/bookkeeping/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentRepository implements finance.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Save appends a payment audit row
func (r *GormPaymentRepository) Save(ctx context.Context, payment *finance.Payment) error {
	return translateError(
		r.db.WithContext(ctx).Create(models.PaymentModelFromDomain(payment)).Error,
		"payment", "save")
}

// FindAll lists payments matching the filter
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter finance.PaymentFilter) ([]finance.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.ReferenceID != nil {
		query = query.Where("reference_id = ?", *filter.ReferenceID)
	}
	if filter.BankID != nil {
		query = query.Where("bank_id = ?", *filter.BankID)
	}
	query = withinDates(query, "payment_date", filter.From, filter.To)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "payment", "count")
	}

	var rows []models.PaymentModel
	if err := paginate(query, filter.Filter, PaymentSortFields, "payment_date").Find(&rows).Error; err != nil {
		return nil, 0, translateError(err, "payment", "list")
	}
	out := make([]finance.Payment, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// GormBillRepository implements finance.BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// FindByID finds a bill by its ID
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		return nil, translateError(err, "bill", "find")
	}
	return model.ToDomain(), nil
}

// FindAll lists bills matching the filter
func (r *GormBillRepository) FindAll(ctx context.Context, filter finance.BillFilter) ([]finance.Bill, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BillModel{})
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	query = withinDates(query, "due_date", filter.From, filter.To)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "bill", "count")
	}

	var rows []models.BillModel
	if err := paginate(query, filter.Filter, BillSortFields, "created_at").Find(&rows).Error; err != nil {
		return nil, 0, translateError(err, "bill", "list")
	}
	out := make([]finance.Bill, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a bill
func (r *GormBillRepository) Save(ctx context.Context, bill *finance.Bill) error {
	return translateError(r.db.WithContext(ctx).Save(models.BillModelFromDomain(bill)).Error, "bill", "save")
}

// GormSalaryRepository implements finance.SalaryRepository using GORM
type GormSalaryRepository struct {
	db *gorm.DB
}

// NewGormSalaryRepository creates a new GormSalaryRepository
func NewGormSalaryRepository(db *gorm.DB) *GormSalaryRepository {
	return &GormSalaryRepository{db: db}
}

// FindByID finds a salary record by its ID
func (r *GormSalaryRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.SalaryRecord, error) {
	var model models.SalaryRecordModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		return nil, translateError(err, "salary record", "find")
	}
	return model.ToDomain(), nil
}

// FindAll lists salary records matching the filter
func (r *GormSalaryRepository) FindAll(ctx context.Context, filter finance.SalaryFilter) ([]finance.SalaryRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SalaryRecordModel{})
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.Period != "" {
		query = query.Where("period = ?", filter.Period)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("employee_name LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "salary record", "count")
	}

	var rows []models.SalaryRecordModel
	if err := paginate(query, filter.Filter, SalarySortFields, "period").Find(&rows).Error; err != nil {
		return nil, 0, translateError(err, "salary record", "list")
	}
	out := make([]finance.SalaryRecord, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a salary record
func (r *GormSalaryRepository) Save(ctx context.Context, record *finance.SalaryRecord) error {
	return translateError(
		r.db.WithContext(ctx).Save(models.SalaryRecordModelFromDomain(record)).Error,
		"salary record", "save")
}

var (
	_ finance.PaymentRepository = (*GormPaymentRepository)(nil)
	_ finance.BillRepository    = (*GormBillRepository)(nil)
	_ finance.SalaryRepository  = (*GormSalaryRepository)(nil)
)
