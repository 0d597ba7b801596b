package persistence

import (
	"context"

	"github.com/bookkeeping/backend/internal/domain/partner"
	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/bookkeeping/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// listByName runs a name-searchable, paginated listing over one partner table
func listByName[M any](ctx context.Context, db *gorm.DB, filter shared.Filter, resource string) ([]M, int64, error) {
	query := db.WithContext(ctx).Model(new(M))
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, resource, "count")
	}

	var rows []M
	if err := paginate(query, filter, PartnerSortFields, "name").Find(&rows).Error; err != nil {
		return nil, 0, translateError(err, resource, "list")
	}
	return rows, total, nil
}

func existsByID[M any](ctx context.Context, db *gorm.DB, id uuid.UUID, resource string) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(new(M)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translateError(err, resource, "check")
	}
	return count > 0, nil
}

// GormCustomerRepository implements partner.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		return nil, translateError(err, "customer", "find")
	}
	return model.ToDomain(), nil
}

// FindAll lists customers, searching by name
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, int64, error) {
	rows, total, err := listByName[models.CustomerModel](ctx, r.db, filter, "customer")
	if err != nil {
		return nil, 0, err
	}
	out := make([]partner.Customer, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// ExistsByID reports whether the customer exists
func (r *GormCustomerRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return existsByID[models.CustomerModel](ctx, r.db, id, "customer")
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return translateError(
		r.db.WithContext(ctx).Save(models.CustomerModelFromDomain(customer)).Error,
		"customer", "save")
}

// GormSupplierRepository implements partner.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	var model models.SupplierModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		return nil, translateError(err, "supplier", "find")
	}
	return model.ToDomain(), nil
}

// FindAll lists suppliers, searching by name
func (r *GormSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, int64, error) {
	rows, total, err := listByName[models.SupplierModel](ctx, r.db, filter, "supplier")
	if err != nil {
		return nil, 0, err
	}
	out := make([]partner.Supplier, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// ExistsByID reports whether the supplier exists
func (r *GormSupplierRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return existsByID[models.SupplierModel](ctx, r.db, id, "supplier")
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	return translateError(
		r.db.WithContext(ctx).Save(models.SupplierModelFromDomain(supplier)).Error,
		"supplier", "save")
}

// GormBranchRepository implements partner.BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// FindByID finds a branch by its ID
func (r *GormBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Branch, error) {
	var model models.BranchModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		return nil, translateError(err, "branch", "find")
	}
	return model.ToDomain(), nil
}

// FindAll lists branches, searching by name
func (r *GormBranchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Branch, int64, error) {
	rows, total, err := listByName[models.BranchModel](ctx, r.db, filter, "branch")
	if err != nil {
		return nil, 0, err
	}
	out := make([]partner.Branch, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// ExistsByID reports whether the branch exists
func (r *GormBranchRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return existsByID[models.BranchModel](ctx, r.db, id, "branch")
}

// Save creates or updates a branch
func (r *GormBranchRepository) Save(ctx context.Context, branch *partner.Branch) error {
	return translateError(
		r.db.WithContext(ctx).Save(models.BranchModelFromDomain(branch)).Error,
		"branch", "save")
}

var (
	_ partner.CustomerRepository = (*GormCustomerRepository)(nil)
	_ partner.SupplierRepository = (*GormSupplierRepository)(nil)
	_ partner.BranchRepository   = (*GormBranchRepository)(nil)
)
