package persistence

import (
	"errors"
	"fmt"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps gorm errors onto domain errors for the named resource.
// Anything unrecognized is wrapped with the operation for the logs.
func translateError(err error, resource, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewNotFoundError(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewConflictError("%s already exists", resource)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewConflictError("%s references a missing or dependent record", resource)
	default:
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		return fmt.Errorf("%s %s: %w", op, resource, err)
	}
}

// paginate applies the filter's page window and validated ordering
func paginate(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	if field != "id" {
		query = query.Order("id " + ValidateSortOrder(filter.OrderDir))
	}
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}
