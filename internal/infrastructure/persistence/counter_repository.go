package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/bookkeeping/backend/internal/domain/voucher"
	"github.com/bookkeeping/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultCounterRetries bounds the compare-and-swap loop
const DefaultCounterRetries = 50

// GormCounterRepository issues monotonically increasing numbers per key.
// The stored value is the next number to hand out; an absent row starts at 1.
type GormCounterRepository struct {
	db         *gorm.DB
	maxRetries int
}

// NewGormCounterRepository creates a counter repository
func NewGormCounterRepository(db *gorm.DB, maxRetries int) *GormCounterRepository {
	if maxRetries < 1 {
		maxRetries = DefaultCounterRetries
	}
	return &GormCounterRepository{db: db, maxRetries: maxRetries}
}

// Next returns the current value for key and advances it by one.
// The value is read under FOR UPDATE, which returns the latest committed row
// even inside a REPEATABLE READ transaction. Stores without row locks fall
// back to UPDATE ... WHERE value = observed; the loser retries until
// maxRetries is exhausted.
func (r *GormCounterRepository) Next(ctx context.Context, key string) (int64, error) {
	for attempt := 0; attempt < r.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		var row models.CounterModel
		err := r.db.WithContext(ctx).Where("name = ?", key).Take(&row).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			seeded, err := r.seed(ctx, key)
			if err != nil {
				return 0, err
			}
			if seeded {
				return 1, nil
			}
		case err != nil:
			return 0, fmt.Errorf("read counter %s: %w", key, err)
		}

		err = r.db.WithContext(ctx).
			Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
			Where("name = ?", key).
			Take(&row).Error
		if err != nil {
			return 0, fmt.Errorf("lock counter %s: %w", key, err)
		}

		result := r.db.WithContext(ctx).
			Model(&models.CounterModel{}).
			Where("name = ? AND value = ?", key, row.Value).
			Updates(map[string]any{
				"value":      gorm.Expr("value + 1"),
				"updated_at": time.Now().UTC(),
			})
		if result.Error != nil {
			return 0, fmt.Errorf("advance counter %s: %w", key, result.Error)
		}
		if result.RowsAffected == 1 {
			return row.Value, nil
		}
	}
	return 0, shared.ErrConcurrencyConflict
}

// seed creates the row for a never-used key, issuing 1. It reports false when
// another caller created it first. The absence check before it is a plain
// read, so two first callers hold no gap locks when they insert.
func (r *GormCounterRepository) seed(ctx context.Context, key string) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.CounterModel{Name: key, Value: 2, UpdatedAt: time.Now().UTC()})
	if result.Error != nil {
		return false, fmt.Errorf("seed counter %s: %w", key, result.Error)
	}
	return result.RowsAffected == 1, nil
}

// Peek returns the next value without advancing it
func (r *GormCounterRepository) Peek(ctx context.Context, key string) (int64, error) {
	var row models.CounterModel
	err := r.db.WithContext(ctx).Where("name = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read counter %s: %w", key, err)
	}
	return row.Value, nil
}

var _ voucher.Counter = (*GormCounterRepository)(nil)
