package ledger

import (
	"context"
	"time"

	"github.com/bookkeeping/backend/internal/domain/cashregister"
	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CashEntryInput is the input for a branch's daily cash count
type CashEntryInput struct {
	BranchID uuid.UUID
	Date     time.Time
	Figures  cashregister.Figures
	Remarks  string
}

// CashRegisterService keeps one cash entry per branch and day
type CashRegisterService struct {
	base
}

// NewCashRegisterService creates a new CashRegisterService
func NewCashRegisterService(deps Dependencies) *CashRegisterService {
	return &CashRegisterService{base: newBase(deps)}
}

// CreateEntry records the day's cash count. A second entry for the same
// branch and day is rejected; use EditEntry instead.
func (s *CashRegisterService) CreateEntry(ctx context.Context, in CashEntryInput) (*cashregister.CashEntry, error) {
	entry, err := cashregister.NewCashEntry(in.BranchID, in.Date, in.Figures, in.Remarks)
	if err != nil {
		return nil, err
	}
	err = s.scope.Execute(ctx, func(repos Repositories) error {
		if err := ensureExists(ctx, &in.BranchID, repos.Branches().ExistsByID, "branch"); err != nil {
			return err
		}
		exists, err := repos.CashEntries().ExistsByBranchAndDate(ctx, entry.BranchID, entry.EntryDate)
		if err != nil {
			return err
		}
		if exists {
			return shared.ErrDuplicateCashEntry
		}
		return repos.CashEntries().Save(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	log := s.log(ctx).With(
		zap.String("branch_id", entry.BranchID.String()),
		zap.Time("entry_date", entry.EntryDate),
		zap.String("difference", entry.Difference.String()),
	)
	if entry.IsBalanced() {
		log.Info("Cash entry recorded")
	} else {
		log.Warn("Cash entry recorded with a difference")
	}
	return entry, nil
}

// EditEntry replaces the figures of an existing entry
func (s *CashRegisterService) EditEntry(ctx context.Context, branchID uuid.UUID, date time.Time, fig cashregister.Figures, remarks string) (*cashregister.CashEntry, error) {
	var entry *cashregister.CashEntry
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		var err error
		entry, err = repos.CashEntries().FindByBranchAndDate(ctx, branchID, date)
		if err != nil {
			return err
		}
		if err := entry.Update(fig, remarks); err != nil {
			return err
		}
		return repos.CashEntries().Save(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// GetEntry returns the entry for a branch and day
func (s *CashRegisterService) GetEntry(ctx context.Context, branchID uuid.UUID, date time.Time) (*cashregister.CashEntry, error) {
	return s.repos.CashEntries().FindByBranchAndDate(ctx, branchID, date)
}

// ListEntries lists cash entries matching the filter
func (s *CashRegisterService) ListEntries(ctx context.Context, filter cashregister.EntryFilter) ([]cashregister.CashEntry, int64, error) {
	return s.repos.CashEntries().FindAll(ctx, filter)
}
