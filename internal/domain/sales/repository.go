package sales

import (
	"context"
	"time"

	"github.com/bookkeeping/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleFilter narrows sale queries
type SaleFilter struct {
	shared.Filter
	BranchID   *uuid.UUID
	CustomerID *uuid.UUID
}

// Summary aggregates net sales over a range
type Summary struct {
	BranchID      *uuid.UUID
	From          *time.Time
	To            *time.Time
	Count         int64
	TotalNetSales decimal.Decimal
}

// SaleRepository defines persistence for sales, their splits and attachment metadata
type SaleRepository interface {
	// FindByID loads the sale with its splits
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindAll(ctx context.Context, filter SaleFilter) ([]Sale, int64, error)
	// Save inserts or updates the sale row and replaces its split rows
	Save(ctx context.Context, sale *Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
	Summarize(ctx context.Context, branchID *uuid.UUID, from, to *time.Time) (*Summary, error)

	SaveAttachment(ctx context.Context, attachment *SaleAttachment) error
	FindAttachments(ctx context.Context, saleID uuid.UUID) ([]SaleAttachment, error)
	DeleteAttachments(ctx context.Context, saleID uuid.UUID) error
}
