// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Each model carries its table mapping plus ToDomain/FromDomain mappers used by
// the repositories in the parent persistence package.
//
// Structure:
//   - base.go: BaseModel shared by every table
//   - counter.go: named sequences behind voucher and invoice numbers
//   - banking.go: banks and the bank transaction ledger
//   - sales.go: sales, bank splits and attachment metadata
//   - finance.go: receivables, recoveries, purchases, payments, bills, salaries
//   - cashregister.go: daily cash entries
//   - partner.go: customers, suppliers, branches
package models
