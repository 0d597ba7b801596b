// Package voucher issues the reference numbers that tie every money-moving
// record together across ledgers.
package voucher

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// Counter keys. Each key is an independent sequence.
const (
	KeyVoucher         = "voucher"
	KeyPurchaseInvoice = "purchase_invoice"
)

// DefaultPrefix is used when no voucher prefix is configured
const DefaultPrefix = "VCH"

// Counter is a named, atomically incremented sequence.
// Next returns the current value (1 when the key has never been used) and
// stores value+1. Two callers must never observe the same value for a key.
type Counter interface {
	Next(ctx context.Context, key string) (int64, error)
}

// Format renders a sequence value as "{prefix}-{value zero-padded to 6 digits}"
func Format(prefix string, value int64) string {
	return fmt.Sprintf("%s-%06d", prefix, value)
}

// AttachNote prepends the voucher to free-text remarks unless it is already present.
// Applying it twice yields the same string as applying it once.
func AttachNote(text, voucher string) string {
	if voucher == "" {
		return text
	}
	text = strings.TrimSpace(text)
	if slices.Contains(strings.FieldsFunc(text, isNoteSeparator), voucher) {
		return text
	}
	if text == "" {
		return voucher
	}
	return voucher + " " + text
}

// isNoteSeparator splits remarks into reference-sized tokens, so VCH-1000000
// does not count as a mention of VCH-100000
func isNoteSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_'
}

// Sequencer formats values drawn from one counter key
type Sequencer struct {
	counter Counter
	key     string
	prefix  string
}

// NewSequencer creates a sequencer over the given counter key
func NewSequencer(counter Counter, key, prefix string) *Sequencer {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Sequencer{
		counter: counter,
		key:     key,
		prefix:  prefix,
	}
}

// Next issues the next formatted reference
func (s *Sequencer) Next(ctx context.Context) (string, error) {
	value, err := s.counter.Next(ctx, s.key)
	if err != nil {
		return "", err
	}
	return Format(s.prefix, value), nil
}

// Prefix returns the configured prefix
func (s *Sequencer) Prefix() string {
	return s.prefix
}
