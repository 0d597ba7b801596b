package voucher

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCounter struct {
	mu     sync.Mutex
	values map[string]int64
	err    error
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{values: make(map[string]int64)}
}

func (c *memoryCounter) Next(_ context.Context, key string) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		v = 1
	}
	c.values[key] = v + 1
	return v, nil
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "VCH-000001", Format("VCH", 1))
	assert.Equal(t, "PUR-000042", Format("PUR", 42))
	assert.Equal(t, "VCH-1234567", Format("VCH", 1234567))
}

func TestAttachNote(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		voucher string
		want    string
	}{
		{"empty remarks", "", "VCH-000001", "VCH-000001"},
		{"prepends to remarks", "paid rent", "VCH-000001", "VCH-000001 paid rent"},
		{"already tagged", "VCH-000001 paid rent", "VCH-000001", "VCH-000001 paid rent"},
		{"tagged elsewhere in text", "rent VCH-000001", "VCH-000001", "rent VCH-000001"},
		{"no voucher", "paid rent", "", "paid rent"},
		{"other voucher present", "VCH-000002 rent", "VCH-000001", "VCH-000001 VCH-000002 rent"},
		{"longer voucher sharing a prefix", "VCH-1000000 rent", "VCH-100000", "VCH-100000 VCH-1000000 rent"},
		{"voucher as part of a word", "xVCH-000001 rent", "VCH-000001", "VCH-000001 xVCH-000001 rent"},
		{"tagged with punctuation", "rent (VCH-000001).", "VCH-000001", "rent (VCH-000001)."},
		{"tagged after a colon", "ref:VCH-000001", "VCH-000001", "ref:VCH-000001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AttachNote(tt.text, tt.voucher))
		})
	}
}

func TestAttachNote_Idempotent(t *testing.T) {
	once := AttachNote("supplier payment", "VCH-000007")
	twice := AttachNote(once, "VCH-000007")
	assert.Equal(t, once, twice)
}

func TestSequencer_Next(t *testing.T) {
	counter := newMemoryCounter()
	seq := NewSequencer(counter, KeyVoucher, "")
	assert.Equal(t, DefaultPrefix, seq.Prefix())

	first, err := seq.Next(context.Background())
	require.NoError(t, err)
	second, err := seq.Next(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "VCH-000001", first)
	assert.Equal(t, "VCH-000002", second)
}

func TestSequencer_IndependentKeys(t *testing.T) {
	counter := newMemoryCounter()
	vouchers := NewSequencer(counter, KeyVoucher, "VCH")
	invoices := NewSequencer(counter, KeyPurchaseInvoice, "PUR")

	v, err := vouchers.Next(context.Background())
	require.NoError(t, err)
	i, err := invoices.Next(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "VCH-000001", v)
	assert.Equal(t, "PUR-000001", i)
}

func TestSequencer_PropagatesCounterError(t *testing.T) {
	counter := newMemoryCounter()
	counter.err = errors.New("store unavailable")
	seq := NewSequencer(counter, KeyVoucher, "VCH")

	_, err := seq.Next(context.Background())
	assert.EqualError(t, err, "store unavailable")
}
