package feltcodec

import (
	"github.com/NethermindEth/juno/core/felt"
)

// Buffer is the append-only felt sequence written by encoders.
type Buffer struct {
	felts []*felt.Felt
}

// NewBuffer creates an empty buffer with room for capacity felts.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{felts: make([]*felt.Felt, 0, capacity)}
}

// Append copies felts to the end of the buffer. A nil felt is appended as zero.
func (b *Buffer) Append(felts ...*felt.Felt) {
	for _, f := range felts {
		b.felts = append(b.felts, copyFelt(f))
	}
}

// AppendUint64 appends v as a single felt.
func (b *Buffer) AppendUint64(v uint64) {
	b.felts = append(b.felts, FeltFromUint(v))
}

// truncate drops everything written after the first n felts.
func (b *Buffer) truncate(n int) {
	clear(b.felts[n:])
	b.felts = b.felts[:n]
}

// Len returns the number of felts written so far.
func (b *Buffer) Len() int {
	return len(b.felts)
}

// Felts returns the encoded sequence. The slice is owned by the buffer.
func (b *Buffer) Felts() []*felt.Felt {
	return b.felts
}

// Cursor tracks the read position in a felt sequence during decoding.
// The position only moves forward and never passes the end of the sequence.
type Cursor struct {
	felts []*felt.Felt
	pos   int
}

// NewCursor starts a cursor at the beginning of felts.
func NewCursor(felts []*felt.Felt) *Cursor {
	return &Cursor{felts: felts}
}

// Position returns the number of felts consumed so far.
func (c *Cursor) Position() int {
	return c.pos
}

// Remaining returns the number of felts left to consume.
func (c *Cursor) Remaining() int {
	return len(c.felts) - c.pos
}

// Peek returns the next felt without consuming it.
func (c *Cursor) Peek() (*felt.Felt, error) {
	return c.PeekAt(0)
}

// PeekAt returns the felt i positions past the cursor without consuming anything.
func (c *Cursor) PeekAt(i int) (*felt.Felt, error) {
	if i < 0 || i >= c.Remaining() {
		return nil, newError(KindBufferUnderrun, c.pos, "", "need %d felts, %d remaining", i+1, c.Remaining())
	}
	return copyFelt(c.felts[c.pos+i]), nil
}

// Read consumes one felt.
func (c *Cursor) Read() (*felt.Felt, error) {
	f, err := c.Peek()
	if err != nil {
		return nil, err
	}
	c.pos++
	return f, nil
}

// Take consumes n felts. Nothing is consumed if fewer than n remain.
func (c *Cursor) Take(n int) ([]*felt.Felt, error) {
	if err := c.check(n); err != nil {
		return nil, err
	}
	out := make([]*felt.Felt, n)
	for i := range out {
		out[i] = copyFelt(c.felts[c.pos+i])
	}
	c.pos += n
	return out, nil
}

// Advance skips n felts. Nothing is skipped if fewer than n remain.
func (c *Cursor) Advance(n int) error {
	if err := c.check(n); err != nil {
		return err
	}
	c.pos += n
	return nil
}

func (c *Cursor) check(n int) error {
	if n < 0 || n > c.Remaining() {
		return newError(KindBufferUnderrun, c.pos, "", "need %d felts, %d remaining", n, c.Remaining())
	}
	return nil
}
