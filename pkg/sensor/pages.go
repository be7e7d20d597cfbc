package sensor

import (
	"errors"
	"fmt"
)

// PageBuffer layout of the DS2438 memory.
const (
	PageCount = 8
	PageSize  = 8
)

// ErrPageOutOfRange is returned when a page or byte index is outside the buffer.
var ErrPageOutOfRange = errors.New("page index out of range")

// PageBuffer holds the eight 8-byte memory pages of a DS2438.
type PageBuffer [PageCount][PageSize]byte

// SetPage copies data into page n. Short data is zero padded.
func (p *PageBuffer) SetPage(n int, data []byte) error {
	if n < 0 || n >= PageCount {
		return fmt.Errorf("%w: page %d", ErrPageOutOfRange, n)
	}
	if len(data) > PageSize {
		return fmt.Errorf("%w: page %d has %d bytes", ErrPageOutOfRange, n, len(data))
	}
	p[n] = [PageSize]byte{}
	copy(p[n][:], data)
	return nil
}

// Byte returns byte b of page n.
func (p *PageBuffer) Byte(n, b int) byte {
	if n < 0 || n >= PageCount || b < 0 || b >= PageSize {
		return 0
	}
	return p[n][b]
}

// Page returns a copy of page n.
func (p *PageBuffer) Page(n int) []byte {
	if n < 0 || n >= PageCount {
		return nil
	}
	out := make([]byte, PageSize)
	copy(out, p[n][:])
	return out
}
