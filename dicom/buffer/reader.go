package buffer

import (
	"encoding/binary"
	"fmt"
)

// Reader sequentially consumes the bytes of a View. Unlike an io.Reader over
// a stream, a Reader always knows exactly how many bytes remain (Len), which
// element_reader.go relies on to detect the end of a defined-length sequence
// or item without needing a sentinel.
type Reader struct {
	view View
	pos  int
}

// NewReader returns a Reader over the given bytes, most-significant helper
// for callers that have a []byte rather than a View already in hand.
func NewReader(data []byte) *Reader {
	return New(data).Whole().Reader()
}

// Len returns the number of unread bytes remaining in the view.
func (r *Reader) Len() int {
	return r.view.Len() - r.pos
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.pos
}

// View returns the remaining, unread portion of the reader as a View.
func (r *Reader) View() (View, error) {
	return r.view.Sub(r.pos, r.Len())
}

// ReadBytes consumes and returns the next n bytes. The returned slice
// aliases the backing buffer and must not be modified.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > r.Len() {
		return nil, fmt.Errorf("buffer: read %d bytes, only %d remaining", n, r.Len())
	}
	b := r.view.Bytes()[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadView consumes and returns the next n bytes as a View sharing the
// original backing Buffer, rather than a bare slice. Used when constructing
// a nested Reader over a sub-element or sequence item.
func (r *Reader) ReadView(n int) (View, error) {
	v, err := r.view.Sub(r.pos, n)
	if err != nil {
		return View{}, fmt.Errorf("buffer: read view of %d bytes, only %d remaining", n, r.Len())
	}
	r.pos += n
	return v, nil
}

// Skip advances the read position by n bytes without returning them.
func (r *Reader) Skip(n int) error {
	_, err := r.ReadBytes(n)
	return err
}

// SeekTo repositions the reader to an absolute offset within its view,
// previously obtained from Offset. It never touches the backing buffer, so
// rewinding after a peek is free of any re-read or copy.
func (r *Reader) SeekTo(pos int) error {
	if pos < 0 || pos > r.view.Len() {
		return fmt.Errorf("buffer: seek to %d out of bounds for view of length %d", pos, r.view.Len())
	}
	r.pos = pos
	return nil
}

func (r *Reader) readUint(n int, order binary.ByteOrder) (uint64, error) {
	b, err := r.ReadBytes(n)
	if err != nil {
		return 0, err
	}
	switch n {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(order.Uint16(b)), nil
	case 4:
		return uint64(order.Uint32(b)), nil
	case 8:
		return order.Uint64(b), nil
	default:
		panic(fmt.Sprintf("buffer: unsupported integer width %d", n))
	}
}

// ReadUint16 reads a 16-bit unsigned integer in the given byte order.
func (r *Reader) ReadUint16(order binary.ByteOrder) (uint16, error) {
	v, err := r.readUint(2, order)
	return uint16(v), err
}

// ReadUint32 reads a 32-bit unsigned integer in the given byte order.
func (r *Reader) ReadUint32(order binary.ByteOrder) (uint32, error) {
	v, err := r.readUint(4, order)
	return uint32(v), err
}

// ReadByte reads a single byte, satisfying io.ByteReader.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Exhausted reports whether every byte of the underlying view has been read.
func (r *Reader) Exhausted() bool {
	return r.Len() == 0
}
