// Package dicom provides DICOM file parsing and manipulation.
//
// This package implements a DICOM file parser following the DICOM standard Part 10.
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html
package dicom

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/codeninja55/go-radx/dicom/buffer"
)

// Reader provides DICOM-specific binary reading operations over a shared,
// immutable byte buffer. It supports both Little Endian and Big Endian byte
// ordering, which can be changed dynamically during parsing.
//
// Unlike a plain io.Reader wrapper, Reader reads its entire input into one
// buffer.Buffer up front and does all subsequent consumption against a
// buffer.Reader positioned over that buffer. This is what lets a View handed
// out mid-decode (to a SparseDataSet element, or an encapsulated pixel data
// fragment) remain valid and byte-identical after this Reader, and the
// Parser built on it, are both gone: the View and the Reader's own cursor
// alias the same backing array, and Go's garbage collector keeps it alive
// for as long as any View references it.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.3
type Reader struct {
	buf       *buffer.Buffer
	r         *buffer.Reader
	byteOrder binary.ByteOrder
	readErr   error // set if the initial slurp of r ended in a non-EOF error
}

// NewReader creates a new DICOM binary reader with the specified byte order,
// eagerly reading all of r into memory.
//
// Parameters:
//   - r: The underlying io.Reader to read from
//   - byteOrder: The byte order to use (binary.LittleEndian or binary.BigEndian)
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.3
func NewReader(r io.Reader, byteOrder binary.ByteOrder) *Reader {
	data, err := io.ReadAll(r)
	buf := buffer.New(data)
	return &Reader{
		buf:       buf,
		r:         buf.Whole().Reader(),
		byteOrder: byteOrder,
		readErr:   err,
	}
}

// NewReaderFromView creates a Reader over an already-sliced View, reusing
// its backing buffer rather than copying it. Used to re-decode a
// SparseDataSet element's stored raw bytes on first access.
func NewReaderFromView(v buffer.View, byteOrder binary.ByteOrder) *Reader {
	return &Reader{
		r:         v.Reader(),
		byteOrder: byteOrder,
	}
}

// ensure reports an error if fewer than n bytes remain, mapping the
// shortfall onto the same io.EOF / io.ErrUnexpectedEOF distinction callers
// of the former io.Reader-backed implementation relied on.
func (r *Reader) ensure(n int) error {
	if r.r.Len() >= n {
		return nil
	}
	if r.r.Len() == 0 {
		if r.readErr != nil {
			return r.readErr
		}
		return io.EOF
	}
	return io.ErrUnexpectedEOF
}

// ReadUint16 reads a 16-bit unsigned integer using the current byte order.
//
// Returns io.EOF if the end of the stream is reached.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.ensure(2); err != nil {
		return 0, err
	}
	v, err := r.r.ReadUint16(r.byteOrder)
	if err != nil {
		return 0, fmt.Errorf("failed to read uint16: %w", err)
	}
	return v, nil
}

// ReadUint32 reads a 32-bit unsigned integer using the current byte order.
//
// Returns io.EOF if the end of the stream is reached.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.ensure(4); err != nil {
		return 0, err
	}
	v, err := r.r.ReadUint32(r.byteOrder)
	if err != nil {
		return 0, fmt.Errorf("failed to read uint32: %w", err)
	}
	return v, nil
}

// ReadBytes reads exactly n bytes from the reader.
//
// The returned slice aliases the shared backing buffer and must not be
// modified. Returns an error if fewer than n bytes are available, and an
// empty slice if n is 0.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	if err := r.ensure(n); err != nil {
		return nil, err
	}
	b, err := r.r.ReadBytes(n)
	if err != nil {
		return nil, fmt.Errorf("failed to read %d bytes: %w", n, err)
	}
	return b, nil
}

// ReadView reads exactly n bytes and returns them as a buffer.View sharing
// this Reader's backing buffer, rather than a bare slice. Used by the sparse
// dataset reader to retain an element's value bytes for deferred decode
// instead of materializing it immediately.
func (r *Reader) ReadView(n int) (buffer.View, error) {
	if err := r.ensure(n); err != nil {
		return buffer.View{}, err
	}
	v, err := r.r.ReadView(n)
	if err != nil {
		return buffer.View{}, fmt.Errorf("failed to read view of %d bytes: %w", n, err)
	}
	return v, nil
}

// ReadString reads exactly n bytes and returns them as a string.
//
// DICOM strings may contain null terminators or trailing spaces which are preserved.
// The caller is responsible for trimming if needed.
//
// Returns an error if fewer than n bytes are available.
// Returns an empty string if n is 0.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
func (r *Reader) ReadString(n int) (string, error) {
	if n == 0 {
		return "", nil
	}

	buf, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}

	return string(buf), nil
}

// SetByteOrder changes the byte order for subsequent read operations.
//
// This is used when switching between File Meta Information (always Little Endian)
// and the main dataset (which may use Big Endian depending on Transfer Syntax).
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7.1
func (r *Reader) SetByteOrder(order binary.ByteOrder) {
	r.byteOrder = order
}

// Position returns the current byte position within the reader's view.
//
// This tracks the total number of bytes consumed so far, which is useful
// for parsing operations that need to know byte offsets.
func (r *Reader) Position() int64 {
	return int64(r.r.Offset())
}

// Mark returns the current cursor position for a later Reset, used by the
// halt-predicate peek pattern: look at the next tag, then rewind to before
// it if a caller-supplied predicate says to stop.
func (r *Reader) Mark() int64 {
	return r.Position()
}

// Reset rewinds the cursor to a position previously obtained from Mark or
// Position. Since the reader's entire input already lives in memory, this
// never re-reads or discards anything; the backing buffer is untouched.
func (r *Reader) Reset(pos int64) error {
	return r.r.SeekTo(int(pos))
}
