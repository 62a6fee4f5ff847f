// Package buffer provides a shared immutable byte buffer and lightweight
// sub-views over it, used by the sparse/lazy dataset representation to defer
// element decoding until an element is actually accessed.
//
// A View never copies the bytes it describes: it is an (offset, length) pair
// into a backing Buffer. Because the backing array stays reachable as long as
// any View referencing it is reachable, Go's garbage collector already gives
// the "stays alive until the last view is released" lifetime a decoder like
// this needs — no manual reference counting is required.
package buffer

import "fmt"

// Buffer holds an immutable byte slice that one or more Views may reference.
// Callers must not mutate the slice passed to New after construction.
type Buffer struct {
	data []byte
}

// New wraps data in a Buffer. It does not copy data; the caller must treat
// data as immutable from this point on.
func New(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Len returns the total number of bytes in the buffer.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the full backing slice. Callers must not modify it.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// View returns a sub-view covering [offset, offset+length) of the buffer.
// It returns an error if the range falls outside the buffer's bounds.
func (b *Buffer) View(offset, length int) (View, error) {
	if offset < 0 || length < 0 || offset+length > len(b.data) {
		return View{}, fmt.Errorf("buffer: view [%d,%d) out of bounds for buffer of length %d", offset, offset+length, len(b.data))
	}
	return View{buf: b, offset: offset, length: length}, nil
}

// Whole returns a View spanning the entire buffer.
func (b *Buffer) Whole() View {
	return View{buf: b, offset: 0, length: len(b.data)}
}

// View is a lightweight, immutable reference into a portion of a Buffer.
// The zero value is an empty view over a nil buffer.
type View struct {
	buf    *Buffer
	offset int
	length int
}

// Len returns the number of bytes this view covers.
func (v View) Len() int {
	return v.length
}

// Offset returns the view's starting offset within its backing Buffer.
func (v View) Offset() int {
	return v.offset
}

// Bytes returns the bytes this view covers. The returned slice aliases the
// backing Buffer's storage and must not be modified.
func (v View) Bytes() []byte {
	if v.buf == nil {
		return nil
	}
	return v.buf.data[v.offset : v.offset+v.length]
}

// Sub returns a narrower view of the bytes [offset, offset+length) relative
// to the start of this view. It returns an error if the requested range
// falls outside this view's bounds.
func (v View) Sub(offset, length int) (View, error) {
	if offset < 0 || length < 0 || offset+length > v.length {
		return View{}, fmt.Errorf("buffer: sub-view [%d,%d) out of bounds for view of length %d", offset, offset+length, v.length)
	}
	return View{buf: v.buf, offset: v.offset + offset, length: length}, nil
}

// Reader returns a *Reader positioned at the start of this view.
func (v View) Reader() *Reader {
	return &Reader{view: v}
}
