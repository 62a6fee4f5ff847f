// Package dicom provides DICOM file parsing and manipulation.
package dicom

import (
	"errors"
	"fmt"
	"io"

	"github.com/codeninja55/go-radx/dicom/buffer"
	"github.com/codeninja55/go-radx/dicom/element"
	"github.com/codeninja55/go-radx/dicom/tag"
	"github.com/codeninja55/go-radx/dicom/value"
	"github.com/codeninja55/go-radx/dicom/vr"
)

// sparseEntry is one tag's slot in a SparseDataSet. Scalar, defined-length
// elements are stored as a raw View and decoded on first access; sequences
// and encapsulated pixel data are structural or recursive already, so they
// are decoded eagerly at parse time and stored ready-made.
type sparseEntry struct {
	vr      vr.VR
	ts      *TransferSyntax
	view    buffer.View
	value   value.Value
	decoded bool
}

// SparseDataSet is a dataset whose scalar element values are materialized
// lazily from a shared backing buffer rather than eagerly at parse time.
// Each tag's raw bytes are retained as a buffer.View sharing the Parser's
// original buffer.Buffer; decoding into a typed value.Value happens only
// when a caller first asks for that tag's value, and the result is cached
// for any subsequent access.
//
// Unlike DataSet, SparseDataSet exposes typed accessors directly rather than
// returning *element.Element, since an un-decoded entry has no Element to
// return without first paying the decode cost the type is built to avoid.
type SparseDataSet struct {
	entries map[tag.Tag]*sparseEntry
	order   []tag.Tag
}

// NewSparseDataSet creates a new empty sparse dataset.
func NewSparseDataSet() *SparseDataSet {
	return &SparseDataSet{entries: make(map[tag.Tag]*sparseEntry)}
}

// addRaw registers a scalar element's raw bytes for deferred decode.
func (s *SparseDataSet) addRaw(t tag.Tag, v vr.VR, view buffer.View, ts *TransferSyntax) {
	if _, exists := s.entries[t]; !exists {
		s.order = append(s.order, t)
	}
	s.entries[t] = &sparseEntry{vr: v, ts: ts, view: view}
}

// addDecoded registers an already-decoded value, used for sequences and
// encapsulated pixel data which are read recursively at parse time.
func (s *SparseDataSet) addDecoded(t tag.Tag, v vr.VR, val value.Value) {
	if _, exists := s.entries[t]; !exists {
		s.order = append(s.order, t)
	}
	s.entries[t] = &sparseEntry{vr: v, value: val, decoded: true}
}

// Len returns the number of tags held by the dataset.
func (s *SparseDataSet) Len() int {
	return len(s.entries)
}

// Contains reports whether t is present, regardless of whether its value
// has been materialized yet.
func (s *SparseDataSet) Contains(t tag.Tag) bool {
	_, ok := s.entries[t]
	return ok
}

// Tags returns the dataset's tags in the order they were first decoded.
func (s *SparseDataSet) Tags() []tag.Tag {
	tags := make([]tag.Tag, len(s.order))
	copy(tags, s.order)
	return tags
}

// VR returns the Value Representation a tag was decoded with.
func (s *SparseDataSet) VR(t tag.Tag) (vr.VR, error) {
	e, ok := s.entries[t]
	if !ok {
		return 0, &MissingRequiredElement{Tag: t}
	}
	return e.vr, nil
}

// value materializes and caches the decoded value.Value for t, decoding it
// from its stored raw bytes on first access. Subsequent calls for the same
// tag return the cached value without touching the backing buffer again.
func (s *SparseDataSet) value(t tag.Tag) (value.Value, error) {
	e, ok := s.entries[t]
	if !ok {
		return nil, &MissingRequiredElement{Tag: t}
	}
	if e.decoded {
		return e.value, nil
	}

	reader := NewReaderFromView(e.view, e.ts.ByteOrder)
	elemParser := NewElementReader(reader, e.ts)
	val, err := elemParser.readValue(t, e.vr, uint32(e.view.Len()))
	if err != nil {
		return nil, fmt.Errorf("sparse dataset: failed to decode %s: %w", t, err)
	}
	e.value = val
	e.decoded = true
	return val, nil
}

// Element materializes t's value and wraps it as an element.Element, for
// callers that need to cross over into the eager DataSet API (e.g. to Add
// it into a DataSet being assembled from sparse elements).
func (s *SparseDataSet) Element(t tag.Tag) (*element.Element, error) {
	val, err := s.value(t)
	if err != nil {
		return nil, err
	}
	return element.NewElement(t, s.entries[t].vr, val)
}

// IsInt reports whether t holds an integer-category value (SS, US, SL, UL,
// SV, UV, AT or IS). It materializes the value to determine this, so a
// decode failure is treated as a non-match rather than a reported error.
func (s *SparseDataSet) IsInt(t tag.Tag) bool {
	val, err := s.value(t)
	if err != nil {
		return false
	}
	_, ok := val.(*value.IntValue)
	return ok
}

// Int returns t's decoded integer values, or a TypeMismatch error if t's VR
// is not an integer category.
func (s *SparseDataSet) Int(t tag.Tag) ([]int64, error) {
	val, err := s.value(t)
	if err != nil {
		return nil, err
	}
	iv, ok := val.(*value.IntValue)
	if !ok {
		return nil, &TypeMismatch{Tag: t, RequestedCategory: "int", ActualVR: val.VR()}
	}
	return iv.Ints(), nil
}

// FirstInt returns t's first decoded integer value. The second return is
// false if t has no values (present=true distinguishes this from absence).
func (s *SparseDataSet) FirstInt(t tag.Tag) (int64, bool, error) {
	vals, err := s.Int(t)
	if err != nil {
		return 0, false, err
	}
	if len(vals) == 0 {
		return 0, false, nil
	}
	return vals[0], true, nil
}

// IsReal reports whether t holds a real-valued category (FL, FD or DS).
func (s *SparseDataSet) IsReal(t tag.Tag) bool {
	val, err := s.value(t)
	if err != nil {
		return false
	}
	_, ok := val.(*value.FloatValue)
	return ok
}

// Real returns t's decoded floating-point values, or a TypeMismatch error if
// t's VR is not a real-valued category.
func (s *SparseDataSet) Real(t tag.Tag) ([]float64, error) {
	val, err := s.value(t)
	if err != nil {
		return nil, err
	}
	fv, ok := val.(*value.FloatValue)
	if !ok {
		return nil, &TypeMismatch{Tag: t, RequestedCategory: "real", ActualVR: val.VR()}
	}
	return fv.Floats(), nil
}

// FirstReal returns t's first decoded floating-point value.
func (s *SparseDataSet) FirstReal(t tag.Tag) (float64, bool, error) {
	vals, err := s.Real(t)
	if err != nil {
		return 0, false, err
	}
	if len(vals) == 0 {
		return 0, false, nil
	}
	return vals[0], true, nil
}

// IsString reports whether t holds a string-category value.
func (s *SparseDataSet) IsString(t tag.Tag) bool {
	val, err := s.value(t)
	if err != nil {
		return false
	}
	_, ok := val.(*value.StringValue)
	return ok
}

// String returns t's decoded string components, or a TypeMismatch error if
// t's VR is not a string category.
func (s *SparseDataSet) String(t tag.Tag) ([]string, error) {
	val, err := s.value(t)
	if err != nil {
		return nil, err
	}
	sv, ok := val.(*value.StringValue)
	if !ok {
		return nil, &TypeMismatch{Tag: t, RequestedCategory: "string", ActualVR: val.VR()}
	}
	return sv.Strings(), nil
}

// FirstString returns t's first decoded string component.
func (s *SparseDataSet) FirstString(t tag.Tag) (string, bool, error) {
	vals, err := s.String(t)
	if err != nil {
		return "", false, err
	}
	if len(vals) == 0 {
		return "", false, nil
	}
	return vals[0], true, nil
}

// IsBinary reports whether t holds a non-fragmented binary value (OB, OD,
// OF, OL, OV, OW or UN). Fragmented binary values (BinariesValue) are a
// distinct category, covered by IsFragmented below since they always
// decode eagerly.
func (s *SparseDataSet) IsBinary(t tag.Tag) bool {
	val, err := s.value(t)
	if err != nil {
		return false
	}
	_, ok := val.(*value.BytesValue)
	return ok
}

// Binary returns t's raw bytes, or a TypeMismatch error if t's VR is not a
// non-fragmented binary category.
func (s *SparseDataSet) Binary(t tag.Tag) ([]byte, error) {
	val, err := s.value(t)
	if err != nil {
		return nil, err
	}
	bv, ok := val.(*value.BytesValue)
	if !ok {
		return nil, &TypeMismatch{Tag: t, RequestedCategory: "binary", ActualVR: val.VR()}
	}
	return bv.Bytes(), nil
}

// FirstBinary is an alias for Binary retained for symmetry with the other
// typed accessors; a binary element has exactly one logical value.
func (s *SparseDataSet) FirstBinary(t tag.Tag) ([]byte, bool, error) {
	b, err := s.Binary(t)
	if err != nil {
		return nil, false, err
	}
	if len(b) == 0 {
		return nil, false, nil
	}
	return b, true, nil
}

// IsFragmented reports whether t holds encapsulated, fragmented binary data
// (compressed Pixel Data and its Float/Double Float peers).
func (s *SparseDataSet) IsFragmented(t tag.Tag) bool {
	val, err := s.value(t)
	if err != nil {
		return false
	}
	_, ok := val.(*value.BinariesValue)
	return ok
}

// Fragments returns t's encapsulated fragments in encoded order, or a
// TypeMismatch error if t is not encapsulated, fragmented binary data.
func (s *SparseDataSet) Fragments(t tag.Tag) ([]buffer.View, error) {
	val, err := s.value(t)
	if err != nil {
		return nil, err
	}
	bv, ok := val.(*value.BinariesValue)
	if !ok {
		return nil, &TypeMismatch{Tag: t, RequestedCategory: "fragmented binary", ActualVR: val.VR()}
	}
	return bv.Fragments(), nil
}

// IsDataSet reports whether t holds a Sequence of Items.
func (s *SparseDataSet) IsDataSet(t tag.Tag) bool {
	val, err := s.value(t)
	if err != nil {
		return false
	}
	_, ok := val.(*value.DataSetsValue)
	return ok
}

// DataSet returns t's sequence items converted into *DataSet, one per item,
// or a TypeMismatch error if t is not a Sequence of Items. Item elements are
// converted by wrapping their already-decoded tag/VR/value triples, so no
// further buffer access is required.
func (s *SparseDataSet) DataSet(t tag.Tag) ([]*DataSet, error) {
	val, err := s.value(t)
	if err != nil {
		return nil, err
	}
	dsv, ok := val.(*value.DataSetsValue)
	if !ok {
		return nil, &TypeMismatch{Tag: t, RequestedCategory: "sequence", ActualVR: val.VR()}
	}

	items := dsv.Items()
	out := make([]*DataSet, len(items))
	for i, item := range items {
		ds, err := itemToDataSet(item)
		if err != nil {
			return nil, fmt.Errorf("sparse dataset: failed to convert item %d of %s: %w", i, t, err)
		}
		out[i] = ds
	}
	return out, nil
}

// FirstDataSet returns t's first sequence item converted to a *DataSet.
func (s *SparseDataSet) FirstDataSet(t tag.Tag) (*DataSet, bool, error) {
	items, err := s.DataSet(t)
	if err != nil {
		return nil, false, err
	}
	if len(items) == 0 {
		return nil, false, nil
	}
	return items[0], true, nil
}

// itemToDataSet converts a sequence Item's flat, ordered elements into a
// DataSet, the form the rest of the package works with.
func itemToDataSet(item value.Item) (*DataSet, error) {
	ds := NewDataSet()
	for _, ie := range item {
		elem, err := element.NewElement(ie.Tag, ie.VR, ie.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to build element for tag %s: %w", ie.Tag, err)
		}
		if err := ds.Add(elem); err != nil {
			return nil, fmt.Errorf("failed to add element %s: %w", ie.Tag, err)
		}
	}
	return ds, nil
}

// readSparseDataSet reads dataset elements from reader, storing each
// scalar, defined-length element's raw bytes as a View for deferred decode
// and eagerly decoding sequences and encapsulated pixel data, which are
// already structural or recursive by nature. Like Parser.readDataSet, a
// non-nil halt is consulted before each element: when it reports true the
// cursor is left positioned immediately before that tag and reading stops.
func readSparseDataSet(reader *Reader, elemParser *ElementReader, ts *TransferSyntax, halt func(tag.Tag) bool) (*SparseDataSet, error) {
	sds := NewSparseDataSet()

	for {
		t, err := elemParser.PeekTag()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return sds, nil
			}
			return nil, fmt.Errorf("failed to peek next tag: %w", err)
		}
		if halt != nil && halt(t) {
			return sds, nil
		}

		elemTag, elemVR, length, err := elemParser.readElementHeader()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return sds, nil
			}
			return nil, fmt.Errorf("failed to read element header for tag %s: %w", t, err)
		}

		if length == 0xFFFFFFFF || elemVR == vr.SequenceOfItems {
			val, err := elemParser.readValue(elemTag, elemVR, length)
			if err != nil {
				return nil, fmt.Errorf("failed to read value for tag %s: %w", elemTag, err)
			}
			sds.addDecoded(elemTag, elemVR, val)
			continue
		}

		view, err := reader.ReadView(int(length))
		if err != nil {
			return nil, fmt.Errorf("failed to read value bytes for tag %s: %w", elemTag, err)
		}
		sds.addRaw(elemTag, elemVR, view, ts)
	}
}
