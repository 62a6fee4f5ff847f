package value

import (
	"fmt"
	"strings"

	"github.com/codeninja55/go-radx/dicom/tag"
	"github.com/codeninja55/go-radx/dicom/vr"
)

// ItemElement is a single decoded element within a sequence item: a tag, the
// VR it was read with, and its decoded Value. It mirrors element.Element's
// shape without importing the dicom or dicom/element packages, which both
// depend on this package and would otherwise create an import cycle.
type ItemElement struct {
	Tag   tag.Tag
	VR    vr.VR
	Value Value
}

// Item is the ordered list of elements nested inside one sequence item
// (FFFE,E000). Order is preserved; DICOM sequence items are not resorted
// by tag the way a top-level dataset's accessors may choose to be.
type Item []ItemElement

// Get returns the element for t within the item and true, or the zero
// ItemElement and false if t is not present.
func (it Item) Get(t tag.Tag) (ItemElement, bool) {
	for _, e := range it {
		if e.Tag == t {
			return e, true
		}
	}
	return ItemElement{}, false
}

// DataSetsValue represents a decoded Sequence of Items (SQ), a list of
// nested items each holding its own ordered elements.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
type DataSetsValue struct {
	vr    vr.VR
	items []Item
}

// NewDataSetsValue creates a DataSetsValue from already-decoded items.
// A nil items slice is treated as an empty sequence (zero items is a valid,
// distinct state from the element being absent altogether).
func NewDataSetsValue(items []Item) *DataSetsValue {
	if items == nil {
		items = []Item{}
	}
	return &DataSetsValue{vr: vr.SequenceOfItems, items: items}
}

// VR always returns vr.SequenceOfItems.
func (d *DataSetsValue) VR() vr.VR {
	return d.vr
}

// Items returns the decoded sequence items in encoded order.
func (d *DataSetsValue) Items() []Item {
	return d.items
}

// Bytes is not supported: a sequence's wire encoding is recursive (each
// item and its nested elements is itself written with tag/VR/length
// framing), so the element writer serializes a DataSetsValue directly
// rather than through the flat Value.Bytes() abstraction the other value
// types use. Callers that need sequence bytes should use the element
// writer, not this method.
func (d *DataSetsValue) Bytes() []byte {
	panic("value: DataSetsValue.Bytes is not supported; sequences are written recursively by the element writer")
}

// String returns a human-readable summary of the sequence's item count.
func (d *DataSetsValue) String() string {
	if len(d.items) == 0 {
		return "SQ[]"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "SQ[%d item", len(d.items))
	if len(d.items) != 1 {
		b.WriteString("s")
	}
	b.WriteString("]")
	return b.String()
}

// Equals returns true if other is a DataSetsValue with the same items in
// the same order, where item elements compare tag, VR and Value equality.
func (d *DataSetsValue) Equals(other Value) bool {
	o, ok := other.(*DataSetsValue)
	if !ok {
		return false
	}
	if len(d.items) != len(o.items) {
		return false
	}
	for i, item := range d.items {
		oi := o.items[i]
		if len(item) != len(oi) {
			return false
		}
		for j, elem := range item {
			oe := oi[j]
			if elem.Tag != oe.Tag || elem.VR != oe.VR {
				return false
			}
			if (elem.Value == nil) != (oe.Value == nil) {
				return false
			}
			if elem.Value != nil && !elem.Value.Equals(oe.Value) {
				return false
			}
		}
	}
	return true
}

var _ Value = (*DataSetsValue)(nil)
