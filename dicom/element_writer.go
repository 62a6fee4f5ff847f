// Package dicom provides DICOM file parsing and manipulation.
package dicom

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/codeninja55/go-radx/dicom/element"
	"github.com/codeninja55/go-radx/dicom/tag"
	"github.com/codeninja55/go-radx/dicom/value"
	"github.com/codeninja55/go-radx/dicom/vr"
)

// ElementWriter encodes individual DICOM data elements to a binary stream.
//
// Unlike a flat byte-slice writer, it recurses into Sequence of Items (SQ)
// elements and encapsulated pixel-data fragments, the symmetric counterpart
// to ElementReader's recursive decode.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
type ElementWriter struct {
	w  io.Writer
	ts *TransferSyntax
	// undefinedLengthSequences, when true, frames every SQ element with
	// undefined length (0xFFFFFFFF) terminated by a Sequence Delimitation
	// Item, instead of the default explicit-length framing that
	// pre-serializes each item to compute its byte length.
	undefinedLengthSequences bool
}

// NewElementWriter creates an element writer over w using ts's byte order
// and explicit/implicit VR convention.
func NewElementWriter(w io.Writer, ts *TransferSyntax) *ElementWriter {
	return &ElementWriter{w: w, ts: ts}
}

// UseUndefinedLengthSequences switches the writer to undefined-length
// sequence framing (Item/ItemDelimitationItem/SequenceDelimitationItem)
// instead of the default pre-computed explicit length.
func (w *ElementWriter) UseUndefinedLengthSequences(v bool) {
	w.undefinedLengthSequences = v
}

// WriteElement encodes one data element, recursing into nested sequence
// items and encapsulated pixel-data fragments as needed.
func (w *ElementWriter) WriteElement(elem *element.Element) error {
	t := elem.Tag()
	v := elem.VR()
	val := elem.Value()

	switch concrete := val.(type) {
	case *value.DataSetsValue:
		return w.writeSequence(t, v, concrete)
	case *value.BinariesValue:
		return w.writeEncapsulatedFragments(t, v, concrete)
	default:
		return w.writeScalarElement(t, v, val.Bytes())
	}
}

// writeScalarElement writes a tag/VR/length header followed by already
// serialized value bytes, for every VR whose wire form is a flat byte run
// (string, integer, float and ordinary binary categories).
func (w *ElementWriter) writeScalarElement(t tag.Tag, v vr.VR, data []byte) error {
	if err := w.writeTag(t); err != nil {
		return err
	}
	return w.writeHeaderAndValue(v, uint32(len(data)), data)
}

// writeHeaderAndValue writes the VR/length portion of an element header (or
// just the length, under implicit VR) followed by the value bytes.
func (w *ElementWriter) writeHeaderAndValue(v vr.VR, length uint32, data []byte) error {
	if err := w.writeVRAndLength(v, length); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if _, err := w.w.Write(data); err != nil {
		return fmt.Errorf("failed to write value bytes: %w", err)
	}
	return nil
}

// writeTag writes a tag's group and element words in the transfer syntax's
// byte order.
func (w *ElementWriter) writeTag(t tag.Tag) error {
	if err := binary.Write(w.w, w.ts.ByteOrder, t.Group); err != nil {
		return fmt.Errorf("failed to write tag group: %w", err)
	}
	if err := binary.Write(w.w, w.ts.ByteOrder, t.Element); err != nil {
		return fmt.Errorf("failed to write tag element: %w", err)
	}
	return nil
}

// writeVRAndLength writes the explicit VR + length fields (or, under
// implicit VR, just the 4-byte length), honoring each VR's length-width
// rule.
func (w *ElementWriter) writeVRAndLength(v vr.VR, length uint32) error {
	if !w.ts.ExplicitVR {
		if err := binary.Write(w.w, w.ts.ByteOrder, length); err != nil {
			return fmt.Errorf("failed to write implicit-VR length: %w", err)
		}
		return nil
	}

	vrBytes := []byte(v.String())
	if _, err := w.w.Write(vrBytes); err != nil {
		return fmt.Errorf("failed to write VR: %w", err)
	}

	if v.UsesExplicitLength32() {
		if err := binary.Write(w.w, w.ts.ByteOrder, uint16(0)); err != nil {
			return fmt.Errorf("failed to write reserved bytes: %w", err)
		}
		if err := binary.Write(w.w, w.ts.ByteOrder, length); err != nil {
			return fmt.Errorf("failed to write 32-bit length: %w", err)
		}
		return nil
	}

	if length > 0xFFFF {
		return fmt.Errorf("value length %d exceeds 16-bit limit for VR %s", length, v.String())
	}
	if err := binary.Write(w.w, w.ts.ByteOrder, uint16(length)); err != nil {
		return fmt.Errorf("failed to write 16-bit length: %w", err)
	}
	return nil
}

// writeItemHeader writes a bare tag + 4-byte length, the framing used for
// Item, Item Delimitation Item and Sequence Delimitation Item regardless of
// transfer syntax.
func (w *ElementWriter) writeItemHeader(t tag.Tag, length uint32) error {
	if err := w.writeTag(t); err != nil {
		return err
	}
	if err := binary.Write(w.w, w.ts.ByteOrder, length); err != nil {
		return fmt.Errorf("failed to write item length: %w", err)
	}
	return nil
}

// writeSequence writes a Sequence of Items (SQ) element, recursing into
// each item's elements. By default, each item is pre-serialized to a
// scratch buffer so its exact byte length can be written (explicit-length
// framing); UseUndefinedLengthSequences switches to delimiter-terminated
// framing instead.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
func (w *ElementWriter) writeSequence(t tag.Tag, v vr.VR, seq *value.DataSetsValue) error {
	if err := w.writeTag(t); err != nil {
		return err
	}

	if w.undefinedLengthSequences {
		if err := w.writeVRAndLength(v, 0xFFFFFFFF); err != nil {
			return err
		}
		for _, item := range seq.Items() {
			if err := w.writeItemUndefinedLength(item); err != nil {
				return err
			}
		}
		return w.writeItemHeader(tag.SequenceDelimitationItemTag, 0)
	}

	var bodies [][]byte
	total := 0
	for _, item := range seq.Items() {
		body, err := w.serializeItem(item)
		if err != nil {
			return err
		}
		bodies = append(bodies, body)
		total += 8 + len(body) // item tag(4) + length(4) + body
	}

	if err := w.writeVRAndLength(v, uint32(total)); err != nil {
		return err
	}
	for _, body := range bodies {
		if err := w.writeItemHeader(tag.ItemTag, uint32(len(body))); err != nil {
			return err
		}
		if len(body) > 0 {
			if _, err := w.w.Write(body); err != nil {
				return fmt.Errorf("failed to write item body: %w", err)
			}
		}
	}
	return nil
}

// writeItemUndefinedLength writes one sequence item framed with undefined
// length, terminated by an Item Delimitation Item.
func (w *ElementWriter) writeItemUndefinedLength(item value.Item) error {
	if err := w.writeItemHeader(tag.ItemTag, 0xFFFFFFFF); err != nil {
		return err
	}
	for _, ie := range item {
		elem, err := element.NewElement(ie.Tag, ie.VR, ie.Value)
		if err != nil {
			return fmt.Errorf("failed to reconstruct item element %s: %w", ie.Tag, err)
		}
		if err := w.WriteElement(elem); err != nil {
			return fmt.Errorf("failed to write item element %s: %w", ie.Tag, err)
		}
	}
	return w.writeItemHeader(tag.ItemDelimitationItemTag, 0)
}

// serializeItem pre-serializes one sequence item's elements to a scratch
// buffer so its byte length can be computed before the enclosing item
// header is written.
func (w *ElementWriter) serializeItem(item value.Item) ([]byte, error) {
	var buf bytes.Buffer
	scratch := &ElementWriter{w: &buf, ts: w.ts, undefinedLengthSequences: w.undefinedLengthSequences}
	for _, ie := range item {
		elem, err := element.NewElement(ie.Tag, ie.VR, ie.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to reconstruct item element %s: %w", ie.Tag, err)
		}
		if err := scratch.WriteElement(elem); err != nil {
			return nil, fmt.Errorf("failed to write item element %s: %w", ie.Tag, err)
		}
	}
	return buf.Bytes(), nil
}

// writeEncapsulatedFragments writes an encapsulated, fragmented binary
// element (compressed pixel data): undefined length, one Item per fragment
// (the first being the Basic Offset Table, possibly empty), terminated by a
// Sequence Delimitation Item.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
func (w *ElementWriter) writeEncapsulatedFragments(t tag.Tag, v vr.VR, bv *value.BinariesValue) error {
	if err := w.writeTag(t); err != nil {
		return err
	}
	if err := w.writeVRAndLength(v, 0xFFFFFFFF); err != nil {
		return err
	}
	for _, frag := range bv.Fragments() {
		data := frag.Bytes()
		if err := w.writeItemHeader(tag.ItemTag, uint32(len(data))); err != nil {
			return err
		}
		if len(data) > 0 {
			if _, err := w.w.Write(data); err != nil {
				return fmt.Errorf("failed to write fragment data: %w", err)
			}
		}
	}
	return w.writeItemHeader(tag.SequenceDelimitationItemTag, 0)
}
