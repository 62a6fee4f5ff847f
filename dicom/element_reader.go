// Package dicom provides DICOM file parsing and manipulation.
package dicom

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/codeninja55/go-radx/dicom/buffer"
	"github.com/codeninja55/go-radx/dicom/element"
	"github.com/codeninja55/go-radx/dicom/tag"
	"github.com/codeninja55/go-radx/dicom/value"
	"github.com/codeninja55/go-radx/dicom/vr"
	"github.com/sirupsen/logrus"
)

// ElementReader reads individual DICOM data elements from a binary stream.
//
// It handles both Explicit VR and Implicit VR encoding based on the Transfer Syntax,
// and recursively decodes Sequence of Items (SQ) and encapsulated pixel data
// fragments rather than skipping over them.
//
// Element structure varies by VR:
//   - Explicit VR (most VRs): Tag(4) + VR(2) + Length(2) + Value(n)
//   - Explicit VR (OB/OW/SQ/etc): Tag(4) + VR(2) + Reserved(2) + Length(4) + Value(n)
//   - Implicit VR: Tag(4) + Length(4) + Value(n), VR looked up in dictionary
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
type ElementReader struct {
	reader *Reader
	ts     *TransferSyntax
	// context is the dataset currently being assembled at the top level, if
	// any. It lets readVRImplicit resolve tags whose VR depends on a sibling
	// element already decoded (e.g. Pixel Data is OW only when BitsAllocated
	// is greater than 8). Nested sequence items are decoded by this same
	// reader, so inside an item the top-level dataset is still the context;
	// elements decoded into the item itself are not consulted.
	context *DataSet
}

// NewElementReader creates a new element reader with the specified reader and transfer syntax.
func NewElementReader(reader *Reader, ts *TransferSyntax) *ElementReader {
	return &ElementReader{reader: reader, ts: ts}
}

// SetContext attaches the in-progress top-level dataset used to resolve
// context-sensitive implicit VRs.
func (p *ElementReader) SetContext(ds *DataSet) {
	p.context = ds
}

// ReadElement reads the next data element from the stream.
//
// Returns an error if the element cannot be parsed or if the stream ends unexpectedly.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1
func (p *ElementReader) ReadElement() (*element.Element, error) {
	t, err := p.readTag()
	if err != nil {
		return nil, fmt.Errorf("failed to read tag: %w", err)
	}

	v, length, err := p.readVRAndLength(t)
	if err != nil {
		return nil, err
	}

	val, err := p.readValue(t, v, length)
	if err != nil {
		return nil, fmt.Errorf("failed to read value for tag %s: %w", t, err)
	}

	elem, err := element.NewElement(t, v, val)
	if err != nil {
		return nil, fmt.Errorf("failed to create element for tag %s: %w", t, err)
	}

	return elem, nil
}

// readVRAndLength reads the VR (explicit or looked up) and the value length
// that follows a tag, honoring the transfer syntax's encoding rules.
func (p *ElementReader) readVRAndLength(t tag.Tag) (vr.VR, uint32, error) {
	if p.ts.ExplicitVR {
		v, err := p.readVRExplicit()
		if err != nil {
			return 0, 0, fmt.Errorf("failed to read VR for tag %s: %w", t, err)
		}
		length, err := p.readLength(v)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to read length for tag %s: %w", t, err)
		}
		return v, length, nil
	}

	v, err := p.readVRImplicit(t)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to look up VR for tag %s: %w", t, err)
	}
	length, err := p.reader.ReadUint32()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read length for tag %s: %w", t, err)
	}
	return v, length, nil
}

// PeekTag reads the next tag without advancing the cursor, rewinding to the
// position it was called from before returning. Used to implement halt
// predicates that must leave the stream positioned immediately before a
// tag rather than past its fully-decoded element.
func (p *ElementReader) PeekTag() (tag.Tag, error) {
	mark := p.reader.Mark()
	t, err := p.readTag()
	if rerr := p.reader.Reset(mark); rerr != nil {
		return tag.Tag{}, rerr
	}
	return t, err
}

// readTag reads a DICOM tag (group and element).
func (p *ElementReader) readTag() (tag.Tag, error) {
	group, err := p.reader.ReadUint16()
	if err != nil {
		return tag.Tag{}, fmt.Errorf("failed to read tag group: %w", err)
	}
	elem, err := p.reader.ReadUint16()
	if err != nil {
		return tag.Tag{}, fmt.Errorf("failed to read tag element: %w", err)
	}
	return tag.New(group, elem), nil
}

// readVRExplicit reads a 2-byte VR in Explicit VR encoding.
func (p *ElementReader) readVRExplicit() (vr.VR, error) {
	vrStr, err := p.reader.ReadString(2)
	if err != nil {
		return 0, fmt.Errorf("failed to read VR: %w", err)
	}
	v, err := vr.Parse(vrStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVR, vrStr)
	}
	return v, nil
}

// readVRImplicit looks up the VR for a tag from the DICOM data dictionary.
// This is used for Implicit VR transfer syntaxes where VR is not encoded in the file.
//
// For tags with multiple possible VRs (e.g., Pixel Data is "OB or OW"), the
// ambiguity is resolved against BitsAllocated in the in-progress dataset
// when one is attached via SetContext; otherwise the dictionary's first
// listed VR is used as the default.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
func (p *ElementReader) readVRImplicit(t tag.Tag) (vr.VR, error) {
	info, err := tag.Find(t)
	if err != nil {
		logrus.Warnf("dicom: tag %s not found in dictionary, defaulting to UN", t)
		return vr.Unknown, nil
	}
	if len(info.VRs) == 0 {
		logrus.Warnf("dicom: tag %s has no known VR, defaulting to UN", t)
		return vr.Unknown, nil
	}
	if len(info.VRs) == 1 {
		return info.VRs[0], nil
	}
	return p.resolveAmbiguousVR(t, info), nil
}

// resolveAmbiguousVR picks among a tag's multiple candidate VRs (the
// "OB or OW" style dictionary entries) using sibling elements already
// decoded into the in-progress dataset. Pixel Data (7FE0,0010) is the
// practically important case: it is OW when BitsAllocated is greater than
// 8, OB otherwise. When no disambiguating context is available, the dictionary's
// first-listed VR is used.
func (p *ElementReader) resolveAmbiguousVR(t tag.Tag, info tag.Info) vr.VR {
	if p.context != nil && t.Group == 0x7FE0 && t.Element == 0x0010 {
		if bitsElem, err := p.context.GetByKeyword("BitsAllocated"); err == nil {
			if iv, ok := bitsElem.Value().(*value.IntValue); ok {
				bits := iv.Ints()
				if len(bits) > 0 && bits[0] > 8 {
					return vr.OtherWord
				}
				return vr.OtherByte
			}
		}
	}
	return info.VRs[0]
}

// readLength reads the value length field.
//
// Length encoding depends on VR:
//   - Most VRs: 2-byte uint16
//   - OB, OD, OF, OL, OV, OW, SQ, UC, UN, UR, UT: 2-byte reserved (0x0000) + 4-byte uint32
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
func (p *ElementReader) readLength(v vr.VR) (uint32, error) {
	if v.UsesExplicitLength32() {
		if _, err := p.reader.ReadUint16(); err != nil {
			return 0, fmt.Errorf("failed to read reserved field: %w", err)
		}
		length, err := p.reader.ReadUint32()
		if err != nil {
			return 0, fmt.Errorf("failed to read 32-bit length: %w", err)
		}
		return length, nil
	}

	length16, err := p.reader.ReadUint16()
	if err != nil {
		return 0, fmt.Errorf("failed to read 16-bit length: %w", err)
	}
	return uint32(length16), nil
}

// readValue reads and parses the value field based on VR type.
func (p *ElementReader) readValue(t tag.Tag, v vr.VR, length uint32) (value.Value, error) {
	if length == 0 {
		return p.createEmptyValue(v)
	}

	if length == 0xFFFFFFFF {
		if v == vr.SequenceOfItems {
			return p.readUndefinedLengthSequence(t)
		}
		if isEncapsulatedPixelDataTag(t, v) {
			return p.readEncapsulatedFragments(v)
		}
		return nil, fmt.Errorf("%w: undefined length for non-sequence VR %s", ErrUndefinedLength, v.String())
	}

	switch {
	case v == vr.SequenceOfItems:
		return p.readDefinedLengthSequence(length)
	case v == vr.IntegerString:
		return p.readNumericStringValue(t, v, length)
	case v == vr.DecimalString:
		return p.readNumericStringValue(t, v, length)
	case v.IsStringType():
		return p.readStringValue(v, length)
	case v == vr.FloatingPointSingle || v == vr.FloatingPointDouble:
		return p.readFloatValue(v, length)
	case v.IsNumericType():
		return p.readIntValue(v, length)
	case v.IsBinaryType():
		return p.readBytesValue(v, length)
	default:
		return p.readBytesValue(vr.Unknown, length)
	}
}

// isEncapsulatedPixelDataTag reports whether t/v names an encapsulated
// pixel-data-family element: Pixel Data (7FE0,0010), Float Pixel Data
// (7FE0,0008), or Double Float Pixel Data (7FE0,0009).
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
func isEncapsulatedPixelDataTag(t tag.Tag, v vr.VR) bool {
	if t.Group != 0x7FE0 {
		return false
	}
	switch t.Element {
	case 0x0008, 0x0009, 0x0010:
		return v.IsBinaryType()
	default:
		return false
	}
}

// createEmptyValue creates an empty value for the given VR.
func (p *ElementReader) createEmptyValue(v vr.VR) (value.Value, error) {
	switch {
	case v == vr.SequenceOfItems:
		return value.NewDataSetsValue(nil), nil
	case v == vr.IntegerString:
		return value.NewIntValue(v, []int64{})
	case v == vr.DecimalString:
		return value.NewFloatValue(v, []float64{})
	case v.IsStringType():
		return value.NewStringValue(v, []string{})
	case v.IsNumericType():
		return value.NewIntValue(v, []int64{})
	case v == vr.FloatingPointSingle || v == vr.FloatingPointDouble:
		return value.NewFloatValue(v, []float64{})
	case v.IsBinaryType():
		return value.NewBytesValue(v, []byte{})
	default:
		return value.NewBytesValue(vr.Unknown, []byte{})
	}
}

// readStringValue reads a string-based VR value.
//
// DICOM strings may contain multiple values separated by backslash (\),
// except LT/ST/UT whose content is always a single unsplit block of text.
// String values are space-padded for even length and may have trailing nulls for UI.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
func (p *ElementReader) readStringValue(v vr.VR, length uint32) (*value.StringValue, error) {
	data, err := p.reader.ReadBytes(int(length))
	if err != nil {
		return nil, fmt.Errorf("failed to read string data: %w", err)
	}

	str := stripPadding(string(data))
	values := value.SplitComponents(v, str)

	val, err := value.NewStringValue(v, values)
	if err != nil {
		return nil, fmt.Errorf("failed to create string value: %w", err)
	}
	return val, nil
}

// readNumericStringValue reads an IS or DS element: textual on the wire,
// but numeric categories in this codec's value model (see dicom/value).
// A component that fails to parse as a number is a hard decode error.
func (p *ElementReader) readNumericStringValue(t tag.Tag, v vr.VR, length uint32) (value.Value, error) {
	data, err := p.reader.ReadBytes(int(length))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s data: %w", v, err)
	}
	str := stripPadding(string(data))
	components := value.SplitComponents(v, str)

	if v == vr.IntegerString {
		ints, err := value.ParseIntegerStrings(components)
		if err != nil {
			return nil, &MalformedNumericString{Tag: t, VR: v, Value: str}
		}
		return value.NewIntValue(v, ints)
	}

	floats, err := value.ParseDecimalStrings(components)
	if err != nil {
		return nil, &MalformedNumericString{Tag: t, VR: v, Value: str}
	}
	return value.NewFloatValue(v, floats)
}

func stripPadding(s string) string {
	return stripRight(s, "\x00 ")
}

func stripRight(s, cutset string) string {
	end := len(s)
	for end > 0 {
		c := s[end-1]
		found := false
		for i := 0; i < len(cutset); i++ {
			if cutset[i] == c {
				found = true
				break
			}
		}
		if !found {
			break
		}
		end--
	}
	return s[:end]
}

// readIntValue reads an integer VR value.
//
// Handles: SS (int16), US (uint16), SL (int32), UL (uint32), SV (int64), UV (uint64), AT (tag)
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
func (p *ElementReader) readIntValue(v vr.VR, length uint32) (*value.IntValue, error) {
	var values []int64

	var bytesPerValue int
	switch v {
	case vr.SignedShort, vr.UnsignedShort:
		bytesPerValue = 2
	case vr.SignedLong, vr.UnsignedLong, vr.AttributeTag:
		bytesPerValue = 4
	case vr.SignedVeryLong, vr.UnsignedVeryLong:
		bytesPerValue = 8
	default:
		return nil, fmt.Errorf("unsupported integer VR: %s", v.String())
	}

	numValues := int(length) / bytesPerValue
	if int(length)%bytesPerValue != 0 {
		return nil, fmt.Errorf("invalid length %d for VR %s (not multiple of %d)", length, v.String(), bytesPerValue)
	}

	for i := 0; i < numValues; i++ {
		var val int64
		switch v {
		case vr.SignedShort:
			u16, err := p.reader.ReadUint16()
			if err != nil {
				return nil, err
			}
			val = int64(int16(u16))
		case vr.UnsignedShort:
			u16, err := p.reader.ReadUint16()
			if err != nil {
				return nil, err
			}
			val = int64(u16)
		case vr.SignedLong:
			u32, err := p.reader.ReadUint32()
			if err != nil {
				return nil, err
			}
			val = int64(int32(u32))
		case vr.UnsignedLong:
			u32, err := p.reader.ReadUint32()
			if err != nil {
				return nil, err
			}
			val = int64(u32)
		case vr.AttributeTag:
			u32, err := p.reader.ReadUint32()
			if err != nil {
				return nil, err
			}
			val = int64(u32)
		case vr.SignedVeryLong, vr.UnsignedVeryLong:
			data, err := p.reader.ReadBytes(8)
			if err != nil {
				return nil, err
			}
			val = int64(p.ts.ByteOrder.Uint64(data))
		}
		values = append(values, val)
	}

	intVal, err := value.NewIntValue(v, values)
	if err != nil {
		return nil, fmt.Errorf("failed to create int value: %w", err)
	}
	return intVal, nil
}

// readFloatValue reads a floating-point VR value.
//
// Handles: FL (float32), FD (float64)
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
func (p *ElementReader) readFloatValue(v vr.VR, length uint32) (*value.FloatValue, error) {
	var values []float64

	var bytesPerValue int
	switch v {
	case vr.FloatingPointSingle:
		bytesPerValue = 4
	case vr.FloatingPointDouble:
		bytesPerValue = 8
	default:
		return nil, fmt.Errorf("unsupported float VR: %s", v.String())
	}

	numValues := int(length) / bytesPerValue
	if int(length)%bytesPerValue != 0 {
		return nil, fmt.Errorf("invalid length %d for VR %s (not multiple of %d)", length, v.String(), bytesPerValue)
	}

	for i := 0; i < numValues; i++ {
		if v == vr.FloatingPointSingle {
			data, err := p.reader.ReadBytes(4)
			if err != nil {
				return nil, err
			}
			bits := p.ts.ByteOrder.Uint32(data)
			values = append(values, float64(math.Float32frombits(bits)))
		} else {
			data, err := p.reader.ReadBytes(8)
			if err != nil {
				return nil, err
			}
			bits := p.ts.ByteOrder.Uint64(data)
			values = append(values, math.Float64frombits(bits))
		}
	}

	floatVal, err := value.NewFloatValue(v, values)
	if err != nil {
		return nil, fmt.Errorf("failed to create float value: %w", err)
	}
	return floatVal, nil
}

// readBytesValue reads a non-fragmented binary VR value.
//
// Handles: OB, OD, OF, OL, OV, OW, UN
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
func (p *ElementReader) readBytesValue(v vr.VR, length uint32) (*value.BytesValue, error) {
	data, err := p.reader.ReadBytes(int(length))
	if err != nil {
		return nil, fmt.Errorf("failed to read binary data: %w", err)
	}
	bytesVal, err := value.NewBytesValue(v, data)
	if err != nil {
		return nil, fmt.Errorf("failed to create bytes value: %w", err)
	}
	return bytesVal, nil
}

// readDefinedLengthSequence reads a Sequence of Items (SQ) whose overall
// length is known, parsing exactly length bytes' worth of items.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
func (p *ElementReader) readDefinedLengthSequence(length uint32) (value.Value, error) {
	var items []value.Item
	remaining := int(length)

	for remaining > 0 {
		itemTag, itemLength, consumed, err := p.readItemHeader()
		if err != nil {
			return nil, fmt.Errorf("failed to read item header in defined-length sequence: %w", err)
		}
		remaining -= consumed
		if itemTag != tag.ItemTag {
			return nil, &UnexpectedTag{Expected: []tag.Tag{tag.ItemTag}, Observed: itemTag, Position: p.reader.Position()}
		}

		item, itemConsumed, err := p.readItemBody(itemLength)
		if err != nil {
			return nil, fmt.Errorf("failed to read item body: %w", err)
		}
		remaining -= itemConsumed
		items = append(items, item)
	}

	return value.NewDataSetsValue(items), nil
}

// readUndefinedLengthSequence reads a Sequence of Items terminated by a
// Sequence Delimitation Item (FFFE,E0DD).
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
func (p *ElementReader) readUndefinedLengthSequence(sequenceTag tag.Tag) (value.Value, error) {
	var items []value.Item

	for {
		itemTag, itemLength, _, err := p.readItemHeader()
		if err != nil {
			return nil, fmt.Errorf("unexpected EOF while reading sequence %s: %w", sequenceTag, err)
		}

		if itemTag == tag.SequenceDelimitationItemTag {
			return value.NewDataSetsValue(items), nil
		}
		if itemTag != tag.ItemTag {
			return nil, &UnexpectedTag{
				Expected: []tag.Tag{tag.ItemTag, tag.SequenceDelimitationItemTag},
				Observed: itemTag,
				Position: p.reader.Position(),
			}
		}

		item, _, err := p.readItemBody(itemLength)
		if err != nil {
			return nil, fmt.Errorf("failed to read item body: %w", err)
		}
		items = append(items, item)
	}
}

// readItemHeader reads a 4-byte tag and 4-byte length, used for Item,
// Item Delimitation Item and Sequence Delimitation Item headers, all of
// which are encoded without a VR regardless of transfer syntax. It returns
// the number of bytes consumed (always 8) alongside the tag and length.
func (p *ElementReader) readItemHeader() (tag.Tag, uint32, int, error) {
	t, err := p.readTag()
	if err != nil {
		return tag.Tag{}, 0, 0, err
	}
	length, err := p.reader.ReadUint32()
	if err != nil {
		return tag.Tag{}, 0, 0, err
	}
	return t, length, 8, nil
}

// readItemBody reads the elements nested inside one sequence item, given
// the item's length (which may be 0xFFFFFFFF for an undefined-length item
// terminated by an Item Delimitation Item). It returns the item's decoded
// elements and the number of bytes consumed from the stream (for an
// undefined-length item, everything through its Item Delimitation Item).
func (p *ElementReader) readItemBody(itemLength uint32) (value.Item, int, error) {
	if itemLength == 0xFFFFFFFF {
		start := p.reader.Position()
		item, err := p.readItemUntilDelimitation()
		return item, int(p.reader.Position() - start), err
	}
	return p.readItemOfLength(itemLength)
}

// readItemOfLength reads exactly itemLength bytes' worth of elements nested
// inside a defined-length sequence item.
func (p *ElementReader) readItemOfLength(itemLength uint32) (value.Item, int, error) {
	var item value.Item
	remaining := int(itemLength)

	for remaining > 0 {
		before := p.reader.Position()
		t, v, length, err := p.readElementHeader()
		if err != nil {
			return nil, 0, err
		}
		headerBytes := int(p.reader.Position() - before)

		val, valueBytes, err := p.readItemElementValue(t, v, length)
		if err != nil {
			return nil, 0, err
		}
		item = append(item, value.ItemElement{Tag: t, VR: v, Value: val})
		remaining -= headerBytes + valueBytes
	}

	return item, int(itemLength), nil
}

// readItemUntilDelimitation reads elements nested inside an undefined-length
// sequence item until an Item Delimitation Item (FFFE,E00D) is encountered.
func (p *ElementReader) readItemUntilDelimitation() (value.Item, error) {
	var item value.Item

	for {
		t, v, length, err := p.peekElementHeaderOrDelimiter()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		if t == tag.ItemDelimitationItemTag {
			return item, nil
		}

		val, _, err := p.readItemElementValue(t, v, length)
		if err != nil {
			return nil, err
		}
		item = append(item, value.ItemElement{Tag: t, VR: v, Value: val})
	}
}

// peekElementHeaderOrDelimiter reads a tag and, if it is the Item
// Delimitation Item, its trailing 4-byte zero length and returns early;
// otherwise it reads the element's VR and length exactly like
// readElementHeader.
func (p *ElementReader) peekElementHeaderOrDelimiter() (tag.Tag, vr.VR, uint32, error) {
	t, err := p.readTag()
	if err != nil {
		return tag.Tag{}, 0, 0, err
	}
	if t == tag.ItemDelimitationItemTag {
		if _, err := p.reader.ReadUint32(); err != nil {
			return tag.Tag{}, 0, 0, err
		}
		return t, 0, 0, nil
	}
	v, length, err := p.readVRAndLength(t)
	return t, v, length, err
}

// readElementHeader reads a tag followed by its VR and length, honoring the
// transfer syntax's VR encoding rules.
func (p *ElementReader) readElementHeader() (tag.Tag, vr.VR, uint32, error) {
	t, err := p.readTag()
	if err != nil {
		return tag.Tag{}, 0, 0, err
	}
	v, length, err := p.readVRAndLength(t)
	return t, v, length, err
}

// readItemElementValue reads one element's value given its already-decoded
// tag, VR and length, recursing for nested sequences. It returns the
// decoded value and the number of bytes consumed by the value itself
// (excluding the tag/VR/length header), needed to track a defined-length
// item's remaining budget.
func (p *ElementReader) readItemElementValue(t tag.Tag, v vr.VR, length uint32) (value.Value, int, error) {
	if length == 0xFFFFFFFF {
		if v == vr.SequenceOfItems {
			start := p.reader.Position()
			val, err := p.readUndefinedLengthSequence(t)
			return val, int(p.reader.Position() - start), err
		}
		return nil, 0, fmt.Errorf("%w: undefined length for non-sequence VR %s in item", ErrUndefinedLength, v.String())
	}
	val, err := p.readValue(t, v, length)
	return val, int(length), err
}

// readEncapsulatedFragments reads encapsulated, fragmented binary data with
// undefined length, used for compressed transfer syntaxes (JPEG, JPEG 2000,
// RLE, etc.). The first fragment is the Basic Offset Table, which may be
// empty; subsequent fragments carry compressed frame data, terminated by a
// Sequence Delimitation Item (FFFE,E0DD).
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
func (p *ElementReader) readEncapsulatedFragments(pixelVR vr.VR) (value.Value, error) {
	var fragments []buffer.View

	for {
		t, length, _, err := p.readItemHeader()
		if err != nil {
			return nil, fmt.Errorf("unexpected EOF while reading encapsulated fragments: %w", err)
		}

		if t == tag.SequenceDelimitationItemTag {
			return value.NewBinariesValue(pixelVR, fragments)
		}
		if t != tag.ItemTag {
			return nil, &UnexpectedTag{
				Expected: []tag.Tag{tag.ItemTag, tag.SequenceDelimitationItemTag},
				Observed: t,
				Position: p.reader.Position(),
			}
		}

		fragment, err := p.reader.ReadView(int(length))
		if err != nil {
			return nil, fmt.Errorf("failed to read fragment data (%d bytes): %w", length, err)
		}
		fragments = append(fragments, fragment)
	}
}
