package dimse

import (
	"fmt"
	"strings"

	"github.com/codeninja55/go-radx/dicom"
	"github.com/codeninja55/go-radx/dicom/element"
	"github.com/codeninja55/go-radx/dicom/tag"
	"github.com/codeninja55/go-radx/dicom/value"
	"github.com/codeninja55/go-radx/dicom/vr"
)

// DataSetRequirement governs whether a DIMSE message type's payload dataset
// (as opposed to its command set) must be absent, may be present, or must
// be present.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part07.html#sect_9.3
type DataSetRequirement int

const (
	// DataSetForbidden means the message type never carries a payload dataset.
	DataSetForbidden DataSetRequirement = iota
	// DataSetOptional means a payload dataset may or may not be present.
	DataSetOptional
	// DataSetMandatory means the message type always carries a payload dataset.
	DataSetMandatory
)

// Field is a typed lens onto a single command field: a tag within a command
// dataset, whether the field is required to be present, and the encode/decode
// functions bridging a Go type T to the dataset's untyped value.Value. It
// gives the eight concrete DIMSE message types typed Get/Set access to their
// underlying command dataset in place of CommandSet's hand-written, per-field
// accessors.
type Field[T any] struct {
	owner     *dicom.DataSet
	tag       tag.Tag
	mandatory bool
	encode    func(T) (vr.VR, value.Value, error)
	decode    func(value.Value) (T, error)
}

// Mandatory creates a Field whose tag must be present in owner; Get returns
// MissingRequiredElement if it is absent.
func Mandatory[T any](owner *dicom.DataSet, t tag.Tag, encode func(T) (vr.VR, value.Value, error), decode func(value.Value) (T, error)) *Field[T] {
	return &Field[T]{owner: owner, tag: t, mandatory: true, encode: encode, decode: decode}
}

// Optional creates a Field whose tag may be absent from owner; Get returns
// the zero value of T with no error when it is.
func Optional[T any](owner *dicom.DataSet, t tag.Tag, encode func(T) (vr.VR, value.Value, error), decode func(value.Value) (T, error)) *Field[T] {
	return &Field[T]{owner: owner, tag: t, mandatory: false, encode: encode, decode: decode}
}

// Get reads and decodes the field's current value from its owning dataset.
func (f *Field[T]) Get() (T, error) {
	var zero T
	elem, err := f.owner.Get(f.tag)
	if err != nil {
		if f.mandatory {
			return zero, &dicom.MissingRequiredElement{Tag: f.tag}
		}
		return zero, nil
	}
	return f.decode(elem.Value())
}

// Set encodes v and writes it into the field's owning dataset.
func (f *Field[T]) Set(v T) error {
	fieldVR, val, err := f.encode(v)
	if err != nil {
		return fmt.Errorf("encode field %s: %w", f.tag, err)
	}
	elem, err := element.NewElement(f.tag, fieldVR, val)
	if err != nil {
		return fmt.Errorf("build element for field %s: %w", f.tag, err)
	}
	return f.owner.Add(elem)
}

// Uint16Field is a Field specialized to the US-encoded command fields that
// make up the bulk of a DIMSE command set (Command Field, Message ID,
// Priority, Status and the rest).
type Uint16Field = Field[uint16]

// UIDField is a Field specialized to the UI-encoded command fields (SOP
// Class/Instance UIDs).
type UIDField = Field[string]

// MandatoryUint16 binds a mandatory US-encoded field to owner at t.
func MandatoryUint16(owner *dicom.DataSet, t tag.Tag) *Uint16Field {
	return Mandatory(owner, t, encodeUint16, decodeUint16)
}

// OptionalUint16 binds an optional US-encoded field to owner at t.
func OptionalUint16(owner *dicom.DataSet, t tag.Tag) *Uint16Field {
	return Optional(owner, t, encodeUint16, decodeUint16)
}

// MandatoryUID binds a mandatory UI-encoded field to owner at t.
func MandatoryUID(owner *dicom.DataSet, t tag.Tag) *UIDField {
	return Mandatory(owner, t, encodeUID, decodeUID)
}

// OptionalUID binds an optional UI-encoded field to owner at t.
func OptionalUID(owner *dicom.DataSet, t tag.Tag) *UIDField {
	return Optional(owner, t, encodeUID, decodeUID)
}

func encodeUint16(v uint16) (vr.VR, value.Value, error) {
	iv, err := value.NewIntValue(vr.UnsignedShort, []int64{int64(v)})
	return vr.UnsignedShort, iv, err
}

// decodeUint16 accepts both IntValue, the normal decode for a US element
// whose VR is known up front, and BytesValue, which is what command
// datasets parsed via Implicit VR without dictionary context may yield.
func decodeUint16(val value.Value) (uint16, error) {
	switch v := val.(type) {
	case *value.IntValue:
		ints := v.Ints()
		if len(ints) == 0 {
			return 0, nil
		}
		return uint16(ints[0]), nil
	case *value.BytesValue:
		b := v.Bytes()
		if len(b) != 2 {
			return 0, fmt.Errorf("invalid uint16 field length %d", len(b))
		}
		return uint16(b[0]) | uint16(b[1])<<8, nil
	default:
		return 0, fmt.Errorf("unexpected value type %T for uint16 field", val)
	}
}

func encodeUID(v string) (vr.VR, value.Value, error) {
	sv, err := value.NewStringValue(vr.UniqueIdentifier, []string{v})
	return vr.UniqueIdentifier, sv, err
}

func decodeUID(val value.Value) (string, error) {
	switch v := val.(type) {
	case *value.StringValue:
		strs := v.Strings()
		if len(strs) == 0 {
			return "", nil
		}
		return strs[0], nil
	case *value.BytesValue:
		return strings.TrimRight(string(v.Bytes()), "\x00"), nil
	default:
		return val.String(), nil
	}
}
