// Package dicom provides DICOM file parsing and manipulation.
package dicom

import (
	"errors"
	"fmt"

	"github.com/codeninja55/go-radx/dicom/tag"
	"github.com/codeninja55/go-radx/dicom/vr"
)

// ErrInvalidPreamble indicates the file doesn't have a valid DICOM preamble.
// A valid DICOM file must have 128 bytes followed by "DICM" (ASCII).
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7.1
var ErrInvalidPreamble = errors.New("invalid DICOM preamble: missing or invalid DICM prefix")

// ErrInvalidVR indicates an invalid or unknown VR was encountered.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
var ErrInvalidVR = errors.New("invalid or unknown VR")

// ErrInvalidTag indicates a malformed tag was encountered.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1
var ErrInvalidTag = errors.New("invalid or malformed tag")

// ErrInvalidTransferSyntax indicates an unsupported or invalid transfer syntax.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#chapter_10
var ErrInvalidTransferSyntax = errors.New("invalid or unsupported transfer syntax")

// ErrMissingTransferSyntax indicates the Transfer Syntax UID was not found in File Meta Information.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7.1
var ErrMissingTransferSyntax = errors.New("missing Transfer Syntax UID in File Meta Information")

// ErrInvalidLength indicates an invalid value length was encountered.
var ErrInvalidLength = errors.New("invalid value length")

// ErrUndefinedLength indicates an undefined length (0xFFFFFFFF) was encountered.
// This is valid for sequences but requires special handling.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
var ErrUndefinedLength = errors.New("undefined length encountered")

// Truncated indicates a read ran out of bytes before the expected length was
// satisfied: a buffer underflow rather than a framing violation.
type Truncated struct {
	Wanted int
	Got    int
}

func (e *Truncated) Error() string {
	return fmt.Sprintf("truncated: wanted %d bytes, got %d", e.Wanted, e.Got)
}

// UnexpectedTag indicates a framing violation: a tag was expected to be one
// of a known set (e.g. Item, Item Delimitation, Sequence Delimitation) but
// something else was observed.
type UnexpectedTag struct {
	Expected []tag.Tag
	Observed tag.Tag
	Position int64
}

func (e *UnexpectedTag) Error() string {
	return fmt.Sprintf("unexpected tag %s at position %d, expected one of %v", e.Observed, e.Position, e.Expected)
}

// MissingRequiredElement indicates a mandatory element was absent, such as
// TransferSyntaxUID missing from File Meta Information.
type MissingRequiredElement struct {
	Tag tag.Tag
}

func (e *MissingRequiredElement) Error() string {
	return fmt.Sprintf("missing required element %s", e.Tag)
}

// TypeMismatch indicates a typed accessor was used against an element whose
// actual VR does not belong to the requested category, e.g. calling an
// integer accessor on a string element.
type TypeMismatch struct {
	Tag              tag.Tag
	RequestedCategory string
	ActualVR         vr.VR
}

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("element %s has VR %s, not requested category %s", e.Tag, e.ActualVR, e.RequestedCategory)
}

// InvalidString indicates a fixed-width string field was set to a value
// outside its allowed length range.
type InvalidString struct {
	Field string
	Value string
	Max   int
}

func (e *InvalidString) Error() string {
	return fmt.Sprintf("field %s value %q exceeds maximum length %d", e.Field, e.Value, e.Max)
}

// UnknownItemType describes an unrecognized PDU sub-item type byte. The PDU
// decoders in dimse/pdu skip unknown sub-items by length and do not return
// it, and no encoder in this module returns it either: the PDU encoders have
// no item-type validation step.
type UnknownItemType struct {
	ItemType byte
}

func (e *UnknownItemType) Error() string {
	return fmt.Sprintf("unknown PDU sub-item type 0x%02X", e.ItemType)
}

// MessageCommandMismatch indicates a DIMSE message's command field value
// does not correspond to any known command set for the operation being
// decoded.
type MessageCommandMismatch struct {
	Expected []uint16
	Observed uint16
}

func (e *MessageCommandMismatch) Error() string {
	return fmt.Sprintf("command field %#04x does not match expected values %v", e.Observed, e.Expected)
}

// MissingPayload indicates a DIMSE message whose command field requires a
// data set payload (e.g. C-STORE-RQ) arrived with none attached.
type MissingPayload struct {
	Command uint16
}

func (e *MissingPayload) Error() string {
	return fmt.Sprintf("command %#04x requires a data set payload but none was provided", e.Command)
}

// UnexpectedPayload indicates a DIMSE message whose command field carries no
// data set (e.g. C-ECHO-RQ) arrived with one attached.
type UnexpectedPayload struct {
	Command uint16
}

func (e *UnexpectedPayload) Error() string {
	return fmt.Sprintf("command %#04x does not carry a data set payload but one was provided", e.Command)
}

// MalformedNumericString indicates an IS or DS element's textual content
// could not be parsed as a number. The codec is strict: this is a hard
// decode error rather than a silent fallback to zero or an empty sequence.
type MalformedNumericString struct {
	Tag   tag.Tag
	VR    vr.VR
	Value string
}

func (e *MalformedNumericString) Error() string {
	return fmt.Sprintf("element %s (%s) has malformed numeric content %q", e.Tag, e.VR, e.Value)
}
