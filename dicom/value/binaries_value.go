package value

import (
	"fmt"

	"github.com/codeninja55/go-radx/dicom/buffer"
	"github.com/codeninja55/go-radx/dicom/vr"
)

// BinariesValue represents encapsulated, fragmented binary data: the
// Pixel Data (7FE0,0010), Float Pixel Data (7FE0,0008) or Double Float
// Pixel Data (7FE0,0009) element of a dataset encoded with a compressed
// transfer syntax, where the single logical value is split across one or
// more Item (FFFE,E000) fragments inside an undefined-length sequence.
//
// This is distinct from BytesValue, which holds one contiguous blob for
// ordinary, non-fragmented binary VR values.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
type BinariesValue struct {
	v         vr.VR
	fragments []buffer.View
}

// isBinariesVR returns true for the binary VRs that may carry encapsulated,
// fragmented pixel data.
func isBinariesVR(v vr.VR) bool {
	switch v {
	case vr.OtherByte, vr.OtherWord, vr.OtherFloat, vr.OtherDouble, vr.OtherVeryLong:
		return true
	default:
		return false
	}
}

// NewBinariesValue creates a BinariesValue from already-decoded fragment
// views. The views must share a common backing buffer.Buffer with the
// dataset they were decoded from; no data is copied.
func NewBinariesValue(v vr.VR, fragments []buffer.View) (*BinariesValue, error) {
	if !isBinariesVR(v) {
		return nil, fmt.Errorf("VR %s cannot carry encapsulated fragments", v.String())
	}
	if fragments == nil {
		fragments = []buffer.View{}
	}
	return &BinariesValue{v: v, fragments: fragments}, nil
}

// VR returns the Value Representation of this fragmented value.
func (b *BinariesValue) VR() vr.VR {
	return b.v
}

// Fragments returns the individual encoded fragments in encoded order.
// The first fragment of Pixel Data is the Basic Offset Table and may be
// empty; callers that need per-frame offsets should inspect it directly
// rather than via this generic accessor.
func (b *BinariesValue) Fragments() []buffer.View {
	return b.fragments
}

// Bytes concatenates all fragments into one contiguous slice. This loses
// the frame boundaries between fragments; callers that care about
// individual frames should use Fragments instead.
func (b *BinariesValue) Bytes() []byte {
	total := 0
	for _, f := range b.fragments {
		total += f.Len()
	}
	out := make([]byte, 0, total)
	for _, f := range b.fragments {
		out = append(out, f.Bytes()...)
	}
	return out
}

// String returns a human-readable summary of the fragment count.
func (b *BinariesValue) String() string {
	return fmt.Sprintf("%s[%d fragment(s)]", b.v.String(), len(b.fragments))
}

// Equals returns true if other is a BinariesValue with the same VR and
// byte-identical fragments in the same order.
func (b *BinariesValue) Equals(other Value) bool {
	o, ok := other.(*BinariesValue)
	if !ok {
		return false
	}
	if b.v != o.v || len(b.fragments) != len(o.fragments) {
		return false
	}
	for i, f := range b.fragments {
		of := o.fragments[i]
		if f.Len() != of.Len() {
			return false
		}
		fb, ofb := f.Bytes(), of.Bytes()
		for j := range fb {
			if fb[j] != ofb[j] {
				return false
			}
		}
	}
	return true
}

var _ Value = (*BinariesValue)(nil)
