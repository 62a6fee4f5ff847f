package dicom

import (
	"encoding/binary"

	"github.com/codeninja55/go-radx/dicom/uid"
)

// transferSyntaxProps holds the wire-encoding properties a Transfer Syntax
// contributes to the codec, per spec.md C2: explicit-VR, byte order,
// whether pixel data is encapsulated (fragmented, compressed), and whether
// the dataset is deflated.
type transferSyntaxProps struct {
	explicitVR   bool
	bigEndian    bool
	encapsulated bool
	deflated     bool
}

// knownTransferSyntaxes lists the wire-encoding properties for the transfer
// syntaxes whose framing differs from the common case. Every other UID
// registered in dicom/uid as a Transfer Syntax (the compressed families:
// JPEG, JPEG 2000, JPEG-LS, RLE, MPEG, HEVC, JPIP, ...) is Explicit VR
// Little Endian with encapsulated pixel data, since that is universally how
// DICOM frames compressed payloads; only the "native" syntaxes below need
// an explicit entry.
var knownTransferSyntaxes = map[string]transferSyntaxProps{
	uid.ImplicitVRLittleEndian.String(): {explicitVR: false, bigEndian: false, encapsulated: false},
	uid.ExplicitVRLittleEndian.String(): {explicitVR: true, bigEndian: false, encapsulated: false},
	uid.ExplicitVRBigEndian.String():    {explicitVR: true, bigEndian: true, encapsulated: false},
	uid.DeflatedExplicitVRLittleEndian.String(): {
		explicitVR: true, bigEndian: false, encapsulated: false, deflated: true,
	},
	uid.EncapsulatedUncompressedExplicitVRLittleEndian.String(): {
		explicitVR: true, bigEndian: false, encapsulated: true,
	},
}

// GetTransferSyntax resolves a Transfer Syntax UID to its wire-encoding
// properties. Returns ok=false if uidStr does not name a known transfer
// syntax (the C2 "Unknown" sentinel).
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#chapter_10
func GetTransferSyntax(uidStr string) (*TransferSyntax, bool) {
	if props, ok := knownTransferSyntaxes[uidStr]; ok {
		return buildTransferSyntax(uidStr, props), true
	}

	if uid.IsTransferSyntax(uidStr) {
		// Every other registered transfer syntax UID is a compressed family
		// (JPEG, JPEG 2000, JPEG-LS, RLE, MPEG, HEVC, JPIP, ...): Explicit
		// VR Little Endian with encapsulated, fragmented pixel data.
		return buildTransferSyntax(uidStr, transferSyntaxProps{explicitVR: true, encapsulated: true}), true
	}

	return nil, false
}

func buildTransferSyntax(uidStr string, props transferSyntaxProps) *TransferSyntax {
	order := binary.ByteOrder(binary.LittleEndian)
	if props.bigEndian {
		order = binary.BigEndian
	}
	return &TransferSyntax{
		UID:        uidStr,
		ExplicitVR: props.explicitVR,
		ByteOrder:  order,
		Compressed: props.encapsulated,
		Deflated:   props.deflated,
	}
}

// TransferSyntax describes the encoding of a DICOM dataset: byte order,
// explicit/implicit VR and whether pixel data is encapsulated.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#chapter_10
type TransferSyntax struct {
	UID        string           // Transfer Syntax UID
	ExplicitVR bool             // true = Explicit VR, false = Implicit VR
	ByteOrder  binary.ByteOrder // Little or Big Endian
	Compressed bool             // true if pixel data is encapsulated/compressed
	Deflated   bool             // true for deflated transfer syntax
}
