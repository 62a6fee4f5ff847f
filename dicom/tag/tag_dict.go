package tag

import "github.com/codeninja55/go-radx/dicom/vr"

// TagDict is the standard DICOM data dictionary: tag -> {VR candidates,
// name, keyword, VM, retired}. The full PS3.6 dictionary has well over 5000
// entries; this is a representative subset covering every tag exercised by
// this module's codec, DIMSE and association components (patient/study/
// series/instance identifiers, pixel data description, file meta
// information, and the DIMSE command-group elements). It stands in for the
// externally-supplied full dictionary that spec.md names as an assumed
// collaborator table.
var TagDict = map[Tag]Info{
	// File meta information (group 0002), always Explicit VR Little Endian.
	New(0x0002, 0x0000): {Tag: New(0x0002, 0x0000), VRs: []vr.VR{vr.UnsignedLong}, Name: "File Meta Information Group Length", Keyword: "FileMetaInformationGroupLength", VM: "1"},
	New(0x0002, 0x0001): {Tag: New(0x0002, 0x0001), VRs: []vr.VR{vr.OtherByte}, Name: "File Meta Information Version", Keyword: "FileMetaInformationVersion", VM: "1"},
	New(0x0002, 0x0002): {Tag: New(0x0002, 0x0002), VRs: []vr.VR{vr.UniqueIdentifier}, Name: "Media Storage SOP Class UID", Keyword: "MediaStorageSOPClassUID", VM: "1"},
	New(0x0002, 0x0003): {Tag: New(0x0002, 0x0003), VRs: []vr.VR{vr.UniqueIdentifier}, Name: "Media Storage SOP Instance UID", Keyword: "MediaStorageSOPInstanceUID", VM: "1"},
	New(0x0002, 0x0010): {Tag: New(0x0002, 0x0010), VRs: []vr.VR{vr.UniqueIdentifier}, Name: "Transfer Syntax UID", Keyword: "TransferSyntaxUID", VM: "1"},
	New(0x0002, 0x0012): {Tag: New(0x0002, 0x0012), VRs: []vr.VR{vr.UniqueIdentifier}, Name: "Implementation Class UID", Keyword: "ImplementationClassUID", VM: "1"},
	New(0x0002, 0x0013): {Tag: New(0x0002, 0x0013), VRs: []vr.VR{vr.ShortString}, Name: "Implementation Version Name", Keyword: "ImplementationVersionName", VM: "1"},

	// DIMSE command-group elements (group 0000), always Implicit VR Little Endian.
	New(0x0000, 0x0002): {Tag: New(0x0000, 0x0002), VRs: []vr.VR{vr.UniqueIdentifier}, Name: "Affected SOP Class UID", Keyword: "AffectedSOPClassUID", VM: "1"},
	New(0x0000, 0x0003): {Tag: New(0x0000, 0x0003), VRs: []vr.VR{vr.UniqueIdentifier}, Name: "Requested SOP Class UID", Keyword: "RequestedSOPClassUID", VM: "1"},
	New(0x0000, 0x0100): {Tag: New(0x0000, 0x0100), VRs: []vr.VR{vr.UnsignedShort}, Name: "Command Field", Keyword: "CommandField", VM: "1"},
	New(0x0000, 0x0110): {Tag: New(0x0000, 0x0110), VRs: []vr.VR{vr.UnsignedShort}, Name: "Message ID", Keyword: "MessageID", VM: "1"},
	New(0x0000, 0x0120): {Tag: New(0x0000, 0x0120), VRs: []vr.VR{vr.UnsignedShort}, Name: "Message ID Being Responded To", Keyword: "MessageIDBeingRespondedTo", VM: "1"},
	New(0x0000, 0x0600): {Tag: New(0x0000, 0x0600), VRs: []vr.VR{vr.ApplicationEntity}, Name: "Move Destination", Keyword: "MoveDestination", VM: "1"},
	New(0x0000, 0x0700): {Tag: New(0x0000, 0x0700), VRs: []vr.VR{vr.UnsignedShort}, Name: "Priority", Keyword: "Priority", VM: "1"},
	New(0x0000, 0x0800): {Tag: New(0x0000, 0x0800), VRs: []vr.VR{vr.UnsignedShort}, Name: "Command Data Set Type", Keyword: "CommandDataSetType", VM: "1"},
	New(0x0000, 0x0900): {Tag: New(0x0000, 0x0900), VRs: []vr.VR{vr.UnsignedShort}, Name: "Status", Keyword: "Status", VM: "1"},
	New(0x0000, 0x0901): {Tag: New(0x0000, 0x0901), VRs: []vr.VR{vr.AttributeTag}, Name: "Offending Element", Keyword: "OffendingElement", VM: "1-n"},
	New(0x0000, 0x0902): {Tag: New(0x0000, 0x0902), VRs: []vr.VR{vr.LongString}, Name: "Error Comment", Keyword: "ErrorComment", VM: "1"},
	New(0x0000, 0x0903): {Tag: New(0x0000, 0x0903), VRs: []vr.VR{vr.UnsignedShort}, Name: "Error ID", Keyword: "ErrorID", VM: "1"},
	New(0x0000, 0x1000): {Tag: New(0x0000, 0x1000), VRs: []vr.VR{vr.UniqueIdentifier}, Name: "Affected SOP Instance UID", Keyword: "AffectedSOPInstanceUID", VM: "1"},
	New(0x0000, 0x1001): {Tag: New(0x0000, 0x1001), VRs: []vr.VR{vr.UniqueIdentifier}, Name: "Requested SOP Instance UID", Keyword: "RequestedSOPInstanceUID", VM: "1"},
	New(0x0000, 0x1002): {Tag: New(0x0000, 0x1002), VRs: []vr.VR{vr.SignedShort}, Name: "Event Type ID", Keyword: "EventTypeID", VM: "1"},
	New(0x0000, 0x1005): {Tag: New(0x0000, 0x1005), VRs: []vr.VR{vr.AttributeTag}, Name: "Attribute Identifier List", Keyword: "AttributeIdentifierList", VM: "1-n"},
	New(0x0000, 0x1008): {Tag: New(0x0000, 0x1008), VRs: []vr.VR{vr.UnsignedShort}, Name: "Action Type ID", Keyword: "ActionTypeID", VM: "1"},
	New(0x0000, 0x1020): {Tag: New(0x0000, 0x1020), VRs: []vr.VR{vr.UnsignedShort}, Name: "Number of Remaining Sub-operations", Keyword: "NumberOfRemainingSuboperations", VM: "1"},
	New(0x0000, 0x1021): {Tag: New(0x0000, 0x1021), VRs: []vr.VR{vr.UnsignedShort}, Name: "Number of Completed Sub-operations", Keyword: "NumberOfCompletedSuboperations", VM: "1"},
	New(0x0000, 0x1022): {Tag: New(0x0000, 0x1022), VRs: []vr.VR{vr.UnsignedShort}, Name: "Number of Failed Sub-operations", Keyword: "NumberOfFailedSuboperations", VM: "1"},
	New(0x0000, 0x1023): {Tag: New(0x0000, 0x1023), VRs: []vr.VR{vr.UnsignedShort}, Name: "Number of Warning Sub-operations", Keyword: "NumberOfWarningSuboperations", VM: "1"},
	New(0x0000, 0x1030): {Tag: New(0x0000, 0x1030), VRs: []vr.VR{vr.ApplicationEntity}, Name: "Move Originator Application Entity Title", Keyword: "MoveOriginatorApplicationEntityTitle", VM: "1"},
	New(0x0000, 0x1031): {Tag: New(0x0000, 0x1031), VRs: []vr.VR{vr.UnsignedShort}, Name: "Move Originator Message ID", Keyword: "MoveOriginatorMessageID", VM: "1"},

	// Patient / study / series / instance identification.
	New(0x0008, 0x0005): {Tag: New(0x0008, 0x0005), VRs: []vr.VR{vr.CodeString}, Name: "Specific Character Set", Keyword: "SpecificCharacterSet", VM: "1-n"},
	New(0x0008, 0x0016): {Tag: New(0x0008, 0x0016), VRs: []vr.VR{vr.UniqueIdentifier}, Name: "SOP Class UID", Keyword: "SOPClassUID", VM: "1"},
	New(0x0008, 0x0018): {Tag: New(0x0008, 0x0018), VRs: []vr.VR{vr.UniqueIdentifier}, Name: "SOP Instance UID", Keyword: "SOPInstanceUID", VM: "1"},
	New(0x0008, 0x0020): {Tag: New(0x0008, 0x0020), VRs: []vr.VR{vr.Date}, Name: "Study Date", Keyword: "StudyDate", VM: "1"},
	New(0x0008, 0x0030): {Tag: New(0x0008, 0x0030), VRs: []vr.VR{vr.Time}, Name: "Study Time", Keyword: "StudyTime", VM: "1"},
	New(0x0008, 0x0050): {Tag: New(0x0008, 0x0050), VRs: []vr.VR{vr.ShortString}, Name: "Accession Number", Keyword: "AccessionNumber", VM: "1"},
	New(0x0008, 0x0060): {Tag: New(0x0008, 0x0060), VRs: []vr.VR{vr.CodeString}, Name: "Modality", Keyword: "Modality", VM: "1"},
	New(0x0008, 0x0070): {Tag: New(0x0008, 0x0070), VRs: []vr.VR{vr.LongString}, Name: "Manufacturer", Keyword: "Manufacturer", VM: "1"},
	New(0x0008, 0x0080): {Tag: New(0x0008, 0x0080), VRs: []vr.VR{vr.LongString}, Name: "Institution Name", Keyword: "InstitutionName", VM: "1"},
	New(0x0010, 0x0010): {Tag: New(0x0010, 0x0010), VRs: []vr.VR{vr.PersonName}, Name: "Patient's Name", Keyword: "PatientName", VM: "1"},
	New(0x0010, 0x0020): {Tag: New(0x0010, 0x0020), VRs: []vr.VR{vr.LongString}, Name: "Patient ID", Keyword: "PatientID", VM: "1"},
	New(0x0010, 0x0030): {Tag: New(0x0010, 0x0030), VRs: []vr.VR{vr.Date}, Name: "Patient's Birth Date", Keyword: "PatientBirthDate", VM: "1"},
	New(0x0010, 0x0040): {Tag: New(0x0010, 0x0040), VRs: []vr.VR{vr.CodeString}, Name: "Patient's Sex", Keyword: "PatientSex", VM: "1"},
	New(0x0010, 0x1010): {Tag: New(0x0010, 0x1010), VRs: []vr.VR{vr.AgeString}, Name: "Patient's Age", Keyword: "PatientAge", VM: "1"},
	New(0x0020, 0x000D): {Tag: New(0x0020, 0x000D), VRs: []vr.VR{vr.UniqueIdentifier}, Name: "Study Instance UID", Keyword: "StudyInstanceUID", VM: "1"},
	New(0x0020, 0x000E): {Tag: New(0x0020, 0x000E), VRs: []vr.VR{vr.UniqueIdentifier}, Name: "Series Instance UID", Keyword: "SeriesInstanceUID", VM: "1"},
	New(0x0020, 0x0011): {Tag: New(0x0020, 0x0011), VRs: []vr.VR{vr.IntegerString}, Name: "Series Number", Keyword: "SeriesNumber", VM: "1"},
	New(0x0020, 0x0013): {Tag: New(0x0020, 0x0013), VRs: []vr.VR{vr.IntegerString}, Name: "Instance Number", Keyword: "InstanceNumber", VM: "1"},
	New(0x0020, 0x0032): {Tag: New(0x0020, 0x0032), VRs: []vr.VR{vr.DecimalString}, Name: "Image Position (Patient)", Keyword: "ImagePositionPatient", VM: "3"},

	// Pixel data description (group 0028) — used for context-sensitive VR
	// resolution (BitsAllocated disambiguates Pixel Data OB vs OW).
	New(0x0028, 0x0002): {Tag: New(0x0028, 0x0002), VRs: []vr.VR{vr.UnsignedShort}, Name: "Samples per Pixel", Keyword: "SamplesPerPixel", VM: "1"},
	New(0x0028, 0x0010): {Tag: New(0x0028, 0x0010), VRs: []vr.VR{vr.UnsignedShort}, Name: "Rows", Keyword: "Rows", VM: "1"},
	New(0x0028, 0x0011): {Tag: New(0x0028, 0x0011), VRs: []vr.VR{vr.UnsignedShort}, Name: "Columns", Keyword: "Columns", VM: "1"},
	New(0x0028, 0x0030): {Tag: New(0x0028, 0x0030), VRs: []vr.VR{vr.DecimalString}, Name: "Pixel Spacing", Keyword: "PixelSpacing", VM: "2"},
	New(0x0028, 0x0100): {Tag: New(0x0028, 0x0100), VRs: []vr.VR{vr.UnsignedShort}, Name: "Bits Allocated", Keyword: "BitsAllocated", VM: "1"},
	New(0x0028, 0x0101): {Tag: New(0x0028, 0x0101), VRs: []vr.VR{vr.UnsignedShort}, Name: "Bits Stored", Keyword: "BitsStored", VM: "1"},
	New(0x0028, 0x0102): {Tag: New(0x0028, 0x0102), VRs: []vr.VR{vr.UnsignedShort}, Name: "High Bit", Keyword: "HighBit", VM: "1"},
	New(0x0028, 0x0103): {Tag: New(0x0028, 0x0103), VRs: []vr.VR{vr.UnsignedShort}, Name: "Pixel Representation", Keyword: "PixelRepresentation", VM: "1"},
	New(0x0028, 0x1050): {Tag: New(0x0028, 0x1050), VRs: []vr.VR{vr.DecimalString}, Name: "Window Center", Keyword: "WindowCenter", VM: "1-n"},
	New(0x0028, 0x1051): {Tag: New(0x0028, 0x1051), VRs: []vr.VR{vr.DecimalString}, Name: "Window Width", Keyword: "WindowWidth", VM: "1-n"},
	New(0x0028, 0x1052): {Tag: New(0x0028, 0x1052), VRs: []vr.VR{vr.DecimalString}, Name: "Rescale Intercept", Keyword: "RescaleIntercept", VM: "1"},
	New(0x0028, 0x1053): {Tag: New(0x0028, 0x1053), VRs: []vr.VR{vr.DecimalString}, Name: "Rescale Slope", Keyword: "RescaleSlope", VM: "1"},
	New(0x0028, 0x1054): {Tag: New(0x0028, 0x1054), VRs: []vr.VR{vr.LongString}, Name: "Rescale Type", Keyword: "RescaleType", VM: "1"},

	// Pixel Data itself: ambiguous VR (OB for 8-bit / encapsulated, OW for
	// 16-bit native); resolved by findVR via BitsAllocated, see dicom/element_reader.go.
	New(0x7FE0, 0x0010): {Tag: New(0x7FE0, 0x0010), VRs: []vr.VR{vr.OtherWord, vr.OtherByte}, Name: "Pixel Data", Keyword: "PixelData", VM: "1"},

	// Scheduled Procedure Step sequence, used by the undefined-length
	// sequence test scenario in spec.md §8.
	New(0x0040, 0x0009): {Tag: New(0x0040, 0x0009), VRs: []vr.VR{vr.ShortString}, Name: "Scheduled Procedure Step ID", Keyword: "ScheduledProcedureStepID", VM: "1"},
	New(0x0040, 0x0275): {Tag: New(0x0040, 0x0275), VRs: []vr.VR{vr.SequenceOfItems}, Name: "Request Attributes Sequence", Keyword: "RequestAttributesSequence", VM: "1"},

	// Delimiter pseudo-elements (group 0xFFFE) framing sequence/item content.
	// These never carry a VR on the wire (implicit-length encoding always);
	// the VR recorded here is nominal, for callers that want one anyway.
	New(0xFFFE, 0xE000): {Tag: New(0xFFFE, 0xE000), VRs: []vr.VR{vr.Unknown}, Name: "Item", Keyword: "Item", VM: "1"},
	New(0xFFFE, 0xE00D): {Tag: New(0xFFFE, 0xE00D), VRs: []vr.VR{vr.Unknown}, Name: "Item Delimitation Item", Keyword: "ItemDelimitationItem", VM: "1"},
	New(0xFFFE, 0xE0DD): {Tag: New(0xFFFE, 0xE0DD), VRs: []vr.VR{vr.Unknown}, Name: "Sequence Delimitation Item", Keyword: "SequenceDelimitationItem", VM: "1"},
}
