package dimse

import (
	"fmt"

	"github.com/codeninja55/go-radx/dicom"
	"github.com/codeninja55/go-radx/dicom/tag"
)

// Command field tags, shared by every concrete message type below. Kept
// separate from CommandSet's own literal tags so the two can be cross
// checked against each other, though in practice they name the same
// DICOM Part 7 fields.
var (
	tagCommandField            = tag.New(0x0000, 0x0100)
	tagMessageID               = tag.New(0x0000, 0x0110)
	tagMessageIDRespondedTo    = tag.New(0x0000, 0x0120)
	tagAffectedSOPClassUID     = tag.New(0x0000, 0x0002)
	tagAffectedSOPInstanceUID  = tag.New(0x0000, 0x1000)
	tagRequestedSOPClassUID    = tag.New(0x0000, 0x0003)
	tagRequestedSOPInstanceUID = tag.New(0x0000, 0x1001)
	tagPriority                = tag.New(0x0000, 0x0700)
	tagCommandDataSetType      = tag.New(0x0000, 0x0800)
	tagStatus                  = tag.New(0x0000, 0x0900)
	tagEventTypeID             = tag.New(0x0000, 0x1002)
)

// newCommandDataSet starts a fresh command dataset with the Command Field
// and Command Data Set Type fields every command carries, the latter
// derived from whether this message type's payload requirement allows one.
func newCommandDataSet(commandField uint16, hasPayload bool) *dicom.DataSet {
	ds := dicom.NewDataSet()
	dsType := DataSetNotPresent
	if hasPayload {
		dsType = DataSetPresent
	}
	_ = MandatoryUint16(ds, tagCommandField).Set(commandField)
	_ = MandatoryUint16(ds, tagCommandDataSetType).Set(dsType)
	return ds
}

// validatePayload checks msg's attached dataset against req, raising the
// same MissingPayload/UnexpectedPayload errors a hand-written per-message
// check would.
func validatePayload(msg *Message, req DataSetRequirement) error {
	hasPayload := msg.DataSet != nil
	switch req {
	case DataSetForbidden:
		if hasPayload {
			return &dicom.UnexpectedPayload{Command: msg.CommandSet.CommandField}
		}
	case DataSetMandatory:
		if !hasPayload {
			return &dicom.MissingPayload{Command: msg.CommandSet.CommandField}
		}
	}
	return nil
}

// checkCommandField returns a MessageCommandMismatch if msg's command field
// does not match want.
func checkCommandField(msg *Message, want uint16) error {
	if msg.CommandSet.CommandField != want {
		return &dicom.MessageCommandMismatch{Expected: []uint16{want}, Observed: msg.CommandSet.CommandField}
	}
	return nil
}

// CEchoRQ is a C-ECHO-RQ message: a connectivity verification request that
// never carries a payload dataset.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part07.html#sect_9.1.5
type CEchoRQ struct {
	ds *dicom.DataSet
}

// NewCEchoRQ builds a C-ECHO-RQ with the given message ID and affected SOP
// class (conventionally Verification SOP Class, 1.2.840.10008.1.1).
func NewCEchoRQ(messageID uint16, sopClassUID string) (*CEchoRQ, error) {
	m := &CEchoRQ{ds: newCommandDataSet(CommandCEchoRQ, false)}
	if err := m.MessageID().Set(messageID); err != nil {
		return nil, err
	}
	if err := m.AffectedSOPClassUID().Set(sopClassUID); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *CEchoRQ) MessageID() *Uint16Field { return MandatoryUint16(m.ds, tagMessageID) }
func (m *CEchoRQ) AffectedSOPClassUID() *UIDField {
	return MandatoryUID(m.ds, tagAffectedSOPClassUID)
}

// Requirement reports this message type's payload requirement.
func (m *CEchoRQ) Requirement() DataSetRequirement { return DataSetForbidden }

// ToMessage converts m into a generic Message ready for Encode.
func (m *CEchoRQ) ToMessage(pcID uint8) (*Message, error) {
	cs, err := FromDataSet(m.ds)
	if err != nil {
		return nil, fmt.Errorf("build C-ECHO-RQ command set: %w", err)
	}
	return &Message{CommandSet: cs, PresentationContextID: pcID}, nil
}

// CEchoRQFromMessage converts a generic, already-decoded Message into a
// CEchoRQ, validating its command field and the absence of a payload.
func CEchoRQFromMessage(msg *Message) (*CEchoRQ, error) {
	if err := checkCommandField(msg, CommandCEchoRQ); err != nil {
		return nil, err
	}
	if err := validatePayload(msg, DataSetForbidden); err != nil {
		return nil, err
	}
	ds, err := msg.CommandSet.ToDataSet()
	if err != nil {
		return nil, fmt.Errorf("rebuild C-ECHO-RQ command dataset: %w", err)
	}
	return &CEchoRQ{ds: ds}, nil
}

// CEchoRSP is a C-ECHO-RSP message, the reply to a C-ECHO-RQ. It never
// carries a payload dataset.
type CEchoRSP struct {
	ds *dicom.DataSet
}

// NewCEchoRSP builds a C-ECHO-RSP for the request it answers.
func NewCEchoRSP(messageIDRespondedTo uint16, sopClassUID string, status uint16) (*CEchoRSP, error) {
	m := &CEchoRSP{ds: newCommandDataSet(CommandCEchoRSP, false)}
	if err := m.MessageIDBeingRespondedTo().Set(messageIDRespondedTo); err != nil {
		return nil, err
	}
	if err := m.AffectedSOPClassUID().Set(sopClassUID); err != nil {
		return nil, err
	}
	if err := m.Status().Set(status); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *CEchoRSP) MessageIDBeingRespondedTo() *Uint16Field {
	return MandatoryUint16(m.ds, tagMessageIDRespondedTo)
}
func (m *CEchoRSP) AffectedSOPClassUID() *UIDField {
	return MandatoryUID(m.ds, tagAffectedSOPClassUID)
}
func (m *CEchoRSP) Status() *Uint16Field { return MandatoryUint16(m.ds, tagStatus) }

func (m *CEchoRSP) Requirement() DataSetRequirement { return DataSetForbidden }

func (m *CEchoRSP) ToMessage(pcID uint8) (*Message, error) {
	cs, err := FromDataSet(m.ds)
	if err != nil {
		return nil, fmt.Errorf("build C-ECHO-RSP command set: %w", err)
	}
	return &Message{CommandSet: cs, PresentationContextID: pcID}, nil
}

// CEchoRSPFromMessage converts a generic Message into a CEchoRSP.
func CEchoRSPFromMessage(msg *Message) (*CEchoRSP, error) {
	if err := checkCommandField(msg, CommandCEchoRSP); err != nil {
		return nil, err
	}
	if err := validatePayload(msg, DataSetForbidden); err != nil {
		return nil, err
	}
	ds, err := msg.CommandSet.ToDataSet()
	if err != nil {
		return nil, fmt.Errorf("rebuild C-ECHO-RSP command dataset: %w", err)
	}
	return &CEchoRSP{ds: ds}, nil
}

// CStoreRQ is a C-STORE-RQ message: a request to store a composite
// instance, whose payload dataset is mandatory.
type CStoreRQ struct {
	ds *dicom.DataSet
}

// NewCStoreRQ builds a C-STORE-RQ. Payload carries the instance to store
// and is attached separately on the returned Message via ToMessage.
func NewCStoreRQ(messageID uint16, sopClassUID, sopInstanceUID string, priority uint16) (*CStoreRQ, error) {
	m := &CStoreRQ{ds: newCommandDataSet(CommandCStoreRQ, true)}
	if err := m.MessageID().Set(messageID); err != nil {
		return nil, err
	}
	if err := m.AffectedSOPClassUID().Set(sopClassUID); err != nil {
		return nil, err
	}
	if err := m.AffectedSOPInstanceUID().Set(sopInstanceUID); err != nil {
		return nil, err
	}
	if err := m.Priority().Set(priority); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *CStoreRQ) MessageID() *Uint16Field { return MandatoryUint16(m.ds, tagMessageID) }
func (m *CStoreRQ) AffectedSOPClassUID() *UIDField {
	return MandatoryUID(m.ds, tagAffectedSOPClassUID)
}
func (m *CStoreRQ) AffectedSOPInstanceUID() *UIDField {
	return MandatoryUID(m.ds, tagAffectedSOPInstanceUID)
}
func (m *CStoreRQ) Priority() *Uint16Field { return MandatoryUint16(m.ds, tagPriority) }

func (m *CStoreRQ) Requirement() DataSetRequirement { return DataSetMandatory }

// ToMessage converts m into a generic Message, attaching payload as the
// instance to be stored. Per C-STORE-RQ's DataSetMandatory requirement,
// payload must not be nil.
func (m *CStoreRQ) ToMessage(pcID uint8, payload *dicom.DataSet) (*Message, error) {
	if payload == nil {
		return nil, &dicom.MissingPayload{Command: CommandCStoreRQ}
	}
	cs, err := FromDataSet(m.ds)
	if err != nil {
		return nil, fmt.Errorf("build C-STORE-RQ command set: %w", err)
	}
	return &Message{CommandSet: cs, DataSet: payload, PresentationContextID: pcID}, nil
}

// CStoreRQFromMessage converts a generic Message into a CStoreRQ and its
// attached payload dataset.
func CStoreRQFromMessage(msg *Message) (*CStoreRQ, *dicom.DataSet, error) {
	if err := checkCommandField(msg, CommandCStoreRQ); err != nil {
		return nil, nil, err
	}
	if err := validatePayload(msg, DataSetMandatory); err != nil {
		return nil, nil, err
	}
	ds, err := msg.CommandSet.ToDataSet()
	if err != nil {
		return nil, nil, fmt.Errorf("rebuild C-STORE-RQ command dataset: %w", err)
	}
	return &CStoreRQ{ds: ds}, msg.DataSet, nil
}

// CStoreRSP is a C-STORE-RSP message, the reply to a C-STORE-RQ. Its
// payload dataset is optional (some SCPs attach an N-EVENT-REPORT style
// status detail dataset; most do not).
type CStoreRSP struct {
	ds *dicom.DataSet
}

// NewCStoreRSP builds a C-STORE-RSP for the request it answers.
func NewCStoreRSP(messageIDRespondedTo uint16, sopClassUID, sopInstanceUID string, status uint16) (*CStoreRSP, error) {
	m := &CStoreRSP{ds: newCommandDataSet(CommandCStoreRSP, false)}
	if err := m.MessageIDBeingRespondedTo().Set(messageIDRespondedTo); err != nil {
		return nil, err
	}
	if err := m.AffectedSOPClassUID().Set(sopClassUID); err != nil {
		return nil, err
	}
	if err := m.AffectedSOPInstanceUID().Set(sopInstanceUID); err != nil {
		return nil, err
	}
	if err := m.Status().Set(status); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *CStoreRSP) MessageIDBeingRespondedTo() *Uint16Field {
	return MandatoryUint16(m.ds, tagMessageIDRespondedTo)
}
func (m *CStoreRSP) AffectedSOPClassUID() *UIDField {
	return MandatoryUID(m.ds, tagAffectedSOPClassUID)
}
func (m *CStoreRSP) AffectedSOPInstanceUID() *UIDField {
	return MandatoryUID(m.ds, tagAffectedSOPInstanceUID)
}
func (m *CStoreRSP) Status() *Uint16Field { return MandatoryUint16(m.ds, tagStatus) }

func (m *CStoreRSP) Requirement() DataSetRequirement { return DataSetOptional }

func (m *CStoreRSP) ToMessage(pcID uint8, payload *dicom.DataSet) (*Message, error) {
	cs, err := FromDataSet(m.ds)
	if err != nil {
		return nil, fmt.Errorf("build C-STORE-RSP command set: %w", err)
	}
	return &Message{CommandSet: cs, DataSet: payload, PresentationContextID: pcID}, nil
}

// CStoreRSPFromMessage converts a generic Message into a CStoreRSP and its
// optional payload dataset, which is nil when absent.
func CStoreRSPFromMessage(msg *Message) (*CStoreRSP, *dicom.DataSet, error) {
	if err := checkCommandField(msg, CommandCStoreRSP); err != nil {
		return nil, nil, err
	}
	if err := validatePayload(msg, DataSetOptional); err != nil {
		return nil, nil, err
	}
	ds, err := msg.CommandSet.ToDataSet()
	if err != nil {
		return nil, nil, fmt.Errorf("rebuild C-STORE-RSP command dataset: %w", err)
	}
	return &CStoreRSP{ds: ds}, msg.DataSet, nil
}

// NSetRQ is an N-SET-RQ message: a request to modify attributes of an
// existing instance. Its Modification List payload dataset is mandatory.
type NSetRQ struct {
	ds *dicom.DataSet
}

// NewNSetRQ builds an N-SET-RQ addressing the requested SOP class/instance
// whose attributes are to be modified.
func NewNSetRQ(messageID uint16, sopClassUID, sopInstanceUID string) (*NSetRQ, error) {
	m := &NSetRQ{ds: newCommandDataSet(CommandNSetRQ, true)}
	if err := m.MessageID().Set(messageID); err != nil {
		return nil, err
	}
	if err := m.RequestedSOPClassUID().Set(sopClassUID); err != nil {
		return nil, err
	}
	if err := m.RequestedSOPInstanceUID().Set(sopInstanceUID); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *NSetRQ) MessageID() *Uint16Field { return MandatoryUint16(m.ds, tagMessageID) }
func (m *NSetRQ) RequestedSOPClassUID() *UIDField {
	return MandatoryUID(m.ds, tagRequestedSOPClassUID)
}
func (m *NSetRQ) RequestedSOPInstanceUID() *UIDField {
	return MandatoryUID(m.ds, tagRequestedSOPInstanceUID)
}

func (m *NSetRQ) Requirement() DataSetRequirement { return DataSetMandatory }

// ToMessage converts m into a generic Message. payload is the Modification
// List and must not be nil, per N-SET-RQ's DataSetMandatory requirement.
func (m *NSetRQ) ToMessage(pcID uint8, payload *dicom.DataSet) (*Message, error) {
	if payload == nil {
		return nil, &dicom.MissingPayload{Command: CommandNSetRQ}
	}
	cs, err := FromDataSet(m.ds)
	if err != nil {
		return nil, fmt.Errorf("build N-SET-RQ command set: %w", err)
	}
	return &Message{CommandSet: cs, DataSet: payload, PresentationContextID: pcID}, nil
}

// NSetRQFromMessage converts a generic Message into an NSetRQ and its
// attached Modification List dataset.
func NSetRQFromMessage(msg *Message) (*NSetRQ, *dicom.DataSet, error) {
	if err := checkCommandField(msg, CommandNSetRQ); err != nil {
		return nil, nil, err
	}
	if err := validatePayload(msg, DataSetMandatory); err != nil {
		return nil, nil, err
	}
	ds, err := msg.CommandSet.ToDataSet()
	if err != nil {
		return nil, nil, fmt.Errorf("rebuild N-SET-RQ command dataset: %w", err)
	}
	return &NSetRQ{ds: ds}, msg.DataSet, nil
}

// NSetRSP is an N-SET-RSP message, the reply to an N-SET-RQ. Its payload
// dataset, when present, carries the subset of modified attributes the
// SCP could not set verbatim; most responses carry none.
type NSetRSP struct {
	ds *dicom.DataSet
}

// NewNSetRSP builds an N-SET-RSP for the request it answers.
func NewNSetRSP(messageIDRespondedTo uint16, sopClassUID, sopInstanceUID string, status uint16) (*NSetRSP, error) {
	m := &NSetRSP{ds: newCommandDataSet(CommandNSetRSP, false)}
	if err := m.MessageIDBeingRespondedTo().Set(messageIDRespondedTo); err != nil {
		return nil, err
	}
	if err := m.AffectedSOPClassUID().Set(sopClassUID); err != nil {
		return nil, err
	}
	if err := m.AffectedSOPInstanceUID().Set(sopInstanceUID); err != nil {
		return nil, err
	}
	if err := m.Status().Set(status); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *NSetRSP) MessageIDBeingRespondedTo() *Uint16Field {
	return MandatoryUint16(m.ds, tagMessageIDRespondedTo)
}
func (m *NSetRSP) AffectedSOPClassUID() *UIDField {
	return OptionalUID(m.ds, tagAffectedSOPClassUID)
}
func (m *NSetRSP) AffectedSOPInstanceUID() *UIDField {
	return OptionalUID(m.ds, tagAffectedSOPInstanceUID)
}
func (m *NSetRSP) Status() *Uint16Field { return MandatoryUint16(m.ds, tagStatus) }

func (m *NSetRSP) Requirement() DataSetRequirement { return DataSetOptional }

func (m *NSetRSP) ToMessage(pcID uint8, payload *dicom.DataSet) (*Message, error) {
	cs, err := FromDataSet(m.ds)
	if err != nil {
		return nil, fmt.Errorf("build N-SET-RSP command set: %w", err)
	}
	return &Message{CommandSet: cs, DataSet: payload, PresentationContextID: pcID}, nil
}

// NSetRSPFromMessage converts a generic Message into an NSetRSP and its
// optional payload dataset.
func NSetRSPFromMessage(msg *Message) (*NSetRSP, *dicom.DataSet, error) {
	if err := checkCommandField(msg, CommandNSetRSP); err != nil {
		return nil, nil, err
	}
	if err := validatePayload(msg, DataSetOptional); err != nil {
		return nil, nil, err
	}
	ds, err := msg.CommandSet.ToDataSet()
	if err != nil {
		return nil, nil, fmt.Errorf("rebuild N-SET-RSP command dataset: %w", err)
	}
	return &NSetRSP{ds: ds}, msg.DataSet, nil
}

// NEventReportRQ is an N-EVENT-REPORT-RQ message: a notification that an
// event occurred on an instance. Its event information payload dataset is
// optional; many event types carry no additional information beyond the
// Event Type ID.
type NEventReportRQ struct {
	ds *dicom.DataSet
}

// NewNEventReportRQ builds an N-EVENT-REPORT-RQ for the given event type.
func NewNEventReportRQ(messageID uint16, sopClassUID, sopInstanceUID string, eventTypeID uint16) (*NEventReportRQ, error) {
	m := &NEventReportRQ{ds: newCommandDataSet(CommandNEventReportRQ, false)}
	if err := m.MessageID().Set(messageID); err != nil {
		return nil, err
	}
	if err := m.AffectedSOPClassUID().Set(sopClassUID); err != nil {
		return nil, err
	}
	if err := m.AffectedSOPInstanceUID().Set(sopInstanceUID); err != nil {
		return nil, err
	}
	if err := m.EventTypeID().Set(eventTypeID); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *NEventReportRQ) MessageID() *Uint16Field { return MandatoryUint16(m.ds, tagMessageID) }
func (m *NEventReportRQ) AffectedSOPClassUID() *UIDField {
	return MandatoryUID(m.ds, tagAffectedSOPClassUID)
}
func (m *NEventReportRQ) AffectedSOPInstanceUID() *UIDField {
	return MandatoryUID(m.ds, tagAffectedSOPInstanceUID)
}
func (m *NEventReportRQ) EventTypeID() *Uint16Field { return MandatoryUint16(m.ds, tagEventTypeID) }

func (m *NEventReportRQ) Requirement() DataSetRequirement { return DataSetOptional }

func (m *NEventReportRQ) ToMessage(pcID uint8, payload *dicom.DataSet) (*Message, error) {
	cs, err := FromDataSet(m.ds)
	if err != nil {
		return nil, fmt.Errorf("build N-EVENT-REPORT-RQ command set: %w", err)
	}
	return &Message{CommandSet: cs, DataSet: payload, PresentationContextID: pcID}, nil
}

// NEventReportRQFromMessage converts a generic Message into an
// NEventReportRQ and its optional event information dataset.
func NEventReportRQFromMessage(msg *Message) (*NEventReportRQ, *dicom.DataSet, error) {
	if err := checkCommandField(msg, CommandNEventReportRQ); err != nil {
		return nil, nil, err
	}
	if err := validatePayload(msg, DataSetOptional); err != nil {
		return nil, nil, err
	}
	ds, err := msg.CommandSet.ToDataSet()
	if err != nil {
		return nil, nil, fmt.Errorf("rebuild N-EVENT-REPORT-RQ command dataset: %w", err)
	}
	return &NEventReportRQ{ds: ds}, msg.DataSet, nil
}

// NEventReportRSP is an N-EVENT-REPORT-RSP message, the reply to an
// N-EVENT-REPORT-RQ. Its payload dataset is optional.
type NEventReportRSP struct {
	ds *dicom.DataSet
}

// NewNEventReportRSP builds an N-EVENT-REPORT-RSP for the request it answers.
func NewNEventReportRSP(messageIDRespondedTo uint16, sopClassUID, sopInstanceUID string, eventTypeID, status uint16) (*NEventReportRSP, error) {
	m := &NEventReportRSP{ds: newCommandDataSet(CommandNEventReportRSP, false)}
	if err := m.MessageIDBeingRespondedTo().Set(messageIDRespondedTo); err != nil {
		return nil, err
	}
	if err := m.AffectedSOPClassUID().Set(sopClassUID); err != nil {
		return nil, err
	}
	if err := m.AffectedSOPInstanceUID().Set(sopInstanceUID); err != nil {
		return nil, err
	}
	if err := m.EventTypeID().Set(eventTypeID); err != nil {
		return nil, err
	}
	if err := m.Status().Set(status); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *NEventReportRSP) MessageIDBeingRespondedTo() *Uint16Field {
	return MandatoryUint16(m.ds, tagMessageIDRespondedTo)
}
func (m *NEventReportRSP) AffectedSOPClassUID() *UIDField {
	return OptionalUID(m.ds, tagAffectedSOPClassUID)
}
func (m *NEventReportRSP) AffectedSOPInstanceUID() *UIDField {
	return OptionalUID(m.ds, tagAffectedSOPInstanceUID)
}
func (m *NEventReportRSP) EventTypeID() *Uint16Field {
	return OptionalUint16(m.ds, tagEventTypeID)
}
func (m *NEventReportRSP) Status() *Uint16Field { return MandatoryUint16(m.ds, tagStatus) }

func (m *NEventReportRSP) Requirement() DataSetRequirement { return DataSetOptional }

func (m *NEventReportRSP) ToMessage(pcID uint8, payload *dicom.DataSet) (*Message, error) {
	cs, err := FromDataSet(m.ds)
	if err != nil {
		return nil, fmt.Errorf("build N-EVENT-REPORT-RSP command set: %w", err)
	}
	return &Message{CommandSet: cs, DataSet: payload, PresentationContextID: pcID}, nil
}

// NEventReportRSPFromMessage converts a generic Message into an
// NEventReportRSP and its optional payload dataset.
func NEventReportRSPFromMessage(msg *Message) (*NEventReportRSP, *dicom.DataSet, error) {
	if err := checkCommandField(msg, CommandNEventReportRSP); err != nil {
		return nil, nil, err
	}
	if err := validatePayload(msg, DataSetOptional); err != nil {
		return nil, nil, err
	}
	ds, err := msg.CommandSet.ToDataSet()
	if err != nil {
		return nil, nil, fmt.Errorf("rebuild N-EVENT-REPORT-RSP command dataset: %w", err)
	}
	return &NEventReportRSP{ds: ds}, msg.DataSet, nil
}
