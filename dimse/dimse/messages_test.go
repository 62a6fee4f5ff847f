package dimse_test

import (
	"testing"

	"github.com/codeninja55/go-radx/dicom"
	"github.com/codeninja55/go-radx/dimse/dimse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCEchoRQ_RoundTrip(t *testing.T) {
	rq, err := dimse.NewCEchoRQ(1, "1.2.840.10008.1.1")
	require.NoError(t, err)

	msg, err := rq.ToMessage(1)
	require.NoError(t, err)
	assert.Nil(t, msg.DataSet)

	decoded, err := dimse.CEchoRQFromMessage(msg)
	require.NoError(t, err)

	messageID, err := decoded.MessageID().Get()
	require.NoError(t, err)
	assert.Equal(t, uint16(1), messageID)

	sopClass, err := decoded.AffectedSOPClassUID().Get()
	require.NoError(t, err)
	assert.Equal(t, "1.2.840.10008.1.1", sopClass)
}

func TestCEchoRQFromMessage_RejectsWrongCommand(t *testing.T) {
	rq, err := dimse.NewCEchoRSP(1, "1.2.840.10008.1.1", dimse.StatusSuccess)
	require.NoError(t, err)
	msg, err := rq.ToMessage(1)
	require.NoError(t, err)

	_, err = dimse.CEchoRQFromMessage(msg)
	assert.Error(t, err)
}

func TestCEchoRQFromMessage_RejectsUnexpectedPayload(t *testing.T) {
	rq, err := dimse.NewCEchoRQ(1, "1.2.840.10008.1.1")
	require.NoError(t, err)
	msg, err := rq.ToMessage(1)
	require.NoError(t, err)
	msg.DataSet = dicom.NewDataSet()

	_, err = dimse.CEchoRQFromMessage(msg)
	var unexpected *dicom.UnexpectedPayload
	assert.ErrorAs(t, err, &unexpected)
}

func TestCStoreRQ_RequiresPayload(t *testing.T) {
	rq, err := dimse.NewCStoreRQ(2, "1.2.840.10008.5.1.4.1.1.2", "1.2.840.12345.1.1.1.1", dimse.PriorityMedium)
	require.NoError(t, err)

	_, err = rq.ToMessage(1, nil)
	var missing *dicom.MissingPayload
	assert.ErrorAs(t, err, &missing)

	payload := dicom.NewDataSet()
	msg, err := rq.ToMessage(1, payload)
	require.NoError(t, err)

	decoded, ds, err := dimse.CStoreRQFromMessage(msg)
	require.NoError(t, err)
	assert.NotNil(t, ds)

	sopInstance, err := decoded.AffectedSOPInstanceUID().Get()
	require.NoError(t, err)
	assert.Equal(t, "1.2.840.12345.1.1.1.1", sopInstance)
}

func TestCStoreRQFromMessage_RejectsMissingPayload(t *testing.T) {
	rq, err := dimse.NewCStoreRQ(2, "1.2.840.10008.5.1.4.1.1.2", "1.2.840.12345.1.1.1.1", dimse.PriorityMedium)
	require.NoError(t, err)

	msg, err := rq.ToMessage(1, dicom.NewDataSet())
	require.NoError(t, err)
	msg.DataSet = nil

	_, _, err = dimse.CStoreRQFromMessage(msg)
	var missing *dicom.MissingPayload
	assert.ErrorAs(t, err, &missing)
}

func TestNSetRQ_RequiresModificationList(t *testing.T) {
	rq, err := dimse.NewNSetRQ(3, "1.2.840.10008.5.1.1.1", "1.2.840.12345.2.2.2.2")
	require.NoError(t, err)

	payload := dicom.NewDataSet()
	msg, err := rq.ToMessage(1, payload)
	require.NoError(t, err)

	decoded, ds, err := dimse.NSetRQFromMessage(msg)
	require.NoError(t, err)
	assert.NotNil(t, ds)

	sopClass, err := decoded.RequestedSOPClassUID().Get()
	require.NoError(t, err)
	assert.Equal(t, "1.2.840.10008.5.1.1.1", sopClass)
}

func TestNEventReportRQ_OptionalPayload(t *testing.T) {
	rq, err := dimse.NewNEventReportRQ(4, "1.2.840.10008.5.1.1.1", "1.2.840.12345.3.3.3.3", 2)
	require.NoError(t, err)

	msg, err := rq.ToMessage(1, nil)
	require.NoError(t, err)

	decoded, ds, err := dimse.NEventReportRQFromMessage(msg)
	require.NoError(t, err)
	assert.Nil(t, ds)

	eventType, err := decoded.EventTypeID().Get()
	require.NoError(t, err)
	assert.Equal(t, uint16(2), eventType)
}
