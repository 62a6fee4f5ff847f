package dimse_test

import (
	"testing"

	"github.com/codeninja55/go-radx/dicom"
	"github.com/codeninja55/go-radx/dicom/tag"
	"github.com/codeninja55/go-radx/dimse/dimse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_Uint16RoundTrip(t *testing.T) {
	ds := dicom.NewDataSet()
	f := dimse.MandatoryUint16(ds, tag.New(0x0000, 0x0110))

	require.NoError(t, f.Set(42))

	val, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, uint16(42), val)
}

func TestField_UIDRoundTrip(t *testing.T) {
	ds := dicom.NewDataSet()
	f := dimse.MandatoryUID(ds, tag.New(0x0000, 0x0002))

	require.NoError(t, f.Set("1.2.840.10008.1.1"))

	val, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, "1.2.840.10008.1.1", val)
}

func TestField_MandatoryMissingErrors(t *testing.T) {
	ds := dicom.NewDataSet()
	f := dimse.MandatoryUint16(ds, tag.New(0x0000, 0x0110))

	_, err := f.Get()
	assert.Error(t, err)
}

func TestField_OptionalMissingReturnsZero(t *testing.T) {
	ds := dicom.NewDataSet()
	f := dimse.OptionalUint16(ds, tag.New(0x0000, 0x0110))

	val, err := f.Get()
	require.NoError(t, err)
	assert.Zero(t, val)
}
