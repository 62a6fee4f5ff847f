package value_test

import (
	"testing"

	"github.com/codeninja55/go-radx/dicom/tag"
	"github.com/codeninja55/go-radx/dicom/value"
	"github.com/codeninja55/go-radx/dicom/vr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataSetsValue_EmptySequence(t *testing.T) {
	sq := value.NewDataSetsValue(nil)
	assert.Equal(t, vr.SequenceOfItems, sq.VR())
	assert.Empty(t, sq.Items())
	assert.Equal(t, "SQ[]", sq.String())
}

func TestDataSetsValue_ItemsAndGet(t *testing.T) {
	name, err := value.NewStringValue(vr.PersonName, []string{"Doe^John"})
	require.NoError(t, err)

	item := value.Item{
		{Tag: tag.New(0x0010, 0x0010), VR: vr.PersonName, Value: name},
	}
	sq := value.NewDataSetsValue([]value.Item{item})

	require.Len(t, sq.Items(), 1)
	elem, ok := sq.Items()[0].Get(tag.New(0x0010, 0x0010))
	require.True(t, ok)
	assert.Equal(t, vr.PersonName, elem.VR)
	assert.True(t, elem.Value.Equals(name))

	_, ok = sq.Items()[0].Get(tag.New(0x0010, 0x0020))
	assert.False(t, ok)
}

func TestDataSetsValue_Equals(t *testing.T) {
	name, err := value.NewStringValue(vr.PersonName, []string{"Doe^John"})
	require.NoError(t, err)
	item := value.Item{{Tag: tag.New(0x0010, 0x0010), VR: vr.PersonName, Value: name}}

	a := value.NewDataSetsValue([]value.Item{item})
	b := value.NewDataSetsValue([]value.Item{item})
	c := value.NewDataSetsValue(nil)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(nil))
}

func TestDataSetsValue_BytesPanics(t *testing.T) {
	sq := value.NewDataSetsValue(nil)
	assert.Panics(t, func() {
		sq.Bytes()
	})
}
