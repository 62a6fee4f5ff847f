package buffer

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_ViewBytes(t *testing.T) {
	b := New([]byte{0x01, 0x02, 0x03, 0x04, 0x05})

	v, err := b.View(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x03, 0x04}, v.Bytes())
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 1, v.Offset())
}

func TestBuffer_ViewOutOfBounds(t *testing.T) {
	b := New([]byte{0x01, 0x02})

	_, err := b.View(1, 5)
	assert.Error(t, err)
}

func TestView_Sub(t *testing.T) {
	b := New([]byte{0x01, 0x02, 0x03, 0x04, 0x05})
	v, err := b.View(1, 4) // {0x02,0x03,0x04,0x05}
	require.NoError(t, err)

	sub, err := v.Sub(1, 2) // {0x03,0x04}
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0x04}, sub.Bytes())

	_, err = v.Sub(3, 2)
	assert.Error(t, err)
}

func TestReader_ReadBytesAndView(t *testing.T) {
	r := NewReader([]byte{0xAA, 0xBB, 0xCC, 0xDD})

	first, err := r.ReadBytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, first)
	assert.Equal(t, 2, r.Len())

	rest, err := r.View()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xCC, 0xDD}, rest.Bytes())

	_, err = r.ReadBytes(10)
	assert.Error(t, err)
}

func TestReader_ReadUint16AndUint32(t *testing.T) {
	r := NewReader([]byte{0x34, 0x12, 0x78, 0x56, 0x34, 0x12})

	v16, err := r.ReadUint16(binary.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), v16)

	v32, err := r.ReadUint32(binary.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), v32)

	assert.True(t, r.Exhausted())
}

func TestReader_NestedViewSharesBuffer(t *testing.T) {
	buf := New([]byte{0x01, 0x02, 0x03, 0x04})
	outer := buf.Whole().Reader()

	item, err := outer.ReadView(2)
	require.NoError(t, err)

	nested := item.Reader()
	b, err := nested.ReadBytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, b)
	assert.True(t, nested.Exhausted())
	assert.False(t, outer.Exhausted())
}
