package value_test

import (
	"testing"

	"github.com/codeninja55/go-radx/dicom/buffer"
	"github.com/codeninja55/go-radx/dicom/value"
	"github.com/codeninja55/go-radx/dicom/vr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fragmentViews(t *testing.T, chunks ...[]byte) []buffer.View {
	t.Helper()
	var data []byte
	var bounds [][2]int
	for _, c := range chunks {
		start := len(data)
		data = append(data, c...)
		bounds = append(bounds, [2]int{start, len(c)})
	}
	buf := buffer.New(data)
	views := make([]buffer.View, len(bounds))
	for i, b := range bounds {
		v, err := buf.View(b[0], b[1])
		require.NoError(t, err)
		views[i] = v
	}
	return views
}

func TestBinariesValue_NewBinariesValue_RejectsNonBinaryVR(t *testing.T) {
	_, err := value.NewBinariesValue(vr.CodeString, nil)
	assert.Error(t, err)
}

func TestBinariesValue_FragmentsAndBytes(t *testing.T) {
	views := fragmentViews(t, []byte{}, []byte{0x01, 0x02}, []byte{0x03, 0x04, 0x05})

	v, err := value.NewBinariesValue(vr.OtherByte, views)
	require.NoError(t, err)

	require.Len(t, v.Fragments(), 3)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05}, v.Bytes())
	assert.Equal(t, vr.OtherByte, v.VR())
}

func TestBinariesValue_Equals(t *testing.T) {
	viewsA := fragmentViews(t, []byte{0x01, 0x02})
	viewsB := fragmentViews(t, []byte{0x01, 0x02})
	viewsC := fragmentViews(t, []byte{0x01, 0x03})

	a, err := value.NewBinariesValue(vr.OtherByte, viewsA)
	require.NoError(t, err)
	b, err := value.NewBinariesValue(vr.OtherByte, viewsB)
	require.NoError(t, err)
	c, err := value.NewBinariesValue(vr.OtherByte, viewsC)
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(nil))
}

func TestBinariesValue_EmptyFragmentsDefaultsToEmptySlice(t *testing.T) {
	v, err := value.NewBinariesValue(vr.OtherWord, nil)
	require.NoError(t, err)
	assert.Empty(t, v.Fragments())
	assert.Equal(t, []byte{}, v.Bytes())
}
