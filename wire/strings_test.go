package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringRoundTrip(t *testing.T) {
	buf := make([]byte, SizeString("hello"))
	n, err := PutString(buf, "hello")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x05, 'h', 'e', 'l', 'l', 'o'}, buf[:n])

	got, consumed, err := String(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
	assert.Equal(t, n, consumed)
}

func TestStringEmpty(t *testing.T) {
	buf := make([]byte, 2)
	n, err := PutString(buf, "")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00}, buf[:n])
}

func TestStringShortBuffer(t *testing.T) {
	_, _, err := String([]byte{0x00})
	assert.ErrorIs(t, err, ErrShortBuffer)

	_, _, err = String([]byte{0x00, 0x05, 'h', 'i'})
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestBinaryRoundTrip(t *testing.T) {
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	buf := make([]byte, SizeBinary(payload))
	n, err := PutBinary(buf, payload)
	require.NoError(t, err)

	got, consumed, err := Binary(buf)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, n, consumed)
}

func TestPutStringTooLong(t *testing.T) {
	long := make([]byte, MaxBinaryLength+1)
	buf := make([]byte, len(long)+2)
	_, err := PutString(buf, string(long))
	assert.ErrorIs(t, err, ErrBufferTooSmall)
}
