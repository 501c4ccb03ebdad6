package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFixedHeaderPingreq(t *testing.T) {
	buf := make([]byte, 2)
	n, err := EncodeFixedHeader(buf, PINGREQ, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xC0, 0x00}, buf[:n])
}

func TestDecodeFixedHeaderRejectsReservedType(t *testing.T) {
	_, _, err := DecodeFixedHeader([]byte{0x00, 0x00})
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestDecodeFixedHeaderRejectsBadPublishQoS(t *testing.T) {
	// PUBLISH with QoS bits == 3 (reserved).
	_, _, err := DecodeFixedHeader([]byte{0x36, 0x00})
	assert.ErrorIs(t, err, ErrInvalidQoS)
}

func TestDecodeFixedHeaderPublishFlags(t *testing.T) {
	// type=PUBLISH, DUP=1, QoS=1, RETAIN=1 -> 0x3B
	h, n, err := DecodeFixedHeader([]byte{0x3B, 0x00})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, h.DUP)
	assert.Equal(t, QoS1, h.QoS)
	assert.True(t, h.Retain)
}

func TestDecodeFixedHeaderRejectsBadReservedFlags(t *testing.T) {
	// PUBREL must have low nibble 0x02.
	_, _, err := DecodeFixedHeader([]byte{0x60, 0x00})
	assert.ErrorIs(t, err, ErrInvalidFlags)
}

func TestFlipPublishDup(t *testing.T) {
	header := byte(0x30) // PUBLISH, no flags
	flipped := FlipPublishDup(header)
	assert.Equal(t, byte(0x38), flipped)
	assert.Equal(t, header, FlipPublishDup(flipped))
}

func TestVariableByteIntegerEdgeCasesViaFixedHeader(t *testing.T) {
	cases := []struct {
		length uint32
		want   []byte
	}{
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{16383, []byte{0xFF, 0x7F}},
		{16384, []byte{0x80, 0x80, 0x01}},
		{268435455, []byte{0xFF, 0xFF, 0xFF, 0x7F}},
	}
	for _, c := range cases {
		buf := make([]byte, 5)
		n, err := EncodeFixedHeader(buf, PINGREQ, 0, c.length)
		require.NoError(t, err)
		assert.Equal(t, append([]byte{0xC0}, c.want...), buf[:n])
	}

	buf := make([]byte, 5)
	_, err := EncodeFixedHeader(buf, PINGREQ, 0, 268435456)
	assert.Error(t, err)
}
