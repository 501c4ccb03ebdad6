package packet

import (
	"testing"

	"github.com/axmq/codec5/property"
	"github.com/axmq/codec5/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func framedPropertyBlock(t *testing.T, props []byte) []byte {
	t.Helper()
	block := make([]byte, 4+len(props))
	n, err := wire.PutVarInt(block, uint32(len(props)))
	require.NoError(t, err)
	copy(block[n:], props)
	return block[:n+len(props)]
}

func TestDeserializeConnackSuccessNoProperties(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00}
	info, err := DeserializeConnack(data, false)
	require.NoError(t, err)
	assert.False(t, info.SessionPresent)
	assert.Equal(t, ReasonSuccess, info.ReasonCode)

	defaults := DefaultConnectionProperties()
	assert.Equal(t, defaults.ReceiveMaximum, info.Properties.ReceiveMaximum)
	assert.Equal(t, defaults.MaximumPacketSize, info.Properties.MaximumPacketSize)
	assert.Equal(t, defaults.MaximumQoS, info.Properties.MaximumQoS)
	assert.Equal(t, defaults.RetainAvailable, info.Properties.RetainAvailable)
}

func TestDeserializeConnackSessionPresentWithErrorIsMalformed(t *testing.T) {
	data := []byte{0x01, byte(ReasonNotAuthorized), 0x00}
	_, err := DeserializeConnack(data, false)
	assert.ErrorIs(t, err, ErrSessionPresentMismatch)
}

func TestDeserializeConnackDuplicatePropertyMalformed(t *testing.T) {
	b := property.NewBuilder(make([]byte, 64))
	require.NoError(t, b.AddSessionExpiryInterval(30, property.CtxConnack))
	// Forge a second Session Expiry Interval by hand to simulate an
	// on-the-wire duplicate the Builder itself would never produce.
	raw := append(append([]byte{}, b.Bytes()...), byte(property.SessionExpiryInterval), 0, 0, 0, 60)

	data := append([]byte{0x00, 0x00}, framedPropertyBlock(t, raw)...)
	_, err := DeserializeConnack(data, false)
	assert.Error(t, err)
}

func TestDeserializeConnackReservedFlagBits(t *testing.T) {
	data := []byte{0x02, 0x00, 0x00}
	_, err := DeserializeConnack(data, false)
	assert.ErrorIs(t, err, ErrUnexpectedSessionFlag)
}

func TestDeserializeConnackResponseInfoRequiresRequest(t *testing.T) {
	b := property.NewBuilder(make([]byte, 64))
	require.NoError(t, b.AddResponseInformation("info/topic", property.CtxConnack))

	data := append([]byte{0x00, 0x00}, framedPropertyBlock(t, b.Bytes())...)
	_, err := DeserializeConnack(data, false)
	assert.ErrorIs(t, err, ErrUnrequestedResponseInfo)

	_, err = DeserializeConnack(data, true)
	assert.NoError(t, err)
}
