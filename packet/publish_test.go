package packet

import (
	"testing"

	"github.com/axmq/codec5/property"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializePublishQoS0(t *testing.T) {
	info := &PublishInfo{QoS: QoS0, Topic: "t", Payload: []byte("hi")}
	_, total, err := SizePublish(info)
	require.NoError(t, err)

	buf := make([]byte, total)
	n, err := SerializePublish(buf, info)
	require.NoError(t, err)

	want := []byte{0x30, 0x06, 0x00, 0x01, 't', 0x00, 'h', 'i'}
	assert.Equal(t, want, buf[:n])
}

func TestSerializePublishQoS1RequiresPacketID(t *testing.T) {
	info := &PublishInfo{QoS: QoS1, Topic: "t", Payload: []byte("x")}
	_, _, err := SizePublish(info)
	assert.ErrorIs(t, err, ErrZeroPacketID)
}

func TestSerializePublishDupRequiresQoS(t *testing.T) {
	info := &PublishInfo{QoS: QoS0, Dup: true, Topic: "t"}
	_, _, err := SizePublish(info)
	assert.ErrorIs(t, err, ErrDupWithoutQoS)
}

func TestSerializePublishEmptyTopicRejected(t *testing.T) {
	info := &PublishInfo{QoS: QoS0, Topic: ""}
	_, _, err := SizePublish(info)
	assert.ErrorIs(t, err, ErrEmptyTopicFilter)
}

func TestPublishRoundTrip(t *testing.T) {
	info := &PublishInfo{QoS: QoS1, Retain: true, Topic: "a/b", PacketID: 42, Payload: []byte("payload")}
	_, total, err := SizePublish(info)
	require.NoError(t, err)
	buf := make([]byte, total)
	n, err := SerializePublish(buf, info)
	require.NoError(t, err)

	fh, hlen, err := DecodeFixedHeader(buf[:n])
	require.NoError(t, err)
	assert.Equal(t, PUBLISH, fh.Type)
	assert.True(t, fh.Retain)
	assert.Equal(t, QoS1, fh.QoS)

	parsed, err := DeserializePublish(fh, buf[hlen:n])
	require.NoError(t, err)
	assert.Equal(t, info.Topic, parsed.Topic)
	assert.Equal(t, info.PacketID, parsed.PacketID)
	assert.Equal(t, info.Payload, parsed.Payload)
}

func TestSerializePublishHeaderOmitsPayload(t *testing.T) {
	info := &PublishInfo{QoS: QoS0, Topic: "t", Payload: []byte("0123456789")}
	buf := make([]byte, 64)
	n, err := SerializePublishHeader(buf, info)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x30, 0x0E, 0x00, 0x01, 't', 0x00}, buf[:n])
}

func TestDeserializePublishTruncated(t *testing.T) {
	fh := &FixedHeader{Type: PUBLISH, QoS: QoS0}
	_, err := DeserializePublish(fh, []byte{0x00})
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDeserializePublishZeroPacketID(t *testing.T) {
	fh := &FixedHeader{Type: PUBLISH, QoS: QoS1}
	data := []byte{0x00, 0x01, 't', 0x00, 0x00, 0x00}
	_, err := DeserializePublish(fh, data)
	assert.ErrorIs(t, err, ErrZeroPacketID)
}

// publishDataWithProps builds a minimal QoS 0 PUBLISH remaining-data
// region (topic "t", empty payload) with props framed behind its Variable
// Byte Integer length prefix. Every raw prop block used below is well
// under 128 bytes, so a single-byte length prefix suffices.
func publishDataWithProps(props []byte) []byte {
	return append([]byte{0x00, 0x01, 't', byte(len(props))}, props...)
}

func TestDeserializePublishRejectsZeroTopicAlias(t *testing.T) {
	// Topic Alias (0x23) = 0, hand-crafted since the Builder itself
	// refuses to encode an out-of-range value.
	data := publishDataWithProps([]byte{byte(property.TopicAlias), 0x00, 0x00})
	fh := &FixedHeader{Type: PUBLISH, QoS: QoS0}
	_, err := DeserializePublish(fh, data)
	assert.Error(t, err)
}

func TestDeserializePublishRejectsInvalidPayloadFormatIndicator(t *testing.T) {
	// Payload Format Indicator (0x01) must be 0 or 1.
	data := publishDataWithProps([]byte{byte(property.PayloadFormatIndicator), 0x02})
	fh := &FixedHeader{Type: PUBLISH, QoS: QoS0}
	_, err := DeserializePublish(fh, data)
	assert.Error(t, err)
}

func TestDeserializePublishRejectsDuplicateProperty(t *testing.T) {
	data := publishDataWithProps([]byte{
		byte(property.ContentType), 0x00, 0x01, 'x',
		byte(property.ContentType), 0x00, 0x01, 'y',
	})
	fh := &FixedHeader{Type: PUBLISH, QoS: QoS0}
	_, err := DeserializePublish(fh, data)
	assert.Error(t, err)
}

func TestDeserializePublishRejectsUnknownProperty(t *testing.T) {
	data := publishDataWithProps([]byte{0x7E, 0x00})
	fh := &FixedHeader{Type: PUBLISH, QoS: QoS0}
	_, err := DeserializePublish(fh, data)
	assert.ErrorIs(t, err, property.ErrUnknownID)
}

func TestDeserializePublishRejectsDisallowedProperty(t *testing.T) {
	// Maximum QoS is CONNACK-only; it must never validate on PUBLISH.
	data := publishDataWithProps([]byte{byte(property.MaximumQoS), 0x01})
	fh := &FixedHeader{Type: PUBLISH, QoS: QoS0}
	_, err := DeserializePublish(fh, data)
	assert.ErrorIs(t, err, property.ErrNotAllowed)
}
