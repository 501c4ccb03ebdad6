package packet

import "github.com/axmq/codec5/wire"

func validatePublishInfo(info *PublishInfo) error {
	if !info.QoS.IsValid() {
		return badParameter(ErrInvalidQoS)
	}
	if info.Dup && info.QoS == QoS0 {
		return badParameter(ErrDupWithoutQoS)
	}
	if info.QoS != QoS0 && info.PacketID == 0 {
		return badParameter(ErrZeroPacketID)
	}
	if info.Topic == "" {
		return badParameter(ErrEmptyTopicFilter)
	}
	return nil
}

// publishHeaderLen returns the size of everything that precedes the payload:
// topic, packet id (if any), and properties.
func publishHeaderLen(info *PublishInfo) int {
	n := wire.SizeString(info.Topic)
	if info.QoS != QoS0 {
		n += 2
	}
	n += varIntFramedLen(info.Props)
	return n
}

// SizePublish computes the Remaining Length and total size of a PUBLISH
// packet built from info.
func SizePublish(info *PublishInfo) (remainingLength uint32, total int, err error) {
	if err := validatePublishInfo(info); err != nil {
		return 0, 0, err
	}
	n := publishHeaderLen(info) + len(info.Payload)
	if uint64(n) > uint64(wire.MaxVarInt) {
		return 0, 0, badParameter(ErrShortBuffer)
	}
	remainingLength = uint32(n)
	total = SizeFixedHeader(remainingLength) + n
	if total > MaxPacketSize {
		return 0, 0, badParameter(ErrShortBuffer)
	}
	return remainingLength, total, nil
}

// SerializePublishHeader writes the fixed header, topic, packet id (if
// QoS > 0), and properties into buf, but not the payload — so a caller
// can transmit the payload from its own buffer without copying it
// through this one (spec.md §4.3). It returns the number of header bytes
// written; the complete packet is that many bytes plus len(info.Payload).
func SerializePublishHeader(buf []byte, info *PublishInfo) (int, error) {
	remainingLength, total, err := SizePublish(info)
	if err != nil {
		return 0, err
	}
	headerTotal := total - len(info.Payload)
	if len(buf) < headerTotal {
		return 0, noMemory(ErrShortBuffer)
	}

	flags := publishFlags(info.Dup, info.QoS, info.Retain)
	off, err := EncodeFixedHeader(buf, PUBLISH, flags, remainingLength)
	if err != nil {
		return 0, err
	}

	n, err := wire.PutString(buf[off:], info.Topic)
	if err != nil {
		return 0, noMemory(err)
	}
	off += n

	if info.QoS != QoS0 {
		wire.PutUint16(buf[off:], info.PacketID)
		off += 2
	}

	n, err = putPropertyBlock(buf[off:], info.Props)
	if err != nil {
		return 0, err
	}
	off += n

	return off, nil
}

// SerializePublishHeaderNoTopic is SerializePublishHeader but stops
// before writing the topic bytes, writing only the topic's length
// prefix, so the caller can append the topic itself from a separate
// buffer (spec.md §4.3, second PUBLISH helper).
func SerializePublishHeaderNoTopic(buf []byte, info *PublishInfo) (int, error) {
	remainingLength, total, err := SizePublish(info)
	if err != nil {
		return 0, err
	}
	headerTotal := total - len(info.Payload) - len(info.Topic)
	if len(buf) < headerTotal {
		return 0, noMemory(ErrShortBuffer)
	}

	flags := publishFlags(info.Dup, info.QoS, info.Retain)
	off, err := EncodeFixedHeader(buf, PUBLISH, flags, remainingLength)
	if err != nil {
		return 0, err
	}

	if len(buf[off:]) < 2 {
		return 0, noMemory(ErrShortBuffer)
	}
	wire.PutUint16(buf[off:], uint16(len(info.Topic)))
	off += 2

	if info.QoS != QoS0 {
		wire.PutUint16(buf[off:], info.PacketID)
		off += 2
	}

	n, err := putPropertyBlock(buf[off:], info.Props)
	if err != nil {
		return 0, err
	}
	off += n

	return off, nil
}

// SerializePublish writes a complete PUBLISH packet, including the
// payload, into buf.
func SerializePublish(buf []byte, info *PublishInfo) (int, error) {
	off, err := SerializePublishHeader(buf, info)
	if err != nil {
		return 0, err
	}
	if len(buf[off:]) < len(info.Payload) {
		return 0, noMemory(ErrShortBuffer)
	}
	off += copy(buf[off:], info.Payload)
	return off, nil
}

// DeserializePublish parses a PUBLISH packet's variable header and
// payload from data, which must be exactly fh.RemainingLength bytes (the
// packet's "remaining data" per spec.md §3 "Packet info (incoming)").
func DeserializePublish(fh *FixedHeader, data []byte) (*PublishInfo, error) {
	if fh.Type != PUBLISH {
		return nil, badParameter(ErrInvalidType)
	}
	if !fh.QoS.IsValid() {
		return nil, malformed(ErrInvalidQoS)
	}

	minLen := 3
	if fh.QoS != QoS0 {
		minLen = 5
	}
	if len(data) < minLen {
		return nil, malformed(ErrTruncated)
	}

	info := &PublishInfo{QoS: fh.QoS, Retain: fh.Retain, Dup: fh.DUP}

	topic, n, err := wire.String(data)
	if err != nil {
		return nil, malformed(err)
	}
	info.Topic = string(topic)
	off := n

	if fh.QoS != QoS0 {
		if len(data[off:]) < 2 {
			return nil, malformed(ErrTruncated)
		}
		info.PacketID = wire.Uint16(data[off:])
		if info.PacketID == 0 {
			return nil, malformed(ErrZeroPacketID)
		}
		off += 2
	}

	length, n, err := wire.VarInt(data[off:])
	if err != nil {
		return nil, malformed(err)
	}
	off += n
	if len(data[off:]) < int(length) {
		return nil, malformed(ErrTruncated)
	}
	info.Props = data[off : off+int(length)]
	if err := validatePropertyBlock(info.Props, PUBLISH.propertyContext()); err != nil {
		return nil, err
	}
	off += int(length)

	info.Payload = data[off:]
	return info, nil
}
