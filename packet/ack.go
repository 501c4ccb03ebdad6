package packet

import "github.com/axmq/codec5/wire"

// ackFlags is the fixed low nibble required for each PUBACK-family type;
// only PUBREL carries the mandatory 0b0010 (spec.md §4.3).
func ackFlags(t Type) byte {
	if t == PUBREL {
		return 0x02
	}
	return 0x00
}

func validateAckType(t Type) error {
	switch t {
	case PUBACK, PUBREC, PUBREL, PUBCOMP:
		return nil
	default:
		return badParameter(ErrInvalidType)
	}
}

// SizeAck computes the Remaining Length and total size of a
// PUBACK/PUBREC/PUBREL/PUBCOMP packet of the given type. When info's
// ReasonCode is Success and it carries no properties, the short 2-byte
// form is sized; otherwise the extended form (reason code + properties)
// is sized.
func SizeAck(t Type, info *AckInfo) (remainingLength uint32, total int, err error) {
	if err := validateAckType(t); err != nil {
		return 0, 0, err
	}
	if info.PacketID == 0 {
		return 0, 0, badParameter(ErrZeroPacketID)
	}

	n := 2
	if info.ReasonCode != ReasonSuccess || len(info.Props) > 0 {
		n += 1 + varIntFramedLen(info.Props)
	}

	remainingLength = uint32(n)
	total = SizeFixedHeader(remainingLength) + n
	return remainingLength, total, nil
}

// SerializeAck writes a PUBACK/PUBREC/PUBREL/PUBCOMP packet into buf.
func SerializeAck(buf []byte, t Type, info *AckInfo) (int, error) {
	remainingLength, total, err := SizeAck(t, info)
	if err != nil {
		return 0, err
	}
	if len(buf) < total {
		return 0, noMemory(ErrShortBuffer)
	}

	off, err := EncodeFixedHeader(buf, t, ackFlags(t), remainingLength)
	if err != nil {
		return 0, err
	}

	wire.PutUint16(buf[off:], info.PacketID)
	off += 2

	if remainingLength > 2 {
		buf[off] = byte(info.ReasonCode)
		off++
		n, err := putPropertyBlock(buf[off:], info.Props)
		if err != nil {
			return 0, err
		}
		off += n
	}

	return off, nil
}

// DeserializeAck parses a PUBACK/PUBREC/PUBREL/PUBCOMP packet's variable
// header from data (fh.RemainingLength bytes).
func DeserializeAck(t Type, fh *FixedHeader, data []byte) (*AckInfo, error) {
	if err := validateAckType(t); err != nil {
		return nil, err
	}
	if len(data) < 2 {
		return nil, malformed(ErrTruncated)
	}

	info := &AckInfo{}
	info.PacketID = wire.Uint16(data)
	if info.PacketID == 0 {
		return nil, malformed(ErrZeroPacketID)
	}

	if len(data) == 2 {
		info.ReasonCode = ReasonSuccess
		return info, nil
	}

	if len(data) < 3 {
		return nil, malformed(ErrTruncated)
	}
	info.ReasonCode = ReasonCode(data[2])

	length, n, err := wire.VarInt(data[3:])
	if err != nil {
		return nil, malformed(err)
	}
	off := 3 + n
	if len(data[off:]) < int(length) {
		return nil, malformed(ErrTruncated)
	}
	info.Props = data[off : off+int(length)]
	if err := validatePropertyBlock(info.Props, t.propertyContext()); err != nil {
		return nil, err
	}
	off += int(length)

	if off != len(data) {
		return nil, malformed(ErrTrailingBytes)
	}
	return info, nil
}

// validSubackReason reports whether r is one of the reason codes SUBACK
// may carry (MQTT 5.0 §3.9.3): granted QoS 0/1/2, or one of the failure
// codes defined for SUBACK.
func validSubackReason(r ReasonCode) bool {
	switch r {
	case ReasonGrantedQoS0, ReasonGrantedQoS1, ReasonGrantedQoS2,
		ReasonUnspecifiedError, ReasonImplementationSpecificError,
		ReasonNotAuthorized, ReasonTopicFilterInvalid,
		ReasonPacketIdentifierInUse, ReasonQuotaExceeded,
		ReasonSharedSubscriptionsNotSupported,
		ReasonSubscriptionIdentifiersNotSupported,
		ReasonWildcardSubscriptionsNotSupported:
		return true
	default:
		return false
	}
}

// validUnsubackReason reports whether r is one of the reason codes
// UNSUBACK may carry (MQTT 5.0 §3.11.3).
func validUnsubackReason(r ReasonCode) bool {
	switch r {
	case ReasonSuccess, ReasonNoSubscriptionExisted, ReasonUnspecifiedError,
		ReasonImplementationSpecificError, ReasonNotAuthorized,
		ReasonTopicFilterInvalid, ReasonPacketIdentifierInUse:
		return true
	default:
		return false
	}
}

// DeserializeSuback parses a SUBACK packet's variable header and reason
// code payload from data.
func DeserializeSuback(data []byte) (*SubackInfo, error) {
	if len(data) < 3 {
		return nil, malformed(ErrTruncated)
	}
	info := &SubackInfo{}
	info.PacketID = wire.Uint16(data)
	if info.PacketID == 0 {
		return nil, malformed(ErrZeroPacketID)
	}

	length, n, err := wire.VarInt(data[2:])
	if err != nil {
		return nil, malformed(err)
	}
	off := 2 + n
	if len(data[off:]) < int(length) {
		return nil, malformed(ErrTruncated)
	}
	info.Props = data[off : off+int(length)]
	if err := validatePropertyBlock(info.Props, SUBACK.propertyContext()); err != nil {
		return nil, err
	}
	off += int(length)

	if off >= len(data) {
		return nil, malformed(ErrEmptyTopicFilterList)
	}
	for _, b := range data[off:] {
		r := ReasonCode(b)
		if !validSubackReason(r) {
			return nil, malformed(ErrInvalidFlags)
		}
		info.ReasonCodes = append(info.ReasonCodes, r)
	}
	return info, nil
}

// DeserializeUnsuback parses an UNSUBACK packet's variable header and
// reason code payload from data.
func DeserializeUnsuback(data []byte) (*UnsubackInfo, error) {
	if len(data) < 3 {
		return nil, malformed(ErrTruncated)
	}
	info := &UnsubackInfo{}
	info.PacketID = wire.Uint16(data)
	if info.PacketID == 0 {
		return nil, malformed(ErrZeroPacketID)
	}

	length, n, err := wire.VarInt(data[2:])
	if err != nil {
		return nil, malformed(err)
	}
	off := 2 + n
	if len(data[off:]) < int(length) {
		return nil, malformed(ErrTruncated)
	}
	info.Props = data[off : off+int(length)]
	if err := validatePropertyBlock(info.Props, UNSUBACK.propertyContext()); err != nil {
		return nil, err
	}
	off += int(length)

	if off >= len(data) {
		return nil, malformed(ErrEmptyTopicFilterList)
	}
	for _, b := range data[off:] {
		r := ReasonCode(b)
		if !validUnsubackReason(r) {
			return nil, malformed(ErrInvalidFlags)
		}
		info.ReasonCodes = append(info.ReasonCodes, r)
	}
	return info, nil
}
