package packet

import (
	"github.com/axmq/codec5/property"
	"github.com/axmq/codec5/wire"
)

// SerializePingreq writes the fixed 2-byte PINGREQ packet {0xC0, 0x00}
// into buf.
func SerializePingreq(buf []byte) (int, error) {
	return EncodeFixedHeader(buf, PINGREQ, 0, 0)
}

// SerializePingresp writes the fixed 2-byte PINGRESP packet {0xD0, 0x00}
// into buf.
func SerializePingresp(buf []byte) (int, error) {
	return EncodeFixedHeader(buf, PINGRESP, 0, 0)
}

// DeserializePingresp validates a PINGRESP packet's remaining data,
// which must be empty (spec.md §4.4).
func DeserializePingresp(data []byte) error {
	if len(data) != 0 {
		return malformed(ErrTrailingBytes)
	}
	return nil
}

func validateDisconnectAuthInfo(reason ReasonCode, props []byte) bool {
	return reason == ReasonSuccess && len(props) == 0
}

// SizeDisconnect computes the Remaining Length and total size of a
// DISCONNECT packet. The minimal 2-byte form {0xE0, 0x00} is produced
// when info has the default Success reason and no properties.
func SizeDisconnect(info *DisconnectInfo) (remainingLength uint32, total int) {
	if validateDisconnectAuthInfo(info.ReasonCode, info.Props) {
		return 0, SizeFixedHeader(0)
	}
	n := 1 + varIntFramedLen(info.Props)
	remainingLength = uint32(n)
	return remainingLength, SizeFixedHeader(remainingLength) + n
}

// SerializeDisconnect writes a DISCONNECT packet into buf.
func SerializeDisconnect(buf []byte, info *DisconnectInfo) (int, error) {
	remainingLength, total := SizeDisconnect(info)
	if len(buf) < total {
		return 0, noMemory(ErrShortBuffer)
	}
	off, err := EncodeFixedHeader(buf, DISCONNECT, 0, remainingLength)
	if err != nil {
		return 0, err
	}
	if remainingLength == 0 {
		return off, nil
	}
	buf[off] = byte(info.ReasonCode)
	off++
	n, err := putPropertyBlock(buf[off:], info.Props)
	if err != nil {
		return 0, err
	}
	off += n
	return off, nil
}

// DeserializeDisconnect parses a DISCONNECT packet's remaining data. An
// empty remaining-data region is the minimal form (Success, no
// properties).
func DeserializeDisconnect(data []byte) (*DisconnectInfo, error) {
	if len(data) == 0 {
		return &DisconnectInfo{ReasonCode: ReasonSuccess}, nil
	}
	return deserializeReasonAndProps(data, DISCONNECT.propertyContext(), func(reason ReasonCode, props []byte) *DisconnectInfo {
		return &DisconnectInfo{ReasonCode: reason, Props: props}
	})
}

// SizeAuth and SerializeAuth mirror DISCONNECT's framing: reason code
// plus properties, with no minimal short form defined for AUTH.
func SizeAuth(info *AuthInfo) (remainingLength uint32, total int) {
	n := 1 + varIntFramedLen(info.Props)
	remainingLength = uint32(n)
	return remainingLength, SizeFixedHeader(remainingLength) + n
}

func SerializeAuth(buf []byte, info *AuthInfo) (int, error) {
	remainingLength, total := SizeAuth(info)
	if len(buf) < total {
		return 0, noMemory(ErrShortBuffer)
	}
	off, err := EncodeFixedHeader(buf, AUTH, 0, remainingLength)
	if err != nil {
		return 0, err
	}
	buf[off] = byte(info.ReasonCode)
	off++
	n, err := putPropertyBlock(buf[off:], info.Props)
	if err != nil {
		return 0, err
	}
	off += n
	return off, nil
}

// DeserializeAuth parses an AUTH packet's remaining data.
func DeserializeAuth(data []byte) (*AuthInfo, error) {
	return deserializeReasonAndProps(data, AUTH.propertyContext(), func(reason ReasonCode, props []byte) *AuthInfo {
		return &AuthInfo{ReasonCode: reason, Props: props}
	})
}

// deserializeReasonAndProps parses the common {reason code, [properties]}
// tail shared by DISCONNECT and AUTH. A single remaining byte (just the
// reason code) omits the property length field entirely, per MQTT 5.0's
// "Reason Code and Property Length can be omitted if ... 0x00 (Success)
// and there are no Properties" rule generalized to non-Success codes
// with no properties.
func deserializeReasonAndProps[T any](data []byte, ctx property.Context, build func(ReasonCode, []byte) T) (T, error) {
	var zero T
	if len(data) < 1 {
		return zero, malformed(ErrTruncated)
	}
	reason := ReasonCode(data[0])

	if len(data) == 1 {
		return build(reason, nil), nil
	}

	length, n, err := wire.VarInt(data[1:])
	if err != nil {
		return zero, malformed(err)
	}
	off := 1 + n
	if len(data[off:]) < int(length) {
		return zero, malformed(ErrTruncated)
	}
	props := data[off : off+int(length)]
	if err := validatePropertyBlock(props, ctx); err != nil {
		return zero, err
	}
	off += int(length)
	if off != len(data) {
		return zero, malformed(ErrTrailingBytes)
	}
	return build(reason, props), nil
}
