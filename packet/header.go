package packet

import "github.com/axmq/codec5/wire"

// FixedHeader is the first 2-5 bytes of every MQTT control packet: the
// type/flags byte and the Variable Byte Integer Remaining Length.
type FixedHeader struct {
	Type            Type
	Flags           byte
	RemainingLength uint32

	// PUBLISH-specific flags decoded from Flags.
	DUP    bool
	QoS    QoS
	Retain bool
}

// expectedFlags is the fixed low nibble required of every packet type
// except PUBLISH, whose flags are caller data (MQTT 5.0 §2.1.3).
var expectedFlags = map[Type]byte{
	CONNECT:     0x00,
	CONNACK:     0x00,
	PUBACK:      0x00,
	PUBREC:      0x00,
	PUBREL:      0x02,
	PUBCOMP:     0x00,
	SUBSCRIBE:   0x02,
	SUBACK:      0x00,
	UNSUBSCRIBE: 0x02,
	UNSUBACK:    0x00,
	PINGREQ:     0x00,
	PINGRESP:    0x00,
	DISCONNECT:  0x00,
	AUTH:        0x00,
}

func validateFlags(t Type, flags byte) error {
	if expected, ok := expectedFlags[t]; ok && flags != expected {
		return ErrInvalidFlags
	}
	return nil
}

// SizeFixedHeader returns the number of bytes EncodeFixedHeader would
// write for the given remaining length.
func SizeFixedHeader(remainingLength uint32) int {
	return 1 + wire.SizeVarInt(remainingLength)
}

// EncodeFixedHeader writes the type/flags byte and the Remaining Length
// VBI into buf, returning the number of bytes written.
func EncodeFixedHeader(buf []byte, t Type, flags byte, remainingLength uint32) (int, error) {
	need := SizeFixedHeader(remainingLength)
	if len(buf) < need {
		return 0, noMemory(ErrShortBuffer)
	}
	buf[0] = byte(t)<<4 | (flags & 0x0F)
	n, err := wire.PutVarInt(buf[1:], remainingLength)
	if err != nil {
		return 0, badParameter(err)
	}
	return 1 + n, nil
}

// publishFlags packs DUP/QoS/RETAIN into the low nibble of the first
// packet byte (MQTT 5.0 §3.3.1).
func publishFlags(dup bool, qos QoS, retain bool) byte {
	var f byte
	if retain {
		f |= publishFlagRetain
	}
	f |= byte(qos) << publishFlagQoSShift
	if dup {
		f |= publishFlagDup
	}
	return f
}

// DecodeFixedHeader parses the fixed header from the start of data,
// returning the header and the number of bytes consumed.
func DecodeFixedHeader(data []byte) (*FixedHeader, int, error) {
	if len(data) < 1 {
		return nil, 0, malformed(ErrTruncated)
	}

	h := &FixedHeader{}
	h.Type = Type(data[0] >> 4)
	if h.Type == Reserved {
		return nil, 0, malformed(ErrInvalidType)
	}
	if h.Type > AUTH {
		return nil, 0, malformed(ErrInvalidType)
	}
	h.Flags = data[0] & 0x0F

	if h.Type == PUBLISH {
		h.DUP = h.Flags&publishFlagDup != 0
		h.QoS = QoS((h.Flags & publishFlagQoSMask) >> publishFlagQoSShift)
		h.Retain = h.Flags&publishFlagRetain != 0
		if !h.QoS.IsValid() {
			return nil, 0, malformed(ErrInvalidQoS)
		}
	} else if err := validateFlags(h.Type, h.Flags); err != nil {
		return nil, 0, malformed(err)
	}

	length, n, err := wire.VarInt(data[1:])
	if err != nil {
		return nil, 0, malformed(err)
	}
	h.RemainingLength = length
	return h, 1 + n, nil
}

// FlipPublishDup toggles the DUP bit of a pre-serialized PUBLISH header
// byte in place, without reserializing the packet. header must be the
// first byte of a PUBLISH packet (retransmit paths use this to resend an
// already-framed packet with DUP set).
func FlipPublishDup(header byte) byte {
	return header ^ publishFlagDup
}
