package packet

import "github.com/axmq/codec5/wire"

func connectFlags(info *ConnectInfo) byte {
	var f byte
	if info.CleanStart {
		f |= connectFlagCleanStart
	}
	if info.Will {
		f |= connectFlagWillFlag
		f |= byte(info.WillQoS) << connectFlagWillQoSShift
		if info.WillRetain {
			f |= connectFlagWillRetain
		}
	}
	if info.HasUsername {
		f |= connectFlagUsername
	}
	if info.HasPassword {
		f |= connectFlagPassword
	}
	return f
}

func validateConnectInfo(info *ConnectInfo) error {
	if info.Will && !info.WillQoS.IsValid() {
		return badParameter(ErrInvalidQoS)
	}
	if info.HasPassword && !info.HasUsername {
		return badParameter(ErrInvalidConnectFlags)
	}
	return nil
}

// SizeConnect computes the Remaining Length and the total on-the-wire
// size of a CONNECT packet built from info. Serialize must be called
// with a buffer at least as large as the returned total size.
func SizeConnect(info *ConnectInfo) (remainingLength uint32, total int, err error) {
	if err := validateConnectInfo(info); err != nil {
		return 0, 0, err
	}

	n := wire.SizeString(ProtocolName) + 1 /* level */ + 1 /* flags */ + 2 /* keep alive */
	n += varIntFramedLen(info.Props)
	n += wire.SizeString(info.ClientID)

	if info.Will {
		n += varIntFramedLen(info.WillProps)
		n += wire.SizeString(info.WillTopic)
		n += wire.SizeBinary(info.WillPayload)
	}
	if info.HasUsername {
		n += wire.SizeString(info.Username)
	}
	if info.HasPassword {
		n += wire.SizeBinary(info.Password)
	}

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

// varIntFramedLen is the on-the-wire size of a pre-built property block:
// its own VBI length prefix plus the block bytes. A nil/empty block is
// still framed, as the single byte 0x00 (spec.md §4.2).
func varIntFramedLen(props []byte) int {
	return wire.SizeVarInt(uint32(len(props))) + len(props)
}

func putPropertyBlock(buf []byte, props []byte) (int, error) {
	n, err := wire.PutVarInt(buf, uint32(len(props)))
	if err != nil {
		return 0, noMemory(err)
	}
	if len(buf) < n+len(props) {
		return 0, noMemory(ErrShortBuffer)
	}
	copy(buf[n:], props)
	return n + len(props), nil
}

// SerializeConnect writes a CONNECT packet into buf, which must be at
// least as large as the total size SizeConnect returned for the same
// info.
func SerializeConnect(buf []byte, info *ConnectInfo) (int, error) {
	remainingLength, total, err := SizeConnect(info)
	if err != nil {
		return 0, err
	}
	if len(buf) < total {
		return 0, noMemory(ErrShortBuffer)
	}

	off, err := EncodeFixedHeader(buf, CONNECT, 0, remainingLength)
	if err != nil {
		return 0, err
	}

	n, err := wire.PutString(buf[off:], ProtocolName)
	if err != nil {
		return 0, noMemory(err)
	}
	off += n

	buf[off] = ProtocolLevel
	off++
	buf[off] = connectFlags(info)
	off++
	wire.PutUint16(buf[off:], info.KeepAlive)
	off += 2

	n, err = putPropertyBlock(buf[off:], info.Props)
	if err != nil {
		return 0, err
	}
	off += n

	n, err = wire.PutString(buf[off:], info.ClientID)
	if err != nil {
		return 0, noMemory(err)
	}
	off += n

	if info.Will {
		n, err = putPropertyBlock(buf[off:], info.WillProps)
		if err != nil {
			return 0, err
		}
		off += n

		n, err = wire.PutString(buf[off:], info.WillTopic)
		if err != nil {
			return 0, noMemory(err)
		}
		off += n

		n, err = wire.PutBinary(buf[off:], info.WillPayload)
		if err != nil {
			return 0, noMemory(err)
		}
		off += n
	}

	if info.HasUsername {
		n, err = wire.PutString(buf[off:], info.Username)
		if err != nil {
			return 0, noMemory(err)
		}
		off += n
	}

	if info.HasPassword {
		n, err = wire.PutBinary(buf[off:], info.Password)
		if err != nil {
			return 0, noMemory(err)
		}
		off += n
	}

	return off, nil
}
