package packet

import (
	"context"
	"errors"
	"log/slog"

	"github.com/axmq/codec5/wire"
)

// Recv reads up to len(buf) bytes into buf, returning the number of bytes
// read. A return of 0 with a nil error means no data is available right
// now; a non-nil error is a transport failure. This is the one I/O
// capability the codec accepts — spec.md §6's receive callback.
type Recv func(ctx context.Context, buf []byte) (int, error)

// ScanResult is the outcome of a successful incoming-header scan: the
// packet type, its Remaining Length, and how many bytes the fixed header
// itself occupied.
type ScanResult struct {
	Type            Type
	Flags           byte
	RemainingLength uint32
	HeaderLength    int
}

// incomingAllowed is the set of packet types a client may receive
// (spec.md §4.5): everything except CONNECT, SUBSCRIBE, UNSUBSCRIBE, and
// PINGREQ, which are client-to-server only.
var incomingAllowed = map[Type]bool{
	CONNACK:     true,
	PUBLISH:     true,
	PUBACK:      true,
	PUBREC:      true,
	PUBREL:      true,
	PUBCOMP:     true,
	SUBACK:      true,
	UNSUBACK:    true,
	PINGRESP:    true,
	DISCONNECT:  true,
	AUTH:        true,
}

func checkIncomingType(t Type, flags byte) error {
	if !incomingAllowed[t] {
		return malformed(ErrInvalidType)
	}
	if t == PUBREL && flags != 0x02 {
		return malformed(ErrInvalidFlags)
	}
	if t != PUBLISH && t != PUBREL {
		if err := validateFlags(t, flags); err != nil {
			return malformed(err)
		}
	}
	return nil
}

// ScanPull reads one incoming fixed header using recv: one byte for the
// type/flags, then up to four Variable Byte Integer bytes for the
// Remaining Length, one at a time. If log is non-nil it receives two debug
// records, one for the type/flags byte and one for the decoded Remaining
// Length; a nil logger disables tracing entirely (mirrors
// the teacher's pkg/logger wrapping of log/slog with a nil-safe handle).
func ScanPull(ctx context.Context, recv Recv, log *slog.Logger) (ScanResult, error) {
	var first [1]byte
	n, err := recv(ctx, first[:])
	if err != nil {
		return ScanResult{}, newError(StatusRecvFailed, 0, err)
	}
	if n == 0 {
		return ScanResult{}, newError(StatusNoDataAvailable, 0, nil)
	}

	t := Type(first[0] >> 4)
	flags := first[0] & 0x0F
	if log != nil {
		log.Debug("packet: scanned type byte", "type", t, "flags", flags)
	}
	if t == Reserved || t > AUTH {
		return ScanResult{}, malformed(ErrInvalidType)
	}

	var qos QoS
	if t == PUBLISH {
		qos = QoS((flags & publishFlagQoSMask) >> publishFlagQoSShift)
		if !qos.IsValid() {
			return ScanResult{}, malformed(ErrInvalidQoS)
		}
	} else if err := checkIncomingType(t, flags); err != nil {
		return ScanResult{}, err
	}

	var lenBytes [wire.MaxVarIntBytes]byte
	read := 0
	for read < wire.MaxVarIntBytes {
		n, err := recv(ctx, lenBytes[read:read+1])
		if err != nil {
			return ScanResult{}, newError(StatusRecvFailed, 0, err)
		}
		if n == 0 {
			return ScanResult{}, newError(StatusNoDataAvailable, 0, nil)
		}
		read++
		if lenBytes[read-1]&0x80 == 0 {
			break
		}
	}

	length, consumed, err := wire.VarInt(lenBytes[:read])
	if err != nil || consumed != read {
		return ScanResult{}, malformed(errors.New("packet: malformed remaining length"))
	}
	if log != nil {
		log.Debug("packet: scanned remaining length", "length", length)
	}

	return ScanResult{Type: t, Flags: flags, RemainingLength: length, HeaderLength: 1 + read}, nil
}

// ScanBuffered parses a fixed header from data[:writeIndex], a buffer
// filled incrementally by the caller's own transport loop. It returns
// StatusNeedMoreBytes until writeIndex covers a complete header, and is
// idempotent thereafter: repeated calls over the same prefix return the
// same ScanResult (spec.md Testable Property 10).
func ScanBuffered(data []byte, writeIndex int) (ScanResult, error) {
	if writeIndex < 1 {
		return ScanResult{}, newError(StatusNeedMoreBytes, 0, nil)
	}
	avail := data[:writeIndex]

	t := Type(avail[0] >> 4)
	flags := avail[0] & 0x0F
	if t == Reserved || t > AUTH {
		return ScanResult{}, malformed(ErrInvalidType)
	}
	if t == PUBLISH {
		qos := QoS((flags & publishFlagQoSMask) >> publishFlagQoSShift)
		if !qos.IsValid() {
			return ScanResult{}, malformed(ErrInvalidQoS)
		}
	} else if err := checkIncomingType(t, flags); err != nil {
		return ScanResult{}, err
	}

	if len(avail) < 2 {
		return ScanResult{}, newError(StatusNeedMoreBytes, 0, nil)
	}

	length, n, err := wire.VarInt(avail[1:])
	if err != nil {
		if errors.Is(err, wire.ErrShortBuffer) {
			if len(avail)-1 >= wire.MaxVarIntBytes {
				return ScanResult{}, malformed(err)
			}
			return ScanResult{}, newError(StatusNeedMoreBytes, 0, nil)
		}
		return ScanResult{}, malformed(err)
	}

	return ScanResult{Type: t, Flags: flags, RemainingLength: length, HeaderLength: 1 + n}, nil
}
