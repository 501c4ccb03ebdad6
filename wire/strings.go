package wire

// MaxBinaryLength is the largest length a UTF-8 string or binary data field
// can declare: the field is always framed by a 2-byte big-endian length.
const MaxBinaryLength = 65535

// SizeString returns the on-the-wire size of an MQTT UTF-8 string: a 2-byte
// length prefix plus the bytes themselves.
func SizeString(s string) int { return 2 + len(s) }

// SizeBinary returns the on-the-wire size of MQTT binary data.
func SizeBinary(b []byte) int { return 2 + len(b) }

// PutString writes a length-prefixed UTF-8 string into buf and returns the
// number of bytes written. The caller is responsible for UTF-8 validity;
// this layer only handles framing.
func PutString(buf []byte, s string) (int, error) {
	if len(s) > MaxBinaryLength {
		return 0, ErrBufferTooSmall
	}
	need := SizeString(s)
	if len(buf) < need {
		return 0, ErrBufferTooSmall
	}
	PutUint16(buf, uint16(len(s)))
	copy(buf[2:], s)
	return need, nil
}

// String decodes a length-prefixed UTF-8 string from the start of data,
// returning a slice that borrows data's backing array and the number of
// bytes consumed. Callers that need to retain the value beyond the
// lifetime of data must copy it themselves.
func String(data []byte) (s []byte, n int, err error) {
	if len(data) < 2 {
		return nil, 0, ErrShortBuffer
	}
	length := int(Uint16(data))
	if len(data) < 2+length {
		return nil, 0, ErrShortBuffer
	}
	return data[2 : 2+length], 2 + length, nil
}

// PutBinary writes length-prefixed binary data into buf.
func PutBinary(buf []byte, b []byte) (int, error) {
	if len(b) > MaxBinaryLength {
		return 0, ErrBufferTooSmall
	}
	need := SizeBinary(b)
	if len(buf) < need {
		return 0, ErrBufferTooSmall
	}
	PutUint16(buf, uint16(len(b)))
	copy(buf[2:], b)
	return need, nil
}

// Binary decodes length-prefixed binary data from the start of data. Like
// String, the returned slice borrows data's backing array.
func Binary(data []byte) (b []byte, n int, err error) {
	if len(data) < 2 {
		return nil, 0, ErrShortBuffer
	}
	length := int(Uint16(data))
	if len(data) < 2+length {
		return nil, 0, ErrShortBuffer
	}
	return data[2 : 2+length], 2 + length, nil
}
