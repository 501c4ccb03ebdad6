package property

import "github.com/axmq/codec5/wire"

// Reader iterates an already-framed MQTT 5.0 property block: the bytes
// between the block's own Variable Byte Integer length prefix and its end.
// It tracks the same field-set bitset a Builder does, so a property that
// is forbidden from repeating is rejected on the second sighting exactly
// as the Builder would reject it on the second Add.
type Reader struct {
	data     []byte
	pos      int
	fieldSet uint32
}

// NewReader wraps the raw property bytes (not including the length
// prefix) for iteration.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadBlock reads a property block's Variable Byte Integer length prefix
// from the start of data, and returns a Reader over the bytes that follow
// plus the total number of bytes consumed (prefix + block). A packet with
// no properties is the single byte 0x00, which yields an empty Reader.
func ReadBlock(data []byte) (*Reader, int, error) {
	length, n, err := wire.VarInt(data)
	if err != nil {
		return nil, 0, err
	}
	if len(data) < n+int(length) {
		return nil, 0, wire.ErrShortBuffer
	}
	return NewReader(data[n : n+int(length)]), n + int(length), nil
}

// Len returns the number of property bytes remaining unread.
func (r *Reader) Len() int { return len(r.data) - r.pos }

// AtEnd reports whether every property in the block has been consumed.
func (r *Reader) AtEnd() bool { return r.pos >= len(r.data) }

func (r *Reader) has(slot uint32) bool { return slot != 0 && r.fieldSet&slot != 0 }

// PeekID returns the identifier of the next property without advancing,
// and false if the block is exhausted.
func (r *Reader) PeekID() (ID, bool) {
	if r.AtEnd() {
		return 0, false
	}
	return ID(r.data[r.pos]), true
}

// Next decodes and advances past the next property, validating it against
// ctx's allow-list and the duplicate-suppression rule. It is what packet
// deserializers use to walk an entire property block one property at a
// time (see packet.Deserialize*); Table supplies everything Next needs to know
// about any given identifier.
func (r *Reader) Next(ctx Context) (ID, interface{}, error) {
	if r.AtEnd() {
		return 0, nil, ErrTruncated
	}

	id := ID(r.data[r.pos])
	spec, ok := Table[id]
	if !ok {
		return 0, nil, ErrUnknownID
	}
	if spec.Contexts&ctx.bit() == 0 {
		return 0, nil, ErrNotAllowed
	}
	if !spec.Multiple && r.has(spec.Slot) {
		return 0, nil, ErrDuplicate
	}

	value, n, err := decodeValue(r.data[r.pos+1:], spec.Type)
	if err != nil {
		return 0, nil, err
	}
	r.pos += 1 + n

	if !spec.Multiple {
		r.fieldSet |= spec.Slot
	}
	return id, value, nil
}

// expect confirms the next property carries id, decodes its value, and
// advances past it. It underlies every typed GetX getter below.
func (r *Reader) expect(id ID) (interface{}, error) {
	pid, ok := r.PeekID()
	if !ok {
		return nil, ErrTruncated
	}
	if pid != id {
		return nil, ErrWrongIdentifier
	}
	spec := Table[id]
	value, n, err := decodeValue(r.data[r.pos+1:], spec.Type)
	if err != nil {
		return nil, err
	}
	r.pos += 1 + n
	if !spec.Multiple {
		r.fieldSet |= spec.Slot
	}
	return value, nil
}

func decodeValue(data []byte, t Type) (interface{}, int, error) {
	switch t {
	case TypeByte:
		if len(data) < 1 {
			return nil, 0, ErrTruncated
		}
		return data[0], 1, nil
	case TypeTwoByte:
		if len(data) < 2 {
			return nil, 0, ErrTruncated
		}
		return wire.Uint16(data), 2, nil
	case TypeFourByte:
		if len(data) < 4 {
			return nil, 0, ErrTruncated
		}
		return wire.Uint32(data), 4, nil
	case TypeVarInt:
		v, n, err := wire.VarInt(data)
		if err != nil {
			return nil, 0, ErrTruncated
		}
		return v, n, nil
	case TypeUTF8String:
		s, n, err := wire.String(data)
		if err != nil {
			return nil, 0, ErrTruncated
		}
		return string(s), n, nil
	case TypeUTF8Pair:
		k, n1, err := wire.String(data)
		if err != nil {
			return nil, 0, ErrTruncated
		}
		v, n2, err := wire.String(data[n1:])
		if err != nil {
			return nil, 0, ErrTruncated
		}
		return Pair{Key: string(k), Value: string(v)}, n1 + n2, nil
	case TypeBinary:
		b, n, err := wire.Binary(data)
		if err != nil {
			return nil, 0, ErrTruncated
		}
		out := make([]byte, len(b))
		copy(out, b)
		return out, n, nil
	default:
		return nil, 0, ErrWrongType
	}
}

// --- Typed getters ---------------------------------------------------

func (r *Reader) GetPayloadFormatIndicator() (byte, error) {
	v, err := r.expect(PayloadFormatIndicator)
	if err != nil {
		return 0, err
	}
	return v.(byte), nil
}

func (r *Reader) GetMessageExpiryInterval() (uint32, error) {
	v, err := r.expect(MessageExpiryInterval)
	if err != nil {
		return 0, err
	}
	return v.(uint32), nil
}

func (r *Reader) GetContentType() (string, error) {
	v, err := r.expect(ContentType)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (r *Reader) GetResponseTopic() (string, error) {
	v, err := r.expect(ResponseTopic)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (r *Reader) GetCorrelationData() ([]byte, error) {
	v, err := r.expect(CorrelationData)
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (r *Reader) GetSubscriptionIdentifier() (uint32, error) {
	v, err := r.expect(SubscriptionIdentifier)
	if err != nil {
		return 0, err
	}
	n := v.(uint32)
	if n == 0 {
		return 0, ErrOutOfRange
	}
	return n, nil
}

func (r *Reader) GetSessionExpiryInterval() (uint32, error) {
	v, err := r.expect(SessionExpiryInterval)
	if err != nil {
		return 0, err
	}
	return v.(uint32), nil
}

func (r *Reader) GetAssignedClientIdentifier() (string, error) {
	v, err := r.expect(AssignedClientIdentifier)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (r *Reader) GetServerKeepAlive() (uint16, error) {
	v, err := r.expect(ServerKeepAlive)
	if err != nil {
		return 0, err
	}
	return v.(uint16), nil
}

func (r *Reader) GetAuthenticationMethod() (string, error) {
	v, err := r.expect(AuthenticationMethod)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (r *Reader) GetAuthenticationData() ([]byte, error) {
	v, err := r.expect(AuthenticationData)
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (r *Reader) GetRequestProblemInformation() (bool, error) {
	v, err := r.expect(RequestProblemInformation)
	if err != nil {
		return false, err
	}
	return v.(byte) != 0, nil
}

func (r *Reader) GetWillDelayInterval() (uint32, error) {
	v, err := r.expect(WillDelayInterval)
	if err != nil {
		return 0, err
	}
	return v.(uint32), nil
}

func (r *Reader) GetRequestResponseInformation() (bool, error) {
	v, err := r.expect(RequestResponseInformation)
	if err != nil {
		return false, err
	}
	return v.(byte) != 0, nil
}

func (r *Reader) GetResponseInformation() (string, error) {
	v, err := r.expect(ResponseInformation)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (r *Reader) GetServerReference() (string, error) {
	v, err := r.expect(ServerReference)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (r *Reader) GetReasonString() (string, error) {
	v, err := r.expect(ReasonString)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (r *Reader) GetReceiveMaximum() (uint16, error) {
	v, err := r.expect(ReceiveMaximum)
	if err != nil {
		return 0, err
	}
	n := v.(uint16)
	if n == 0 {
		return 0, ErrOutOfRange
	}
	return n, nil
}

func (r *Reader) GetTopicAliasMaximum() (uint16, error) {
	v, err := r.expect(TopicAliasMaximum)
	if err != nil {
		return 0, err
	}
	return v.(uint16), nil
}

func (r *Reader) GetTopicAlias() (uint16, error) {
	v, err := r.expect(TopicAlias)
	if err != nil {
		return 0, err
	}
	n := v.(uint16)
	if n == 0 {
		return 0, ErrOutOfRange
	}
	return n, nil
}

func (r *Reader) GetMaximumQoS() (byte, error) {
	v, err := r.expect(MaximumQoS)
	if err != nil {
		return 0, err
	}
	n := v.(byte)
	if n > 1 {
		return 0, ErrOutOfRange
	}
	return n, nil
}

func (r *Reader) GetRetainAvailable() (byte, error) {
	v, err := r.expect(RetainAvailable)
	if err != nil {
		return 0, err
	}
	n := v.(byte)
	if n > 1 {
		return 0, ErrOutOfRange
	}
	return n, nil
}

func (r *Reader) GetUserProperty() (Pair, error) {
	v, err := r.expect(UserProperty)
	if err != nil {
		return Pair{}, err
	}
	return v.(Pair), nil
}

func (r *Reader) GetMaximumPacketSize() (uint32, error) {
	v, err := r.expect(MaximumPacketSize)
	if err != nil {
		return 0, err
	}
	n := v.(uint32)
	if n == 0 {
		return 0, ErrOutOfRange
	}
	return n, nil
}

func (r *Reader) GetWildcardSubAvailable() (byte, error) {
	v, err := r.expect(WildcardSubAvailable)
	if err != nil {
		return 0, err
	}
	n := v.(byte)
	if n > 1 {
		return 0, ErrOutOfRange
	}
	return n, nil
}

func (r *Reader) GetSubscriptionIDAvailable() (byte, error) {
	v, err := r.expect(SubscriptionIDAvailable)
	if err != nil {
		return 0, err
	}
	n := v.(byte)
	if n > 1 {
		return 0, ErrOutOfRange
	}
	return n, nil
}

func (r *Reader) GetSharedSubAvailable() (byte, error) {
	v, err := r.expect(SharedSubAvailable)
	if err != nil {
		return 0, err
	}
	n := v.(byte)
	if n > 1 {
		return 0, ErrOutOfRange
	}
	return n, nil
}
