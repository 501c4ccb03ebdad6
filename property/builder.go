package property

import "github.com/axmq/codec5/wire"

// Builder appends MQTT 5.0 properties into a caller-owned buffer, in the
// order the caller calls AddX, enforcing per-property duplication rules,
// per-packet-type allow-lists, and value-range rules as it goes.
//
// Builder holds no heap state beyond the slice it was given: current_index
// (spec.md §3) is Builder.index, and field_set is Builder.fieldSet, a
// 32-bit bitset keyed by each property's Spec.Slot. User Property is the
// only property excluded from duplicate tracking — its Slot is 0 and its
// Multiple flag skips the field-set check entirely.
type Builder struct {
	buf      []byte
	index    int
	fieldSet uint32
}

// NewBuilder wraps buf for property writes. buf is borrowed for the
// lifetime of the Builder; the caller must not mutate it concurrently.
func NewBuilder(buf []byte) *Builder {
	return &Builder{buf: buf}
}

// Len returns the number of bytes written so far (the encoded property
// block length, excluding its own Variable Byte Integer length prefix).
func (b *Builder) Len() int { return b.index }

// Bytes returns the encoded properties written so far.
func (b *Builder) Bytes() []byte { return b.buf[:b.index] }

// Reset rewinds the Builder to reuse buf for a fresh property block.
func (b *Builder) Reset(buf []byte) {
	b.buf = buf
	b.index = 0
	b.fieldSet = 0
}

// has reports whether the property with the given slot bit has already
// been written.
func (b *Builder) has(slot uint32) bool { return slot != 0 && b.fieldSet&slot != 0 }

// add is the single entry point every AddX wrapper funnels through: it
// performs the allow-list, duplication, and capacity checks from the
// central Table before writing the identifier byte and encoded value.
func (b *Builder) add(id ID, value interface{}, hint []Context) error {
	spec, ok := Table[id]
	if !ok {
		return ErrUnknownID
	}

	if len(hint) > 0 && spec.Contexts&hint[0].bit() == 0 {
		return ErrNotAllowed
	}

	if !spec.Multiple && b.has(spec.Slot) {
		return ErrDuplicate
	}

	if id == AuthenticationData && !b.has(Table[AuthenticationMethod].Slot) {
		return ErrAuthDataWithoutMethod
	}

	need := 1 + sizeOfValue(spec.Type, value)
	if b.index+need > len(b.buf) {
		return ErrNoSpace
	}

	b.buf[b.index] = byte(id)
	n, err := encodeValue(b.buf[b.index+1:], spec.Type, value)
	if err != nil {
		return err
	}
	b.index += 1 + n

	if !spec.Multiple {
		b.fieldSet |= spec.Slot
	}
	return nil
}

func encodeValue(buf []byte, t Type, value interface{}) (int, error) {
	switch t {
	case TypeByte:
		if len(buf) < 1 {
			return 0, ErrNoSpace
		}
		buf[0] = value.(byte)
		return 1, nil
	case TypeTwoByte:
		if len(buf) < 2 {
			return 0, ErrNoSpace
		}
		wire.PutUint16(buf, value.(uint16))
		return 2, nil
	case TypeFourByte:
		if len(buf) < 4 {
			return 0, ErrNoSpace
		}
		wire.PutUint32(buf, value.(uint32))
		return 4, nil
	case TypeVarInt:
		n, err := wire.PutVarInt(buf, value.(uint32))
		if err != nil {
			return 0, ErrNoSpace
		}
		return n, nil
	case TypeUTF8String:
		n, err := wire.PutString(buf, value.(string))
		if err != nil {
			return 0, ErrNoSpace
		}
		return n, nil
	case TypeUTF8Pair:
		p := value.(Pair)
		n1, err := wire.PutString(buf, p.Key)
		if err != nil {
			return 0, ErrNoSpace
		}
		n2, err := wire.PutString(buf[n1:], p.Value)
		if err != nil {
			return 0, ErrNoSpace
		}
		return n1 + n2, nil
	case TypeBinary:
		n, err := wire.PutBinary(buf, value.([]byte))
		if err != nil {
			return 0, ErrNoSpace
		}
		return n, nil
	default:
		return 0, ErrWrongType
	}
}

// --- Typed, validated wrappers -------------------------------------------
//
// Each wrapper enforces the value-range rule (if any) from spec.md §4.2
// before delegating to add. hint is variadic so callers that don't need
// the per-packet-type allow-list check (e.g. a generic relay) may omit it,
// matching the "[packet_type_hint]" optionality in the spec's builder
// contract.

func (b *Builder) AddPayloadFormatIndicator(v byte, hint ...Context) error {
	if v > 1 {
		return ErrOutOfRange
	}
	return b.add(PayloadFormatIndicator, v, hint)
}

func (b *Builder) AddMessageExpiryInterval(v uint32, hint ...Context) error {
	return b.add(MessageExpiryInterval, v, hint)
}

func (b *Builder) AddContentType(v string, hint ...Context) error {
	return b.add(ContentType, v, hint)
}

func (b *Builder) AddResponseTopic(v string, hint ...Context) error {
	return b.add(ResponseTopic, v, hint)
}

func (b *Builder) AddCorrelationData(v []byte, hint ...Context) error {
	return b.add(CorrelationData, v, hint)
}

func (b *Builder) AddSubscriptionIdentifier(v uint32, hint ...Context) error {
	if v == 0 {
		return ErrOutOfRange
	}
	return b.add(SubscriptionIdentifier, v, hint)
}

func (b *Builder) AddSessionExpiryInterval(v uint32, hint ...Context) error {
	return b.add(SessionExpiryInterval, v, hint)
}

func (b *Builder) AddAssignedClientIdentifier(v string, hint ...Context) error {
	return b.add(AssignedClientIdentifier, v, hint)
}

func (b *Builder) AddServerKeepAlive(v uint16, hint ...Context) error {
	return b.add(ServerKeepAlive, v, hint)
}

func (b *Builder) AddAuthenticationMethod(v string, hint ...Context) error {
	return b.add(AuthenticationMethod, v, hint)
}

func (b *Builder) AddAuthenticationData(v []byte, hint ...Context) error {
	return b.add(AuthenticationData, v, hint)
}

func (b *Builder) AddRequestProblemInformation(v bool, hint ...Context) error {
	return b.add(RequestProblemInformation, boolByte(v), hint)
}

func (b *Builder) AddWillDelayInterval(v uint32, hint ...Context) error {
	return b.add(WillDelayInterval, v, hint)
}

func (b *Builder) AddRequestResponseInformation(v bool, hint ...Context) error {
	return b.add(RequestResponseInformation, boolByte(v), hint)
}

func (b *Builder) AddResponseInformation(v string, hint ...Context) error {
	return b.add(ResponseInformation, v, hint)
}

func (b *Builder) AddServerReference(v string, hint ...Context) error {
	return b.add(ServerReference, v, hint)
}

func (b *Builder) AddReasonString(v string, hint ...Context) error {
	return b.add(ReasonString, v, hint)
}

func (b *Builder) AddReceiveMaximum(v uint16, hint ...Context) error {
	if v == 0 {
		return ErrOutOfRange
	}
	return b.add(ReceiveMaximum, v, hint)
}

func (b *Builder) AddTopicAliasMaximum(v uint16, hint ...Context) error {
	return b.add(TopicAliasMaximum, v, hint)
}

func (b *Builder) AddTopicAlias(v uint16, hint ...Context) error {
	if v == 0 {
		return ErrOutOfRange
	}
	return b.add(TopicAlias, v, hint)
}

func (b *Builder) AddMaximumQoS(v byte, hint ...Context) error {
	if v > 1 {
		return ErrOutOfRange
	}
	return b.add(MaximumQoS, v, hint)
}

func (b *Builder) AddRetainAvailable(v byte, hint ...Context) error {
	if v > 1 {
		return ErrOutOfRange
	}
	return b.add(RetainAvailable, v, hint)
}

// AddUserProperty may be called arbitrarily many times per spec.md §4.2;
// it is the one property Table marks Multiple, so add never consults or
// sets a duplication slot for it.
func (b *Builder) AddUserProperty(key, value string, hint ...Context) error {
	return b.add(UserProperty, Pair{Key: key, Value: value}, hint)
}

func (b *Builder) AddMaximumPacketSize(v uint32, hint ...Context) error {
	if v == 0 {
		return ErrOutOfRange
	}
	return b.add(MaximumPacketSize, v, hint)
}

func (b *Builder) AddWildcardSubAvailable(v byte, hint ...Context) error {
	if v > 1 {
		return ErrOutOfRange
	}
	return b.add(WildcardSubAvailable, v, hint)
}

func (b *Builder) AddSubscriptionIDAvailable(v byte, hint ...Context) error {
	if v > 1 {
		return ErrOutOfRange
	}
	return b.add(SubscriptionIDAvailable, v, hint)
}

func (b *Builder) AddSharedSubAvailable(v byte, hint ...Context) error {
	if v > 1 {
		return ErrOutOfRange
	}
	return b.add(SharedSubAvailable, v, hint)
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
