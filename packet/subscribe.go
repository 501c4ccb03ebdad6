package packet

import "github.com/axmq/codec5/wire"

func subscriptionOptionsByte(s *Subscription) (byte, error) {
	if !s.QoS.IsValid() {
		return 0, badParameter(ErrInvalidQoS)
	}
	if s.RetainHandling > 2 {
		return 0, badParameter(ErrInvalidFlags)
	}
	b := byte(s.QoS)
	if s.NoLocal {
		b |= 1 << 2
	}
	if s.RetainAsPublished {
		b |= 1 << 3
	}
	b |= s.RetainHandling << 4
	return b, nil
}

// SizeSubscribe computes the Remaining Length and total size of a
// SUBSCRIBE packet.
func SizeSubscribe(info *SubscribeInfo) (remainingLength uint32, total int, err error) {
	if info.PacketID == 0 {
		return 0, 0, badParameter(ErrZeroPacketID)
	}
	if len(info.Subscriptions) == 0 {
		return 0, 0, badParameter(ErrEmptyTopicFilterList)
	}

	n := 2 /* packet id */ + varIntFramedLen(info.Props)
	for i := range info.Subscriptions {
		s := &info.Subscriptions[i]
		if s.TopicFilter == "" {
			return 0, 0, badParameter(ErrEmptyTopicFilter)
		}
		n += wire.SizeString(s.TopicFilter) + 1
	}

	if uint64(n) > uint64(wire.MaxVarInt) {
		return 0, 0, badParameter(ErrShortBuffer)
	}
	remainingLength = uint32(n)
	total = SizeFixedHeader(remainingLength) + n
	return remainingLength, total, nil
}

// SerializeSubscribe writes a SUBSCRIBE packet into buf.
func SerializeSubscribe(buf []byte, info *SubscribeInfo) (int, error) {
	remainingLength, total, err := SizeSubscribe(info)
	if err != nil {
		return 0, err
	}
	if len(buf) < total {
		return 0, noMemory(ErrShortBuffer)
	}

	off, err := EncodeFixedHeader(buf, SUBSCRIBE, 0x02, remainingLength)
	if err != nil {
		return 0, err
	}

	wire.PutUint16(buf[off:], info.PacketID)
	off += 2

	n, err := putPropertyBlock(buf[off:], info.Props)
	if err != nil {
		return 0, err
	}
	off += n

	for i := range info.Subscriptions {
		s := &info.Subscriptions[i]
		opts, err := subscriptionOptionsByte(s)
		if err != nil {
			return 0, err
		}
		n, err = wire.PutString(buf[off:], s.TopicFilter)
		if err != nil {
			return 0, noMemory(err)
		}
		off += n
		buf[off] = opts
		off++
	}

	return off, nil
}

// SizeUnsubscribe computes the Remaining Length and total size of an
// UNSUBSCRIBE packet.
func SizeUnsubscribe(info *UnsubscribeInfo) (remainingLength uint32, total int, err error) {
	if info.PacketID == 0 {
		return 0, 0, badParameter(ErrZeroPacketID)
	}
	if len(info.TopicFilters) == 0 {
		return 0, 0, badParameter(ErrEmptyTopicFilterList)
	}

	n := 2 + varIntFramedLen(info.Props)
	for _, f := range info.TopicFilters {
		if f == "" {
			return 0, 0, badParameter(ErrEmptyTopicFilter)
		}
		n += wire.SizeString(f)
	}

	if uint64(n) > uint64(wire.MaxVarInt) {
		return 0, 0, badParameter(ErrShortBuffer)
	}
	remainingLength = uint32(n)
	total = SizeFixedHeader(remainingLength) + n
	return remainingLength, total, nil
}

// SerializeUnsubscribe writes an UNSUBSCRIBE packet into buf.
func SerializeUnsubscribe(buf []byte, info *UnsubscribeInfo) (int, error) {
	remainingLength, total, err := SizeUnsubscribe(info)
	if err != nil {
		return 0, err
	}
	if len(buf) < total {
		return 0, noMemory(ErrShortBuffer)
	}

	off, err := EncodeFixedHeader(buf, UNSUBSCRIBE, 0x02, remainingLength)
	if err != nil {
		return 0, err
	}

	wire.PutUint16(buf[off:], info.PacketID)
	off += 2

	n, err := putPropertyBlock(buf[off:], info.Props)
	if err != nil {
		return 0, err
	}
	off += n

	for _, f := range info.TopicFilters {
		n, err = wire.PutString(buf[off:], f)
		if err != nil {
			return 0, noMemory(err)
		}
		off += n
	}

	return off, nil
}
