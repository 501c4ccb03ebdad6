package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeSubscribe(t *testing.T) {
	info := &SubscribeInfo{
		PacketID: 10,
		Subscriptions: []Subscription{
			{TopicFilter: "a/b", QoS: QoS1},
			{TopicFilter: "c/#", QoS: QoS0, NoLocal: true, RetainHandling: 2},
		},
	}
	_, total, err := SizeSubscribe(info)
	require.NoError(t, err)
	buf := make([]byte, total)
	n, err := SerializeSubscribe(buf, info)
	require.NoError(t, err)
	assert.Equal(t, byte(0x82), buf[0])
	assert.Equal(t, total, n)
}

func TestSerializeSubscribeRejectsEmptyList(t *testing.T) {
	info := &SubscribeInfo{PacketID: 1}
	_, _, err := SizeSubscribe(info)
	assert.ErrorIs(t, err, ErrEmptyTopicFilterList)
}

func TestSerializeSubscribeRejectsZeroPacketID(t *testing.T) {
	info := &SubscribeInfo{Subscriptions: []Subscription{{TopicFilter: "a", QoS: QoS0}}}
	_, _, err := SizeSubscribe(info)
	assert.ErrorIs(t, err, ErrZeroPacketID)
}

func TestSerializeSubscribeRejectsEmptyFilter(t *testing.T) {
	info := &SubscribeInfo{PacketID: 1, Subscriptions: []Subscription{{TopicFilter: ""}}}
	_, _, err := SizeSubscribe(info)
	assert.ErrorIs(t, err, ErrEmptyTopicFilter)
}

func TestSerializeUnsubscribe(t *testing.T) {
	info := &UnsubscribeInfo{PacketID: 5, TopicFilters: []string{"a/b", "c/d"}}
	_, total, err := SizeUnsubscribe(info)
	require.NoError(t, err)
	buf := make([]byte, total)
	n, err := SerializeUnsubscribe(buf, info)
	require.NoError(t, err)
	assert.Equal(t, byte(0xA2), buf[0])
	assert.Equal(t, total, n)
}

func TestSubscriptionOptionsByteEncoding(t *testing.T) {
	s := &Subscription{QoS: QoS2, NoLocal: true, RetainAsPublished: true, RetainHandling: 1}
	b, err := subscriptionOptionsByte(s)
	require.NoError(t, err)
	assert.Equal(t, byte(0b00011110), b)
}
