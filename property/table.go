// Package property implements the MQTT 5.0 property section: the
// identifier table (wire type, duplicate-suppression slot, and
// per-packet-type allow-list), an append-only validating Builder, and a
// Reader that iterates an encoded property block.
//
// The table is the single source of truth the design notes in spec.md §9
// ask for: both Builder and Reader consult it, instead of each packet type
// repeating its own switch over identifiers.
package property

import "github.com/axmq/codec5/wire"

// ID is an MQTT 5.0 property identifier (MQTT 5.0 §2.2.2.2).
type ID byte

const (
	PayloadFormatIndicator     ID = 0x01
	MessageExpiryInterval      ID = 0x02
	ContentType                ID = 0x03
	ResponseTopic              ID = 0x08
	CorrelationData            ID = 0x09
	SubscriptionIdentifier     ID = 0x0B
	SessionExpiryInterval      ID = 0x11
	AssignedClientIdentifier   ID = 0x12
	ServerKeepAlive            ID = 0x13
	AuthenticationMethod       ID = 0x15
	AuthenticationData         ID = 0x16
	RequestProblemInformation  ID = 0x17
	WillDelayInterval          ID = 0x18
	RequestResponseInformation ID = 0x19
	ResponseInformation        ID = 0x1A
	ServerReference            ID = 0x1C
	ReasonString               ID = 0x1F
	ReceiveMaximum             ID = 0x21
	TopicAliasMaximum          ID = 0x22
	TopicAlias                 ID = 0x23
	MaximumQoS                 ID = 0x24
	RetainAvailable            ID = 0x25
	UserProperty               ID = 0x26
	MaximumPacketSize          ID = 0x27
	WildcardSubAvailable       ID = 0x28
	SubscriptionIDAvailable    ID = 0x29
	SharedSubAvailable         ID = 0x2A
)

var idNames = map[ID]string{
	PayloadFormatIndicator:     "PayloadFormatIndicator",
	MessageExpiryInterval:      "MessageExpiryInterval",
	ContentType:                "ContentType",
	ResponseTopic:              "ResponseTopic",
	CorrelationData:            "CorrelationData",
	SubscriptionIdentifier:     "SubscriptionIdentifier",
	SessionExpiryInterval:      "SessionExpiryInterval",
	AssignedClientIdentifier:   "AssignedClientIdentifier",
	ServerKeepAlive:            "ServerKeepAlive",
	AuthenticationMethod:       "AuthenticationMethod",
	AuthenticationData:         "AuthenticationData",
	RequestProblemInformation:  "RequestProblemInformation",
	WillDelayInterval:          "WillDelayInterval",
	RequestResponseInformation: "RequestResponseInformation",
	ResponseInformation:        "ResponseInformation",
	ServerReference:            "ServerReference",
	ReasonString:               "ReasonString",
	ReceiveMaximum:             "ReceiveMaximum",
	TopicAliasMaximum:          "TopicAliasMaximum",
	TopicAlias:                 "TopicAlias",
	MaximumQoS:                 "MaximumQoS",
	RetainAvailable:            "RetainAvailable",
	UserProperty:               "UserProperty",
	MaximumPacketSize:          "MaximumPacketSize",
	WildcardSubAvailable:       "WildcardSubAvailable",
	SubscriptionIDAvailable:    "SubscriptionIDAvailable",
	SharedSubAvailable:         "SharedSubAvailable",
}

// String returns the human-readable property name, or "UNKNOWN".
func (id ID) String() string {
	if name, ok := idNames[id]; ok {
		return name
	}
	return "UNKNOWN"
}

// Type is the wire encoding of a property's value.
type Type byte

const (
	TypeByte       Type = iota // u8
	TypeTwoByte                // u16, big-endian
	TypeFourByte               // u32, big-endian
	TypeVarInt                 // Variable Byte Integer
	TypeUTF8String             // length-prefixed UTF-8 string
	TypeUTF8Pair               // two length-prefixed UTF-8 strings (User Property)
	TypeBinary                 // length-prefixed binary data
)

// Context identifies where a property is being written or read from: the
// fifteen MQTT control packet types, plus Will, which is not a wire packet
// type but carries its own property block nested inside CONNECT.
type Context byte

const (
	CtxConnect Context = iota + 1
	CtxConnack
	CtxPublish
	CtxPuback
	CtxPubrec
	CtxPubrel
	CtxPubcomp
	CtxSubscribe
	CtxSuback
	CtxUnsubscribe
	CtxUnsuback
	CtxPingreq
	CtxPingresp
	CtxDisconnect
	CtxAuth
	CtxWill
)

func (c Context) bit() uint32 { return 1 << uint(c) }

// ctxSet ORs the bits of the given contexts into one allow-list mask.
func ctxSet(cs ...Context) uint32 {
	var mask uint32
	for _, c := range cs {
		mask |= c.bit()
	}
	return mask
}

var allContexts = ctxSet(CtxConnect, CtxConnack, CtxPublish, CtxPuback, CtxPubrec,
	CtxPubrel, CtxPubcomp, CtxSubscribe, CtxSuback, CtxUnsubscribe, CtxUnsuback,
	CtxPingreq, CtxPingresp, CtxDisconnect, CtxAuth, CtxWill)

// Spec is the central per-property record: its wire type, its duplicate-
// suppression slot bit (spec.md §3, "28 distinct slot positions"), whether
// it may appear more than once, and the packet contexts that may carry it.
type Spec struct {
	Type     Type
	Slot     uint32 // this property's bit (1 << slot) in a Builder's field-set bitset; 0 for Multiple properties
	Multiple bool
	Contexts uint32 // bitmask of Context
}

// Table maps every known property identifier to its Spec. It is consulted
// by both Builder and Reader so the allow-list and slot assignment exist in
// exactly one place, per spec.md §9's design note about deduplicating the
// two divergent allow-list switches found in the source.
var Table = map[ID]Spec{
	PayloadFormatIndicator: {TypeByte, 1 << 11, false, ctxSet(CtxPublish, CtxWill)},
	MessageExpiryInterval:  {TypeFourByte, 1 << 12, false, ctxSet(CtxPublish, CtxWill)},
	ContentType:            {TypeUTF8String, 1 << 16, false, ctxSet(CtxPublish, CtxWill)},
	ResponseTopic:          {TypeUTF8String, 1 << 14, false, ctxSet(CtxPublish, CtxWill)},
	CorrelationData:        {TypeBinary, 1 << 15, false, ctxSet(CtxPublish, CtxWill)},
	SubscriptionIdentifier: {TypeVarInt, 1 << 1, false, ctxSet(CtxPublish, CtxSubscribe)},
	SessionExpiryInterval:  {TypeFourByte, 1 << 2, false, ctxSet(CtxConnect, CtxConnack, CtxDisconnect)},
	AssignedClientIdentifier: {
		TypeUTF8String, 1 << 19, false, ctxSet(CtxConnack),
	},
	ServerKeepAlive:           {TypeTwoByte, 1 << 20, false, ctxSet(CtxConnack)},
	AuthenticationMethod:      {TypeUTF8String, 1 << 9, false, ctxSet(CtxConnect, CtxConnack, CtxAuth)},
	AuthenticationData:        {TypeBinary, 1 << 10, false, ctxSet(CtxConnect, CtxConnack, CtxAuth)},
	RequestProblemInformation: {TypeByte, 1 << 7, false, ctxSet(CtxConnect)},
	WillDelayInterval:         {TypeFourByte, 1 << 18, false, ctxSet(CtxWill)},
	RequestResponseInformation: {
		TypeByte, 1 << 6, false, ctxSet(CtxConnect),
	},
	ResponseInformation: {TypeUTF8String, 1 << 21, false, ctxSet(CtxConnack)},
	ServerReference:     {TypeUTF8String, 1 << 22, false, ctxSet(CtxConnack, CtxDisconnect)},
	ReasonString: {
		TypeUTF8String, 1 << 17, false,
		ctxSet(CtxConnack, CtxPuback, CtxPubrec, CtxPubrel, CtxPubcomp, CtxSuback, CtxUnsuback, CtxDisconnect, CtxAuth),
	},
	ReceiveMaximum:    {TypeTwoByte, 1 << 3, false, ctxSet(CtxConnect, CtxConnack)},
	TopicAliasMaximum: {TypeTwoByte, 1 << 5, false, ctxSet(CtxConnect, CtxConnack)},
	TopicAlias:        {TypeTwoByte, 1 << 13, false, ctxSet(CtxPublish)},
	MaximumQoS:        {TypeByte, 1 << 23, false, ctxSet(CtxConnack)},
	RetainAvailable:   {TypeByte, 1 << 24, false, ctxSet(CtxConnack)},
	UserProperty:      {TypeUTF8Pair, 0, true, allContexts},
	MaximumPacketSize: {TypeFourByte, 1 << 4, false, ctxSet(CtxConnect, CtxConnack)},
	WildcardSubAvailable: {
		TypeByte, 1 << 25, false, ctxSet(CtxConnack),
	},
	SubscriptionIDAvailable: {TypeByte, 1 << 26, false, ctxSet(CtxConnack)},
	SharedSubAvailable:      {TypeByte, 1 << 27, false, ctxSet(CtxConnack)},
}

// sizeOfValue returns the encoded size of a property's value for the given
// Type, given the value itself (needed for variable-length types).
func sizeOfValue(t Type, v interface{}) int {
	switch t {
	case TypeByte:
		return 1
	case TypeTwoByte:
		return 2
	case TypeFourByte:
		return 4
	case TypeVarInt:
		return wire.SizeVarInt(v.(uint32))
	case TypeUTF8String:
		return wire.SizeString(v.(string))
	case TypeUTF8Pair:
		p := v.(Pair)
		return wire.SizeString(p.Key) + wire.SizeString(p.Value)
	case TypeBinary:
		return wire.SizeBinary(v.([]byte))
	default:
		return 0
	}
}

// Pair is a MQTT User Property key/value pair.
type Pair struct {
	Key   string
	Value string
}
