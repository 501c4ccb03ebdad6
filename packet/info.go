package packet

// ConnectInfo carries everything a caller supplies to serialize a
// CONNECT packet (spec.md §3 "Connect info").
type ConnectInfo struct {
	CleanStart bool
	KeepAlive  uint16
	ClientID   string

	Will          bool
	WillQoS       QoS
	WillRetain    bool
	WillTopic     string
	WillPayload   []byte
	WillProps     []byte // pre-built property block bytes (property.Builder.Bytes())

	Username     string
	HasUsername  bool
	Password     []byte
	HasPassword  bool

	Props []byte // pre-built CONNECT property block bytes
}

// PublishInfo carries the parameters of an outgoing or parsed PUBLISH
// packet (spec.md §3 "Publish info").
type PublishInfo struct {
	QoS      QoS
	Retain   bool
	Dup      bool
	Topic    string
	PacketID uint16
	Payload  []byte
	Props    []byte
}

// Subscription is a single (topic filter, options) pair inside a
// SUBSCRIBE packet, or the parsed equivalent.
type Subscription struct {
	TopicFilter       string
	QoS               QoS
	NoLocal           bool
	RetainAsPublished bool
	RetainHandling    byte // 0,1,2; bits 4-5 of the options byte
}

// SubscribeInfo carries the parameters of an outgoing SUBSCRIBE packet.
type SubscribeInfo struct {
	PacketID      uint16
	Props         []byte
	Subscriptions []Subscription
}

// UnsubscribeInfo carries the parameters of an outgoing UNSUBSCRIBE
// packet.
type UnsubscribeInfo struct {
	PacketID     uint16
	Props        []byte
	TopicFilters []string
}

// AckInfo is the shared shape of PUBACK/PUBREC/PUBREL/PUBCOMP: a packet
// id, a reason code (defaulting to Success), and an optional property
// block. The short 2-byte wire form omits both the reason code and the
// properties.
type AckInfo struct {
	PacketID   uint16
	ReasonCode ReasonCode
	Props      []byte
}

// SubackInfo is the parsed result of a SUBACK packet.
type SubackInfo struct {
	PacketID    uint16
	Props       []byte
	ReasonCodes []ReasonCode
}

// UnsubackInfo is the parsed result of an UNSUBACK packet.
type UnsubackInfo struct {
	PacketID    uint16
	Props       []byte
	ReasonCodes []ReasonCode
}

// ConnackInfo is the parsed result of a CONNACK packet, carrying both the
// raw acknowledgement and the negotiated ConnectionProperties.
type ConnackInfo struct {
	SessionPresent bool
	ReasonCode     ReasonCode
	Properties     ConnectionProperties
}

// DisconnectInfo is the parameters of an outgoing or parsed DISCONNECT
// packet.
type DisconnectInfo struct {
	ReasonCode ReasonCode
	Props      []byte
}

// AuthInfo is the parameters of an outgoing or parsed AUTH packet.
type AuthInfo struct {
	ReasonCode ReasonCode
	Props      []byte
}

// ConnectionProperties is the set of connection-level properties a
// CONNACK may carry, pre-seeded with the MQTT 5.0 defaults a client must
// assume for anything the server omits (spec.md §6).
type ConnectionProperties struct {
	SessionExpiryInterval uint32
	ReceiveMaximum        uint16
	MaximumQoS            byte
	RetainAvailable       byte
	MaximumPacketSize     uint32
	AssignedClientID      string
	TopicAliasMaximum     uint16
	ReasonString          string
	WildcardSubAvailable  byte
	SubscriptionIDAvailable byte
	SharedSubAvailable    byte
	ServerKeepAlive       uint16
	ResponseInformation   string
	ServerReference       string
	AuthenticationMethod  string
	AuthenticationData    []byte

	// RequestResponseInfo/RequestProblemInfo are echoes of what the
	// client requested on CONNECT; the parser needs them to enforce
	// "Response Information only if requested" (spec.md §4.4).
	RequestResponseInfo bool
	RequestProblemInfo  bool
}

// DefaultConnectionProperties returns the MQTT 5.0 default values a
// client assumes for any CONNACK property the server did not send
// (spec.md §6).
func DefaultConnectionProperties() ConnectionProperties {
	return ConnectionProperties{
		SessionExpiryInterval:   0,
		ReceiveMaximum:          65535,
		MaximumQoS:              2,
		RetainAvailable:         1,
		MaximumPacketSize:       268435460,
		TopicAliasMaximum:       0,
		WildcardSubAvailable:    1,
		SubscriptionIDAvailable: 1,
		SharedSubAvailable:      1,
		ServerKeepAlive:         65535,
		RequestResponseInfo:     false,
		RequestProblemInfo:      true,
	}
}
