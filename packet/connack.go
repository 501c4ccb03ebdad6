package packet

import (
	"github.com/axmq/codec5/property"
)

// connackReasons is the set of reason codes MQTT 5.0 §3.2.2.2 defines for
// CONNACK.
var connackReasons = map[ReasonCode]bool{
	ReasonSuccess:                     true,
	ReasonUnspecifiedError:            true,
	ReasonMalformedPacket:             true,
	ReasonProtocolError:               true,
	ReasonImplementationSpecificError: true,
	ReasonUnsupportedProtocolVersion:  true,
	ReasonClientIdentifierNotValid:    true,
	ReasonBadUsernameOrPassword:       true,
	ReasonNotAuthorized:               true,
	ReasonServerUnavailable:           true,
	ReasonServerBusy:                  true,
	ReasonBanned:                      true,
	ReasonBadAuthenticationMethod:     true,
	ReasonTopicNameInvalid:            true,
	ReasonPacketTooLarge:              true,
	ReasonQuotaExceeded:               true,
	ReasonPayloadFormatInvalid:        true,
	ReasonRetainNotSupported:          true,
	ReasonQoSNotSupported:             true,
	ReasonUseAnotherServer:            true,
	ReasonServerMoved:                 true,
	ReasonConnectionRateExceeded:      true,
}

// DeserializeConnack parses a CONNACK packet's remaining data.
// responseInfoRequested must reflect whether the matching CONNECT set
// Request Response Information, since the Response Information property
// is only legal on the CONNACK answering such a request (spec.md §4.4).
func DeserializeConnack(data []byte, responseInfoRequested bool) (*ConnackInfo, error) {
	if len(data) < 3 {
		return nil, malformed(ErrTruncated)
	}

	flags := data[0]
	if flags&0xFE != 0 {
		return nil, malformed(ErrUnexpectedSessionFlag)
	}
	sessionPresent := flags&0x01 != 0

	reason := ReasonCode(data[1])
	if !connackReasons[reason] {
		return nil, malformed(ErrInvalidFlags)
	}
	if sessionPresent && reason != ReasonSuccess {
		return nil, malformed(ErrSessionPresentMismatch)
	}

	reader, consumed, err := property.ReadBlock(data[2:])
	if err != nil {
		return nil, malformed(err)
	}
	if 2+consumed != len(data) {
		return nil, malformed(ErrTrailingBytes)
	}

	props := DefaultConnectionProperties()
	props.RequestResponseInfo = responseInfoRequested

	sawResponseInfo := false
	for !reader.AtEnd() {
		id, value, err := reader.Next(property.CtxConnack)
		if err != nil {
			return nil, malformed(err)
		}
		switch id {
		case property.SessionExpiryInterval:
			props.SessionExpiryInterval = value.(uint32)
		case property.ReceiveMaximum:
			v := value.(uint16)
			if v == 0 {
				return nil, malformed(ErrInvalidFlags)
			}
			props.ReceiveMaximum = v
		case property.MaximumQoS:
			v := value.(byte)
			if v > 1 {
				return nil, malformed(ErrInvalidQoS)
			}
			props.MaximumQoS = v
		case property.RetainAvailable:
			v := value.(byte)
			if v > 1 {
				return nil, malformed(ErrInvalidFlags)
			}
			props.RetainAvailable = v
		case property.MaximumPacketSize:
			v := value.(uint32)
			if v == 0 {
				return nil, malformed(ErrInvalidFlags)
			}
			props.MaximumPacketSize = v
		case property.AssignedClientIdentifier:
			props.AssignedClientID = value.(string)
		case property.TopicAliasMaximum:
			props.TopicAliasMaximum = value.(uint16)
		case property.ReasonString:
			props.ReasonString = value.(string)
		case property.WildcardSubAvailable:
			props.WildcardSubAvailable = value.(byte)
		case property.SubscriptionIDAvailable:
			props.SubscriptionIDAvailable = value.(byte)
		case property.SharedSubAvailable:
			props.SharedSubAvailable = value.(byte)
		case property.ServerKeepAlive:
			props.ServerKeepAlive = value.(uint16)
		case property.ResponseInformation:
			sawResponseInfo = true
			props.ResponseInformation = value.(string)
		case property.ServerReference:
			props.ServerReference = value.(string)
		case property.AuthenticationMethod:
			props.AuthenticationMethod = value.(string)
		case property.AuthenticationData:
			props.AuthenticationData = value.([]byte)
		case property.UserProperty:
			// User properties are not copied into ConnackInfo; they
			// remain only in the caller's own data slice
			// (data[2:2+consumed]).
		default:
			return nil, malformed(property.ErrNotAllowed)
		}
	}

	if sawResponseInfo && !responseInfoRequested {
		return nil, malformed(ErrUnrequestedResponseInfo)
	}

	return &ConnackInfo{
		SessionPresent: sessionPresent,
		ReasonCode:     reason,
		Properties:     props,
	}, nil
}

// SizeConnack and SerializeConnack build CONNACK bytes, the
// server-to-client direction, for symmetry with DeserializeConnack;
// nothing else in this module calls them.
func SizeConnack(sessionPresent bool, reason ReasonCode, props []byte) (remainingLength uint32, total int) {
	n := 2 + varIntFramedLen(props)
	remainingLength = uint32(n)
	total = SizeFixedHeader(remainingLength) + n
	return remainingLength, total
}

func SerializeConnack(buf []byte, sessionPresent bool, reason ReasonCode, props []byte) (int, error) {
	remainingLength, total := SizeConnack(sessionPresent, reason, props)
	if len(buf) < total {
		return 0, noMemory(ErrShortBuffer)
	}
	off, err := EncodeFixedHeader(buf, CONNACK, 0, remainingLength)
	if err != nil {
		return 0, err
	}
	if sessionPresent {
		buf[off] = 0x01
	} else {
		buf[off] = 0x00
	}
	off++
	buf[off] = byte(reason)
	off++
	n, err := putPropertyBlock(buf[off:], props)
	if err != nil {
		return 0, err
	}
	off += n
	return off, nil
}
