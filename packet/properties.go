package packet

import "github.com/axmq/codec5/property"

// validatePropertyBlock walks props — the raw bytes between a property
// block's length prefix and its end — with a property.Reader bound to
// ctx. property.Reader.Next already rejects an identifier unknown to
// property.Table, one not allowed in ctx, and a second sighting of a
// non-repeatable property; this adds the identifier-specific range
// checks a generic Next does not itself enforce (spec.md §4.4, §8
// testable property 7): TopicAlias = 0, PayloadFormatIndicator outside
// {0,1}, and a zero Subscription Identifier.
func validatePropertyBlock(props []byte, ctx property.Context) error {
	reader := property.NewReader(props)
	for !reader.AtEnd() {
		id, value, err := reader.Next(ctx)
		if err != nil {
			return malformed(err)
		}
		switch id {
		case property.PayloadFormatIndicator:
			if value.(byte) > 1 {
				return malformed(property.ErrOutOfRange)
			}
		case property.TopicAlias:
			if value.(uint16) == 0 {
				return malformed(property.ErrOutOfRange)
			}
		case property.SubscriptionIdentifier:
			if value.(uint32) == 0 {
				return malformed(property.ErrOutOfRange)
			}
		}
	}
	return nil
}
