package property

import (
	"testing"
)

// FuzzReaderNext exercises Reader.Next over arbitrary property blocks: it
// should never panic, and on success the identifier it reports must
// actually be allowed for the context handed in.
func FuzzReaderNext(f *testing.F) {
	b := NewBuilder(make([]byte, 128))
	_ = b.AddPayloadFormatIndicator(1, CtxPublish)
	_ = b.AddContentType("text/plain", CtxPublish)
	_ = b.AddUserProperty("k", "v", CtxPublish)
	f.Add(b.Bytes(), byte(CtxPublish))
	f.Add([]byte{byte(UserProperty)}, byte(CtxConnect))
	f.Add([]byte{0xFF, 0x00, 0x00}, byte(CtxConnack))
	f.Add([]byte{}, byte(CtxWill))

	f.Fuzz(func(t *testing.T, data []byte, ctxByte byte) {
		ctx := Context(ctxByte)
		r := NewReader(data)
		for {
			id, _, err := r.Next(ctx)
			if err != nil {
				return
			}
			spec, ok := Table[id]
			if !ok {
				t.Fatalf("Next returned identifier %v absent from Table", id)
			}
			if spec.Contexts&ctx.bit() == 0 {
				t.Fatalf("Next returned %v not allowed in context %v", id, ctx)
			}
			if r.AtEnd() {
				return
			}
		}
	})
}
