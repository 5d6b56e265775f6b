package hashkit

import (
	"fmt"
	"math"
	"reflect"

	cbor "github.com/fxamacker/cbor/v2"
)

// Hashable lets a type supply its own stable byte form. Two values that
// should hash equally must return identical bytes.
//
// Types without it hash by structure, unexported fields included. Channels,
// funcs and unsafe pointers contribute only their type, so values differing
// only in such fields hash equally; implement Hashable to tell them apart.
type Hashable interface {
	HashKey() []byte
}

// stringTerminator follows string and byte-slice content so that adjacent
// fields of a composite key cannot shift bytes between each other.
const stringTerminator = 0xff

// detEnc encodes composite items with sorted map keys and shortest-form
// integers, so structurally equal values always produce the same bytes.
var detEnc = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("hashkit: deterministic cbor mode: %v", err))
	}
	return em
}()

// writeItem feeds the structural content of item into m.
// Scalars take a fixed-width fast path. Composites go through deterministic
// CBOR unless their type holds something CBOR would drop or reject, in which
// case appendValue walks them with reflect.
func writeItem(m *mixer, item any) {
	switch v := item.(type) {
	case nil:
		_, _ = m.d.Write([]byte{0})
	case Hashable:
		_, _ = m.d.Write(v.HashKey())
	case string:
		_, _ = m.d.WriteString(v)
		_, _ = m.d.Write([]byte{stringTerminator})
	case []byte:
		_, _ = m.d.Write(v)
		_, _ = m.d.Write([]byte{stringTerminator})
	case bool:
		if v {
			_, _ = m.d.Write([]byte{1})
		} else {
			_, _ = m.d.Write([]byte{0})
		}
	case int:
		m.writeUint64(uint64(v))
	case int8:
		_, _ = m.d.Write([]byte{byte(v)})
	case int16:
		m.writeUint16(uint16(v))
	case int32:
		m.writeUint32(uint32(v))
	case int64:
		m.writeUint64(uint64(v))
	case uint:
		m.writeUint64(uint64(v))
	case uint8:
		_, _ = m.d.Write([]byte{v})
	case uint16:
		m.writeUint16(v)
	case uint32:
		m.writeUint32(v)
	case uint64:
		m.writeUint64(v)
	case uintptr:
		m.writeUint64(uint64(v))
	case float32:
		m.writeUint32(math.Float32bits(v))
	case float64:
		m.writeUint64(math.Float64bits(v))
	default:
		rv := reflect.ValueOf(v)
		if !needsWalk(rv.Type()) {
			if b, err := detEnc.Marshal(v); err == nil {
				_, _ = m.d.Write(b)
				return
			}
		}
		_, _ = m.d.Write(appendValue(nil, rv, 0))
	}
}
