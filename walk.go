package hashkit

import (
	"bytes"
	"encoding/binary"
	"math"
	"reflect"
	"slices"
	"sync"
)

// maxWalkDepth bounds pointer chasing so cyclic values terminate.
const maxWalkDepth = 64

var hashableType = reflect.TypeFor[Hashable]()

// walkTypes caches whether a type must be hashed by appendValue instead of
// CBOR. Types are immutable, so entries never go stale.
var walkTypes sync.Map // reflect.Type -> bool

// needsWalk reports whether t holds anything CBOR would drop or reject:
// unexported struct fields, channels, funcs, complex numbers, or interface
// values whose dynamic content is only known at run time.
func needsWalk(t reflect.Type) bool {
	if v, ok := walkTypes.Load(t); ok {
		return v.(bool)
	}
	walk := typeNeedsWalk(t, map[reflect.Type]bool{})
	walkTypes.Store(t, walk)
	return walk
}

func typeNeedsWalk(t reflect.Type, seen map[reflect.Type]bool) bool {
	if seen[t] {
		return false
	}
	seen[t] = true

	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer,
		reflect.Complex64, reflect.Complex128, reflect.Interface:
		return true
	case reflect.Pointer, reflect.Slice, reflect.Array:
		return typeNeedsWalk(t.Elem(), seen)
	case reflect.Map:
		return typeNeedsWalk(t.Key(), seen) || typeNeedsWalk(t.Elem(), seen)
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() || typeNeedsWalk(f.Type, seen) {
				return true
			}
		}
	}
	return false
}

// appendValue appends a deterministic encoding of v to dst. Unlike CBOR it
// reads unexported fields. Channels, funcs and unsafe pointers contribute
// only their type, since their identity is not stable across processes.
func appendValue(dst []byte, v reflect.Value, depth int) []byte {
	if !v.IsValid() {
		return append(dst, 0)
	}
	if depth > maxWalkDepth {
		return append(dst, v.Type().String()...)
	}
	if v.CanInterface() && v.Type().Implements(hashableType) && !isNilRef(v) {
		return append(dst, v.Interface().(Hashable).HashKey()...)
	}

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return append(dst, 1)
		}
		return append(dst, 0)
	case reflect.Int8:
		return append(dst, byte(v.Int()))
	case reflect.Int16:
		return binary.LittleEndian.AppendUint16(dst, uint16(v.Int()))
	case reflect.Int32:
		return binary.LittleEndian.AppendUint32(dst, uint32(v.Int()))
	case reflect.Int, reflect.Int64:
		return binary.LittleEndian.AppendUint64(dst, uint64(v.Int()))
	case reflect.Uint8:
		return append(dst, byte(v.Uint()))
	case reflect.Uint16:
		return binary.LittleEndian.AppendUint16(dst, uint16(v.Uint()))
	case reflect.Uint32:
		return binary.LittleEndian.AppendUint32(dst, uint32(v.Uint()))
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return binary.LittleEndian.AppendUint64(dst, v.Uint())
	case reflect.Float32:
		return binary.LittleEndian.AppendUint32(dst, math.Float32bits(float32(v.Float())))
	case reflect.Float64:
		return binary.LittleEndian.AppendUint64(dst, math.Float64bits(v.Float()))
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(real(c)))
		return binary.LittleEndian.AppendUint64(dst, math.Float64bits(imag(c)))
	case reflect.String:
		dst = append(dst, v.String()...)
		return append(dst, stringTerminator)
	case reflect.Slice:
		if v.IsNil() {
			return append(dst, 0)
		}
		dst = append(dst, 1)
		dst = binary.LittleEndian.AppendUint64(dst, uint64(v.Len()))
		for i := range v.Len() {
			dst = appendValue(dst, v.Index(i), depth+1)
		}
		return dst
	case reflect.Array:
		for i := range v.Len() {
			dst = appendValue(dst, v.Index(i), depth+1)
		}
		return dst
	case reflect.Map:
		return appendMap(dst, v, depth)
	case reflect.Struct:
		for i := range v.NumField() {
			dst = appendValue(dst, v.Field(i), depth+1)
		}
		return dst
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return append(dst, 0)
		}
		dst = append(dst, 1)
		return appendValue(dst, v.Elem(), depth+1)
	default:
		return append(dst, v.Type().String()...)
	}
}

// appendMap encodes entries sorted by their encoded key, so iteration order
// never reaches the digest.
func appendMap(dst []byte, v reflect.Value, depth int) []byte {
	if v.IsNil() {
		return append(dst, 0)
	}
	type entry struct{ key, val []byte }

	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		entries = append(entries, entry{
			key: appendValue(nil, iter.Key(), depth+1),
			val: appendValue(nil, iter.Value(), depth+1),
		})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		if c := bytes.Compare(a.key, b.key); c != 0 {
			return c
		}
		return bytes.Compare(a.val, b.val)
	})

	dst = append(dst, 1)
	dst = binary.LittleEndian.AppendUint64(dst, uint64(len(entries)))
	for _, e := range entries {
		dst = append(dst, e.key...)
		dst = append(dst, e.val...)
	}
	return dst
}

func isNilRef(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return v.IsNil()
	}
	return false
}
