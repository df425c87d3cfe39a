// ABOUTME: Order-preserving encoding for composite index keys and entry values
// ABOUTME: Byte comparison of encoded keys matches column-by-column comparison

package shelfindex

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Value types. Each encoded value starts with its type tag.
const (
	typeBytes  = 1
	typeInt64  = 2
	typeUint64 = 3
)

// Key prefixes, one per tree.
const (
	prefixForward uint32 = 1
	prefixReverse uint32 = 2
)

var errCorrupt = errors.New("shelfindex: corrupt encoding")

// Value is one column of a composite key or record.
type Value struct {
	Type uint8
	Str  []byte
	I64  int64
	U64  uint64
}

func bytesValue(s string) Value  { return Value{Type: typeBytes, Str: []byte(s)} }
func int64Value(i int64) Value   { return Value{Type: typeInt64, I64: i} }
func uint64Value(u uint64) Value { return Value{Type: typeUint64, U64: u} }

// encodeValues writes vals so that bytes.Compare on two encodings orders
// them like their columns. Strings are escaped and zero terminated, so a
// shorter string sorts before any string it prefixes.
func encodeValues(out []byte, vals []Value) []byte {
	for _, v := range vals {
		out = append(out, v.Type)
		switch v.Type {
		case typeInt64:
			out = binary.BigEndian.AppendUint64(out, uint64(v.I64)+(1<<63))
		case typeUint64:
			out = binary.BigEndian.AppendUint64(out, v.U64)
		case typeBytes:
			out = appendEscaped(out, v.Str)
			out = append(out, 0)
		default:
			panic(fmt.Sprintf("shelfindex: unknown value type %d", v.Type))
		}
	}
	return out
}

// appendEscaped writes 0x00 as 0x01 0x01 and 0x01 as 0x01 0x02 so that the
// terminator stays the smallest byte.
func appendEscaped(out, s []byte) []byte {
	for _, b := range s {
		switch b {
		case 0:
			out = append(out, 1, 1)
		case 1:
			out = append(out, 1, 2)
		default:
			out = append(out, b)
		}
	}
	return out
}

func unescape(s []byte) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != 1 {
			out = append(out, s[i])
			continue
		}
		if i+1 >= len(s) {
			return nil, errCorrupt
		}
		i++
		out = append(out, s[i]-1)
	}
	return out, nil
}

func decodeValues(data []byte) ([]Value, error) {
	vals := make([]Value, 0, 8)
	pos := 0
	for pos < len(data) {
		typ := data[pos]
		pos++
		switch typ {
		case typeInt64, typeUint64:
			if pos+8 > len(data) {
				return nil, fmt.Errorf("%w: short integer at %d", errCorrupt, pos)
			}
			u := binary.BigEndian.Uint64(data[pos : pos+8])
			if typ == typeInt64 {
				vals = append(vals, int64Value(int64(u-(1<<63))))
			} else {
				vals = append(vals, uint64Value(u))
			}
			pos += 8
		case typeBytes:
			end := pos
			for end < len(data) && data[end] != 0 {
				end++
			}
			if end >= len(data) {
				return nil, fmt.Errorf("%w: unterminated string at %d", errCorrupt, pos)
			}
			str, err := unescape(data[pos:end])
			if err != nil {
				return nil, err
			}
			vals = append(vals, Value{Type: typeBytes, Str: str})
			pos = end + 1
		default:
			return nil, fmt.Errorf("%w: unknown type %d at %d", errCorrupt, typ, pos-1)
		}
	}
	return vals, nil
}

// encodeKey writes the 4 byte tree prefix followed by vals.
func encodeKey(prefix uint32, vals ...Value) []byte {
	out := binary.BigEndian.AppendUint32(make([]byte, 0, 64), prefix)
	return encodeValues(out, vals)
}

func keyPrefix(key []byte) uint32 {
	if len(key) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(key[:4])
}

func keyValues(key []byte) ([]Value, error) {
	if len(key) < 4 {
		return nil, fmt.Errorf("%w: key too short", errCorrupt)
	}
	return decodeValues(key[4:])
}
