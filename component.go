package kvrange

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the type of a key component. Declaration order matches
// encoded sort order: every component of a smaller kind sorts before every
// component of a larger kind.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindBytes
	KindString
	KindNested
	KindMax
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindNested:
		return "nested"
	case KindMax:
		return "max"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Component is one element of a structured key: a closed variant over the
// kinds above. The zero value is the null component, which doubles as the
// minimum sentinel. Components are immutable values.
type Component struct {
	kind Kind
	num  float64 // KindNumber payload, also 0/1 for KindBool
	str  string  // KindString payload
	raw  []byte  // KindBytes payload
	sub  Key     // KindNested payload
}

// Null returns the null component, the minimum sentinel sorting before all
// real values.
func Null() Component {
	return Component{}
}

// Max returns the maximum sentinel component, sorting after all real
// values. Appending it to a key yields a bound covering every extension of
// that key.
func Max() Component {
	return Component{kind: KindMax}
}

func Bool(v bool) Component {
	var n float64
	if v {
		n = 1
	}
	return Component{kind: KindBool, num: n}
}

func Number(v float64) Component {
	return Component{kind: KindNumber, num: v}
}

func String(v string) Component {
	return Component{kind: KindString, str: v}
}

func Bytes(v []byte) Component {
	return Component{kind: KindBytes, raw: bytes.Clone(v)}
}

func Nested(k Key) Component {
	return Component{kind: KindNested, sub: k}
}

func (c Component) Kind() Kind {
	return c.kind
}

// Value returns the component payload as a plain Go value: nil for the
// sentinels, bool, float64, []byte, string or Key.
func (c Component) Value() any {
	switch c.kind {
	case KindNull, KindMax:
		return nil
	case KindBool:
		return c.num != 0
	case KindNumber:
		return c.num
	case KindBytes:
		return c.raw
	case KindString:
		return c.str
	case KindNested:
		return c.sub
	default:
		panic(fmt.Errorf("corrupted component kind %d", c.kind))
	}
}

// Compare returns -1, 0 or 1 ordering c against another component under the
// total encoded order.
func (c Component) Compare(another Component) int {
	if c.kind != another.kind {
		if c.kind < another.kind {
			return -1
		}
		return 1
	}
	switch c.kind {
	case KindNull, KindMax:
		return 0
	case KindBool, KindNumber:
		switch {
		case c.num < another.num:
			return -1
		case c.num > another.num:
			return 1
		default:
			return 0
		}
	case KindBytes:
		return bytes.Compare(c.raw, another.raw)
	case KindString:
		return strings.Compare(c.str, another.str)
	case KindNested:
		return c.sub.Compare(another.sub)
	default:
		panic(fmt.Errorf("corrupted component kind %d", c.kind))
	}
}

func (c Component) Equal(another Component) bool {
	return c.Compare(another) == 0
}

func (c Component) String() string {
	switch c.kind {
	case KindNull:
		return "null"
	case KindMax:
		return "max"
	case KindBool:
		if c.num != 0 {
			return "true"
		}
		return "false"
	case KindNumber:
		return strconv.FormatFloat(c.num, 'g', -1, 64)
	case KindBytes:
		return fmt.Sprintf("0x%x", c.raw)
	case KindString:
		return strconv.Quote(c.str)
	case KindNested:
		return c.sub.String()
	default:
		return fmt.Sprintf("Component(%d)", c.kind)
	}
}

// Key is a structured key: an ordered sequence of components. The empty key
// is valid internally (it is the "no bound" default of range selectors) but
// is rejected as a user-supplied record key.
type Key []Component

func (k Key) Compare(another Key) int {
	n := len(k)
	if len(another) < n {
		n = len(another)
	}
	for i := 0; i < n; i++ {
		if c := k[i].Compare(another[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(k) < len(another):
		return -1
	case len(k) > len(another):
		return 1
	default:
		return 0
	}
}

func (k Key) Equal(another Key) bool {
	return k.Compare(another) == 0
}

// With returns a fresh key extending k with the given components; k itself
// is never modified.
func (k Key) With(extra ...Component) Key {
	out := make(Key, 0, len(k)+len(extra))
	out = append(out, k...)
	return append(out, extra...)
}

func concatKeys(prefix, k Key) Key {
	return prefix.With(k...)
}

func (k Key) String() string {
	var buf strings.Builder
	buf.WriteByte('(')
	for i, c := range k {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(c.String())
	}
	buf.WriteByte(')')
	return buf.String()
}

// asKey coerces a caller-supplied key argument into a structured key,
// wrapping a bare scalar into a single-component key.
func asKey(v any) (Key, error) {
	switch v := v.(type) {
	case Key:
		return v, nil
	case []Component:
		return Key(v), nil
	case Component:
		return Key{v}, nil
	case nil:
		return Key{Null()}, nil
	case bool:
		return Key{Bool(v)}, nil
	case string:
		return Key{String(v)}, nil
	case []byte:
		return Key{Bytes(v)}, nil
	case float64:
		return Key{Number(v)}, nil
	case float32:
		return Key{Number(float64(v))}, nil
	case int:
		return Key{Number(float64(v))}, nil
	case int8:
		return Key{Number(float64(v))}, nil
	case int16:
		return Key{Number(float64(v))}, nil
	case int32:
		return Key{Number(float64(v))}, nil
	case int64:
		return Key{Number(float64(v))}, nil
	case uint:
		return Key{Number(float64(v))}, nil
	case uint8:
		return Key{Number(float64(v))}, nil
	case uint16:
		return Key{Number(float64(v))}, nil
	case uint32:
		return Key{Number(float64(v))}, nil
	case uint64:
		return Key{Number(float64(v))}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported key type %T", ErrInvalidKey, v)
	}
}
