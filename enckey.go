package kvrange

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// Bytewise key format: one tag byte per component followed by the payload,
// components concatenated back to back. Tags are spaced out so that future
// kinds can slot between existing ones without reordering.
const (
	tagTerm   = 0x00 // payload/list terminator
	tagEscape = 0x01 // escape byte inside string/bytes payloads
	tagNull   = 0x10
	tagFalse  = 0x20
	tagTrue   = 0x21
	tagNumber = 0x40
	tagBytes  = 0x60
	tagString = 0x70
	tagNested = 0xA0
	tagMax    = 0xF0
)

func (k Key) encode(buf []byte) ([]byte, error) {
	var err error
	for _, c := range k {
		buf, err = appendComponent(buf, c)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func appendComponent(buf []byte, c Component) ([]byte, error) {
	switch c.kind {
	case KindNull:
		return append(buf, tagNull), nil
	case KindMax:
		return append(buf, tagMax), nil
	case KindBool:
		if c.num != 0 {
			return append(buf, tagTrue), nil
		}
		return append(buf, tagFalse), nil
	case KindNumber:
		if math.IsNaN(c.num) {
			return nil, dataErrf(nil, len(buf), nil, "cannot encode NaN key component")
		}
		return appendNumber(buf, c.num), nil
	case KindBytes:
		buf = append(buf, tagBytes)
		buf = appendEscaped(buf, c.raw)
		return append(buf, tagTerm), nil
	case KindString:
		buf = append(buf, tagString)
		buf = appendEscaped(buf, []byte(c.str))
		return append(buf, tagTerm), nil
	case KindNested:
		buf = append(buf, tagNested)
		var err error
		buf, err = c.sub.encode(buf)
		if err != nil {
			return nil, err
		}
		return append(buf, tagTerm), nil
	default:
		return nil, dataErrf(nil, len(buf), nil, "cannot encode component kind %v", c.kind)
	}
}

// appendNumber writes the sign-flipped big-endian IEEE-754 image of v:
// negative numbers have all bits flipped, non-negative ones only the sign
// bit, so byte order equals numeric order.
func appendNumber(buf []byte, v float64) []byte {
	bits := math.Float64bits(v)
	if bits&(1<<63) != 0 {
		bits = ^bits
	} else {
		bits |= 1 << 63
	}
	buf = append(buf, tagNumber)
	return appendUint64(buf, bits)
}

// appendEscaped writes payload bytes with 0x00 -> 0x01 0x01 and
// 0x01 -> 0x01 0x02, keeping 0x00 free to terminate while preserving order.
func appendEscaped(buf []byte, data []byte) []byte {
	for _, b := range data {
		switch b {
		case tagTerm:
			buf = append(buf, tagEscape, 0x01)
		case tagEscape:
			buf = append(buf, tagEscape, 0x02)
		default:
			buf = append(buf, b)
		}
	}
	return buf
}

func decodeBytewiseKey(raw []byte) (Key, error) {
	var k Key
	rem := raw
	for len(rem) > 0 {
		var c Component
		var err error
		c, rem, err = decodeComponent(raw, rem)
		if err != nil {
			return nil, err
		}
		k = append(k, c)
	}
	return k, nil
}

func decodeComponent(orig, rem []byte) (Component, []byte, error) {
	tag := rem[0]
	rem = rem[1:]
	switch tag {
	case tagNull:
		return Null(), rem, nil
	case tagMax:
		return Max(), rem, nil
	case tagFalse:
		return Bool(false), rem, nil
	case tagTrue:
		return Bool(true), rem, nil
	case tagNumber:
		if len(rem) < 8 {
			return Component{}, nil, dataErrf(orig, len(orig)-len(rem), nil, "truncated number component")
		}
		bits := binary.BigEndian.Uint64(rem)
		if bits&(1<<63) != 0 {
			bits &^= 1 << 63
		} else {
			bits = ^bits
		}
		return Number(math.Float64frombits(bits)), rem[8:], nil
	case tagBytes, tagString:
		payload, rest, err := decodeEscaped(orig, rem)
		if err != nil {
			return Component{}, nil, err
		}
		if tag == tagBytes {
			return Component{kind: KindBytes, raw: payload}, rest, nil
		}
		if !utf8.Valid(payload) {
			return Component{}, nil, dataErrf(orig, len(orig)-len(rem), nil, "string component is not valid UTF-8")
		}
		return String(string(payload)), rest, nil
	case tagNested:
		var sub Key
		for {
			if len(rem) == 0 {
				return Component{}, nil, dataErrf(orig, len(orig), nil, "unterminated nested key")
			}
			if rem[0] == tagTerm {
				return Nested(sub), rem[1:], nil
			}
			var c Component
			var err error
			c, rem, err = decodeComponent(orig, rem)
			if err != nil {
				return Component{}, nil, err
			}
			sub = append(sub, c)
		}
	default:
		return Component{}, nil, dataErrf(orig, len(orig)-len(rem)-1, nil, "unknown component tag 0x%02x", tag)
	}
}

func decodeEscaped(orig, rem []byte) (payload, rest []byte, err error) {
	for i := 0; i < len(rem); i++ {
		switch rem[i] {
		case tagTerm:
			return payload, rem[i+1:], nil
		case tagEscape:
			i++
			if i >= len(rem) {
				return nil, nil, dataErrf(orig, len(orig), nil, "truncated escape sequence")
			}
			switch rem[i] {
			case 0x01:
				payload = append(payload, tagTerm)
			case 0x02:
				payload = append(payload, tagEscape)
			default:
				return nil, nil, dataErrf(orig, len(orig)-len(rem)+i, nil, "invalid escape sequence 0x01 0x%02x", rem[i])
			}
		default:
			payload = append(payload, rem[i])
		}
	}
	return nil, nil, dataErrf(orig, len(orig), nil, "unterminated payload")
}
