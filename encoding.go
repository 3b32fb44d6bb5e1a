package kvrange

import (
	"fmt"
	"unicode/utf8"
)

// KeyEncoding names a key encoding scheme.
type KeyEncoding int

const (
	// KeyBytewise is the order-preserving tuple scheme. It is the only
	// scheme supported by adjacency and range-selector operations.
	KeyBytewise KeyEncoding = iota

	// KeyRaw stores a single string or bytes component as its raw bytes,
	// with no cross-kind ordering. Raw keys decode to a string component
	// when the bytes are valid UTF-8 and to a bytes component otherwise.
	KeyRaw
)

// ValueEncoding names an opaque (non-order-preserving) value scheme.
type ValueEncoding int

const (
	MsgPack ValueEncoding = iota
	JSON
)

// Encoding is the immutable codec configuration of a store. It is fixed at
// construction and safe for concurrent use.
type Encoding struct {
	Keys   KeyEncoding
	Values ValueEncoding
}

func (enc Encoding) validate() error {
	switch enc.Keys {
	case KeyBytewise, KeyRaw:
	default:
		return fmt.Errorf("%w: key encoding %d", ErrUnknownEncoding, enc.Keys)
	}
	switch enc.Values {
	case MsgPack, JSON:
	default:
		return fmt.Errorf("%w: value encoding %d", ErrUnknownEncoding, enc.Values)
	}
	return nil
}

// requireBytewise guards the operations of the adjacency calculator and the
// range normalizer, which are defined only for the bytewise scheme.
func (enc Encoding) requireBytewise() error {
	switch enc.Keys {
	case KeyBytewise:
		return nil
	case KeyRaw:
		return fmt.Errorf("%w: configured scheme is raw", ErrUnimplementedEncoding)
	default:
		return fmt.Errorf("%w: key encoding %d", ErrUnknownEncoding, enc.Keys)
	}
}

// EncodeKey encodes a user-supplied record key. The key must be a concrete,
// non-empty logical identifier; nil, the empty structured key and the empty
// string are rejected with ErrInvalidKey. (The empty structured key used
// internally by range bounds is a different, valid concept and bypasses
// this guard.)
func (enc Encoding) EncodeKey(key any) ([]byte, error) {
	if key == nil {
		return nil, ErrInvalidKey
	}
	if s, ok := key.(string); ok && s == "" {
		return nil, ErrInvalidKey
	}
	k, err := asKey(key)
	if err != nil {
		return nil, err
	}
	if len(k) == 0 {
		return nil, ErrInvalidKey
	}
	switch enc.Keys {
	case KeyBytewise:
		return k.encode(nil)
	case KeyRaw:
		return encodeRawKey(k)
	default:
		return nil, fmt.Errorf("%w: key encoding %d", ErrUnknownEncoding, enc.Keys)
	}
}

// DecodeKey is the inverse of EncodeKey for the same scheme.
func (enc Encoding) DecodeKey(raw []byte) (Key, error) {
	if len(raw) == 0 {
		return nil, ErrInvalidKey
	}
	switch enc.Keys {
	case KeyBytewise:
		return decodeBytewiseKey(raw)
	case KeyRaw:
		if utf8.Valid(raw) {
			return Key{String(string(raw))}, nil
		}
		return Key{Bytes(raw)}, nil
	default:
		return nil, fmt.Errorf("%w: key encoding %d", ErrUnknownEncoding, enc.Keys)
	}
}

func encodeRawKey(k Key) ([]byte, error) {
	if len(k) != 1 {
		return nil, fmt.Errorf("%w: raw keys must have exactly one component", ErrInvalidKey)
	}
	switch k[0].kind {
	case KindString:
		return []byte(k[0].str), nil
	case KindBytes:
		return k[0].raw, nil
	default:
		return nil, fmt.Errorf("%w: raw keys must be strings or bytes, got %v", ErrInvalidKey, k[0].kind)
	}
}

// EncodeRange encodes the bounds of a canonical range for handing to a
// storage engine's range-scan primitive. Unlike EncodeKey, the bounds may
// be empty or sentinel-terminated keys.
func (enc Encoding) EncodeRange(r Range) (start, end []byte, err error) {
	if err := enc.requireBytewise(); err != nil {
		return nil, nil, err
	}
	start, err = r.Start.encode(nil)
	if err != nil {
		return nil, nil, err
	}
	end, err = r.End.encode(nil)
	if err != nil {
		return nil, nil, err
	}
	return start, end, nil
}
