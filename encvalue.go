package kvrange

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// EncodeValue encodes an opaque value under the configured value scheme.
// There is no order guarantee on the output. A nil value encodes to no
// bytes, the encoded absence of a value, distinct from an encoded empty
// value.
func (enc Encoding) EncodeValue(buf []byte, v any) ([]byte, error) {
	if v == nil {
		return buf, nil
	}
	switch enc.Values {
	case MsgPack:
		bb := bytesBuilder{buf}
		e := msgpack.GetEncoder()
		e.ResetDict(&bb, nil)
		e.SetSortMapKeys(true)
		err := e.Encode(v)
		msgpack.PutEncoder(e)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %T using msgpack: %w", v, err)
		}
		return bb.Buf, nil
	case JSON:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %T to JSON: %w", v, err)
		}
		return appendRaw(buf, raw), nil
	default:
		return nil, fmt.Errorf("%w: value encoding %d", ErrUnknownEncoding, enc.Values)
	}
}

// DecodeValue is the inverse of EncodeValue. Decoding the absence of a
// value (no bytes) leaves the target untouched.
func (enc Encoding) DecodeValue(buf []byte, ptr any) error {
	if len(buf) == 0 {
		return nil
	}
	switch enc.Values {
	case MsgPack:
		var r bytes.Reader
		r.Reset(buf)
		d := msgpack.GetDecoder()
		d.ResetDict(&r, nil)
		err := d.Decode(ptr)
		msgpack.PutDecoder(d)
		if err != nil {
			return dataErrf(buf, 0, err, "failed to decode msgpack into %T", ptr)
		}
		return nil
	case JSON:
		err := json.Unmarshal(buf, ptr)
		if err != nil {
			return dataErrf(buf, 0, err, "failed to decode JSON into %T", ptr)
		}
		return nil
	default:
		return fmt.Errorf("%w: value encoding %d", ErrUnknownEncoding, enc.Values)
	}
}
