package kvrange

// numberEpsilon is the step used to derive adjacent numeric components.
// This is a fixed approximation, not the closest representable value: at
// high precision it can skip or collide with real stored keys. Callers that
// need exact adjacency should avoid StartAfter/EndBefore on
// number-terminated keys.
const numberEpsilon = 1e-9

// Sentinel characters used by string adjacency: the lowest code point above
// NUL and the highest code point of the basic plane.
const (
	stringLowSentinel  = "\u0001"
	stringHighSentinel = "\uffff"
)

// PreviousKey returns the key immediately preceding k in total encoded
// order, perturbing only the last component. The empty key, empty strings,
// strings ending in U+0000 or just above the surrogate range, and
// components without a defined adjacency (booleans, nested keys, sentinels)
// are returned unchanged.
func (enc Encoding) PreviousKey(k Key) (Key, error) {
	if err := enc.requireBytewise(); err != nil {
		return nil, err
	}
	return prevKey(k), nil
}

// NextKey returns the key immediately following k in total encoded order;
// see PreviousKey for the cases returned unchanged.
func (enc Encoding) NextKey(k Key) (Key, error) {
	if err := enc.requireBytewise(); err != nil {
		return nil, err
	}
	return nextKey(k), nil
}

func prevKey(k Key) Key {
	if len(k) == 0 {
		return k
	}
	last := k[len(k)-1]
	switch last.kind {
	case KindNumber:
		return replaceLast(k, Number(last.num-numberEpsilon))
	case KindString:
		if last.str == "" {
			return k
		}
		// Decrement the final code point and append the high sentinel:
		// the greatest string still strictly below the original, covering
		// the decremented prefix's entire descendant range.
		runes := []rune(last.str)
		dec := runes[len(runes)-1] - 1
		// U+0000 has no predecessor, and a decrement landing in the
		// surrogate range would not survive a UTF-8 round trip; both have
		// no defined adjacency and come back unchanged.
		if dec < 0 || (dec >= 0xD800 && dec <= 0xDFFF) {
			return k
		}
		head := string(runes[:len(runes)-1])
		return replaceLast(k, String(head+string(dec)+stringHighSentinel))
	default:
		return k
	}
}

func nextKey(k Key) Key {
	if len(k) == 0 {
		return k
	}
	last := k[len(k)-1]
	switch last.kind {
	case KindNumber:
		return replaceLast(k, Number(last.num+numberEpsilon))
	case KindString:
		if last.str == "" {
			return k
		}
		// The smallest string strictly above the original: append the
		// lowest non-NUL code point.
		return replaceLast(k, String(last.str+stringLowSentinel))
	default:
		return k
	}
}

func replaceLast(k Key, c Component) Key {
	out := make(Key, len(k))
	copy(out, k)
	out[len(out)-1] = c
	return out
}
