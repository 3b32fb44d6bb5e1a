package kvrange

import "fmt"

// Selector describes a logical query over a keyspace. All key fields accept
// either a Key or a bare scalar (coerced into a single-component key); a
// nil field is absent. Fields are mutually constrained: Value excludes all
// four bound fields, Start excludes StartAfter, End excludes EndBefore.
//
//	Value      exact-match point range
//	Start      inclusive lower bound
//	StartAfter exclusive lower bound (via adjacency)
//	End        inclusive-of-descendants upper bound
//	EndBefore  exclusive upper bound (via adjacency)
//	Prefix     scopes both bounds under a common leading key
//	Reverse    iterate physically descending; flips the meaning of
//	           "after"/"before" relative to bound computation
type Selector struct {
	Value      any
	Start      any
	StartAfter any
	End        any
	EndBefore  any
	Prefix     any
	Reverse    bool
}

// Convenience constructors for common selector shapes.
func All() Selector                    { return Selector{} }
func Exact(value any) Selector         { return Selector{Value: value} }
func Under(prefix any) Selector        { return Selector{Prefix: prefix} }
func Between(start, end any) Selector  { return Selector{Start: start, End: end} }
func After(start any) Selector         { return Selector{StartAfter: start} }
func Before(end any) Selector          { return Selector{EndBefore: end} }
func (sel Selector) Reversed() Selector { sel.Reverse = true; return sel }

// Range is the canonical resolved form of a Selector: a half-open
// [Start, End) pair of structured keys in ascending encoded order,
// regardless of scan direction. Reverse only tells the caller to traverse
// the physical range back to front.
type Range struct {
	Start   Key
	End     Key
	Reverse bool
}

// Contains reports whether k lies within the half-open range.
func (r Range) Contains(k Key) bool {
	return k.Compare(r.Start) >= 0 && k.Compare(r.End) < 0
}

// Normalize validates a selector and resolves it into a canonical range.
// The selector is read-only; the returned range is freshly constructed.
// Returns a SelectorError (wrapping ErrInvalidSelector) on mutually
// exclusive fields, and ErrUnimplementedEncoding unless the bytewise key
// scheme is configured.
func (enc Encoding) Normalize(sel Selector) (Range, error) {
	if err := enc.requireBytewise(); err != nil {
		return Range{}, err
	}
	if sel.Start != nil && sel.StartAfter != nil {
		return Range{}, selErrf("Start", "StartAfter")
	}
	if sel.End != nil && sel.EndBefore != nil {
		return Range{}, selErrf("End", "EndBefore")
	}

	var lower, upper Key
	if sel.Value != nil {
		if sel.Start != nil || sel.StartAfter != nil || sel.End != nil || sel.EndBefore != nil {
			return Range{}, selErrf("Value", "Start/StartAfter/End/EndBefore")
		}
		v, err := asKey(sel.Value)
		if err != nil {
			return Range{}, err
		}
		lower, upper = v, v
	} else {
		var err error
		lower, err = resolveBound(sel.Start, sel.StartAfter, sel.Reverse)
		if err != nil {
			return Range{}, err
		}
		upper, err = resolveBound(sel.End, sel.EndBefore, !sel.Reverse)
		if err != nil {
			return Range{}, err
		}
	}

	// Extend the bound facing the scan direction with the maximum sentinel
	// so that an inclusive or prefix bound covers every descendant key,
	// however deep, while staying exclusive as a byte bound.
	if sel.Reverse {
		lower = lower.With(Max())
	} else {
		upper = upper.With(Max())
	}

	if sel.Prefix != nil {
		p, err := asKey(sel.Prefix)
		if err != nil {
			return Range{}, err
		}
		lower = concatKeys(p, lower)
		upper = concatKeys(p, upper)
	}

	if sel.Reverse {
		lower, upper = upper, lower
	}
	return Range{Start: lower, End: upper, Reverse: sel.Reverse}, nil
}

// resolveBound turns one side of a selector into a structured key.
// stepBack picks the adjacency direction used for the exclusive field:
// under reverse iteration "after" and "before" flip relative to the
// physical scan direction.
func resolveBound(inclusive, exclusive any, stepBack bool) (Key, error) {
	switch {
	case inclusive != nil:
		return asKey(inclusive)
	case exclusive != nil:
		k, err := asKey(exclusive)
		if err != nil {
			return nil, err
		}
		if stepBack {
			return prevKey(k), nil
		}
		return nextKey(k), nil
	default:
		return Key{}, nil
	}
}

func (r Range) String() string {
	dir := "asc"
	if r.Reverse {
		dir = "desc"
	}
	return fmt.Sprintf("[%s, %s) %s", r.Start, r.End, dir)
}
