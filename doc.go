/*
Package kvrange implements order-preserving key encoding and range-selector
normalization for ordered key-value stores (Bolt, Pebble, or a transient
in-memory backend).

We implement:

1. Structured keys, ordered sequences of typed components (null, booleans,
numbers, byte strings, strings, nested keys, plus minimum/maximum sentinels)
with a fixed total order across kinds.

2. A bytewise key codec whose byte output sorts exactly like the logical
keys, so a dumb lexicographic cursor can execute logical queries.

3. Adjacent-key computation: the immediate predecessor or successor of a key
in total encoded order, derived by perturbing only the last component.

4. Range selectors: a logical query (exact value, inclusive/exclusive bounds,
prefix scoping, reverse iteration) normalized into one canonical ascending
half-open [start, end) pair that any of the storage backends can scan
directly.

# Technical Details

**Key encoding.**
Each component is a tag byte followed by a payload; a key is the
concatenation of its components. Tags ascend in kind order (null 0x10,
false 0x20, true 0x21, number 0x40, bytes 0x60, string 0x70, nested 0xA0,
maximum sentinel 0xF0), numbers use sign-flipped big-endian IEEE-754 bits,
and string/bytes payloads are 0x00-terminated with 0x01-escaping, which
together make encoded order equal logical order.

**Value encoding.**
Values are opaque: msgpack by default, JSON as an alternative. An absent
(nil) value encodes to zero bytes, which is distinct from an encoded empty
value and doubles as a deletion marker in View.Put.

**Canonical ranges.**
Selector normalization appends the maximum sentinel to whichever bound faces
the scan direction, so an inclusive or prefix bound covers every descendant
key however deep, and always returns bounds in ascending encoded order; the
Reverse flag only controls traversal direction.

**Adjacency limitations.**
Numeric adjacency adds or subtracts a small fixed epsilon and can skip or
collide with stored keys at high precision. Keys ending in booleans, nested
keys or sentinels have no defined adjacency and are returned unchanged; the
same holds for the empty string and for strings whose final code point
cannot be decremented (U+0000, or a decrement landing in the surrogate
range). Exclusive bounds (StartAfter/EndBefore) should not be used with
such keys.
*/
package kvrange
