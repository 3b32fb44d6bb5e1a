package kvrange

import (
	"errors"
	"testing"
)

func TestComponentCompare(t *testing.T) {
	tests := []struct {
		a, b     Component
		expected int
	}{
		{Null(), Null(), 0},
		{Null(), Bool(false), -1},
		{Bool(false), Bool(true), -1},
		{Bool(true), Number(-1e9), -1},
		{Number(1), Number(2), -1},
		{Number(2), Number(2), 0},
		{Number(1e9), Bytes([]byte{0}), -1},
		{Bytes([]byte{1}), Bytes([]byte{1, 0}), -1},
		{Bytes([]byte{0xFF}), String(""), -1},
		{String("a"), String("ab"), -1},
		{String("b"), String("a"), 1},
		{String("z"), Nested(Key{Null()}), -1},
		{Nested(Key{String("a")}), Nested(Key{String("b")}), -1},
		{Nested(Key{String("z")}), Max(), -1},
		{Max(), Max(), 0},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.expected {
			t.Errorf("** %v.Compare(%v) = %d, wanted %d", tt.a, tt.b, got, tt.expected)
		}
		if got := tt.b.Compare(tt.a); got != -tt.expected {
			t.Errorf("** %v.Compare(%v) = %d, wanted %d", tt.b, tt.a, got, -tt.expected)
		}
	}
}

func TestKeyCompare(t *testing.T) {
	tests := []struct {
		a, b     Key
		expected int
	}{
		{Key{}, Key{}, 0},
		{Key{}, Key{Null()}, -1},
		{Key{String("a")}, Key{String("a"), Null()}, -1},
		{Key{String("a"), Max()}, Key{String("ab")}, -1},
		{Key{String("a"), Number(2)}, Key{String("a"), Number(10)}, -1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.expected {
			t.Errorf("** %v.Compare(%v) = %d, wanted %d", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestKeyWithDoesNotAliasOriginal(t *testing.T) {
	base := make(Key, 1, 4)
	base[0] = String("a")
	ext1 := base.With(String("b"))
	ext2 := base.With(String("c"))
	if !ext1.Equal(Key{String("a"), String("b")}) {
		t.Fatalf("ext1 = %v, wanted (\"a\", \"b\")", ext1)
	}
	if !ext2.Equal(Key{String("a"), String("c")}) {
		t.Fatalf("ext2 = %v, wanted (\"a\", \"c\"); With must not share backing arrays", ext2)
	}
	if !base.Equal(Key{String("a")}) {
		t.Fatalf("base changed to %v after With", base)
	}
}

func TestAsKeyCoercion(t *testing.T) {
	tests := []struct {
		input    any
		expected Key
	}{
		{"a", Key{String("a")}},
		{42, Key{Number(42)}},
		{int64(-7), Key{Number(-7)}},
		{uint32(7), Key{Number(7)}},
		{3.5, Key{Number(3.5)}},
		{true, Key{Bool(true)}},
		{[]byte{1, 2}, Key{Bytes([]byte{1, 2})}},
		{nil, Key{Null()}},
		{String("a"), Key{String("a")}},
		{Key{String("a"), Number(1)}, Key{String("a"), Number(1)}},
	}
	for _, tt := range tests {
		got, err := asKey(tt.input)
		if err != nil {
			t.Errorf("** asKey(%v) failed: %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.expected) {
			t.Errorf("** asKey(%v) = %v, wanted %v", tt.input, got, tt.expected)
		}
	}

	_, err := asKey(struct{}{})
	if !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("asKey(struct{}{}) err = %v, wanted ErrInvalidKey", err)
	}
}

func TestComponentValue(t *testing.T) {
	if v := Bool(true).Value(); v != true {
		t.Fatalf("Bool(true).Value() = %v, wanted true", v)
	}
	if v := Number(2.5).Value(); v != 2.5 {
		t.Fatalf("Number(2.5).Value() = %v, wanted 2.5", v)
	}
	if v := String("x").Value(); v != "x" {
		t.Fatalf("String(\"x\").Value() = %v, wanted x", v)
	}
	if v := Null().Value(); v != nil {
		t.Fatalf("Null().Value() = %v, wanted nil", v)
	}
	if v := Max().Value(); v != nil {
		t.Fatalf("Max().Value() = %v, wanted nil", v)
	}
}

func TestKeyString(t *testing.T) {
	k := Key{String("a"), Number(1), Null(), Max(), Nested(Key{Bool(false)})}
	if got := k.String(); got != `("a", 1, null, max, (false))` {
		t.Fatalf("Key.String() = %q", got)
	}
}
