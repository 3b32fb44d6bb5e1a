package kvrange

import (
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(NewMemStorage(), Options{})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedScanFixture(t *testing.T, store *Store) {
	t.Helper()
	keys := []any{
		"a",
		"ab",
		"b",
		Key{String("b"), String("x")},
		"c",
	}
	err := store.Write(func(v *View) error {
		for _, k := range keys {
			if err := v.Put(k, "value"); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seeding failed: %v", err)
	}
}

func collectKeys(t *testing.T, v *View, sel Selector) []Key {
	t.Helper()
	cur, err := v.Scan(sel)
	if err != nil {
		t.Fatalf("Scan(%+v) failed: %v", sel, err)
	}
	defer cur.Close()
	var out []Key
	for cur.Next() {
		k, err := cur.Key()
		if err != nil {
			t.Fatalf("Key() failed: %v", err)
		}
		out = append(out, k)
	}
	return out
}

func checkKeys(t *testing.T, got []Key, expected ...Key) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("scan returned %d keys (%v), wanted %d (%v)", len(got), got, len(expected), expected)
	}
	for i := range got {
		if !got[i].Equal(expected[i]) {
			t.Fatalf("scan key %d = %v, wanted %v (full result %v)", i, got[i], expected[i], got)
		}
	}
}

func TestScanSelectors(t *testing.T) {
	store := newTestStore(t)
	seedScanFixture(t, store)

	kA := Key{String("a")}
	kAB := Key{String("ab")}
	kB := Key{String("b")}
	kBX := Key{String("b"), String("x")}
	kC := Key{String("c")}

	err := store.Read(func(v *View) error {
		t.Run("all", func(t *testing.T) {
			checkKeys(t, collectKeys(t, v, All()), kA, kAB, kB, kBX, kC)
		})
		t.Run("all reversed", func(t *testing.T) {
			checkKeys(t, collectKeys(t, v, All().Reversed()), kC, kBX, kB, kAB, kA)
		})
		t.Run("prefix", func(t *testing.T) {
			checkKeys(t, collectKeys(t, v, Under("b")), kB, kBX)
		})
		t.Run("prefix reversed", func(t *testing.T) {
			checkKeys(t, collectKeys(t, v, Under("b").Reversed()), kBX, kB)
		})
		t.Run("exact includes descendants", func(t *testing.T) {
			checkKeys(t, collectKeys(t, v, Exact("b")), kB, kBX)
		})
		t.Run("exact point", func(t *testing.T) {
			checkKeys(t, collectKeys(t, v, Exact("a")), kA)
		})
		t.Run("start after", func(t *testing.T) {
			checkKeys(t, collectKeys(t, v, After("a")), kAB, kB, kBX, kC)
		})
		t.Run("start after reversed", func(t *testing.T) {
			checkKeys(t, collectKeys(t, v, After("b").Reversed()), kAB, kA)
		})
		t.Run("end before", func(t *testing.T) {
			checkKeys(t, collectKeys(t, v, Before("b")), kA, kAB)
		})
		t.Run("between", func(t *testing.T) {
			checkKeys(t, collectKeys(t, v, Between("a", "b")), kA, kAB, kB, kBX)
		})
		t.Run("inclusive start", func(t *testing.T) {
			checkKeys(t, collectKeys(t, v, Selector{Start: "b"}), kB, kBX, kC)
		})
		t.Run("empty result", func(t *testing.T) {
			checkKeys(t, collectKeys(t, v, Under("zzz")))
		})
		return nil
	})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
}

func TestScanCount(t *testing.T) {
	store := newTestStore(t)
	seedScanFixture(t, store)
	err := store.Read(func(v *View) error {
		n, err := v.Count(Under("b"))
		if err != nil {
			return err
		}
		if n != 2 {
			t.Fatalf("Count(Under(b)) = %d, wanted 2", n)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
}

func TestScanDecodesValues(t *testing.T) {
	store := newTestStore(t)
	err := store.Write(func(v *View) error {
		return v.Put("doc", testDoc{Name: "alice", Score: 1})
	})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	err = store.Read(func(v *View) error {
		cur, err := v.Scan(All())
		if err != nil {
			return err
		}
		defer cur.Close()
		if !cur.Next() {
			t.Fatalf("scan returned no rows")
		}
		var doc testDoc
		if err := cur.Decode(&doc); err != nil {
			return err
		}
		if doc.Name != "alice" {
			t.Fatalf("decoded doc = %+v, wanted alice", doc)
		}
		if len(cur.RawKey()) == 0 || len(cur.RawValue()) == 0 {
			t.Fatalf("RawKey/RawValue empty during iteration")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
}

// A forward scan of a prefix and a reverse scan of the same prefix must
// visit identical key sets in opposite order.
func TestScanReverseVisitsSameKeys(t *testing.T) {
	store := newTestStore(t)
	seedScanFixture(t, store)
	err := store.Read(func(v *View) error {
		fwd := collectKeys(t, v, Under("b"))
		rev := collectKeys(t, v, Under("b").Reversed())
		if len(fwd) != len(rev) {
			t.Fatalf("forward %v and reverse %v differ in size", fwd, rev)
		}
		for i := range fwd {
			if !fwd[i].Equal(rev[len(rev)-1-i]) {
				t.Fatalf("forward %v is not the mirror of reverse %v", fwd, rev)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
}
