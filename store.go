package kvrange

import (
	"fmt"
	"log/slog"
)

// Store ties an immutable Encoding to a Storage backend. The encoding
// configuration is fixed at construction and shared, without
// synchronization, by every view derived from the store.
type Store struct {
	enc    Encoding
	stg    Storage
	logger *slog.Logger
}

// Options configures a Store.
type Options struct {
	Encoding Encoding
	Logger   *slog.Logger
}

// NewStore wraps a storage backend. Fails with ErrUnknownEncoding if the
// configured encoding scheme is not recognized.
func NewStore(stg Storage, opt Options) (*Store, error) {
	if err := opt.Encoding.validate(); err != nil {
		return nil, err
	}
	logger := opt.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{enc: opt.Encoding, stg: stg, logger: logger}, nil
}

func (s *Store) Encoding() Encoding { return s.enc }

func (s *Store) Close() error { return s.stg.Close() }

// Read runs f in a read-only transaction.
func (s *Store) Read(f func(v *View) error) error {
	return s.inTx(false, f)
}

// Write runs f in a writable transaction, committing if f returns nil and
// rolling back otherwise.
func (s *Store) Write(f func(v *View) error) error {
	return s.inTx(true, f)
}

func (s *Store) inTx(writable bool, f func(v *View) error) error {
	tx, err := s.stg.BeginTx(writable)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	v := &View{store: s, tx: tx}
	v.root = v
	if err := f(v); err != nil {
		return err
	}
	if writable {
		return tx.Commit()
	}
	return nil
}

// View is a transactional window into a store. Sub-views derived via Sub
// share the root's transaction and its immutable encoding configuration;
// a view is nested iff it is not its own root. Views hold no state of their
// own beyond the scoping prefix and must not outlive their transaction.
type View struct {
	store  *Store
	tx     StorageTx
	root   *View
	prefix Key
}

// Root returns the root view of this transaction.
func (v *View) Root() *View { return v.root }

// Nested reports whether this view is scoped under a prefix rather than
// being the transaction root.
func (v *View) Nested() bool { return v.root != v }

// Prefix returns the key prefix this view is scoped under; empty for the
// root view.
func (v *View) Prefix() Key { return v.prefix }

// Sub returns a view scoped under the given prefix: all operations on the
// sub-view transparently prepend the prefix, and scans only see keys
// extending it.
func (v *View) Sub(prefix any) (*View, error) {
	p, err := asKey(prefix)
	if err != nil {
		return nil, err
	}
	return &View{
		store:  v.store,
		tx:     v.tx,
		root:   v.root,
		prefix: concatKeys(v.prefix, p),
	}, nil
}

func (v *View) keyBytes(key any) ([]byte, error) {
	if len(v.prefix) == 0 {
		return v.store.enc.EncodeKey(key)
	}
	// Validate the user part before scoping: the prefix alone must not
	// satisfy the non-empty key requirement.
	if _, err := v.store.enc.EncodeKey(key); err != nil {
		return nil, err
	}
	k, err := asKey(key)
	if err != nil {
		return nil, err
	}
	return v.store.enc.EncodeKey(concatKeys(v.prefix, k))
}

// Put stores a value under the given key. A nil value deletes the key, the
// stored image of an absent value being no bytes.
func (v *View) Put(key, value any) error {
	kb, err := v.keyBytes(key)
	if err != nil {
		return err
	}
	vb, err := v.store.enc.EncodeValue(nil, value)
	if err != nil {
		return err
	}
	if len(vb) == 0 {
		return v.tx.Delete(kb)
	}
	return v.tx.Put(kb, vb)
}

// Get loads the value stored under key into ptr, reporting whether the key
// exists.
func (v *View) Get(key, ptr any) (bool, error) {
	raw, err := v.GetRaw(key)
	if err != nil || raw == nil {
		return false, err
	}
	return true, v.store.enc.DecodeValue(raw, ptr)
}

// GetRaw returns the encoded value stored under key, nil if absent.
func (v *View) GetRaw(key any) ([]byte, error) {
	kb, err := v.keyBytes(key)
	if err != nil {
		return nil, err
	}
	return v.tx.Get(kb)
}

// Delete removes the given key.
func (v *View) Delete(key any) error {
	kb, err := v.keyBytes(key)
	if err != nil {
		return err
	}
	return v.tx.Delete(kb)
}

// Scan resolves the selector into a canonical range and returns a cursor
// over it. The selector's prefix is scoped under the view's own prefix.
// The cursor must be closed before the transaction ends.
func (v *View) Scan(sel Selector) (*Cursor, error) {
	if len(v.prefix) > 0 {
		if sel.Prefix != nil {
			p, err := asKey(sel.Prefix)
			if err != nil {
				return nil, err
			}
			sel.Prefix = concatKeys(v.prefix, p)
		} else {
			sel.Prefix = v.prefix
		}
	}
	rng, err := v.store.enc.Normalize(sel)
	if err != nil {
		return nil, err
	}
	start, end, err := v.store.enc.EncodeRange(rng)
	if err != nil {
		return nil, err
	}
	return &Cursor{
		enc:    v.store.enc,
		rang:   rawRange{start: start, end: end, reverse: rng.Reverse},
		cur:    v.tx.Cursor(),
		logger: v.store.logger,
	}, nil
}

// Count scans the selector and returns the number of matching keys.
func (v *View) Count(sel Selector) (int, error) {
	cur, err := v.Scan(sel)
	if err != nil {
		return 0, err
	}
	defer cur.Close()
	var n int
	for cur.Next() {
		n++
	}
	return n, nil
}

func (v *View) String() string {
	if v.Nested() {
		return fmt.Sprintf("View%s", v.prefix)
	}
	return "View(root)"
}
