package kvrange

import (
	"bytes"
	"fmt"

	"github.com/cockroachdb/pebble"
)

type pebbleStorage struct {
	pdb *pebble.DB
}

// OpenPebble opens (creating if necessary) a Pebble-backed Storage at the
// given directory.
func OpenPebble(path string) (Storage, error) {
	pdb, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &pebbleStorage{pdb: pdb}, nil
}

// NewPebbleStorage wraps an already-open Pebble database.
func NewPebbleStorage(pdb *pebble.DB) Storage {
	return &pebbleStorage{pdb: pdb}
}

func (s *pebbleStorage) BeginTx(writable bool) (StorageTx, error) {
	if writable {
		// An indexed batch reads its own uncommitted writes, which gives
		// the same read-your-writes semantics as a Bolt write transaction.
		return &pebbleTx{pdb: s.pdb, batch: s.pdb.NewIndexedBatch()}, nil
	}
	// Read from a snapshot so long-lived readers do not observe
	// concurrently committed writes, matching the other backends.
	return &pebbleTx{pdb: s.pdb, snap: s.pdb.NewSnapshot()}, nil
}

func (s *pebbleStorage) Close() error {
	return s.pdb.Close()
}

type pebbleTx struct {
	pdb    *pebble.DB
	batch  *pebble.Batch    // nil for read-only transactions
	snap   *pebble.Snapshot // nil for writable transactions
	closed bool
}

func (tx *pebbleTx) Writable() bool { return tx.batch != nil }

func (tx *pebbleTx) Get(key []byte) ([]byte, error) {
	var value []byte
	var closer interface{ Close() error }
	var err error
	if tx.batch != nil {
		value, closer, err = tx.batch.Get(key)
	} else {
		value, closer, err = tx.snap.Get(key)
	}
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := bytes.Clone(value)
	if cerr := closer.Close(); cerr != nil {
		return nil, cerr
	}
	return out, nil
}

func (tx *pebbleTx) Put(key, value []byte) error {
	if tx.batch == nil {
		return fmt.Errorf("tx not writable")
	}
	return tx.batch.Set(key, value, nil)
}

func (tx *pebbleTx) Delete(key []byte) error {
	if tx.batch == nil {
		return fmt.Errorf("tx not writable")
	}
	return tx.batch.Delete(key, nil)
}

func (tx *pebbleTx) Cursor() StorageCursor {
	var iter *pebble.Iterator
	var err error
	if tx.batch != nil {
		iter, err = tx.batch.NewIter(&pebble.IterOptions{})
	} else {
		iter, err = tx.snap.NewIter(&pebble.IterOptions{})
	}
	if err != nil {
		panic(fmt.Errorf("pebble iterator: %w", err))
	}
	return &pebbleCursor{iter: iter}
}

func (tx *pebbleTx) Commit() error {
	if tx.closed {
		return nil
	}
	if tx.batch == nil {
		// Leave the snapshot open for the deferred Rollback to release.
		return fmt.Errorf("tx not writable")
	}
	tx.closed = true
	err := tx.batch.Commit(pebble.Sync)
	if cerr := tx.batch.Close(); err == nil {
		err = cerr
	}
	return err
}

func (tx *pebbleTx) Rollback() error {
	if tx.closed {
		return nil
	}
	tx.closed = true
	if tx.batch != nil {
		return tx.batch.Close()
	}
	return tx.snap.Close()
}

type pebbleCursor struct {
	iter *pebble.Iterator
}

// Pebble invalidates Key/Value on every step, so the cursor hands out
// copies to match the lifetime the other backends provide.
func (c *pebbleCursor) pair() ([]byte, []byte) {
	if !c.iter.Valid() {
		return nil, nil
	}
	k := bytes.Clone(c.iter.Key())
	v, err := c.iter.ValueAndErr()
	if err != nil {
		panic(fmt.Errorf("pebble iterator value: %w", err))
	}
	return k, bytes.Clone(v)
}

func (c *pebbleCursor) First() ([]byte, []byte) {
	c.iter.First()
	return c.pair()
}

func (c *pebbleCursor) Last() ([]byte, []byte) {
	c.iter.Last()
	return c.pair()
}

func (c *pebbleCursor) Seek(seek []byte) ([]byte, []byte) {
	c.iter.SeekGE(seek)
	return c.pair()
}

func (c *pebbleCursor) SeekBefore(bound []byte) ([]byte, []byte) {
	c.iter.SeekLT(bound)
	return c.pair()
}

func (c *pebbleCursor) Next() ([]byte, []byte) {
	c.iter.Next()
	return c.pair()
}

func (c *pebbleCursor) Prev() ([]byte, []byte) {
	c.iter.Prev()
	return c.pair()
}

func (c *pebbleCursor) Close() error {
	return c.iter.Close()
}
