package kvrange

import (
	"go.etcd.io/bbolt"
)

var boltDataBucket = []byte("data")

type boltStorage struct {
	bdb *bbolt.DB
}

// OpenBolt opens (creating if necessary) a Bolt-backed Storage at the given
// path.
func OpenBolt(path string) (Storage, error) {
	// InitialMmapSize keeps commits from remapping the file while read
	// transactions are open; a same-goroutine commit under an open reader
	// would otherwise deadlock on bbolt's mmap lock (review finding F4).
	bdb, err := bbolt.Open(path, 0o666, &bbolt.Options{InitialMmapSize: 1 << 24})
	if err != nil {
		return nil, err
	}
	return NewBoltStorage(bdb)
}

// NewBoltStorage wraps an already-open Bolt database, ensuring the data
// bucket exists. The caller retains ownership of other buckets in the file.
func NewBoltStorage(bdb *bbolt.DB) (Storage, error) {
	err := bdb.Update(func(btx *bbolt.Tx) error {
		_, err := btx.CreateBucketIfNotExists(boltDataBucket)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &boltStorage{bdb: bdb}, nil
}

func (s *boltStorage) BeginTx(writable bool) (StorageTx, error) {
	btx, err := s.bdb.Begin(writable)
	if err != nil {
		return nil, err
	}
	return &boltTx{btx: btx, buck: btx.Bucket(boltDataBucket)}, nil
}

func (s *boltStorage) Close() error {
	return s.bdb.Close()
}

type boltTx struct {
	btx  *bbolt.Tx
	buck *bbolt.Bucket
}

func (tx *boltTx) BoltTx() *bbolt.Tx { return tx.btx }

func (tx *boltTx) Writable() bool { return tx.btx.Writable() }

func (tx *boltTx) Get(key []byte) ([]byte, error) {
	return tx.buck.Get(key), nil
}

func (tx *boltTx) Put(key, value []byte) error {
	return tx.buck.Put(key, value)
}

func (tx *boltTx) Delete(key []byte) error {
	return tx.buck.Delete(key)
}

func (tx *boltTx) Cursor() StorageCursor {
	return boltCursor{c: tx.buck.Cursor()}
}

func (tx *boltTx) Commit() error { return tx.btx.Commit() }

func (tx *boltTx) Rollback() error {
	err := tx.btx.Rollback()
	if err == bbolt.ErrTxClosed {
		return nil
	}
	return err
}

type boltCursor struct {
	c *bbolt.Cursor
}

func (c boltCursor) First() ([]byte, []byte) { return c.c.First() }

func (c boltCursor) Last() ([]byte, []byte) { return c.c.Last() }

func (c boltCursor) Seek(seek []byte) ([]byte, []byte) { return c.c.Seek(seek) }

func (c boltCursor) SeekBefore(bound []byte) ([]byte, []byte) {
	k, _ := c.c.Seek(bound)
	if k == nil {
		return c.c.Last()
	}
	return c.c.Prev()
}

func (c boltCursor) Next() ([]byte, []byte) { return c.c.Next() }

func (c boltCursor) Prev() ([]byte, []byte) { return c.c.Prev() }

func (c boltCursor) Close() error { return nil }
