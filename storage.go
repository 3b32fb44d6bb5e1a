package kvrange

// Storage represents a key-value storage backend (Bolt, Pebble, in-memory)
// holding one keyspace of encoded keys in ascending byte order.
type Storage interface {
	// BeginTx starts a new transaction.
	BeginTx(writable bool) (StorageTx, error)
	// Close closes the storage.
	Close() error
}

// StorageTx represents a storage transaction.
type StorageTx interface {
	// Writable returns true if this is a writable transaction.
	Writable() bool

	// Get retrieves a value by encoded key. Returns nil, nil if not found.
	Get(key []byte) ([]byte, error)

	// Put stores an encoded key-value pair.
	Put(key, value []byte) error

	// Delete removes a key.
	Delete(key []byte) error

	// Cursor returns a cursor for iteration. Cursors must be closed before
	// the transaction ends.
	Cursor() StorageCursor

	// Commit commits the transaction.
	Commit() error

	// Rollback aborts the transaction. It should be safe to call multiple times.
	Rollback() error
}

// StorageCursor iterates a keyspace in ascending encoded order. This is the
// range-scan primitive consumed by Scan: a lazily-iterated, restartable
// sequence of encoded pairs.
type StorageCursor interface {
	// First moves to the first key-value pair.
	First() (key, value []byte)

	// Last moves to the last key-value pair.
	Last() (key, value []byte)

	// Seek moves to the first key >= seek.
	Seek(seek []byte) (key, value []byte)

	// SeekBefore moves to the last key strictly before bound. This is
	// commonly implemented as: Seek(bound) then Prev().
	SeekBefore(bound []byte) (key, value []byte)

	// Next moves to the next key-value pair.
	Next() (key, value []byte)

	// Prev moves to the previous key-value pair.
	Prev() (key, value []byte)

	// Close releases the cursor.
	Close() error
}
