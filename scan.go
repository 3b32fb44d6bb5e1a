package kvrange

import (
	"bytes"
	"context"
	"log/slog"
)

const (
	debugLogScans = false
)

// rawRange is the encoded image of a canonical Range: an ascending
// half-open [start, end) byte range plus the traversal direction. The
// normalizer guarantees end is never empty (an unbounded upper bound
// becomes the encoded maximum sentinel).
type rawRange struct {
	start   []byte
	end     []byte
	reverse bool
}

func (r *rawRange) first(cur StorageCursor, logger *slog.Logger) ([]byte, []byte) {
	var k, v []byte
	if r.reverse {
		k, v = cur.SeekBefore(r.end)
		if debugLogScans {
			logger.LogAttrs(context.Background(), slog.LevelDebug, "SEEK_BEFORE end", hexAttr("end", r.end), hexAttr("key", k), hexAttr("val", v))
		}
	} else {
		k, v = cur.Seek(r.start)
		if debugLogScans {
			logger.LogAttrs(context.Background(), slog.LevelDebug, "SEEK to start", hexAttr("start", r.start), hexAttr("key", k), hexAttr("val", v))
		}
	}
	if k != nil && r.match(k, logger) {
		return k, v
	}
	return nil, nil
}

func (r *rawRange) next(cur StorageCursor, logger *slog.Logger) ([]byte, []byte) {
	var k, v []byte
	if r.reverse {
		k, v = cur.Prev()
		if debugLogScans {
			logger.LogAttrs(context.Background(), slog.LevelDebug, "PREV", hexAttr("key", k), hexAttr("val", v))
		}
	} else {
		k, v = cur.Next()
		if debugLogScans {
			logger.LogAttrs(context.Background(), slog.LevelDebug, "NEXT", hexAttr("key", k), hexAttr("val", v))
		}
	}
	if k != nil && r.match(k, logger) {
		return k, v
	}
	return nil, nil
}

func (r *rawRange) match(k []byte, logger *slog.Logger) bool {
	if r.reverse {
		if bytes.Compare(k, r.start) < 0 {
			if debugLogScans {
				logger.LogAttrs(context.Background(), slog.LevelDebug, "BAIL on start", hexAttr("start", r.start), hexAttr("key", k))
			}
			return false
		}
	} else {
		if bytes.Compare(k, r.end) >= 0 {
			if debugLogScans {
				logger.LogAttrs(context.Background(), slog.LevelDebug, "BAIL on end", hexAttr("end", r.end), hexAttr("key", k))
			}
			return false
		}
	}
	if debugLogScans {
		logger.LogAttrs(context.Background(), slog.LevelDebug, "MATCH", hexAttr("key", k))
	}
	return true
}

// Cursor lazily iterates the results of a Scan in the requested direction.
type Cursor struct {
	enc    Encoding
	rang   rawRange
	cur    StorageCursor
	logger *slog.Logger
	k, v   []byte
	init   bool
}

// Next advances to the next pair, returning false when the range is
// exhausted.
func (c *Cursor) Next() bool {
	if c.init {
		c.k, c.v = c.rang.next(c.cur, c.logger)
	} else {
		c.init = true
		c.k, c.v = c.rang.first(c.cur, c.logger)
	}
	return c.k != nil
}

// RawKey returns the current encoded key. The slice is only valid until the
// next call to Next.
func (c *Cursor) RawKey() []byte { return c.k }

// RawValue returns the current encoded value; same lifetime as RawKey.
func (c *Cursor) RawValue() []byte { return c.v }

// Key decodes the current key.
func (c *Cursor) Key() (Key, error) {
	return c.enc.DecodeKey(c.k)
}

// Decode decodes the current value into ptr.
func (c *Cursor) Decode(ptr any) error {
	return c.enc.DecodeValue(c.v, ptr)
}

// Close releases the underlying storage cursor. Must be called before the
// owning transaction ends.
func (c *Cursor) Close() error {
	return c.cur.Close()
}
