package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// Key prefixes (simulating column families)
const (
	PrefixQueries = "qry:"
)

// Column family names
const (
	CFQueries = "queries"
)

// ErrClosed is returned by operations on a closed database
var ErrClosed = errors.New("database is closed")

// Column family name to prefix mapping
var cfPrefixes = map[string]string{
	CFQueries: PrefixQueries,
}

// PebbleDB wraps the Pebble database
type PebbleDB struct {
	db     *pebble.DB
	noSync bool // cache data can be rebuilt, so writes may skip fsync

	// detached fetches may still write while the server shuts down
	mu     sync.RWMutex
	closed bool
}

// WriteBatch wraps Pebble's batch for atomic writes
type WriteBatch struct {
	batch *pebble.Batch
	db    *PebbleDB
}

// Iterator wraps Pebble's iterator. It keeps the database open until
// Close, so Close the iterator before any write on the same goroutine.
type Iterator struct {
	iter     *pebble.Iterator
	prefix   []byte // full prefix (cf + user prefix) for bounds checking
	cfPrefix []byte // just the column family prefix (to strip from keys)
	release  func()
	once     sync.Once
}

// NewPebbleDB opens an on-disk PebbleDB at path
func NewPebbleDB(path string, cacheSize int64) (*PebbleDB, error) {
	// Ensure directory exists
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if cacheSize <= 0 {
		cacheSize = 64 << 20
	}
	cache := pebble.NewCache(cacheSize)
	defer cache.Unref()

	opts := &pebble.Options{
		Cache:        cache,
		MaxOpenFiles: 500,
	}

	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &PebbleDB{db: db, noSync: true}, nil
}

// NewMemPebbleDB opens a PebbleDB backed by an in-memory filesystem
func NewMemPebbleDB() (*PebbleDB, error) {
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return &PebbleDB{db: db, noSync: true}, nil
}

// Close closes the database. Later operations fail with ErrClosed.
func (p *PebbleDB) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.db.Close()
}

// acquire holds the database open until the returned func is called
func (p *PebbleDB) acquire() (func(), error) {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return nil, ErrClosed
	}
	return p.mu.RUnlock, nil
}

// Sync forces buffered writes to disk
func (p *PebbleDB) Sync() error {
	release, err := p.acquire()
	if err != nil {
		return err
	}
	defer release()
	return p.db.Flush()
}

// writeOptions returns the appropriate write options based on sync mode
func (p *PebbleDB) writeOptions() *pebble.WriteOptions {
	if p.noSync {
		return pebble.NoSync
	}
	return pebble.Sync
}

// prefixKey creates a prefixed key for the given column family
func (p *PebbleDB) prefixKey(cf string, key []byte) ([]byte, error) {
	prefix, ok := cfPrefixes[cf]
	if !ok {
		return nil, fmt.Errorf("column family not found: %s", cf)
	}
	return append([]byte(prefix), key...), nil
}

// Put stores a key-value pair in the specified column family
func (p *PebbleDB) Put(cf string, key, value []byte) error {
	prefixedKey, err := p.prefixKey(cf, key)
	if err != nil {
		return err
	}
	release, err := p.acquire()
	if err != nil {
		return err
	}
	defer release()
	return p.db.Set(prefixedKey, value, p.writeOptions())
}

// Get retrieves a value from the specified column family.
// A missing key yields nil, nil.
func (p *PebbleDB) Get(cf string, key []byte) ([]byte, error) {
	prefixedKey, err := p.prefixKey(cf, key)
	if err != nil {
		return nil, err
	}
	release, err := p.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	value, closer, err := p.db.Get(prefixedKey)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	defer closer.Close()

	// Copy the value since it's only valid until closer.Close()
	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

// Delete removes a key from the specified column family
func (p *PebbleDB) Delete(cf string, key []byte) error {
	prefixedKey, err := p.prefixKey(cf, key)
	if err != nil {
		return err
	}
	release, err := p.acquire()
	if err != nil {
		return err
	}
	defer release()
	return p.db.Delete(prefixedKey, p.writeOptions())
}

// NewBatch creates a new write batch
func (p *PebbleDB) NewBatch() *WriteBatch {
	return &WriteBatch{
		batch: p.db.NewBatch(),
		db:    p,
	}
}

// WriteBatch writes a batch to the database
func (p *PebbleDB) WriteBatch(batch *WriteBatch) error {
	release, err := p.acquire()
	if err != nil {
		return err
	}
	defer release()
	return batch.batch.Commit(p.writeOptions())
}

// DeleteBatch adds a delete operation to the batch
func (p *PebbleDB) DeleteBatch(batch *WriteBatch, cf string, key []byte) error {
	prefixedKey, err := p.prefixKey(cf, key)
	if err != nil {
		return err
	}
	return batch.batch.Delete(prefixedKey, nil)
}

// Destroy closes the batch and releases resources
func (b *WriteBatch) Destroy() {
	b.batch.Close()
}

// NewPrefixIterator creates an iterator over keys of cf that start with prefix
func (p *PebbleDB) NewPrefixIterator(cf string, prefix []byte) (*Iterator, error) {
	cfPrefix, ok := cfPrefixes[cf]
	if !ok {
		return nil, fmt.Errorf("column family not found: %s", cf)
	}

	release, err := p.acquire()
	if err != nil {
		return nil, err
	}

	cfPrefixBytes := []byte(cfPrefix)
	fullPrefix := append(append([]byte{}, cfPrefixBytes...), prefix...)
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: fullPrefix,
		UpperBound: prefixUpperBound(fullPrefix),
	})
	if err != nil {
		release()
		return nil, err
	}

	iter.First()
	return &Iterator{iter: iter, prefix: fullPrefix, cfPrefix: cfPrefixBytes, release: release}, nil
}

// prefixUpperBound returns the upper bound for prefix iteration
func prefixUpperBound(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}
	upper := make([]byte, len(prefix))
	copy(upper, prefix)
	for i := len(upper) - 1; i >= 0; i-- {
		if upper[i] < 0xff {
			upper[i]++
			return upper[:i+1]
		}
	}
	return nil
}

// Valid returns true if the iterator is positioned at a valid key
func (i *Iterator) Valid() bool {
	return i.iter.Valid()
}

// Next advances the iterator to the next key
func (i *Iterator) Next() bool {
	return i.iter.Next()
}

// Key returns the current key (without the column family prefix)
func (i *Iterator) Key() []byte {
	key := i.iter.Key()
	if len(key) > len(i.cfPrefix) && bytes.HasPrefix(key, i.cfPrefix) {
		out := make([]byte, len(key)-len(i.cfPrefix))
		copy(out, key[len(i.cfPrefix):])
		return out
	}
	return key
}

// Value returns the current value
func (i *Iterator) Value() []byte {
	return i.iter.Value()
}

// Close closes the iterator and lets the database close. Repeated calls
// are no-ops.
func (i *Iterator) Close() error {
	var err error
	i.once.Do(func() {
		err = i.iter.Close()
		i.release()
	})
	return err
}
