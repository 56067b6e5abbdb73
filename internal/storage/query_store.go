package storage

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/thanhnp/tx-explorer/pkg/logger"
)

// envelopeHeader is the size of the expiry prefix written before each value
const envelopeHeader = 8

// PebbleStore is a query cache on top of PebbleDB. Pebble has no native
// expiry, so each value carries its deadline (unix nanos, 0 = never).
type PebbleStore struct {
	db  *PebbleDB
	now func() time.Time
}

// NewPebbleStore creates a new PebbleStore
func NewPebbleStore(db *PebbleDB) *PebbleStore {
	return &PebbleStore{db: db, now: time.Now}
}

func encodeEnvelope(value []byte, expiresAt time.Time) []byte {
	out := make([]byte, envelopeHeader+len(value))
	if !expiresAt.IsZero() {
		binary.BigEndian.PutUint64(out[:envelopeHeader], uint64(expiresAt.UnixNano()))
	}
	copy(out[envelopeHeader:], value)
	return out
}

func decodeEnvelope(raw []byte) ([]byte, time.Time, error) {
	if len(raw) < envelopeHeader {
		return nil, time.Time{}, fmt.Errorf("corrupt cache entry: %d bytes", len(raw))
	}
	var expiresAt time.Time
	if n := binary.BigEndian.Uint64(raw[:envelopeHeader]); n != 0 {
		expiresAt = time.Unix(0, int64(n))
	}
	return raw[envelopeHeader:], expiresAt, nil
}

// Get returns the cached bytes for key, or nil when missing or expired
func (s *PebbleStore) Get(_ context.Context, key string) ([]byte, error) {
	raw, err := s.db.Get(CFQueries, []byte(key))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	value, expiresAt, err := decodeEnvelope(raw)
	if err != nil {
		return nil, err
	}
	if !expiresAt.IsZero() && !s.now().Before(expiresAt) {
		if err := s.db.Delete(CFQueries, []byte(key)); err != nil {
			logger.Warn("failed to drop expired cache entry", "key", key, "error", err)
		}
		return nil, nil
	}
	return value, nil
}

// Set stores value under key. A non-positive ttl never expires.
func (s *PebbleStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = s.now().Add(ttl)
	}
	return s.db.Put(CFQueries, []byte(key), encodeEnvelope(value, expiresAt))
}

// Delete removes key
func (s *PebbleStore) Delete(_ context.Context, key string) error {
	return s.db.Delete(CFQueries, []byte(key))
}

// PurgeExpired removes every expired entry and returns how many were dropped
func (s *PebbleStore) PurgeExpired() (int, error) {
	iter, err := s.db.NewPrefixIterator(CFQueries, nil)
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	batch := s.db.NewBatch()
	defer batch.Destroy()

	now := s.now()
	purged := 0
	for ; iter.Valid(); iter.Next() {
		_, expiresAt, err := decodeEnvelope(iter.Value())
		if err == nil && (expiresAt.IsZero() || now.Before(expiresAt)) {
			continue
		}
		if err := s.db.DeleteBatch(batch, CFQueries, iter.Key()); err != nil {
			return 0, err
		}
		purged++
	}
	// the iterator holds the database open; release it before the write
	if err := iter.Close(); err != nil {
		return 0, err
	}

	if purged == 0 {
		return 0, nil
	}
	if err := s.db.WriteBatch(batch); err != nil {
		return 0, fmt.Errorf("failed to purge expired entries: %w", err)
	}
	return purged, nil
}

// RunJanitor purges expired entries every interval until ctx is cancelled
func (s *PebbleStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PurgeExpired()
			if err != nil {
				logger.Error("cache purge failed", err)
				continue
			}
			if n > 0 {
				logger.Debug("cache purge", "purged", n)
			}
		}
	}
}
