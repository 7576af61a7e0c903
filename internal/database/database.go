// Package database provides persistent caching of provider responses using BoltDB.
package database

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	dbFileMode = 0600
	dbDirMode  = 0755

	defaultDBFile = "data.db"
)

var detailsBucket = []byte("details")

// DetailsCache is one persisted details lookup.
type DetailsCache struct {
	Provider  string    `json:"provider"`
	MediaType string    `json:"media_type"`
	ID        int       `json:"id"`
	Payload   []byte    `json:"payload"` // JSON-encoded models.MediaDetails
	CreatedAt time.Time `json:"created_at"`
}

// Database defines the interface for data persistence operations.
type Database interface {
	// GetCachedDetails retrieves a cached details payload, or nil when absent
	GetCachedDetails(provider, mediaType string, id int) (*DetailsCache, error)
	// StoreDetails persists a details payload
	StoreDetails(cache *DetailsCache) error
	// Close closes the database
	Close() error
}

// BoltDB implements the Database interface using BoltDB.
type BoltDB struct {
	db *bolt.DB
}

// NewBolt opens (or creates) the database at path.
func NewBolt(path string) (*BoltDB, error) {
	if path == "" {
		path = filepath.Join(".", defaultDBFile)
	}

	if err := os.MkdirAll(filepath.Dir(path), dbDirMode); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bolt.Open(path, dbFileMode, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(detailsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltDB{db: db}, nil
}

func detailsKey(provider, mediaType string, id int) []byte {
	return []byte(fmt.Sprintf("%s:%s:%d", provider, mediaType, id))
}

// GetCachedDetails returns the stored payload for the given provider-scoped id,
// or nil when nothing has been stored.
func (b *BoltDB) GetCachedDetails(provider, mediaType string, id int) (*DetailsCache, error) {
	var cached *DetailsCache

	err := b.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(detailsBucket).Get(detailsKey(provider, mediaType, id))
		if data == nil {
			return nil
		}
		var dc DetailsCache
		if err := json.Unmarshal(data, &dc); err != nil {
			return fmt.Errorf("failed to decode cached details: %w", err)
		}
		cached = &dc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cached, nil
}

// StoreDetails persists cache, stamping CreatedAt when unset.
func (b *BoltDB) StoreDetails(cache *DetailsCache) error {
	if cache.CreatedAt.IsZero() {
		cache.CreatedAt = time.Now()
	}

	data, err := json.Marshal(cache)
	if err != nil {
		return fmt.Errorf("failed to encode details: %w", err)
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(detailsBucket).Put(detailsKey(cache.Provider, cache.MediaType, cache.ID), data)
	})
}

// Close closes the underlying BoltDB handle.
func (b *BoltDB) Close() error {
	return b.db.Close()
}
