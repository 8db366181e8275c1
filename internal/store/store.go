package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketThumbnails = []byte("thumbnails")

// thumbnailEntry is the serialized form of a cached image
type thumbnailEntry struct {
	URL     string    `json:"url"`
	Data    []byte    `json:"data"`
	SavedAt time.Time `json:"saved_at"`
}

// ThumbnailStore implements domain.ThumbnailStore using BoltDB.
type ThumbnailStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewThumbnailStore opens the cache database under baseCacheDir, in a
// subdirectory derived from the API base URL. An empty baseCacheDir keeps
// thumbnails in memory only.
func NewThumbnailStore(baseCacheDir, apiURL string) (*ThumbnailStore, error) {
	if baseCacheDir == "" {
		return &ThumbnailStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if apiURL != "" {
		dir = filepath.Join(baseCacheDir, hashURL(apiURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "aulas.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketThumbnails)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &ThumbnailStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashURL(u string) string {
	normalized := strings.TrimRight(strings.ToLower(u), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

// thumbnailKey is the bucket key for an image URL
func thumbnailKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])
}

func (s *ThumbnailStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetThumbnail returns cached image bytes for url
func (s *ThumbnailStore) GetThumbnail(url string) ([]byte, bool) {
	key := thumbnailKey(url)

	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return data, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false
	}

	var raw []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketThumbnails)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			raw = make([]byte, len(v))
			copy(raw, v)
		}
		return nil
	})
	if raw == nil {
		return nil, false
	}

	var entry thumbnailEntry
	if err := json.Unmarshal(raw, &entry); err != nil || entry.URL != url {
		return nil, false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = entry.Data
	s.mu.Unlock()

	return entry.Data, true
}

// SaveThumbnail stores image bytes for url
func (s *ThumbnailStore) SaveThumbnail(url string, data []byte) error {
	key := thumbnailKey(url)

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	raw, err := json.Marshal(thumbnailEntry{URL: url, Data: data, SavedAt: time.Now()})
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketThumbnails).Put([]byte(key), raw)
	})
}

// InvalidateAll drops every cached thumbnail. The database file is kept.
func (s *ThumbnailStore) InvalidateAll() error {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketThumbnails); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		_, err := tx.CreateBucket(bucketThumbnails)
		return err
	})
}

// Len returns the number of thumbnails on disk (or in memory when not persisted)
func (s *ThumbnailStore) Len() int {
	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return len(s.cache)
	}
	n := 0
	s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketThumbnails).Stats().KeyN
		return nil
	})
	return n
}
