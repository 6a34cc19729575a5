// Package caching provides the fetch-result cache injected into the fetcher.
// Repeated audits of the same URL inside the TTL window may serve stale
// content; that staleness is an accepted tradeoff, not a consistency bug.
package caching

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Store is a key -> value cache with a TTL owned by the caller.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, data []byte) error
}

// Files is a file-based Store. Entries live under a directory, keyed by the
// SHA256 of the cache key, and expire by file mtime.
type Files struct {
	path string
	ttl  time.Duration
}

// NewFiles creates a file-based cache, creating the directory if needed.
func NewFiles(path string, ttl time.Duration) (*Files, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Files{path: path, ttl: ttl}, nil
}

func (c *Files) key(key string) string {
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", hash)
}

// Get retrieves an item, reporting false on miss or expiry.
func (c *Files) Get(key string) ([]byte, bool) {
	filePath := filepath.Join(c.path, c.key(key))

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set adds an item to the cache.
func (c *Files) Set(key string, data []byte) error {
	filePath := filepath.Join(c.path, c.key(key))
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

type memoryItem struct {
	data    []byte
	written time.Time
}

// Memory is an in-process Store. One audit hits the same origin several times
// (robots.txt, trust pages), so even a per-run cache pays off.
type Memory struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]memoryItem
}

// NewMemory creates an in-memory cache with the given TTL.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, items: make(map[string]memoryItem)}
}

func (c *Memory) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || time.Since(item.written) > c.ttl {
		return nil, false
	}
	return item.data, true
}

func (c *Memory) Set(key string, data []byte) error {
	c.mu.Lock()
	c.items[key] = memoryItem{data: data, written: time.Now()}
	c.mu.Unlock()
	return nil
}
