package caching

import (
	"testing"
	"time"
)

func TestMemoryStore(t *testing.T) {
	cache := NewMemory(time.Minute)

	if _, ok := cache.Get("missing"); ok {
		t.Error("Get() on empty cache returned a hit")
	}

	if err := cache.Set("key", []byte("value")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, ok := cache.Get("key")
	if !ok || string(data) != "value" {
		t.Errorf("Get() = %q, %v", data, ok)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	cache := NewMemory(10 * time.Millisecond)
	if err := cache.Set("key", []byte("value")); err != nil {
		t.Fatal(err)
	}

	time.Sleep(25 * time.Millisecond)
	if _, ok := cache.Get("key"); ok {
		t.Error("Get() returned a hit after TTL expiry")
	}
}

func TestFilesStore(t *testing.T) {
	cache, err := NewFiles(t.TempDir(), time.Minute)
	if err != nil {
		t.Fatalf("NewFiles() error = %v", err)
	}

	if _, ok := cache.Get("https://acme.dk/"); ok {
		t.Error("Get() on empty cache returned a hit")
	}

	if err := cache.Set("https://acme.dk/", []byte("<html>")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, ok := cache.Get("https://acme.dk/")
	if !ok || string(data) != "<html>" {
		t.Errorf("Get() = %q, %v", data, ok)
	}

	// Keys are hashed, so slash-heavy URLs never leak into file paths.
	if _, ok := cache.Get("https://acme.dk/other"); ok {
		t.Error("different key hit the same entry")
	}
}

func TestFilesStoreExpiry(t *testing.T) {
	cache, err := NewFiles(t.TempDir(), 10*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.Set("key", []byte("value")); err != nil {
		t.Fatal(err)
	}

	time.Sleep(25 * time.Millisecond)
	if _, ok := cache.Get("key"); ok {
		t.Error("Get() returned a hit after TTL expiry")
	}
}
