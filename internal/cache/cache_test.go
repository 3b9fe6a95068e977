package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/aspecta/internal/model"
)

func TestKey_StableAndNamespaced(t *testing.T) {
	a := Key("parse", "model", "тепловое воздействие")
	b := Key("parse", "model", "тепловое воздействие")
	if a != b {
		t.Errorf("expected stable key, got %s and %s", a, b)
	}

	if Key("predict", "model", "тепловое воздействие") == a {
		t.Error("expected namespaces to produce different keys")
	}

	// part boundaries matter
	if Key("parse", "ab", "c") == Key("parse", "a", "bc") {
		t.Error("expected part boundaries to change the key")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, ok := c.Get("k"); ok {
		t.Fatal("expected miss on empty cache")
	}

	_ = c.Set("k", []byte("v"), 0)
	got, ok := c.Get("k")
	if !ok || string(got) != "v" {
		t.Errorf("expected hit with v, got %q %v", got, ok)
	}
	if c.ItemCount() != 1 {
		t.Errorf("expected 1 item, got %d", c.ItemCount())
	}

	_ = c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("expected miss after delete")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("k", []byte("v"), 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("expected entry to expire")
	}
}

func TestDiskCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c := NewDiskCache(dir, time.Hour)

	key := Key("parse", "x")
	if err := c.Set(key, []byte(`[{"index":0}]`), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := c.Get(key)
	if !ok || string(got) != `[{"index":0}]` {
		t.Errorf("expected stored value, got %q %v", got, ok)
	}

	if err := c.Delete(key); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if err := c.Delete(key); err != nil {
		t.Errorf("expected deleting a missing key to succeed, got %v", err)
	}
	if _, ok := c.Get(key); ok {
		t.Error("expected miss after delete")
	}
}

func TestDiskCache_Expired(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	_ = c.Set("k", []byte("v"), -time.Second)

	if _, ok := c.Get("k"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	disk := NewDiskCache(dir, time.Hour)
	_ = disk.Set("k", []byte("v"), 0)

	c := NewLayeredCache(time.Hour, dir, time.Hour)
	got, ok := c.Get("k")
	if !ok || string(got) != "v" {
		t.Fatalf("expected disk hit, got %q %v", got, ok)
	}

	if _, ok := c.memory.Get("k"); !ok {
		t.Error("expected value promoted to memory")
	}
}

func TestNew(t *testing.T) {
	if _, ok := New(model.CacheConfig{Enabled: false}).(Nop); !ok {
		t.Error("expected Nop cache when disabled")
	}

	if _, ok := New(model.CacheConfig{Enabled: true, MemoryTTL: time.Minute}).(*MemoryCache); !ok {
		t.Error("expected memory cache without a directory")
	}

	cfg := model.CacheConfig{Enabled: true, Dir: t.TempDir(), MemoryTTL: time.Minute, DiskTTL: time.Hour}
	if _, ok := New(cfg).(*LayeredCache); !ok {
		t.Error("expected layered cache with a directory")
	}
}

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	_ = c.Set("k", []byte("v"), time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Error("expected Nop to never hit")
	}
}
