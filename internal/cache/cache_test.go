package cache

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	k1 := Key("embed:text-embedding-3-small", "what is the leave policy?")
	k2 := Key("embed:text-embedding-3-small", "what is the leave policy?")
	k3 := Key("embed:text-embedding-3-small", "different query")
	k4 := Key("answer:openai", "what is the leave policy?")

	if k1 != k2 {
		t.Error("same kind and input must produce the same key")
	}
	if k1 == k3 {
		t.Error("different inputs must produce different keys")
	}
	if k1 == k4 {
		t.Error("different kinds must produce different keys")
	}
	if !strings.HasPrefix(k1, "veritas:v1:embed:text-embedding-3-small:") {
		t.Errorf("key = %q, missing namespace prefix", k1)
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("unexpected hit for missing key")
	}

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, found := c.Get("k")
	if !found || !bytes.Equal(val, []byte("v")) {
		t.Errorf("Get = %q, %v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("key survived delete")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("expired entry still readable")
	}
}

func TestDiskCache(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	key := Key("answer:openai", "query")
	if err := c.Set(key, []byte("cached answer"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	val, found := c.Get(key)
	if !found || !bytes.Equal(val, []byte("cached answer")) {
		t.Errorf("Get = %q, %v", val, found)
	}

	if err := c.Delete(key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("key survived delete")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("expired entry still readable")
	}
}

func TestDiskCache_Clear(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	_ = c.Set("a", []byte("1"), time.Minute)
	_ = c.Set("b", []byte("2"), time.Minute)

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("entry survived clear")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	// Seed the disk layer through one instance, read through a fresh one
	// whose memory layer is cold.
	seed := NewLayeredCache(time.Minute, dir, time.Hour)
	if err := seed.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	fresh := NewLayeredCache(time.Minute, dir, time.Hour)
	val, found := fresh.Get("k")
	if !found || !bytes.Equal(val, []byte("v")) {
		t.Fatalf("disk hit not served: %q, %v", val, found)
	}

	// After promotion the memory layer answers even if the disk copy goes away
	if err := fresh.disk.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := fresh.Get("k"); !found {
		t.Error("promoted entry missing from memory layer")
	}
}

func TestLayeredCache_DeleteBothLayers(t *testing.T) {
	c := NewLayeredCache(time.Minute, t.TempDir(), time.Hour)

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("key survived delete")
	}
}
