package cache

import (
	"testing"
	"time"
)

func TestTTLCache_SetGet(t *testing.T) {
	c := New[string, int]()
	c.Set("a", 42, time.Minute)

	got, ok := c.Get("a")
	if !ok || got != 42 {
		t.Errorf("expected (42, true), got (%d, %v)", got, ok)
	}
}

func TestTTLCache_Expiry(t *testing.T) {
	c := New[string, int]()
	c.Set("a", 1, time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestTTLCache_ZeroTTLDisablesCaching(t *testing.T) {
	c := New[string, int]()
	c.Set("a", 1, 0)

	if _, ok := c.Get("a"); ok {
		t.Error("expected zero-TTL set to be a no-op")
	}
}

func TestTTLCache_Delete(t *testing.T) {
	c := New[string, int]()
	c.Set("a", 1, time.Minute)
	c.Delete("a")

	if _, ok := c.Get("a"); ok {
		t.Error("expected deleted entry to miss")
	}
}
