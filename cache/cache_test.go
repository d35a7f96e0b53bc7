package cache

import (
	"testing"
	"time"

	"github.com/dredding8/malibu-ui-private/models"
)

func TestCache_HitWithinTTL(t *testing.T) {
	c := New(4, time.Minute)
	key := Key("http://localhost:3000/", "dashboard")

	c.Set(key, &models.MapResponse{Success: true, Markdown: "- **VUE Dashboard** (`/`)\n"})

	got, hit := c.Get(key)
	if !hit {
		t.Fatal("expected a cache hit")
	}
	if got.Markdown == "" {
		t.Error("cached response lost its content")
	}
}

func TestCache_MissAfterTTL(t *testing.T) {
	c := New(4, time.Millisecond)
	key := Key("http://localhost:3000/", "dashboard")
	c.Set(key, &models.MapResponse{Success: true})

	time.Sleep(5 * time.Millisecond)
	if _, hit := c.Get(key); hit {
		t.Error("entry past its TTL must miss")
	}
}

func TestCache_MissOnUnknownKey(t *testing.T) {
	c := New(4, time.Minute)
	if _, hit := c.Get(Key("http://elsewhere/", "history")); hit {
		t.Error("unknown key must miss")
	}
}

func TestCache_EvictsAtCapacity(t *testing.T) {
	c := New(2, time.Minute)
	c.Set(Key("a", "dashboard"), &models.MapResponse{})
	c.Set(Key("b", "dashboard"), &models.MapResponse{})
	c.Set(Key("c", "dashboard"), &models.MapResponse{})

	hits := 0
	for _, u := range []string{"a", "b", "c"} {
		if _, hit := c.Get(Key(u, "dashboard")); hit {
			hits++
		}
	}
	if hits != 2 {
		t.Errorf("cache at capacity 2 holds %d entries", hits)
	}
}

func TestKey_DistinguishesPage(t *testing.T) {
	if Key("u", "dashboard") == Key("u", "history") {
		t.Error("same URL with different plans must yield different keys")
	}
	if Key("u", "dashboard") != Key("u", "dashboard") {
		t.Error("key must be deterministic")
	}
}
