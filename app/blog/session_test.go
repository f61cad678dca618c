package blog

import (
	"testing"
	"time"

	"github.com/lysyi3m/fitbhaskar/app/gateway"
)

func TestSessionStore_CreateAndGet(t *testing.T) {
	store := NewSessionStore(time.Minute)
	s := store.Create(gateway.Credentials{ID: "admin", Pass: "secret"}, []Post{{Row: 1}})

	if s.Token == "" {
		t.Fatal("Expected a session token")
	}
	got := store.Get(s.Token)
	if got != s {
		t.Fatal("Expected to get the created session back")
	}
	if got.AdminID() != "admin" || len(got.Posts()) != 1 {
		t.Errorf("Unexpected session contents: id=%q posts=%d", got.AdminID(), len(got.Posts()))
	}
	if store.Get("unknown") != nil || store.Get("") != nil {
		t.Error("Unknown tokens must not resolve to a session")
	}
}

func TestSessionStore_IdleExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	store := NewSessionStore(30 * time.Minute)
	store.now = func() time.Time { return now }

	s := store.Create(gateway.Credentials{ID: "a", Pass: "b"}, nil)

	now = now.Add(20 * time.Minute)
	if store.Get(s.Token) == nil {
		t.Fatal("Session must survive within the idle window")
	}

	now = now.Add(20 * time.Minute)
	if store.Get(s.Token) == nil {
		t.Fatal("Get must refresh the idle window")
	}

	now = now.Add(31 * time.Minute)
	if store.Get(s.Token) != nil {
		t.Error("Expected idle session to expire")
	}
	if store.Count() != 0 {
		t.Errorf("Expected expired session to be removed, got %d", store.Count())
	}
}

func TestSessionStore_Sweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	store := NewSessionStore(time.Minute)
	store.now = func() time.Time { return now }

	store.Create(gateway.Credentials{ID: "a", Pass: "b"}, nil)
	now = now.Add(2 * time.Minute)
	fresh := store.Create(gateway.Credentials{ID: "c", Pass: "d"}, nil)

	if removed := store.Sweep(); removed != 1 {
		t.Errorf("Expected 1 session swept, got %d", removed)
	}
	if store.Count() != 1 || store.Get(fresh.Token) == nil {
		t.Error("Expected the fresh session to remain")
	}
}

func TestSessionStore_PostsAreCopied(t *testing.T) {
	store := NewSessionStore(0)
	s := store.Create(gateway.Credentials{ID: "a", Pass: "b"}, []Post{{Row: 1, Subject: "X"}})

	posts := s.Posts()
	posts[0].Subject = "changed"

	if s.Posts()[0].Subject != "X" {
		t.Error("Mutating returned posts must not change the session")
	}
}

func TestAdminSession_LaterListingWins(t *testing.T) {
	store := NewSessionStore(time.Hour)
	s := store.Create(gateway.Credentials{ID: "admin", Pass: "secret"}, nil)

	older := s.beginListing()
	newer := s.beginListing()
	s.setPosts(newer, []Post{{Row: 2}})
	s.setPosts(older, []Post{{Row: 1}})

	if posts := s.Posts(); len(posts) != 1 || posts[0].Row != 2 {
		t.Errorf("Expected the later listing to be kept, got %+v", posts)
	}
}
