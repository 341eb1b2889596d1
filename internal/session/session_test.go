package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	ident := Identity{Role: RoleSubmitter, UserID: 42, Email: "sub@example.edu"}
	sid, err := store.Create(ctx, ident, time.Minute)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sid == "" {
		t.Fatal("Create returned empty session id")
	}

	got, found, err := store.Get(ctx, sid)
	if err != nil || !found {
		t.Fatalf("Get: found=%v err=%v", found, err)
	}
	if got != ident {
		t.Errorf("Get = %+v, want %+v", got, ident)
	}

	if err := store.Delete(ctx, sid); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := store.Get(ctx, sid); found {
		t.Error("session still found after Delete")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	sid, err := store.Create(ctx, Identity{Role: RoleAdmin}, -time.Second)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, found, _ := store.Get(ctx, sid); found {
		t.Error("expired session still found")
	}
}

func TestManagerIssueAndResolve(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), "test-secret", time.Minute)

	ident := Identity{Role: RoleAdmin, Email: "admin@example.edu"}
	cookie, err := m.Issue(ctx, ident)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if cookie.Name != CookieName || !cookie.HttpOnly {
		t.Errorf("cookie = %+v, want HttpOnly %q cookie", cookie, CookieName)
	}

	if got := m.Resolve(ctx, cookie.Value); got != ident {
		t.Errorf("Resolve = %+v, want %+v", got, ident)
	}
}

func TestManagerRejectsBadCookies(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), "test-secret", time.Minute)
	cookie, err := m.Issue(ctx, Identity{Role: RoleSubmitter, UserID: 7})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"not a jwt", "garbage"},
		{"tampered", cookie.Value + "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Resolve(ctx, tt.value); !got.IsAnonymous() {
				t.Errorf("Resolve(%q) = %+v, want anonymous", tt.value, got)
			}
		})
	}

	// A cookie signed with a different secret must not resolve.
	other := NewManager(m.Store, "other-secret", time.Minute)
	if got := other.Resolve(ctx, cookie.Value); !got.IsAnonymous() {
		t.Errorf("foreign-secret Resolve = %+v, want anonymous", got)
	}
}

func TestManagerDrop(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), "test-secret", time.Minute)
	cookie, err := m.Issue(ctx, Identity{Role: RoleSubmitter, UserID: 9})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	expired := m.Drop(ctx, cookie.Value)
	if expired.MaxAge != -1 {
		t.Errorf("Drop cookie MaxAge = %d, want -1", expired.MaxAge)
	}
	if got := m.Resolve(ctx, cookie.Value); !got.IsAnonymous() {
		t.Errorf("Resolve after Drop = %+v, want anonymous", got)
	}
}

func TestIdentityPredicates(t *testing.T) {
	if !(Identity{}).IsAnonymous() {
		t.Error("zero Identity should be anonymous")
	}
	if !(Identity{Role: RoleAdmin}).IsAdmin() {
		t.Error("admin identity not recognized")
	}
	if (Identity{Role: RoleSubmitter}).IsSubmitter() {
		t.Error("submitter without user id should not count as submitter")
	}
	if !(Identity{Role: RoleSubmitter, UserID: 1}).IsSubmitter() {
		t.Error("submitter with user id not recognized")
	}
}
