package server

import (
	"context"
	"testing"
	"time"
)

func TestSessionStore_SweepExpired(t *testing.T) {
	store := NewSessionStore(time.Minute)
	idle, err := store.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	active, err := store.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	store.mu.Lock()
	idle.lastUsed = time.Now().Add(-2 * time.Minute)
	store.mu.Unlock()

	if n := store.Sweep(time.Now()); n != 1 {
		t.Errorf("Sweep() = %d, want 1", n)
	}
	if _, ok := store.Get(idle.ID); ok {
		t.Error("idle session still present")
	}
	if _, ok := store.Get(active.ID); !ok {
		t.Error("active session removed")
	}
}

func TestSessionStore_GetRefreshes(t *testing.T) {
	store := NewSessionStore(time.Minute)
	sess, err := store.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	store.mu.Lock()
	sess.lastUsed = time.Now().Add(-2 * time.Minute)
	store.mu.Unlock()

	store.Get(sess.ID)
	if n := store.Sweep(time.Now()); n != 0 {
		t.Errorf("Sweep() = %d, want 0 after Get", n)
	}
}

func TestSessionStore_NoTTL(t *testing.T) {
	store := NewSessionStore(0)
	if _, err := store.Create(); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if n := store.Sweep(time.Now().Add(24 * time.Hour)); n != 0 {
		t.Errorf("Sweep() = %d, want 0", n)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store.Run(ctx)
}

func TestSessionStore_RunStopsOnCancel(t *testing.T) {
	store := NewSessionStore(10 * time.Millisecond)
	if _, err := store.Create(); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for store.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if n := store.Len(); n != 0 {
		t.Errorf("Len() = %d after sweeping, want 0", n)
	}
}

func TestServer_ExpiredCookieStartsNewSession(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t, &stubCompleter{})}
	c.get("/")
	first := c.cookie.Value

	c.srv.sessions.Sweep(time.Now().Add(2 * c.srv.config.SessionTTL))
	if n := c.srv.sessions.Len(); n != 0 {
		t.Fatalf("Len() = %d after sweep, want 0", n)
	}

	c.get("/")
	if c.cookie.Value == first {
		t.Error("expired session id reused")
	}
	if n := c.srv.sessions.Len(); n != 1 {
		t.Errorf("Len() = %d, want 1", n)
	}
}
