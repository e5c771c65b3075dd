package session

import (
	"context"
	"errors"
	"testing"

	"vectorhire/internal/store"
)

func newTestHolder(t *testing.T) *Holder {
	t.Helper()
	h, err := NewHolder(store.NewMemorySlot(), store.NewMemorySlot(), "admin@demo.com", "Admin@123", "Hashim")
	if err != nil {
		t.Fatalf("new holder: %v", err)
	}
	return h
}

func TestLogin_DemoCredential(t *testing.T) {
	ctx := context.Background()
	h := newTestHolder(t)

	sess, err := h.Login(ctx, "admin@demo.com", "Admin@123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Role != RoleAdmin {
		t.Fatalf("expected admin role got %s", sess.Role)
	}
	if sess.Email != "admin@demo.com" {
		t.Fatalf("unexpected email %s", sess.Email)
	}

	current := h.Current(ctx)
	if current == nil || current.ID != sess.ID {
		t.Fatalf("session not persisted: %+v", current)
	}
}

func TestLogin_InvalidCredentialLeavesSessionUntouched(t *testing.T) {
	ctx := context.Background()
	h := newTestHolder(t)

	cases := []struct{ email, password string }{
		{"admin@demo.com", "wrong"},
		{"someone@else.com", "Admin@123"},
		{"", ""},
	}
	for _, tc := range cases {
		sess, err := h.Login(ctx, tc.email, tc.password)
		if !errors.Is(err, ErrInvalidCredential) {
			t.Fatalf("login(%q,%q): expected ErrInvalidCredential got %v", tc.email, tc.password, err)
		}
		if sess != nil {
			t.Fatalf("login(%q,%q): expected no session", tc.email, tc.password)
		}
	}

	if current := h.Current(ctx); current != nil {
		t.Fatalf("failed login set a session: %+v", current)
	}
}

func TestSignup_NewEmail(t *testing.T) {
	ctx := context.Background()
	h := newTestHolder(t)

	sess, err := h.Signup(ctx, "Layla", "layla@example.com")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if sess.Role != RoleApplicant {
		t.Fatalf("expected applicant role got %s", sess.Role)
	}
	if sess.ID == "" {
		t.Fatalf("expected generated id")
	}

	current := h.Current(ctx)
	if current == nil || current.Email != "layla@example.com" {
		t.Fatalf("session not persisted: %+v", current)
	}
}

func TestSignup_EmailTaken(t *testing.T) {
	ctx := context.Background()
	h := newTestHolder(t)

	first, err := h.Signup(ctx, "Layla", "layla@example.com")
	if err != nil {
		t.Fatalf("first signup: %v", err)
	}

	_, err = h.Signup(ctx, "Other Layla", "layla@example.com")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken got %v", err)
	}

	// The live session still belongs to the first signup.
	current := h.Current(ctx)
	if current == nil || current.ID != first.ID {
		t.Fatalf("conflicting signup changed the session: %+v", current)
	}
}

func TestSetOverwritesAndClearRemoves(t *testing.T) {
	ctx := context.Background()
	h := newTestHolder(t)

	if err := h.Set(ctx, Session{ID: "u1", Email: "a@x.com", Role: RoleApplicant}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := h.Set(ctx, Session{ID: "u2", Email: "b@x.com", Role: RoleApplicant}); err != nil {
		t.Fatalf("second set: %v", err)
	}

	current := h.Current(ctx)
	if current == nil || current.ID != "u2" {
		t.Fatalf("expected second session to win: %+v", current)
	}

	if err := h.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if current := h.Current(ctx); current != nil {
		t.Fatalf("expected no session after clear: %+v", current)
	}
}

func TestCurrent_CorruptSlotReadsAsNoSession(t *testing.T) {
	ctx := context.Background()
	sessionSlot := store.NewMemorySlot()
	if err := sessionSlot.Write(ctx, []byte("{broken")); err != nil {
		t.Fatalf("write: %v", err)
	}

	h, err := NewHolder(sessionSlot, store.NewMemorySlot(), "admin@demo.com", "Admin@123", "Hashim")
	if err != nil {
		t.Fatalf("new holder: %v", err)
	}
	if current := h.Current(ctx); current != nil {
		t.Fatalf("corrupt slot should read as no session: %+v", current)
	}
}
