// Package session tracks the single authenticated identity and implements
// the demo login/signup flows. State lives in injected slots so tests can
// substitute in-memory fakes.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"vectorhire/internal/store"
)

// Role tags carried by a session.
const (
	RoleAdmin     = "admin"
	RoleApplicant = "applicant"
)

// Typed failure reasons surfaced directly to the caller.
var (
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrEmailTaken        = errors.New("email already registered")
)

// Session 表示当前登录身份。每个客户端同时至多一个会话，Set 即覆盖。
type Session struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Holder persists the live session and the signup registry.
type Holder struct {
	sessionSlot store.Slot
	signupSlot  store.Slot

	demoEmail string
	demoName  string
	demoHash  []byte
}

// NewHolder hashes the demo credential once and returns a holder over the
// given slots.
func NewHolder(sessionSlot, signupSlot store.Slot, demoEmail, demoPassword, demoName string) (*Holder, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo credential: %w", err)
	}
	return &Holder{
		sessionSlot: sessionSlot,
		signupSlot:  signupSlot,
		demoEmail:   strings.ToLower(strings.TrimSpace(demoEmail)),
		demoName:    demoName,
		demoHash:    hash,
	}, nil
}

// Current returns the live session, or nil when none is set. A corrupt
// session slot reads as no session.
func (h *Holder) Current(ctx context.Context) *Session {
	data, err := h.sessionSlot.Read(ctx)
	if err != nil || len(data) == 0 {
		return nil
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	return &s
}

// Set overwrites the live session.
func (h *Holder) Set(ctx context.Context, s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := h.sessionSlot.Write(ctx, data); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Clear removes the live session entirely.
func (h *Holder) Clear(ctx context.Context) error {
	if err := h.sessionSlot.Delete(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Login checks the credential against the single demo identity. On success
// the admin session is set and returned; on failure the live session is left
// untouched.
func (h *Holder) Login(ctx context.Context, email, password string) (*Session, error) {
	if strings.ToLower(strings.TrimSpace(email)) != h.demoEmail {
		return nil, ErrInvalidCredential
	}
	if bcrypt.CompareHashAndPassword(h.demoHash, []byte(password)) != nil {
		return nil, ErrInvalidCredential
	}

	s := Session{
		ID:    "admin-1",
		Email: h.demoEmail,
		Name:  h.demoName,
		Role:  RoleAdmin,
	}
	if err := h.Set(ctx, s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Signup registers a new applicant identity. Emails are matched exactly
// against the persisted registry; a collision returns ErrEmailTaken with no
// session change.
func (h *Holder) Signup(ctx context.Context, name, email string) (*Session, error) {
	email = strings.TrimSpace(email)
	registry := h.readRegistry(ctx)
	for _, existing := range registry {
		if existing.Email == email {
			return nil, ErrEmailTaken
		}
	}

	s := Session{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
		Role:  RoleApplicant,
	}

	registry = append(registry, s)
	data, err := json.Marshal(registry)
	if err != nil {
		return nil, fmt.Errorf("encode signup registry: %w", err)
	}
	if err := h.signupSlot.Write(ctx, data); err != nil {
		return nil, fmt.Errorf("persist signup registry: %w", err)
	}

	if err := h.Set(ctx, s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (h *Holder) readRegistry(ctx context.Context) []Session {
	data, err := h.signupSlot.Read(ctx)
	if err != nil || len(data) == 0 {
		return []Session{}
	}
	var registry []Session
	if err := json.Unmarshal(data, &registry); err != nil {
		return []Session{}
	}
	return registry
}
