package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/aletheia/portal/api"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// Keys under which a browser session keeps its authentication.
const (
	TokenKey = "aletheia_token"
	UserKey  = "aletheia_user"
)

// Hashes the session navigates to.
const (
	LoginHash        = "#/login"
	LandlordHomeHash = "#/dashboard"
	TenantHomeHash   = "#/tenant"
	RootHash         = "#/"
	RoleLandlord     = api.RoleLandlord
	RoleTenant       = api.RoleTenant
)

// SessionStore persists string values per browser session id.
// Implementations must be safe for concurrent use.
type SessionStore interface {
	Get(ctx context.Context, sid, key string) (string, bool, error)
	// Set writes all values together.
	Set(ctx context.Context, sid string, values map[string]string) error
	Delete(ctx context.Context, sid string, keys ...string) error
}

// Navigator moves the browser to another hash.
type Navigator interface {
	Navigate(hash string)
}

// Session is the token and profile of one browser session. Every read and
// write goes through its store.
type Session struct {
	id    string
	store SessionStore
	nav   Navigator
	log   zerolog.Logger
	now   func() time.Time
}

// NewSession binds a session id to its store and to the tab it navigates.
func NewSession(id string, store SessionStore, nav Navigator) *Session {
	return &Session{id: id, store: store, nav: nav, log: zerolog.Nop(), now: time.Now}
}

func (s *Session) ID() string { return s.id }

func (s *Session) get(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.store.Get(ctx, s.id, key)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("session read failed")
		return "", false
	}
	return v, ok && v != ""
}

// Token returns the stored token.
func (s *Session) Token(ctx context.Context) (string, bool) {
	return s.get(ctx, TokenKey)
}

// User returns the stored profile, or false when it is missing or unparseable.
func (s *Session) User(ctx context.Context) (api.Profile, bool) {
	raw, ok := s.get(ctx, UserKey)
	if !ok {
		return api.Profile{}, false
	}
	var p api.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return api.Profile{}, false
	}
	return p, true
}

func (s *Session) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.Token(ctx)
	return ok
}

// Role is the profile role, or "" without a profile.
func (s *Session) Role(ctx context.Context) string {
	p, ok := s.User(ctx)
	if !ok {
		return ""
	}
	return p.Role
}

// Save stores the token and profile of an auth response in one write.
func (s *Session) Save(ctx context.Context, res api.AuthResponse) error {
	user, err := json.Marshal(res.User)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := s.store.Set(ctx, s.id, map[string]string{
		TokenKey: res.BearerToken(),
		UserKey:  string(user),
	}); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (s *Session) clear(ctx context.Context) {
	if err := s.store.Delete(ctx, s.id, TokenKey, UserKey); err != nil {
		s.log.Error().Err(err).Msg("session clear failed")
	}
}

// Logout clears the session and goes to the login screen.
func (s *Session) Logout(ctx context.Context) {
	s.clear(ctx)
	s.nav.Navigate(LoginHash)
}

// RedirectToDashboard sends landlords to their dashboard and everyone else to the tenant home.
func (s *Session) RedirectToDashboard(ctx context.Context) {
	s.nav.Navigate(DashboardHash(s.Role(ctx)))
}

// DashboardHash is the home hash for role.
func DashboardHash(role string) string {
	if role == RoleLandlord {
		return LandlordHomeHash
	}
	return TenantHomeHash
}

func (s *Session) RequireAuth(ctx context.Context) bool {
	if !s.IsAuthenticated(ctx) {
		s.nav.Navigate(LoginHash)
		return false
	}
	return true
}

func (s *Session) RequireRole(ctx context.Context, role string) bool {
	if !s.RequireAuth(ctx) {
		return false
	}
	if s.Role(ctx) != role {
		s.RedirectToDashboard(ctx)
		return false
	}
	return true
}

// Credentials adapts the session for the API client. A JWT whose exp has
// passed counts as no token and clears the session.
func (s *Session) Credentials() api.Credentials {
	return sessionCredentials{s}
}

type sessionCredentials struct {
	s *Session
}

func (c sessionCredentials) Token(ctx context.Context) (string, bool) {
	tok, ok := c.s.Token(ctx)
	if !ok {
		return "", false
	}
	if tokenExpired(tok, c.s.now()) {
		c.s.log.Info().Msg("session token expired")
		c.s.clear(ctx)
		return "", false
	}
	return tok, true
}

func (c sessionCredentials) Unauthenticated(ctx context.Context) {
	c.s.Logout(ctx)
}

// tokenExpired only inspects the exp claim; the backend verifies signatures.
// Tokens that are not JWTs never expire here.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, sid, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[sid][key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, sid string, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.data[sid]
	if !ok {
		sess = make(map[string]string, len(values))
		m.data[sid] = sess
	}
	for k, v := range values {
		sess[k] = v
	}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sid string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.data[sid]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(sess, k)
	}
	if len(sess) == 0 {
		delete(m.data, sid)
	}
	return nil
}

// Len reports how many sessions hold values.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
