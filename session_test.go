package portal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aletheia/portal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNav struct{ hashes []string }

func (r *recordingNav) Navigate(hash string) { r.hashes = append(r.hashes, hash) }

type failingStore struct{}

func (failingStore) Get(context.Context, string, string) (string, bool, error) {
	return "", false, errors.New("down")
}
func (failingStore) Set(context.Context, string, map[string]string) error { return errors.New("down") }
func (failingStore) Delete(context.Context, string, ...string) error      { return errors.New("down") }

func TestSession_SaveAndRead(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := NewSession("sid", store, &recordingNav{})

	assert.False(t, s.IsAuthenticated(ctx))
	assert.Equal(t, "", s.Role(ctx))

	err := s.Save(ctx, api.AuthResponse{
		Token: "tok",
		User:  api.Profile{ID: "u1", FullName: "Ada Obi", Role: RoleLandlord},
	})
	require.NoError(t, err)

	tok, ok := s.Token(ctx)
	assert.True(t, ok)
	assert.Equal(t, "tok", tok)
	user, ok := s.User(ctx)
	require.True(t, ok)
	assert.Equal(t, "Ada Obi", user.FullName)
	assert.Equal(t, RoleLandlord, s.Role(ctx))
}

func TestSession_SharedAcrossTabs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	login(t, store, "sid", RoleTenant, "tok")

	other := NewSession("sid", store, &recordingNav{})
	assert.True(t, other.IsAuthenticated(ctx))
	assert.Equal(t, RoleTenant, other.Role(ctx))
}

func TestSession_LogoutClearsAndNavigates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	nav := &recordingNav{}
	login(t, store, "sid", RoleTenant, "tok")
	s := NewSession("sid", store, nav)

	s.Logout(ctx)

	assert.False(t, s.IsAuthenticated(ctx))
	_, ok := s.User(ctx)
	assert.False(t, ok)
	assert.Equal(t, []string{LoginHash}, nav.hashes)
	assert.Equal(t, 0, store.Len())
}

func TestSession_UnparseableUser(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "sid", map[string]string{TokenKey: "tok", UserKey: "{not json"}))
	s := NewSession("sid", store, &recordingNav{})

	_, ok := s.User(ctx)
	assert.False(t, ok)
	assert.Equal(t, "", s.Role(ctx))
	assert.True(t, s.IsAuthenticated(ctx))
}

func TestSession_StoreFailureReadsAsSignedOut(t *testing.T) {
	s := NewSession("sid", failingStore{}, &recordingNav{})
	assert.False(t, s.IsAuthenticated(context.Background()))
	assert.Error(t, s.Save(context.Background(), api.AuthResponse{Token: "t"}))
}

func TestSession_Guards(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		role    string
		require string
		ok      bool
		hashes  []string
	}{
		{"signed out", "", RoleLandlord, false, []string{LoginHash}},
		{"matching role", RoleLandlord, RoleLandlord, true, nil},
		{"tenant on landlord page", RoleTenant, RoleLandlord, false, []string{TenantHomeHash}},
		{"landlord on tenant page", RoleLandlord, RoleTenant, false, []string{LandlordHomeHash}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			if tt.role != "" {
				login(t, store, "sid", tt.role, "tok")
			}
			nav := &recordingNav{}
			s := NewSession("sid", store, nav)

			assert.Equal(t, tt.ok, s.RequireRole(ctx, tt.require))
			assert.Equal(t, tt.hashes, nav.hashes)
		})
	}
}

func TestDashboardHash(t *testing.T) {
	assert.Equal(t, LandlordHomeHash, DashboardHash(RoleLandlord))
	assert.Equal(t, TenantHomeHash, DashboardHash(RoleTenant))
	assert.Equal(t, TenantHomeHash, DashboardHash(""))
}

func TestCredentials_ExpiredTokenClearsSession(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	login(t, store, "sid", RoleTenant, jwtWithExp(now.Add(-time.Minute)))
	s := NewSession("sid", store, &recordingNav{})
	s.now = func() time.Time { return now }

	_, ok := s.Credentials().Token(ctx)
	assert.False(t, ok)
	assert.False(t, s.IsAuthenticated(ctx))
}

func TestCredentials_ValidAndOpaqueTokens(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, tok := range []string{jwtWithExp(now.Add(time.Hour)), "opaque-token"} {
		store := NewMemoryStore()
		login(t, store, "sid", RoleTenant, tok)
		s := NewSession("sid", store, &recordingNav{})
		s.now = func() time.Time { return now }

		got, ok := s.Credentials().Token(ctx)
		assert.True(t, ok)
		assert.Equal(t, tok, got)
	}
}

func TestCredentials_UnauthenticatedLogsOut(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	nav := &recordingNav{}
	login(t, store, "sid", RoleTenant, "tok")
	s := NewSession("sid", store, nav)

	s.Credentials().Unauthenticated(ctx)

	assert.False(t, s.IsAuthenticated(ctx))
	assert.Equal(t, []string{LoginHash}, nav.hashes)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, ok, err := m.Get(ctx, "a", "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "a", map[string]string{"k": "1", "j": "2"}))
	require.NoError(t, m.Set(ctx, "b", map[string]string{"k": "3"}))
	v, ok, _ := m.Get(ctx, "a", "k")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Equal(t, 2, m.Len())

	require.NoError(t, m.Delete(ctx, "a", "k"))
	_, ok, _ = m.Get(ctx, "a", "k")
	assert.False(t, ok)
	v, _, _ = m.Get(ctx, "a", "j")
	assert.Equal(t, "2", v)

	require.NoError(t, m.Delete(ctx, "a", "j"))
	require.NoError(t, m.Delete(ctx, "missing", "k"))
	assert.Equal(t, 1, m.Len())
}
