package portal

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/aletheia/portal/api"
)

// collect runs fn while draining tab, returning the patches that were still
// current when they arrived.
func collect(t *testing.T, tab *Tab, fn func(ctx context.Context)) []Patch {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(ctx)
	}()
	var out []Patch
	for {
		select {
		case p := <-tab.Patches():
			if tab.Current(p) {
				out = append(out, p)
			}
		case <-done:
			for {
				select {
				case p := <-tab.Patches():
					if tab.Current(p) {
						out = append(out, p)
					}
				default:
					return out
				}
			}
		case <-ctx.Done():
			t.Fatal("timed out draining tab")
		}
	}
}

func navigations(patches []Patch) []string {
	var out []string
	for _, p := range patches {
		if p.Kind == PatchNavigate {
			out = append(out, p.Content)
		}
	}
	return out
}

func login(t *testing.T, store SessionStore, sid, role, token string) {
	t.Helper()
	s := NewSession(sid, store, nil)
	err := s.Save(context.Background(), api.AuthResponse{
		AccessToken: token,
		User:        api.Profile{ID: "u1", FullName: "Ada Obi", Role: role},
	})
	if err != nil {
		t.Fatal(err)
	}
}

// jwtWithExp builds an unsigned token carrying only an exp claim.
func jwtWithExp(exp time.Time) string {
	enc := base64.RawURLEncoding
	header := enc.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	claims, _ := json.Marshal(map[string]any{"exp": exp.Unix()})
	return fmt.Sprintf("%s.%s.%s", header, enc.EncodeToString(claims), enc.EncodeToString([]byte("sig")))
}
