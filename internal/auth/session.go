// internal/auth/session.go
package auth

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"photoportal/internal/models"
)

const userKey = "user"

// Identity is the caller attached to a request. Role is recomputed from
// User on every call and never stored.
type Identity struct {
	User string
}

// Authenticated reports whether a non-empty identifier is present.
func (id Identity) Authenticated() bool {
	return id.User != ""
}

func (id Identity) Role() models.Role {
	return RoleOf(id.User)
}

// IsAdmin requires an identifier; an empty session is never an admin.
func (id Identity) IsAdmin() bool {
	return id.Authenticated() && id.Role() == models.RoleAdmin
}

type ctxKeyIdentity struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity{}).(Identity)
	return id, ok
}

type SessionOptions struct {
	Name   string
	Secret string
	// Dir selects the filesystem store; empty uses the OS temp dir.
	Dir    string
	MaxAge int
	Secure bool
}

// Sessions keeps the caller identifier in a server-side session. Only the
// session id travels in the cookie.
type Sessions struct {
	name  string
	store sessions.Store
}

func NewSessions(opts SessionOptions) (*Sessions, error) {
	hashKey := []byte(opts.Secret)
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(64)
		if hashKey == nil {
			return nil, fmt.Errorf("generate session hash key")
		}
	}
	blockKey := sha256.Sum256(append([]byte("photoportal-block:"), hashKey...))

	// the filesystem store deletes sessions saved with MaxAge <= 0
	if opts.MaxAge <= 0 {
		opts.MaxAge = 86400
	}

	dir := opts.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	fs := sessions.NewFilesystemStore(dir, hashKey, blockKey[:])
	fs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   opts.MaxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	fs.MaxAge(opts.MaxAge)
	fs.MaxLength(0)

	return NewSessionsWithStore(opts.Name, fs), nil
}

// NewSessionsWithStore wraps an existing gorilla store, e.g. a CookieStore in tests.
func NewSessionsWithStore(name string, store sessions.Store) *Sessions {
	if name == "" {
		name = "photoportal"
	}
	return &Sessions{name: name, store: store}
}

// session returns the named session. A cookie that no longer decodes yields
// a fresh session rather than an error.
func (s *Sessions) session(r *http.Request) *sessions.Session {
	sess, _ := s.store.Get(r, s.name)
	if sess == nil {
		sess = sessions.NewSession(s.store, s.name)
		sess.Options = &sessions.Options{Path: "/"}
		sess.IsNew = true
	}
	return sess
}

// Current returns the identity stored in the caller's session.
func (s *Sessions) Current(r *http.Request) Identity {
	user, _ := s.session(r).Values[userKey].(string)
	return Identity{User: user}
}

// Identify stores user as the session identity. Any value is accepted.
func (s *Sessions) Identify(w http.ResponseWriter, r *http.Request, user string) error {
	sess := s.session(r)
	sess.Values[userKey] = user
	return sess.Save(r, w)
}

// Clear drops the session and returns the identity it held.
func (s *Sessions) Clear(w http.ResponseWriter, r *http.Request) (Identity, error) {
	sess := s.session(r)
	if sess.IsNew {
		return Identity{}, nil
	}
	user, _ := sess.Values[userKey].(string)
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	sess.Options.MaxAge = -1
	return Identity{User: user}, sess.Save(r, w)
}

// AddFlash queues a one-shot notice for the next rendered view.
func (s *Sessions) AddFlash(w http.ResponseWriter, r *http.Request, msg string) error {
	sess := s.session(r)
	sess.AddFlash(msg)
	return sess.Save(r, w)
}

// Flashes pops any queued notices.
func (s *Sessions) Flashes(w http.ResponseWriter, r *http.Request) ([]string, error) {
	sess := s.session(r)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	return out, sess.Save(r, w)
}
