// ABOUTME: Client-side session state machine for the ticketing backend
// ABOUTME: Unresolved on start, then Authenticated or Anonymous

package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/1234-ad/ticketing-system/internal/api"
	"github.com/1234-ad/ticketing-system/internal/credentials"
	"github.com/1234-ad/ticketing-system/internal/logging"
)

// TokenTTL is the client-side expiry hint for a stored token.
const TokenTTL = 24 * time.Hour

// signOutTimeout caps the best-effort backend notification on logout so
// the caller is never held for the full transport timeout.
const signOutTimeout = 5 * time.Second

// ErrNotSignedIn is returned by operations that need an authenticated session.
var ErrNotSignedIn = errors.New("not signed in")

// State is the session's lifecycle position.
type State int

const (
	// Unresolved is the initial state, visited exactly once per process:
	// a stored token may or may not still be accepted by the backend.
	Unresolved State = iota
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Manager owns the current-user state. The stored credential token is kept
// consistent with the state: a token exists if and only if the session is
// Authenticated, apart from the transient instant of an in-flight call.
//
// Operations are not serialized against each other; concurrent logins race
// and the last response wins, which is acceptable for a single-user client.
type Manager struct {
	client *api.Client
	creds  *credentials.Store

	mu       sync.Mutex
	state    State
	user     *api.User
	restored bool
}

// New creates a session manager in the Unresolved state.
func New(client *api.Client, creds *credentials.Store) *Manager {
	return &Manager{
		client: client,
		creds:  creds,
		state:  Unresolved,
	}
}

// Restore resolves the initial session exactly once. With no stored token it
// settles Anonymous without any network call. With a token it asks the
// backend who we are; any failure clears the token and settles Anonymous.
// Subsequent calls return the already-resolved state.
func (m *Manager) Restore(ctx context.Context) State {
	m.mu.Lock()
	if m.restored {
		state := m.state
		m.mu.Unlock()
		return state
	}
	m.restored = true
	m.mu.Unlock()

	if _, ok := m.creds.Get(); !ok {
		return m.setAnonymous()
	}

	user, err := m.client.CurrentUser(ctx)
	if err != nil {
		logging.Get().Debug().Err(err).Msg("session recovery failed")
		// On 401 the client already cleared the store; clear again for
		// any other failure so token and state stay consistent.
		m.creds.Clear()
		return m.setAnonymous()
	}

	m.mu.Lock()
	m.state = Authenticated
	m.user = user
	m.mu.Unlock()
	return Authenticated
}

// Login signs in and stores the returned token with a 1-day expiry. On
// failure the session is left exactly as it was and the error is returned
// for the caller to present.
func (m *Manager) Login(ctx context.Context, email, password string) (*api.User, error) {
	resp, err := m.client.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return m.establish(resp)
}

// Register signs up a new account; same contract as Login.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) (*api.User, error) {
	resp, err := m.client.SignUp(ctx, req)
	if err != nil {
		return nil, err
	}
	return m.establish(resp)
}

func (m *Manager) establish(resp *api.AuthResponse) (*api.User, error) {
	if err := m.creds.Set(resp.Token, TokenTTL); err != nil {
		return nil, err
	}
	user := resp.User
	m.mu.Lock()
	m.state = Authenticated
	m.user = &user
	m.restored = true
	m.mu.Unlock()
	return &user, nil
}

// Logout notifies the backend best-effort while the token is still in the
// store, so the request carries the Authorization header, then clears the
// token and drops to Anonymous. Logout never fails visibly; a backend error
// is only logged.
func (m *Manager) Logout(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, signOutTimeout)
	defer cancel()
	if err := m.client.SignOut(ctx); err != nil {
		logging.Get().Debug().Err(err).Msg("signout call failed")
	}

	m.creds.Clear()
	m.setAnonymous()
}

// Invalidate drops to Anonymous without touching the store. The API client's
// 401 policy clears the store itself and then calls this through its
// unauthorized hook.
func (m *Manager) Invalidate() {
	m.setAnonymous()
}

func (m *Manager) setAnonymous() State {
	m.mu.Lock()
	m.state = Anonymous
	m.user = nil
	m.restored = true
	m.mu.Unlock()
	return Anonymous
}

// State returns the current session state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User returns the signed-in user, or nil when not Authenticated.
func (m *Manager) User() *api.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Authenticated reports whether a user is signed in.
func (m *Manager) Authenticated() bool {
	return m.State() == Authenticated
}
