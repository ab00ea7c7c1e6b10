// Package session decides whether protected views may render. A Guard owns
// the decision for one surface: every mount starts a fresh verification that
// lands in Authenticated or Unauthenticated, and protected content renders
// only from Authenticated. Holding a token is never treated as proof; the
// backend confirms it on every mount.
package session

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-price-dashboard/credentials"
	"github.com/jrsteele09/go-price-dashboard/gateway"
	"github.com/jrsteele09/go-price-dashboard/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// State is the guard's verification status.
type State string

const (
	StateChecking        State = "checking"        // verification in flight, render a wait indicator
	StateAuthenticated   State = "authenticated"   // backend confirmed the session
	StateUnauthenticated State = "unauthenticated" // no token, or the backend rejected it
)

// Checker confirms a held token against the backend. *gateway.Client
// satisfies it.
type Checker interface {
	CheckSession(ctx context.Context) (*gateway.SessionInfo, error)
}

// Guard gates protected views on a verified session.
type Guard struct {
	store    credentials.Store
	checker  Checker
	redirect gateway.Redirect

	runLock sync.Mutex   // one verification at a time
	lock    sync.RWMutex // guards state and user
	state   State
	user    *users.User
}

// New creates a Guard. The redirect sends the user to the login view and
// must be safe to invoke repeatedly.
func New(store credentials.Store, checker Checker, redirect gateway.Redirect) (*Guard, error) {
	if store == nil {
		return nil, errors.New("[session.New] credentials store is required")
	}
	if checker == nil {
		return nil, errors.New("[session.New] session checker is required")
	}
	if redirect == nil {
		return nil, errors.New("[session.New] login redirect is required")
	}

	return &Guard{
		store:    store,
		checker:  checker,
		redirect: redirect,
		state:    StateChecking,
	}, nil
}

// Run verifies the session for one mount and returns the final state.
// Without a stored token it settles on Unauthenticated straight away, no
// network involved. With one, the backend gets the last word: any check
// failure or invalid verdict clears the token and redirects to login. A
// canceled context means the mount is gone, so the late outcome is discarded
// without side effects.
func (g *Guard) Run(ctx context.Context) State {
	g.runLock.Lock()
	defer g.runLock.Unlock()

	g.setState(StateChecking, nil)

	if _, err := g.store.Get(); err != nil {
		if !errors.Is(err, credentials.ErrNoToken) {
			log.Err(err).Msg("reading stored credentials")
		}
		g.setState(StateUnauthenticated, nil)
		g.redirect()
		return StateUnauthenticated
	}

	info, err := g.checker.CheckSession(ctx)
	if ctx.Err() != nil {
		return g.State()
	}

	if err != nil || info == nil || !info.Valid {
		if err != nil {
			log.Warn().Err(err).Msg("session check failed, ending local session")
		}
		if clearErr := g.store.Clear(); clearErr != nil {
			log.Err(clearErr).Msg("clearing credentials after failed session check")
		}
		g.setState(StateUnauthenticated, nil)
		g.redirect()
		return StateUnauthenticated
	}

	g.setState(StateAuthenticated, info.User)
	return StateAuthenticated
}

// Logout ends the session locally: clear the stored token, drop the user and
// go to login. No backend round trip is made, so logout works offline.
func (g *Guard) Logout() {
	if err := g.store.Clear(); err != nil {
		log.Err(err).Msg("clearing credentials on logout")
	}
	g.setState(StateUnauthenticated, nil)
	g.redirect()
}

// State returns the current verification status.
func (g *Guard) State() State {
	g.lock.RLock()
	defer g.lock.RUnlock()
	return g.state
}

// Authenticated reports whether protected content may render right now.
func (g *Guard) Authenticated() bool {
	return g.State() == StateAuthenticated
}

// User returns the profile confirmed by the last successful verification,
// or nil outside Authenticated.
func (g *Guard) User() *users.User {
	g.lock.RLock()
	defer g.lock.RUnlock()
	return g.user
}

func (g *Guard) setState(state State, user *users.User) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.state = state
	g.user = user
}
