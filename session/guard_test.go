package session_test

import (
	"context"
	"testing"

	fakestore "github.com/jrsteele09/go-price-dashboard/credentials/storefakes"
	"github.com/jrsteele09/go-price-dashboard/gateway"
	"github.com/jrsteele09/go-price-dashboard/session"
	"github.com/jrsteele09/go-price-dashboard/users"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const testToken = "test-bearer-token"

// fakeChecker scripts the backend's session verdict.
type fakeChecker struct {
	info  *gateway.SessionInfo
	err   error
	calls int
}

func (f *fakeChecker) CheckSession(ctx context.Context) (*gateway.SessionInfo, error) {
	f.calls++
	return f.info, f.err
}

// cancelingChecker cancels the mount while its check is in flight.
type cancelingChecker struct {
	cancel context.CancelFunc
}

func (c *cancelingChecker) CheckSession(ctx context.Context) (*gateway.SessionInfo, error) {
	c.cancel()
	return nil, ctx.Err()
}

// testFixture wires a Guard with recording dependencies.
type testFixture struct {
	store     *fakestore.FakeStore
	checker   *fakeChecker
	guard     *session.Guard
	redirects int
}

func setupTestFixture(t *testing.T, checker *fakeChecker) *testFixture {
	t.Helper()

	f := &testFixture{
		store:   fakestore.NewFakeStoreWithToken(testToken),
		checker: checker,
	}

	guard, err := session.New(f.store, f.checker, func() { f.redirects++ })
	require.NoError(t, err)
	f.guard = guard

	return f
}

func validSession() *gateway.SessionInfo {
	return &gateway.SessionInfo{
		Valid: true,
		User:  &users.User{ID: 7, Email: "jane.doe@example.com", Username: "janedoe", IsActive: true},
	}
}

// TestNew_Validation tests constructor argument checks
func TestNew_Validation(t *testing.T) {
	store := fakestore.NewFakeStore()
	checker := &fakeChecker{}
	redirect := func() {}

	_, err := session.New(nil, checker, redirect)
	require.Error(t, err)

	_, err = session.New(store, nil, redirect)
	require.Error(t, err)

	_, err = session.New(store, checker, nil)
	require.Error(t, err)
}

// TestGuard_BlocksRenderBeforeVerification tests the initial state
func TestGuard_BlocksRenderBeforeVerification(t *testing.T) {
	f := setupTestFixture(t, &fakeChecker{info: validSession()})

	require.Equal(t, session.StateChecking, f.guard.State())
	require.False(t, f.guard.Authenticated(), "nothing protected may render before the verdict")
	require.Nil(t, f.guard.User())
}

// TestRun_NoTokenGoesStraightToLogin tests the tokenless fast path
func TestRun_NoTokenGoesStraightToLogin(t *testing.T) {
	f := setupTestFixture(t, &fakeChecker{info: validSession()})
	require.NoError(t, f.store.Clear())
	clearsBefore := f.store.ClearCalls

	state := f.guard.Run(context.Background())

	require.Equal(t, session.StateUnauthenticated, state)
	require.Zero(t, f.checker.calls, "no token means no network round trip")
	require.Equal(t, 1, f.redirects)
	require.Equal(t, clearsBefore, f.store.ClearCalls, "nothing to clear without a token")
}

// TestRun_ValidSessionAuthenticates tests the happy path
func TestRun_ValidSessionAuthenticates(t *testing.T) {
	f := setupTestFixture(t, &fakeChecker{info: validSession()})

	state := f.guard.Run(context.Background())

	require.Equal(t, session.StateAuthenticated, state)
	require.True(t, f.guard.Authenticated())
	require.NotNil(t, f.guard.User())
	require.Equal(t, "janedoe", f.guard.User().Username)
	require.Zero(t, f.redirects)
	require.True(t, f.store.HasToken(), "a confirmed session keeps its token")
}

// TestRun_InvalidVerdictEndsSession tests the backend saying no
func TestRun_InvalidVerdictEndsSession(t *testing.T) {
	f := setupTestFixture(t, &fakeChecker{info: &gateway.SessionInfo{Valid: false}})

	state := f.guard.Run(context.Background())

	require.Equal(t, session.StateUnauthenticated, state)
	require.False(t, f.store.HasToken(), "a rejected token must not linger")
	require.Equal(t, 1, f.redirects)
	require.Nil(t, f.guard.User())
}

// TestRun_CheckFailureEndsSession tests the conservative treatment of errors
func TestRun_CheckFailureEndsSession(t *testing.T) {
	f := setupTestFixture(t, &fakeChecker{err: errors.New("backend unreachable")})

	state := f.guard.Run(context.Background())

	require.Equal(t, session.StateUnauthenticated, state)
	require.False(t, f.store.HasToken(), "an unverifiable session counts as no session")
	require.Equal(t, 1, f.redirects)
}

// TestRun_CanceledMountDiscardsOutcome tests teardown during the check
func TestRun_CanceledMountDiscardsOutcome(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := fakestore.NewFakeStoreWithToken(testToken)
	redirects := 0

	guard, err := session.New(store, &cancelingChecker{cancel: cancel}, func() { redirects++ })
	require.NoError(t, err)

	state := guard.Run(ctx)

	require.Equal(t, session.StateChecking, state, "a torn-down mount gets no verdict")
	require.Zero(t, redirects, "no navigation after teardown")
	require.True(t, store.HasToken(), "no side effects after teardown")
}

// TestRun_RemountRestartsCycle tests that each mount verifies afresh
func TestRun_RemountRestartsCycle(t *testing.T) {
	f := setupTestFixture(t, &fakeChecker{info: validSession()})
	require.NoError(t, f.store.Clear())

	require.Equal(t, session.StateUnauthenticated, f.guard.Run(context.Background()))
	require.Zero(t, f.checker.calls)

	require.NoError(t, f.store.Set(testToken))
	state := f.guard.Run(context.Background())

	require.Equal(t, session.StateAuthenticated, state)
	require.Equal(t, 1, f.checker.calls)
}

// TestLogout_IsLocalOnly tests that logout never waits on the backend
func TestLogout_IsLocalOnly(t *testing.T) {
	f := setupTestFixture(t, &fakeChecker{info: validSession()})
	require.Equal(t, session.StateAuthenticated, f.guard.Run(context.Background()))
	callsAfterRun := f.checker.calls

	f.guard.Logout()

	require.Equal(t, session.StateUnauthenticated, f.guard.State())
	require.Nil(t, f.guard.User())
	require.False(t, f.store.HasToken())
	require.Equal(t, 1, f.redirects)
	require.Equal(t, callsAfterRun, f.checker.calls, "logout is local, no round trip")
}
