package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	fakestore "github.com/jrsteele09/go-price-dashboard/credentials/storefakes"
	"github.com/jrsteele09/go-price-dashboard/gateway"
	"github.com/stretchr/testify/require"
)

const (
	testToken    = "test-bearer-token"
	testEmail    = "jane.doe@example.com"
	testPassword = "password123"
	testUsername = "janedoe"
)

// testFixture wires a Client to a scripted backend with recording callbacks.
type testFixture struct {
	store     *fakestore.FakeStore
	client    *gateway.Client
	server    *httptest.Server
	redirects int
	notices   []string
}

// setupTestFixture creates a fixture whose backend runs the given handler.
// The store starts out holding a token.
func setupTestFixture(t *testing.T, handler http.HandlerFunc) *testFixture {
	t.Helper()

	f := &testFixture{store: fakestore.NewFakeStoreWithToken(testToken)}
	f.server = httptest.NewServer(handler)
	t.Cleanup(f.server.Close)

	client, err := gateway.New(f.server.URL, f.store,
		gateway.WithNotifier(func(message string) { f.notices = append(f.notices, message) }),
		gateway.WithLoginRedirect(func() { f.redirects++ }),
	)
	require.NoError(t, err)
	f.client = client

	return f
}

// TestNew_Validation tests constructor argument checks
func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		store   *fakestore.FakeStore
	}{
		{name: "empty base URL", baseURL: "", store: fakestore.NewFakeStore()},
		{name: "nil store", baseURL: "http://localhost:8000", store: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var err error
			if tc.store == nil {
				_, err = gateway.New(tc.baseURL, nil)
			} else {
				_, err = gateway.New(tc.baseURL, tc.store)
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), "required")
		})
	}
}

// TestClient_AttachesBearerToken tests that a held token rides every request
func TestClient_AttachesBearerToken(t *testing.T) {
	var authHeader, requestID string
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		requestID = r.Header.Get("X-Request-Id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"categories":["Dairy"],"total":1}`))
	})

	_, err := f.client.Categories(context.Background())

	require.NoError(t, err)
	require.Equal(t, "Bearer "+testToken, authHeader)
	require.NotEmpty(t, requestID, "every request should carry a request id")
}

// TestClient_NoTokenSendsNoAuthorization tests that anonymous calls carry no header
func TestClient_NoTokenSendsNoAuthorization(t *testing.T) {
	var authHeader string
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"categories":[],"total":0}`))
	})
	require.NoError(t, f.store.Clear())

	_, err := f.client.Categories(context.Background())

	require.NoError(t, err)
	require.Empty(t, authHeader)
}

// TestClient_UnauthorizedClearsTokenAndRedirects tests the 401 recovery effects
func TestClient_UnauthorizedClearsTokenAndRedirects(t *testing.T) {
	calls := 0
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	})

	_, err := f.client.Me(context.Background())

	require.Error(t, err)
	require.Equal(t, gateway.KindUnauthorized, gateway.KindOf(err))
	require.False(t, f.store.HasToken(), "401 should clear the stored token")
	require.Equal(t, 1, f.redirects, "401 should redirect to login exactly once")
	require.Empty(t, f.notices, "401 is not a backend fault notification")
	require.Equal(t, 1, calls, "failed calls are never retried")
}

// TestClient_NoAuthorizationAfterUnauthorized tests that a cleared token stays gone
func TestClient_NoAuthorizationAfterUnauthorized(t *testing.T) {
	var authHeaders []string
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	})

	_, _ = f.client.Me(context.Background())
	_, _ = f.client.Me(context.Background())

	require.Len(t, authHeaders, 2)
	require.Equal(t, "Bearer "+testToken, authHeaders[0])
	require.Empty(t, authHeaders[1], "no authorization header once the token is cleared")
}

// TestClient_ServerFaultNotifiesOnce tests the 5xx notification effect
func TestClient_ServerFaultNotifiesOnce(t *testing.T) {
	calls := 0
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"Failed to fetch prices"}`))
	})

	_, err := f.client.Prices(context.Background(), gateway.PriceFilter{})

	require.Error(t, err)
	require.Equal(t, gateway.KindServerFault, gateway.KindOf(err))
	require.Len(t, f.notices, 1, "5xx should notify the user exactly once")
	require.Zero(t, f.redirects)
	require.True(t, f.store.HasToken(), "a backend fault must not touch the stored token")
	require.Equal(t, 1, calls, "failed calls are never retried")
}

// TestClient_ClientFaultPassesThrough tests that other 4xx reach the caller untouched
func TestClient_ClientFaultPassesThrough(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Product not found"}`))
	})

	_, err := f.client.ComparePrices(context.Background(), 42)

	require.Error(t, err)
	require.Equal(t, gateway.KindClientFault, gateway.KindOf(err))

	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "Product not found", apiErr.Detail)
	require.Zero(t, f.redirects)
	require.Empty(t, f.notices)
	require.True(t, f.store.HasToken())
}

// TestClient_ValidationDetailPassedThrough tests that structured 422 details survive
func TestClient_ValidationDetailPassedThrough(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":[{"loc":["query","q"],"msg":"field required","type":"value_error.missing"}]}`))
	})

	_, err := f.client.SearchProducts(context.Background(), "ok", gateway.SearchFilter{})

	require.Error(t, err)
	require.Equal(t, gateway.KindClientFault, gateway.KindOf(err))

	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Contains(t, apiErr.Detail, "field required")
}

// TestClient_TransportFailure tests classification when no response arrives
func TestClient_TransportFailure(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {})
	f.server.Close()

	_, err := f.client.Me(context.Background())

	require.Error(t, err)
	require.Equal(t, gateway.KindTransport, gateway.KindOf(err))
	require.Zero(t, f.redirects)
	require.Empty(t, f.notices)
	require.True(t, f.store.HasToken(), "transport failures must not touch the stored token")
}

// TestClient_MalformedSuccessBody tests classification of an undecodable 2xx
func TestClient_MalformedSuccessBody(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html>definitely not json</html>`))
	})

	_, err := f.client.Me(context.Background())

	require.Error(t, err)
	require.Equal(t, gateway.KindMalformed, gateway.KindOf(err))
	require.Zero(t, f.redirects)
	require.Empty(t, f.notices)
}

// TestClient_CanceledContext tests that cancellation surfaces as a transport failure
func TestClient_CanceledContext(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.client.Me(ctx)

	require.Error(t, err)
	require.Equal(t, gateway.KindTransport, gateway.KindOf(err))
}
