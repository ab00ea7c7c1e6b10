package polling_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jrsteele09/go-price-dashboard/polling"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// TestResource_TrueEmptyState tests that a fresh resource shows no facets
func TestResource_TrueEmptyState(t *testing.T) {
	resource := polling.New[string]()

	require.Empty(t, resource.Items())
	require.NoError(t, resource.Err())
	require.False(t, resource.Loading())
	require.False(t, resource.Refreshing())
}

// TestLoad_PopulatesCollection tests the initial fetch
func TestLoad_PopulatesCollection(t *testing.T) {
	resource := polling.New[string]()

	err := resource.Load(context.Background(), func(ctx context.Context) ([]string, error) {
		return []string{"milk", "eggs", "bread"}, nil
	})

	require.NoError(t, err)
	require.Equal(t, []string{"milk", "eggs", "bread"}, resource.Items())
	require.NoError(t, resource.Err())
	require.False(t, resource.Loading())
}

// TestLoad_FirstFetchRaisesLoading tests the loading facet during the first fetch
func TestLoad_FirstFetchRaisesLoading(t *testing.T) {
	resource := polling.New[string]()

	var sawLoading, sawRefreshing bool
	err := resource.Load(context.Background(), func(ctx context.Context) ([]string, error) {
		sawLoading = resource.Loading()
		sawRefreshing = resource.Refreshing()
		return nil, nil
	})

	require.NoError(t, err)
	require.True(t, sawLoading, "the first fetch should run under the loading facet")
	require.False(t, sawRefreshing)
	require.False(t, resource.Loading(), "loading should clear once the fetch completes")
}

// TestRefresh_RaisesRefreshingNotLoading tests the reload facet
func TestRefresh_RaisesRefreshingNotLoading(t *testing.T) {
	resource := polling.New[string]()
	calls := 0
	require.NoError(t, resource.Load(context.Background(), func(ctx context.Context) ([]string, error) {
		calls++
		return []string{"seed"}, nil
	}))

	var sawLoading, sawRefreshing bool
	probed := false
	require.NoError(t, resource.Load(context.Background(), func(ctx context.Context) ([]string, error) {
		sawLoading = resource.Loading()
		sawRefreshing = resource.Refreshing()
		probed = true
		return []string{"seed"}, nil
	}))

	require.True(t, probed)
	require.False(t, sawLoading, "only the first fetch is a load")
	require.True(t, sawRefreshing)
	require.Equal(t, 1, calls, "a new Load runs its own fetch, not the stored one")
	require.False(t, resource.Refreshing())
}

// TestRefresh_ReusesStoredFetch tests that Refresh re-runs the last Load's fetch
func TestRefresh_ReusesStoredFetch(t *testing.T) {
	resource := polling.New[int]()
	calls := 0
	require.NoError(t, resource.Load(context.Background(), func(ctx context.Context) ([]int, error) {
		calls++
		return []int{calls}, nil
	}))

	require.NoError(t, resource.Refresh(context.Background()))
	require.NoError(t, resource.Refresh(context.Background()))

	require.Equal(t, 3, calls)
	require.Equal(t, []int{3}, resource.Items(), "each success replaces the collection wholesale")
}

// TestRefresh_FailureKeepsPreviousCollection tests the stale-rows guarantee
func TestRefresh_FailureKeepsPreviousCollection(t *testing.T) {
	resource := polling.New[string]()
	require.NoError(t, resource.Load(context.Background(), func(ctx context.Context) ([]string, error) {
		return []string{"milk", "eggs"}, nil
	}))

	fetchErr := errors.New("backend unreachable")
	err := resource.Load(context.Background(), func(ctx context.Context) ([]string, error) {
		return nil, fetchErr
	})

	require.ErrorIs(t, err, fetchErr)
	require.ErrorIs(t, resource.Err(), fetchErr)
	require.Equal(t, []string{"milk", "eggs"}, resource.Items(), "a failed fetch must not touch the collection")
	require.False(t, resource.Refreshing())
}

// TestRefresh_SuccessClearsError tests error recovery on the next good fetch
func TestRefresh_SuccessClearsError(t *testing.T) {
	resource := polling.New[string]()
	require.NoError(t, resource.Load(context.Background(), func(ctx context.Context) ([]string, error) {
		return []string{"seed"}, nil
	}))
	_ = resource.Load(context.Background(), func(ctx context.Context) ([]string, error) {
		return nil, errors.New("blip")
	})
	require.Error(t, resource.Err())

	require.NoError(t, resource.Load(context.Background(), func(ctx context.Context) ([]string, error) {
		return []string{"recovered"}, nil
	}))

	require.NoError(t, resource.Err())
	require.Equal(t, []string{"recovered"}, resource.Items())
}

// TestRefresh_BeforeLoad tests that Refresh needs a stored fetch
func TestRefresh_BeforeLoad(t *testing.T) {
	resource := polling.New[string]()

	err := resource.Refresh(context.Background())

	require.ErrorIs(t, err, polling.ErrNotLoaded)
}

// TestStaleCompletion_IsDiscarded tests that a newer fetch owns the state
func TestStaleCompletion_IsDiscarded(t *testing.T) {
	resource := polling.New[string]()
	require.NoError(t, resource.Load(context.Background(), func(ctx context.Context) ([]string, error) {
		return []string{"seed"}, nil
	}))

	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := resource.Load(context.Background(), func(ctx context.Context) ([]string, error) {
			close(slowStarted)
			<-releaseSlow
			return []string{"stale"}, nil
		})
		require.NoError(t, err, "a superseded fetch still reports its own outcome")
	}()

	<-slowStarted
	require.NoError(t, resource.Load(context.Background(), func(ctx context.Context) ([]string, error) {
		return []string{"fresh"}, nil
	}))

	close(releaseSlow)
	wg.Wait()

	require.Equal(t, []string{"fresh"}, resource.Items(), "the older completion must not overwrite the newer one")
	require.NoError(t, resource.Err())
	require.False(t, resource.Refreshing())
}

// TestClose_DiscardsInFlightCompletion tests teardown safety
func TestClose_DiscardsInFlightCompletion(t *testing.T) {
	resource := polling.New[string]()

	started := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = resource.Load(context.Background(), func(ctx context.Context) ([]string, error) {
			close(started)
			<-release
			return []string{"late"}, nil
		})
	}()

	<-started
	resource.Close()
	close(release)
	wg.Wait()

	require.Empty(t, resource.Items(), "a completion after Close must not write state")
	require.False(t, resource.Loading())
}

// TestClose_RejectsFurtherUse tests the closed sentinel
func TestClose_RejectsFurtherUse(t *testing.T) {
	resource := polling.New[string]()
	resource.Close()

	err := resource.Load(context.Background(), func(ctx context.Context) ([]string, error) {
		return nil, nil
	})
	require.ErrorIs(t, err, polling.ErrClosed)

	require.ErrorIs(t, resource.Refresh(context.Background()), polling.ErrClosed)
}
