package session

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFileYieldsAnonymousSession(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "tokens.json"))
	require.NoError(t, err)

	assert.False(t, s.Authenticated())
	assert.Empty(t, s.AccessToken())
	assert.Empty(t, s.RefreshToken())
}

func TestTokensSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SetTokens("access-1", "refresh-1"))

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "access-1", reopened.AccessToken())
	assert.Equal(t, "refresh-1", reopened.RefreshToken())
	assert.True(t, reopened.Authenticated())
}

func TestClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SetTokens("access-1", "refresh-1"))

	require.NoError(t, s.Clear())

	assert.Empty(t, s.AccessToken())
	assert.Empty(t, s.RefreshToken())
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// Clearing twice must not fail on the already-removed file.
	assert.NoError(t, s.Clear())
}

func TestRefreshWithoutRefreshToken(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "tokens.json"))
	require.NoError(t, err)
	require.NoError(t, s.SetTokens("access-1", ""))

	_, err = s.Refresh(context.Background(), func(ctx context.Context, refreshToken string) (string, string, error) {
		t.Fatal("refresh func must not be called without a refresh token")
		return "", "", nil
	})
	assert.ErrorIs(t, err, ErrNoRefreshToken)
	assert.Equal(t, "access-1", s.AccessToken())
}

func TestRefreshRotatesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SetTokens("access-old", "refresh-old"))

	access, err := s.Refresh(context.Background(), func(ctx context.Context, refreshToken string) (string, string, error) {
		assert.Equal(t, "refresh-old", refreshToken)
		return "access-new", "refresh-new", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "access-new", access)

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "access-new", reopened.AccessToken())
	assert.Equal(t, "refresh-new", reopened.RefreshToken())
}

func TestRefreshKeepsRefreshTokenWhenNotRotated(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "tokens.json"))
	require.NoError(t, err)
	require.NoError(t, s.SetTokens("access-old", "refresh-old"))

	_, err = s.Refresh(context.Background(), func(ctx context.Context, refreshToken string) (string, string, error) {
		return "access-new", "", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "refresh-old", s.RefreshToken())
}

func TestRefreshFailureClearsSessionAndFiresHooks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SetTokens("access-old", "refresh-old"))

	var loggedOut int32
	s.OnLogout(func() { atomic.AddInt32(&loggedOut, 1) })

	_, err = s.Refresh(context.Background(), func(ctx context.Context, refreshToken string) (string, string, error) {
		return "", "", assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	assert.Empty(t, s.AccessToken())
	assert.Empty(t, s.RefreshToken())
	assert.Equal(t, int32(1), atomic.LoadInt32(&loggedOut))
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConcurrentRefreshesCoalesce(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "tokens.json"))
	require.NoError(t, err)
	require.NoError(t, s.SetTokens("access-old", "refresh-old"))

	var calls int32
	fn := func(ctx context.Context, refreshToken string) (string, string, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(200 * time.Millisecond)
		return "access-new", "", nil
	}

	const workers = 10
	var wg sync.WaitGroup
	results := make([]string, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			access, err := s.Refresh(context.Background(), fn)
			assert.NoError(t, err)
			results[i] = access
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, access := range results {
		assert.Equal(t, "access-new", access)
	}
}
