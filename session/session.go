package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// ErrNoRefreshToken is returned when a refresh is requested while no
// refresh token is stored. The caller is expected to propagate its
// original authentication error in that case.
var ErrNoRefreshToken = errors.New("session: no refresh token")

// RefreshFunc exchanges a refresh token for a new token pair. The second
// return value is empty when the server does not rotate refresh tokens.
type RefreshFunc func(ctx context.Context, refreshToken string) (access string, refresh string, err error)

// Store owns the token pair. It is the only shared mutable session state
// in the process, so every read and write goes through its mutex, and
// concurrent refresh attempts collapse into a single upstream call.
type Store struct {
	mu      sync.Mutex
	path    string
	access  string
	refresh string

	group    singleflight.Group
	onLogout []func()
}

// tokenFile is the persisted shape. The keys match the storage keys the
// rest of the system expects.
type tokenFile struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Open loads persisted tokens from path if the file exists. A missing
// file yields an anonymous session.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	var f tokenFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	s.access = f.AccessToken
	s.refresh = f.RefreshToken
	return s, nil
}

func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access
}

func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh
}

func (s *Store) Authenticated() bool {
	return s.AccessToken() != ""
}

// SetTokens stores and persists a new token pair.
func (s *Store) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
	return s.persist()
}

// Clear wipes the in-memory pair and the persisted file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	if s.path == "" {
		return nil
	}
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// OnLogout registers a hook that fires when the session is invalidated
// by a failed refresh.
func (s *Store) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

// Refresh rotates the access token through fn. Callers racing on a 401
// share one upstream call and one result. On upstream failure the session
// is cleared and the logout hooks fire.
func (s *Store) Refresh(ctx context.Context, fn RefreshFunc) (string, error) {
	refreshToken := s.RefreshToken()
	if refreshToken == "" {
		return "", ErrNoRefreshToken
	}

	access, err, _ := s.group.Do("refresh", func() (any, error) {
		access, rotated, err := fn(ctx, refreshToken)
		if err != nil {
			return "", err
		}

		s.mu.Lock()
		s.access = access
		if rotated != "" {
			s.refresh = rotated
		}
		if err := s.persist(); err != nil {
			log.Error().Err(err).Msg("failed to persist rotated tokens")
		}
		s.mu.Unlock()

		return access, nil
	})
	if err != nil {
		s.invalidate()
		return "", err
	}
	return access.(string), nil
}

func (s *Store) invalidate() {
	_ = s.Clear()

	s.mu.Lock()
	hooks := make([]func(), len(s.onLogout))
	copy(hooks, s.onLogout)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// persist is called with the mutex held.
func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}
	b, err := json.Marshal(tokenFile{AccessToken: s.access, RefreshToken: s.refresh})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}
