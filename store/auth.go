package store

import (
	"context"
	"sync"

	"github.com/jfmanager/web/api"
	"github.com/jfmanager/web/entity"
	"github.com/jfmanager/web/session"
)

// AuthStore tracks the session lifecycle: anonymous while no access token
// is stored, authenticated once a pair is persisted, and back to anonymous
// on logout or refresh failure.
type AuthStore struct {
	mu sync.Mutex

	api     *api.Client
	session *session.Store

	user    *entity.UserInfo
	loading bool
	err     string
}

func NewAuthStore(client *api.Client, sess *session.Store) *AuthStore {
	s := &AuthStore{api: client, session: sess}

	// A failed token refresh anywhere in the process ends the session.
	sess.OnLogout(func() {
		s.mu.Lock()
		s.user = nil
		s.mu.Unlock()
	})

	return s
}

func (s *AuthStore) IsAuthenticated() bool {
	return s.session.Authenticated()
}

func (s *AuthStore) User() *entity.UserInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *AuthStore) UserFullName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ""
	}
	return s.user.FullName
}

func (s *AuthStore) Permissions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	return s.user.Permissions
}

// HasPermission reports whether the current user holds the permission.
// Superusers hold everything.
func (s *AuthStore) HasPermission(permission string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return false
	}
	return s.user.HasPermission(permission)
}

func (s *AuthStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *AuthStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Login exchanges credentials for a token pair, persists it and loads the
// user profile.
func (s *AuthStore) Login(ctx context.Context, username, password string) error {
	s.setLoading(true)
	defer s.setLoading(false)
	s.setErr("")

	pair, err := s.api.Login(ctx, username, password)
	if err != nil {
		s.setErr(api.ErrorDetail(err, "Login failed"))
		return err
	}

	if err := s.session.SetTokens(pair.Access, pair.Refresh); err != nil {
		s.setErr("Login failed")
		return err
	}

	return s.FetchUser(ctx)
}

func (s *AuthStore) FetchUser(ctx context.Context) error {
	user, err := s.api.Me(ctx)
	if err != nil {
		s.setErr("Failed to fetch user data")
		return err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// RefreshAccessToken forces a token rotation. Failure already cleared the
// session and the user, so callers only need the error.
func (s *AuthStore) RefreshAccessToken(ctx context.Context) error {
	_, err := s.session.Refresh(ctx, s.api.Refresher())
	return err
}

func (s *AuthStore) UpdateProfile(ctx context.Context, patch map[string]any) (*entity.UserInfo, error) {
	user, err := s.api.UpdateProfile(ctx, patch)
	if err != nil {
		s.setErr("Failed to update profile")
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

// Logout is unconditional and synchronous: tokens and the cached user are
// gone when it returns.
func (s *AuthStore) Logout() {
	_ = s.session.Clear()

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// Initialize is the startup transition: a persisted token pair is only
// trusted once the user profile loads.
func (s *AuthStore) Initialize(ctx context.Context) error {
	if !s.IsAuthenticated() {
		return nil
	}
	if err := s.FetchUser(ctx); err != nil {
		s.Logout()
		return err
	}
	return nil
}

func (s *AuthStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *AuthStore) setErr(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}
