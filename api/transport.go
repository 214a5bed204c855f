package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/jfmanager/web/session"
)

// authTransport attaches the stored bearer token to every request. A 401
// triggers one refresh (coalesced across concurrent callers by the
// session) and one replay with the new token. A 401 on the replay is
// returned untouched.
type authTransport struct {
	base    http.RoundTripper
	session *session.Store
	refresh session.RefreshFunc
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {

	r := req.Clone(req.Context())
	if token := t.session.AccessToken(); token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(r)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	access, refreshErr := t.session.Refresh(req.Context(), t.refresh)
	if errors.Is(refreshErr, session.ErrNoRefreshToken) {
		// Nothing to refresh with, the original 401 stands.
		return resp, nil
	}
	if refreshErr != nil {
		// The session cleared itself and fired its logout hooks.
		drain(resp)
		return nil, refreshErr
	}

	retry, err := replayableRequest(req)
	if err != nil {
		return resp, nil
	}
	drain(resp)

	retry.Header.Set("Authorization", "Bearer "+access)
	return t.base.RoundTrip(retry)
}

// replayableRequest rebuilds the request with a fresh body. Requests
// whose body cannot be re-read are not replayed.
func replayableRequest(req *http.Request) (*http.Request, error) {
	r := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return r, nil
	}
	if req.GetBody == nil {
		return nil, errors.New("api: request body not replayable")
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	r.Body = body
	return r, nil
}

func drain(resp *http.Response) {
	if resp.Body != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}
