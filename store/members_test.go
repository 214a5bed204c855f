package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfmanager/web/api"
	"github.com/jfmanager/web/entity"
	"github.com/jfmanager/web/session"
)

func newTestClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sess, err := session.Open(filepath.Join(t.TempDir(), "tokens.json"))
	require.NoError(t, err)
	require.NoError(t, sess.SetTokens("access", "refresh"))

	return api.NewClient(server.URL, sess)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func membersPage(members ...entity.Member) entity.Page[entity.Member] {
	return entity.Page[entity.Member]{Count: len(members), Results: members}
}

func TestFetchMembersPopulatesListAndPagination(t *testing.T) {
	next := "http://localhost/members/?offset=25"

	store := NewMembersStore(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := membersPage(entity.Member{ID: 1, Name: "Anna"}, entity.Member{ID: 2, Name: "Ben"})
		page.Count = 42
		page.Next = &next
		writeJSON(w, http.StatusOK, page)
	})))

	require.NoError(t, store.FetchMembers(context.Background(), nil))

	assert.Len(t, store.Members(), 2)
	assert.Equal(t, 42, store.Pagination().Count)
	require.NotNil(t, store.Pagination().Next)
	assert.Equal(t, next, *store.Pagination().Next)
	assert.False(t, store.Loading())
	assert.Empty(t, store.Err())
}

func TestFetchMembersFailureKeepsList(t *testing.T) {
	var fail bool

	store := NewMembersStore(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			writeJSON(w, http.StatusBadGateway, map[string]string{"detail": "Upstream kaputt"})
			return
		}
		writeJSON(w, http.StatusOK, membersPage(entity.Member{ID: 1, Name: "Anna"}))
	})))

	require.NoError(t, store.FetchMembers(context.Background(), nil))
	require.Len(t, store.Members(), 1)

	fail = true
	err := store.FetchMembers(context.Background(), nil)
	require.Error(t, err)

	assert.Len(t, store.Members(), 1, "a failed fetch must not drop the loaded list")
	assert.Equal(t, "Upstream kaputt", store.Err())
	assert.False(t, store.Loading(), "loading must clear on failure")
}

func TestCreateMemberPrepends(t *testing.T) {
	store := NewMembersStore(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, membersPage(entity.Member{ID: 1, Name: "Anna"}))
		case http.MethodPost:
			writeJSON(w, http.StatusCreated, entity.Member{ID: 2, Name: "Ben"})
		}
	})))

	require.NoError(t, store.FetchMembers(context.Background(), nil))

	created, err := store.CreateMember(context.Background(), &entity.Member{Name: "Ben"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), created.ID)

	members := store.Members()
	require.Len(t, members, 2)
	assert.Equal(t, int64(2), members[0].ID, "created entity goes to the front")
	assert.Equal(t, int64(1), members[1].ID)
}

func TestCreateMemberFailureLeavesListUntouched(t *testing.T) {
	store := NewMembersStore(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, membersPage(entity.Member{ID: 1, Name: "Anna"}))
		case http.MethodPost:
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Name fehlt"})
		}
	})))

	require.NoError(t, store.FetchMembers(context.Background(), nil))

	created, err := store.CreateMember(context.Background(), &entity.Member{})
	require.Error(t, err)
	assert.Nil(t, created)

	assert.Len(t, store.Members(), 1)
	assert.Equal(t, "Name fehlt", store.Err())
}

func TestUpdateMemberReplacesInPlaceAndCurrent(t *testing.T) {
	store := NewMembersStore(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/members/":
			writeJSON(w, http.StatusOK, membersPage(
				entity.Member{ID: 1, Name: "Anna"},
				entity.Member{ID: 2, Name: "Ben"},
				entity.Member{ID: 3, Name: "Carla"},
			))
		case r.Method == http.MethodGet:
			writeJSON(w, http.StatusOK, entity.Member{ID: 2, Name: "Ben"})
		case r.Method == http.MethodPatch:
			writeJSON(w, http.StatusOK, entity.Member{ID: 2, Name: "Benjamin"})
		}
	})))

	require.NoError(t, store.FetchMembers(context.Background(), nil))
	_, err := store.FetchMemberByID(context.Background(), 2)
	require.NoError(t, err)

	updated, err := store.UpdateMember(context.Background(), 2, map[string]any{"name": "Benjamin"})
	require.NoError(t, err)
	assert.Equal(t, "Benjamin", updated.Name)

	members := store.Members()
	require.Len(t, members, 3)
	assert.Equal(t, int64(1), members[0].ID)
	assert.Equal(t, "Benjamin", members[1].Name, "updated in place, not reordered")
	assert.Equal(t, int64(3), members[2].ID)

	require.NotNil(t, store.Current())
	assert.Equal(t, "Benjamin", store.Current().Name)
}

func TestDeleteMemberRemovesExactlyOne(t *testing.T) {
	store := NewMembersStore(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, membersPage(
				entity.Member{ID: 1, Name: "Anna"},
				entity.Member{ID: 2, Name: "Ben"},
				entity.Member{ID: 3, Name: "Carla"},
			))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})))

	require.NoError(t, store.FetchMembers(context.Background(), nil))
	require.NoError(t, store.DeleteMember(context.Background(), 2))

	members := store.Members()
	require.Len(t, members, 2)
	assert.Equal(t, int64(1), members[0].ID)
	assert.Equal(t, int64(3), members[1].ID)
}

func TestFetchStatusesFailureYieldsEmptyList(t *testing.T) {
	store := NewMembersStore(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "kaputt"})
	})))

	store.FetchStatuses(context.Background())
	store.FetchGroups(context.Background())

	assert.NotNil(t, store.Statuses())
	assert.Empty(t, store.Statuses())
	assert.NotNil(t, store.Groups())
	assert.Empty(t, store.Groups())
	assert.Empty(t, store.Err(), "lookup failures must not surface as store errors")
}

func TestResetClearsEverything(t *testing.T) {
	store := NewMembersStore(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, membersPage(entity.Member{ID: 1, Name: "Anna"}))
	})))

	require.NoError(t, store.FetchMembers(context.Background(), nil))
	require.NotEmpty(t, store.Members())

	store.Reset()

	assert.Empty(t, store.Members())
	assert.Nil(t, store.Current())
	assert.Zero(t, store.Pagination())
	assert.Empty(t, store.Err())
}
