package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jfmanager/web/api"
	"github.com/jfmanager/web/entity"
)

// Pagination mirrors the backend's envelope without the results.
type Pagination struct {
	Count    int
	Next     *string
	Previous *string
}

// MembersStore mirrors the member collection: every action performs one
// request and reconciles the local list with its outcome. No optimistic
// updates, no conflict resolution.
type MembersStore struct {
	mu sync.Mutex

	api *api.Client

	members    []entity.Member
	current    *entity.Member
	statuses   []entity.Status
	groups     []entity.Group
	pagination Pagination
	loading    bool
	err        string
}

func NewMembersStore(client *api.Client) *MembersStore {
	return &MembersStore{api: client}
}

func (s *MembersStore) Members() []entity.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Member, len(s.members))
	copy(out, s.members)
	return out
}

func (s *MembersStore) Current() *entity.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *MembersStore) Statuses() []entity.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Status, len(s.statuses))
	copy(out, s.statuses)
	return out
}

func (s *MembersStore) Groups() []entity.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Group, len(s.groups))
	copy(out, s.groups)
	return out
}

func (s *MembersStore) Pagination() Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

func (s *MembersStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *MembersStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *MembersStore) FetchMembers(ctx context.Context, params *api.MemberListParams) error {
	s.begin()
	defer s.finish()

	page, err := s.api.ListMembers(ctx, params)
	if err != nil {
		s.fail(err, "Failed to fetch members")
		return err
	}

	s.mu.Lock()
	s.members = page.Results
	s.pagination = Pagination{Count: page.Count, Next: page.Next, Previous: page.Previous}
	s.mu.Unlock()
	return nil
}

func (s *MembersStore) FetchMemberByID(ctx context.Context, id int64) (*entity.Member, error) {
	s.begin()
	defer s.finish()

	member, err := s.api.GetMember(ctx, id)
	if err != nil {
		s.fail(err, "Failed to fetch member")
		return nil, err
	}

	s.mu.Lock()
	s.current = member
	s.mu.Unlock()
	return member, nil
}

// CreateMember prepends the created entity to the list on success; on
// failure the list stays untouched and the error message is recorded.
func (s *MembersStore) CreateMember(ctx context.Context, member *entity.Member) (*entity.Member, error) {
	s.begin()
	defer s.finish()

	created, err := s.api.CreateMember(ctx, member)
	if err != nil {
		s.fail(err, "Failed to create member")
		return nil, err
	}

	s.mu.Lock()
	s.members = append([]entity.Member{*created}, s.members...)
	s.mu.Unlock()
	return created, nil
}

// UpdateMember replaces the entity at its current list position and the
// current pointer when it refers to the same id.
func (s *MembersStore) UpdateMember(ctx context.Context, id int64, patch map[string]any) (*entity.Member, error) {
	s.begin()
	defer s.finish()

	updated, err := s.api.UpdateMember(ctx, id, patch)
	if err != nil {
		s.fail(err, "Failed to update member")
		return nil, err
	}

	s.mu.Lock()
	for i := range s.members {
		if s.members[i].ID == id {
			s.members[i] = *updated
			break
		}
	}
	if s.current != nil && s.current.ID == id {
		s.current = updated
	}
	s.mu.Unlock()
	return updated, nil
}

// DeleteMember removes exactly the entity with the given id from the list.
func (s *MembersStore) DeleteMember(ctx context.Context, id int64) error {
	s.begin()
	defer s.finish()

	if err := s.api.DeleteMember(ctx, id); err != nil {
		s.fail(err, "Failed to delete member")
		return err
	}

	s.mu.Lock()
	kept := s.members[:0]
	for _, m := range s.members {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	s.members = kept
	s.mu.Unlock()
	return nil
}

// FetchStatuses never fails the caller: a broken statuses endpoint leaves
// an empty list behind.
func (s *MembersStore) FetchStatuses(ctx context.Context) {
	page, err := s.api.ListStatuses(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch statuses")
		s.statuses = []entity.Status{}
		return
	}
	s.statuses = page.Results
}

func (s *MembersStore) FetchGroups(ctx context.Context) {
	page, err := s.api.ListGroups(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch groups")
		s.groups = []entity.Group{}
		return
	}
	s.groups = page.Results
}

func (s *MembersStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = nil
	s.current = nil
	s.statuses = nil
	s.groups = nil
	s.err = ""
	s.pagination = Pagination{}
}

func (s *MembersStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *MembersStore) finish() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *MembersStore) fail(err error, fallback string) {
	s.mu.Lock()
	s.err = api.ErrorDetail(err, fallback)
	s.mu.Unlock()
}
