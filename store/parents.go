package store

import (
	"context"
	"sync"

	"github.com/jfmanager/web/api"
	"github.com/jfmanager/web/entity"
)

type ParentsStore struct {
	mu sync.Mutex

	api *api.Client

	parents    []entity.Parent
	current    *entity.Parent
	pagination Pagination
	loading    bool
	err        string
}

func NewParentsStore(client *api.Client) *ParentsStore {
	return &ParentsStore{api: client}
}

func (s *ParentsStore) Parents() []entity.Parent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Parent, len(s.parents))
	copy(out, s.parents)
	return out
}

func (s *ParentsStore) Current() *entity.Parent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *ParentsStore) Pagination() Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

func (s *ParentsStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *ParentsStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *ParentsStore) FetchParents(ctx context.Context, params *api.MemberListParams) error {
	s.begin()
	defer s.finish()

	page, err := s.api.ListParents(ctx, params)
	if err != nil {
		s.fail(err, "Failed to fetch parents")
		return err
	}

	s.mu.Lock()
	s.parents = page.Results
	s.pagination = Pagination{Count: page.Count, Next: page.Next, Previous: page.Previous}
	s.mu.Unlock()
	return nil
}

func (s *ParentsStore) FetchParentByID(ctx context.Context, id int64) (*entity.Parent, error) {
	s.begin()
	defer s.finish()

	parent, err := s.api.GetParent(ctx, id)
	if err != nil {
		s.fail(err, "Failed to fetch parent")
		return nil, err
	}

	s.mu.Lock()
	s.current = parent
	s.mu.Unlock()
	return parent, nil
}

func (s *ParentsStore) CreateParent(ctx context.Context, parent *entity.Parent) (*entity.Parent, error) {
	s.begin()
	defer s.finish()

	created, err := s.api.CreateParent(ctx, parent)
	if err != nil {
		s.fail(err, "Failed to create parent")
		return nil, err
	}

	s.mu.Lock()
	s.parents = append([]entity.Parent{*created}, s.parents...)
	s.mu.Unlock()
	return created, nil
}

func (s *ParentsStore) UpdateParent(ctx context.Context, id int64, patch map[string]any) (*entity.Parent, error) {
	s.begin()
	defer s.finish()

	updated, err := s.api.UpdateParent(ctx, id, patch)
	if err != nil {
		s.fail(err, "Failed to update parent")
		return nil, err
	}

	s.mu.Lock()
	for i := range s.parents {
		if s.parents[i].ID == id {
			s.parents[i] = *updated
			break
		}
	}
	if s.current != nil && s.current.ID == id {
		s.current = updated
	}
	s.mu.Unlock()
	return updated, nil
}

func (s *ParentsStore) DeleteParent(ctx context.Context, id int64) error {
	s.begin()
	defer s.finish()

	if err := s.api.DeleteParent(ctx, id); err != nil {
		s.fail(err, "Failed to delete parent")
		return err
	}

	s.mu.Lock()
	kept := s.parents[:0]
	for _, p := range s.parents {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.parents = kept
	s.mu.Unlock()
	return nil
}

func (s *ParentsStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parents = nil
	s.current = nil
	s.err = ""
	s.pagination = Pagination{}
}

func (s *ParentsStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *ParentsStore) finish() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *ParentsStore) fail(err error, fallback string) {
	s.mu.Lock()
	s.err = api.ErrorDetail(err, fallback)
	s.mu.Unlock()
}
