// Package memory provides an in-process PostRepository sharing the exact
// filter and sort semantics of the Mongo implementation. It backs service
// tests and the importer's dry-run mode.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/hkopendata/mobile-post-services/api/internal/apperr"
	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/application"
	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/domain"
)

// PostRepository is a mutex-guarded in-memory store of mobile posts.
type PostRepository struct {
	mu     sync.RWMutex
	nextID int
	posts  map[string]domain.MobilePost
	now    func() time.Time
}

// NewPostRepository returns an empty repository.
func NewPostRepository() *PostRepository {
	return &PostRepository{
		nextID: 1,
		posts:  make(map[string]domain.MobilePost),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the audit timestamp source; tests use a fixed clock.
func (r *PostRepository) WithClock(now func() time.Time) *PostRepository {
	r.now = now
	return r
}

// Find applies the filter, sorts the survivors, and windows the result.
// The returned total counts every filtered record, not just the window.
func (r *PostRepository) Find(_ context.Context, filter application.Filter, sortSpec application.SortSpec, paging application.Paging) ([]domain.MobilePost, int, error) {
	r.mu.RLock()
	matched := make([]domain.MobilePost, 0, len(r.posts))
	for _, post := range r.posts {
		if filter.Matches(post) {
			matched = append(matched, post)
		}
	}
	r.mu.RUnlock()

	application.SortPosts(matched, sortSpec)
	total := len(matched)
	if paging.Limit <= 0 {
		return matched, total, nil
	}
	return application.Window(matched, paging), total, nil
}

// FindByID returns the record or a 0201 failure.
func (r *PostRepository) FindByID(_ context.Context, id string) (*domain.MobilePost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, apperr.New(apperr.CodeNotFound, "")
	}
	return &post, nil
}

// Insert assigns id and audit timestamps, rejecting dedup-key collisions
// with the stored data.
func (r *PostRepository) Insert(_ context.Context, post *domain.MobilePost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := post.DedupKey()
	for _, existing := range r.posts {
		if existing.DedupKey() == key {
			return apperr.New(apperr.CodeDuplicateRecord, "")
		}
	}

	post.ID = formatID(r.nextID)
	r.nextID++
	now := r.now()
	post.ImportedAt = now
	post.UpdatedAt = now
	r.posts[post.ID] = *post
	return nil
}

// Update overwrites only the supplied fields and bumps updatedAt.
func (r *PostRepository) Update(_ context.Context, id string, patch domain.Patch) (*domain.MobilePost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, apperr.New(apperr.CodeNotFound, "")
	}
	patch.Apply(&post)
	post.UpdatedAt = r.now()
	r.posts[id] = post
	return &post, nil
}

// Delete removes the record permanently.
func (r *PostRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return apperr.New(apperr.CodeNotFound, "")
	}
	delete(r.posts, id)
	return nil
}

// formatID keeps ids lexicographically ordered by insertion so the id
// tie-break behaves like ObjectID ordering does in Mongo.
func formatID(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 8 {
		s = "0" + s
	}
	return s
}
