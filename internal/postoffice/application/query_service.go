package application

import (
	"context"

	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/domain"
)

type queryService struct {
	repo PostRepository
}

// NewQueryService returns the read-side use-cases over repo.
func NewQueryService(repo PostRepository) QueryService {
	return &queryService{repo: repo}
}

func (s *queryService) List(ctx context.Context, query ListQuery) ([]domain.MobilePost, PageMeta, error) {
	posts, total, err := s.repo.Find(ctx, query.Filter, query.Sort, query.Paging)
	if err != nil {
		return nil, PageMeta{}, err
	}
	return posts, NewPageMeta(total, query.Paging), nil
}

func (s *queryService) Detail(ctx context.Context, id string) (*domain.MobilePost, error) {
	return s.repo.FindByID(ctx, id)
}
