package gym

import (
	"context"

	"github.com/gymkit/gym-api/internal/domain"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName     = "name"
	fieldAddress  = "address"
	fieldPhone    = "phone"
	fieldCurrency = "currency"
)

type Service interface {
	Get(ctx context.Context, gymID string) (*domain.Gym, error)
	Update(ctx context.Context, gymID string, req domain.UpdateGymRequest) (*domain.Gym, error)
	// List pages over all enabled gyms; platform-admin only.
	List(ctx context.Context, limit int, cursor string) ([]domain.Gym, string, error)
}

type gymStore interface {
	Get(ctx context.Context, gymID string) (*domain.Gym, error)
	Update(ctx context.Context, gymID string, updates map[string]interface{}) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.Gym, string, error)
}

type service struct {
	repo gymStore
}

func NewService(repo gymStore) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, gymID string) (*domain.Gym, error) {
	return s.repo.Get(ctx, gymID)
}

func (s *service) Update(ctx context.Context, gymID string, req domain.UpdateGymRequest) (*domain.Gym, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Address != nil {
		updates[fieldAddress] = *req.Address
	}
	if req.Phone != nil {
		updates[fieldPhone] = *req.Phone
	}
	if req.Currency != nil {
		updates[fieldCurrency] = *req.Currency
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, gymID)
	}
	if err := s.repo.Update(ctx, gymID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, gymID)
}

func (s *service) List(ctx context.Context, limit int, cursor string) ([]domain.Gym, string, error) {
	if limit < 1 {
		limit = 50
	}
	return s.repo.ScanPage(ctx, int32(limit), cursor)
}
