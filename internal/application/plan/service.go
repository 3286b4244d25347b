package plan

import (
	"context"
	"fmt"
	"time"

	"github.com/gymkit/gym-api/internal/domain"
	"github.com/gymkit/gym-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName       = "name"
	fieldMonths     = "months"
	fieldPriceCents = "price_cents"
	fieldEnable     = "enable"
)

type Service interface {
	List(ctx context.Context, gymID string) ([]domain.Plan, error)
	Get(ctx context.Context, gymID, planID string) (*domain.Plan, error)
	Create(ctx context.Context, gymID string, input domain.PlanInput) (*domain.Plan, error)
	Update(ctx context.Context, gymID, planID string, req domain.UpdatePlanRequest) (*domain.Plan, error)
	Delete(ctx context.Context, gymID, planID string) error // soft delete
}

type planStore interface {
	Put(ctx context.Context, p *domain.Plan) error
	Get(ctx context.Context, planID string) (*domain.Plan, error)
	ListByGym(ctx context.Context, gymID string) ([]domain.Plan, error)
	Update(ctx context.Context, planID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, planID string) error
}

type service struct {
	repo planStore
}

func NewService(repo planStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, gymID string) ([]domain.Plan, error) {
	return s.repo.ListByGym(ctx, gymID)
}

// get loads a plan and enforces tenancy: plans of other gyms are reported as
// not found rather than forbidden, so their existence never leaks.
func (s *service) get(ctx context.Context, gymID, planID string) (*domain.Plan, error) {
	p, err := s.repo.Get(ctx, planID)
	if err != nil {
		return nil, err
	}
	if p.GymID != gymID {
		return nil, fmt.Errorf("plan not found: %w", domain.ErrNotFound)
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, gymID, planID string) (*domain.Plan, error) {
	return s.get(ctx, gymID, planID)
}

func (s *service) Create(ctx context.Context, gymID string, input domain.PlanInput) (*domain.Plan, error) {
	now := time.Now().UTC()
	p := &domain.Plan{
		PlanID:     id.New(),
		GymID:      gymID,
		Name:       input.Name,
		Months:     input.Months,
		PriceCents: input.PriceCents,
		Enable:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, gymID, planID string, req domain.UpdatePlanRequest) (*domain.Plan, error) {
	if _, err := s.get(ctx, gymID, planID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Months != nil {
		updates[fieldMonths] = *req.Months
	}
	if req.PriceCents != nil {
		updates[fieldPriceCents] = *req.PriceCents
	}
	if req.Enable != nil {
		updates[fieldEnable] = *req.Enable
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, planID)
	}
	if err := s.repo.Update(ctx, planID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, planID)
}

func (s *service) Delete(ctx context.Context, gymID, planID string) error {
	if _, err := s.get(ctx, gymID, planID); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, planID)
}
