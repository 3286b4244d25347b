package dashboard

import (
	"context"
	"time"

	"github.com/gymkit/gym-api/internal/domain"
)

// expiringWindow is how far ahead "expiring soon" looks.
const expiringWindow = 7 * 24 * time.Hour

// Stats is the aggregate backing the owner dashboard.
type Stats struct {
	TotalMembers    int   `json:"total_members"`
	ActiveMembers   int   `json:"active_members"`
	ExpiredMembers  int   `json:"expired_members"`
	ExpiringSoon    int   `json:"expiring_soon"`
	FeesDue         int   `json:"fees_due"`
	RevenueCents    int64 `json:"revenue_cents"`
	PlansConfigured int   `json:"plans_configured"`
}

type Service interface {
	Stats(ctx context.Context, gymID string) (*Stats, error)
}

type memberStore interface {
	ListByGym(ctx context.Context, gymID string) ([]domain.Member, error)
}

type planStore interface {
	ListByGym(ctx context.Context, gymID string) ([]domain.Plan, error)
}

type service struct {
	memberRepo memberStore
	planRepo   planStore
}

func NewService(memberRepo memberStore, planRepo planStore) Service {
	return &service{memberRepo: memberRepo, planRepo: planRepo}
}

func (s *service) Stats(ctx context.Context, gymID string) (*Stats, error) {
	members, err := s.memberRepo.ListByGym(ctx, gymID)
	if err != nil {
		return nil, err
	}
	plans, err := s.planRepo.ListByGym(ctx, gymID)
	if err != nil {
		return nil, err
	}
	priceByPlan := make(map[string]int64, len(plans))
	enabled := 0
	for _, p := range plans {
		priceByPlan[p.PlanID] = p.PriceCents
		if p.Enable {
			enabled++
		}
	}

	now := time.Now().UTC()
	st := &Stats{PlansConfigured: enabled}
	for _, m := range members {
		if !m.Enable {
			continue
		}
		st.TotalMembers++
		switch {
		case m.ExpiresAt.Before(now):
			st.ExpiredMembers++
		default:
			st.ActiveMembers++
			if m.ExpiresAt.Before(now.Add(expiringWindow)) {
				st.ExpiringSoon++
			}
			if m.FeeStatus == domain.FeeStatusPaid {
				st.RevenueCents += priceByPlan[m.PlanID]
			}
		}
		if m.FeeStatus == domain.FeeStatusDue {
			st.FeesDue++
		}
	}
	return st, nil
}
