package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gymkit/gym-api/internal/domain"
)

const defaultWindowDays = 3

type SendResult struct {
	Notified int `json:"notified"`
	Skipped  int `json:"skipped"`
}

type Service interface {
	// SendExpiring texts every active member whose membership lapses within
	// windowDays (default 3) and who has a phone number on file. Individual
	// delivery failures are logged and counted, not fatal.
	SendExpiring(ctx context.Context, gymID string, windowDays int) (*SendResult, error)
}

type memberStore interface {
	ListByGym(ctx context.Context, gymID string) ([]domain.Member, error)
}

type gymStore interface {
	Get(ctx context.Context, gymID string) (*domain.Gym, error)
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type service struct {
	memberRepo memberStore
	gymRepo    gymStore
	sms        smsSender
}

func NewService(memberRepo memberStore, gymRepo gymStore, sms smsSender) Service {
	return &service{memberRepo: memberRepo, gymRepo: gymRepo, sms: sms}
}

func (s *service) SendExpiring(ctx context.Context, gymID string, windowDays int) (*SendResult, error) {
	if windowDays < 1 {
		windowDays = defaultWindowDays
	}
	g, err := s.gymRepo.Get(ctx, gymID)
	if err != nil {
		return nil, err
	}
	members, err := s.memberRepo.ListByGym(ctx, gymID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cutoff := now.AddDate(0, 0, windowDays)
	result := &SendResult{}
	for _, m := range members {
		if !m.Enable || m.ExpiresAt.Before(now) || m.ExpiresAt.After(cutoff) {
			continue
		}
		if m.Phone == nil || *m.Phone == "" {
			result.Skipped++
			continue
		}
		msg := fmt.Sprintf("Hi %s, your %s membership expires on %s. Please renew at the front desk.",
			m.Name, g.Name, m.ExpiresAt.Format("Jan 2"))
		if err := s.sms.SendSMS(ctx, *m.Phone, msg); err != nil {
			slog.Warn("failed to send expiry reminder", "member_id", m.MemberID, "err", err)
			result.Skipped++
			continue
		}
		result.Notified++
	}
	return result, nil
}
