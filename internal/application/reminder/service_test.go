package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gymkit/gym-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMemberStore struct{ mock.Mock }

func (m *mockMemberStore) ListByGym(ctx context.Context, gymID string) ([]domain.Member, error) {
	args := m.Called(ctx, gymID)
	if ms, _ := args.Get(0).([]domain.Member); ms != nil {
		return ms, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockGymStore struct{ mock.Mock }

func (m *mockGymStore) Get(ctx context.Context, gymID string) (*domain.Gym, error) {
	args := m.Called(ctx, gymID)
	if g, _ := args.Get(0).(*domain.Gym); g != nil {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSMSSender struct{ mock.Mock }

func (m *mockSMSSender) SendSMS(ctx context.Context, to, message string) error {
	return m.Called(ctx, to, message).Error(0)
}

func strPtr(s string) *string { return &s }

func TestSendExpiring_NotifiesOnlyExpiringWithPhone(t *testing.T) {
	now := time.Now().UTC()
	members := []domain.Member{
		{MemberID: "m1", Name: "Ana", Enable: true, Phone: strPtr("+15551"), ExpiresAt: now.Add(2 * 24 * time.Hour)},  // notify
		{MemberID: "m2", Name: "Ben", Enable: true, ExpiresAt: now.Add(2 * 24 * time.Hour)},                           // no phone
		{MemberID: "m3", Name: "Cal", Enable: true, Phone: strPtr("+15553"), ExpiresAt: now.Add(30 * 24 * time.Hour)}, // outside window
		{MemberID: "m4", Name: "Dee", Enable: true, Phone: strPtr("+15554"), ExpiresAt: now.Add(-24 * time.Hour)},     // already lapsed
		{MemberID: "m5", Name: "Eve", Enable: false, Phone: strPtr("+15555"), ExpiresAt: now.Add(24 * time.Hour)},     // deleted
	}

	ms := &mockMemberStore{}
	gs := &mockGymStore{}
	sms := &mockSMSSender{}
	gs.On("Get", mock.Anything, "g1").Return(&domain.Gym{GymID: "g1", Name: "Iron Temple"}, nil)
	ms.On("ListByGym", mock.Anything, "g1").Return(members, nil)
	sms.On("SendSMS", mock.Anything, "+15551", mock.MatchedBy(func(msg string) bool {
		return len(msg) > 0
	})).Return(nil)

	svc := NewService(ms, gs, sms)
	result, err := svc.SendExpiring(context.Background(), "g1", 3)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Notified)
	assert.Equal(t, 1, result.Skipped)
	sms.AssertNumberOfCalls(t, "SendSMS", 1)
}

func TestSendExpiring_DeliveryFailure_CountedAsSkipped(t *testing.T) {
	now := time.Now().UTC()
	members := []domain.Member{
		{MemberID: "m1", Name: "Ana", Enable: true, Phone: strPtr("+15551"), ExpiresAt: now.Add(24 * time.Hour)},
		{MemberID: "m2", Name: "Ben", Enable: true, Phone: strPtr("+15552"), ExpiresAt: now.Add(24 * time.Hour)},
	}

	ms := &mockMemberStore{}
	gs := &mockGymStore{}
	sms := &mockSMSSender{}
	gs.On("Get", mock.Anything, "g1").Return(&domain.Gym{GymID: "g1", Name: "Iron Temple"}, nil)
	ms.On("ListByGym", mock.Anything, "g1").Return(members, nil)
	sms.On("SendSMS", mock.Anything, "+15551", mock.Anything).Return(errors.New("sns throttled"))
	sms.On("SendSMS", mock.Anything, "+15552", mock.Anything).Return(nil)

	svc := NewService(ms, gs, sms)
	result, err := svc.SendExpiring(context.Background(), "g1", 3)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Notified)
	assert.Equal(t, 1, result.Skipped)
}

func TestSendExpiring_DefaultWindow(t *testing.T) {
	now := time.Now().UTC()
	members := []domain.Member{
		{MemberID: "m1", Name: "Ana", Enable: true, Phone: strPtr("+15551"), ExpiresAt: now.Add(2 * 24 * time.Hour)},
	}

	ms := &mockMemberStore{}
	gs := &mockGymStore{}
	sms := &mockSMSSender{}
	gs.On("Get", mock.Anything, "g1").Return(&domain.Gym{GymID: "g1", Name: "Iron Temple"}, nil)
	ms.On("ListByGym", mock.Anything, "g1").Return(members, nil)
	sms.On("SendSMS", mock.Anything, "+15551", mock.Anything).Return(nil)

	svc := NewService(ms, gs, sms)
	result, err := svc.SendExpiring(context.Background(), "g1", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Notified)
}

func TestSendExpiring_UnknownGym(t *testing.T) {
	gs := &mockGymStore{}
	gs.On("Get", mock.Anything, "g1").Return(nil, domain.ErrNotFound)

	svc := NewService(&mockMemberStore{}, gs, &mockSMSSender{})
	_, err := svc.SendExpiring(context.Background(), "g1", 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
