package plan

import (
	"context"
	"errors"
	"testing"

	"github.com/gymkit/gym-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPlanStore struct{ mock.Mock }

func (m *mockPlanStore) Put(ctx context.Context, p *domain.Plan) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockPlanStore) Get(ctx context.Context, planID string) (*domain.Plan, error) {
	args := m.Called(ctx, planID)
	if p, _ := args.Get(0).(*domain.Plan); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPlanStore) ListByGym(ctx context.Context, gymID string) ([]domain.Plan, error) {
	args := m.Called(ctx, gymID)
	return args.Get(0).([]domain.Plan), args.Error(1)
}
func (m *mockPlanStore) Update(ctx context.Context, planID string, updates map[string]interface{}) error {
	return m.Called(ctx, planID, updates).Error(0)
}
func (m *mockPlanStore) SoftDelete(ctx context.Context, planID string) error {
	return m.Called(ctx, planID).Error(0)
}

func TestCreatePlan_DefaultsEnabled(t *testing.T) {
	repo := &mockPlanStore{}
	var stored *domain.Plan
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.Plan")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.Plan)
		}).Return(nil)

	svc := NewService(repo)
	p, err := svc.Create(context.Background(), "g1", domain.PlanInput{
		Name: "Quarterly", Months: 3, PriceCents: 14900,
	})

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "g1", stored.GymID)
	assert.True(t, stored.Enable)
	assert.Equal(t, int64(14900), stored.PriceCents)
	assert.NotEmpty(t, p.PlanID)
}

func TestGetPlan_OtherGym_ReportedNotFound(t *testing.T) {
	repo := &mockPlanStore{}
	repo.On("Get", mock.Anything, "p1").Return(&domain.Plan{PlanID: "p1", GymID: "g2"}, nil)

	svc := NewService(repo)
	_, err := svc.Get(context.Background(), "g1", "p1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdatePlan_PartialUpdate(t *testing.T) {
	repo := &mockPlanStore{}
	p := &domain.Plan{PlanID: "p1", GymID: "g1", Name: "Monthly", Months: 1}
	repo.On("Get", mock.Anything, "p1").Return(p, nil)

	newName := "Monthly Plus"
	repo.On("Update", mock.Anything, "p1", map[string]interface{}{fieldName: "Monthly Plus"}).Return(nil)

	svc := NewService(repo)
	_, err := svc.Update(context.Background(), "g1", "p1", domain.UpdatePlanRequest{Name: &newName})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdatePlan_NoFields_NoWrite(t *testing.T) {
	repo := &mockPlanStore{}
	p := &domain.Plan{PlanID: "p1", GymID: "g1"}
	repo.On("Get", mock.Anything, "p1").Return(p, nil)

	svc := NewService(repo)
	got, err := svc.Update(context.Background(), "g1", "p1", domain.UpdatePlanRequest{})
	require.NoError(t, err)
	assert.Equal(t, "p1", got.PlanID)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeletePlan_SoftDeletes(t *testing.T) {
	repo := &mockPlanStore{}
	repo.On("Get", mock.Anything, "p1").Return(&domain.Plan{PlanID: "p1", GymID: "g1"}, nil)
	repo.On("SoftDelete", mock.Anything, "p1").Return(nil)

	svc := NewService(repo)
	require.NoError(t, svc.Delete(context.Background(), "g1", "p1"))
	repo.AssertExpectations(t)
}

func TestDeletePlan_OtherGym_ReportedNotFound(t *testing.T) {
	repo := &mockPlanStore{}
	repo.On("Get", mock.Anything, "p1").Return(&domain.Plan{PlanID: "p1", GymID: "g2"}, nil)

	svc := NewService(repo)
	err := svc.Delete(context.Background(), "g1", "p1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	repo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
}
