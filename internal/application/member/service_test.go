package member

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/gymkit/gym-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockMemberStore struct{ mock.Mock }

func (m *mockMemberStore) Put(ctx context.Context, mb *domain.Member) error {
	return m.Called(ctx, mb).Error(0)
}
func (m *mockMemberStore) Get(ctx context.Context, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, memberID)
	if mb, _ := args.Get(0).(*domain.Member); mb != nil {
		return mb, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMemberStore) QueryPage(ctx context.Context, gymID string, limit int32, cursor string) ([]domain.Member, string, error) {
	args := m.Called(ctx, gymID, limit, cursor)
	return args.Get(0).([]domain.Member), args.String(1), args.Error(2)
}
func (m *mockMemberStore) Update(ctx context.Context, memberID string, updates map[string]interface{}) error {
	return m.Called(ctx, memberID, updates).Error(0)
}
func (m *mockMemberStore) SoftDelete(ctx context.Context, memberID string) error {
	return m.Called(ctx, memberID).Error(0)
}

type mockPlanStore struct{ mock.Mock }

func (m *mockPlanStore) Get(ctx context.Context, planID string) (*domain.Plan, error) {
	args := m.Called(ctx, planID)
	if p, _ := args.Get(0).(*domain.Plan); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, r, contentType)
	return args.String(0), args.Error(1)
}
func (m *mockObjectStore) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

func newService(ms *mockMemberStore, ps *mockPlanStore, os *mockObjectStore) Service {
	return NewService(ServiceDeps{MemberRepo: ms, PlanRepo: ps, Photos: os})
}

func monthlyPlan() *domain.Plan {
	return &domain.Plan{PlanID: "p1", GymID: "g1", Name: "Monthly", Months: 1, Enable: true}
}

// --- Create ---

func TestCreateMember_UnknownPlan(t *testing.T) {
	ps := &mockPlanStore{}
	ps.On("Get", mock.Anything, "p1").Return(nil, domain.ErrNotFound)

	svc := newService(nil, ps, nil)
	_, err := svc.Create(context.Background(), "g1", domain.CreateMemberRequest{Name: "Ana", PlanID: "p1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCreateMember_PlanFromOtherGym_ReportedNotFound(t *testing.T) {
	ps := &mockPlanStore{}
	p := monthlyPlan()
	p.GymID = "g2"
	ps.On("Get", mock.Anything, "p1").Return(p, nil)

	svc := newService(nil, ps, nil)
	_, err := svc.Create(context.Background(), "g1", domain.CreateMemberRequest{Name: "Ana", PlanID: "p1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCreateMember_DisabledPlan_ReturnsBadRequest(t *testing.T) {
	ps := &mockPlanStore{}
	p := monthlyPlan()
	p.Enable = false
	ps.On("Get", mock.Anything, "p1").Return(p, nil)

	svc := newService(nil, ps, nil)
	_, err := svc.Create(context.Background(), "g1", domain.CreateMemberRequest{Name: "Ana", PlanID: "p1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCreateMember_BadJoinedAt_ReturnsBadRequest(t *testing.T) {
	ps := &mockPlanStore{}
	ps.On("Get", mock.Anything, "p1").Return(monthlyPlan(), nil)

	svc := newService(nil, ps, nil)
	_, err := svc.Create(context.Background(), "g1", domain.CreateMemberRequest{
		Name: "Ana", PlanID: "p1", JoinedAt: "01/02/2026",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCreateMember_HappyPath_ExpirySetFromPlan(t *testing.T) {
	ms := &mockMemberStore{}
	ps := &mockPlanStore{}
	ps.On("Get", mock.Anything, "p1").Return(monthlyPlan(), nil)

	var stored *domain.Member
	ms.On("Put", mock.Anything, mock.AnythingOfType("*domain.Member")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.Member)
		}).Return(nil)

	svc := newService(ms, ps, nil)
	m, err := svc.Create(context.Background(), "g1", domain.CreateMemberRequest{
		Name: "Ana", PlanID: "p1", JoinedAt: "2026-08-01",
	})

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "g1", stored.GymID)
	assert.Equal(t, domain.FeeStatusPaid, stored.FeeStatus)
	assert.True(t, stored.Enable)
	joined, _ := time.Parse("2006-01-02", "2026-08-01")
	assert.Equal(t, joined.AddDate(0, 1, 0), stored.ExpiresAt)
	assert.NotEmpty(t, m.MemberID)
}

// --- Get / tenancy ---

func TestGetMember_OtherGym_ReportedNotFound(t *testing.T) {
	ms := &mockMemberStore{}
	ms.On("Get", mock.Anything, "m1").Return(&domain.Member{MemberID: "m1", GymID: "g2"}, nil)

	svc := newService(ms, nil, nil)
	_, err := svc.Get(context.Background(), "g1", "m1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// --- Renew ---

func TestRenew_ActiveMembership_ExtendsFromCurrentExpiry(t *testing.T) {
	ms := &mockMemberStore{}
	ps := &mockPlanStore{}

	expiry := time.Now().UTC().Add(10 * 24 * time.Hour).Truncate(time.Second)
	m := &domain.Member{MemberID: "m1", GymID: "g1", PlanID: "p1", ExpiresAt: expiry}
	ms.On("Get", mock.Anything, "m1").Return(m, nil)
	ps.On("Get", mock.Anything, "p1").Return(monthlyPlan(), nil)

	var updates map[string]interface{}
	ms.On("Update", mock.Anything, "m1", mock.Anything).
		Run(func(args mock.Arguments) {
			updates = args.Get(2).(map[string]interface{})
		}).Return(nil)

	svc := newService(ms, ps, nil)
	_, err := svc.Renew(context.Background(), "g1", "m1")

	require.NoError(t, err)
	require.NotNil(t, updates)
	assert.Equal(t, expiry.AddDate(0, 1, 0), updates[fieldExpiresAt])
	assert.Equal(t, domain.FeeStatusPaid, updates[fieldFeeStatus])
}

func TestRenew_LapsedMembership_RestartsFromNow(t *testing.T) {
	ms := &mockMemberStore{}
	ps := &mockPlanStore{}

	m := &domain.Member{
		MemberID: "m1", GymID: "g1", PlanID: "p1",
		ExpiresAt: time.Now().UTC().Add(-30 * 24 * time.Hour),
	}
	ms.On("Get", mock.Anything, "m1").Return(m, nil)
	ps.On("Get", mock.Anything, "p1").Return(monthlyPlan(), nil)

	var updates map[string]interface{}
	ms.On("Update", mock.Anything, "m1", mock.Anything).
		Run(func(args mock.Arguments) {
			updates = args.Get(2).(map[string]interface{})
		}).Return(nil)

	svc := newService(ms, ps, nil)
	_, err := svc.Renew(context.Background(), "g1", "m1")

	require.NoError(t, err)
	newExpiry, ok := updates[fieldExpiresAt].(time.Time)
	require.True(t, ok)
	// Roughly one month out from now, never from the lapsed expiry.
	assert.True(t, newExpiry.After(time.Now().UTC().Add(27*24*time.Hour)))
}

// --- Photos ---

func TestUploadPhoto_StoresUnderGymScopedKey(t *testing.T) {
	ms := &mockMemberStore{}
	os := &mockObjectStore{}

	m := &domain.Member{MemberID: "m1", GymID: "g1"}
	ms.On("Get", mock.Anything, "m1").Return(m, nil)
	os.On("Upload", mock.Anything, "members/g1/m1/photo", mock.Anything, "image/jpeg").Return("members/g1/m1/photo", nil)
	ms.On("Update", mock.Anything, "m1", map[string]interface{}{fieldPhotoKey: "members/g1/m1/photo"}).Return(nil)

	svc := newService(ms, nil, os)
	_, err := svc.UploadPhoto(context.Background(), "g1", "m1", PhotoUpload{
		Reader:      strings.NewReader("jpegbytes"),
		Filename:    "ana.jpg",
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)
	os.AssertExpectations(t)
	ms.AssertExpectations(t)
}

func TestPhotoURL_NoPhoto_ReturnsNotFound(t *testing.T) {
	ms := &mockMemberStore{}
	ms.On("Get", mock.Anything, "m1").Return(&domain.Member{MemberID: "m1", GymID: "g1"}, nil)

	svc := newService(ms, nil, nil)
	_, err := svc.PhotoURL(context.Background(), "g1", "m1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPhotoURL_Presigns(t *testing.T) {
	ms := &mockMemberStore{}
	os := &mockObjectStore{}
	ms.On("Get", mock.Anything, "m1").Return(&domain.Member{
		MemberID: "m1", GymID: "g1", PhotoKey: "members/g1/m1/photo",
	}, nil)
	os.On("PresignedURL", mock.Anything, "members/g1/m1/photo", 15*time.Minute).
		Return("https://bucket.s3.amazonaws.com/members/g1/m1/photo?sig=x", nil)

	svc := newService(ms, nil, os)
	url, err := svc.PhotoURL(context.Background(), "g1", "m1")
	require.NoError(t, err)
	assert.Contains(t, url, "members/g1/m1/photo")
}
