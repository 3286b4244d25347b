package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gymkit/gym-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockSessionStore struct{ mock.Mock }

func (m *mockSessionStore) Put(ctx context.Context, s *domain.Session) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockSessionStore) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID)
	if s, _ := args.Get(0).(*domain.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSessionStore) GetByRefreshToken(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if s, _ := args.Get(0).(*domain.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSessionStore) RotateRefreshToken(ctx context.Context, sessionID, newToken string, newExpiry int64) error {
	return m.Called(ctx, sessionID, newToken, newExpiry).Error(0)
}
func (m *mockSessionStore) Update(ctx context.Context, sessionID string, updates map[string]interface{}) error {
	return m.Called(ctx, sessionID, updates).Error(0)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockJWTSigner struct{ mock.Mock }

func (m *mockJWTSigner) Sign(userID, gymID, role, sessionID string) (string, error) {
	args := m.Called(userID, gymID, role, sessionID)
	return args.String(0), args.Error(1)
}

func newService(ss *mockSessionStore, us *mockUserStore, jwt *mockJWTSigner) Service {
	return NewService(ServiceDeps{
		SessionRepo:     ss,
		UserRepo:        us,
		JWTProvider:     jwt,
		RefreshTokenDur: 30 * 24 * time.Hour,
	})
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// --- Login ---

func TestLogin_UnknownEmail_ReturnsUnauthorized(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "x@x.com").Return(nil, domain.ErrNotFound)

	svc := newService(nil, us, nil)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "x@x.com", Password: "pw"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_DisabledAccount_ReturnsForbidden(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.User{
		UserID: "u1", Enable: false, PasswordHash: hashOf(t, "pw"),
	}, nil)

	svc := newService(nil, us, nil)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "pw"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestLogin_WrongPassword_ReturnsUnauthorized(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.User{
		UserID: "u1", Enable: true, PasswordHash: hashOf(t, "correct"),
	}, nil)

	svc := newService(nil, us, nil)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	ss := &mockSessionStore{}
	jwt := &mockJWTSigner{}

	us.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.User{
		UserID: "u1", GymID: "g1", Role: domain.RoleOwner, Enable: true,
		PasswordHash: hashOf(t, "pw"),
	}, nil)
	ss.On("Put", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil)
	jwt.On("Sign", "u1", "g1", domain.RoleOwner, mock.Anything).Return("bearer-token", nil)

	svc := newService(ss, us, jwt)
	result, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "bearer-token", result.Bearer)
	assert.NotEmpty(t, result.RefreshToken)
	require.NotNil(t, result.Session)
	assert.Equal(t, "u1", result.Session.UserID)
	ss.AssertExpectations(t)
	jwt.AssertExpectations(t)
}

// --- GetCurrent ---

func TestGetCurrent_DisabledSession_ReturnsUnauthorized(t *testing.T) {
	ss := &mockSessionStore{}
	ss.On("Get", mock.Anything, "s1").Return(&domain.Session{SessionID: "s1", Enable: false}, nil)

	svc := newService(ss, nil, nil)
	_, err := svc.GetCurrent(context.Background(), "s1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestGetCurrent_AttachesUser(t *testing.T) {
	ss := &mockSessionStore{}
	us := &mockUserStore{}
	ss.On("Get", mock.Anything, "s1").Return(&domain.Session{SessionID: "s1", UserID: "u1", Enable: true}, nil)
	us.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Email: "a@b.com"}, nil)

	svc := newService(ss, us, nil)
	sess, err := svc.GetCurrent(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, sess.User)
	assert.Equal(t, "a@b.com", sess.User.Email)
}

// --- Logout ---

func TestLogout_DisablesSession(t *testing.T) {
	ss := &mockSessionStore{}
	ss.On("Update", mock.Anything, "s1", map[string]interface{}{"enable": false}).Return(nil)

	svc := newService(ss, nil, nil)
	require.NoError(t, svc.Logout(context.Background(), "s1"))
	ss.AssertExpectations(t)
}

// --- Refresh ---

func TestRefresh_UnknownToken_ReturnsUnauthorized(t *testing.T) {
	ss := &mockSessionStore{}
	ss.On("GetByRefreshToken", mock.Anything, "bad").Return(nil, domain.ErrNotFound)

	svc := newService(ss, nil, nil)
	_, _, err := svc.Refresh(context.Background(), "bad")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestRefresh_ExpiredToken_ReturnsUnauthorized(t *testing.T) {
	ss := &mockSessionStore{}
	ss.On("GetByRefreshToken", mock.Anything, "tok").Return(&domain.Session{
		SessionID:        "s1",
		RefreshExpiresAt: time.Now().Add(-time.Hour).Unix(),
	}, nil)

	svc := newService(ss, nil, nil)
	_, _, err := svc.Refresh(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestRefresh_RotatesToken(t *testing.T) {
	ss := &mockSessionStore{}
	us := &mockUserStore{}
	jwt := &mockJWTSigner{}

	ss.On("GetByRefreshToken", mock.Anything, "tok").Return(&domain.Session{
		SessionID:        "s1",
		UserID:           "u1",
		RefreshExpiresAt: time.Now().Add(time.Hour).Unix(),
	}, nil)
	ss.On("RotateRefreshToken", mock.Anything, "s1", mock.Anything, mock.Anything).Return(nil)
	us.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", GymID: "g1", Role: domain.RoleOwner}, nil)
	jwt.On("Sign", "u1", "g1", domain.RoleOwner, "s1").Return("new-bearer", nil)

	svc := newService(ss, us, jwt)
	bearer, newToken, err := svc.Refresh(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, "new-bearer", bearer)
	assert.NotEmpty(t, newToken)
	assert.NotEqual(t, "tok", newToken)
	ss.AssertExpectations(t)
}
