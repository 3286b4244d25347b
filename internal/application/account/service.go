package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gymkit/gym-api/internal/domain"
	"github.com/gymkit/gym-api/internal/pkg/id"
	pkgtoken "github.com/gymkit/gym-api/internal/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldPasswordHash = "password_hash"
)

type RegisterResult struct {
	Bearer       string
	RefreshToken string
	Session      *domain.Session
	Gym          *domain.Gym
}

type Service interface {
	// Register creates the owner account, its gym, and an initial session.
	Register(ctx context.Context, req domain.RegisterRequest) (*RegisterResult, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID string, req domain.ChangePasswordRequest) error
}

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type gymStore interface {
	Put(ctx context.Context, g *domain.Gym) error
}

type sessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
	SoftDeleteByUser(ctx context.Context, userID string) error
}

type jwtSigner interface {
	Sign(userID, gymID, role, sessionID string) (string, error)
}

type service struct {
	userRepo        userStore
	gymRepo         gymStore
	sessionRepo     sessionStore
	jwtProvider     jwtSigner
	refreshTokenDur time.Duration
}

type ServiceDeps struct {
	UserRepo        userStore
	GymRepo         gymStore
	SessionRepo     sessionStore
	JWTProvider     jwtSigner
	RefreshTokenDur time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		userRepo:        deps.UserRepo,
		gymRepo:         deps.GymRepo,
		sessionRepo:     deps.SessionRepo,
		jwtProvider:     deps.JWTProvider,
		refreshTokenDur: deps.RefreshTokenDur,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*RegisterResult, error) {
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	g := &domain.Gym{
		GymID:     id.New(),
		Name:      req.GymName,
		Currency:  "USD",
		Enable:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	u := &domain.User{
		UserID:       id.New(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         domain.RoleOwner,
		GymID:        g.GymID,
		Enable:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	g.OwnerID = u.UserID

	if err := s.userRepo.Put(ctx, u); err != nil {
		return nil, err
	}
	if err := s.gymRepo.Put(ctx, g); err != nil {
		return nil, err
	}

	refreshToken, err := pkgtoken.NewRefreshToken()
	if err != nil {
		return nil, err
	}
	sess := &domain.Session{
		SessionID:        id.New(),
		UserID:           u.UserID,
		Enable:           true,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: now.Add(s.refreshTokenDur).Unix(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.sessionRepo.Put(ctx, sess); err != nil {
		return nil, err
	}
	bearer, err := s.jwtProvider.Sign(u.UserID, u.GymID, u.Role, sess.SessionID)
	if err != nil {
		return nil, err
	}
	sess.User = u
	return &RegisterResult{Bearer: bearer, RefreshToken: refreshToken, Session: sess, Gym: g}, nil
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.Get(ctx, userID)
}

func (s *service) ChangePassword(ctx context.Context, userID string, req domain.ChangePasswordRequest) error {
	u, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect: %w", domain.ErrUnauthorized)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, userID, map[string]interface{}{fieldPasswordHash: string(hash)}); err != nil {
		return err
	}
	// Existing sessions are invalidated; the caller logs in again.
	return s.sessionRepo.SoftDeleteByUser(ctx, userID)
}
