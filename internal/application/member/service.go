package member

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gymkit/gym-api/internal/domain"
	"github.com/gymkit/gym-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName      = "name"
	fieldEmail     = "email"
	fieldPhone     = "phone"
	fieldPlanID    = "plan_id"
	fieldFeeStatus = "fee_status"
	fieldExpiresAt = "expires_at"
	fieldPhotoKey  = "photo_key"
)

type PhotoUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

type Service interface {
	List(ctx context.Context, gymID string, limit int, cursor string) ([]domain.Member, string, error)
	Get(ctx context.Context, gymID, memberID string) (*domain.Member, error)
	Create(ctx context.Context, gymID string, req domain.CreateMemberRequest) (*domain.Member, error)
	Update(ctx context.Context, gymID, memberID string, req domain.UpdateMemberRequest) (*domain.Member, error)
	Delete(ctx context.Context, gymID, memberID string) error // soft delete
	// Renew extends the membership by the assigned plan's duration and marks
	// the fee paid. An already-lapsed membership restarts from today.
	Renew(ctx context.Context, gymID, memberID string) (*domain.Member, error)
	UploadPhoto(ctx context.Context, gymID, memberID string, upload PhotoUpload) (*domain.Member, error)
	// PhotoURL returns a short-lived presigned link to the member's photo.
	PhotoURL(ctx context.Context, gymID, memberID string) (string, error)
}

type memberStore interface {
	Put(ctx context.Context, m *domain.Member) error
	Get(ctx context.Context, memberID string) (*domain.Member, error)
	QueryPage(ctx context.Context, gymID string, limit int32, cursor string) ([]domain.Member, string, error)
	Update(ctx context.Context, memberID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, memberID string) error
}

type planStore interface {
	Get(ctx context.Context, planID string) (*domain.Plan, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type service struct {
	repo     memberStore
	planRepo planStore
	photos   objectStore
}

type ServiceDeps struct {
	MemberRepo memberStore
	PlanRepo   planStore
	Photos     objectStore
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.MemberRepo, planRepo: deps.PlanRepo, photos: deps.Photos}
}

func (s *service) List(ctx context.Context, gymID string, limit int, cursor string) ([]domain.Member, string, error) {
	if limit < 1 {
		limit = 50
	}
	return s.repo.QueryPage(ctx, gymID, int32(limit), cursor)
}

// get loads a member and enforces tenancy: members of other gyms are reported
// as not found so their existence never leaks.
func (s *service) get(ctx context.Context, gymID, memberID string) (*domain.Member, error) {
	m, err := s.repo.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if m.GymID != gymID {
		return nil, fmt.Errorf("member not found: %w", domain.ErrNotFound)
	}
	return m, nil
}

func (s *service) Get(ctx context.Context, gymID, memberID string) (*domain.Member, error) {
	return s.get(ctx, gymID, memberID)
}

// plan loads a plan of the same gym, for assignment to a member.
func (s *service) plan(ctx context.Context, gymID, planID string) (*domain.Plan, error) {
	p, err := s.planRepo.Get(ctx, planID)
	if err != nil {
		return nil, err
	}
	if p.GymID != gymID {
		return nil, fmt.Errorf("plan not found: %w", domain.ErrNotFound)
	}
	if !p.Enable {
		return nil, fmt.Errorf("plan is disabled: %w", domain.ErrBadRequest)
	}
	return p, nil
}

func (s *service) Create(ctx context.Context, gymID string, req domain.CreateMemberRequest) (*domain.Member, error) {
	p, err := s.plan(ctx, gymID, req.PlanID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	joined := now
	if req.JoinedAt != "" {
		joined, err = time.Parse("2006-01-02", req.JoinedAt)
		if err != nil {
			return nil, fmt.Errorf("joined_at must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
		}
	}

	m := &domain.Member{
		MemberID:  id.New(),
		GymID:     gymID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		PlanID:    p.PlanID,
		JoinedAt:  joined,
		ExpiresAt: joined.AddDate(0, p.Months, 0),
		FeeStatus: domain.FeeStatusPaid,
		Enable:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Update(ctx context.Context, gymID, memberID string, req domain.UpdateMemberRequest) (*domain.Member, error) {
	if _, err := s.get(ctx, gymID, memberID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Email != nil {
		updates[fieldEmail] = *req.Email
	}
	if req.Phone != nil {
		updates[fieldPhone] = *req.Phone
	}
	if req.PlanID != nil {
		if _, err := s.plan(ctx, gymID, *req.PlanID); err != nil {
			return nil, err
		}
		updates[fieldPlanID] = *req.PlanID
	}
	if req.FeeStatus != nil {
		updates[fieldFeeStatus] = *req.FeeStatus
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, memberID)
	}
	if err := s.repo.Update(ctx, memberID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, memberID)
}

func (s *service) Delete(ctx context.Context, gymID, memberID string) error {
	if _, err := s.get(ctx, gymID, memberID); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, memberID)
}

func (s *service) Renew(ctx context.Context, gymID, memberID string) (*domain.Member, error) {
	m, err := s.get(ctx, gymID, memberID)
	if err != nil {
		return nil, err
	}
	p, err := s.plan(ctx, gymID, m.PlanID)
	if err != nil {
		return nil, err
	}
	from := time.Now().UTC()
	if m.ExpiresAt.After(from) {
		from = m.ExpiresAt
	}
	newExpiry := from.AddDate(0, p.Months, 0)
	updates := map[string]interface{}{
		fieldExpiresAt: newExpiry,
		fieldFeeStatus: domain.FeeStatusPaid,
	}
	if err := s.repo.Update(ctx, memberID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, memberID)
}

func (s *service) UploadPhoto(ctx context.Context, gymID, memberID string, upload PhotoUpload) (*domain.Member, error) {
	if _, err := s.get(ctx, gymID, memberID); err != nil {
		return nil, err
	}
	key := fmt.Sprintf("members/%s/%s/photo", gymID, memberID)
	if _, err := s.photos.Upload(ctx, key, upload.Reader, upload.ContentType); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, memberID, map[string]interface{}{fieldPhotoKey: key}); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, memberID)
}

func (s *service) PhotoURL(ctx context.Context, gymID, memberID string) (string, error) {
	m, err := s.get(ctx, gymID, memberID)
	if err != nil {
		return "", err
	}
	if m.PhotoKey == "" {
		return "", fmt.Errorf("member has no photo: %w", domain.ErrNotFound)
	}
	return s.photos.PresignedURL(ctx, m.PhotoKey, 15*time.Minute)
}
