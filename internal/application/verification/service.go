package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gymkit/gym-api/internal/domain"
	"github.com/gymkit/gym-api/internal/pkg/otp"
)

// codeTTL is how long an issued code stays valid. The outgoing mail states
// this window explicitly, so keep the two in sync.
const codeTTL = 10 * time.Minute

type SendRequest struct {
	Email string `json:"email"`
}

type VerifyRequest struct {
	OTP   string `json:"otp"`
	Email string `json:"email"`
}

type Service interface {
	// Send issues a fresh verification code for the account, replacing any
	// previously stored one, and delivers it to the given address.
	Send(ctx context.Context, userID string, req SendRequest) error
	// Verify checks a submitted code against the account's live record and
	// marks the record verified on success. Safe to repeat after success.
	Verify(ctx context.Context, userID string, req VerifyRequest) error
}

type verificationStore interface {
	Put(ctx context.Context, v *domain.EmailVerification) error
	Get(ctx context.Context, userID string) (*domain.EmailVerification, error)
	MarkVerified(ctx context.Context, userID string) error
}

type mailer interface {
	SendMultipart(to, subject, text, html string) error
}

type service struct {
	repo   verificationStore
	mailer mailer
	rand   io.Reader
}

type ServiceDeps struct {
	VerificationRepo verificationStore
	Mailer           mailer
	Rand             io.Reader // defaults to crypto/rand.Reader
}

func NewService(deps ServiceDeps) Service {
	r := deps.Rand
	if r == nil {
		r = rand.Reader
	}
	return &service{repo: deps.VerificationRepo, mailer: deps.Mailer, rand: r}
}

func (s *service) Send(ctx context.Context, userID string, req SendRequest) error {
	if userID == "" {
		return fmt.Errorf("no authenticated caller: %w", domain.ErrUnauthorized)
	}
	if req.Email == "" {
		return fmt.Errorf("email is required: %w", domain.ErrBadRequest)
	}

	code, err := otp.Code(s.rand)
	if err != nil {
		return fmt.Errorf("could not issue verification code: %w", domain.ErrInternal)
	}

	now := time.Now().UTC()
	v := &domain.EmailVerification{
		UserID:    userID,
		Email:     req.Email,
		Code:      code,
		IssuedAt:  now,
		ExpiresAt: now.Add(codeTTL),
		Verified:  false,
	}
	if err := s.repo.Put(ctx, v); err != nil {
		slog.Error("failed to store verification record", "user_id", userID, "err", err)
		return fmt.Errorf("could not issue verification code: %w", domain.ErrInternal)
	}

	text, html := composeOTPEmail(code)
	if err := s.mailer.SendMultipart(req.Email, "Your GymKit verification code", text, html); err != nil {
		// The stored record stays put; the caller is told the call failed and
		// may simply re-issue. Dispatch detail is logged, never surfaced.
		slog.Error("failed to send verification email", "user_id", userID, "err", err)
		return fmt.Errorf("could not deliver verification code: %w", domain.ErrInternal)
	}
	return nil
}

func (s *service) Verify(ctx context.Context, userID string, req VerifyRequest) error {
	if userID == "" {
		return fmt.Errorf("no authenticated caller: %w", domain.ErrUnauthorized)
	}
	if req.OTP == "" || req.Email == "" {
		return fmt.Errorf("otp and email are required: %w", domain.ErrBadRequest)
	}

	v, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no verification code issued: %w", domain.ErrNotFound)
		}
		slog.Error("failed to load verification record", "user_id", userID, "err", err)
		return fmt.Errorf("could not load verification record: %w", domain.ErrInternal)
	}
	if v.Email != req.Email {
		return fmt.Errorf("email does not match the address the code was sent to: %w", domain.ErrBadRequest)
	}
	if time.Now().After(v.ExpiresAt) {
		return fmt.Errorf("verification code expired: %w", domain.ErrExpired)
	}
	if v.Code != req.OTP {
		return fmt.Errorf("invalid verification code: %w", domain.ErrBadRequest)
	}

	// Idempotent: flipping verified on an already-verified record is a no-op.
	if err := s.repo.MarkVerified(ctx, userID); err != nil {
		slog.Error("failed to mark verification record", "user_id", userID, "err", err)
		return fmt.Errorf("could not record verification: %w", domain.ErrInternal)
	}
	return nil
}

func composeOTPEmail(code string) (text, html string) {
	text = fmt.Sprintf(
		"Your GymKit verification code is %s.\n\nThe code expires in 10 minutes. If you did not request it, ignore this email.",
		code,
	)
	html = fmt.Sprintf(
		`<p>Your GymKit verification code is:</p><p style="font-size:24px;font-weight:bold;letter-spacing:4px">%s</p><p>The code expires in 10 minutes. If you did not request it, ignore this email.</p>`,
		code,
	)
	return text, html
}
