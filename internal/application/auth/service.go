package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/inventory-dashboard-api/internal/domain"
	"github.com/inventory-dashboard-api/internal/infrastructure/smtp"
	"github.com/inventory-dashboard-api/internal/pkg/events"
	"github.com/inventory-dashboard-api/internal/pkg/id"
	"github.com/inventory-dashboard-api/internal/pkg/token"
)

// TopicUserVerified is published on the event bus after a successful
// verification. Listeners are strictly best-effort.
const TopicUserVerified = "user.verified"

// VerifiedEvent is the payload published under TopicUserVerified.
type VerifiedEvent struct {
	Email string
	At    time.Time
}

// Terminal request failures, returned verbatim to the client.
// All verification failures map to 400 like the missing-input case: the
// distinct messages are what lets the UI guide the user (resend vs re-enter).
var (
	ErrEmailRequired = domain.NewAPIError(domain.ErrBadRequest, "Email is required")
	ErrInputRequired = domain.NewAPIError(domain.ErrBadRequest, "Email and OTP are required")
	ErrOTPNotFound   = domain.NewAPIError(domain.ErrBadRequest, "OTP not found")
	ErrOTPExpired    = domain.NewAPIError(domain.ErrBadRequest, "OTP has expired")
	ErrOTPInvalid    = domain.NewAPIError(domain.ErrBadRequest, "Invalid OTP")
)

// OTPStore persists one-time codes keyed by email.
type OTPStore interface {
	Put(ctx context.Context, o *domain.OTP) error
	Get(ctx context.Context, email string) (*domain.OTP, error)
	Delete(ctx context.Context, email string) error
}

// UserStore persists dashboard users.
type UserStore interface {
	Put(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type Service interface {
	// RequestOTP issues a fresh code for email, replacing any prior
	// unconsumed one, and dispatches it by email. Resend is the same call.
	RequestOTP(ctx context.Context, email string) error
	// VerifyOTP validates the code and, on match, marks the user verified,
	// consumes the code and returns a session token.
	VerifyOTP(ctx context.Context, email, code string) (string, error)
}

type ServiceDeps struct {
	OTPRepo  OTPStore
	UserRepo UserStore
	Mailer   smtp.Mailer
	Bus      *events.Bus
}

type service struct {
	otpRepo  OTPStore
	userRepo UserStore
	mailer   smtp.Mailer
	bus      *events.Bus
}

func NewService(d ServiceDeps) Service {
	return &service{
		otpRepo:  d.OTPRepo,
		userRepo: d.UserRepo,
		mailer:   d.Mailer,
		bus:      d.Bus,
	}
}

func (s *service) RequestOTP(ctx context.Context, email string) error {
	if email == "" {
		return ErrEmailRequired
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o := &domain.OTP{
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(domain.OTPValidity).Unix(),
		CreatedAt: now,
	}
	// Upsert by email: a resend overwrites the previous code, so at most one
	// live record exists per address.
	if err := s.otpRepo.Put(ctx, o); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	body, err := smtp.RenderOTPEmail(code)
	if err != nil {
		return err
	}
	// If dispatch fails the stored code stays valid; the client retries via
	// resend, which overwrites it anyway.
	if err := s.mailer.SendEmail(email, smtp.SubjectOTP, body); err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}
	return nil
}

func (s *service) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	if email == "" || code == "" {
		return "", ErrInputRequired
	}

	o, err := s.otpRepo.Get(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", ErrOTPNotFound
	}
	if err != nil {
		// Store trouble is not a client mistake; let the transport collapse it
		// to the generic 500 body.
		return "", fmt.Errorf("lookup otp: %w", err)
	}
	now := time.Now().UTC()
	// Expiry is checked before the match: a correct but stale code is still
	// rejected, and the record stays put until a fresh issue overwrites it.
	if o.Expired(now) {
		return "", ErrOTPExpired
	}
	if o.Code != code {
		return "", ErrOTPInvalid
	}

	if err := s.upsertVerifiedUser(ctx, email, now); err != nil {
		return "", err
	}
	// Single-use: consume the code before handing out the token.
	if err := s.otpRepo.Delete(ctx, email); err != nil {
		return "", fmt.Errorf("consume otp: %w", err)
	}

	tok := token.Encode(email, now)

	// Fire-and-forget side channel; listeners log their own failures and can
	// never affect the result prepared above.
	if s.bus != nil {
		s.bus.Publish(TopicUserVerified, VerifiedEvent{Email: email, At: now})
	}
	return tok, nil
}

// upsertVerifiedUser creates the user on first verification and refreshes
// verified/last_login on every subsequent one. There is no signup step.
func (s *service) upsertVerifiedUser(ctx context.Context, email string, now time.Time) error {
	u, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return s.userRepo.Update(ctx, u.UserID, map[string]interface{}{
			"verified":   true,
			"last_login": now.Format(time.RFC3339),
		})
	case errors.Is(err, domain.ErrNotFound):
		return s.userRepo.Put(ctx, &domain.User{
			UserID:    id.New(),
			Email:     email,
			Verified:  true,
			LastLogin: now,
			CreatedAt: now,
			UpdatedAt: now,
		})
	default:
		return fmt.Errorf("lookup user: %w", err)
	}
}

// WelcomeEmailListener returns the TopicUserVerified handler that sends the
// welcome email. Failures are logged and swallowed.
func WelcomeEmailListener(mailer smtp.Mailer) events.Handler {
	return func(payload interface{}) {
		ev, ok := payload.(VerifiedEvent)
		if !ok {
			return
		}
		body, err := smtp.RenderWelcomeEmail(ev.Email)
		if err != nil {
			slog.Warn("render welcome email failed", "email", ev.Email, "err", err)
			return
		}
		if err := mailer.SendEmail(ev.Email, smtp.SubjectWelcome, body); err != nil {
			slog.Warn("send welcome email failed", "email", ev.Email, "err", err)
		}
	}
}

// generateCode draws a uniform 6-digit code in [100000, 999999]; a leading
// zero is impossible by construction.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
