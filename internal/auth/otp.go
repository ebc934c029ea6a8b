package auth

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultOtpTTL matches the 5 minute window quoted in the OTP email.
	DefaultOtpTTL = 5 * time.Minute
	// ResendCooldown is the minimum interval between issuances for the same
	// (email, purpose) pair.
	ResendCooldown = 60 * time.Second
	// maxOtpAttempts consumes the record after this many wrong codes, so a
	// code cannot be brute-forced within its TTL.
	maxOtpAttempts = 5

	deliveryTimeout = 15 * time.Second
)

// OtpStore persists one-time-code records keyed by (email, purpose).
type OtpStore interface {
	// Replace atomically swaps in the new record for its (email, purpose)
	// pair, creating it if absent.
	Replace(ctx context.Context, token *OtpToken) error
	// Find returns (nil, nil) when no record exists.
	Find(ctx context.Context, email, purpose string) (*OtpToken, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// IncrementAttempts adds one failed attempt and returns the new count.
	IncrementAttempts(ctx context.Context, id primitive.ObjectID) (int, error)
}

// OtpNotifier delivers the plaintext code to its recipient.
type OtpNotifier interface {
	SendOtp(ctx context.Context, to, purpose, code string, ttl time.Duration) error
}

type IssuedOtp struct {
	Code      string
	ExpiresAt time.Time
}

// OtpService issues and verifies one-time codes. Codes are stored only as
// bcrypt hashes; verification consumes the record on success.
type OtpService struct {
	store    OtpStore
	notifier OtpNotifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewOtpService(store OtpStore, notifier OtpNotifier, logger *zap.Logger) *OtpService {
	return &OtpService{store: store, notifier: notifier, logger: logger, now: time.Now}
}

// generateCode draws a uniformly random 6-digit code. The 100000 floor makes
// a leading zero impossible by construction.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(100000+n.Int64(), 10), nil
}

// Issue replaces any active code for (email, purpose) with a fresh one and
// triggers delivery in the background. A delivery failure does not roll back
// issuance; the code stays valid even if the email bounces.
func (s *OtpService) Issue(ctx context.Context, email, purpose string, ttl time.Duration, meta bson.M) (*IssuedOtp, error) {
	code, err := generateCode()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), passwordHashCost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	token := &OtpToken{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Purpose:   purpose,
		CodeHash:  string(hash),
		ExpiresAt: now.Add(ttl),
		Meta:      meta,
		CreatedAt: now,
	}
	if err := s.store.Replace(ctx, token); err != nil {
		return nil, err
	}

	go s.deliver(email, purpose, code, ttl)
	return &IssuedOtp{Code: code, ExpiresAt: token.ExpiresAt}, nil
}

func (s *OtpService) deliver(email, purpose, code string, ttl time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()
	if err := s.notifier.SendOtp(ctx, email, purpose, code, ttl); err != nil {
		s.logger.Error("OTP delivery failed",
			zap.String("email", email),
			zap.String("purpose", purpose),
			zap.Error(err))
	}
}

// Verify checks the candidate code against the active record. A wrong code
// leaves the record in place (retries are allowed within the TTL) but counts
// against the attempt budget; a correct code consumes the record, so it
// verifies exactly once.
func (s *OtpService) Verify(ctx context.Context, email, purpose, code string) (bool, error) {
	record, err := s.store.Find(ctx, email, purpose)
	if err != nil {
		return false, err
	}
	if record == nil {
		return false, nil
	}
	if !s.now().Before(record.ExpiresAt) {
		// Stale record stays; the next issuance overwrites it and the TTL
		// index reaps it eventually.
		return false, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(record.CodeHash), []byte(code)) != nil {
		attempts, err := s.store.IncrementAttempts(ctx, record.ID)
		if err != nil {
			return false, err
		}
		if attempts >= maxOtpAttempts {
			if err := s.store.Delete(ctx, record.ID); err != nil {
				s.logger.Error("failed to consume OTP after attempt limit", zap.String("email", email), zap.Error(err))
			}
		}
		return false, nil
	}
	if err := s.store.Delete(ctx, record.ID); err != nil {
		return false, err
	}
	return true, nil
}

// CooldownRemaining reports how long until a new code may be issued for the
// pair. Zero means issuance is allowed.
func (s *OtpService) CooldownRemaining(ctx context.Context, email, purpose string) (time.Duration, error) {
	record, err := s.store.Find(ctx, email, purpose)
	if err != nil || record == nil {
		return 0, err
	}
	if elapsed := s.now().Sub(record.CreatedAt); elapsed < ResendCooldown {
		return ResendCooldown - elapsed, nil
	}
	return 0, nil
}
