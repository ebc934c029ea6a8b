package auth

import (
	"context"
	"fmt"
	"math"

	"CollegeHub/internal/apperr"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Response messages. Register and reset use existence-neutral wording so the
// endpoints do not reveal whether an account exists.
const (
	MsgRegisterOtpSent = "If the email is eligible, an OTP has been sent for registration verification"
	MsgLoginOtpSent    = "OTP sent to email for login verification"
	MsgResetOtpSent    = "If the email exists, an OTP has been sent"
	MsgOtpResent       = "OTP resent"
	MsgPasswordUpdated = "Password updated successfully"
	msgInvalidLogin    = "Invalid credentials"
)

// UserStore is the credential store surface the auth flows need.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	Create(ctx context.Context, user *User) error
	UpdatePasswordHash(ctx context.Context, id primitive.ObjectID, hash string) error
}

type Service struct {
	users  UserStore
	otp    *OtpService
	policy *AccessPolicy
	tokens *TokenManager
	logger *zap.Logger
}

func NewService(users UserStore, otp *OtpService, policy *AccessPolicy, tokens *TokenManager, logger *zap.Logger) *Service {
	return &Service{users: users, otp: otp, policy: policy, tokens: tokens, logger: logger}
}

// Register starts the registration flow: eligibility gate, then OTP issuance
// with the pending profile in the record's metadata. An already-registered
// email gets the same response without an issuance.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (string, error) {
	email := NormalizeEmail(req.Email)
	if !s.policy.IsAllowed(email) {
		return "", apperr.Eligibility("This email is not allowed for OTP registration")
	}
	role := req.Role
	if role == "" {
		role = RoleStudent
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		s.logger.Info("registration attempt for existing email", zap.String("email", email))
		return MsgRegisterOtpSent, nil
	}

	// The pending password goes into the record only as a hash; the client
	// resubmits the cleartext fields at verification time.
	pwHash, err := HashPassword(req.Password)
	if err != nil {
		return "", err
	}
	meta := bson.M{"name": req.Name, "role": role, "password_hash": pwHash}
	if _, err := s.otp.Issue(ctx, email, PurposeRegister, DefaultOtpTTL, meta); err != nil {
		return "", err
	}
	return MsgRegisterOtpSent, nil
}

// VerifyRegister consumes the registration OTP and materializes the user from
// the client-resubmitted fields.
func (s *Service) VerifyRegister(ctx context.Context, req VerifyRegisterRequest) (*PublicUser, error) {
	email := NormalizeEmail(req.Email)
	ok, err := s.otp.Verify(ctx, email, PurposeRegister, req.Otp)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.BadOtp()
	}

	// Race guard: a concurrent registration may have won since the OTP was
	// issued. The unique email index backs this check up.
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("Email already registered")
	}

	pwHash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	now := s.otp.now()
	user := &User{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: pwHash,
		Role:         req.Role,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", zap.String("email", email), zap.String("role", user.Role))
	return user.Public(), nil
}

// Login checks credentials and issues a login OTP. Unknown email and wrong
// password fail identically.
func (s *Service) Login(ctx context.Context, req LoginRequest) (string, error) {
	email := NormalizeEmail(req.Email)
	if !s.policy.IsAllowed(email) {
		return "", apperr.Eligibility("This email is not allowed for OTP login")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil || !CheckPasswordHash(req.Password, user.PasswordHash) || user.Status != StatusActive {
		return "", apperr.Unauthorized(msgInvalidLogin)
	}

	if _, err := s.otp.Issue(ctx, email, PurposeLogin, DefaultOtpTTL, nil); err != nil {
		return "", err
	}
	return MsgLoginOtpSent, nil
}

// VerifyLogin consumes the login OTP and mints a session token. A missing
// user here is a genuine 404: the account existed when the OTP was issued.
func (s *Service) VerifyLogin(ctx context.Context, req VerifyLoginRequest) (*LoginResponse, error) {
	email := NormalizeEmail(req.Email)
	ok, err := s.otp.Verify(ctx, email, PurposeLogin, req.Otp)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.BadOtp()
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}

	token, err := s.tokens.Mint(user.ID.Hex(), user.Role, s.otp.now())
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, User: user.Public()}, nil
}

// RequestPasswordReset always answers the same way; issuance happens only
// when the account exists. The eligibility gate deliberately does not apply
// here.
func (s *Service) RequestPasswordReset(ctx context.Context, req ResetRequest) (string, error) {
	email := NormalizeEmail(req.Email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return MsgResetOtpSent, nil
	}
	if _, err := s.otp.Issue(ctx, email, PurposeReset, DefaultOtpTTL, nil); err != nil {
		return "", err
	}
	return MsgResetOtpSent, nil
}

func (s *Service) VerifyPasswordReset(ctx context.Context, req VerifyResetRequest) (string, error) {
	email := NormalizeEmail(req.Email)
	ok, err := s.otp.Verify(ctx, email, PurposeReset, req.Otp)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperr.BadOtp()
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperr.NotFound("User not found")
	}

	pwHash, err := HashPassword(req.NewPassword)
	if err != nil {
		return "", err
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, pwHash); err != nil {
		return "", err
	}
	s.logger.Info("password reset", zap.String("email", email))
	return MsgPasswordUpdated, nil
}

// ResendOtp re-issues a code for the pair, subject to the fixed cooldown
// since the last issuance.
func (s *Service) ResendOtp(ctx context.Context, req ResendOtpRequest) (string, error) {
	email := NormalizeEmail(req.Email)
	if !s.policy.IsAllowed(email) {
		return "", apperr.Eligibility("This email is not allowed for OTP")
	}

	remaining, err := s.otp.CooldownRemaining(ctx, email, req.Purpose)
	if err != nil {
		return "", err
	}
	if remaining > 0 {
		retryAfter := int(math.Ceil(remaining.Seconds()))
		return "", apperr.RateLimited(fmt.Sprintf("Please wait %ds before requesting a new OTP", retryAfter), retryAfter)
	}

	if _, err := s.otp.Issue(ctx, email, req.Purpose, DefaultOtpTTL, nil); err != nil {
		return "", err
	}
	return MsgOtpResent, nil
}
