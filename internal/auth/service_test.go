package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"CollegeHub/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*User{}}
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) Create(_ context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Email]; exists {
		return apperr.Conflict("Email already registered")
	}
	copied := *user
	s.users[user.Email] = &copied
	return nil
}

func (s *fakeUserStore) UpdatePasswordHash(_ context.Context, id primitive.ObjectID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.ID == id {
			user.PasswordHash = hash
			return nil
		}
	}
	return apperr.NotFound("User not found")
}

func (s *fakeUserStore) add(t *testing.T, email, password, role, status string) *User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	user := &User{
		ID:           primitive.NewObjectID(),
		Name:         strings.Split(email, "@")[0],
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       status,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	s.users[email] = user
	return user
}

type serviceFixture struct {
	service  *Service
	users    *fakeUserStore
	otpStore *fakeOtpStore
	notifier *fakeNotifier
}

func newServiceFixture(policy *AccessPolicy) *serviceFixture {
	users := newFakeUserStore()
	otpStore := newFakeOtpStore()
	notifier := newFakeNotifier()
	otp := NewOtpService(otpStore, notifier, zap.NewNop())
	tokens := NewTokenManager(&TokenConfig{Secret: []byte("test-secret"), TTL: DefaultSessionTTL})
	return &serviceFixture{
		service:  NewService(users, otp, policy, tokens, zap.NewNop()),
		users:    users,
		otpStore: otpStore,
		notifier: notifier,
	}
}

func (f *serviceFixture) sentCode(t *testing.T) string {
	t.Helper()
	select {
	case sent := <-f.notifier.sent:
		parts := strings.Split(sent, "|")
		return parts[len(parts)-1]
	case <-time.After(2 * time.Second):
		t.Fatal("no OTP was delivered")
		return ""
	}
}

func openPolicy() *AccessPolicy { return NewAccessPolicyFrom(nil, "") }

func TestRegisterIssuesOtpWithHashedPassword(t *testing.T) {
	f := newServiceFixture(openPolicy())

	msg, err := f.service.Register(context.Background(), RegisterRequest{
		Name: "New Student", Email: "Student@College.edu", Password: "pass-123",
	})
	require.NoError(t, err)
	assert.Equal(t, MsgRegisterOtpSent, msg)

	record, err := f.otpStore.Find(context.Background(), "student@college.edu", PurposeRegister)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, RoleStudent, record.Meta["role"], "role defaults to student")
	hash, _ := record.Meta["password_hash"].(string)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "pass-123", hash, "only the hash is stored")
	assert.True(t, CheckPasswordHash("pass-123", hash))
}

func TestRegisterExistingEmailDoesNotRevealAccount(t *testing.T) {
	f := newServiceFixture(openPolicy())
	f.users.add(t, "taken@college.edu", "pass-123", RoleStudent, StatusActive)

	msg, err := f.service.Register(context.Background(), RegisterRequest{
		Name: "Imposter", Email: "taken@college.edu", Password: "other-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, MsgRegisterOtpSent, msg, "taken email gets the same response")

	record, err := f.otpStore.Find(context.Background(), "taken@college.edu", PurposeRegister)
	require.NoError(t, err)
	assert.Nil(t, record, "no OTP is issued for a taken email")
}

func TestRegisterBlockedByPolicy(t *testing.T) {
	f := newServiceFixture(NewAccessPolicyFrom(nil, "college.edu"))

	_, err := f.service.Register(context.Background(), RegisterRequest{
		Name: "Outsider", Email: "outsider@gmail.com", Password: "pass-123",
	})
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindEligibility, ae.Kind)
}

func TestRegisterThenVerifyCreatesUser(t *testing.T) {
	f := newServiceFixture(openPolicy())

	_, err := f.service.Register(context.Background(), RegisterRequest{
		Name: "New Alum", Email: "alum@college.edu", Password: "pass-123", Role: RoleAlumni,
	})
	require.NoError(t, err)
	code := f.sentCode(t)

	public, err := f.service.VerifyRegister(context.Background(), VerifyRegisterRequest{
		Name: "New Alum", Email: "alum@college.edu", Password: "pass-123", Role: RoleAlumni, Otp: code,
	})
	require.NoError(t, err)
	assert.Equal(t, RoleAlumni, public.Role)
	assert.Equal(t, "alum@college.edu", public.Email)

	created, err := f.users.FindByEmail(context.Background(), "alum@college.edu")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, StatusActive, created.Status)
	assert.True(t, CheckPasswordHash("pass-123", created.PasswordHash))
}

func TestVerifyRegisterWrongCode(t *testing.T) {
	f := newServiceFixture(openPolicy())

	_, err := f.service.Register(context.Background(), RegisterRequest{
		Name: "New Student", Email: "s@college.edu", Password: "pass-123",
	})
	require.NoError(t, err)

	_, err = f.service.VerifyRegister(context.Background(), VerifyRegisterRequest{
		Name: "New Student", Email: "s@college.edu", Password: "pass-123", Role: RoleStudent, Otp: "000000",
	})
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Invalid or expired OTP", ae.Message)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newServiceFixture(openPolicy())
	f.users.add(t, "known@college.edu", "right-pass", RoleStudent, StatusActive)
	f.users.add(t, "locked@college.edu", "right-pass", RoleStudent, StatusDisabled)

	_, unknownErr := f.service.Login(context.Background(), LoginRequest{Email: "ghost@college.edu", Password: "whatever"})
	_, wrongPassErr := f.service.Login(context.Background(), LoginRequest{Email: "known@college.edu", Password: "wrong-pass"})
	_, disabledErr := f.service.Login(context.Background(), LoginRequest{Email: "locked@college.edu", Password: "right-pass"})

	require.Error(t, unknownErr)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
	assert.Equal(t, unknownErr.Error(), disabledErr.Error())

	var ae *apperr.Error
	require.ErrorAs(t, unknownErr, &ae)
	assert.Equal(t, apperr.KindAuthentication, ae.Kind)
}

func TestLoginThenVerifyMintsSession(t *testing.T) {
	f := newServiceFixture(openPolicy())
	user := f.users.add(t, "known@college.edu", "right-pass", RoleTeacher, StatusActive)

	msg, err := f.service.Login(context.Background(), LoginRequest{Email: "known@college.edu", Password: "right-pass"})
	require.NoError(t, err)
	assert.Equal(t, MsgLoginOtpSent, msg)
	code := f.sentCode(t)

	resp, err := f.service.VerifyLogin(context.Background(), VerifyLoginRequest{Email: "known@college.edu", Otp: code})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID.Hex(), resp.User.ID)

	claims, err := f.service.tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.Subject)
	assert.Equal(t, RoleTeacher, claims.Role)
}

func TestPasswordResetFlow(t *testing.T) {
	f := newServiceFixture(openPolicy())
	f.users.add(t, "known@college.edu", "old-pass", RoleStudent, StatusActive)

	msg, err := f.service.RequestPasswordReset(context.Background(), ResetRequest{Email: "known@college.edu"})
	require.NoError(t, err)
	assert.Equal(t, MsgResetOtpSent, msg)
	code := f.sentCode(t)

	msg, err = f.service.VerifyPasswordReset(context.Background(), VerifyResetRequest{
		Email: "known@college.edu", Otp: code, NewPassword: "new-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, MsgPasswordUpdated, msg)

	user, err := f.users.FindByEmail(context.Background(), "known@college.edu")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("new-pass", user.PasswordHash))
	assert.False(t, CheckPasswordHash("old-pass", user.PasswordHash))
}

func TestPasswordResetUnknownEmailStaysQuiet(t *testing.T) {
	f := newServiceFixture(openPolicy())

	msg, err := f.service.RequestPasswordReset(context.Background(), ResetRequest{Email: "ghost@college.edu"})
	require.NoError(t, err)
	assert.Equal(t, MsgResetOtpSent, msg)

	record, err := f.otpStore.Find(context.Background(), "ghost@college.edu", PurposeReset)
	require.NoError(t, err)
	assert.Nil(t, record, "no issuance for unknown accounts")
}

func TestResendOtpCooldown(t *testing.T) {
	f := newServiceFixture(openPolicy())
	f.users.add(t, "known@college.edu", "right-pass", RoleStudent, StatusActive)

	_, err := f.service.Login(context.Background(), LoginRequest{Email: "known@college.edu", Password: "right-pass"})
	require.NoError(t, err)

	_, err = f.service.ResendOtp(context.Background(), ResendOtpRequest{Email: "known@college.edu", Purpose: PurposeLogin})
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindRateLimit, ae.Kind)
	assert.Greater(t, ae.RetryAfterSeconds, 0)
	assert.LessOrEqual(t, ae.RetryAfterSeconds, int(ResendCooldown.Seconds()))
}

func TestResendOtpAfterCooldown(t *testing.T) {
	f := newServiceFixture(openPolicy())
	f.users.add(t, "known@college.edu", "right-pass", RoleStudent, StatusActive)

	_, err := f.service.Login(context.Background(), LoginRequest{Email: "known@college.edu", Password: "right-pass"})
	require.NoError(t, err)
	f.sentCode(t)

	f.service.otp.now = func() time.Time { return time.Now().Add(ResendCooldown + time.Second) }
	msg, err := f.service.ResendOtp(context.Background(), ResendOtpRequest{Email: "known@college.edu", Purpose: PurposeLogin})
	require.NoError(t, err)
	assert.Equal(t, MsgOtpResent, msg)
}
