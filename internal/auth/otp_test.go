package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeOtpStore struct {
	mu      sync.Mutex
	records map[string]*OtpToken
}

func newFakeOtpStore() *fakeOtpStore {
	return &fakeOtpStore{records: map[string]*OtpToken{}}
}

func otpKey(email, purpose string) string { return email + "|" + purpose }

func (s *fakeOtpStore) Replace(_ context.Context, token *OtpToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[otpKey(token.Email, token.Purpose)] = token
	return nil
}

func (s *fakeOtpStore) Find(_ context.Context, email, purpose string) (*OtpToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[otpKey(email, purpose)]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (s *fakeOtpStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, record := range s.records {
		if record.ID == id {
			delete(s.records, key)
		}
	}
	return nil
}

func (s *fakeOtpStore) IncrementAttempts(_ context.Context, id primitive.ObjectID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.records {
		if record.ID == id {
			record.Attempts++
			return record.Attempts, nil
		}
	}
	return 1, nil
}

func (s *fakeOtpStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

type fakeNotifier struct {
	sent chan string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan string, 8)}
}

func (n *fakeNotifier) SendOtp(_ context.Context, to, purpose, code string, _ time.Duration) error {
	n.sent <- to + "|" + purpose + "|" + code
	return nil
}

func newTestOtpService(store OtpStore, notifier OtpNotifier) *OtpService {
	return NewOtpService(store, notifier, zap.NewNop())
}

func TestIssueReplacesExistingRecord(t *testing.T) {
	store := newFakeOtpStore()
	svc := newTestOtpService(store, newFakeNotifier())

	first, err := svc.Issue(context.Background(), "a@test.edu", PurposeLogin, DefaultOtpTTL, nil)
	require.NoError(t, err)
	second, err := svc.Issue(context.Background(), "a@test.edu", PurposeLogin, DefaultOtpTTL, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, store.count())

	ok, err := svc.Verify(context.Background(), "a@test.edu", PurposeLogin, first.Code)
	require.NoError(t, err)
	if first.Code != second.Code {
		assert.False(t, ok, "superseded code must not verify")
	}
	ok, err = svc.Verify(context.Background(), "a@test.edu", PurposeLogin, second.Code)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIssueKeepsPurposesSeparate(t *testing.T) {
	store := newFakeOtpStore()
	svc := newTestOtpService(store, newFakeNotifier())

	_, err := svc.Issue(context.Background(), "a@test.edu", PurposeLogin, DefaultOtpTTL, nil)
	require.NoError(t, err)
	_, err = svc.Issue(context.Background(), "a@test.edu", PurposeReset, DefaultOtpTTL, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, store.count())
}

func TestVerifyConsumesRecordOnSuccess(t *testing.T) {
	store := newFakeOtpStore()
	svc := newTestOtpService(store, newFakeNotifier())

	issued, err := svc.Issue(context.Background(), "a@test.edu", PurposeLogin, DefaultOtpTTL, nil)
	require.NoError(t, err)

	ok, err := svc.Verify(context.Background(), "a@test.edu", PurposeLogin, issued.Code)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Verify(context.Background(), "a@test.edu", PurposeLogin, issued.Code)
	require.NoError(t, err)
	assert.False(t, ok, "a code verifies exactly once")
}

func TestVerifyWrongCodeKeepsRecord(t *testing.T) {
	store := newFakeOtpStore()
	svc := newTestOtpService(store, newFakeNotifier())

	issued, err := svc.Issue(context.Background(), "a@test.edu", PurposeLogin, DefaultOtpTTL, nil)
	require.NoError(t, err)

	ok, err := svc.Verify(context.Background(), "a@test.edu", PurposeLogin, "000000")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, store.count(), "wrong code must not consume the record")

	ok, err = svc.Verify(context.Background(), "a@test.edu", PurposeLogin, issued.Code)
	require.NoError(t, err)
	assert.True(t, ok, "correct code still works after a failed attempt")
}

func TestVerifyAttemptLimitConsumesRecord(t *testing.T) {
	store := newFakeOtpStore()
	svc := newTestOtpService(store, newFakeNotifier())

	issued, err := svc.Issue(context.Background(), "a@test.edu", PurposeLogin, DefaultOtpTTL, nil)
	require.NoError(t, err)

	for i := 0; i < maxOtpAttempts; i++ {
		ok, err := svc.Verify(context.Background(), "a@test.edu", PurposeLogin, "000000")
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Equal(t, 0, store.count(), "record is consumed at the attempt limit")

	ok, err := svc.Verify(context.Background(), "a@test.edu", PurposeLogin, issued.Code)
	require.NoError(t, err)
	assert.False(t, ok, "even the correct code fails once the record is consumed")
}

func TestVerifyExpiredCode(t *testing.T) {
	store := newFakeOtpStore()
	svc := newTestOtpService(store, newFakeNotifier())

	issued, err := svc.Issue(context.Background(), "a@test.edu", PurposeReset, DefaultOtpTTL, nil)
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.ExpiresAt }
	ok, err := svc.Verify(context.Background(), "a@test.edu", PurposeReset, issued.Code)
	require.NoError(t, err)
	assert.False(t, ok, "expiry boundary is exclusive")
}

func TestVerifyUnknownPair(t *testing.T) {
	svc := newTestOtpService(newFakeOtpStore(), newFakeNotifier())
	ok, err := svc.Verify(context.Background(), "nobody@test.edu", PurposeLogin, "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIssueDeliversCode(t *testing.T) {
	notifier := newFakeNotifier()
	svc := newTestOtpService(newFakeOtpStore(), notifier)

	issued, err := svc.Issue(context.Background(), "a@test.edu", PurposeRegister, DefaultOtpTTL, bson.M{"name": "A"})
	require.NoError(t, err)

	select {
	case sent := <-notifier.sent:
		assert.Equal(t, "a@test.edu|"+PurposeRegister+"|"+issued.Code, sent)
	case <-time.After(2 * time.Second):
		t.Fatal("delivery never happened")
	}
}

func TestCooldownRemaining(t *testing.T) {
	store := newFakeOtpStore()
	svc := newTestOtpService(store, newFakeNotifier())

	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }
	_, err := svc.Issue(context.Background(), "a@test.edu", PurposeLogin, DefaultOtpTTL, nil)
	require.NoError(t, err)

	remaining, err := svc.CooldownRemaining(context.Background(), "a@test.edu", PurposeLogin)
	require.NoError(t, err)
	assert.Equal(t, ResendCooldown, remaining)

	svc.now = func() time.Time { return issuedAt.Add(30 * time.Second) }
	remaining, err = svc.CooldownRemaining(context.Background(), "a@test.edu", PurposeLogin)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, remaining)

	svc.now = func() time.Time { return issuedAt.Add(ResendCooldown) }
	remaining, err = svc.CooldownRemaining(context.Background(), "a@test.edu", PurposeLogin)
	require.NoError(t, err)
	assert.Zero(t, remaining)

	remaining, err = svc.CooldownRemaining(context.Background(), "other@test.edu", PurposeLogin)
	require.NoError(t, err)
	assert.Zero(t, remaining, "no record means no cooldown")
}

func TestGenerateCodeRange(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.NotEqual(t, byte('0'), code[0], "codes never have a leading zero")
	}
}
