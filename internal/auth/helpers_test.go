package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "dean@college.edu", NormalizeEmail("  Dean@College.EDU "))
}

func TestTokenMintParse(t *testing.T) {
	manager := NewTokenManager(&TokenConfig{Secret: []byte("test-secret"), TTL: DefaultSessionTTL})

	token, err := manager.Mint("65f0c0ffee0000000000abcd", RoleTeacher, time.Now())
	require.NoError(t, err)

	claims, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "65f0c0ffee0000000000abcd", claims.Subject)
	assert.Equal(t, RoleTeacher, claims.Role)
}

func TestTokenExpired(t *testing.T) {
	manager := NewTokenManager(&TokenConfig{Secret: []byte("test-secret"), TTL: time.Minute})

	token, err := manager.Mint("65f0c0ffee0000000000abcd", RoleStudent, time.Now().Add(-2*time.Minute))
	require.NoError(t, err)

	_, err = manager.Parse(token)
	assert.Error(t, err)
}

func TestTokenWrongSecret(t *testing.T) {
	minter := NewTokenManager(&TokenConfig{Secret: []byte("one-secret"), TTL: DefaultSessionTTL})
	parser := NewTokenManager(&TokenConfig{Secret: []byte("another-secret"), TTL: DefaultSessionTTL})

	token, err := minter.Mint("65f0c0ffee0000000000abcd", RoleAdmin, time.Now())
	require.NoError(t, err)

	_, err = parser.Parse(token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	manager := NewTokenManager(&TokenConfig{Secret: []byte("test-secret"), TTL: DefaultSessionTTL})
	_, err := manager.Parse("not.a.token")
	assert.Error(t, err)
}
