package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessPolicyOpenByDefault(t *testing.T) {
	policy := NewAccessPolicyFrom(nil, "")
	assert.False(t, policy.Restricted())
	assert.True(t, policy.IsAllowed("anyone@anywhere.com"))
}

func TestAccessPolicyEmailList(t *testing.T) {
	policy := NewAccessPolicyFrom([]string{"Dean@college.edu", "rector@college.edu"}, "")
	assert.True(t, policy.Restricted())
	assert.True(t, policy.IsAllowed("dean@college.edu"), "list matching is case-insensitive")
	assert.True(t, policy.IsAllowed("rector@college.edu"))
	assert.False(t, policy.IsAllowed("stranger@college.edu"))
}

func TestAccessPolicyDomain(t *testing.T) {
	policy := NewAccessPolicyFrom(nil, "college.edu")
	assert.True(t, policy.Restricted())
	assert.True(t, policy.IsAllowed("anyone@college.edu"))
	assert.False(t, policy.IsAllowed("anyone@other.edu"))
	assert.False(t, policy.IsAllowed("anyone@notcollege.edu.evil.com"))
}

func TestAccessPolicyListTakesPrecedence(t *testing.T) {
	policy := NewAccessPolicyFrom([]string{"guest@partner.org"}, "college.edu")
	assert.True(t, policy.IsAllowed("guest@partner.org"), "listed email wins even off-domain")
	assert.True(t, policy.IsAllowed("staff@college.edu"))
	assert.False(t, policy.IsAllowed("other@partner.org"))
}
