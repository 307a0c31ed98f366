package whitelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestIsWhitelistedMatchesDomain(t *testing.T) {
	c := NewChecker([]string{"Trusted.com", " other.org "}, zap.NewNop())

	assert.True(t, c.IsWhitelisted("boss@trusted.com"))
	assert.True(t, c.IsWhitelisted("a@OTHER.ORG"))
	assert.False(t, c.IsWhitelisted("stranger@elsewhere.net"))
}

func TestIsWhitelistedMalformedAddress(t *testing.T) {
	c := NewChecker([]string{"trusted.com"}, zap.NewNop())

	assert.False(t, c.IsWhitelisted("not-an-address"))
	assert.False(t, c.IsWhitelisted("two@ats@trusted.com"))
	assert.False(t, c.IsWhitelisted(""))
}

func TestIsWhitelistedEmptyList(t *testing.T) {
	c := NewChecker(nil, zap.NewNop())

	assert.False(t, c.IsWhitelisted("anyone@anywhere.com"))
}

func TestNewCheckerNilLogger(t *testing.T) {
	c := NewChecker([]string{"trusted.com"}, nil)

	assert.True(t, c.IsWhitelisted("a@trusted.com"))
}
