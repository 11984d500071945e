package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	mgr := NewManager("test-secret", time.Hour)

	tok, err := mgr.Issue(42)
	require.NoError(t, err)

	claims, err := mgr.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := NewManager("secret-a", time.Hour).Issue(1)
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	mgr := NewManager("test-secret", -time.Minute)

	tok, err := mgr.Issue(1)
	require.NoError(t, err)

	_, err = mgr.Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewManager("test-secret", time.Hour).Parse("not.a.token")
	assert.Error(t, err)
}
