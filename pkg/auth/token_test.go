package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m, err := NewTokenManager("test-secret")
	require.NoError(t, err)

	token, err := m.Issue(Session{UserID: "user-1", Email: "u@example.com", Anonymous: false})
	require.NoError(t, err)

	session, err := m.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", session.UserID)
	require.Equal(t, "u@example.com", session.Email)
	require.False(t, session.Anonymous)
}

func TestTokenManager_AnonymousFlagRoundTrips(t *testing.T) {
	m, err := NewTokenManager("test-secret")
	require.NoError(t, err)

	token, err := m.Issue(Session{UserID: "anon-1", Anonymous: true})
	require.NoError(t, err)

	session, err := m.Verify(token)
	require.NoError(t, err)
	require.True(t, session.Anonymous)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	issuer, err := NewTokenManager("secret-a")
	require.NoError(t, err)
	verifier, err := NewTokenManager("secret-b")
	require.NoError(t, err)

	token, err := issuer.Issue(Session{UserID: "user-1"})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	m, err := NewTokenManager("test-secret")
	require.NoError(t, err)

	_, err = m.Verify("not.a.token")
	require.Error(t, err)
}

func TestNewTokenManager_EmptySecret(t *testing.T) {
	_, err := NewTokenManager("")
	require.Error(t, err)
}
