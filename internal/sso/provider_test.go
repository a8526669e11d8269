package sso

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySkipsUnconfiguredProviders(t *testing.T) {
	// Constructors return nil when credentials are missing.
	assert.Nil(t, NewGitHub("", "", "https://x/callback"))
	assert.Nil(t, NewTwitter("id", "", "https://x/callback"))
	assert.Nil(t, NewMeta("", "secret", "https://x/callback"))

	gh := NewGitHub("id", "secret", "https://x/callback")
	require.NotNil(t, gh)

	reg := NewRegistry(gh)
	got, err := reg.Get("github")
	require.NoError(t, err)
	assert.Equal(t, "github", got.Name())

	_, err = reg.Get("google")
	assert.Error(t, err)
}

func TestAuthCodeURLCarriesState(t *testing.T) {
	gh := NewGitHub("client-id", "secret", "https://x/callback")
	url := gh.AuthCodeURL("state-123")
	assert.Contains(t, url, "state=state-123")
	assert.Contains(t, url, "client_id=client-id")
}

func TestTwitterChallengeDerivesFromState(t *testing.T) {
	tw := NewTwitter("client-id", "secret", "https://x/callback")
	require.NotNil(t, tw)

	url := tw.AuthCodeURL("state-abc")
	assert.Contains(t, url, "code_challenge=state-abc")
	assert.Contains(t, url, "code_challenge_method=plain")
	assert.Contains(t, url, "state=state-abc")

	// A different flow gets a different challenge.
	assert.Contains(t, tw.AuthCodeURL("state-def"), "code_challenge=state-def")
}
