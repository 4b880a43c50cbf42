package credential

import (
	"context"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenCredential returns a canned token and records the requested scopes.
type fakeTokenCredential struct {
	scopes []string
}

func (f *fakeTokenCredential) GetToken(_ context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	f.scopes = opts.Scopes
	return azcore.AccessToken{Token: "fake-token", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func TestResolvePrefersAPIKey(t *testing.T) {
	cred, err := Resolve("sk-test")
	require.NoError(t, err)
	assert.True(t, cred.UsesKey())
	assert.Equal(t, "sk-test", cred.APIKey)
	assert.Nil(t, cred.TokenCredential)
}

func TestTokenUsesFixedScope(t *testing.T) {
	fake := &fakeTokenCredential{}
	cred := Credential{TokenCredential: fake}

	tok, err := cred.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fake-token", tok)
	assert.Equal(t, []string{Scope}, fake.scopes)
}

func TestTokenRejectedForKeyCredential(t *testing.T) {
	cred := Credential{APIKey: "sk-test"}
	_, err := cred.Token(context.Background())
	assert.Error(t, err)
}
