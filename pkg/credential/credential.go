// Package credential resolves the authentication material used to reach
// Azure OpenAI. Two strategies exist: a literal API key, and the ambient
// Azure credential chain (environment, workload identity, managed identity,
// CLI) requesting bearer tokens for the Azure AI resource scope.
package credential

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// Scope is the fixed resource scope tokens are requested for.
const Scope = "https://ai.azure.com/.default"

// Credential is the authentication material for an Azure OpenAI client:
// exactly one of APIKey or TokenCredential is set.
type Credential struct {
	APIKey          string
	TokenCredential azcore.TokenCredential
}

// UsesKey reports whether the credential carries a literal API key.
func (c Credential) UsesKey() bool {
	return c.APIKey != ""
}

// Resolve picks the authentication strategy for the given API key value.
// A non-empty key wins; otherwise the ambient Azure credential chain is
// constructed. Chain construction failures propagate to the caller — the
// driver treats them as fatal per its fail-fast contract.
func Resolve(apiKey string) (Credential, error) {
	if apiKey != "" {
		return Credential{APIKey: apiKey}, nil
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return Credential{}, fmt.Errorf("failed to build ambient Azure credential: %w", err)
	}
	return Credential{TokenCredential: cred}, nil
}

// Token fetches a bearer token for the fixed scope. Only valid for
// credentials resolved without an API key.
func (c Credential) Token(ctx context.Context) (string, error) {
	if c.TokenCredential == nil {
		return "", fmt.Errorf("credential has no token source (API key auth)")
	}
	tok, err := c.TokenCredential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{Scope},
	})
	if err != nil {
		return "", fmt.Errorf("failed to acquire token for %s: %w", Scope, err)
	}
	return tok.Token, nil
}
