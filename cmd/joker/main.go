// Command joker is the single-shot example driver: it resolves the Azure
// OpenAI configuration from the environment, binds an agent to the chat
// deployment, runs one prompt, and prints the response text.
//
// Required environment:
//
//	AZURE_OPENAI_ENDPOINT              https://<resource>.openai.azure.com
//	AZURE_OPENAI_CHAT_DEPLOYMENT_NAME  deployment to route requests to
//	AZURE_OPENAI_API_VERSION           e.g. 2024-12-01-preview
//	AZURE_OPENAI_API_KEY               optional; ambient Azure credential
//	                                   chain is used when empty
//
// Any failure terminates the process with a non-zero status.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"agentkit/pkg/agent"
	"agentkit/pkg/config"
	"agentkit/pkg/credential"
	"agentkit/pkg/llm/azureopenai"
	"agentkit/pkg/logx"
)

func main() {
	if err := run(context.Background()); err != nil {
		logx.NewLogger("joker").Error("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.FromEnv()
	if err := validateEnv(cfg); err != nil {
		return err
	}

	cred, err := credential.Resolve(cfg.Azure.APIKey)
	if err != nil {
		return err
	}

	client := azureopenai.New(azureopenai.Config{
		Endpoint:   cfg.Azure.Endpoint,
		Deployment: cfg.Azure.ChatDeployment,
		APIVersion: cfg.Azure.APIVersion,
	}, cred)

	joker := agent.New(client,
		agent.WithName("Joker"),
		agent.WithInstructions("You are good at telling jokes."),
	)

	result, err := joker.Run(ctx, "Tell me a joke about a pirate.")
	if err != nil {
		return err
	}

	fmt.Println(result.Text)
	return nil
}

// validateEnv rejects a configuration with any required variable unset, so
// the process fails before a client is constructed or a request is sent.
func validateEnv(cfg config.Config) error {
	var missing []string
	if cfg.Azure.Endpoint == "" {
		missing = append(missing, config.EnvAzureEndpoint)
	}
	if cfg.Azure.ChatDeployment == "" {
		missing = append(missing, config.EnvAzureChatDeployment)
	}
	if cfg.Azure.APIVersion == "" {
		missing = append(missing, config.EnvAzureAPIVersion)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment: %s", strings.Join(missing, ", "))
	}
	return nil
}
