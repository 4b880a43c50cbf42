// Command agentctl is the operator CLI for the agentkit toolkit.
//
// Subcommands:
//
//	ask     run one prompt and print the response
//	chat    interactive REPL (requires a terminal)
//	recall  print recent transcript records
//
// Provider selection and run options are per-subcommand flags; connection
// settings come from the environment (optionally overlaid on a YAML file
// via -config).
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"agentkit/pkg/agent"
	"agentkit/pkg/config"
	"agentkit/pkg/credential"
	"agentkit/pkg/llm"
	anthropicllm "agentkit/pkg/llm/anthropic"
	"agentkit/pkg/llm/azureopenai"
	ollamallm "agentkit/pkg/llm/ollama"
	"agentkit/pkg/logx"
	"agentkit/pkg/metrics"
	"agentkit/pkg/tokens"
	"agentkit/pkg/transcript"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	logger := logx.NewLogger("agentctl")

	var err error
	switch os.Args[1] {
	case "ask":
		err = runAsk(os.Args[2:])
	case "chat":
		err = runChat(os.Args[2:])
	case "recall":
		err = runRecall(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: agentctl <command> [flags]

Commands:
  ask     run one prompt and print the response
  chat    interactive REPL (requires a terminal)
  recall  print recent transcript records

Run 'agentctl <command> -h' for command flags.
`)
}

// newFlagSet creates a flag set that errors instead of exiting, so command
// errors flow through the single fatal path in main.
func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

// newClient builds the provider client selected by -provider.
func newClient(cfg config.Config, provider string) (llm.Client, error) {
	switch provider {
	case "azure":
		cred, err := credential.Resolve(cfg.Azure.APIKey)
		if err != nil {
			return nil, err
		}
		return azureopenai.New(azureopenai.Config{
			Endpoint:             cfg.Azure.Endpoint,
			Deployment:           cfg.Azure.ChatDeployment,
			EmbeddingsDeployment: cfg.Azure.EmbeddingsDeployment,
			APIVersion:           cfg.Azure.APIVersion,
		}, cred), nil
	case "anthropic":
		return anthropicllm.New(cfg.Anthropic.APIKey, cfg.Anthropic.Model), nil
	case "ollama":
		return ollamallm.New(cfg.Ollama.Host, cfg.Ollama.Model), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want azure, anthropic, or ollama)", provider)
	}
}

// buildAgent assembles an agent with the optional transcript and metrics
// hooks. The returned cleanup closes the transcript store.
func buildAgent(cfg config.Config, client llm.Client, name, instructions string) (*agent.Agent, func(), error) {
	opts := []agent.Option{
		agent.WithName(name),
		agent.WithInstructions(instructions),
	}
	cleanup := func() {}

	if cfg.TranscriptDB != "" {
		store, err := transcript.Open(cfg.TranscriptDB)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, agent.WithTranscript(store))
		cleanup = func() { _ = store.Close() }
	}

	if cfg.MetricsAddr != "" {
		recorder := metrics.NewPrometheusRecorder()
		opts = append(opts, agent.WithRecorder(recorder))
		go serveMetrics(cfg.MetricsAddr, recorder)
	}

	return agent.New(client, opts...), cleanup, nil
}

// serveMetrics exposes the recorder on /metrics for the process lifetime.
func serveMetrics(addr string, recorder *metrics.PrometheusRecorder) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logx.NewLogger("agentctl").Warn("metrics server stopped: %v", err)
	}
}

func runAsk(args []string) error {
	fs := newFlagSet("ask")
	provider := fs.String("provider", "azure", "provider: azure, anthropic, or ollama")
	name := fs.String("name", "assistant", "agent name")
	instructions := fs.String("instructions", "You are a helpful assistant.", "system instruction")
	configPath := fs.String("config", "agentkit.yaml", "optional YAML config file")
	countTokens := fs.Bool("count-tokens", false, "report prompt token count before running")
	tokenBudget := fs.Int("token-budget", 0, "refuse prompts exceeding this many tokens (0 = no limit)")
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *debug {
		logx.SetDebug(true)
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("ask requires a prompt argument")
	}
	prompt := strings.Join(fs.Args(), " ")

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	client, err := newClient(cfg, *provider)
	if err != nil {
		return err
	}

	if *countTokens || *tokenBudget > 0 {
		counter, err := tokens.NewCounter(client.ModelName())
		if err != nil {
			return err
		}
		if *countTokens {
			fmt.Fprintf(os.Stderr, "prompt tokens: %d\n", counter.Count(prompt))
		}
		if *tokenBudget > 0 && !counter.WithinLimit(prompt, *tokenBudget) {
			return fmt.Errorf("prompt is %d tokens, over the budget of %d", counter.Count(prompt), *tokenBudget)
		}
	}

	a, cleanup, err := buildAgent(cfg, client, *name, *instructions)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := a.Run(context.Background(), prompt)
	if err != nil {
		return err
	}
	fmt.Println(result.Text)
	return nil
}

func runChat(args []string) error {
	fs := newFlagSet("chat")
	provider := fs.String("provider", "azure", "provider: azure, anthropic, or ollama")
	name := fs.String("name", "assistant", "agent name")
	instructions := fs.String("instructions", "You are a helpful assistant.", "system instruction")
	configPath := fs.String("config", "agentkit.yaml", "optional YAML config file")
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *debug {
		logx.SetDebug(true)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("chat requires an interactive terminal; use 'ask' for piped input")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	client, err := newClient(cfg, *provider)
	if err != nil {
		return err
	}

	a, cleanup, err := buildAgent(cfg, client, *name, *instructions)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Printf("Chatting with %s (%s). Empty line or Ctrl-D to exit.\n", a.Name(), client.ModelName())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		prompt := strings.TrimSpace(scanner.Text())
		if prompt == "" {
			break
		}

		// Each turn is an independent single-shot run.
		result, err := a.Run(context.Background(), prompt)
		if err != nil {
			return err
		}
		fmt.Println(result.Text)
	}
	return scanner.Err()
}

func runRecall(args []string) error {
	fs := newFlagSet("recall")
	configPath := fs.String("config", "agentkit.yaml", "optional YAML config file")
	limit := fs.Int("n", 10, "number of records to print")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if cfg.TranscriptDB == "" {
		return fmt.Errorf("no transcript database configured (set %s)", config.EnvTranscriptDB)
	}

	store, err := transcript.Open(cfg.TranscriptDB)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.Recent(context.Background(), *limit)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		fmt.Printf("[%s] %s (%s) run %s\n  > %s\n  < %s\n",
			rec.CreatedAt.Format(time.RFC3339), rec.Agent, rec.Model, rec.RunID, rec.Prompt, rec.Response)
	}
	return nil
}
