package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/statlinehq/statline/internal/pipeline"
)

var (
	askTimeout  time.Duration
	noCache     bool
	asJSON      bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a single question and exit",
	Long: `Ask answers one question and prints the result:

Example:
  statline ask "How many points did LeBron James score?"
  statline ask "Did the Lakers win their last game?"
  statline ask "What games are on tomorrow?" --json
  statline ask "How is Jokic doing?" --llm --llm-provider openai`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().DurationVar(&askTimeout, "timeout", 30*time.Second, "overall answer timeout")
	askCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	askCmd.Flags().BoolVar(&asJSON, "json", false, "print the full response as JSON")

	// LLM flags
	askCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM phrasing of answers")
	askCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	askCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	engine, err := buildEngine()
	if err != nil {
		return err
	}

	resp, err := engine.Answer(ctx, question)
	if err != nil {
		return fmt.Errorf("answer failed: %w", err)
	}

	if asJSON {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal response: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(resp.Text)

	if verbose {
		fmt.Fprintf(os.Stderr, "\nintent:    %s\n", resp.Provenance.Intent)
		fmt.Fprintf(os.Stderr, "source:    %s\n", resp.Provenance.Source)
		fmt.Fprintf(os.Stderr, "cache hit: %v\n", resp.Provenance.CacheHit)
		if resp.Verification != nil {
			fmt.Fprintf(os.Stderr, "verified:  %v (confidence %.2f)\n",
				resp.Verification.Verified, resp.Verification.Confidence)
		}
	}

	return nil
}

// buildEngine assembles the pipeline from config, flags and environment.
func buildEngine() (*pipeline.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if noCache {
		cfg.Cache.Enabled = false
	}

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		if llmModel != "" {
			cfg.LLM.Model = llmModel
		}
		cfg.LLM.StrictStats = true // Always enforce

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return pipeline.Build(cfg, newLogger())
}
