package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var chatTimeout time.Duration

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question and answer session",
	Long: `Chat starts an interactive session that answers questions until you
type "exit", "quit" or "bye".

Example:
  statline chat
  statline chat --llm --llm-provider ollama`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().DurationVar(&chatTimeout, "timeout", 30*time.Second, "per-question timeout")
	chatCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")

	// LLM flags
	chatCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM phrasing of answers")
	chatCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	chatCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runChat(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine()
	if err != nil {
		return err
	}

	fmt.Println("Statline ready. Ask about games, players or schedules. Type 'exit' to leave.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if isExit(question) {
			fmt.Println("Bot: Goodbye!")
			break
		}

		ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
		resp, err := engine.Answer(ctx, question)
		cancel()
		if err != nil {
			fmt.Printf("Bot: Sorry, something went wrong: %v\n\n", err)
			continue
		}

		fmt.Printf("Bot: %s\n", resp.Text)
		if verbose {
			fmt.Fprintf(os.Stderr, "     [intent=%s source=%s cache=%v]\n",
				resp.Provenance.Intent, resp.Provenance.Source, resp.Provenance.CacheHit)
		}
		fmt.Println()
	}

	return scanner.Err()
}

func isExit(question string) bool {
	switch strings.ToLower(question) {
	case "exit", "quit", "bye", "goodbye", "q":
		return true
	}
	return false
}
