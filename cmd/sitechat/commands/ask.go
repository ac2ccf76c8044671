// ABOUTME: Ask command answers a single question from the terminal
// ABOUTME: Runs the full RAG pipeline and renders markdown answers with glamour
package commands

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/efan/sitechat/internal/chat"
	"github.com/efan/sitechat/internal/config"
	"github.com/efan/sitechat/internal/content"
)

var (
	askTopK  int
	askPlain bool
	askSite  string
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the site assistant a question",
		Long: `Ask the site assistant a question.

The question is embedded and ranked against the site's embedding
index; the best matching documents ground the generated answer,
which ends with a "Sources used" footer when documents were used.

With no index artifact the assistant answers from the model alone.

Examples:
  sitechat ask "What did you build with PyTorch?"
  sitechat ask --top-k 5 "Which posts cover pandas?"
  sitechat ask --plain "Tell me about the portfolio"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().IntVar(&askTopK, "top-k", 0, "Documents to retrieve (default from SITECHAT_TOP_K)")
	cmd.Flags().BoolVar(&askPlain, "plain", false, "Print the raw answer without markdown rendering")
	cmd.Flags().StringVar(&askSite, "site", "", "Site directory (overrides SITECHAT_SITE_DIR)")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if askSite != "" {
		cfg.SiteDir = askSite
	}
	if askTopK != 0 {
		if err := validatePositiveInt(askTopK, "top-k"); err != nil {
			return err
		}
		cfg.TopK = askTopK
	}

	logger := buildLogger()

	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	retrieval := loadRetrieval(cfg, logger)
	resolver := content.NewResolver(cfg.SiteDir)
	pipeline := chat.NewPipeline(provider, retrieval, resolver, cfg.TopK, logger)
	session := chat.NewSession(pipeline)

	turn, err := session.SendQuestion(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return printTurn(cmd, turn.Text, turn.Markdown && !askPlain)
}

// printTurn writes the answer, rendering markdown for the terminal unless
// plain output was requested or the text has no markdown in it
func printTurn(cmd *cobra.Command, text string, markdown bool) error {
	if !markdown {
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}

	rendered, err := renderer.Render(text)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}
