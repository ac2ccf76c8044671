// ABOUTME: Root CLI command wiring global flags and subcommands
// ABOUTME: Entry point for serve, ask, index, mcp, and version
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verboseFlag bool
	quietFlag   bool
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitechat",
		Short: "Portfolio site server with a RAG chat assistant",
		Long: `sitechat serves a personal portfolio/blog site together with its
embedded chat assistant.

The assistant answers visitor questions with retrieval-augmented
generation: questions are embedded, ranked against the site's
precomputed embedding index by cosine similarity, and the best
matching blog posts and documents ground the generated answer.

Configuration comes from environment variables (a .env file is
loaded when present). GEMINI_API_KEY enables direct provider calls;
SITECHAT_PROXY_URL routes the CLI through a hosted proxy instead.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Only log errors")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewIndexCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}
