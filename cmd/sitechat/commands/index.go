// ABOUTME: Index command inspects the precomputed embedding index artifact
// ABOUTME: Shows document counts, dimension, and the indexed titles
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/efan/sitechat/internal/config"
	"github.com/efan/sitechat/internal/index"
	"github.com/efan/sitechat/internal/models"
)

var (
	indexSite   string
	indexFormat string
)

// NewIndexCmd creates the index command
func NewIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Inspect the embedding index",
		Long: `Inspect the embedding index artifact.

Loads and validates <site-dir>/embeddings.json the same way the
server does, then prints the indexed documents. Useful to confirm a
freshly deployed artifact before pointing the assistant at it.

Examples:
  sitechat index
  sitechat index --site ./public
  sitechat index --format json`,
		RunE: runIndex,
	}

	cmd.Flags().StringVar(&indexSite, "site", "", "Site directory (overrides SITECHAT_SITE_DIR)")
	cmd.Flags().StringVar(&indexFormat, "format", "table", "Output format: table or json")

	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if indexSite != "" {
		cfg.SiteDir = indexSite
	}

	idx, err := index.Load(cfg.SiteDir)
	if err != nil {
		return err
	}

	if indexFormat == "json" {
		return printIndexJSON(cmd, idx)
	}
	return printIndexTable(cmd, idx)
}

func printIndexTable(cmd *cobra.Command, idx *models.EmbeddingIndex) error {
	out := cmd.OutOrStdout()

	byType := map[models.DocumentType]int{}
	for _, doc := range idx.Embeddings {
		byType[doc.Type]++
	}

	fmt.Fprintf(out, "Documents: %d (blog: %d, private: %d)\n",
		len(idx.Embeddings), byType[models.DocumentTypeBlog], byType[models.DocumentTypePrivate])
	fmt.Fprintf(out, "Dimension: %d\n\n", idx.Dimension())

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tCATEGORY\tTITLE")
	for _, doc := range idx.Embeddings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", doc.ID, doc.Type, doc.Category, truncate(doc.Title, 60))
	}
	return w.Flush()
}

func printIndexJSON(cmd *cobra.Command, idx *models.EmbeddingIndex) error {
	type docSummary struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Type     string `json:"type"`
		Category string `json:"category"`
	}

	docs := make([]docSummary, 0, len(idx.Embeddings))
	for _, doc := range idx.Embeddings {
		docs = append(docs, docSummary{
			ID:       doc.ID,
			Title:    doc.Title,
			Type:     string(doc.Type),
			Category: doc.Category,
		})
	}

	data, err := json.MarshalIndent(map[string]interface{}{
		"totalDocuments": len(docs),
		"dimension":      idx.Dimension(),
		"documents":      docs,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
