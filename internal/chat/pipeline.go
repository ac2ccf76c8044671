// ABOUTME: Stateless RAG pipeline for one question: embed, rank, resolve, compose, generate
// ABOUTME: Shared by the chat session, the HTTP chat endpoint, and the MCP tools
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/efan/sitechat/internal/content"
	"github.com/efan/sitechat/internal/index"
	"github.com/efan/sitechat/internal/llm"
	"github.com/efan/sitechat/internal/log"
	"github.com/efan/sitechat/internal/models"
	"github.com/efan/sitechat/internal/prompt"
	"github.com/efan/sitechat/internal/rank"
)

// Stage identifies the pipeline step currently in flight, reported through
// the optional OnStage hook so a session can mirror it as UI state
type Stage int

const (
	// StageEmbedding is the query embedding request
	StageEmbedding Stage = iota
	// StageRetrieval is ranking plus document resolution
	StageRetrieval
	// StageGeneration is the completion request
	StageGeneration
)

// Source attributes an answer to a document that supplied context
type Source struct {
	Title string              `json:"title"`
	Type  models.DocumentType `json:"type"`
}

// Answer is the outcome of one successful pipeline run
type Answer struct {
	Text     string   `json:"answer"`
	Sources  []Source `json:"sources,omitempty"`
	Grounded bool     `json:"grounded"`
}

// Pipeline orchestrates one retrieval-augmented turn. It holds only
// read-only collaborators, so a single Pipeline is safe for concurrent use.
type Pipeline struct {
	provider  llm.Provider
	retrieval *index.RetrievalContext
	resolver  *content.Resolver
	topK      int
	logger    log.Logger

	// OnStage, when set, is invoked as each pipeline stage begins
	OnStage func(Stage)
}

// NewPipeline creates a pipeline. topK <= 0 selects the default.
func NewPipeline(provider llm.Provider, retrieval *index.RetrievalContext, resolver *content.Resolver, topK int, logger log.Logger) *Pipeline {
	if topK <= 0 {
		topK = rank.DefaultTopK
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Pipeline{
		provider:  provider,
		retrieval: retrieval,
		resolver:  resolver,
		topK:      topK,
		logger:    logger,
	}
}

// Retrieval exposes the pipeline's retrieval context
func (p *Pipeline) Retrieval() *index.RetrievalContext {
	return p.retrieval
}

// Ask runs the full pipeline for one question. With no usable index the
// question goes straight to ungrounded generation; a failed query embedding
// degrades the same way. A ranking dimension mismatch fails loudly, and a
// generation failure fails the turn.
func (p *Pipeline) Ask(ctx context.Context, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	if p.provider == nil {
		return nil, fmt.Errorf("assistant not available: no provider configured")
	}

	var docs []models.ResolvedDocument
	if p.retrieval.Loaded() {
		results, err := p.retrieve(ctx, question)
		if err != nil {
			return nil, err
		}
		p.stage(StageRetrieval)
		docs = p.resolver.ResolveAll(ctx, results)
		p.logger.Info("retrieved context", "ranked", len(results), "resolved", len(docs))
	}

	p.stage(StageGeneration)
	text, err := p.provider.Generate(ctx, prompt.Compose(question, docs))
	if err != nil {
		return nil, err
	}

	sources := make([]Source, 0, len(docs))
	for _, doc := range docs {
		sources = append(sources, Source{Title: doc.Title, Type: doc.Type})
	}

	return &Answer{Text: text, Sources: sources, Grounded: len(docs) > 0}, nil
}

// Search embeds the query and ranks it against the index without resolving
// content. Used by the MCP search tool.
func (p *Pipeline) Search(ctx context.Context, query string, topK int) ([]models.RankedResult, error) {
	if p.provider == nil {
		return nil, fmt.Errorf("assistant not available: no provider configured")
	}
	if !p.retrieval.Loaded() {
		return nil, fmt.Errorf("embedding index not loaded")
	}
	if topK <= 0 {
		topK = p.topK
	}

	vector, err := p.provider.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return rank.Rank(vector, p.retrieval.Index(), topK)
}

// retrieve embeds the question and ranks the index. An embedding failure is
// non-fatal: it logs and returns no results so the turn proceeds ungrounded.
func (p *Pipeline) retrieve(ctx context.Context, question string) ([]models.RankedResult, error) {
	p.stage(StageEmbedding)
	vector, err := p.provider.Embed(ctx, question)
	if err != nil {
		p.logger.Warn("query embedding failed, answering without retrieval", "error", err)
		return nil, nil
	}

	results, err := rank.Rank(vector, p.retrieval.Index(), p.topK)
	if err != nil {
		return nil, fmt.Errorf("ranking query against index: %w", err)
	}
	return results, nil
}

func (p *Pipeline) stage(s Stage) {
	if p.OnStage != nil {
		p.OnStage(s)
	}
}

// FormatSources renders the human-readable source footer appended to
// grounded answers
func FormatSources(sources []Source) string {
	if len(sources) == 0 {
		return ""
	}
	labels := make([]string, 0, len(sources))
	for _, source := range sources {
		icon := "\U0001F4C4" // page facing up
		if source.Type == models.DocumentTypePrivate {
			icon = "\U0001F512" // lock
		}
		labels = append(labels, fmt.Sprintf("%s %s", icon, source.Title))
	}
	return "**Sources used:** " + strings.Join(labels, ", ")
}
