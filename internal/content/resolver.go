// ABOUTME: Resolves ranked results to full document text via the site catalogs
// ABOUTME: Blog ids map through blog-posts.json, private ids through private-documents.json
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/efan/sitechat/internal/models"
)

const (
	// BlogIDPrefix is stripped from an index id to recover the numeric post id
	BlogIDPrefix = "blog-"
	// BlogContentDir prefixes blog content files that are stored as bare names
	BlogContentDir = "blog-posts/"
	// PortfolioContentDir prefixes portfolio section files stored as bare names
	PortfolioContentDir = "portfolio/"

	blogCatalogPath      = "assets/blog-posts.json"
	privateCatalogPath   = "assets/private-documents.json"
	portfolioCatalogPath = "assets/portfolio.json"
)

// Resolver materializes document text from the site directory. The catalogs
// are static artifacts with the same lifecycle as the embedding index, so
// they are read lazily once and cached for the session.
type Resolver struct {
	siteDir string

	blogOnce    sync.Once
	blogPosts   []models.BlogPost
	blogErr     error
	privOnce    sync.Once
	privDocs    []models.PrivateDocument
	privErr     error
	projectOnce sync.Once
	projects    []models.PortfolioProject
	projectErr  error
}

// NewResolver creates a resolver rooted at the site directory
func NewResolver(siteDir string) *Resolver {
	return &Resolver{siteDir: siteDir}
}

// Resolve fetches the full text for a ranked result's id and type.
// Any lookup or read failure yields an error; callers exclude the document
// from context construction and carry on.
func (r *Resolver) Resolve(ctx context.Context, id string, docType models.DocumentType) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch docType {
	case models.DocumentTypeBlog:
		return r.resolveBlog(id)
	case models.DocumentTypePrivate:
		return r.resolvePrivate(id)
	default:
		return "", fmt.Errorf("unknown document type %q", docType)
	}
}

// ResolveAll resolves a batch of ranked results concurrently and joins the
// outcomes. The returned documents follow the ranked order regardless of
// completion order, and failed resolutions are dropped from the result
// without aborting the batch.
func (r *Resolver) ResolveAll(ctx context.Context, results []models.RankedResult) []models.ResolvedDocument {
	type outcome struct {
		content string
		err     error
	}

	outcomes := make([]outcome, len(results))
	var wg sync.WaitGroup
	for i, result := range results {
		wg.Add(1)
		go func(i int, result models.RankedResult) {
			defer wg.Done()
			content, err := r.Resolve(ctx, result.ID, result.Type)
			outcomes[i] = outcome{content: content, err: err}
		}(i, result)
	}
	wg.Wait()

	docs := make([]models.ResolvedDocument, 0, len(results))
	for i, result := range results {
		if outcomes[i].err != nil {
			continue
		}
		docs = append(docs, models.ResolvedDocument{
			ID:         result.ID,
			Title:      result.Title,
			Type:       result.Type,
			Similarity: result.Similarity,
			Content:    outcomes[i].content,
		})
	}
	return docs
}

func (r *Resolver) resolveBlog(id string) (string, error) {
	posts, err := r.loadBlogCatalog()
	if err != nil {
		return "", err
	}

	blogID, err := strconv.Atoi(strings.TrimPrefix(id, BlogIDPrefix))
	if err != nil {
		return "", fmt.Errorf("invalid blog id %q: %w", id, err)
	}

	for _, post := range posts {
		if post.ID == blogID {
			return r.readSiteFile(withPrefix(post.ContentFile, BlogContentDir))
		}
	}
	return "", fmt.Errorf("blog post %d not found in catalog", blogID)
}

func (r *Resolver) resolvePrivate(id string) (string, error) {
	docs, err := r.loadPrivateCatalog()
	if err != nil {
		return "", err
	}

	for _, doc := range docs {
		if doc.ID == id {
			return r.readSiteFile(doc.ContentFile)
		}
	}
	return "", fmt.Errorf("private document %q not found in catalog", id)
}

// Project looks up a portfolio project by id
func (r *Resolver) Project(id int) (*models.PortfolioProject, error) {
	projects, err := r.loadPortfolioCatalog()
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, fmt.Errorf("project %d not found in catalog", id)
}

// ResolvedSection is a portfolio section with its content materialized
type ResolvedSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ResolveSections materializes every non-absent section of a project with
// one exhaustive match on the content variant. A file reference that fails
// to read resolves to an error note, as the original site displayed.
func (r *Resolver) ResolveSections(project *models.PortfolioProject) []ResolvedSection {
	var resolved []ResolvedSection
	for _, section := range project.Sections() {
		var text string
		switch section.Content.Kind {
		case models.SectionAbsent:
			continue
		case models.SectionFileReference:
			content, err := r.readSiteFile(withPrefix(section.Content.Path, PortfolioContentDir))
			if err != nil {
				text = fmt.Sprintf("**Error loading content**: %v", err)
			} else {
				text = content
			}
		case models.SectionInlineText:
			text = section.Content.Text
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		resolved = append(resolved, ResolvedSection{Title: section.Title, Content: text})
	}
	return resolved
}

func (r *Resolver) loadBlogCatalog() ([]models.BlogPost, error) {
	r.blogOnce.Do(func() {
		r.blogErr = r.readCatalog(blogCatalogPath, &r.blogPosts)
	})
	return r.blogPosts, r.blogErr
}

func (r *Resolver) loadPrivateCatalog() ([]models.PrivateDocument, error) {
	r.privOnce.Do(func() {
		r.privErr = r.readCatalog(privateCatalogPath, &r.privDocs)
	})
	return r.privDocs, r.privErr
}

func (r *Resolver) loadPortfolioCatalog() ([]models.PortfolioProject, error) {
	r.projectOnce.Do(func() {
		r.projectErr = r.readCatalog(portfolioCatalogPath, &r.projects)
	})
	return r.projects, r.projectErr
}

func (r *Resolver) readCatalog(relPath string, out interface{}) error {
	data, err := os.ReadFile(filepath.Join(r.siteDir, relPath))
	if err != nil {
		return fmt.Errorf("reading catalog %s: %w", relPath, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing catalog %s: %w", relPath, err)
	}
	return nil
}

func (r *Resolver) readSiteFile(relPath string) (string, error) {
	data, err := os.ReadFile(filepath.Join(r.siteDir, relPath))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", relPath, err)
	}
	return string(data), nil
}

// withPrefix prepends dir unless the path already starts with it
func withPrefix(path, dir string) string {
	if strings.HasPrefix(path, dir) {
		return path
	}
	return dir + path
}
