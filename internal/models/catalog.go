// ABOUTME: Catalog models for the site's JSON artifacts
// ABOUTME: Blog posts, private documents, and portfolio projects with tagged section content
package models

import (
	"encoding/json"
	"fmt"
)

// BlogPost is one record of the blog-post catalog (assets/blog-posts.json)
type BlogPost struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Summary     string `json:"summary"`
	ReadingTime int    `json:"readingTime"`
	ContentFile string `json:"contentFile"`
	Image       string `json:"image,omitempty"`
}

// PrivateDocument is one record of the private-document catalog
// (assets/private-documents.json)
type PrivateDocument struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ContentFile string `json:"contentFile"`
}

// SectionKind tags the two shapes portfolio section content can take
type SectionKind int

const (
	// SectionAbsent means the project has no content for this section
	SectionAbsent SectionKind = iota
	// SectionFileReference means the content lives in a file under portfolio/
	SectionFileReference
	// SectionInlineText means the content is embedded in the catalog itself
	SectionInlineText
)

// SectionContent is portfolio section content as a tagged variant:
// a file reference or inline text. This replaces shape-sniffing on the raw
// JSON value (string vs. tagged object vs. plain value) with one exhaustive
// switch at the resolution site.
type SectionContent struct {
	Kind SectionKind
	Path string // set when Kind == SectionFileReference
	Text string // set when Kind == SectionInlineText
}

// UnmarshalJSON maps the catalog's historical shapes onto the variant:
// a JSON string is a file reference, an object with a "content" field is
// inline text, any other scalar is inline text of its printed form.
func (s *SectionContent) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*s = SectionContent{}
	case string:
		*s = SectionContent{Kind: SectionFileReference, Path: v}
	case map[string]interface{}:
		content, _ := v["content"].(string)
		*s = SectionContent{Kind: SectionInlineText, Text: content}
	default:
		*s = SectionContent{Kind: SectionInlineText, Text: fmt.Sprint(v)}
	}
	return nil
}

// MarshalJSON writes the variant back in its canonical catalog shape
func (s SectionContent) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case SectionFileReference:
		return json.Marshal(s.Path)
	case SectionInlineText:
		return json.Marshal(map[string]string{"type": "text", "content": s.Text})
	default:
		return []byte("null"), nil
	}
}

// PortfolioProject is one record of the portfolio catalog (assets/portfolio.json)
type PortfolioProject struct {
	ID         int            `json:"id"`
	Title      string         `json:"title"`
	TechStacks string         `json:"techStacks"`
	Category   string         `json:"category"`
	Icon       string         `json:"icon,omitempty"`
	Goals      SectionContent `json:"goals,omitempty"`
	Methods    SectionContent `json:"methods,omitempty"`
	PainPoints SectionContent `json:"painPoints,omitempty"`
	Improves   SectionContent `json:"improvements,omitempty"`
	Impact     SectionContent `json:"impact,omitempty"`

	// Legacy file-reference fields kept for older catalog entries
	GoalsFile      string `json:"goalsFile,omitempty"`
	MethodsFile    string `json:"methodsFile,omitempty"`
	PainPointsFile string `json:"painPointsFile,omitempty"`
	ImprovesFile   string `json:"improvementsFile,omitempty"`
	ImpactFile     string `json:"impactFile,omitempty"`
}

// ProjectSection pairs a display title with its content variant
type ProjectSection struct {
	Title   string
	Content SectionContent
}

// Sections returns the project's sections in display order. A section with
// no new-format content falls back to its legacy file-reference field.
func (p *PortfolioProject) Sections() []ProjectSection {
	entries := []struct {
		title    string
		content  SectionContent
		fallback string
	}{
		{"Goals", p.Goals, p.GoalsFile},
		{"Methods", p.Methods, p.MethodsFile},
		{"Pain Points & Lessons Learned", p.PainPoints, p.PainPointsFile},
		{"Future Improvements", p.Improves, p.ImprovesFile},
		{"Impact", p.Impact, p.ImpactFile},
	}

	sections := make([]ProjectSection, 0, len(entries))
	for _, e := range entries {
		content := e.content
		if content.Kind == SectionAbsent && e.fallback != "" {
			content = SectionContent{Kind: SectionFileReference, Path: e.fallback}
		}
		sections = append(sections, ProjectSection{Title: e.title, Content: content})
	}
	return sections
}
