// ABOUTME: Tests for grounded and ungrounded prompt composition
// ABOUTME: Checks document ordering, labeling, and the fallback path
package prompt

import (
	"strings"
	"testing"

	"github.com/efan/sitechat/internal/models"
)

func TestCompose_Grounded(t *testing.T) {
	docs := []models.ResolvedDocument{
		{Title: "Go Concurrency", Type: models.DocumentTypeBlog, Content: "Goroutines and channels."},
		{Title: "Resume", Type: models.DocumentTypePrivate, Content: "Ten years of engineering."},
	}

	got := Compose("What do you know about Go?", docs)

	if !strings.Contains(got, "Answer based ONLY on the information in the provided documents") {
		t.Error("grounded prompt must carry the grounding instructions")
	}
	if !strings.Contains(got, "Documents from the website:") {
		t.Error("grounded prompt must introduce the document section")
	}

	for _, doc := range docs {
		if !strings.Contains(got, "Document: "+doc.Title) {
			t.Errorf("prompt missing document title %q", doc.Title)
		}
		if !strings.Contains(got, "Type: "+string(doc.Type)) {
			t.Errorf("prompt missing type for %q", doc.Title)
		}
		if !strings.Contains(got, "Content: "+doc.Content) {
			t.Errorf("prompt missing content for %q", doc.Title)
		}
	}

	// Documents appear in ranked order
	first := strings.Index(got, "Go Concurrency")
	second := strings.Index(got, "Resume")
	if first == -1 || second == -1 || first > second {
		t.Errorf("documents out of order: %d, %d", first, second)
	}

	if !strings.Contains(got, "User Question: What do you know about Go?") {
		t.Error("prompt must end with the user question")
	}
	if !strings.HasSuffix(got, "\n\nAnswer:") {
		t.Error("prompt must end with the answer cue")
	}
	if !strings.Contains(got, "\n\n---\n\n") {
		t.Error("documents must be separated by the block divider")
	}
}

func TestCompose_Ungrounded(t *testing.T) {
	got := Compose("What is the capital of France?", nil)

	if !strings.Contains(got, "answer the following question concisely") {
		t.Error("ungrounded prompt must carry the generic preamble")
	}
	if !strings.Contains(got, "What is the capital of France?") {
		t.Error("ungrounded prompt must contain the question")
	}
	if strings.Contains(got, "Documents from the website") {
		t.Error("ungrounded prompt must not mention documents")
	}
	if strings.Contains(got, "ONLY") {
		t.Error("ungrounded prompt must not carry grounding instructions")
	}
}

func TestCompose_EmptySliceEqualsNil(t *testing.T) {
	if Compose("q", nil) != Compose("q", []models.ResolvedDocument{}) {
		t.Error("nil and empty document slices must compose identically")
	}
}
