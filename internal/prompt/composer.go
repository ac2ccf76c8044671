// ABOUTME: Assembles grounded and ungrounded prompts for the generative model
// ABOUTME: Grounded prompts serialize retrieved documents with citation instructions
package prompt

import (
	"fmt"
	"strings"

	"github.com/efan/sitechat/internal/models"
)

// groundedPreamble instructs the model to stay within the supplied documents
const groundedPreamble = `You are a helpful AI assistant for a personal website/blog. Answer the user's question based on the following documents from the website.

IMPORTANT INSTRUCTIONS:
- Answer based ONLY on the information in the provided documents
- If the answer is not in the documents, politely say you don't have that information in the knowledge base
- Be conversational and helpful
- Keep your answer concise but complete
- If you reference information, mention which document it came from`

// ungroundedPreamble is the fallback when no document context is available
const ungroundedPreamble = `You are a helpful AI assistant. Please answer the following question concisely and helpfully:`

// documentSeparator joins serialized document blocks
const documentSeparator = "\n\n---\n\n"

// Compose builds the prompt for one question. With resolved documents it
// emits the grounding preamble, each document as a labeled block in ranked
// order, then the question. With none (index missing, no results, or every
// resolution failed) it emits the generic preamble and the raw question.
// No truncation or token budgeting is applied.
func Compose(question string, docs []models.ResolvedDocument) string {
	if len(docs) == 0 {
		return fmt.Sprintf("%s\n\n%s", ungroundedPreamble, question)
	}

	blocks := make([]string, 0, len(docs))
	for _, doc := range docs {
		blocks = append(blocks, fmt.Sprintf("Document: %s\nType: %s\nContent: %s",
			doc.Title, doc.Type, doc.Content))
	}

	var b strings.Builder
	b.WriteString(groundedPreamble)
	b.WriteString("\n\nDocuments from the website:\n")
	b.WriteString(strings.Join(blocks, documentSeparator))
	b.WriteString("\n\nUser Question: ")
	b.WriteString(question)
	b.WriteString("\n\nAnswer:")
	return b.String()
}
