// ABOUTME: Chat conversation models for the session controller
// ABOUTME: ChatTurn is an append-only entry in the visible conversation
package models

import (
	"strings"
	"time"
)

// Turn labels, matching the two boxes the site renders
const (
	TurnLabelQuestion = "question"
	TurnLabelAnswer   = "answer"
)

// ChatTurn is one entry of the conversation. Turns are created per
// submission or response and never mutated; the conversation is not
// persisted across sessions.
type ChatTurn struct {
	Label     string    `json:"label"`
	Text      string    `json:"text"`
	Markdown  bool      `json:"markdown"`
	Error     bool      `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// markdownMarkers are the cues the original renderer used to decide between
// plain-text and rich-text display of a turn
var markdownMarkers = []string{"**", "*", "`", "#", "[", "- ", "1. "}

// IsMarkdown reports whether text should be rendered as rich text rather
// than plain text: anything multi-line or containing markdown syntax
func IsMarkdown(text string) bool {
	trimmed := strings.TrimSpace(text)
	if strings.Contains(trimmed, "\n") {
		return true
	}
	for _, marker := range markdownMarkers {
		if strings.Contains(trimmed, marker) {
			return true
		}
	}
	return false
}

// NewQuestionTurn creates the turn for a submitted question
func NewQuestionTurn(text string) ChatTurn {
	return ChatTurn{
		Label:     TurnLabelQuestion,
		Text:      text,
		Markdown:  IsMarkdown(text),
		Timestamp: time.Now().UTC(),
	}
}

// NewAnswerTurn creates the turn for a model response
func NewAnswerTurn(text string) ChatTurn {
	return ChatTurn{
		Label:     TurnLabelAnswer,
		Text:      text,
		Markdown:  IsMarkdown(text),
		Timestamp: time.Now().UTC(),
	}
}

// NewErrorTurn creates an error-labeled answer turn for a failed response
func NewErrorTurn(message string) ChatTurn {
	return ChatTurn{
		Label:     TurnLabelAnswer,
		Text:      "Error: " + message,
		Error:     true,
		Timestamp: time.Now().UTC(),
	}
}
