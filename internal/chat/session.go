// ABOUTME: Chat session controller: per-turn state machine and append-only turn log
// ABOUTME: Converts every stage failure into a turn-scoped error message, never a stuck state
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/efan/sitechat/internal/models"
)

// Submission rejections. These produce no turn and no network calls.
var (
	// ErrEmptyQuestion rejects empty or whitespace-only submissions
	ErrEmptyQuestion = errors.New("question cannot be empty")
	// ErrBusy rejects a submission while a previous turn is still in flight
	ErrBusy = errors.New("a question is already being answered")
)

// Phase is the session's per-turn state machine position
type Phase int

const (
	// PhaseIdle means the session accepts submissions
	PhaseIdle Phase = iota
	// PhaseAwaitingEmbedding means the query embedding request is in flight
	PhaseAwaitingEmbedding
	// PhaseAwaitingRetrieval means ranking and document resolution are in flight
	PhaseAwaitingRetrieval
	// PhaseAwaitingGeneration means the completion request is in flight
	PhaseAwaitingGeneration
)

// Session drives the conversation. One submission runs at a time; while a
// turn is in flight further submissions are rejected rather than queued or
// cancelled, mirroring the disabled send control. Turns are append-only and
// live only as long as the session.
type Session struct {
	pipeline *Pipeline

	mu    sync.Mutex
	busy  bool
	phase Phase
	turns []models.ChatTurn
}

// NewSession creates a session around the given pipeline. The session takes
// over the pipeline's stage hook to track its phase.
func NewSession(pipeline *Pipeline) *Session {
	s := &Session{pipeline: pipeline}
	pipeline.OnStage = s.enterStage
	return s
}

// SendQuestion submits one question and blocks until the turn completes.
// On success the answer turn carries the response plus a source footer when
// documents grounded it; any stage failure becomes an error-labeled answer
// turn instead. The returned error is non-nil only for rejected submissions
// (empty question, busy session) — those append nothing.
func (s *Session) SendQuestion(ctx context.Context, question string) (models.ChatTurn, error) {
	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		return models.ChatTurn{}, ErrEmptyQuestion
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return models.ChatTurn{}, ErrBusy
	}
	s.busy = true
	s.turns = append(s.turns, models.NewQuestionTurn(trimmed))
	s.mu.Unlock()

	answer, err := s.pipeline.Ask(ctx, trimmed)

	var turn models.ChatTurn
	if err != nil {
		turn = models.NewErrorTurn(err.Error())
	} else {
		text := answer.Text
		if footer := FormatSources(answer.Sources); footer != "" {
			text += "\n\n" + footer
		}
		turn = models.NewAnswerTurn(text)
	}

	// Terminal for every outcome: record the turn and re-enable submission
	s.mu.Lock()
	s.turns = append(s.turns, turn)
	s.busy = false
	s.phase = PhaseIdle
	s.mu.Unlock()

	return turn, nil
}

// Turns returns a snapshot of the conversation so far
func (s *Session) Turns() []models.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := make([]models.ChatTurn, len(s.turns))
	copy(turns, s.turns)
	return turns
}

// Phase returns the session's current state machine position
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Busy reports whether a turn is in flight
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *Session) enterStage(stage Stage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch stage {
	case StageEmbedding:
		s.phase = PhaseAwaitingEmbedding
	case StageRetrieval:
		s.phase = PhaseAwaitingRetrieval
	case StageGeneration:
		s.phase = PhaseAwaitingGeneration
	}
}
