package llm

import (
	"context"
	"errors"
	"sync"
)

// Scripted is a Completer that replays canned responses in order. It is
// used by tests and by dry runs.
type Scripted struct {
	mu        sync.Mutex
	responses []string
	Prompts   []string
	Err       error
}

// NewScripted returns a completer answering with responses in order.
func NewScripted(responses ...string) *Scripted {
	return &Scripted{responses: responses}
}

// Complete implements Completer.
func (s *Scripted) Complete(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Prompts = append(s.Prompts, prompt)
	if s.Err != nil {
		return "", &GenerationError{Provider: "scripted", Cause: s.Err}
	}
	if len(s.responses) == 0 {
		return "", &GenerationError{Provider: "scripted", Cause: errors.New("no response left")}
	}
	next := s.responses[0]
	s.responses = s.responses[1:]
	return next, nil
}
