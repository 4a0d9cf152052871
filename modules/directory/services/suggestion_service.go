package services

import (
	"context"
	"errors"
	"sync"
	"unicode/utf8"

	"github.com/iota-uz/people-console/modules/directory/domain/aggregates/employee"
)

// Names shorter than this never trigger generation, so half-typed names don't
// produce noisy partial-name queries.
const minNameLength = 2

var (
	ErrLoginUnavailable = errors.New("login is not available")
	ErrUnknownLogin     = errors.New("login is not among the current suggestions")
)

// SuggestionService owns the candidate set of a single create flow. Each
// generation request carries a sequence number; a response is applied only if
// no newer request has been issued since, so a slow response for a superseded
// name pair can never overwrite fresher suggestions.
type SuggestionService struct {
	gw       employee.Gateway
	notifier Notifier

	mu          sync.Mutex
	seq         uint64
	inflight    int
	suggestions []employee.Suggestion
	selected    string
}

func NewSuggestionService(gw employee.Gateway, notifier Notifier) *SuggestionService {
	return &SuggestionService{
		gw:       gw,
		notifier: notifier,
	}
}

// Generate fetches a fresh candidate set for the given name pair. Both names
// must be longer than one rune, otherwise the call is a no-op. On success the
// whole candidate list is replaced and the first available candidate becomes
// the selection; on failure the previous list survives and the error is
// reported through the notifier only.
func (s *SuggestionService) Generate(ctx context.Context, firstName, lastName string) {
	if utf8.RuneCountInString(firstName) < minNameLength || utf8.RuneCountInString(lastName) < minNameLength {
		return
	}

	s.mu.Lock()
	s.seq++
	token := s.seq
	s.inflight++
	s.mu.Unlock()

	suggestions, err := s.gw.GenerateLogins(ctx, firstName, lastName)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--

	// A newer request was issued while this one was in flight; its response
	// is stale regardless of completion order.
	if token != s.seq {
		return
	}

	if err != nil {
		s.notifier.Notify(Notification{Level: LevelError, Message: "failed to generate login suggestions"})
		return
	}

	s.suggestions = suggestions
	s.selected = ""
	for _, suggestion := range suggestions {
		if suggestion.Available {
			s.selected = suggestion.Login
			break
		}
	}
}

// Select picks a candidate from the current set. Only available candidates
// are selectable.
func (s *SuggestionService) Select(login string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, suggestion := range s.suggestions {
		if suggestion.Login != login {
			continue
		}
		if !suggestion.Available {
			return ErrLoginUnavailable
		}
		s.selected = login
		return nil
	}
	return ErrUnknownLogin
}

// Selected returns the chosen login, empty when no available candidate has
// been picked yet.
func (s *SuggestionService) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *SuggestionService) Suggestions() []employee.Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]employee.Suggestion, len(s.suggestions))
	copy(out, s.suggestions)
	return out
}

func (s *SuggestionService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

// Reset discards candidates and selection and invalidates any in-flight
// generation, so its late response is dropped on arrival.
func (s *SuggestionService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.suggestions = nil
	s.selected = ""
}
