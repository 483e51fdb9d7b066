package session

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/scoreai-client/agent/contract"
)

// Option customizes Session.
type Option func(*Session)

func WithJournal(journal contractx.TurnJournal) Option {
	return func(s *Session) {
		if journal != nil {
			s.journal = journal
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.log = logger
	}
}

func WithID(id string) Option {
	return func(s *Session) {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			s.id = trimmed
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}
