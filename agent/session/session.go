// Package session holds one agent conversation: its message history, the
// last reply and the score that reply points at.
package session

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/scoreai-client/agent/contract"
	nodex "github.com/tanpawarit/scoreai-client/agent/nodes/turn"
	logx "github.com/tanpawarit/scoreai-client/pkg/logger"
	"github.com/tanpawarit/scoreai-client/pkg/scoreapi"
)

var (
	ErrTurnInFlight     = contractx.ErrTurnInFlight
	ErrAgentUnavailable = contractx.ErrAgentUnavailable
)

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateFailed  State = "failed"
)

// Snapshot is a copy of the session taken under its lock.
type Snapshot struct {
	ID       string
	State    State
	History  []scoreapi.HistoryFragment
	Reply    *contractx.Reply
	Resolved *scoreapi.Score
	Err      string
}

// Session runs one turn at a time. A turn started while another is running
// is rejected with ErrTurnInFlight.
type Session struct {
	id      string
	journal contractx.TurnJournal
	log     zerolog.Logger
	now     func() time.Time

	agentRunner turnRunner
	imslpRunner turnRunner

	mu         sync.Mutex
	state      State
	history    []scoreapi.HistoryFragment
	reply      *contractx.Reply
	resolved   *scoreapi.Score
	errText    string
	generation uint64
}

func New(catalog contractx.Catalog, gateway contractx.AgentGateway, opts ...Option) (*Session, error) {
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if gateway == nil {
		return nil, errors.New("agent gateway is required")
	}

	s := &Session{
		id:      uuid.Must(uuid.NewV7()).String(),
		journal: noopJournal{},
		log:     logx.Component("session"),
		now:     time.Now,
		state:   StateIdle,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.log = s.log.With().Str("session_id", s.id).Logger()

	ctx := context.Background()
	agentRunner, err := compileAgentGraph(ctx, catalog, gateway, s.log)
	if err != nil {
		return nil, err
	}
	imslpRunner, err := compileImslpGraph(ctx, gateway)
	if err != nil {
		return nil, err
	}
	s.agentRunner = agentRunner
	s.imslpRunner = imslpRunner

	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

// RunAgent asks the score agent a question, grounding it in the current
// catalog. An empty question is ignored. On failure the session keeps its
// history and previous reply and returns ErrAgentUnavailable.
func (s *Session) RunAgent(ctx context.Context, question string) error {
	return s.run(ctx, contractx.TurnKindAgent, s.agentRunner, question)
}

// RunImslpAgent asks the IMSLP lookup agent a question. It shares the
// session history but never resolves a score.
func (s *Session) RunImslpAgent(ctx context.Context, question string) error {
	return s.run(ctx, contractx.TurnKindImslp, s.imslpRunner, question)
}

func (s *Session) run(ctx context.Context, kind contractx.TurnKind, runner turnRunner, question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil
	}

	s.mu.Lock()
	if s.state == StateRunning {
		s.mu.Unlock()
		return ErrTurnInFlight
	}
	s.state = StateRunning
	s.errText = ""
	generation := s.generation
	history := slices.Clone(s.history)
	s.mu.Unlock()

	out, err := runner.Invoke(ctx, nodex.GraphInput{Question: question, History: history})

	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		s.log.Debug().Str("kind", string(kind)).Msg("history cleared during turn, result discarded")
		return nil
	}
	if err != nil {
		s.state = StateFailed
		s.errText = ErrAgentUnavailable.Error()
		historyLen := len(s.history)
		s.mu.Unlock()

		s.log.Error().Err(err).Str("kind", string(kind)).Msg("agent turn failed")
		s.record(ctx, contractx.JournalEntry{
			Kind:       kind,
			Question:   question,
			Failed:     true,
			HistoryLen: historyLen,
		})
		return ErrAgentUnavailable
	}

	s.history = append(s.history, out.Appended...)
	reply := out.Reply
	s.reply = &reply
	s.resolved = out.Resolved
	s.state = StateIdle
	historyLen := len(s.history)
	s.mu.Unlock()

	s.log.Info().
		Str("kind", string(kind)).
		Int("appended", len(out.Appended)).
		Int("history_len", historyLen).
		Bool("resolved", out.Resolved != nil).
		Msg("agent turn applied")
	s.record(ctx, contractx.JournalEntry{
		Kind:       kind,
		Question:   question,
		Response:   reply.Text,
		ScoreID:    reply.ScoreID,
		Resolved:   out.Resolved != nil,
		HistoryLen: historyLen,
	})
	return nil
}

// CleanHistory empties the history, reply, resolved score and error and
// returns the session to idle. A turn still running when this is called has
// its result dropped.
func (s *Session) CleanHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = nil
	s.reply = nil
	s.resolved = nil
	s.errText = ""
	s.state = StateIdle
	s.generation++
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:      s.id,
		State:   s.state,
		History: slices.Clone(s.history),
		Err:     s.errText,
	}
	if s.reply != nil {
		reply := *s.reply
		reply.ImslpScoreIDs = slices.Clone(s.reply.ImslpScoreIDs)
		snap.Reply = &reply
	}
	if s.resolved != nil {
		score := *s.resolved
		snap.Resolved = &score
	}
	return snap
}

func (s *Session) record(ctx context.Context, entry contractx.JournalEntry) {
	entry.SessionID = s.id
	entry.At = s.now().UTC()
	if err := s.journal.Record(ctx, entry); err != nil {
		s.log.Warn().Err(err).Msg("journal record failed")
	}
}

type noopJournal struct{}

func (noopJournal) Record(context.Context, contractx.JournalEntry) error {
	return nil
}
