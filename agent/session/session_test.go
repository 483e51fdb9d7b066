package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/scoreai-client/agent/contract"
	"github.com/tanpawarit/scoreai-client/pkg/scoreapi"
)

type fakeCatalog struct {
	mu       sync.Mutex
	catalogs [][]scoreapi.Score
	errs     []error
	calls    int
	events   *eventLog
}

func (f *fakeCatalog) Fetch(ctx context.Context) ([]scoreapi.Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.calls
	f.calls++
	f.events.add("catalog")
	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	if len(f.catalogs) == 0 {
		return []scoreapi.Score{}, nil
	}
	if idx >= len(f.catalogs) {
		idx = len(f.catalogs) - 1
	}
	return f.catalogs[idx], nil
}

func (f *fakeCatalog) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type agentCall struct {
	question   string
	catalogLen int
	history    string
}

type fakeGateway struct {
	mu        sync.Mutex
	responses []*scoreapi.FullResponse
	imslp     []*scoreapi.ImslpFullResponse
	err       error
	calls     []agentCall
	entered   chan struct{}
	release   chan struct{}
	events    *eventLog
}

func (f *fakeGateway) RunAgent(ctx context.Context, question string, catalog []scoreapi.Score, history []scoreapi.HistoryFragment) (*scoreapi.FullResponse, error) {
	f.block()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.events.add("agent")
	f.calls = append(f.calls, agentCall{question: question, catalogLen: len(catalog), history: encode(history)})
	if f.err != nil {
		return nil, f.err
	}
	idx := len(f.calls) - 1
	if idx >= len(f.responses) {
		return nil, fmt.Errorf("no agent response left at call=%d", idx+1)
	}
	return f.responses[idx], nil
}

func (f *fakeGateway) RunImslpAgent(ctx context.Context, question string, history []scoreapi.HistoryFragment) (*scoreapi.ImslpFullResponse, error) {
	f.block()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.events.add("imslp")
	f.calls = append(f.calls, agentCall{question: question, catalogLen: -1, history: encode(history)})
	if f.err != nil {
		return nil, f.err
	}
	if len(f.imslp) == 0 {
		return nil, errors.New("no imslp response left")
	}
	out := f.imslp[0]
	f.imslp = f.imslp[1:]
	return out, nil
}

func (f *fakeGateway) block() {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
}

func (f *fakeGateway) callsSnapshot() []agentCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]agentCall(nil), f.calls...)
}

type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (e *eventLog) add(name string) {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, name)
}

func (e *eventLog) String() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return strings.Join(e.events, ",")
}

type fakeJournal struct {
	mu      sync.Mutex
	entries []contractx.JournalEntry
	err     error
}

func (f *fakeJournal) Record(ctx context.Context, entry contractx.JournalEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return f.err
}

func id(v int64) *int64 { return &v }

func score(v int64, title string) scoreapi.Score {
	return scoreapi.Score{ID: id(v), Title: title, Composer: "Chopin"}
}

func fragments(t *testing.T, raw ...string) []scoreapi.HistoryFragment {
	t.Helper()
	out := make([]scoreapi.HistoryFragment, 0, len(raw))
	for _, r := range raw {
		var f scoreapi.HistoryFragment
		if err := json.Unmarshal([]byte(r), &f); err != nil {
			t.Fatalf("unmarshal fragment %s: %v", r, err)
		}
		out = append(out, f)
	}
	return out
}

func encode(history []scoreapi.HistoryFragment) string {
	raw, err := json.Marshal(history)
	if err != nil {
		return "!" + err.Error()
	}
	return string(raw)
}

func rawFragments(t *testing.T, history []scoreapi.HistoryFragment) []string {
	t.Helper()
	out := make([]string, 0, len(history))
	for _, f := range history {
		raw, err := f.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON() error = %v", err)
		}
		out = append(out, string(raw))
	}
	return out
}

func newTestSession(t *testing.T, catalog *fakeCatalog, gateway *fakeGateway, opts ...Option) *Session {
	t.Helper()
	s, err := New(catalog, gateway, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestChopinScenarioThenClear(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{catalogs: [][]scoreapi.Score{
		{score(3, "Nocturne"), score(4, "Etude Op. 10 No. 3"), score(5, "Ballade")},
	}}
	gateway := &fakeGateway{responses: []*scoreapi.FullResponse{{
		Response:       scoreapi.Response{Response: "Chopin", ScoreID: id(4)},
		MessageHistory: fragments(t, `{"kind":"response"}`),
	}}}
	s := newTestSession(t, catalog, gateway)

	if err := s.RunAgent(context.Background(), "Who composed this étude?"); err != nil {
		t.Fatalf("RunAgent() error = %v", err)
	}

	snap := s.Snapshot()
	if snap.State != StateIdle {
		t.Fatalf("State = %s, want idle", snap.State)
	}
	if snap.Resolved == nil || *snap.Resolved.ID != 4 {
		t.Fatalf("Resolved = %#v, want id 4", snap.Resolved)
	}
	if len(snap.History) != 1 {
		t.Fatalf("history len = %d, want 1", len(snap.History))
	}
	if snap.Reply == nil || snap.Reply.Text != "Chopin" {
		t.Fatalf("Reply = %#v", snap.Reply)
	}
	if got := catalog.callCount(); got != 2 {
		t.Fatalf("catalog calls = %d, want 2", got)
	}

	s.CleanHistory()
	snap = s.Snapshot()
	if len(snap.History) != 0 || snap.Resolved != nil || snap.Reply != nil {
		t.Fatalf("session not cleared: %#v", snap)
	}
	if snap.State != StateIdle {
		t.Fatalf("State = %s, want idle", snap.State)
	}
}

func TestHistoryAccumulatesInOrder(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{responses: []*scoreapi.FullResponse{
		{Response: scoreapi.Response{Response: "a"}, MessageHistory: fragments(t, `{"n":1}`, `{"n":2}`)},
		{Response: scoreapi.Response{Response: "b"}, MessageHistory: fragments(t)},
		{Response: scoreapi.Response{Response: "c"}, MessageHistory: fragments(t, `{"n":3}`, `{"n":4}`, `{"n":5}`)},
	}}
	s := newTestSession(t, &fakeCatalog{}, gateway)

	for _, q := range []string{"one", "two", "three"} {
		if err := s.RunAgent(context.Background(), q); err != nil {
			t.Fatalf("RunAgent(%q) error = %v", q, err)
		}
	}

	snap := s.Snapshot()
	if len(snap.History) != 5 {
		t.Fatalf("history len = %d, want 5", len(snap.History))
	}
	if got := encode(snap.History); got != `[{"n":1},{"n":2},{"n":3},{"n":4},{"n":5}]` {
		t.Fatalf("history = %s", got)
	}

	calls := gateway.callsSnapshot()
	wantSent := []string{`[]`, `[{"n":1},{"n":2}]`, `[{"n":1},{"n":2}]`}
	for i, want := range wantSent {
		if calls[i].history != want {
			t.Fatalf("call %d history = %s, want %s", i, calls[i].history, want)
		}
	}
}

func TestNoScoreIDLeavesResolvedEmpty(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{catalogs: [][]scoreapi.Score{{score(1, "x")}}}
	gateway := &fakeGateway{responses: []*scoreapi.FullResponse{
		{Response: scoreapi.Response{Response: "with id", ScoreID: id(1)}},
		{Response: scoreapi.Response{Response: "no id"}},
	}}
	s := newTestSession(t, catalog, gateway)

	if err := s.RunAgent(context.Background(), "first"); err != nil {
		t.Fatalf("RunAgent() error = %v", err)
	}
	if s.Snapshot().Resolved == nil {
		t.Fatal("first turn must resolve a score")
	}

	if err := s.RunAgent(context.Background(), "second"); err != nil {
		t.Fatalf("RunAgent() error = %v", err)
	}
	if got := s.Snapshot().Resolved; got != nil {
		t.Fatalf("Resolved = %#v, want nil", got)
	}
	if got := catalog.callCount(); got != 3 {
		t.Fatalf("catalog calls = %d, want 3 (no refetch without score id)", got)
	}
}

func TestScoreIDWithoutMatchIsNotAnError(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{catalogs: [][]scoreapi.Score{
		{score(1, "a"), score(2, "b")},
		{score(1, "a")},
	}}
	gateway := &fakeGateway{responses: []*scoreapi.FullResponse{
		{Response: scoreapi.Response{Response: "deleted meanwhile", ScoreID: id(2)}},
	}}
	s := newTestSession(t, catalog, gateway)

	if err := s.RunAgent(context.Background(), "where is b?"); err != nil {
		t.Fatalf("RunAgent() error = %v", err)
	}
	snap := s.Snapshot()
	if snap.Resolved != nil {
		t.Fatalf("Resolved = %#v, want nil", snap.Resolved)
	}
	if snap.State != StateIdle || snap.Err != "" {
		t.Fatalf("unexpected state %s err %q", snap.State, snap.Err)
	}
}

func TestDuplicateScoreIDResolvesFirst(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{catalogs: [][]scoreapi.Score{
		{score(9, "other"), score(4, "first"), score(4, "second")},
	}}
	gateway := &fakeGateway{responses: []*scoreapi.FullResponse{
		{Response: scoreapi.Response{Response: "r", ScoreID: id(4)}},
	}}
	s := newTestSession(t, catalog, gateway)

	if err := s.RunAgent(context.Background(), "q"); err != nil {
		t.Fatalf("RunAgent() error = %v", err)
	}
	if got := s.Snapshot().Resolved; got == nil || got.Title != "first" {
		t.Fatalf("Resolved = %#v, want first", got)
	}
}

func TestFailedTurnLeavesHistoryUntouched(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{responses: []*scoreapi.FullResponse{
		{Response: scoreapi.Response{Response: "ok", ScoreID: id(1)}, MessageHistory: fragments(t, `{"a": [1, 2]}`, `"text"`)},
	}}
	catalog := &fakeCatalog{catalogs: [][]scoreapi.Score{{score(1, "x")}}}
	s := newTestSession(t, catalog, gateway)

	if err := s.RunAgent(context.Background(), "first"); err != nil {
		t.Fatalf("RunAgent() error = %v", err)
	}
	before := s.Snapshot()

	remote := &scoreapi.RemoteError{Status: 500, Body: "boom"}
	gateway.mu.Lock()
	gateway.err = remote
	gateway.mu.Unlock()

	err := s.RunAgent(context.Background(), "second")
	if !errors.Is(err, ErrAgentUnavailable) {
		t.Fatalf("RunAgent() error = %v, want ErrAgentUnavailable", err)
	}
	var leaked *scoreapi.RemoteError
	if errors.As(err, &leaked) {
		t.Fatal("raw remote error must not reach the caller")
	}

	after := s.Snapshot()
	if encode(after.History) != encode(before.History) {
		t.Fatalf("history changed: %s -> %s", encode(before.History), encode(after.History))
	}
	want := []string{`{"a": [1, 2]}`, `"text"`}
	got := rawFragments(t, after.History)
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("history not byte-identical: %q", got)
	}
	if after.Reply == nil || after.Reply.Text != "ok" {
		t.Fatalf("previous reply lost: %#v", after.Reply)
	}
	if after.Resolved == nil || *after.Resolved.ID != 1 {
		t.Fatalf("previous resolved score lost: %#v", after.Resolved)
	}
	if after.State != StateFailed || after.Err != ErrAgentUnavailable.Error() {
		t.Fatalf("state = %s err = %q", after.State, after.Err)
	}
}

func TestCatalogFailureFailsTurnBeforeAgentCall(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{errs: []error{errors.New("network down")}}
	gateway := &fakeGateway{}
	s := newTestSession(t, catalog, gateway)

	if err := s.RunAgent(context.Background(), "q"); !errors.Is(err, ErrAgentUnavailable) {
		t.Fatalf("RunAgent() error = %v, want ErrAgentUnavailable", err)
	}
	if n := len(gateway.callsSnapshot()); n != 0 {
		t.Fatalf("agent called %d times", n)
	}
	if s.Snapshot().State != StateFailed {
		t.Fatal("session must be failed")
	}
}

func TestRefetchFailureKeepsAnswer(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{
		catalogs: [][]scoreapi.Score{{score(4, "x")}},
		errs:     []error{nil, errors.New("refetch failed")},
	}
	gateway := &fakeGateway{responses: []*scoreapi.FullResponse{
		{Response: scoreapi.Response{Response: "Chopin", ScoreID: id(4)}, MessageHistory: fragments(t, `{}`)},
	}}
	s := newTestSession(t, catalog, gateway)

	if err := s.RunAgent(context.Background(), "q"); err != nil {
		t.Fatalf("RunAgent() error = %v", err)
	}
	snap := s.Snapshot()
	if snap.Reply == nil || snap.Reply.Text != "Chopin" || len(snap.History) != 1 {
		t.Fatalf("answer not applied: %#v", snap)
	}
	if snap.Resolved != nil {
		t.Fatalf("Resolved = %#v, want nil", snap.Resolved)
	}
}

func TestCleanHistoryFromFailed(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{err: errors.New("down")}
	s := newTestSession(t, &fakeCatalog{}, gateway)

	_ = s.RunAgent(context.Background(), "q")
	if s.Snapshot().State != StateFailed {
		t.Fatal("expected failed state")
	}

	s.CleanHistory()
	snap := s.Snapshot()
	if snap.State != StateIdle || snap.Err != "" || len(snap.History) != 0 || snap.Resolved != nil || snap.Reply != nil {
		t.Fatalf("session not reset: %#v", snap)
	}
}

func TestEmptyQuestionIsIgnored(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{}
	gateway := &fakeGateway{err: errors.New("down")}
	s := newTestSession(t, catalog, gateway)
	_ = s.RunAgent(context.Background(), "q")

	for _, q := range []string{"", "   ", "\n\t"} {
		if err := s.RunAgent(context.Background(), q); err != nil {
			t.Fatalf("RunAgent(%q) error = %v", q, err)
		}
		if err := s.RunImslpAgent(context.Background(), q); err != nil {
			t.Fatalf("RunImslpAgent(%q) error = %v", q, err)
		}
	}

	if got := catalog.callCount(); got != 1 {
		t.Fatalf("catalog calls = %d, want 1", got)
	}
	if snap := s.Snapshot(); snap.State != StateFailed || snap.Err == "" {
		t.Fatalf("empty question changed state: %#v", snap)
	}
}

func TestOverlappingTurnIsRejected(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{
		responses: []*scoreapi.FullResponse{{Response: scoreapi.Response{Response: "slow"}, MessageHistory: fragments(t, `1`)}},
		entered:   make(chan struct{}, 1),
		release:   make(chan struct{}),
	}
	s := newTestSession(t, &fakeCatalog{}, gateway)

	done := make(chan error, 1)
	go func() {
		done <- s.RunAgent(context.Background(), "first")
	}()

	select {
	case <-gateway.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("first turn never reached the agent")
	}
	if got := s.Snapshot().State; got != StateRunning {
		t.Fatalf("State = %s, want running", got)
	}

	if err := s.RunAgent(context.Background(), "second"); !errors.Is(err, ErrTurnInFlight) {
		t.Fatalf("RunAgent() error = %v, want ErrTurnInFlight", err)
	}
	if err := s.RunImslpAgent(context.Background(), "second"); !errors.Is(err, ErrTurnInFlight) {
		t.Fatalf("RunImslpAgent() error = %v, want ErrTurnInFlight", err)
	}

	close(gateway.release)
	if err := <-done; err != nil {
		t.Fatalf("first turn error = %v", err)
	}
	if snap := s.Snapshot(); len(snap.History) != 1 || snap.State != StateIdle {
		t.Fatalf("unexpected snapshot: %#v", snap)
	}
}

func TestCleanHistoryDuringTurnDropsResult(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{
		responses: []*scoreapi.FullResponse{{Response: scoreapi.Response{Response: "late"}, MessageHistory: fragments(t, `1`, `2`)}},
		entered:   make(chan struct{}, 1),
		release:   make(chan struct{}),
	}
	s := newTestSession(t, &fakeCatalog{}, gateway)

	done := make(chan error, 1)
	go func() {
		done <- s.RunAgent(context.Background(), "q")
	}()
	select {
	case <-gateway.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("turn never reached the agent")
	}

	s.CleanHistory()
	close(gateway.release)
	if err := <-done; err != nil {
		t.Fatalf("RunAgent() error = %v", err)
	}

	snap := s.Snapshot()
	if len(snap.History) != 0 || snap.Reply != nil || snap.State != StateIdle {
		t.Fatalf("stale turn leaked into session: %#v", snap)
	}
}

func TestImslpTurnSharesHistoryAndNeverResolves(t *testing.T) {
	t.Parallel()

	events := &eventLog{}
	catalog := &fakeCatalog{catalogs: [][]scoreapi.Score{{score(4, "x")}}, events: events}
	gateway := &fakeGateway{
		responses: []*scoreapi.FullResponse{
			{Response: scoreapi.Response{Response: "Chopin", ScoreID: id(4)}, MessageHistory: fragments(t, `"a"`)},
		},
		imslp: []*scoreapi.ImslpFullResponse{
			{Response: scoreapi.ImslpResponse{Response: "Found two", ScoreIDs: []int64{4, 8}}, MessageHistory: fragments(t, `"b"`, `"c"`)},
		},
		events: events,
	}
	s := newTestSession(t, catalog, gateway)

	if err := s.RunAgent(context.Background(), "score?"); err != nil {
		t.Fatalf("RunAgent() error = %v", err)
	}
	if s.Snapshot().Resolved == nil {
		t.Fatal("agent turn must resolve")
	}

	if err := s.RunImslpAgent(context.Background(), "imslp?"); err != nil {
		t.Fatalf("RunImslpAgent() error = %v", err)
	}

	snap := s.Snapshot()
	if snap.Resolved != nil {
		t.Fatalf("Resolved = %#v, want nil after imslp turn", snap.Resolved)
	}
	if encode(snap.History) != `["a","b","c"]` {
		t.Fatalf("history = %s", encode(snap.History))
	}
	if snap.Reply == nil || snap.Reply.Kind != contractx.TurnKindImslp || len(snap.Reply.ImslpScoreIDs) != 2 {
		t.Fatalf("Reply = %#v", snap.Reply)
	}

	calls := gateway.callsSnapshot()
	if calls[1].history != `["a"]` {
		t.Fatalf("imslp call history = %s", calls[1].history)
	}
	if got := events.String(); got != "catalog,agent,catalog,imslp" {
		t.Fatalf("events = %s", got)
	}
}

func TestTurnOrdering(t *testing.T) {
	t.Parallel()

	events := &eventLog{}
	catalog := &fakeCatalog{catalogs: [][]scoreapi.Score{{score(1, "x")}}, events: events}
	gateway := &fakeGateway{
		responses: []*scoreapi.FullResponse{
			{Response: scoreapi.Response{Response: "r", ScoreID: id(1)}},
		},
		events: events,
	}
	s := newTestSession(t, catalog, gateway)

	if err := s.RunAgent(context.Background(), "q"); err != nil {
		t.Fatalf("RunAgent() error = %v", err)
	}
	if got := events.String(); got != "catalog,agent,catalog" {
		t.Fatalf("events = %s, want catalog,agent,catalog", got)
	}
	if calls := gateway.callsSnapshot(); calls[0].catalogLen != 1 || calls[0].question != "q" {
		t.Fatalf("unexpected agent call: %#v", calls[0])
	}
}

func TestJournalRecordsTurns(t *testing.T) {
	t.Parallel()

	journal := &fakeJournal{err: errors.New("journal offline")}
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	gateway := &fakeGateway{responses: []*scoreapi.FullResponse{
		{Response: scoreapi.Response{Response: "Chopin", ScoreID: id(4)}, MessageHistory: fragments(t, `{}`)},
	}}
	catalog := &fakeCatalog{catalogs: [][]scoreapi.Score{{score(4, "x")}}}
	s := newTestSession(t, catalog, gateway,
		WithJournal(journal),
		WithID("session-1"),
		WithClock(func() time.Time { return now }),
	)

	if err := s.RunAgent(context.Background(), "q1"); err != nil {
		t.Fatalf("RunAgent() error = %v", err)
	}
	gateway.mu.Lock()
	gateway.err = errors.New("down")
	gateway.mu.Unlock()
	_ = s.RunAgent(context.Background(), "q2")

	journal.mu.Lock()
	defer journal.mu.Unlock()
	if len(journal.entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(journal.entries))
	}
	first, second := journal.entries[0], journal.entries[1]
	if first.SessionID != "session-1" || first.Kind != contractx.TurnKindAgent || !first.Resolved || first.HistoryLen != 1 || !first.At.Equal(now) {
		t.Fatalf("unexpected first entry: %#v", first)
	}
	if !second.Failed || second.Question != "q2" || second.HistoryLen != 1 {
		t.Fatalf("unexpected second entry: %#v", second)
	}
	if s.ID() != "session-1" {
		t.Fatalf("ID() = %q", s.ID())
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, &fakeGateway{}); err == nil {
		t.Fatal("expected error for nil catalog")
	}
	if _, err := New(&fakeCatalog{}, nil); err == nil {
		t.Fatal("expected error for nil gateway")
	}
	s, err := New(&fakeCatalog{}, &fakeGateway{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if s.ID() == "" {
		t.Fatal("session id is empty")
	}
}

func TestLogLinesCarrySingleComponentField(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Str("component", "session").Logger()
	gateway := &fakeGateway{responses: []*scoreapi.FullResponse{
		{Response: scoreapi.Response{Response: "ok"}},
	}}
	s := newTestSession(t, &fakeCatalog{}, gateway, WithLogger(logger))

	if err := s.RunAgent(context.Background(), "hello"); err != nil {
		t.Fatalf("RunAgent() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) == 0 || lines[0] == "" {
		t.Fatal("expected at least one log line")
	}
	for _, line := range lines {
		if n := strings.Count(line, `"component":`); n != 1 {
			t.Fatalf("component appears %d times in %s", n, line)
		}
		if !strings.Contains(line, `"session_id":"`+s.ID()+`"`) {
			t.Fatalf("session_id missing in %s", line)
		}
	}
}
