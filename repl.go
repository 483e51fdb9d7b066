package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/tanpawarit/scoreai-client/agent/journal"
	"github.com/tanpawarit/scoreai-client/agent/session"
	"github.com/tanpawarit/scoreai-client/pkg/scoreapi"
)

type conversation interface {
	RunAgent(ctx context.Context, question string) error
	RunImslpAgent(ctx context.Context, question string) error
	CleanHistory()
	Snapshot() session.Snapshot
}

type scoreService interface {
	ListScores(ctx context.Context) ([]scoreapi.Score, error)
	AddPlay(ctx context.Context, scoreID int64) (*scoreapi.Score, error)
	PDFViewerURL(fileID string) string
}

type turnLog interface {
	Recent(ctx context.Context, sessionID string, limit int) ([]journal.TurnRecord, error)
}

const journalLimit = 10

type command struct {
	name string
	arg  string
}

func parseCommand(line string) command {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return command{name: "ask", arg: line}
	}
	name, arg, _ := strings.Cut(line[1:], " ")
	return command{name: strings.ToLower(name), arg: strings.TrimSpace(arg)}
}

type repl struct {
	conv   conversation
	scores scoreService
	turns  turnLog
	out    io.Writer

	prompt *color.Color
	answer *color.Color
	score  *color.Color
	warn   *color.Color
}

// newREPL builds the loop. turns may be nil when no journal is configured.
func newREPL(conv conversation, scores scoreService, turns turnLog, out io.Writer) *repl {
	return &repl{
		conv:   conv,
		scores: scores,
		turns:  turns,
		out:    out,
		prompt: color.New(color.FgCyan, color.Bold),
		answer: color.New(color.FgWhite),
		score:  color.New(color.FgGreen),
		warn:   color.New(color.FgYellow),
	}
}

var errQuit = errors.New("quit")

func (r *repl) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		r.prompt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := r.handle(ctx, parseCommand(scanner.Text())); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			r.warn.Fprintln(r.out, err.Error())
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (r *repl) handle(ctx context.Context, cmd command) error {
	switch cmd.name {
	case "ask":
		if cmd.arg == "" {
			return nil
		}
		if err := r.conv.RunAgent(ctx, cmd.arg); err != nil {
			return err
		}
		r.render()
	case "imslp":
		if cmd.arg == "" {
			return errors.New("usage: /imslp <question>")
		}
		if err := r.conv.RunImslpAgent(ctx, cmd.arg); err != nil {
			return err
		}
		r.render()
	case "scores":
		scores, err := r.scores.ListScores(ctx)
		if err != nil {
			return err
		}
		for _, s := range scores {
			r.score.Fprintf(r.out, "%s %s - %s\n", idLabel(s.ID), s.Composer, s.Title)
		}
	case "clear":
		r.conv.CleanHistory()
		fmt.Fprintln(r.out, "history cleared")
	case "pdf":
		resolved := r.conv.Snapshot().Resolved
		if resolved == nil || resolved.PDFPath == "" {
			return errors.New("no score with a document is selected")
		}
		fmt.Fprintln(r.out, r.scores.PDFViewerURL(resolved.PDFPath))
	case "play":
		resolved := r.conv.Snapshot().Resolved
		if resolved == nil || !resolved.HasID() {
			return errors.New("no score is selected")
		}
		updated, err := r.scores.AddPlay(ctx, *resolved.ID)
		if err != nil {
			return err
		}
		if updated != nil {
			r.score.Fprintf(r.out, "%s played %d times\n", updated.Title, updated.NumberOfPlays)
		}
	case "journal":
		if r.turns == nil {
			return errors.New("turn journal is not configured")
		}
		records, err := r.turns.Recent(ctx, r.conv.Snapshot().ID, journalLimit)
		if err != nil {
			return err
		}
		for _, rec := range records {
			status := "ok"
			if rec.Failed {
				status = "failed"
			}
			fmt.Fprintf(r.out, "%s %-5s %-6s %s\n", rec.CreatedAt.Format("15:04:05"), rec.Kind, status, rec.Question)
		}
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command /%s", cmd.name)
	}
	return nil
}

func (r *repl) render() {
	snap := r.conv.Snapshot()
	if snap.Reply == nil {
		return
	}
	r.answer.Fprintln(r.out, snap.Reply.Text)
	if snap.Resolved != nil {
		r.score.Fprintf(r.out, "-> %s %s - %s\n", idLabel(snap.Resolved.ID), snap.Resolved.Composer, snap.Resolved.Title)
	}
	if len(snap.Reply.ImslpScoreIDs) > 0 {
		r.score.Fprintf(r.out, "-> IMSLP scores %v\n", snap.Reply.ImslpScoreIDs)
	}
}

func idLabel(id *int64) string {
	if id == nil {
		return "[-]"
	}
	return fmt.Sprintf("[%d]", *id)
}
