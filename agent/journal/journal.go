// Package journal keeps an append-only log of agent turns in Postgres. The
// session writes to it and never reads it back.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/scoreai-client/agent/contract"
	logx "github.com/tanpawarit/scoreai-client/pkg/logger"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

var _ contractx.TurnJournal = (*Postgres)(nil)
var _ contractx.TurnJournal = Noop{}

type Config struct {
	DSN         string        `envconfig:"DSN" split_words:"true"`
	TablePrefix string        `envconfig:"TABLE_PREFIX" split_words:"true" default:"scoreai_"`
	Timeout     time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"5s"`
}

// Enabled reports whether a DSN was configured.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.DSN) != ""
}

type TurnRecord struct {
	bun.BaseModel `bun:"table:agent_turns,alias:t"`

	ID         int64     `bun:"id,pk,autoincrement"`
	SessionID  string    `bun:"session_id,notnull"`
	Kind       string    `bun:"kind,notnull"`
	Question   string    `bun:"question,notnull"`
	Response   string    `bun:"response"`
	ScoreID    *int64    `bun:"score_id"`
	Resolved   bool      `bun:"resolved,notnull"`
	Failed     bool      `bun:"failed,notnull"`
	HistoryLen int       `bun:"history_len,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
}

func recordFrom(entry contractx.JournalEntry) *TurnRecord {
	at := entry.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return &TurnRecord{
		SessionID:  entry.SessionID,
		Kind:       string(entry.Kind),
		Question:   entry.Question,
		Response:   entry.Response,
		ScoreID:    entry.ScoreID,
		Resolved:   entry.Resolved,
		Failed:     entry.Failed,
		HistoryLen: entry.HistoryLen,
		CreatedAt:  at.UTC(),
	}
}

// Postgres writes turn records with bun.
type Postgres struct {
	db      *bun.DB
	table   string
	timeout time.Duration
	log     zerolog.Logger
}

// Open prepares a connection pool. No connection is made until first use.
func Open(cfg Config) (*Postgres, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("journal dsn is required")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return newPostgres(bun.NewDB(sqldb, pgdialect.New()), cfg), nil
}

func newPostgres(db *bun.DB, cfg Config) *Postgres {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Postgres{
		db:      db,
		table:   strings.TrimSpace(cfg.TablePrefix) + "agent_turns",
		timeout: timeout,
		log:     logx.Component("journal"),
	}
}

func (p *Postgres) CreateSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if _, err := p.createTableQuery().Exec(ctx); err != nil {
		return fmt.Errorf("create journal table: %w", err)
	}
	return nil
}

func (p *Postgres) Record(ctx context.Context, entry contractx.JournalEntry) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	rec := recordFrom(entry)
	if _, err := p.insertQuery(rec).Exec(ctx); err != nil {
		return fmt.Errorf("insert journal record: %w", err)
	}
	p.log.Debug().Int64("id", rec.ID).Str("session_id", rec.SessionID).Msg("turn recorded")
	return nil
}

// Recent returns the latest records of a session, newest first.
func (p *Postgres) Recent(ctx context.Context, sessionID string, limit int) ([]TurnRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var records []TurnRecord
	if err := p.recentQuery(&records, sessionID, limit).Scan(ctx); err != nil {
		return nil, fmt.Errorf("select journal records: %w", err)
	}
	return records, nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) createTableQuery() *bun.CreateTableQuery {
	return p.db.NewCreateTable().
		Model((*TurnRecord)(nil)).
		ModelTableExpr("?", bun.Ident(p.table)).
		IfNotExists()
}

func (p *Postgres) insertQuery(rec *TurnRecord) *bun.InsertQuery {
	return p.db.NewInsert().
		Model(rec).
		ModelTableExpr("?", bun.Ident(p.table)).
		Returning("id")
}

func (p *Postgres) recentQuery(dst *[]TurnRecord, sessionID string, limit int) *bun.SelectQuery {
	return p.db.NewSelect().
		Model(dst).
		ModelTableExpr("? AS t", bun.Ident(p.table)).
		Where("t.session_id = ?", sessionID).
		OrderExpr("t.id DESC").
		Limit(limit)
}

// Noop drops every record.
type Noop struct{}

func (Noop) Record(context.Context, contractx.JournalEntry) error {
	return nil
}
