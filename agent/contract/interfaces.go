package contract

import (
	"context"

	"github.com/tanpawarit/scoreai-client/pkg/scoreapi"
)

// ScoreLister is the part of the remote gateway the catalog reads from.
type ScoreLister interface {
	ListScores(ctx context.Context) ([]scoreapi.Score, error)
}

// Catalog returns a fresh snapshot of the caller's scores on every call.
type Catalog interface {
	Fetch(ctx context.Context) ([]scoreapi.Score, error)
}

type AgentGateway interface {
	RunAgent(ctx context.Context, question string, catalog []scoreapi.Score, history []scoreapi.HistoryFragment) (*scoreapi.FullResponse, error)
	RunImslpAgent(ctx context.Context, question string, history []scoreapi.HistoryFragment) (*scoreapi.ImslpFullResponse, error)
}

type TurnJournal interface {
	Record(ctx context.Context, entry JournalEntry) error
}
