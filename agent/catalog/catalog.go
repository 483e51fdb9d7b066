// Package catalog fetches the score catalog visible to the current user.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/scoreai-client/agent/contract"
	logx "github.com/tanpawarit/scoreai-client/pkg/logger"
	"github.com/tanpawarit/scoreai-client/pkg/scoreapi"
)

var _ contractx.Catalog = (*Accessor)(nil)

// Accessor returns a point-in-time snapshot of the catalog. Every Fetch is a
// separate remote call; concurrent callers are not coalesced.
type Accessor struct {
	lister contractx.ScoreLister
	log    zerolog.Logger
}

func New(lister contractx.ScoreLister) (*Accessor, error) {
	if lister == nil {
		return nil, errors.New("score lister is required")
	}
	return &Accessor{
		lister: lister,
		log:    logx.Component("catalog"),
	}, nil
}

func (a *Accessor) Fetch(ctx context.Context) ([]scoreapi.Score, error) {
	scores, err := a.lister.ListScores(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	if scores == nil {
		scores = []scoreapi.Score{}
	}
	a.log.Debug().Int("scores", len(scores)).Msg("catalog fetched")
	return scores, nil
}

// ResetCache is a hook for a future cache. Fetch never caches, so it does
// nothing today.
func (a *Accessor) ResetCache() {}

// Find returns the first score in catalog order whose id equals id.
func Find(scores []scoreapi.Score, id int64) (scoreapi.Score, bool) {
	for _, s := range scores {
		if s.ID != nil && *s.ID == id {
			return s, true
		}
	}
	return scoreapi.Score{}, false
}
