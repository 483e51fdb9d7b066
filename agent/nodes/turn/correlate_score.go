package turnnode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	catalogx "github.com/tanpawarit/scoreai-client/agent/catalog"
	contractx "github.com/tanpawarit/scoreai-client/agent/contract"
)

// CorrelateScore resolves the score id named by the agent against a freshly
// fetched catalog. A missing id, a failed fetch or a deleted score all leave
// the resolved score empty; none of them fail the turn.
func CorrelateScore(
	ctx context.Context,
	in *GraphState,
	catalog contractx.Catalog,
	logger zerolog.Logger,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	in.Result.Resolved = nil
	scoreID := in.Result.Reply.ScoreID
	if scoreID == nil {
		return in, nil
	}

	scores, err := catalog.Fetch(ctx)
	if err != nil {
		logger.Warn().Err(err).Int64("score_id", *scoreID).Msg("catalog refetch failed, score left unresolved")
		return in, nil
	}

	score, ok := catalogx.Find(scores, *scoreID)
	if !ok {
		logger.Debug().Int64("score_id", *scoreID).Int("catalog", len(scores)).Msg("score id not in catalog")
		return in, nil
	}
	in.Result.Resolved = &score
	return in, nil
}
