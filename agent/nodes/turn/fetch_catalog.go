package turnnode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/scoreai-client/agent/contract"
)

// FetchCatalog loads the dependency payload sent along with the question.
func FetchCatalog(ctx context.Context, in *GraphState, catalog contractx.Catalog) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	scores, err := catalog.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	in.Catalog = scores
	return in, nil
}
