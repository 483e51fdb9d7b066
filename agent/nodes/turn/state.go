package turnnode

import (
	contractx "github.com/tanpawarit/scoreai-client/agent/contract"
	"github.com/tanpawarit/scoreai-client/pkg/scoreapi"
)

type GraphInput struct {
	Question string
	History  []scoreapi.HistoryFragment
}

// GraphState is threaded through every node of one turn. History is the
// session's history as of turn start and is never modified here.
type GraphState struct {
	Question string
	History  []scoreapi.HistoryFragment
	Catalog  []scoreapi.Score
	Result   contractx.TurnResult
}

type GraphOutput = contractx.TurnResult
