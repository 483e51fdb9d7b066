package turnnode

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/tanpawarit/scoreai-client/agent/contract"
)

func InvokeAgent(ctx context.Context, in *GraphState, gateway contractx.AgentGateway) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	out, err := gateway.RunAgent(ctx, in.Question, in.Catalog, in.History)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errors.New("agent returned no response")
	}

	in.Result.Reply = contractx.Reply{
		Kind:    contractx.TurnKindAgent,
		Text:    out.Response.Response,
		ScoreID: out.Response.ScoreID,
	}
	in.Result.Appended = out.MessageHistory
	return in, nil
}

func InvokeImslpAgent(ctx context.Context, in *GraphState, gateway contractx.AgentGateway) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	out, err := gateway.RunImslpAgent(ctx, in.Question, in.History)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errors.New("imslp agent returned no response")
	}

	in.Result.Reply = contractx.Reply{
		Kind:          contractx.TurnKindImslp,
		Text:          out.Response.Response,
		ImslpScoreIDs: out.Response.ScoreIDs,
	}
	in.Result.Appended = out.MessageHistory
	return in, nil
}
