package turnnode

import (
	"fmt"

	contractx "github.com/tanpawarit/scoreai-client/agent/contract"
	"github.com/tanpawarit/scoreai-client/pkg/scoreapi"
)

func FinalizeTurn(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	out := in.Result
	if out.Appended == nil {
		out.Appended = []scoreapi.HistoryFragment{}
	}
	return out, nil
}
