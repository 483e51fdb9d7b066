package turnnode

import (
	"fmt"
	"slices"
	"strings"

	contractx "github.com/tanpawarit/scoreai-client/agent/contract"
	"github.com/tanpawarit/scoreai-client/pkg/scoreapi"
)

func Prepare(in GraphInput) (*GraphState, error) {
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", contractx.ErrValidation)
	}
	history := slices.Clip(in.History)
	if history == nil {
		history = []scoreapi.HistoryFragment{}
	}
	return &GraphState{
		Question: question,
		History:  history,
	}, nil
}
