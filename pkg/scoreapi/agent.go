package scoreapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// RunAgent asks the score agent a question. The catalog is sent as grounding
// context and history is forwarded verbatim.
func (c *Client) RunAgent(ctx context.Context, question string, catalog []Score, history []HistoryFragment) (*FullResponse, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question is required", ErrValidation)
	}

	if catalog == nil {
		catalog = []Score{}
	}
	deps, err := json.Marshal(Scores{Scores: catalog})
	if err != nil {
		return nil, fmt.Errorf("marshal agent deps: %w", err)
	}
	query, err := agentQuery(question, history)
	if err != nil {
		return nil, err
	}
	query.Set("deps", string(deps))

	var out FullResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/agent", query: query}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RunImslpAgent asks the IMSLP lookup agent a question. It needs no catalog.
func (c *Client) RunImslpAgent(ctx context.Context, question string, history []HistoryFragment) (*ImslpFullResponse, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question is required", ErrValidation)
	}

	query, err := agentQuery(question, history)
	if err != nil {
		return nil, err
	}

	var out ImslpFullResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/imslp_agent", query: query}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func agentQuery(question string, history []HistoryFragment) (url.Values, error) {
	if history == nil {
		history = []HistoryFragment{}
	}
	encoded, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("marshal message history: %w", err)
	}

	query := url.Values{}
	query.Set("prompt", question)
	query.Set("message_history", string(encoded))
	return query, nil
}
