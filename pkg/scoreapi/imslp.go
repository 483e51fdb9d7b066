package scoreapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ImslpScoresByIDs resolves the score ids returned by the IMSLP agent.
func (c *Client) ImslpScoresByIDs(ctx context.Context, ids []int64) ([]ImslpEntry, error) {
	if ids == nil {
		ids = []int64{}
	}
	encoded, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("marshal imslp score ids: %w", err)
	}

	var entries []ImslpEntry
	err = c.do(ctx, request{
		method: http.MethodGet,
		path:   "/imslp/scores_by_ids",
		query:  url.Values{"score_ids": {string(encoded)}},
	}, &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// StartImslpUpdate starts a background scrape of at most maxPages pages.
func (c *Client) StartImslpUpdate(ctx context.Context, maxPages int) error {
	if maxPages <= 0 {
		return fmt.Errorf("%w: max pages must be > 0", ErrValidation)
	}
	return c.doJSON(ctx, http.MethodPost, "/imslp/start/"+strconv.Itoa(maxPages), nil, nil)
}

func (c *Client) ImslpProgress(ctx context.Context) (*ImslpProgress, error) {
	var progress ImslpProgress
	if err := c.doJSON(ctx, http.MethodPost, "/imslp/progress", nil, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

func (c *Client) CancelImslpUpdate(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/imslp/cancel", nil, nil)
}

func (c *Client) ImslpStats(ctx context.Context) (*ImslpStats, error) {
	var stats ImslpStats
	if err := c.doJSON(ctx, http.MethodGet, "/imslp/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) EmptyImslp(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/imslp/empty", nil, nil)
}
