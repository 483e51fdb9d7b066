package scoreapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

func (c *Client) ListScores(ctx context.Context) ([]Score, error) {
	var scores []Score
	if err := c.doJSON(ctx, http.MethodGet, "/scores", nil, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

// AddScore creates a score and returns it with the id assigned remotely.
func (c *Client) AddScore(ctx context.Context, score Score) (*Score, error) {
	if score.HasID() {
		return nil, fmt.Errorf("%w: new score must not carry an id", ErrValidation)
	}
	if err := c.validateStruct(score); err != nil {
		return nil, err
	}

	var created Score
	if err := c.doJSON(ctx, http.MethodPost, "/scores", score, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CompleteScore asks the remote service to fill in descriptive fields of a
// score from its title and composer.
func (c *Client) CompleteScore(ctx context.Context, score Score) (*Score, error) {
	if err := c.validateStruct(score); err != nil {
		return nil, err
	}

	var completed Score
	if err := c.doJSON(ctx, http.MethodPost, "/complete_score", score, &completed); err != nil {
		return nil, err
	}
	return &completed, nil
}

func (c *Client) DeleteScoreRecord(ctx context.Context, scoreID int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/scores/"+strconv.FormatInt(scoreID, 10), nil, nil)
}

func (c *Client) DeletePDF(ctx context.Context, fileID string) error {
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return ErrMissingFile
	}
	return c.doJSON(ctx, http.MethodDelete, "/pdf/"+url.PathEscape(fileID), nil, nil)
}

// DeleteScore removes the score record when it has an id and its document
// when it has a pdf path. The two calls are independent: a failure of one
// neither stops nor undoes the other.
func (c *Client) DeleteScore(ctx context.Context, score Score) DeleteOutcome {
	var out DeleteOutcome

	if score.ID != nil {
		out.RecordAttempted = true
		out.RecordErr = c.DeleteScoreRecord(ctx, *score.ID)
		if out.RecordErr != nil {
			c.log.Warn().Err(out.RecordErr).Int64("score_id", *score.ID).Msg("delete score record failed")
		}
	}

	if strings.TrimSpace(score.PDFPath) != "" {
		out.DocumentAttempted = true
		out.DocumentErr = c.DeletePDF(ctx, score.PDFPath)
		if out.DocumentErr != nil {
			c.log.Warn().Err(out.DocumentErr).Str("pdf_path", score.PDFPath).Msg("delete score document failed")
		}
	}

	return out
}

// AddPlay records one play of a score. The returned score is nil when the
// remote service did not find it among the caller's scores.
func (c *Client) AddPlay(ctx context.Context, scoreID int64) (*Score, error) {
	var updated *Score
	path := "/scores/" + strconv.FormatInt(scoreID, 10) + "/play"
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}
