package contract

import (
	"time"

	"github.com/tanpawarit/scoreai-client/pkg/scoreapi"
)

type TurnKind string

const (
	TurnKindAgent TurnKind = "agent"
	TurnKindImslp TurnKind = "imslp"
)

// Reply is the last agent answer held by a session.
type Reply struct {
	Kind          TurnKind `json:"kind"`
	Text          string   `json:"text"`
	ScoreID       *int64   `json:"score_id,omitempty"`
	ImslpScoreIDs []int64  `json:"imslp_score_ids,omitempty"`
}

// TurnResult is everything a successful turn hands back to the session for
// a single commit.
type TurnResult struct {
	Reply    Reply
	Appended []scoreapi.HistoryFragment
	Resolved *scoreapi.Score
}

type JournalEntry struct {
	SessionID  string
	Kind       TurnKind
	Question   string
	Response   string
	ScoreID    *int64
	Resolved   bool
	Failed     bool
	HistoryLen int
	At         time.Time
}
