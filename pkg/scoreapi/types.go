package scoreapi

import (
	"bytes"
	"encoding/json"
)

type User struct {
	ID        *int64 `json:"id,omitempty"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	FullName  string `json:"full_name,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Disabled  bool   `json:"disabled,omitempty"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Score is a score record. ID stays nil until the remote service assigns it.
type Score struct {
	ID                  *int64 `json:"id,omitempty"`
	Title               string `json:"title" validate:"required"`
	Composer            string `json:"composer" validate:"required"`
	Year                int    `json:"year,omitempty" validate:"omitempty,gt=0,pastyear"`
	Period              string `json:"period,omitempty"`
	Genre               string `json:"genre,omitempty"`
	Form                string `json:"form,omitempty"`
	ShortDescription    string `json:"short_description,omitempty"`
	LongDescription     string `json:"long_description,omitempty"`
	YoutubeURL          string `json:"youtube_url,omitempty"`
	Difficulty          string `json:"difficulty,omitempty" validate:"omitempty,oneof=easy moderate intermediate advanced expert"`
	DifficultyInt       int    `json:"difficulty_int,omitempty"`
	NotableInterpreters string `json:"notable_interpreters,omitempty"`
	Instrumentation     string `json:"instrumentation,omitempty"`
	PDFPath             string `json:"pdf_path,omitempty"`
	NumberOfPlays       int    `json:"number_of_plays,omitempty"`
	UserID              *int64 `json:"user_id,omitempty"`
}

// HasID reports whether the score was persisted remotely.
func (s Score) HasID() bool {
	return s.ID != nil
}

// Scores is the dependency payload shape expected by the agent endpoint.
type Scores struct {
	Scores []Score `json:"scores"`
}

type Response struct {
	Response string `json:"response"`
	ScoreID  *int64 `json:"score_id,omitempty"`
}

type FullResponse struct {
	Response       Response          `json:"response"`
	MessageHistory []HistoryFragment `json:"message_history"`
}

type ImslpResponse struct {
	Response string  `json:"response"`
	ScoreIDs []int64 `json:"score_ids,omitempty"`
}

type ImslpFullResponse struct {
	Response       ImslpResponse     `json:"response"`
	MessageHistory []HistoryFragment `json:"message_history"`
}

// HistoryFragment is one opaque message of an agent conversation. Its content
// is kept as received and only ever forwarded back to the remote service.
type HistoryFragment struct {
	raw json.RawMessage
}

func (f HistoryFragment) MarshalJSON() ([]byte, error) {
	if len(f.raw) == 0 {
		return []byte("null"), nil
	}
	return f.raw, nil
}

func (f *HistoryFragment) UnmarshalJSON(data []byte) error {
	f.raw = bytes.Clone(data)
	return nil
}

type ImslpEntry struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Composer        string `json:"composer"`
	Instrumentation string `json:"instrumentation"`
	Style           string `json:"style"`
	Period          string `json:"period"`
	Year            string `json:"year"`
	Key             string `json:"key"`
	Permlink        string `json:"permlink"`
	ScoreMetadata   string `json:"score_metadata"`
	PDFURLs         string `json:"pdf_urls"`
}

type ImslpProgress struct {
	Status          string `json:"status"`
	Page            int    `json:"page"`
	CancelRequested bool   `json:"cancel_requested"`
}

type ImslpStats struct {
	TotalWorks     int `json:"total_works"`
	TotalComposers int `json:"total_composers"`
}

type UploadedDocument struct {
	Message string `json:"message"`
	FileID  string `json:"file_id"`
}

// DeleteOutcome reports the two halves of DeleteScore independently.
type DeleteOutcome struct {
	RecordAttempted   bool
	RecordErr         error
	DocumentAttempted bool
	DocumentErr       error
}

func (o DeleteOutcome) RecordDeleted() bool {
	return o.RecordAttempted && o.RecordErr == nil
}

func (o DeleteOutcome) DocumentDeleted() bool {
	return o.DocumentAttempted && o.DocumentErr == nil
}
