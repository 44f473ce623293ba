package model

import (
	"encoding/json"
	"time"
)

// RecognizeRequest represents a recognition request against the API
type RecognizeRequest struct {
	Query   string            `json:"query" binding:"required"`
	Options *RecognizeOptions `json:"options,omitempty"`
}

// RecognizeOptions carries the optional per-request upstream parameters.
// Unset fields fall back to the configured defaults.
type RecognizeOptions struct {
	Verbose        *bool    `json:"verbose,omitempty"`
	SpellCheck     *bool    `json:"spell_check,omitempty"`
	Staging        *bool    `json:"staging,omitempty"`
	TimezoneOffset *float64 `json:"timezone_offset,omitempty"`
}

// RecognizeResponse represents a normalized recognition result
type RecognizeResponse struct {
	Query        string        `json:"query"`
	AlteredQuery string        `json:"altered_query,omitempty"`
	TopIntent    string        `json:"top_intent"`
	TopScore     float64       `json:"top_score"`
	Intents      []IntentScore `json:"intents"`
	Entities     []EntityMatch `json:"entities,omitempty"`
	Took         int64         `json:"took_ms"`
}

// IntentScore is one recognized intent with its confidence
type IntentScore struct {
	Intent string  `json:"intent"`
	Score  float64 `json:"score"`
}

// EntityMatch is one recognized entity span
type EntityMatch struct {
	Entity string   `json:"entity"`
	Type   string   `json:"type"`
	Score  *float64 `json:"score,omitempty"`
}

// Utterance is one logged recognition
type Utterance struct {
	ID             int64           `db:"id" json:"id"`
	Query          string          `db:"query" json:"query"`
	TopIntent      string          `db:"top_intent" json:"top_intent"`
	TopScore       float64         `db:"top_score" json:"top_score"`
	Intents        json.RawMessage `db:"intents" json:"intents"`
	ResponseTimeMs int             `db:"response_time_ms" json:"response_time_ms"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// UtteranceListResponse is a paginated utterance-log page
type UtteranceListResponse struct {
	Utterances []Utterance `json:"utterances"`
	Total      int         `json:"total"`
	Limit      int         `json:"limit"`
	Offset     int         `json:"offset"`
}

// IntentStats aggregates logged recognitions per intent
type IntentStats struct {
	Intent   string  `db:"top_intent" json:"intent"`
	Count    int     `db:"count" json:"count"`
	AvgScore float64 `db:"avg_score" json:"avg_score"`
}
