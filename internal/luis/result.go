package luis

import "encoding/json"

// NoneIntent is the sentinel intent name used when the top scoring intent
// does not clear the model threshold.
const NoneIntent = "None"

// Intent is a recognized user goal with its confidence score.
type Intent struct {
	Intent string  `json:"intent"`
	Score  float64 `json:"score"`
}

// Entity is a span of the query recognized as a typed value. Resolution
// is provider-specific and passed through undecoded.
type Entity struct {
	Entity     string          `json:"entity"`
	Type       string          `json:"type"`
	StartIndex *int            `json:"startIndex,omitempty"`
	EndIndex   *int            `json:"endIndex,omitempty"`
	Score      *float64        `json:"score,omitempty"`
	Resolution json.RawMessage `json:"resolution,omitempty"`
}

// Result is the recognition outcome for one query. Fields beyond the
// intent list are carried through from the upstream response untouched;
// only the intent list and the top scoring intent are normalized.
type Result struct {
	Query             string          `json:"query"`
	AlteredQuery      string          `json:"alteredQuery,omitempty"`
	TopScoringIntent  *Intent         `json:"topScoringIntent,omitempty"`
	Intents           []Intent        `json:"intents,omitempty"`
	Entities          []Entity        `json:"entities,omitempty"`
	SentimentAnalysis json.RawMessage `json:"sentimentAnalysis,omitempty"`
}
