// Package luis implements a client for the LUIS natural language
// understanding REST API. It renders query URLs across the two supported
// API generations, issues the GET request, and normalizes the recognition
// result (intent-list backfill and score-threshold override) before
// handing it to the caller.
package luis

import "fmt"

// APIVersion identifies the upstream API generation a model is published
// against. Exactly two generations exist; anything else is rejected when
// a URL is rendered.
type APIVersion string

const (
	// V1 is the legacy API: the app ID travels as an `id` query parameter
	// and the endpoint path is used as-is.
	V1 APIVersion = "v1"
	// V2 is the current API: the app ID is appended to the endpoint path
	// as a segment.
	V2 APIVersion = "v2"
)

// ParseAPIVersion converts a configuration string into an APIVersion.
func ParseAPIVersion(s string) (APIVersion, error) {
	switch APIVersion(s) {
	case V1:
		return V1, nil
	case V2:
		return V2, nil
	default:
		return "", &UnsupportedVersionError{Version: APIVersion(s)}
	}
}

// Model holds the published application identity queried by the client:
// credentials, endpoint, API generation and the confidence threshold used
// for the "None" override. Read-only once constructed.
type Model struct {
	// AppID is the published application ID.
	AppID string
	// SubscriptionKey authorizes requests against the endpoint.
	SubscriptionKey string
	// Endpoint is the base URI, e.g.
	// "https://westus.api.cognitive.microsoft.com/luis/v2.0/apps/".
	// For V2 the app ID is appended to it as a path segment.
	Endpoint string
	// Version selects which API generation URLs are built for.
	Version APIVersion
	// Threshold is the minimum top-intent score. Results scoring at or
	// below it are rewritten to the "None" sentinel.
	Threshold float64
}

func (m Model) String() string {
	return fmt.Sprintf("luis model %s (%s)", m.AppID, m.Version)
}
