package luis

import (
	"net/url"
	"strconv"
	"strings"
)

// Request carries the query text plus the optional upstream parameters.
// Flags are tri-state: a nil pointer means "unset" and the parameter is
// omitted from the URL entirely, which is not the same as sending false.
type Request struct {
	// Query is the utterance to recognize.
	Query string

	// Log enables utterance logging on the provider side for active
	// learning review.
	Log *bool
	// SpellCheck enables spell checking of the query.
	SpellCheck *bool
	// Staging targets the staging slot of the published app.
	Staging *bool
	// TimezoneOffset is the client timezone offset in minutes, used to
	// resolve relative datetimes.
	TimezoneOffset *float64
	// Verbose requests the full intent list instead of only the top
	// scoring intent.
	Verbose *bool
	// BingSpellCheckSubscriptionKey authorizes the spell-check provider.
	BingSpellCheckSubscriptionKey string

	// ContextID is kept for wire compatibility with old dialogs.
	//
	// Deprecated: action binding was removed from the upstream API.
	ContextID *string
	// ForceSet is kept for wire compatibility with old dialogs.
	//
	// Deprecated: action binding was removed from the upstream API.
	ForceSet *string

	// ExtraParameters is appended to the query string verbatim, without
	// validation or escaping, so it may carry pre-encoded fragments or
	// several key=value pairs at once. Malformed content here yields a
	// malformed URL; the field is trusted input and callers own it.
	ExtraParameters string
}

// BuildURI renders the request against the given model as a fully escaped
// query URL. Parameter order is fixed so two identical inputs always
// render the same string.
func (r *Request) BuildURI(m Model) (string, error) {
	if m.AppID == "" {
		return "", &ConfigError{Field: "app ID"}
	}
	if m.SubscriptionKey == "" {
		return "", &ConfigError{Field: "subscription key"}
	}

	params := []string{
		"subscription-key=" + url.QueryEscape(m.SubscriptionKey),
		"q=" + url.QueryEscape(r.Query),
	}

	var base string
	switch m.Version {
	case V1:
		base = m.Endpoint
		params = append(params, "id="+url.QueryEscape(m.AppID))
	case V2:
		base = strings.TrimSuffix(m.Endpoint, "/") + "/" + m.AppID
	default:
		return "", &UnsupportedVersionError{Version: m.Version}
	}

	params = appendBool(params, "log", r.Log)
	params = appendBool(params, "spellCheck", r.SpellCheck)
	params = appendBool(params, "staging", r.Staging)
	if r.TimezoneOffset != nil {
		params = append(params, "timezoneOffset="+url.QueryEscape(strconv.FormatFloat(*r.TimezoneOffset, 'f', -1, 64)))
	}
	params = appendBool(params, "verbose", r.Verbose)
	if r.BingSpellCheckSubscriptionKey != "" {
		params = append(params, "bing-spell-check-subscription-key="+url.QueryEscape(r.BingSpellCheckSubscriptionKey))
	}
	if r.ContextID != nil {
		params = append(params, "contextId="+url.QueryEscape(*r.ContextID))
	}
	if r.ForceSet != nil {
		params = append(params, "forceSet="+url.QueryEscape(*r.ForceSet))
	}
	if r.ExtraParameters != "" {
		// Raw append, never re-escaped. See field doc.
		params = append(params, r.ExtraParameters)
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", &ConfigError{Field: "valid endpoint URI"}
	}
	u.RawQuery = strings.Join(params, "&")
	return u.String(), nil
}

func appendBool(params []string, name string, v *bool) []string {
	if v == nil {
		return params
	}
	return append(params, name+"="+strconv.FormatBool(*v))
}
