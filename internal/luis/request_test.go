package luis

import (
	"errors"
	"strings"
	"testing"
)

func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func testModel(version APIVersion) Model {
	return Model{
		AppID:           "11111111-2222-3333-4444-555555555555",
		SubscriptionKey: "secret-key",
		Endpoint:        "https://westus.api.cognitive.microsoft.com/luis/v2.0/apps/",
		Version:         version,
	}
}

func TestBuildURI_MissingConfig(t *testing.T) {
	tests := []struct {
		name  string
		model Model
	}{
		{
			name:  "missing app ID",
			model: Model{SubscriptionKey: "key", Endpoint: "https://example.com", Version: V2},
		},
		{
			name:  "missing subscription key",
			model: Model{AppID: "app", Endpoint: "https://example.com", Version: V2},
		},
		{
			name:  "missing both",
			model: Model{Endpoint: "https://example.com", Version: V2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Request content must not matter
			req := &Request{Query: "book a flight", Verbose: boolPtr(true)}
			_, err := req.BuildURI(tt.model)
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
		})
	}
}

func TestBuildURI_UnsupportedVersion(t *testing.T) {
	model := testModel("v3")
	_, err := (&Request{Query: "hello"}).BuildURI(model)
	var verErr *UnsupportedVersionError
	if !errors.As(err, &verErr) {
		t.Fatalf("expected UnsupportedVersionError, got %v", err)
	}
	if verErr.Version != "v3" {
		t.Errorf("expected version v3 in error, got %q", verErr.Version)
	}
}

func TestBuildURI_V1UsesIDParameter(t *testing.T) {
	model := testModel(V1)
	model.Endpoint = "https://api.example.com/luis/v1/application"

	uri, err := (&Request{Query: "hello"}).BuildURI(model)
	if err != nil {
		t.Fatalf("BuildURI failed: %v", err)
	}

	if !strings.HasPrefix(uri, "https://api.example.com/luis/v1/application?") {
		t.Errorf("v1 path must equal the configured base, got %s", uri)
	}
	if !strings.Contains(uri, "id="+model.AppID) {
		t.Errorf("v1 URL must carry the id parameter, got %s", uri)
	}
}

func TestBuildURI_V2UsesPathSegment(t *testing.T) {
	model := testModel(V2)

	uri, err := (&Request{Query: "hello"}).BuildURI(model)
	if err != nil {
		t.Fatalf("BuildURI failed: %v", err)
	}

	wantPrefix := "https://westus.api.cognitive.microsoft.com/luis/v2.0/apps/" + model.AppID + "?"
	if !strings.HasPrefix(uri, wantPrefix) {
		t.Errorf("v2 app ID must be a path segment, got %s", uri)
	}
	if strings.Contains(uri, "id=") {
		t.Errorf("v2 URL must not carry an id parameter, got %s", uri)
	}
}

func TestBuildURI_OptionalParameters(t *testing.T) {
	tests := []struct {
		name       string
		req        Request
		wantParts  []string
		wantAbsent []string
	}{
		{
			name:       "all unset",
			req:        Request{Query: "hi"},
			wantAbsent: []string{"log=", "spellCheck=", "staging=", "timezoneOffset=", "verbose=", "bing-spell-check-subscription-key=", "contextId=", "forceSet="},
		},
		{
			name: "explicit false still serialized",
			req: Request{
				Query:      "hi",
				Log:        boolPtr(false),
				SpellCheck: boolPtr(false),
				Staging:    boolPtr(false),
				Verbose:    boolPtr(false),
			},
			wantParts: []string{"log=false", "spellCheck=false", "staging=false", "verbose=false"},
		},
		{
			name: "true flags and values",
			req: Request{
				Query:                         "hi",
				Log:                           boolPtr(true),
				SpellCheck:                    boolPtr(true),
				Staging:                       boolPtr(true),
				TimezoneOffset:                floatPtr(-480),
				Verbose:                       boolPtr(true),
				BingSpellCheckSubscriptionKey: "bing-key",
			},
			wantParts: []string{
				"log=true", "spellCheck=true", "staging=true",
				"timezoneOffset=-480", "verbose=true",
				"bing-spell-check-subscription-key=bing-key",
			},
		},
		{
			name: "deprecated fields serialized when set",
			req: Request{
				Query:     "hi",
				ContextID: strPtr("ctx-1"),
				ForceSet:  strPtr("intent"),
			},
			wantParts: []string{"contextId=ctx-1", "forceSet=intent"},
		},
		{
			name: "extra parameters appended raw",
			req: Request{
				Query:           "hi",
				ExtraParameters: "foo=a%20b&bar=2",
			},
			wantParts: []string{"foo=a%20b&bar=2"},
		},
	}

	model := testModel(V2)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri, err := tt.req.BuildURI(model)
			if err != nil {
				t.Fatalf("BuildURI failed: %v", err)
			}
			for _, part := range tt.wantParts {
				if !strings.Contains(uri, part) {
					t.Errorf("expected %q in URL %s", part, uri)
				}
			}
			for _, part := range tt.wantAbsent {
				if strings.Contains(uri, part) {
					t.Errorf("did not expect %q in URL %s", part, uri)
				}
			}
		})
	}
}

func TestBuildURI_ParameterOrder(t *testing.T) {
	model := testModel(V1)
	req := &Request{
		Query:                         "weather tomorrow",
		Log:                           boolPtr(true),
		SpellCheck:                    boolPtr(false),
		Staging:                       boolPtr(true),
		TimezoneOffset:                floatPtr(60),
		Verbose:                       boolPtr(true),
		BingSpellCheckSubscriptionKey: "bing",
		ContextID:                     strPtr("c1"),
		ForceSet:                      strPtr("f1"),
		ExtraParameters:               "custom=1",
	}

	uri, err := req.BuildURI(model)
	if err != nil {
		t.Fatalf("BuildURI failed: %v", err)
	}

	wantQuery := "subscription-key=secret-key" +
		"&q=weather+tomorrow" +
		"&id=" + model.AppID +
		"&log=true&spellCheck=false&staging=true" +
		"&timezoneOffset=60&verbose=true" +
		"&bing-spell-check-subscription-key=bing" +
		"&contextId=c1&forceSet=f1&custom=1"
	if got := uri[strings.Index(uri, "?")+1:]; got != wantQuery {
		t.Errorf("query string order mismatch\ngot  %s\nwant %s", got, wantQuery)
	}

	// Identical inputs must render identically
	again, err := req.BuildURI(model)
	if err != nil {
		t.Fatalf("BuildURI failed on second call: %v", err)
	}
	if uri != again {
		t.Errorf("rendering is not stable:\n%s\n%s", uri, again)
	}
}

func TestBuildURI_EscapesQueryText(t *testing.T) {
	model := testModel(V2)
	model.SubscriptionKey = "a&b=c"

	uri, err := (&Request{Query: "café near me?"}).BuildURI(model)
	if err != nil {
		t.Fatalf("BuildURI failed: %v", err)
	}
	if !strings.Contains(uri, "subscription-key=a%26b%3Dc") {
		t.Errorf("subscription key not escaped: %s", uri)
	}
	if !strings.Contains(uri, "q=caf%C3%A9+near+me%3F") {
		t.Errorf("query text not escaped: %s", uri)
	}
}
