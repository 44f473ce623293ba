package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"recognizer/internal/config"
	"recognizer/internal/luis"
	"recognizer/internal/model"
)

func boolPtr(v bool) *bool { return &v }

func TestConfigDefaults(t *testing.T) {
	cfg := &config.LUISConfig{
		Staging:           boolPtr(true),
		Verbose:           boolPtr(true),
		BingSpellCheckKey: "default-bing-key",
	}
	hook := ConfigDefaults(cfg)

	t.Run("fills unset fields", func(t *testing.T) {
		req := &luis.Request{Query: "hi"}
		hook(req)

		if req.Staging == nil || !*req.Staging {
			t.Error("expected staging default to apply")
		}
		if req.Verbose == nil || !*req.Verbose {
			t.Error("expected verbose default to apply")
		}
		if req.SpellCheck != nil {
			t.Error("unconfigured default must leave the field unset")
		}
		if req.BingSpellCheckSubscriptionKey != "default-bing-key" {
			t.Errorf("expected bing key default, got %q", req.BingSpellCheckSubscriptionKey)
		}
	})

	t.Run("explicit values win", func(t *testing.T) {
		req := &luis.Request{
			Query:                         "hi",
			Staging:                       boolPtr(false),
			BingSpellCheckSubscriptionKey: "caller-key",
		}
		hook(req)

		if *req.Staging {
			t.Error("explicit staging=false must not be overridden")
		}
		if req.BingSpellCheckSubscriptionKey != "caller-key" {
			t.Errorf("explicit bing key must win, got %q", req.BingSpellCheckSubscriptionKey)
		}
	})
}

func TestRecognize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("verbose") != "true" {
			t.Errorf("expected verbose=true from request options, got %q", q.Get("verbose"))
		}
		if q.Get("staging") != "" {
			t.Errorf("unset staging option must not be sent, got %q", q.Get("staging"))
		}
		w.Write([]byte(`{
			"query": "book a flight to paris",
			"topScoringIntent": {"intent": "BookFlight", "score": 0.92},
			"intents": [
				{"intent": "BookFlight", "score": 0.92},
				{"intent": "None", "score": 0.03}
			],
			"entities": [{"entity": "paris", "type": "Location", "score": 0.88}]
		}`))
	}))
	defer server.Close()

	client := luis.New(luis.Model{
		AppID:           "test-app",
		SubscriptionKey: "test-key",
		Endpoint:        server.URL + "/apps/",
		Version:         luis.V2,
		Threshold:       0.5,
	})
	svc := NewRecognizeService(client, nil)

	resp, err := svc.Recognize(context.Background(), &model.RecognizeRequest{
		Query:   "book a flight to paris",
		Options: &model.RecognizeOptions{Verbose: boolPtr(true)},
	})
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}

	if resp.TopIntent != "BookFlight" || resp.TopScore != 0.92 {
		t.Errorf("unexpected top intent: %s (%.2f)", resp.TopIntent, resp.TopScore)
	}
	if len(resp.Intents) != 2 {
		t.Errorf("expected 2 intents, got %d", len(resp.Intents))
	}
	if len(resp.Entities) != 1 || resp.Entities[0].Type != "Location" {
		t.Errorf("unexpected entities: %+v", resp.Entities)
	}
	if resp.Took < 0 {
		t.Errorf("negative latency: %d", resp.Took)
	}
}

func TestRecognize_LowConfidenceSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"query": "mumble", "topScoringIntent": {"intent": "BookFlight", "score": 0.2}}`))
	}))
	defer server.Close()

	client := luis.New(luis.Model{
		AppID:           "test-app",
		SubscriptionKey: "test-key",
		Endpoint:        server.URL + "/apps/",
		Version:         luis.V2,
		Threshold:       0.5,
	})
	svc := NewRecognizeService(client, nil)

	resp, err := svc.Recognize(context.Background(), &model.RecognizeRequest{Query: "mumble"})
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if resp.TopIntent != luis.NoneIntent || resp.TopScore != 1.0 {
		t.Errorf("expected None/1.0 sentinel, got %s (%.2f)", resp.TopIntent, resp.TopScore)
	}
}

func TestRecognize_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := luis.New(luis.Model{
		AppID:           "test-app",
		SubscriptionKey: "test-key",
		Endpoint:        server.URL + "/apps/",
		Version:         luis.V2,
	})
	svc := NewRecognizeService(client, nil)

	_, err := svc.Recognize(context.Background(), &model.RecognizeRequest{Query: "hi"})
	if err == nil {
		t.Fatal("expected upstream error to surface")
	}
}
