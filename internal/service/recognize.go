package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"recognizer/internal/config"
	"recognizer/internal/luis"
	"recognizer/internal/model"
	"recognizer/internal/repository"
)

// RecognizeService runs recognitions against the configured model and
// records them in the local utterance log.
type RecognizeService struct {
	client *luis.Service
	repo   *repository.PostgresRepository // nil when the log store is disabled
}

// NewRecognizeService creates a new recognition service
func NewRecognizeService(client *luis.Service, repo *repository.PostgresRepository) *RecognizeService {
	return &RecognizeService{
		client: client,
		repo:   repo,
	}
}

// ConfigDefaults builds the request-modification hook that applies the
// configured upstream defaults to any request that does not set them
// explicitly. Explicit per-request values always win.
func ConfigDefaults(cfg *config.LUISConfig) luis.ModifyRequestFunc {
	return func(req *luis.Request) {
		if req.Staging == nil {
			req.Staging = cfg.Staging
		}
		if req.Verbose == nil {
			req.Verbose = cfg.Verbose
		}
		if req.SpellCheck == nil {
			req.SpellCheck = cfg.SpellCheck
		}
		if req.Log == nil {
			req.Log = cfg.LogQueries
		}
		if req.BingSpellCheckSubscriptionKey == "" {
			req.BingSpellCheckSubscriptionKey = cfg.BingSpellCheckKey
		}
	}
}

// Recognize runs one recognition and returns the normalized result
func (s *RecognizeService) Recognize(ctx context.Context, req *model.RecognizeRequest) (*model.RecognizeResponse, error) {
	startTime := time.Now()

	luisReq := &luis.Request{Query: req.Query}
	if opts := req.Options; opts != nil {
		luisReq.Verbose = opts.Verbose
		luisReq.SpellCheck = opts.SpellCheck
		luisReq.Staging = opts.Staging
		luisReq.TimezoneOffset = opts.TimezoneOffset
	}

	result, err := s.client.QueryRequest(ctx, luisReq)
	if err != nil {
		return nil, err
	}

	took := time.Since(startTime).Milliseconds()
	resp := mapResult(result, took)

	// Log the recognition (non-blocking); failures never fail the response
	if s.repo != nil {
		go func() {
			intents, _ := json.Marshal(resp.Intents)
			u := &model.Utterance{
				Query:          req.Query,
				TopIntent:      resp.TopIntent,
				TopScore:       resp.TopScore,
				Intents:        intents,
				ResponseTimeMs: int(took),
			}
			if err := s.repo.LogUtterance(context.Background(), u); err != nil {
				log.Printf("Warning: failed to log utterance: %v", err)
			}
		}()
	}

	return resp, nil
}

// ListUtterances returns a page of the local utterance log
func (s *RecognizeService) ListUtterances(ctx context.Context, limit, offset int) (*model.UtteranceListResponse, error) {
	utterances, total, err := s.repo.ListUtterances(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &model.UtteranceListResponse{
		Utterances: utterances,
		Total:      total,
		Limit:      limit,
		Offset:     offset,
	}, nil
}

// IntentStats aggregates the local utterance log per intent
func (s *RecognizeService) IntentStats(ctx context.Context) ([]model.IntentStats, error) {
	return s.repo.IntentStats(ctx)
}

// HasLog reports whether the utterance log store is available
func (s *RecognizeService) HasLog() bool {
	return s.repo != nil
}

func mapResult(result *luis.Result, took int64) *model.RecognizeResponse {
	resp := &model.RecognizeResponse{
		Query:        result.Query,
		AlteredQuery: result.AlteredQuery,
		Intents:      make([]model.IntentScore, 0, len(result.Intents)),
		Took:         took,
	}
	if result.TopScoringIntent != nil {
		resp.TopIntent = result.TopScoringIntent.Intent
		resp.TopScore = result.TopScoringIntent.Score
	}
	for _, intent := range result.Intents {
		resp.Intents = append(resp.Intents, model.IntentScore{Intent: intent.Intent, Score: intent.Score})
	}
	for _, entity := range result.Entities {
		resp.Entities = append(resp.Entities, model.EntityMatch{
			Entity: entity.Entity,
			Type:   entity.Type,
			Score:  entity.Score,
		})
	}
	return resp
}
