package llm

import (
	"context"
	"time"

	"github.com/abhisek/questisland/internal/logging"
	"github.com/abhisek/questisland/internal/store"
)

// EventSink receives one record per provider call. store.EventRepo
// satisfies it.
type EventSink interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// RecordingProvider writes every request to an EventSink and the context
// logger.
type RecordingProvider struct {
	inner    Provider
	provider string
	sink     EventSink
}

// WithRecording wraps p. A nil sink only logs.
func WithRecording(p Provider, providerName string, sink EventSink) Provider {
	return &RecordingProvider{inner: p, provider: providerName, sink: sink}
}

func (r *RecordingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := r.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  r.provider,
		Model:     r.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	log := logging.FromContext(ctx)
	log.Debug().Str("provider", data.Provider).Str("model", data.Model).Str("purpose", data.Purpose).
		Int64("latency_ms", data.LatencyMs).Int("input_tokens", data.InputTokens).
		Int("output_tokens", data.OutputTokens).Bool("success", data.Success).Msg("llm request")

	if r.sink != nil {
		// A failed write never fails the request.
		if logErr := r.sink.AppendLLMRequest(ctx, data); logErr != nil {
			log.Warn().Err(logErr).Msg("record llm request")
		}
	}
	return resp, err
}

func (r *RecordingProvider) ModelID() string {
	return r.inner.ModelID()
}
