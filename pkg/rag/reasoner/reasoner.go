package reasoner

import (
	"context"
	"strings"

	"ai-claims-be/internal/entity"
	"ai-claims-be/internal/pkg/logger"
	"ai-claims-be/pkg/llm"
	"ai-claims-be/pkg/rag/amount"
	"ai-claims-be/pkg/rag/parse"
	"ai-claims-be/pkg/rag/prompt"
)

const (
	// DefaultDecisionTopK is the retrieval depth for structured decisions.
	DefaultDecisionTopK = 3
	// DefaultAnswerTopK is the retrieval depth for plain-text answers.
	DefaultAnswerTopK = 4
)

// Searcher retrieves the chunks most similar to a query.
type Searcher interface {
	SimilaritySearch(ctx context.Context, query string, k int) ([]*entity.RetrievedChunk, error)
}

// Reasoner grounds LLM answers in retrieved policy clauses.
type Reasoner struct {
	searcher    Searcher
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewReasoner(searcher Searcher, llmProvider llm.LLMProvider, log logger.ILogger) *Reasoner {
	return &Reasoner{
		searcher:    searcher,
		llmProvider: llmProvider,
		logger:      log,
	}
}

// Decide retrieves topK clauses for the query and asks the LLM for a
// structured claim decision. Malformed LLM JSON degrades to an empty mapping;
// a missing amount is recovered by scanning the retrieved clauses for a
// currency-prefixed figure.
func (r *Reasoner) Decide(ctx context.Context, query string, topK int) (map[string]interface{}, error) {
	if topK <= 0 {
		topK = DefaultDecisionTopK
	}

	retrieved, err := r.searcher.SimilaritySearch(ctx, query, topK)
	if err != nil {
		return nil, err
	}

	raw, err := r.llmProvider.Generate(ctx, prompt.Decision(query, retrieved))
	if err != nil {
		return nil, err
	}

	result := parse.Object(raw)
	if result.Degraded {
		r.logger.Error("reasoner", "LLM returned malformed decision JSON", map[string]interface{}{
			"raw_output": result.Raw,
			"reason":     result.Reason,
		})
		return map[string]interface{}{}, nil
	}

	if result.Value["amount"] == nil {
		if fallback := amount.FromClauses(retrieved); fallback != nil {
			result.Value["amount"] = *fallback
		} else {
			result.Value["amount"] = nil
		}
	}

	return result.Value, nil
}

// Answer retrieves k clauses and asks the LLM for a one-sentence answer.
func (r *Reasoner) Answer(ctx context.Context, question string, k int) (string, error) {
	if k <= 0 {
		k = DefaultAnswerTopK
	}

	retrieved, err := r.searcher.SimilaritySearch(ctx, question, k)
	if err != nil {
		return "", err
	}

	raw, err := r.llmProvider.Generate(ctx, prompt.Answer(question, retrieved))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(raw), nil
}

// ExtractFields asks the LLM to pull the claim fields out of free text.
// Best effort, never fatal: any failure returns the raw query plus the error
// message instead of surfacing an error to the caller.
func (r *Reasoner) ExtractFields(ctx context.Context, query string) map[string]interface{} {
	degraded := func(reason string) map[string]interface{} {
		return map[string]interface{}{
			"raw_query": query,
			"error":     reason,
		}
	}

	raw, err := r.llmProvider.Generate(ctx, prompt.FieldExtraction(query))
	if err != nil {
		r.logger.Warn("reasoner", "Field extraction call failed", map[string]interface{}{
			"error": err.Error(),
		})
		return degraded(err.Error())
	}

	result := parse.Object(raw)
	if result.Degraded {
		r.logger.Warn("reasoner", "Field extraction returned malformed JSON", map[string]interface{}{
			"raw_output": result.Raw,
		})
		return degraded(result.Reason)
	}
	return result.Value
}
