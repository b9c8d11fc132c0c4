package service

import (
	"context"
	"encoding/json"
	"strings"

	"ai-claims-be/internal/dto"
	"ai-claims-be/pkg/rag/reasoner"
)

type IQueryService interface {
	ProcessQuery(ctx context.Context, query string) (*dto.QueryResponse, error)
	AnswerQuestions(ctx context.Context, questions []string) ([]string, error)
	// ParseQuestions accepts either a JSON array of strings or a single
	// plain-text question.
	ParseQuestions(raw string) []string
}

type queryService struct {
	reasoner *reasoner.Reasoner
}

func NewQueryService(r *reasoner.Reasoner) IQueryService {
	return &queryService{reasoner: r}
}

func (s *queryService) ProcessQuery(ctx context.Context, query string) (*dto.QueryResponse, error) {
	parsed := s.reasoner.ExtractFields(ctx, query)

	decision, err := s.reasoner.Decide(ctx, query, reasoner.DefaultDecisionTopK)
	if err != nil {
		return nil, err
	}

	return &dto.QueryResponse{
		ParsedQuery:    parsed,
		DecisionResult: decision,
	}, nil
}

func (s *queryService) AnswerQuestions(ctx context.Context, questions []string) ([]string, error) {
	answers := make([]string, 0, len(questions))
	for _, question := range questions {
		answer, err := s.reasoner.Answer(ctx, question, reasoner.DefaultAnswerTopK)
		if err != nil {
			return nil, err
		}
		answers = append(answers, answer)
	}
	return answers, nil
}

func (s *queryService) ParseQuestions(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		var questions []string
		if err := json.Unmarshal([]byte(trimmed), &questions); err == nil {
			return questions
		}
	}
	if trimmed == "" {
		return nil
	}
	return []string{trimmed}
}
