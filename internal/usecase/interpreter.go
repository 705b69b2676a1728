package usecase

import (
	"context"

	"github.com/partsflow/backend/internal/domain"
	"go.uber.org/zap"
)

// QueryInterpreter turns a free-text query into a ParsedQuery. When an
// AI-backed parser is configured it is tried first; any failure falls
// back to the rule-based parser, so interpretation itself never fails
// and callers observe the same contract either way.
type QueryInterpreter struct {
	ai     domain.QueryParser // nil when the AI path is disabled
	rules  *RuleBasedParser
	logger *zap.Logger
}

// NewQueryInterpreter creates a query interpreter. ai may be nil.
func NewQueryInterpreter(ai domain.QueryParser, logger *zap.Logger) *QueryInterpreter {
	return &QueryInterpreter{
		ai:     ai,
		rules:  NewRuleBasedParser(),
		logger: logger,
	}
}

// Interpret parses the query, preferring the AI path when available.
func (i *QueryInterpreter) Interpret(ctx context.Context, query string) *domain.ParsedQuery {
	if i.ai != nil {
		parsed, err := i.ai.ParseQuery(ctx, query)
		if err == nil && parsed != nil {
			return parsed
		}
		i.logger.Warn("AI query parsing failed, falling back to rules",
			zap.String("query", query),
			zap.Error(err))
	}
	return i.rules.Parse(query)
}
