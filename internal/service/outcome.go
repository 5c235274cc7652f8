package service

import (
	"errors"

	"go.uber.org/zap"
)

// Source tells which path produced a result.
type Source string

const (
	SourceAI        Source = "ai"
	SourceHeuristic Source = "heuristic"
)

// Outcome carries a result together with its provenance. Reason is the
// gateway or extraction failure that forced the heuristic path; it is nil
// for AI results and for short-circuited inputs.
type Outcome[T any] struct {
	Data   T
	Source Source
	Reason error
}

func aiOutcome[T any](data T) Outcome[T] {
	return Outcome[T]{Data: data, Source: SourceAI}
}

func heuristicOutcome[T any](data T, reason error) Outcome[T] {
	return Outcome[T]{Data: data, Source: SourceHeuristic, Reason: reason}
}

// logFallback reports a switch to the heuristic path. A missing gateway is
// the normal offline mode and only logged at debug.
func logFallback(logger *zap.Logger, operation string, reason error) {
	fields := []zap.Field{zap.String("operation", operation), zap.Error(reason)}
	if errors.Is(reason, ErrGatewayUnavailable) {
		logger.Debug("Gateway unavailable, using heuristic extraction", fields...)
		return
	}
	logger.Warn("AI extraction failed, using heuristic extraction", fields...)
}
