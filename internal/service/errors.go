package service

import "errors"

// Gateway and extraction failures. Engines recover from all three by
// switching to the heuristic path; they never reach the caller.
var (
	ErrGatewayUnavailable = errors.New("text generation gateway unavailable")
	ErrGatewayError       = errors.New("text generation gateway error")
	ErrExtractionFailed   = errors.New("no parsable JSON in generated text")
)
