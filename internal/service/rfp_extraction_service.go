package service

import (
	"context"

	"rfp-desk/internal/models"

	"go.uber.org/zap"
)

// RFPExtractionService turns a free-text RFP description into a
// StructuredRFP. It always produces a result.
type RFPExtractionService struct {
	gateway *Gateway
	logger  *zap.Logger
}

func NewRFPExtractionService(gateway *Gateway, logger *zap.Logger) *RFPExtractionService {
	return &RFPExtractionService{
		gateway: gateway,
		logger:  logger.Named("rfp_extraction"),
	}
}

func (s *RFPExtractionService) Extract(ctx context.Context, description string) models.StructuredRFP {
	return s.ExtractOutcome(ctx, description).Data
}

func (s *RFPExtractionService) ExtractOutcome(ctx context.Context, description string) Outcome[models.StructuredRFP] {
	description = sanitizeUTF8(description)

	rfp, err := s.extractWithAI(ctx, description)
	if err != nil {
		logFallback(s.logger, "extract_rfp", err)
		return heuristicOutcome(HeuristicRFP(description), err)
	}

	s.logger.Info("RFP parsed with AI", zap.Int("items", len(rfp.Items)))
	return aiOutcome(rfp)
}

func (s *RFPExtractionService) extractWithAI(ctx context.Context, description string) (models.StructuredRFP, error) {
	text, err := s.gateway.Generate(ctx, buildRFPPrompt(description))
	if err != nil {
		return models.StructuredRFP{}, err
	}

	var payload rfpPayload
	if err := ExtractJSONInto(text, &payload); err != nil {
		return models.StructuredRFP{}, err
	}
	return payload.toModel(description), nil
}
