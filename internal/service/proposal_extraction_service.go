package service

import (
	"context"
	"fmt"
	"time"

	"rfp-desk/internal/models"

	"go.uber.org/zap"
)

// ProposalExtractionService reads one vendor reply against its RFP and
// returns the structured proposal together with its analysis.
type ProposalExtractionService struct {
	gateway *Gateway
	logger  *zap.Logger
	now     func() time.Time
}

func NewProposalExtractionService(gateway *Gateway, logger *zap.Logger) *ProposalExtractionService {
	return &ProposalExtractionService{
		gateway: gateway,
		logger:  logger.Named("proposal_extraction"),
		now:     time.Now,
	}
}

func (s *ProposalExtractionService) Extract(ctx context.Context, email models.VendorEmail, rfp models.StructuredRFP) models.ParsedProposal {
	return s.ExtractOutcome(ctx, email, rfp).Data
}

// ExtractOutcome returns the analysis recommendation as generated. Callers
// normalize it with NormalizeAnalysis.
func (s *ProposalExtractionService) ExtractOutcome(ctx context.Context, email models.VendorEmail, rfp models.StructuredRFP) Outcome[models.ParsedProposal] {
	email = models.VendorEmail{
		Subject: sanitizeUTF8(email.Subject),
		Body:    EmailText(email.Body),
	}

	parsed, err := s.extractWithAI(ctx, email, rfp)
	if err != nil {
		logFallback(s.logger, "extract_proposal", err)
		return heuristicOutcome(HeuristicProposal(email, rfp, s.now()), err)
	}

	s.logger.Info("Vendor response parsed with AI",
		zap.String("total_price", parsed.ProposalData.TotalPrice.String()),
		zap.Int("total_score", parsed.Analysis.TotalScore),
	)
	return aiOutcome(parsed)
}

func (s *ProposalExtractionService) extractWithAI(ctx context.Context, email models.VendorEmail, rfp models.StructuredRFP) (models.ParsedProposal, error) {
	text, err := s.gateway.Generate(ctx, buildProposalPrompt(email, rfp))
	if err != nil {
		return models.ParsedProposal{}, err
	}

	var payload proposalPayload
	if err := ExtractJSONInto(text, &payload); err != nil {
		return models.ParsedProposal{}, err
	}
	if payload.ProposalData == nil || payload.Analysis == nil {
		return models.ParsedProposal{}, fmt.Errorf("%w: proposalData and analysis are required", ErrExtractionFailed)
	}

	return models.ParsedProposal{
		ProposalData: payload.ProposalData.toModel(rfp, email.Body),
		Analysis:     payload.Analysis.toModel(),
	}, nil
}
