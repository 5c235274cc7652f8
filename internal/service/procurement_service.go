package service

import (
	"context"

	"rfp-desk/internal/models"
	"rfp-desk/pkg/config"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultBatchConcurrency = 4

// ProcurementService is the entry point used by the HTTP handlers and the
// CLI. Every operation returns a usable result; failures of the gateway
// only change the Source of the outcome.
type ProcurementService struct {
	rfps       *RFPExtractionService
	proposals  *ProposalExtractionService
	comparator *ComparisonService

	batchConcurrency int
	logger           *zap.Logger
}

func NewProcurementService(gateway *Gateway, cfg *config.ExtractionConfig, logger *zap.Logger) *ProcurementService {
	concurrency := cfg.BatchConcurrency
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}
	return &ProcurementService{
		rfps:             NewRFPExtractionService(gateway, logger),
		proposals:        NewProposalExtractionService(gateway, logger),
		comparator:       NewComparisonService(gateway, cfg.DescriptionPromptLimit, logger),
		batchConcurrency: concurrency,
		logger:           logger.Named("procurement"),
	}
}

func (s *ProcurementService) ExtractRFP(ctx context.Context, description string) models.StructuredRFP {
	return s.ExtractRFPOutcome(ctx, description).Data
}

func (s *ProcurementService) ExtractRFPOutcome(ctx context.Context, description string) Outcome[models.StructuredRFP] {
	return s.rfps.ExtractOutcome(ctx, description)
}

// ExtractProposal reads one vendor reply against the RFP it answers.
func (s *ProcurementService) ExtractProposal(ctx context.Context, subject, body string, rfp models.StructuredRFP) (models.StructuredProposal, models.ProposalAnalysis) {
	out := s.ExtractProposalOutcome(ctx, models.VendorEmail{Subject: subject, Body: body}, rfp)
	return out.Data.ProposalData, out.Data.Analysis
}

// ExtractProposalOutcome normalizes the analysis: scores are clamped and the
// recommendation is one of high, medium or low.
func (s *ProcurementService) ExtractProposalOutcome(ctx context.Context, email models.VendorEmail, rfp models.StructuredRFP) Outcome[models.ParsedProposal] {
	out := s.proposals.ExtractOutcome(ctx, email, rfp)
	out.Data.ProposalData = NormalizeProposal(out.Data.ProposalData)
	out.Data.Analysis = NormalizeAnalysis(out.Data.Analysis)
	return out
}

// ExtractProposals reads several replies to the same RFP concurrently.
// Results keep the order of emails.
func (s *ProcurementService) ExtractProposals(ctx context.Context, emails []models.VendorEmail, rfp models.StructuredRFP) []Outcome[models.ParsedProposal] {
	results := make([]Outcome[models.ParsedProposal], len(emails))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for i, email := range emails {
		g.Go(func() error {
			results[i] = s.ExtractProposalOutcome(gctx, email, rfp)
			return nil
		})
	}
	_ = g.Wait()

	fromAI := 0
	for _, r := range results {
		if r.Source == SourceAI {
			fromAI++
		}
	}
	s.logger.Info("Vendor responses parsed",
		zap.Int("total", len(results)),
		zap.Int("ai", fromAI),
		zap.Int("heuristic", len(results)-fromAI),
	)
	return results
}

func (s *ProcurementService) CompareProposals(ctx context.Context, proposals []models.ProposalSummary, rfp models.RFPContext) models.ComparisonResult {
	return s.CompareProposalsOutcome(ctx, proposals, rfp).Data
}

func (s *ProcurementService) CompareProposalsOutcome(ctx context.Context, proposals []models.ProposalSummary, rfp models.RFPContext) Outcome[models.ComparisonResult] {
	return s.comparator.CompareOutcome(ctx, proposals, rfp)
}
