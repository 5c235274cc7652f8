package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rfp-desk/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNoRFPReference = errors.New("subject carries no RFP reference")

type RFPStore interface {
	Create(ctx context.Context, rfp *models.RFP) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.RFP, error)
	List(ctx context.Context, limit uint64) ([]*models.RFP, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.RFPStatus) error
}

type ProposalStore interface {
	Create(ctx context.Context, p *models.Proposal) error
	ListByRFPID(ctx context.Context, rfpID uuid.UUID) ([]*models.Proposal, error)
}

type VendorStore interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	List(ctx context.Context) ([]*models.Vendor, error)
}

// RFPService runs the stored workflow: create an RFP from its description,
// record vendor replies and compare them.
type RFPService struct {
	procurement *ProcurementService
	rfps        RFPStore
	proposals   ProposalStore
	vendors     VendorStore
	logger      *zap.Logger
	now         func() time.Time
}

func NewRFPService(
	procurement *ProcurementService,
	rfps RFPStore,
	proposals ProposalStore,
	vendors VendorStore,
	logger *zap.Logger,
) *RFPService {
	return &RFPService{
		procurement: procurement,
		rfps:        rfps,
		proposals:   proposals,
		vendors:     vendors,
		logger:      logger.Named("rfp"),
		now:         time.Now,
	}
}

func (s *RFPService) CreateRFP(ctx context.Context, title, description string) (*models.RFP, Source, error) {
	out := s.procurement.ExtractRFPOutcome(ctx, description)

	now := s.now()
	rfp := &models.RFP{
		ID:             uuid.New(),
		Title:          strings.TrimSpace(title),
		Description:    description,
		StructuredData: out.Data,
		Status:         models.RFPStatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if rfp.Title == "" {
		rfp.Title = truncateRunes(strings.TrimSpace(description), 60)
	}

	if err := s.rfps.Create(ctx, rfp); err != nil {
		return nil, "", fmt.Errorf("failed to save RFP: %w", err)
	}

	s.logger.Info("RFP created",
		zap.String("rfp_id", rfp.ID.String()),
		zap.String("source", string(out.Source)),
	)
	return rfp, out.Source, nil
}

func (s *RFPService) GetRFP(ctx context.Context, id uuid.UUID) (*models.RFP, error) {
	return s.rfps.GetByID(ctx, id)
}

func (s *RFPService) ListRFPs(ctx context.Context, limit uint64) ([]*models.RFP, error) {
	return s.rfps.List(ctx, limit)
}

// OutgoingSubject is the subject line used when the RFP is mailed to vendors.
func (s *RFPService) OutgoingSubject(rfp *models.RFP) string {
	return FormatRFPSubject(rfp.Title, rfp.ID.String())
}

func (s *RFPService) CreateVendor(ctx context.Context, name, email, contact string) (*models.Vendor, error) {
	vendor := &models.Vendor{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(name),
		Email:         strings.ToLower(strings.TrimSpace(email)),
		ContactPerson: strings.TrimSpace(contact),
		CreatedAt:     s.now(),
	}
	if err := s.vendors.Create(ctx, vendor); err != nil {
		return nil, fmt.Errorf("failed to save vendor: %w", err)
	}
	return vendor, nil
}

func (s *RFPService) ListVendors(ctx context.Context) ([]*models.Vendor, error) {
	return s.vendors.List(ctx)
}

func (s *RFPService) ListProposals(ctx context.Context, rfpID uuid.UUID) ([]*models.Proposal, error) {
	if _, err := s.rfps.GetByID(ctx, rfpID); err != nil {
		return nil, err
	}
	return s.proposals.ListByRFPID(ctx, rfpID)
}

// RecordReply files a vendor reply under the RFP tagged in its subject.
func (s *RFPService) RecordReply(ctx context.Context, vendorID uuid.UUID, email models.VendorEmail) (*models.Proposal, error) {
	ref, ok := ParseRFPReference(email.Subject)
	if !ok {
		return nil, ErrNoRFPReference
	}
	rfpID, err := uuid.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not an RFP id", ErrNoRFPReference, ref)
	}
	return s.RecordResponse(ctx, rfpID, vendorID, email)
}

// RecordResponse extracts and stores one vendor reply to rfpID. The first
// reply moves a sent or draft RFP to in-progress.
func (s *RFPService) RecordResponse(ctx context.Context, rfpID, vendorID uuid.UUID, email models.VendorEmail) (*models.Proposal, error) {
	rfp, err := s.rfps.GetByID(ctx, rfpID)
	if err != nil {
		return nil, err
	}
	vendor, err := s.vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	out := s.procurement.ExtractProposalOutcome(ctx, email, rfp.StructuredData)
	proposal := &models.Proposal{
		ID:               uuid.New(),
		RFPID:            rfp.ID,
		VendorID:         vendor.ID,
		VendorName:       vendor.Name,
		EmailSubject:     sanitizeUTF8(email.Subject),
		EmailBody:        sanitizeUTF8(email.Body),
		StructuredData:   &out.Data.ProposalData,
		AIAnalysis:       &out.Data.Analysis,
		ExtractionSource: string(out.Source),
		Status:           models.ProposalStatusReceived,
		CreatedAt:        s.now(),
	}
	if err := s.proposals.Create(ctx, proposal); err != nil {
		return nil, fmt.Errorf("failed to save proposal: %w", err)
	}

	if rfp.Status == models.RFPStatusDraft || rfp.Status == models.RFPStatusSent {
		if err := s.rfps.UpdateStatus(ctx, rfp.ID, models.RFPStatusInProgress); err != nil {
			s.logger.Warn("Failed to update RFP status", zap.String("rfp_id", rfp.ID.String()), zap.Error(err))
		}
	}

	s.logger.Info("Vendor response recorded",
		zap.String("rfp_id", rfp.ID.String()),
		zap.String("vendor_id", vendor.ID.String()),
		zap.String("source", proposal.ExtractionSource),
	)
	return proposal, nil
}

// CompareRFP compares every stored proposal of rfpID.
func (s *RFPService) CompareRFP(ctx context.Context, rfpID uuid.UUID) (Outcome[models.ComparisonResult], error) {
	rfp, err := s.rfps.GetByID(ctx, rfpID)
	if err != nil {
		return Outcome[models.ComparisonResult]{}, err
	}
	stored, err := s.proposals.ListByRFPID(ctx, rfpID)
	if err != nil {
		return Outcome[models.ComparisonResult]{}, fmt.Errorf("failed to load proposals: %w", err)
	}

	summaries := make([]models.ProposalSummary, 0, len(stored))
	for _, p := range stored {
		summaries = append(summaries, p.Summary())
	}
	return s.procurement.CompareProposalsOutcome(ctx, summaries, rfp.Context()), nil
}
