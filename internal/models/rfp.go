package models

import (
	"time"

	"github.com/google/uuid"
)

type RFPStatus string

const (
	RFPStatusDraft      RFPStatus = "draft"
	RFPStatusSent       RFPStatus = "sent"
	RFPStatusInProgress RFPStatus = "in-progress"
	RFPStatusCompleted  RFPStatus = "completed"
	RFPStatusCancelled  RFPStatus = "cancelled"
)

// RFP is the stored request aggregate; StructuredData is kept as JSONB.
type RFP struct {
	ID             uuid.UUID     `db:"id"`
	Title          string        `db:"title"`
	Description    string        `db:"description"`
	StructuredData StructuredRFP `db:"structured_data"`
	Status         RFPStatus     `db:"status"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
}

func (r *RFP) Context() RFPContext {
	return RFPContext{StructuredData: r.StructuredData, Description: r.Description}
}

type ProposalStatus string

const (
	ProposalStatusPending     ProposalStatus = "pending"
	ProposalStatusReceived    ProposalStatus = "received"
	ProposalStatusUnderReview ProposalStatus = "under-review"
	ProposalStatusAccepted    ProposalStatus = "accepted"
	ProposalStatusRejected    ProposalStatus = "rejected"
)

// Proposal is one stored vendor reply for an RFP, joined with its vendor.
// ExtractionSource records whether the structured data came from the model
// ("ai") or from the heuristics ("heuristic").
type Proposal struct {
	ID               uuid.UUID           `db:"id"`
	RFPID            uuid.UUID           `db:"rfp_id"`
	VendorID         uuid.UUID           `db:"vendor_id"`
	VendorName       string              `db:"vendor_name"`
	EmailSubject     string              `db:"email_subject"`
	EmailBody        string              `db:"email_body"`
	StructuredData   *StructuredProposal `db:"structured_data"`
	AIAnalysis       *ProposalAnalysis   `db:"ai_analysis"`
	ExtractionSource string              `db:"extraction_source"`
	Status           ProposalStatus      `db:"status"`
	CreatedAt        time.Time           `db:"created_at"`
}

func (p *Proposal) Summary() ProposalSummary {
	return ProposalSummary{
		VendorID:       p.VendorID.String(),
		VendorName:     p.VendorName,
		StructuredData: p.StructuredData,
		AIAnalysis:     p.AIAnalysis,
	}
}
