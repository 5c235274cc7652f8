package dto

import (
	"time"

	"rfp-desk/internal/models"
)

type CreateRFPRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type RFPResponse struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	StructuredData  models.StructuredRFP `json:"structuredData"`
	Status          string               `json:"status"`
	OutgoingSubject string               `json:"outgoingSubject"`
	CreatedAt       string               `json:"createdAt"`
	UpdatedAt       string               `json:"updatedAt"`
}

func NewRFPResponse(rfp *models.RFP, subject string) RFPResponse {
	return RFPResponse{
		ID:              rfp.ID.String(),
		Title:           rfp.Title,
		Description:     rfp.Description,
		StructuredData:  rfp.StructuredData,
		Status:          string(rfp.Status),
		OutgoingSubject: subject,
		CreatedAt:       rfp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       rfp.UpdatedAt.Format(time.RFC3339),
	}
}

type CreateVendorRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	ContactPerson string `json:"contactPerson"`
}

type VendorResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ContactPerson string `json:"contactPerson"`
	CreatedAt     string `json:"createdAt"`
}

func NewVendorResponse(v *models.Vendor) VendorResponse {
	return VendorResponse{
		ID:            v.ID.String(),
		Name:          v.Name,
		Email:         v.Email,
		ContactPerson: v.ContactPerson,
		CreatedAt:     v.CreatedAt.Format(time.RFC3339),
	}
}

// RecordResponseRequest is a vendor reply as received by mail.
type RecordResponseRequest struct {
	VendorID string `json:"vendorId"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
}

type ProposalResponse struct {
	ID               string                     `json:"id"`
	RFPID            string                     `json:"rfpId"`
	VendorID         string                     `json:"vendorId"`
	VendorName       string                     `json:"vendorName"`
	StructuredData   *models.StructuredProposal `json:"structuredData"`
	AIAnalysis       *models.ProposalAnalysis   `json:"aiAnalysis"`
	ExtractionSource string                     `json:"extractionSource"`
	Status           string                     `json:"status"`
	CreatedAt        string                     `json:"createdAt"`
}

func NewProposalResponse(p *models.Proposal) ProposalResponse {
	return ProposalResponse{
		ID:               p.ID.String(),
		RFPID:            p.RFPID.String(),
		VendorID:         p.VendorID.String(),
		VendorName:       p.VendorName,
		StructuredData:   p.StructuredData,
		AIAnalysis:       p.AIAnalysis,
		ExtractionSource: p.ExtractionSource,
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
	}
}

type DataResponse[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}
