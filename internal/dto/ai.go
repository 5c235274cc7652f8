package dto

import "rfp-desk/internal/models"

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type ParseRFPRequest struct {
	Description string `json:"description"`
}

type ParseRFPResponse struct {
	Success bool                 `json:"success"`
	Data    models.StructuredRFP `json:"data"`
	Source  string               `json:"source"`
}

type ParseResponseRequest struct {
	EmailContent models.VendorEmail   `json:"emailContent"`
	RFP          models.StructuredRFP `json:"rfp"`
}

type ParseResponseResponse struct {
	Success bool                  `json:"success"`
	Data    models.ParsedProposal `json:"data"`
	Source  string                `json:"source"`
}

type ParseResponsesRequest struct {
	Emails []models.VendorEmail `json:"emails"`
	RFP    models.StructuredRFP `json:"rfp"`
}

type ParsedProposalResult struct {
	models.ParsedProposal
	Source string `json:"source"`
}

type ParseResponsesResponse struct {
	Success bool                   `json:"success"`
	Data    []ParsedProposalResult `json:"data"`
}

type CompareRequest struct {
	Proposals []models.ProposalSummary `json:"proposals"`
	RFP       models.RFPContext        `json:"rfp"`
}

type CompareResponse struct {
	Success bool                    `json:"success"`
	Data    models.ComparisonResult `json:"data"`
	Source  string                  `json:"source"`
}

type HealthResponse struct {
	Status           string `json:"status"`
	GatewayAvailable bool   `json:"gatewayAvailable"`
	Storage          bool   `json:"storage"`
}
