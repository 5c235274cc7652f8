package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Structured records are persisted verbatim by the storage layer, which
	// expects JSON numbers rather than quoted decimals.
	decimal.MarshalJSONWithoutQuotes = true
}

type Recommendation string

const (
	RecommendationHigh   Recommendation = "high"
	RecommendationMedium Recommendation = "medium"
	RecommendationLow    Recommendation = "low"
)

// Valid reports whether r is one of high, medium or low.
func (r Recommendation) Valid() bool {
	switch r {
	case RecommendationHigh, RecommendationMedium, RecommendationLow:
		return true
	}
	return false
}

// ParseRecommendation lowercases raw and coerces anything outside the
// allowed set to medium.
func ParseRecommendation(raw string) Recommendation {
	r := Recommendation(strings.ToLower(strings.TrimSpace(raw)))
	if !r.Valid() {
		return RecommendationMedium
	}
	return r
}

type LineItem struct {
	Name           string           `json:"name"`
	Quantity       int              `json:"quantity"`
	Specifications string           `json:"specifications"`
	UnitPrice      *decimal.Decimal `json:"unitPrice"`
	TotalPrice     *decimal.Decimal `json:"totalPrice"`
}

type StructuredRFP struct {
	Items               []LineItem      `json:"items"`
	TotalBudget         decimal.Decimal `json:"totalBudget"`
	Currency            string          `json:"currency"`
	DeliveryDate        *Date           `json:"deliveryDate"`
	DeliveryDays        int             `json:"deliveryDays"`
	PaymentTerms        string          `json:"paymentTerms"`
	Warranty            string          `json:"warranty"`
	SpecialRequirements string          `json:"specialRequirements"`
}

type StructuredProposal struct {
	Items        []LineItem      `json:"items"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	Currency     string          `json:"currency"`
	DeliveryDate *Date           `json:"deliveryDate"`
	DeliveryDays int             `json:"deliveryDays"`
	PaymentTerms string          `json:"paymentTerms"`
	Warranty     string          `json:"warranty"`
	Notes        string          `json:"notes"`
}

// ProposalAnalysis scores are integers in [0,100].
type ProposalAnalysis struct {
	CompletenessScore int            `json:"completenessScore"`
	PriceScore        int            `json:"priceScore"`
	DeliveryScore     int            `json:"deliveryScore"`
	TermsScore        int            `json:"termsScore"`
	TotalScore        int            `json:"totalScore"`
	Summary           string         `json:"summary"`
	Strengths         []string       `json:"strengths"`
	Weaknesses        []string       `json:"weaknesses"`
	Recommendation    Recommendation `json:"recommendation"`
}

// ParsedProposal is the joint result of reading one vendor reply.
type ParsedProposal struct {
	ProposalData StructuredProposal `json:"proposalData"`
	Analysis     ProposalAnalysis   `json:"analysis"`
}

type VendorEmail struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ProposalSummary is a previously stored proposal as handed to the comparator.
type ProposalSummary struct {
	VendorID       string              `json:"vendorId"`
	VendorName     string              `json:"vendorName"`
	StructuredData *StructuredProposal `json:"structuredData"`
	AIAnalysis     *ProposalAnalysis   `json:"aiAnalysis"`
}

type RFPContext struct {
	StructuredData StructuredRFP `json:"structuredData"`
	Description    string        `json:"description"`
}

type VendorComparisonEntry struct {
	VendorID       string         `json:"vendorId"`
	VendorName     string         `json:"vendorName"`
	TotalScore     int            `json:"totalScore"`
	PriceRank      int            `json:"priceRank"`
	DeliveryRank   int            `json:"deliveryRank"`
	ValueForMoney  int            `json:"valueForMoney"`
	Summary        string         `json:"summary"`
	Recommendation Recommendation `json:"recommendation"`
}

type RecommendationSummary struct {
	BestVendorID   string `json:"bestVendorId"`
	BestVendorName string `json:"bestVendorName"`
	Reason         string `json:"reason"`
	Confidence     int    `json:"confidence"`
}

// ComparisonResult is computed on demand and never stored.
type ComparisonResult struct {
	Comparison     []VendorComparisonEntry `json:"comparison"`
	Recommendation *RecommendationSummary  `json:"recommendation"`
	Insights       []string                `json:"insights"`
}
