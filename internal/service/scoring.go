package service

import (
	"math"
	"strings"

	"rfp-desk/internal/models"
)

// Equal weights for completeness, price, delivery and terms.
const (
	completenessWeight = 0.25
	priceWeight        = 0.25
	deliveryWeight     = 0.25
	termsWeight        = 0.25
)

const (
	highScoreThreshold = 80 // strictly above is high
	lowScoreThreshold  = 50 // below is low
)

// WeightedTotal is the weighted average of the four sub-scores, rounded
// half away from zero.
func WeightedTotal(completeness, price, delivery, terms int) int {
	total := float64(completeness)*completenessWeight +
		float64(price)*priceWeight +
		float64(delivery)*deliveryWeight +
		float64(terms)*termsWeight
	return clampScore(int(math.Round(total)))
}

func RecommendationForScore(total int) models.Recommendation {
	switch {
	case total > highScoreThreshold:
		return models.RecommendationHigh
	case total >= lowScoreThreshold:
		return models.RecommendationMedium
	default:
		return models.RecommendationLow
	}
}

func clampScore(v int) int {
	return min(100, max(0, v))
}

// NormalizeAnalysis enforces the analysis shape: scores in [0,100], a valid
// recommendation, non-nil lists. An empty recommendation is derived from the
// total score; an unrecognized one becomes medium.
func NormalizeAnalysis(a models.ProposalAnalysis) models.ProposalAnalysis {
	a.CompletenessScore = clampScore(a.CompletenessScore)
	a.PriceScore = clampScore(a.PriceScore)
	a.DeliveryScore = clampScore(a.DeliveryScore)
	a.TermsScore = clampScore(a.TermsScore)
	a.TotalScore = clampScore(a.TotalScore)

	if strings.TrimSpace(string(a.Recommendation)) == "" {
		a.Recommendation = RecommendationForScore(a.TotalScore)
	} else {
		a.Recommendation = models.ParseRecommendation(string(a.Recommendation))
	}

	if a.Strengths == nil {
		a.Strengths = []string{}
	}
	if a.Weaknesses == nil {
		a.Weaknesses = []string{}
	}
	return a
}

// NormalizeProposal keeps JSON output stable: lists are never null.
func NormalizeProposal(p models.StructuredProposal) models.StructuredProposal {
	if p.Items == nil {
		p.Items = []models.LineItem{}
	}
	return p
}
