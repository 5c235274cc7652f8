package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"rfp-desk/internal/models"
)

const rfpPromptTemplate = `Extract structured procurement data from the RFP description below.

RFP description:
"""
%s
"""

Answer with ONLY a JSON object of this shape:
{
  "items": [
    {
      "name": "item name",
      "quantity": 1,
      "specifications": "technical specifications",
      "unitPrice": null,
      "totalPrice": null
    }
  ],
  "totalBudget": 0,
  "currency": "USD",
  "deliveryDate": "YYYY-MM-DD or null",
  "deliveryDays": 0,
  "paymentTerms": "Net 30",
  "warranty": "1 year",
  "specialRequirements": ""
}

Instructions:
1. List every item that is mentioned; quantity defaults to 1.
2. Prices are plain numbers or null when not mentioned.
3. Currency defaults to "USD".
4. Convert the delivery timeframe to a number of days.
5. Warranty defaults to "1 year", payment terms default to "Net 30".`

const proposalPromptTemplate = `Read the vendor proposal email below, extract its offer and evaluate it
against the original RFP requirements.

Original RFP requirements:
%s

Vendor email:
Subject: %s
Body:
"""
%s
"""

Answer with ONLY a JSON object of this shape:
{
  "proposalData": {
    "items": [
      {"name": "", "quantity": 1, "specifications": "", "unitPrice": 0, "totalPrice": 0}
    ],
    "totalPrice": 0,
    "currency": "USD",
    "deliveryDate": "YYYY-MM-DD or null",
    "deliveryDays": 0,
    "paymentTerms": "",
    "warranty": "",
    "notes": ""
  },
  "analysis": {
    "completenessScore": 0,
    "priceScore": 0,
    "deliveryScore": 0,
    "termsScore": 0,
    "totalScore": 0,
    "summary": "",
    "strengths": [],
    "weaknesses": [],
    "recommendation": "high|medium|low"
  }
}

Scoring (integers 0-100):
1. completenessScore: how many RFP items the proposal covers.
2. priceScore: price against the RFP budget, cheaper scores higher.
3. deliveryScore: delivery against the RFP timeframe, faster scores higher.
4. termsScore: payment terms and warranty, more favorable scores higher.
5. totalScore: the average of the four scores.
6. recommendation: high above 80, medium from 50 to 80, low below 50.`

const comparisonPromptTemplate = `Compare the vendor proposals below for one RFP.

Original RFP:
- Budget: %s
- Delivery requirement: %s
- Requirements: %s

Proposals:
%s
Answer with ONLY a JSON object of this shape:
{
  "comparison": [
    {
      "vendorId": "vendor id exactly as given",
      "vendorName": "",
      "totalScore": 0,
      "priceRank": 1,
      "deliveryRank": 1,
      "valueForMoney": 0,
      "summary": "",
      "recommendation": "high|medium|low"
    }
  ],
  "recommendation": {
    "bestVendorId": "",
    "bestVendorName": "",
    "reason": "",
    "confidence": 0
  },
  "insights": ["", "", ""]
}

Guidelines:
1. Include every proposal exactly once, ordered by totalScore, best first.
2. priceRank 1 is the cheapest, deliveryRank 1 the fastest; ranks are 1..N.
3. Weigh prices against the budget and delivery against the requirement.
4. valueForMoney combines price and quality, 0-100.`

const notSpecified = "Not specified"

func buildRFPPrompt(description string) string {
	return fmt.Sprintf(rfpPromptTemplate, description)
}

func buildProposalPrompt(email models.VendorEmail, rfp models.StructuredRFP) string {
	requirements, err := json.MarshalIndent(rfp, "", "  ")
	if err != nil {
		requirements = []byte("{}")
	}
	return fmt.Sprintf(proposalPromptTemplate, requirements, email.Subject, email.Body)
}

func buildComparisonPrompt(proposals []models.ProposalSummary, rfp models.RFPContext, descriptionLimit int) string {
	budget := notSpecified
	if rfp.StructuredData.TotalBudget.IsPositive() {
		budget = rfp.StructuredData.TotalBudget.String() + " " + currencyOrDefault(rfp.StructuredData.Currency)
	}
	delivery := notSpecified
	if rfp.StructuredData.DeliveryDays > 0 {
		delivery = fmt.Sprintf("%d days", rfp.StructuredData.DeliveryDays)
	}

	var b strings.Builder
	for i, p := range proposals {
		fmt.Fprintf(&b, "Proposal %d (Vendor ID: %s, Vendor: %s):\n", i+1, p.VendorID, p.VendorName)
		writeProposalLines(&b, p)
		b.WriteString("\n")
	}

	return fmt.Sprintf(comparisonPromptTemplate, budget, delivery,
		truncateRunes(rfp.Description, descriptionLimit), b.String())
}

func writeProposalLines(b *strings.Builder, p models.ProposalSummary) {
	price, currency, delivery := notSpecified, defaultCurrency, notSpecified
	terms, warranty := notSpecified, notSpecified
	if d := p.StructuredData; d != nil {
		if d.TotalPrice.IsPositive() {
			price = d.TotalPrice.String()
		}
		currency = currencyOrDefault(d.Currency)
		if d.DeliveryDays > 0 {
			delivery = fmt.Sprintf("%d days", d.DeliveryDays)
		}
		if d.PaymentTerms != "" {
			terms = d.PaymentTerms
		}
		if d.Warranty != "" {
			warranty = d.Warranty
		}
	}
	fmt.Fprintf(b, "- Total price: %s %s\n", price, currency)
	fmt.Fprintf(b, "- Delivery: %s\n", delivery)
	fmt.Fprintf(b, "- Payment terms: %s\n", terms)
	fmt.Fprintf(b, "- Warranty: %s\n", warranty)
	if p.AIAnalysis != nil {
		fmt.Fprintf(b, "- Prior analysis score: %d/100\n", p.AIAnalysis.TotalScore)
	}
}

// truncateRunes cuts s to limit runes and marks the cut with "...".
// A non-positive limit disables truncation.
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
