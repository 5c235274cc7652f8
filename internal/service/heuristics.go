package service

import (
	"hash/fnv"
	"regexp"
	"strconv"
	"strings"
	"time"

	"rfp-desk/internal/models"

	"github.com/shopspring/decimal"
)

// Rule based extraction used whenever the gateway cannot help. Everything
// here is pure and deterministic for a given input (and clock).

const (
	defaultCurrency          = "USD"
	defaultRFPPaymentTerms   = "Net 30"
	defaultRFPWarranty       = "1 year"
	defaultDeliveryDays      = 30
	heuristicRequirements    = "Please provide detailed specifications and pricing"
	heuristicProposalTerms   = "Net 45"
	heuristicWarranty        = "2 years"
	heuristicNotes           = "We are excited to work with you on this project."
	heuristicProposalDays    = 25
	heuristicDeliveryLeadDay = 5
	// larger counts are treated as noise rather than converted
	maxDeliveryCount         = 100000
)

var (
	defaultBudget        = decimal.NewFromInt(50000)
	optimisticQuoteRatio = decimal.RequireFromString("0.9")

	amountPattern         = regexp.MustCompile(`(?i)(\$|€|£)?(\d[\d,]*(?:\.\d+)?)(?:\s*(thousand|hundred|k|m)\b)?`)
	currencySuffixPattern = regexp.MustCompile(`(?i)^\s*(usd|eur|gbp|inr|dollars?)\b`)
	deliveryPattern       = regexp.MustCompile(`(?i)(\d+)\s*(days?|weeks?|months?)\b`)
	itemPattern           = regexp.MustCompile(`(?i)(\d+)\s*(laptops?|monitors?|computers?|screens?)\b`)

	budgetKeywords = []string{"budget"}
	quoteKeywords  = []string{"total", "price", "cost", "quote", "amount"}
)

// keywordWindow is how far before a number a keyword may appear to claim it.
const keywordWindow = 24

type amountMatch struct {
	value  decimal.Decimal
	marked bool
}

func parseAmountMatch(text, lower string, loc []int, keywords []string) (amountMatch, bool) {
	digits := strings.ReplaceAll(text[loc[4]:loc[5]], ",", "")
	value, err := decimal.NewFromString(digits)
	if err != nil {
		return amountMatch{}, false
	}
	// only "k" scales; "thousand", "hundred" and "m" are matched but left as is
	if loc[6] >= 0 && strings.EqualFold(text[loc[6]:loc[7]], "k") {
		value = value.Mul(decimal.NewFromInt(1000))
	}

	marked := loc[2] >= 0 || currencySuffixPattern.MatchString(text[loc[1]:])
	if !marked {
		window := lower[max(0, loc[0]-keywordWindow):loc[0]]
		for _, kw := range keywords {
			if strings.Contains(window, kw) {
				marked = true
				break
			}
		}
	}
	return amountMatch{value: value, marked: marked}, true
}

// findAmount returns the first currency-like amount in text. A number with a
// currency marker or a preceding keyword wins over a bare earlier number.
func findAmount(text string, keywords []string) (decimal.Decimal, bool) {
	lower := strings.ToLower(text)
	var first *amountMatch
	for _, loc := range amountPattern.FindAllStringSubmatchIndex(text, -1) {
		m, ok := parseAmountMatch(text, lower, loc, keywords)
		if !ok {
			continue
		}
		if m.marked {
			return m.value, true
		}
		if first == nil {
			first = &m
		}
	}
	if first == nil {
		return decimal.Zero, false
	}
	return first.value, true
}

// ExtractBudget finds the budget amount in an RFP description.
func ExtractBudget(description string) (decimal.Decimal, bool) {
	return findAmount(description, budgetKeywords)
}

// EstimateBudget is ExtractBudget with the 50000 default for missing or
// non-positive amounts.
func EstimateBudget(description string) decimal.Decimal {
	if budget, ok := ExtractBudget(description); ok && budget.IsPositive() {
		return budget
	}
	return defaultBudget
}

// ExtractQuote finds the quoted total in a vendor reply.
func ExtractQuote(body string) (decimal.Decimal, bool) {
	return findAmount(body, quoteKeywords)
}

// ExtractDeliveryDays converts the first "<n> day|week|month" phrase to days.
func ExtractDeliveryDays(text string) (int, bool) {
	m := deliveryPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	if n > maxDeliveryCount {
		return 0, false
	}
	unit := strings.ToLower(m[2])
	switch {
	case strings.HasPrefix(unit, "week"):
		return n * 7, true
	case strings.HasPrefix(unit, "month"):
		return n * 30, true
	default:
		return n, true
	}
}

func EstimateDeliveryDays(text string) int {
	if days, ok := ExtractDeliveryDays(text); ok && days > 0 {
		return days
	}
	return defaultDeliveryDays
}

// ExtractItems matches "<n> <laptops|monitors|computers|screens>" phrases.
// It never returns an empty list.
func ExtractItems(description string) []models.LineItem {
	var items []models.LineItem
	for _, m := range itemPattern.FindAllStringSubmatch(description, -1) {
		qty, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		items = append(items, models.LineItem{
			Name:           m[2],
			Quantity:       max(1, qty),
			Specifications: "Standard specifications",
		})
	}
	if len(items) == 0 {
		items = []models.LineItem{defaultLineItem()}
	}
	return items
}

func defaultLineItem() models.LineItem {
	return models.LineItem{
		Name:           "Procurement Items",
		Quantity:       1,
		Specifications: "As described in requirements",
	}
}

// HeuristicRFP builds a StructuredRFP from the description alone.
func HeuristicRFP(description string) models.StructuredRFP {
	return models.StructuredRFP{
		Items:               ExtractItems(description),
		TotalBudget:         EstimateBudget(description),
		Currency:            defaultCurrency,
		DeliveryDays:        EstimateDeliveryDays(description),
		PaymentTerms:        defaultRFPPaymentTerms,
		Warranty:            defaultRFPWarranty,
		SpecialRequirements: heuristicRequirements,
	}
}

// placeholderQuote is 90% of the RFP budget (or of the default budget).
func placeholderQuote(rfp models.StructuredRFP) decimal.Decimal {
	budget := rfp.TotalBudget
	if !budget.IsPositive() {
		budget = defaultBudget
	}
	return budget.Mul(optimisticQuoteRatio)
}

// distributeQuote splits total evenly over the RFP items. Unit prices are
// rounded to cents and each item total is unit price times quantity.
func distributeQuote(total decimal.Decimal, rfpItems []models.LineItem) []models.LineItem {
	if len(rfpItems) == 0 {
		unit, sum := total, total
		return []models.LineItem{{
			Name:           "Complete Solution",
			Quantity:       1,
			Specifications: "As per RFP requirements",
			UnitPrice:      &unit,
			TotalPrice:     &sum,
		}}
	}

	count := int64(len(rfpItems))
	items := make([]models.LineItem, 0, len(rfpItems))
	for _, item := range rfpItems {
		qty := max(1, item.Quantity)
		unit := total.Div(decimal.NewFromInt(count)).Div(decimal.NewFromInt(int64(qty))).Round(2)
		sum := unit.Mul(decimal.NewFromInt(int64(qty)))
		items = append(items, models.LineItem{
			Name:           item.Name,
			Quantity:       qty,
			Specifications: item.Specifications,
			UnitPrice:      &unit,
			TotalPrice:     &sum,
		})
	}
	return items
}

func heuristicProposalDeliveryDays(rfp models.StructuredRFP) int {
	if rfp.DeliveryDays > 0 {
		return max(1, rfp.DeliveryDays-heuristicDeliveryLeadDay)
	}
	return heuristicProposalDays
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return defaultCurrency
	}
	return currency
}

// HeuristicProposal reads a vendor reply without the gateway. The analysis
// is a fixed placeholder, not an evaluation.
func HeuristicProposal(email models.VendorEmail, rfp models.StructuredRFP, now time.Time) models.ParsedProposal {
	total, ok := ExtractQuote(EmailText(email.Body))
	if !ok || !total.IsPositive() {
		total = placeholderQuote(rfp)
	}

	proposal := models.StructuredProposal{
		Items:        distributeQuote(total, rfp.Items),
		TotalPrice:   total,
		Currency:     currencyOrDefault(rfp.Currency),
		DeliveryDate: models.NewDate(now.AddDate(0, 0, 30)),
		DeliveryDays: heuristicProposalDeliveryDays(rfp),
		PaymentTerms: heuristicProposalTerms,
		Warranty:     heuristicWarranty,
		Notes:        heuristicNotes,
	}

	return models.ParsedProposal{
		ProposalData: proposal,
		Analysis:     heuristicAnalysis(),
	}
}

func heuristicAnalysis() models.ProposalAnalysis {
	a := models.ProposalAnalysis{
		CompletenessScore: 85,
		PriceScore:        75,
		DeliveryScore:     90,
		TermsScore:        80,
		Summary:           "Competitive proposal with good terms and fast delivery.",
		Strengths:         []string{"Competitive pricing", "Fast delivery", "Extended warranty"},
		Weaknesses:        []string{"Payment terms slightly longer than requested"},
	}
	a.TotalScore = WeightedTotal(a.CompletenessScore, a.PriceScore, a.DeliveryScore, a.TermsScore)
	a.Recommendation = RecommendationForScore(a.TotalScore)
	return a
}

// placeholderScore stands in for a missing prior score: a pseudo-random
// value in [60,90) that is stable per vendor id.
func placeholderScore(vendorID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(vendorID))
	return 60 + int(h.Sum32()%30)
}

var heuristicInsights = []string{
	"All vendors provided competitive pricing.",
	"Delivery times are within acceptable range.",
	"Consider negotiating payment terms for better value.",
	"Vendor reputation and support should also be considered.",
}

const noProposalsInsight = "No proposals available for comparison. Proposals need to be submitted first."
