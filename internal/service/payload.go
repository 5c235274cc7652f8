package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"rfp-desk/internal/models"

	"github.com/shopspring/decimal"
)

// Generated JSON is loosely typed: numbers arrive as strings ("$1,200"),
// strings as numbers, fields go missing. The payload types below accept all
// of that and the toModel methods apply the documented defaults.

var (
	leadingNumberPattern = regexp.MustCompile(`-?\d[\d,]*(?:\.\d+)?`)
	currencyCodePattern  = regexp.MustCompile(`^[A-Z]{3}$`)
)

var (
	maxFlexInt = decimal.NewFromInt(math.MaxInt32)
	minFlexInt = decimal.NewFromInt(math.MinInt32)
)

var currencySymbols = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
}

// flexNumber accepts a JSON number or a string containing one. Anything
// else leaves it unset.
type flexNumber struct {
	value decimal.Decimal
	ok    bool
}

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.ReplaceAll(leadingNumberPattern.FindString(s), ",", "")
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	n.value, n.ok = v, true
	return nil
}

func (n flexNumber) nonNegative() bool {
	return n.ok && !n.value.IsNegative()
}

// int saturates at the int32 range so oversized values cannot wrap.
func (n flexNumber) int() int {
	v := n.value.Round(0)
	switch {
	case v.GreaterThan(maxFlexInt):
		return math.MaxInt32
	case v.LessThan(minFlexInt):
		return math.MinInt32
	}
	return int(v.IntPart())
}

func (n flexNumber) decimalPtr() *decimal.Decimal {
	if !n.nonNegative() {
		return nil
	}
	v := n.value
	return &v
}

// flexString accepts a JSON string, number or bool.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 {
		return nil
	}
	switch raw[0] {
	case '"':
		var v string
		if err := json.Unmarshal(raw, &v); err == nil {
			*s = flexString(strings.TrimSpace(v))
		}
	case '{', '[', 'n':
		// objects, arrays and null carry no usable text
	default:
		*s = flexString(raw)
	}
	return nil
}

// flexStrings accepts a list of scalars or a single string.
type flexStrings []string

func (l *flexStrings) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 {
		return nil
	}
	if raw[0] != '[' {
		var one flexString
		_ = one.UnmarshalJSON(raw)
		if one != "" {
			*l = flexStrings{string(one)}
		}
		return nil
	}
	var items []flexString
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make(flexStrings, 0, len(items))
	for _, item := range items {
		if item != "" {
			out = append(out, string(item))
		}
	}
	*l = out
	return nil
}

func (l flexStrings) list() []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}

func normalizeCurrency(raw flexString, fallback string) string {
	c := strings.ToUpper(strings.TrimSpace(string(raw)))
	if code, ok := currencySymbols[c]; ok {
		return code
	}
	if currencyCodePattern.MatchString(c) {
		return c
	}
	return currencyOrDefault(fallback)
}

func parseOptionalDate(raw flexString) *models.Date {
	d, err := models.ParseDate(string(raw))
	if err != nil {
		return nil
	}
	return d
}

type lineItemPayload struct {
	Name           flexString `json:"name"`
	Quantity       flexNumber `json:"quantity"`
	Specifications flexString `json:"specifications"`
	UnitPrice      flexNumber `json:"unitPrice"`
	TotalPrice     flexNumber `json:"totalPrice"`
}

func (p lineItemPayload) toModel(index int) models.LineItem {
	name := string(p.Name)
	if name == "" {
		name = fmt.Sprintf("Item %d", index+1)
	}
	qty := 1
	if p.Quantity.ok {
		qty = max(1, p.Quantity.int())
	}
	return models.LineItem{
		Name:           name,
		Quantity:       qty,
		Specifications: string(p.Specifications),
		UnitPrice:      p.UnitPrice.decimalPtr(),
		TotalPrice:     p.TotalPrice.decimalPtr(),
	}
}

func lineItems(payloads []lineItemPayload) []models.LineItem {
	items := make([]models.LineItem, 0, len(payloads))
	for i, p := range payloads {
		items = append(items, p.toModel(i))
	}
	return items
}

type rfpPayload struct {
	Items               []lineItemPayload `json:"items"`
	TotalBudget         flexNumber        `json:"totalBudget"`
	Currency            flexString        `json:"currency"`
	DeliveryDate        flexString        `json:"deliveryDate"`
	DeliveryDays        flexNumber        `json:"deliveryDays"`
	PaymentTerms        flexString        `json:"paymentTerms"`
	Warranty            flexString        `json:"warranty"`
	SpecialRequirements flexString        `json:"specialRequirements"`
}

// toModel fills gaps from the description heuristics so the item list and
// budget are always usable.
func (p rfpPayload) toModel(description string) models.StructuredRFP {
	items := lineItems(p.Items)
	if len(items) == 0 {
		items = ExtractItems(description)
	}

	budget := EstimateBudget(description)
	if p.TotalBudget.nonNegative() {
		budget = p.TotalBudget.value
	}

	days := EstimateDeliveryDays(description)
	if p.DeliveryDays.nonNegative() {
		days = p.DeliveryDays.int()
	}

	rfp := models.StructuredRFP{
		Items:               items,
		TotalBudget:         budget,
		Currency:            normalizeCurrency(p.Currency, defaultCurrency),
		DeliveryDate:        parseOptionalDate(p.DeliveryDate),
		DeliveryDays:        days,
		PaymentTerms:        string(p.PaymentTerms),
		Warranty:            string(p.Warranty),
		SpecialRequirements: string(p.SpecialRequirements),
	}
	if rfp.PaymentTerms == "" {
		rfp.PaymentTerms = defaultRFPPaymentTerms
	}
	if rfp.Warranty == "" {
		rfp.Warranty = defaultRFPWarranty
	}
	return rfp
}

type proposalDataPayload struct {
	Items        []lineItemPayload `json:"items"`
	TotalPrice   flexNumber        `json:"totalPrice"`
	Currency     flexString        `json:"currency"`
	DeliveryDate flexString        `json:"deliveryDate"`
	DeliveryDays flexNumber        `json:"deliveryDays"`
	PaymentTerms flexString        `json:"paymentTerms"`
	Warranty     flexString        `json:"warranty"`
	Notes        flexString        `json:"notes"`
}

func (p proposalDataPayload) toModel(rfp models.StructuredRFP, body string) models.StructuredProposal {
	items := lineItems(p.Items)

	total := decimal.Zero
	if p.TotalPrice.nonNegative() {
		total = p.TotalPrice.value
	} else {
		for _, item := range items {
			if item.TotalPrice != nil {
				total = total.Add(*item.TotalPrice)
			}
		}
	}

	days, ok := ExtractDeliveryDays(body)
	if !ok || days < 0 {
		days = heuristicProposalDeliveryDays(rfp)
	}
	if p.DeliveryDays.nonNegative() {
		days = p.DeliveryDays.int()
	}

	return models.StructuredProposal{
		Items:        items,
		TotalPrice:   total,
		Currency:     normalizeCurrency(p.Currency, rfp.Currency),
		DeliveryDate: parseOptionalDate(p.DeliveryDate),
		DeliveryDays: days,
		PaymentTerms: string(p.PaymentTerms),
		Warranty:     string(p.Warranty),
		Notes:        string(p.Notes),
	}
}

type analysisPayload struct {
	CompletenessScore flexNumber  `json:"completenessScore"`
	PriceScore        flexNumber  `json:"priceScore"`
	DeliveryScore     flexNumber  `json:"deliveryScore"`
	TermsScore        flexNumber  `json:"termsScore"`
	TotalScore        flexNumber  `json:"totalScore"`
	Summary           flexString  `json:"summary"`
	Strengths         flexStrings `json:"strengths"`
	Weaknesses        flexStrings `json:"weaknesses"`
	Recommendation    flexString  `json:"recommendation"`
}

func score(n flexNumber) int {
	if !n.ok {
		return 0
	}
	return clampScore(n.int())
}

// toModel keeps the recommendation as generated; callers normalize it.
func (p analysisPayload) toModel() models.ProposalAnalysis {
	a := models.ProposalAnalysis{
		CompletenessScore: score(p.CompletenessScore),
		PriceScore:        score(p.PriceScore),
		DeliveryScore:     score(p.DeliveryScore),
		TermsScore:        score(p.TermsScore),
		Summary:           string(p.Summary),
		Strengths:         p.Strengths.list(),
		Weaknesses:        p.Weaknesses.list(),
		Recommendation:    models.Recommendation(p.Recommendation),
	}
	if p.TotalScore.ok {
		a.TotalScore = score(p.TotalScore)
	} else {
		a.TotalScore = WeightedTotal(a.CompletenessScore, a.PriceScore, a.DeliveryScore, a.TermsScore)
	}
	return a
}

type proposalPayload struct {
	ProposalData *proposalDataPayload `json:"proposalData"`
	Analysis     *analysisPayload     `json:"analysis"`
}

type comparisonEntryPayload struct {
	VendorID       flexString `json:"vendorId"`
	VendorName     flexString `json:"vendorName"`
	TotalScore     flexNumber `json:"totalScore"`
	PriceRank      flexNumber `json:"priceRank"`
	DeliveryRank   flexNumber `json:"deliveryRank"`
	ValueForMoney  flexNumber `json:"valueForMoney"`
	Summary        flexString `json:"summary"`
	Recommendation flexString `json:"recommendation"`
}

type recommendationPayload struct {
	BestVendorID   flexString `json:"bestVendorId"`
	BestVendorName flexString `json:"bestVendorName"`
	Reason         flexString `json:"reason"`
	Confidence     flexNumber `json:"confidence"`
}

type comparisonPayload struct {
	Comparison     []comparisonEntryPayload `json:"comparison"`
	Recommendation *recommendationPayload   `json:"recommendation"`
	Insights       flexStrings              `json:"insights"`
}
