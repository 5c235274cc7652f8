package service

import (
	"strings"
	"testing"
	"time"

	"rfp-desk/internal/models"

	"github.com/shopspring/decimal"
)

func TestEstimateBudget(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{"dollar amount", "Need 20 laptops, budget $50,000", "50000"},
		{"k suffix", "Our budget 5k for accessories", "5000"},
		{"currency code suffix", "We have 75000 USD for this", "75000"},
		{"decimals", "budget of $1,250.50", "1250.5"},
		{"keyword before bare number", "Need 3 chairs. The budget is 900", "900"},
		{"first bare number", "Approximately 12000 for everything", "12000"},
		{"no number", "Office supplies for the new team", "50000"},
		{"zero budget", "budget 0", "50000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateBudget(tt.description)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("EstimateBudget(%q) = %s, want %s", tt.description, got, tt.want)
			}
		})
	}
}

func TestExtractQuote(t *testing.T) {
	tests := []struct {
		body string
		want string
		ok   bool
	}{
		{"Our total price is $42,000 for 20 laptops", "42000", true},
		{"We offer 20 laptops for a total of 40000", "40000", true},
		{"Thanks for reaching out, details to follow.", "0", false},
	}

	for _, tt := range tests {
		got, ok := ExtractQuote(tt.body)
		if ok != tt.ok || !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("ExtractQuote(%q) = %s, %v, want %s, %v", tt.body, got, ok, tt.want, tt.ok)
		}
	}
}

func TestEstimateDeliveryDays(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"delivery within 30 days", 30},
		{"in 2 weeks please", 14},
		{"within 1 month", 30},
		{"3 Months at most", 90},
		{"as soon as possible", 30},
		{"0 days", 30},
		{"2000000000000000000 months", 30},
		{"999999999999 weeks", 30},
	}

	for _, tt := range tests {
		if got := EstimateDeliveryDays(tt.text); got != tt.want {
			t.Errorf("EstimateDeliveryDays(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestExtractDeliveryDays_LargeCounts(t *testing.T) {
	tests := []struct {
		text   string
		want   int
		wantOK bool
	}{
		{"100000 months", 3000000, true},
		{"100001 months", 0, false},
		{"2000000000000000000 months", 0, false},
		{"99999999999999999999 days", 0, false},
	}

	for _, tt := range tests {
		got, ok := ExtractDeliveryDays(tt.text)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ExtractDeliveryDays(%q) = %d, %v, want %d, %v", tt.text, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestExtractItems(t *testing.T) {
	items := ExtractItems("We need 20 laptops and 15 Monitors for the office")
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Name != "laptops" || items[0].Quantity != 20 {
		t.Errorf("items[0] = %+v, want 20 laptops", items[0])
	}
	if items[1].Name != "Monitors" || items[1].Quantity != 15 {
		t.Errorf("items[1] = %+v, want 15 Monitors", items[1])
	}
	for _, item := range items {
		if item.UnitPrice != nil || item.TotalPrice != nil {
			t.Errorf("item %q should have no prices", item.Name)
		}
		if item.Specifications != "Standard specifications" {
			t.Errorf("item %q specifications = %q", item.Name, item.Specifications)
		}
	}

	fallback := ExtractItems("A new espresso machine")
	if len(fallback) != 1 || fallback[0].Name != "Procurement Items" || fallback[0].Quantity != 1 {
		t.Errorf("fallback items = %+v, want single Procurement Items", fallback)
	}
}

func TestHeuristicRFP(t *testing.T) {
	rfp := HeuristicRFP("We need 20 laptops and 15 monitors within 2 weeks, budget $50,000")

	if len(rfp.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(rfp.Items))
	}
	if !rfp.TotalBudget.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("TotalBudget = %s, want 50000", rfp.TotalBudget)
	}
	if rfp.DeliveryDays != 14 {
		t.Errorf("DeliveryDays = %d, want 14", rfp.DeliveryDays)
	}
	if rfp.Currency != "USD" || rfp.PaymentTerms != "Net 30" || rfp.Warranty != "1 year" {
		t.Errorf("defaults = %q/%q/%q", rfp.Currency, rfp.PaymentTerms, rfp.Warranty)
	}
	if rfp.DeliveryDate != nil {
		t.Errorf("DeliveryDate = %v, want nil", rfp.DeliveryDate)
	}
	if rfp.SpecialRequirements == "" {
		t.Error("SpecialRequirements should be set")
	}
}

func TestHeuristicRFP_EmptyDescription(t *testing.T) {
	rfp := HeuristicRFP("")
	if len(rfp.Items) == 0 {
		t.Fatal("items must never be empty")
	}
	if !rfp.TotalBudget.Equal(defaultBudget) || rfp.DeliveryDays != defaultDeliveryDays {
		t.Errorf("got budget %s and %d days, want defaults", rfp.TotalBudget, rfp.DeliveryDays)
	}
}

func TestHeuristicProposal_DistributesPlaceholderQuote(t *testing.T) {
	now := time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)
	rfp := HeuristicRFP("We need 20 laptops and 15 monitors within 2 weeks, budget $50,000")

	parsed := HeuristicProposal(models.VendorEmail{Subject: "Re: RFP", Body: "Please find our offer attached."}, rfp, now)
	p := parsed.ProposalData

	if !p.TotalPrice.Equal(decimal.NewFromInt(45000)) {
		t.Fatalf("TotalPrice = %s, want 45000", p.TotalPrice)
	}
	if len(p.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(p.Items))
	}
	wantUnits := []string{"1125", "1500"}
	for i, item := range p.Items {
		if !item.UnitPrice.Equal(decimal.RequireFromString(wantUnits[i])) {
			t.Errorf("items[%d].UnitPrice = %s, want %s", i, item.UnitPrice, wantUnits[i])
		}
		if !item.TotalPrice.Equal(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))) {
			t.Errorf("items[%d].TotalPrice = %s, not unit price times quantity", i, item.TotalPrice)
		}
	}
	if p.DeliveryDays != 9 {
		t.Errorf("DeliveryDays = %d, want 9", p.DeliveryDays)
	}
	if p.DeliveryDate == nil || p.DeliveryDate.String() != "2026-11-13" {
		t.Errorf("DeliveryDate = %v, want 2026-11-13", p.DeliveryDate)
	}
	if p.PaymentTerms != "Net 45" || p.Warranty != "2 years" {
		t.Errorf("terms = %q/%q", p.PaymentTerms, p.Warranty)
	}

	a := parsed.Analysis
	if a.TotalScore != 83 || a.Recommendation != models.RecommendationHigh {
		t.Errorf("analysis total = %d (%s), want 83 (high)", a.TotalScore, a.Recommendation)
	}
	if len(a.Strengths) == 0 || len(a.Weaknesses) == 0 {
		t.Error("analysis should list strengths and weaknesses")
	}
}

func TestHeuristicProposal_HugeQuantities(t *testing.T) {
	tests := []struct {
		name string
		qty  int
	}{
		{"near int64 limit", 1 << 62},
		{"max int", int(^uint(0) >> 1)},
		{"zero", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rfp := models.StructuredRFP{TotalBudget: decimal.NewFromInt(1000)}
			for i := 0; i < 4; i++ {
				rfp.Items = append(rfp.Items, models.LineItem{Name: "bolt", Quantity: tt.qty})
			}

			parsed := HeuristicProposal(models.VendorEmail{Body: "Offer attached."}, rfp, time.Now())
			items := parsed.ProposalData.Items
			if len(items) != 4 {
				t.Fatalf("len(Items) = %d, want 4", len(items))
			}
			for i, item := range items {
				if item.Quantity < 1 {
					t.Errorf("items[%d].Quantity = %d, want >= 1", i, item.Quantity)
				}
				if item.UnitPrice == nil || item.TotalPrice == nil {
					t.Fatalf("items[%d] has no prices", i)
				}
				if item.UnitPrice.IsNegative() || item.TotalPrice.IsNegative() {
					t.Errorf("items[%d] prices = %s/%s, want non-negative", i, item.UnitPrice, item.TotalPrice)
				}
			}
		})
	}
}

func TestHeuristicProposal_QuotedPriceWithoutRFPItems(t *testing.T) {
	rfp := models.StructuredRFP{Currency: "EUR"}
	parsed := HeuristicProposal(models.VendorEmail{Body: "Our quote: 12,500 EUR, delivery in 3 weeks."}, rfp, time.Now())
	p := parsed.ProposalData

	if !p.TotalPrice.Equal(decimal.NewFromInt(12500)) {
		t.Errorf("TotalPrice = %s, want 12500", p.TotalPrice)
	}
	if len(p.Items) != 1 || p.Items[0].Name != "Complete Solution" || p.Items[0].Quantity != 1 {
		t.Errorf("Items = %+v, want single Complete Solution", p.Items)
	}
	if p.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", p.Currency)
	}
	if p.DeliveryDays != heuristicProposalDays {
		t.Errorf("DeliveryDays = %d, want %d", p.DeliveryDays, heuristicProposalDays)
	}
}

func TestPlaceholderScore(t *testing.T) {
	for _, id := range []string{"", "vendor-0", "5fbb7c1e-2c6a-4d7e-9a59-3b1b1a4f1c2d", "acme"} {
		s := placeholderScore(id)
		if s < 60 || s >= 90 {
			t.Errorf("placeholderScore(%q) = %d, want [60,90)", id, s)
		}
		if again := placeholderScore(id); again != s {
			t.Errorf("placeholderScore(%q) not stable: %d then %d", id, s, again)
		}
	}
}

func TestWeightedTotalAndRecommendation(t *testing.T) {
	if got := WeightedTotal(85, 75, 90, 80); got != 83 {
		t.Errorf("WeightedTotal() = %d, want 83", got)
	}
	if got := WeightedTotal(100, 100, 100, 100); got != 100 {
		t.Errorf("WeightedTotal() = %d, want 100", got)
	}

	tests := []struct {
		score int
		want  models.Recommendation
	}{
		{100, models.RecommendationHigh},
		{81, models.RecommendationHigh},
		{80, models.RecommendationMedium},
		{50, models.RecommendationMedium},
		{49, models.RecommendationLow},
		{0, models.RecommendationLow},
	}
	for _, tt := range tests {
		if got := RecommendationForScore(tt.score); got != tt.want {
			t.Errorf("RecommendationForScore(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestNormalizeAnalysis(t *testing.T) {
	tests := []struct {
		name string
		in   models.ProposalAnalysis
		want models.Recommendation
	}{
		{"uppercase", models.ProposalAnalysis{TotalScore: 40, Recommendation: "HIGH"}, models.RecommendationHigh},
		{"unknown", models.ProposalAnalysis{TotalScore: 95, Recommendation: "excellent"}, models.RecommendationMedium},
		{"missing uses score", models.ProposalAnalysis{TotalScore: 95}, models.RecommendationHigh},
		{"missing low score", models.ProposalAnalysis{TotalScore: 10, Recommendation: "  "}, models.RecommendationLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAnalysis(tt.in)
			if got.Recommendation != tt.want {
				t.Errorf("Recommendation = %s, want %s", got.Recommendation, tt.want)
			}
			if got.Strengths == nil || got.Weaknesses == nil {
				t.Error("lists should be non-nil")
			}
		})
	}

	clamped := NormalizeAnalysis(models.ProposalAnalysis{PriceScore: 140, TermsScore: -5, TotalScore: 101})
	if clamped.PriceScore != 100 || clamped.TermsScore != 0 || clamped.TotalScore != 100 {
		t.Errorf("scores not clamped: %+v", clamped)
	}
}

func TestEmailText(t *testing.T) {
	plain := EmailText("Hello   team,\r\n\r\n\r\n\r\nTotal\tprice: $900  ")
	if plain != "Hello team,\n\nTotal price: $900" {
		t.Errorf("EmailText(plain) = %q", plain)
	}

	html := EmailText(`<html><body><p>Total: $1,000 &amp; free shipping</p><br><b>Thanks</b></body></html>`)
	if strings.Contains(html, "<") {
		t.Errorf("EmailText(html) kept markup: %q", html)
	}
	if !strings.Contains(html, "Total: $1,000 & free shipping") || !strings.Contains(html, "Thanks") {
		t.Errorf("EmailText(html) = %q", html)
	}
}

func TestRFPReference(t *testing.T) {
	id := "5fbb7c1e-2c6a-4d7e-9a59-3b1b1a4f1c2d"
	subject := FormatRFPSubject("Office laptops", id)
	if subject != "RFP: Office laptops [RFP-"+id+"]" {
		t.Errorf("FormatRFPSubject() = %q", subject)
	}

	got, ok := ParseRFPReference("Re: " + strings.ToUpper(subject))
	if !ok || got != id {
		t.Errorf("ParseRFPReference() = %q, %v, want %q", got, ok, id)
	}

	if _, ok := ParseRFPReference("Re: your message"); ok {
		t.Error("ParseRFPReference() should not match an untagged subject")
	}
}

func TestSanitizeUTF8(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"ok\xffyes", "okyes"},
		{"\xfe\xff", ""},
		{"Zürich 20€", "Zürich 20€"},
	}

	for _, tt := range tests {
		if got := sanitizeUTF8(tt.in); got != tt.want {
			t.Errorf("sanitizeUTF8(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
