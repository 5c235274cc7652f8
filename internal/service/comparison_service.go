package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"rfp-desk/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ComparisonService ranks the stored proposals of one RFP and picks a
// recommended vendor.
type ComparisonService struct {
	gateway          *Gateway
	descriptionLimit int
	logger           *zap.Logger
}

func NewComparisonService(gateway *Gateway, descriptionLimit int, logger *zap.Logger) *ComparisonService {
	return &ComparisonService{
		gateway:          gateway,
		descriptionLimit: descriptionLimit,
		logger:           logger.Named("comparison"),
	}
}

func (s *ComparisonService) Compare(ctx context.Context, proposals []models.ProposalSummary, rfp models.RFPContext) models.ComparisonResult {
	return s.CompareOutcome(ctx, proposals, rfp).Data
}

// CompareOutcome never calls the gateway for an empty proposal list.
func (s *ComparisonService) CompareOutcome(ctx context.Context, proposals []models.ProposalSummary, rfp models.RFPContext) Outcome[models.ComparisonResult] {
	if len(proposals) == 0 {
		return Outcome[models.ComparisonResult]{Data: emptyComparison(), Source: SourceHeuristic}
	}
	proposals = withVendorDefaults(proposals)

	result, err := s.compareWithAI(ctx, proposals, rfp)
	if err != nil {
		logFallback(s.logger, "compare_proposals", err)
		return heuristicOutcome(HeuristicComparison(proposals), err)
	}

	s.logger.Info("Proposals compared with AI",
		zap.Int("proposals", len(proposals)),
		zap.String("best_vendor_id", result.Recommendation.BestVendorID),
	)
	return aiOutcome(result)
}

func (s *ComparisonService) compareWithAI(ctx context.Context, proposals []models.ProposalSummary, rfp models.RFPContext) (models.ComparisonResult, error) {
	text, err := s.gateway.Generate(ctx, buildComparisonPrompt(proposals, rfp, s.descriptionLimit))
	if err != nil {
		return models.ComparisonResult{}, err
	}

	var payload comparisonPayload
	if err := ExtractJSONInto(text, &payload); err != nil {
		return models.ComparisonResult{}, err
	}
	return coerceComparison(payload, proposals)
}

func emptyComparison() models.ComparisonResult {
	return models.ComparisonResult{
		Comparison: []models.VendorComparisonEntry{},
		Insights:   []string{noProposalsInsight},
	}
}

// withVendorDefaults fills missing vendor ids and names by position.
func withVendorDefaults(proposals []models.ProposalSummary) []models.ProposalSummary {
	out := slices.Clone(proposals)
	for i := range out {
		if out[i].VendorID == "" {
			out[i].VendorID = fmt.Sprintf("vendor-%d", i)
		}
		if out[i].VendorName == "" {
			out[i].VendorName = fmt.Sprintf("Vendor %d", i+1)
		}
	}
	return out
}

func priorScore(p models.ProposalSummary) int {
	if p.AIAnalysis != nil && p.AIAnalysis.TotalScore > 0 {
		return clampScore(p.AIAnalysis.TotalScore)
	}
	return placeholderScore(p.VendorID)
}

type candidate struct {
	entry    models.VendorComparisonEntry
	proposal models.ProposalSummary
}

func sortByScore(cs []candidate) {
	sort.SliceStable(cs, func(a, b int) bool {
		return cs[a].entry.TotalScore > cs[b].entry.TotalScore
	})
}

// rankBy ranks the candidates by ascending key, 1-based. Missing keys rank
// last and ties keep the current order.
func rankBy(cs []candidate, key func(models.ProposalSummary) (decimal.Decimal, bool)) []int {
	order := make([]int, len(cs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		va, okA := key(cs[order[a]].proposal)
		vb, okB := key(cs[order[b]].proposal)
		if okA != okB {
			return okA
		}
		return okA && va.LessThan(vb)
	})

	ranks := make([]int, len(cs))
	for pos, i := range order {
		ranks[i] = pos + 1
	}
	return ranks
}

func priceKey(p models.ProposalSummary) (decimal.Decimal, bool) {
	if p.StructuredData == nil || !p.StructuredData.TotalPrice.IsPositive() {
		return decimal.Zero, false
	}
	return p.StructuredData.TotalPrice, true
}

func deliveryKey(p models.ProposalSummary) (decimal.Decimal, bool) {
	if p.StructuredData == nil || p.StructuredData.DeliveryDays <= 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(int64(p.StructuredData.DeliveryDays)), true
}

func assignPriceRanks(cs []candidate) {
	for i, r := range rankBy(cs, priceKey) {
		cs[i].entry.PriceRank = r
	}
}

func assignDeliveryRanks(cs []candidate) {
	for i, r := range rankBy(cs, deliveryKey) {
		cs[i].entry.DeliveryRank = r
	}
}

// isPermutation reports whether ranks is exactly 1..len(ranks).
func isPermutation(ranks []int) bool {
	seen := make([]bool, len(ranks)+1)
	for _, r := range ranks {
		if r < 1 || r > len(ranks) || seen[r] {
			return false
		}
		seen[r] = true
	}
	return true
}

func entriesOf(cs []candidate) []models.VendorComparisonEntry {
	entries := make([]models.VendorComparisonEntry, len(cs))
	for i, c := range cs {
		entries[i] = c.entry
	}
	return entries
}

func defaultEntrySummary(vendorName string) string {
	return fmt.Sprintf("Proposal from %s with competitive pricing.", vendorName)
}

func topRecommendation(best models.VendorComparisonEntry) *models.RecommendationSummary {
	return &models.RecommendationSummary{
		BestVendorID:   best.VendorID,
		BestVendorName: best.VendorName,
		Reason:         fmt.Sprintf("Best overall score (%d/100) with good value for money.", best.TotalScore),
		Confidence:     best.TotalScore,
	}
}

// HeuristicComparison scores each proposal from its prior analysis (or a
// stable placeholder) and ranks price and delivery independently.
func HeuristicComparison(proposals []models.ProposalSummary) models.ComparisonResult {
	if len(proposals) == 0 {
		return emptyComparison()
	}
	proposals = withVendorDefaults(proposals)

	cs := make([]candidate, len(proposals))
	for i, p := range proposals {
		score := priorScore(p)
		cs[i] = candidate{
			entry: models.VendorComparisonEntry{
				VendorID:       p.VendorID,
				VendorName:     p.VendorName,
				TotalScore:     score,
				ValueForMoney:  score,
				Summary:        defaultEntrySummary(p.VendorName),
				Recommendation: RecommendationForScore(score),
			},
			proposal: p,
		}
	}
	sortByScore(cs)
	assignPriceRanks(cs)
	assignDeliveryRanks(cs)

	entries := entriesOf(cs)
	return models.ComparisonResult{
		Comparison:     entries,
		Recommendation: topRecommendation(entries[0]),
		Insights:       slices.Clone(heuristicInsights),
	}
}

// matchEntries maps every proposal to one generated entry, by vendor id and
// then by vendor name. Each entry is used at most once.
func matchEntries(entries []comparisonEntryPayload, proposals []models.ProposalSummary) ([]int, error) {
	used := make([]bool, len(entries))
	find := func(match func(comparisonEntryPayload) bool) int {
		for j, e := range entries {
			if !used[j] && match(e) {
				return j
			}
		}
		return -1
	}

	matched := make([]int, len(proposals))
	for i, p := range proposals {
		j := find(func(e comparisonEntryPayload) bool { return string(e.VendorID) == p.VendorID })
		if j < 0 {
			j = find(func(e comparisonEntryPayload) bool { return strings.EqualFold(string(e.VendorName), p.VendorName) })
		}
		if j < 0 {
			return nil, fmt.Errorf("%w: no comparison entry for vendor %q", ErrExtractionFailed, p.VendorID)
		}
		used[j] = true
		matched[i] = j
	}
	return matched, nil
}

func coerceComparison(payload comparisonPayload, proposals []models.ProposalSummary) (models.ComparisonResult, error) {
	matched, err := matchEntries(payload.Comparison, proposals)
	if err != nil {
		return models.ComparisonResult{}, err
	}

	cs := make([]candidate, len(proposals))
	for i, p := range proposals {
		e := payload.Comparison[matched[i]]

		total := priorScore(p)
		if e.TotalScore.ok {
			total = clampScore(e.TotalScore.int())
		}
		value := total
		if e.ValueForMoney.ok {
			value = clampScore(e.ValueForMoney.int())
		}
		summary := string(e.Summary)
		if summary == "" {
			summary = defaultEntrySummary(p.VendorName)
		}
		rec := RecommendationForScore(total)
		if e.Recommendation != "" {
			rec = models.ParseRecommendation(string(e.Recommendation))
		}

		cs[i] = candidate{
			entry: models.VendorComparisonEntry{
				VendorID:       p.VendorID,
				VendorName:     p.VendorName,
				TotalScore:     total,
				PriceRank:      e.PriceRank.int(),
				DeliveryRank:   e.DeliveryRank.int(),
				ValueForMoney:  value,
				Summary:        summary,
				Recommendation: rec,
			},
			proposal: p,
		}
	}
	sortByScore(cs)

	priceRanks := make([]int, len(cs))
	deliveryRanks := make([]int, len(cs))
	for i, c := range cs {
		priceRanks[i] = c.entry.PriceRank
		deliveryRanks[i] = c.entry.DeliveryRank
	}
	if !isPermutation(priceRanks) {
		assignPriceRanks(cs)
	}
	if !isPermutation(deliveryRanks) {
		assignDeliveryRanks(cs)
	}

	entries := entriesOf(cs)
	insights := payload.Insights.list()
	if len(insights) == 0 {
		insights = slices.Clone(heuristicInsights)
	}
	return models.ComparisonResult{
		Comparison:     entries,
		Recommendation: resolveRecommendation(payload.Recommendation, entries),
		Insights:       insights,
	}, nil
}

// resolveRecommendation accepts the generated pick only when it names one of
// the compared vendors; otherwise the top entry is recommended.
func resolveRecommendation(p *recommendationPayload, entries []models.VendorComparisonEntry) *models.RecommendationSummary {
	if p == nil {
		return topRecommendation(entries[0])
	}

	idx := slices.IndexFunc(entries, func(e models.VendorComparisonEntry) bool {
		return p.BestVendorID != "" && e.VendorID == string(p.BestVendorID)
	})
	if idx < 0 {
		idx = slices.IndexFunc(entries, func(e models.VendorComparisonEntry) bool {
			return p.BestVendorName != "" && strings.EqualFold(e.VendorName, string(p.BestVendorName))
		})
	}
	if idx < 0 {
		return topRecommendation(entries[0])
	}

	best := entries[idx]
	rec := topRecommendation(best)
	if p.Reason != "" {
		rec.Reason = string(p.Reason)
	}
	if p.Confidence.ok {
		rec.Confidence = clampScore(p.Confidence.int())
	}
	return rec
}
