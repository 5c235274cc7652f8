package cli

import (
	"fmt"
	"io"

	"rfp-desk/internal/dto"
	"rfp-desk/internal/models"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func compareCmd(env *environment) *cobra.Command {
	var (
		input  string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Rank vendor proposals and recommend one",
		Long:  "Reads a JSON document {\"proposals\": [...], \"rfp\": {...}} shaped like the /api/v1/ai/compare request.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req dto.CompareRequest
			if err := readJSON(cmd, input, &req); err != nil {
				return err
			}

			out := env.procurement.CompareProposalsOutcome(cmd.Context(), req.Proposals, req.RFP)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), sourced[models.ComparisonResult]{Data: out.Data, Source: string(out.Source)})
			}
			renderComparison(cmd.OutOrStdout(), out.Data, string(out.Source))
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON input file (default stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw comparison as JSON")
	return cmd
}

func renderComparison(w io.Writer, result models.ComparisonResult, source string) {
	if len(result.Comparison) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"#", "Vendor", "Score", "Price rank", "Delivery rank", "Value", "Recommendation"})
		for i, e := range result.Comparison {
			t.AppendRow(table.Row{i + 1, e.VendorName, e.TotalScore, e.PriceRank, e.DeliveryRank, e.ValueForMoney, e.Recommendation})
		}
		t.AppendFooter(table.Row{"", "source: " + source})
		t.Render()
	}

	if rec := result.Recommendation; rec != nil {
		fmt.Fprintf(w, "\nRecommended: %s (confidence %d%%)\n%s\n", rec.BestVendorName, rec.Confidence, rec.Reason)
	}
	if len(result.Insights) > 0 {
		fmt.Fprintln(w, "\nInsights:")
		for _, insight := range result.Insights {
			fmt.Fprintf(w, "  - %s\n", insight)
		}
	}
}
