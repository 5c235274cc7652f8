package cli

import (
	"errors"
	"strings"

	"rfp-desk/internal/models"

	"github.com/spf13/cobra"
)

const (
	parseRFPExample = `  rfpctl parse-rfp "We need 20 laptops within 2 weeks, budget $50,000"
  rfpctl parse-rfp --file request.txt`

	parseResponseExample = `  rfpctl parse-response --subject "Re: RFP" --rfp rfp.json < reply.txt
  rfpctl parse-response --body reply.html`
)

type sourced[T any] struct {
	Data   T      `json:"data"`
	Source string `json:"source"`
}

func parseRFPCmd(env *environment) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:     "parse-rfp [description...]",
		Short:   "Turn a free-text RFP description into structured data",
		Example: parseRFPExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			description := strings.Join(args, " ")
			if file != "" {
				data, err := readInput(cmd, file)
				if err != nil {
					return err
				}
				description = string(data)
			}
			if strings.TrimSpace(description) == "" {
				return errors.New("description is required")
			}

			out := env.procurement.ExtractRFPOutcome(cmd.Context(), description)
			return writeJSON(cmd.OutOrStdout(), sourced[models.StructuredRFP]{Data: out.Data, Source: string(out.Source)})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the description from a file (- for stdin)")
	return cmd
}

func parseResponseCmd(env *environment) *cobra.Command {
	var (
		subject string
		body    string
		rfpFile string
	)
	cmd := &cobra.Command{
		Use:     "parse-response",
		Short:   "Extract and score the offer in a vendor reply",
		Example: parseResponseExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rfp models.StructuredRFP
			if rfpFile != "" {
				if err := readJSON(cmd, rfpFile, &rfp); err != nil {
					return err
				}
			}

			text, err := readInput(cmd, body)
			if err != nil {
				return err
			}
			email := models.VendorEmail{Subject: subject, Body: string(text)}
			if strings.TrimSpace(email.Subject) == "" && strings.TrimSpace(email.Body) == "" {
				return errors.New("email subject or body is required")
			}

			out := env.procurement.ExtractProposalOutcome(cmd.Context(), email, rfp)
			return writeJSON(cmd.OutOrStdout(), sourced[models.ParsedProposal]{Data: out.Data, Source: string(out.Source)})
		},
	}
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Email subject")
	cmd.Flags().StringVarP(&body, "body", "b", "", "File holding the email body (default stdin)")
	cmd.Flags().StringVar(&rfpFile, "rfp", "", "JSON file with the structured RFP")
	return cmd
}
