package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonathan/jobtracker/internal/analytics"
	"github.com/jonathan/jobtracker/internal/db"
	"github.com/jonathan/jobtracker/internal/observability"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func newAnalyzeCmd(configPath *string) *cobra.Command {
	var email, format, now string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print pipeline analytics for a user",
		Long: `Load every application owned by the user and print the status summary, pipeline velocity,
insights, and each application's health score and offer probability.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch format {
			case formatText, formatJSON, formatYAML:
			default:
				return fmt.Errorf("unknown --format %q (want text, json or yaml)", format)
			}
			at, err := evaluationTime(now)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			rt, err := openRuntime(ctx, *configPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			user, err := rt.userByEmail(ctx, email)
			if err != nil {
				return err
			}
			apps, err := rt.store.ListApplications(ctx, user.ID)
			if err != nil {
				return err
			}

			return writeReport(cmd.OutOrStdout(), format, analytics.BuildReport(db.Records(apps), at))
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email of the user to analyze (required)")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, json or yaml")
	cmd.Flags().StringVar(&now, "now", "", "Evaluation date (2006-01-02 or RFC3339), defaults to the current time")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func writeReport(out io.Writer, format string, report analytics.Report) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return enc.Close()
	default:
		observability.NewPrinter(out).PrintReport(report)
		return nil
	}
}
