package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mindtrack-chi/internal/client"
)

type rootOptions struct {
	server  string
	timeout time.Duration
	asJSON  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "mindtrack-cli",
		Short:         "Query the mindtrack CHI service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.server, "server", "http://localhost:8080", "CHI service base URL")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "request timeout")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print raw JSON")

	root.AddCommand(newStateCmd(opts))
	root.AddCommand(newDailyCmd(opts))
	root.AddCommand(newWeeklyCmd(opts))
	root.AddCommand(newMonthlyCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newWeightsCmd(opts))
	root.AddCommand(newAlertsCmd(opts))
	return root
}

func newClient(opts *rootOptions) *client.CHIClient {
	return client.NewCHIClient(opts.server, opts.timeout, zap.NewNop())
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newStateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "state <date>",
		Short: "Show the full system state for a date (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := newClient(opts).State(context.Background(), args[0])
			if err != nil {
				return err
			}
			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), state)
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "date: %s\nchi: %d (%s)\n", state.Date, state.CHIScore, state.RiskLevel)
			for _, c := range state.CHIResult.Contributions {
				_, _ = fmt.Fprintf(out, "  %-10s %3d  w=%.2f  %s\n", c.Modality, c.Score, c.Weight, c.Explanation)
			}
			for _, r := range state.FiredRules {
				if r.Fired {
					_, _ = fmt.Fprintf(out, "fired %s %s: %s\n", r.RuleID, r.RuleName, r.Explanation)
				}
			}
			return nil
		},
	}
}

func newDailyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "daily <date>",
		Short: "Show the daily summary and timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := newClient(opts).Daily(context.Background(), args[0])
			if err != nil {
				return err
			}
			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), summary)
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "date: %s\nchi: %d (%s)\nrules: %s\nrecommendation: %s\n",
				summary.Date, summary.State.CHIScore, summary.Risk.Label, summary.RuleSummary, summary.Recommendation)
			for _, e := range summary.Timeline {
				_, _ = fmt.Fprintf(out, "  %s  %-14s %s\n", e.Time, e.Type, e.Title)
			}
			return nil
		},
	}
}

func newWeeklyCmd(opts *rootOptions) *cobra.Command {
	var endDate string
	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Show the seven-day summary ending at --end (default today)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, err := newClient(opts).Weekly(context.Background(), strings.TrimSpace(endDate))
			if err != nil {
				return err
			}
			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), summary)
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "week: %s .. %s\navg chi: %d (%s %.1f%% vs %d)\n",
				summary.StartDate, summary.EndDate, summary.Stats.AvgCHI,
				summary.Comparison.Direction, summary.Comparison.Percentage, summary.Comparison.PreviousAvgCHI)
			_, _ = fmt.Fprintf(out, "risk: low=%d moderate=%d high=%d  longest low streak: %d\n",
				summary.RiskCounts.Low, summary.RiskCounts.Moderate, summary.RiskCounts.High, summary.LongestLowStreak)
			for _, d := range summary.Days {
				_, _ = fmt.Fprintf(out, "  %s  %3d  %s\n", d.Date, d.CHIScore, d.RiskLevel)
			}
			for _, c := range summary.TopContributors {
				_, _ = fmt.Fprintf(out, "top: %s x%d\n", c.RuleName, c.Count)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&endDate, "end", "", "last day of the week (YYYY-MM-DD)")
	return cmd
}

func newMonthlyCmd(opts *rootOptions) *cobra.Command {
	var offset int
	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Show a calendar month summary (--offset 0 = current month)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, err := newClient(opts).Monthly(context.Background(), offset)
			if err != nil {
				return err
			}
			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), summary)
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "month: %s %d\navg chi: %d (%s %.1f%% vs %d)\n",
				summary.Month, summary.Year, summary.Stats.AvgCHI,
				summary.Comparison.Direction, summary.Comparison.Percentage, summary.Comparison.PreviousAvgCHI)
			for _, s := range summary.RiskDistribution {
				_, _ = fmt.Fprintf(out, "  %-8s %d\n", s.Level, s.Count)
			}
			for _, p := range summary.CHITrend {
				_, _ = fmt.Fprintf(out, "  day %s  %3d\n", p.Day, p.CHIScore)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "months relative to the current month")
	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var offset int
	var outPath string
	cmd := &cobra.Command{
		Use:   "export --out <file.xlsx>",
		Short: "Download the monthly summary as an Excel workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(outPath) == "" {
				return fmt.Errorf("--out is required")
			}
			data, err := newClient(opts).ExportMonthly(context.Background(), offset)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", outPath, len(data))
			return nil
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "months relative to the current month")
	cmd.Flags().StringVar(&outPath, "out", "", "output file")
	return cmd
}

func newWeightsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "weights",
		Short: "Show the fusion weights used by the service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := newClient(opts).Weights(context.Background())
			if err != nil {
				return err
			}
			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), view)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (total %d)\n", view.Text, view.Total)
			return nil
		},
	}
}

func newAlertsCmd(opts *rootOptions) *cobra.Command {
	var date string
	var limit int
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List recorded rule alerts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			alerts, err := newClient(opts).Alerts(context.Background(), strings.TrimSpace(date), limit)
			if err != nil {
				return err
			}
			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), alerts)
			}
			if len(alerts) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no alerts")
				return nil
			}
			for _, a := range alerts {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%-8s\t%s\tchi=%d\n", a.Date, a.RuleID, a.AlertLevel, a.RuleName, a.CHIScore)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "only alerts for this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of alerts")
	return cmd
}
