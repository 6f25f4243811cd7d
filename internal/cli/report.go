package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"orderdesk/internal/domain"
	"orderdesk/internal/reports"
)

// ReportOptions holds flags for the report subcommands.
type ReportOptions struct {
	*RootOptions
	Range string
	Out   string
}

// NewReportCommand creates the report command group.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export dashboard data as CSV",
	}
	cmd.AddCommand(newReportOrdersCommand(rootOpts))
	cmd.AddCommand(newReportSummaryCommand(rootOpts))
	return cmd
}

func reportFlags(cmd *cobra.Command, opts *ReportOptions) {
	cmd.Flags().StringVar(&opts.Range, "range", "today", "aggregation window (today|weekly|monthly)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "output file (stdout when omitted)")
}

// reportWriter resolves the --out flag into a writer.
func reportWriter(cmd *cobra.Command, opts *ReportOptions) (io.Writer, func() error, error) {
	if opts.Out == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(opts.Out)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func newReportOrdersCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Export completed orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(opts.RootOptions)
			if err != nil {
				return err
			}
			dash, err := e.API.GetOrderDashboard(cmd.Context(), domain.Range(opts.Range))
			if err != nil {
				return err
			}
			w, done, err := reportWriter(cmd, opts)
			if err != nil {
				return err
			}
			if err := reports.WriteOrdersCSV(w, dash); err != nil {
				done()
				return err
			}
			if err := done(); err != nil {
				return err
			}
			if opts.Out != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.Out)
			}
			return nil
		},
	}

	reportFlags(cmd, opts)
	return cmd
}

func newReportSummaryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Export the revenue summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(opts.RootOptions)
			if err != nil {
				return err
			}
			rng := domain.Range(opts.Range)
			dash, err := e.API.GetOrderDashboard(cmd.Context(), rng)
			if err != nil {
				return err
			}
			w, done, err := reportWriter(cmd, opts)
			if err != nil {
				return err
			}
			if err := reports.WriteSummaryCSV(w, rng, dash); err != nil {
				done()
				return err
			}
			if err := done(); err != nil {
				return err
			}
			if opts.Out != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.Out)
			}
			return nil
		},
	}

	reportFlags(cmd, opts)
	return cmd
}
