package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	app "github.com/mohammadpnp/profile-import/internal/application/profileimport"
	"github.com/mohammadpnp/profile-import/internal/bootstrap"
	domain "github.com/mohammadpnp/profile-import/internal/domain/identity"
	"github.com/mohammadpnp/profile-import/internal/platform/config"
	"github.com/mohammadpnp/profile-import/internal/platform/logger"
	"github.com/mohammadpnp/profile-import/internal/platform/metrics"
)

var (
	runFile      string
	runCommitted string
	runRejected  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Import a CSV feed synchronously and print the summary",
	Args:  cobra.NoArgs,
	RunE:  runImport,
}

func init() {
	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "CSV feed to import")
	runCmd.Flags().StringVar(&runCommitted, "committed", "", "write the committed export to this path")
	runCmd.Flags().StringVar(&runRejected, "rejected", "", "write the rejected export to this path")
	_ = runCmd.MarkFlagRequired("file")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := cmd.Context()
	db, err := bootstrap.OpenDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	feed, err := os.Open(runFile)
	if err != nil {
		return fmt.Errorf("open feed: %w", err)
	}
	defer feed.Close()

	importer := bootstrap.NewImporter(db, cfg.Import, log, metrics.New(prometheus.NewRegistry()))
	result, err := importer.Run(ctx, feed, nil)
	if err != nil {
		return err
	}

	if err := writeExport(runCommitted, app.ReportCommitted, result.Report); err != nil {
		return err
	}
	if err := writeExport(runRejected, app.ReportRejected, result.Report); err != nil {
		return err
	}

	summary := result.Summary()
	fmt.Fprintf(cmd.OutOrStdout(), "total=%d successful=%d failed=%d duplicates=%d created=%d phone_updates=%d\n",
		summary.Stats.Total,
		summary.Stats.Successful,
		summary.Stats.Failed,
		summary.Stats.Duplicates,
		summary.CreatedCount,
		summary.UpdatedCount,
	)
	return nil
}

func writeExport(path string, kind app.ReportKind, report domain.ImportReport) error {
	if path == "" {
		return nil
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s export: %w", kind, err)
	}
	if err := app.WriteReport(out, kind, report); err != nil {
		out.Close()
		return fmt.Errorf("write %s export: %w", kind, err)
	}
	return out.Close()
}
