package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	generate_excel "wms-report/internal/service/generate-excel"
	"wms-report/internal/service/render"
	"wms-report/internal/service/report"
	"wms-report/internal/storage"
)

var (
	reportDate string
	htmlOut    string
	xlsxOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the picking report for one day",
	RunE:  runReport,
}

func init() {
	addSourceFlags(reportCmd)
	reportCmd.Flags().StringVarP(&reportDate, "date", "d", "", "day to report, YYYY-MM-DD")
	reportCmd.Flags().StringVar(&htmlOut, "html", "", "also write the HTML report to this file")
	reportCmd.Flags().StringVar(&xlsxOut, "xlsx", "", "also write the Excel report to this file")
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportDate == "" {
		return fmt.Errorf("--date is required")
	}
	date, err := time.Parse("2006-01-02", reportDate)
	if err != nil {
		return fmt.Errorf("invalid --date %q: %w", reportDate, err)
	}

	records, err := loadRecords()
	if err != nil {
		return err
	}
	logger.Debug("records loaded", "file", sourceFile, "rows", len(records))

	rep, err := report.ComputeReport(records, date)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if rep.Empty {
		fmt.Fprintf(out, "No picking records for %s\n", render.FormatDay(date))
	} else {
		fmt.Fprintln(out, workersTable(rep))
	}
	fmt.Fprintln(out, statsTable(rep))

	store := storage.StoreName(filepath.Base(sourceFile))
	if htmlOut != "" {
		if err := writeHTML(htmlOut, store, rep); err != nil {
			return err
		}
		logger.Info("html report written", "path", htmlOut)
	}
	if xlsxOut != "" {
		data, err := generate_excel.Build(store, rep)
		if err != nil {
			return err
		}
		if err := os.WriteFile(xlsxOut, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", xlsxOut, err)
		}
		logger.Info("excel report written", "path", xlsxOut)
	}

	return nil
}

func writeHTML(path, store string, rep *report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render.HTML(f, store, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
