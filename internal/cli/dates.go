package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"wms-report/internal/service/picking"
)

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "List days found in the workbook",
	RunE:  runDates,
}

func init() {
	addSourceFlags(datesCmd)
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&sourceFile, "file", "f", "", "workbook (.xlsx)")
	cmd.Flags().StringVar(&sourceSheet, "sheet", "Input", "sheet with picking actions")
	cmd.Flags().BoolVar(&fromUpload, "upload", false, "read the fixed A:J range of the first sheet")
}

func runDates(cmd *cobra.Command, args []string) error {
	records, err := loadRecords()
	if err != nil {
		return err
	}

	dates := picking.Dates(records)
	logger.Debug("dates found", "file", sourceFile, "rows", len(records), "dates", len(dates))

	for _, d := range dates {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", d.Format("2006-01-02"), d.Format("02/01"))
	}
	return nil
}
