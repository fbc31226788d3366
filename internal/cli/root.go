// Package cli offline-отчет по xlsx файлу без сервера.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	verbose  bool
	logFile  string
	logger   *slog.Logger
	closeLog func() error
)

var rootCmd = &cobra.Command{
	Use:   "wmsreport",
	Short: "Warehouse picking performance report",
	Long: `wmsreport builds the picking performance report from a WMS export
without running the server.

Examples:
  wmsreport dates --file store.xlsx
  wmsreport report --file store.xlsx --date 2026-01-05
  wmsreport report --file upload.xlsx --upload --date 2026-01-05 --html out.html --xlsx out.xlsx`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}

		var err error
		logger, closeLog, err = setupLogger(cmd.ErrOrStderr(), logFile, level)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return finishLog()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write JSON logs to this file")
	rootCmd.AddCommand(datesCmd, reportCmd)
}

// setupLogger текст в stderr, при заданном path еще и JSON в файл.
func setupLogger(stderr io.Writer, path string, level slog.Level) (*slog.Logger, func() error, error) {
	stderrHandler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	if path == "" {
		return slog.New(stderrHandler), func() error { return nil }, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	logger := slog.New(slogmulti.Fanout(stderrHandler, fileHandler))

	return logger, file.Close, nil
}

// finishLog закрывает файл лога, повторный вызов ничего не делает.
func finishLog() error {
	if closeLog == nil {
		return nil
	}
	err := closeLog()
	closeLog = nil
	return err
}

func Execute() {
	err := rootCmd.Execute()
	// при ошибке PostRun не вызывается
	finishLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", describe(err))
		os.Exit(1)
	}
}
