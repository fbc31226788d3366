package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	slogmulti "github.com/samber/slog-multi"
	"wms-report/internal/cache"
	"wms-report/internal/config"
	generate_excel "wms-report/internal/service/generate-excel"
	"wms-report/internal/service/picking"
	"wms-report/internal/storage/folder"
	"wms-report/internal/storage/mysql"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run поднимает сервер и ждет сигнала или падения ListenAndServe.
// Все выходы идут через return, чтобы отработали defer.
func run() error {
	cfg := config.MustConfig()

	log, closeLog := setupLogger(cfg.Env)
	defer closeLog()

	source, closeSource, err := openSource(*cfg)
	if err != nil {
		log.Error("failed to open workbook source", slog.String("kind", cfg.Kind), slog.String("error", err.Error()))
		return err
	}
	defer closeSource()

	records := cache.NewRecords(cfg.Size, cfg.TTL)
	pickingService := picking.NewPickingService(log, source, records, cfg.Sheet)
	genService := generate_excel.NewGenerateService(pickingService)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, pickingService, genService),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	log.Info("server started", slog.String("address", cfg.Address), slog.String("source", cfg.Kind))

	return serve(log, srv, stop)
}

// serve возвращает ошибку запуска сервера либо останавливает его по stop.
func serve(log *slog.Logger, srv *http.Server, stop <-chan os.Signal) error {
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error("failed start server", slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("failed to stop server", slog.String("error", err.Error()))
		return err
	}

	log.Info("server stopped")
	return nil
}

func openSource(cfg config.Config) (picking.WorkbookSource, func(), error) {
	switch cfg.Kind {
	case config.SourceMySQL:
		storage, err := mysql.New(cfg)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := storage.Migrate(ctx); err != nil {
			storage.Close()
			return nil, nil, err
		}
		return storage, func() { storage.Close() }, nil
	default:
		storage, err := folder.New(cfg.Folder)
		if err != nil {
			return nil, nil, err
		}
		return storage, func() {}, nil
	}
}

// setupLogger основной вывод в stdout, ошибки дополнительно в errors.log.
func setupLogger(env string) (*slog.Logger, func()) {
	// Определяем уровень логирования
	var level slog.Level = slog.LevelDebug
	switch env {
	case envProd:
		level = slog.LevelInfo
	}

	// 1. Основной handler: пишет ВСЁ в stdout
	var coreHandler slog.Handler
	switch env {
	case envDev:
		coreHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	default:
		coreHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	// 2. Файловый handler: только ошибки
	errorFile, err := os.OpenFile("errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Warn("Cannot open error log file", "error", err)
		return slog.New(coreHandler), func() {}
	}

	errorHandler := slog.NewTextHandler(errorFile, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	// 3. Объединяем через fanout
	logger := slog.New(slogmulti.Fanout(coreHandler, errorHandler))

	return logger, func() { errorFile.Close() }
}
