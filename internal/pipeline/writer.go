package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sanspareilsmyn/latencylens/internal/config"
)

// Writer appends rendered CSV text to the rotating report file. Rotation is
// delegated to lumberjack so long-running deployments never grow a single
// unbounded report.
type Writer struct {
	sink   io.WriteCloser
	path   string
	input  <-chan string
	logger *zap.Logger
}

// NewWriter creates the report writer and its output directory.
func NewWriter(cfg config.OutputConfig, input <-chan string, logger *zap.Logger) (*Writer, error) {
	if err := os.MkdirAll(cfg.Directory, 0755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriterCreationFailed, err)
	}

	path := filepath.Join(cfg.Directory, cfg.Filename)
	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSize,    // megabytes
		MaxBackups: cfg.MaxBackups, // files
		MaxAge:     cfg.MaxAge,     // days
		Compress:   cfg.Compress,
	}

	logger.Info("Report writer created",
		zap.String("path", path),
		zap.Int("max_size_mb", cfg.MaxSize),
		zap.Int("max_backups", cfg.MaxBackups),
		zap.Int("max_age_days", cfg.MaxAge),
	)

	return &Writer{
		sink:   sink,
		path:   path,
		input:  input,
		logger: logger,
	}, nil
}

// Run starts the writer loop. It drains its input until the channel closes
// or the context is cancelled, then closes the report file.
func (w *Writer) Run(ctx context.Context) error {
	sugar := w.logger.Sugar()
	sugar.Info("Starting report writer loop...")
	defer func() {
		if err := w.sink.Close(); err != nil {
			sugar.Errorw("Failed to close report file cleanly", zap.Error(err))
		}
		sugar.Info("Report writer loop stopped.")
	}()

	for {
		select {
		case text, ok := <-w.input:
			if !ok {
				sugar.Info("Writer input channel closed.")
				return nil
			}
			if _, err := io.WriteString(w.sink, text); err != nil {
				w.logger.Error("Error writing to report file",
					zap.String("path", w.path),
					zap.Error(err),
				)
				return fmt.Errorf("%w: %w", ErrReportWriteFailed, err)
			}

		case <-ctx.Done():
			sugar.Info("Context cancelled, stopping report writer.")
			return ctx.Err()
		}
	}
}
