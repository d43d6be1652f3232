package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sanspareilsmyn/latencylens/internal/config"
	"github.com/sanspareilsmyn/latencylens/internal/csvlayout"
	"github.com/sanspareilsmyn/latencylens/internal/message"
)

// Layout applies the CSV formatter to classified messages and sends the
// rendered text downstream. The formatter's column plan is resolved once at
// construction; a bad spec fails here, before the pipeline starts.
type Layout struct {
	formatter *csvlayout.Formatter
	input     <-chan message.Message
	output    chan<- string
	logger    *zap.Logger
}

// NewLayout builds the layout stage from configuration.
func NewLayout(cfg config.LayoutConfig, input <-chan message.Message, output chan<- string, logger *zap.Logger) (*Layout, error) {
	formatter, err := csvlayout.New(cfg.Pivot, cfg.Columns, cfg.PrintNonStatistics)
	if err != nil {
		logger.Error("Layout configuration validation failed",
			zap.Bool("pivot", cfg.Pivot),
			zap.String("columns", cfg.Columns),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrLayoutCreationFailed, err)
	}

	logger.Info("CSV layout initialized",
		zap.Bool("pivot", cfg.Pivot),
		zap.String("columns", cfg.Columns),
		zap.Int("resolved_columns", formatter.Columns()),
		zap.Bool("print_non_statistics", cfg.PrintNonStatistics),
	)

	return &Layout{
		formatter: formatter,
		input:     input,
		output:    output,
		logger:    logger,
	}, nil
}

// Run starts the layout loop.
func (l *Layout) Run(ctx context.Context) error {
	sugar := l.logger.Sugar()
	sugar.Info("Starting layout loop...")
	defer sugar.Info("Layout loop stopped.")

	for {
		select {
		case msg, ok := <-l.input:
			if !ok {
				sugar.Info("Layout input channel closed.")
				return nil
			}
			text := l.render(msg)
			if text == "" {
				continue
			}
			select {
			case l.output <- text:

			case <-ctx.Done():
				sugar.Debug("Context cancelled while sending CSV text downstream.")
				return ctx.Err()
			}

		case <-ctx.Done():
			sugar.Info("Context cancelled, stopping layout.")
			return ctx.Err()
		}
	}
}

// render formats a single message and maintains the stage metrics. An empty
// result means the message was a suppressed non-statistics payload (or an
// empty per-tag window) and nothing is forwarded.
func (l *Layout) render(msg message.Message) string {
	if !msg.IsStatistics() {
		text := l.formatter.FormatMessage(msg.Value())
		if text == "" {
			nonStatisticsMessages.WithLabelValues("suppressed").Inc()
			l.logger.Debug("Suppressed non-statistics message",
				zap.String("snippet", msg.Snippet(50)),
			)
			return ""
		}
		nonStatisticsMessages.WithLabelValues("printed").Inc()
		linesEmitted.Inc()
		return text
	}

	text := l.formatter.Format(*msg.Stats)
	windowsFormatted.Inc()
	lastWindowTags.Set(float64(len(msg.Stats.ByTag)))
	linesEmitted.Add(float64(strings.Count(text, "\n")))

	l.logger.Debug("Formatted timing window",
		zap.Time("window_start", msg.Stats.StartTime),
		zap.Time("window_stop", msg.Stats.StopTime),
		zap.Int("tag_count", len(msg.Stats.ByTag)),
	)
	return text
}
