package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/sanspareilsmyn/latencylens/internal/config"
	"github.com/sanspareilsmyn/latencylens/internal/message"
)

// Pipeline orchestrates the report stages: consume, classify, format, write.
type Pipeline struct {
	cfg      *config.Config
	consumer *Consumer
	layout   *Layout
	writer   *Writer
	logger   *zap.Logger

	rawMessages      chan []byte
	classifiedInputs chan message.Message
	csvText          chan string
}

// New creates and wires up a new report pipeline.
func New(cfg *config.Config, logger *zap.Logger) (*Pipeline, error) {
	initLogger := logger.Named("pipeline.init")
	initLogger.Debug("Creating pipeline components...")

	const channelBufferSize = 100
	rawMessages := make(chan []byte, channelBufferSize)
	classifiedInputs := make(chan message.Message, channelBufferSize)
	csvText := make(chan string, channelBufferSize)

	consumerInstance, err := NewConsumer(cfg.Kafka, rawMessages, logger.Named("consumer"))
	if err != nil {
		initLogger.Error("Failed to create consumer", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrConsumerCreationFailed, err)
	}

	layoutInstance, err := NewLayout(cfg.Layout, classifiedInputs, csvText, logger.Named("layout"))
	if err != nil {
		initLogger.Error("Failed to create layout", zap.Error(err))
		return nil, err
	}

	writerInstance, err := NewWriter(cfg.Output, csvText, logger.Named("writer"))
	if err != nil {
		initLogger.Error("Failed to create report writer", zap.Error(err))
		return nil, err
	}

	p := &Pipeline{
		cfg:              cfg,
		consumer:         consumerInstance,
		layout:           layoutInstance,
		writer:           writerInstance,
		logger:           logger.Named("pipeline"),
		rawMessages:      rawMessages,
		classifiedInputs: classifiedInputs,
		csvText:          csvText,
	}

	initLogger.Info("Pipeline instance created successfully")
	return p, nil
}

// Run starts all pipeline components and waits for them to complete or
// context cancellation.
func (p *Pipeline) Run(ctx context.Context) error {
	sugar := p.logger.Sugar()
	var wg sync.WaitGroup
	pipelineErr := make(chan error, 4) // consumer, parser, layout, writer

	sugar.Info("Pipeline Run: Starting components...")

	wg.Add(4)
	go p.runConsumer(ctx, &wg, pipelineErr)
	go p.runParser(ctx, &wg)
	go p.runLayout(ctx, &wg, pipelineErr)
	go p.runWriter(ctx, &wg, pipelineErr)

	var firstErr error
	select {
	case <-ctx.Done():
		sugar.Info("Pipeline Run: Context cancelled. Waiting for components to finish...")
		firstErr = ctx.Err()
	case err := <-pipelineErr:
		sugar.Errorw("Pipeline Run: Received error from a component, initiating shutdown...", zap.Error(err))
		firstErr = err
	}

	wg.Wait()
	sugar.Info("Pipeline Run: All components finished.")

	if firstErr != nil && !errors.Is(firstErr, context.Canceled) {
		return firstErr
	}
	return nil
}

// runConsumer executes the consumer component logic in a goroutine.
func (p *Pipeline) runConsumer(ctx context.Context, wg *sync.WaitGroup, errCh chan<- error) {
	defer wg.Done()
	defer func() {
		close(p.rawMessages)
		p.logger.Debug("Raw messages channel closed")
	}()

	if err := p.consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		p.logger.Error("Consumer component exited with error", zap.Error(err))
		errCh <- fmt.Errorf("%w: %w", ErrConsumerRunFailed, err)
	}
}

// runParser classifies raw payloads into the message union. Parsing is
// total, so this stage never fails; it only forwards.
func (p *Pipeline) runParser(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	defer func() {
		close(p.classifiedInputs)
		p.logger.Debug("Classified inputs channel closed")
	}()

	parserLogger := p.logger.Named("parser")
	parserLogger.Debug("Starting parser goroutine...")

	for {
		select {
		case raw, ok := <-p.rawMessages:
			if !ok {
				parserLogger.Debug("Parser finished (raw message channel closed).")
				return
			}

			select {
			case p.classifiedInputs <- message.Parse(raw):

			case <-ctx.Done():
				parserLogger.Debug("Parser context cancelled during send.", zap.Error(ctx.Err()))
				return
			}

		case <-ctx.Done():
			parserLogger.Debug("Parser context cancelled while waiting for raw message.", zap.Error(ctx.Err()))
			return
		}
	}
}

// runLayout executes the layout component logic in a goroutine.
func (p *Pipeline) runLayout(ctx context.Context, wg *sync.WaitGroup, errCh chan<- error) {
	defer wg.Done()
	defer func() {
		close(p.csvText)
		p.logger.Debug("CSV text channel closed")
	}()

	if err := p.layout.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		p.logger.Error("Layout component exited with error", zap.Error(err))
		errCh <- fmt.Errorf("%w: %w", ErrLayoutRunFailed, err)
	}
}

// runWriter executes the report writer component logic in a goroutine.
func (p *Pipeline) runWriter(ctx context.Context, wg *sync.WaitGroup, errCh chan<- error) {
	defer wg.Done()

	if err := p.writer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		p.logger.Error("Report writer component exited with error", zap.Error(err))
		errCh <- fmt.Errorf("%w: %w", ErrWriterRunFailed, err)
	}
}
