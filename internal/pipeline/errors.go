package pipeline

import "errors"

var (
	ErrInvalidKafkaConfig     = errors.New("invalid Kafka configuration provided")
	ErrKafkaFetchFailed       = errors.New("failed to fetch message from Kafka")
	ErrConsumerCreationFailed = errors.New("failed to create consumer")
	ErrConsumerRunFailed      = errors.New("consumer component failed")
	ErrLayoutCreationFailed   = errors.New("failed to create CSV layout")
	ErrLayoutRunFailed        = errors.New("layout component failed")
	ErrWriterCreationFailed   = errors.New("failed to create report writer")
	ErrWriterRunFailed        = errors.New("report writer component failed")
	ErrReportWriteFailed      = errors.New("failed to write to report file")
)
