package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sanspareilsmyn/latencylens/internal/config"
)

func TestNewConsumer_InvalidConfig(t *testing.T) {
	output := make(chan []byte)
	tests := []config.KafkaConfig{
		{Topic: "timing-reports", GroupID: "g"},
		{Brokers: []string{"localhost:9092"}, GroupID: "g"},
		{Brokers: []string{"localhost:9092"}, Topic: "timing-reports"},
	}
	for _, cfg := range tests {
		_, err := NewConsumer(cfg, output, zap.NewNop())
		assert.ErrorIs(t, err, ErrInvalidKafkaConfig)
	}
}

func TestNewConsumer_ValidConfig(t *testing.T) {
	output := make(chan []byte)
	consumer, err := NewConsumer(config.KafkaConfig{
		Brokers: []string{"localhost:9092"},
		Topic:   "timing-reports",
		GroupID: "latencylens-test-group",
	}, output, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, consumer)
	assert.NoError(t, consumer.reader.Close())
}
