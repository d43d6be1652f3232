package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
kafka:
  brokers:
    - "localhost:9092"
  topic: "timing-reports"
layout:
  pivot: true
  columns: "start,stop,dbQueryMean"
  printNonStatistics: true
output:
  directory: "out"
  filename: "report.csv"
metrics:
  enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "timing-reports", cfg.Kafka.Topic)
	assert.True(t, cfg.Layout.Pivot)
	assert.Equal(t, "start,stop,dbQueryMean", cfg.Layout.Columns)
	assert.True(t, cfg.Layout.PrintNonStatistics)
	assert.Equal(t, "out", cfg.Output.Directory)
	assert.Equal(t, "report.csv", cfg.Output.Filename)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
kafka:
  brokers:
    - "localhost:9092"
  topic: "timing-reports"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "latencylens-default-group", cfg.Kafka.GroupID)
	assert.False(t, cfg.Layout.Pivot)
	assert.Equal(t, "tag,start,stop,mean,min,max,stddev,count", cfg.Layout.Columns)
	assert.False(t, cfg.Layout.PrintNonStatistics)
	assert.Equal(t, "reports", cfg.Output.Directory)
	assert.Equal(t, "timing.csv", cfg.Output.Filename)
	assert.Equal(t, 100, cfg.Output.MaxSize)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9095", cfg.Metrics.ListenAddress)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name: "no brokers",
			content: `
kafka:
  topic: "timing-reports"
`,
			wantErr: ErrEmptyKafkaBrokers,
		},
		{
			name: "no topic",
			content: `
kafka:
  brokers: ["localhost:9092"]
`,
			wantErr: ErrEmptyKafkaTopic,
		},
		{
			name: "empty groupID",
			content: `
kafka:
  brokers: ["localhost:9092"]
  topic: "timing-reports"
  groupID: ""
`,
			wantErr: ErrEmptyKafkaGroupID,
		},
		{
			name: "unresolvable columns",
			content: `
kafka:
  brokers: ["localhost:9092"]
  topic: "timing-reports"
layout:
  columns: " , ,"
`,
			wantErr: ErrInvalidLayoutColumns,
		},
		{
			name: "empty output filename",
			content: `
kafka:
  brokers: ["localhost:9092"]
  topic: "timing-reports"
output:
  filename: ""
`,
			wantErr: ErrEmptyOutputFilename,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
