package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sanspareilsmyn/latencylens/internal/config"
)

func TestWriter_AppendsLines(t *testing.T) {
	dir := t.TempDir()
	input := make(chan string, 2)

	writer, err := NewWriter(config.OutputConfig{
		Directory:  dir,
		Filename:   "report.csv",
		MaxSize:    10,
		MaxBackups: 1,
	}, input, zap.NewNop())
	require.NoError(t, err)

	input <- "A,5,2.0\nB,3,1.5\n"
	input <- "C,1,9.0\n"
	close(input)

	require.NoError(t, writer.Run(context.Background()))

	data, err := os.ReadFile(filepath.Join(dir, "report.csv"))
	require.NoError(t, err)
	assert.Equal(t, "A,5,2.0\nB,3,1.5\nC,1,9.0\n", string(data))
}

func TestWriter_CreatesOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	input := make(chan string)

	_, err := NewWriter(config.OutputConfig{Directory: dir, Filename: "report.csv"}, input, zap.NewNop())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriter_StopsOnContextCancel(t *testing.T) {
	input := make(chan string)
	writer, err := NewWriter(config.OutputConfig{Directory: t.TempDir(), Filename: "report.csv"}, input, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, writer.Run(ctx), context.Canceled)
}
