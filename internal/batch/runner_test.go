package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmlemon/opi2edl/internal/models"
	"github.com/tmlemon/opi2edl/internal/storage"
	"github.com/tmlemon/opi2edl/internal/translator"
)

func TestRunner_Run(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "edl")
	good := writeFile(t, src, "good.opi", validDisplay)
	bad := writeFile(t, src, "bad.opi", malformedDisplay)
	missing := filepath.Join(src, "missing.opi")

	var mu sync.Mutex
	seen := map[int]models.ConversionStatus{}
	runner := NewRunner(translator.New(translator.Options{}), DirSink{Dir: out}, RunnerConfig{
		Workers: 2,
		OnReport: func(i int, r models.ConversionReport) {
			mu.Lock()
			defer mu.Unlock()
			seen[i] = r.Status
		},
	})

	reports, err := runner.Run(context.Background(), FileInputs([]string{good, bad, missing}))
	require.NoError(t, err)
	require.Len(t, reports, 3)

	ok := reports[0]
	assert.Equal(t, models.ConversionConverted, ok.Status)
	assert.Equal(t, good, ok.Input)
	assert.Equal(t, filepath.Join(out, "good.edl"), ok.Output)
	assert.Equal(t, 2, ok.Widgets)
	assert.Equal(t, 1, ok.Rendered)
	assert.Equal(t, []string{"Action Button"}, ok.Skipped)

	data, err := os.ReadFile(ok.Output)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "4 0 1\n"))
	assert.Contains(t, text, "\nfill\nfillColor index 14\n")

	assert.Equal(t, models.ConversionFailed, reports[1].Status)
	require.Len(t, reports[1].Diagnostics, 1)
	assert.Equal(t, models.KindMalformedDocument, reports[1].Diagnostics[0].Kind)
	_, err = os.Stat(filepath.Join(out, "bad.edl"))
	assert.True(t, os.IsNotExist(err), "no output for a malformed document")

	assert.Equal(t, models.ConversionFailed, reports[2].Status)
	assert.Contains(t, reports[2].Error, "missing.opi")

	assert.Len(t, seen, 3)
}

func TestRunner_CanceledContext(t *testing.T) {
	src := t.TempDir()
	good := writeFile(t, src, "good.opi", validDisplay)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(translator.New(translator.Options{}), DirSink{Dir: t.TempDir()}, RunnerConfig{})
	reports, err := runner.Run(ctx, FileInputs([]string{good}))
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, reports, 1)
	assert.Equal(t, models.ConversionPending, reports[0].Status)
}

func TestStoreSink(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	src := writeFile(t, t.TempDir(), "panel.opi", validDisplay)
	runner := NewRunner(translator.New(translator.Options{}), StoreSink{Store: store}, RunnerConfig{Workers: 1})

	reports, err := runner.Run(context.Background(), FileInputs([]string{src}))
	require.NoError(t, err)
	require.Equal(t, models.ConversionConverted, reports[0].Status)
	assert.Equal(t, "panel.edl", reports[0].Output)

	info, err := store.Get(reports[0].OutputID)
	require.NoError(t, err)
	assert.Equal(t, models.FileKindEDL, info.Kind)
	assert.Equal(t, "converted", info.Status)
	assert.Positive(t, info.Size)
}
