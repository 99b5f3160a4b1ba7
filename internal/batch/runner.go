package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/tmlemon/opi2edl/internal/models"
	"github.com/tmlemon/opi2edl/internal/parser"
	"github.com/tmlemon/opi2edl/internal/translator"
)

// Input is one source document to convert.
type Input struct {
	FileID string // store ID, empty for plain files
	Name   string // name used in reports and for the output name
	Path   string // readable location of the source
}

// FileInputs builds inputs for paths on disk.
func FileInputs(paths []string) []Input {
	inputs := make([]Input, len(paths))
	for i, p := range paths {
		inputs[i] = Input{Name: p, Path: p}
	}
	return inputs
}

// RunnerConfig configures a Runner.
type RunnerConfig struct {
	// Workers bounds concurrent conversions. Defaults to the CPU count.
	Workers int
	// Logger receives per-file progress; nil disables logging.
	Logger *slog.Logger
	// OnReport is called once per finished file, from worker goroutines.
	OnReport func(index int, report models.ConversionReport)
}

// Runner converts documents with a bounded worker pool. Each document is
// converted by exactly one worker; documents share nothing but the
// read-only translator.
type Runner struct {
	translator *translator.Translator
	sink       Sink
	cfg        RunnerConfig
	logger     *slog.Logger
}

// NewRunner creates a runner writing rendered documents to sink.
func NewRunner(t *translator.Translator, sink Sink, cfg RunnerConfig) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Runner{
		translator: t,
		sink:       sink,
		cfg:        cfg,
		logger:     componentLogger(cfg.Logger, "batch"),
	}
}

// Run converts every input and returns one report per input, in input
// order. A failing file never stops the others. The error is non-nil only
// when ctx ends first; inputs not yet started are then left pending.
func (r *Runner) Run(ctx context.Context, inputs []Input) ([]models.ConversionReport, error) {
	reports := make([]models.ConversionReport, len(inputs))
	for i, in := range inputs {
		reports[i] = models.ConversionReport{FileID: in.FileID, Input: in.Name, Status: models.ConversionPending}
	}

	if logEnabled(r.logger, slog.LevelInfo) {
		r.logger.LogAttrs(ctx, slog.LevelInfo, "converting",
			slog.Int("files", len(inputs)),
			slog.Int("workers", r.cfg.Workers))
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, r.cfg.Workers)

	for i, in := range inputs {
		wg.Add(1)
		go func(i int, in Input) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			reports[i] = r.convert(ctx, in)
			if r.cfg.OnReport != nil {
				r.cfg.OnReport(i, reports[i])
			}
		}(i, in)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return reports, err
	}
	return reports, nil
}

func (r *Runner) convert(ctx context.Context, in Input) models.ConversionReport {
	start := time.Now()
	report := models.ConversionReport{FileID: in.FileID, Input: in.Name}

	fail := func(err error) models.ConversionReport {
		report.Status = models.ConversionFailed
		report.Error = err.Error()
		report.DurationMs = time.Since(start).Milliseconds()
		if logEnabled(r.logger, slog.LevelWarn) {
			r.logger.LogAttrs(ctx, slog.LevelWarn, "conversion failed",
				slog.String("input", in.Name),
				slog.String("error", report.Error))
		}
		return report
	}

	doc, err := readInput(in)
	if err != nil {
		return fail(err)
	}

	res, err := r.translator.Translate(doc)
	if err != nil {
		report.Diagnostics = []models.Diagnostic{{
			Kind:   translator.Classify(err),
			Reason: err.Error(),
		}}
		return fail(err)
	}

	report.Widgets = res.Widgets
	report.Rendered = res.Rendered()
	report.Skipped = res.Skipped
	report.Diagnostics = res.Diagnostics

	location, id, err := r.sink.Write(ctx, OutputName(in.Name), res.Document)
	if err != nil {
		return fail(err)
	}
	report.Output = location
	report.OutputID = id
	report.Status = models.ConversionConverted
	report.DurationMs = time.Since(start).Milliseconds()

	if logEnabled(r.logger, slog.LevelDebug) {
		for _, d := range res.Diagnostics {
			r.logger.LogAttrs(ctx, slog.LevelDebug, "widget skipped",
				slog.String("input", in.Name),
				slog.String("diagnostic", d.String()))
		}
	}
	if logEnabled(r.logger, slog.LevelInfo) {
		r.logger.LogAttrs(ctx, slog.LevelInfo, "converted",
			slog.String("input", in.Name),
			slog.String("output", location),
			slog.Int("widgets", res.Widgets),
			slog.Int("rendered", report.Rendered),
			slog.Int("skipped", len(res.Skipped)))
	}
	return report
}

func readInput(in Input) (*parser.Document, error) {
	f, err := os.Open(in.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", in.Name, err)
	}
	defer f.Close()
	return parser.ParseDocument(in.Name, f)
}

// withReportHook returns a copy of r calling fn for every finished file.
func (r *Runner) withReportHook(fn func(int, models.ConversionReport)) *Runner {
	c := *r
	c.cfg.OnReport = fn
	return &c
}
