package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"slices"

	"github.com/google/uuid"
	"github.com/tmlemon/opi2edl/internal/batch"
	"github.com/tmlemon/opi2edl/internal/config"
	"github.com/tmlemon/opi2edl/internal/history"
	"github.com/tmlemon/opi2edl/internal/models"
	"github.com/tmlemon/opi2edl/internal/parser"
	"github.com/tmlemon/opi2edl/internal/translator"
)

type convertFlags struct {
	outDir      string
	configPath  string
	rulesPath   string
	layout      bool
	imagePrefix string
	workers     int
	historyPath string
}

func (c *cli) cmdConvert(args []string) int {
	fs := flag.NewFlagSet("opi2edl", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() { _, _ = fmt.Fprint(c.stderr, usage) }

	var f convertFlags
	fs.StringVar(&f.outDir, "o", "", "output directory")
	fs.StringVar(&f.configPath, "config", "", "XML config file")
	fs.StringVar(&f.rulesPath, "rules", "", "panel rules YAML")
	fs.BoolVar(&f.layout, "layout", false, "pair units labels with indicators")
	fs.StringVar(&f.imagePrefix, "image-prefix", "", "image file name prefix")
	fs.IntVar(&f.workers, "workers", 0, "concurrent conversions")
	fs.StringVar(&f.historyPath, "history", "", "DuckDB history database")
	fs.BoolVar(&c.verbose, "v", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if fs.NArg() == 0 {
		c.printError("no input files or directories")
		_, _ = fmt.Fprint(c.stderr, usage)
		return exitError
	}

	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	opts, exts, err := c.resolveSettings(&f, set)
	if err != nil {
		c.printError("%v", err)
		return exitError
	}

	var files []string
	for _, path := range fs.Args() {
		d, err := batch.Discover(path, exts)
		if err != nil {
			c.printError("%v", err)
			return exitError
		}
		files = append(files, d.Files...)
		if c.verbose {
			for _, s := range d.Skipped {
				_, _ = fmt.Fprintf(c.stderr, "ignoring %s\n", s)
			}
		}
	}
	if len(files) == 0 {
		c.printError("no display files found")
		return exitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := batch.NewRunner(translator.New(opts), batch.DirSink{Dir: f.outDir}, batch.RunnerConfig{
		Workers: f.workers,
		Logger:  c.setupLogger(),
	})
	reports, err := runner.Run(ctx, batch.FileInputs(files))
	if err != nil {
		c.printError("conversion interrupted: %v", err)
	}

	failed := c.printReports(reports)

	if f.historyPath != "" {
		if err := recordHistory(ctx, f.historyPath, reports); err != nil {
			c.printError("recording history: %v", err)
			return exitError
		}
	}

	if failed > 0 || err != nil {
		return exitError
	}
	return exitOK
}

// resolveSettings merges the optional config file with the command line.
// Flags given explicitly win over the config file.
func (c *cli) resolveSettings(f *convertFlags, set map[string]bool) (translator.Options, []string, error) {
	var (
		opts translator.Options
		exts []string
	)

	if f.configPath != "" {
		cfg, err := config.LoadConfig(f.configPath)
		if err != nil {
			return opts, nil, err
		}
		if opts, err = cfg.TranslatorOptions(); err != nil {
			return opts, nil, err
		}
		exts = cfg.Extensions()
		if !set["o"] {
			f.outDir = cfg.Conversion.OutputDirectory
		}
		if !set["workers"] {
			f.workers = cfg.Conversion.MaxConcurrentConversions
		}
		if !set["history"] {
			f.historyPath = cfg.Advanced.HistoryDatabase
		}
	}

	if set["layout"] || f.configPath == "" {
		opts.Layout = f.layout
	}
	if set["image-prefix"] || f.configPath == "" {
		opts.ImagePathPrefix = f.imagePrefix
	}
	if f.rulesPath != "" {
		rules, err := parser.ParsePanelRules(f.rulesPath)
		if err != nil {
			return opts, nil, fmt.Errorf("loading rules %s: %w", f.rulesPath, err)
		}
		opts.Rules = rules
	}
	return opts, exts, nil
}

// printReports writes one summary line per file plus its diagnostics and
// returns the number of failed files.
func (c *cli) printReports(reports []models.ConversionReport) int {
	var (
		failed  int
		skipped []string
	)
	for _, r := range reports {
		switch r.Status {
		case models.ConversionConverted:
			_, _ = fmt.Fprintf(c.stdout, "%s -> %s: %d widgets, %d rendered\n",
				r.Input, r.Output, r.Widgets, r.Rendered)
		case models.ConversionFailed:
			failed++
			_, _ = fmt.Fprintf(c.stdout, "%s: FAILED: %s\n", r.Input, r.Error)
			continue
		default:
			_, _ = fmt.Fprintf(c.stdout, "%s: not converted\n", r.Input)
			continue
		}

		for _, d := range r.Diagnostics {
			if d.Kind == models.KindUnsupportedWidgetType {
				continue
			}
			_, _ = fmt.Fprintf(c.stderr, "  %s: %s\n", d.Kind, d)
		}
		for _, s := range r.Skipped {
			if !slices.Contains(skipped, s) {
				skipped = append(skipped, s)
			}
		}
	}

	if len(skipped) > 0 {
		_, _ = fmt.Fprintln(c.stdout, "\nUnsupported widget types (not converted):")
		for _, s := range skipped {
			_, _ = fmt.Fprintf(c.stdout, "  %s\n", s)
		}
	}
	if failed > 0 {
		_, _ = fmt.Fprintf(c.stdout, "\n%d of %d files failed\n", failed, len(reports))
	}
	return failed
}

func recordHistory(ctx context.Context, path string, reports []models.ConversionReport) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(ctx, uuid.NewString(), reports)
}
