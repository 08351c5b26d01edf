package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/banshee-data/ecg.report/internal/config"
	"github.com/banshee-data/ecg.report/internal/db"
	"github.com/banshee-data/ecg.report/internal/ecg"
	"github.com/banshee-data/ecg.report/internal/fsutil"
	"github.com/banshee-data/ecg.report/internal/ingest"
	"github.com/banshee-data/ecg.report/internal/monitoring"
	"github.com/banshee-data/ecg.report/internal/report"
	"github.com/banshee-data/ecg.report/internal/timeutil"
)

var (
	configPath  = flag.String("config", "", "Path to an analysis config JSON file")
	outDir      = flag.String("out", ".", "Directory for <name>.json metrics files")
	dbPath      = flag.String("db", "", "Also store each metrics record in this SQLite database")
	plotPNG     = flag.Bool("plot", false, "Write a <name>.png plot next to the metrics file")
	chartHTML   = flag.Bool("chart", false, "Write an interactive <name>.html chart next to the metrics file")
	beatMapping = flag.String("map", "", "Beat timestamp mapping: index or value (overrides config)")
	comma       = flag.String("comma", ",", "Field delimiter of the trace files")
	logDir      = flag.String("log-dir", "", "Write diagnostics for each trace to <name>.log in this directory")
	quiet       = flag.Bool("quiet", false, "Suppress diagnostics on stderr")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

// analyzeOptions collects everything analyzeFile needs so it can be driven
// from tests without flags.
type analyzeOptions struct {
	FS     fsutil.FileSystem
	Params ecg.Params
	Read   ingest.ReadOptions
	OutDir string
	Plot   bool
	Chart  bool
	LogDir string
	Quiet  bool
	Store  *db.DB
	Clock  timeutil.Clock
}

func optionsFromFlags() (analyzeOptions, error) {
	cfg := config.EmptyAnalysisConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadAnalysisConfig(*configPath); err != nil {
			return analyzeOptions{}, err
		}
	}
	params := cfg.Params()
	if *beatMapping != "" {
		m := ecg.BeatMapping(*beatMapping)
		if m != ecg.MapByIndex && m != ecg.MapByValue {
			return analyzeOptions{}, fmt.Errorf("invalid -map %q, want %q or %q", *beatMapping, ecg.MapByIndex, ecg.MapByValue)
		}
		params.Mapping = m
	}

	r, size := utf8.DecodeRuneInString(*comma)
	if size == 0 || size != len(*comma) {
		return analyzeOptions{}, fmt.Errorf("-comma must be a single character, got %q", *comma)
	}

	opts := analyzeOptions{
		FS:     fsutil.OSFileSystem{},
		Params: params,
		Read:   ingest.ReadOptions{Comma: r},
		OutDir: *outDir,
		Plot:   *plotPNG,
		Chart:  *chartHTML,
		LogDir: *logDir,
		Quiet:  *quiet,
		Clock:  timeutil.RealClock{},
	}
	if *dbPath != "" {
		store, err := db.OpenDB(*dbPath)
		if err != nil {
			return analyzeOptions{}, fmt.Errorf("open database: %w", err)
		}
		opts.Store = store
	}
	return opts, nil
}

// traceLogger returns the diagnostic sink for one trace and a function that
// releases it.
func traceLogger(name string, opts analyzeOptions) (monitoring.Logger, func(), error) {
	var sinks []monitoring.Logger
	if !opts.Quiet {
		sinks = append(sinks, monitoring.Prefixed(name, nil))
	}
	closeFn := func() {}
	if opts.LogDir != "" {
		if err := os.MkdirAll(opts.LogDir, 0755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(filepath.Join(opts.LogDir, name+".log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, log.New(f, "", log.LstdFlags).Printf)
		closeFn = func() { f.Close() }
	}
	return func(format string, v ...interface{}) {
		for _, s := range sinks {
			s(format, v...)
		}
	}, closeFn, nil
}

// analyzeFile processes one trace file and writes its outputs.
func analyzeFile(path string, opts analyzeOptions) (ecg.Metrics, error) {
	name := ingest.TraceName(path)
	logf, closeLog, err := traceLogger(name, opts)
	if err != nil {
		return ecg.Metrics{}, fmt.Errorf("open trace log: %w", err)
	}
	defer closeLog()

	clock := opts.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	start := clock.Now()

	time, voltage, err := ingest.ReadCSV(opts.FS, path, opts.Read)
	if err != nil {
		return ecg.Metrics{}, err
	}
	res, err := ecg.NewProcessor(opts.Params, logf).Process(time, voltage)
	if err != nil {
		logf.Errorf("%v", err)
		return ecg.Metrics{}, err
	}

	base := filepath.Join(opts.OutDir, name)
	if err := report.WriteJSON(opts.FS, base+".json", res.Metrics); err != nil {
		return ecg.Metrics{}, err
	}
	if opts.Plot {
		if err := report.SavePlot(opts.FS, base+".png", name, res); err != nil {
			return ecg.Metrics{}, err
		}
	}
	if opts.Chart {
		if err := report.SaveChart(opts.FS, base+".html", name, res); err != nil {
			return ecg.Metrics{}, err
		}
	}
	if opts.Store != nil {
		id, err := opts.Store.RecordMetrics(name, path, res.Metrics)
		if err != nil {
			return ecg.Metrics{}, err
		}
		logf.Infof("stored record %s", id)
	}

	logf.Infof("wrote %s.json in %v", base, clock.Since(start))
	return res.Metrics, nil
}
