package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/wdm0006/hotdeck/pkg/experiment"
	"github.com/wdm0006/hotdeck/pkg/logging"
	"github.com/wdm0006/hotdeck/pkg/profile"
	"github.com/wdm0006/hotdeck/pkg/report"
)

var (
	version = "0.1.0-dev"
)

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit")
	configPath := flag.String("config", "", "Path to experiment config (.json, .toml, .yaml)")
	profileOnly := flag.Bool("profile", false, "Print a profile of every dataset and exit")
	profileJSON := flag.Bool("profile-json", false, "With -profile, emit JSON instead of text")
	summary := flag.Bool("table", false, "Render a summary table after the run")
	flag.Parse()

	if *showVersion {
		fmt.Println("hotdeck", version)
		return
	}

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "no config provided; nothing to do. try --config <file> or --version")
		os.Exit(2)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = closer.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *profileOnly {
		err = runProfile(cfg, *profileJSON)
	} else {
		err = run(ctx, cfg, logger, *summary)
	}
	if err != nil {
		logger.Error("run failed", "err", err)
		fmt.Fprintln(os.Stderr, err)
		_ = closer.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, logger *slog.Logger, summary bool) error {
	strategies, err := experiment.ParseStrategies(cfg.Strategies)
	if err != nil {
		return err
	}
	datasets := make([]experiment.Dataset, 0, len(cfg.Datasets))
	for _, d := range cfg.Datasets {
		t, err := cfg.readTable(d.Path)
		if err != nil {
			return err
		}
		logger.Debug("dataset loaded", "dataset", d.Name, "rows", t.Rows(), "cols", t.Cols(), "missing", t.MissingCount())
		datasets = append(datasets, experiment.Dataset{Name: d.Name, Table: t})
	}

	runner := &experiment.Runner{Logger: logger}
	if cfg.Reference != "" {
		ref, err := cfg.readTable(cfg.Reference)
		if err != nil {
			return err
		}
		if !ref.Complete() {
			logger.Warn("reference table has missing cells", "path", cfg.Reference, "missing", ref.MissingCount())
		}
		runner.Reference = ref
	}
	if cfg.Output.Dir != "" {
		if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
			return err
		}
	}

	rep := report.New(os.Stdout, logger)
	runner.OnResult = func(res experiment.Result) error {
		if err := rep.Result(res); err != nil {
			return err
		}
		if cfg.Output.Dir == "" {
			return nil
		}
		p := cfg.outputPath(res.Dataset, res.Strategy)
		if err := cfg.writeTable(p, res.Imputed); err != nil {
			return err
		}
		logger.Info("imputed table written", "path", p)
		return nil
	}

	results, err := runner.Run(ctx, datasets, strategies)
	if err != nil {
		return err
	}
	if summary {
		rep.Table(results)
	}
	return nil
}

func runProfile(cfg Config, asJSON bool) error {
	for _, d := range cfg.Datasets {
		t, err := cfg.readTable(d.Path)
		if err != nil {
			return err
		}
		p := profile.Of(t)
		if asJSON {
			b, err := json.MarshalIndent(struct {
				Dataset string `json:"dataset"`
				profile.Profile
			}{d.Name, p}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			continue
		}
		fmt.Printf("== %s ==\n%s", d.Name, p.ReportText())
		if !p.HasDonors() {
			fmt.Println("warning: no complete rows, hot-deck cannot fill any cell")
		}
	}
	return nil
}
