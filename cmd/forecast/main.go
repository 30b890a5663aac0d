// Command forecast runs a pull forecast for a run file and prints the report.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/xtding233/gacha-forecast/internal/catalog"
	"github.com/xtding233/gacha-forecast/internal/config"
	"github.com/xtding233/gacha-forecast/internal/forecast"
	"github.com/xtding233/gacha-forecast/internal/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		slog.Error("forecast failed", "err", err)
		os.Exit(1)
	}
}

// optional wraps a flag so unset flags can be told apart from zero values.
type optional[T any] struct {
	v     *T
	parse func(string) (T, error)
}

func (o *optional[T]) String() string {
	if o.v == nil {
		return ""
	}
	return fmt.Sprint(*o.v)
}

func (o *optional[T]) Set(s string) error {
	v, err := o.parse(s)
	if err != nil {
		return err
	}
	o.v = &v
	return nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, err := config.LoadCLI()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	fs := flag.NewFlagSet("forecast", flag.ContinueOnError)
	catalogPath := fs.String("catalog", cfg.Catalog, "patch catalog YAML")
	runPaths := fs.String("run", strings.Join(cfg.Run, ","), "comma separated run files, later files override earlier ones")
	trials := fs.Int("trials", forecast.DefaultTrials, "number of trials (worst mode always runs one)")
	workers := fs.Int("workers", cfg.Workers, "parallel workers, 0 means GOMAXPROCS")
	asJSON := fs.Bool("json", false, "print the report as JSON")
	trace := fs.Bool("trace", false, "log every patch and pull (use with worst mode or few trials)")

	mode := &optional[string]{parse: parseString}
	banner := &optional[string]{parse: parseString}
	start := &optional[string]{parse: parseString}
	jewels := &optional[int]{parse: parseInt}
	seed := &optional[uint64]{parse: parseUint}
	fs.Var(mode, "mode", "average, below_average or worst")
	fs.Var(banner, "banner", "targeted or chance")
	fs.Var(start, "start", "first patch of the timeline")
	fs.Var(jewels, "jewels", "override starting jewels")
	fs.Var(seed, "seed", "seed for a reproducible run")

	if err := fs.Parse(args); err != nil {
		return err
	}

	level := cfg.LogLevel
	if *trace {
		level = min(level, slog.LevelInfo)
	}
	config.SetupLogging(level)

	loader := catalog.NewLoader()
	cat, err := loader.LoadCatalog(*catalogPath)
	if err != nil {
		return err
	}
	runFile, err := loader.LoadRun(strings.Split(*runPaths, ",")...)
	if err != nil {
		return err
	}
	req, err := catalog.Resolve(cat, runFile, catalog.Overrides{
		Mode:   mode.v,
		Banner: banner.v,
		Jewels: jewels.v,
		Start:  start.v,
	})
	if err != nil {
		return err
	}

	opts := []forecast.Option{forecast.WithTrials(*trials), forecast.WithWorkers(*workers)}
	if seed.v != nil {
		opts = append(opts, forecast.WithSeed(*seed.v))
	}
	if *trace {
		opts = append(opts, forecast.WithTrace(slog.Default()))
	}

	slog.Debug("running forecast", "mode", req.Mode, "banner", req.Banner, "patches", len(req.Patches), "trials", *trials)
	rep, err := forecast.Run(ctx, req, opts...)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	return report.Render(stdout, rep)
}

func parseString(s string) (string, error) { return s, nil }

func parseInt(s string) (int, error) { return strconv.Atoi(s) }

func parseUint(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) }
