// Command qsearch builds an unrooted binary tree that best fits a distance
// matrix under the normalized quartet score.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/katalvlaran/qsearch/search"
)

const usage = `Usage:
  qsearch [flags] -input matrix.json
  qsearch [flags] -demo N
  qsearch [flags] -planted N

The input file holds either a bare matrix, [[0,1,...],...], or an object
{"labels": ["a","b",...], "distances": [[...],...]}.

Flags:
`

type config struct {
	algo        string
	input       string
	demo        int
	planted     int
	seed        int64
	chains      int
	maxSteps    int
	maxAttempts int
	ceil        float64
	verbose     bool
	quiet       bool
	metricsAddr string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return
	}
	fmt.Fprintf(os.Stderr, "qsearch: %v\n", err)
	stop()
	os.Exit(1)
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	defaults := search.DefaultOptions()

	fs := flag.NewFlagSet("qsearch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&cfg.algo, "algo", "mcmc", "search driver: hill or mcmc")
	fs.StringVar(&cfg.input, "input", "", "JSON distance matrix file")
	fs.IntVar(&cfg.demo, "demo", 0, "use the built-in N-leaf demo matrix")
	fs.IntVar(&cfg.planted, "planted", 0, "use the metric of a random N-leaf tree")
	fs.Int64Var(&cfg.seed, "seed", 0, "random seed (0 picks the default stream)")
	fs.IntVar(&cfg.chains, "chains", 0, "population size (0 derives it from the leaf count)")
	fs.IntVar(&cfg.maxSteps, "max-steps", 0, "stop after this many chain steps (0 is unbounded)")
	fs.IntVar(&cfg.maxAttempts, "max-attempts", defaults.MaxAttempts, "hill climb mutations tried per step")
	fs.Float64Var(&cfg.ceil, "ceil", 0, "use a bounded Boltzmann weight with this exponent cap (mcmc)")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")
	fs.BoolVar(&cfg.quiet, "q", false, "no logging")
	fs.StringVar(&cfg.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while solving")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	sources := 0
	for _, set := range []bool{cfg.input != "", cfg.demo > 0, cfg.planted > 0} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		fs.Usage()
		return cfg, errors.New("exactly one of -input, -demo, -planted is required")
	}
	if cfg.algo != "hill" && cfg.algo != "mcmc" {
		return cfg, fmt.Errorf("unknown -algo %q", cfg.algo)
	}

	return cfg, nil
}

func newLogger(cfg config) (*zap.Logger, error) {
	switch {
	case cfg.quiet:
		return zap.NewNop(), nil
	case cfg.verbose:
		return zap.NewDevelopment()
	default:
		return zap.NewProduction()
	}
}

func loadProblem(cfg config) (*problem, error) {
	switch {
	case cfg.demo > 0:
		return demoProblem(cfg.demo)
	case cfg.planted > 0:
		return plantedProblem(cfg.planted, cfg.seed)
	}
	data, err := os.ReadFile(cfg.input)
	if err != nil {
		return nil, err
	}
	p, err := parseInput(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.input, err)
	}

	return p, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	p, err := loadProblem(cfg)
	if err != nil {
		return err
	}

	opts := search.DefaultOptions()
	opts.Seed = cfg.seed
	opts.Chains = cfg.chains
	opts.MaxSteps = cfg.maxSteps
	opts.MaxAttempts = cfg.maxAttempts
	opts.Logger = log
	if cfg.ceil > 0 {
		opts.Weight = search.BoundedBoltzmann(cfg.ceil)
	}

	reg := prometheus.NewRegistry()
	if opts.Metrics, err = search.NewMetrics(reg); err != nil {
		return err
	}
	if cfg.metricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.metricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	solve := search.SolveMCMC
	if cfg.algo == "hill" {
		solve = search.SolveHillClimb
	}
	res, err := solve(ctx, p.dist, opts)
	if err != nil {
		return err
	}

	return report(stdout, p, res)
}

// report prints the result summary followed by the adjacency listing and,
// when present, the leaf labels.
func report(w io.Writer, p *problem, res search.Result) error {
	fmt.Fprintf(w, "score: %.6f\n", res.Score)
	fmt.Fprintf(w, "reason: %s\n", res.Reason)
	fmt.Fprintf(w, "steps: %d\n", res.Steps)
	fmt.Fprintf(w, "restarts: %d\n", res.Restarts)
	fmt.Fprintf(w, "hash: %s\n", res.Tree.HashHex())
	fmt.Fprintln(w, "tree:")
	if err := res.Tree.Render(w); err != nil {
		return err
	}
	if len(p.labels) > 0 {
		fmt.Fprintln(w, "labels:")
		for i, l := range p.labels {
			fmt.Fprintf(w, "%d: %s\n", i, l)
		}
	}

	return nil
}
