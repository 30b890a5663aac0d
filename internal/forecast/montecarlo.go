package forecast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/xtding233/gacha-forecast/internal/gacha"
	"github.com/xtding233/gacha-forecast/internal/ledger"
)

// DefaultTrials is the number of trials for every mode except worst.
const DefaultTrials = 100_000

// ErrWorkerFault wraps a panic raised inside a trial worker.
var ErrWorkerFault = errors.New("simulation worker fault")

type options struct {
	trials     int
	workers    int
	bufferSize int
	seed       *uint64
	trace      *slog.Logger
}

// Option tunes a forecast run.
type Option func(*options)

// WithTrials overrides DefaultTrials. Worst mode always runs one trial.
func WithTrials(n int) Option { return func(o *options) { o.trials = n } }

// WithWorkers sets the number of parallel workers; n <= 0 means GOMAXPROCS.
func WithWorkers(n int) Option { return func(o *options) { o.workers = n } }

// WithBufferSize sets the per-worker random buffer size.
func WithBufferSize(n int) Option { return func(o *options) { o.bufferSize = n } }

// WithSeed makes the run reproducible for a fixed worker count.
// Worker w draws from PCG stream w of the seed.
func WithSeed(seed uint64) Option { return func(o *options) { o.seed = &seed } }

// WithTrace sends trial events to logger.
func WithTrace(logger *slog.Logger) Option { return func(o *options) { o.trace = logger } }

// Run validates req, plays the trials and aggregates them into a report.
func Run(ctx context.Context, req Request, opts ...Option) (*Report, error) {
	o := options{trials: DefaultTrials, bufferSize: gacha.DefaultBufferSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.trials < 0 {
		return nil, fmt.Errorf("%w: trials must be >= 0", ErrInvalidRequest)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	base, err := ledger.New(req.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	trials := o.trials
	if req.Mode == gacha.ModeWorst {
		trials = 1
	}
	outcomes := make([]Outcome, trials)

	if trials == 1 {
		// single trial: no fan-out
		if err := runWorker(ctx, req, base, o, 0, outcomes); err != nil {
			return nil, err
		}
		return Aggregate(req.Patches, outcomes), nil
	}

	workers := o.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, trials)

	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		lo := trials * w / workers
		hi := trials * (w + 1) / workers
		g.Go(func() error {
			return runWorker(gctx, req, base, o, w, outcomes[lo:hi])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Aggregate(req.Patches, outcomes), nil
}

// runWorker fills out with trials played on clones of base. Every worker
// builds its own random source and puller.
func runWorker(ctx context.Context, req Request, base *ledger.Ledger, o options, w int, out []Outcome) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: worker %d: %v", ErrWorkerFault, w, r)
		}
	}()

	var rng gacha.RandomSource
	if o.seed != nil {
		rng = gacha.NewSeededRNG(*o.seed, uint64(w))
	} else {
		rng = gacha.NewEntropyRNG()
	}
	puller, err := gacha.NewPuller(req.Banner, req.Mode, gacha.NewBufferedSource(rng, o.bufferSize))
	if err != nil {
		return err
	}
	runner := &Runner{Patches: req.Patches, Puller: puller, Trace: o.trace}

	for i := range out {
		if err := ctx.Err(); err != nil {
			return err
		}
		out[i], err = runner.Run(base.Clone())
		if err != nil {
			return fmt.Errorf("worker %d trial %d: %w", w, i, err)
		}
	}
	return nil
}
