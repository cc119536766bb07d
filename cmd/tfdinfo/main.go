// Command tfdinfo computes Cohen's class distributions of a test signal and
// prints summary properties for each kernel.
//
// Usage:
//
//	tfdinfo [flags] [kernel-name ...]
//
// Without arguments it analyzes the signal with every built-in kernel.
//
// Examples:
//
//	tfdinfo wigner
//	tfdinfo -n 256 -signal chirp choi-williams cone
//	tfdinfo -signal two-tone -freq 1000,3000 -alpha 0.05 cw
//	tfdinfo -list
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-tfd/dsp/signal"
	"github.com/cwbudde/algo-tfd/dsp/tfd"
)

type options struct {
	n        int
	shape    string
	freqs    []float64
	rate     float64
	alpha    float64
	workers  int
	method   tfd.Method
	parallel int
	seed     int64
}

func main() {
	n := flag.Int("n", 128, "signal length in samples")
	shape := flag.String("signal", "chirp", "test signal: "+strings.Join(signalNames(), ", "))
	freq := flag.String("freq", "2000", "comma-separated frequencies in Hz (chirp uses the first two as start,end)")
	rate := flag.Float64("rate", 16000, "sample rate in Hz")
	alpha := flag.Float64("alpha", math.NaN(), "kernel spread parameter (default: per-kernel)")
	workers := flag.Int("workers", 0, "workers per distribution (0 = GOMAXPROCS)")
	method := flag.String("method", "auto", "evaluation method: auto, direct, separable, fft")
	parallel := flag.Int("parallel", 2, "kernels analyzed concurrently")
	seed := flag.Int64("seed", 1, "noise seed")
	list := flag.Bool("list", false, "list available kernel names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tfdinfo [flags] [kernel-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Computes time-frequency distributions of a test signal.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, analyzes the signal with all kernels.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tfdinfo wigner\n")
		fmt.Fprintf(os.Stderr, "  tfdinfo -n 256 -signal chirp choi-williams cone\n")
		fmt.Fprintf(os.Stderr, "  tfdinfo -signal two-tone -freq 1000,3000 cw\n")
		fmt.Fprintf(os.Stderr, "  tfdinfo -list\n")
	}
	flag.Parse()

	if *list {
		printList(os.Stdout)
		return
	}

	m, err := tfd.ParseMethod(*method)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	freqs, err := parseFreqs(*freq)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	opts := options{
		n:        *n,
		shape:    *shape,
		freqs:    freqs,
		rate:     *rate,
		alpha:    *alpha,
		workers:  *workers,
		method:   m,
		parallel: *parallel,
		seed:     *seed,
	}

	if err := run(context.Background(), os.Stdout, flag.Args(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printList(w io.Writer) {
	for _, info := range tfd.Kernels() {
		fmt.Fprintf(w, "%-14s alpha=%-6g %s\n", info.Name, info.DefaultAlpha, info.Description)
	}
}

func parseFreqs(s string) ([]float64, error) {
	var out []float64
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid frequency %q: %w", field, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no frequencies in %q", s)
	}
	return out, nil
}

// result is one row of the report.
type result struct {
	info    tfd.KernelInfo
	alpha   float64
	energy  float64
	peakT   int
	peakF   int
	peak    float64
	neg     float64
	elapsed time.Duration
}

func run(ctx context.Context, w io.Writer, names []string, opts options) error {
	infos, err := resolveKernels(names)
	if err != nil {
		return err
	}

	x, err := buildSignal(opts)
	if err != nil {
		return err
	}

	a := tfd.NewAnalyzer(tfd.WithWorkers(opts.workers), tfd.WithMethod(opts.method))
	defer a.Close()

	results := make([]result, len(infos))
	g, ctx := errgroup.WithContext(ctx)
	if opts.parallel > 0 {
		g.SetLimit(opts.parallel)
	}
	for i, info := range infos {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			alpha := info.DefaultAlpha
			if !math.IsNaN(opts.alpha) {
				alpha = opts.alpha
			}

			start := time.Now()
			d, err := a.Distribution(x, info.Kernel, alpha)
			if err != nil {
				return fmt.Errorf("%s: %w", info.Name, err)
			}
			t, f, peak := tfd.Peak(d)
			results[i] = result{
				info:    info,
				alpha:   alpha,
				energy:  tfd.TotalEnergy(d),
				peakT:   t,
				peakF:   f,
				peak:    peak,
				neg:     tfd.NegativeFraction(d),
				elapsed: time.Since(start),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return printResults(w, results, len(x), opts.rate)
}

func resolveKernels(names []string) ([]tfd.KernelInfo, error) {
	if len(names) == 0 {
		return tfd.Kernels(), nil
	}

	seen := make(map[string]bool, len(names))
	var out []tfd.KernelInfo
	for _, name := range names {
		info, err := tfd.LookupKernel(name)
		if err != nil {
			return nil, fmt.Errorf("%w (use -list to see available)", err)
		}
		if seen[info.Name] {
			continue
		}
		seen[info.Name] = true
		out = append(out, info)
	}
	return out, nil
}

var signalBuilders = map[string]func(g *signal.Generator, opts options) ([]float64, error){
	"sine": func(g *signal.Generator, opts options) ([]float64, error) {
		return g.Sine(opts.freqs[0], 1, opts.n)
	},
	"two-tone": func(g *signal.Generator, opts options) ([]float64, error) {
		freqs := opts.freqs
		if len(freqs) == 1 {
			freqs = []float64{freqs[0], 2 * freqs[0]}
		}
		return g.Multisine(freqs, 0.5, opts.n)
	},
	"chirp": func(g *signal.Generator, opts options) ([]float64, error) {
		start, end := 0.0, opts.freqs[0]
		if len(opts.freqs) > 1 {
			start, end = opts.freqs[0], opts.freqs[1]
		}
		return g.LinearSweep(start, end, 1, opts.n)
	},
	"impulse": func(g *signal.Generator, opts options) ([]float64, error) {
		return g.Impulse(1, opts.n, opts.n/2)
	},
	"noise": func(g *signal.Generator, opts options) ([]float64, error) {
		return g.WhiteNoise(1, opts.n)
	},
	"gabor": func(g *signal.Generator, opts options) ([]float64, error) {
		duration := float64(opts.n) / opts.rate
		return g.GaborAtom(opts.freqs[0], 1, duration/2, duration/8, opts.n)
	},
}

func signalNames() []string {
	return []string{"chirp", "gabor", "impulse", "noise", "sine", "two-tone"}
}

func buildSignal(opts options) ([]float64, error) {
	build, ok := signalBuilders[strings.ToLower(opts.shape)]
	if !ok {
		return nil, fmt.Errorf("unknown signal %q (want one of %s)", opts.shape, strings.Join(signalNames(), ", "))
	}
	if len(opts.freqs) == 0 {
		return nil, fmt.Errorf("signal %q needs at least one frequency", opts.shape)
	}
	g := signal.NewGenerator(signal.WithSampleRate(opts.rate), signal.WithSeed(opts.seed))
	return build(g, opts)
}

func printResults(w io.Writer, results []result, n int, rate float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Kernel\tAlpha\tN\tEnergy\tPeak t [s]\tPeak f [Hz]\tPeak\tNegative\tTime\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "------\t-----\t-\t------\t----------\t-----------\t----\t--------\t----\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	for _, r := range results {
		if _, err := fmt.Fprintf(tw, "%s\t%g\t%d\t%.6g\t%.6f\t%.1f\t%.6g\t%.2f%%\t%s\n",
			r.info.Name,
			r.alpha,
			n,
			r.energy,
			float64(r.peakT)/rate,
			binToHz(r.peakF, n, rate),
			r.peak,
			100*r.neg,
			r.elapsed.Round(time.Microsecond),
		); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// binToHz maps a frequency index to Hz. The lag is sampled at tau/2, so the
// N bins span half the sample rate.
func binToHz(bin, n int, rate float64) float64 {
	if n == 0 {
		return 0
	}
	return float64(bin) * rate / (2 * float64(n))
}
