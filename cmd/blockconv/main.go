// Command blockconv filters a signal with a kernel using one of the
// time-domain convolution methods and prints the result.
//
// Usage:
//
//	blockconv [flags]
//
// Examples:
//
//	blockconv
//	blockconv -x 1,2,3,2 -h 1,2,1 -method overlap-add -block 3
//	blockconv -x 1,2,3,2 -h 1,2,1 -method realtime
//	blockconv -list
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-blockconv/dsp/conv"
	"github.com/cwbudde/algo-blockconv/dsp/core"
	"github.com/cwbudde/algo-blockconv/dsp/filter/fir"
)

var methodHelp = []struct {
	method core.Method
	desc   string
}{
	{core.MethodLinear, "direct linear convolution, len(x)+len(h)-1 samples"},
	{core.MethodCircular, "direct circular convolution, max(len(x), len(h)) samples"},
	{core.MethodOverlapAdd, "disjoint blocks, tails summed (block >= len(h))"},
	{core.MethodOverlapSave, "overlapping blocks, aliased prefix dropped (block > len(h))"},
	{core.MethodRealTime, "one sample at a time through a FIR filter, len(x) samples"},
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			logrus.WithFields(logrus.Fields{
				"function": "main",
				"error":    err.Error(),
			}).Error("Filtering failed")
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("blockconv", flag.ContinueOnError)
	fs.SetOutput(stderr)

	signal := fs.String("x", "1,2,3,4,5", "comma-separated input samples")
	kernel := fs.String("h", "1,2,1,2,1", "comma-separated filter coefficients")
	methodName := fs.String("method", core.MethodLinear.String(), "convolution method (see -list)")
	block := fs.Int("block", 0, "block length for overlap-add / overlap-save (0 = default)")
	list := fs.Bool("list", false, "list available methods")
	verbose := fs.Bool("v", false, "enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: blockconv [flags]\n\n")
		fmt.Fprintf(stderr, "Filters a signal with a kernel and prints the output samples.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	logrus.SetOutput(stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logrus.SetLevel(logrus.InfoLevel)
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if *list {
		return printMethods(stdout)
	}

	method, err := core.ParseMethod(*methodName)
	if err != nil {
		return err
	}
	x, err := parseSamples(*signal)
	if err != nil {
		return fmt.Errorf("-x: %w", err)
	}
	h, err := parseSamples(*kernel)
	if err != nil {
		return fmt.Errorf("-h: %w", err)
	}

	opts := []core.ProcessorOption{core.WithMethod(method)}
	if *block > 0 {
		opts = append(opts, core.WithBlockLength(*block))
	} else if method.IsBlockBased() {
		opts = append(opts, core.WithBlockLength(defaultBlockLength(method, len(h))))
	}
	cfg := core.ApplyProcessorOptions(opts...)

	logrus.WithFields(logrus.Fields{
		"function":     "run",
		"method":       cfg.Method.String(),
		"signal_len":   len(x),
		"kernel_len":   len(h),
		"block_length": cfg.BlockLength,
	}).Debug("Filtering signal")

	y, err := filter(cfg, x, h)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"function":   "run",
		"output_len": len(y),
	}).Debug("Filtering complete")

	return printSamples(stdout, y)
}

// filter runs exactly one method selected by cfg.
func filter(cfg core.ProcessorConfig, x, h []float64) ([]float64, error) {
	switch cfg.Method {
	case core.MethodCircular:
		return conv.Circular(x, h)
	case core.MethodOverlapAdd:
		return conv.OverlapAddFilter(x, h, cfg.BlockLength)
	case core.MethodOverlapSave:
		return conv.OverlapSaveFilter(x, h, cfg.BlockLength)
	case core.MethodRealTime:
		f, err := fir.New(h)
		if err != nil {
			return nil, err
		}
		y := make([]float64, len(x))
		if err := f.ProcessBlockTo(y, x); err != nil {
			return nil, err
		}
		return y, nil
	default:
		return conv.Linear(x, h)
	}
}

// defaultBlockLength picks the smallest legal block length for method.
func defaultBlockLength(method core.Method, kernelLen int) int {
	if method == core.MethodOverlapSave {
		return kernelLen + 1
	}
	return max(kernelLen, 1)
}

func parseSamples(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad sample %q", core.ErrInvalidArgument, f)
		}
		out = append(out, v)
	}
	return out, nil
}

func printSamples(w io.Writer, y []float64) error {
	parts := make([]string, len(y))
	for i, v := range y {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, " "))
	return err
}

func printMethods(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tDESCRIPTION")
	for _, m := range methodHelp {
		fmt.Fprintf(tw, "%s\t%s\n", m.method, m.desc)
	}
	return tw.Flush()
}
