// Command changepoint-detect runs change-point detection over a CSV
// signal, either with a user-supplied penalty (exact PELT) or with
// automatic BIC/AIC/AICc penalty selection, following the plain
// flag-driven CLI style of the examples pack (no CLI framework is
// imported anywhere in the pack for a comparable single-binary tool).
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	cp "github.com/invertedv/changepoint"
	"github.com/invertedv/changepoint/cost"
	"github.com/invertedv/changepoint/pelt"
	"github.com/invertedv/changepoint/penalty"
	"github.com/invertedv/changepoint/plot"
)

func main() {
	var (
		inFile     string
		costKind   string
		arOrder    int
		penaltyVal float64
		autoSelect bool
		method     string
		minSize    int
		jump       int
		plotFile   string
		showInPlot bool
	)

	flag.StringVar(&inFile, "in", "", "input CSV file (one column per dimension); empty reads stdin")
	flag.StringVar(&costKind, "cost", "l2", "cost function: l2, l1, gaussian, poisson, bernoulli, binomial, ar, rbf")
	flag.IntVar(&arOrder, "ar-order", 1, "AR(p) order, used only when -cost=ar")
	flag.Float64Var(&penaltyVal, "penalty", -1, "fixed penalty for PELT; ignored with -auto, must be >= 0 without it")
	flag.BoolVar(&autoSelect, "auto", false, "select the penalty automatically via an information criterion")
	flag.StringVar(&method, "method", "bic", "information criterion for -auto: bic, aic, aicc")
	flag.IntVar(&minSize, "min-size", 1, "minimum segment length")
	flag.IntVar(&jump, "jump", 1, "PELT candidate stride (1 = exact)")
	flag.StringVar(&plotFile, "plot", "", "write a Plotly HTML figure of the signal and breakpoints to this file")
	flag.BoolVar(&showInPlot, "show", false, "open the plot in a browser (requires -plot)")
	flag.Parse()

	if err := run(inFile, costKind, arOrder, penaltyVal, autoSelect, method, minSize, jump, plotFile, showInPlot); err != nil {
		fmt.Fprintf(os.Stderr, "changepoint-detect: %v\n", err)
		os.Exit(1)
	}
}

func run(inFile, costKind string, arOrder int, penaltyVal float64, autoSelect bool, method string, minSize, jump int, plotFile string, showInPlot bool) error {
	signal, err := readSignal(inFile)
	if err != nil {
		return err
	}

	fn, err := buildCostFunction(costKind, arOrder)
	if err != nil {
		return err
	}

	fitted, err := fn.Fit(signal)
	if err != nil {
		return fmt.Errorf("fit: %w", err)
	}

	var breakpoints []int

	switch {
	case autoSelect:
		m, err := parseMethod(method)
		if err != nil {
			return err
		}

		opts := penalty.DefaultOptions()
		opts.Method = m
		opts.MinSize = minSize
		opts.Jump = jump

		result, err := penalty.Select(context.Background(), fitted, signal, opts)
		if err != nil {
			return fmt.Errorf("select: %w", err)
		}

		breakpoints = result.Breakpoints

		fmt.Printf("method=%s selected_penalty=%v candidates=%d\n", result.Method, result.Penalty, len(result.Diagnostics))

	default:
		if penaltyVal < 0 {
			return fmt.Errorf("either -penalty >= 0 or -auto is required")
		}

		engine, err := pelt.New(fitted, pelt.Options{MinSize: minSize, Jump: jump})
		if err != nil {
			return fmt.Errorf("new engine: %w", err)
		}
		if _, err := engine.Fit(signal); err != nil {
			return fmt.Errorf("fit engine: %w", err)
		}

		breakpoints, err = engine.Detect(penaltyVal)
		if err != nil {
			return fmt.Errorf("detect: %w", err)
		}
	}

	fmt.Printf("breakpoints=%v\n", breakpoints)

	if plotFile != "" {
		def := &plot.Def{FileName: plotFile, Show: showInPlot, Title: "Change-point detection", XTitle: "index", YTitle: "value"}
		if err := plot.Signal(signal, 0, breakpoints, def); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
	}

	return nil
}

func parseMethod(s string) (penalty.Method, error) {
	switch strings.ToLower(s) {
	case "bic":
		return penalty.BIC, nil
	case "aic":
		return penalty.AIC, nil
	case "aicc":
		return penalty.AICc, nil
	default:
		return 0, fmt.Errorf("unknown method %q", s)
	}
}

func buildCostFunction(kind string, arOrder int) (cost.Function, error) {
	switch strings.ToLower(kind) {
	case "l2":
		return cost.NewL2(), nil
	case "l1":
		return cost.NewL1(), nil
	case "gaussian":
		return cost.NewGaussian(), nil
	case "poisson":
		return cost.NewPoisson(), nil
	case "bernoulli":
		return cost.NewBernoulli(), nil
	case "binomial":
		return cost.NewBinomial(), nil
	case "ar":
		return cost.NewAR(arOrder, true), nil
	case "rbf":
		return cost.NewRBF(0), nil
	default:
		return nil, fmt.Errorf("unknown cost function %q", kind)
	}
}

// readSignal parses a CSV file (or stdin) into a Signal, one dimension
// per column.
func readSignal(path string) (cp.Signal, error) {
	var r io.Reader

	if path == "" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return cp.Signal{}, err
		}
		defer f.Close()

		r = f
	}

	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return cp.Signal{}, err
	}
	if len(rows) == 0 {
		return cp.Signal{}, nil
	}

	dims := len(rows[0])
	data := make([][]float64, dims)
	for d := range data {
		data[d] = make([]float64, 0, len(rows))
	}

	for _, row := range rows {
		for d, field := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return cp.Signal{}, fmt.Errorf("parse %q: %w", field, err)
			}

			data[d] = append(data[d], v)
		}
	}

	return cp.Signal{Data: data}, nil
}
