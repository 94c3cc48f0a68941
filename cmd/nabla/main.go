// Command nabla reads a point from standard input and prints the first and
// second partial derivatives of a catalog function at that point.
//
//	echo "1.0 2.0" | nabla -func user
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sgostarter/i/l"
	"github.com/sw965/nabla"
	"github.com/sw965/nabla/check"
	"github.com/sw965/nabla/config"
	"github.com/sw965/nabla/functions"
	"github.com/sw965/nabla/pointio"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("nabla", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		flagConfig  string
		flagFunc    string
		flagStep    float64
		flagFormat  string
		flagVerify  bool
		flagTol     float64
		flagList    bool
		flagVerbose bool
	)
	fs.StringVar(&flagConfig, "config", "", "YAML config file")
	fs.StringVar(&flagFunc, "func", "", "function name (overrides config)")
	fs.Float64Var(&flagStep, "step", 0, "central difference step, 0 = default 1.2e-4 (overrides config)")
	fs.StringVar(&flagFormat, "format", "", "printf verb for values, e.g. %.8f (overrides config)")
	fs.BoolVar(&flagVerify, "verify", false, "cross-check against gonum diff/fd (overrides config)")
	fs.Float64Var(&flagTol, "tol", 0, "absolute tolerance of -verify (overrides config)")
	fs.BoolVar(&flagList, "list", false, "list available functions and exit")
	fs.BoolVar(&flagVerbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if flagList {
		for _, name := range functions.Names() {
			fn, _ := functions.Lookup(name)
			fmt.Fprintf(stdout, "%-12s %s\n", name, fn.Description)
		}
		return 0
	}

	var logger l.Wrapper = l.NewNopLoggerWrapper()
	if flagVerbose {
		logger = l.NewConsoleLoggerWrapper()
	}
	logger = logger.WithFields(l.StringField(l.ClsKey, "nabla"))

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(stderr, "nabla: %v\n", err)
		return 1
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "func":
			cfg.Function = flagFunc
		case "step":
			cfg.Step = flagStep
		case "format":
			cfg.Format = flagFormat
		case "verify":
			cfg.Verify = flagVerify
		case "tol":
			cfg.Tolerance = flagTol
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "nabla: %v\n", err)
		return 1
	}

	fn, err := functions.Lookup(cfg.Function)
	if err != nil {
		fmt.Fprintf(stderr, "nabla: %v\n", err)
		return 1
	}

	p, err := pointio.ParsePoint(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "nabla: %v\n", err)
		return 1
	}
	logger.WithFields(l.StringField("function", fn.Name), l.IntField("dim", len(p))).Info("point loaded")

	calc := nabla.Calculator{
		Func:   fn.Func,
		Dim:    fn.Dim,
		Step:   cfg.EffectiveStep(),
		Logger: logger,
	}
	result, err := calc.Calculate(p)
	if err != nil {
		logger.WithFields(l.ErrorField(err)).Error("calculate failed")
		fmt.Fprintf(stderr, "nabla: %v\n", err)
		return 1
	}

	if degenerate := result.Degenerate(); len(degenerate) != 0 {
		logger.WithFields(l.IntField("count", len(degenerate))).Info("non-finite derivatives")
	}

	if err := (pointio.Writer{Format: cfg.Format}).Write(stdout, result); err != nil {
		fmt.Fprintf(stderr, "nabla: %v\n", err)
		return 1
	}

	if !cfg.Verify {
		return 0
	}

	report, err := check.Compare(result, fn.Func, p, cfg.EffectiveStep())
	if err != nil {
		fmt.Fprintf(stderr, "nabla: verify: %v\n", err)
		return 1
	}
	fmt.Fprintf(stderr, "verify: %s\n", report)

	if !report.Within(cfg.Tolerance) {
		fmt.Fprintf(stderr, "nabla: verify: difference exceeds tolerance %.6g\n", cfg.Tolerance)
		return 1
	}
	return 0
}
