// Command bop runs a Bop source file, or enters a line-buffered REPL when
// given no arguments.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/bop-lang/bop"
	"github.com/bop-lang/bop/internal/logio"
	"github.com/bop-lang/bop/internal/panicerr"
)

func main() {
	var (
		steps  uint64
		memory uint64
		demo   bool
		trace  bool
	)
	flag.Uint64Var(&steps, "steps", 0, "override max step count (0 = use -demo/standard preset)")
	flag.Uint64Var(&memory, "memory", 0, "override max memory in bytes (0 = use -demo/standard preset)")
	flag.BoolVar(&demo, "demo", false, "start from the demo limits preset instead of standard")
	flag.BoolVar(&trace, "trace", false, "log a tick-by-tick evaluation trace to stderr")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer os.Exit(log.ExitCode())

	limits := bop.Standard()
	if demo {
		limits = bop.Demo()
	}
	if steps != 0 {
		limits.MaxSteps = steps
	}
	if memory != 0 {
		limits.MaxMemory = memory
	}

	var evalOpts []bop.Option
	evalOpts = append(evalOpts, bop.WithLimits(limits))
	if trace {
		evalOpts = append(evalOpts, bop.WithLogf(log.Printf))
	}

	if flag.NArg() > 0 {
		runFile(&log, flag.Arg(0), bop.NewStdHost(os.Stdout), evalOpts)
		return
	}
	repl(&log, bop.NewStdHost(os.Stdout), evalOpts)
}

func runFile(log *logio.Logger, path string, host bop.Host, evalOpts []bop.Option) {
	src, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("reading %s: %v", path, err)
		return
	}

	e := bop.New(append([]bop.Option{bop.WithHost(host)}, evalOpts...)...)
	err = panicerr.Recover("bop.Run", func() error {
		return e.Run(string(src))
	})
	if err != nil {
		log.Errorf("%v", err)
	}
}

// repl reuses a single Evaluator across every line, so let-bound names
// persist the way the reference CLI keeps one interpreter alive for
// the whole session.
func repl(log *logio.Logger, host bop.Host, evalOpts []bop.Option) {
	e := bop.New(append([]bop.Option{bop.WithHost(host)}, evalOpts...)...)
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			fmt.Print("> ")
			continue
		}
		err := panicerr.Recover("bop.Run", func() error {
			return e.Run(line)
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		fmt.Print("> ")
	}
	log.ErrorIf(scanner.Err())
}
