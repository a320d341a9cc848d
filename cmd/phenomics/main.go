// Package main provides the phenomics CLI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/born-ml/phenomics/model"
)

const version = "v0.0.1-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stdout)
		return 0
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "phenomics %s\n", version)
		return 0
	case "inspect", "validate":
		return check(args[0], args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "phenomics - plant phenotyping model configuration")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version                  Show version")
	fmt.Fprintln(w, "  validate [flags] <file>  Check a YAML model description")
	fmt.Fprintln(w, "  inspect [flags] <file>   Print the layer topology of a YAML model description")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -batch N    Override batch_size")
	fmt.Fprintln(w, "  -epochs N   Override maximum_training_epochs")
	fmt.Fprintln(w, "  -seed N     Override the train/test shuffle seed")
	fmt.Fprintln(w, "  -v          Log debug messages")
}

func check(cmd string, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	batch := fs.Int("batch", 0, "override batch_size")
	epochs := fs.Int("epochs", 0, "override maximum_training_epochs")
	seed := fs.Uint64("seed", 0, "override the train/test shuffle seed")
	verbose := fs.Bool("v", false, "log debug messages")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "usage: phenomics %s [flags] <file>\n", cmd)
		return 2
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := model.LoadConfig(fs.Arg(0))
	if err != nil {
		return fail(stderr, err)
	}
	cfg.ApplyOverrides(model.ConfigOverrides{BatchSize: *batch, MaxEpochs: *epochs, Seed: *seed})

	m, err := cfg.Build(model.WithLogger(logger))
	if err != nil {
		return fail(stderr, err)
	}
	top, err := m.Topology()
	if err != nil {
		return fail(stderr, err)
	}

	if cmd == "inspect" {
		fmt.Fprint(stdout, top)
		if d := m.Dataset(); d != nil {
			fmt.Fprintf(stdout, "Dataset: %d samples\n", d.Len())
			if stats, err := d.Stats(); err == nil {
				fmt.Fprintf(stdout, "  labels: %s\n", stats)
			}
		}
	} else {
		fmt.Fprintf(stdout, "%s: ok (%s, %d layers)\n", fs.Arg(0), top.ProblemType, len(top.Layers))
	}
	for _, w := range m.Warnings() {
		fmt.Fprintf(stdout, "warning: %s\n", w)
	}
	return 0
}

// fail reports err. Configuration errors exit with 1, anything else such as
// an unreadable file with 3.
func fail(w io.Writer, err error) int {
	fmt.Fprintf(w, "phenomics: %v\n", err)
	if errors.Is(err, model.ErrType) || errors.Is(err, model.ErrValue) || errors.Is(err, model.ErrState) {
		return 1
	}
	return 3
}
