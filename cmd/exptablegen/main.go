// Command exptablegen regenerates the firmware's precomputed complex exponential table.
//
//	go run ./cmd/exptablegen [-config exptable.json] [-o src/utils/exp_table.h]
//
// It reads NUM_SAMPLES and the frequency grid definitions from the firmware headers,
// derives the model order, and overwrites the generated header.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/RyanBlaney/exptable/artifact"
	"github.com/RyanBlaney/exptable/config"
	"github.com/RyanBlaney/exptable/generator"
	"github.com/RyanBlaney/exptable/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	dryRun     bool
	verbose    bool
	noColor    bool
}

// parseArgs builds the configuration: defaults, then the -config file, then any flag
// given explicitly on the command line
func parseArgs(args []string, stderr io.Writer) (config.Config, options, error) {
	var opts options
	fs := flag.NewFlagSet("exptablegen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "JSON configuration file")
	queueHeader := fs.String("queue-header", "", "header declaring the sample count")
	gridHeader := fs.String("grid-header", "", "header declaring the frequency grid")
	output := fs.String("o", "", `artifact path, "-" for stdout`)
	include := fs.String("include", "", "shared constants header to #include (empty for none)")
	rounding := fs.String("order-rounding", "", "model order rounding: floor or nearest")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "compute and check the table without writing it")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colored log output")

	if err := fs.Parse(args); err != nil {
		return config.Config{}, opts, err
	}
	if fs.NArg() > 0 {
		return config.Config{}, opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, opts, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "queue-header":
			cfg.QueueHeader = *queueHeader
		case "grid-header":
			cfg.GridHeader = *gridHeader
		case "o":
			cfg.Output = *output
		case "include":
			cfg.Artifact.Include = *include
		case "order-rounding":
			cfg.OrderRounding = config.OrderRounding(*rounding)
		}
	})
	if opts.verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, opts, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return generator.ExitSuccess
		}
		fmt.Fprintln(stderr, err)
		return generator.ExitInvalidInvocation
	}

	// keep stdout clean for the artifact when it is the destination
	logOut := stdout
	if cfg.Output == artifact.Stdout {
		logOut = stderr
	}
	logger := logging.NewWriterLogger(logOut, stderr)
	if f, ok := stderr.(*os.File); ok && !opts.noColor {
		logger.SetColors(logging.IsTerminal(f))
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Error(err, "invalid log level")
		return generator.ExitInvalidInvocation
	}
	logger.SetLevel(level)
	logging.SetGlobalLogger(logger)

	gen, err := generator.New(cfg, stdout, logger.WithFields(logging.Fields{"component": "exptablegen"}))
	if err != nil {
		logger.Error(err, "cannot start")
		return generator.ExitInvalidInvocation
	}

	result, err := gen.Run(opts.dryRun)
	if err != nil {
		logger.Error(err, "table generation failed")
		return generator.ExitCode(err)
	}

	if result.Written && cfg.Output != artifact.Stdout {
		logger.Info("exponential table regenerated", logging.Fields{
			"output":      cfg.Output,
			"model_order": result.ModelOrder,
			"freq_bins":   result.Constants.FreqBins,
		})
	}
	return generator.ExitSuccess
}
