// Package generator wires the constant loader, the basis table computer and the
// artifact emitter into the single pass that regenerates the firmware's exp_table.h.
package generator

import (
	"errors"
	"fmt"
	"io"

	"github.com/RyanBlaney/exptable/algorithms/spectral"
	"github.com/RyanBlaney/exptable/artifact"
	"github.com/RyanBlaney/exptable/config"
	"github.com/RyanBlaney/exptable/constants"
	"github.com/RyanBlaney/exptable/logging"
)

// Process exit codes
const (
	ExitSuccess           = 0
	ExitInternalError     = 1
	ExitInvalidInvocation = 2
	ExitConfigError       = 3
	ExitSourceUnavailable = 4
	ExitPermission        = 5
	ExitIOError           = 6
)

// Result describes one generator run
type Result struct {
	Constants  constants.Set
	ModelOrder int
	Check      *spectral.CheckReport // nil when the self-check is disabled
	Artifact   []byte
	Written    bool // false for dry runs
}

// Generator runs the pipeline for one configuration
type Generator struct {
	cfg    config.Config
	stdout io.Writer
	logger logging.Logger
}

// New validates cfg and returns a generator. stdout receives the artifact when the
// configured output is "-". A nil logger falls back to the global logger.
func New(cfg config.Config, stdout io.Writer, logger logging.Logger) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &Generator{cfg: cfg, stdout: stdout, logger: logger}, nil
}

// Run loads the constants from the configured headers and generates the artifact
func (g *Generator) Run(dryRun bool) (Result, error) {
	names := g.names()
	wanted := []string{names.SampleCount, names.FreqBins, names.FreqStart, names.FreqEnd}

	queue, err := constants.ReadHeader(g.cfg.QueueHeader, wanted...)
	if err != nil {
		return Result{}, err
	}
	grid, err := constants.ReadHeader(g.cfg.GridHeader, wanted...)
	if err != nil {
		return Result{}, err
	}

	return g.RunWith(queue, grid, dryRun)
}

// RunWith generates the artifact from already resolved constant providers
func (g *Generator) RunWith(queue, grid constants.Provider, dryRun bool) (Result, error) {
	var result Result

	set, err := constants.Load(queue, grid, g.names())
	if err != nil {
		return result, err
	}
	result.Constants = set
	g.logger.Info("constants loaded", logging.Fields{
		"sample_count": set.SampleCount,
		"freq_bins":    set.FreqBins,
		"freq_start":   set.FreqStart,
		"freq_end":     set.FreqEnd,
	})

	result.ModelOrder = g.modelOrder(set.SampleCount)
	g.logger.Debug("model order derived", logging.Fields{
		"model_order": result.ModelOrder,
		"rounding":    string(g.cfg.OrderRounding),
	})

	table, err := spectral.ComputeBasis(set.FreqStart, set.FreqEnd, set.FreqBins, result.ModelOrder)
	if err != nil {
		return result, fmt.Errorf("failed to compute basis table: %w", err)
	}

	if g.cfg.Verify {
		report, err := spectral.NewChecker(g.logger).Verify(table, set.FreqStart, set.FreqEnd)
		if err != nil {
			return result, err
		}
		result.Check = &report
	}

	result.Artifact = artifact.Render(table, g.layout())

	if dryRun {
		g.logger.Info("dry run, artifact not written", logging.Fields{
			"output": g.cfg.Output,
			"bytes":  len(result.Artifact),
		})
		return result, nil
	}

	if err := artifact.NewEmitter(g.stdout, g.logger).Emit(g.cfg.Output, result.Artifact); err != nil {
		return result, err
	}
	result.Written = true

	return result, nil
}

func (g *Generator) names() constants.Names {
	return constants.Names{
		SampleCount: g.cfg.Names.SampleCount,
		FreqBins:    g.cfg.Names.FreqBins,
		FreqStart:   g.cfg.Names.FreqStart,
		FreqEnd:     g.cfg.Names.FreqEnd,
	}
}

func (g *Generator) modelOrder(sampleCount int) int {
	if g.cfg.OrderRounding == config.OrderNearest {
		return spectral.ModelOrderNearest(sampleCount)
	}
	return spectral.ModelOrder(sampleCount)
}

func (g *Generator) layout() artifact.Layout {
	a := g.cfg.Artifact
	return artifact.Layout{
		Command:           a.Command,
		Guard:             a.Guard,
		Include:           a.Include,
		TableName:         a.TableName,
		Storage:           a.Storage,
		BinsSymbol:        g.cfg.Names.FreqBins,
		OrderSymbol:       a.OrderSymbol,
		LiteralDimensions: a.LiteralDimensions,
		Precision:         a.Precision,
	}
}

// ExitCode maps an error returned by the generator to the process exit status
func ExitCode(err error) int {
	var (
		cfgErr  *constants.ConfigurationError
		srcErr  *constants.SourceUnavailableError
		permErr *artifact.PermissionError
		ioErr   *artifact.UnexpectedIOError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &cfgErr):
		return ExitConfigError
	case errors.As(err, &srcErr):
		return ExitSourceUnavailable
	case errors.As(err, &permErr):
		return ExitPermission
	case errors.As(err, &ioErr):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
