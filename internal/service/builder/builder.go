package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oshokin/dashboard-builder/internal/config"
	"github.com/oshokin/dashboard-builder/internal/domain/build"
	"github.com/oshokin/dashboard-builder/internal/logger"
	"github.com/oshokin/dashboard-builder/internal/repository/manifest"
	"github.com/oshokin/dashboard-builder/internal/service/assembler"
	"github.com/oshokin/dashboard-builder/internal/service/linuxpkg"
	"github.com/oshokin/dashboard-builder/internal/service/patcher"
	"github.com/oshokin/dashboard-builder/internal/service/probe"
	"github.com/oshokin/dashboard-builder/internal/service/report"
)

// ErrBuildFailed is returned when any stage fails.
var ErrBuildFailed = errors.New("build failed")

// Options contains inputs for the builder entry point.
type Options struct {
	// ConfigPath is the optional settings file; defaults apply when it does not exist.
	ConfigPath string
	// Config overrides ConfigPath when set.
	Config *config.Config
	// Runner executes tool version queries; real processes are used when nil.
	Runner probe.Runner
	// Output receives the report; stdout when nil.
	Output io.Writer
}

// pipeline holds the state of a single build run.
// Callers should use Run.
type pipeline struct {
	// cfg is the validated configuration.
	cfg *config.Config
	// layout resolves every path the stages touch.
	layout build.Layout
	// prober checks the toolchain.
	prober *probe.Prober
	// manifests loads and saves package.json.
	manifests manifest.Repository
	// result collects what every stage produced.
	result *build.Result
}

// stage is one pipeline step.
type stage struct {
	name string
	run  func(ctx context.Context) error
}

// Run executes the whole pipeline and prints the report.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "dashboard-builder")

	cfg := opts.Config
	if cfg == nil {
		var err error

		cfg, err = config.Load(opts.ConfigPath)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
	} else if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	runner := opts.Runner
	if runner == nil {
		runner = probe.NewExecRunner()
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	p := newPipeline(cfg, runner)

	logger.InfoKV(ctx, "Starting dashboard build", "source_root", p.layout.SourceRoot)

	runErr := p.Run(ctx)

	if err := report.Render(output, p.result); err != nil {
		logger.ErrorKV(ctx, "Unable to print the report", "error", err)
	}

	if runErr != nil {
		return fmt.Errorf("%w: %w", ErrBuildFailed, runErr)
	}

	logger.Info(ctx, "Dashboard build completed successfully")

	return nil
}

func newPipeline(cfg *config.Config, runner probe.Runner) *pipeline {
	layout := build.NewLayout(cfg.SourceRoot, cfg.Manifest)

	return &pipeline{
		cfg:       cfg,
		layout:    layout,
		prober:    probe.New(runner, cfg.ProbeTimeout),
		manifests: manifest.NewFileRepository(layout.Manifest),
		result: &build.Result{
			Status: build.NewStatus(cfg.Tools),
		},
	}
}

// Run executes the stages in order and stops at the first failure.
func (p *pipeline) Run(ctx context.Context) error {
	for _, s := range p.stages() {
		if err := ctx.Err(); err != nil {
			p.result.Stages = append(p.result.Stages, build.StageResult{Stage: s.name, Err: err})

			return err
		}

		stageCtx := logger.WithKV(ctx, "stage", s.name)
		logger.Info(stageCtx, "Stage started")

		started := time.Now()
		err := s.run(stageCtx)

		p.result.Stages = append(p.result.Stages, build.StageResult{
			Stage:    s.name,
			Err:      err,
			Duration: time.Since(started),
		})

		if err != nil {
			logger.ErrorKV(stageCtx, "Stage failed", "error", err)

			return fmt.Errorf("%s: %w", s.name, err)
		}
	}

	return nil
}

func (p *pipeline) stages() []stage {
	return []stage{
		{name: build.StageProbe, run: p.checkEnvironment},
		{name: build.StagePatch, run: p.patchManifest},
		{name: build.StageBundle, run: p.createSimpleBuild},
		{name: build.StagePackage, run: p.createLinuxPackage},
	}
}

func (p *pipeline) checkEnvironment(ctx context.Context) error {
	return p.prober.Probe(ctx, p.cfg.Tools, p.result.Status)
}

func (p *pipeline) patchManifest(ctx context.Context) error {
	changes, err := patcher.Run(ctx, p.manifests, p.cfg.Pins)
	if err != nil {
		return err
	}

	p.result.Changes = changes

	return nil
}

func (p *pipeline) createSimpleBuild(ctx context.Context) error {
	copied, err := assembler.Assemble(ctx, p.layout, p.cfg.EssentialEntries)
	p.result.Copied = copied

	return err
}

func (p *pipeline) createLinuxPackage(ctx context.Context) error {
	artifacts, err := linuxpkg.Assemble(ctx, p.layout)
	p.result.Artifacts = artifacts

	return err
}
