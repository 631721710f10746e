// Copyright 2026 Kevin Herro. All rights reserved.
//
// Licensed under the MIT License (the "License");

// Package pipeline provides the core execution engine for janus-ci.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/kevherro/janus/pkg/artifact"
	"github.com/kevherro/janus/pkg/cache"
	"github.com/kevherro/janus/pkg/config"
	"github.com/kevherro/janus/pkg/errors"
	"github.com/kevherro/janus/pkg/hooks"
	"github.com/kevherro/janus/pkg/lint"
	"github.com/kevherro/janus/pkg/observability"
	"github.com/kevherro/janus/pkg/proc"
	"github.com/kevherro/janus/pkg/report"
	"github.com/kevherro/janus/pkg/sandbox"
	"github.com/kevherro/janus/pkg/styleguide"
	"github.com/kevherro/janus/pkg/testrun"
	"github.com/kevherro/janus/pkg/version"
)

// State represents the runner lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateRunning
	StateShuttingDown
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateShuttingDown:
		return "shutting_down"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Options holds runner configuration options.
type Options struct {
	// ConfigPath is the path to the config file. Empty uses the default
	// search order.
	ConfigPath string
	// WorkDir is the working directory (the source tree).
	WorkDir string
	// Verbose enables debug logging.
	Verbose bool
	// DryRun reports the stages without executing them.
	DryRun bool
	// KeepEnv skips teardown, leaving the sandbox on disk.
	KeepEnv bool
	// SkipLint skips the lint passes.
	SkipLint bool
	// Stages restricts the run to the named stages. Empty runs them all.
	// Setup and teardown are always included so the sandbox lifecycle
	// stays intact.
	Stages []string
	// GracefulTimeout is the timeout for graceful shutdown.
	GracefulTimeout time.Duration
}

// DefaultOptions returns the default runner options.
func DefaultOptions() *Options {
	return &Options{
		WorkDir:         ".",
		GracefulTimeout: 5 * time.Second,
	}
}

// Runner executes the pipeline: sandbox setup, dependency install, lint,
// build-and-install, test from outside the tree, teardown.
type Runner struct {
	mu sync.RWMutex

	// Core components
	cfg     *config.Config
	log     observability.Logger
	metrics *observability.Metrics
	hooks   *hooks.Registry
	box     *sandbox.Sandbox
	fetcher *styleguide.Fetcher
	retry   *RetryExecutor

	// Process currently executing a stage command, for shutdown.
	process *proc.Process

	// State
	state State
	runID string

	// Set during the build stage, consumed by the test stage.
	installedRoot string

	// Error of the most recent failed stage.
	stageErr error

	// Options
	opts *Options

	// Signal handling
	signalChan chan os.Signal
	shutdownCh chan struct{}
}

// New creates a new Runner instance with default options.
func New() *Runner {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a new Runner instance with the given options.
func NewWithOptions(opts *Options) *Runner {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.WorkDir == "" {
		opts.WorkDir = "."
	}
	if opts.GracefulTimeout == 0 {
		opts.GracefulTimeout = 5 * time.Second
	}

	return &Runner{
		opts:       opts,
		state:      StateUninitialized,
		retry:      NewRetryExecutor(DefaultRetryPolicy()),
		shutdownCh: make(chan struct{}),
		signalChan: make(chan os.Signal, 1),
	}
}

// Bootstrap loads configuration and initializes the run components.
func (r *Runner) Bootstrap(ctx context.Context) error {
	r.mu.Lock()
	if r.state != StateUninitialized && r.state != StateStopped {
		r.mu.Unlock()
		return fmt.Errorf("cannot bootstrap: runner is in state %s", r.state)
	}
	r.state = StateInitializing
	r.mu.Unlock()

	cfg, err := r.loadConfig()
	if err != nil {
		r.mu.Lock()
		r.state = StateUninitialized
		r.mu.Unlock()
		return err
	}

	level := cfg.Global.LogLevel
	if r.opts.Verbose {
		level = "debug"
	}

	r.mu.Lock()
	r.cfg = cfg
	r.runID = uuid.NewString()
	r.log = observability.NewLogger(level).With(observability.String("run", shortID(r.runID)))
	r.metrics = observability.NewMetrics()
	r.box = sandbox.New(filepath.Join(r.opts.WorkDir, cfg.Env.Path), r.log)
	r.fetcher = styleguide.NewFetcher(
		cache.NewDiskCache(filepath.Join(r.opts.WorkDir, cfg.Global.CacheDir)),
		r.log, r.metrics)
	r.hooks = hooks.NewRegistry(r.log)
	for _, hc := range cfg.Hooks {
		r.hooks.Register(&hooks.Hook{
			Name:    hc.Name,
			Event:   hooks.EventType(hc.Event),
			Command: hc.Command,
			Timeout: hc.Timeout,
			Enabled: true,
		})
	}
	r.state = StateReady
	r.mu.Unlock()

	r.setupSignalHandler()
	return nil
}

func (r *Runner) loadConfig() (*config.Config, error) {
	if r.opts.ConfigPath != "" {
		return config.Load(r.opts.ConfigPath)
	}
	return config.LoadFromEnv()
}

// setupSignalHandler sets up signal handling for graceful shutdown.
func (r *Runner) setupSignalHandler() {
	signal.Notify(r.signalChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-r.signalChan:
			r.log.Warn("received signal, shutting down", observability.String("signal", sig.String()))
			ctx, cancel := context.WithTimeout(context.Background(), r.opts.GracefulTimeout)
			defer cancel()
			_ = r.Shutdown(ctx)
		case <-r.shutdownCh:
			return
		}
	}()
}

// Run executes the full pipeline and returns the run summary.
// The summary is non-nil even on failure so callers can report partial
// progress; the error identifies the first failing stage.
func (r *Runner) Run(ctx context.Context) (*report.Summary, error) {
	r.mu.Lock()
	if r.state != StateReady {
		state := r.state
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: runner is in state %s", ErrNotInitialized, state)
	}
	r.state = StateRunning
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		if r.state == StateRunning {
			r.state = StateReady
		}
		r.mu.Unlock()
	}()

	stages := r.buildStages()
	if err := validateStageOrder(stages); err != nil {
		return nil, err
	}

	summary := &report.Summary{RunID: r.runID, Success: true}
	start := time.Now()
	var firstErr error

	for _, stage := range stages {
		result := r.runStage(ctx, stage, firstErr != nil)
		summary.Stages = append(summary.Stages, result)
		if result.Status == report.StatusFailed && firstErr == nil {
			firstErr = r.lastStageErr()
		}
	}

	summary.Duration = time.Since(start)
	summary.Success = firstErr == nil

	if firstErr != nil {
		r.hooks.Trigger(ctx, hooks.EventOnFailure)
		return summary, firstErr
	}
	r.hooks.Trigger(ctx, hooks.EventOnSuccess)
	return summary, nil
}

// runStage executes one stage with its hooks and timeout.
// When the pipeline already failed, every stage except teardown is
// skipped: later stages must not run after a failure, but teardown
// always does.
func (r *Runner) runStage(ctx context.Context, stage Stage, failed bool) report.StageResult {
	if failed && stage.Name != StageTeardown {
		return report.StageResult{Stage: stage.Name, Status: report.StatusSkipped, Detail: "earlier stage failed"}
	}
	if stage.Skip || r.opts.DryRun {
		reason := stage.SkipReason
		if r.opts.DryRun {
			reason = "dry run"
		}
		return report.StageResult{Stage: stage.Name, Status: report.StatusSkipped, Detail: reason}
	}

	if stage.PreEvent != "" {
		r.hooks.Trigger(ctx, stage.PreEvent)
	}

	stageCtx := ctx
	if stage.Timeout > 0 {
		var cancel context.CancelFunc
		stageCtx, cancel = context.WithTimeout(ctx, stage.Timeout)
		defer cancel()
	}

	r.log.Info("stage started", observability.String("stage", stage.Name))
	start := time.Now()
	detail, err := stage.Run(stageCtx)
	duration := time.Since(start)

	r.metrics.RecordStage(stage.Name, duration, err == nil)

	if stage.PostEvent != "" {
		r.hooks.Trigger(ctx, stage.PostEvent)
	}

	if err != nil {
		r.log.Error("stage failed",
			observability.String("stage", stage.Name),
			observability.Err(err))
		r.setStageErr(err)
		return report.StageResult{
			Stage:    stage.Name,
			Status:   report.StatusFailed,
			Duration: duration,
			Detail:   err.Error(),
		}
	}

	r.log.Info("stage finished",
		observability.String("stage", stage.Name),
		observability.String("detail", detail))
	return report.StageResult{
		Stage:    stage.Name,
		Status:   report.StatusPassed,
		Duration: duration,
		Detail:   detail,
	}
}

// buildStages assembles the pipeline stages in execution order.
func (r *Runner) buildStages() []Stage {
	cfg := r.cfg

	stages := []Stage{
		{
			Name:      StageSetup,
			PreEvent:  hooks.EventPreSetup,
			PostEvent: hooks.EventPostSetup,
			Run:       r.runSetup,
		},
		{
			Name: StageDeps,
			Skip: len(cfg.Env.Deps) == 0, SkipReason: "no tool dependencies configured",
			Run: r.runDeps,
		},
		{
			Name: StageStyleguide,
			Skip: cfg.Styleguide.URL == "", SkipReason: "no style-guide URL configured",
			Run: r.runStyleguide,
		},
		{
			Name:      StageLint,
			PreEvent:  hooks.EventPreLint,
			PostEvent: hooks.EventPostLint,
			Skip:      r.opts.SkipLint, SkipReason: "lint disabled",
			Timeout: cfg.LintTimeout(),
			Run:     r.runLint,
		},
		{
			Name:      StageBuild,
			PreEvent:  hooks.EventPreBuild,
			PostEvent: hooks.EventPostBuild,
			Timeout:   cfg.BuildTimeout(),
			Run:       r.runBuild,
		},
		{
			Name:      StageTest,
			PreEvent:  hooks.EventPreTest,
			PostEvent: hooks.EventPostTest,
			Timeout:   cfg.TestTimeout(),
			Run:       r.runTest,
		},
		{
			Name: StageTeardown,
			Skip: r.opts.KeepEnv || cfg.Env.Keep, SkipReason: "keeping environment",
			Run: r.runTeardown,
		},
	}
	if len(r.opts.Stages) > 0 {
		stages = filterStages(stages, r.opts.Stages)
	}
	return stages
}

// filterStages keeps only the named stages, preserving canonical order.
// Setup and teardown are always kept.
func filterStages(stages []Stage, names []string) []Stage {
	want := make(map[string]bool, len(names)+2)
	want[StageSetup] = true
	want[StageTeardown] = true
	for _, n := range names {
		want[n] = true
	}

	out := stages[:0]
	for _, st := range stages {
		if want[st.Name] {
			out = append(out, st)
		}
	}
	return out
}

// runSetup creates the sandbox environment. An existing sandbox is
// removed first so repeated runs start clean.
func (r *Runner) runSetup(ctx context.Context) (string, error) {
	if err := r.box.Create(ctx); err != nil {
		return "", err
	}
	return fmt.Sprintf("sandbox at %s", r.cfg.Env.Path), nil
}

// runDeps installs the tool dependencies into the sandbox.
func (r *Runner) runDeps(ctx context.Context) (string, error) {
	if err := r.box.InstallDeps(ctx, r.cfg.Env.Deps); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d tool(s) installed", len(r.cfg.Env.Deps)), nil
}

// runStyleguide downloads the style-guide configuration. Download is
// the one stage with retryable failures.
func (r *Runner) runStyleguide(ctx context.Context) (string, error) {
	dest := filepath.Join(r.opts.WorkDir, r.cfg.Styleguide.Filename)
	err := r.retry.Execute(ctx, func() error {
		return r.fetcher.Fetch(ctx, r.cfg.Styleguide.URL, dest, r.cfg.StyleguideTTL())
	})
	if err != nil {
		return "", err
	}
	return r.cfg.Styleguide.Filename, nil
}

// runLint executes every configured lint pass and classifies the
// exit statuses. Non-blocking findings are reported but do not fail
// the pipeline.
func (r *Runner) runLint(ctx context.Context) (string, error) {
	blockOn, err := r.cfg.Lint.BlockingCategories()
	if err != nil {
		return "", err
	}

	rep := &lint.Report{}
	for _, pass := range r.cfg.Lint.Passes {
		output, cls, err := r.runLintPass(ctx, pass.Command, blockOn)
		if err != nil {
			return "", err
		}
		rep.Results = append(rep.Results, lint.PassResult{
			Pass:           lint.Pass{Name: pass.Name, Command: pass.Command},
			Classification: cls,
			Output:         output,
		})
		r.log.Info("lint pass finished",
			observability.String("pass", pass.Name),
			observability.String("verdict", cls.String()))
	}

	if blocking := rep.Blocking(); len(blocking) > 0 {
		names := make([]string, 0, len(blocking))
		for _, res := range blocking {
			names = append(names, res.Pass.Name)
		}
		return "", errors.LintError(
			fmt.Sprintf("blocking findings in pass(es): %v", names), nil)
	}

	detail := "clean"
	if !rep.Clean() {
		detail = "non-blocking findings only"
	}
	return fmt.Sprintf("%d pass(es), %s", len(rep.Results), detail), nil
}

func (r *Runner) runLintPass(ctx context.Context, command string, blockOn []lint.Category) (string, lint.Classification, error) {
	p := proc.NewProcess(command).
		WithDir(r.opts.WorkDir).
		WithEnv(r.box.Environ())
	r.setProcess(p)
	output, runErr := p.Run(ctx)
	r.setProcess(nil)

	if runErr == proc.ErrTimeout {
		return "", lint.Classification{}, errors.TimeoutError("lint pass timed out", runErr)
	}
	if runErr != nil && p.ExitCode() == 0 {
		// Never started, there is no exit status to classify.
		return "", lint.Classification{}, errors.LintError("lint pass could not start", runErr)
	}
	return output, lint.Classify(p.ExitCode(), blockOn), nil
}

// runBuild produces the distributable artifact and installs it into
// the sandbox for the test stage.
func (r *Runner) runBuild(ctx context.Context) (string, error) {
	distDir := filepath.Join(r.opts.WorkDir, r.cfg.Build.DistDir)

	if r.cfg.Build.Command != "" {
		p := proc.NewProcess(r.cfg.Build.Command).
			WithDir(r.opts.WorkDir).
			WithEnv(r.box.Environ())
		r.setProcess(p)
		_, runErr := p.Run(ctx)
		r.setProcess(nil)
		if runErr == proc.ErrTimeout {
			return "", errors.TimeoutError("build timed out", runErr)
		}
		if runErr != nil {
			return "", errors.BuildError("build command failed", runErr)
		}
	} else {
		// Keep the sandbox and cache out of the artifact.
		packer := artifact.NewPacker(
			filepath.Base(r.cfg.Env.Path),
			filepath.Base(r.cfg.Global.CacheDir))
		if _, err := packer.Pack(r.opts.WorkDir, distDir, "janus", version.Version); err != nil {
			return "", err
		}
	}

	path, err := artifact.Locate(distDir, r.cfg.Build.ArtifactGlob)
	if err != nil {
		return "", err
	}
	sum, err := artifact.Checksum(path)
	if err != nil {
		return "", err
	}

	root, err := artifact.Install(path, r.box.LibDir())
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	r.installedRoot = root
	r.mu.Unlock()

	return fmt.Sprintf("%s (sha256 %s)", filepath.Base(path), sum[:12]), nil
}

// runTest runs the suite against the installed artifact, from a
// directory outside the working copy.
func (r *Runner) runTest(ctx context.Context) (string, error) {
	r.mu.RLock()
	installed := r.installedRoot
	r.mu.RUnlock()

	runner := testrun.NewRunner(r.log)
	result, err := runner.Run(ctx, testrun.Options{
		InstalledRoot: installed,
		Command:       r.cfg.Test.Command,
		TempPrefix:    r.cfg.Test.TempPrefix,
		Env:           r.box.Environ(),
		SourceDir:     r.opts.WorkDir,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("suite passed in %s", filepath.Base(result.Dir)), nil
}

// runTeardown removes the sandbox and the downloaded style guide.
// Build artifacts stay in the dist directory.
func (r *Runner) runTeardown(ctx context.Context) (string, error) {
	if err := r.box.Remove(); err != nil {
		return "", err
	}
	dest := filepath.Join(r.opts.WorkDir, r.cfg.Styleguide.Filename)
	if err := r.fetcher.Remove(dest); err != nil {
		return "", err
	}
	return "environment removed", nil
}

// Shutdown stops any running stage command and transitions the runner
// to the stopped state.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	if r.state == StateStopped || r.state == StateShuttingDown {
		r.mu.Unlock()
		return nil
	}
	r.state = StateShuttingDown
	p := r.process
	r.mu.Unlock()

	if p != nil && p.IsRunning() {
		if err := p.Stop(); err != nil {
			r.log.Warn("graceful stop failed, killing", observability.Err(err))
			_ = p.Kill()
		}
	}

	signal.Stop(r.signalChan)
	select {
	case <-r.shutdownCh:
	default:
		close(r.shutdownCh)
	}

	r.mu.Lock()
	r.state = StateStopped
	r.mu.Unlock()
	return nil
}

// State returns the current runner state.
func (r *Runner) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// RunID returns the identifier of the current run.
func (r *Runner) RunID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.runID
}

// Metrics returns the run metrics.
func (r *Runner) Metrics() *observability.Metrics {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.metrics
}

func (r *Runner) setProcess(p *proc.Process) {
	r.mu.Lock()
	r.process = p
	r.mu.Unlock()
}

func (r *Runner) setStageErr(err error) {
	r.mu.Lock()
	r.stageErr = err
	r.mu.Unlock()
}

func (r *Runner) lastStageErr() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stageErr
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
