// Package pipeline implements the sequenced, fail-fast build pipeline.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.slipway.dev/slipway/internal/core/domain"
	"go.slipway.dev/slipway/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Pipeline drives the ordered stage list for one build. Stages run
// strictly one at a time; the first unrecoverable failure aborts the
// whole run.
type Pipeline struct {
	executor  ports.Executor
	resolver  ports.ToolResolver
	hasher    ports.Hasher
	store     ports.RunStore
	telemetry ports.Telemetry
	logger    ports.Logger

	stdout io.Writer
	stderr io.Writer
}

// New creates a new Pipeline.
func New(
	executor ports.Executor,
	resolver ports.ToolResolver,
	hasher ports.Hasher,
	store ports.RunStore,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Pipeline {
	return &Pipeline{
		executor:  executor,
		resolver:  resolver,
		hasher:    hasher,
		store:     store,
		telemetry: telemetry,
		logger:    logger,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
}

// SetOutput redirects the operator-facing streams. Used by tests.
func (p *Pipeline) SetOutput(stdout, stderr io.Writer) {
	p.stdout = stdout
	p.stderr = stderr
}

// stage is one named step of the ordered pipeline.
type stage struct {
	name string
	run  func(ctx context.Context, vtx ports.Vertex) error
}

// Run executes the full pipeline for the plan and returns the run
// record on success.
func (p *Pipeline) Run(ctx context.Context, plan *domain.Plan) (*domain.RunRecord, error) {
	start := time.Now()

	tools, err := p.resolver.Resolve(plan.Toolchain.Names())
	if err != nil {
		return nil, err
	}

	var checksum bytes.Buffer
	if err := p.runStages(ctx, p.buildStages(plan, tools, &checksum)); err != nil {
		return nil, err
	}

	return p.record(plan, strings.TrimSpace(checksum.String()), time.Since(start))
}

// Clean removes prior pipeline output without running a build. The
// removal tasks tolerate "does not exist", so cleaning a fresh checkout
// succeeds.
func (p *Pipeline) Clean(ctx context.Context, plan *domain.Plan) error {
	tools, err := p.resolver.Resolve([]string{plan.Toolchain.Remove})
	if err != nil {
		return err
	}

	return p.runStages(ctx, []stage{
		p.taskStage("clean slate", cleanSlate(plan, tools)...),
	})
}

// buildStages assembles the ordered stage list for a full run.
func (p *Pipeline) buildStages(plan *domain.Plan, tools map[string]string, checksum *bytes.Buffer) []stage {
	stages := []stage{
		p.taskStage("register toolchain targets", registerTargets(plan, tools)),
		p.taskStage("clean slate", cleanSlate(plan, tools)...),
		p.taskStage("reset build cache", resetBuildCache(plan, tools)),
		p.taskStage("create staging directory", createStagingDir(plan, tools)),
		p.taskStage("debug build", debugBuild(plan, tools)),
		p.taskStage("generate bindings", generateBindings(plan, tools)),
	}

	for _, t := range plan.Targets {
		stages = append(stages, p.taskStage("release build "+t.Name, releaseBuild(plan, tools, t)))
	}

	stages = append(stages,
		stage{
			name: "relocate module description",
			run: func(_ context.Context, _ ports.Vertex) error {
				return relocateModuleMap(plan)
			},
		},
		p.taskStage("merge simulator slices", mergeSimulatorSlices(plan, tools)),
		p.taskStage("assemble container", assembleContainer(plan, tools)),
		p.taskStage("compress container", compressContainer(plan, tools)),
		p.checksumStage(plan, tools, checksum),
	)

	return stages
}

// runStages executes stages in order, stopping at the first failure.
func (p *Pipeline) runStages(ctx context.Context, stages []stage) error {
	for _, st := range stages {
		sctx, vtx := p.telemetry.Record(ctx, st.name)
		start := time.Now()

		err := st.run(sctx, vtx)
		vtx.Complete(err)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "stage failed"), "stage", st.name)
		}

		p.logger.Info(fmt.Sprintf("%s done in %s", st.name, time.Since(start).Round(time.Millisecond)))
	}
	return nil
}

// taskStage wraps one or more tasks into a stage, streaming process
// output both to the telemetry vertex and to the operator.
func (p *Pipeline) taskStage(name string, tasks ...domain.Task) stage {
	return stage{
		name: name,
		run: func(ctx context.Context, vtx ports.Vertex) error {
			for _, task := range tasks {
				stdout := io.MultiWriter(vtx.Stdout(), p.stdout)
				stderr := io.MultiWriter(vtx.Stderr(), p.stderr)
				if err := p.executor.Execute(ctx, &task, stdout, stderr); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// checksumStage runs the checksum task with its stdout teed into buf so
// the digest can be recorded in the run manifest.
func (p *Pipeline) checksumStage(plan *domain.Plan, tools map[string]string, buf *bytes.Buffer) stage {
	task := computeChecksum(plan, tools)
	return stage{
		name: "compute checksum",
		run: func(ctx context.Context, vtx ports.Vertex) error {
			stdout := io.MultiWriter(vtx.Stdout(), p.stdout, buf)
			stderr := io.MultiWriter(vtx.Stderr(), p.stderr)
			return p.executor.Execute(ctx, &task, stdout, stderr)
		},
	}
}

// record hashes the produced artifacts, compares the archive against the
// previous run of the same project, and persists the run record.
func (p *Pipeline) record(plan *domain.Plan, checksum string, duration time.Duration) (*domain.RunRecord, error) {
	artifacts := []string{
		plan.Archive(),
		plan.ReleaseSlice(plan.DeviceTarget()),
		plan.MergedSimulatorSlice(),
	}

	hashes := make([]string, len(artifacts))
	var g errgroup.Group
	for i, path := range artifacts {
		g.Go(func() error {
			h, err := p.hasher.Hash(path)
			hashes[i] = h
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, zerr.Wrap(err, "failed to hash artifacts")
	}

	record := domain.RunRecord{
		Archive:        filepath.Base(plan.Archive()),
		Checksum:       checksum,
		ArtifactHashes: make(map[string]string, len(artifacts)),
		Duration:       duration,
		Timestamp:      time.Now(),
	}
	for i, path := range artifacts {
		record.ArtifactHashes[filepath.Base(path)] = hashes[i]
	}

	if prev, err := p.store.Get(record.Archive); err == nil && prev != nil {
		if prev.ArtifactHashes[record.Archive] == record.ArtifactHashes[record.Archive] {
			p.logger.Info("archive is byte-identical to the previous run")
		} else {
			p.logger.Info("archive differs from the previous run")
		}
	}

	if err := p.store.Put(record); err != nil {
		return nil, err
	}

	return &record, nil
}
